package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleOracleStats(w http.ResponseWriter, r *http.Request) {
	if s.oracle == nil || s.oracle.Stats == nil {
		jsonError(w, "oracle stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": s.oracle.Model(),
		"stats": s.oracle.Stats.Snapshot(),
	})
}
