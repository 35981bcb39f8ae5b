package index

// Candidate is an unresolved table-of-contents entry: a title plus optional
// page hints. Hints come from index lines or the oracle and are treated as
// ordering hints only, never as trusted boundaries.
type Candidate struct {
	Title    string      `json:"title"`
	FromHint int         `json:"from_page,omitempty"`
	ToHint   int         `json:"to_page,omitempty"`
	Children []Candidate `json:"subchapters,omitempty"`
}

// Source records how a candidate index was obtained.
type Source string

const (
	// SourceExplicit means the caller supplied the index page range.
	SourceExplicit Source = "explicit"
	// SourceHeuristic means the detector found an index-like page.
	SourceHeuristic Source = "heuristic"
	// SourceOracle means the candidates came from the proposal oracle.
	SourceOracle Source = "oracle"
	// SourceFallback means no index was available and the whole document
	// is treated as a single chapter.
	SourceFallback Source = "fallback"
)
