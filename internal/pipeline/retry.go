package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/dgallion1/docseg/internal/corpus"
	"github.com/dgallion1/docseg/internal/index"
	"github.com/dgallion1/docseg/internal/oracle"
	"github.com/dgallion1/docseg/internal/segment"
)

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *oracle.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 3

// RetryingOracle wraps an index oracle with the retry policy. The engine
// sees a single ProposeIndex call; transient API failures are absorbed here.
type RetryingOracle struct {
	Inner segment.Oracle
	Log   *slog.Logger
}

func (r *RetryingOracle) ProposeIndex(ctx context.Context, c corpus.Corpus) ([]index.Candidate, error) {
	var cands []index.Candidate
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		cands, lastErr = r.Inner.ProposeIndex(ctx, c)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		r.Log.Warn("retryable oracle error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return cands, lastErr
}
