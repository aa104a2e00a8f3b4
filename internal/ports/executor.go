package ports

import (
	"context"

	"github.com/mitegun/snipebot/internal/domain"
)

// OrderExecutor drives the buy → take-profit sell lifecycle for an accepted
// candidate. One position per address per run.
type OrderExecutor interface {
	// Execute runs the full state machine for the candidate and returns the
	// resulting position. A failed position comes back with Status Failed and
	// the error that caused it; the error never halts the overall run.
	Execute(ctx context.Context, cand domain.Candidate, score float64) (domain.Position, error)
}
