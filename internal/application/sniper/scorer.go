package sniper

import (
	"context"
	"log/slog"

	"github.com/mitegun/snipebot/internal/domain"
	"github.com/mitegun/snipebot/internal/ports"
)

// HandleResolver maps a candidate to the social handle used for the
// reputation lookup. The default resolver returns the contract address
// itself; a real handle-resolution strategy plugs in here.
type HandleResolver func(domain.Candidate) string

// RiskScorer queries the contract-safety and social-reputation providers and
// composes a ScoreReport. Provider failures degrade the affected sub-score to
// its safe minimum instead of propagating: no data means rejection-eligible,
// never a crashed run.
type RiskScorer struct {
	contracts  ports.ContractScorer
	reputation ports.ReputationScorer
	resolve    HandleResolver
}

// NewRiskScorer creates a scorer with the default address-as-handle resolver.
func NewRiskScorer(contracts ports.ContractScorer, reputation ports.ReputationScorer) *RiskScorer {
	return &RiskScorer{
		contracts:  contracts,
		reputation: reputation,
		resolve:    func(c domain.Candidate) string { return c.Address },
	}
}

// WithHandleResolver replaces the reputation handle resolution strategy.
func (s *RiskScorer) WithHandleResolver(r HandleResolver) *RiskScorer {
	if r != nil {
		s.resolve = r
	}
	return s
}

// Score issues one request to each provider and returns the composite report.
func (s *RiskScorer) Score(ctx context.Context, cand domain.Candidate) domain.ScoreReport {
	report := domain.ScoreReport{
		Address:    cand.Address,
		Reputation: domain.UnknownReputation(),
	}

	score, err := s.contracts.ContractScore(ctx, cand.Address)
	if err != nil {
		slog.Warn("scorer: contract score unavailable, defaulting to 0",
			"address", cand.Address, "err", err)
	} else {
		report.ContractScore = score
	}

	rep, err := s.reputation.Analyze(ctx, s.resolve(cand))
	if err != nil {
		slog.Warn("scorer: reputation unavailable, defaulting to unknown",
			"address", cand.Address, "err", err)
	} else {
		report.Reputation = rep
	}

	return report
}
