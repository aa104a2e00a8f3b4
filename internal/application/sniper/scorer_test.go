package sniper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitegun/snipebot/internal/domain"
)

type stubContracts struct {
	score float64
	err   error
	calls []string
}

func (s *stubContracts) ContractScore(_ context.Context, address string) (float64, error) {
	s.calls = append(s.calls, address)
	return s.score, s.err
}

type stubReputation struct {
	rep   domain.Reputation
	err   error
	calls []string
}

func (s *stubReputation) Analyze(_ context.Context, handle string) (domain.Reputation, error) {
	s.calls = append(s.calls, handle)
	return s.rep, s.err
}

func cand() domain.Candidate {
	return domain.Candidate{Address: "0xabcdef", Chain: domain.ChainEVM, Source: "acct"}
}

func TestRiskScorer_BothProvidersOK(t *testing.T) {
	contracts := &stubContracts{score: 91}
	reputation := &stubReputation{rep: domain.Reputation{Known: true, OverallScore: 77, KnownFollowers: 12, TrustLevel: "high"}}
	s := NewRiskScorer(contracts, reputation)

	report := s.Score(context.Background(), cand())

	assert.Equal(t, 91.0, report.ContractScore)
	assert.True(t, report.Reputation.Known)
	assert.Equal(t, "high", report.Reputation.TrustLevel)
}

func TestRiskScorer_BothProvidersDown_DegradesToMinimum(t *testing.T) {
	contracts := &stubContracts{err: errors.New("HTTP 500")}
	reputation := &stubReputation{err: errors.New("HTTP 500")}
	s := NewRiskScorer(contracts, reputation)

	report := s.Score(context.Background(), cand())

	assert.Equal(t, 0.0, report.ContractScore)
	assert.False(t, report.Reputation.Known)
	assert.Equal(t, domain.TrustUnknown, report.Reputation.TrustLevel)

	// Score 0 se rechaza con cualquier umbral positivo.
	assert.False(t, NewFilter(FilterConfig{MinScore: 85}).Accept(report))
	assert.False(t, NewFilter(FilterConfig{MinScore: 1}).Accept(report))
}

func TestRiskScorer_OneProviderDown(t *testing.T) {
	contracts := &stubContracts{score: 88}
	reputation := &stubReputation{err: errors.New("unauthorized")}
	s := NewRiskScorer(contracts, reputation)

	report := s.Score(context.Background(), cand())

	assert.Equal(t, 88.0, report.ContractScore)
	assert.Equal(t, domain.TrustUnknown, report.Reputation.TrustLevel)
}

// El resolver por defecto pasa el contract address como handle social.
func TestRiskScorer_DefaultHandleIsAddress(t *testing.T) {
	contracts := &stubContracts{score: 90}
	reputation := &stubReputation{rep: domain.Reputation{Known: true}}
	s := NewRiskScorer(contracts, reputation)

	s.Score(context.Background(), cand())

	assert.Equal(t, []string{"0xabcdef"}, reputation.calls)
}

func TestRiskScorer_CustomHandleResolver(t *testing.T) {
	contracts := &stubContracts{score: 90}
	reputation := &stubReputation{rep: domain.Reputation{Known: true}}
	s := NewRiskScorer(contracts, reputation).
		WithHandleResolver(func(c domain.Candidate) string { return c.Source })

	s.Score(context.Background(), cand())

	assert.Equal(t, []string{"acct"}, reputation.calls)
}
