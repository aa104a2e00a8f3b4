package sniper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitegun/snipebot/internal/domain"
)

func TestFilter_BoundaryInclusive(t *testing.T) {
	f := NewFilter(FilterConfig{MinScore: 85})

	assert.False(t, f.Accept(domain.ScoreReport{ContractScore: 84}))
	assert.True(t, f.Accept(domain.ScoreReport{ContractScore: 85}))
	assert.True(t, f.Accept(domain.ScoreReport{ContractScore: 86}))
}

// La reputación no decide: un trust pésimo con buen contract score pasa.
func TestFilter_ReputationDoesNotGate(t *testing.T) {
	f := NewFilter(FilterConfig{MinScore: 85})

	report := domain.ScoreReport{
		ContractScore: 90,
		Reputation:    domain.Reputation{Known: true, OverallScore: 1, TrustLevel: "low"},
	}
	assert.True(t, f.Accept(report))
}

func TestFilter_DefaultThreshold(t *testing.T) {
	f := NewFilter(FilterConfig{})
	assert.Equal(t, 85.0, f.MinScore())
}
