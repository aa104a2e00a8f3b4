package sniper

import (
	"github.com/mitegun/snipebot/internal/domain"
)

// FilterConfig contiene los parámetros de la política de aceptación.
type FilterConfig struct {
	// MinScore es el umbral inclusivo sobre el contract score.
	MinScore float64
}

// DefaultFilterConfig devuelve la política de producción.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{MinScore: 85}
}

// Filter decide si un candidato evaluado se acepta para trading.
// Solo el contract score decide; la reputación es informativa.
type Filter struct {
	cfg FilterConfig
}

// NewFilter crea un Filter con la configuración dada.
func NewFilter(cfg FilterConfig) *Filter {
	if cfg.MinScore <= 0 {
		cfg.MinScore = DefaultFilterConfig().MinScore
	}
	return &Filter{cfg: cfg}
}

// Accept devuelve true si el report supera el umbral (inclusivo).
func (f *Filter) Accept(report domain.ScoreReport) bool {
	return report.Meets(f.cfg.MinScore)
}

// MinScore devuelve el umbral configurado.
func (f *Filter) MinScore() float64 {
	return f.cfg.MinScore
}
