package ports

import (
	"context"

	"github.com/mitegun/snipebot/internal/domain"
)

// ContractScorer consulta el provider de seguridad de contratos.
type ContractScorer interface {
	// ContractScore devuelve el score [0, 100] del contrato.
	// Error de transporte o respuesta no exitosa → el caller degrada a 0.
	ContractScore(ctx context.Context, address string) (float64, error)
}

// ReputationScorer consulta el provider de reputación social.
type ReputationScorer interface {
	// Analyze devuelve la reputación del handle dado.
	// Error de transporte o respuesta no exitosa → el caller degrada a unknown.
	Analyze(ctx context.Context, handle string) (domain.Reputation, error)
}
