package ports

import (
	"context"

	"github.com/mitegun/snipebot/internal/domain"
)

// Journal registra la actividad de trading del run.
type Journal interface {
	// SavePosition hace upsert del estado actual de una posición.
	SavePosition(ctx context.Context, pos domain.Position) error

	// SaveSubmission registra cada envío de orden con su resultado.
	// submitErr va vacío si el venue aceptó la orden.
	SaveSubmission(ctx context.Context, positionID string, req domain.OrderRequest, signature, submitErr string) error

	// Positions devuelve todas las posiciones registradas en el run.
	Positions(ctx context.Context) ([]domain.Position, error)
}
