package ports

import (
	"context"

	"github.com/mitegun/snipebot/internal/domain"
)

// Venue es el mercado contra el que se ejecutan las órdenes.
type Venue interface {
	// GetPrice devuelve el precio actual del mercado.
	GetPrice(ctx context.Context) (float64, error)

	// SubmitOrder envía una orden límite y devuelve la firma del acuse.
	// El acuse es aceptación en el venue, no confirmación de fill.
	SubmitOrder(ctx context.Context, req domain.OrderRequest) (domain.PlacedOrder, error)

	// OrderStatus consulta el estado de una orden ya enviada, por firma.
	// Lo usa el engine cuando confirm_fills está activo.
	OrderStatus(ctx context.Context, signature string) (domain.OrderState, error)
}
