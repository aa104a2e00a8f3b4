// Package paper implementa ports.Venue en memoria para dry-run.
package paper

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mitegun/snipebot/internal/domain"
)

// Venue simula el mercado: precio fijo, firmas sintéticas, todo fill.
type Venue struct {
	mu     sync.Mutex
	price  float64
	orders []domain.OrderRequest
}

// New crea un venue simulado con el precio dado.
func New(price float64) *Venue {
	return &Venue{price: price}
}

// GetPrice devuelve el precio simulado.
func (v *Venue) GetPrice(_ context.Context) (float64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.price, nil
}

// SetPrice cambia el precio simulado.
func (v *Venue) SetPrice(price float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.price = price
}

// SubmitOrder registra la orden y devuelve una firma sintética.
func (v *Venue) SubmitOrder(_ context.Context, req domain.OrderRequest) (domain.PlacedOrder, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.orders = append(v.orders, req)
	return domain.PlacedOrder{Signature: "paper-" + uuid.New().String()}, nil
}

// OrderStatus: en papel todas las órdenes se consideran filled al instante.
func (v *Venue) OrderStatus(_ context.Context, _ string) (domain.OrderState, error) {
	return domain.OrderFilled, nil
}

// Orders devuelve una copia de las órdenes registradas.
func (v *Venue) Orders() []domain.OrderRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.OrderRequest, len(v.orders))
	copy(out, v.orders)
	return out
}
