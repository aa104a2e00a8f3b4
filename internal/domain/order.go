package domain

import "errors"

// ErrOrderSubmission indica que el venue rechazó o no pudo recibir una orden.
// Un solo intento, sin retry: la posición pasa a Failed y el run continúa.
var ErrOrderSubmission = errors.New("order submission failed")

// ErrProviderUnavailable indica fallo de transporte o respuesta no exitosa de
// un provider de scoring. El sub-score degrada a su mínimo seguro.
var ErrProviderUnavailable = errors.New("provider unavailable")

// OrderSide es el lado de una orden límite.
type OrderSide string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

// OrderRequest es una orden límite lista para enviar al venue.
type OrderRequest struct {
	Side  OrderSide
	Price float64
	Size  float64
}

// PlacedOrder es el acuse del venue: la firma de la transacción.
// Aceptación en el venue, no confirmación de fill.
type PlacedOrder struct {
	Signature string
}

// OrderState es el estado de una orden ya enviada, consultado por firma.
type OrderState string

const (
	OrderAccepted OrderState = "accepted"
	OrderFilled   OrderState = "filled"
	OrderRejected OrderState = "rejected"
	OrderUnknown  OrderState = "unknown"
)
