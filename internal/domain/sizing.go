package domain

import "errors"

// ErrInvalidPrice indica un precio de mercado no positivo.
// Aborta el sizing de ese candidato; el run continúa con el siguiente.
var ErrInvalidPrice = errors.New("invalid market price")

// OrderSize convierte la asignación fija de capital en tamaño de orden y
// precio límite de compra dado el precio actual y la tolerancia de slippage.
//
// Fórmulas:
//
//	buySize    = capital / price
//	limitPrice = price + price × slippage
//
// El límite es aditivo sobre el precio (peor precio aceptable al comprar),
// algebraicamente igual a price × (1 + slippage). Función pura, sin I/O.
func OrderSize(capital, price, slippage float64) (buySize, limitPrice float64, err error) {
	if price <= 0 {
		return 0, 0, ErrInvalidPrice
	}
	buySize = capital / price
	limitPrice = price + price*slippage
	return buySize, limitPrice, nil
}

// TargetPrice es el precio objetivo del take-profit parcial.
func TargetPrice(entryPrice, takeProfitMultiplier float64) float64 {
	return entryPrice * takeProfitMultiplier
}

// SellSize es el tamaño de la venta parcial: todo menos el moonbag.
// Siempre ≤ buySize; estrictamente menor cuando moonbag > 0.
func SellSize(buySize, moonbagFraction float64) float64 {
	return (1 - moonbagFraction) * buySize
}
