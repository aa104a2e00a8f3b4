package domain

import (
	"fmt"
	"time"
)

// PositionStatus es el estado de una posición en la máquina de ejecución.
type PositionStatus string

const (
	// StatusPendingBuy: el buy fue computado y se está enviando al venue.
	StatusPendingBuy PositionStatus = "pending_buy"
	// StatusOpen: el venue aceptó la orden de compra (firma recibida).
	StatusOpen PositionStatus = "open"
	// StatusPartiallyExited: el sell de take-profit fue aceptado. Terminal.
	StatusPartiallyExited PositionStatus = "partially_exited"
	// StatusFailed: fallo de sizing o de envío de orden. Terminal.
	StatusFailed PositionStatus = "failed"
)

// TradeIntent es el snapshot inmutable de política adjuntado al aceptar un
// candidato. Ninguna posición muta estos valores después de creada.
type TradeIntent struct {
	Address              string
	Capital              float64 // asignación fija en SOL
	Slippage             float64 // fracción, p.ej. 0.15
	TakeProfitMultiplier float64 // p.ej. 3.0
	MoonbagFraction      float64 // p.ej. 0.15
}

// Validate verifica los invariantes de la política de trading.
func (ti TradeIntent) Validate() error {
	if ti.MoonbagFraction < 0 || ti.MoonbagFraction >= 1 {
		return fmt.Errorf("moonbag fraction %.4f out of range [0, 1)", ti.MoonbagFraction)
	}
	if ti.TakeProfitMultiplier <= 1 {
		return fmt.Errorf("take-profit multiplier %.4f must be > 1", ti.TakeProfitMultiplier)
	}
	if ti.Capital <= 0 {
		return fmt.Errorf("capital %.4f must be > 0", ti.Capital)
	}
	return nil
}

// Position es el estado de ejecución de un address aceptado. Una posición por
// address por run; pertenece exclusivamente a la goroutine que la creó.
type Position struct {
	ID      string
	Address string
	Chain   Chain
	Intent  TradeIntent

	Score float64 // contract score al momento de aceptar

	EntryPrice  float64 // precio límite de la compra
	Size        float64
	TargetPrice float64
	SellSize    float64

	BuySignature  string
	SellSignature string

	Status PositionStatus
	Reason string // causa del fallo, vacío si no falló

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Terminal devuelve true si la posición no admite más transiciones.
func (p *Position) Terminal() bool {
	return p.Status == StatusPartiallyExited || p.Status == StatusFailed
}

// Open marca la aceptación del buy por el venue.
func (p *Position) Open(entryPrice, size float64, signature string) {
	p.EntryPrice = entryPrice
	p.Size = size
	p.BuySignature = signature
	p.Status = StatusOpen
	p.UpdatedAt = time.Now().UTC()
}

// PartialExit marca la aceptación del sell de take-profit.
func (p *Position) PartialExit(targetPrice, sellSize float64, signature string) {
	p.TargetPrice = targetPrice
	p.SellSize = sellSize
	p.SellSignature = signature
	p.Status = StatusPartiallyExited
	p.UpdatedAt = time.Now().UTC()
}

// Fail marca la posición como fallida con la causa dada.
func (p *Position) Fail(err error) {
	p.Status = StatusFailed
	if err != nil {
		p.Reason = err.Error()
	}
	p.UpdatedAt = time.Now().UTC()
}
