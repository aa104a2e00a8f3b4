// Package openbook implementa ports.Venue contra un gateway HTTP del DEX.
//
// El gateway expone el libro de un mercado OpenBook: precio actual, envío de
// órdenes límite firmadas por el gateway y consulta de estado por firma.
package openbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mr-tron/base58"
	"golang.org/x/time/rate"

	"github.com/mitegun/snipebot/internal/domain"
)

const (
	marketPath = "/api/markets/%s"
	pricePath  = "/api/markets/%s/price"
	ordersPath = "/api/orders"
	orderPath  = "/api/orders/%s"

	requestsPerSec = 10

	pubkeyLen = 32 // bytes de una pubkey de Solana
)

// Market es el handle del mercado contra el que se opera.
// Se construye una vez al arrancar; si el mercado no carga, el run aborta.
type Market struct {
	http    *http.Client
	base    string
	address string
	owner   string
	limiter *rate.Limiter

	meta marketMeta
}

type marketMeta struct {
	BaseSymbol  string  `json:"baseSymbol"`
	QuoteSymbol string  `json:"quoteSymbol"`
	TickSize    float64 `json:"tickSize"`
	MinOrder    float64 `json:"minOrderSize"`
}

// NewMarket valida los addresses y carga la metadata del mercado.
// Cualquier fallo acá es fatal para el run: no se opera con un venue nulo.
func NewMarket(ctx context.Context, gatewayBase, marketAddress, owner string) (*Market, error) {
	if err := validatePubkey(marketAddress); err != nil {
		return nil, fmt.Errorf("openbook.NewMarket: market address: %w", err)
	}
	if err := validatePubkey(owner); err != nil {
		return nil, fmt.Errorf("openbook.NewMarket: owner: %w", err)
	}
	if gatewayBase == "" {
		return nil, fmt.Errorf("openbook.NewMarket: gateway base URL vacío")
	}

	m := &Market{
		http:    &http.Client{Timeout: 10 * time.Second},
		base:    gatewayBase,
		address: marketAddress,
		owner:   owner,
		limiter: rate.NewLimiter(requestsPerSec, 5),
	}

	if err := m.getJSON(ctx, m.base+fmt.Sprintf(marketPath, marketAddress), &m.meta); err != nil {
		return nil, fmt.Errorf("openbook.NewMarket: load market %s: %w", marketAddress, err)
	}
	return m, nil
}

// Address devuelve el address base-58 del mercado.
func (m *Market) Address() string {
	return m.address
}

// GetPrice devuelve el precio actual del mercado.
func (m *Market) GetPrice(ctx context.Context) (float64, error) {
	var resp struct {
		Price float64 `json:"price"`
	}
	if err := m.getJSON(ctx, m.base+fmt.Sprintf(pricePath, m.address), &resp); err != nil {
		return 0, fmt.Errorf("openbook.GetPrice: %w", err)
	}
	return resp.Price, nil
}

// SubmitOrder envía una orden límite y devuelve la firma del acuse.
func (m *Market) SubmitOrder(ctx context.Context, req domain.OrderRequest) (domain.PlacedOrder, error) {
	payload := map[string]any{
		"market": m.address,
		"owner":  m.owner,
		"side":   string(req.Side),
		"price":  req.Price,
		"size":   req.Size,
		"type":   "limit",
	}

	var resp struct {
		Signature string `json:"signature"`
	}
	if err := m.postJSON(ctx, m.base+ordersPath, payload, &resp); err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("openbook.SubmitOrder: %w: %w", domain.ErrOrderSubmission, err)
	}
	if resp.Signature == "" {
		return domain.PlacedOrder{}, fmt.Errorf("openbook.SubmitOrder: %w: acuse sin firma", domain.ErrOrderSubmission)
	}
	return domain.PlacedOrder{Signature: resp.Signature}, nil
}

// OrderStatus consulta el estado de una orden por firma.
func (m *Market) OrderStatus(ctx context.Context, signature string) (domain.OrderState, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := m.getJSON(ctx, m.base+fmt.Sprintf(orderPath, signature), &resp); err != nil {
		return domain.OrderUnknown, fmt.Errorf("openbook.OrderStatus: %w", err)
	}

	switch resp.Status {
	case "accepted", "open":
		return domain.OrderAccepted, nil
	case "filled":
		return domain.OrderFilled, nil
	case "rejected", "cancelled":
		return domain.OrderRejected, nil
	default:
		return domain.OrderUnknown, nil
	}
}

// validatePubkey verifica que el address decodifique a una pubkey de 32 bytes.
func validatePubkey(addr string) error {
	if addr == "" {
		return fmt.Errorf("address vacío")
	}
	raw, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("base58 inválido %q: %w", addr, err)
	}
	if len(raw) != pubkeyLen {
		return fmt.Errorf("pubkey %q: %d bytes, se esperaban %d", addr, len(raw), pubkeyLen)
	}
	return nil
}

func (m *Market) getJSON(ctx context.Context, url string, out any) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return m.do(req, out)
}

func (m *Market) postJSON(ctx context.Context, url string, body, out any) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return m.do(req, out)
}

func (m *Market) do(req *http.Request, out any) error {
	resp, err := m.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
