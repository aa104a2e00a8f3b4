// Package solsniffer es el cliente del provider de seguridad de contratos.
package solsniffer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/mitegun/snipebot/internal/domain"
)

const (
	defaultBase  = "https://solsniffer.com"
	contractPath = "/api/contract/%s"

	// Límite conservador: el API no documenta cuota, 5/s evita baneos.
	requestsPerSec = 5

	maxRetries    = 2
	baseRetryWait = 500 * time.Millisecond
)

// Client es el HTTP client de SolSniffer con rate limiting y retries.
type Client struct {
	http    *http.Client
	base    string
	apiKey  string
	limiter *rate.Limiter
}

// NewClient crea un Client con el base URL dado.
// Si base está vacío usa el URL de producción.
func NewClient(base, apiKey string) *Client {
	if base == "" {
		base = defaultBase
	}
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		base:    base,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(requestsPerSec, 2),
	}
}

// ContractScore devuelve el score [0, 100] del contrato dado.
func (c *Client) ContractScore(ctx context.Context, address string) (float64, error) {
	url := c.base + fmt.Sprintf(contractPath, address)

	var resp struct {
		Score float64 `json:"score"`
	}
	if err := c.get(ctx, url, &resp); err != nil {
		return 0, fmt.Errorf("solsniffer.ContractScore: %w: %w", domain.ErrProviderUnavailable, err)
	}
	return resp.Score, nil
}

// get hace un GET autenticado con rate limiting y retries en 429/5xx.
func (c *Client) get(ctx context.Context, url string, out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
