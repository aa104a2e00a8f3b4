// Package tweetscout es el cliente del provider de reputación social.
package tweetscout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/mitegun/snipebot/internal/domain"
)

const (
	defaultBase = "https://app.tweetscout.io"
	handlePath  = "/api/%s"

	requestsPerSec = 5
)

// Client es el HTTP client de TweetScout.
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

// Analyze devuelve la reputación del handle dado.
func (c *Client) Analyze(ctx context.Context, handle string) (domain.Reputation, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Reputation{}, fmt.Errorf("tweetscout.Analyze: rate limiter: %w", err)
	}

	url := c.base + fmt.Sprintf(handlePath, handle)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Reputation{}, fmt.Errorf("tweetscout.Analyze: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Reputation{}, fmt.Errorf("tweetscout.Analyze: %w: %w", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Reputation{}, fmt.Errorf("tweetscout.Analyze: %w: status %d: %s",
			domain.ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var payload struct {
		OverallScore   float64 `json:"overallScore"`
		KnownFollowers int     `json:"knownFollowers"`
		TrustLevel     string  `json:"trustLevel"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Reputation{}, fmt.Errorf("tweetscout.Analyze: decode: %w", err)
	}

	rep := domain.Reputation{
		Known:          true,
		OverallScore:   payload.OverallScore,
		KnownFollowers: payload.KnownFollowers,
		TrustLevel:     payload.TrustLevel,
	}
	if rep.TrustLevel == "" {
		rep.TrustLevel = domain.TrustUnknown
	}
	return rep, nil
}
