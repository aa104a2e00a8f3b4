// Package twitter implementa ports.FeedSource sobre el API v2 de X/Twitter.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/mitegun/snipebot/internal/domain"
)

const (
	defaultBase = "https://api.twitter.com"

	userByNamePath = "/2/users/by/username/%s"
	userTweetsPath = "/2/users/%s/tweets"

	// El tier básico del API v2 permite pocas requests por ventana.
	requestsPerSec = 1

	// max_results del endpoint de timeline: el API exige [5, 100].
	minTimelineResults = 5
	maxTimelineResults = 100
)

// Client es el HTTP client del feed con bearer auth.
type Client struct {
	http    *http.Client
	base    string
	token   string
	limiter *rate.Limiter
}

// NewClient crea un Client con el base URL dado.
// Si base está vacío usa el URL de producción.
func NewClient(base, bearerToken string) *Client {
	if base == "" {
		base = defaultBase
	}
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		base:    base,
		token:   bearerToken,
		limiter: rate.NewLimiter(requestsPerSec, 2),
	}
}

// FetchRecent devuelve hasta count posts recientes de la cuenta dada.
// Resuelve primero el user ID por username y después pide el timeline.
func (c *Client) FetchRecent(ctx context.Context, account string, count int) ([]domain.TextItem, error) {
	userID, err := c.lookupUserID(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("twitter.FetchRecent: lookup %q: %w", account, err)
	}

	if count < minTimelineResults {
		count = minTimelineResults
	}
	if count > maxTimelineResults {
		count = maxTimelineResults
	}

	q := url.Values{}
	q.Set("max_results", fmt.Sprintf("%d", count))
	q.Set("tweet.fields", "id,text")
	endpoint := c.base + fmt.Sprintf(userTweetsPath, userID) + "?" + q.Encode()

	var resp struct {
		Data []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("twitter.FetchRecent: timeline %q: %w", account, err)
	}

	items := make([]domain.TextItem, 0, len(resp.Data))
	for _, t := range resp.Data {
		items = append(items, domain.TextItem{ID: t.ID, Text: t.Text})
	}
	return items, nil
}

// lookupUserID resuelve el user ID numérico de un username.
func (c *Client) lookupUserID(ctx context.Context, account string) (string, error) {
	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	endpoint := c.base + fmt.Sprintf(userByNamePath, url.PathEscape(account))
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID == "" {
		return "", fmt.Errorf("user not found")
	}
	return resp.Data.ID, nil
}

// get hace un GET autenticado con rate limiting.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
