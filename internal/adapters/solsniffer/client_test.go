package solsniffer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitegun/snipebot/internal/adapters/solsniffer"
	"github.com/mitegun/snipebot/internal/domain"
)

func TestContractScore_OK(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"score": 92.5}`))
	}))
	defer srv.Close()

	c := solsniffer.NewClient(srv.URL, "test-key")
	score, err := c.ContractScore(context.Background(), "0xabc")
	require.NoError(t, err)

	assert.Equal(t, 92.5, score)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/api/contract/0xabc", gotPath)
}

func TestContractScore_MissingFieldDefaultsToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := solsniffer.NewClient(srv.URL, "k")
	score, err := c.ContractScore(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestContractScore_ServerErrorAfterRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := solsniffer.NewClient(srv.URL, "k")
	_, err := c.ContractScore(context.Background(), "0xabc")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Equal(t, 3, calls, "initial attempt + 2 retries")
}

func TestContractScore_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := solsniffer.NewClient(srv.URL, "bad-key")
	_, err := c.ContractScore(context.Background(), "0xabc")
	// 4xx no se reintenta: error directo que el scorer degrada a 0.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
