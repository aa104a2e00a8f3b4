package openbook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitegun/snipebot/internal/adapters/openbook"
	"github.com/mitegun/snipebot/internal/domain"
)

const (
	// Pubkeys de 32 bytes válidas en base-58.
	marketAddr = "9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT"
	ownerAddr  = "So11111111111111111111111111111111111111112"
)

func newGateway(t *testing.T) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	var submitted []map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/api/markets/"+marketAddr, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"baseSymbol": "MEME", "quoteSymbol": "SOL", "tickSize": 0.0001, "minOrderSize": 0.001}`))
	})
	mux.HandleFunc("/api/markets/"+marketAddr+"/price", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"price": 100}`))
	})
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		submitted = append(submitted, payload)
		w.Write([]byte(`{"signature": "5KtP3yZ"}`))
	})
	mux.HandleFunc("/api/orders/5KtP3yZ", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "filled"}`))
	})

	return httptest.NewServer(mux), &submitted
}

func TestNewMarket_LoadsMetadata(t *testing.T) {
	srv, _ := newGateway(t)
	defer srv.Close()

	m, err := openbook.NewMarket(context.Background(), srv.URL, marketAddr, ownerAddr)
	require.NoError(t, err)
	assert.Equal(t, marketAddr, m.Address())
}

func TestNewMarket_InvalidAddressIsFatal(t *testing.T) {
	srv, _ := newGateway(t)
	defer srv.Close()

	_, err := openbook.NewMarket(context.Background(), srv.URL, "not-base58-0OIl", ownerAddr)
	require.Error(t, err)

	// Base-58 válido pero no es una pubkey de 32 bytes.
	_, err = openbook.NewMarket(context.Background(), srv.URL, "abc", ownerAddr)
	require.Error(t, err)
}

func TestNewMarket_GatewayDownIsFatal(t *testing.T) {
	srv, _ := newGateway(t)
	srv.Close() // gateway caído desde el arranque

	_, err := openbook.NewMarket(context.Background(), srv.URL, marketAddr, ownerAddr)
	require.Error(t, err)
}

func TestGetPrice(t *testing.T) {
	srv, _ := newGateway(t)
	defer srv.Close()

	m, err := openbook.NewMarket(context.Background(), srv.URL, marketAddr, ownerAddr)
	require.NoError(t, err)

	price, err := m.GetPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100.0, price)
}

func TestSubmitOrder(t *testing.T) {
	srv, submitted := newGateway(t)
	defer srv.Close()

	m, err := openbook.NewMarket(context.Background(), srv.URL, marketAddr, ownerAddr)
	require.NoError(t, err)

	placed, err := m.SubmitOrder(context.Background(), domain.OrderRequest{
		Side:  domain.SideBuy,
		Price: 115,
		Size:  0.01,
	})
	require.NoError(t, err)
	assert.Equal(t, "5KtP3yZ", placed.Signature)

	require.Len(t, *submitted, 1)
	order := (*submitted)[0]
	assert.Equal(t, "buy", order["side"])
	assert.Equal(t, "limit", order["type"])
	assert.Equal(t, marketAddr, order["market"])
	assert.Equal(t, ownerAddr, order["owner"])
	assert.Equal(t, 115.0, order["price"])
}

func TestSubmitOrder_RejectedByVenue(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/markets/"+marketAddr, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "insufficient funds"}`, http.StatusBadRequest)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m, err := openbook.NewMarket(context.Background(), srv.URL, marketAddr, ownerAddr)
	require.NoError(t, err)

	_, err = m.SubmitOrder(context.Background(), domain.OrderRequest{Side: domain.SideSell, Price: 345, Size: 0.0085})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOrderSubmission)
}

func TestOrderStatus(t *testing.T) {
	srv, _ := newGateway(t)
	defer srv.Close()

	m, err := openbook.NewMarket(context.Background(), srv.URL, marketAddr, ownerAddr)
	require.NoError(t, err)

	state, err := m.OrderStatus(context.Background(), "5KtP3yZ")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderFilled, state)
}
