package paper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitegun/snipebot/internal/adapters/paper"
	"github.com/mitegun/snipebot/internal/domain"
)

func TestVenue_PriceAndOrders(t *testing.T) {
	v := paper.New(100)
	ctx := context.Background()

	price, err := v.GetPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100.0, price)

	placed, err := v.SubmitOrder(ctx, domain.OrderRequest{Side: domain.SideBuy, Price: 115, Size: 0.01})
	require.NoError(t, err)
	assert.NotEmpty(t, placed.Signature)

	state, err := v.OrderStatus(ctx, placed.Signature)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderFilled, state)

	orders := v.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, domain.SideBuy, orders[0].Side)
}

func TestVenue_SetPrice(t *testing.T) {
	v := paper.New(100)
	v.SetPrice(42)

	price, err := v.GetPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.0, price)
}
