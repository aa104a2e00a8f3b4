package notify_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitegun/snipebot/internal/adapters/notify"
	"github.com/mitegun/snipebot/internal/domain"
)

func makePos(address string, status domain.PositionStatus) domain.Position {
	return domain.Position{
		ID:          "p-" + address,
		Address:     address,
		Chain:       domain.ChainSOL,
		Score:       90,
		Intent:      domain.TradeIntent{MoonbagFraction: 0.15},
		EntryPrice:  115,
		Size:        0.01,
		TargetPrice: 345,
		SellSize:    0.0085,
		Status:      status,
	}
}

func TestConsole_Notify_Empty(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	require.NoError(t, n.Notify(context.Background(), nil))
	assert.Contains(t, buf.String(), "no positions this cycle")
}

func TestConsole_Notify_Compact(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	positions := []domain.Position{
		makePos("So11111111111111111111111111111111111111112", domain.StatusPartiallyExited),
		makePos("0x1234567890123456789012345678901234567890", domain.StatusFailed),
	}
	require.NoError(t, n.Notify(context.Background(), positions))

	out := buf.String()
	assert.Contains(t, out, "2 positions")
	assert.Contains(t, out, "exited:1")
	assert.Contains(t, out, "failed:1")
}

func TestConsole_Notify_Table(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	pos := makePos("So11111111111111111111111111111111111111112", domain.StatusPartiallyExited)
	require.NoError(t, n.Notify(context.Background(), []domain.Position{pos}))

	out := buf.String()
	assert.Contains(t, out, "345.0000")
	assert.Contains(t, out, "0.0085")
	assert.Contains(t, out, "partially_exited")
}

func TestConsole_Notify_FailedReasonShown(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	pos := makePos("0x1234567890123456789012345678901234567890", domain.StatusFailed)
	pos.Reason = "order submission failed"
	require.NoError(t, n.Notify(context.Background(), []domain.Position{pos}))

	assert.Contains(t, buf.String(), "failed:")
}
