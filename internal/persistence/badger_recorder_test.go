package persistence

import (
	"testing"
	"time"

	"dex-trading-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T) *BadgerRecorder {
	t.Helper()
	r, err := NewBadgerRecorder(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSaveAndReadOrder(t *testing.T) {
	r := newTestRecorder(t)

	order, err := models.NewOrder("ord-1", "spot", models.Pair{"USDC", "WHBAR"}, models.SideBuy, models.OrderKindMarket)
	require.NoError(t, err)
	order.Price = 0.05
	order.AmountIn = 5
	order.AmountOut = 100
	order.CreateTime = time.Now().Truncate(time.Millisecond)

	require.NoError(t, r.SaveOrder(order))

	got, err := r.Order("ord-1")
	require.NoError(t, err)
	assert.Equal(t, order.Symbol, got.Symbol)
	assert.Equal(t, order.Price, got.Price)
	assert.Equal(t, order.TokenIn, got.TokenIn)
	assert.Equal(t, order.TokenOut, got.TokenOut)
}

func TestSaveOrderUpserts(t *testing.T) {
	r := newTestRecorder(t)

	order, err := models.NewOrder("ord-2", "spot", models.Pair{"USDC", "WHBAR"}, models.SideBuy, models.OrderKindMarket)
	require.NoError(t, err)
	require.NoError(t, r.SaveOrder(order))

	order.Status = models.OrderStatusFilled
	order.AmountIn = 42
	require.NoError(t, r.SaveOrder(order))

	got, err := r.Order("ord-2")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFilled, got.Status)
	assert.Equal(t, 42.0, got.AmountIn)
}

func TestSaveAndReadTrade(t *testing.T) {
	r := newTestRecorder(t)

	trade := models.NewTrade("trd-1")
	open, err := models.NewOrder("ord-3", "spot", models.Pair{"USDC", "WHBAR"}, models.SideBuy, models.OrderKindMarket)
	require.NoError(t, err)
	trade.SetOpenOrder(open)
	trade.Status = models.TradeStatusOpening
	trade.ReservedAmount = 40

	require.NoError(t, r.SaveTrade("bot-1", trade))

	got, err := r.Trade("trd-1")
	require.NoError(t, err)
	assert.Equal(t, "bot-1", got.BotID)
	assert.Equal(t, models.TradeStatusOpening, got.Trade.Status)
	assert.Equal(t, models.DirectionLong, got.Trade.Direction)
	assert.Equal(t, 40.0, got.Trade.ReservedAmount)
	require.NotNil(t, got.Trade.OpenOrder)
	assert.Equal(t, "ord-3", got.Trade.OpenOrder.ID)
}

func TestReadMissingRecord(t *testing.T) {
	r := newTestRecorder(t)

	_, err := r.Order("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Trade("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
