package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPair = Pair{"USDC", "WHBAR"}

func TestPairAccessors(t *testing.T) {
	assert.Equal(t, "USDC", testPair.Quote())
	assert.Equal(t, "WHBAR", testPair.Base())
	assert.Equal(t, "WHBARUSDC", testPair.Symbol())
}

func TestNewOrderTokenMapping(t *testing.T) {
	buy, err := NewOrder("o1", "spot", testPair, SideBuy, OrderKindMarket)
	require.NoError(t, err)
	assert.Equal(t, "USDC", buy.TokenIn)
	assert.Equal(t, "WHBAR", buy.TokenOut)

	sell, err := NewOrder("o2", "spot", testPair, SideSell, OrderKindMarket)
	require.NoError(t, err)
	assert.Equal(t, "WHBAR", sell.TokenIn)
	assert.Equal(t, "USDC", sell.TokenOut)

	_, err = NewOrder("o3", "spot", testPair, Side("hold"), OrderKindMarket)
	assert.Error(t, err)
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.False(t, OrderStatusNew.IsTerminal())
	assert.True(t, OrderStatusFilled.IsTerminal())
	assert.True(t, OrderStatusRejected.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func filledOrder(t *testing.T, side Side, amountIn, amountOut, price float64) *Order {
	t.Helper()
	o, err := NewOrder("o-"+string(side), "spot", testPair, side, OrderKindMarket)
	require.NoError(t, err)
	o.AmountIn = amountIn
	o.AmountOut = amountOut
	o.Price = price
	o.Status = OrderStatusFilled
	o.FilledTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return o
}

func TestLongTradeLifecycle(t *testing.T) {
	tr := NewTrade("t1")

	open := filledOrder(t, SideBuy, 40, 800, 0.05)
	tr.SetOpenOrder(open)
	assert.Equal(t, DirectionLong, tr.Direction)

	tr.ApplyOpenFill()
	assert.Equal(t, TradeStatusOpen, tr.Status)
	assert.InDelta(t, 40, tr.InvestedAmount, 1e-9)
	assert.InDelta(t, 800, tr.PositionSize, 1e-9)
	assert.InDelta(t, 0.05, tr.EntryPrice, 1e-9)
	assert.Equal(t, open.FilledTime, tr.EntryTime)

	tr.SetCloseOrder(filledOrder(t, SideSell, 800, 48, 0.06))
	tr.ApplyCloseFill()
	assert.Equal(t, TradeStatusClosed, tr.Status)
	assert.InDelta(t, 48, tr.NetReturn, 1e-9)
	assert.InDelta(t, 8, tr.Profit, 1e-9)
	assert.InDelta(t, 0.06, tr.ExitPrice, 1e-9)
}

func TestShortTradeLifecycle(t *testing.T) {
	tr := NewTrade("t2")

	// Short: sell 800 base for 40 quote, buy back for 32.
	open := filledOrder(t, SideSell, 800, 40, 0.05)
	tr.SetOpenOrder(open)
	assert.Equal(t, DirectionShort, tr.Direction)

	tr.ApplyOpenFill()
	assert.InDelta(t, 40, tr.InvestedAmount, 1e-9)
	assert.InDelta(t, 800, tr.PositionSize, 1e-9)

	tr.SetCloseOrder(filledOrder(t, SideBuy, 32, 800, 0.04))
	tr.ApplyCloseFill()
	assert.Equal(t, TradeStatusClosed, tr.Status)
	assert.InDelta(t, 32, tr.NetReturn, 1e-9)
	assert.InDelta(t, 8, tr.Profit, 1e-9)
}

func TestTradeSymbolFallback(t *testing.T) {
	tr := NewTrade("t3")
	assert.Equal(t, "", tr.Symbol())

	tr.Plan = &OrderPlan{Pair: testPair}
	assert.Equal(t, "WHBARUSDC", tr.Symbol())

	o, err := NewOrder("o9", "spot", testPair, SideBuy, OrderKindMarket)
	require.NoError(t, err)
	tr.SetOpenOrder(o)
	assert.Equal(t, "WHBARUSDC", tr.Symbol())
}
