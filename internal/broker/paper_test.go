package broker

import (
	"testing"

	"dex-trading-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPrices is a static PriceSource for tests.
type fixedPrices map[string]float64

func (p fixedPrices) Price(symbol string) (float64, bool) {
	v, ok := p[symbol]
	return v, ok
}

func newTestBroker(confirmAfter int, prices fixedPrices) *PaperBroker {
	cfg := models.PaperConfig{Balance: 1000, ConfirmAfterPolls: confirmAfter}
	return NewPaperBroker("spot", "USDC", cfg, prices, nil)
}

func TestPlaceOrderBuildsTokenMapping(t *testing.T) {
	b := newTestBroker(0, fixedPrices{"WHBARUSDC": 0.05})
	plan := &models.OrderPlan{
		Pair:     models.Pair{"USDC", "WHBAR"},
		Side:     models.SideBuy,
		Action:   models.ActionOpen,
		Kind:     models.OrderKindMarket,
		Quantity: 100,
	}

	order, err := b.PlaceOrder(plan)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.NotEmpty(t, order.Tx)
	assert.Equal(t, "WHBARUSDC", order.Symbol)
	assert.Equal(t, "USDC", order.TokenIn)
	assert.Equal(t, "WHBAR", order.TokenOut)
	assert.Equal(t, models.OrderStatusNew, order.Status)
}

func TestPlaceOrderSizesFromEstimatedAmount(t *testing.T) {
	b := newTestBroker(0, fixedPrices{"WHBARUSDC": 0.05})
	plan := &models.OrderPlan{
		Pair:            models.Pair{"USDC", "WHBAR"},
		Side:            models.SideBuy,
		Kind:            models.OrderKindMarket,
		EstimatedAmount: 10,
	}

	order, err := b.PlaceOrder(plan)
	require.NoError(t, err)

	res, err := b.UpdateOrder(order, true)
	require.NoError(t, err)
	assert.Equal(t, Confirmed, res.State)
	assert.InDelta(t, 10.0, order.AmountIn, 1e-9)
	assert.InDelta(t, 200.0, order.AmountOut, 1e-9)
}

func TestPlaceOrderWithoutPriceFails(t *testing.T) {
	b := newTestBroker(0, fixedPrices{})
	plan := &models.OrderPlan{
		Pair:     models.Pair{"USDC", "WHBAR"},
		Side:     models.SideBuy,
		Kind:     models.OrderKindMarket,
		Quantity: 1,
	}
	_, err := b.PlaceOrder(plan)
	assert.Error(t, err)
}

func TestUpdateOrderStaysPendingUntilPolled(t *testing.T) {
	b := newTestBroker(2, fixedPrices{"WHBARUSDC": 0.05})
	plan := &models.OrderPlan{
		Pair:     models.Pair{"USDC", "WHBAR"},
		Side:     models.SideBuy,
		Kind:     models.OrderKindMarket,
		Quantity: 100,
	}
	order, err := b.PlaceOrder(plan)
	require.NoError(t, err)

	res, err := b.UpdateOrder(order, false)
	require.NoError(t, err)
	assert.Equal(t, Pending, res.State)
	assert.Equal(t, models.OrderStatusNew, order.Status)

	res, err = b.UpdateOrder(order, false)
	require.NoError(t, err)
	assert.Equal(t, Pending, res.State)

	res, err = b.UpdateOrder(order, false)
	require.NoError(t, err)
	assert.Equal(t, Confirmed, res.State)
	assert.Equal(t, models.OrderStatusFilled, order.Status)
	assert.False(t, order.FilledTime.IsZero())
}

func TestUpdateOrderWaitConfirmsImmediately(t *testing.T) {
	b := newTestBroker(5, fixedPrices{"WHBARUSDC": 0.05})
	plan := &models.OrderPlan{
		Pair:     models.Pair{"USDC", "WHBAR"},
		Side:     models.SideBuy,
		Kind:     models.OrderKindMarket,
		Quantity: 100,
	}
	order, err := b.PlaceOrder(plan)
	require.NoError(t, err)

	res, err := b.UpdateOrder(order, true)
	require.NoError(t, err)
	assert.Equal(t, Confirmed, res.State)
}

func TestUpdateOrderIsIdempotentOnTerminalOrders(t *testing.T) {
	b := newTestBroker(0, fixedPrices{"WHBARUSDC": 0.05})
	plan := &models.OrderPlan{
		Pair:     models.Pair{"USDC", "WHBAR"},
		Side:     models.SideBuy,
		Kind:     models.OrderKindMarket,
		Quantity: 100,
	}
	order, err := b.PlaceOrder(plan)
	require.NoError(t, err)
	_, err = b.UpdateOrder(order, true)
	require.NoError(t, err)

	before := *order
	res, err := b.UpdateOrder(order, false)
	require.NoError(t, err)
	assert.Equal(t, Confirmed, res.State)
	assert.Equal(t, before, *order, "terminal orders must not change")
}

func TestFillAppliesSlippageAndFees(t *testing.T) {
	cfg := models.PaperConfig{Balance: 1000, SlippageRate: 0.01, FeeRate: 0.002}
	b := NewPaperBroker("spot", "USDC", cfg, fixedPrices{"WHBARUSDC": 0.05}, nil)

	plan := &models.OrderPlan{
		Pair:     models.Pair{"USDC", "WHBAR"},
		Side:     models.SideBuy,
		Kind:     models.OrderKindMarket,
		Quantity: 100,
	}
	order, err := b.PlaceOrder(plan)
	require.NoError(t, err)
	_, err = b.UpdateOrder(order, true)
	require.NoError(t, err)

	assert.InDelta(t, 0.0505, order.Price, 1e-9)
	assert.InDelta(t, 5.05, order.AmountIn, 1e-9)
	assert.InDelta(t, 99.8, order.AmountOut, 1e-9)
}

func TestRoundTripUpdatesBalance(t *testing.T) {
	prices := fixedPrices{"WHBARUSDC": 0.05}
	b := newTestBroker(0, prices)

	buy := &models.OrderPlan{
		Pair:     models.Pair{"USDC", "WHBAR"},
		Side:     models.SideBuy,
		Kind:     models.OrderKindMarket,
		Quantity: 100,
	}
	order, err := b.PlaceOrder(buy)
	require.NoError(t, err)
	_, err = b.UpdateOrder(order, true)
	require.NoError(t, err)

	balance, pending, err := b.CheckBalance()
	require.NoError(t, err)
	assert.Zero(t, pending)
	// No fees or slippage configured: value is conserved.
	assert.InDelta(t, 1000.0, balance, 1e-9)

	sell := &models.OrderPlan{
		Pair:     models.Pair{"USDC", "WHBAR"},
		Side:     models.SideSell,
		Kind:     models.OrderKindMarket,
		Quantity: order.AmountOut,
	}
	closeOrder, err := b.PlaceOrder(sell)
	require.NoError(t, err)
	_, err = b.UpdateOrder(closeOrder, true)
	require.NoError(t, err)

	balance, _, err = b.CheckBalance()
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, balance, 1e-9)
}

func TestEstimateMultiHop(t *testing.T) {
	prices := fixedPrices{"WHBARUSDC": 0.05, "SAUCEWHBAR": 2.0}
	b := newTestBroker(0, prices)

	path, amounts, err := b.Estimate([]string{"USDC", "WHBAR", "SAUCE"}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"USDC", "WHBAR", "SAUCE"}, path)
	require.Len(t, amounts, 3)
	assert.InDelta(t, 10.0, amounts[0], 1e-9)
	assert.InDelta(t, 200.0, amounts[1], 1e-9) // 10 USDC / 0.05
	assert.InDelta(t, 100.0, amounts[2], 1e-9) // 200 WHBAR / 2.0
}

func TestEstimateUnknownHop(t *testing.T) {
	b := newTestBroker(0, fixedPrices{"WHBARUSDC": 0.05})
	_, _, err := b.Estimate([]string{"USDC", "DOGE"}, 10)
	assert.Error(t, err)
}

func TestGetCurrentPrice(t *testing.T) {
	b := newTestBroker(0, fixedPrices{"WHBARUSDC": 0.05})

	price, err := b.GetCurrentPrice(models.Pair{"USDC", "WHBAR"})
	require.NoError(t, err)
	assert.Equal(t, 0.05, price)

	_, err = b.GetCurrentPrice(models.Pair{"USDC", "DOGE"})
	assert.Error(t, err)
}
