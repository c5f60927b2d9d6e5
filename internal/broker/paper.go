package broker

import (
	"fmt"
	"time"

	"dex-trading-bot/internal/ids"
	"dex-trading-bot/internal/models"

	"go.uber.org/zap"
)

// PaperBroker simulates the execution venue for dry runs. Placements are
// swaps at the fed price adjusted for slippage and fees; confirmation can be
// delayed a configurable number of polls to exercise the pending path.
type PaperBroker struct {
	category string
	currency string
	cfg      models.PaperConfig
	prices   PriceSource
	logger   *zap.Logger

	cash      float64
	positions map[string]float64 // token -> quantity held

	orders map[string]*paperOrder
	clock  func() time.Time
}

type paperOrder struct {
	order *models.Order
	plan  models.OrderPlan
	polls int
}

// NewPaperBroker creates a simulated venue funded with cfg.Balance. The
// settlement currency is needed to value held positions.
func NewPaperBroker(category, currency string, cfg models.PaperConfig, prices PriceSource, logger *zap.Logger) *PaperBroker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaperBroker{
		category:  category,
		currency:  currency,
		cfg:       cfg,
		prices:    prices,
		logger:    logger,
		cash:      cfg.Balance,
		positions: make(map[string]float64),
		orders:    make(map[string]*paperOrder),
		clock:     time.Now,
	}
}

// SetClock overrides the broker clock. Tests only.
func (b *PaperBroker) SetClock(clock func() time.Time) { b.clock = clock }

// CheckBalance values cash plus every held position at the current price.
func (b *PaperBroker) CheckBalance() (float64, float64, error) {
	balance := b.cash
	for token, qty := range b.positions {
		price, ok := b.tokenPrice(token)
		if !ok {
			continue
		}
		balance += qty * price
	}

	var pendingValue float64
	for _, po := range b.orders {
		if po.order.Status.IsTerminal() {
			continue
		}
		pendingValue += po.plan.EstimatedAmount
	}
	return balance, pendingValue, nil
}

// PlaceOrder accepts the plan and books an unconfirmed order for it. The
// fill itself is computed when UpdateOrder confirms.
func (b *PaperBroker) PlaceOrder(plan *models.OrderPlan) (*models.Order, error) {
	price, err := b.GetCurrentPrice(plan.Pair)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	qty := plan.Quantity
	if qty == 0 && plan.EstimatedAmount > 0 && price > 0 {
		qty = plan.EstimatedAmount / price
	}
	if qty <= 0 {
		return nil, fmt.Errorf("place order: no quantity for %s", plan)
	}

	order, err := models.NewOrder(ids.New(), b.category, plan.Pair, plan.Side, plan.Kind)
	if err != nil {
		return nil, err
	}
	order.CreateTime = b.clock()
	order.Tx = "paper-" + order.ID

	planCopy := *plan
	planCopy.Quantity = qty
	b.orders[order.ID] = &paperOrder{order: order, plan: planCopy}

	b.logger.Debug("paper order placed",
		zap.String("id", order.ID),
		zap.String("symbol", order.Symbol),
		zap.String("side", string(order.Side)),
		zap.Float64("qty", qty))
	return order, nil
}

// UpdateOrder confirms the order once it has been polled past the configured
// delay, or immediately when waitForConfirmation is set.
func (b *PaperBroker) UpdateOrder(order *models.Order, waitForConfirmation bool) (ConfirmResult, error) {
	if order.Status.IsTerminal() {
		return ConfirmResult{State: Confirmed}, nil
	}
	po, ok := b.orders[order.ID]
	if !ok {
		return ConfirmResult{State: Failed, Reason: "unknown order"}, nil
	}

	po.polls++
	if !waitForConfirmation && po.polls <= b.cfg.ConfirmAfterPolls {
		return ConfirmResult{State: Pending}, nil
	}

	price, err := b.GetCurrentPrice(order.Pair)
	if err != nil {
		return ConfirmResult{State: Pending}, nil
	}
	b.fill(po, price)
	return ConfirmResult{State: Confirmed}, nil
}

// fill executes the booked swap at price and writes the result into the order.
func (b *PaperBroker) fill(po *paperOrder, price float64) {
	order, qty := po.order, po.plan.Quantity

	if order.Side == models.SideBuy {
		execPrice := price * (1 + b.cfg.SlippageRate)
		order.Price = execPrice
		order.AmountIn = qty * execPrice
		order.AmountOut = qty * (1 - b.cfg.FeeRate)
		b.cash -= order.AmountIn
		b.positions[order.Pair.Base()] += order.AmountOut
	} else {
		execPrice := price * (1 - b.cfg.SlippageRate)
		order.Price = execPrice
		order.AmountIn = qty
		order.AmountOut = qty * execPrice * (1 - b.cfg.FeeRate)
		b.positions[order.Pair.Base()] -= order.AmountIn
		b.cash += order.AmountOut
	}

	order.Status = models.OrderStatusFilled
	order.FilledTime = b.clock()
	delete(b.orders, order.ID)

	b.logger.Debug("paper order filled",
		zap.String("id", order.ID),
		zap.Float64("price", order.Price),
		zap.Float64("amount_in", order.AmountIn),
		zap.Float64("amount_out", order.AmountOut))
}

// Estimate walks the path hop by hop using current prices.
func (b *PaperBroker) Estimate(path []string, amountIn float64) ([]string, []float64, error) {
	if len(path) < 2 {
		return nil, nil, fmt.Errorf("estimate: path needs at least two tokens")
	}
	amounts := make([]float64, 0, len(path))
	amounts = append(amounts, amountIn)
	current := amountIn
	for i := 0; i < len(path)-1; i++ {
		out, err := b.hop(path[i], path[i+1], current)
		if err != nil {
			return nil, nil, err
		}
		amounts = append(amounts, out)
		current = out
	}
	return path, amounts, nil
}

// hop converts an amount of tokenIn into tokenOut using whichever direction
// of the pair has a price.
func (b *PaperBroker) hop(tokenIn, tokenOut string, amount float64) (float64, error) {
	if price, ok := b.prices.Price(tokenOut + tokenIn); ok && price > 0 {
		return amount / price, nil
	}
	if price, ok := b.prices.Price(tokenIn + tokenOut); ok {
		return amount * price, nil
	}
	return 0, fmt.Errorf("estimate: no price for hop %s->%s", tokenIn, tokenOut)
}

// GetCurrentPrice returns the fed price for the pair's symbol.
func (b *PaperBroker) GetCurrentPrice(pair models.Pair) (float64, error) {
	price, ok := b.prices.Price(pair.Symbol())
	if !ok {
		return 0, fmt.Errorf("no price for %s", pair.Symbol())
	}
	return price, nil
}

// tokenPrice values one unit of token in the settlement currency.
func (b *PaperBroker) tokenPrice(token string) (float64, bool) {
	if token == b.currency {
		return 1, true
	}
	return b.prices.Price(token + b.currency)
}
