// Package broker defines the capability contract between the scheduler and
// the execution venue, and ships a simulated venue for paper trading.
package broker

import "dex-trading-bot/internal/models"

// ConfirmState is the tri-state outcome of a fill-confirmation poll.
type ConfirmState int

const (
	// Pending means confirmation data is not yet available. Not an error;
	// the scheduler re-polls on the next tick.
	Pending ConfirmState = iota
	// Confirmed means the order's fill data has been written into the order.
	Confirmed
	// Failed means the order terminated without a fill.
	Failed
)

func (s ConfirmState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ConfirmResult carries the poll outcome and, for Failed, the venue reason.
type ConfirmResult struct {
	State  ConfirmState
	Reason string
}

// Broker is the narrow contract the scheduler depends on. Implementations
// own all venue specifics: transaction construction, receipts, unit
// conversion and price paths.
type Broker interface {
	// CheckBalance refreshes on-venue holdings and returns their value in
	// the settlement currency plus the value tied up in unconfirmed orders.
	// It mutates no scheduler state.
	CheckBalance() (balance, pendingValue float64, err error)

	// PlaceOrder executes a plan against the venue. The returned order has
	// at least its id, side, pair and tx populated; fill fields may be
	// written later by UpdateOrder.
	PlaceOrder(plan *models.OrderPlan) (*models.Order, error)

	// UpdateOrder polls for confirmation of the order and, when available,
	// mutates the order in place (price, amounts, status, filled time).
	// With waitForConfirmation it blocks until the venue resolves the order.
	UpdateOrder(order *models.Order, waitForConfirmation bool) (ConfirmResult, error)

	// Estimate quotes a multi-hop path: for amountIn of path[0] it returns
	// the resolved path and the running output amounts per hop.
	Estimate(path []string, amountIn float64) ([]string, []float64, error)

	// GetCurrentPrice returns the venue price of the pair's base token in
	// quote units. Used for waiting-queue price-condition checks.
	GetCurrentPrice(pair models.Pair) (float64, error)
}

// PriceSource supplies current prices by symbol. The websocket feed
// implements it; tests use a fixed map.
type PriceSource interface {
	Price(symbol string) (float64, bool)
}
