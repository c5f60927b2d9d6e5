package models

import (
	"fmt"
	"time"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Action says whether a plan opens a new position or closes an existing one.
type Action string

const (
	ActionOpen  Action = "open"
	ActionClose Action = "close"
)

// OrderKind distinguishes immediate execution from price-conditioned execution.
type OrderKind string

const (
	OrderKindMarket OrderKind = "market"
	OrderKindLimit  OrderKind = "limit"
)

// OrderStatus is the venue-reported state of an order.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether the status can no longer change.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusFilled, OrderStatusRejected, OrderStatusCancelled:
		return true
	}
	return false
}

// TradeStatus is the lifecycle state of a Trade.
type TradeStatus string

const (
	TradeStatusWaiting   TradeStatus = "waiting"
	TradeStatusOpening   TradeStatus = "opening"
	TradeStatusOpen      TradeStatus = "open"
	TradeStatusClosing   TradeStatus = "closing"
	TradeStatusClosed    TradeStatus = "closed"
	TradeStatusCancelled TradeStatus = "cancelled"
)

// Direction of a position: long if the opening order bought the base token.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Pair is an ordered token pair: [quote, base]. For ["USDC", "WHBAR"] the bot
// trades WHBAR against USDC and the symbol is "WHBARUSDC".
type Pair [2]string

// Quote returns the settlement-side token.
func (p Pair) Quote() string { return p[0] }

// Base returns the traded token.
func (p Pair) Base() string { return p[1] }

// Symbol renders the pair as base+quote, e.g. "WHBARUSDC".
func (p Pair) Symbol() string { return p[1] + p[0] }

// OrderPlan is an unexecuted trading intent. It is immutable once submitted
// to the scheduler except for the scheduler-managed Status and ExpiryTime.
type OrderPlan struct {
	Pair   Pair   `json:"pair"`
	Side   Side   `json:"side"`
	Action Action `json:"action"`
	Kind   OrderKind `json:"kind"`

	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`       // reference price used for sizing
	LimitPrice float64 `json:"limit_price"` // required for limit plans

	// EstimatedAmount is the projected capital commitment in quote units.
	// Resolved to Quantity*Price when left zero.
	EstimatedAmount float64 `json:"estimated_amount"`

	// TimeLimit bounds a limit plan's stay in the waiting queue. Zero means
	// the bot's default order timeout.
	TimeLimit time.Duration `json:"time_limit"`

	// TradeID optionally targets one specific open trade on close.
	TradeID string `json:"trade_id,omitempty"`

	// Scheduler-managed.
	Status     string    `json:"status,omitempty"`
	ExpiryTime time.Time `json:"expiry_time,omitempty"`
}

func (p *OrderPlan) String() string {
	return fmt.Sprintf("OrderPlan(%s %s %s)", p.Action, p.Side, p.Pair.Symbol())
}

// Order is one concrete execution attempt against the venue, derived from a
// plan. It is created when the plan is submitted, mutated only by the
// broker's fill confirmation, and immutable once its status is terminal.
type Order struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Pair     Pair   `json:"pair"`
	Symbol   string `json:"symbol"`
	Side     Side   `json:"side"`

	// TokenIn is spent, TokenOut is acquired. A buy spends quote for base,
	// a sell spends base for quote.
	TokenIn  string `json:"token_in"`
	TokenOut string `json:"token_out"`

	Status    OrderStatus `json:"status"`
	Kind      OrderKind   `json:"kind"`
	Price     float64     `json:"price"`
	AmountIn  float64     `json:"amount_in"`
	AmountOut float64     `json:"amount_out"`

	CreateTime time.Time `json:"create_time"`
	FilledTime time.Time `json:"filled_time"`

	// Venue transaction reference, populated by the broker.
	Tx   string `json:"tx,omitempty"`
	Link string `json:"link,omitempty"`
}

// NewOrder builds an order with the side-determined token mapping applied.
func NewOrder(id, category string, pair Pair, side Side, kind OrderKind) (*Order, error) {
	o := &Order{
		ID:       id,
		Category: category,
		Pair:     pair,
		Symbol:   pair.Symbol(),
		Side:     side,
		Kind:     kind,
		Status:   OrderStatusNew,
	}
	switch side {
	case SideBuy:
		o.TokenIn, o.TokenOut = pair.Quote(), pair.Base()
	case SideSell:
		o.TokenIn, o.TokenOut = pair.Base(), pair.Quote()
	default:
		return nil, fmt.Errorf("order side must be %q or %q, got %q", SideBuy, SideSell, side)
	}
	return o, nil
}

func (o *Order) String() string {
	return fmt.Sprintf("Order(%s %s %s %s tx=%s)", o.ID, o.Symbol, o.Side, o.Status, o.Tx)
}

// Trade is a position spanning one opening order and, once a close has been
// initiated, one closing order. Trades are owned exclusively by the
// scheduler and are never deleted; terminal trades move to the history list.
type Trade struct {
	ID        string      `json:"id"`
	Status    TradeStatus `json:"status"`
	Direction Direction   `json:"direction"`

	OpenOrder  *Order `json:"open_order,omitempty"`
	CloseOrder *Order `json:"close_order,omitempty"`

	// Plan is retained only while the trade sits in the waiting queue.
	Plan *OrderPlan `json:"plan,omitempty"`

	// ReservedAmount is the ledger reservation made when the trade was
	// opened, in quote units. Needed at commit time to absorb slippage.
	ReservedAmount float64 `json:"reserved_amount"`

	InvestedAmount float64   `json:"invested_amount"`
	PositionSize   float64   `json:"position_size"`
	EntryPrice     float64   `json:"entry_price"`
	EntryTime      time.Time `json:"entry_time"`

	NetReturn float64   `json:"net_return"`
	Profit    float64   `json:"profit"`
	ExitPrice float64   `json:"exit_price"`
	ExitTime  time.Time `json:"exit_time"`
}

// NewTrade creates an empty trade in the given id.
func NewTrade(id string) *Trade {
	return &Trade{ID: id}
}

// SetOpenOrder attaches the opening order and fixes the trade direction.
func (t *Trade) SetOpenOrder(o *Order) {
	t.OpenOrder = o
	if o.Side == SideBuy {
		t.Direction = DirectionLong
	} else {
		t.Direction = DirectionShort
	}
}

// SetCloseOrder attaches the closing order.
func (t *Trade) SetCloseOrder(o *Order) {
	t.CloseOrder = o
}

// ApplyOpenFill derives the position figures from the filled opening order
// and marks the trade open. The opening order must be filled.
func (t *Trade) ApplyOpenFill() {
	o := t.OpenOrder
	if o.Side == SideBuy {
		t.InvestedAmount = o.AmountIn
		t.PositionSize = o.AmountOut
	} else {
		t.InvestedAmount = o.AmountOut
		t.PositionSize = o.AmountIn
	}
	t.EntryPrice = o.Price
	t.EntryTime = o.FilledTime
	t.Status = TradeStatusOpen
}

// ApplyCloseFill derives the realized return from the filled closing order
// and marks the trade closed. The closing order must be filled.
func (t *Trade) ApplyCloseFill() {
	c := t.CloseOrder
	if c.Side == SideSell {
		t.NetReturn = c.AmountOut
	} else {
		t.NetReturn = c.AmountIn
	}
	if t.Direction == DirectionLong {
		t.Profit = c.AmountOut - t.OpenOrder.AmountIn
	} else {
		t.Profit = t.OpenOrder.AmountOut - c.AmountIn
	}
	t.ExitPrice = c.Price
	t.ExitTime = c.FilledTime
	t.Status = TradeStatusClosed
}

// Symbol returns the symbol of the trade's pair, falling back to the waiting
// plan when no order has been placed yet.
func (t *Trade) Symbol() string {
	if t.OpenOrder != nil {
		return t.OpenOrder.Symbol
	}
	if t.Plan != nil {
		return t.Plan.Pair.Symbol()
	}
	return ""
}

func (t *Trade) String() string {
	return fmt.Sprintf("Trade(%s %s %s %s)", t.ID, t.Symbol(), t.Direction, t.Status)
}
