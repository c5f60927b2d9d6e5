// Package fund keeps the per-token capital bookkeeping for one bot instance.
//
// Every token the bot trades has an entry splitting its target allocation
// into cash (spendable), pending (reserved against an in-flight opening
// order) and invested (committed to open positions). All amounts are in the
// bot's settlement currency. The ledger is mutated only by the scheduler
// goroutine, so it carries no locking.
package fund

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientCash is returned by Reserve when the token's cash cannot
// cover the requested amount. The check runs before any venue call, so a
// rejected reservation never reaches the venue.
var ErrInsufficientCash = errors.New("insufficient cash in fund")

// ErrUnknownToken is returned for tokens the ledger was never configured with.
var ErrUnknownToken = errors.New("token not configured in fund")

// Entry is the allocation state of a single token.
type Entry struct {
	Weight   float64 `json:"weight"`
	Total    float64 `json:"total"`
	Cash     float64 `json:"cash"`
	Pending  float64 `json:"pending"`
	Invested float64 `json:"invested"`
}

// Ledger tracks allocations for every configured token against the bot's
// invest amount.
type Ledger struct {
	investAmount float64
	entries      map[string]*Entry
}

// NewLedger creates an empty ledger for the given invest amount.
func NewLedger(investAmount float64) *Ledger {
	return &Ledger{
		investAmount: investAmount,
		entries:      make(map[string]*Entry),
	}
}

// Configure sets or updates the target weight of each token in weights and
// recomputes every token's total from the new weight distribution. Newly
// introduced tokens start with no cash, pending or invested capital; the
// recompute then assigns each token the part of its total not already
// reserved or committed as cash.
func (l *Ledger) Configure(weights map[string]float64) {
	for token, weight := range weights {
		if e, ok := l.entries[token]; ok {
			e.Weight = weight
		} else {
			l.entries[token] = &Entry{Weight: weight}
		}
	}
	l.recompute()
}

// recompute refreshes total and cash for every entry. Unlike the naive
// total-minus-invested formula, pending capital is subtracted as well so a
// reconfigure while orders are in flight cannot double-count reserved money.
func (l *Ledger) recompute() {
	var totalWeight float64
	for _, e := range l.entries {
		totalWeight += e.Weight
	}
	if totalWeight == 0 {
		return
	}
	for _, e := range l.entries {
		e.Total = e.Weight * l.investAmount / totalWeight
		e.Cash = e.Total - e.Invested - e.Pending
	}
}

// Reserve moves amount from cash to pending ahead of an opening order.
func (l *Ledger) Reserve(token string, amount float64) error {
	e, ok := l.entries[token]
	if !ok {
		return fmt.Errorf("reserve %s: %w", token, ErrUnknownToken)
	}
	if e.Cash < amount {
		return fmt.Errorf("reserve %s: need %v, have %v: %w", token, amount, e.Cash, ErrInsufficientCash)
	}
	e.Cash -= amount
	e.Pending += amount
	return nil
}

// Commit settles a filled opening order: the reservation leaves pending, the
// actually filled amount becomes invested, and the difference between the
// two returns to cash. The delta absorbs slippage in either direction.
func (l *Ledger) Commit(token string, reserved, actual float64) error {
	e, ok := l.entries[token]
	if !ok {
		return fmt.Errorf("commit %s: %w", token, ErrUnknownToken)
	}
	e.Pending -= reserved
	e.Invested += actual
	e.Cash += reserved - actual
	return nil
}

// Release returns a reservation to cash on the timeout or cancellation path.
func (l *Ledger) Release(token string, reserved float64) error {
	e, ok := l.entries[token]
	if !ok {
		return fmt.Errorf("release %s: %w", token, ErrUnknownToken)
	}
	e.Pending -= reserved
	e.Cash += reserved
	return nil
}

// Settle applies a filled closing order: the invested capital of the
// position is removed (floored at zero) and the realized net return is
// credited to cash.
func (l *Ledger) Settle(token string, invested, netReturn float64) error {
	e, ok := l.entries[token]
	if !ok {
		return fmt.Errorf("settle %s: %w", token, ErrUnknownToken)
	}
	e.Invested = math.Max(0, e.Invested-invested)
	e.Cash += netReturn
	return nil
}

// Entry returns a copy of the token's allocation state.
func (l *Ledger) Entry(token string) (Entry, bool) {
	e, ok := l.entries[token]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Cash returns the token's immediately spendable amount, zero if unknown.
func (l *Ledger) Cash(token string) float64 {
	if e, ok := l.entries[token]; ok {
		return e.Cash
	}
	return 0
}

// Tokens lists every configured token.
func (l *Ledger) Tokens() []string {
	tokens := make([]string, 0, len(l.entries))
	for token := range l.entries {
		tokens = append(tokens, token)
	}
	return tokens
}
