// Package bot contains the trading bot orchestrator: the OrderPlan -> Order
// -> Trade lifecycle, the three processing queues, and the fund ledger
// transitions that keep capital allocation consistent across asynchronous
// venue interactions.
package bot

import (
	"errors"
	"fmt"
	"time"

	"dex-trading-bot/internal/broker"
	"dex-trading-bot/internal/fund"
	"dex-trading-bot/internal/ids"
	"dex-trading-bot/internal/models"
	"dex-trading-bot/internal/persistence"
	"dex-trading-bot/internal/strategy"

	"github.com/jpillora/backoff"
	"go.uber.org/zap"
)

var (
	// ErrNoStrategy means the bot was asked to run without a strategy.
	// This is a configuration error and should terminate the process.
	ErrNoStrategy = errors.New("strategy is not set")
	// ErrUnknownOrderKind rejects plans that are neither market nor limit.
	ErrUnknownOrderKind = errors.New("unknown order kind")
)

// TradingBot owns the fund ledger, the processing queues and the open/history
// trade indices for one bot instance. All methods must be called from a
// single goroutine; ticks must not overlap.
type TradingBot struct {
	id       string
	tokens   []string
	currency string
	category string

	callBudget          float64
	investAmount        float64
	defaultOrderTimeout time.Duration

	balance      float64
	pendingMoney float64

	fund     *fund.Ledger
	broker   broker.Broker
	strategy strategy.Strategy
	recorder persistence.Recorder
	logger   *zap.SugaredLogger

	planQueue []*models.OrderPlan

	// Processing queues: trades whose current lifecycle step has not yet
	// resolved. A trade lives in exactly one of these, or in openTrades,
	// or in historyTrades.
	waiting []*models.Trade
	opening []*models.Trade
	closing []*models.Trade

	openTrades    map[string][]*models.Trade // keyed by symbol
	historyTrades []*models.Trade

	drainAttempts int
	drainDelay    time.Duration

	clock func() time.Time
	sleep func(time.Duration)
}

// New builds a bot from config and collaborators. The broker is mandatory;
// a nil recorder falls back to a no-op sink and a nil strategy is allowed
// until Run is called.
func New(cfg *models.Config, br broker.Broker, strat strategy.Strategy, rec persistence.Recorder, logger *zap.SugaredLogger) (*TradingBot, error) {
	if br == nil {
		return nil, fmt.Errorf("new bot: broker is required")
	}
	if rec == nil {
		rec = persistence.NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	b := &TradingBot{
		id:                  cfg.BotID,
		tokens:              append([]string(nil), cfg.Tokens...),
		currency:            cfg.Currency,
		category:            cfg.Category,
		callBudget:          cfg.CallBudget,
		investAmount:        cfg.InvestAmount,
		defaultOrderTimeout: time.Duration(cfg.DefaultOrderTimeoutSec) * time.Second,
		balance:             cfg.InvestAmount,
		fund:                fund.NewLedger(cfg.InvestAmount),
		broker:              br,
		strategy:            strat,
		recorder:            rec,
		logger:              logger,
		openTrades:          make(map[string][]*models.Trade),
		drainAttempts:       cfg.DrainAttempts,
		drainDelay:          time.Duration(cfg.DrainDelaySec) * time.Second,
		clock:               time.Now,
		sleep:               time.Sleep,
	}

	weights := make(map[string]float64, len(b.tokens))
	for _, token := range b.tokens {
		weights[token] = 1.0
	}
	for token, w := range cfg.FundWeights {
		weights[token] = w
	}
	b.fund.Configure(weights)

	return b, nil
}

// SetClock overrides the bot clock. Tests only.
func (b *TradingBot) SetClock(clock func() time.Time) { b.clock = clock }

// SetSleep overrides the drain/wait sleeper. Tests only.
func (b *TradingBot) SetSleep(sleep func(time.Duration)) { b.sleep = sleep }

// UpdateBalance refreshes the bot's venue balance and pending value.
func (b *TradingBot) UpdateBalance() (float64, float64, error) {
	balance, pending, err := b.broker.CheckBalance()
	if err != nil {
		return b.balance, b.pendingMoney, fmt.Errorf("check balance: %w", err)
	}
	b.balance = balance
	b.pendingMoney = pending
	return b.balance, b.pendingMoney, nil
}

// ConfigureFund updates the per-token allocation weights.
func (b *TradingBot) ConfigureFund(weights map[string]float64) {
	b.fund.Configure(weights)
}

// Buy enqueues an opening market buy. Strategies call this from Run; the
// plan executes when the bot drains its plan queue.
func (b *TradingBot) Buy(pair models.Pair, price, qty, estimatedAmount float64) {
	b.Enqueue(&models.OrderPlan{
		Pair:            pair,
		Side:            models.SideBuy,
		Action:          models.ActionOpen,
		Kind:            models.OrderKindMarket,
		Quantity:        qty,
		Price:           price,
		EstimatedAmount: estimatedAmount,
	})
}

// Sell enqueues a closing market sell for every open trade on the pair.
func (b *TradingBot) Sell(pair models.Pair, price float64) {
	b.Enqueue(&models.OrderPlan{
		Pair:   pair,
		Side:   models.SideSell,
		Action: models.ActionClose,
		Kind:   models.OrderKindMarket,
		Price:  price,
	})
}

// Enqueue adds a plan to the queue drained by ProcessOrders.
func (b *TradingBot) Enqueue(plan *models.OrderPlan) {
	b.planQueue = append(b.planQueue, plan)
}

// reservationToken returns the ledger bucket a trade on pair draws from.
// The ledger is keyed by the traded token; amounts stay in quote units.
func (b *TradingBot) reservationToken(pair models.Pair) string {
	return pair.Base()
}

// OpenTrade reserves capital for the plan and either submits it immediately
// (market) or parks it in the waiting queue with an expiry (limit).
func (b *TradingBot) OpenTrade(plan *models.OrderPlan) (*models.Trade, error) {
	if plan.Kind == "" {
		plan.Kind = models.OrderKindMarket
	}
	token := b.reservationToken(plan.Pair)

	estimated := plan.EstimatedAmount
	if estimated == 0 {
		price := plan.Price
		if price == 0 {
			price = plan.LimitPrice
		}
		estimated = plan.Quantity * price
		plan.EstimatedAmount = estimated
	}
	if estimated <= 0 {
		return nil, fmt.Errorf("open trade: cannot size %s: no estimated amount", plan)
	}

	if err := b.fund.Reserve(token, estimated); err != nil {
		return nil, fmt.Errorf("open trade: %w", err)
	}

	trade := models.NewTrade(ids.New())
	trade.ReservedAmount = estimated
	b.pendingMoney += estimated

	switch plan.Kind {
	case models.OrderKindMarket:
		order, err := b.broker.PlaceOrder(plan)
		if err != nil {
			// The venue never saw the order, so the reservation goes
			// straight back to cash.
			b.releaseReservation(token, trade)
			return nil, fmt.Errorf("open trade: place order: %w", err)
		}
		trade.SetOpenOrder(order)
		trade.Status = models.TradeStatusOpening
		b.opening = append(b.opening, trade)
		b.saveOrder(order)
		b.saveTrade(trade)

	case models.OrderKindLimit:
		timeLimit := plan.TimeLimit
		if timeLimit == 0 {
			timeLimit = b.defaultOrderTimeout
		}
		plan.ExpiryTime = b.clock().Add(timeLimit)
		plan.Status = string(models.TradeStatusWaiting)
		trade.Plan = plan
		trade.Status = models.TradeStatusWaiting
		b.waiting = append(b.waiting, trade)
		b.saveTrade(trade)

	default:
		b.releaseReservation(token, trade)
		return nil, fmt.Errorf("open trade: %q: %w", plan.Kind, ErrUnknownOrderKind)
	}
	return trade, nil
}

// releaseReservation undoes a reservation that will never commit.
func (b *TradingBot) releaseReservation(token string, trade *models.Trade) {
	if trade.ReservedAmount <= 0 {
		return
	}
	if err := b.fund.Release(token, trade.ReservedAmount); err != nil {
		b.logger.Errorw("failed to release reservation", "token", token, "error", err)
	}
	b.pendingMoney -= trade.ReservedAmount
	trade.ReservedAmount = 0
}

// CloseTrade initiates closing of one explicit trade, or of the trades a
// plan resolves to: the trade with the plan's trade id, or every open trade
// for the plan's symbol. Zero matching trades is not an error.
func (b *TradingBot) CloseTrade(trade *models.Trade, plan *models.OrderPlan) ([]*models.Trade, error) {
	var targets []*models.Trade
	var symbol string

	switch {
	case trade != nil:
		targets = []*models.Trade{trade}
		symbol = trade.Symbol()
	case plan != nil:
		symbol = plan.Pair.Symbol()
		if plan.TradeID != "" {
			for _, tr := range b.openTrades[symbol] {
				if tr.ID == plan.TradeID {
					targets = []*models.Trade{tr}
					break
				}
			}
		} else {
			targets = append(targets, b.openTrades[symbol]...)
		}
	default:
		return nil, fmt.Errorf("close trade: either a trade or a plan is required")
	}
	if len(targets) == 0 {
		return nil, nil
	}

	var closed []*models.Trade
	for _, tr := range targets {
		if tr.OpenOrder == nil {
			b.logger.Warnw("skipping close of trade without open order", "trade", tr.ID)
			continue
		}
		closePlan := buildClosePlan(tr, plan)

		switch closePlan.Kind {
		case models.OrderKindMarket:
			order, err := b.broker.PlaceOrder(closePlan)
			if err != nil {
				// The position stays open; the next signal can retry.
				b.logger.Errorw("close order placement failed",
					"trade", tr.ID, "symbol", symbol, "error", err)
				continue
			}
			tr.SetCloseOrder(order)
			tr.Status = models.TradeStatusClosing
			b.removeOpenTrade(symbol, tr)
			b.closing = append(b.closing, tr)
			b.saveOrder(order)
			b.saveTrade(tr)

		case models.OrderKindLimit:
			timeLimit := closePlan.TimeLimit
			if timeLimit == 0 {
				timeLimit = b.defaultOrderTimeout
			}
			closePlan.ExpiryTime = b.clock().Add(timeLimit)
			closePlan.Status = string(models.TradeStatusWaiting)
			tr.Plan = closePlan
			tr.Status = models.TradeStatusWaiting
			b.removeOpenTrade(symbol, tr)
			b.waiting = append(b.waiting, tr)
			b.saveTrade(tr)

		default:
			b.logger.Errorw("rejecting close plan with unknown order kind",
				"trade", tr.ID, "kind", closePlan.Kind)
			continue
		}
		closed = append(closed, tr)
	}
	return closed, nil
}

// buildClosePlan derives the concrete close plan for a trade. Without an
// explicit plan the close is the opposite side of the opening order, at
// market, for the opening order's full output amount. An explicit plan is
// copied per trade so one shared plan cannot be mutated across trades.
func buildClosePlan(tr *models.Trade, plan *models.OrderPlan) *models.OrderPlan {
	qty := tr.OpenOrder.AmountOut
	if plan == nil {
		return &models.OrderPlan{
			Pair:     tr.OpenOrder.Pair,
			Side:     tr.OpenOrder.Side.Opposite(),
			Action:   models.ActionClose,
			Kind:     models.OrderKindMarket,
			Quantity: qty,
		}
	}
	cp := *plan
	cp.Action = models.ActionClose
	cp.Quantity = qty
	if cp.Kind == "" {
		cp.Kind = models.OrderKindMarket
	}
	return &cp
}

// ProcessOrders drains the plan queue accumulated during the tick. A plan
// that fails does not block the rest of the batch; a plan with an unknown
// action is rejected outright.
func (b *TradingBot) ProcessOrders() []*models.Trade {
	if len(b.planQueue) == 0 {
		return nil
	}
	queue := b.planQueue
	b.planQueue = nil
	b.logger.Infow("processing plan queue", "plans", len(queue))

	var processed []*models.Trade
	for _, plan := range queue {
		switch plan.Action {
		case models.ActionOpen:
			tr, err := b.OpenTrade(plan)
			if err != nil {
				b.logger.Errorw("failed to open trade", "plan", plan.String(), "error", err)
				continue
			}
			processed = append(processed, tr)
		case models.ActionClose:
			trs, err := b.CloseTrade(nil, plan)
			if err != nil {
				b.logger.Errorw("failed to close trades", "plan", plan.String(), "error", err)
				continue
			}
			processed = append(processed, trs...)
		default:
			b.logger.Errorw("rejecting plan with unknown action",
				"action", plan.Action, "plan", plan.String())
		}
	}
	return processed
}

// CheckingOrders advances every queued trade one lifecycle step. Each pass
// walks a snapshot so removals cannot skip entries; re-running it with no
// venue change is a no-op beyond the redundant polls.
func (b *TradingBot) CheckingOrders() {
	b.checkWaiting()
	b.checkOpening()
	b.checkClosing()
}

// checkWaiting evaluates the price condition and the expiry of every parked
// limit trade. The price condition wins when both hold in the same tick.
func (b *TradingBot) checkWaiting() {
	now := b.clock()
	snapshot := append([]*models.Trade(nil), b.waiting...)
	for _, tr := range snapshot {
		plan := tr.Plan
		if plan == nil {
			b.logger.Warnw("waiting trade without plan, dropping", "trade", tr.ID)
			b.waiting = removeTrade(b.waiting, tr)
			continue
		}

		priceMet := false
		price, err := b.broker.GetCurrentPrice(plan.Pair)
		if err != nil {
			b.logger.Warnw("price check failed", "symbol", plan.Pair.Symbol(), "error", err)
		} else if (plan.Side == models.SideBuy && price <= plan.LimitPrice) ||
			(plan.Side == models.SideSell && price >= plan.LimitPrice) {
			priceMet = true
		}

		switch {
		case priceMet:
			b.triggerWaiting(tr, plan)
		case now.After(plan.ExpiryTime):
			b.expireWaiting(tr, plan)
		}
	}
}

// triggerWaiting submits a waiting trade whose price condition is met.
func (b *TradingBot) triggerWaiting(tr *models.Trade, plan *models.OrderPlan) {
	order, err := b.broker.PlaceOrder(plan)
	if err != nil {
		// Stay in the waiting queue; expiry still bounds the retry window.
		b.logger.Errorw("triggered limit placement failed",
			"trade", tr.ID, "symbol", plan.Pair.Symbol(), "error", err)
		return
	}
	b.waiting = removeTrade(b.waiting, tr)
	tr.Plan = nil

	if plan.Action == models.ActionOpen {
		tr.SetOpenOrder(order)
		tr.Status = models.TradeStatusOpening
		b.opening = append(b.opening, tr)
	} else {
		tr.SetCloseOrder(order)
		tr.Status = models.TradeStatusClosing
		b.closing = append(b.closing, tr)
	}
	b.logger.Infow("limit order triggered",
		"trade", tr.ID, "action", plan.Action, "symbol", plan.Pair.Symbol())
	b.saveOrder(order)
	b.saveTrade(tr)
}

// expireWaiting resolves a waiting trade whose time window has elapsed: an
// open is cancelled and its reservation released, a close returns to the
// open-trades set with the position intact.
func (b *TradingBot) expireWaiting(tr *models.Trade, plan *models.OrderPlan) {
	b.waiting = removeTrade(b.waiting, tr)
	tr.Plan = nil

	if plan.Action == models.ActionOpen {
		b.releaseReservation(b.reservationToken(plan.Pair), tr)
		plan.Status = string(models.TradeStatusCancelled)
		tr.Status = models.TradeStatusCancelled
		b.historyTrades = append(b.historyTrades, tr)
		b.logger.Infow("limit order expired, trade cancelled",
			"trade", tr.ID, "symbol", plan.Pair.Symbol())
	} else {
		tr.Status = models.TradeStatusOpen
		b.addOpenTrade(tr.Symbol(), tr)
		b.logger.Infow("limit close expired, position stays open",
			"trade", tr.ID, "symbol", tr.Symbol())
	}
	b.saveTrade(tr)
}

// checkOpening polls fill status for every submitted opening order.
func (b *TradingBot) checkOpening() {
	snapshot := append([]*models.Trade(nil), b.opening...)
	for _, tr := range snapshot {
		res, err := b.broker.UpdateOrder(tr.OpenOrder, false)
		if err != nil {
			b.logger.Warnw("open order poll failed", "trade", tr.ID, "error", err)
			continue
		}
		switch res.State {
		case broker.Pending:
			// Re-polled next tick.
		case broker.Failed:
			b.opening = removeTrade(b.opening, tr)
			b.releaseReservation(b.reservationToken(tr.OpenOrder.Pair), tr)
			tr.Status = models.TradeStatusCancelled
			b.historyTrades = append(b.historyTrades, tr)
			b.logger.Warnw("open order failed at venue",
				"trade", tr.ID, "reason", res.Reason)
			b.saveOrder(tr.OpenOrder)
			b.saveTrade(tr)
		case broker.Confirmed:
			b.opening = removeTrade(b.opening, tr)
			tr.ApplyOpenFill()
			token := b.reservationToken(tr.OpenOrder.Pair)
			if err := b.fund.Commit(token, tr.ReservedAmount, tr.InvestedAmount); err != nil {
				b.logger.Errorw("fund commit failed", "trade", tr.ID, "error", err)
			}
			b.pendingMoney -= tr.ReservedAmount
			tr.ReservedAmount = 0
			b.addOpenTrade(tr.OpenOrder.Symbol, tr)
			b.logger.Infow("trade opened",
				"trade", tr.ID,
				"symbol", tr.OpenOrder.Symbol,
				"direction", tr.Direction,
				"invested", tr.InvestedAmount,
				"position", tr.PositionSize,
				"entry_price", tr.EntryPrice)
			b.saveOrder(tr.OpenOrder)
			b.saveTrade(tr)
		}
	}
}

// checkClosing polls fill status for every submitted closing order.
func (b *TradingBot) checkClosing() {
	snapshot := append([]*models.Trade(nil), b.closing...)
	for _, tr := range snapshot {
		res, err := b.broker.UpdateOrder(tr.CloseOrder, false)
		if err != nil {
			b.logger.Warnw("close order poll failed", "trade", tr.ID, "error", err)
			continue
		}
		switch res.State {
		case broker.Pending:
			// Re-polled next tick.
		case broker.Failed:
			b.closing = removeTrade(b.closing, tr)
			b.saveOrder(tr.CloseOrder)
			tr.CloseOrder = nil
			tr.Status = models.TradeStatusOpen
			b.addOpenTrade(tr.Symbol(), tr)
			b.logger.Warnw("close order failed at venue, position stays open",
				"trade", tr.ID, "reason", res.Reason)
			b.saveTrade(tr)
		case broker.Confirmed:
			b.closing = removeTrade(b.closing, tr)
			tr.ApplyCloseFill()
			token := b.reservationToken(tr.OpenOrder.Pair)
			if err := b.fund.Settle(token, tr.InvestedAmount, tr.NetReturn); err != nil {
				b.logger.Errorw("fund settle failed", "trade", tr.ID, "error", err)
			}
			b.balance += tr.NetReturn
			b.historyTrades = append(b.historyTrades, tr)
			b.logger.Infow("trade closed",
				"trade", tr.ID,
				"symbol", tr.OpenOrder.Symbol,
				"net_return", tr.NetReturn,
				"profit", tr.Profit,
				"exit_price", tr.ExitPrice)
			b.saveOrder(tr.CloseOrder)
			b.saveTrade(tr)
		}
	}
}

// Run executes one strategy pass: fetch data, evaluate every token's pair,
// then drain the plan queue. A missing strategy is fatal; a data fetch
// failure skips the tick.
func (b *TradingBot) Run() error {
	if b.strategy == nil {
		return ErrNoStrategy
	}

	data, err := b.strategy.GetData(b.tokens, b.currency)
	if err != nil {
		b.logger.Errorw("market data fetch failed, skipping tick", "error", err)
		return nil
	}

	for _, token := range b.tokens {
		symbol := token + b.currency
		candles := data[symbol]
		if len(candles) == 0 {
			b.logger.Debugw("no market data for symbol", "symbol", symbol)
			continue
		}

		budget := b.callBudget
		if budget < 1 {
			budget = b.fund.Cash(token) * b.callBudget
		}

		pair := models.Pair{b.currency, token}
		if err := b.strategy.Run(pair, candles, budget, b); err != nil {
			b.logger.Errorw("strategy run failed", "symbol", symbol, "error", err)
			continue
		}
	}

	b.ProcessOrders()
	return nil
}

// RunCycle is one scheduled invocation: refresh balance, run the strategy,
// then advance the queues, re-polling a few times while work is in flight.
func (b *TradingBot) RunCycle() error {
	if _, _, err := b.UpdateBalance(); err != nil {
		b.logger.Warnw("balance refresh failed", "error", err)
	}
	if err := b.Run(); err != nil {
		return err
	}
	b.CheckingOrders()

	for i := 0; i < b.drainAttempts && b.processingCount() > 0; i++ {
		b.sleep(b.drainDelay)
		b.CheckingOrders()
	}

	waiting, opening, closing := b.QueueSizes()
	b.logger.Infow("tick complete",
		"waiting", waiting,
		"opening", opening,
		"closing", closing,
		"open_trades", b.openTradeCount(),
		"history", len(b.historyTrades),
		"balance", b.balance)
	return nil
}

// CloseAllTrades initiates a market close of every open trade on the pair.
func (b *TradingBot) CloseAllTrades(pair models.Pair) []*models.Trade {
	trades := append([]*models.Trade(nil), b.openTrades[pair.Symbol()]...)
	if len(trades) == 0 {
		return nil
	}
	b.logger.Infow("closing all open trades", "symbol", pair.Symbol(), "count", len(trades))

	var closed []*models.Trade
	for _, tr := range trades {
		res, err := b.CloseTrade(tr, nil)
		if err != nil {
			b.logger.Errorw("close all: failed to close trade", "trade", tr.ID, "error", err)
			continue
		}
		closed = append(closed, res...)
	}
	return closed
}

// WaitForOrders polls the queues until every in-flight trade resolves or
// maxWait elapses, backing off between polls. Returns whether the queues
// drained in time.
func (b *TradingBot) WaitForOrders(maxWait time.Duration) bool {
	deadline := b.clock().Add(maxWait)
	bo := &backoff.Backoff{
		Min:    time.Second,
		Max:    10 * time.Second,
		Factor: 2,
	}
	for {
		b.CheckingOrders()
		if b.processingCount() == 0 {
			return true
		}
		if b.clock().After(deadline) {
			b.logger.Warnw("timed out waiting for orders",
				"max_wait", maxWait, "in_flight", b.processingCount())
			return false
		}
		b.sleep(bo.Duration())
	}
}

func (b *TradingBot) processingCount() int {
	return len(b.waiting) + len(b.opening) + len(b.closing)
}

func (b *TradingBot) openTradeCount() int {
	var n int
	for _, trades := range b.openTrades {
		n += len(trades)
	}
	return n
}

// ID returns the bot instance id.
func (b *TradingBot) ID() string { return b.id }

// Balance returns the bot's aggregate balance.
func (b *TradingBot) Balance() float64 { return b.balance }

// PendingMoney returns capital reserved against in-flight opens.
func (b *TradingBot) PendingMoney() float64 { return b.pendingMoney }

// Fund exposes the ledger for inspection and reporting.
func (b *TradingBot) Fund() *fund.Ledger { return b.fund }

// QueueSizes reports the processing queue lengths.
func (b *TradingBot) QueueSizes() (waiting, opening, closing int) {
	return len(b.waiting), len(b.opening), len(b.closing)
}

// OpenTrades returns a copy of the open-trade index.
func (b *TradingBot) OpenTrades() map[string][]*models.Trade {
	out := make(map[string][]*models.Trade, len(b.openTrades))
	for symbol, trades := range b.openTrades {
		out[symbol] = append([]*models.Trade(nil), trades...)
	}
	return out
}

// History returns a copy of the terminal-trade list.
func (b *TradingBot) History() []*models.Trade {
	return append([]*models.Trade(nil), b.historyTrades...)
}

func (b *TradingBot) addOpenTrade(symbol string, tr *models.Trade) {
	b.openTrades[symbol] = append(b.openTrades[symbol], tr)
}

func (b *TradingBot) removeOpenTrade(symbol string, tr *models.Trade) {
	b.openTrades[symbol] = removeTrade(b.openTrades[symbol], tr)
}

// removeTrade filters one trade out of a queue slice.
func removeTrade(queue []*models.Trade, tr *models.Trade) []*models.Trade {
	out := queue[:0]
	for _, t := range queue {
		if t != tr {
			out = append(out, t)
		}
	}
	return out
}

// saveOrder writes through to the persistence sink; sink errors never block
// the scheduler.
func (b *TradingBot) saveOrder(order *models.Order) {
	if err := b.recorder.SaveOrder(order); err != nil {
		b.logger.Warnw("order persistence failed", "order", order.ID, "error", err)
	}
}

func (b *TradingBot) saveTrade(tr *models.Trade) {
	if err := b.recorder.SaveTrade(b.id, tr); err != nil {
		b.logger.Warnw("trade persistence failed", "trade", tr.ID, "error", err)
	}
}
