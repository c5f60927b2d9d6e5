// Package strategy defines the signal-generation contract consumed by the
// trading bot, plus the RSI reversal strategy the bot ships with.
package strategy

import (
	"dex-trading-bot/internal/marketdata"
	"dex-trading-bot/internal/models"
)

// Dataset is market data keyed by symbol.
type Dataset map[string][]marketdata.Candle

// OrderPlacer is the slice of the trading bot a strategy is allowed to see.
// Strategies enqueue plans through it as a side effect of Run; the plans are
// executed afterwards by the bot's order processing.
type OrderPlacer interface {
	// Buy enqueues an opening buy plan sized by qty at the reference price.
	Buy(pair models.Pair, price, qty, estimatedAmount float64)
	// Sell enqueues a closing sell plan for every open trade on the pair.
	Sell(pair models.Pair, price float64)
}

// Strategy produces order plans from market data.
type Strategy interface {
	// GetData fetches market data for the tokens against the settlement
	// currency, keyed by symbol (base+currency).
	GetData(tokens []string, currency string) (Dataset, error)

	// Run evaluates one pair and enqueues plans via the placer. The budget
	// is the capital the call may commit, in settlement-currency units.
	Run(pair models.Pair, candles []marketdata.Candle, budget float64, placer OrderPlacer) error
}
