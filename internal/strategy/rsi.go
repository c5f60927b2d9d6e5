package strategy

import (
	"context"
	"fmt"
	"math"

	"dex-trading-bot/internal/marketdata"
	"dex-trading-bot/internal/models"

	"go.uber.org/zap"
)

// CandleSource supplies recent candles per symbol.
type CandleSource interface {
	Candles(ctx context.Context, symbol string) ([]marketdata.Candle, error)
}

// RSIReversal buys an oversold reversal and closes on an overbought
// reversal: a buy fires when RSI dips under the oversold line and turns
// back up after falling, or drops sharply; the sell mirrors it.
type RSIReversal struct {
	source CandleSource
	logger *zap.SugaredLogger

	period     int
	oversold   float64
	overbought float64
	// sharpMove is the one-bar RSI change that triggers without a turn.
	sharpMove float64
	// budgetUse is the fraction of the call budget committed per signal.
	budgetUse float64
}

// NewRSIReversal builds the strategy with the standard RSI(14) 30/70 bands.
func NewRSIReversal(source CandleSource, logger *zap.SugaredLogger) *RSIReversal {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &RSIReversal{
		source:     source,
		logger:     logger,
		period:     14,
		oversold:   30,
		overbought: 70,
		sharpMove:  10,
		budgetUse:  0.5,
	}
}

// GetData pulls recent candles for every token's pair.
func (s *RSIReversal) GetData(tokens []string, currency string) (Dataset, error) {
	data := make(Dataset, len(tokens))
	for _, token := range tokens {
		symbol := token + currency
		candles, err := s.source.Candles(context.Background(), symbol)
		if err != nil {
			return nil, fmt.Errorf("get data for %s: %w", symbol, err)
		}
		data[symbol] = candles
	}
	return data, nil
}

// Run evaluates the RSI signal on the candle series and enqueues at most one
// plan per call.
func (s *RSIReversal) Run(pair models.Pair, candles []marketdata.Candle, budget float64, placer OrderPlacer) error {
	rsi := marketdata.RSI(marketdata.Closes(candles), s.period)
	if len(rsi) < 4 {
		return fmt.Errorf("rsi strategy needs at least 4 candles, got %d", len(rsi))
	}

	r1 := rsi[len(rsi)-1] // newest
	r2 := rsi[len(rsi)-2]
	r3 := rsi[len(rsi)-3]
	r4 := rsi[len(rsi)-4]
	if math.IsNaN(r1) || math.IsNaN(r2) || math.IsNaN(r3) || math.IsNaN(r4) {
		return fmt.Errorf("rsi strategy needs %d warm-up candles", s.period+4)
	}

	price := candles[len(candles)-1].Close
	if price <= 0 {
		return fmt.Errorf("rsi strategy: non-positive close price %v", price)
	}
	amount := budget * s.budgetUse
	qty := amount / price

	switch {
	case r1 < s.oversold && ((r2 < r1 && r3 >= r2 && r4 >= r3) || r2-r1 > s.sharpMove):
		s.logger.Infow("buy signal", "symbol", pair.Symbol(), "rsi", r1, "price", price, "qty", qty)
		placer.Buy(pair, price, qty, amount)
	case r1 > s.overbought && ((r2 > r1 && r3 <= r2 && r4 <= r3) || r1-r2 > s.sharpMove):
		s.logger.Infow("sell signal", "symbol", pair.Symbol(), "rsi", r1, "price", price)
		placer.Sell(pair, price)
	default:
		s.logger.Debugw("no signal", "symbol", pair.Symbol(), "rsi", r1)
	}
	return nil
}
