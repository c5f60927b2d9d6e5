// Package marketdata fetches OHLCV candles from the venue's public kline
// endpoint and provides the indicator math used by the strategies.
package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
)

// Candle is one OHLCV bar.
type Candle struct {
	OpenTime  time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	CloseTime time.Time
}

// KlineSource pulls recent candles for a symbol. The public kline endpoint
// needs no API key.
type KlineSource struct {
	client   *binance.Client
	interval string
	limit    int
}

// NewKlineSource creates a source for the given interval ("5m") and number
// of trailing candles per request.
func NewKlineSource(interval string, limit int) *KlineSource {
	return &KlineSource{
		client:   binance.NewClient("", ""),
		interval: interval,
		limit:    limit,
	}
}

// Candles fetches the most recent bars for symbol.
func (s *KlineSource) Candles(ctx context.Context, symbol string) ([]Candle, error) {
	klines, err := s.client.NewKlinesService().
		Symbol(symbol).
		Interval(s.interval).
		Limit(s.limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch klines for %s: %w", symbol, err)
	}

	candles := make([]Candle, 0, len(klines))
	for _, k := range klines {
		c, err := parseKline(k)
		if err != nil {
			return nil, fmt.Errorf("parse kline for %s: %w", symbol, err)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func parseKline(k *binance.Kline) (Candle, error) {
	var (
		c   Candle
		err error
	)
	if c.Open, err = strconv.ParseFloat(k.Open, 64); err != nil {
		return c, err
	}
	if c.High, err = strconv.ParseFloat(k.High, 64); err != nil {
		return c, err
	}
	if c.Low, err = strconv.ParseFloat(k.Low, 64); err != nil {
		return c, err
	}
	if c.Close, err = strconv.ParseFloat(k.Close, 64); err != nil {
		return c, err
	}
	if c.Volume, err = strconv.ParseFloat(k.Volume, 64); err != nil {
		return c, err
	}
	c.OpenTime = time.UnixMilli(k.OpenTime)
	c.CloseTime = time.UnixMilli(k.CloseTime)
	return c, nil
}

// Closes extracts the close series from candles.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
