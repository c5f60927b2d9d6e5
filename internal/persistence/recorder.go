// Package persistence is the write-through sink for orders and trades. The
// scheduler writes every state-changing event through it and never reads
// back; a sink failure must not block scheduler progress.
package persistence

import "dex-trading-bot/internal/models"

// TradeRecord is the durable form of a trade, tagged with its owning bot.
type TradeRecord struct {
	BotID string        `json:"bot_id"`
	Trade *models.Trade `json:"trade"`
}

// Recorder upserts orders and trades by id.
type Recorder interface {
	// SaveOrder writes the order's full field set, replacing any previous
	// version with the same id.
	SaveOrder(order *models.Order) error

	// SaveTrade does the same for a trade.
	SaveTrade(botID string, trade *models.Trade) error

	// Close gracefully closes the underlying store.
	Close() error
}

// NopRecorder discards every write. Useful for tests and dry runs.
type NopRecorder struct{}

func (NopRecorder) SaveOrder(*models.Order) error          { return nil }
func (NopRecorder) SaveTrade(string, *models.Trade) error  { return nil }
func (NopRecorder) Close() error                           { return nil }
