package models

// Config holds every runtime parameter of the bot. It is loaded from a JSON
// file at startup; secrets (API keys) come from the environment instead.
type Config struct {
	BotID    string   `json:"bot_id"`
	Tokens   []string `json:"tokens"`   // tokens to trade, e.g. ["WHBAR"]
	Currency string   `json:"currency"` // settlement currency, e.g. "USDC"
	Category string   `json:"category"` // "spot" for now

	// CallBudget is the per-strategy-call budget. A value >= 1 is an absolute
	// amount in the settlement currency; a value < 1 is a fraction of the
	// token's ledger cash.
	CallBudget   float64 `json:"call_budget"`
	InvestAmount float64 `json:"invest_amount"`

	// FundWeights maps token -> relative allocation share. Tokens missing
	// from the map default to weight 1.
	FundWeights map[string]float64 `json:"fund_weights,omitempty"`

	// DefaultOrderTimeoutSec bounds how long a limit order may sit in the
	// waiting queue before it is cancelled (open) or reverted (close).
	DefaultOrderTimeoutSec int `json:"default_order_timeout_sec"`

	TickIntervalSec int `json:"tick_interval_sec"`
	DrainAttempts   int `json:"drain_attempts"`    // extra CheckingOrders passes per cycle
	DrainDelaySec   int `json:"drain_delay_sec"`   // sleep between drain passes
	CloseOnExitSec  int `json:"close_on_exit_sec"` // 0 disables close-all on shutdown

	DBPath string `json:"db_path"`

	// Market data / price feed.
	KlineInterval string `json:"kline_interval"` // e.g. "5m"
	KlineLimit    int    `json:"kline_limit"`
	WSBaseURL     string `json:"ws_base_url"`

	// Paper broker simulation parameters.
	Paper PaperConfig `json:"paper"`

	LogConfig LogConfig `json:"log"`
}

// PaperConfig tunes the simulated execution venue.
type PaperConfig struct {
	Balance      float64 `json:"balance"`
	SlippageRate float64 `json:"slippage_rate"`
	FeeRate      float64 `json:"fee_rate"`
	// ConfirmAfterPolls is how many status polls an order stays pending
	// before it confirms. Zero confirms on the first poll.
	ConfirmAfterPolls int `json:"confirm_after_polls"`
}

// LogConfig mirrors the logger setup: level, output target and rotation.
type LogConfig struct {
	Level      string `json:"level"`  // "debug", "info", "warn", "error"
	Output     string `json:"output"` // "console", "file", "both"
	File       string `json:"file"`
	MaxSize    int    `json:"max_size"` // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
	Compress   bool   `json:"compress"`
}
