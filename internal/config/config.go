package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"dex-trading-bot/internal/models"
)

// LoadConfig reads the JSON config file at path and applies defaults.
func LoadConfig(path string) (*models.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	cfg := &models.Config{}
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *models.Config) {
	if cfg.Currency == "" {
		cfg.Currency = "USDC"
	}
	if cfg.Category == "" {
		cfg.Category = "spot"
	}
	if cfg.DefaultOrderTimeoutSec == 0 {
		cfg.DefaultOrderTimeoutSec = int((15 * time.Minute).Seconds())
	}
	if cfg.TickIntervalSec == 0 {
		cfg.TickIntervalSec = 300
	}
	if cfg.DrainAttempts == 0 {
		cfg.DrainAttempts = 3
	}
	if cfg.DrainDelaySec == 0 {
		cfg.DrainDelaySec = 5
	}
	if cfg.KlineInterval == "" {
		cfg.KlineInterval = "5m"
	}
	if cfg.KlineLimit == 0 {
		cfg.KlineLimit = 60
	}
	if cfg.WSBaseURL == "" {
		cfg.WSBaseURL = "wss://stream.binance.com:9443"
	}
	if cfg.Paper.Balance == 0 {
		cfg.Paper.Balance = cfg.InvestAmount
	}

	// The settlement currency is never a traded token.
	tokens := cfg.Tokens[:0]
	for _, t := range cfg.Tokens {
		if t != cfg.Currency {
			tokens = append(tokens, t)
		}
	}
	cfg.Tokens = tokens
}

func validate(cfg *models.Config) error {
	if cfg.BotID == "" {
		return fmt.Errorf("config: bot_id is required")
	}
	if len(cfg.Tokens) == 0 {
		return fmt.Errorf("config: at least one traded token is required")
	}
	if cfg.InvestAmount <= 0 {
		return fmt.Errorf("config: invest_amount must be positive, got %v", cfg.InvestAmount)
	}
	if cfg.CallBudget <= 0 {
		return fmt.Errorf("config: call_budget must be positive, got %v", cfg.CallBudget)
	}
	return nil
}
