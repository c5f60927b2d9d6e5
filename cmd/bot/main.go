package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dex-trading-bot/internal/bot"
	"dex-trading-bot/internal/broker"
	"dex-trading-bot/internal/config"
	"dex-trading-bot/internal/feed"
	"dex-trading-bot/internal/logger"
	"dex-trading-bot/internal/marketdata"
	"dex-trading-bot/internal/models"
	"dex-trading-bot/internal/persistence"
	"dex-trading-bot/internal/reporter"
	"dex-trading-bot/internal/strategy"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the config file")
	closeOnExit := flag.Bool("close-on-exit", false, "close all open trades before shutting down")
	flag.Parse()

	// A default logger so config loading itself can be logged; replaced
	// once the file config is available.
	logger.InitLogger(models.LogConfig{Level: "info", Output: "console"})

	if err := godotenv.Load(); err != nil {
		logger.S().Info("no .env file found, reading from system environment")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.S().Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg.LogConfig)
	defer logger.S().Sync()

	run(cfg, *closeOnExit)
}

func run(cfg *models.Config, closeOnExit bool) {
	logger.S().Infow("starting trading bot",
		"bot_id", cfg.BotID,
		"tokens", cfg.Tokens,
		"currency", cfg.Currency,
		"invest_amount", cfg.InvestAmount)

	var recorder persistence.Recorder = persistence.NopRecorder{}
	if cfg.DBPath != "" {
		rec, err := persistence.NewBadgerRecorder(cfg.DBPath)
		if err != nil {
			logger.S().Fatalf("failed to open trade database: %v", err)
		}
		defer rec.Close()
		recorder = rec
	}

	symbols := make([]string, 0, len(cfg.Tokens))
	for _, token := range cfg.Tokens {
		symbols = append(symbols, token+cfg.Currency)
	}
	priceFeed := feed.NewFeed(cfg.WSBaseURL, symbols, logger.S())
	priceFeed.Start()
	defer priceFeed.Stop()

	paper := broker.NewPaperBroker(cfg.Category, cfg.Currency, cfg.Paper, priceFeed, logger.L())
	klines := marketdata.NewKlineSource(cfg.KlineInterval, cfg.KlineLimit)
	strat := strategy.NewRSIReversal(klines, logger.S())

	tradingBot, err := bot.New(cfg, paper, strat, recorder, logger.S())
	if err != nil {
		logger.S().Fatalf("failed to build bot: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	interval := time.Duration(cfg.TickIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.S().Infow("entering trading loop", "tick_interval", interval)
	if err := tradingBot.RunCycle(); err != nil {
		logger.S().Fatalf("trading cycle failed: %v", err)
	}

loop:
	for {
		select {
		case <-ticker.C:
			if err := tradingBot.RunCycle(); err != nil {
				logger.S().Fatalf("trading cycle failed: %v", err)
			}
			reporter.WriteFundTable(os.Stdout, tradingBot.Fund())
		case <-quit:
			logger.S().Info("shutdown signal received")
			break loop
		}
	}

	if closeOnExit || cfg.CloseOnExitSec > 0 {
		maxWait := time.Duration(cfg.CloseOnExitSec) * time.Second
		if maxWait == 0 {
			maxWait = time.Minute
		}
		logger.S().Infow("closing open trades before exit", "max_wait", maxWait)
		for _, token := range cfg.Tokens {
			tradingBot.CloseAllTrades(models.Pair{cfg.Currency, token})
		}
		if !tradingBot.WaitForOrders(maxWait) {
			logger.S().Warn("some orders did not resolve before shutdown")
		}
	}

	reporter.WritePerformanceReport(os.Stdout, tradingBot.History(), cfg.InvestAmount, tradingBot.Balance())
	logger.S().Info("bot stopped")
}
