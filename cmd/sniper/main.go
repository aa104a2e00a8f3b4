package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mitegun/snipebot/config"
	"github.com/mitegun/snipebot/internal/adapters/notify"
	"github.com/mitegun/snipebot/internal/adapters/openbook"
	"github.com/mitegun/snipebot/internal/adapters/paper"
	"github.com/mitegun/snipebot/internal/adapters/solsniffer"
	"github.com/mitegun/snipebot/internal/adapters/storage"
	"github.com/mitegun/snipebot/internal/adapters/tweetscout"
	"github.com/mitegun/snipebot/internal/adapters/twitter"
	"github.com/mitegun/snipebot/internal/application/engine"
	"github.com/mitegun/snipebot/internal/application/sniper"
	"github.com/mitegun/snipebot/internal/ports"
)

// paperPrice es el precio simulado del venue en dry-run.
const paperPrice = 100.0

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one cycle and exit")
	dryRun := flag.Bool("dry-run", false, "simulate the venue, no real orders")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full positions table (default: compact 1-line)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("snipebot starting",
		"config", *configPath,
		"interval", cfg.ScanInterval(),
		"accounts", len(cfg.Sniper.Accounts),
		"dry_run", *dryRun,
		"once", *once,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// El venue es la única dependencia fatal: sin mercado no hay run.
	var venue ports.Venue
	if *dryRun {
		venue = paper.New(paperPrice)
		slog.Info("dry-run: using paper venue", "price", paperPrice)
	} else {
		market, err := openbook.NewMarket(ctx, cfg.Venue.GatewayBase, cfg.Venue.MarketAddress, cfg.Venue.Owner)
		if err != nil {
			slog.Error("failed to initialize market venue", "err", err, "market", cfg.Venue.MarketAddress)
			os.Exit(1)
		}
		slog.Info("market initialized", "address", market.Address())
		venue = market
	}

	journal, err := storage.NewJournal(cfg.Journal.DSN)
	if err != nil {
		slog.Error("failed to open journal", "err", err, "dsn", cfg.Journal.DSN)
		os.Exit(1)
	}
	defer journal.Close()

	feed := twitter.NewClient(cfg.Providers.TwitterBase, cfg.Providers.TwitterToken)
	contracts := solsniffer.NewClient(cfg.Providers.SolSnifferBase, cfg.Providers.SolSnifferKey)
	reputation := tweetscout.NewClient(cfg.Providers.TweetScoutBase, cfg.Providers.TweetScoutKey)

	exec := engine.New(venue, journal, engine.Config{
		BuyAmount:            cfg.Sniper.BuyAmount,
		Slippage:             cfg.Sniper.Slippage,
		TakeProfitMultiplier: cfg.Sniper.TakeProfitMultiplier,
		MoonbagFraction:      cfg.Sniper.MoonbagFraction,
		ConfirmFills:         cfg.Sniper.ConfirmFills,
	})

	snipeCfg := sniper.DefaultConfig()
	snipeCfg.Interval = cfg.ScanInterval()
	snipeCfg.Accounts = cfg.Sniper.Accounts
	snipeCfg.TweetsCount = cfg.Sniper.TweetsCount
	snipeCfg.Workers = cfg.Sniper.Workers
	snipeCfg.Filter = sniper.FilterConfig{MinScore: cfg.Sniper.MinScore}
	snipeCfg.DryRun = *dryRun || *once

	notifier := notify.NewConsole(*table)
	scorer := sniper.NewRiskScorer(contracts, reputation)

	s := sniper.New(snipeCfg, feed, scorer, exec, notifier)

	if err := s.Run(ctx); err != nil {
		slog.Error("sniper exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("snipebot stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
