package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/linkupapp/linkup/internal/client/api"
	"github.com/linkupapp/linkup/internal/client/cache"
	"github.com/linkupapp/linkup/internal/client/cli"
	"github.com/linkupapp/linkup/internal/client/config"
	"github.com/linkupapp/linkup/internal/client/feed"
	"github.com/linkupapp/linkup/internal/client/iocli"
	"github.com/linkupapp/linkup/internal/client/optimistic"
	"github.com/linkupapp/linkup/internal/client/session"
	"github.com/linkupapp/linkup/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "", "API base URL")
	dbPath := flag.String("db", "", "Path to local database")

	flag.Parse()

	io := iocli.NewStdio()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(io)
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Flags win over .env and environment.
	if *serverURL != "" {
		cfg.APIBase = *serverURL
		cfg.StaticBase = *serverURL
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	sess := session.NewService(boltStorage, logger)
	apiClient := api.NewClient(cfg.APIBase, cfg.StaticBase, sess, logger)
	sess.AttachClient(apiClient)
	apiClient.OnAuthError(sess.HandleAuthError)

	if err := sess.Load(ctx); err != nil {
		logger.Debug("no stored session", "error", err)
	}

	store := cache.NewStore(cfg.CacheTTL, logger).WithSnapshots(boltStorage)
	toggles := optimistic.NewRegistry(optimistic.DefaultMutationTimeout, logger)
	feedService := feed.NewService(apiClient, store, sess, toggles, logger)

	app := cli.New(io, sess, feedService, logger, cfg.FeedLimit, cfg.PollInterval)
	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Linkup Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
