// Package main is the entry point for the tasklist CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tasklist/internal/backend/sqlitestore"
	"tasklist/internal/cli"
	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/service"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create store factory
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		if err := cfg.EnsureDir(); err != nil {
			return nil, err
		}
		return sqlitestore.Open(ctx, cfg.DBPath)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory).
		WithEnv(config.EnvMap(os.Environ()))

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
