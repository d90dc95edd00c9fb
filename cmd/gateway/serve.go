package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"payments-gateway/internal/config"
	"payments-gateway/internal/logger"
	"payments-gateway/internal/notify"
	"payments-gateway/internal/payment"
	"payments-gateway/internal/server"
	"payments-gateway/internal/store"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the payments HTTP API",
		Long: `Start the payments HTTP API.

Configuration comes from the environment (and a .env file if present).
Flags override the matching variables.

Examples:
  gateway serve
  gateway serve --addr :9000 --store mongo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr = addr
			}
			if cmd.Flags().Changed("store") {
				cfg.StoreBackend = backend
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (HTTP_ADDR)")
	cmd.Flags().StringVar(&backend, "store", "memory", "store backend: memory, mongo, postgres, sqlite, redis (STORE_BACKEND)")

	return cmd
}

func runServe(parent context.Context, cfg *config.Config) error {
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not open %s store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close store")
		}
	}()

	notifier, err := notify.FromConfig(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		return fmt.Errorf("could not set up notifications: %w", err)
	}

	srv := server.New(st, payment.NewHandler(st, notifier))

	log.Info().Str("store", cfg.StoreBackend).Str("version", Version).Msg("Service started successfully")
	err = srv.Run(ctx, cfg.HTTPAddr, cfg.ShutdownTimeout)

	if a, ok := notifier.(*notify.Async); ok {
		a.Wait()
	}
	return err
}
