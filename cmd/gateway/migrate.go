package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"payments-gateway/internal/config"
	"payments-gateway/internal/database"
	"payments-gateway/internal/logger"
	"payments-gateway/internal/store"
)

func migrateCmd() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the payments table for SQL backends",
		Long: `Create or update the payments table.

The backend is taken from --store, or from STORE_BACKEND when the flag is
not given. Only the postgres and sqlite backends have a schema; for mongo,
redis and memory the command does nothing.

Examples:
  STORE_BACKEND=postgres gateway migrate
  SQLITE_PATH=/var/lib/payments.db gateway migrate --store sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if backend != "" {
				cfg.StoreBackend = backend
			}
			return runMigrate(cfg)
		},
	}

	cmd.Flags().StringVar(&backend, "store", "", "store backend, defaults to STORE_BACKEND")

	return cmd
}

func runMigrate(cfg *config.Config) error {
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(cfg.StoreBackend) {
	case store.BackendPostgres:
		db, err = database.ConnectPostgres(cfg)
	case store.BackendSQLite:
		db, err = database.ConnectSQLite(cfg.SQLitePath)
	default:
		log.Info().Str("store", cfg.StoreBackend).Msg("Backend has no schema, nothing to migrate")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Connecting already ran AutoMigrate.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Str("store", cfg.StoreBackend).Msg("Migration complete")
	return nil
}
