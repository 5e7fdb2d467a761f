package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/pkg/db"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		migrationsPath string
		cfg            *config.Config
	)

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back contact_submissions schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return logger.Initialize(logger.Config{
				Level:       cfg.Logging.Level,
				LogDir:      cfg.Logging.Dir,
				Environment: cfg.Server.AppEnv,
				ServiceName: "mbsnyc-migrate",
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&migrationsPath, "path", db.DefaultMigrationsPath, "migrations source URL")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Info("Starting database migrations", zap.String("database", maskDatabaseURL(cfg.Database.URL)))
			if err := db.RunMigrations(cfg.Database.URL, migrationsPath); err != nil {
				logger.Error("Failed to run migrations", zap.Error(err))
				return err
			}
			logger.Info("Database migrations completed successfully")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last N migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Info("Rolling back database migrations",
				zap.String("database", maskDatabaseURL(cfg.Database.URL)),
				zap.Int("steps", steps))
			if err := db.RollbackMigrations(cfg.Database.URL, migrationsPath, steps); err != nil {
				logger.Error("Failed to roll back migrations", zap.Error(err))
				return err
			}
			logger.Info("Database rollback completed successfully")
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	root.AddCommand(up, down)
	return root
}

// maskDatabaseURL hides the password in a database URL for logging
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	return u.Redacted()
}
