package main

import (
	"fmt"

	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/pkg/httpclient"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"github.com/spf13/cobra"
)

// app holds what the subcommands share; tests swap the collaborators
type app struct {
	cfg        *config.Config
	httpClient httpclient.Client
	openURL    func(uri string) error
	loadConfig func() (*config.Config, error)
}

func newApp() *app {
	return &app{
		httpClient: httpclient.NewStandardClient(),
		openURL:    openBrowser,
		loadConfig: config.LoadClient,
	}
}

func newRootCmd(a *app) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "contact",
		Short: "Submit and inspect MBS NYC contact requests",
		Long: `Operator tool for the MBS NYC contact flow.

Available subcommands:
  send  - Fill and submit the contact form (http or mailto delivery)
  list  - List stored submissions from the backend
  token - Mint an admin token for listing submissions`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Initialize(logger.Config{
				Level:       logLevel,
				Environment: "development",
				ServiceName: "mbsnyc-contact",
			}); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newSendCmd(a), newListCmd(a), newTokenCmd(a))
	return root
}
