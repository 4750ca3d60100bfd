package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/awantoch/foundryflow/auth"
	"github.com/awantoch/foundryflow/config"
	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/telemetry"
	"github.com/awantoch/foundryflow/utils"
)

var (
	exit               = os.Exit
	configPath         string
	debug              bool
	agentsAPI          string
	deleteBeforeCreate bool

	cfg      *config.Config
	metrics  *telemetry.Metrics
	provider *auth.Provider
	shutdown telemetry.ShutdownFunc
)

// NewRootCmd creates the root 'foundry' command with persistent flags and subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{Use: "foundry", Short: constants.DescRootCommand}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", constants.ConfigFileName, "Path to config JSON")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	rootCmd.PersistentFlags().StringVar(&agentsAPI, "api", "", "Agent service flavour: v1 (assistants) or v2 (named agents)")
	rootCmd.PersistentFlags().BoolVar(&deleteBeforeCreate, "delete-before-create", false, "Delete an existing agent of the same name instead of updating it")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Load environment variables from .env file, if present
		_ = godotenv.Load()

		c, err := config.Load(configPath)
		if err != nil {
			utils.Error("Failed to load config: %v", err)
			exit(2)
			return
		}
		if debug || os.Getenv(constants.EnvDebug) != "" || c.Log.Level == "debug" {
			utils.SetMode("debug")
		}
		if agentsAPI != "" {
			c.Foundry.AgentsAPI = agentsAPI
		}
		if err := utils.ValidateOneOf("api", c.Foundry.AgentsAPI, []string{constants.AgentsAPIV1, constants.AgentsAPIV2}); err != nil {
			exit(2)
			return
		}
		cfg = c

		metrics = telemetry.NewMetrics()
		shutdown, err = telemetry.Init(cmd.Context(), cfg)
		if err != nil {
			utils.Error("Failed to initialize tracing: %v", err)
			exit(2)
			return
		}
		cred, err := auth.NewCredential(cfg.Auth)
		if err != nil {
			fail(2, "Failed to create Azure credential: %v", err)
			return
		}
		provider = auth.NewProvider(cred, metrics.InstrumentTransport("azure", nil))
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		finish(cmd.Context())
	}

	rootCmd.AddCommand(
		newWorkflowsCmd(),
		newSpecCmd(),
		newLogicAppCmd(),
		newOpenAPICmd(),
		newMCPCmd(),
		newAgentsCmd(),
		newInvokeCmd(),
		newConnectionsCmd(),
		newHistoryCmd(),
	)
	return rootCmd
}

// finish pushes metrics, flushes spans and syncs the loggers.
func finish(ctx context.Context) {
	if metrics != nil && cfg != nil {
		if err := metrics.Push(ctx, cfg.Metrics.PushGateway, cfg.Metrics.Job); err != nil {
			utils.Warn("Failed to push metrics: %v", err)
		}
	}
	if shutdown != nil {
		if err := shutdown(ctx); err != nil {
			utils.Warn("Failed to flush traces: %v", err)
		}
		shutdown = nil
	}
	utils.Sync()
}

// fail logs err and exits with code.
func fail(code int, format string, err error) {
	utils.Error(format, err)
	exit(code)
}
