package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smn2gnt/MCP-Salesforce/pkg/config"
	"github.com/smn2gnt/MCP-Salesforce/pkg/health"
	"github.com/smn2gnt/MCP-Salesforce/pkg/runtime"
	"github.com/smn2gnt/MCP-Salesforce/pkg/salesforce"
	"github.com/smn2gnt/MCP-Salesforce/pkg/tools"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "the path to the server config file (optional, env vars suffice)")
}

var runConfigPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Salesforce MCP server",
	Run:   executeRunCmd,
}

func executeRunCmd(cobraCmd *cobra.Command, args []string) {
	// A missing .env file is fine, the variables may come from the real
	// environment.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("%s\n", err.Error())
		return
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		cfg.Runtime.GetBaseLogger().Warn("Failed to apply overrides from env vars to the server config",
			zap.Error(err))
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("invalid server config: %s\n", err.Error())
		return
	}

	logger := cfg.Runtime.GetBaseLogger()

	var clientOpts []salesforce.Option
	if cfg.Salesforce != nil && cfg.Salesforce.APIVersion != "" {
		clientOpts = append(clientOpts, salesforce.WithAPIVersion(cfg.Salesforce.APIVersion))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := tools.NewService(logger)
	checker := health.NewChecker()

	// Connection problems are not fatal, the server stays up and every tool
	// call reports the stored error until credentials are fixed.
	creds, err := config.ResolveCredentials()
	if err != nil {
		logger.Warn("No Salesforce credentials resolved from environment", zap.Error(err))
		svc.RecordConnectError(err)
		checker.SetReady(false, err.Error())
	} else if err := svc.Connect(ctx, creds, clientOpts...); err != nil {
		logger.Warn("Salesforce connection failed", zap.Error(err))
		checker.SetReady(false, err.Error())
	} else {
		logger.Info("Salesforce session established")
		checker.SetReady(true, "")
	}

	if err := runtime.NewServer(cfg, svc, checker).Run(ctx); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func loadConfig() (*config.ServerConfig, error) {
	if runConfigPath == "" {
		return config.Default(), nil
	}

	path, err := filepath.Abs(runConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve server config file path: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no file found at server config path: %s", path)
	}

	cfg, err := config.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("invalid server config file: %w", err)
	}
	return cfg, nil
}
