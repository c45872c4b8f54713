package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2beens/fittrack/internal/config"
	"github.com/2beens/fittrack/internal/logging"
)

var (
	env        string
	configPath string
	dotEnvPath string
)

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Fitness tracking backend: users, exercises and workouts",
	// errors are logged by the commands themselves
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&dotEnvPath, "dotenv", ".env", "optional .env file with secrets")
}

// loadConfig reads the TOML config for the selected env and sets up logging from it.
func loadConfig(serverName string) (*config.Config, config.Secrets, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, config.Secrets{}, err
	}

	secrets, err := config.LoadSecrets(dotEnvPath)
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        secrets.SentryDSN,
		SentryServerName: serverName,
	})

	return cfg, secrets, err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
