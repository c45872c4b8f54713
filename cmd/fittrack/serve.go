package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/fittrack/internal"
	"github.com/2beens/fittrack/pkg"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the fittrack HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, secrets, err := loadConfig("fittrack-service")
		if err != nil {
			return err
		}

		log.Warnf("---->> running in [%s] environment", cfg.Environment)
		log.Debugf("using port: %d", cfg.Port)
		log.Debugf("using server logs path: [%s]", cfg.LogsPath)

		if secrets.AdminUsername == "" || secrets.AdminPasswordHash == "" {
			log.Warnln("admin bootstrap skipped, set FITTRACK_ADMIN_USERNAME and FITTRACK_ADMIN_PASSWORD_HASH to enable it")
		}
		if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
			log.Warnln("OTEL_SERVICE_NAME env var not set")
		}
		if secrets.HoneycombEnabled {
			if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
				log.Warnln("HONEYCOMB_API_KEY env var not set")
			}
		} else {
			log.Debugln("honeycomb tracing disabled")
		}

		versionInfo, err := tryGetLastCommitHash(cmd.Context())
		if err != nil {
			log.Tracef("failed to get last commit hash / version info: %s", err)
			versionInfo = "unknown"
		} else {
			log.Tracef("running version: %s", versionInfo)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server, err := internal.NewServer(ctx, internal.NewServerParams{
			Config:      cfg,
			Secrets:     secrets,
			VersionInfo: versionInfo,
		})
		if err != nil {
			return fmt.Errorf("new server: %w", err)
		}

		server.Serve(cfg.Host, cfg.Port)

		<-ctx.Done()
		log.Warnf("signal received, shutting down ...")

		return server.GracefulShutdown()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// tryGetLastCommitHash assumes the binary runs from within the project checkout.
func tryGetLastCommitHash(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
