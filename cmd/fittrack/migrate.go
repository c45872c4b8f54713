package main

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/fittrack/internal/config"
	"github.com/2beens/fittrack/internal/db"
)

var migrateDownSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		connString, err := migrationsConnString()
		if err != nil {
			return err
		}
		return db.MigrateUp(connString)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations (all of them unless --steps is set)",
	RunE: func(_ *cobra.Command, _ []string) error {
		connString, err := migrationsConnString()
		if err != nil {
			return err
		}
		if err := db.MigrateDown(connString, migrateDownSteps); err != nil {
			return err
		}
		log.Infof("migrate down done, steps: %d", migrateDownSteps)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back, 0 rolls back everything")

	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func migrationsConnString() (string, error) {
	cfg, secrets, err := loadConfig("fittrack-migrate")
	// migrations never issue tokens
	if err != nil && !errors.Is(err, config.ErrWeakJWTSecret) {
		return "", err
	}

	return db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: secrets.PostgresPassword,
	}.ConnString(), nil
}
