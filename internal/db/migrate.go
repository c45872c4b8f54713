package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migrateLogger struct {
	verbose bool
}

func (l migrateLogger) Printf(format string, v ...any) {
	log.Debugf("[migrate] "+format, v...)
}

func (l migrateLogger) Verbose() bool {
	return l.verbose
}

func newMigrator(connString string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, connString)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	m.Log = migrateLogger{verbose: log.IsLevelEnabled(log.DebugLevel)}
	return m, nil
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Errorf("close migrations source: %s", srcErr)
	}
	if dbErr != nil {
		log.Errorf("close migrations db: %s", dbErr)
	}
}

// MigrateUp applies all pending migrations. Having nothing to apply is not an error.
func MigrateUp(connString string) error {
	m, err := newMigrator(connString)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	log.Infof("db schema at version %d (dirty: %t)", version, dirty)
	return nil
}

// MigrateDown rolls back the given number of migrations, or all of them when steps <= 0.
func MigrateDown(connString string, steps int) error {
	m, err := newMigrator(connString)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}
