package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/config"
)

//go:embed migrations/mysql/*.sql migrations/postgres/*.sql
var migrationFS embed.FS

// RunMigrations applies every pending versioned migration for the configured driver.
// It uses its own connection because the migrate drivers close the handle they are given.
func RunMigrations(cfg *config.Config, log *zap.Logger) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run up migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database schema is dirty at version %d", version)
	}

	log.Info("migrations applied", zap.String("driver", cfg.DBDriver), zap.Uint("version", version))
	return nil
}

func newMigrator(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFS, "migrations/"+cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("could not load migrations: %w", err)
	}

	switch cfg.DBDriver {
	case config.DriverMySQL:
		dsn, err := mysqlDSN(cfg.DBUrl, true)
		if err != nil {
			return nil, err
		}
		sqlDB, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("could not connect to mysql: %w", err)
		}
		driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("could not start mysql migration driver: %w", err)
		}
		return migrate.NewWithInstance("iofs", source, "mysql", driver)

	case config.DriverPostgres:
		sqlDB, err := sql.Open("pgx", cfg.DBUrl)
		if err != nil {
			return nil, fmt.Errorf("could not connect to postgres: %w", err)
		}
		driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("could not start postgres migration driver: %w", err)
		}
		return migrate.NewWithInstance("iofs", source, "pgx5", driver)

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
