// Package db provides database connectivity and migration functionality for the store.
// It establishes the pgx connection pool used for writes, exposes the same pool as an
// sqlx handle for the catalog read model, and runs golang-migrate migrations.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // "postgres://" migrate driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // "file://" migration source
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database/sql driver used by migrate's postgres driver

	"github.com/user/onlinestore/apperror"
	"github.com/user/onlinestore/config"
)

// NewPool establishes a pgxpool connection pool using the provided configuration
// and verifies it with a ping.
func NewPool(cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// Bound pool creation so an unreachable database does not block startup forever.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pgxpool for database %s", cfg.DBName), err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to the database %s with pgxpool", cfg.DBName), err)
	}

	slog.Info("database is available", "op", "db.NewPool", "db", cfg.DBName, "max_conns", cfg.MaxSize)
	return pool, nil
}

// NewReadDB wraps the pgx pool in a database/sql handle and then in sqlx, so read
// queries can scan straight into tagged structs. Both handles share the same
// connections; closing the returned DB does not close the pool.
func NewReadDB(pool *pgxpool.Pool) *sqlx.DB {
	return sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")
}

// migrationLogger adapts slog to migrate.Logger.
type migrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func (ml *migrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml *migrationLogger) Verbose() bool {
	return ml.verbose
}

func newMigrator(cfg *config.PoolConfig, migrationsPath string) (*migrate.Migrate, error) {
	m, err := migrate.New("file://"+migrationsPath, cfg.DSN())
	if err != nil {
		return nil, apperror.NewMigrationError("failed to create migrator", err)
	}
	m.Log = &migrationLogger{logger: slog.With("op", "db.migrate"), verbose: true}
	return m, nil
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		slog.Warn("error closing migration source", "err", srcErr)
	}
	if dbErr != nil {
		slog.Warn("error closing migration database instance", "err", dbErr)
	}
}

// RunMigrations applies any pending database migrations from migrationsPath.
// Files follow golang-migrate naming: {version}_{title}.up.sql / .down.sql.
func RunMigrations(cfg *config.PoolConfig, migrationsPath string) error {
	m, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return nil
		}
		return apperror.NewMigrationError("failed to run migrations", err)
	}
	m.Log.Printf("migrations applied")
	return nil
}

// RollbackMigrations reverts the given number of migration steps.
func RollbackMigrations(cfg *config.PoolConfig, migrationsPath string, steps int) error {
	if steps < 1 {
		return apperror.NewMigrationError(fmt.Sprintf("invalid number of steps: %d", steps), nil)
	}

	m, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to roll back migrations", err)
	}
	m.Log.Printf("rolled back %d migration(s)", steps)
	return nil
}
