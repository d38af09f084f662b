// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db is the local persistence layer of hubclient. It keeps the hub
// session cookie between runs and an activity trail of what the user did.
// SQLite is the default; PostgreSQL and MySQL work through the same bun
// models so a team can share one database.
package db // import "github.com/apphub/hubclient/internal/db"

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// Store is a bun-backed store for credentials and activity.
type Store struct {
	bun    *bun.DB
	dbType string
}

// driverFor maps a configured database type to its database/sql driver name.
func driverFor(dbType string) (string, error) {
	switch dbType {
	case "sqlite":
		return "sqlite", nil
	case "postgres":
		// The pgx stdlib registers driver name "pgx".
		return "pgx", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported database type: '%s'", dbType)
	}
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// NewStoreFromDSN opens the database, creates missing tables and returns a
// Store. dbType is one of sqlite, postgres or mysql.
func NewStoreFromDSN(dbType, dsn string) (*Store, error) {
	driverName, err := driverFor(dbType)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen := envInt("HUBCLIENT_DB_MAX_OPEN_CONNS", 10)
	maxIdle := envInt("HUBCLIENT_DB_MAX_IDLE_CONNS", 10)
	// Every connection to ":memory:" is its own database.
	if dbType == "sqlite" && dsn == ":memory:" {
		maxOpen, maxIdle = 1, 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Duration(envInt("HUBCLIENT_DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second)
	dbLogf("db: opened %s driver in %s (max open=%d, idle=%d)", driverName, time.Since(start), maxOpen, maxIdle)

	s := &Store{bun: createBunDB(sqlDB, dbType), dbType: dbType}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.ensureSchema(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}
	return s, nil
}

// createBunDB wraps sqlDB with the bun dialect for dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "sqlite":
		return bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	start := time.Now()
	for _, m := range []any{(*credentialModel)(nil), (*activityModel)(nil)} {
		if _, err := s.bun.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	dbLogf("db: schema for %s ready in %s", s.dbType, time.Since(start))
	return nil
}

// Type returns the database type the store was opened with.
func (s *Store) Type() string { return s.dbType }

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.bun.Close()
}

// RunDBMaintenance performs engine-specific maintenance for the database at
// dsn: PRAGMA optimize, VACUUM and a WAL checkpoint on SQLite, VACUUM ANALYZE
// on PostgreSQL and OPTIMIZE TABLE on MySQL.
func RunDBMaintenance(dbType, dsn string) error {
	driverName, err := driverFor(dbType)
	if err != nil {
		return fmt.Errorf("unsupported db type for maintenance: %s", dbType)
	}
	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database for maintenance: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch dbType {
	case "sqlite":
		if _, err := sqlDB.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
			dbLogf("db: sqlite optimize failed (ignored): %v", err)
		}
		if _, err := sqlDB.ExecContext(ctx, "VACUUM;"); err != nil {
			return fmt.Errorf("sqlite vacuum failed: %w", err)
		}
		_, _ = sqlDB.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);")
		var res string
		if err := sqlDB.QueryRowContext(ctx, "PRAGMA integrity_check;").Scan(&res); err == nil && res != "ok" {
			return fmt.Errorf("sqlite integrity_check failed: %s", res)
		}
	case "postgres":
		if _, err := sqlDB.ExecContext(ctx, "VACUUM ANALYZE;"); err != nil {
			return fmt.Errorf("postgres vacuum failed: %w", err)
		}
	case "mysql":
		for _, table := range []string{credentialsTable, activityTable} {
			if _, err := sqlDB.ExecContext(ctx, fmt.Sprintf("OPTIMIZE TABLE %s", table)); err != nil {
				return fmt.Errorf("mysql optimize %s failed: %w", table, err)
			}
		}
	}
	return nil
}
