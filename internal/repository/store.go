package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	_ "modernc.org/sqlite"             // sqlite driver
)

type Config struct {
	Driver      string // "sqlite" or "postgres"
	DSN         string // file path / :memory: for sqlite, conninfo for postgres
	MaxConns    int
	DialTimeout time.Duration
}

// Store owns the database handle shared by the per-entity repositories.
// SQLite is the default (and the in-memory mode the batch CLI uses);
// Postgres is available through the pgx stdlib adapter.
type Store struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

// Open connects, applies the schema, and verifies connectivity.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 10
	}

	var db *sql.DB
	var err error
	inmem := false
	switch cfg.Driver {
	case "", "sqlite":
		cfg.Driver = "sqlite"
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "study-tracker.db"
		}
		inmem = strings.Contains(dsn, "memory")
		if !inmem {
			dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		}
		db, err = sql.Open("sqlite", dsn)
	case "postgres":
		db, err = sql.Open("pgx", cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.Driver, "error", err)
		return nil, err
	}
	if inmem {
		// A second connection to an in-memory database opens a new, empty
		// database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxConns)
	}

	s := &Store{db: db, driver: cfg.Driver, logger: logger}

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("successfully connected to database", "driver", cfg.Driver)
	return s, nil
}

// Close closes the database connection gracefully.
func (s *Store) Close() {
	s.logger.Info("closing database connection")
	if err := s.db.Close(); err != nil {
		s.logger.Error("failed to close database", "error", err)
	}
}

// HealthCheck pings the database to catch DSN issues early.
func (s *Store) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.db.PingContext(ctx)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		grade_level TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scripts (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES students(id),
		title TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		grade_level TEXT NOT NULL DEFAULT '',
		source_path TEXT NOT NULL,
		format TEXT NOT NULL,
		topics TEXT NOT NULL DEFAULT '[]',
		challenging_topics TEXT NOT NULL DEFAULT '[]',
		uploaded_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS memorandums (
		id TEXT PRIMARY KEY,
		script_id TEXT NOT NULL REFERENCES scripts(id),
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS study_plans (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES students(id),
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS report_cards (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES students(id),
		source_path TEXT NOT NULL,
		format TEXT NOT NULL,
		grade TEXT NOT NULL DEFAULT '',
		term TEXT NOT NULL DEFAULT '',
		grades TEXT NOT NULL DEFAULT '{}',
		uploaded_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS career_recommendations (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES students(id),
		report_card_id TEXT NOT NULL REFERENCES report_cards(id),
		careers TEXT NOT NULL DEFAULT '[]',
		strengths TEXT NOT NULL DEFAULT '[]',
		areas_for_improvement TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL
	)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}

// rebind converts ?-placeholders to the $N form pgx expects. SQL in this
// package is written with ? and rebound per driver.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}
