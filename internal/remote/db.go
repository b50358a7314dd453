// Package remote is the Postgres-backed store. Every operation issues one
// parameterized statement and returns raw rows in the snake_case shape.
package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/eleven-am/taskdeck/internal/logger"
)

// ErrNotConfigured is returned by every operation when no connection string
// was supplied. It is an expected state, not a failure of the database.
var ErrNotConfigured = errors.New("remote store not configured")

type Config struct {
	URL              string
	ConnMaxLifetime  time.Duration
	MaxOpenConns     int
	MaxIdleConns     int
	StatementTimeout time.Duration
}

func NewConfig(url string) *Config {
	return &Config{
		URL:              url,
		ConnMaxLifetime:  10 * time.Minute,
		MaxOpenConns:     10,
		MaxIdleConns:     5,
		StatementTimeout: 30 * time.Second,
	}
}

// executor is satisfied by both *sqlx.DB and *sqlx.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

var (
	_ executor = (*sqlx.DB)(nil)
	_ executor = (*sqlx.Tx)(nil)
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Store struct {
	db  *sqlx.DB
	log logger.Logger
}

// Open connects to Postgres. An empty URL yields an unconfigured Store
// rather than an error; its operations all fail with ErrNotConfigured.
// Open does not ping, so an unreachable server is reported by TestConnection.
func Open(cfg *Config) (*Store, error) {
	if cfg == nil || cfg.URL == "" {
		logger.DB().Warn("no database URL configured, remote store disabled")
		return &Store{log: logger.DB()}, nil
	}

	db, err := sqlx.Open("postgres", withStatementTimeout(cfg.URL, cfg.StatementTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	return &Store{db: db, log: logger.DB()}, nil
}

// withStatementTimeout passes statement_timeout as a run-time parameter; lib/pq
// forwards unknown connection parameters to the server.
func withStatementTimeout(dsn string, d time.Duration) string {
	if d <= 0 {
		return dsn
	}
	ms := strconv.FormatInt(d.Milliseconds(), 10)
	u, err := url.Parse(dsn)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return dsn + " statement_timeout=" + ms
	}
	q := u.Query()
	if q.Get("statement_timeout") == "" {
		q.Set("statement_timeout", ms)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// NewWithDB wraps an existing handle.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db, log: logger.DB()}
}

// Configured reports whether a connection string was supplied.
func (s *Store) Configured() bool {
	return s.db != nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// TestConnection is the availability probe.
func (s *Store) TestConnection(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	var one int
	if err := s.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return ParsePostgreSQLError(err, "ping", "")
	}
	return nil
}

func (s *Store) ready() error {
	if s.db == nil {
		return ErrNotConfigured
	}
	return nil
}

func selectAll[T any](ctx context.Context, ex executor, op, table string, q squirrel.Sqlizer) ([]T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, &Error{Op: op, Table: table, Err: fmt.Errorf("failed to build query: %w", err)}
	}
	rows := []T{}
	if err := ex.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ParsePostgreSQLError(err, op, table)
	}
	return rows, nil
}

func getOne[T any](ctx context.Context, ex executor, op, table string, q squirrel.Sqlizer) (*T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, &Error{Op: op, Table: table, Err: fmt.Errorf("failed to build query: %w", err)}
	}
	var row T
	if err := ex.GetContext(ctx, &row, query, args...); err != nil {
		return nil, ParsePostgreSQLError(err, op, table)
	}
	return &row, nil
}

// deleteByID removes one row; zero affected rows is ErrNotFound.
func deleteByID(ctx context.Context, ex executor, table string, id int64) error {
	query, args, err := psql.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return &Error{Op: "delete", Table: table, Err: fmt.Errorf("failed to build query: %w", err)}
	}

	result, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return ParsePostgreSQLError(err, "delete", table)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &Error{Op: "delete", Table: table, Err: fmt.Errorf("failed to get rows affected: %w", err)}
	}
	if affected == 0 {
		return &Error{Op: "delete", Table: table, Err: errNotFound}
	}
	return nil
}

// coalesce keeps the stored value when v is nil.
func coalesce(column string, v interface{}) squirrel.Sqlizer {
	return squirrel.Expr("COALESCE(?, "+column+")", v)
}

// coalesceCast is coalesce for parameters Postgres cannot type on its own.
func coalesceCast(column, typ string, v interface{}) squirrel.Sqlizer {
	return squirrel.Expr("COALESCE(?::"+typ+", "+column+")", v)
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
