package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	noodle "github.com/glowcouch/storage-noodle"
)

// Backing is a SQL database used as backing storage for entities whose raw
// identifiers are of type R. It wraps a *sql.DB connection pool and is safe
// for concurrent use.
//
// The dialect marker D selects the generated bindings that may run against
// the database:
//
//	db, err := sql.Open[sql.SQLite, int64]("file:bakery.db")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	id, err := bakery.CookieCRUD{}.Create(ctx, db, cookie)
type Backing[D Dialect, R comparable] struct {
	Conn
	db   *sql.DB
	name string
}

// Option configures a Backing.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	slowThreshold time.Duration
	name          string
}

// WithLogger sets the logger statements and slow queries are logged to.
// Statements are logged at debug level. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSlowThreshold sets the threshold for slow query detection.
// Statements taking longer than this duration are counted as slow and
// logged at warn level. Default is 100ms; zero disables detection.
func WithSlowThreshold(d time.Duration) Option {
	return func(o *options) {
		o.slowThreshold = d
	}
}

// WithName overrides the name the backing reports in errors and logs.
// Defaults to the dialect name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// NewBacking wraps the given database with a Backing.
func NewBacking[D Dialect, R comparable](db *sql.DB, opts ...Option) *Backing[D, R] {
	var d D
	o := options{slowThreshold: defaultSlowThreshold, name: d.Name()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Backing[D, R]{
		Conn: Conn{
			ExecQuerier: db,
			dialect:     d.Name(),
			obs:         newObserver(o.logger.With("backing", o.name), o.slowThreshold),
		},
		db:   db,
		name: o.name,
	}
}

// Open opens the database identified by the data source name with the
// driver of the dialect D and returns a Backing for it.
func Open[D Dialect, R comparable](dsn string, opts ...Option) (*Backing[D, R], error) {
	var d D
	if n, ok := any(d).(dsnNormalizer); ok {
		var err error
		if dsn, err = n.normalizeDSN(dsn); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", d.Name(), err)
	}
	return NewBacking[D, R](db, opts...), nil
}

// Name implements noodle.BackingStorage.
func (b *Backing[D, R]) Name() string {
	return b.name
}

// ParseRawID implements noodle.BackingStorage.
func (b *Backing[D, R]) ParseRawID(s string) (R, error) {
	return ParseRawID[R](s)
}

// DB returns the underlying *sql.DB instance.
func (b *Backing[D, R]) DB() *sql.DB {
	return b.db
}

// Close closes the underlying connection pool.
func (b *Backing[D, R]) Close() error {
	return b.db.Close()
}

// Stats returns a snapshot of the statement statistics.
func (b *Backing[D, R]) Stats() StatsSnapshot {
	return b.obs.stats.Stats()
}

// ResetStats resets the statement statistics to zero.
func (b *Backing[D, R]) ResetStats() {
	b.obs.stats.Reset()
}

// SlowThreshold returns the current slow query threshold.
func (b *Backing[D, R]) SlowThreshold() time.Duration {
	return b.obs.threshold()
}

// SetSlowThreshold updates the slow query threshold.
func (b *Backing[D, R]) SetSlowThreshold(d time.Duration) {
	b.obs.setThreshold(d)
}

// InTx runs fn inside a transaction. The transaction is committed if fn
// returns nil and rolled back otherwise.
func (b *Backing[D, R]) InTx(ctx context.Context, fn func(tx *Tx) error) error {
	stx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("dialect/sql: begin: %w", err)
	}
	tx := &Tx{Conn: Conn{ExecQuerier: stx, dialect: b.dialect, obs: b.obs}, tx: stx}
	if err := fn(tx); err != nil {
		if rerr := stx.Rollback(); rerr != nil {
			return errors.Join(err, fmt.Errorf("dialect/sql: rollback: %w", rerr))
		}
		return err
	}
	if err := stx.Commit(); err != nil {
		return fmt.Errorf("dialect/sql: commit: %w", err)
	}
	return nil
}

var (
	_ noodle.BackingStorage[int64]  = (*Backing[SQLite, int64])(nil)
	_ noodle.BackingStorage[string] = (*Backing[Postgres, string])(nil)
	_ noodle.BackingStorage[uint64] = (*Backing[MySQL, uint64])(nil)
)
