package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"time"

	// Database drivers for the dialect markers.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrNoRows is returned by Row.Scan when the query selected no rows.
var ErrNoRows = sql.ErrNoRows

type (
	// Result is an alias to sql.Result.
	Result = sql.Result
	// TxOptions holds the transaction options to be used in DB.BeginTx.
	TxOptions = sql.TxOptions
)

// ExecQuerier wraps the standard Exec and QueryRow methods. It is
// implemented by *sql.DB, *sql.Conn and *sql.Tx.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Conn executes statements against an ExecQuerier, recording them in the
// observer of the owning Backing.
type Conn struct {
	ExecQuerier
	dialect string
	obs     *observer
}

// Exec executes a statement that returns no rows.
func (c Conn) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	argv, err := bindArgs(args)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: exec: %w", err)
	}
	start := time.Now()
	res, err := c.ExecContext(ctx, query, argv...)
	c.obs.record(ctx, query, argv, start, err, false)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: exec: %w", err)
	}
	return res, nil
}

// QueryRow executes a query that is expected to return at most one row.
// Errors are deferred until Row.Scan is called; a query that selected no
// rows reports ErrNoRows.
func (c Conn) QueryRow(ctx context.Context, query string, args ...any) *Row {
	argv, err := bindArgs(args)
	if err != nil {
		return &Row{err: fmt.Errorf("dialect/sql: query: %w", err)}
	}
	start := time.Now()
	return &Row{
		row: c.QueryRowContext(ctx, query, argv...),
		done: func(err error) {
			if errors.Is(err, sql.ErrNoRows) {
				err = nil
			}
			c.obs.record(ctx, query, argv, start, err, true)
		},
	}
}

// Dialect returns the name of the dialect the connection speaks.
func (c Conn) Dialect() string {
	return c.dialect
}

// Row is the result of QueryRow.
type Row struct {
	row  *sql.Row
	err  error
	done func(error)
}

// Scan copies the columns of the selected row into dest. It returns
// ErrNoRows, unwrapped, if the query selected no rows.
func (r *Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	err := r.row.Scan(dest...)
	if r.done != nil {
		r.done(err)
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNoRows
	default:
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
}

// Tx is a transaction started by Backing.InTx.
type Tx struct {
	Conn
	tx *sql.Tx
}

// bindArgs resolves driver.Valuer arguments to their driver values, so that
// raw identifiers and noodle.AssocID fields bind the same way on every
// driver, including drivers that implement driver.NamedValueChecker.
func bindArgs(args []any) ([]any, error) {
	argv := make([]any, len(args))
	for i, arg := range args {
		vr, ok := arg.(driver.Valuer)
		if !ok {
			v, err := namedBasic(arg)
			if err != nil {
				return nil, fmt.Errorf("bind argument %d: %w", i+1, err)
			}
			argv[i] = v
			continue
		}
		if rv := reflect.ValueOf(vr); rv.Kind() == reflect.Pointer && rv.IsNil() {
			continue
		}
		v, err := vr.Value()
		if err != nil {
			return nil, fmt.Errorf("bind argument %d: %w", i+1, err)
		}
		argv[i] = v
	}
	return argv, nil
}

// namedBasic converts values of defined types with a basic underlying type,
// such as `type Flavour string`, to their underlying driver value. Drivers
// with a NamedValueChecker may reject them otherwise.
func namedBasic(arg any) (any, error) {
	if arg == nil {
		return nil, nil
	}
	if _, ok := arg.(time.Time); ok {
		return arg, nil
	}
	t := reflect.TypeOf(arg)
	if t.PkgPath() == "" || t.Kind() == reflect.Struct {
		return arg, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(arg)
}
