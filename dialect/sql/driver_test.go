package sql

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	noodle "github.com/glowcouch/storage-noodle"
	"github.com/glowcouch/storage-noodle/dialect"
)

type recipe struct{}

func newMock(t *testing.T, opts ...Option) (*Backing[SQLite, int64], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBacking[SQLite, int64](db, opts...), mock
}

func TestNewBacking(t *testing.T) {
	b, _ := newMock(t)
	assert.Equal(t, dialect.SQLite, b.Name())
	assert.Equal(t, dialect.SQLite, b.Dialect())
	assert.NotNil(t, b.DB())
	assert.Equal(t, defaultSlowThreshold, b.SlowThreshold())

	named, _ := newMock(t, WithName("bakery"), WithSlowThreshold(time.Second))
	assert.Equal(t, "bakery", named.Name())
	assert.Equal(t, dialect.SQLite, named.Dialect())
	assert.Equal(t, time.Second, named.SlowThreshold())
	named.SetSlowThreshold(time.Minute)
	assert.Equal(t, time.Minute, named.SlowThreshold())
}

func TestDialectMarkers(t *testing.T) {
	tests := []struct {
		d      Dialect
		name   string
		driver string
	}{
		{SQLite{}, dialect.SQLite, "sqlite"},
		{Postgres{}, dialect.Postgres, "postgres"},
		{MySQL{}, dialect.MySQL, "mysql"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.d.Name())
			assert.Equal(t, tt.driver, tt.d.DriverName())
		})
	}
}

func TestBackingExec(t *testing.T) {
	b, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE Recipe SET Ingredients = ? WHERE Id = ?").
		WithArgs("flour", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	res, err := b.Exec(ctx, "UPDATE Recipe SET Ingredients = ? WHERE Id = ?", "flour", noodle.NewAssocID[recipe](int64(1)))
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mock.ExpectExec("DELETE FROM Recipe").WillReturnError(errors.New("database is locked"))
	_, err = b.Exec(ctx, "DELETE FROM Recipe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dialect/sql: exec: database is locked")

	require.NoError(t, mock.ExpectationsWereMet())
	stats := b.Stats()
	assert.Equal(t, int64(2), stats.TotalExecs)
	assert.Equal(t, int64(1), stats.Errors)
}

func TestBackingQueryRow(t *testing.T) {
	b, mock := newMock(t)
	ctx := context.Background()

	t.Run("Row", func(t *testing.T) {
		mock.ExpectQuery("SELECT Ingredients FROM Recipe WHERE Id = ?").
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"Ingredients"}).AddRow("sugar"))
		var ingredients string
		require.NoError(t, b.QueryRow(ctx, "SELECT Ingredients FROM Recipe WHERE Id = ?", int64(4)).Scan(&ingredients))
		assert.Equal(t, "sugar", ingredients)
	})

	t.Run("NoRows", func(t *testing.T) {
		mock.ExpectQuery("SELECT Ingredients FROM Recipe WHERE Id = ?").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"Ingredients"}))
		var ingredients string
		err := b.QueryRow(ctx, "SELECT Ingredients FROM Recipe WHERE Id = ?", int64(5)).Scan(&ingredients)
		assert.True(t, errors.Is(err, ErrNoRows))
	})

	t.Run("Failure", func(t *testing.T) {
		mock.ExpectQuery("SELECT Ingredients FROM Recipe WHERE Id = ?").
			WithArgs(int64(6)).
			WillReturnError(errors.New("no such table: Recipe"))
		var ingredients string
		err := b.QueryRow(ctx, "SELECT Ingredients FROM Recipe WHERE Id = ?", int64(6)).Scan(&ingredients)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNoRows))
		assert.Contains(t, err.Error(), "no such table")
	})

	require.NoError(t, mock.ExpectationsWereMet())
	stats := b.Stats()
	assert.Equal(t, int64(3), stats.TotalQueries)
	assert.Equal(t, int64(1), stats.Errors, "no rows is not an error")

	b.ResetStats()
	assert.Equal(t, StatsSnapshot{}, b.Stats())
}

func TestBackingInTx(t *testing.T) {
	b, mock := newMock(t)
	ctx := context.Background()

	t.Run("Commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM Recipe WHERE Id = ?").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		err := b.InTx(ctx, func(tx *Tx) error {
			_, err := tx.Exec(ctx, "DELETE FROM Recipe WHERE Id = ?", int64(1))
			return err
		})
		require.NoError(t, err)
	})

	t.Run("Rollback", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()
		boom := errors.New("boom")
		err := b.InTx(ctx, func(*Tx) error { return boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("RollbackFailure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(errors.New("connection reset"))
		boom := errors.New("boom")
		err := b.InTx(ctx, func(*Tx) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "rollback: connection reset")
	})

	t.Run("BeginFailure", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
		err := b.InTx(ctx, func(*Tx) error { return nil })
		assert.ErrorContains(t, err, "dialect/sql: begin")
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlowQueryLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	b, mock := newMock(t, WithLogger(logger), WithSlowThreshold(time.Nanosecond))

	mock.ExpectExec("SELECT 1").WillDelayFor(time.Millisecond).WillReturnResult(sqlmock.NewResult(0, 0))
	_, err := b.Exec(context.Background(), "SELECT 1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), b.Stats().SlowQueries)
	assert.Contains(t, buf.String(), "slow query detected")
	assert.Contains(t, buf.String(), "backing=sqlite")
}

type flavour string

func TestBindArgs(t *testing.T) {
	u := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	var nilID *noodle.AssocID[recipe, int64]
	argv, err := bindArgs([]any{
		"plain",
		noodle.NewAssocID[recipe](int64(3)),
		u,
		nilID,
		flavour("chocolate"),
		[]byte("crumb"),
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"plain", int64(3), u.String(), nil, "chocolate", []byte("crumb")}, argv)
}

func TestStatsSnapshot(t *testing.T) {
	s := StatsSnapshot{TotalQueries: 3, TotalExecs: 1, TotalDuration: 4 * time.Millisecond, SlowQueries: 1}
	assert.Equal(t, time.Millisecond, s.AvgQueryDuration())
	assert.Equal(t, "queries=3 execs=1 duration=4ms avg=1ms slow=1 errors=0", s.String())
	assert.Zero(t, StatsSnapshot{}.AvgQueryDuration())
}

func TestParseRawID(t *testing.T) {
	t.Run("Int64", func(t *testing.T) {
		id, err := ParseRawID[int64]("42")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("Uint32Overflow", func(t *testing.T) {
		_, err := ParseRawID[uint32]("4294967296")
		assert.ErrorIs(t, err, noodle.ErrInvalidRawID)
	})

	t.Run("String", func(t *testing.T) {
		id, err := ParseRawID[string]("any text")
		require.NoError(t, err)
		assert.Equal(t, "any text", id)
	})

	t.Run("UUID", func(t *testing.T) {
		id, err := ParseRawID[uuid.UUID]("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		require.NoError(t, err)
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id.String())

		_, err = ParseRawID[uuid.UUID]("not-a-uuid")
		assert.ErrorIs(t, err, noodle.ErrInvalidRawID)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := ParseRawID[float64]("1.5")
		assert.ErrorIs(t, err, noodle.ErrInvalidRawID)
		assert.ErrorIs(t, err, errUnsupportedRawID)
	})

	t.Run("Backing", func(t *testing.T) {
		b, _ := newMock(t)
		id, err := b.ParseRawID("7")
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		_, err = b.ParseRawID("seven")
		assert.ErrorIs(t, err, noodle.ErrInvalidRawID)
	})
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := MySQLDSN("baker:secret@tcp(localhost:3306)/bakery")
	require.NoError(t, err)
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=true")

	_, err = MySQLDSN("not a dsn")
	assert.ErrorContains(t, err, "parse mysql dsn")
}

func TestOpenSQLite(t *testing.T) {
	b, err := Open[SQLite, int64](":memory:")
	require.NoError(t, err)
	defer b.Close()

	ctx := context.Background()
	var n int
	require.NoError(t, b.QueryRow(ctx, "SELECT 1 + ?", 1).Scan(&n))
	assert.Equal(t, 2, n)
}
