package sql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/syssam/nexus/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatsDriver tests statistics collection around queries and execs.
func TestStatsDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := NewStatsDriver(OpenDB(dialect.Postgres, db))

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT id FROM users", []any{}, rows))
	require.NoError(t, rows.Close())

	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, drv.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("boom"))
	require.Error(t, drv.Query(context.Background(), "SELECT id FROM users", []any{}, &Rows{}))

	stats := drv.QueryStats().Stats()
	assert.Equal(t, int64(2), stats.TotalQueries)
	assert.Equal(t, int64(1), stats.TotalExecs)
	assert.Equal(t, int64(1), stats.Errors)
	assert.Greater(t, stats.TotalDuration, time.Duration(0))
	assert.Greater(t, stats.AvgQueryDuration(), time.Duration(0))
	require.NoError(t, mock.ExpectationsWereMet())

	drv.QueryStats().Reset()
	reset := drv.QueryStats().Stats()
	assert.Equal(t, int64(0), reset.TotalQueries)
	assert.Equal(t, int64(0), reset.TotalExecs)
	assert.Equal(t, int64(0), reset.Errors)
}

// TestStatsDriverSlowQueries tests slow query detection and the hook.
func TestStatsDriverSlowQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var slow []string
	drv := NewStatsDriver(OpenDB(dialect.Postgres, db),
		WithSlowThreshold(0),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			slow = append(slow, query)
		}),
	)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT id FROM users", []any{}, rows))
	require.NoError(t, rows.Close())

	assert.Equal(t, int64(1), drv.QueryStats().Stats().SlowQueries)
	require.Len(t, slow, 1)
	assert.Contains(t, slow[0], "SELECT id FROM users")

	// Raising the threshold stops the hook from firing.
	drv.SetSlowThreshold(time.Hour)
	assert.Equal(t, time.Hour, drv.SlowThreshold())
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	require.NoError(t, drv.Query(context.Background(), "SELECT id FROM users", []any{}, rows))
	require.NoError(t, rows.Close())

	assert.Equal(t, int64(1), drv.QueryStats().Stats().SlowQueries)
	assert.Len(t, slow, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestStatsTx tests statistics collection inside transactions.
func TestStatsTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := NewStatsDriver(OpenDB(dialect.Postgres, db))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	rows := &Rows{}
	require.NoError(t, tx.Query(context.Background(), "SELECT id FROM users", []any{}, rows))
	require.NoError(t, rows.Close())
	require.NoError(t, tx.Exec(context.Background(), "UPDATE users SET name = 'x'", []any{}, nil))
	require.NoError(t, tx.Commit())

	stats := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), stats.TotalQueries)
	assert.Equal(t, int64(1), stats.TotalExecs)
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestStatsSnapshot tests snapshot formatting and averaging.
func TestStatsSnapshot(t *testing.T) {
	s := StatsSnapshot{
		TotalQueries:  3,
		TotalExecs:    1,
		TotalDuration: 4 * time.Millisecond,
		SlowQueries:   2,
		Errors:        1,
	}
	assert.Equal(t, time.Millisecond, s.AvgQueryDuration())
	str := s.String()
	assert.Contains(t, str, "queries=3")
	assert.Contains(t, str, "execs=1")
	assert.Contains(t, str, "slow=2")
	assert.Contains(t, str, "errors=1")

	assert.Equal(t, time.Duration(0), StatsSnapshot{}.AvgQueryDuration())
}

// TestDebugDriver tests debug logging around driver operations.
func TestDebugDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var logs []string
	drv := NewDebugDriver(OpenDB(dialect.Postgres, db), DebugWithLog(func(_ context.Context, v ...any) {
		logs = append(logs, fmt.Sprint(v...))
	}))

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT id FROM users WHERE id = $1", []any{1}, rows))
	require.NoError(t, rows.Close())

	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, drv.Exec(context.Background(), "DELETE FROM users", []any{}, nil))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "UPDATE users SET name = 'x'", []any{}, nil))
	require.NoError(t, tx.Commit())

	require.NoError(t, mock.ExpectationsWereMet())
	joined := strings.Join(logs, "\n")
	assert.Contains(t, joined, "query: SELECT id FROM users WHERE id = $1")
	assert.Contains(t, joined, "args: [1]")
	assert.Contains(t, joined, "exec: DELETE FROM users")
	assert.Contains(t, joined, "begin transaction")
	assert.Contains(t, joined, "tx exec: UPDATE users")
	assert.Contains(t, joined, "commit transaction")
}

// TestOpenWithStats tests the one-step open helper.
func TestOpenWithStats(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("stats_dsn")
	require.NoError(t, err)

	drv, stats, err := OpenWithStats("sqlmock", "stats_dsn")
	require.NoError(t, err)
	defer drv.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, drv.Exec(context.Background(), "CREATE TABLE posts (id integer)", []any{}, nil))
	assert.Equal(t, int64(1), stats.Stats().TotalExecs)
	require.NoError(t, mock.ExpectationsWereMet())

	_, _, err = OpenWithStats("no-such-driver", "dsn")
	require.Error(t, err)
}
