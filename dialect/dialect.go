package dialect

import (
	"context"
)

// Supported dialects. The constants double as database/sql driver
// names: github.com/go-sql-driver/mysql, modernc.org/sqlite and
// github.com/lib/pq register themselves under these exact names.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// ExecQuerier wraps the two basic Exec and Query methods.
type ExecQuerier interface {
	// Exec executes a statement that does not return records. For SQL
	// drivers, args is expected to be a []any and v a *sql.Result or nil.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns records. For SQL drivers,
	// args is expected to be a []any and v a *sql.Rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all database operations.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	// The provided context is used until the transaction is committed or rolled back.
	Tx(context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps transaction behavior on top of the basic Exec and Query methods.
type Tx interface {
	ExecQuerier
	// Commit commits the transaction.
	Commit() error
	// Rollback rolls back the transaction.
	Rollback() error
}
