package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/dialect"
)

// identRe matches plain SQL identifiers, optionally schema-qualified.
var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// isValidIdentifier reports whether s is safe to interpolate where bind
// parameters are not accepted, such as table, column and session
// variable names.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && identRe.MatchString(s)
}

// escapeValue doubles backslashes and single quotes so s can be
// embedded in a single-quoted SQL literal.
func escapeValue(s string) string {
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}

// Driver implements dialect.Driver on top of a database/sql connection
// pool.
type Driver struct {
	Conn
	dialect string
}

// NewDriver wraps the given Conn under the named dialect.
func NewDriver(dialect string, c Conn) *Driver {
	return &Driver{dialect: dialect, Conn: c}
}

// Open opens a connection pool through database/sql.Open and wraps it
// in a Driver.
func Open(dialect, source string) (*Driver, error) {
	db, err := sql.Open(dialect, source)
	if err != nil {
		return nil, err
	}
	return OpenDB(dialect, db), nil
}

// OpenDB wraps an existing database/sql.DB in a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, Conn{db, dialect})
}

// DB returns the underlying *sql.DB.
func (d Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect returns the base dialect name. Registered driver names may
// carry a variant suffix, which is stripped here.
func (d Driver) Dialect() string {
	for _, name := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres} {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	return d.dialect
}

// Tx starts and returns a transaction.
func (d *Driver) Tx(ctx context.Context) (dialect.Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with the given options. A driver whose
// connection already is a transaction cannot begin another one.
func (d *Driver) BeginTx(ctx context.Context, opts *TxOptions) (dialect.Tx, error) {
	if _, ok := d.ExecQuerier.(*sql.Tx); ok {
		return nil, nexus.ErrTxStarted
	}
	tx, err := d.DB().BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{
		Conn: Conn{tx, d.dialect},
		Tx:   tx,
	}, nil
}

// Close closes the underlying connection pool.
func (d *Driver) Close() error { return d.DB().Close() }

var _ dialect.Driver = (*Driver)(nil)

// Tx implements dialect.Tx.
type Tx struct {
	Conn
	driver.Tx
}

// ctxVarsKey carries session variables in a context.
type ctxVarsKey struct{}

// sessionVar is a single session variable assignment.
type sessionVar struct {
	name, value string
}

// WithVar attaches a session variable to the context. The driver sets
// the variable before every statement executed under this context,
// which is how per-request settings such as row-level security
// parameters reach the database. Attaching the same name again
// overrides the earlier value.
func WithVar(ctx context.Context, name, value string) context.Context {
	vars, _ := ctx.Value(ctxVarsKey{}).([]sessionVar)
	return context.WithValue(ctx, ctxVarsKey{}, append(vars, sessionVar{name: name, value: value}))
}

// WithIntVar attaches an integer session variable to the context.
func WithIntVar(ctx context.Context, name string, value int) context.Context {
	return WithVar(ctx, name, strconv.Itoa(value))
}

// VarFromContext returns the effective value of the named session
// variable, the one attached last.
func VarFromContext(ctx context.Context, name string) (string, bool) {
	vars, _ := ctx.Value(ctxVarsKey{}).([]sessionVar)
	for i := len(vars) - 1; i >= 0; i-- {
		if vars[i].name == name {
			return vars[i].value, true
		}
	}
	return "", false
}

// ExecQuerier is the statement execution surface shared by *sql.DB,
// *sql.Conn and *sql.Tx.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn adapts an ExecQuerier to the dialect execution contract and
// applies session variables attached to the context.
type Conn struct {
	ExecQuerier
	dialect string
}

// Exec executes a statement. args must be a []any. v receives the
// sql.Result when it is a *sql.Result and is ignored when nil.
// Constraint violations reported by the database are normalized, see
// WrapConstraint.
func (c Conn) Exec(ctx context.Context, query string, args, v any) (rerr error) {
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect []any for args", args)
	}
	ex, release, err := c.sessionTarget(ctx)
	if err != nil {
		return fmt.Errorf("dialect/sql: exec: set session vars: %w", err)
	}
	if release != nil {
		defer func() { rerr = errors.Join(rerr, release()) }()
	}
	switch v := v.(type) {
	case nil:
		if _, err := ex.ExecContext(ctx, query, argv...); err != nil {
			return fmt.Errorf("dialect/sql: exec: %w", WrapConstraint(err))
		}
	case *sql.Result:
		res, err := ex.ExecContext(ctx, query, argv...)
		if err != nil {
			return fmt.Errorf("dialect/sql: exec: %w", WrapConstraint(err))
		}
		*v = res
	default:
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Result", v)
	}
	return nil
}

// Query executes a query and stores the result set in v, which must be
// a *Rows. When session variables forced the query onto a dedicated
// connection, closing the Rows releases that connection.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	vr, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Rows", v)
	}
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect []any for args", args)
	}
	ex, release, err := c.sessionTarget(ctx)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: set session vars: %w", err)
	}
	rows, err := ex.QueryContext(ctx, query, argv...)
	if err != nil {
		if release != nil {
			err = errors.Join(err, release())
		}
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	*vr = Rows{rows}
	if release != nil {
		vr.ColumnScanner = hookedRows{rows, release}
	}
	return nil
}

// sessionTarget returns the ExecQuerier statements should run on, with
// the session variables from the context applied. Inside a transaction
// the variables are set on the transaction connection and expire with
// it. On a plain pool a single connection is checked out so the
// variables stay scoped to it; the returned release func resets them
// and returns the connection to the pool.
func (c Conn) sessionTarget(ctx context.Context) (ExecQuerier, func() error, error) {
	vars, _ := ctx.Value(ctxVarsKey{}).([]sessionVar)
	if len(vars) == 0 {
		return c, nil, nil
	}
	var (
		ex      ExecQuerier
		release func() error
	)
	switch e := c.ExecQuerier.(type) {
	case *sql.Tx:
		ex = e
	case *sql.DB:
		conn, err := e.Conn(ctx)
		if err != nil {
			return nil, nil, err
		}
		ex, release = conn, conn.Close
	default:
		return nil, nil, fmt.Errorf("unsupported ExecQuerier type: %T", c.ExecQuerier)
	}
	reset, err := c.setVars(ctx, ex, vars)
	if err != nil {
		if release != nil {
			err = errors.Join(err, release())
		}
		return nil, nil, err
	}
	if cls := release; release != nil && len(reset) > 0 {
		// Clear the variables before the connection goes back to the
		// pool. Cleanup runs on its own deadline so it still happens
		// when the statement context was canceled.
		release = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for _, q := range reset {
				if _, err := ex.ExecContext(ctx, q); err != nil {
					return errors.Join(err, cls())
				}
			}
			return cls()
		}
	}
	return ex, release, nil
}

// setVars executes one SET per attached variable, in attach order, and
// returns the statements that undo them. Names are restricted to plain
// identifiers and values are quote-escaped before interpolation, as SET
// does not take bind parameters on every backend.
func (c Conn) setVars(ctx context.Context, ex ExecQuerier, vars []sessionVar) ([]string, error) {
	var (
		reset []string
		seen  = make(map[string]struct{}, len(vars))
	)
	for _, v := range vars {
		if !isValidIdentifier(v.name) {
			return nil, fmt.Errorf("invalid session variable name: %q", v.name)
		}
		if _, ok := seen[v.name]; !ok {
			seen[v.name] = struct{}{}
			switch c.dialect {
			case dialect.Postgres:
				reset = append(reset, "RESET "+v.name)
			case dialect.MySQL:
				reset = append(reset, fmt.Sprintf("SET %s = NULL", v.name))
			}
		}
		if _, err := ex.ExecContext(ctx, fmt.Sprintf("SET %s = '%s'", v.name, escapeValue(v.value))); err != nil {
			return nil, err
		}
	}
	return reset, nil
}

type (
	// Rows is the result set handed to Query callers. It wraps the
	// scanner in a struct so it can be passed through an any without
	// copying sql.Rows locks.
	Rows struct{ ColumnScanner }
	// TxOptions holds the transaction options for BeginTx.
	TxOptions = sql.TxOptions
)

// ColumnScanner is the subset of *sql.Rows used to read result sets.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}

// hookedRows runs a hook after the underlying rows close, releasing
// the session connection the query ran on.
type hookedRows struct {
	ColumnScanner
	closer func() error
}

func (r hookedRows) Close() error {
	return errors.Join(r.ColumnScanner.Close(), r.closer())
}
