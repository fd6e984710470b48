package sql

import (
	"context"
	"fmt"
	"strings"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/dialect"
)

// Finder loads single rows by their key column, backing the generic
// node lookup for collections stored in SQL tables. Its Find method
// satisfies nexus.FindFunc.
type Finder struct {
	drv       dialect.Driver
	table     string
	keyColumn string
	columns   []string
}

// NewFinder returns a finder over the given table, addressing rows by
// keyColumn.
func NewFinder(drv dialect.Driver, table, keyColumn string) *Finder {
	return &Finder{drv: drv, table: table, keyColumn: keyColumn}
}

// SetColumns narrows the selected columns. By default all table columns
// are selected.
func (f *Finder) SetColumns(columns ...string) *Finder {
	f.columns = columns
	return f
}

// Find loads the row whose key column equals id. The key value is bound
// as text and converted by the database. A missing row yields a
// not-found error carrying the table name and the searched key.
func (f *Finder) Find(ctx context.Context, id string) (nexus.Value, error) {
	if err := f.validate(); err != nil {
		return nexus.Value{}, nexus.NewQueryError(f.table, "find", err)
	}
	d := f.drv.Dialect()
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(f.columns) == 0 {
		sb.WriteString("*")
	} else {
		for i, c := range f.columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(quoteIdent(d, c))
		}
	}
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(d, f.table))
	sb.WriteString(" WHERE ")
	sb.WriteString(quoteIdent(d, f.keyColumn))
	sb.WriteString(" = ")
	if d == dialect.Postgres {
		sb.WriteString("$1")
	} else {
		sb.WriteString("?")
	}
	sb.WriteString(" LIMIT 1")
	rows := &Rows{}
	if err := f.drv.Query(ctx, sb.String(), []any{id}, rows); err != nil {
		return nexus.Value{}, nexus.NewQueryError(f.table, "find", err)
	}
	defer rows.Close()
	values, err := ScanValues(rows)
	if err != nil {
		return nexus.Value{}, nexus.NewQueryError(f.table, "find", err)
	}
	if len(values) == 0 {
		return nexus.Value{}, nexus.NewNotFoundErrorWithID(f.table, id)
	}
	return values[0], nil
}

func (f *Finder) validate() error {
	if !isValidIdentifier(f.table) {
		return fmt.Errorf("invalid table name %q", f.table)
	}
	if !isValidIdentifier(f.keyColumn) {
		return fmt.Errorf("invalid key column %q", f.keyColumn)
	}
	for _, c := range f.columns {
		if !isValidIdentifier(c) {
			return fmt.Errorf("invalid column name %q", c)
		}
	}
	return nil
}

var _ nexus.FindFunc = (*Finder)(nil).Find
