package sql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/dialect"
)

// DefaultPageSize bounds page windows when the request carries no limit.
const DefaultPageSize = 50

// Paginator pages through one table's rows in offset windows, compiling
// filter conditions to dialect-specific WHERE clauses. It implements
// nexus.Paginator, making any inspected or declared table listable.
type Paginator struct {
	drv      dialect.Driver
	table    string
	columns  []string
	orderBy  string
	pageSize int
	cache    nexus.Cache
	ttl      time.Duration
}

// PaginatorOption configures a Paginator.
type PaginatorOption func(*Paginator)

// WithColumns narrows the selected columns. By default all table
// columns are selected.
func WithColumns(columns ...string) PaginatorOption {
	return func(p *Paginator) {
		p.columns = columns
	}
}

// WithOrderBy fixes the pagination order by the given column. Offset
// windows are only deterministic under a total order; the table's
// primary key is the usual choice.
func WithOrderBy(column string) PaginatorOption {
	return func(p *Paginator) {
		p.orderBy = column
	}
}

// WithPageSize sets the window size used when the request has no limit.
// Default is DefaultPageSize.
func WithPageSize(n int) PaginatorOption {
	return func(p *Paginator) {
		p.pageSize = n
	}
}

// WithPageCache caches encoded pages under keys derived from the table
// name, the rendered condition and the offset window. Cache failures
// are logged and fall through to the database.
func WithPageCache(cache nexus.Cache, ttl time.Duration) PaginatorOption {
	return func(p *Paginator) {
		p.cache, p.ttl = cache, ttl
	}
}

// NewPaginator returns a paginator over the given table.
//
// Example:
//
//	drv, _ := sql.Open(dialect.Postgres, dsn)
//	posts := sql.NewPaginator(drv, "posts", sql.WithOrderBy("id"))
//	page, err := posts.Paginate(ctx, nexus.PageInput{Limit: 10})
func NewPaginator(drv dialect.Driver, table string, opts ...PaginatorOption) *Paginator {
	p := &Paginator{drv: drv, table: table, pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Paginate implements nexus.Paginator.
func (p *Paginator) Paginate(ctx context.Context, input nexus.PageInput) (*nexus.Page, error) {
	if err := p.validate(); err != nil {
		return nil, nexus.NewQueryError(p.table, "paginate", err)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = p.pageSize
	}
	where, args, err := CompileWhere(p.drv.Dialect(), p.table, input.Condition)
	if err != nil {
		return nil, nexus.NewQueryError(p.table, "compile", err)
	}
	var key string
	if p.cache != nil {
		key = p.cacheKey(input.Condition, limit, input.Offset)
		if page, ok := p.cachedPage(ctx, key); ok {
			return page, nil
		}
	}
	total, err := p.count(ctx, where, args)
	if err != nil {
		return nil, err
	}
	values, err := p.window(ctx, where, args, limit, input.Offset)
	if err != nil {
		return nil, err
	}
	page := &nexus.Page{
		Values:  values,
		Total:   total,
		HasNext: input.Offset+len(values) < total,
	}
	if p.cache != nil {
		p.storePage(ctx, key, page)
	}
	return page, nil
}

func (p *Paginator) validate() error {
	if !isValidIdentifier(p.table) {
		return fmt.Errorf("invalid table name %q", p.table)
	}
	for _, c := range p.columns {
		if !isValidIdentifier(c) {
			return fmt.Errorf("invalid column name %q", c)
		}
	}
	if p.orderBy != "" && !isValidIdentifier(p.orderBy) {
		return fmt.Errorf("invalid order column %q", p.orderBy)
	}
	return nil
}

func (p *Paginator) count(ctx context.Context, where string, args []any) (int, error) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(quoteIdent(p.drv.Dialect(), p.table))
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	rows := &Rows{}
	if err := p.drv.Query(ctx, sb.String(), args, rows); err != nil {
		return 0, nexus.NewQueryError(p.table, "count", err)
	}
	defer rows.Close()
	var total int
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return 0, nexus.NewQueryError(p.table, "count", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, nexus.NewQueryError(p.table, "count", err)
	}
	return total, nil
}

func (p *Paginator) window(ctx context.Context, where string, args []any, limit, offset int) ([]nexus.Value, error) {
	d := p.drv.Dialect()
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(p.columns) == 0 {
		sb.WriteString("*")
	} else {
		for i, c := range p.columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(quoteIdent(d, c))
		}
	}
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(d, p.table))
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	if p.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(quoteIdent(d, p.orderBy))
	}
	fmt.Fprintf(&sb, " LIMIT %d", limit)
	if offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", offset)
	}
	rows := &Rows{}
	if err := p.drv.Query(ctx, sb.String(), args, rows); err != nil {
		return nil, nexus.NewQueryError(p.table, "select", err)
	}
	defer rows.Close()
	values, err := ScanValues(rows)
	if err != nil {
		return nil, nexus.NewQueryError(p.table, "select", err)
	}
	return values, nil
}

// cachedPage is the msgpack shape of one cached page.
type cachedPage struct {
	Records []map[string]any `msgpack:"records"`
	Total   int              `msgpack:"total"`
	HasNext bool             `msgpack:"has_next"`
}

func (p *Paginator) cacheKey(cond nexus.Condition, limit, offset int) string {
	rendered := ""
	if cond != nil {
		rendered = cond.String()
	}
	return nexus.CacheKey{
		Table:     p.table,
		Condition: rendered,
		Limit:     limit,
		Offset:    offset,
	}.String()
}

func (p *Paginator) cachedPage(ctx context.Context, key string) (*nexus.Page, bool) {
	buf, err := p.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("page cache read failed", "table", p.table, "key", key, "err", err)
		return nil, false
	}
	if buf == nil {
		return nil, false
	}
	var cached cachedPage
	if err := msgpack.Unmarshal(buf, &cached); err != nil {
		slog.Warn("page cache decode failed", "table", p.table, "key", key, "err", err)
		return nil, false
	}
	page := &nexus.Page{Total: cached.Total, HasNext: cached.HasNext}
	for _, record := range cached.Records {
		page.Values = append(page.Values, nexus.NewValue(record))
	}
	return page, true
}

func (p *Paginator) storePage(ctx context.Context, key string, page *nexus.Page) {
	cached := cachedPage{
		Records: make([]map[string]any, len(page.Values)),
		Total:   page.Total,
		HasNext: page.HasNext,
	}
	for i, v := range page.Values {
		cached.Records[i] = v.Record
	}
	buf, err := msgpack.Marshal(cached)
	if err != nil {
		slog.Warn("page cache encode failed", "table", p.table, "key", key, "err", err)
		return
	}
	if err := p.cache.Set(ctx, key, buf, p.ttl); err != nil {
		slog.Warn("page cache write failed", "table", p.table, "key", key, "err", err)
	}
}

var _ nexus.Paginator = (*Paginator)(nil)
