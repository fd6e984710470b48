// Package inspect derives a registry from a live database schema.
//
// Inspection opens an Atlas driver for the connection's dialect, reads
// the table graph and converts it: every table becomes a collection
// whose fields mirror the supported columns, a single-column primary
// key becomes the collection key, and a single-column foreign key
// becomes a relation from the referenced table to the referencing one.
// Each collection is bound to a paginator over its table, and keyed
// collections additionally get a finder.
//
// Columns whose types fall outside the field vocabulary are skipped,
// as are foreign keys spanning multiple columns; inspection surfaces
// what it can instead of failing on what it cannot.
package inspect

import (
	"context"
	"fmt"
	"sort"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/dialect"
	"github.com/syssam/nexus/dialect/sql"
	"github.com/syssam/nexus/querylanguage"
)

// Option configures an inspection.
type Option func(*options)

type options struct {
	schema string
	tables []string
}

// WithSchema selects the database schema to inspect. By default the
// connection's current schema is inspected.
func WithSchema(name string) Option {
	return func(o *options) { o.schema = name }
}

// WithTables narrows inspection to the given tables.
func WithTables(tables ...string) Option {
	return func(o *options) { o.tables = tables }
}

// Inspect reads the connected database's schema and converts it into a
// registry backed by the given driver.
func Inspect(ctx context.Context, drv *sql.Driver, opts ...Option) (*nexus.Registry, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	ins, err := openInspector(drv)
	if err != nil {
		return nil, err
	}
	s, err := ins.InspectSchema(ctx, o.schema, &schema.InspectOptions{Tables: o.tables})
	if err != nil {
		return nil, fmt.Errorf("inspect: schema %q: %w", o.schema, err)
	}
	return Convert(s, drv), nil
}

func openInspector(drv *sql.Driver) (schema.Inspector, error) {
	var (
		ins schema.Inspector
		err error
	)
	switch d := drv.Dialect(); d {
	case dialect.SQLite:
		ins, err = sqlite.Open(drv.DB())
	case dialect.MySQL:
		ins, err = mysql.Open(drv.DB())
	case dialect.Postgres:
		ins, err = postgres.Open(drv.DB())
	default:
		return nil, fmt.Errorf("inspect: unsupported dialect %q", d)
	}
	if err != nil {
		return nil, fmt.Errorf("inspect: open %s driver: %w", drv.Dialect(), err)
	}
	return ins, nil
}

// Convert builds a registry from an inspected schema. Tables convert
// in name order. A nil driver yields a registry without paginators or
// finders, which is mainly useful in tests.
func Convert(s *schema.Schema, drv *sql.Driver) *nexus.Registry {
	tables := make([]*schema.Table, len(s.Tables))
	copy(tables, s.Tables)
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	registry := nexus.NewRegistry()
	byTable := make(map[string]*nexus.Collection, len(tables))
	for _, t := range tables {
		col := convertTable(t, drv)
		byTable[t.Name] = col
		registry.AddCollections(col)
	}
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			if rel, ok := convertForeignKey(fk, byTable); ok {
				registry.AddRelations(rel)
			}
		}
	}
	return registry
}

func convertTable(t *schema.Table, drv *sql.Driver) *nexus.Collection {
	col := nexus.NewCollection(t.Name)
	if desc := commentOf(t.Attrs); desc != "" {
		col.SetDescription(desc)
	}
	columns := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		typ, ok := columnType(c)
		if !ok {
			continue
		}
		col.AddFields(&nexus.Field{
			Name:        c.Name,
			Description: commentOf(c.Attrs),
			Type:        typ,
		})
		columns = append(columns, c.Name)
	}
	var key *nexus.Field
	if pk := t.PrimaryKey; pk != nil && len(pk.Parts) == 1 && pk.Parts[0].C != nil {
		key = col.Field(pk.Parts[0].C.Name)
	}
	if key != nil {
		col.SetKey(key)
	}
	if drv == nil {
		return col
	}
	popts := []sql.PaginatorOption{sql.WithColumns(columns...)}
	if key != nil {
		popts = append(popts, sql.WithOrderBy(key.Name))
	}
	col.SetPaginator(sql.NewPaginator(drv, t.Name, popts...))
	if key != nil {
		finder := sql.NewFinder(drv, t.Name, key.Name).SetColumns(columns...)
		col.SetFind(finder.Find)
	}
	return col
}

// convertForeignKey models a single-column foreign key as a relation
// whose head is the referenced collection. The foreign key column
// names the relation; a unique constraint on it narrows the kind from
// O2M to O2O. Foreign keys over skipped columns produce no relation.
func convertForeignKey(fk *schema.ForeignKey, byTable map[string]*nexus.Collection) (*nexus.Relation, bool) {
	if fk.Table == nil || fk.RefTable == nil || len(fk.Columns) != 1 || len(fk.RefColumns) != 1 {
		return nil, false
	}
	head, tail := byTable[fk.RefTable.Name], byTable[fk.Table.Name]
	if head == nil || tail == nil {
		return nil, false
	}
	headKey := head.Field(fk.RefColumns[0].Name)
	tailField := tail.Field(fk.Columns[0].Name)
	if headKey == nil || tailField == nil {
		return nil, false
	}
	kind := nexus.O2M
	if uniqueColumn(fk.Table, tailField.Name) {
		kind = nexus.O2O
	}
	headColumn, tailColumn := headKey.Name, tailField.Name
	rel := &nexus.Relation{
		Name:    tailColumn,
		Rel:     kind,
		Head:    head,
		HeadKey: headKey,
		Tail:    tail,
		Condition: func(head nexus.Value) nexus.Condition {
			return querylanguage.FieldEQ(tailColumn, head.Get(headColumn))
		},
	}
	if find := head.Find(); find != nil {
		label := head.Name()
		rel.Resolve = func(ctx context.Context, tail nexus.Value) (nexus.Value, error) {
			v := tail.Get(tailColumn)
			if v == nil {
				return nexus.Value{}, nexus.NewNotFoundError(label)
			}
			return find(ctx, fmt.Sprint(v))
		}
	}
	return rel, true
}

func uniqueColumn(t *schema.Table, name string) bool {
	if pk := t.PrimaryKey; pk != nil && len(pk.Parts) == 1 && pk.Parts[0].C != nil && pk.Parts[0].C.Name == name {
		return true
	}
	for _, idx := range t.Indexes {
		if idx.Unique && len(idx.Parts) == 1 && idx.Parts[0].C != nil && idx.Parts[0].C.Name == name {
			return true
		}
	}
	return false
}

// columnType maps an inspected column type to a field type. Unlisted
// types report ok false and the column is dropped from the collection.
func columnType(c *schema.Column) (nexus.Type, bool) {
	if c.Type == nil {
		return nexus.Type{}, false
	}
	var typ nexus.Type
	switch c.Type.Type.(type) {
	case *schema.BoolType:
		typ = nexus.Bool()
	case *schema.IntegerType, *postgres.SerialType:
		typ = nexus.Int()
	case *schema.FloatType, *schema.DecimalType:
		typ = nexus.Float()
	case *schema.StringType, *schema.EnumType:
		typ = nexus.String()
	case *schema.TimeType:
		typ = nexus.Time()
	case *schema.UUIDType:
		typ = nexus.UUID()
	case *schema.BinaryType:
		typ = nexus.Bytes()
	case *schema.JSONType:
		typ = nexus.JSON()
	default:
		return nexus.Type{}, false
	}
	if c.Type.Null {
		typ = typ.Optional()
	}
	return typ, true
}

func commentOf(attrs []schema.Attr) string {
	for _, attr := range attrs {
		if c, ok := attr.(*schema.Comment); ok {
			return c.Text
		}
	}
	return ""
}
