package nexus

import (
	"context"

	"github.com/syssam/nexus/querylanguage"
)

// Condition is an opaque filter predicate composable with logical AND.
// The canonical implementation is the querylanguage expression type;
// querylanguage.And drops neutral (always-true) elements, so combining
// a condition with querylanguage.True() yields the condition unchanged.
type Condition = querylanguage.P

// Value is an opaque entity value: a raw record plus optional origin
// provenance naming the collection a generic lookup produced it from.
// Provenance is checked explicitly by generated type predicates, never
// via reflection.
type Value struct {
	// Record holds the raw field values keyed by field name.
	Record map[string]any

	origin *Collection
}

// NewValue returns a value wrapping the given record with no origin.
func NewValue(record map[string]any) Value {
	return Value{Record: record}
}

// WithOrigin returns a copy of v tagged as originating from col.
func (v Value) WithOrigin(col *Collection) Value {
	v.origin = col
	return v
}

// Origin returns the collection the value was tagged with, or nil if
// the value carries no provenance.
func (v Value) Origin() *Collection {
	return v.origin
}

// Get returns the raw record value for the given field name.
func (v Value) Get(name string) any {
	return v.Record[name]
}

// Field describes a single collection attribute.
type Field struct {
	Name        string
	Description string
	Type        Type

	// Value extracts the field's raw value from an entity value. When
	// nil, the field is read from the value's record by name.
	Value func(Value) any
}

// Extract returns the field's raw value for the given entity value,
// using the custom extractor when one is set.
func (f *Field) Extract(v Value) any {
	if f.Value != nil {
		return f.Value(v)
	}
	return v.Get(f.Name)
}

// FindFunc loads a single collection value by its raw identifier.
type FindFunc func(ctx context.Context, id string) (Value, error)

// Collection describes a relational entity that the graph package can
// project as an API object type: an ordered set of fields, an optional
// primary key, and an optional paginator for listing its values.
//
// Collections are compared by pointer identity. A registry holds each
// collection exactly once, and a build context derives exactly one API
// type per collection.
type Collection struct {
	name        string
	description string
	table       string
	fields      []*Field
	index       map[string]*Field
	key         *Field
	paginator   Paginator
	check       func(Value) bool
	find        FindFunc
}

// NewCollection returns a named collection with no fields.
func NewCollection(name string) *Collection {
	return &Collection{
		name:  name,
		index: make(map[string]*Field),
	}
}

// Name returns the entity name the collection was declared with.
func (c *Collection) Name() string { return c.name }

// Description returns the collection description.
func (c *Collection) Description() string { return c.description }

// SetDescription sets the collection description.
func (c *Collection) SetDescription(s string) *Collection {
	c.description = s
	return c
}

// SetTable sets the backing table name consumed by storage bindings.
func (c *Collection) SetTable(name string) *Collection {
	c.table = name
	return c
}

// Table returns the backing table name, falling back to the collection
// name when none was set.
func (c *Collection) Table() string {
	if c.table != "" {
		return c.table
	}
	return c.name
}

// AddFields appends fields in declaration order. Field names are
// expected to be unique within a collection; the load package validates
// manifests for duplicates.
func (c *Collection) AddFields(fields ...*Field) *Collection {
	for _, f := range fields {
		c.fields = append(c.fields, f)
		c.index[f.Name] = f
	}
	return c
}

// Fields returns the collection fields in declaration order.
func (c *Collection) Fields() []*Field { return c.fields }

// Field returns the field with the given name, or nil.
func (c *Collection) Field(name string) *Field { return c.index[name] }

// SetKey marks f as the collection's primary key. The key backs the
// synthesized identifier field of the collection's object type; when f
// is also part of the field list it is not rendered a second time.
func (c *Collection) SetKey(f *Field) *Collection {
	c.key = f
	return c
}

// Key returns the primary-key field, or nil if the collection is not
// globally addressable.
func (c *Collection) Key() *Field { return c.key }

// SetPaginator attaches the capability to page through the collection's
// values. Collections without a paginator never appear as the tail of a
// connection field.
func (c *Collection) SetPaginator(p Paginator) *Collection {
	c.paginator = p
	return c
}

// Paginator returns the collection paginator, or nil.
func (c *Collection) Paginator() Paginator { return c.paginator }

// SetCheck installs the collection's shape-check predicate, consulted
// by the generated type's identity check for values without origin
// provenance. A nil check accepts every untagged value.
func (c *Collection) SetCheck(check func(Value) bool) *Collection {
	c.check = check
	return c
}

// Check returns the shape-check predicate, or nil.
func (c *Collection) Check() func(Value) bool { return c.check }

// SetFind installs the lookup capability used by the generic node
// field to load a value from a decoded global identifier.
func (c *Collection) SetFind(find FindFunc) *Collection {
	c.find = find
	return c
}

// Find returns the lookup capability, or nil.
func (c *Collection) Find() FindFunc { return c.find }

// Rel defines the cardinality of a relation.
type Rel int

// Relation cardinalities.
const (
	Unk Rel = iota // Unknown.
	O2O            // One to one / has one.
	O2M            // One to many / has many.
	M2O            // Many to one (inverse perspective for O2M).
	M2M            // Many to many.
)

// String returns the relation name.
func (r Rel) String() (s string) {
	switch r {
	case O2O:
		s = "O2O"
	case O2M:
		s = "O2M"
	case M2O:
		s = "M2O"
	case M2M:
		s = "M2M"
	default:
		s = "Unknown"
	}
	return s
}

// Relation is a directed link between a head collection (the one side)
// and a tail collection (the many side).
type Relation struct {
	// Name identifies the relation within the registry and becomes part
	// of the head-side connection field name.
	Name string

	// Rel is the relation cardinality. Informational for loading and
	// code generation; field assembly only consults Head, Tail and the
	// capabilities below.
	Rel Rel

	// Head is the owning (one-side) collection, HeadKey the head field
	// the relation hangs off, typically the head's primary key.
	Head    *Collection
	HeadKey *Field

	// Tail is the target (many-side) collection.
	Tail *Collection

	// Condition derives a tail filter from a concrete head value. A nil
	// Condition disables the head-side connection field for this
	// relation; the field is omitted silently.
	Condition func(head Value) Condition

	// Resolve loads the head value a tail value points back to. A nil
	// Resolve disables the tail-side back-reference field, again
	// omitted silently.
	Resolve func(ctx context.Context, tail Value) (Value, error)
}

// Registry is the full set of collections and relations a build context
// operates on. It is populated once and read-only afterwards; names are
// expected to be unique.
type Registry struct {
	collections []*Collection
	byName      map[string]*Collection
	relations   []*Relation
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Collection)}
}

// AddCollections registers collections in order.
func (r *Registry) AddCollections(cols ...*Collection) *Registry {
	for _, c := range cols {
		r.collections = append(r.collections, c)
		r.byName[c.Name()] = c
	}
	return r
}

// AddRelations registers relations in order. Head-side connection
// fields are assembled in registration order.
func (r *Registry) AddRelations(rels ...*Relation) *Registry {
	r.relations = append(r.relations, rels...)
	return r
}

// Collections returns all registered collections in registration order.
func (r *Registry) Collections() []*Collection { return r.collections }

// Collection returns the collection registered under name.
func (r *Registry) Collection(name string) (*Collection, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Relations returns all registered relations in registration order.
func (r *Registry) Relations() []*Relation { return r.relations }

// PageInput carries the runtime inputs of one pagination request.
type PageInput struct {
	// Condition filters the paged values. A nil condition means no
	// filtering; querylanguage.True() is the canonical neutral.
	Condition Condition

	// Limit bounds the number of returned values; zero means the
	// paginator's default page size.
	Limit int

	// Offset skips values from the start of the filtered sequence.
	Offset int
}

// Page is one slice of a collection's values.
type Page struct {
	Values  []Value
	Total   int
	HasNext bool
}

// Paginator pages through a collection's values, optionally filtered
// by a condition.
type Paginator interface {
	Paginate(ctx context.Context, input PageInput) (*Page, error)
}

// PaginateFunc adapts a function to the Paginator interface.
type PaginateFunc func(ctx context.Context, input PageInput) (*Page, error)

// Paginate calls f(ctx, input).
func (f PaginateFunc) Paginate(ctx context.Context, input PageInput) (*Page, error) {
	return f(ctx, input)
}
