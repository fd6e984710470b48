package graph

import (
	"sync"

	"github.com/syssam/nexus"
)

// DefaultPageLimit is the page size applied to connection fields when
// the request carries no explicit first argument.
const DefaultPageLimit = 50

// Config carries the policies of one build context. Every entry has a
// default; options override them per context.
type Config struct {
	// IDFieldName is the name given to the synthesized identifier
	// field of keyed collections.
	IDFieldName string

	// PageLimit is the default page size of connection fields.
	PageLimit int

	// Naming formats collection, field and relation names.
	Naming Naming

	// Codec encodes and decodes global identifiers.
	Codec IdentifierCodec

	// Types maps semantic field types to output types.
	Types TypeResolver

	// Conditions builds filter-condition input types and their
	// argument parsers.
	Conditions ConditionResolver

	// Connections builds paginated relation fields.
	Connections ConnectionBuilder

	// TailFields derives the tail-side fields of relations.
	TailFields TailFieldsFunc

	// ObjectFields, when set, contributes extra fields to every
	// generated object type. The entries are spliced in after the
	// declared fields and before relation-derived ones.
	ObjectFields FieldHook
}

// FieldHook produces additional fields for the object type generated
// for a collection.
type FieldHook func(cx *Context, col *nexus.Collection) []*FieldDef

// TailFieldsFunc produces the tail-side relation fields of a
// collection.
type TailFieldsFunc func(cx *Context, col *nexus.Collection) []*FieldDef

// TypeResolver maps semantic field types to output types. The input
// flag selects input-position resolution, where collection references
// are invalid and nothing is wrapped non-null.
type TypeResolver interface {
	Resolve(cx *Context, t nexus.Type, input bool) (Type, error)
}

// TypeResolverFunc adapts a function to TypeResolver.
type TypeResolverFunc func(cx *Context, t nexus.Type, input bool) (Type, error)

// Resolve implements TypeResolver.
func (f TypeResolverFunc) Resolve(cx *Context, t nexus.Type, input bool) (Type, error) {
	return f(cx, t, input)
}

// FromInputFunc parses the raw value of a condition argument into a
// condition.
type FromInputFunc func(raw any) (nexus.Condition, error)

// ConditionResolver builds the filter-condition input type of a
// collection together with the parser for its argument values.
type ConditionResolver interface {
	Resolve(cx *Context, col *nexus.Collection) (*InputObject, FromInputFunc)
}

// ConditionResolverFunc adapts a function to ConditionResolver.
type ConditionResolverFunc func(cx *Context, col *nexus.Collection) (*InputObject, FromInputFunc)

// Resolve implements ConditionResolver.
func (f ConditionResolverFunc) Resolve(cx *Context, col *nexus.Collection) (*InputObject, FromInputFunc) {
	return f(cx, col)
}

// ConnectionSpec carries what the core computed for one connection
// field: its formatted name, the tail collection, the declared input
// arguments and the per-request composition of the paginator input.
type ConnectionSpec struct {
	Name string
	Tail *nexus.Collection
	Args []*ArgumentDef

	// PaginatorInput derives the condition passed to the paginator
	// from the head value and the raw field arguments.
	PaginatorInput func(head nexus.Value, args map[string]any) (nexus.Condition, error)
}

// ConnectionBuilder builds the paginated list field described by a
// connection spec.
type ConnectionBuilder interface {
	Build(cx *Context, p nexus.Paginator, spec *ConnectionSpec) (*FieldDef, error)
}

// ConnectionBuilderFunc adapts a function to ConnectionBuilder.
type ConnectionBuilderFunc func(cx *Context, p nexus.Paginator, spec *ConnectionSpec) (*FieldDef, error)

// Build implements ConnectionBuilder.
func (f ConnectionBuilderFunc) Build(cx *Context, p nexus.Paginator, spec *ConnectionSpec) (*FieldDef, error) {
	return f(cx, p, spec)
}

// IdentifierCodec serializes collection values to opaque global
// identifiers and back.
type IdentifierCodec interface {
	// Encode returns the global identifier of a value of col.
	Encode(col *nexus.Collection, v nexus.Value) (string, error)
	// Decode splits a global identifier into the collection name and
	// the raw key.
	Decode(id string) (collection, key string, err error)
}

// Context is one build pass over a registry: the configured policies
// plus the memoization cache that guarantees exactly one generated
// type per collection. Contexts are safe for concurrent use.
type Context struct {
	cfg      Config
	registry *nexus.Registry

	mu    sync.Mutex
	types map[*nexus.Collection]*Object

	namedMu sync.Mutex
	named   map[string]Type
}

// Option configures a build context.
type Option func(*Context)

// WithIDFieldName overrides the name of the synthesized identifier
// field.
func WithIDFieldName(name string) Option {
	return func(cx *Context) { cx.cfg.IDFieldName = name }
}

// WithPageLimit overrides the default page size of connection fields.
func WithPageLimit(limit int) Option {
	return func(cx *Context) { cx.cfg.PageLimit = limit }
}

// WithNaming overrides the naming policy.
func WithNaming(n Naming) Option {
	return func(cx *Context) { cx.cfg.Naming = n }
}

// WithCodec overrides the identifier codec.
func WithCodec(c IdentifierCodec) Option {
	return func(cx *Context) { cx.cfg.Codec = c }
}

// WithTypeResolver overrides the semantic type resolution.
func WithTypeResolver(r TypeResolver) Option {
	return func(cx *Context) { cx.cfg.Types = r }
}

// WithConditionResolver overrides the condition input construction.
func WithConditionResolver(r ConditionResolver) Option {
	return func(cx *Context) { cx.cfg.Conditions = r }
}

// WithConnectionBuilder overrides the connection field construction.
func WithConnectionBuilder(b ConnectionBuilder) Option {
	return func(cx *Context) { cx.cfg.Connections = b }
}

// WithTailFields overrides the tail-side relation field derivation.
func WithTailFields(f TailFieldsFunc) Option {
	return func(cx *Context) { cx.cfg.TailFields = f }
}

// WithObjectFields installs a hook contributing extra fields to every
// generated object type.
func WithObjectFields(h FieldHook) Option {
	return func(cx *Context) { cx.cfg.ObjectFields = h }
}

// NewContext returns a build context over the given registry with the
// given options applied on top of the defaults.
func NewContext(registry *nexus.Registry, opts ...Option) *Context {
	cx := &Context{
		cfg: Config{
			IDFieldName: "id",
			PageLimit:   DefaultPageLimit,
			Naming:      DefaultNaming{},
			Codec:       GlobalIDCodec{},
		},
		registry: registry,
		types:    make(map[*nexus.Collection]*Object),
		named:    make(map[string]Type),
	}
	for _, opt := range opts {
		opt(cx)
	}
	if cx.cfg.Types == nil {
		cx.cfg.Types = TypeResolverFunc(ResolveFieldType)
	}
	if cx.cfg.Conditions == nil {
		cx.cfg.Conditions = ConditionResolverFunc(ResolveConditionType)
	}
	if cx.cfg.Connections == nil {
		cx.cfg.Connections = ConnectionBuilderFunc(BuildConnectionField)
	}
	if cx.cfg.TailFields == nil {
		cx.cfg.TailFields = RelationBackrefFields
	}
	return cx
}

// Registry returns the registry this context builds over.
func (cx *Context) Registry() *nexus.Registry { return cx.registry }

// Config returns a copy of the effective configuration.
func (cx *Context) Config() Config { return cx.cfg }

// namedType returns the type cached under name, building and caching
// it on first request. The builder runs outside the cache lock so it
// may request further types.
func (cx *Context) namedType(name string, build func() Type) Type {
	cx.namedMu.Lock()
	if t, ok := cx.named[name]; ok {
		cx.namedMu.Unlock()
		return t
	}
	cx.namedMu.Unlock()
	t := build()
	cx.namedMu.Lock()
	defer cx.namedMu.Unlock()
	if cached, ok := cx.named[name]; ok {
		return cached
	}
	cx.named[name] = t
	return t
}

// namedObject is namedType narrowed to object types.
func (cx *Context) namedObject(name string, build func() *Object) *Object {
	return cx.namedType(name, func() Type { return build() }).(*Object)
}

// CollectionType returns the object type generated for col, building
// it on first request. The empty shell is cached before its field
// thunk can run, so collections that reference each other cyclically
// resolve to the same handles instead of recursing.
func CollectionType(cx *Context, col *nexus.Collection) *Object {
	cx.mu.Lock()
	if obj, ok := cx.types[col]; ok {
		cx.mu.Unlock()
		return obj
	}
	obj := newCollectionType(cx, col)
	cx.types[col] = obj
	cx.mu.Unlock()
	return obj
}
