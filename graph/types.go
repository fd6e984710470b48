package graph

import (
	"context"
	"sync"

	"github.com/syssam/nexus"
)

// Type is implemented by every output type in a generated schema.
// Named types (objects, interfaces, scalars, input objects) are
// identity-unique within one build context; wrapper types (NonNull,
// List) are constructed freely around them.
type Type interface {
	// Name returns the type rendering: the declared name for named
	// types, "T!" and "[T]" for wrappers.
	Name() string
	typ()
}

// Scalar is a leaf output type.
type Scalar struct {
	name        string
	description string
}

// NewScalar returns a named scalar type.
func NewScalar(name, description string) *Scalar {
	return &Scalar{name: name, description: description}
}

// Name returns the scalar name.
func (s *Scalar) Name() string { return s.name }

// Description returns the scalar description.
func (s *Scalar) Description() string { return s.description }

// Builtin scalars. ID, String, Int, Float and Boolean are part of the
// base type system; the rest cover the remaining field kinds.
var (
	IDType      = NewScalar("ID", "")
	StringType  = NewScalar("String", "")
	IntType     = NewScalar("Int", "")
	FloatType   = NewScalar("Float", "")
	BooleanType = NewScalar("Boolean", "")
	TimeType    = NewScalar("Time", "An RFC3339 timestamp.")
	UUIDType    = NewScalar("UUID", "A universally unique identifier.")
	BytesType   = NewScalar("Bytes", "Opaque binary data, base64 encoded.")
	JSONType    = NewScalar("JSON", "A free-form JSON value.")
)

// NonNull wraps a type that never resolves to null.
type NonNull struct {
	Elem Type
}

// NewNonNull returns t wrapped as non-null.
func NewNonNull(t Type) *NonNull { return &NonNull{Elem: t} }

// Name returns the wrapped name with the non-null marker.
func (n *NonNull) Name() string { return n.Elem.Name() + "!" }

// List wraps the element type of a list.
type List struct {
	Elem Type
}

// NewList returns a list of t.
func NewList(t Type) *List { return &List{Elem: t} }

// Name returns the bracketed element name.
func (l *List) Name() string { return "[" + l.Elem.Name() + "]" }

// Resolver computes a field's value for one source value.
type Resolver func(ctx context.Context, source nexus.Value, args map[string]any) (any, error)

// ArgumentDef describes one field argument.
type ArgumentDef struct {
	Name        string
	Description string
	Type        Type
}

// FieldDef describes one field of an object or interface type.
type FieldDef struct {
	Name        string
	Description string
	Type        Type
	Args        []*ArgumentDef
	Resolve     Resolver
}

// ResolveValue computes the field for the given source value. Fields
// without a resolver read the source record by field name.
func (f *FieldDef) ResolveValue(ctx context.Context, source nexus.Value, args map[string]any) (any, error) {
	if f.Resolve != nil {
		return f.Resolve(ctx, source, args)
	}
	return source.Get(f.Name), nil
}

// FieldsFunc produces an object's field list when first needed.
// Deferring the field list is what breaks construction-time cycles:
// an object handle exists and can be referenced before its fields are
// realized.
type FieldsFunc func() ([]*FieldDef, error)

// Object is a named output type with lazily evaluated fields.
type Object struct {
	name        string
	description string
	interfaces  []*Interface
	isTypeOf    func(nexus.Value) bool

	once     sync.Once
	fieldsFn FieldsFunc
	fields   []*FieldDef
	index    map[string]*FieldDef
	err      error
}

// NewObject returns an object type with the given name and no fields.
func NewObject(name string) *Object {
	return &Object{name: name}
}

// Name returns the object name.
func (o *Object) Name() string { return o.name }

// Description returns the object description.
func (o *Object) Description() string { return o.description }

// SetDescription sets the object description.
func (o *Object) SetDescription(s string) *Object {
	o.description = s
	return o
}

// AddInterfaces declares interfaces the object implements.
func (o *Object) AddInterfaces(ifaces ...*Interface) *Object {
	o.interfaces = append(o.interfaces, ifaces...)
	return o
}

// Interfaces returns the declared interfaces.
func (o *Object) Interfaces() []*Interface { return o.interfaces }

// Implements reports whether the object declares the named interface.
func (o *Object) Implements(name string) bool {
	for _, i := range o.interfaces {
		if i.name == name {
			return true
		}
	}
	return false
}

// SetIsTypeOf installs the identity-check predicate consulted when a
// value of an abstract type is narrowed to this object.
func (o *Object) SetIsTypeOf(fn func(nexus.Value) bool) *Object {
	o.isTypeOf = fn
	return o
}

// IsTypeOf reports whether the given value belongs to this object
// type. Objects without a predicate accept every value.
func (o *Object) IsTypeOf(v nexus.Value) bool {
	if o.isTypeOf == nil {
		return true
	}
	return o.isTypeOf(v)
}

// SetFieldsFunc installs the deferred field-list constructor.
func (o *Object) SetFieldsFunc(fn FieldsFunc) *Object {
	o.fieldsFn = fn
	return o
}

// Fields forces the deferred field list. The first call evaluates the
// constructor; every later call returns the same slice. Safe for
// concurrent use, and reentrant type lookups from inside the
// constructor are fine because forcing never holds the context's
// cache lock.
func (o *Object) Fields() ([]*FieldDef, error) {
	o.once.Do(func() {
		if o.fieldsFn == nil {
			return
		}
		o.fields, o.err = o.fieldsFn()
		o.fieldsFn = nil
		if o.err != nil {
			return
		}
		o.index = make(map[string]*FieldDef, len(o.fields))
		for _, f := range o.fields {
			o.index[f.Name] = f
		}
	})
	return o.fields, o.err
}

// Field forces the field list and returns the field with the given
// name, or nil.
func (o *Object) Field(name string) *FieldDef {
	if _, err := o.Fields(); err != nil {
		return nil
	}
	return o.index[name]
}

// Interface is an abstract type implemented by object types.
type Interface struct {
	name        string
	description string
	fields      []*FieldDef
}

// NewInterface returns an interface type with the given fields.
func NewInterface(name, description string, fields ...*FieldDef) *Interface {
	return &Interface{name: name, description: description, fields: fields}
}

// Name returns the interface name.
func (i *Interface) Name() string { return i.name }

// Description returns the interface description.
func (i *Interface) Description() string { return i.description }

// Fields returns the interface fields.
func (i *Interface) Fields() []*FieldDef { return i.fields }

// InputField describes one field of an input object type.
type InputField struct {
	Name        string
	Description string
	Type        Type
}

// InputObject is a named input type with lazily evaluated fields.
// Laziness matters here too: condition inputs nest themselves through
// their and/or/not fields.
type InputObject struct {
	name        string
	description string

	once     sync.Once
	fieldsFn func() []*InputField
	fields   []*InputField
}

// NewInputObject returns an input object type with the given name.
func NewInputObject(name string) *InputObject {
	return &InputObject{name: name}
}

// Name returns the input object name.
func (in *InputObject) Name() string { return in.name }

// Description returns the input object description.
func (in *InputObject) Description() string { return in.description }

// SetDescription sets the input object description.
func (in *InputObject) SetDescription(s string) *InputObject {
	in.description = s
	return in
}

// SetFieldsFunc installs the deferred field-list constructor.
func (in *InputObject) SetFieldsFunc(fn func() []*InputField) *InputObject {
	in.fieldsFn = fn
	return in
}

// Fields forces and returns the input field list.
func (in *InputObject) Fields() []*InputField {
	in.once.Do(func() {
		if in.fieldsFn == nil {
			return
		}
		in.fields = in.fieldsFn()
		in.fieldsFn = nil
	})
	return in.fields
}

func (*Scalar) typ()      {}
func (*NonNull) typ()     {}
func (*List) typ()        {}
func (*Object) typ()      {}
func (*Interface) typ()   {}
func (*InputObject) typ() {}
