package nexus

// A Kind classifies the semantic type of a collection field.
type Kind uint8

// List of field kinds.
const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	KindUUID
	KindBytes
	KindJSON
	KindRef
	KindList
	endKinds
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindTime:    "time",
	KindUUID:    "uuid",
	KindBytes:   "bytes",
	KindJSON:    "json",
	KindRef:     "ref",
	KindList:    "list",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// Valid reports if the given kind is a declared kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < endKinds
}

// Numeric reports if the given kind is a numeric kind.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Ordered reports if values of the kind support comparison operators.
func (k Kind) Ordered() bool {
	return k.Numeric() || k == KindString || k == KindTime
}

// Type is the semantic type of a field: a scalar kind, a reference to
// another collection's type, or a list of an element type.
type Type struct {
	Kind     Kind
	Nullable bool

	// Ref is the target collection when Kind is KindRef.
	Ref *Collection

	// Elem is the element type when Kind is KindList.
	Elem *Type
}

// String returns the type rendering: the kind name for scalars, the
// collection name for references, and "[]elem" for lists.
func (t Type) String() string {
	switch t.Kind {
	case KindRef:
		if t.Ref != nil {
			return t.Ref.Name()
		}
		return kindNames[KindRef]
	case KindList:
		if t.Elem != nil {
			return "[]" + t.Elem.String()
		}
		return kindNames[KindList]
	default:
		return t.Kind.String()
	}
}

// Optional returns a copy of the type marked nullable.
func (t Type) Optional() Type {
	t.Nullable = true
	return t
}

// Bool returns a bool type.
func Bool() Type { return Type{Kind: KindBool} }

// Int returns an int type.
func Int() Type { return Type{Kind: KindInt} }

// Float returns a float type.
func Float() Type { return Type{Kind: KindFloat} }

// String returns a string type.
func String() Type { return Type{Kind: KindString} }

// Time returns a timestamp type.
func Time() Type { return Type{Kind: KindTime} }

// UUID returns a UUID type.
func UUID() Type { return Type{Kind: KindUUID} }

// Bytes returns a binary type.
func Bytes() Type { return Type{Kind: KindBytes} }

// JSON returns a free-form JSON type.
func JSON() Type { return Type{Kind: KindJSON} }

// Ref returns a type referencing another collection's generated type.
func Ref(col *Collection) Type { return Type{Kind: KindRef, Ref: col} }

// List returns a list type with the given element type.
func List(elem Type) Type { return Type{Kind: KindList, Elem: &elem} }
