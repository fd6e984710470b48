package graph

import (
	"errors"
	"fmt"

	"github.com/syssam/nexus"
)

// ResolveFieldType is the default TypeResolver. Scalar kinds map to
// the builtin scalars, reference kinds recurse through the collection
// type cache, and list kinds wrap their resolved element. In output
// position non-nullable types are wrapped non-null; in input position
// everything stays optional and collection references are rejected.
func ResolveFieldType(cx *Context, t nexus.Type, input bool) (Type, error) {
	var out Type
	switch t.Kind {
	case nexus.KindBool:
		out = BooleanType
	case nexus.KindInt:
		out = IntType
	case nexus.KindFloat:
		out = FloatType
	case nexus.KindString:
		out = StringType
	case nexus.KindTime:
		out = TimeType
	case nexus.KindUUID:
		out = UUIDType
	case nexus.KindBytes:
		out = BytesType
	case nexus.KindJSON:
		out = JSONType
	case nexus.KindRef:
		if t.Ref == nil {
			return nil, errors.New("reference type without a collection")
		}
		if input {
			return nil, fmt.Errorf("collection reference %q in input position", t.Ref.Name())
		}
		out = CollectionType(cx, t.Ref)
	case nexus.KindList:
		if t.Elem == nil {
			return nil, errors.New("list type without an element")
		}
		elem, err := ResolveFieldType(cx, *t.Elem, input)
		if err != nil {
			return nil, err
		}
		out = NewList(elem)
	default:
		return nil, fmt.Errorf("unresolvable field kind %q", t.Kind)
	}
	if !input && !t.Nullable {
		out = NewNonNull(out)
	}
	return out, nil
}
