package graph

import (
	"context"
	"fmt"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/querylanguage"
)

// newCollectionType builds the empty type shell for col. Everything
// that could touch another collection's type is deferred into the
// field thunk; the shell itself is safe to construct while the cache
// lock is held.
func newCollectionType(cx *Context, col *nexus.Collection) *Object {
	obj := NewObject(cx.cfg.Naming.TypeName(col.Name())).
		SetDescription(col.Description()).
		SetIsTypeOf(valueCheck(col))
	if col.Key() != nil {
		obj.AddInterfaces(NodeInterface(cx))
	}
	obj.SetFieldsFunc(func() ([]*FieldDef, error) {
		return collectionFields(cx, col)
	})
	return obj
}

// valueCheck returns the identity predicate of a collection type.
// Values tagged with an origin are judged by provenance alone; for
// untagged values the collection's own shape check decides, and a
// collection without one accepts everything.
func valueCheck(col *nexus.Collection) func(nexus.Value) bool {
	return func(v nexus.Value) bool {
		if origin := v.Origin(); origin != nil {
			return origin == col
		}
		if check := col.Check(); check != nil {
			return check(v)
		}
		return true
	}
}

// collectionFields assembles the field list of a collection type in
// its fixed order: the identifier field, the declared fields, hook
// contributions, tail-side relation fields and finally the head-side
// connection fields.
func collectionFields(cx *Context, col *nexus.Collection) ([]*FieldDef, error) {
	var fields []*FieldDef
	if col.Key() != nil {
		fields = append(fields, identifierField(cx, col))
	}
	for _, f := range col.Fields() {
		if f == col.Key() {
			// the identifier field stands in for the key column
			continue
		}
		fd, err := declaredField(cx, col, f)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fd)
	}
	if hook := cx.cfg.ObjectFields; hook != nil {
		fields = append(fields, hook(cx, col)...)
	}
	if tail := cx.cfg.TailFields; tail != nil {
		fields = append(fields, tail(cx, col)...)
	}
	for _, rel := range cx.registry.Relations() {
		if rel.Head != col {
			continue
		}
		fd, ok, err := connectionField(cx, rel)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		fields = append(fields, fd)
	}
	return fields, nil
}

// identifierField synthesizes the global identifier field of a keyed
// collection.
func identifierField(cx *Context, col *nexus.Collection) *FieldDef {
	return &FieldDef{
		Name:        cx.cfg.IDFieldName,
		Description: "The global identifier of the " + col.Name() + ".",
		Type:        NewNonNull(IDType),
		Resolve: func(_ context.Context, v nexus.Value, _ map[string]any) (any, error) {
			id, err := cx.cfg.Codec.Encode(col, v)
			if err != nil {
				return nil, err
			}
			return id, nil
		},
	}
}

// declaredField maps one declared collection field to a field entry.
func declaredField(cx *Context, col *nexus.Collection, f *nexus.Field) (*FieldDef, error) {
	typ, err := cx.cfg.Types.Resolve(cx, f.Type, false)
	if err != nil {
		return nil, fmt.Errorf("graph: field %s.%s: %w", col.Name(), f.Name, err)
	}
	return &FieldDef{
		Name:        cx.cfg.Naming.FieldName(f.Name),
		Description: f.Description,
		Type:        typ,
		Resolve: func(_ context.Context, v nexus.Value, _ map[string]any) (any, error) {
			return f.Extract(v), nil
		},
	}, nil
}

// connectionField builds the head-side connection field of a
// relation, or reports ok false when the relation cannot carry one: a
// tail without a paginator or a relation without a condition
// derivation is silently omitted.
func connectionField(cx *Context, rel *nexus.Relation) (fd *FieldDef, ok bool, err error) {
	paginator := rel.Tail.Paginator()
	if paginator == nil || rel.Condition == nil {
		return nil, false, nil
	}
	condType, fromInput := cx.cfg.Conditions.Resolve(cx, rel.Tail)
	spec := &ConnectionSpec{
		Name: cx.cfg.Naming.FieldName(rel.Tail.Name() + "-by-" + rel.Name),
		Tail: rel.Tail,
		Args: []*ArgumentDef{{
			Name:        "condition",
			Description: "Filters the returned " + rel.Tail.Name() + " values.",
			Type:        condType,
		}},
		PaginatorInput: func(head nexus.Value, args map[string]any) (nexus.Condition, error) {
			given := querylanguage.True()
			if raw, present := args["condition"]; present && raw != nil {
				p, err := fromInput(raw)
				if err != nil {
					return nil, err
				}
				given = p
			}
			return querylanguage.And(rel.Condition(head), given), nil
		},
	}
	fd, err = cx.cfg.Connections.Build(cx, paginator, spec)
	if err != nil {
		return nil, false, fmt.Errorf("graph: relation %s.%s: %w", rel.Head.Name(), rel.Name, err)
	}
	return fd, true, nil
}
