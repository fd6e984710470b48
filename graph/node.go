package graph

import (
	"context"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/syssam/nexus"
	"github.com/syssam/nexus/globalid"
)

// NodeInterface returns the shared lookup interface of the context.
// Every keyed collection type implements it.
func NodeInterface(cx *Context) *Interface {
	return cx.namedType("Node", func() Type {
		return NewInterface("Node", "An object with a global identifier.", &FieldDef{
			Name:        cx.cfg.IDFieldName,
			Description: "The global identifier of the object.",
			Type:        NewNonNull(IDType),
		})
	}).(*Interface)
}

// GlobalIDCodec is the default IdentifierCodec. Identifiers carry the
// collection name and the key value in the base64 Name:Key form.
type GlobalIDCodec struct{}

// Encode implements IdentifierCodec.
func (GlobalIDCodec) Encode(col *nexus.Collection, v nexus.Value) (string, error) {
	key := col.Key()
	if key == nil {
		return "", fmt.Errorf("graph: collection %q has no key", col.Name())
	}
	raw := key.Extract(v)
	if raw == nil {
		return "", fmt.Errorf("graph: value of %q carries no %q", col.Name(), key.Name)
	}
	return globalid.New(col.Name(), raw).String(), nil
}

// Decode implements IdentifierCodec.
func (GlobalIDCodec) Decode(id string) (string, string, error) {
	return globalid.Parse(id)
}

// NodeField returns the generic lookup field resolving a global
// identifier to its value. Resolved values are tagged with their
// collection of origin so abstract type narrowing is exact.
func NodeField(cx *Context) *FieldDef {
	return &FieldDef{
		Name:        "node",
		Description: "Fetches an object given its global identifier.",
		Type:        NodeInterface(cx),
		Args: []*ArgumentDef{{
			Name:        "id",
			Description: "The global identifier of the object.",
			Type:        NewNonNull(IDType),
		}},
		Resolve: func(ctx context.Context, _ nexus.Value, args map[string]any) (any, error) {
			raw, err := graphql.UnmarshalID(args["id"])
			if err != nil {
				return nil, fmt.Errorf("graph: argument id: %w", err)
			}
			name, key, err := cx.cfg.Codec.Decode(raw)
			if err != nil {
				return nil, fmt.Errorf("graph: argument id: %w", err)
			}
			col, ok := cx.Registry().Collection(name)
			if !ok {
				return nil, nexus.NewNotFoundError(name)
			}
			find := col.Find()
			if find == nil {
				return nil, nexus.NewNotFoundErrorWithID(name, key)
			}
			v, err := find(ctx, key)
			if err != nil {
				return nil, err
			}
			return v.WithOrigin(col), nil
		},
	}
}
