package graph

import (
	"context"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/syssam/nexus"
	"github.com/syssam/nexus/globalid"
	"github.com/syssam/nexus/querylanguage"
)

// BuildConnectionField is the default ConnectionBuilder. The field
// resolves to a connection value with edges, nodes, page info and the
// total count; first and after arguments drive offset pagination with
// opaque cursors.
func BuildConnectionField(cx *Context, p nexus.Paginator, spec *ConnectionSpec) (*FieldDef, error) {
	if p == nil {
		return nil, fmt.Errorf("connection %q without a paginator", spec.Name)
	}
	connType := ConnectionType(cx, spec.Tail)
	args := make([]*ArgumentDef, 0, len(spec.Args)+2)
	args = append(args, spec.Args...)
	args = append(args,
		&ArgumentDef{
			Name:        "first",
			Description: "Returns at most the first n values.",
			Type:        IntType,
		},
		&ArgumentDef{
			Name:        "after",
			Description: "Returns values after the given cursor.",
			Type:        StringType,
		},
	)
	limit := cx.cfg.PageLimit
	return &FieldDef{
		Name:        spec.Name,
		Description: "A paginated list of " + Plural(spec.Tail.Name()) + ".",
		Type:        NewNonNull(connType),
		Args:        args,
		Resolve: func(ctx context.Context, head nexus.Value, args map[string]any) (any, error) {
			cond, err := spec.PaginatorInput(head, args)
			if err != nil {
				return nil, err
			}
			input := nexus.PageInput{Condition: cond, Limit: limit}
			if raw, ok := args["first"]; ok && raw != nil {
				n, err := graphql.UnmarshalInt(raw)
				if err != nil {
					return nil, fmt.Errorf("graph: argument first: %w", err)
				}
				if n < 0 {
					return nil, fmt.Errorf("graph: argument first: negative value %d", n)
				}
				input.Limit = n
			}
			if raw, ok := args["after"]; ok && raw != nil {
				s, err := graphql.UnmarshalString(raw)
				if err != nil {
					return nil, fmt.Errorf("graph: argument after: %w", err)
				}
				cursor, err := globalid.DecodeCursor(s)
				if err != nil {
					return nil, fmt.Errorf("graph: argument after: %w", err)
				}
				input.Offset = cursor.Offset
			}
			page, err := p.Paginate(ctx, input)
			if err != nil {
				return nil, err
			}
			return connectionValue(spec.Tail, page, input.Offset), nil
		},
	}, nil
}

// connectionValue shapes a page into the record tree the connection
// type resolves from. Nodes keep their origin tag so abstract type
// narrowing works on them.
func connectionValue(tail *nexus.Collection, page *nexus.Page, offset int) nexus.Value {
	edges := make([]nexus.Value, len(page.Values))
	nodes := make([]nexus.Value, len(page.Values))
	endCursor := any(nil)
	for i, v := range page.Values {
		node := v.WithOrigin(tail)
		cursor := globalid.Cursor{Offset: offset + i + 1}.String()
		edges[i] = nexus.NewValue(map[string]any{
			"node":   node,
			"cursor": cursor,
		})
		nodes[i] = node
		endCursor = cursor
	}
	return nexus.NewValue(map[string]any{
		"edges": edges,
		"nodes": nodes,
		"pageInfo": nexus.NewValue(map[string]any{
			"hasNextPage": page.HasNext,
			"endCursor":   endCursor,
		}),
		"totalCount": page.Total,
	})
}

// ConnectionType returns the connection object type of a collection,
// together with its edge type, cached per context by name.
func ConnectionType(cx *Context, col *nexus.Collection) *Object {
	base := cx.cfg.Naming.TypeName(col.Name())
	return cx.namedObject(base+"Connection", func() *Object {
		node := CollectionType(cx, col)
		edge := cx.namedObject(base+"Edge", func() *Object {
			obj := NewObject(base + "Edge").
				SetDescription("An edge in a " + base + " connection.")
			obj.SetFieldsFunc(func() ([]*FieldDef, error) {
				return []*FieldDef{
					{
						Name:        "node",
						Description: "The value at the end of the edge.",
						Type:        node,
					},
					{
						Name:        "cursor",
						Description: "A cursor for pagination.",
						Type:        NewNonNull(StringType),
					},
				}, nil
			})
			return obj
		})
		obj := NewObject(base + "Connection").
			SetDescription("A paginated list of " + Plural(col.Name()) + ".")
		obj.SetFieldsFunc(func() ([]*FieldDef, error) {
			return []*FieldDef{
				{
					Name:        "edges",
					Description: "The edges of the current page.",
					Type:        NewNonNull(NewList(NewNonNull(edge))),
				},
				{
					Name:        "nodes",
					Description: "The values of the current page.",
					Type:        NewNonNull(NewList(node)),
				},
				{
					Name:        "pageInfo",
					Description: "Information to aid in pagination.",
					Type:        NewNonNull(PageInfoType(cx)),
				},
				{
					Name:        "totalCount",
					Description: "The number of values matching the condition.",
					Type:        NewNonNull(IntType),
				},
			}, nil
		})
		return obj
	})
}

// PageInfoType returns the shared page info type of the context.
func PageInfoType(cx *Context) *Object {
	return cx.namedObject("PageInfo", func() *Object {
		obj := NewObject("PageInfo").
			SetDescription("Information about the current page.")
		obj.SetFieldsFunc(func() ([]*FieldDef, error) {
			return []*FieldDef{
				{
					Name:        "hasNextPage",
					Description: "Whether more values exist past this page.",
					Type:        NewNonNull(BooleanType),
				},
				{
					Name:        "endCursor",
					Description: "The cursor of the last value on this page.",
					Type:        StringType,
				},
			}, nil
		})
		return obj
	})
}

// CollectionQueryField builds the root listing field of a paginated
// collection, named with its plural form and filtered by its
// condition type.
func CollectionQueryField(cx *Context, col *nexus.Collection) (*FieldDef, error) {
	paginator := col.Paginator()
	if paginator == nil {
		return nil, fmt.Errorf("graph: collection %q has no paginator", col.Name())
	}
	condType, fromInput := cx.cfg.Conditions.Resolve(cx, col)
	spec := &ConnectionSpec{
		Name: cx.cfg.Naming.FieldName(Plural(col.Name())),
		Tail: col,
		Args: []*ArgumentDef{{
			Name:        "condition",
			Description: "Filters the returned " + col.Name() + " values.",
			Type:        condType,
		}},
		PaginatorInput: func(_ nexus.Value, args map[string]any) (nexus.Condition, error) {
			raw, ok := args["condition"]
			if !ok || raw == nil {
				return querylanguage.True(), nil
			}
			return fromInput(raw)
		},
	}
	fd, err := cx.cfg.Connections.Build(cx, paginator, spec)
	if err != nil {
		return nil, fmt.Errorf("graph: collection %q: %w", col.Name(), err)
	}
	return fd, nil
}
