package graph

import (
	"context"

	"github.com/syssam/nexus"
)

// RelationBackrefFields is the default TailFieldsFunc. Every relation
// whose tail is col and which declares a head resolution contributes
// one field returning the head value; relations without the
// capability contribute nothing.
func RelationBackrefFields(cx *Context, col *nexus.Collection) []*FieldDef {
	var fields []*FieldDef
	for _, rel := range cx.Registry().Relations() {
		if rel.Tail != col || rel.Resolve == nil {
			continue
		}
		fields = append(fields, &FieldDef{
			Name:        cx.cfg.Naming.FieldName(rel.Head.Name()),
			Description: "The " + rel.Head.Name() + " this " + col.Name() + " belongs to.",
			Type:        CollectionType(cx, rel.Head),
			Resolve: func(ctx context.Context, v nexus.Value, _ map[string]any) (any, error) {
				head, err := rel.Resolve(ctx, v)
				if err != nil {
					return nil, err
				}
				return head.WithOrigin(rel.Head), nil
			},
		})
	}
	return fields
}
