package graph

import (
	"bytes"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"golang.org/x/sync/errgroup"
)

// QueryType assembles the root query type of the context: the node
// lookup plus one listing field per paginated collection, in registry
// order.
func QueryType(cx *Context) (*Object, error) {
	fields := []*FieldDef{NodeField(cx)}
	for _, col := range cx.Registry().Collections() {
		if col.Paginator() == nil {
			continue
		}
		fd, err := CollectionQueryField(cx, col)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fd)
	}
	obj := NewObject("Query").
		SetDescription("The entry points of the schema.")
	obj.SetFieldsFunc(func() ([]*FieldDef, error) {
		return fields, nil
	})
	return obj, nil
}

// Schema exports the schema of the context: one definition per type
// reachable from the registry's collections plus the Query root.
// Exporting forces every field thunk, so construction errors surface
// here.
func Schema(cx *Context) (*ast.Schema, error) {
	b := &sdlBuilder{
		cx:   cx,
		out:  &ast.Schema{Types: map[string]*ast.Definition{}},
		seen: map[string]bool{},
	}
	query, err := QueryType(cx)
	if err != nil {
		return nil, err
	}
	b.enqueue(query)
	for _, col := range cx.Registry().Collections() {
		b.enqueue(CollectionType(cx, col))
	}
	if err := b.drain(); err != nil {
		return nil, err
	}
	b.out.Query = b.out.Types[query.Name()]
	return b.out, nil
}

// FormatSDL renders an exported schema in SDL form.
func FormatSDL(s *ast.Schema) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchema(s)
	return buf.String()
}

// SchemaAll exports several contexts concurrently and returns their
// schemas in argument order. The first error aborts the export.
func SchemaAll(cxs ...*Context) ([]*ast.Schema, error) {
	var g errgroup.Group
	out := make([]*ast.Schema, len(cxs))
	for i, cx := range cxs {
		g.Go(func() error {
			s, err := Schema(cx)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// sdlBuilder walks the type graph breadth first, converting every
// named type it reaches into an ast definition exactly once.
type sdlBuilder struct {
	cx    *Context
	out   *ast.Schema
	seen  map[string]bool
	queue []Type
}

// ref converts a type to an ast type reference, enqueueing named
// types for definition emission.
func (b *sdlBuilder) ref(t Type) *ast.Type {
	switch t := t.(type) {
	case *NonNull:
		ref := b.ref(t.Elem)
		ref.NonNull = true
		return ref
	case *List:
		return ast.ListType(b.ref(t.Elem), nil)
	default:
		b.enqueue(t)
		return ast.NamedType(t.Name(), nil)
	}
}

func (b *sdlBuilder) enqueue(t Type) {
	if b.seen[t.Name()] {
		return
	}
	b.seen[t.Name()] = true
	b.queue = append(b.queue, t)
}

func (b *sdlBuilder) drain() error {
	for len(b.queue) > 0 {
		t := b.queue[0]
		b.queue = b.queue[1:]
		def, err := b.definition(t)
		if err != nil {
			return err
		}
		if def != nil {
			b.out.Types[def.Name] = def
		}
	}
	return nil
}

func (b *sdlBuilder) definition(t Type) (*ast.Definition, error) {
	switch t := t.(type) {
	case *Scalar:
		if builtinScalar(t.Name()) {
			return nil, nil
		}
		return &ast.Definition{
			Kind:        ast.Scalar,
			Name:        t.Name(),
			Description: t.Description(),
		}, nil
	case *Object:
		// thunk errors are already attributed to their collection
		fields, err := t.Fields()
		if err != nil {
			return nil, err
		}
		def := &ast.Definition{
			Kind:        ast.Object,
			Name:        t.Name(),
			Description: t.Description(),
		}
		for _, iface := range t.Interfaces() {
			def.Interfaces = append(def.Interfaces, iface.Name())
			b.enqueue(iface)
		}
		for _, f := range fields {
			def.Fields = append(def.Fields, b.fieldDefinition(f))
		}
		return def, nil
	case *Interface:
		def := &ast.Definition{
			Kind:        ast.Interface,
			Name:        t.Name(),
			Description: t.Description(),
		}
		for _, f := range t.Fields() {
			def.Fields = append(def.Fields, b.fieldDefinition(f))
		}
		return def, nil
	case *InputObject:
		def := &ast.Definition{
			Kind:        ast.InputObject,
			Name:        t.Name(),
			Description: t.Description(),
		}
		for _, f := range t.Fields() {
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:        f.Name,
				Description: f.Description,
				Type:        b.ref(f.Type),
			})
		}
		return def, nil
	default:
		return nil, fmt.Errorf("graph: unsupported type %T", t)
	}
}

func (b *sdlBuilder) fieldDefinition(f *FieldDef) *ast.FieldDefinition {
	def := &ast.FieldDefinition{
		Name:        f.Name,
		Description: f.Description,
		Type:        b.ref(f.Type),
	}
	for _, a := range f.Args {
		def.Arguments = append(def.Arguments, &ast.ArgumentDefinition{
			Name:        a.Name,
			Description: a.Description,
			Type:        b.ref(a.Type),
		})
	}
	return def
}

func builtinScalar(name string) bool {
	switch name {
	case "ID", "String", "Int", "Float", "Boolean":
		return true
	}
	return false
}
