// Package gen generates Go bindings from collection manifests.
//
// Every collection gets a subpackage named after it, holding the
// column constants, typed condition helpers and the shared collection
// value. A registry.go file at the target root assembles the
// collections and their relations into a registry, in manifest order.
package gen

import (
	"fmt"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/graph"
	"github.com/syssam/nexus/load"
)

// Import paths referenced by generated code.
const (
	nexusPkg = "github.com/syssam/nexus"
	qlPkg    = "github.com/syssam/nexus/querylanguage"
	uuidPkg  = "github.com/google/uuid"
)

// Generate reads the configured manifests and writes the binding
// packages into the target directory.
func Generate(cfg *Config) error {
	if cfg == nil || len(cfg.Manifests) == 0 {
		return NewConfigError("Manifests", nil, "at least one manifest is required")
	}
	if cfg.Target == "" {
		return NewConfigError("Target", nil, "target directory cannot be empty")
	}
	manifest, err := load.ParseFiles(cfg.Manifests...)
	if err != nil {
		return err
	}
	registry, err := manifest.Build()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Target, 0o755); err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	pkgPath := cfg.Package
	if pkgPath == "" {
		if pkgPath, err = resolvePackage(cfg.Target); err != nil {
			return err
		}
	}
	pkgName := path.Base(pkgPath)
	if !token.IsIdentifier(pkgName) {
		return NewConfigError("Package", pkgPath, "import path must end in a valid Go identifier")
	}
	header := cfg.Header
	if header == "" {
		header = DefaultHeader
	}
	g := &generator{
		manifest: manifest,
		registry: registry,
		target:   cfg.Target,
		pkgPath:  pkgPath,
		pkgName:  pkgName,
		header:   header,
	}
	return g.run()
}

// resolvePackage returns the import path of the Go package in the
// target directory. Generating into an empty directory works as long
// as the directory sits inside a module.
func resolvePackage(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("gen: resolve target: %w", err)
	}
	pkgs, err := packages.Load(&packages.Config{Mode: packages.NeedName}, abs)
	if err != nil {
		return "", fmt.Errorf("gen: load target package: %w", err)
	}
	if len(pkgs) == 0 || pkgs[0].PkgPath == "" || strings.HasPrefix(pkgs[0].PkgPath, "_") {
		return "", NewConfigError("Package", abs, "cannot resolve the import path of the target; set Package explicitly")
	}
	return pkgs[0].PkgPath, nil
}

// generator holds the state of one generation run.
type generator struct {
	manifest *load.Manifest
	registry *nexus.Registry
	target   string
	pkgPath  string
	pkgName  string
	header   string
}

// fileTask pairs a rendered file with its output path.
type fileTask struct {
	path string
	file *jen.File
}

func (g *generator) run() error {
	tasks := make([]fileTask, 0, len(g.manifest.Collections)+1)
	dirs := make(map[string]string, len(g.manifest.Collections))
	for _, cs := range g.manifest.Collections {
		dir := strings.ToLower(cs.Name)
		if !token.IsIdentifier(dir) {
			return fmt.Errorf("gen: collection %s: cannot derive a package name from %q", cs.Name, dir)
		}
		if prev, ok := dirs[dir]; ok {
			return fmt.Errorf("gen: collections %s and %s map to the same package %q", prev, cs.Name, dir)
		}
		dirs[dir] = cs.Name
		tasks = append(tasks, fileTask{
			path: filepath.Join(g.target, dir, dir+".go"),
			file: g.collectionFile(cs, dir),
		})
	}
	tasks = append(tasks, fileTask{
		path: filepath.Join(g.target, "registry.go"),
		file: g.registryFile(),
	})

	var errg errgroup.Group
	errg.SetLimit(runtime.GOMAXPROCS(0))
	for _, t := range tasks {
		errg.Go(func() error {
			return writeFile(t.path, t.file)
		})
	}
	return errg.Wait()
}

// collectionFile renders the binding package of one collection.
func (g *generator) collectionFile(cs *load.CollectionSpec, pkg string) *jen.File {
	col, _ := g.registry.Collection(cs.Name)
	f := g.newFile(pkg)
	f.Const().DefsFunc(func(defs *jen.Group) {
		defs.Commentf("Label holds the string label denoting the %s collection.", cs.Name)
		defs.Id("Label").Op("=").Lit(cs.Name)
		defs.Commentf("Table holds the table name of the %s collection in the database.", cs.Name)
		defs.Id("Table").Op("=").Lit(col.Table())
		for _, fs := range cs.Fields {
			constant := fieldConstant(fs.Name)
			defs.Commentf("%s holds the string denoting the %s field in the database.", constant, fs.Name)
			defs.Id(constant).Op("=").Lit(fs.Name)
		}
	})

	f.Commentf("Columns holds all database columns of %s fields.", cs.Name)
	f.Var().Id("Columns").Op("=").Index().String().ValuesFunc(func(vals *jen.Group) {
		for _, fs := range cs.Fields {
			vals.Id(fieldConstant(fs.Name))
		}
	})

	f.Comment("ValidColumn reports if the column name is valid (part of the table columns).")
	f.Func().Id("ValidColumn").Params(jen.Id("column").String()).Bool().BlockFunc(func(body *jen.Group) {
		body.For(jen.Id("i").Op(":=").Range().Id("Columns")).Block(
			jen.If(jen.Id("column").Op("==").Id("Columns").Index(jen.Id("i"))).Block(
				jen.Return(jen.True()),
			),
		)
		body.Return(jen.False())
	})

	f.Var().Id("collection").Op("=").Func().Params().Op("*").Qual(nexusPkg, "Collection").BlockFunc(func(body *jen.Group) {
		ctor := jen.Qual(nexusPkg, "NewCollection").Call(jen.Id("Label")).Dot("SetTable").Call(jen.Id("Table"))
		if cs.Description != "" {
			ctor = ctor.Dot("SetDescription").Call(jen.Lit(cs.Description))
		}
		body.Id("c").Op(":=").Add(ctor)
		if len(cs.Fields) > 0 {
			body.Id("c").Dot("AddFields").CallFunc(func(args *jen.Group) {
				for _, fs := range cs.Fields {
					args.Op("&").Qual(nexusPkg, "Field").Values(fieldDict(fs, col))
				}
			})
		}
		if cs.Key != "" {
			body.Id("c").Dot("SetKey").Call(jen.Id("c").Dot("Field").Call(jen.Id(fieldConstant(cs.Key))))
		}
		body.Return(jen.Id("c"))
	}).Call()

	f.Commentf("Collection returns the %s collection shared by the generated bindings.", cs.Name)
	f.Func().Id("Collection").Params().Op("*").Qual(nexusPkg, "Collection").Block(
		jen.Return(jen.Id("collection")),
	)

	for _, fs := range cs.Fields {
		conditionHelpers(f, col.Field(fs.Name))
	}
	return f
}

// fieldDict renders the field literal of one manifest field.
func fieldDict(fs *load.FieldSpec, col *nexus.Collection) jen.Dict {
	d := jen.Dict{
		jen.Id("Name"): jen.Id(fieldConstant(fs.Name)),
		jen.Id("Type"): typeExpr(col.Field(fs.Name).Type),
	}
	if fs.Description != "" {
		d[jen.Id("Description")] = jen.Lit(fs.Description)
	}
	return d
}

// typeExpr renders the type constructor expression of a field type.
func typeExpr(t nexus.Type) *jen.Statement {
	var expr *jen.Statement
	switch t.Kind {
	case nexus.KindBool:
		expr = jen.Qual(nexusPkg, "Bool").Call()
	case nexus.KindInt:
		expr = jen.Qual(nexusPkg, "Int").Call()
	case nexus.KindFloat:
		expr = jen.Qual(nexusPkg, "Float").Call()
	case nexus.KindString:
		expr = jen.Qual(nexusPkg, "String").Call()
	case nexus.KindTime:
		expr = jen.Qual(nexusPkg, "Time").Call()
	case nexus.KindUUID:
		expr = jen.Qual(nexusPkg, "UUID").Call()
	case nexus.KindBytes:
		expr = jen.Qual(nexusPkg, "Bytes").Call()
	case nexus.KindJSON:
		expr = jen.Qual(nexusPkg, "JSON").Call()
	case nexus.KindList:
		elem := nexus.Type{}
		if t.Elem != nil {
			elem = *t.Elem
		}
		expr = jen.Qual(nexusPkg, "List").Call(typeExpr(elem))
	default:
		expr = jen.Qual(nexusPkg, "Type").Values()
	}
	if t.Nullable {
		expr = expr.Dot("Optional").Call()
	}
	return expr
}

// conditionHelpers renders the typed condition helpers of one field.
// Kinds that cannot be filtered on get none.
func conditionHelpers(f *jen.File, field *nexus.Field) {
	param := paramType(field.Type.Kind)
	if param == nil {
		return
	}
	base := graph.Pascal(field.Name)
	constant := fieldConstant(field.Name)
	scalar := func(suffix, fn string) {
		name := base + suffix
		f.Commentf("%s applies the %s condition on the %q field.", name, suffix, field.Name)
		f.Func().Id(name).Params(jen.Id("v").Add(param.Clone())).Qual(nexusPkg, "Condition").Block(
			jen.Return(jen.Qual(qlPkg, fn).Call(jen.Id(constant), jen.Id("v"))),
		)
	}
	variadic := func(suffix, fn string) {
		name := base + suffix
		f.Commentf("%s applies the %s condition on the %q field.", name, suffix, field.Name)
		f.Func().Id(name).Params(jen.Id("vs").Op("...").Add(param.Clone())).Qual(nexusPkg, "Condition").Block(
			jen.Id("args").Op(":=").Make(jen.Index().Any(), jen.Len(jen.Id("vs"))),
			jen.For(jen.Id("i").Op(":=").Range().Id("vs")).Block(
				jen.Id("args").Index(jen.Id("i")).Op("=").Id("vs").Index(jen.Id("i")),
			),
			jen.Return(jen.Qual(qlPkg, fn).Call(jen.Id(constant), jen.Id("args").Op("..."))),
		)
	}
	nullary := func(suffix, fn string) {
		name := base + suffix
		f.Commentf("%s applies the %s condition on the %q field.", name, suffix, field.Name)
		f.Func().Id(name).Params().Qual(nexusPkg, "Condition").Block(
			jen.Return(jen.Qual(qlPkg, fn).Call(jen.Id(constant))),
		)
	}

	scalar("EQ", "FieldEQ")
	scalar("NEQ", "FieldNEQ")
	variadic("In", "FieldIn")
	variadic("NotIn", "FieldNotIn")
	if field.Type.Kind.Ordered() {
		scalar("GT", "FieldGT")
		scalar("GTE", "FieldGTE")
		scalar("LT", "FieldLT")
		scalar("LTE", "FieldLTE")
	}
	if field.Type.Kind == nexus.KindString {
		scalar("Contains", "FieldContains")
		scalar("ContainsFold", "FieldContainsFold")
		scalar("EqualFold", "FieldEqualFold")
		scalar("HasPrefix", "FieldHasPrefix")
		scalar("HasSuffix", "FieldHasSuffix")
	}
	if field.Type.Nullable {
		nullary("IsNil", "FieldNil")
		nullary("NotNil", "FieldNotNil")
	}
}

// paramType returns the helper parameter type of a field kind, or nil
// when the kind cannot be filtered on.
func paramType(k nexus.Kind) *jen.Statement {
	switch k {
	case nexus.KindBool:
		return jen.Bool()
	case nexus.KindInt:
		return jen.Int()
	case nexus.KindFloat:
		return jen.Float64()
	case nexus.KindString:
		return jen.String()
	case nexus.KindTime:
		return jen.Qual("time", "Time")
	case nexus.KindUUID:
		return jen.Qual(uuidPkg, "UUID")
	}
	return nil
}

// fieldConstant returns the column constant name of a field.
func fieldConstant(name string) string {
	return "Field" + graph.Pascal(name)
}

// registryFile renders the registry.go file at the target root.
// Registration follows manifest order, which fixes the order derived
// fields appear on the built object types.
func (g *generator) registryFile() *jen.File {
	f := g.newFile(g.pkgName)
	f.Comment("Registry returns a registry holding the generated collections and their relations.")
	f.Func().Id("Registry").Params().Op("*").Qual(nexusPkg, "Registry").BlockFunc(func(body *jen.Group) {
		body.Id("registry").Op(":=").Qual(nexusPkg, "NewRegistry").Call()
		if len(g.manifest.Collections) > 0 {
			body.Id("registry").Dot("AddCollections").CallFunc(func(args *jen.Group) {
				for _, cs := range g.manifest.Collections {
					args.Qual(g.subPkg(cs.Name), "Collection").Call()
				}
			})
		}
		if len(g.manifest.Relations) > 0 {
			body.Id("registry").Dot("AddRelations").CallFunc(func(args *jen.Group) {
				for _, rs := range g.manifest.Relations {
					args.Op("&").Qual(nexusPkg, "Relation").Values(g.relationDict(rs))
				}
			})
		}
		body.Return(jen.Id("registry"))
	})
	return f
}

// relationDict renders the literal of one manifest relation. Relations
// without a tail key get no condition, matching the loader.
func (g *generator) relationDict(rs *load.RelationSpec) jen.Dict {
	kind, _ := load.ParseRel(rs.Kind)
	headPkg, tailPkg := g.subPkg(rs.Head), g.subPkg(rs.Tail)
	headKey := rs.HeadKey
	if headKey == "" {
		col, _ := g.registry.Collection(rs.Head)
		headKey = col.Key().Name
	}
	d := jen.Dict{
		jen.Id("Name"):    jen.Lit(rs.Name),
		jen.Id("Rel"):     jen.Qual(nexusPkg, kind.String()),
		jen.Id("Head"):    jen.Qual(headPkg, "Collection").Call(),
		jen.Id("HeadKey"): jen.Qual(headPkg, "Collection").Call().Dot("Field").Call(jen.Qual(headPkg, fieldConstant(headKey))),
		jen.Id("Tail"):    jen.Qual(tailPkg, "Collection").Call(),
	}
	if rs.TailKey != "" {
		d[jen.Id("Condition")] = jen.Func().Params(jen.Id("head").Qual(nexusPkg, "Value")).Qual(nexusPkg, "Condition").Block(
			jen.Return(jen.Qual(qlPkg, "FieldEQ").Call(
				jen.Qual(tailPkg, fieldConstant(rs.TailKey)),
				jen.Id("head").Dot("Get").Call(jen.Qual(headPkg, fieldConstant(headKey))),
			)),
		)
	}
	return d
}

// subPkg returns the import path of a collection's binding package.
func (g *generator) subPkg(name string) string {
	return path.Join(g.pkgPath, strings.ToLower(name))
}

// newFile creates a new jennifer file with the header comment.
func (g *generator) newFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(g.header)
	return f
}

// writeFile streams a jennifer file to disk.
func writeFile(name string, f *jen.File) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	out, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	defer out.Close()
	if err := f.Render(out); err != nil {
		return fmt.Errorf("gen: render %s: %w", name, err)
	}
	return nil
}
