// nexusgen builds Go bindings and a GraphQL schema from collection
// manifests.
//
// Usage:
//
//	nexusgen [flags] [manifest.yaml ...]
//
// Manifests passed as arguments take precedence over the ones listed
// in the configuration file. With -target set the tool writes one
// bindings package per collection plus a registry package; with
// -schema set it exports the derived schema as SDL. The -gqlgen flag
// additionally wires both into an existing gqlgen.yml.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/syssam/nexus/contrib/gqlgen"
	"github.com/syssam/nexus/gen"
	"github.com/syssam/nexus/graph"
	"github.com/syssam/nexus/load"
)

func main() {
	var (
		configPath = flag.String("config", "nexus.yml", "path to the nexus configuration file")
		target     = flag.String("target", "", "directory the generated bindings are written to")
		pkgPath    = flag.String("package", "", "import path of the generated bindings package")
		schemaPath = flag.String("schema", "", "path the exported GraphQL schema is written to")
		gqlgenPath = flag.String("gqlgen", "", "gqlgen.yml to wire the schema and bindings into")
	)
	flag.Parse()
	if err := run(*configPath, *target, *pkgPath, *schemaPath, *gqlgenPath, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "nexusgen: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, target, pkgPath, schemaPath, gqlgenPath string, manifests []string) error {
	cfg, err := graph.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if len(manifests) == 0 {
		manifests = cfg.Manifests
	}
	if len(manifests) == 0 {
		return fmt.Errorf("no manifests; pass them as arguments or list them in %s", configPath)
	}
	if target == "" {
		target = cfg.Output
	}
	if pkgPath == "" {
		pkgPath = cfg.Package
	}
	if schemaPath == "" {
		schemaPath = cfg.Schema
	}
	if target == "" && schemaPath == "" {
		return fmt.Errorf("nothing to generate; set -target or -schema")
	}
	if target != "" {
		opts := []gen.Option{
			gen.WithManifests(manifests...),
			gen.WithTarget(target),
		}
		if pkgPath != "" {
			opts = append(opts, gen.WithPackage(pkgPath))
		}
		gcfg, err := gen.NewConfig(opts...)
		if err != nil {
			return err
		}
		if err := gen.Generate(gcfg); err != nil {
			return err
		}
	}
	if schemaPath != "" {
		if err := exportSchema(cfg, schemaPath, manifests); err != nil {
			return err
		}
	}
	if gqlgenPath != "" {
		gc, err := gqlgen.LoadConfig(gqlgenPath)
		if err != nil {
			return err
		}
		gc.Inject(pkgPath, schemaPath)
		if err := gqlgen.SaveConfig(gqlgenPath, gc); err != nil {
			return err
		}
	}
	return nil
}

func exportSchema(cfg *graph.FileConfig, schemaPath string, manifests []string) error {
	registry, err := load.Load(manifests...)
	if err != nil {
		return err
	}
	schema, err := graph.Schema(graph.NewContext(registry, cfg.Options()...))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(schemaPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write schema: %w", err)
		}
	}
	if err := os.WriteFile(schemaPath, []byte(graph.FormatSDL(schema)), 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}
