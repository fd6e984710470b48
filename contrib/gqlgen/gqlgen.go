// Package gqlgen wires exported schemas and generated bindings into
// gqlgen projects by editing their gqlgen.yml configuration.
package gqlgen

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/syssam/nexus/graph"
)

// Config is the subset of gqlgen.yml the injector touches. Everything
// else round-trips through Rest untouched.
type Config struct {
	// SchemaFilename is the path(s) to the GraphQL schema file(s).
	SchemaFilename graph.StringList `yaml:"schema,omitempty"`

	// Autobind is a list of packages to bind types from by name.
	Autobind []string `yaml:"autobind,omitempty"`

	// Models maps GraphQL type names to model configurations.
	Models map[string]TypeMapEntry `yaml:"models,omitempty"`

	// Rest holds the configuration keys this package does not touch.
	Rest map[string]any `yaml:",inline"`
}

// TypeMapEntry is the configuration of a single GraphQL type.
type TypeMapEntry struct {
	// Model is the Go model(s) bound to this GraphQL type.
	Model graph.StringList `yaml:"model,omitempty"`

	// Rest holds the per-type keys this package does not touch.
	Rest map[string]any `yaml:",inline"`
}

// LoadConfig loads a gqlgen.yml configuration file. A missing file is
// not an error; an empty configuration is returned.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{Models: make(map[string]TypeMapEntry)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read gqlgen config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse gqlgen config: %w", err)
	}
	if cfg.Models == nil {
		cfg.Models = make(map[string]TypeMapEntry)
	}
	return cfg, nil
}

// SaveConfig saves a gqlgen.yml configuration file.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal gqlgen config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// AddSchemaPath adds a schema path to the configuration if not already
// present.
func (c *Config) AddSchemaPath(path string) {
	if !slices.Contains(c.SchemaFilename, path) {
		c.SchemaFilename = append(c.SchemaFilename, path)
	}
}

// AddAutobind adds a package to the autobind list if not already
// present.
func (c *Config) AddAutobind(pkg string) {
	if !slices.Contains(c.Autobind, pkg) {
		c.Autobind = append(c.Autobind, pkg)
	}
}

// SetModel binds a GraphQL type to a Go model.
func (c *Config) SetModel(typeName, modelPath string) {
	if c.Models == nil {
		c.Models = make(map[string]TypeMapEntry)
	}
	entry := c.Models[typeName]
	if !slices.Contains(entry.Model, modelPath) {
		entry.Model = append(entry.Model, modelPath)
	}
	c.Models[typeName] = entry
}

// Inject wires an exported schema and a bindings package into the
// configuration. Autobind resolves most types by matching names; only
// the scalar models gqlgen cannot infer are bound explicitly. Binary
// fields stay unbound, their model depends on the project.
func (c *Config) Inject(bindings, schema string) {
	if schema != "" {
		c.AddSchemaPath(schema)
	}
	if bindings != "" {
		c.AddAutobind(bindings)
	}
	c.SetModel("Time", "github.com/99designs/gqlgen/graphql.Time")
	c.SetModel("UUID", "github.com/99designs/gqlgen/graphql.UUID")
	c.SetModel("JSON", "github.com/99designs/gqlgen/graphql.Map")
}
