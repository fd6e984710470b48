package graph

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the nexus.yml configuration file. It carries the
// build options that make sense to set per project rather than in
// code, plus the manifest paths consumed by the loader and the
// generator.
type FileConfig struct {
	// IDField is the name of the synthesized identifier field.
	IDField string `yaml:"id_field,omitempty"`

	// PageLimit is the default page size of connection fields.
	PageLimit int `yaml:"page_limit,omitempty"`

	// Manifests is the path(s) to the collection manifest file(s).
	Manifests StringList `yaml:"manifests,omitempty"`

	// Schema is the path the exported SDL is written to.
	Schema string `yaml:"schema,omitempty"`

	// Package is the import path of the generated bindings package.
	Package string `yaml:"package,omitempty"`

	// Output is the directory generated bindings are written to.
	Output string `yaml:"output,omitempty"`
}

// StringList is a YAML type that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler for StringList.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// LoadConfig loads a nexus.yml configuration file. A missing file is
// not an error; the defaults are returned.
func LoadConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{
		IDField:   "id",
		PageLimit: DefaultPageLimit,
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read nexus config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse nexus config: %w", err)
	}
	if cfg.IDField == "" {
		cfg.IDField = "id"
	}
	if cfg.PageLimit == 0 {
		cfg.PageLimit = DefaultPageLimit
	}
	return cfg, nil
}

// SaveConfig saves a nexus.yml configuration file.
func SaveConfig(path string, cfg *FileConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal nexus config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Options returns the context options encoded in the file.
func (c *FileConfig) Options() []Option {
	opts := []Option{}
	if c.IDField != "" {
		opts = append(opts, WithIDFieldName(c.IDField))
	}
	if c.PageLimit > 0 {
		opts = append(opts, WithPageLimit(c.PageLimit))
	}
	return opts
}
