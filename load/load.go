// Package load reads collection manifests and turns them into a
// registry. Manifests are YAML documents declaring collections, their
// fields and the relations between them; the package validates the
// declarations and wires relation conditions from the declared keys.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/querylanguage"
)

// Manifest is the root document of a manifest file. Multiple files can
// be merged into one manifest before building; names must be unique
// across the merged set.
type Manifest struct {
	Collections []*CollectionSpec `yaml:"collections"`
	Relations   []*RelationSpec   `yaml:"relations,omitempty"`
}

// CollectionSpec declares one collection.
type CollectionSpec struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Table       string       `yaml:"table,omitempty"`
	Key         string       `yaml:"key,omitempty"`
	Fields      []*FieldSpec `yaml:"fields"`
}

// FieldSpec declares one collection field. Type is a kind name in the
// fieldtype vocabulary (bool, int, float, string, time, uuid, bytes,
// json), optionally prefixed with "[]" for a list.
type FieldSpec struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Nullable    bool   `yaml:"nullable,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// RelationSpec declares a directed relation from a head collection to a
// tail collection. HeadKey defaults to the head's key field. TailKey
// names the tail column holding the head reference; when present the
// loader derives the relation condition from it, otherwise the relation
// is registered without one and produces no connection field.
type RelationSpec struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Head    string `yaml:"head"`
	HeadKey string `yaml:"head_key,omitempty"`
	Tail    string `yaml:"tail"`
	TailKey string `yaml:"tail_key,omitempty"`
}

// Load reads the given manifest files and builds a registry from their
// merged content.
func Load(paths ...string) (*nexus.Registry, error) {
	m, err := ParseFiles(paths...)
	if err != nil {
		return nil, err
	}
	return m.Build()
}

// Parse decodes a single manifest document. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	m, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("load: parse manifest: %w", err)
	}
	return m, nil
}

// ParseFiles reads and merges the given manifest files in order.
func ParseFiles(paths ...string) (*Manifest, error) {
	merged := &Manifest{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load: read manifest: %w", err)
		}
		m, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("load: parse manifest %s: %w", path, err)
		}
		merged.Collections = append(merged.Collections, m.Collections...)
		merged.Relations = append(merged.Relations, m.Relations...)
	}
	return merged, nil
}

func parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return m, nil
		}
		return nil, err
	}
	return m, nil
}

// Build converts the manifest into a registry. Duplicate names, unknown
// kinds and dangling references are reported as validation errors.
// Defects are collected per phase, so one broken collection does not
// hide the others; relations are only checked once all collections
// built cleanly.
func (m *Manifest) Build() (*nexus.Registry, error) {
	registry := nexus.NewRegistry()
	var errs []error
	for _, cs := range m.Collections {
		if _, ok := registry.Collection(cs.Name); ok {
			errs = append(errs, nexus.NewValidationError(cs.Name, errors.New("duplicate collection")))
			continue
		}
		col, err := cs.build()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		registry.AddCollections(col)
	}
	if len(errs) > 0 {
		return nil, nexus.NewAggregateError(errs...)
	}
	seen := make(map[string]bool, len(m.Relations))
	for _, rs := range m.Relations {
		if seen[rs.Name] {
			errs = append(errs, nexus.NewValidationError(rs.Name, errors.New("duplicate relation")))
			continue
		}
		seen[rs.Name] = true
		rel, err := rs.build(registry)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		registry.AddRelations(rel)
	}
	if len(errs) > 0 {
		return nil, nexus.NewAggregateError(errs...)
	}
	return registry, nil
}

func (s *CollectionSpec) build() (*nexus.Collection, error) {
	if s.Name == "" {
		return nil, nexus.NewValidationError("collection", errors.New("missing name"))
	}
	col := nexus.NewCollection(s.Name)
	if s.Description != "" {
		col.SetDescription(s.Description)
	}
	if s.Table != "" {
		col.SetTable(s.Table)
	}
	for _, fs := range s.Fields {
		if fs.Name == "" {
			return nil, nexus.NewValidationError(s.Name, errors.New("field missing name"))
		}
		if col.Field(fs.Name) != nil {
			return nil, nexus.NewValidationError(s.Name, fmt.Errorf("duplicate field %q", fs.Name))
		}
		typ, err := ParseType(fs.Type)
		if err != nil {
			return nil, nexus.NewValidationError(s.Name, fmt.Errorf("field %q: %w", fs.Name, err))
		}
		if fs.Nullable {
			typ = typ.Optional()
		}
		col.AddFields(&nexus.Field{
			Name:        fs.Name,
			Description: fs.Description,
			Type:        typ,
		})
	}
	if s.Key != "" {
		kf := col.Field(s.Key)
		if kf == nil {
			return nil, nexus.NewValidationError(s.Name, fmt.Errorf("key references unknown field %q", s.Key))
		}
		col.SetKey(kf)
	}
	return col, nil
}

func (s *RelationSpec) build(registry *nexus.Registry) (*nexus.Relation, error) {
	if s.Name == "" {
		return nil, nexus.NewValidationError("relation", errors.New("missing name"))
	}
	kind, err := ParseRel(s.Kind)
	if err != nil {
		return nil, nexus.NewValidationError(s.Name, err)
	}
	head, ok := registry.Collection(s.Head)
	if !ok {
		return nil, nexus.NewValidationError(s.Name, fmt.Errorf("unknown head collection %q", s.Head))
	}
	tail, ok := registry.Collection(s.Tail)
	if !ok {
		return nil, nexus.NewValidationError(s.Name, fmt.Errorf("unknown tail collection %q", s.Tail))
	}
	headKey := head.Key()
	if s.HeadKey != "" {
		if headKey = head.Field(s.HeadKey); headKey == nil {
			return nil, nexus.NewValidationError(s.Name, fmt.Errorf("unknown head key %q", s.HeadKey))
		}
	}
	if headKey == nil {
		return nil, nexus.NewValidationError(s.Name, fmt.Errorf("head collection %q has no key", s.Head))
	}
	rel := &nexus.Relation{
		Name:    s.Name,
		Rel:     kind,
		Head:    head,
		HeadKey: headKey,
		Tail:    tail,
	}
	if s.TailKey != "" {
		tk := tail.Field(s.TailKey)
		if tk == nil {
			return nil, nexus.NewValidationError(s.Name, fmt.Errorf("unknown tail key %q", s.TailKey))
		}
		tailColumn, headColumn := tk.Name, headKey.Name
		rel.Condition = func(head nexus.Value) nexus.Condition {
			return querylanguage.FieldEQ(tailColumn, head.Get(headColumn))
		}
	}
	return rel, nil
}

var fieldTypes = map[string]nexus.Type{
	"bool":   nexus.Bool(),
	"int":    nexus.Int(),
	"float":  nexus.Float(),
	"string": nexus.String(),
	"time":   nexus.Time(),
	"uuid":   nexus.UUID(),
	"bytes":  nexus.Bytes(),
	"json":   nexus.JSON(),
}

// ParseType parses a manifest field type into its semantic type.
func ParseType(s string) (nexus.Type, error) {
	if elem, ok := strings.CutPrefix(s, "[]"); ok {
		et, err := ParseType(elem)
		if err != nil {
			return nexus.Type{}, err
		}
		if et.Kind == nexus.KindList {
			return nexus.Type{}, fmt.Errorf("nested list type %q", s)
		}
		return nexus.List(et), nil
	}
	t, ok := fieldTypes[s]
	if !ok {
		if s == "" {
			return nexus.Type{}, errors.New("missing field type")
		}
		return nexus.Type{}, fmt.Errorf("unknown field type %q", s)
	}
	return t, nil
}

// ParseRel parses a manifest relation kind.
func ParseRel(s string) (nexus.Rel, error) {
	switch strings.ToUpper(s) {
	case "O2O":
		return nexus.O2O, nil
	case "O2M":
		return nexus.O2M, nil
	case "M2O":
		return nexus.M2O, nil
	case "M2M":
		return nexus.M2M, nil
	case "":
		return nexus.Unk, errors.New("missing relation kind")
	default:
		return nexus.Unk, fmt.Errorf("unknown relation kind %q", s)
	}
}
