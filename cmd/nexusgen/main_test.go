package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manifest = []byte(`
collections:
  - name: user
    fields:
      - name: id
        type: int
      - name: name
        type: string
      - name: created_at
        type: time
    key: id
  - name: post
    fields:
      - name: id
        type: int
      - name: title
        type: string
      - name: user_id
        type: int
    key: id
relations:
  - name: posts
    kind: o2m
    head: user
    tail: post
    tail_key: user_id
`)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "collections.yaml")
	writeFile(t, manifestPath, manifest)
	var (
		target     = filepath.Join(dir, "bindings")
		schemaPath = filepath.Join(dir, "graph", "nexus.graphql")
		gqlgenPath = filepath.Join(dir, "gqlgen.yml")
	)
	err := run(filepath.Join(dir, "nexus.yml"), target, "example.com/app/bindings", schemaPath, gqlgenPath, []string{manifestPath})
	require.NoError(t, err)

	user := readFile(t, filepath.Join(target, "user", "user.go"))
	assert.Contains(t, user, "package user")
	assert.Contains(t, user, `Label = "user"`)
	registry := readFile(t, filepath.Join(target, "registry.go"))
	assert.Contains(t, registry, "func Registry() *nexus.Registry")

	sdl := readFile(t, schemaPath)
	assert.Contains(t, sdl, "type User implements Node")
	assert.Contains(t, sdl, "type Post implements Node")
	assert.Contains(t, sdl, "id: ID!")
	assert.Contains(t, sdl, "name: String!")
	assert.Contains(t, sdl, "createdAt: Time!")
	assert.Contains(t, sdl, "): Node")
	// manifests carry no paginators or resolvers, so relation fields
	// stay out of the exported schema
	assert.NotContains(t, sdl, "postByPosts")

	gy := readFile(t, gqlgenPath)
	assert.Contains(t, gy, "nexus.graphql")
	assert.Contains(t, gy, "example.com/app/bindings")
	assert.Contains(t, gy, "github.com/99designs/gqlgen/graphql.Time")
}

func TestRunConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "collections.yaml")
	writeFile(t, manifestPath, manifest)
	var (
		target     = filepath.Join(dir, "bindings")
		schemaPath = filepath.Join(dir, "nexus.graphql")
		configPath = filepath.Join(dir, "nexus.yml")
	)
	config := fmt.Sprintf(
		"manifests: %s\noutput: %s\npackage: example.com/app/bindings\nschema: %s\npage_limit: 10\n",
		manifestPath, target, schemaPath,
	)
	writeFile(t, configPath, []byte(config))

	require.NoError(t, run(configPath, "", "", "", "", nil))
	assert.FileExists(t, filepath.Join(target, "post", "post.go"))
	assert.FileExists(t, filepath.Join(target, "registry.go"))
	assert.Contains(t, readFile(t, schemaPath), "type User implements Node")
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "collections.yaml")
	writeFile(t, manifestPath, manifest)
	configPath := filepath.Join(dir, "nexus.yml")

	t.Run("NoManifests", func(t *testing.T) {
		err := run(configPath, filepath.Join(dir, "bindings"), "", "", "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no manifests")
	})
	t.Run("NothingToGenerate", func(t *testing.T) {
		err := run(configPath, "", "", "", "", []string{manifestPath})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nothing to generate")
	})
	t.Run("BrokenConfig", func(t *testing.T) {
		broken := filepath.Join(dir, "broken.yml")
		writeFile(t, broken, []byte("manifests: [unclosed"))
		err := run(broken, "", "", filepath.Join(dir, "out.graphql"), "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse nexus config")
	})
	t.Run("BrokenManifest", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		writeFile(t, bad, []byte("collections: {not a list}"))
		err := run(configPath, "", "", filepath.Join(dir, "out.graphql"), "", []string{bad})
		require.Error(t, err)
	})
}
