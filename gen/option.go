package gen

// DefaultHeader is the comment placed at the top of generated files
// when no override is configured.
const DefaultHeader = "Code generated by nexusgen. DO NOT EDIT."

// Config carries the code generation settings.
type Config struct {
	// Manifests are the manifest files the bindings are generated
	// from.
	Manifests []string

	// Target is the directory generated files are written to.
	Target string

	// Package is the import path of the target package. When empty it
	// is resolved from the Go package found in the target directory.
	Package string

	// Header is the comment placed at the top of each generated file.
	// Empty means DefaultHeader.
	Header string
}

// Option configures code generation.
type Option func(*Config) error

// WithManifests adds manifest files to read collections and relations
// from.
func WithManifests(paths ...string) Option {
	return func(c *Config) error {
		if len(paths) == 0 {
			return NewConfigError("Manifests", nil, "at least one manifest is required")
		}
		c.Manifests = append(c.Manifests, paths...)
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/bindings".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
