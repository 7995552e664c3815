package dsl

import (
	"fmt"
	"io"

	objectwire "github.com/objectwire/objectwire"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML shape for Options defaults: a configuration
// document decoded straight into a plain struct with yaml.v3. Type names
// are resolved against a caller-supplied TypeRegistry, Go's stand-in for
// a Class.forName lookup.
type FileConfig struct {
	UnknownTypeClass     string            `yaml:"unknownTypeClass"`
	CoercedClasses       map[string]string `yaml:"coercedClasses"`
	ReturningJSONObjects bool              `yaml:"returningJsonObjects"`
	MaxDepth             int               `yaml:"maxDepth"`
	MaxBytes             int64             `yaml:"maxBytes"`
}

// LoadOptionsFromYAML decodes a FileConfig from r and applies it on top of
// a fresh Options, resolving every type name through reg.
func LoadOptionsFromYAML(r io.Reader, reg *objectwire.TypeRegistry) (*objectwire.Options, error) {
	var fc FileConfig
	if err := yaml.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("dsl: decode config: %w", err)
	}
	b := NewOptions().
		WithTypeRegistry(reg).
		WithReturningJSONObjects(fc.ReturningJSONObjects).
		WithMaxDepth(fc.MaxDepth).
		WithMaxBytes(fc.MaxBytes)

	if fc.UnknownTypeClass != "" {
		if t, ok := reg.Resolve(fc.UnknownTypeClass); ok {
			b.WithUnknownTypeClass(t)
		} else {
			return nil, fmt.Errorf("dsl: unknownTypeClass %q not registered", fc.UnknownTypeClass)
		}
	}
	for from, to := range fc.CoercedClasses {
		ft, ok := reg.Resolve(from)
		if !ok {
			return nil, fmt.Errorf("dsl: coercedClasses: %q not registered", from)
		}
		tt, ok := reg.Resolve(to)
		if !ok {
			return nil, fmt.Errorf("dsl: coercedClasses: %q not registered", to)
		}
		b.WithCoercedClass(ft, tt)
	}
	return b.Build(), nil
}
