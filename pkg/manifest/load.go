package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/mockroute/internal/matching"
	"github.com/getmockd/mockroute/pkg/parser"
	"github.com/getmockd/mockroute/pkg/value"
)

// Load builds a manifest from src:
//
//   - string: trimmed; a path to an existing file is loaded with LoadFile,
//     an empty string yields an empty manifest, anything else is parsed
//     as JSONC
//   - []byte: parsed as JSONC
//   - value.Value, *value.Object, map[string]any: used directly
//   - nil: empty manifest
//
// Other types fail with ErrInvalidManifestType.
func Load(src any, opts ...Option) (*Manifest, error) {
	switch s := src.(type) {
	case nil:
		return New(opts...), nil
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return New(opts...), nil
		}
		if isFile(trimmed) {
			return LoadFile(trimmed, opts...)
		}
		return LoadBytes([]byte(trimmed), opts...)
	case []byte:
		return LoadBytes(s, opts...)
	default:
		doc, err := toDocument(src)
		if err != nil {
			return nil, err
		}
		return LoadValue(doc, opts...)
	}
}

// LoadFile loads a manifest file. The extension selects the parser.
func LoadFile(path string, opts ...Option) (*Manifest, error) {
	p, err := parser.ForExtension(filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}
	doc, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestParse, path, err)
	}

	o := buildOptions(opts)
	m, err := fromDocument(doc, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	o.log.Debug("loaded manifest", "path", path, "format", p.Name(), "routes", m.Len())
	return m, nil
}

// LoadBytes parses a JSONC document.
func LoadBytes(data []byte, opts ...Option) (*Manifest, error) {
	doc, err := parser.JSONC{}.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}
	return fromDocument(doc, buildOptions(opts))
}

// LoadValue builds a manifest from an already decoded document.
func LoadValue(doc value.Value, opts ...Option) (*Manifest, error) {
	return fromDocument(doc, buildOptions(opts))
}

// LoadGlob loads every manifest file matching pattern ("**" allowed) in
// lexical order and merges them. Routes from later files replace routes of
// the same name from earlier ones. No matches yield an empty manifest.
func LoadGlob(pattern string, opts ...Option) (*Manifest, error) {
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: bad glob %q: %v", ErrManifestParse, pattern, err)
	}
	slices.Sort(paths)

	o := buildOptions(opts)
	merged := newManifest(o)
	for _, path := range paths {
		if _, err := parser.ForExtension(filepath.Ext(path)); err != nil {
			o.log.Debug("skipping non-manifest file", "path", path)
			continue
		}
		m, err := LoadFile(path, opts...)
		if err != nil {
			return nil, err
		}
		merged.merge(m)
	}
	return merged, nil
}

func (m *Manifest) merge(other *Manifest) {
	other.mu.RLock()
	defer other.mu.RUnlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, route := range other.order {
		m.put(route, other.routes[route])
	}
	m.order = matching.SortRoutes(m.order)
}

func fromDocument(doc value.Value, o options) (*Manifest, error) {
	if doc.IsNull() {
		return newManifest(o), nil
	}
	obj, ok := doc.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: expected a map of routes, got %s", ErrInvalidManifestType, doc.Kind())
	}
	if o.validateSchema {
		if err := ValidateDocument(doc); err != nil {
			return nil, err
		}
	}

	m := newManifest(o)
	var err error
	obj.Range(func(route string, v value.Value) bool {
		var defs []*Definition
		defs, err = prepareRoute(route, v)
		if err != nil {
			return false
		}
		m.put(route, defs)
		return true
	})
	if err != nil {
		return nil, err
	}
	m.order = matching.SortRoutes(m.order)
	return m, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
