// Package parser decodes manifest documents from their on-disk formats.
//
// Every parser produces a value.Value so the rest of the engine never sees
// format-specific types. Supported formats are JSON, JSONC (JSON with
// comments and trailing commas) and YAML.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getmockd/mockroute/pkg/value"
)

// ErrUnsupportedFormat is returned for file extensions without a parser.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Parser decodes a document into a value tree.
type Parser interface {
	// Name returns a short format name used in error messages.
	Name() string
	// Parse decodes data. Blank input yields a null value.
	Parse(data []byte) (value.Value, error)
}

var byExtension = map[string]Parser{
	"json":  JSON{},
	"jsonc": JSONC{},
	"yml":   YAML{},
	"yaml":  YAML{},
}

// ForExtension returns the parser registered for ext. The leading dot is
// optional and matching is case-insensitive.
func ForExtension(ext string) (Parser, error) {
	key := strings.ToLower(strings.TrimPrefix(ext, "."))
	if p, ok := byExtension[key]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Extensions lists the supported file extensions without dots.
func Extensions() []string {
	return []string{"json", "jsonc", "yaml", "yml"}
}

// ParseFile reads path and decodes it with the parser for its extension.
func ParseFile(path string) (value.Value, error) {
	p, err := ForExtension(filepath.Ext(path))
	if err != nil {
		return value.Value{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, err
	}
	return p.Parse(data)
}
