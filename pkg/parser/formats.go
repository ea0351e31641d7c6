package parser

import (
	"bytes"
	"fmt"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockroute/pkg/value"
)

// JSON parses strict JSON.
type JSON struct{}

func (JSON) Name() string { return "JSON" }

func (JSON) Parse(data []byte) (value.Value, error) {
	v, err := value.ParseJSON(data)
	if err != nil {
		return value.Value{}, fmt.Errorf("parsing JSON: %w", err)
	}
	return v, nil
}

// JSONC parses JSON with line and block comments and trailing commas.
type JSONC struct{}

func (JSONC) Name() string { return "JSONC" }

func (JSONC) Parse(data []byte) (value.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return value.Value{}, nil
	}
	std, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return value.Value{}, fmt.Errorf("parsing JSONC: %w", err)
	}
	v, err := value.ParseJSON(std)
	if err != nil {
		return value.Value{}, fmt.Errorf("parsing JSONC: %w", err)
	}
	return v, nil
}

// YAML parses the first document of a YAML stream.
type YAML struct{}

func (YAML) Name() string { return "YAML" }

func (YAML) Parse(data []byte) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return value.Value{}, fmt.Errorf("parsing YAML: %w", err)
	}
	v, err := value.FromYAMLNode(&doc)
	if err != nil {
		return value.Value{}, fmt.Errorf("parsing YAML: %w", err)
	}
	return v, nil
}
