package openapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed openapi30.schema.json
var openAPI30Schema string

// Spec is an OpenAPI document read from disk, kept as generic JSON values so unknown fields survive.
type Spec map[string]any

// LoadSpec reads a JSON or YAML OpenAPI document and validates its top-level structure.
func LoadSpec(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec, err := ParseSpec(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := Validate(spec); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return spec, nil
}

// ParseSpec decodes data as YAML when ext is .yaml/.yml and as JSON otherwise.
func ParseSpec(data []byte, ext string) (Spec, error) {
	var raw any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		// Round-trip through JSON so numbers and maps have the types the validator expects.
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		raw = nil
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("openapi document must be an object, got %T", raw)
	}
	return Spec(m), nil
}

// Validate checks doc against the OpenAPI 3.0 document schema. doc may be a Spec, a *Document or any
// value that marshals to JSON.
func Validate(doc any) error {
	schema, err := jsonschema.CompileString("openapi30.schema.json", openAPI30Schema)
	if err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(jsonBytes, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}

// SetServerURL replaces the servers list with a single entry.
func (s Spec) SetServerURL(url string) {
	s["servers"] = []any{map[string]any{"url": url}}
}

// ServerURL returns the first server URL, or "".
func (s Spec) ServerURL() string {
	servers, _ := s["servers"].([]any)
	if len(servers) == 0 {
		return ""
	}
	first, _ := servers[0].(map[string]any)
	url, _ := first["url"].(string)
	return url
}

// Title returns info.title, or "".
func (s Spec) Title() string {
	info, _ := s["info"].(map[string]any)
	title, _ := info["title"].(string)
	return title
}
