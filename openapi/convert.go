package openapi

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/awantoch/foundryflow/constants"
	"gopkg.in/yaml.v3"
)

// JSON returns the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", constants.JSONIndent)
}

// YAML returns the document as block-style YAML, keeping the JSON key order.
func (d *Document) YAML() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := ToYAML(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Map converts the document to generic JSON values, the form embedded in tool definitions.
func (d *Document) Map() (map[string]any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToYAML converts JSON bytes to YAML and writes to w.
func ToYAML(w io.Writer, jsonData []byte) error {
	// JSON is YAML; decoding into a node keeps key order, which a map would lose.
	var node yaml.Node
	if err := yaml.Unmarshal(jsonData, &node); err != nil {
		return err
	}
	blockStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
