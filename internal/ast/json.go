package ast

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dump renders the tree rooted at n as JSON. Every node carries a "kind"
// field; parent references are never included. An empty indent gives
// compact output.
func Dump(n Node, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return buf.Bytes(), nil
}

// DumpYAML renders the tree rooted at n as block-style YAML with the same
// field names and order as Dump.
func DumpYAML(n Node, indent int) ([]byte, error) {
	data, err := Dump(n, "")
	if err != nil {
		return nil, err
	}
	// JSON is valid YAML; decoding into a yaml.Node keeps the field order.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("convert tree: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
