// Package spec extracts declared route paths from OpenAPI documents.
package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRoutePaths reads an OpenAPI document (YAML or JSON, yaml.v3
// parses both) and returns the keys of its paths object in declaration
// order. A document without a paths mapping is a fatal configuration
// error.
func LoadRoutePaths(specPath string) ([]string, error) {
	content, err := os.ReadFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read API spec %s: %w", specPath, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse API spec %s: %w", specPath, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("API spec %s: document is not a mapping", specPath)
	}

	pathsNode := mappingValue(doc.Content[0], "paths")
	if pathsNode == nil {
		return nil, fmt.Errorf("API spec %s: no paths object found", specPath)
	}
	if pathsNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("API spec %s: paths is not a mapping", specPath)
	}

	// A yaml mapping node lists keys and values interleaved, so
	// iterating Content preserves declaration order.
	paths := make([]string, 0, len(pathsNode.Content)/2)
	for i := 0; i+1 < len(pathsNode.Content); i += 2 {
		paths = append(paths, pathsNode.Content[i].Value)
	}
	return paths, nil
}

func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
