package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseFile loads and parses a YAML test script.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("test script not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read test script %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML test script bytes. The document must be a mapping;
// missing optional keys keep their defaults.
func Parse(data []byte) (*Script, error) {
	s := New()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid test script: %w", err)
	}
	return &s, nil
}
