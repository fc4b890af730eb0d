package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// loadHeadersFiles reads YAML header files and merges them in declaration
// order. Later files override earlier files for the same header.
func loadHeadersFiles(configDir string, files []string) (map[string]string, error) {
	merged := make(map[string]string)

	for _, file := range files {
		path := resolvePath(configDir, file)

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read headers file %q: %w", file, err)
		}

		var headers map[string]string
		if err := yaml.Unmarshal(data, &headers); err != nil {
			return nil, fmt.Errorf("parse headers file %q: %w", file, err)
		}

		maps.Copy(merged, headers)
	}

	return merged, nil
}

func resolvePath(configDir, file string) string {
	if filepath.IsAbs(file) || configDir == "" {
		return file
	}
	return filepath.Join(configDir, file)
}
