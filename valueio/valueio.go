// Package valueio decodes JSON and YAML documents into raw values the
// snapshot package understands.
//
// JSON objects carry no order, so they decode to Go maps and snapshot as
// unordered Maps. YAML mappings decode to snapshot.Pairs in document order,
// and YAML sets (!!set) decode to snapshot.Unordered.
package valueio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Supported formats.
const (
	JSON = "json"
	YAML = "yaml"
)

// Decode parses a single document in the given format.
func Decode(format string, data []byte) (interface{}, error) {
	switch format {
	case JSON:
		return decodeJSON(data)
	case YAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("Unknown format %q, expected %q or %q", format, JSON, YAML)
	}
}

// FormatForPath picks a format from a file extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("Cannot tell the format of %s from its extension", path)
	}
}
