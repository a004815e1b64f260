// File: lixenwraith/cliconfig/io.go
package cliconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Supported file formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ReadConfigFile reads a flat mapping from a JSON, YAML or TOML file.
// The parser is selected by the file extension.
func ReadConfigFile(path string) (map[string]any, error) {
	fileConfig, _, err := ReadConfigFileOrdered(path)
	return fileConfig, err
}

// ReadConfigFileOrdered is ReadConfigFile that also returns the keys of the
// series mapping in the order the file lists them, for ExpandSeries.
func ReadConfigFileOrdered(path string) (map[string]any, []string, error) {
	format, err := detectFileFormat(path)
	if err != nil {
		return nil, nil, err
	}

	fileData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	fileConfig := make(map[string]any)
	var seriesOrder []string
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(fileData), &fileConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse TOML config file '%s': %w", path, err)
		}
		seriesOrder = tomlSeriesOrder(meta)
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(fileData))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&fileConfig); err != nil {
			return nil, nil, fmt.Errorf("failed to parse JSON config file '%s': %w", path, err)
		}
		seriesOrder = jsonSeriesOrder(fileData)
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(fileData, &doc); err != nil {
			return nil, nil, fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
		}
		if doc.Kind != 0 {
			if err := doc.Decode(&fileConfig); err != nil {
				return nil, nil, fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
			}
		}
		if fileConfig == nil {
			fileConfig = make(map[string]any) // empty document
		}
		seriesOrder = yamlSeriesOrder(&doc)
	}

	return fileConfig, seriesOrder, nil
}

// tomlSeriesOrder picks the series keys out of the document-ordered key list.
// Tables, inline tables and dotted keys all record their keys there.
func tomlSeriesOrder(meta toml.MetaData) []string {
	var order []string
	seen := make(map[string]bool)
	for _, key := range meta.Keys() {
		if len(key) == 2 && key[0] == SeriesKey && !seen[key[1]] {
			seen[key[1]] = true
			order = append(order, key[1])
		}
	}
	return order
}

// yamlSeriesOrder walks the mapping node of the series key.
func yamlSeriesOrder(doc *yaml.Node) []string {
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != SeriesKey {
			continue
		}
		series := root.Content[i+1]
		if series.Kind == yaml.AliasNode && series.Alias != nil {
			series = series.Alias
		}
		if series.Kind != yaml.MappingNode {
			return nil
		}
		order := make([]string, 0, len(series.Content)/2)
		for j := 0; j+1 < len(series.Content); j += 2 {
			order = append(order, series.Content[j].Value)
		}
		return order
	}
	return nil
}

// jsonSeriesOrder streams the top-level object and collects the member names
// of the series object. Malformed input yields nil; Decode reports it.
func jsonSeriesOrder(data []byte) []string {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if tok, err := decoder.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil
		}
		if key, _ := tok.(string); key != SeriesKey {
			var skip json.RawMessage
			if err := decoder.Decode(&skip); err != nil {
				return nil
			}
			continue
		}

		if tok, err := decoder.Token(); err != nil || tok != json.Delim('{') {
			return nil
		}
		var order []string
		for decoder.More() {
			tok, err := decoder.Token()
			if err != nil {
				return nil
			}
			name, _ := tok.(string)
			order = append(order, name)
			var skip json.RawMessage
			if err := decoder.Decode(&skip); err != nil {
				return nil
			}
		}
		return order
	}
	return nil
}

// WriteConfigFile encodes data in the format selected by the file extension
// and replaces path atomically.
func WriteConfigFile(path string, data map[string]any) error {
	format, err := detectFileFormat(path)
	if err != nil {
		return err
	}

	normalized := make(map[string]any, len(data))
	for k, v := range data {
		nv := normalizeForFile(v)
		if nv == nil && format == FormatTOML {
			continue // TOML has no null
		}
		normalized[k] = nv
	}

	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(normalized); err != nil {
			return fmt.Errorf("failed to marshal config data to TOML: %w", err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(normalized); err != nil {
			return fmt.Errorf("failed to marshal config data to JSON: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(normalized); err != nil {
			return fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
	}

	return atomicWriteFile(path, buf.Bytes())
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: '%s' (supported are .toml, .yaml, .yml and .json)", ErrUnsupportedFormat, ext)
	}
}

// normalizeForFile turns values without a native file representation
// (durations, URLs, IPs, paths) into strings the decode hooks read back.
func normalizeForFile(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case FilePath:
		return string(val)
	case time.Duration:
		return val.String()
	case url.URL:
		return val.String()
	case *url.URL:
		return val.String()
	case fmt.Stringer:
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeForFile(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalizeForFile(rv.Index(i).Interface())
		}
		return out
	case reflect.String:
		return rv.String()
	}
	return v
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
