package loader

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

func parseYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var terr *yaml.TypeError
		if errors.As(err, &terr) {
			perr.Message = strings.Join(terr.Errors, "; ")
		}
		perr.Line = yamlLine(perr.Message)
		return nil, perr
	}
	for k, v := range config {
		config[k] = normalizeYAML(v)
	}
	return config, nil
}

// yamlLine extracts the line from messages of the form "yaml: line 3: ...".
func yamlLine(msg string) int {
	var line int
	if _, err := fmt.Sscanf(msg, "yaml: line %d:", &line); err != nil {
		return 0
	}
	return line
}

// normalizeYAML converts mappings with non-string keys into
// map[string]any so YAML trees look like TOML ones.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeYAML(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeYAML(item)
		}
		return val
	default:
		return v
	}
}
