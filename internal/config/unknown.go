package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// sections maps each known top-level key to the struct describing it.
var sections = map[string]reflect.Type{
	"source": reflect.TypeOf(SourceConfig{}),
	"engine": reflect.TypeOf(EngineConfig{}),
	"verify": reflect.TypeOf(VerifyConfig{}),
	"output": reflect.TypeOf(OutputConfig{}),
}

// detectUnknownFields compares the raw document with known struct fields.
// The data has already passed schema validation.
func detectUnknownFields(data []byte) []string {
	var warnings []string

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	for _, key := range sortedKeys(raw) {
		if key == "$schema" {
			continue
		}
		t, ok := sections[key]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
			continue
		}
		warnings = append(warnings, checkSectionUnknownFields(key, t, raw[key])...)
	}

	return warnings
}

func checkSectionUnknownFields(section string, t reflect.Type, data json.RawMessage) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// null sections are fine
		return nil
	}

	known := getYAMLFields(t)
	var warnings []string
	for _, key := range sortedKeys(fields) {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q in %s (ignored)", key, section))
		}
	}
	return warnings
}

// getYAMLFields returns the known YAML field names for a struct type.
func getYAMLFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			fields[name] = true
		}
	}
	return fields
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
