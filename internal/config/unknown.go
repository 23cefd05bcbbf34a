package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// detectUnknownFields compares decoded settings with the known fields of
// Config, recursing into nested sections.
func detectUnknownFields(settings map[string]interface{}) []string {
	return unknownIn(settings, reflect.TypeOf(Config{}), "")
}

func unknownIn(settings map[string]interface{}, t reflect.Type, section string) []string {
	var warnings []string

	known := getFields(t)
	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if section == "" && key == "$schema" {
			continue // $schema is explicitly allowed and ignored
		}
		fieldType, ok := known[key]
		if !ok {
			if section == "" {
				warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
			} else {
				warnings = append(warnings, fmt.Sprintf("unknown field %q in %q (ignored)", key, section))
			}
			continue
		}
		nested, isMap := settings[key].(map[string]interface{})
		if st := structType(fieldType); st != nil && isMap {
			warnings = append(warnings, unknownIn(nested, st, join(section, key))...)
		}
	}

	return warnings
}

// knownKeys returns the dotted path of every leaf setting in Config.
func knownKeys() []string {
	return leafKeys(reflect.TypeOf(Config{}), "")
}

func leafKeys(t reflect.Type, section string) []string {
	fields := getFields(t)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var keys []string
	for _, name := range names {
		if st := structType(fields[name]); st != nil {
			keys = append(keys, leafKeys(st, join(section, name))...)
		} else {
			keys = append(keys, join(section, name))
		}
	}
	return keys
}

// getFields returns the known setting names of a struct type and their types.
func getFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		// Extract field name from tag (before comma)
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = field.Type
		}
	}
	return fields
}

// structType returns the struct behind t, or nil for scalar settings.
func structType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		return t
	}
	return nil
}

func join(section, key string) string {
	if section == "" {
		return key
	}
	return section + "." + key
}
