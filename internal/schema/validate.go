// Package schema provides JSON schema validation for aspect configuration and
// snapshot files.
package schema

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/aspect/schema"
)

const (
	configSchema    = "config.schema.json"
	snapshotsSchema = "snapshots.schema.json"
)

var compiled = sync.OnceValues(func() (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	names := []string{configSchema, snapshotsSchema}
	for _, name := range names {
		data, err := schemafs.FS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", name, err)
		}
		if err := compiler.AddResource(name, doc); err != nil {
			return nil, fmt.Errorf("add %s: %w", name, err)
		}
	}

	schemas := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		s, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", name, err)
		}
		schemas[name] = s
	}
	return schemas, nil
})

// validate checks a JSON document against the named embedded schema. what
// names the document in the returned error.
func validate(name, what string, data []byte) error {
	schemas, err := compiled()
	if err != nil {
		return err
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schemas[name].Validate(v); err != nil {
		return fmt.Errorf("%s validation failed: %w", what, err)
	}
	return nil
}

// ValidateConfig validates JSON data against the config schema.
func ValidateConfig(data []byte) error {
	return validate(configSchema, "config", data)
}

// ValidateSnapshots validates JSON data against the snapshot file schema.
func ValidateSnapshots(data []byte) error {
	return validate(snapshotsSchema, "snapshot file", data)
}
