// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package storage

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaID is the $id stamped on the generated session document schema.
const SchemaID = "https://streamside.dev/schemas/session.schema.json"

// GenerateSchema generates a JSON Schema from the Document struct.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Document{})

	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "Streamside Session Document"
	schema.Description = "Schema for persisted session.json files"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code("STORAGE_SCHEMA").Wrapf(err, "marshaling schema")
	}
	return data, nil
}

var compiledSchema = sync.OnceValues(func() (*jschema.Schema, error) {
	schemaBytes, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	var schemaData any
	if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, oops.Code("STORAGE_SCHEMA").Wrapf(err, "parsing schema JSON")
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, oops.Code("STORAGE_SCHEMA").Wrapf(err, "adding schema resource")
	}
	sch, err := c.Compile("schema.json")
	if err != nil {
		return nil, oops.Code("STORAGE_SCHEMA").Wrapf(err, "compiling schema")
	}
	return sch, nil
})

// ValidateDocument validates raw session file bytes against the
// document schema.
func ValidateDocument(data []byte) error {
	if len(data) == 0 {
		return oops.Code("STORAGE_CORRUPT").Errorf("session document is empty")
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return oops.Code("STORAGE_CORRUPT").Wrapf(err, "invalid JSON")
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return oops.Code("STORAGE_CORRUPT").Wrapf(err, "schema validation failed")
	}
	return nil
}
