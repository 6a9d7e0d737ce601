package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed plant.schema.json
var plantSchemaSource string

const plantSchemaURL = "plantsim://plant.schema.json"

var (
	plantSchemaOnce sync.Once
	plantSchema     *jsonschema.Schema
	plantSchemaErr  error
)

func compiledPlantSchema() (*jsonschema.Schema, error) {
	plantSchemaOnce.Do(func() {
		plantSchema, plantSchemaErr = jsonschema.CompileString(plantSchemaURL, plantSchemaSource)
	})
	return plantSchema, plantSchemaErr
}

// ValidatePlantDocument checks the raw plant section against the plant schema
// before it is decoded, so unknown keys and misspelt fields are rejected
// instead of silently ignored.
func ValidatePlantDocument(doc interface{}) error {
	schema, err := compiledPlantSchema()
	if err != nil {
		return fmt.Errorf("failed to compile plant schema: %w", err)
	}

	// the validator only understands JSON-decoded values
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("plant section is not serializable: %w", err)
	}
	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("plant section is not serializable: %w", err)
	}

	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("plant section does not match schema: %w", err)
	}
	return nil
}
