package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for redtime configuration.
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidationError is a single schema violation.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult aggregates schema validation output.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidateWithSchema validates a config file's content against the JSON
// Schema. Syntax errors are reported as a result, not a Go error.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	syntaxError := func(format string, err error) *ValidationResult {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Invalid %s syntax: %v", format, err),
		})
		return result
	}

	var data interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			return syntaxError("YAML", err), nil
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			return syntaxError("JSON", err), nil
		}
	case ".toml":
		cfg, err := LoadBytes(content, "toml")
		if err != nil {
			return syntaxError("TOML", err), nil
		}
		data = map[string]interface{}{
			"api_url":  cfg.APIURL,
			"api_key":  cfg.APIKey,
			"username": cfg.Username,
			"password": cfg.Password,
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	if !validation.Valid() {
		result.Valid = false
		for _, desc := range validation.Errors() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
	}

	return result, nil
}
