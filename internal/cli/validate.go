package cli

import (
	"fmt"
	"os"

	"github.com/redtime-cli/redtime/internal/config"
)

// Validate validates a redtime configuration file
func Validate(configPath string) error {
	// If no path provided, use the default config location
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	fmt.Printf("Validating: %s\n\n", configPath)

	// Read file content for schema validation
	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// First validate with JSON Schema
	result, err := config.ValidateWithSchema(configPath, content)
	if err != nil {
		return err
	}

	// If schema validation passes, run the cross-field checks the schema
	// cannot express (api_key XOR username/password)
	if result.Valid {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, config.ValidationError{
				Field:   "(root)",
				Message: err.Error(),
			})
		}
	}

	if result.Valid {
		fmt.Println("✅ Configuration is valid!")
		return nil
	}

	// Display errors
	fmt.Println("❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
