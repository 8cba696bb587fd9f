package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"
)

//go:embed schema.json
var schemaJSON string

var configSchema = jsonschema.MustCompileString("diffhtml-config.schema.json", schemaJSON)

// Validate checks a decoded config document against the config schema.
func Validate(doc map[string]any) error {
	// Normalize through JSON so numbers and nested maps have the shapes the
	// validator expects.
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	if err := configSchema.Validate(v); err != nil {
		return fmt.Errorf("config failed schema validation: %w", err)
	}
	return nil
}

// ValidateFile reads one config file on its own and validates it.
func ValidateFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := Validate(v.AllSettings()); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}
