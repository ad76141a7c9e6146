package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/core/allocator"
)

// Config represents the distribution configuration.
type Config struct {
	// ReservedPool is the number of drop-in seats withheld per floor per
	// day. Defaults to 2 when omitted.
	ReservedPool *int `yaml:"reservedPool,omitempty" validate:"omitempty,min=0"`

	// IgnoreRules disables scheduling rules entirely; only the
	// headcount-proportional distribution with structural minimums runs.
	IgnoreRules bool `yaml:"ignoreRules,omitempty"`

	// DayChoiceStrategy resolves "pick one day" rules: slack, balance or
	// random. Defaults to slack.
	DayChoiceStrategy string `yaml:"dayChoiceStrategy,omitempty" validate:"omitempty,oneof=slack balance random"`

	// TrimPolicy selects which full-day team absorbs capacity cuts first:
	// largest (default) or smallest.
	TrimPolicy string `yaml:"trimPolicy,omitempty" validate:"omitempty,oneof=largest smallest"`

	// StructuralMinimum raises explicit minimums to at least 2 for teams of
	// 2 or more, matching the historical behaviour.
	StructuralMinimum bool `yaml:"structuralMinimum,omitempty"`

	// ShuffleTeams randomizes team processing order per variant.
	ShuffleTeams bool `yaml:"shuffleTeams,omitempty"`

	// VariantCount is how many seeded variants to score. Defaults to 12.
	VariantCount int `yaml:"variantCount,omitempty" validate:"omitempty,min=1"`

	// Seed is the base seed; variant i runs with Seed + i×SeedStep.
	Seed int64 `yaml:"seed,omitempty"`

	// SeedStep separates consecutive variant seeds. Defaults to 1.
	SeedStep int64 `yaml:"seedStep,omitempty"`

	// DeficitWeight and TrimWeight override the score penalties.
	DeficitWeight *float64 `yaml:"deficitWeight,omitempty" validate:"omitempty,min=0"`
	TrimWeight    *float64 `yaml:"trimWeight,omitempty" validate:"omitempty,min=0"`
}

const configFileName = "puestos_config.yaml"

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{}
}

// Load loads and validates the configuration from puestos_config.yaml,
// looking in the current directory first, then in the user's home directory.
// A missing file is not an error: defaults apply.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return Default(), nil
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// EngineOptions converts the configuration into engine options, applying
// defaults for omitted fields.
func (c *Config) EngineOptions() allocator.Options {
	opts := allocator.DefaultOptions()

	if c.ReservedPool != nil {
		opts.ReservedPool = *c.ReservedPool
	}
	opts.IgnoreRules = c.IgnoreRules
	opts.StructuralMinimum = c.StructuralMinimum
	opts.ShuffleTeams = c.ShuffleTeams
	if c.DayChoiceStrategy != "" {
		opts.Strategy = allocator.Strategy(c.DayChoiceStrategy)
	}
	if c.TrimPolicy != "" {
		opts.TrimPolicy = allocator.TrimPolicy(c.TrimPolicy)
	}
	if c.DeficitWeight != nil {
		opts.DeficitWeight = *c.DeficitWeight
	}
	if c.TrimWeight != nil {
		opts.TrimWeight = *c.TrimWeight
	}

	return opts
}

// OptimizerConfig converts the configuration into the variant search
// settings, applying defaults for omitted fields.
func (c *Config) OptimizerConfig() allocator.OptimizerConfig {
	cfg := allocator.OptimizerConfig{
		Variants: c.VariantCount,
		BaseSeed: c.Seed,
		SeedStep: c.SeedStep,
	}
	if cfg.Variants == 0 {
		cfg.Variants = allocator.DefaultVariantCount
	}
	if cfg.SeedStep == 0 {
		cfg.SeedStep = allocator.DefaultSeedStep
	}
	return cfg
}

// findConfigFile searches for puestos_config.yaml in the current directory
// and the home directory.
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
