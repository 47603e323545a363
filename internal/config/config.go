package config

import (
	"fmt"
	"os"

	env "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level finsight.yaml configuration.
type Config struct {
	Assistant AssistantConfig `yaml:"assistant"`
	Anomaly   AnomalyConfig   `yaml:"anomaly"`
	Forecast  ForecastConfig  `yaml:"forecast"`
	NLU       NLUConfig       `yaml:"nlu"`
}

// AssistantConfig identifies the assistant instance.
type AssistantConfig struct {
	Name string `yaml:"name"`
}

// AnomalyConfig controls anomaly flagging and severity thresholds.
type AnomalyConfig struct {
	ThresholdMultiplier float64 `yaml:"threshold_multiplier"`
	MediumRatio         float64 `yaml:"medium_ratio"`
	HighRatio           float64 `yaml:"high_ratio"`
}

// ForecastConfig controls trend projection.
type ForecastConfig struct {
	DefaultHorizonDays int `yaml:"default_horizon_days"`
}

// NLUConfig controls the optional external NLU escalation.
type NLUConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Env holds environment-sourced settings, mainly secrets that do not
// belong in finsight.yaml.
type Env struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	LogLevel     string `env:"FINSIGHT_LOG_LEVEL" envDefault:"info"`
}

// Load reads a finsight.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LoadEnv parses environment-sourced settings.
func LoadEnv() (*Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &e, nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(name string) *Config {
	return &Config{
		Assistant: AssistantConfig{
			Name: name,
		},
		Anomaly: AnomalyConfig{
			ThresholdMultiplier: 2.0,
			MediumRatio:         2.0,
			HighRatio:           3.0,
		},
		Forecast: ForecastConfig{
			DefaultHorizonDays: 30,
		},
		NLU: NLUConfig{
			Enabled:        false,
			Model:          "gemini-2.0-flash",
			TimeoutSeconds: 15,
		},
	}
}
