package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the configuration for jitcheck
type Config struct {
	Version string `yaml:"version" json:"version"`

	// Heuristic thresholds
	Thresholds ThresholdsConfig `yaml:"thresholds" json:"thresholds"`

	// Reason score/explanation overrides
	Scores ScoresConfig `yaml:"scores" json:"scores"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Watch mode settings
	Watch WatchConfig `yaml:"watch" json:"watch"`
}

type ThresholdsConfig struct {
	// Minimum observed executions before a branch is worth reporting
	MinBranchCount int64 `yaml:"min_branch_count" json:"min_branch_count"`

	// Minimum invocation count before an inlining failure is worth reporting
	MinInliningInvocations int `yaml:"min_inlining_invocations" json:"min_inlining_invocations"`

	// A branch counts as unpredictable when its taken-probability lies
	// strictly inside (low, high)
	BranchProbabilityLow  float64 `yaml:"branch_probability_low" json:"branch_probability_low"`
	BranchProbabilityHigh float64 `yaml:"branch_probability_high" json:"branch_probability_high"`
}

type ScoresConfig struct {
	// Additional or replacement weights per inlining-failure reason, 0.0-1.0.
	// Reasons absent from both the built-in table and this map score zero.
	Overrides map[string]float64 `yaml:"overrides,omitempty" json:"overrides,omitempty"`

	// Additional or replacement explanation text per reason
	Explanations map[string]string `yaml:"explanations,omitempty" json:"explanations,omitempty"`
}

type OutputConfig struct {
	// Output format (console, json)
	Format string `yaml:"format" json:"format"`

	// Colorized console output
	Colors bool `yaml:"colors" json:"colors"`

	// Verbosity level
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Show the full suggestion text, not just the one-line summary
	ShowDetails bool `yaml:"show_details" json:"show_details"`

	// Limit the report to the N highest scoring suggestions; 0 means all
	Top int `yaml:"top" json:"top"`

	// Output file path (optional)
	OutputFile string `yaml:"output_file,omitempty" json:"output_file,omitempty"`
}

type WatchConfig struct {
	// Delay before re-analyzing a log that is still being appended to
	DebounceMillis int `yaml:"debounce_millis" json:"debounce_millis"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Thresholds: ThresholdsConfig{
			MinBranchCount:         1000,
			MinInliningInvocations: 1000,
			BranchProbabilityLow:   0.45,
			BranchProbabilityHigh:  0.55,
		},
		Scores: ScoresConfig{},
		Output: OutputConfig{
			Format:      "console",
			Colors:      true,
			Verbose:     false,
			ShowDetails: true,
			Top:         0,
		},
		Watch: WatchConfig{
			DebounceMillis: 500,
		},
	}
}

// LoadConfig loads configuration from file or returns default
func LoadConfig(configPath string) (*Config, error) {
	// If no config path provided, look for default config files
	if configPath == "" {
		configPath = findConfigFile()
	}

	// If still no config found, return default
	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := DefaultConfig() // Start with defaults

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	possiblePaths := []string{
		".jitcheck.yml",
		".jitcheck.yaml",
		"jitcheck.yml",
		"jitcheck.yaml",
		".config/jitcheck.yml",
		".config/jitcheck.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	t := c.Thresholds
	if t.MinBranchCount < 0 {
		return fmt.Errorf("min_branch_count must not be negative")
	}
	if t.MinInliningInvocations < 0 {
		return fmt.Errorf("min_inlining_invocations must not be negative")
	}
	if t.BranchProbabilityLow >= t.BranchProbabilityHigh {
		return fmt.Errorf("branch probability window must satisfy low < high, got %.2f >= %.2f",
			t.BranchProbabilityLow, t.BranchProbabilityHigh)
	}
	if t.BranchProbabilityLow < 0 || t.BranchProbabilityHigh > 1 {
		return fmt.Errorf("branch probability window must lie within [0, 1]")
	}

	for reason, weight := range c.Scores.Overrides {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("score override for %q must lie within [0, 1], got %v", reason, weight)
		}
	}

	validFormats := []string{"console", "json"}
	formatValid := false
	for _, format := range validFormats {
		if c.Output.Format == format {
			formatValid = true
			break
		}
	}
	if !formatValid {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, validFormats)
	}

	if c.Output.Top < 0 {
		return fmt.Errorf("top must not be negative")
	}

	if c.Watch.DebounceMillis < 0 {
		return fmt.Errorf("debounce_millis must not be negative")
	}

	return nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateConfig creates a sample configuration file
func GenerateConfig(configPath string) error {
	config := DefaultConfig()
	return config.SaveConfig(configPath)
}
