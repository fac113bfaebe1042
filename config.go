// Package descent holds the project-level configuration shared by the descent
// command and its grammars.
package descent

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shibukawa/descent/dump"
	"github.com/shibukawa/descent/engine"
	"github.com/shibukawa/descent/grammars"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = "descent.yaml"

// Config represents the descent configuration file
type Config struct {
	Grammar     string       `yaml:"grammar"`
	MaxDepth    int          `yaml:"max_depth"`
	Output      OutputConfig `yaml:"output"`
	FixturesDir string       `yaml:"fixtures_dir"`
}

// OutputConfig controls how parse results are printed
type OutputConfig struct {
	Format string `yaml:"format"`
	Indent int    `yaml:"indent"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses configuration YAML. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&config)
	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration after defaults are applied
func validateConfig(config *Config) error {
	if _, err := grammars.Lookup(config.Grammar); err != nil {
		return fmt.Errorf("%w: grammar: %w", ErrConfigValidation, err)
	}

	if config.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must be non-negative, got %d", ErrConfigValidation, config.MaxDepth)
	}

	if _, err := dump.ParseFormat(config.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %w", ErrConfigValidation, err)
	}

	// 0 is replaced by the default before validation
	if config.Output.Indent < 1 || config.Output.Indent > 8 {
		return fmt.Errorf("%w: output.indent must be between 1 and 8, got %d", ErrConfigValidation, config.Output.Indent)
	}

	return nil
}

func getDefaultConfig() *Config {
	return &Config{
		Grammar:  "sexpr",
		MaxDepth: 0,
		Output: OutputConfig{
			Format: string(dump.FormatYAML),
			Indent: 2,
		},
		FixturesDir: "./testdata",
	}
}

func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Grammar == "" {
		config.Grammar = defaults.Grammar
	}

	if config.Output.Format == "" {
		config.Output.Format = defaults.Output.Format
	}

	if config.Output.Indent == 0 {
		config.Output.Indent = defaults.Output.Indent
	}

	if config.FixturesDir == "" {
		config.FixturesDir = defaults.FixturesDir
	}
}

// EngineOptions returns the parser options implied by the configuration.
func (c *Config) EngineOptions() []engine.Option {
	if c.MaxDepth == 0 {
		return nil
	}

	return []engine.Option{engine.WithMaxDepth(c.MaxDepth)}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.Grammar = expandEnvVars(config.Grammar)
	config.Output.Format = expandEnvVars(config.Output.Format)
	config.FixturesDir = expandEnvVars(config.FixturesDir)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
