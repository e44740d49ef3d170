package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all apexcov configuration
type Config struct {
	Scanner  ScannerConfig  `mapstructure:"scanner"`
	Coverage CoverageConfig `mapstructure:"coverage"`
	API      APIConfig      `mapstructure:"api"`
	GitHub   GitHubConfig   `mapstructure:"github"`
}

// ScannerConfig controls how the source tree is scanned
type ScannerConfig struct {
	// Extension is the implementation artifact extension
	Extension string `mapstructure:"extension"`

	// TestSuffix is the reserved suffix marking test classes
	TestSuffix string `mapstructure:"test_suffix"`

	// IgnoreFile is the gitignore-syntax file honored at the scan root
	IgnoreFile string `mapstructure:"ignore_file"`
}

// CoverageConfig controls pass/fail policy
type CoverageConfig struct {
	// Threshold is the minimum passing coverage percentage
	Threshold int `mapstructure:"threshold"`
}

// APIConfig configures the AI completion service
type APIConfig struct {
	OpenAIKey   string        `mapstructure:"openai_key"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// GitHubConfig configures the reporting collaborator
type GitHubConfig struct {
	Token string `mapstructure:"token"`
}

// Default returns the default configuration. The 75% threshold mirrors the
// Salesforce deployment requirement; everything here can be overridden per
// project.
func Default() *Config {
	return &Config{
		Scanner: ScannerConfig{
			Extension:  ".cls",
			TestSuffix: "Test",
			IgnoreFile: ".forceignore",
		},
		Coverage: CoverageConfig{
			Threshold: 75,
		},
		API: APIConfig{
			Model:       "gpt-4o-mini",
			MaxTokens:   4096,
			Temperature: 0.2,
			Timeout:     120 * time.Second,
		},
	}
}

// Load loads configuration from file, environment, and defaults.
// An empty path searches .apexcov/config.yaml in the working directory and
// the home directory; a missing config file is not an error.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("scanner", cfg.Scanner)
	v.SetDefault("coverage", cfg.Coverage)
	v.SetDefault("api", cfg.API)
	v.SetDefault("github", cfg.GitHub)

	v.SetEnvPrefix("APEXCOV")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".apexcov")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".apexcov"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".apexcov", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies well-known environment variables on top of the
// loaded configuration
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.API.OpenAIKey = key
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" && cfg.GitHub.Token == "" {
		cfg.GitHub.Token = token
	}
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.Scanner.Extension == "" {
		return fmt.Errorf("scanner.extension must not be empty")
	}
	if c.Scanner.TestSuffix == "" {
		return fmt.Errorf("scanner.test_suffix must not be empty")
	}
	if c.Coverage.Threshold < 0 || c.Coverage.Threshold > 100 {
		return fmt.Errorf("coverage.threshold must be between 0 and 100, got %d", c.Coverage.Threshold)
	}
	return nil
}
