// Package config loads the agent configuration from an optional YAML
// file, with environment variables taking precedence for secrets.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// LLM selects the primary resolver's model provider. An empty
	// Adapter disables the primary resolver entirely; resolution then
	// relies on the fallback rules alone.
	LLM LLMConfig

	AnthropicAPIKey string
	OpenAIAPIKey    string
	GoogleAPIKey    string

	// DatabasePath is the SQLite file holding the dataset.
	DatabasePath string

	// VisualizationDir is where chart artifacts are written.
	VisualizationDir string

	// Server configures the HTTP frontend.
	Server ServerConfig
}

// LLMConfig selects the model used for question translation.
type LLMConfig struct {
	Adapter  string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr      string
	StaticDir string
}

// FileConfig represents the structure of askcart.yaml.
type FileConfig struct {
	LLM struct {
		Adapter        string `yaml:"adapter"`
		Model          string `yaml:"model"`
		Endpoint       string `yaml:"endpoint"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"llm"`
	APIKeys struct {
		Anthropic string `yaml:"anthropic"`
		OpenAI    string `yaml:"openai"`
		Google    string `yaml:"google"`
	} `yaml:"api_keys"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Visualizations struct {
		Dir string `yaml:"dir"`
	} `yaml:"visualizations"`
	Server struct {
		Addr      string `yaml:"addr"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"server"`
}

// Default returns the configuration used when no file is present: a
// local Ollama mistral model, a local database file, and the Flask-era
// defaults for paths and port.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Adapter: "ollama",
			Model:   "mistral",
			Timeout: 30 * time.Second,
		},
		DatabasePath:     "ecommerce_data.db",
		VisualizationDir: "visualizations",
		Server: ServerConfig{
			Addr:      ":5000",
			StaticDir: "static",
		},
	}
}

// Load reads configuration from the given file path, falling back to
// defaults when path is empty or the file does not exist. Environment
// variables take precedence over file values for API keys.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			var fc FileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			applyFileConfig(cfg, &fc)
		}
	}

	cfg.AnthropicAPIKey = getEnvOrDefault("ANTHROPIC_API_KEY", cfg.AnthropicAPIKey)
	cfg.OpenAIAPIKey = getEnvOrDefault("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.GoogleAPIKey = getEnvOrDefault("GOOGLE_API_KEY", cfg.GoogleAPIKey)

	return cfg, nil
}

func applyFileConfig(cfg *Config, fc *FileConfig) {
	if fc.LLM.Adapter != "" {
		cfg.LLM.Adapter = fc.LLM.Adapter
	}
	if fc.LLM.Model != "" {
		cfg.LLM.Model = fc.LLM.Model
	}
	if fc.LLM.Endpoint != "" {
		cfg.LLM.Endpoint = fc.LLM.Endpoint
	}
	if fc.LLM.TimeoutSeconds > 0 {
		cfg.LLM.Timeout = time.Duration(fc.LLM.TimeoutSeconds) * time.Second
	}
	cfg.AnthropicAPIKey = fc.APIKeys.Anthropic
	cfg.OpenAIAPIKey = fc.APIKeys.OpenAI
	cfg.GoogleAPIKey = fc.APIKeys.Google
	if fc.Database.Path != "" {
		cfg.DatabasePath = fc.Database.Path
	}
	if fc.Visualizations.Dir != "" {
		cfg.VisualizationDir = fc.Visualizations.Dir
	}
	if fc.Server.Addr != "" {
		cfg.Server.Addr = fc.Server.Addr
	}
	if fc.Server.StaticDir != "" {
		cfg.Server.StaticDir = fc.Server.StaticDir
	}
}

// getEnvOrDefault returns the environment variable value if set,
// otherwise returns the default value.
func getEnvOrDefault(envVar, defaultValue string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultValue
}
