package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Port     int            `yaml:"port"`
	DataDir  string         `yaml:"data_dir,omitempty"`
	Logging  LoggingConfig  `yaml:"logging"`
	Quota    QuotaConfig    `yaml:"quota"`
	Provider ProviderConfig `yaml:"provider,omitempty"`
	Telegram TelegramConfig `yaml:"telegram,omitempty"`
	MCP      MCPConfig      `yaml:"mcp,omitempty"`
	Auth     AuthConfig     `yaml:"auth,omitempty"`
	Export   ExportConfig   `yaml:"export,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type QuotaConfig struct {
	// DailySlideLimit is the per-owner slide budget per calendar day.
	DailySlideLimit int `yaml:"daily_slide_limit"`
	// RetentionDays controls how long usage rows are kept before the janitor prunes them.
	RetentionDays int `yaml:"retention_days"`
}

type ProviderConfig struct {
	// Type selects the provider client: "openai" (any OpenAI-compatible API) or "anthropic".
	Type    string `yaml:"type,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

type TelegramConfig struct {
	Token string `yaml:"token,omitempty"`
}

type MCPConfig struct {
	// Owner is the owner ID charged for MCP tool calls.
	Owner string `yaml:"owner,omitempty"`
}

type AuthConfig struct {
	// Tokens maps bearer tokens to owner IDs for the static verifier.
	Tokens map[string]string `yaml:"tokens,omitempty"`
}

type ExportConfig struct {
	// BrowserBin overrides the Chromium binary used for PDF export.
	BrowserBin string `yaml:"browser_bin,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Port: 2000,
		Logging: LoggingConfig{
			Level: "info",
		},
		Quota: QuotaConfig{
			DailySlideLimit: 20,
			RetentionDays:   90,
		},
		Provider: ProviderConfig{
			Type:    "openai",
			BaseURL: "https://api.mistral.ai/v1",
		},
	}
}

func DataDir() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".sunum2")
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".sunum2.yaml")
}

func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads a config file from an explicit path, falling back to
// defaults when the file does not exist.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = os.Getenv("SUNUM2_API_KEY")
	}

	return cfg, nil
}

func (c *Config) Save() error {
	if err := os.MkdirAll(DataDir(), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}
