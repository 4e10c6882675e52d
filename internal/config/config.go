package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultLiveBaseURL = "https://mermaid.live"
	DefaultInkBaseURL  = "https://mermaid.ink"
	DefaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

type Config struct {
	Mermaid MermaidConfig `mapstructure:"mermaid"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Output  OutputConfig  `mapstructure:"output"`
	Tools   ToolsConfig   `mapstructure:"tools"`
	Log     LogConfig     `mapstructure:"log"`
}

type MermaidConfig struct {
	LiveBaseURL string `mapstructure:"live_base_url"`
	InkBaseURL  string `mapstructure:"ink_base_url"`
}

type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type OutputConfig struct {
	DefaultDir string `mapstructure:"default_dir"`
}

type ToolsConfig struct {
	// Raw toggle values; see Enabled.
	CreateMermaidDiagram string `mapstructure:"create_mermaid_diagram"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envBindings keeps the historical variable names working alongside the
// MERMAID_ prefixed keys viper derives automatically.
var envBindings = map[string]string{
	"mermaid.live_base_url":        "MERMAID_LIVE_BASE_URL",
	"mermaid.ink_base_url":         "MERMAID_INK_BASE_URL",
	"output.default_dir":           "MERMAID_DEFAULT_OUTPUT_DIR",
	"tools.create_mermaid_diagram": "MERMAID_ENABLE_CREATE_MERMAID_DIAGRAM",
	"fetch.timeout":                "MERMAID_FETCH_TIMEOUT",
	"fetch.user_agent":             "MERMAID_USER_AGENT",
	"log.level":                    "MERMAID_LOG_LEVEL",
	"log.format":                   "MERMAID_LOG_FORMAT",
}

// Load resolves configuration once at startup. configPath is optional; when set
// the YAML file is read first and environment variables override it.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("mermaid.live_base_url", DefaultLiveBaseURL)
	v.SetDefault("mermaid.ink_base_url", DefaultInkBaseURL)
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("output.default_dir", "")
	v.SetDefault("tools.create_mermaid_diagram", "true")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.Mermaid.LiveBaseURL = baseOrDefault(cfg.Mermaid.LiveBaseURL, DefaultLiveBaseURL)
	cfg.Mermaid.InkBaseURL = baseOrDefault(cfg.Mermaid.InkBaseURL, DefaultInkBaseURL)
	if cfg.Fetch.Timeout <= 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}

	return cfg, nil
}

// Enabled reports whether a tool toggle is on. Unset means enabled; otherwise
// only "true" (any case) and "1" enable the tool.
func (t ToolsConfig) Enabled() bool {
	value := strings.TrimSpace(t.CreateMermaidDiagram)
	if value == "" {
		return true
	}
	return strings.EqualFold(value, "true") || value == "1"
}

func baseOrDefault(base, def string) string {
	base = strings.TrimSuffix(strings.TrimSpace(base), "/")
	if base == "" {
		return def
	}
	return base
}
