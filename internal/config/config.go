package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeMock   Mode = "mock"
	ModeLive   Mode = "live"
	ModeHybrid Mode = "hybrid"
)

type ProviderConfig struct {
	Enabled  bool              `yaml:"enabled"`
	Priority int               `yaml:"priority"`
	EnvKeys  map[string]string `yaml:"envKeys,omitempty"`
}

type APIConfig struct {
	Key         string        `yaml:"key,omitempty"`
	Host        string        `yaml:"host"`
	BaseURL     string        `yaml:"baseURL"`
	Timeout     time.Duration `yaml:"timeout"`
	Currency    string        `yaml:"currency"`
	Locale      string        `yaml:"locale"`
	Market      string        `yaml:"market"`
	CountryCode string        `yaml:"countryCode"`
}

type DeeplinkConfig struct {
	// Format selects the fallback URL scheme: "simple" or "config"
	Format string `yaml:"format"`
	TLD    string `yaml:"tld"`
	// Routes send matching itineraries to another country site, ahead of the built-in rules
	Routes []RouteConfig `yaml:"routes"`
}

type RouteConfig struct {
	Name string   `yaml:"name"`
	From []string `yaml:"from"`
	To   []string `yaml:"to"`
	TLD  string   `yaml:"tld"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir"`
	PageSize int    `yaml:"pageSize"`
}

type Config struct {
	Mode      Mode                      `yaml:"mode"`
	Debug     bool                      `yaml:"debug"`
	API       APIConfig                 `yaml:"api"`
	Deeplink  DeeplinkConfig            `yaml:"deeplink"`
	Output    OutputConfig              `yaml:"output"`
	Providers map[string]ProviderConfig `yaml:"providers"`
}

const (
	DefaultHost    = "sky-scrapper.p.rapidapi.com"
	DefaultBaseURL = "https://sky-scrapper.p.rapidapi.com"
	DefaultTimeout = 30 * time.Second
)

func DefaultConfig() *Config {
	return &Config{
		Mode: ModeMock,
		API: APIConfig{
			Host:        DefaultHost,
			BaseURL:     DefaultBaseURL,
			Timeout:     DefaultTimeout,
			Currency:    "EUR",
			Locale:      "fr-FR",
			Market:      "fr-FR",
			CountryCode: "FR",
		},
		Deeplink: DeeplinkConfig{Format: "simple", TLD: "fr"},
		Output:   OutputConfig{Dir: "results", PageSize: 10},
		Providers: map[string]ProviderConfig{
			"mock_skyscrapper": {Enabled: true, Priority: 100},
			"skyscrapper": {
				Enabled:  true,
				Priority: 10,
				EnvKeys:  map[string]string{"api key": "RAPIDAPI_KEY"},
			},
		},
	}
}

func Load() *Config {
	cfg := DefaultConfig()

	if path := configPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if os.Getenv("USE_REAL_API") == "true" {
		c.Mode = ModeLive
	}
	if envMode := os.Getenv("SKYSCANNER_MODE"); envMode != "" {
		c.WithMode(envMode)
	}
	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv("RAPIDAPI_HOST"); v != "" {
		c.API.Host = v
	}
	if v := os.Getenv("SKYSCANNER_BASE_URL"); v != "" {
		c.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SKYSCANNER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.API.Timeout = d
		}
	}
	if v := os.Getenv("SKYSCANNER_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("SKYSCANNER_DEEPLINK_FORMAT"); v != "" {
		c.Deeplink.Format = strings.ToLower(v)
	}
	if os.Getenv("DEBUG_API") == "true" {
		c.Debug = true
	}

	if envProviders := os.Getenv("SKYSCANNER_PROVIDERS"); envProviders != "" {
		names := strings.Split(envProviders, ",")
		for _, n := range names {
			n = strings.TrimSpace(n)
			if _, ok := c.Providers[n]; !ok {
				c.Providers[n] = ProviderConfig{Enabled: true, Priority: 50}
			}
		}
	}
}

func (c *Config) WithMode(mode string) *Config {
	if mode == "" {
		return c
	}
	switch strings.ToLower(mode) {
	case "mock":
		c.Mode = ModeMock
	case "live":
		c.Mode = ModeLive
	case "hybrid":
		c.Mode = ModeHybrid
	}
	return c
}

// WithDebug forces debug logging on when set
func (c *Config) WithDebug(debug bool) *Config {
	if debug {
		c.Debug = true
	}
	return c
}

func (c *Config) ProviderHasCredentials(name string) bool {
	pc, ok := c.Providers[name]
	if !ok {
		return false
	}
	if !pc.Enabled {
		return false
	}
	for _, envKey := range pc.EnvKeys {
		if c.credential(envKey) == "" {
			return false
		}
	}
	return true
}

func (c *Config) MissingCredentials(name string) []string {
	pc, ok := c.Providers[name]
	if !ok {
		return nil
	}
	var missing []string
	for label, envKey := range pc.EnvKeys {
		if c.credential(envKey) == "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", label, envKey))
		}
	}
	return missing
}

// credential resolves an env key, falling back to the API key from the config file
func (c *Config) credential(envKey string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if envKey == "RAPIDAPI_KEY" {
		return c.API.Key
	}
	return ""
}

func configPath() string {
	if p := os.Getenv("SKYSCANNER_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".config", "skyscanner-cli", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
