package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup away from the developer's real environment
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"USE_REAL_API", "SKYSCANNER_MODE", "RAPIDAPI_KEY", "RAPIDAPI_HOST",
		"SKYSCANNER_BASE_URL", "SKYSCANNER_TIMEOUT", "SKYSCANNER_OUTPUT_DIR",
		"SKYSCANNER_DEEPLINK_FORMAT", "DEBUG_API", "SKYSCANNER_PROVIDERS",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SKYSCANNER_CONFIG", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg := Load()
	assert.Equal(t, ModeMock, cfg.Mode)
	assert.Equal(t, DefaultHost, cfg.API.Host)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, "EUR", cfg.API.Currency)
	assert.Equal(t, "simple", cfg.Deeplink.Format)
	assert.Equal(t, "results", cfg.Output.Dir)
	assert.False(t, cfg.ProviderHasCredentials("skyscrapper"))
	assert.True(t, cfg.ProviderHasCredentials("mock_skyscrapper"))
}

func TestLoadYAMLThenEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode: hybrid
api:
  key: from-file
  currency: USD
  timeout: 5s
deeplink:
  format: config
  routes:
    - name: paris-tokyo
      from: [CDG, ORY]
      to: [HND]
      tld: jp
output:
  pageSize: 25
`), 0o600))
	t.Setenv("SKYSCANNER_CONFIG", path)
	t.Setenv("SKYSCANNER_OUTPUT_DIR", "/tmp/out")
	t.Setenv("SKYSCANNER_BASE_URL", "http://localhost:9999/")

	cfg := Load()
	assert.Equal(t, ModeHybrid, cfg.Mode)
	assert.Equal(t, "USD", cfg.API.Currency)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "config", cfg.Deeplink.Format)
	assert.Equal(t, []RouteConfig{{Name: "paris-tokyo", From: []string{"CDG", "ORY"}, To: []string{"HND"}, TLD: "jp"}}, cfg.Deeplink.Routes)
	assert.Equal(t, 25, cfg.Output.PageSize)
	assert.Equal(t, "/tmp/out", cfg.Output.Dir)
	assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
	assert.Equal(t, DefaultHost, cfg.API.Host, "keys absent from the file keep defaults")
	assert.True(t, cfg.ProviderHasCredentials("skyscrapper"), "file key satisfies RAPIDAPI_KEY")
}

func TestEnvMode(t *testing.T) {
	isolate(t)

	t.Setenv("USE_REAL_API", "true")
	assert.Equal(t, ModeLive, Load().Mode)

	t.Setenv("SKYSCANNER_MODE", "HYBRID")
	assert.Equal(t, ModeHybrid, Load().Mode, "explicit mode wins over USE_REAL_API")
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("RAPIDAPI_KEY", "k")
	t.Setenv("RAPIDAPI_HOST", "other.p.rapidapi.com")
	t.Setenv("SKYSCANNER_TIMEOUT", "45s")
	t.Setenv("SKYSCANNER_DEEPLINK_FORMAT", "CONFIG")
	t.Setenv("DEBUG_API", "true")
	t.Setenv("SKYSCANNER_PROVIDERS", "extra, skyscrapper")

	cfg := Load()
	assert.Equal(t, "k", cfg.API.Key)
	assert.Equal(t, "other.p.rapidapi.com", cfg.API.Host)
	assert.Equal(t, 45*time.Second, cfg.API.Timeout)
	assert.Equal(t, "config", cfg.Deeplink.Format)
	assert.True(t, cfg.Debug)
	assert.Contains(t, cfg.Providers, "extra")
	assert.Equal(t, 10, cfg.Providers["skyscrapper"].Priority, "known providers keep their settings")
}

func TestInvalidTimeoutIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("SKYSCANNER_TIMEOUT", "soon")
	assert.Equal(t, DefaultTimeout, Load().API.Timeout)
}

func TestWithMode(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ModeLive, cfg.WithMode("Live").Mode)
	assert.Equal(t, ModeLive, cfg.WithMode("").Mode)
	assert.Equal(t, ModeLive, cfg.WithMode("bogus").Mode)
	assert.Equal(t, ModeMock, cfg.WithMode("mock").Mode)

	assert.False(t, cfg.WithDebug(false).Debug)
	assert.True(t, cfg.WithDebug(true).Debug)
}

func TestMissingCredentials(t *testing.T) {
	isolate(t)
	cfg := DefaultConfig()

	assert.Equal(t, []string{"api key (RAPIDAPI_KEY)"}, cfg.MissingCredentials("skyscrapper"))
	assert.Empty(t, cfg.MissingCredentials("mock_skyscrapper"))
	assert.Nil(t, cfg.MissingCredentials("nope"))

	t.Setenv("RAPIDAPI_KEY", "k")
	assert.Empty(t, cfg.MissingCredentials("skyscrapper"))
	assert.True(t, cfg.ProviderHasCredentials("skyscrapper"))

	cfg.Providers["skyscrapper"] = ProviderConfig{Enabled: false, EnvKeys: map[string]string{"api key": "RAPIDAPI_KEY"}}
	assert.False(t, cfg.ProviderHasCredentials("skyscrapper"), "disabled providers never count as configured")
}
