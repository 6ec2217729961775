package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"googleOAuth": map[string]any{
			"clientId": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "GOOGLEOAUTH_CLIENTID", want: "googleOAuth.clientId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "token", cfg.Session.CookieName)
	assert.Equal(t, "lax", cfg.Session.SameSite)
	assert.Equal(t, "/auth/callback", cfg.Frontend.CallbackPath)
	assert.Equal(t, 4, cfg.Posts.DefaultPageSize)
	assert.Equal(t, 50, cfg.Posts.MaxPageSize)
}

func TestConfig_SecureCookies(t *testing.T) {
	cfg := &Config{}
	cfg.Env.Env = "dev"
	assert.False(t, cfg.SecureCookies())

	cfg.Env.Env = "prod"
	assert.True(t, cfg.SecureCookies())

	off := false
	cfg.Session = &SessionConfig{Secure: &off}
	assert.False(t, cfg.SecureCookies())
}

func TestConfig_FrontendCallbackURL(t *testing.T) {
	cfg := &Config{Frontend: &FrontendConfig{BaseURL: "https://blog.example.com/", CallbackPath: "/auth/callback"}}
	assert.Equal(t, "https://blog.example.com/auth/callback", cfg.FrontendCallbackURL())
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlBody := []byte("secretKey:\n  access: from-yaml\nauth:\n  tokenTTL: 30m\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blogtest.yaml"), yamlBody, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	t.Setenv("SECRETKEY_ACCESS", "from-env")

	cfg, err := LoadWithEnv[Config]("blogtest", rel)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	_, err := LoadWithEnv[Config]("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
