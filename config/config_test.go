package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"session": map[string]any{
			"cookieName": "healthMateSession",
			"storePath":  "",
		},
		"api": map[string]any{
			"baseUrl": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "SESSION_COOKIENAME", want: "session.cookieName"},
		{envKey: "SESSION_STOREPATH", want: "session.storePath"},
		{envKey: "API_BASEURL", want: "api.baseUrl"},
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

	assert.Equal(t, defaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "healthMateSession", cfg.Session.CookieName)
	assert.Equal(t, "supabaseSession", cfg.Session.LegacyCookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 2*time.Minute, cfg.OAuth.HandshakeTimeout)
	assert.NotEmpty(t, cfg.Session.StorePath)
}

func TestApplyDefaults_TrimsTrailingSlash(t *testing.T) {
	cfg := &Config{}
	cfg.API.BaseURL = "https://api.example.com/"
	applyDefaults(cfg)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
}

func TestRedirectURLs(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "http://localhost:8888/app/dashboard", cfg.RedirectTo())
	assert.Equal(t, "http://localhost:8888/doctor/dashboard", cfg.DashboardURL("doctor"))
	assert.Equal(t, "http://localhost:8888/login", cfg.LoginURL())

	cfg.Env.Env = "production"
	assert.Equal(t, "app://./app/dashboard", cfg.RedirectTo())
	assert.Equal(t, "app://./patient/dashboard", cfg.DashboardURL("patient"))
	assert.Equal(t, "app://./login", cfg.LoginURL())
}
