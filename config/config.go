package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	defaultAPIBaseURL       = "https://healthmate-backend-api-aahn.onrender.com"
	defaultRequestTimeout   = 15 * time.Second
	defaultHandshakeTimeout = 2 * time.Minute
	defaultCookieName       = "healthMateSession"
	defaultLegacyCookieName = "supabaseSession"
	defaultSessionTTL       = 7 * 24 * time.Hour
	defaultBridgePort       = 8765

	envProduction = "production"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// API describes the remote backend every outbound call targets.
	API struct {
		BaseURL        string        `json:"baseUrl" yaml:"baseUrl"`
		RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
	} `json:"api" yaml:"api"`

	// Session controls the local credential slot.
	Session struct {
		CookieName       string        `json:"cookieName" yaml:"cookieName"`
		LegacyCookieName string        `json:"legacyCookieName" yaml:"legacyCookieName"`
		TTL              time.Duration `json:"ttl" yaml:"ttl"`
		StorePath        string        `json:"storePath" yaml:"storePath"`
		// EncryptionSecret, when set, encrypts cookie values at rest.
		EncryptionSecret string `json:"encryptionSecret" yaml:"encryptionSecret"`
	} `json:"session" yaml:"session"`

	OAuth *OAuthConfig `json:"oauth" yaml:"oauth"`

	// Bridge is the local server the renderer process talks to.
	Bridge struct {
		Port int `json:"port" yaml:"port"`
	} `json:"bridge" yaml:"bridge"`
}

// OAuthConfig defines the third-party login handshake settings.
type OAuthConfig struct {
	HandshakeTimeout time.Duration `json:"handshakeTimeout" yaml:"handshakeTimeout"`

	// App origins the user lands on after the handshake. The packaged
	// build serves the renderer from a custom scheme, development from
	// the dev server.
	ProductionOrigin  string `json:"productionOrigin" yaml:"productionOrigin"`
	DevelopmentOrigin string `json:"developmentOrigin" yaml:"developmentOrigin"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// IsProduction reports whether the client runs as a packaged build.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env.Env, envProduction)
}

func (c *Config) appOrigin() string {
	if c.IsProduction() {
		return c.OAuth.ProductionOrigin
	}

	return c.OAuth.DevelopmentOrigin
}

// RedirectTo is the destination passed to the provider when the handshake starts.
func (c *Config) RedirectTo() string {
	return c.appOrigin() + "/app/dashboard"
}

// DashboardURL is the post-login destination for a given role.
func (c *Config) DashboardURL(role string) string {
	return fmt.Sprintf("%s/%s/dashboard", c.appOrigin(), role)
}

// LoginURL is the recovery destination after a failed handshake.
func (c *Config) LoginURL() string {
	return c.appOrigin() + "/login"
}

// LoadWithEnv loads .yaml files through koanf, then overlays environment variables.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: SESSION_COOKIENAME -> session.cookieName
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	// A local .env is optional; exported variables win either way.
	_ = godotenv.Load()

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		cfg.API.BaseURL = defaultAPIBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.RequestTimeout <= 0 {
		cfg.API.RequestTimeout = defaultRequestTimeout
	}

	if strings.TrimSpace(cfg.Session.CookieName) == "" {
		cfg.Session.CookieName = defaultCookieName
	}
	if strings.TrimSpace(cfg.Session.LegacyCookieName) == "" {
		cfg.Session.LegacyCookieName = defaultLegacyCookieName
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = defaultSessionTTL
	}
	if strings.TrimSpace(cfg.Session.StorePath) == "" {
		cfg.Session.StorePath = filepath.Join(profileDir(), "cookies.db")
	}

	if cfg.OAuth == nil {
		cfg.OAuth = &OAuthConfig{}
	}
	if cfg.OAuth.HandshakeTimeout <= 0 {
		cfg.OAuth.HandshakeTimeout = defaultHandshakeTimeout
	}
	if strings.TrimSpace(cfg.OAuth.ProductionOrigin) == "" {
		cfg.OAuth.ProductionOrigin = "app://."
	}
	if strings.TrimSpace(cfg.OAuth.DevelopmentOrigin) == "" {
		cfg.OAuth.DevelopmentOrigin = "http://localhost:8888"
	}

	if cfg.Bridge.Port == 0 {
		cfg.Bridge.Port = defaultBridgePort
	}
}

// profileDir resolves the per-user application profile directory.
func profileDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	return filepath.Join(base, "healthmate")
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
