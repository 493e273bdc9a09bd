package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath          = "."
	defaultAPITimeout    = 30 * time.Second
	defaultCSRFCookie    = "csrftoken"
	defaultCSRFHeader    = "X-CSRFToken"
	defaultTrackingFile  = "post-purchase.json"
	defaultReferralParam = "sref_id"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// API configures the client for the subscription backend.
	API struct {
		BaseURL    string        `json:"baseUrl" yaml:"baseUrl"`
		Timeout    time.Duration `json:"timeout" yaml:"timeout"`
		CSRFCookie string        `json:"csrfCookie" yaml:"csrfCookie"`
		CSRFHeader string        `json:"csrfHeader" yaml:"csrfHeader"`
	} `json:"api" yaml:"api"`

	// Payment configures the external payment provider endpoint used
	// to confirm card setup. The provider is opaque to the rest of the
	// engine.
	Payment *PaymentConfig `json:"payment" yaml:"payment"`

	// Tracking configures the durable post-purchase tracking bundle.
	Tracking *TrackingConfig `json:"tracking" yaml:"tracking"`

	// Referral configures referral-link detection and construction.
	Referral *ReferralConfig `json:"referral" yaml:"referral"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PaymentConfig defines the payment provider endpoint configuration
type PaymentConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// TrackingConfig defines where the read-once purchase tracking bundle lives
type TrackingConfig struct {
	Path string `json:"path" yaml:"path"`
}

// ReferralConfig defines referral-link construction and detection
type ReferralConfig struct {
	LinkBaseURL string `json:"linkBaseUrl" yaml:"linkBaseUrl"`
	CodeParam   string `json:"codeParam" yaml:"codeParam"`
	UTMCampaign string `json:"utmCampaign" yaml:"utmCampaign"`
	UTMSource   string `json:"utmSource" yaml:"utmSource"`
}

// LoadWithEnv loads .yaml files through koanf.
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
			// Example: API_BASEURL -> api.baseUrl (not api.baseurl)
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
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.Timeout <= 0 {
		c.API.Timeout = defaultAPITimeout
	}
	if strings.TrimSpace(c.API.CSRFCookie) == "" {
		c.API.CSRFCookie = defaultCSRFCookie
	}
	if strings.TrimSpace(c.API.CSRFHeader) == "" {
		c.API.CSRFHeader = defaultCSRFHeader
	}
	if c.Tracking == nil {
		c.Tracking = &TrackingConfig{}
	}
	if strings.TrimSpace(c.Tracking.Path) == "" {
		c.Tracking.Path = defaultTrackingFile
	}
	if c.Referral == nil {
		c.Referral = &ReferralConfig{}
	}
	if strings.TrimSpace(c.Referral.CodeParam) == "" {
		c.Referral.CodeParam = defaultReferralParam
	}
	if strings.TrimSpace(c.Referral.UTMCampaign) == "" {
		c.Referral.UTMCampaign = "referral_program"
	}
	if strings.TrimSpace(c.Referral.UTMSource) == "" {
		c.Referral.UTMSource = "loyalty"
	}
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
