// Package config loads bpmnpath settings from a YAML file and the environment.
//
// Precedence, lowest first: built-in defaults, the YAML file, BPMNPATH_*
// environment variables. Command-line flags are applied by the caller on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no path is given. It is optional.
const DefaultFile = "bpmnpath.yaml"

// EnvPrefix prefixes every environment override, e.g. BPMNPATH_SOURCE_URL.
const EnvPrefix = "BPMNPATH_"

// Config holds all settings of a bpmnpath process.
type Config struct {
	ProcessKey string       `mapstructure:"process_key" yaml:"process_key" validate:"required"`
	Source     SourceConfig `mapstructure:"source" yaml:"source"`
	Cache      CacheConfig  `mapstructure:"cache" yaml:"cache"`
	Log        LogConfig    `mapstructure:"log" yaml:"log"`
	Server     ServerConfig `mapstructure:"server" yaml:"server"`
}

// SourceConfig selects where definitions are fetched from.
type SourceConfig struct {
	Type     string        `mapstructure:"type" yaml:"type" validate:"oneof=camunda file"`
	URL      string        `mapstructure:"url" yaml:"url" validate:"omitempty,url"`
	Dir      string        `mapstructure:"dir" yaml:"dir" validate:"required_if=Type file"`
	Username string        `mapstructure:"username" yaml:"username"`
	Password string        `mapstructure:"password" yaml:"password"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`
}

// CacheConfig selects where fetched definitions are kept.
type CacheConfig struct {
	Type     string        `mapstructure:"type" yaml:"type" validate:"oneof=none memory redis"`
	Addr     string        `mapstructure:"addr" yaml:"addr" validate:"required_if=Type redis"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db" validate:"gte=0"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl" validate:"gte=0"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// ServerConfig governs the HTTP server.
type ServerConfig struct {
	Port    int  `mapstructure:"port" yaml:"port" validate:"gte=1,lte=65535"`
	Metrics bool `mapstructure:"metrics" yaml:"metrics"`
}

// envKeys maps environment variable suffixes to dotted config paths.
var envKeys = map[string]string{
	"PROCESS_KEY":     "process_key",
	"SOURCE_TYPE":     "source.type",
	"SOURCE_URL":      "source.url",
	"SOURCE_DIR":      "source.dir",
	"SOURCE_USERNAME": "source.username",
	"SOURCE_PASSWORD": "source.password",
	"SOURCE_TIMEOUT":  "source.timeout",
	"CACHE_TYPE":      "cache.type",
	"CACHE_ADDR":      "cache.addr",
	"CACHE_PASSWORD":  "cache.password",
	"CACHE_DB":        "cache.db",
	"CACHE_TTL":       "cache.ttl",
	"CACHE_PREFIX":    "cache.prefix",
	"LOG_LEVEL":       "log.level",
	"LOG_FORMAT":      "log.format",
	"SERVER_PORT":     "server.port",
	"SERVER_METRICS":  "server.metrics",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func defaults() map[string]any {
	return map[string]any{
		"process_key": "invoice",
		"source": map[string]any{
			"type":    "camunda",
			"url":     "https://n35ro2ic4d.execute-api.eu-central-1.amazonaws.com/prod/engine-rest",
			"timeout": "30s",
		},
		"cache": map[string]any{
			"type":   "none",
			"prefix": "bpmnpath:definition:",
			"ttl":    "10m",
		},
		"log": map[string]any{
			"level":  "info",
			"format": "text",
		},
		"server": map[string]any{
			"port":    8080,
			"metrics": true,
		},
	}
}

// Load reads path (or DefaultFile when path is empty), applies environment
// overrides and validates the result. A missing DefaultFile is not an error;
// a missing explicit path is.
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with a final layer of dotted-path values on top,
// typically the command-line flags the user set.
func LoadWithOverrides(path string, overrides map[string]any) (*Config, error) {
	raw := defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No config file; defaults and environment only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		var fileValues map[string]any
		if err := yaml.Unmarshal(data, &fileValues); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		merge(raw, fileValues)
	}

	for suffix, dotted := range envKeys {
		if v, ok := os.LookupEnv(EnvPrefix + suffix); ok {
			Set(raw, dotted, v)
		}
	}
	for dotted, v := range overrides {
		Set(raw, dotted, v)
	}

	return Decode(raw)
}

// Decode converts a raw settings tree into a validated Config.
func Decode(raw map[string]any) (*Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Set writes value at a dotted path ("source.url"), creating intermediate maps.
func Set(raw map[string]any, dotted string, value any) {
	parts := strings.Split(dotted, ".")
	m := raw
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}
