// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/infra/crypto"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// EnvPrefix is the prefix of environment variables overriding the file.
const EnvPrefix = "JIRA_ATTACH_"

// knownKeys lists the accepted keys per section.
var knownKeys = map[string]map[string]bool{
	"server": {"url": true, "username": true, "password": true, "insecure": true,
		"max_retries": true, "rate_limit": true, "timeout": true},
	"viewer": {"command": true},
	"list":   {"sort": true, "desc": true},
	"log":    {"level": true},
}

// envOverlay holds values read from the environment.
// Booleans are strings so that an unset variable is distinguishable.
type envOverlay struct {
	Server   string `env:"SERVER"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	Insecure string `env:"INSECURE"`
	LogLevel string `env:"LOG_LEVEL"`
}

// Loader loads configuration from a TOML file and the environment.
type Loader struct {
	environ map[string]string // nil means the process environment
	path    string
	keyPath string
}

// NewLoader creates a new Loader for the file at path.
// keyPath is the key used to unseal a saved password.
func NewLoader(path, keyPath string) *Loader {
	return &Loader{path: path, keyPath: keyPath}
}

// NewLoaderWithEnv creates a Loader reading overrides from environ instead
// of the process environment. This is useful for testing.
func NewLoaderWithEnv(path, keyPath string, environ map[string]string) *Loader {
	if environ == nil {
		environ = map[string]string{}
	}
	return &Loader{path: path, keyPath: keyPath, environ: environ}
}

// Load returns defaults, overridden by the file, overridden by the environment.
// A sealed password is returned unsealed.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if err := l.loadFile(cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	if crypto.IsSealed(cfg.Server.Password) {
		enc, err := crypto.Load(l.keyPath)
		if err != nil {
			return nil, fmt.Errorf("load key: %w", err)
		}
		plain, err := enc.Unseal(cfg.Server.Password)
		if err != nil {
			return nil, fmt.Errorf("unseal password: %w", err)
		}
		cfg.Server.Password = plain
	}
	return cfg, nil
}

// loadFile decodes the file over cfg and records warnings for unknown keys.
func (l *Loader) loadFile(cfg *domain.Config) error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", l.path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", l.path, err)
	}
	cfg.Warnings = append(cfg.Warnings, unknownKeyWarnings(raw)...)
	return nil
}

func unknownKeyWarnings(raw map[string]any) []string {
	var warnings []string
	for section, value := range raw {
		keys, ok := knownKeys[section]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("[%s] must be a table", section))
			continue
		}
		for k := range m {
			if !keys[k] {
				warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, k))
			}
		}
	}
	sort.Strings(warnings)
	return warnings
}

func (l *Loader) applyEnv(cfg *domain.Config) error {
	var o envOverlay
	opts := env.Options{Prefix: EnvPrefix, Environment: l.environ}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	if o.Server != "" {
		cfg.Server.URL = o.Server
	}
	if o.Username != "" {
		cfg.Server.Username = o.Username
	}
	if o.Password != "" {
		cfg.Server.Password = o.Password
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.Insecure != "" {
		b, err := strconv.ParseBool(o.Insecure)
		if err != nil {
			return fmt.Errorf("parse %sINSECURE: %w", EnvPrefix, err)
		}
		cfg.Server.Insecure = b
	}
	return nil
}
