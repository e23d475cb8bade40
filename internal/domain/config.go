package domain

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigTemplate returns the commented template written by "config init".
func ConfigTemplate() string {
	return configTemplateContent
}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Server   ServerConfig `toml:"server"`
	Viewer   ViewerConfig `toml:"viewer"`
	List     ListConfig   `toml:"list"`
	Log      LogConfig    `toml:"log"`
}

// ServerConfig holds the [server] section: where and how to log in.
type ServerConfig struct {
	URL        string  `toml:"url,omitempty"`
	Username   string  `toml:"username,omitempty"`
	Password   string  `toml:"password,omitempty"` // Plain or sealed ("enc:...")
	Timeout    string  `toml:"timeout,omitempty"`  // Go duration, e.g. "30s"
	RateLimit  float64 `toml:"rate_limit,omitempty"`
	MaxRetries int     `toml:"max_retries,omitempty"`
	Insecure   bool    `toml:"insecure,omitempty"` // Skip TLS verification
}

// ViewerConfig holds the [viewer] section.
type ViewerConfig struct {
	Command string `toml:"command,omitempty"` // Program used to open attachments
}

// ListConfig holds the [list] section.
type ListConfig struct {
	Sort string `toml:"sort,omitempty"` // name, created, author, size
	Desc bool   `toml:"desc,omitempty"`
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// ConfigInfo describes the configuration file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Default values.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10.0
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Viewer: ViewerConfig{Command: DefaultViewerCommand()},
		List:   ListConfig{Sort: string(SortByName)},
		Log:    LogConfig{Level: "info"},
	}
}

// DefaultViewerCommand returns the platform's "open with default app" command.
func DefaultViewerCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32 url.dll,FileProtocolHandler"
	default:
		return "xdg-open"
	}
}

// Profile holds everything needed to connect to a server.
type Profile struct {
	Server     string
	Username   string
	Password   string
	Timeout    time.Duration
	RateLimit  float64
	MaxRetries int
	Insecure   bool
}

// Profile derives the connection profile from the [server] section.
func (c *Config) Profile() Profile {
	p := Profile{
		Server:     strings.TrimRight(strings.TrimSpace(c.Server.URL), "/"),
		Username:   c.Server.Username,
		Password:   c.Server.Password,
		Insecure:   c.Server.Insecure,
		MaxRetries: c.Server.MaxRetries,
		RateLimit:  c.Server.RateLimit,
		Timeout:    DefaultTimeout,
	}
	if d, err := time.ParseDuration(c.Server.Timeout); err == nil && d > 0 {
		p.Timeout = d
	}
	if p.RateLimit <= 0 {
		p.RateLimit = DefaultRateLimit
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	return p
}

// Complete reports whether the profile has enough to attempt a login.
func (p Profile) Complete() bool {
	return p.Server != "" && p.Username != "" && p.Password != ""
}

// Validate checks the fields required for login.
func (p Profile) Validate() error {
	if p.Server == "" {
		return ErrNoServer
	}
	if p.Username == "" {
		return fmt.Errorf("%w: username is required", ErrLoginFailed)
	}
	return nil
}
