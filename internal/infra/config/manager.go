package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/infra/crypto"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages the configuration file.
type Manager struct {
	path    string
	keyPath string
}

// NewManager creates a new Manager for the file at path.
func NewManager(path, keyPath string) *Manager {
	return &Manager{path: path, keyPath: keyPath}
}

// Path returns the configuration file path.
func (m *Manager) Path() string {
	return m.path
}

// Exists reports whether the configuration file exists.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Info returns the path and raw content of the configuration file.
func (m *Manager) Info() domain.ConfigInfo {
	content, err := os.ReadFile(m.path)
	if err != nil {
		return domain.ConfigInfo{Path: m.path}
	}
	return domain.ConfigInfo{
		Path:    m.path,
		Content: string(content),
		Exists:  true,
	}
}

// Init writes the commented template.
func (m *Manager) Init(force bool) error {
	if m.Exists() && !force {
		return domain.ErrConfigExists
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(m.path, []byte(domain.ConfigTemplate()), 0o600)
}

// SaveProfile writes the server, username, sealed password and insecure flag
// into the [server] section. Other sections and keys are kept, comments are not.
func (m *Manager) SaveProfile(p domain.Profile) error {
	raw := map[string]any{}
	data, err := os.ReadFile(m.path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse %s: %w", m.path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	server, _ := raw["server"].(map[string]any)
	if server == nil {
		server = map[string]any{}
	}
	server["url"] = p.Server
	server["username"] = p.Username
	if p.Insecure {
		server["insecure"] = true
	} else {
		delete(server, "insecure")
	}
	if p.Password != "" {
		enc, err := crypto.LoadOrCreate(m.keyPath)
		if err != nil {
			return fmt.Errorf("load key: %w", err)
		}
		sealed, err := enc.Seal(p.Password)
		if err != nil {
			return fmt.Errorf("seal password: %w", err)
		}
		server["password"] = sealed
	}
	raw["server"] = server

	out, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(m.path, out, 0o600)
}
