package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Profile_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.URL = " https://jira.example.com/ "
	cfg.Server.Username = "alice"

	p := cfg.Profile()
	assert.Equal(t, "https://jira.example.com", p.Server)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, DefaultTimeout, p.Timeout)
	assert.InDelta(t, DefaultRateLimit, p.RateLimit, 0.001)
	assert.Equal(t, 0, p.MaxRetries)
	assert.False(t, p.Complete())
}

func TestConfig_Profile_Overrides(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server = ServerConfig{
		URL:        "https://jira.example.com",
		Username:   "alice",
		Password:   "secret",
		Timeout:    "5s",
		RateLimit:  2,
		MaxRetries: 3,
		Insecure:   true,
	}

	p := cfg.Profile()
	assert.Equal(t, 5*time.Second, p.Timeout)
	assert.InDelta(t, 2.0, p.RateLimit, 0.001)
	assert.Equal(t, 3, p.MaxRetries)
	assert.True(t, p.Insecure)
	assert.True(t, p.Complete())
}

func TestConfig_Profile_InvalidTimeoutUsesDefault(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Timeout = "soon"
	assert.Equal(t, DefaultTimeout, cfg.Profile().Timeout)
}

func TestProfile_Validate(t *testing.T) {
	assert.ErrorIs(t, Profile{}.Validate(), ErrNoServer)
	assert.ErrorIs(t, Profile{Server: "https://x"}.Validate(), ErrLoginFailed)
	assert.NoError(t, Profile{Server: "https://x", Username: "u"}.Validate())
}

func TestConfigTemplate_NotEmpty(t *testing.T) {
	assert.Contains(t, ConfigTemplate(), "[server]")
	assert.Contains(t, ConfigTemplate(), "[log]")
}
