package usecase

import (
	"context"

	"github.com/runoshun/jira-attach/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Effective *domain.Config    // Defaults, file and environment merged; password masked
	File      domain.ConfigInfo // The configuration file as written
}

// ShowConfig displays the configuration.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute loads the effective configuration and the file information.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, err
	}
	masked := *cfg
	if masked.Server.Password != "" {
		masked.Server.Password = "********"
	}
	return &ShowConfigOutput{
		Effective: &masked,
		File:      uc.configManager.Info(),
	}, nil
}
