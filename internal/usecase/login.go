// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/jira-attach/internal/domain"
)

// LoginInput contains the parameters for logging in.
type LoginInput struct {
	Profile  domain.Profile // Server, credentials and connection settings
	Remember bool           // Save server, username and sealed password to the config file
}

// LoginOutput contains the result of logging in.
type LoginOutput struct {
	User *domain.User
}

// Login verifies credentials against the server and opens the session.
type Login struct {
	factory       domain.TrackerFactory
	session       *domain.Session
	configManager domain.ConfigManager
	logger        domain.Logger
}

// NewLogin creates a new Login use case.
func NewLogin(
	factory domain.TrackerFactory,
	session *domain.Session,
	configManager domain.ConfigManager,
	logger domain.Logger,
) *Login {
	return &Login{
		factory:       factory,
		session:       session,
		configManager: configManager,
		logger:        logger,
	}
}

// Execute connects with the profile and asks the server who we are.
// Any failure is reported as ErrLoginFailed (or ErrNoServer).
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	p := in.Profile
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tracker, err := uc.factory.Connect(p)
	if err != nil {
		return nil, loginError(err)
	}

	user, err := tracker.Myself(ctx)
	if err != nil {
		uc.logger.Warn("", "login", fmt.Sprintf("%s@%s: %v", p.Username, p.Server, err))
		return nil, loginError(err)
	}

	uc.session.Set(tracker, user, p)
	uc.logger.Info("", "login", fmt.Sprintf("logged in to %s as %s", p.Server, user.Name))

	if in.Remember {
		if err := uc.configManager.SaveProfile(p); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
	}
	return &LoginOutput{User: user}, nil
}

func loginError(err error) error {
	if errors.Is(err, domain.ErrLoginFailed) || errors.Is(err, domain.ErrNoServer) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
}
