package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Execute_Success(t *testing.T) {
	// Setup
	tracker := testutil.NewMockTracker()
	factory := &testutil.MockTrackerFactory{Tracker: tracker}
	session := domain.NewSession()
	cfgMgr := &testutil.MockConfigManager{}
	logger := &testutil.MockLogger{}
	uc := NewLogin(factory, session, cfgMgr, logger)
	p := domain.Profile{Server: "https://jira.example.com", Username: "alice", Password: "pw"}

	// Execute
	out, err := uc.Execute(context.Background(), LoginInput{Profile: p})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alice", out.User.Name)
	assert.True(t, session.LoggedIn())
	assert.Equal(t, p, session.Profile())
	assert.Equal(t, []domain.Profile{p}, factory.Profiles)
	assert.Empty(t, cfgMgr.Saved)
	require.NotEmpty(t, logger.Entries)
	assert.Equal(t, "login", logger.Entries[0].Category)
}

func TestLogin_Execute_Remember(t *testing.T) {
	tracker := testutil.NewMockTracker()
	cfgMgr := &testutil.MockConfigManager{}
	uc := NewLogin(&testutil.MockTrackerFactory{Tracker: tracker}, domain.NewSession(), cfgMgr, domain.NopLogger{})
	p := domain.Profile{Server: "https://jira.example.com", Username: "alice", Password: "pw"}

	_, err := uc.Execute(context.Background(), LoginInput{Profile: p, Remember: true})

	require.NoError(t, err)
	assert.Equal(t, []domain.Profile{p}, cfgMgr.Saved)
}

func TestLogin_Execute_Errors(t *testing.T) {
	tests := []struct {
		name       string
		profile    domain.Profile
		factoryErr error
		myselfErr  error
		wantErr    error
	}{
		{
			name:    "no server",
			profile: domain.Profile{Username: "alice"},
			wantErr: domain.ErrNoServer,
		},
		{
			name:    "no username",
			profile: domain.Profile{Server: "https://jira"},
			wantErr: domain.ErrLoginFailed,
		},
		{
			name:       "connect fails",
			profile:    domain.Profile{Server: "://bad", Username: "alice"},
			factoryErr: errors.New("invalid server URL"),
			wantErr:    domain.ErrLoginFailed,
		},
		{
			name:      "bad credentials",
			profile:   domain.Profile{Server: "https://jira", Username: "alice", Password: "wrong"},
			myselfErr: errors.New("HTTP 401"),
			wantErr:   domain.ErrLoginFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tracker := testutil.NewMockTracker()
			tracker.MyselfErr = tt.myselfErr
			session := domain.NewSession()
			uc := NewLogin(&testutil.MockTrackerFactory{Tracker: tracker, Err: tt.factoryErr}, session, &testutil.MockConfigManager{}, domain.NopLogger{})

			// Execute
			_, err := uc.Execute(context.Background(), LoginInput{Profile: tt.profile})

			// Assert
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, session.LoggedIn())
		})
	}
}

func TestLogin_Execute_SaveFails(t *testing.T) {
	cfgMgr := &testutil.MockConfigManager{SaveErr: errors.New("disk full")}
	session := domain.NewSession()
	uc := NewLogin(&testutil.MockTrackerFactory{Tracker: testutil.NewMockTracker()}, session, cfgMgr, domain.NopLogger{})

	_, err := uc.Execute(context.Background(), LoginInput{
		Profile:  domain.Profile{Server: "https://jira", Username: "alice"},
		Remember: true,
	})

	assert.ErrorContains(t, err, "save profile")
	assert.True(t, session.LoggedIn())
}
