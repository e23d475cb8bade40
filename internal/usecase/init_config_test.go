package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Execute(t *testing.T) {
	t.Run("creates config", func(t *testing.T) {
		mgr := &testutil.MockConfigManager{FilePath: "/cfg/config.toml"}
		uc := NewInitConfig(mgr)

		out, err := uc.Execute(context.Background(), InitConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, "/cfg/config.toml", out.Path)
		assert.True(t, mgr.Present)
	})

	t.Run("refuses existing config", func(t *testing.T) {
		mgr := &testutil.MockConfigManager{Present: true}
		uc := NewInitConfig(mgr)

		_, err := uc.Execute(context.Background(), InitConfigInput{})

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})

	t.Run("force overwrites", func(t *testing.T) {
		mgr := &testutil.MockConfigManager{Present: true}
		uc := NewInitConfig(mgr)

		_, err := uc.Execute(context.Background(), InitConfigInput{Force: true})

		require.NoError(t, err)
		assert.Equal(t, domain.ConfigTemplate(), mgr.Content)
	})
}
