package settings

import (
	"context"
	"testing"

	"vintrack/models"
	"vintrack/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*SettingsService, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	return NewSettingsService(factory.NewSettingsRepository()), cleanup
}

func TestSettingsService_DefaultsOnFirstAccess(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	settings, err := svc.GetUserSettings(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.RefreshDaily, settings.RefreshInterval)
	assert.Equal(t, "user-1", settings.UserID)
	assert.NotEmpty(t, settings.ID)

	// The defaults are persisted, not recreated per call
	again, err := svc.GetUserSettings(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestSettingsService_UpdateRefreshInterval(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	updated, err := svc.UpdateRefreshInterval(ctx, "user-1", models.RefreshEvery15Days)
	require.NoError(t, err)
	assert.Equal(t, models.RefreshEvery15Days, updated.RefreshInterval)

	reloaded, err := svc.GetUserSettings(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.RefreshEvery15Days, reloaded.RefreshInterval)
}

func TestSettingsService_RejectsUnknownInterval(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.UpdateRefreshInterval(context.Background(), "user-1", models.RefreshInterval("*/5 * * * *"))
	assert.Error(t, err)
}

func TestSettingsService_UsersOnInterval(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.UpdateRefreshInterval(ctx, "daily-user", models.RefreshDaily)
	require.NoError(t, err)
	_, err = svc.UpdateRefreshInterval(ctx, "monthly-user", models.RefreshMonthly)
	require.NoError(t, err)

	monthly, err := svc.UsersOnInterval(ctx, models.RefreshMonthly)
	require.NoError(t, err)
	require.Len(t, monthly, 1)
	assert.Equal(t, "monthly-user", monthly[0].UserID)
}
