package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/tasty-ordering/internal/db/dbtest"
	"github.com/vasiliy-maslov/tasty-ordering/internal/settings"
)

func TestPostgresSettingsRepository_GetMissing(t *testing.T) {
	repo := settings.NewRepository(dbtest.Open(t, "settings"))

	_, err := repo.Get(context.Background(), settings.StoreKey)
	assert.ErrorIs(t, err, settings.ErrNotFound)
}

func TestPostgresSettingsRepository_UpsertKeepsSingleRow(t *testing.T) {
	sqlDB := dbtest.Open(t, "settings")
	repo := settings.NewRepository(sqlDB)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, settings.StoreKey, `{"name":"A","isOpen":true}`))
	require.NoError(t, repo.Upsert(ctx, settings.StoreKey, `{"name":"B","isOpen":false}`))

	value, err := repo.Get(ctx, settings.StoreKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"B","isOpen":false}`, value)

	var count int
	require.NoError(t, sqlDB.GetContext(ctx, &count, `SELECT COUNT(*) FROM settings WHERE setting_key = $1`, settings.StoreKey))
	assert.Equal(t, 1, count)
}

func TestSettingsService_RoundTripThroughPostgres(t *testing.T) {
	svc := settings.NewService(settings.NewRepository(dbtest.Open(t, "settings")), defaultSettings)
	ctx := context.Background()

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultSettings, got)

	want := settings.StoreSettings{Name: "夜市小吃", IsOpen: false}
	require.NoError(t, svc.UpdateSettings(ctx, want))

	got, err = svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
