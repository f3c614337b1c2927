package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindik/internal/config"
	"remindik/internal/errors"
	"remindik/internal/logging"
	"remindik/internal/repository/sqlite"
	"remindik/internal/schedule"
)

// cliNow is a Tuesday
var cliNow = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func setupTestApp(t *testing.T) *App {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	clock := schedule.FixedClock{Instant: cliNow}
	return NewApp(repo, cfg, clock, logging.NewNopLogger())
}

func TestParseWhen(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.Local)

	t.Run("full datetime", func(t *testing.T) {
		got, err := parseWhen("2025-12-01 09:30", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.December, 1, 9, 30, 0, 0, time.Local), got)
	})

	t.Run("bare time resolves to today", func(t *testing.T) {
		got, err := parseWhen("15:45", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.June, 10, 15, 45, 0, 0, time.Local), got)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := parseWhen("next tuesday", now)
		assert.Error(t, err)
	})
}

func TestParseDays(t *testing.T) {
	t.Run("numbers", func(t *testing.T) {
		days, err := parseDays("3,1,5")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 5}, days)
	})

	t.Run("names", func(t *testing.T) {
		days, err := parseDays("mon,Wed,FRI")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 5}, days)
	})

	t.Run("mixed", func(t *testing.T) {
		days, err := parseDays("sun, 6")
		require.NoError(t, err)
		assert.Equal(t, []int{0, 6}, days)
	})

	t.Run("empty", func(t *testing.T) {
		days, err := parseDays("")
		require.NoError(t, err)
		assert.Nil(t, days)
	})

	t.Run("rejects unknown name", func(t *testing.T) {
		_, err := parseDays("mon,someday")
		assert.Error(t, err)
	})
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("1234567890ab"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestApp_ResolveTask(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	created, err := app.service.CreateImmediate(ctx, "Buy milk")
	require.NoError(t, err)
	_, err = app.service.CreateImmediate(ctx, "Feed cat")
	require.NoError(t, err)

	t.Run("resolves full id", func(t *testing.T) {
		task, err := app.resolveTask(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Text)
	})

	t.Run("resolves unique prefix", func(t *testing.T) {
		task, err := app.resolveTask(ctx, created.ID[:8])
		require.NoError(t, err)
		assert.Equal(t, created.ID, task.ID)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		// UUIDs are hex, so this prefix can never match
		_, err := app.resolveTask(ctx, "zzzz")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		_, err := app.resolveTask(ctx, "")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})
}
