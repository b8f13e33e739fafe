package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShotFilename(t *testing.T) {
	ts := time.Date(2026, 8, 26, 14, 30, 5, 0, time.UTC)

	assert.Equal(t, "abc-123_no-submit-step_2026-08-26_14-30-05.png",
		shotFilename("abc-123", "no-submit-step", ts))
	assert.Equal(t, "login_2026-08-26_14-30-05.png",
		shotFilename("", "login", ts))
}

func TestNewScreenShotDebugger_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	d := NewScreenShotDebugger(dir)
	require.NotNil(t, d)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
