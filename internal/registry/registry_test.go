package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rajendar38/dice2/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seen_jobs.txt")
	r, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r, path
}

func TestFilterNew(t *testing.T) {
	r, _ := openTemp(t)
	require.NoError(t, r.Append("1234"))

	jobs := []scraper.Job{{ID: "1234"}, {ID: "5678"}}
	fresh := r.FilterNew(jobs)

	require.Len(t, fresh, 1)
	assert.Equal(t, "5678", fresh[0].ID)
}

func TestAppend_Durable(t *testing.T) {
	r, path := openTemp(t)
	require.NoError(t, r.Append("9999"))
	require.NoError(t, r.Close())

	//a fresh registry must see the id
	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.True(t, reopened.Contains("9999"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "9999"), "id must appear exactly once")
}

func TestAppend_NoDuplicates(t *testing.T) {
	r, path := openTemp(t)
	require.NoError(t, r.Append("1234"))
	require.NoError(t, r.Append("1234"))
	require.NoError(t, r.Append("1234"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Fields(string(data))
	assert.Equal(t, []string{"1234"}, lines)
	assert.Equal(t, 1, r.Len())
}

func TestLoad_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.txt")
	require.NoError(t, os.WriteFile(path, []byte("1234\n\n  \n5678\n"), 0644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Contains("1234"))
	assert.True(t, r.Contains("5678"))
}

func TestAppendOnly_SizeNeverDecreases(t *testing.T) {
	r, path := openTemp(t)

	var lastSize int64
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.Append(id))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, info.Size(), lastSize)
		lastSize = info.Size()
	}
}

func TestOpen_SecondRunBlocked(t *testing.T) {
	r, path := openTemp(t)
	_ = r

	_, err := Open(path)
	assert.Error(t, err, "a second concurrent run must not get the registry")
}
