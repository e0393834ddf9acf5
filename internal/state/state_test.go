package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tommyzliu/tilewm/internal/layout"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "tilewm"))
	s.now = func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestNewStore(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewStore(tmpDir)

	assert.NotNil(t, store)
	assert.Equal(t, tmpDir, store.dir)
	assert.Equal(t, filepath.Join(tmpDir, "state.json"), store.Path())
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	snap := &Snapshot{
		PID:        4242,
		Active:     1,
		Focused:    0x1400003,
		Background: 0x006400,
		Capacity:   50,
		Workspaces: []Workspace{
			{Index: 0},
			{
				Index: 1,
				Windows: []Window{
					{
						ID:          0x1400003,
						Class:       "normal",
						Geometry:    layout.Rect{X: 0, Y: 0, Width: 1916, Height: 1076},
						BorderWidth: 2,
						BorderColor: 0xff0000,
					},
				},
			},
		},
	}

	require.NoError(t, store.Save(snap))

	loaded, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), loaded.UpdatedAt.UTC())
	loaded.UpdatedAt = snap.UpdatedAt
	assert.Equal(t, snap, loaded)
	assert.Equal(t, 1, loaded.WindowCount())
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(&Snapshot{}))

	_, err := os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadCorrupt(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.dir, 0700))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0600))

	_, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse state file")
}

func TestLoadFillsNilWorkspaces(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.dir, 0700))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"active_workspace": 3}`), 0600))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Active)
	assert.NotNil(t, snap.Workspaces)
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(&Snapshot{Active: 2}))

	require.NoError(t, store.Reset())

	_, err := store.Load()
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// Resetting twice is fine.
	assert.NoError(t, store.Reset())
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, "/run/user/1000/tilewm", DefaultDir())

	t.Setenv("XDG_RUNTIME_DIR", "")
	assert.Contains(t, DefaultDir(), "tilewm-")
}
