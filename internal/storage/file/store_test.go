package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/localmud/localmud/internal/game/player"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return store
}

func TestSaveAndLoadPlayer(t *testing.T) {
	store := newTestStore(t)

	p := &player.Player{
		Name:       "Wren",
		Class:      "fighter",
		Background: "gravedigger",
		HP:         6,
		MaxHP:      8,
		XP:         3,
		Gold:       100,
		Inventory:  []string{"rusty_key"},
		Location:   "chapel_0_1_0",
		CurseCount: 2,
	}
	require.NoError(t, store.SavePlayer(p))

	got, err := store.LoadPlayer()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p, got)
}

func TestLoadPlayerMissingIsFreshStart(t *testing.T) {
	store := newTestStore(t)

	got, err := store.LoadPlayer()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveOverwritesPrevious(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SavePlayer(&player.Player{Name: "Wren", Gold: 100}))
	require.NoError(t, store.SavePlayer(&player.Player{Name: "Wren", Gold: 42}))

	got, err := store.LoadPlayer()
	require.NoError(t, err)
	assert.Equal(t, 42, got.Gold)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, store.SavePlayer(&player.Player{Name: "Wren"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "player.yaml", entries[0].Name())
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	missing, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, Settings{}, missing)

	want := Settings{MaxHPBonus: true, VerboseTravel: true, DebugMode: false}
	require.NoError(t, store.SaveSettings(want))

	got, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPlayerCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("{not: [valid"), 0o644))

	_, err = store.LoadPlayer()
	assert.Error(t, err)
}
