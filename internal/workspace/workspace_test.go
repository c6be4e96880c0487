package workspace

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/corkboard/internal/calendar"
	"github.com/sadopc/corkboard/internal/finance"
	"github.com/sadopc/corkboard/internal/ids"
	"github.com/sadopc/corkboard/internal/notes"
)

func testOptions(kind, dir string) Options {
	return Options{
		Kind:      kind,
		DataDir:   dir,
		Generator: ids.NewSequence(1000),
		Rand:      rand.New(rand.NewPCG(3, 4)),
		Clock:     func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) },
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestOpenBothBackends(t *testing.T) {
	for _, kind := range []string{BackendSQLite, BackendDiskv} {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()

			w, err := Open(testOptions(kind, dir))
			require.NoError(t, err)
			assert.Equal(t, 3, w.Notes.Len(), "fresh workspace is seeded")

			n, ok := w.Notes.Add(notes.Draft{Type: notes.VariantChecklist, Title: "errands"})
			require.True(t, ok)
			_, ok = w.Events.Add(calendar.Event{Date: "2024-06-20", Description: "party"})
			require.True(t, ok)
			_, ok = w.Finance.Add(finance.Draft{Title: "cake", Amount: "15"})
			require.True(t, ok)
			require.True(t, w.Reorder.Reorder(n.ID, 1))
			require.True(t, w.Prefs.SetTheme("darkMode"))
			require.NoError(t, w.Close())

			opts := testOptions(kind, dir)
			opts.Generator = ids.NewSequence(5000)
			w2, err := Open(opts)
			require.NoError(t, err)
			defer w2.Close()

			assert.Equal(t, n.ID, w2.Notes.List()[0].ID)
			assert.Len(t, w2.Events.List(), 1)
			assert.Len(t, w2.Finance.List(), 1)
			assert.Equal(t, "darkMode", w2.Prefs.Get().Theme)
			assert.Equal(t, DefaultSkin, w2.Prefs.Get().BoardSkin)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(testOptions("redis", t.TempDir()))
	assert.Error(t, err)
}

func TestSharedGeneratorKeepsIDsDistinct(t *testing.T) {
	w, err := Open(testOptions(BackendSQLite, t.TempDir()))
	require.NoError(t, err)
	defer w.Close()

	n, _ := w.Notes.Add(notes.Draft{Type: notes.VariantHabit})
	e, _ := w.Events.Add(calendar.Event{Date: "2024-06-01"})
	tx, _ := w.Finance.Add(finance.Draft{Title: "x", Amount: "1"})
	assert.NotEqual(t, n.ID, e.ID)
	assert.NotEqual(t, e.ID, tx.ID)
}

func TestPrefsRejectUnknownIDs(t *testing.T) {
	w, err := Open(testOptions(BackendSQLite, t.TempDir()))
	require.NoError(t, err)
	defer w.Close()

	assert.False(t, w.Prefs.SetTheme("neon"))
	assert.False(t, w.Prefs.SetBoardSkin("lava"))
	assert.Equal(t, DefaultTheme, w.Prefs.Theme().ID)

	assert.True(t, w.Prefs.SetBoardSkin("galaxy"))
	assert.Equal(t, "galaxy", w.Prefs.Get().BoardSkin)
}

func TestPrefsFallBackOnStaleValues(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(testOptions(BackendDiskv, dir))
	require.NoError(t, err)
	require.NoError(t, w.Backend().Write("preferences", []byte(`{"theme":"retired","boardSkin":"ocean"}`)))
	require.NoError(t, w.Close())

	w, err = Open(testOptions(BackendDiskv, dir))
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, DefaultTheme, w.Prefs.Get().Theme)
	assert.Equal(t, "ocean", w.Prefs.Get().BoardSkin)
}

func TestThemeCatalogue(t *testing.T) {
	seen := map[string]bool{}
	for _, th := range Themes {
		assert.False(t, seen[th.ID], "duplicate theme %s", th.ID)
		seen[th.ID] = true
		assert.NotEmpty(t, th.Colors.BoardBackground)
	}
	_, ok := LookupTheme(DefaultTheme)
	assert.True(t, ok)
	_, ok = LookupSkin(DefaultSkin)
	assert.True(t, ok)
}
