package store

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestDisk(t *testing.T) *DiskStore {
	t.Helper()
	s, err := NewDisk(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	return s
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/corkboard.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Write(KeyNotes, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: no re-migration, data kept.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	data, err := s2.Read(KeyNotes)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected [], got %q", data)
	}
}

func TestBackendsAreInspectors(t *testing.T) {
	var _ Inspector = newTestStore(t)
	var _ Inspector = newTestDisk(t)
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Documents
// ============================================================

func TestReadMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Read("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.Write("k", []byte(`[1,2,3]`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Write("k", []byte(`[4]`)); err != nil {
		t.Fatal(err)
	}
	data, err := s.Read("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[4]" {
		t.Fatalf("expected [4], got %q", data)
	}
	if _, err := s.UpdatedAt("k"); err != nil {
		t.Fatalf("updated_at: %v", err)
	}
}

func TestKeys(t *testing.T) {
	s := newTestStore(t)
	for _, k := range []string{KeyTransactions, KeyNotes, KeyEvents} {
		if err := s.Write(k, []byte(`[]`)); err != nil {
			t.Fatal(err)
		}
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{KeyEvents, KeyNotes, KeyTransactions}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
}

func TestDiskStoreReadWrite(t *testing.T) {
	s := newTestDisk(t)
	if _, err := s.Read(KeyEvents); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Write(KeyEvents, []byte(`[{"id":1}]`)); err != nil {
		t.Fatal(err)
	}
	data, err := s.Read(KeyEvents)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[{"id":1}]` {
		t.Fatalf("unexpected data %q", data)
	}
	if keys, _ := s.Keys(); len(keys) != 1 || keys[0] != KeyEvents {
		t.Fatalf("unexpected keys %v", keys)
	}
	if _, err := s.UpdatedAt(KeyEvents); err != nil {
		t.Fatalf("updated_at: %v", err)
	}
	if _, err := s.UpdatedAt(KeyNotes); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Load / Save
// ============================================================

type sample struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestLoadSaveRoundTrip(t *testing.T) {
	backends := map[string]Backend{
		"sqlite": newTestStore(t),
		"diskv":  newTestDisk(t),
	}
	for name, b := range backends {
		t.Run(name, func(t *testing.T) {
			in := []sample{{ID: 3, Title: "c"}, {ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
			Save(b, KeyNotes, in, discard())

			out := Load(b, KeyNotes, []sample{}, discard())
			if !reflect.DeepEqual(in, out) {
				t.Fatalf("round trip mismatch: %v vs %v", in, out)
			}
		})
	}
}

func TestLoadMissingReturnsDefault(t *testing.T) {
	s := newTestStore(t)
	def := []sample{{ID: 9, Title: "seed"}}
	got := Load(s, KeyNotes, def, discard())
	if !reflect.DeepEqual(got, def) {
		t.Fatalf("expected default, got %v", got)
	}
}

func TestLoadCorruptReturnsDefault(t *testing.T) {
	s := newTestStore(t)
	if err := s.Write(KeyNotes, []byte(`{not json`)); err != nil {
		t.Fatal(err)
	}
	got := Load(s, KeyNotes, []sample{}, discard())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty default, got %v", got)
	}
}

func TestSaveOnClosedStoreDoesNotPanic(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	Save(s, KeyNotes, []sample{{ID: 1}}, discard())
}
