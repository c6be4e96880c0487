// Package workspace wires the storage backend and the collection managers
// into one session.
package workspace

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/sadopc/corkboard/internal/calendar"
	"github.com/sadopc/corkboard/internal/finance"
	"github.com/sadopc/corkboard/internal/ids"
	"github.com/sadopc/corkboard/internal/notes"
	"github.com/sadopc/corkboard/internal/store"
)

// Backend kinds accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

type Options struct {
	// Backend is used as is when set; otherwise Kind and DataDir select one.
	Backend store.Backend
	Kind    string
	DataDir string

	Generator ids.Generator
	Rand      *rand.Rand
	Clock     func() time.Time
	Logger    *slog.Logger
}

type Workspace struct {
	backend store.Backend

	Notes   *notes.Manager
	Reorder *notes.Reorderer
	Events  *calendar.Manager
	Finance *finance.Manager
	Prefs   *Prefs
}

// OpenBackend creates the storage backend of the given kind under dataDir.
func OpenBackend(kind, dataDir string) (store.Backend, error) {
	switch kind {
	case "", BackendSQLite:
		s, err := store.New(filepath.Join(dataDir, "corkboard.db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendDiskv:
		d, err := store.NewDisk(filepath.Join(dataDir, "documents"))
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
}

// Open loads every collection from the configured backend. All managers
// share one id generator so ids stay unique across collections.
func Open(opts Options) (*Workspace, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	gen := opts.Generator
	if gen == nil {
		gen = ids.NewClock(clock)
	}

	b := opts.Backend
	if b == nil {
		var err error
		b, err = OpenBackend(opts.Kind, opts.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open backend: %w", err)
		}
	}

	noteOpts := []notes.Option{
		notes.WithGenerator(gen),
		notes.WithLogger(log.With("component", "notes")),
	}
	if opts.Rand != nil {
		noteOpts = append(noteOpts, notes.WithRand(opts.Rand))
	}
	nm := notes.NewManager(b, noteOpts...)

	w := &Workspace{
		backend: b,
		Notes:   nm,
		Reorder: notes.NewReorderer(nm),
		Events: calendar.NewManager(b,
			calendar.WithGenerator(gen),
			calendar.WithLogger(log.With("component", "calendar")),
		),
		Finance: finance.NewManager(b,
			finance.WithGenerator(gen),
			finance.WithClock(clock),
			finance.WithLogger(log.With("component", "finance")),
		),
		Prefs: loadPrefs(b, log.With("component", "prefs")),
	}
	log.Debug("workspace opened", "notes", nm.Len())
	return w, nil
}

func (w *Workspace) Backend() store.Backend { return w.backend }

func (w *Workspace) Close() error {
	return w.backend.Close()
}
