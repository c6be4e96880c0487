package notes

import (
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/sadopc/corkboard/internal/ids"
	"github.com/sadopc/corkboard/internal/store"
)

// Palette is the fixed set of light colors a new note is painted with.
var Palette = []string{
	"#ffcdd2", "#f8bbd0", "#e1bee7", "#d1c4e9", "#c5cae9", "#bbdefb",
	"#b3e5fc", "#b2dfdb", "#c8e6c9", "#dcedc8", "#f0f4c3", "#fff9c4",
	"#ffecb3", "#ffe0b2", "#ffccbc", "#d7ccc8", "#f5f5f5", "#cfd8dc",
}

// Draft is the caller-supplied part of a new note.
type Draft struct {
	Type   Variant
	Title  string
	Items  []Item
	Habits []Habit
	Tasks  []Task
}

// Patch names the top-level attributes to replace. Nil fields are left alone.
type Patch struct {
	Title  *string
	Color  *string
	Items  *[]Item
	Habits *[]Habit
	Tasks  *[]Task
}

func SetTitle(title string) Patch { return Patch{Title: &title} }
func SetColor(color string) Patch { return Patch{Color: &color} }

type Option func(*Manager)

func WithGenerator(g ids.Generator) Option {
	return func(m *Manager) { m.ids = g }
}

// WithRand sets the source used to pick note colors.
func WithRand(r *rand.Rand) Option {
	return func(m *Manager) { m.pick = r.IntN }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// Manager owns the ordered note collection. Every mutation is written
// through to the backend before it returns. Not safe for concurrent use.
type Manager struct {
	backend store.Backend
	ids     ids.Generator
	pick    func(n int) int
	log     *slog.Logger

	notes    []Note
	revision uint64
	onRemove []func(Note)
}

// NewManager loads the notes document from b, seeding the default board
// when nothing usable is stored.
func NewManager(b store.Backend, opts ...Option) *Manager {
	m := &Manager{
		backend: b,
		ids:     ids.NewClock(nil),
		pick:    rand.IntN,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	loaded := store.Load(b, store.KeyNotes, DefaultNotes(), m.log)
	m.notes = make([]Note, 0, len(loaded))
	for _, n := range loaded {
		if !n.Type.Valid() {
			m.log.Warn("dropping note with unknown type", "id", n.ID, "type", n.Type)
			continue
		}
		m.notes = append(m.notes, n.normalize())
	}
	if c, ok := m.ids.(*ids.Clock); ok {
		for _, n := range m.notes {
			c.Observe(n.ID)
		}
	}
	return m
}

// NextID issues an id for a new sub-entry.
func (m *Manager) NextID() int64 {
	return m.ids.Next()
}

// Revision changes every time the collection does.
func (m *Manager) Revision() uint64 {
	return m.revision
}

// OnRemove registers fn to be called with every note that gets removed.
func (m *Manager) OnRemove(fn func(Note)) {
	m.onRemove = append(m.onRemove, fn)
}

// List returns a copy of the notes in display order.
func (m *Manager) List() []Note {
	out := make([]Note, len(m.notes))
	for i, n := range m.notes {
		out[i] = n.clone()
	}
	return out
}

func (m *Manager) Get(id int64) (Note, bool) {
	i := m.index(id)
	if i < 0 {
		return Note{}, false
	}
	return m.notes[i].clone(), true
}

func (m *Manager) Len() int { return len(m.notes) }

// Add appends a new note with a fresh id and a random palette color.
func (m *Manager) Add(d Draft) (Note, bool) {
	if !d.Type.Valid() {
		m.log.Debug("rejecting note with unknown type", "type", d.Type)
		return Note{}, false
	}
	n := Note{
		ID:     m.ids.Next(),
		Type:   d.Type,
		Title:  d.Title,
		Color:  Palette[m.pick(len(Palette))],
		Items:  slices.Clone(d.Items),
		Habits: slices.Clone(d.Habits),
		Tasks:  slices.Clone(d.Tasks),
	}.normalize()

	m.notes = append(m.notes, n)
	m.changed()
	m.log.Info("note added", "id", n.ID, "type", n.Type)
	return n.clone(), true
}

// Update merges p into the note. Sub-collections that do not belong to the
// note's variant are ignored.
func (m *Manager) Update(id int64, p Patch) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	n := m.notes[i]
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	switch n.Type {
	case VariantChecklist:
		if p.Items != nil {
			n.Items = nonNil(slices.Clone(*p.Items))
		}
	case VariantHabit:
		if p.Habits != nil {
			n.Habits = nonNil(slices.Clone(*p.Habits))
		}
	case VariantLongTerm:
		if p.Tasks != nil {
			n.Tasks = nonNil(slices.Clone(*p.Tasks))
		}
	}
	m.notes[i] = n
	m.changed()
	return true
}

// Remove deletes the note and notifies OnRemove subscribers.
func (m *Manager) Remove(id int64) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	removed := m.notes[i]
	m.notes = slices.Delete(m.notes, i, i+1)
	m.changed()
	m.log.Info("note removed", "id", id)

	for _, fn := range m.onRemove {
		fn(removed.clone())
	}
	return true
}

// move splices the note at from into position to.
func (m *Manager) move(from, to int) {
	n := m.notes[from]
	m.notes = slices.Delete(m.notes, from, from+1)
	m.notes = slices.Insert(m.notes, to, n)
	m.changed()
}

func (m *Manager) index(id int64) int {
	return slices.IndexFunc(m.notes, func(n Note) bool { return n.ID == id })
}

func (m *Manager) changed() {
	m.revision++
	store.Save(m.backend, store.KeyNotes, m.notes, m.log)
}
