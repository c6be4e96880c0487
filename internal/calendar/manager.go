package calendar

import (
	"log/slog"
	"slices"
	"time"

	"github.com/sadopc/corkboard/internal/ids"
	"github.com/sadopc/corkboard/internal/store"
)

type Option func(*Manager)

func WithGenerator(g ids.Generator) Option {
	return func(m *Manager) { m.ids = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// Patch names the event fields to replace. Nil fields are left alone.
type Patch struct {
	Date        *string
	EndDate     *string
	Recurring   *Recurrence
	Color       *string
	Description *string
}

// Details is what the day editor submits.
type Details struct {
	EndDate     string
	Recurring   Recurrence
	Color       string
	Description string
}

// Manager owns the calendar annotations. Not safe for concurrent use.
type Manager struct {
	backend store.Backend
	ids     ids.Generator
	log     *slog.Logger

	events []Event
}

func NewManager(b store.Backend, opts ...Option) *Manager {
	m := &Manager{
		backend: b,
		ids:     ids.NewClock(nil),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.events = store.Load(b, store.KeyEvents, []Event{}, m.log)
	for i := range m.events {
		if m.events[i].Recurring == "" {
			m.events[i].Recurring = RecurNone
		}
	}
	if c, ok := m.ids.(*ids.Clock); ok {
		for _, e := range m.events {
			c.Observe(e.ID)
		}
	}
	return m
}

// List returns a copy of the events in collection order.
func (m *Manager) List() []Event {
	return slices.Clone(m.events)
}

func (m *Manager) Get(id int64) (Event, bool) {
	i := m.index(id)
	if i < 0 {
		return Event{}, false
	}
	return m.events[i], true
}

// Add stores a new event with a fresh id. Events without a parseable date,
// with a malformed end date or an unknown recurrence are rejected.
func (m *Manager) Add(e Event) (Event, bool) {
	if e.Recurring == "" {
		e.Recurring = RecurNone
	}
	if e.Color == "" {
		e.Color = DefaultColor
	}
	if !m.valid(e) {
		return Event{}, false
	}
	e.ID = m.ids.Next()
	m.events = append(m.events, e)
	m.save()
	m.log.Info("event added", "id", e.ID, "date", e.Date)
	return e, true
}

func (m *Manager) Update(id int64, p Patch) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	e := m.events[i]
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.Recurring != nil {
		e.Recurring = *p.Recurring
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if !m.valid(e) {
		return false
	}
	m.events[i] = e
	m.save()
	return true
}

func (m *Manager) Remove(id int64) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.events = slices.Delete(m.events, i, i+1)
	m.save()
	m.log.Info("event removed", "id", id)
	return true
}

// ForDay returns the event stored on exactly this date, if any. The day
// editor is prefilled from it.
func (m *Manager) ForDay(day time.Time) (Event, bool) {
	key := Key(day)
	for _, e := range m.events {
		if e.Date == key {
			return e, true
		}
	}
	return Event{}, false
}

// SaveDay applies an edit made on a calendar day. An existing non-recurring
// event dated exactly on that day is updated in place; anything else,
// including a day only covered by a span or a recurrence, gets a new
// standalone event.
func (m *Manager) SaveDay(day time.Time, d Details) (Event, bool) {
	if d.Recurring == "" {
		d.Recurring = RecurNone
	}
	if d.Color == "" {
		d.Color = DefaultColor
	}
	key := Key(day)
	for _, e := range m.events {
		if e.Date == key && !e.Recurring.Repeats() {
			ok := m.Update(e.ID, Patch{
				EndDate:     &d.EndDate,
				Recurring:   &d.Recurring,
				Color:       &d.Color,
				Description: &d.Description,
			})
			if !ok {
				return Event{}, false
			}
			return m.Get(e.ID)
		}
	}
	return m.Add(Event{
		Date:        key,
		EndDate:     d.EndDate,
		Recurring:   d.Recurring,
		Color:       d.Color,
		Description: d.Description,
	})
}

func (m *Manager) valid(e Event) bool {
	if _, err := ParseDay(e.Date); err != nil {
		m.log.Debug("rejecting event", "err", err)
		return false
	}
	if e.EndDate != "" {
		if _, err := ParseDay(e.EndDate); err != nil {
			m.log.Debug("rejecting event", "err", err)
			return false
		}
	}
	if !e.Recurring.Valid() {
		m.log.Debug("rejecting event", "recurring", e.Recurring)
		return false
	}
	return true
}

func (m *Manager) index(id int64) int {
	return slices.IndexFunc(m.events, func(e Event) bool { return e.ID == id })
}

func (m *Manager) save() {
	store.Save(m.backend, store.KeyEvents, m.events, m.log)
}
