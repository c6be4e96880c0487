package finance

import (
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
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

// WithClock sets the source of "today" used for default dates.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Draft is the raw input of the add form. Empty Date, Type and Category
// fall back to today, debit and food.
type Draft struct {
	Title    string
	Amount   string
	Date     string
	Type     Kind
	Category Category
}

// Manager owns the transaction list. Not safe for concurrent use.
type Manager struct {
	backend store.Backend
	ids     ids.Generator
	log     *slog.Logger
	now     func() time.Time

	txs []Transaction
}

func NewManager(b store.Backend, opts ...Option) *Manager {
	m := &Manager{
		backend: b,
		ids:     ids.NewClock(nil),
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.txs = store.Load(b, store.KeyTransactions, []Transaction{}, m.log)
	if c, ok := m.ids.(*ids.Clock); ok {
		for _, t := range m.txs {
			c.Observe(t.ID)
		}
	}
	return m
}

func (m *Manager) List() []Transaction {
	return slices.Clone(m.txs)
}

func (m *Manager) Get(id int64) (Transaction, bool) {
	i := m.index(id)
	if i < 0 {
		return Transaction{}, false
	}
	return m.txs[i], true
}

// Add appends a transaction built from d. Nothing is stored when the title
// is blank or the amount is not a finite non-negative number.
func (m *Manager) Add(d Draft) (Transaction, bool) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		m.log.Debug("rejecting transaction", "reason", "empty title")
		return Transaction{}, false
	}
	amount, err := ParseAmount(d.Amount)
	if err != nil {
		m.log.Debug("rejecting transaction", "err", err)
		return Transaction{}, false
	}

	t := Transaction{
		Title:    title,
		Amount:   amount,
		Date:     d.Date,
		Type:     d.Type,
		Category: d.Category,
	}
	if t.Date == "" {
		t.Date = m.now().Format(DateLayout)
	}
	if t.Type == "" {
		t.Type = Debit
	}
	if t.Category == "" {
		t.Category = Food
	}
	if _, ok := t.Day(); !ok || !t.Type.Valid() || !t.Category.Valid() {
		m.log.Debug("rejecting transaction", "date", t.Date, "type", t.Type, "category", t.Category)
		return Transaction{}, false
	}

	t.ID = m.ids.Next()
	m.txs = append(m.txs, t)
	m.save()
	m.log.Info("transaction added", "id", t.ID, "type", t.Type, "amount", t.Amount)
	return t, true
}

func (m *Manager) Remove(id int64) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.txs = slices.Delete(m.txs, i, i+1)
	m.save()
	m.log.Info("transaction removed", "id", id)
	return true
}

// ParseAmount accepts a plain decimal amount such as "12.50".
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func (m *Manager) index(id int64) int {
	return slices.IndexFunc(m.txs, func(t Transaction) bool { return t.ID == id })
}

func (m *Manager) save() {
	store.Save(m.backend, store.KeyTransactions, m.txs, m.log)
}
