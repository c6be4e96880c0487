package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the ISO day format used for every stored date.
const DateLayout = "2006-01-02"

// DefaultColor is used when an event is saved without one.
const DefaultColor = "#1e88e5"

// EventPalette holds the colors offered by the day editor.
var EventPalette = []string{
	"#d32f2f", "#c2185b", "#7b1fa2", "#512da8", "#303f9f",
	"#1976d2", "#0288d1", "#0097a7", "#00796b", "#388e3c",
	"#689f38", "#afb42b", "#fbc02d", "#ffa000", "#f57c00",
	"#e64a19", "#5d4037", "#616161", "#455a64",
}

type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurNone, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

// Repeats reports whether r is a real recurrence rule.
func (r Recurrence) Repeats() bool {
	return r == RecurWeekly || r == RecurMonthly
}

// Event annotates one day, a span of days, or a recurring day.
type Event struct {
	ID          int64      `json:"id"`
	Date        string     `json:"date"`
	EndDate     string     `json:"endDate,omitempty"`
	Recurring   Recurrence `json:"recurring"`
	Color       string     `json:"color"`
	Description string     `json:"description"`
}

// IsSpan reports whether the event covers more than its start day.
func (e Event) IsSpan() bool {
	return e.EndDate != "" && e.EndDate != e.Date
}

// Match is the event resolved for a particular day.
type Match struct {
	Event
	MultiDay  bool
	SpanStart bool
	Recurring bool
}

// ParseDay parses an ISO day string as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// Day truncates t to its calendar day, keeping the wall-clock date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Key formats t as an ISO day string.
func Key(t time.Time) string {
	return t.Format(DateLayout)
}
