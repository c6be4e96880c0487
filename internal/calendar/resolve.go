package calendar

import "time"

// Resolve picks the event to show for day. First match wins:
//
//  1. an event dated exactly on day;
//  2. a span event whose [Date, EndDate] interval contains day;
//  3. a weekly or monthly event whose rule lands on day, on or after its
//     origin date.
//
// Within each step events are scanned in collection order. When several
// recurring events land on the same day the earliest in the collection wins.
func (m *Manager) Resolve(day time.Time) (Match, bool) {
	day = Day(day)
	key := Key(day)

	for _, e := range m.events {
		if e.Date == key {
			span := e.IsSpan()
			return Match{Event: e, MultiDay: span, SpanStart: span}, true
		}
	}

	for _, e := range m.events {
		if !e.IsSpan() {
			continue
		}
		start, err := ParseDay(e.Date)
		if err != nil {
			continue
		}
		end, err := ParseDay(e.EndDate)
		if err != nil {
			continue
		}
		if !day.Before(start) && !day.After(end) {
			return Match{Event: e, MultiDay: true, SpanStart: day.Equal(start)}, true
		}
	}

	for _, e := range m.events {
		if !e.Recurring.Repeats() {
			continue
		}
		start, err := ParseDay(e.Date)
		if err != nil || day.Before(start) {
			continue
		}
		switch e.Recurring {
		case RecurWeekly:
			if day.Weekday() == start.Weekday() {
				return Match{Event: e, Recurring: true}, true
			}
		case RecurMonthly:
			if day.Day() == start.Day() {
				return Match{Event: e, Recurring: true}, true
			}
		}
	}
	return Match{}, false
}

// Cell is one day of a month grid.
type Cell struct {
	Day   time.Time
	Match Match
	Has   bool
}

// Month resolves every day of the given month.
func (m *Manager) Month(year int, month time.Month) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var cells []Cell
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		match, ok := m.Resolve(d)
		cells = append(cells, Cell{Day: d, Match: match, Has: ok})
	}
	return cells
}
