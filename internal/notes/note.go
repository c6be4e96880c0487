package notes

import (
	"encoding/json"
	"slices"
)

// Variant discriminates the three kinds of board notes.
type Variant string

const (
	VariantChecklist Variant = "checklist"
	VariantHabit     Variant = "habit"
	VariantLongTerm  Variant = "longterm"
)

var Variants = []Variant{VariantChecklist, VariantHabit, VariantLongTerm}

func (v Variant) Valid() bool {
	switch v {
	case VariantChecklist, VariantHabit, VariantLongTerm:
		return true
	}
	return false
}

// Label is the human name shown when picking a variant.
func (v Variant) Label() string {
	switch v {
	case VariantChecklist:
		return "Checklist"
	case VariantHabit:
		return "Habit Tracker"
	case VariantLongTerm:
		return "Long Term"
	}
	return string(v)
}

// Status is the state of one habit cell.
type Status uint8

const (
	StatusNone Status = iota
	StatusMissed
	StatusDone
	StatusPartial
)

const statusCount = 4

// Next advances the cell, wrapping from the last status back to none.
func (s Status) Next() Status {
	return (s + 1) % statusCount
}

// Symbol is the one-character rendering of a cell.
func (s Status) Symbol() string {
	switch s {
	case StatusMissed:
		return "x"
	case StatusDone:
		return "o"
	case StatusPartial:
		return "~"
	}
	return "."
}

// Color is the cell fill, empty for StatusNone.
func (s Status) Color() string {
	switch s {
	case StatusMissed:
		return "#ef5350"
	case StatusDone:
		return "#66bb6a"
	case StatusPartial:
		return "#fdd835"
	}
	return ""
}

// Weekdays labels the habit columns.
var Weekdays = [DaysPerWeek]string{"M", "T", "W", "T", "F", "S", "S"}

// DaysPerWeek is the fixed width of a habit row, Monday first.
const DaysPerWeek = 7

type Item struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type Habit struct {
	ID   int64               `json:"id"`
	Text string              `json:"text"`
	Days [DaysPerWeek]Status `json:"days"`
}

type Task struct {
	ID          int64  `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

// Note is a board widget. Only the sub-collection matching Type is used;
// the others stay nil.
type Note struct {
	ID     int64
	Type   Variant
	Title  string
	Color  string
	Items  []Item
	Habits []Habit
	Tasks  []Task
}

// Len reports how many sub-entries the note holds.
func (n Note) Len() int {
	switch n.Type {
	case VariantChecklist:
		return len(n.Items)
	case VariantHabit:
		return len(n.Habits)
	case VariantLongTerm:
		return len(n.Tasks)
	}
	return 0
}

// normalize drops foreign sub-collections and turns a nil variant
// collection into an empty one.
func (n Note) normalize() Note {
	items, habits, tasks := n.Items, n.Habits, n.Tasks
	n.Items, n.Habits, n.Tasks = nil, nil, nil
	switch n.Type {
	case VariantChecklist:
		n.Items = nonNil(items)
	case VariantHabit:
		n.Habits = nonNil(habits)
	case VariantLongTerm:
		n.Tasks = nonNil(tasks)
	}
	return n
}

func (n Note) clone() Note {
	n.Items = slices.Clone(n.Items)
	n.Habits = slices.Clone(n.Habits)
	n.Tasks = slices.Clone(n.Tasks)
	return n.normalize()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type noteJSON struct {
	ID     int64    `json:"id"`
	Type   Variant  `json:"type"`
	Title  string   `json:"title"`
	Color  string   `json:"color"`
	Items  *[]Item  `json:"items,omitempty"`
	Habits *[]Habit `json:"habits,omitempty"`
	Tasks  *[]Task  `json:"tasks,omitempty"`
}

// MarshalJSON writes only the variant's own collection, always as an array.
func (n Note) MarshalJSON() ([]byte, error) {
	n = n.normalize()
	out := noteJSON{ID: n.ID, Type: n.Type, Title: n.Title, Color: n.Color}
	switch n.Type {
	case VariantChecklist:
		out.Items = &n.Items
	case VariantHabit:
		out.Habits = &n.Habits
	case VariantLongTerm:
		out.Tasks = &n.Tasks
	}
	return json.Marshal(out)
}

func (n *Note) UnmarshalJSON(data []byte) error {
	var in noteJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*n = Note{ID: in.ID, Type: in.Type, Title: in.Title, Color: in.Color}
	if in.Items != nil {
		n.Items = *in.Items
	}
	if in.Habits != nil {
		n.Habits = *in.Habits
	}
	if in.Tasks != nil {
		n.Tasks = *in.Tasks
	}
	*n = n.normalize()
	return nil
}
