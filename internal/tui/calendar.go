package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/corkboard/internal/calendar"
	"github.com/sadopc/corkboard/internal/workspace"
)

type calendarModel struct {
	ws     *workspace.Workspace
	now    func() time.Time
	width  int
	height int

	cursor time.Time
	cells  map[string]calendar.Cell

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	desc  *string
	end   *string
	recur *string
	color *string
}

func newCalendarModel(ws *workspace.Workspace, now func() time.Time) calendarModel {
	desc, end, recur, color := "", "", string(calendar.RecurNone), calendar.DefaultColor
	c := calendarModel{
		ws:     ws,
		now:    now,
		cursor: calendar.Day(now()),
		desc:   &desc,
		end:    &end,
		recur:  &recur,
		color:  &color,
	}
	return c.reload()
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

// reload resolves every day of the visible grid, including the spill-over
// days of the neighbouring months.
func (c calendarModel) reload() calendarModel {
	c.cells = make(map[string]calendar.Cell)
	first, last := gridBounds(c.cursor)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		m, ok := c.ws.Events.Resolve(d)
		c.cells[calendar.Key(d)] = calendar.Cell{Day: d, Match: m, Has: ok}
	}
	return c
}

// gridBounds returns the Sunday before the first of the month and the
// Saturday after its last day.
func gridBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
	return start, end
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	month := c.cursor.Month()
	switch {
	case key.Matches(km, keys.Left):
		c.cursor = c.cursor.AddDate(0, 0, -1)
	case key.Matches(km, keys.Right):
		c.cursor = c.cursor.AddDate(0, 0, 1)
	case key.Matches(km, keys.Up):
		c.cursor = c.cursor.AddDate(0, 0, -7)
	case key.Matches(km, keys.Down):
		c.cursor = c.cursor.AddDate(0, 0, 7)
	case key.Matches(km, keys.PrevMonth):
		c.cursor = shiftMonth(c.cursor, -1)
	case key.Matches(km, keys.NextMonth):
		c.cursor = shiftMonth(c.cursor, 1)
	case key.Matches(km, keys.Today):
		c.cursor = calendar.Day(c.now())
	case key.Matches(km, keys.Enter), key.Matches(km, keys.Edit), key.Matches(km, keys.New):
		return c.showForm()
	case key.Matches(km, keys.Delete):
		e, ok := c.ws.Events.ForDay(c.cursor)
		if !ok {
			return c, statusCmd(status("Nothing stored on %s", calendar.Key(c.cursor)))
		}
		c.ws.Events.Remove(e.ID)
		return c.reload(), statusCmd(status("Removed event on %s", e.Date))
	default:
		return c, nil
	}
	if c.cursor.Month() != month {
		c = c.reload()
	}
	return c, nil
}

// shiftMonth moves t by n months, clamping the day to the target month.
func shiftMonth(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), last)-1)
}

func (c calendarModel) showForm() (calendarModel, tea.Cmd) {
	*c.desc, *c.end = "", ""
	*c.recur = string(calendar.RecurNone)
	*c.color = calendar.DefaultColor
	if e, ok := c.ws.Events.ForDay(c.cursor); ok {
		*c.desc, *c.end = e.Description, e.EndDate
		*c.recur = string(e.Recurring)
		*c.color = e.Color
	}

	day := c.cursor
	colors := make([]huh.Option[string], len(calendar.EventPalette))
	for i, hex := range calendar.EventPalette {
		colors[i] = huh.NewOption(fmt.Sprintf("%s %s", dot(hex), hex), hex)
	}
	if !containsColor(calendar.EventPalette, *c.color) {
		colors = append([]huh.Option[string]{huh.NewOption(fmt.Sprintf("%s %s", dot(*c.color), *c.color), *c.color)}, colors...)
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Description").Lines(3).Value(c.desc),
			huh.NewInput().
				Title("Ends on").
				Placeholder("YYYY-MM-DD, blank for a single day").
				Value(c.end).
				Validate(func(s string) error { return validateEnd(day, s) }),
			huh.NewSelect[string]().Title("Repeats").
				Options(
					huh.NewOption("Never", string(calendar.RecurNone)),
					huh.NewOption("Weekly", string(calendar.RecurWeekly)),
					huh.NewOption("Monthly", string(calendar.RecurMonthly)),
				).Value(c.recur),
			huh.NewSelect[string]().Title("Color").Options(colors...).Value(c.color),
		).Title(day.Format("Monday, January 2, 2006")),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func containsColor(palette []string, hex string) bool {
	for _, p := range palette {
		if strings.EqualFold(p, hex) {
			return true
		}
	}
	return false
}

func validateEnd(day time.Time, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	end, err := calendar.ParseDay(s)
	if err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	if end.Before(day) {
		return errors.New("end date is before the day")
	}
	return nil
}

func (c calendarModel) updateForm(msg tea.Msg) (calendarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		c.form = nil
		_, ok := c.ws.Events.SaveDay(c.cursor, calendar.Details{
			EndDate:     strings.TrimSpace(*c.end),
			Recurring:   calendar.Recurrence(*c.recur),
			Color:       *c.color,
			Description: strings.TrimSpace(*c.desc),
		})
		if !ok {
			return c, statusCmd(statusMsg{text: "Could not save the event", isError: true})
		}
		return c.reload(), statusCmd(status("Saved %s", calendar.Key(c.cursor)))
	}

	return c, cmd
}

func (c calendarModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Day"), "", c.form.View()),
		)
	}

	cellW := max(6, (w-4)/7)
	cellH := max(2, (c.height-10)/6)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(c.cursor.Format("January 2006")),
		mutedStyle.Render("  [/]: month  .: today  enter: edit day  d: clear day"),
	)

	var weekdays []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekdays = append(weekdays, lipgloss.NewStyle().Width(cellW).Foreground(colorMuted).Render(d.String()[:3]))
	}

	rows := []string{header, "", lipgloss.JoinHorizontal(lipgloss.Top, weekdays...)}

	first, last := gridBounds(c.cursor)
	today := calendar.Key(c.now())
	var week []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		week = append(week, c.renderCell(d, cellW, cellH, calendar.Key(d) == today))
		if d.Weekday() == time.Saturday {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
			week = nil
		}
	}

	rows = append(rows, "", c.renderSelected(w))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (c calendarModel) renderCell(d time.Time, w, h int, today bool) string {
	cell := c.cells[calendar.Key(d)]
	style := lipgloss.NewStyle().Width(w).Height(h)

	num := fmt.Sprintf("%2d", d.Day())
	switch {
	case d.Equal(c.cursor):
		num = lipgloss.NewStyle().Reverse(true).Bold(true).Render(num)
	case today:
		num = highlightStyle.Render(num)
	case d.Month() != c.cursor.Month():
		num = mutedStyle.Render(num)
	}

	lines := []string{num}
	if cell.Has {
		m := cell.Match
		text := m.Description
		switch {
		case m.Recurring:
			text = "↻ " + text
		case m.MultiDay && !m.SpanStart:
			text = "┄ " + text
		}
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color)).Render(truncate(text, w-1))
		if d.Month() != c.cursor.Month() {
			label = mutedStyle.Render(truncate(text, w-1))
		}
		lines = append(lines, label)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (c calendarModel) renderSelected(w int) string {
	title := subtitleStyle.Render(c.cursor.Format("Monday, January 2"))
	cell, ok := c.cells[calendar.Key(c.cursor)]
	if !ok || !cell.Has {
		return title + mutedStyle.Render("  nothing planned")
	}

	m := cell.Match
	var info []string
	switch {
	case m.Recurring:
		info = append(info, fmt.Sprintf("repeats %s since %s", m.Event.Recurring, m.Date))
	case m.MultiDay:
		info = append(info, fmt.Sprintf("%s → %s", m.Date, m.EndDate))
	}
	desc := m.Description
	if desc == "" {
		desc = "(no description)"
	}
	line := dot(m.Color) + " " + truncate(desc, w-8)
	if len(info) > 0 {
		line += mutedStyle.Render("  " + strings.Join(info, ", "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, line)
}
