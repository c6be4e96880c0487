package tui

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/corkboard/internal/calendar"
	"github.com/sadopc/corkboard/internal/finance"
	"github.com/sadopc/corkboard/internal/ids"
	"github.com/sadopc/corkboard/internal/notes"
	"github.com/sadopc/corkboard/internal/store"
	"github.com/sadopc/corkboard/internal/workspace"
)

var fixedNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

func clockAt() time.Time { return fixedNow }

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	ws, err := workspace.Open(workspace.Options{
		Backend:   s,
		Generator: ids.NewSequence(100),
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Clock:     clockAt,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("open workspace: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func newTestApp(t *testing.T) App {
	t.Helper()
	a := newApp(newTestWorkspace(t), clockAt)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	spaceKey = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
	rightKey = tea.KeyMsg{Type: tea.KeyRight}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
)

func press(a App, msgs ...tea.Msg) App {
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func boardOrder(ws *workspace.Workspace) []int64 {
	var out []int64
	for _, n := range ws.Notes.List() {
		out = append(out, n.ID)
	}
	return out
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	if app.activeView != viewBoard {
		t.Fatal("default view should be the board")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app := newTestApp(t)

	for _, v := range []viewState{viewBoard, viewCalendar, viewFinance, viewSettings} {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppTabKeys(t *testing.T) {
	app := newTestApp(t)

	app = press(app, runes("2"))
	if app.activeView != viewCalendar {
		t.Fatalf("expected calendar, got %d", app.activeView)
	}
	app = press(app, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewSettings {
		t.Fatalf("expected settings, got %d", app.activeView)
	}
	app = press(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewBoard {
		t.Fatal("tab should wrap back to the board")
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app := newTestApp(t)

	header := app.renderHeader()
	if !strings.Contains(header, "corkboard") {
		t.Fatal("header missing title")
	}
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app := newApp(newTestWorkspace(t), clockAt)
	if out := app.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := newTestApp(t)
	app = press(app, statusMsg{text: "test status"})

	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppFilterSwallowsGlobalKeys(t *testing.T) {
	app := newTestApp(t)
	app = press(app, runes("/"), runes("q"), runes("2"))

	if app.activeView != viewBoard {
		t.Fatal("typing in the filter must not switch views")
	}
	if app.board.query != "q2" {
		t.Fatalf("query = %q, want q2", app.board.query)
	}
}

// ============================================================
// Board
// ============================================================

func TestBoardGrabAndDropReorders(t *testing.T) {
	app := newTestApp(t)
	ws := app.ws

	app = press(app, runes("g"))
	if app.board.mode != boardGrab || app.board.grabbed != 1 {
		t.Fatal("g should pick up the selected note")
	}
	app = press(app, rightKey, rightKey, runes("g"))

	if got := boardOrder(ws); !sameIDs(got, []int64{2, 3, 1}) {
		t.Fatalf("order = %v, want [2 3 1]", got)
	}
	if app.board.mode != boardBrowse {
		t.Fatal("drop should return to browsing")
	}
	if n, _ := app.board.selected(); n.ID != 1 {
		t.Fatalf("cursor should follow the moved note, on %d", n.ID)
	}
}

func TestBoardGrabCancel(t *testing.T) {
	app := newTestApp(t)
	before := boardOrder(app.ws)

	app = press(app, runes("g"), rightKey, escKey)

	if app.board.mode != boardBrowse || app.board.grabbed != 0 {
		t.Fatal("esc should cancel the move")
	}
	if !sameIDs(boardOrder(app.ws), before) {
		t.Fatal("cancelled move changed the order")
	}
}

func TestBoardDropOnSelfIsNoop(t *testing.T) {
	app := newTestApp(t)
	rev := app.ws.Notes.Revision()

	app = press(app, runes("g"), runes("g"))

	if app.ws.Notes.Revision() != rev {
		t.Fatal("dropping a note on itself should not touch the board")
	}
}

func TestBoardFilter(t *testing.T) {
	app := newTestApp(t)
	app = press(app, runes("/"), runes("h"), runes("a"), runes("b"))

	if len(app.board.visible) != 1 || app.board.visible[0].Title != "Weekly Habits" {
		t.Fatalf("filter kept %d notes", len(app.board.visible))
	}

	app = press(app, enterKey)
	if app.board.mode != boardBrowse || app.board.query != "hab" {
		t.Fatal("enter should keep the filter and return to browsing")
	}

	app = press(app, escKey)
	if app.board.query != "" || len(app.board.visible) != 3 {
		t.Fatal("esc should clear the filter")
	}
}

func TestBoardFilterKeepsBoardOrder(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.Notes.Add(notes.Draft{Type: notes.VariantChecklist, Title: "groceries list"})
	b := newBoardModel(ws)
	b.query = "l"
	b = b.reload()

	var prev = -1
	for _, n := range b.visible {
		i := 0
		for j, m := range b.all {
			if m.ID == n.ID {
				i = j
			}
		}
		if i < prev {
			t.Fatal("filtered notes must keep board order")
		}
		prev = i
	}
}

func TestBoardToggleChecklistItem(t *testing.T) {
	app := newTestApp(t)
	app = press(app, enterKey, spaceKey)

	if app.board.mode != boardDetail {
		t.Fatal("enter should open the note")
	}
	n, _ := app.ws.Notes.Get(1)
	if !n.Items[0].Checked {
		t.Fatal("space should check the first item")
	}

	app = press(app, downKey, spaceKey)
	n, _ = app.ws.Notes.Get(1)
	if !n.Items[1].Checked {
		t.Fatal("space should check the second item")
	}
}

func TestBoardCycleHabitDay(t *testing.T) {
	app := newTestApp(t)
	app = press(app, rightKey, enterKey, rightKey, rightKey, spaceKey, spaceKey)

	n, _ := app.ws.Notes.Get(2)
	if got := n.Habits[0].Days[2]; got != notes.StatusDone {
		t.Fatalf("day 2 = %v, want done", got)
	}
	if n.Habits[0].Days[0] != notes.StatusNone {
		t.Fatal("other days should be untouched")
	}
}

func TestBoardExpandTask(t *testing.T) {
	app := newTestApp(t)
	app = press(app, rightKey, rightKey, enterKey, downKey, spaceKey)

	if app.board.focus.expandedTask != 2 {
		t.Fatalf("expanded = %d, want 2", app.board.focus.expandedTask)
	}
	if !strings.Contains(app.View(), "Save $5000") {
		t.Fatal("expanded task should show its description")
	}

	app = press(app, runes("d"))
	if app.board.focus.expandedTask != 0 {
		t.Fatal("deleting the expanded task should collapse it")
	}
}

func TestBoardFocusClearedOnRemove(t *testing.T) {
	app := newTestApp(t)
	app = press(app, enterKey)
	if app.board.focus.noteID != 1 {
		t.Fatal("enter should focus the note")
	}

	app.ws.Notes.Remove(1)
	if app.board.focus.noteID != 0 {
		t.Fatal("removing the note should clear the focus")
	}
	app.board = app.board.reload()
	if app.board.mode != boardBrowse {
		t.Fatal("board should fall back to browsing")
	}
}

func TestBoardRendersEmptyState(t *testing.T) {
	app := newTestApp(t)
	for _, id := range boardOrder(app.ws) {
		app.ws.Notes.Remove(id)
	}
	app.board = app.board.reload()

	if !strings.Contains(app.View(), "The board is empty") {
		t.Fatal("empty board should say so")
	}
}

func TestBoardFormCapturesKeys(t *testing.T) {
	app := newTestApp(t)
	app = press(app, runes("n"))

	if !app.isFormActive() {
		t.Fatal("n should open the new note form")
	}
	app = press(app, runes("3"))
	if app.activeView != viewBoard {
		t.Fatal("keys should go to the form")
	}
	app = press(app, escKey)
	if app.isFormActive() {
		t.Fatal("esc should close the form")
	}
}

// ============================================================
// Calendar
// ============================================================

func TestGridBounds(t *testing.T) {
	start, end := gridBounds(fixedNow)
	if calendar.Key(start) != "2024-05-26" || calendar.Key(end) != "2024-07-06" {
		t.Fatalf("grid = %s..%s", calendar.Key(start), calendar.Key(end))
	}
	if start.Weekday() != time.Sunday || end.Weekday() != time.Saturday {
		t.Fatal("grid must run Sunday to Saturday")
	}
}

func TestShiftMonth(t *testing.T) {
	tests := []struct {
		from string
		n    int
		want string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-12-15", 1, "2025-01-15"},
		{"2024-01-10", -1, "2023-12-10"},
	}
	for _, tt := range tests {
		d, _ := calendar.ParseDay(tt.from)
		if got := calendar.Key(shiftMonth(d, tt.n)); got != tt.want {
			t.Errorf("shiftMonth(%s, %d) = %s, want %s", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestCalendarNavigation(t *testing.T) {
	c := newCalendarModel(newTestWorkspace(t), clockAt)

	c, _ = c.update(runes("["))
	if calendar.Key(c.cursor) != "2024-05-15" {
		t.Fatalf("cursor = %s", calendar.Key(c.cursor))
	}
	c, _ = c.update(runes("l"))
	c, _ = c.update(runes("j"))
	if calendar.Key(c.cursor) != "2024-05-23" {
		t.Fatalf("cursor = %s", calendar.Key(c.cursor))
	}
	c, _ = c.update(runes("."))
	if calendar.Key(c.cursor) != "2024-06-15" {
		t.Fatal(". should jump to today")
	}
}

func TestCalendarCellsResolveSpansAndRecurrences(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.Events.Add(calendar.Event{Date: "2024-06-10", EndDate: "2024-06-12", Description: "trip"})
	ws.Events.Add(calendar.Event{Date: "2024-06-03", Recurring: calendar.RecurWeekly, Description: "gym"})
	c := newCalendarModel(ws, clockAt)
	c.setSize(120, 36)

	cell := c.cells["2024-06-11"]
	if !cell.Has || cell.Match.Description != "trip" || !cell.Match.MultiDay {
		t.Fatalf("06-11 = %+v", cell)
	}
	cell = c.cells["2024-06-17"]
	if !cell.Has || !cell.Match.Recurring {
		t.Fatalf("06-17 = %+v", cell)
	}
	if cell, ok := c.cells["2024-07-01"]; !ok || !cell.Has {
		t.Fatal("spill-over days should be resolved too")
	}
	if !strings.Contains(c.view(), "June 2024") {
		t.Fatal("view should name the month")
	}
}

func TestCalendarDeleteRemovesExactEvent(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.Events.Add(calendar.Event{Date: "2024-06-15", Description: "today"})
	ws.Events.Add(calendar.Event{Date: "2024-06-01", Recurring: calendar.RecurWeekly, Description: "sat"})
	c := newCalendarModel(ws, clockAt)

	c, _ = c.update(runes("d"))
	if len(ws.Events.List()) != 1 {
		t.Fatal("d should remove the event stored on the day")
	}
	if !c.cells["2024-06-15"].Match.Recurring {
		t.Fatal("the recurrence should show through after the delete")
	}

	c, _ = c.update(runes("d"))
	if len(ws.Events.List()) != 1 {
		t.Fatal("d must not remove a recurrence from another day")
	}
}

func TestCalendarFormPrefill(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.Events.Add(calendar.Event{Date: "2024-06-15", EndDate: "2024-06-16", Color: "#00796b", Description: "hike"})
	c := newCalendarModel(ws, clockAt)

	c, _ = c.update(enterKey)
	if !c.formActive {
		t.Fatal("enter should open the day editor")
	}
	if *c.desc != "hike" || *c.end != "2024-06-16" || *c.color != "#00796b" {
		t.Fatalf("prefill = %q %q %q", *c.desc, *c.end, *c.color)
	}
}

func TestValidateEnd(t *testing.T) {
	day, _ := calendar.ParseDay("2024-06-15")
	tests := []struct {
		in string
		ok bool
	}{
		{"", true},
		{"  ", true},
		{"2024-06-15", true},
		{"2024-06-20", true},
		{"2024-06-14", false},
		{"06/20/2024", false},
	}
	for _, tt := range tests {
		if err := validateEnd(day, tt.in); (err == nil) != tt.ok {
			t.Errorf("validateEnd(%q) = %v", tt.in, err)
		}
	}
}

// ============================================================
// Finance
// ============================================================

func TestFinanceMonthList(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.Finance.Add(finance.Draft{Title: "lunch", Amount: "12.5", Date: "2024-06-03"})
	ws.Finance.Add(finance.Draft{Title: "salary", Amount: "100", Date: "2024-06-10", Type: finance.Credit})
	ws.Finance.Add(finance.Draft{Title: "old", Amount: "9", Date: "2024-05-30"})
	f := newFinanceModel(ws, clockAt)
	f.setSize(120, 36)

	if len(f.txs) != 2 || f.txs[0].Title != "salary" {
		t.Fatalf("june list = %+v", f.txs)
	}
	if f.summary.Balance != 87.5 {
		t.Fatalf("balance = %v", f.summary.Balance)
	}
	out := f.view()
	for _, want := range []string{"June 2024", "$12.50", "salary"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	f, _ = f.update(runes("["))
	if len(f.txs) != 1 || f.txs[0].Title != "old" {
		t.Fatal("previous month should list May")
	}
	f, _ = f.update(runes("."))
	if f.month.Month() != time.June {
		t.Fatal(". should return to the current month")
	}
}

func TestFinanceDelete(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.Finance.Add(finance.Draft{Title: "a", Amount: "1", Date: "2024-06-01"})
	ws.Finance.Add(finance.Draft{Title: "b", Amount: "2", Date: "2024-06-02"})
	f := newFinanceModel(ws, clockAt)

	f, _ = f.update(downKey)
	f, _ = f.update(runes("d"))

	left := ws.Finance.List()
	if len(left) != 1 || left[0].Title != "b" {
		t.Fatalf("left = %+v", left)
	}
	if f.cursor != 0 {
		t.Fatal("cursor should clamp after delete")
	}
}

func TestFinanceFormDefaults(t *testing.T) {
	f := newFinanceModel(newTestWorkspace(t), clockAt)
	f, _ = f.update(runes("n"))

	if !f.formActive {
		t.Fatal("n should open the form")
	}
	if *f.date != "2024-06-15" || *f.kind != string(finance.Debit) || *f.category != string(finance.Food) {
		t.Fatalf("defaults = %q %q %q", *f.date, *f.kind, *f.category)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsApply(t *testing.T) {
	ws := newTestWorkspace(t)
	t.Cleanup(func() {
		th, _ := workspace.LookupTheme(workspace.DefaultTheme)
		applyTheme(th, workspace.DefaultSkin)
	})
	s := newSettingsModel(ws)

	s.apply("darkMode", "galaxy")
	s = s.reload()

	if s.prefs.Theme != "darkMode" || s.prefs.BoardSkin != "galaxy" {
		t.Fatalf("prefs = %+v", s.prefs)
	}
	th, _ := workspace.LookupTheme("darkMode")
	if string(colorPrimary) != th.Colors.Primary {
		t.Fatal("styles should follow the new theme")
	}
	if skinBand(8) == "" {
		t.Fatal("galaxy skin should draw a band")
	}

	s.apply("plaid", "none")
	if ws.Prefs.Get().Theme != "darkMode" {
		t.Fatal("unknown theme should be ignored")
	}
	if skinBand(8) != "" {
		t.Fatal("no skin, no band")
	}
}

func TestNewAppAppliesStoredTheme(t *testing.T) {
	ws := newTestWorkspace(t)
	t.Cleanup(func() {
		th, _ := workspace.LookupTheme(workspace.DefaultTheme)
		applyTheme(th, workspace.DefaultSkin)
	})
	ws.Prefs.SetTheme("tokyoNight")

	newApp(ws, clockAt)
	th, _ := workspace.LookupTheme("tokyoNight")
	if string(colorPrimary) != th.Colors.Primary {
		t.Fatal("app should start with the stored theme")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.w); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestMoney(t *testing.T) {
	if got := money(12.5); got != "$12.50" {
		t.Errorf("money(12.5) = %q", got)
	}
	if got := money(-3); got != "-$3.00" {
		t.Errorf("money(-3) = %q", got)
	}
}

func TestClamp(t *testing.T) {
	if clamp(5, 0, 3) != 3 || clamp(-1, 0, 3) != 0 || clamp(2, 0, 3) != 2 {
		t.Fatal("clamp out of range")
	}
	if clamp(4, 0, -1) != 0 {
		t.Fatal("empty range should clamp to lo")
	}
}

func TestOrUntitled(t *testing.T) {
	if orUntitled("  ") != "(untitled)" || orUntitled("x") != "x" {
		t.Fatal("orUntitled")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, every theme must render)
// ============================================================

func TestStylesRenderForEveryTheme(t *testing.T) {
	t.Cleanup(func() {
		th, _ := workspace.LookupTheme(workspace.DefaultTheme)
		applyTheme(th, workspace.DefaultSkin)
	})
	for _, th := range workspace.Themes {
		for _, sk := range workspace.Skins {
			applyTheme(th, sk.ID)
			for _, st := range []string{
				activeTabStyle.Render("x"), inactiveTabStyle.Render("x"), panelStyle.Render("x"),
				activePanelStyle.Render("x"), boardStyle.Render("x"), titleStyle.Render("x"),
				selectedItemStyle.Render("x"), headerStyle.Render("x"), footerStyle.Render("x"),
			} {
				if st == "" {
					t.Fatalf("%s/%s rendered empty", th.ID, sk.ID)
				}
			}
		}
	}
}
