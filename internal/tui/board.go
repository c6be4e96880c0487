package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/sadopc/corkboard/internal/notes"
	"github.com/sadopc/corkboard/internal/workspace"
)

const (
	cardWidth    = 32
	cardGap      = 2
	cardMaxLines = 6
	cardHeight   = cardMaxLines + 4
)

type boardMode int

const (
	boardBrowse boardMode = iota
	boardFilter
	boardGrab
	boardDetail
)

// focus tracks the open note. It lives behind a pointer so the OnRemove
// hook can clear it no matter how often the model is copied.
type focus struct {
	noteID       int64
	entry        int
	day          int
	expandedTask int64
}

type boardModel struct {
	ws     *workspace.Workspace
	width  int
	height int

	all     []notes.Note
	visible []notes.Note
	cursor  int
	mode    boardMode
	grabbed int64

	filter textinput.Model
	query  string

	focus *focus

	formActive bool
	form       *huh.Form
	formType   string

	// Form field pointers (survive value copies)
	formText    *string
	formDesc    *string
	formVariant *string
	formColor   *string
	formConfirm *bool
}

func newBoardModel(ws *workspace.Workspace) boardModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by title"
	ti.CharLimit = 64

	f := &focus{}
	ws.Notes.OnRemove(func(n notes.Note) {
		if f.noteID == n.ID {
			*f = focus{}
		}
	})

	text, desc, variant, color, confirm := "", "", string(notes.VariantChecklist), notes.Palette[0], false
	b := boardModel{
		ws:          ws,
		filter:      ti,
		focus:       f,
		formText:    &text,
		formDesc:    &desc,
		formVariant: &variant,
		formColor:   &color,
		formConfirm: &confirm,
	}
	return b.reload()
}

func (b *boardModel) setSize(w, h int) {
	b.width = w
	b.height = h
}

// capturing reports whether keys must go to the board rather than the app.
func (b boardModel) capturing() bool {
	return b.formActive || b.mode == boardFilter
}

// reload takes a fresh snapshot of the notes and reapplies the filter.
func (b boardModel) reload() boardModel {
	b.all = b.ws.Notes.List()
	b.visible = b.all
	if b.query != "" {
		titles := make([]string, len(b.all))
		for i, n := range b.all {
			titles[i] = n.Title
		}
		keep := make(map[int]bool)
		for _, m := range fuzzy.Find(b.query, titles) {
			keep[m.Index] = true
		}
		b.visible = nil
		for i, n := range b.all {
			if keep[i] {
				b.visible = append(b.visible, n)
			}
		}
	}
	b.cursor = clamp(b.cursor, 0, len(b.visible)-1)

	if b.mode == boardDetail {
		if _, ok := b.openNote(); !ok {
			b.mode = boardBrowse
		}
	}
	return b
}

func (b boardModel) selected() (notes.Note, bool) {
	if b.cursor < 0 || b.cursor >= len(b.visible) {
		return notes.Note{}, false
	}
	return b.visible[b.cursor], true
}

func (b boardModel) openNote() (notes.Note, bool) {
	if b.focus.noteID == 0 {
		return notes.Note{}, false
	}
	for _, n := range b.all {
		if n.ID == b.focus.noteID {
			return n, true
		}
	}
	return notes.Note{}, false
}

func (b boardModel) columns() int {
	return max(1, (b.width-4)/(cardWidth+cardGap))
}

func (b boardModel) indexOf(id int64) int {
	for i, n := range b.visible {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (b boardModel) update(msg tea.Msg) (boardModel, tea.Cmd) {
	if b.formActive && b.form != nil {
		return b.updateForm(msg)
	}
	if b.mode == boardFilter {
		return b.updateFilter(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch b.mode {
		case boardGrab:
			return b.updateGrab(msg)
		case boardDetail:
			return b.updateDetail(msg)
		default:
			return b.updateBrowse(msg)
		}
	}
	return b, nil
}

func (b boardModel) moveCursor(msg tea.KeyMsg) (boardModel, bool) {
	cols := b.columns()
	switch {
	case key.Matches(msg, keys.Left):
		b.cursor--
	case key.Matches(msg, keys.Right):
		b.cursor++
	case key.Matches(msg, keys.Up):
		b.cursor -= cols
	case key.Matches(msg, keys.Down):
		b.cursor += cols
	default:
		return b, false
	}
	b.cursor = clamp(b.cursor, 0, len(b.visible)-1)
	return b, true
}

func (b boardModel) updateBrowse(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	if nb, moved := b.moveCursor(msg); moved {
		return nb, nil
	}

	n, ok := b.selected()
	switch {
	case key.Matches(msg, keys.Filter):
		b.mode = boardFilter
		b.filter.SetValue(b.query)
		return b, b.filter.Focus()
	case key.Matches(msg, keys.Back):
		if b.query != "" {
			b.query = ""
			return b.reload(), nil
		}
	case key.Matches(msg, keys.New):
		return b.showNewNoteForm()
	case !ok:
		return b, nil
	case key.Matches(msg, keys.Enter):
		*b.focus = focus{noteID: n.ID}
		b.mode = boardDetail
	case key.Matches(msg, keys.Grab), key.Matches(msg, keys.Toggle):
		b.mode = boardGrab
		b.grabbed = n.ID
		return b, statusCmd(status("Moving %q: pick a spot and press g", orUntitled(n.Title)))
	case key.Matches(msg, keys.Rename):
		return b.showRenameForm(n)
	case key.Matches(msg, keys.Color):
		return b.showColorForm(n)
	case key.Matches(msg, keys.Delete), key.Matches(msg, keys.Remove):
		return b.showDeleteForm(n)
	}
	return b, nil
}

func (b boardModel) updateFilter(msg tea.Msg) (boardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			b.filter.Blur()
			b.query = ""
			b.mode = boardBrowse
			return b.reload(), nil
		case "enter":
			b.filter.Blur()
			b.mode = boardBrowse
			return b, nil
		}
	}
	var cmd tea.Cmd
	b.filter, cmd = b.filter.Update(msg)
	b.query = strings.TrimSpace(b.filter.Value())
	b.cursor = 0
	return b.reload(), cmd
}

// updateGrab runs the keyboard drag gesture: the grabbed note stays put
// while the cursor picks the target, and the drop hands the pair to the
// reorderer.
func (b boardModel) updateGrab(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	if nb, moved := b.moveCursor(msg); moved {
		return nb, nil
	}
	switch {
	case key.Matches(msg, keys.Back):
		b.mode = boardBrowse
		b.grabbed = 0
		return b, statusCmd(status("Move cancelled"))
	case key.Matches(msg, keys.Grab), key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
		target, ok := b.selected()
		moved := b.grabbed
		b.mode = boardBrowse
		b.grabbed = 0
		if !ok || target.ID == moved {
			return b, nil
		}
		b.ws.Reorder.Reorder(moved, target.ID)
		b = b.reload()
		if i := b.indexOf(moved); i >= 0 {
			b.cursor = i
		}
		return b, nil
	}
	return b, nil
}

func (b boardModel) updateDetail(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	n, ok := b.openNote()
	if !ok {
		b.mode = boardBrowse
		return b, nil
	}
	f := b.focus
	count := n.Len()

	switch {
	case key.Matches(msg, keys.Back):
		b.mode = boardBrowse
		*f = focus{}
		return b, nil
	case key.Matches(msg, keys.Up):
		f.entry = clamp(f.entry-1, 0, count-1)
	case key.Matches(msg, keys.Down):
		f.entry = clamp(f.entry+1, 0, count-1)
	case key.Matches(msg, keys.Left):
		f.day = clamp(f.day-1, 0, notes.DaysPerWeek-1)
	case key.Matches(msg, keys.Right):
		f.day = clamp(f.day+1, 0, notes.DaysPerWeek-1)
	case key.Matches(msg, keys.New):
		return b.showEntryForm(n, 0)
	case key.Matches(msg, keys.Rename):
		return b.showRenameForm(n)
	case key.Matches(msg, keys.Color):
		return b.showColorForm(n)
	case key.Matches(msg, keys.Remove):
		return b.showDeleteForm(n)
	case count == 0:
		return b, nil
	case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
		b.toggleEntry(n)
		return b.reload(), nil
	case key.Matches(msg, keys.Edit):
		return b.showEntryForm(n, entryID(n, f.entry))
	case key.Matches(msg, keys.Delete):
		b.deleteEntry(n)
		b = b.reload()
		if n, ok := b.openNote(); ok {
			f.entry = clamp(f.entry, 0, n.Len()-1)
		}
		return b, nil
	}
	return b, nil
}

func entryID(n notes.Note, i int) int64 {
	switch n.Type {
	case notes.VariantChecklist:
		if i < len(n.Items) {
			return n.Items[i].ID
		}
	case notes.VariantHabit:
		if i < len(n.Habits) {
			return n.Habits[i].ID
		}
	case notes.VariantLongTerm:
		if i < len(n.Tasks) {
			return n.Tasks[i].ID
		}
	}
	return 0
}

func (b boardModel) toggleEntry(n notes.Note) {
	id := entryID(n, b.focus.entry)
	switch n.Type {
	case notes.VariantChecklist:
		b.ws.Notes.Update(n.ID, notes.ToggleItem(n, id))
	case notes.VariantHabit:
		b.ws.Notes.Update(n.ID, notes.CycleHabitDay(n, id, b.focus.day))
	case notes.VariantLongTerm:
		if b.focus.expandedTask == id {
			b.focus.expandedTask = 0
		} else {
			b.focus.expandedTask = id
		}
	}
}

func (b boardModel) deleteEntry(n notes.Note) {
	id := entryID(n, b.focus.entry)
	switch n.Type {
	case notes.VariantChecklist:
		b.ws.Notes.Update(n.ID, notes.DeleteItem(n, id))
	case notes.VariantHabit:
		b.ws.Notes.Update(n.ID, notes.DeleteHabit(n, id))
	case notes.VariantLongTerm:
		if b.focus.expandedTask == id {
			b.focus.expandedTask = 0
		}
		b.ws.Notes.Update(n.ID, notes.DeleteTask(n, id))
	}
}

// --- Forms ---

func (b boardModel) openForm(kind string, groups ...*huh.Group) (boardModel, tea.Cmd) {
	b.formType = kind
	b.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	b.formActive = true
	return b, b.form.Init()
}

func (b boardModel) showNewNoteForm() (boardModel, tea.Cmd) {
	*b.formVariant = string(notes.VariantChecklist)
	*b.formText = ""

	opts := make([]huh.Option[string], len(notes.Variants))
	for i, v := range notes.Variants {
		opts[i] = huh.NewOption(v.Label(), string(v))
	}
	return b.openForm("note", huh.NewGroup(
		huh.NewSelect[string]().Title("Note type").Options(opts...).Value(b.formVariant),
		huh.NewInput().Title("Title").Value(b.formText),
	))
}

func (b boardModel) showRenameForm(n notes.Note) (boardModel, tea.Cmd) {
	*b.formText = n.Title
	b.focusNote(n.ID)
	return b.openForm("rename", huh.NewGroup(
		huh.NewInput().Title("Title").Value(b.formText),
	))
}

func (b boardModel) showColorForm(n notes.Note) (boardModel, tea.Cmd) {
	*b.formColor = n.Color
	b.focusNote(n.ID)
	opts := make([]huh.Option[string], len(notes.Palette))
	for i, c := range notes.Palette {
		opts[i] = huh.NewOption(fmt.Sprintf("%s %s", dot(c), c), c)
	}
	return b.openForm("color", huh.NewGroup(
		huh.NewSelect[string]().Title("Color").Options(opts...).Value(b.formColor),
	))
}

func (b boardModel) showDeleteForm(n notes.Note) (boardModel, tea.Cmd) {
	*b.formConfirm = false
	b.focusNote(n.ID)
	return b.openForm("delete", huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", orUntitled(n.Title))).
			Affirmative("Delete").
			Negative("Keep").
			Value(b.formConfirm),
	))
}

// showEntryForm edits the entry with the given id, or adds one when id is 0.
func (b boardModel) showEntryForm(n notes.Note, id int64) (boardModel, tea.Cmd) {
	*b.formText, *b.formDesc = "", ""
	kind := "add_entry"
	if id != 0 {
		kind = "edit_entry"
		for _, it := range n.Items {
			if it.ID == id {
				*b.formText = it.Text
			}
		}
		for _, h := range n.Habits {
			if h.ID == id {
				*b.formText = h.Text
			}
		}
		for _, t := range n.Tasks {
			if t.ID == id {
				*b.formText, *b.formDesc = t.Text, t.Description
			}
		}
	}

	fields := []huh.Field{huh.NewInput().Title(entryNoun(n.Type)).Value(b.formText)}
	if n.Type == notes.VariantLongTerm {
		fields = append(fields, huh.NewText().Title("Description").Lines(4).Value(b.formDesc))
	}
	return b.openForm(kind, huh.NewGroup(fields...))
}

func entryNoun(v notes.Variant) string {
	switch v {
	case notes.VariantHabit:
		return "Habit"
	case notes.VariantLongTerm:
		return "Task"
	}
	return "Item"
}

// focusNote points the focus at id, keeping the entry cursor when it already
// points there.
func (b boardModel) focusNote(id int64) {
	if b.focus.noteID != id {
		*b.focus = focus{noteID: id}
	}
}

func (b boardModel) updateForm(msg tea.Msg) (boardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			b.formActive = false
			b.form = nil
			return b, nil
		}
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	if b.form.State == huh.StateCompleted {
		b.formActive = false
		b.form = nil
		c := b.commitForm()
		return b.reload(), c
	}
	return b, cmd
}

func (b boardModel) commitForm() tea.Cmd {
	n, _ := b.openNote()
	switch b.formType {
	case "note":
		added, ok := b.ws.Notes.Add(notes.Draft{Type: notes.Variant(*b.formVariant), Title: *b.formText})
		if ok {
			return statusCmd(status("Added %s note", added.Type.Label()))
		}
	case "rename":
		b.ws.Notes.Update(n.ID, notes.SetTitle(*b.formText))
	case "color":
		b.ws.Notes.Update(n.ID, notes.SetColor(*b.formColor))
	case "delete":
		if *b.formConfirm && b.ws.Notes.Remove(n.ID) {
			return statusCmd(status("Deleted %q", orUntitled(n.Title)))
		}
	case "add_entry":
		text := strings.TrimSpace(*b.formText)
		if text == "" {
			return nil
		}
		id := b.ws.Notes.NextID()
		switch n.Type {
		case notes.VariantChecklist:
			b.ws.Notes.Update(n.ID, notes.AddItem(n, id, text))
		case notes.VariantHabit:
			b.ws.Notes.Update(n.ID, notes.AddHabit(n, id, text))
		case notes.VariantLongTerm:
			b.ws.Notes.Update(n.ID, notes.AddTask(n, id, text, *b.formDesc))
		}
	case "edit_entry":
		id := entryID(n, b.focus.entry)
		switch n.Type {
		case notes.VariantChecklist:
			b.ws.Notes.Update(n.ID, notes.SetItemText(n, id, *b.formText))
		case notes.VariantHabit:
			b.ws.Notes.Update(n.ID, notes.SetHabitText(n, id, *b.formText))
		case notes.VariantLongTerm:
			b.ws.Notes.Update(n.ID, notes.SetTask(n, id, *b.formText, *b.formDesc))
		}
	}
	return nil
}

// --- Rendering ---

func (b boardModel) view() string {
	w := b.width - 4

	if b.formActive && b.form != nil {
		title := titleStyle.Render(b.formTitle())
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", b.form.View()))
	}
	if b.mode == boardDetail {
		if n, ok := b.openNote(); ok {
			return b.renderDetail(n, w)
		}
	}
	return b.renderBoard(w)
}

func (b boardModel) formTitle() string {
	switch b.formType {
	case "note":
		return "New Note"
	case "rename":
		return "Rename Note"
	case "color":
		return "Note Color"
	case "delete":
		return "Delete Note"
	case "edit_entry":
		return "Edit Entry"
	}
	return "Add Entry"
}

func (b boardModel) renderBoard(w int) string {
	var rows []string

	header := titleStyle.Render("Board")
	switch {
	case b.mode == boardFilter:
		header = lipgloss.JoinHorizontal(lipgloss.Bottom, header, "  ", b.filter.View())
	case b.query != "":
		header += mutedStyle.Render(fmt.Sprintf("  filter: %q (%d of %d)", b.query, len(b.visible), len(b.all)))
	}
	if b.mode == boardGrab {
		header += accentStyle.Render("  moving…")
	}
	rows = append(rows, header, "")

	if len(b.visible) == 0 {
		msg := "The board is empty. Press n to pin a note."
		if b.query != "" {
			msg = "No notes match. Press esc to clear the filter."
		}
		rows = append(rows, mutedStyle.Render(msg))
		return boardStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	cols := b.columns()
	fit := max(1, (b.height-6)/cardHeight)
	first := max(0, b.cursor/cols-fit+1)

	var line []string
	for i, n := range b.visible {
		if i/cols < first {
			continue
		}
		if i/cols >= first+fit {
			break
		}
		line = append(line, b.renderCard(n, i == b.cursor), strings.Repeat(" ", cardGap))
		if len(line) == 2*cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = nil
		}
	}
	if len(line) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}

	if band := skinBand(w - 4); band != "" {
		rows = append(rows, band)
	}
	return boardStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (b boardModel) renderCard(n notes.Note, selected bool) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(n.Color)).
		Width(cardWidth).
		Padding(0, 1)
	switch {
	case n.ID == b.grabbed:
		style = style.Border(lipgloss.DoubleBorder()).BorderForeground(colorAccent)
	case selected:
		style = style.Border(lipgloss.ThickBorder()).BorderForeground(colorPrimary)
	}

	inner := cardWidth - 2
	lines := []string{
		dot(n.Color) + " " + titleStyle.Render(truncate(orUntitled(n.Title), inner-2)),
		mutedStyle.Render(n.Type.Label()),
	}
	body := entryLines(n, inner)
	if len(body) > cardMaxLines {
		more := len(body) - cardMaxLines + 1
		body = append(body[:cardMaxLines-1], mutedStyle.Render(fmt.Sprintf("+%d more", more)))
	}
	if len(body) == 0 {
		body = []string{mutedStyle.Render("empty")}
	}
	lines = append(lines, body...)
	return style.Render(strings.Join(lines, "\n"))
}

func entryLines(n notes.Note, w int) []string {
	var out []string
	switch n.Type {
	case notes.VariantChecklist:
		for _, it := range n.Items {
			out = append(out, checkbox(it.Checked)+" "+truncate(it.Text, w-4))
		}
	case notes.VariantHabit:
		for _, h := range n.Habits {
			out = append(out, fmt.Sprintf("%-*s %s", w-15, truncate(h.Text, w-15), habitRow(h, -1)))
		}
	case notes.VariantLongTerm:
		for _, t := range n.Tasks {
			out = append(out, "• "+truncate(t.Text, w-2))
		}
	}
	return out
}

func checkbox(checked bool) string {
	if checked {
		return successStyle.Render("[x]")
	}
	return "[ ]"
}

func habitCell(s notes.Status) string {
	if c := s.Color(); c != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(s.Symbol())
	}
	return mutedStyle.Render(s.Symbol())
}

// habitRow renders the seven cells, highlighting column sel when it is in range.
func habitRow(h notes.Habit, sel int) string {
	cells := make([]string, notes.DaysPerWeek)
	for i, s := range h.Days {
		cell := habitCell(s)
		if i == sel {
			cell = lipgloss.NewStyle().Underline(true).Render(s.Symbol())
		}
		cells[i] = cell
	}
	return strings.Join(cells, " ")
}

func (b boardModel) renderDetail(n notes.Note, w int) string {
	f := b.focus
	var rows []string
	rows = append(rows,
		dot(n.Color)+" "+titleStyle.Render(orUntitled(n.Title))+mutedStyle.Render("  "+n.Type.Label()),
		"",
	)

	cursor := func(i int) (string, lipgloss.Style) {
		if i == f.entry {
			return "> ", selectedItemStyle
		}
		return "  ", normalItemStyle
	}

	switch n.Type {
	case notes.VariantChecklist:
		for i, it := range n.Items {
			c, st := cursor(i)
			rows = append(rows, c+checkbox(it.Checked)+" "+st.Render(it.Text))
		}
	case notes.VariantHabit:
		nameW := 24
		head := make([]string, notes.DaysPerWeek)
		for i, d := range notes.Weekdays {
			head[i] = d
			if i == f.day {
				head[i] = highlightStyle.Render(d)
			}
		}
		rows = append(rows, mutedStyle.Render("  "+fmt.Sprintf("%-*s ", nameW, ""))+strings.Join(head, " "))
		for i, h := range n.Habits {
			c, st := cursor(i)
			sel := -1
			if i == f.entry {
				sel = f.day
			}
			rows = append(rows, c+st.Render(fmt.Sprintf("%-*s ", nameW, truncate(h.Text, nameW)))+habitRow(h, sel))
		}
	case notes.VariantLongTerm:
		for i, t := range n.Tasks {
			c, st := cursor(i)
			rows = append(rows, c+"• "+st.Render(t.Text))
			if t.ID == f.expandedTask {
				desc := t.Description
				if desc == "" {
					desc = "No description."
				}
				rows = append(rows, lipgloss.NewStyle().
					Border(lipgloss.NormalBorder(), false, false, false, true).
					BorderForeground(lipgloss.Color(n.Color)).
					PaddingLeft(1).
					MarginLeft(4).
					Width(w-12).
					Render(desc))
			}
		}
	}
	if n.Len() == 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  No entries. Press n to add a %s.", strings.ToLower(entryNoun(n.Type)))))
	}

	hint := "  n: add  e: edit  d: delete entry  t: title  c: color  x: remove note  esc: back"
	switch n.Type {
	case notes.VariantChecklist:
		hint = "  space: check" + hint
	case notes.VariantHabit:
		hint = "  ←/→: day  space: mark" + hint
	case notes.VariantLongTerm:
		hint = "  enter: details" + hint
	}
	rows = append(rows, "", mutedStyle.Render(hint))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
