package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/corkboard/internal/workspace"
)

type settingsModel struct {
	ws     *workspace.Workspace
	width  int
	height int

	prefs      workspace.Preferences
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	theme *string
	skin  *string
}

func newSettingsModel(ws *workspace.Workspace) settingsModel {
	th, sk := "", ""
	return settingsModel{
		ws:    ws,
		prefs: ws.Prefs.Get(),
		theme: &th,
		skin:  &sk,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) reload() settingsModel {
	s.prefs = s.ws.Prefs.Get()
	return s
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.theme = s.prefs.Theme
	*s.skin = s.prefs.BoardSkin

	themes := make([]huh.Option[string], len(workspace.Themes))
	for i, th := range workspace.Themes {
		themes[i] = huh.NewOption(fmt.Sprintf("%s %s", dot(th.Colors.Primary), th.Name), th.ID)
	}
	skins := make([]huh.Option[string], len(workspace.Skins))
	for i, sk := range workspace.Skins {
		skins[i] = huh.NewOption(sk.Name, sk.ID)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").Options(themes...).Value(s.theme),
			huh.NewSelect[string]().Title("Board skin").Options(skins...).Value(s.skin),
		).Title("Appearance"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		s.apply(*s.theme, *s.skin)
		return s.reload(), statusCmd(status("Theme: %s", s.ws.Prefs.Theme().Name))
	}

	return s, cmd
}

// apply persists the choice and restyles the whole interface.
func (s settingsModel) apply(theme, skin string) {
	s.ws.Prefs.SetTheme(theme)
	s.ws.Prefs.SetBoardSkin(skin)
	applyTheme(s.ws.Prefs.Theme(), s.ws.Prefs.Get().BoardSkin)
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	th, _ := workspace.LookupTheme(s.prefs.Theme)
	sk, _ := workspace.LookupSkin(s.prefs.BoardSkin)

	var rows []string
	rows = append(rows, title, "")
	label := lipgloss.NewStyle().Width(16)
	rows = append(rows,
		fmt.Sprintf("  %s %s", label.Render("Theme"), highlightStyle.Render(th.Name)),
		fmt.Sprintf("  %s %s", label.Render("Board skin"), highlightStyle.Render(sk.Name)),
		"",
	)

	c := th.Colors
	var swatch []string
	for _, hex := range []string{c.Primary, c.Secondary, c.Accent, c.Surface, c.NoteChecklist, c.NoteHabit, c.NoteLongTerm} {
		swatch = append(swatch, lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    "))
	}
	rows = append(rows, "  "+lipgloss.JoinHorizontal(lipgloss.Top, swatch...))
	if band := skinBand(w - 6); band != "" {
		rows = append(rows, "  "+band)
	}

	rows = append(rows, "", mutedStyle.Render("Press enter to change the appearance"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
