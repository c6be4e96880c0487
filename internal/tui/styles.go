package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/corkboard/internal/workspace"
)

// Color palette. Rebuilt by applyTheme whenever the theme changes.
var (
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorMuted     = lipgloss.Color("#8a8a8a")
	colorSuccess   = lipgloss.Color("#66bb6a")
	colorWarning   = lipgloss.Color("#fdd835")
	colorError     = lipgloss.Color("#ef5350")
	colorBg        lipgloss.Color
	colorFg        lipgloss.Color
	colorSubtle    lipgloss.Color
	colorBoard     lipgloss.Color
)

// Styles
var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	boardStyle        lipgloss.Style
	titleStyle        lipgloss.Style
	subtitleStyle     lipgloss.Style
	accentStyle       lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style

	skinLine string
)

func init() {
	th, _ := workspace.LookupTheme(workspace.DefaultTheme)
	applyTheme(th, workspace.DefaultSkin)
}

var skinBorders = map[string]lipgloss.Color{
	"ocean":  lipgloss.Color("#2196f3"),
	"galaxy": lipgloss.Color("#673ab7"),
}

var skinPatterns = map[string]string{
	"ocean":  "≈ ~ ≈ ~ ",
	"galaxy": " ·  ✦   ·    ⋆  ",
}

func applyTheme(th workspace.Theme, skin string) {
	c := th.Colors
	colorPrimary = lipgloss.Color(c.Primary)
	colorSecondary = lipgloss.Color(c.Secondary)
	colorAccent = lipgloss.Color(c.Accent)
	colorBg = lipgloss.Color(c.Background)
	colorFg = lipgloss.Color(c.Text)
	colorSubtle = lipgloss.Color(c.Surface)
	colorBoard = lipgloss.Color(c.BoardBackground)

	// Tabs
	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	boardBorder := colorBoard
	if b, ok := skinBorders[skin]; ok {
		boardBorder = b
	}
	boardStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(boardBorder).
		Padding(0, 1)
	skinLine = skinPatterns[skin]

	// Text
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorMuted)

	accentStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
		Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
		Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
		Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().
		Foreground(colorFg)
}

// skinBand renders the decorative strip of the board skin, empty for none.
func skinBand(width int) string {
	if skinLine == "" || width <= 0 {
		return ""
	}
	runes := []rune(skinLine)
	out := make([]rune, width)
	for i := range out {
		out[i] = runes[i%len(runes)]
	}
	return lipgloss.NewStyle().Foreground(boardStyle.GetBorderTopForeground()).Render(string(out))
}

func dot(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}
