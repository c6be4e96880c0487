package workspace

// Palette holds the colors of one theme as hex strings.
type Palette struct {
	Background      string
	BoardBackground string
	Surface         string
	Primary         string
	Secondary       string
	Text            string
	Accent          string
	NoteChecklist   string
	NoteHabit       string
	NoteLongTerm    string
}

type Theme struct {
	ID     string
	Name   string
	Colors Palette
}

// DefaultTheme is applied when no preference is stored.
const DefaultTheme = "cozyBrown"

// Themes lists every selectable theme in settings order.
var Themes = []Theme{
	{"cozyBrown", "Cozy Brown", Palette{"#f4ecd8", "#3e2723", "#e6dcc3", "#8d6e63", "#d7ccc8", "#4e342e", "#ffb74d", "#fff9c4", "#c8e6c9", "#bbdefb"}},
	{"softPink", "Soft Pink", Palette{"#fce4ec", "#880e4f", "#f8bbd0", "#ec407a", "#f48fb1", "#880e4f", "#ff80ab", "#ffcdd2", "#e1bee7", "#f06292"}},
	{"oceanBlue", "Ocean Blue", Palette{"#e3f2fd", "#0d47a1", "#bbdefb", "#1976d2", "#64b5f6", "#0d47a1", "#448aff", "#b3e5fc", "#b2dfdb", "#90caf9"}},
	{"darkMode", "Dark Mode", Palette{"#121212", "#000000", "#1e1e1e", "#bb86fc", "#3700b3", "#e0e0e0", "#03dac6", "#333333", "#2c3e50", "#424242"}},
	{"navyBlue", "Navy Blue", Palette{"#0a192f", "#020c1b", "#112240", "#64ffda", "#233554", "#ccd6f6", "#64ffda", "#172a45", "#1e3a8a", "#1e40af"}},
	{"tokyoNight", "Tokyo Night", Palette{"#1a1b26", "#16161e", "#24283b", "#7aa2f7", "#414868", "#a9b1d6", "#f7768e", "#24283b", "#283e51", "#485e74"}},
	{"forestGreen", "Forest Green", Palette{"#e8f5e9", "#1b5e20", "#c8e6c9", "#2e7d32", "#a5d6a7", "#1b5e20", "#66bb6a", "#dcedc8", "#a5d6a7", "#81c784"}},
	{"sunsetOrange", "Sunset Orange", Palette{"#fff3e0", "#bf360c", "#ffe0b2", "#ef6c00", "#ffcc80", "#e65100", "#ff9800", "#ffcc80", "#ffab91", "#ffccbc"}},
	{"lavenderMist", "Lavender Mist", Palette{"#f3e5f5", "#4a148c", "#e1bee7", "#8e24aa", "#ce93d8", "#4a148c", "#ab47bc", "#e1bee7", "#d1c4e9", "#b39ddb"}},
	{"midnightPurple", "Midnight Purple", Palette{"#311b92", "#12005e", "#4527a0", "#b388ff", "#512da8", "#ede7f6", "#7c4dff", "#4527a0", "#512da8", "#5e35b1"}},
}

// LookupTheme finds a theme by id.
func LookupTheme(id string) (Theme, bool) {
	for _, t := range Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

type Skin struct {
	ID    string
	Name  string
	Color string
}

const DefaultSkin = "none"

var Skins = []Skin{
	{"none", "None", "#e0e0e0"},
	{"ocean", "Ocean Waves", "#2196f3"},
	{"galaxy", "Galaxy", "#673ab7"},
}

func LookupSkin(id string) (Skin, bool) {
	for _, s := range Skins {
		if s.ID == id {
			return s, true
		}
	}
	return Skin{}, false
}
