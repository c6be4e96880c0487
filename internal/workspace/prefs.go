package workspace

import (
	"log/slog"

	"github.com/sadopc/corkboard/internal/store"
)

// Preferences are the appearance settings persisted across sessions.
type Preferences struct {
	Theme     string `json:"theme"`
	BoardSkin string `json:"boardSkin"`
}

// Prefs owns the preferences document.
type Prefs struct {
	backend store.Backend
	log     *slog.Logger
	cur     Preferences
}

func loadPrefs(b store.Backend, log *slog.Logger) *Prefs {
	p := &Prefs{backend: b, log: log}
	p.cur = store.Load(b, store.KeyPreferences, Preferences{Theme: DefaultTheme, BoardSkin: DefaultSkin}, log)
	if _, ok := LookupTheme(p.cur.Theme); !ok {
		p.cur.Theme = DefaultTheme
	}
	if _, ok := LookupSkin(p.cur.BoardSkin); !ok {
		p.cur.BoardSkin = DefaultSkin
	}
	return p
}

func (p *Prefs) Get() Preferences { return p.cur }

// Theme returns the active theme.
func (p *Prefs) Theme() Theme {
	t, _ := LookupTheme(p.cur.Theme)
	return t
}

// SetTheme switches to the theme with the given id. Unknown ids are ignored.
func (p *Prefs) SetTheme(id string) bool {
	if _, ok := LookupTheme(id); !ok {
		return false
	}
	p.cur.Theme = id
	p.save()
	return true
}

func (p *Prefs) SetBoardSkin(id string) bool {
	if _, ok := LookupSkin(id); !ok {
		return false
	}
	p.cur.BoardSkin = id
	p.save()
	return true
}

func (p *Prefs) save() {
	store.Save(p.backend, store.KeyPreferences, p.cur, p.log)
}
