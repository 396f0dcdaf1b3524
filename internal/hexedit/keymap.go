package hexedit

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds terminal keys to the control's navigation keys.
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	Home, End             key.Binding
	PageUp, PageDown      key.Binding
	Start, Finish         key.Binding

	Insert, Delete key.Binding

	// Commit finishes an Alt+digit sequence, standing in for the Alt release
	// that terminals do not report.
	Commit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		Home: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		End:  key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "line end")),

		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),

		Start:  key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "start of data")),
		Finish: key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "end of data")),

		Insert: key.NewBinding(key.WithKeys("insert"), key.WithHelp("ins", "insert/overwrite")),
		Delete: key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete")),

		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("alt+digits, enter", "enter by code")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Delete, k.Start, k.Finish}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Home, k.End, k.PageUp, k.PageDown},
		{k.Start, k.Finish, k.Insert, k.Delete, k.Commit},
	}
}

// translate turns a terminal key into control events. Cursor block keys are
// reported as enhanced keys, as a PC keyboard would.
func (k KeyMap) translate(msg tea.KeyMsg) []Event {
	nav := []struct {
		b    key.Binding
		code Key
		mods Mod
	}{
		{k.Left, KeyArrowLeft, ModEnhanced},
		{k.Right, KeyArrowRight, ModEnhanced},
		{k.Up, KeyArrowUp, ModEnhanced},
		{k.Down, KeyArrowDown, ModEnhanced},
		{k.Home, KeyHome, ModEnhanced},
		{k.End, KeyEnd, ModEnhanced},
		{k.PageUp, KeyPageUp, ModEnhanced},
		{k.PageDown, KeyPageDown, ModEnhanced},
		{k.Insert, KeyInsert, ModEnhanced},
		{k.Delete, KeyDelete, ModEnhanced},
		{k.Start, KeyHome, ModEnhanced | ModLeftCtrl},
		{k.Finish, KeyEnd, ModEnhanced | ModLeftCtrl},
	}
	for _, n := range nav {
		if key.Matches(msg, n.b) {
			return []Event{KeyDown{Key: n.code, Mods: n.mods}}
		}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []Event{KeyDown{Char: ' '}}
	case tea.KeyRunes:
	default:
		return nil
	}

	if msg.Alt {
		evs := make([]Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			evs = append(evs, altKey(r))
		}
		return evs
	}
	evs := make([]Event, 0, len(msg.Runes))
	for _, r := range msg.Runes {
		evs = append(evs, KeyDown{Char: r})
	}
	return evs
}

// altKey maps Alt plus a character to the keypad key it stands for.
func altKey(r rune) KeyDown {
	switch {
	case r >= '0' && r <= '9':
		return KeyDown{Key: KeyNumpad0 + Key(r-'0'), Char: r, Mods: ModLeftAlt}
	case r == '+':
		return KeyDown{Key: KeyNumpadAdd, Char: r, Mods: ModLeftAlt}
	}
	return KeyDown{Char: r, Mods: ModLeftAlt}
}
