package editor

import "github.com/charmbracelet/bubbles/key"

// Keys are the program commands. Plain characters are left to the hex view,
// which types them into the buffer.
type Keys struct {
	Quit        key.Binding
	Help        key.Binding
	Config      key.Binding
	Open        key.Binding
	Save        key.Binding
	SaveAs      key.Binding
	New         key.Binding
	Close       key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Find        key.Binding
	FindNext    key.Binding
	Goto        key.Binding
	Endian      key.Binding
	WordSize    key.Binding
	OffsetWidth key.Binding
	ReadOnly    key.Binding
	Cut         key.Binding
	Copy        key.Binding
	Paste       key.Binding
	SelectLeft  key.Binding
	SelectRight key.Binding
	SelectUp    key.Binding
	SelectDown  key.Binding
}

func DefaultKeys() Keys {
	return Keys{
		Quit:        key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("^Q", "quit")),
		Help:        key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
		Config:      key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "config")),
		Open:        key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("^O", "open")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^S", "save")),
		SaveAs:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("^A", "save as")),
		New:         key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("^N", "new file")),
		Close:       key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("^W", "close tab")),
		NextTab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("TAB", "next tab")),
		PrevTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-TAB", "previous tab")),
		Find:        key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("^F", "find")),
		FindNext:    key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "find next")),
		Goto:        key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("^G", "goto offset")),
		Endian:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("^E", "toggle endianness")),
		WordSize:    key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("^B", "cycle bytes per word")),
		OffsetWidth: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^T", "cycle offset column")),
		ReadOnly:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^R", "toggle read only")),
		Cut:         key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("^X", "cut")),
		Copy:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^C", "copy")),
		Paste:       key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("^V", "paste")),
		SelectLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("S-←", "select left")),
		SelectRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("S-→", "select right")),
		SelectUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("S-↑", "select up")),
		SelectDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("S-↓", "select down")),
	}
}

// ShortHelp is what the legend line shows.
func (k Keys) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help, k.Open, k.Save, k.Find, k.Goto, k.Endian}
}

func (k Keys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Save, k.SaveAs, k.New, k.Close, k.NextTab, k.PrevTab},
		{k.Cut, k.Copy, k.Paste, k.SelectLeft, k.SelectRight, k.SelectUp, k.SelectDown},
		{k.Find, k.FindNext, k.Goto, k.Endian, k.WordSize, k.OffsetWidth, k.ReadOnly, k.Config, k.Help, k.Quit},
	}
}
