package editor

import (
	"fmt"
	"strconv"
	"strings"

	"hexedit/internal/config"
	"hexedit/internal/hexedit"
	"hexedit/internal/log"

	tea "github.com/charmbracelet/bubbletea"
)

// themeField is one editable line of the config view.
type themeField struct {
	label string
	get   func(*config.Theme) string
	set   func(*config.Theme, string) error
}

func colorField(label string, p func(*config.Theme) *string) themeField {
	return themeField{
		label: label,
		get:   func(t *config.Theme) string { return *p(t) },
		set: func(t *config.Theme, v string) error {
			*p(t) = v
			return nil
		},
	}
}

func attrField(label string, p func(*config.Theme) *int) themeField {
	return themeField{
		label: label,
		get:   func(t *config.Theme) string { return fmt.Sprintf("0x%02X", *p(t)) },
		set: func(t *config.Theme, v string) error {
			n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(v), "0x"), 16, 8)
			if err != nil {
				return fmt.Errorf("%w: attribute %q", config.ErrInvalid, v)
			}
			*p(t) = int(n)
			return nil
		},
	}
}

var themeFields = []themeField{
	attrField("Text Attribute", func(t *config.Theme) *int { return &t.TextAttr }),
	attrField("Selected Attribute", func(t *config.Theme) *int { return &t.SelectedAttr }),
	colorField("Border Color", func(t *config.Theme) *string { return &t.BorderColor }),
	colorField("Focus Border Color", func(t *config.Theme) *string { return &t.FocusBorderColor }),
	colorField("Caption Color", func(t *config.Theme) *string { return &t.CaptionColor }),
	colorField("Legend Background", func(t *config.Theme) *string { return &t.LegendBackground }),
	colorField("Legend Highlight", func(t *config.Theme) *string { return &t.LegendHighlight }),
	colorField("Active Tab", func(t *config.Theme) *string { return &t.ActiveTab }),
	colorField("Unsaved File Color", func(t *config.Theme) *string { return &t.UnsavedFileColor }),
	colorField("16-bit Background", func(t *config.Theme) *string { return &t.Bit16Background }),
	colorField("32-bit Background", func(t *config.Theme) *string { return &t.Bit32Background }),
	colorField("64-bit Background", func(t *config.Theme) *string { return &t.Bit64Background }),
}

func (m *Model) openConfig() {
	m.view = ViewConfig
	m.configInputs = make([]string, len(themeFields))
	for i, f := range themeFields {
		m.configInputs[i] = f.get(&m.config.Theme)
	}
	m.configIndex = 0
	m.configChanged = false
}

func (m *Model) handleConfigKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		if m.configChanged {
			m.view = ViewFileSavePrompt
		} else {
			m.view = ViewMain
		}
	case tea.KeyUp:
		if m.configIndex > 0 {
			m.configIndex--
		}
	case tea.KeyDown:
		if m.configIndex < len(themeFields)-1 {
			m.configIndex++
		}
	case tea.KeyBackspace:
		if in := m.configInputs[m.configIndex]; len(in) > 0 {
			m.configInputs[m.configIndex] = in[:len(in)-1]
			m.configChanged = true
		}
	case tea.KeyRunes:
		m.configInputs[m.configIndex] += string(msg.Runes)
		m.configChanged = true
	}
	return m, nil
}

// saveConfig applies the edited theme, writes it out and restyles every tab.
// Nothing changes when a value does not parse.
func (m *Model) saveConfig() {
	theme := m.config.Theme
	for i, f := range themeFields {
		if err := f.set(&theme, m.configInputs[i]); err != nil {
			m.setError(err)
			return
		}
	}
	next := *m.config
	next.Theme = theme
	if err := next.Validate(); err != nil {
		m.setError(err)
		return
	}

	*m.config = next
	if err := m.config.Save(m.configPath); err != nil {
		log.ErrorErr(log.CatConfig, "save failed", err, "path", m.configPath)
		m.setError(err)
	} else {
		log.Info(log.CatConfig, "saved", "path", m.configPath)
	}
	m.applyTheme()
}

func (m *Model) applyTheme() {
	m.styles = config.NewStyles(&m.config.Theme)
	for _, t := range m.tabs {
		t.ctrl().SetColors(hexedit.Attr(m.config.Theme.TextAttr), hexedit.Attr(m.config.Theme.SelectedAttr))
		t.view.SetBorderStyle(m.styles.FocusBorder, m.styles.Caption)
	}
}
