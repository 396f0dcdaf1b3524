package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// prompt is a one-line input that only takes the runes accept allows.
type prompt struct {
	input  textinput.Model
	accept func(rune) bool
}

func newPrompt(placeholder string, limit int) prompt {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Focus()
	return prompt{input: ti}
}

// reset replaces the text and puts the cursor after it.
func (p *prompt) reset(value string) {
	p.input.SetValue(value)
	p.input.CursorEnd()
}

func (p *prompt) Value() string {
	return p.input.Value()
}

// update feeds a key to the input and reports whether the text changed.
func (p *prompt) update(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeySpace {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
	}
	if msg.Type == tea.KeyRunes && p.accept != nil {
		kept := msg.Runes[:0:0]
		for _, r := range msg.Runes {
			if p.accept(r) {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			return false
		}
		msg.Runes = kept
	}

	before := p.input.Value()
	p.input, _ = p.input.Update(msg)
	return p.input.Value() != before
}

func (p prompt) View() string {
	return p.input.View()
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isDecimalDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
