package hexedit

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Attr is a console colour attribute: foreground in the low nibble,
// background in the next one.
type Attr uint16

const DefaultTextAttr Attr = 0x17

func NewAttr(fg, bg int) Attr {
	return Attr(bg&0x0F)<<4 | Attr(fg&0x0F)
}

func (a Attr) Foreground() int { return int(a & 0x0F) }
func (a Attr) Background() int { return int(a>>4) & 0x0F }

// Inverse swaps foreground and background, keeping any higher bits.
func (a Attr) Inverse() Attr {
	return a&0xFF00 | (a&0xF0)>>4 | (a&0x0F)<<4
}

// Console colour order is blue-green-red; ANSI is red-green-blue.
var consoleToANSI = [8]int{0, 4, 2, 6, 1, 5, 3, 7}

func ansiColor(c int) lipgloss.Color {
	n := consoleToANSI[c&0x07]
	if c&0x08 != 0 {
		n += 8
	}
	return lipgloss.Color(strconv.Itoa(n))
}

// Style renders the attribute as a lipgloss style.
func (a Attr) Style() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ansiColor(a.Foreground())).
		Background(ansiColor(a.Background()))
}
