package hexedit

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one character position on screen.
type Cell struct {
	Ch   rune
	Attr Attr
}

// Surface receives painted cells and the cursor position, both relative to
// the client area of the control.
type Surface interface {
	SetCell(col, row int, ch rune, attr Attr)
	SetCursor(visible bool, percent, col, row int)
}

// Grid is an in-memory Surface.
type Grid struct {
	width, height int
	cells         []Cell

	CursorVisible bool
	CursorPercent int
	CursorCol     int
	CursorRow     int
}

func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Resize(width, height)
	return g
}

// Resize discards the contents.
func (g *Grid) Resize(width, height int) {
	g.width = max(width, 0)
	g.height = max(height, 0)
	g.cells = make([]Cell, g.width*g.height)
	for i := range g.cells {
		g.cells[i] = Cell{Ch: ' ', Attr: DefaultTextAttr}
	}
}

func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

func (g *Grid) SetCell(col, row int, ch rune, attr Attr) {
	if col < 0 || row < 0 || col >= g.width || row >= g.height {
		return
	}
	g.cells[row*g.width+col] = Cell{Ch: ch, Attr: attr}
}

func (g *Grid) SetCursor(visible bool, percent, col, row int) {
	g.CursorVisible = visible
	g.CursorPercent = percent
	g.CursorCol = col
	g.CursorRow = row
}

func (g *Grid) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= g.width || row >= g.height {
		return Cell{}
	}
	return g.cells[row*g.width+col]
}

// Row returns the characters of a row without attributes.
func (g *Grid) Row(row int) string {
	if row < 0 || row >= g.height {
		return ""
	}
	var b strings.Builder
	for _, c := range g.cells[row*g.width : (row+1)*g.width] {
		b.WriteRune(c.Ch)
	}
	return b.String()
}

// Render draws the grid with lipgloss, grouping runs of equal attributes.
// The cursor cell is drawn reversed when visible.
func (g *Grid) Render() string {
	var out strings.Builder
	for row := 0; row < g.height; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		line := g.cells[row*g.width : (row+1)*g.width]
		start := 0
		for start < len(line) {
			attr := line[start].Attr
			cursor := g.CursorVisible && row == g.CursorRow && start == g.CursorCol
			end := start + 1
			if !cursor {
				for end < len(line) && line[end].Attr == attr &&
					!(g.CursorVisible && row == g.CursorRow && end == g.CursorCol) {
					end++
				}
			}
			var run strings.Builder
			for _, c := range line[start:end] {
				run.WriteRune(c.Ch)
			}
			style := attr.Style()
			if cursor {
				style = cursorStyle(style, g.CursorPercent)
			}
			out.WriteString(style.Render(run.String()))
			start = end
		}
	}
	return out.String()
}

func cursorStyle(s lipgloss.Style, percent int) lipgloss.Style {
	if percent >= 50 {
		return s.Reverse(true)
	}
	return s.Underline(true)
}
