package hexedit

import (
	"fmt"
)

const hexDigits = "0123456789ABCDEF"

// Cursor heights, in percent of a cell.
const (
	CursorInsertPercent    = 20
	CursorOverwritePercent = 50
)

// byteAttr colours a cell that belongs to the byte at off. A separator that
// follows the byte is only selected when the selection carries on past it.
func (c *Control) byteAttr(off int64, paddingAfter bool) Attr {
	if c.sel == nil || !c.sel.Contains(off) {
		return c.textAttr
	}
	if paddingAfter && off == c.sel.Last {
		return c.textAttr
	}
	return c.selAttr
}

func printable(b byte) bool {
	return b >= 0x20 && b < 0x7F
}

// RenderLine returns every cell of a line, before horizontal scrolling.
// Lines past the data are blank except for line zero, which always shows its
// offset.
func (c *Control) RenderLine(line int64) []Cell {
	l := c.layout
	cells := make([]Cell, 0, l.LineCells())
	put := func(ch rune, attr Attr) {
		cells = append(cells, Cell{Ch: ch, Attr: attr})
	}

	if line != 0 && line >= c.linesPopulated() {
		for len(cells) < l.LineCells() {
			put(' ', c.textAttr)
		}
		return cells
	}

	start := l.LineStart(line)
	n := l.BytesOnLine(line, c.buf.Valid())
	data := c.buf.Bytes()

	var offsetText string
	switch l.OffsetWidth {
	case 32:
		offsetText = fmt.Sprintf("%08x: ", uint32(start))
	case 64:
		offsetText = fmt.Sprintf("%08x`%08x: ", uint32(uint64(start)>>32), uint32(start))
	}
	for _, ch := range offsetText {
		put(ch, c.textAttr)
	}

	bpw := l.BytesPerWord
	for w := 0; w < l.WordsPerLine(); w++ {
		first := w * bpw
		if first >= n {
			for i := 0; i < l.CellsPerWord(); i++ {
				put(' ', c.textAttr)
			}
			continue
		}
		wordStart := start + int64(first)

		var value uint64
		for i := 0; i < bpw && first+i < n; i++ {
			value |= uint64(data[wordStart+int64(i)]) << (8 * i)
		}

		for nib := bpw*2 - 1; nib >= 0; nib-- {
			digit := (value >> (4 * nib)) & 0x0F
			put(rune(hexDigits[digit]), c.byteAttr(wordStart+int64(nib/2), false))
			if bpw == 8 && nib == 8 {
				put('`', c.byteAttr(wordStart+4, true))
			}
		}
		put(' ', c.byteAttr(wordStart+int64(bpw-1), true))
	}

	put(' ', c.textAttr)

	for i := 0; i < l.BytesPerLine; i++ {
		ch := ' '
		if i < n {
			ch = '.'
			if b := data[start+int64(i)]; printable(b) {
				ch = rune(b)
			}
		}
		put(ch, c.byteAttr(start+int64(i), false))
	}
	return cells
}

func (c *Control) paintLine(row int, line int64) {
	cells := c.RenderLine(line)
	for col := 0; col < c.width; col++ {
		i := c.left + col
		if i < len(cells) {
			c.surface.SetCell(col, row, cells[i].Ch, cells[i].Attr)
		} else {
			c.surface.SetCell(col, row, ' ', c.textAttr)
		}
	}
}

// Paint redraws the dirty lines that are on screen, places the cursor and
// clears the dirty range.
func (c *Control) Paint() {
	if !c.dirty.empty() {
		for row := 0; row < c.height; row++ {
			line := c.top + int64(row)
			if c.dirty.contains(line) {
				c.paintLine(row, line)
			}
		}
	}
	c.dirty = emptyRange()
	c.paintCursor()
}

// CursorPercent is the cursor height to show, or zero when hidden.
func (c *Control) CursorPercent() int {
	if !c.focused {
		return 0
	}
	if c.insert {
		return CursorInsertPercent
	}
	return CursorOverwritePercent
}

func (c *Control) paintCursor() {
	row := c.cursor.Line - c.top
	col := c.cursor.Col - c.left
	percent := c.CursorPercent()
	if percent == 0 || row < 0 || row >= int64(c.height) || col < 0 || col >= c.width {
		c.surface.SetCursor(false, 0, 0, 0)
		return
	}
	c.surface.SetCursor(true, percent, col, int(row))
}
