package hexedit

import (
	"hexedit/internal/layout"
)

func (c *Control) lookupAt(cell layout.Cell) layout.Lookup {
	return c.layout.Classify(cell.Line, cell.Col, c.buf.Valid())
}

// cursorData returns the cell kind and buffer location under the cursor.
func (c *Control) cursorData() (layout.Kind, int64, int) {
	lk := c.lookupAt(c.cursor)
	return lk.Kind, c.layout.BufferOffset(c.cursor.Line, lk), lk.BitShift
}

// setCursor moves the cursor to cell and tells the subscriber.
func (c *Control) setCursor(cell layout.Cell) {
	if cell == c.cursor {
		return
	}
	c.cursor = cell
	if c.onCursorMove != nil {
		_, off, shift := c.cursorData()
		c.onCursorMove(off, shift)
	}
}

// moveTo places the cursor on the cell of the given kind for a buffer
// location and scrolls it into view. It reports whether the cursor moved.
func (c *Control) moveTo(kind layout.Kind, off int64, shift int) bool {
	if !kind.Editable() {
		return false
	}
	cell := c.layout.CellFor(kind, off, shift)
	if cell == c.cursor {
		return false
	}
	c.setCursor(cell)
	c.EnsureCursorVisible()
	return true
}

// CursorLocation returns the cursor as a buffer location. asChar is true when
// the cursor is in the character column.
func (c *Control) CursorLocation() (asChar bool, off int64, bitShift int) {
	kind, off, shift := c.cursorData()
	return kind == layout.KindCharValue, off, shift
}

// SetCursorLocation moves the cursor without touching the selection. The
// location may be at most one past the valid data.
func (c *Control) SetCursorLocation(asChar bool, off int64, bitShift int) bool {
	if off < 0 || off > c.buf.Valid() {
		return false
	}
	kind := layout.KindHexDigit
	if asChar {
		kind = layout.KindCharValue
		bitShift = 0
	} else if bitShift < 0 || bitShift > c.layout.MaxBitShift() || bitShift%4 != 0 {
		return false
	}
	return c.moveTo(kind, off, bitShift)
}

// VisualCursorLocation returns the cursor's column and line.
func (c *Control) VisualCursorLocation() (col int, line int64) {
	return c.cursor.Col, c.cursor.Line
}

// MoveLeft steps back one nibble or byte.
func (c *Control) MoveLeft() bool {
	kind, off, shift := c.cursorData()
	cell, _, _, ok := c.layout.PrevCellSameType(kind, off, shift)
	if !ok || cell == c.cursor {
		return false
	}
	c.ClearSelection()
	c.setCursor(cell)
	c.EnsureCursorVisible()
	return true
}

// MoveRight steps forward one nibble or byte. From the end of the data it
// stops one position past the last byte.
func (c *Control) MoveRight() bool {
	kind, off, shift := c.cursorData()
	cell, next, _, ok := c.layout.NextCellSameType(kind, off, shift)
	if !ok {
		return false
	}
	if off >= c.buf.Valid() && next > c.buf.Valid() {
		return false
	}
	c.ClearSelection()
	c.setCursor(cell)
	c.EnsureCursorVisible()
	return true
}

// MoveHome goes to the first byte of the line.
func (c *Control) MoveHome() bool {
	kind, off, shift := c.cursorData()
	off = c.layout.LineStart(c.lineOf(off))
	if kind == layout.KindHexDigit {
		shift = c.layout.MaxBitShift()
	}
	c.ClearSelection()
	return c.moveTo(kind, off, shift)
}

// MoveEnd goes to the last word or byte of the line, or the end of the data
// when the line is short.
func (c *Control) MoveEnd() bool {
	kind, off, _ := c.cursorData()
	valid := c.buf.Valid()
	off = c.layout.LineStart(c.lineOf(off) + 1)
	if kind == layout.KindHexDigit {
		bpw := int64(c.layout.BytesPerWord)
		off -= bpw
		if off > valid {
			off = valid / bpw * bpw
		}
	} else {
		off--
		if off > valid {
			off = valid
		}
	}
	c.ClearSelection()
	return c.moveTo(kind, off, 0)
}

func (c *Control) MoveUp() bool {
	if c.cursor.Line == 0 {
		return false
	}
	lk := c.lookupAt(c.cursor)
	off := c.layout.BufferOffset(c.cursor.Line-1, lk)
	c.ClearSelection()
	return c.moveTo(lk.Kind, off, lk.BitShift)
}

// MoveDown refuses to go past the end of the data.
func (c *Control) MoveDown() bool {
	lk := c.lookupAt(c.cursor)
	off := c.layout.BufferOffset(c.cursor.Line+1, lk)
	if off > c.buf.Valid() {
		return false
	}
	c.ClearSelection()
	return c.moveTo(lk.Kind, off, lk.BitShift)
}

// MoveToStart goes to the first byte of the buffer.
func (c *Control) MoveToStart() bool {
	kind, _, shift := c.cursorData()
	if kind == layout.KindHexDigit {
		shift = c.layout.MaxBitShift()
	}
	c.ClearSelection()
	return c.moveTo(kind, 0, shift)
}

// MoveToEnd goes just past the last byte of the buffer.
func (c *Control) MoveToEnd() bool {
	kind, _, _ := c.cursorData()
	off := c.buf.Valid()
	if kind == layout.KindHexDigit {
		bpw := int64(c.layout.BytesPerWord)
		off = off / bpw * bpw
	}
	c.ClearSelection()
	return c.moveTo(kind, off, 0)
}

// clampCursor pulls the cursor back inside the data after a shrink.
func (c *Control) clampCursor() {
	kind, off, _ := c.cursorData()
	if off <= c.buf.Valid() {
		return
	}
	off = c.buf.Valid()
	shift := 0
	if kind == layout.KindHexDigit {
		bpw := int64(c.layout.BytesPerWord)
		off = off / bpw * bpw
		shift = c.layout.MaxBitShift()
	}
	c.moveTo(kind, off, shift)
}
