package hexedit

import (
	"hexedit/internal/layout"
)

func hexNibble(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}

// setNibble replaces the four bits at shift (0 or 4) of the byte at off.
func (c *Control) setNibble(off int64, shift int, v byte) {
	b, _ := c.buf.ByteAt(off)
	b = b&^(0x0F<<shift) | v<<shift
	c.buf.SetByte(off, b)
}

// reserve makes sure the store can hold n bytes so that the edit that
// follows cannot fail half way.
func (c *Control) reserve(n int64) error {
	return c.buf.EnsureAllocated(max(n, c.buf.Valid()))
}

// extendTo zero fills the buffer up to off when the cursor sits past the end.
func (c *Control) extendTo(off int64) (bool, error) {
	if off <= c.buf.Valid() {
		return false, nil
	}
	return true, c.buf.EnsureValid(off)
}

// overwriteCell replaces the nibble or byte under at with r and returns the
// cell that follows. Writing past the end extends the buffer.
func (c *Control) overwriteCell(at layout.Cell, r rune) (layout.Cell, bool, error) {
	lk := c.lookupAt(at)
	off := c.layout.BufferOffset(at.Line, lk)

	var editOff int64
	var write func()
	switch lk.Kind {
	case layout.KindHexDigit:
		nib, ok := hexNibble(r)
		if !ok {
			return at, false, nil
		}
		editOff = off + int64(lk.BitShift/8)
		write = func() { c.setNibble(editOff, lk.BitShift%8, nib) }
	case layout.KindCharValue:
		b, ok := c.codePage.ToByte(r)
		if !ok {
			return at, false, nil
		}
		editOff = off
		write = func() { c.buf.SetByte(editOff, b) }
	default:
		return at, false, nil
	}

	if err := c.reserve(editOff + 1); err != nil {
		return at, false, err
	}
	grew, err := c.extendTo(editOff + 1)
	if err != nil {
		return at, false, err
	}
	write()

	next, _, _, _ := c.layout.NextCellSameType(lk.Kind, off, lk.BitShift)
	c.markEdited(at.Line, next.Line, grew)
	return next, true, nil
}

// insertCell inserts r at the cell under at. In the hex column a new word is
// opened when the first nibble of a word is typed; the remaining nibbles of
// that word are then filled in place.
func (c *Control) insertCell(at layout.Cell, r rune) (layout.Cell, bool, error) {
	lk := c.lookupAt(at)
	off := c.layout.BufferOffset(at.Line, lk)

	switch lk.Kind {
	case layout.KindHexDigit:
		nib, ok := hexNibble(r)
		if !ok {
			return at, false, nil
		}
		bpw := int64(c.layout.BytesPerWord)
		if err := c.reserve(max(off, c.buf.Valid()) + bpw); err != nil {
			return at, false, err
		}
		grew, err := c.extendTo(off)
		if err != nil {
			return at, false, err
		}
		if lk.BitShift == c.layout.MaxBitShift() {
			if err := c.buf.InsertSpace(off, bpw); err != nil {
				return at, false, err
			}
			grew = true
		}
		editOff := off + int64(lk.BitShift/8)
		if editOff >= c.buf.Valid() {
			if err := c.buf.EnsureValid(editOff + 1); err != nil {
				return at, false, err
			}
			grew = true
		}
		c.setNibble(editOff, lk.BitShift%8, nib)

		next, _, _, _ := c.layout.NextCellSameType(lk.Kind, off, lk.BitShift)
		c.markEdited(at.Line, next.Line, grew)
		return next, true, nil

	case layout.KindCharValue:
		b, ok := c.codePage.ToByte(r)
		if !ok {
			return at, false, nil
		}
		if err := c.reserve(max(off, c.buf.Valid()) + 1); err != nil {
			return at, false, err
		}
		if _, err := c.extendTo(off); err != nil {
			return at, false, err
		}
		if err := c.buf.InsertSpace(off, 1); err != nil {
			return at, false, err
		}
		c.buf.SetByte(off, b)

		next, _, _, _ := c.layout.NextCellSameType(lk.Kind, off, 0)
		c.markEdited(at.Line, next.Line, true)
		return next, true, nil
	}
	return at, false, nil
}

// deleteCell removes what is under at. On the low nibble of a word the whole
// word goes; on any other nibble the nibble is cleared. In the character
// column one byte goes. Nothing happens past the end of the data.
func (c *Control) deleteCell(at layout.Cell) (layout.Cell, bool) {
	lk := c.lookupAt(at)
	if !lk.Kind.Editable() || !lk.InBounds {
		return at, false
	}
	off := c.layout.BufferOffset(at.Line, lk)

	next := at
	switch {
	case lk.Kind == layout.KindCharValue:
		c.buf.DeleteRange(off, 1)
		c.markEdited(at.Line, toEnd, true)
	case lk.BitShift == 0:
		c.buf.DeleteRange(off, int64(c.layout.BytesPerWord))
		next = c.layout.CellFromHexOffset(off, c.layout.MaxBitShift())
		c.markEdited(at.Line, toEnd, true)
	default:
		c.setNibble(off+int64(lk.BitShift/8), lk.BitShift%8, 0)
		next, _, _, _ = c.layout.NextCellSameType(lk.Kind, off, lk.BitShift)
		c.markEdited(at.Line, next.Line, false)
	}
	c.dropStaleSelection()
	return next, true
}

func (c *Control) markEdited(first, last int64, resized bool) {
	if resized {
		last = toEnd
	}
	c.dirty.expand(first, last)
	c.modified = true
}

// AddChar applies one typed character at the cursor in the current mode.
func (c *Control) AddChar(r rune) (bool, error) {
	if c.readOnly {
		return false, ErrReadOnly
	}
	edit := c.overwriteCell
	if c.insert {
		edit = c.insertCell
	}
	next, ok, err := edit(c.cursor, r)
	if err != nil || !ok {
		return false, err
	}
	c.setCursor(next)
	return true, nil
}

// Delete removes the nibble, word or byte under the cursor.
func (c *Control) Delete() (bool, error) {
	if c.readOnly {
		return false, ErrReadOnly
	}
	next, ok := c.deleteCell(c.cursor)
	if !ok {
		return false, nil
	}
	c.setCursor(next)
	return true, nil
}

// ToggleInsert flips between insert and overwrite mode.
func (c *Control) ToggleInsert() bool {
	if c.readOnly {
		return false
	}
	c.insert = !c.insert
	return true
}
