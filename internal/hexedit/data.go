package hexedit

import (
	"fmt"

	"hexedit/internal/buffer"
	"hexedit/internal/layout"
)

// SetDataNoCopy makes d the control's buffer without copying it. The control
// takes its own reference; the caller keeps theirs.
func (c *Control) SetDataNoCopy(d *buffer.Data, valid int64) error {
	if err := c.buf.Attach(d, valid); err != nil {
		return err
	}
	c.dropStaleSelection()
	c.clampCursor()
	c.dirtyAll()
	c.EnsureCursorVisible()
	return nil
}

// DataNoCopy returns a new reference to the live buffer and its valid
// length. The bytes change with the next edit; the caller must Release the
// reference.
func (c *Control) DataNoCopy() (*buffer.Data, int64) {
	return c.buf.Share()
}

// Bytes returns the valid bytes. Like DataNoCopy the slice is live.
func (c *Control) Bytes() []byte {
	return c.buf.Bytes()
}

func (c *Control) Len() int64 {
	return c.buf.Valid()
}

// ByteAt returns one valid byte.
func (c *Control) ByteAt(off int64) (byte, bool) {
	return c.buf.ByteAt(off)
}

// InsertData inserts p at off, which may be the end of the data.
func (c *Control) InsertData(off int64, p []byte) error {
	if off < 0 || off > c.buf.Valid() {
		return fmt.Errorf("insert at %d: %w", off, ErrInvalidRange)
	}
	if err := c.buf.Insert(off, p); err != nil {
		return err
	}
	c.dirty.expand(c.lineOf(off), toEnd)
	c.EnsureCursorVisible()
	return nil
}

// DeleteData removes up to n bytes at off.
func (c *Control) DeleteData(off, n int64) error {
	if off < 0 || off >= c.buf.Valid() || n < 0 {
		return fmt.Errorf("delete %d at %d: %w", n, off, ErrInvalidRange)
	}
	c.buf.DeleteRange(off, n)
	c.dirty.expand(c.lineOf(off), toEnd)
	c.dropStaleSelection()
	c.clampCursor()
	c.updateScrollBar()
	return nil
}

// ReplaceData overwrites bytes in place. It never extends the buffer.
func (c *Control) ReplaceData(off int64, p []byte) error {
	if off < 0 || off+int64(len(p)) > c.buf.Valid() {
		return fmt.Errorf("replace %d at %d: %w", len(p), off, ErrInvalidRange)
	}
	if err := c.buf.Replace(off, p); err != nil {
		return err
	}
	c.dirty.expand(c.lineOf(off), c.lineOf(off+int64(len(p))))
	return nil
}

// Clear empties the control and returns the cursor and view to the start.
func (c *Control) Clear() {
	c.sel = nil
	c.buf.Reset()
	c.top = 0
	c.left = 0
	c.setCursor(c.layout.CellFor(layout.KindHexDigit, 0, c.layout.MaxBitShift()))
	c.dirtyAll()
	c.updateScrollBar()
}
