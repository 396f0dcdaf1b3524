package hexedit

// Range is an inclusive span of selected buffer offsets.
type Range struct {
	First, Last int64
}

func (r Range) Len() int64 {
	return r.Last - r.First + 1
}

func (r Range) Contains(off int64) bool {
	return off >= r.First && off <= r.Last
}

func (c *Control) lineOf(off int64) int64 {
	return off / int64(c.layout.BytesPerLine)
}

// Selection returns the active range, if any.
func (c *Control) Selection() (Range, bool) {
	if c.sel == nil {
		return Range{}, false
	}
	return *c.sel, true
}

func (c *Control) SelectionActive() bool {
	return c.sel != nil
}

// ClearSelection drops the selection and repaints the lines it covered.
func (c *Control) ClearSelection() {
	if c.sel == nil {
		return
	}
	c.dirty.expand(c.lineOf(c.sel.First), c.lineOf(c.sel.Last))
	c.sel = nil
}

// SetSelectionRange selects [first, last]. Any previous selection is
// cleared first, so a rejected range leaves nothing selected.
func (c *Control) SetSelectionRange(first, last int64) error {
	c.ClearSelection()

	valid := c.buf.Valid()
	if first < 0 || first > last || first >= valid || last >= valid {
		return ErrInvalidRange
	}
	c.sel = &Range{First: first, Last: last}
	c.dirty.expand(c.lineOf(first), c.lineOf(last))
	return nil
}

// SelectedData returns a copy of the selected bytes.
func (c *Control) SelectedData() ([]byte, bool) {
	if c.sel == nil {
		return nil, false
	}
	out, err := c.buf.Copy(c.sel.First, c.sel.Len())
	if err != nil {
		return nil, false
	}
	return out, true
}

// dropStaleSelection clears a selection that no longer fits the buffer.
func (c *Control) dropStaleSelection() {
	if c.sel != nil && c.sel.Last >= c.buf.Valid() {
		c.ClearSelection()
	}
}

func (c *Control) selected(off int64) bool {
	return c.sel != nil && c.sel.Contains(off)
}
