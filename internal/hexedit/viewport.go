package hexedit

// ViewportLocation returns the first visible column and line.
func (c *Control) ViewportLocation() (left int, top int64) {
	return c.left, c.top
}

func (c *Control) linesPopulated() int64 {
	return c.layout.LinesPopulated(c.buf.Valid())
}

func (c *Control) maxTop() int64 {
	return max(0, c.linesPopulated()-int64(c.height))
}

// SetViewportLocation scrolls without moving the cursor. A top past the data
// is pulled back to the last populated line.
func (c *Control) SetViewportLocation(left int, top int64) {
	left = max(left, 0)
	top = max(top, 0)
	if lines := c.linesPopulated(); top > lines {
		top = max(lines-1, 0)
	}
	if left == c.left && top == c.top {
		return
	}
	c.left = left
	c.top = top
	c.dirty.expand(c.top, toEnd)
	c.updateScrollBar()
}

// EnsureCursorVisible scrolls the smallest distance that brings the cursor
// into the client area.
func (c *Control) EnsureCursorVisible() {
	left, top := c.left, c.top

	if c.width > 0 {
		if c.cursor.Col < left {
			left = c.cursor.Col
		} else if c.cursor.Col >= left+c.width {
			left = c.cursor.Col - c.width + 1
		}
	}
	if c.height > 0 {
		if c.cursor.Line < top {
			top = c.cursor.Line
		} else if c.cursor.Line >= top+int64(c.height) {
			top = c.cursor.Line - int64(c.height) + 1
		}
	}

	if left != c.left || top != c.top {
		c.left = left
		c.top = top
		c.dirty.expand(c.top, toEnd)
	}
	c.updateScrollBar()
}

func (c *Control) updateScrollBar() {
	if c.scroll == nil {
		return
	}
	c.scroll.SetPosition(c.top, int64(c.height), c.maxTop())
}

// PageUp moves the view and the cursor up by a screen.
func (c *Control) PageUp() bool {
	if c.cursor.Line == 0 || c.height <= 0 {
		return false
	}
	h := int64(c.height)
	c.top = max(c.top-h, 0)
	c.dirty.expand(c.top, toEnd)

	cell := c.cursor
	cell.Line = max(cell.Line-h, 0)
	c.ClearSelection()
	c.setCursor(cell)
	c.updateScrollBar()
	return true
}

// PageDown moves the view and the cursor down by a screen. The cursor stops
// on the last populated line.
func (c *Control) PageDown() bool {
	h := int64(c.height)
	lines := c.linesPopulated()
	if h <= 0 || c.top+h >= lines {
		return false
	}
	c.top += h
	c.dirty.expand(c.top, toEnd)

	cell := c.cursor
	if cell.Line+h < lines {
		cell.Line += h
	} else if cell.Line+1 < lines {
		cell.Line = lines - 1
	}
	c.ClearSelection()
	c.setCursor(cell)
	c.updateScrollBar()
	return true
}

// ScrollWheel scrolls by n lines without moving the cursor.
func (c *Control) ScrollWheel(n int, up bool) {
	lines := c.linesPopulated()
	h := int64(c.height)
	top := c.top
	if up {
		top = max(top-int64(n), 0)
	} else if top+int64(n)+h > lines {
		top = max(lines-h, 0)
	} else {
		top += int64(n)
	}
	c.SetViewportLocation(c.left, top)
}

// NotifyScrollChange applies a position chosen on the host's scroll bar. The
// cursor line follows only if it fell out of view.
func (c *Control) NotifyScrollChange(top int64) {
	top = min(max(top, 0), c.maxTop())
	if top != c.top {
		c.top = top
		c.dirty.expand(c.top, toEnd)
	}

	cell := c.cursor
	h := int64(c.height)
	if cell.Line < c.top {
		cell.Line = c.top
	} else if h > 0 && cell.Line >= c.top+h {
		cell.Line = c.top + h - 1
	}
	c.setCursor(cell)
	c.updateScrollBar()
}
