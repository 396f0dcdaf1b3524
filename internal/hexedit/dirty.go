package hexedit

import "math"

// toEnd marks a dirty range that runs past the last line.
const toEnd = math.MaxInt64

// lineRange is an inclusive range of lines. It is empty when first > last.
type lineRange struct {
	first, last int64
}

func emptyRange() lineRange {
	return lineRange{first: toEnd, last: -1}
}

func (r lineRange) empty() bool {
	return r.first > r.last
}

func (r lineRange) contains(line int64) bool {
	return line >= r.first && line <= r.last
}

// expand grows r to cover [first, last]. It never shrinks.
func (r *lineRange) expand(first, last int64) {
	if first > last {
		first, last = last, first
	}
	if first < r.first {
		r.first = first
	}
	if last > r.last {
		r.last = last
	}
}

// DirtyLines returns the lines awaiting repaint.
func (c *Control) DirtyLines() (first, last int64, ok bool) {
	if c.dirty.empty() {
		return 0, 0, false
	}
	return c.dirty.first, c.dirty.last, true
}

func (c *Control) dirtyAll() {
	c.dirty.expand(0, toEnd)
}
