// Package hexedit implements an editable hex view of a byte buffer for a
// character cell display.
//
// A Control owns a growable buffer and shows it as lines of sixteen bytes,
// grouped into words of one, two, four or eight bytes, with an optional
// offset column and a character column. The cursor sits either on a hex
// digit or on a character cell and edits in insert or overwrite mode.
//
// Mutating calls only record which lines need redrawing; Paint writes those
// lines to the attached Surface. Errors are returned to the caller and never
// logged here.
package hexedit

import (
	"errors"
	"fmt"

	"hexedit/internal/buffer"
	"hexedit/internal/layout"
)

var (
	ErrInvalidWordSize  = errors.New("hexedit: bytes per word must be 1, 2, 4 or 8")
	ErrConflictingStyle = errors.New("hexedit: offset styles are mutually exclusive")
	ErrInvalidStyle     = errors.New("hexedit: style not supported here")
	ErrInvalidRange     = errors.New("hexedit: invalid range")
	ErrReadOnly         = errors.New("hexedit: control is read only")
	ErrNotifySet        = errors.New("hexedit: cursor notification already set")
)

// Style flags select optional parts of the control.
type Style uint32

const (
	StyleScrollbar Style = 1 << iota
	StyleReadOnly
	StyleOffset32
	StyleOffset64
)

const offsetStyles = StyleOffset32 | StyleOffset64

func (s Style) offsetWidth() int {
	switch {
	case s&StyleOffset32 != 0:
		return 32
	case s&StyleOffset64 != 0:
		return 64
	}
	return 0
}

// ScrollBar is the host's vertical scroll bar.
type ScrollBar interface {
	SetPosition(top, visible, maxTop int64)
}

// Options configure a new control.
type Options struct {
	Caption      string
	Width        int
	Height       int
	BytesPerWord int
	Style        Style

	// Surface receives painted cells. A Grid of the client size is created
	// when nil.
	Surface   Surface
	ScrollBar ScrollBar
	CodePage  CodePage

	BufferOptions []buffer.Option
}

// Control is a hex edit widget.
type Control struct {
	layout layout.Layout
	buf    *buffer.Buffer

	caption string
	width   int
	height  int

	cursor layout.Cell
	top    int64
	left   int

	dirty lineRange
	sel   *Range

	insert       bool
	readOnly     bool
	focused      bool
	modified     bool
	hasScrollbar bool
	destroyed    bool

	textAttr Attr
	selAttr  Attr

	surface      Surface
	scroll       ScrollBar
	codePage     CodePage
	numeric      numericKey
	onCursorMove func(off int64, bitShift int)
}

func New(opts Options) (*Control, error) {
	if !layout.ValidWordSize(opts.BytesPerWord) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWordSize, opts.BytesPerWord)
	}
	if opts.Style&offsetStyles == offsetStyles {
		return nil, ErrConflictingStyle
	}

	c := &Control{
		layout:       layout.New(opts.BytesPerWord, opts.Style.offsetWidth()),
		buf:          buffer.New(opts.BufferOptions...),
		caption:      opts.Caption,
		readOnly:     opts.Style&StyleReadOnly != 0,
		hasScrollbar: opts.Style&StyleScrollbar != 0,
		textAttr:     DefaultTextAttr,
		selAttr:      DefaultTextAttr.Inverse(),
		surface:      opts.Surface,
		scroll:       opts.ScrollBar,
		codePage:     opts.CodePage,
		dirty:        emptyRange(),
	}
	if c.codePage == nil {
		c.codePage = DefaultCodePage()
	}
	if c.surface == nil {
		c.surface = NewGrid(opts.Width, opts.Height)
	}
	c.cursor = c.layout.CellFromHexOffset(0, c.layout.MaxBitShift())
	c.SetSize(opts.Width, opts.Height)
	return c, nil
}

// Surface returns the paint target.
func (c *Control) Surface() Surface {
	return c.surface
}

// SetSize changes the client area and repaints everything.
func (c *Control) SetSize(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	if r, ok := c.surface.(interface{ Resize(int, int) }); ok {
		r.Resize(c.width, c.height)
	}
	c.dirtyAll()
	c.EnsureCursorVisible()
}

func (c *Control) Size() (int, int) {
	return c.width, c.height
}

func (c *Control) Layout() layout.Layout {
	return c.layout
}

func (c *Control) BytesPerWord() int {
	return c.layout.BytesPerWord
}

// SetBytesPerWord regroups the hex digits. The cursor keeps pointing at the
// same nibble.
func (c *Control) SetBytesPerWord(n int) error {
	if !layout.ValidWordSize(n) {
		return fmt.Errorf("%w: %d", ErrInvalidWordSize, n)
	}
	kind, off, shift := c.cursorData()

	next := c.layout
	next.BytesPerWord = n
	if kind == layout.KindHexDigit {
		off, shift = next.Realign(off, shift)
	}
	c.relayout(next, kind, off, shift)
	return nil
}

// Style returns the current style flags.
func (c *Control) Style() Style {
	var s Style
	switch c.layout.OffsetWidth {
	case 32:
		s |= StyleOffset32
	case 64:
		s |= StyleOffset64
	}
	if c.readOnly {
		s |= StyleReadOnly
	}
	if c.hasScrollbar {
		s |= StyleScrollbar
	}
	return s
}

// SetStyle changes the offset column. Only the offset flags may be passed.
func (c *Control) SetStyle(s Style) error {
	if s&^offsetStyles != 0 {
		return ErrInvalidStyle
	}
	if s&offsetStyles == offsetStyles {
		return ErrConflictingStyle
	}
	kind, off, shift := c.cursorData()

	next := c.layout
	next.OffsetWidth = s.offsetWidth()
	c.relayout(next, kind, off, shift)
	return nil
}

func (c *Control) relayout(next layout.Layout, kind layout.Kind, off int64, shift int) {
	c.layout = next
	c.moveTo(kind, off, shift)
	c.dirty.expand(c.top, toEnd)
	c.EnsureCursorVisible()
}

func (c *Control) HasScrollbar() bool {
	return c.hasScrollbar
}

func (c *Control) ReadOnly() bool {
	return c.readOnly
}

func (c *Control) SetReadOnly(v bool) {
	c.readOnly = v
}

func (c *Control) Modified() bool {
	return c.modified
}

func (c *Control) SetModified(v bool) {
	c.modified = v
}

func (c *Control) InsertMode() bool {
	return c.insert
}

// SetInsertMode switches between insert and overwrite editing.
func (c *Control) SetInsertMode(v bool) {
	c.insert = v
}

func (c *Control) Caption() string {
	return c.caption
}

func (c *Control) SetCaption(s string) {
	c.caption = s
}

// Colors returns the normal and selected attributes.
func (c *Control) Colors() (text, selected Attr) {
	return c.textAttr, c.selAttr
}

// SetColors changes the attributes and repaints everything. A zero selected
// attribute means the inverse of text.
func (c *Control) SetColors(text, selected Attr) {
	if selected == 0 {
		selected = text.Inverse()
	}
	c.textAttr = text
	c.selAttr = selected
	c.dirtyAll()
}

func (c *Control) Focused() bool {
	return c.focused
}

// SetFocus records whether the control has input focus. Only the cursor
// depends on it.
func (c *Control) SetFocus(v bool) {
	c.focused = v
}

// SetCursorMoveNotify registers the single cursor movement callback. Passing
// nil removes it.
func (c *Control) SetCursorMoveNotify(fn func(off int64, bitShift int)) error {
	if fn != nil && c.onCursorMove != nil {
		return ErrNotifySet
	}
	c.onCursorMove = fn
	return nil
}

// Destroy releases the buffer. The control must not be used afterwards.
func (c *Control) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.sel = nil
	c.buf.Reset()
	c.onCursorMove = nil
}

func (c *Control) Destroyed() bool {
	return c.destroyed
}
