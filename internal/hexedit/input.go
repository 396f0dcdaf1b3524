package hexedit

import "hexedit/internal/log"

// Mod is the set of modifier keys held during a key event.
type Mod uint16

const (
	ModShift Mod = 1 << iota
	ModLeftCtrl
	ModRightCtrl
	ModLeftAlt
	ModRightAlt
	// ModEnhanced marks keys from the dedicated cursor block rather than the
	// keypad.
	ModEnhanced
)

const (
	ModCtrl = ModLeftCtrl | ModRightCtrl
	ModAlt  = ModLeftAlt | ModRightAlt
)

// Key identifies a non-character key.
type Key int

const (
	KeyNone Key = iota
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyAlt
	KeyNumpadAdd
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
)

// Event is anything HandleEvent accepts.
type Event interface {
	event()
}

type KeyDown struct {
	Key  Key
	Char rune
	Mods Mod
}

type KeyUp struct {
	Key  Key
	Char rune
	Mods Mod
}

// MouseDown is a button press at client coordinates.
type MouseDown struct {
	X, Y int
}

type MouseWheel struct {
	Lines int
	Up    bool
}

type FocusChange struct {
	Focused bool
}

// Destroyed is sent when the owning window goes away.
type Destroyed struct{}

func (KeyDown) event()     {}
func (KeyUp) event()       {}
func (MouseDown) event()   {}
func (MouseWheel) event()  {}
func (FocusChange) event() {}
func (Destroyed) event()   {}

// HandleEvent applies one input event. It reports whether the control
// consumed it. The caller repaints afterwards.
func (c *Control) HandleEvent(ev Event) bool {
	if c.destroyed {
		return false
	}
	switch ev := ev.(type) {
	case Destroyed:
		c.Destroy()
		return true
	case FocusChange:
		c.SetFocus(ev.Focused)
		return true
	case KeyDown:
		return c.keyDown(ev)
	case KeyUp:
		return c.keyUp(ev)
	case MouseWheel:
		c.ScrollWheel(ev.Lines, ev.Up)
		return true
	case MouseDown:
		return c.mouseDown(ev.X, ev.Y)
	}
	return false
}

func (c *Control) keyDown(ev KeyDown) bool {
	switch ev.Mods {
	// Ctrl+Alt is how AltGr arrives, so it types like a plain key.
	case 0, ModShift,
		ModLeftCtrl | ModLeftAlt, ModLeftCtrl | ModLeftAlt | ModShift,
		ModLeftCtrl | ModRightAlt, ModLeftCtrl | ModRightAlt | ModShift:
		if c.navigationKey(ev.Key) {
			return true
		}
		return c.typeChar(ev.Char)

	case ModLeftCtrl, ModRightCtrl,
		ModEnhanced | ModLeftCtrl, ModEnhanced | ModRightCtrl,
		ModShift | ModLeftCtrl, ModShift | ModRightCtrl,
		ModEnhanced | ModShift | ModLeftCtrl, ModEnhanced | ModShift | ModRightCtrl:
		return c.ctrlKey(ev.Key)

	case ModLeftAlt, ModLeftAlt | ModEnhanced:
		return c.numeric.add(ev)

	case ModEnhanced, ModEnhanced | ModShift:
		return c.navigationKey(ev.Key)
	}
	return false
}

func (c *Control) typeChar(r rune) bool {
	switch r {
	case 0, '\t', '\r', '\b', '\x1b', '\n':
		return false
	}
	if c.readOnly {
		return false
	}
	c.ClearSelection()
	c.addCharLogged(r)
	c.EnsureCursorVisible()
	return true
}

func (c *Control) navigationKey(k Key) bool {
	switch k {
	case KeyArrowLeft:
		c.MoveLeft()
	case KeyArrowRight:
		c.MoveRight()
	case KeyArrowUp:
		c.MoveUp()
	case KeyArrowDown:
		c.MoveDown()
	case KeyHome:
		c.MoveHome()
	case KeyEnd:
		c.MoveEnd()
	case KeyPageUp:
		c.PageUp()
	case KeyPageDown:
		c.PageDown()
	case KeyInsert:
		c.ToggleInsert()
	case KeyDelete:
		if !c.readOnly {
			c.ClearSelection()
			if ok, _ := c.Delete(); ok {
				c.EnsureCursorVisible()
			}
		}
	default:
		return false
	}
	return true
}

func (c *Control) ctrlKey(k Key) bool {
	switch k {
	case KeyHome:
		c.MoveToStart()
	case KeyEnd:
		c.MoveToEnd()
	default:
		return false
	}
	return true
}

// keyUp finishes an Alt+keypad sequence when Alt is released. A bare Alt
// release that carries a character inserts that character.
func (c *Control) keyUp(ev KeyUp) bool {
	if ev.Mods&ModAlt != 0 || c.readOnly {
		return false
	}
	if !c.numeric.pending() && !(ev.Key == KeyAlt && ev.Char != 0) {
		return false
	}

	value, kind := c.numeric.value, c.numeric.kind
	if !c.numeric.pending() {
		value, kind = uint32(ev.Char), NumericUnicode
	}
	c.numeric.reset()

	r, ok := c.codePage.Decode(value, kind)
	if !ok {
		return false
	}
	c.ClearSelection()
	c.addCharLogged(r)
	c.EnsureCursorVisible()
	return true
}

// mouseDown moves the cursor to the clicked cell when it holds data or is
// just past the end.
func (c *Control) mouseDown(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	line := c.top + int64(y)
	col := c.left + x
	lk := c.layout.Classify(line, col, c.buf.Valid())
	if !lk.Kind.Editable() {
		return true
	}
	off := c.layout.BufferOffset(line, lk)
	if off > c.buf.Valid() {
		return true
	}
	c.ClearSelection()
	c.setCursor(c.layout.CellFor(lk.Kind, off, lk.BitShift))
	c.EnsureCursorVisible()
	return true
}

// addCharLogged types r for a key event, which has no caller to report to.
func (c *Control) addCharLogged(r rune) {
	if _, err := c.AddChar(r); err != nil {
		log.ErrorErr(log.CatEdit, "add char", err, "char", string(r))
	}
}
