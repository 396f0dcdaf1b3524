package editor

import (
	"fmt"
	"path/filepath"

	"hexedit/internal/buffer"
	"hexedit/internal/config"
	"hexedit/internal/hexedit"
	"hexedit/internal/log"
)

// Tab is one open file and the hex view editing it.
type Tab struct {
	view *hexedit.Model
	file *buffer.File

	// cursor is the byte under the cursor, kept current by the control.
	cursor int64
	// anchor is where a shift+arrow selection started, -1 when none.
	anchor int64
}

func newTab(cfg *config.Config, file *buffer.File) (*Tab, error) {
	style := hexedit.Style(0)
	switch cfg.Editor.OffsetWidth {
	case 32:
		style |= hexedit.StyleOffset32
	case 64:
		style |= hexedit.StyleOffset64
	}
	if cfg.Editor.Scrollbar {
		style |= hexedit.StyleScrollbar
	}
	if cfg.Editor.ReadOnly {
		style |= hexedit.StyleReadOnly
	}

	view, err := hexedit.NewModel(hexedit.Options{
		Width:        80,
		Height:       10,
		BytesPerWord: cfg.Editor.BytesPerWord,
		Style:        style,
	})
	if err != nil {
		return nil, err
	}
	t := &Tab{view: view, file: file, anchor: -1}

	ctrl := view.Control()
	ctrl.SetInsertMode(cfg.Editor.InsertMode)
	ctrl.SetColors(hexedit.Attr(cfg.Theme.TextAttr), hexedit.Attr(cfg.Theme.SelectedAttr))
	view.SetWheelLines(cfg.Editor.WheelLines)
	if err := ctrl.SetCursorMoveNotify(t.cursorMoved); err != nil {
		return nil, err
	}
	t.syncCaption()
	return t, nil
}

// openTab loads name into a new tab. The block read from disk is handed to
// the control, which keeps the only reference once ours is dropped.
func openTab(cfg *config.Config, name string) (*Tab, error) {
	file, data, valid, err := buffer.Open(name)
	if err != nil {
		return nil, err
	}
	defer data.Release()

	t, err := newTab(cfg, file)
	if err != nil {
		return nil, err
	}
	if err := t.view.Control().SetDataNoCopy(data, valid); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	log.Info(log.CatFile, "opened", "name", name, "bytes", valid)
	return t, nil
}

func (t *Tab) ctrl() *hexedit.Control {
	return t.view.Control()
}

// cursorMoved tracks the byte under the cursor. Past the last word the
// cursor may sit beyond the data, which counts as the end.
func (t *Tab) cursorMoved(off int64, bitShift int) {
	t.cursor = min(off+int64(bitShift/8), t.ctrl().Len())
}

// Name is the file name shown in the tab bar.
func (t *Tab) Name() string {
	if t.file.IsNew() || t.file.Name() == "" {
		return "[New File]"
	}
	return filepath.Base(t.file.Name())
}

func (t *Tab) Modified() bool {
	return t.ctrl().Modified()
}

// syncCaption puts the file name and its state into the view's border.
func (t *Tab) syncCaption() {
	caption := t.Name()
	if t.Modified() {
		caption = "*" + caption
	}
	if t.ctrl().ReadOnly() {
		caption += " [RO]"
	}
	t.ctrl().SetCaption(caption)
}

// content returns a private copy of the valid bytes.
func (t *Tab) content() []byte {
	data, valid := t.ctrl().DataNoCopy()
	defer data.Release()
	out := make([]byte, valid)
	copy(out, data.Bytes()[:valid])
	return out
}

func (t *Tab) save() error {
	if err := t.file.Save(t.content()); err != nil {
		return err
	}
	t.ctrl().SetModified(false)
	t.syncCaption()
	log.Info(log.CatFile, "saved", "name", t.file.Name(), "bytes", t.ctrl().Len())
	return nil
}

func (t *Tab) saveAs(name string) error {
	if err := t.file.SaveAs(name, t.content()); err != nil {
		return err
	}
	t.ctrl().SetModified(false)
	t.syncCaption()
	log.Info(log.CatFile, "saved as", "name", name, "bytes", t.ctrl().Len())
	return nil
}

// moveTo puts the cursor on the high nibble of the byte at off, in the column
// the cursor is already in.
func (t *Tab) moveTo(off int64) bool {
	asChar, _, _ := t.ctrl().CursorLocation()
	shift := 4
	if asChar {
		shift = 0
	}
	moved := t.ctrl().SetCursorLocation(asChar, off, shift)
	// The cell may be unchanged while the data under it grew.
	_, at, bitShift := t.ctrl().CursorLocation()
	t.cursorMoved(at, bitShift)
	return moved
}

// extendSelection moves the cursor by delta bytes and selects from the
// anchor to the new cursor byte.
func (t *Tab) extendSelection(delta int64) {
	c := t.ctrl()
	valid := c.Len()
	if valid == 0 {
		return
	}
	if t.anchor < 0 || !c.SelectionActive() {
		t.anchor = min(t.cursor, valid-1)
	}

	next := t.cursor + delta
	next = max(0, min(next, valid-1))
	t.moveTo(next)

	first, last := t.anchor, next
	if first > last {
		first, last = last, first
	}
	if err := c.SetSelectionRange(first, last); err != nil {
		log.ErrorErr(log.CatEdit, "select", err, "first", first, "last", last)
	}
}

// close releases the control's buffer.
func (t *Tab) close() {
	t.ctrl().Destroy()
}
