package hexedit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"hexedit/internal/buffer"
	"hexedit/internal/layout"
)

func newControl(t *testing.T, bpw int, style Style) *Control {
	t.Helper()
	c, err := New(Options{Caption: "test", Width: 80, Height: 10, BytesPerWord: bpw, Style: style})
	require.NoError(t, err)
	return c
}

func withBytes(t *testing.T, c *Control, p []byte) {
	t.Helper()
	d := buffer.Wrap(append([]byte(nil), p...))
	require.NoError(t, c.SetDataNoCopy(d, int64(len(p))))
	d.Release()
}

func typeString(c *Control, s string) {
	for _, r := range s {
		c.HandleEvent(KeyDown{Char: r})
	}
}

func TestNewRejectsBadArguments(t *testing.T) {
	_, err := New(Options{BytesPerWord: 3})
	require.ErrorIs(t, err, ErrInvalidWordSize)

	_, err = New(Options{BytesPerWord: 1, Style: StyleOffset32 | StyleOffset64})
	require.ErrorIs(t, err, ErrConflictingStyle)

	c, err := New(Options{BytesPerWord: 8, Style: StyleOffset64 | StyleScrollbar})
	require.NoError(t, err)
	require.Equal(t, 64, c.Layout().OffsetWidth)
	require.True(t, c.HasScrollbar())
	require.Equal(t, StyleOffset64|StyleScrollbar, c.Style())
}

func TestOverwriteHexOnEmptyBuffer(t *testing.T) {
	c := newControl(t, 1, 0)
	typeString(c, "41")

	require.Equal(t, []byte{0x41}, c.Bytes())
	asChar, off, shift := c.CursorLocation()
	require.False(t, asChar)
	require.Equal(t, int64(1), off)
	require.Equal(t, 4, shift)
	require.True(t, c.Modified())
}

func TestInsertHexGrowsByOneWord(t *testing.T) {
	c := newControl(t, 1, 0)
	c.SetInsertMode(true)

	c.HandleEvent(KeyDown{Char: '4'})
	require.Equal(t, []byte{0x40}, c.Bytes())
	c.HandleEvent(KeyDown{Char: '1'})
	require.Equal(t, []byte{0x41}, c.Bytes())
	require.Equal(t, int64(1), c.Len())
}

func TestInsertHexWordSized(t *testing.T) {
	c := newControl(t, 4, 0)
	withBytes(t, c, []byte{1, 2, 3, 4})
	c.SetInsertMode(true)

	c.HandleEvent(KeyDown{Char: 'f'})
	require.Equal(t, []byte{0, 0, 0, 0xF0, 1, 2, 3, 4}, c.Bytes())

	// The rest of the new word is filled in place.
	typeString(c, "fffffff")
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 1, 2, 3, 4}, c.Bytes())
}

func TestInsertCharInMiddle(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, []byte{0, 1, 2, 3})
	c.SetInsertMode(true)
	require.True(t, c.SetCursorLocation(true, 3, 0))

	c.HandleEvent(KeyDown{Char: 'A'})

	require.Equal(t, []byte{0, 1, 2, 'A', 3}, c.Bytes())
	asChar, off, _ := c.CursorLocation()
	require.True(t, asChar)
	require.Equal(t, int64(4), off)
}

func TestOverwriteNeverChangesLength(t *testing.T) {
	c := newControl(t, 2, 0)
	withBytes(t, c, []byte{0x11, 0x22, 0x33, 0x44})

	typeString(c, "abcd")
	// Digits are typed most significant first into a little-endian word.
	require.Equal(t, []byte{0xCD, 0xAB, 0x33, 0x44}, c.Bytes())
}

func TestNonHexIgnoredInHexCell(t *testing.T) {
	c := newControl(t, 1, 0)
	c.SetInsertMode(true)
	typeString(c, "xz")
	require.Zero(t, c.Len())
	require.False(t, c.Modified())
}

func TestUnmappableCharIgnored(t *testing.T) {
	c := newControl(t, 1, 0)
	require.True(t, c.SetCursorLocation(true, 0, 0))
	typeString(c, "漢")
	require.Zero(t, c.Len())

	typeString(c, "€")
	require.Equal(t, []byte{0x80}, c.Bytes())
}

func TestDeleteCell(t *testing.T) {
	c := newControl(t, 2, 0)
	withBytes(t, c, []byte{0x11, 0x22, 0x33, 0x44})

	ok, err := c.Delete()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte{0x11, 0x02, 0x33, 0x44}, c.Bytes(), "nibble cleared in place")

	require.True(t, c.SetCursorLocation(false, 0, 0))
	ok, _ = c.Delete()
	require.True(t, ok)
	require.Equal(t, []byte{0x33, 0x44}, c.Bytes(), "low nibble removes the word")

	require.True(t, c.SetCursorLocation(true, 1, 0))
	ok, _ = c.Delete()
	require.True(t, ok)
	require.Equal(t, []byte{0x33}, c.Bytes())

	ok, _ = c.Delete()
	require.False(t, ok, "delete past the end")
	require.Equal(t, []byte{0x33}, c.Bytes())
}

func TestReadOnly(t *testing.T) {
	c := newControl(t, 1, StyleReadOnly)
	withBytes(t, c, []byte{1, 2, 3})

	_, err := c.AddChar('f')
	require.ErrorIs(t, err, ErrReadOnly)
	require.False(t, c.HandleEvent(KeyDown{Char: 'f'}))
	require.False(t, c.ToggleInsert())
	c.HandleEvent(KeyDown{Key: KeyDelete, Mods: ModEnhanced})
	require.Equal(t, []byte{1, 2, 3}, c.Bytes())

	require.True(t, c.HandleEvent(KeyDown{Key: KeyArrowRight, Mods: ModEnhanced}))
	_, _, shift := c.CursorLocation()
	require.Equal(t, 0, shift)
	require.NoError(t, c.SetSelectionRange(0, 1))
}

func TestMoveRightStopsPastEnd(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, []byte{1})

	require.True(t, c.MoveRight())
	require.True(t, c.MoveRight())
	_, off, shift := c.CursorLocation()
	require.Equal(t, int64(1), off)
	require.Equal(t, 4, shift)

	// Both nibbles of the byte past the end are reachable, nothing further.
	require.True(t, c.MoveRight())
	require.False(t, c.MoveRight())
	_, off, shift = c.CursorLocation()
	require.Equal(t, int64(1), off)
	require.Equal(t, 0, shift)
}

func TestMoveLeftAtStart(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, []byte{1, 2})
	require.False(t, c.MoveLeft())
}

func TestHomeEnd(t *testing.T) {
	c := newControl(t, 4, 0)
	withBytes(t, c, make([]byte, 40))
	require.True(t, c.SetCursorLocation(false, 20, 8))

	require.True(t, c.MoveEnd())
	_, off, shift := c.CursorLocation()
	require.Equal(t, int64(28), off)
	require.Equal(t, 0, shift)

	require.True(t, c.MoveHome())
	_, off, shift = c.CursorLocation()
	require.Equal(t, int64(16), off)
	require.Equal(t, 28, shift)

	require.True(t, c.SetCursorLocation(false, 32, 28))
	c.MoveEnd()
	_, off, _ = c.CursorLocation()
	require.Equal(t, int64(40), off, "short last line ends at the data end")
}

func TestCtrlHomeEnd(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, make([]byte, 100))
	require.True(t, c.SetCursorLocation(true, 50, 0))

	require.True(t, c.HandleEvent(KeyDown{Key: KeyEnd, Mods: ModEnhanced | ModLeftCtrl}))
	asChar, off, _ := c.CursorLocation()
	require.True(t, asChar)
	require.Equal(t, int64(100), off)

	require.True(t, c.HandleEvent(KeyDown{Key: KeyHome, Mods: ModRightCtrl}))
	asChar, off, _ = c.CursorLocation()
	require.True(t, asChar)
	require.Zero(t, off)
}

func TestUpDown(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, make([]byte, 20))

	require.False(t, c.MoveUp())
	require.True(t, c.MoveDown())
	_, off, _ := c.CursorLocation()
	require.Equal(t, int64(16), off)
	require.False(t, c.MoveDown(), "line 2 is past the data")
	require.True(t, c.MoveUp())
}

func TestNavigationClearsSelection(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, make([]byte, 32))
	require.NoError(t, c.SetSelectionRange(2, 5))

	c.HandleEvent(KeyDown{Key: KeyArrowRight, Mods: ModEnhanced})
	require.False(t, c.SelectionActive())
}

func TestSetCursorLocationKeepsSelection(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, make([]byte, 32))
	require.NoError(t, c.SetSelectionRange(2, 5))

	require.True(t, c.SetCursorLocation(false, 6, 4))
	require.True(t, c.SelectionActive())
	require.False(t, c.SetCursorLocation(false, 33, 4))
	require.False(t, c.SetCursorLocation(false, 1, 3))
}

func TestSelectionContainment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 200).Draw(t, "n")
		data := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "data")
		a := rapid.Int64Range(0, int64(n-1)).Draw(t, "a")
		b := rapid.Int64Range(a, int64(n-1)).Draw(t, "b")

		c, err := New(Options{Width: 80, Height: 5, BytesPerWord: 1})
		if err != nil {
			t.Fatal(err)
		}
		d := buffer.Wrap(append([]byte(nil), data...))
		if err := c.SetDataNoCopy(d, int64(n)); err != nil {
			t.Fatal(err)
		}

		if err := c.SetSelectionRange(a, b); err != nil {
			t.Fatalf("SetSelectionRange(%d, %d): %v", a, b, err)
		}
		got, ok := c.SelectedData()
		if !ok || !bytes.Equal(got, data[a:b+1]) {
			t.Fatalf("selected %x, want %x", got, data[a:b+1])
		}

		past := rapid.Int64Range(int64(n), int64(n)+50).Draw(t, "past")
		if err := c.SetSelectionRange(a, past); err == nil {
			t.Fatalf("range ending at %d accepted for %d bytes", past, n)
		}
		if c.SelectionActive() {
			t.Fatal("rejected range left a selection")
		}
	})
}

func TestSelectionDroppedOnShrink(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, make([]byte, 10))
	require.NoError(t, c.SetSelectionRange(5, 9))

	require.NoError(t, c.DeleteData(0, 3))
	require.False(t, c.SelectionActive())
}

func TestDirtyRangeCoversEdits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c, err := New(Options{Width: 80, Height: 5, BytesPerWord: 1})
		if err != nil {
			t.Fatal(err)
		}
		d := buffer.Wrap(make([]byte, 256))
		if err := c.SetDataNoCopy(d, 256); err != nil {
			t.Fatal(err)
		}
		c.Paint()
		if _, _, ok := c.DirtyLines(); ok {
			t.Fatal("dirty after paint")
		}

		lo, hi := int64(1<<62), int64(-1)
		for i, n := 0, rapid.IntRange(1, 10).Draw(t, "ops"); i < n; i++ {
			off := rapid.Int64Range(0, 255).Draw(t, "off")
			size := rapid.Int64Range(1, 256-off).Draw(t, "size")
			if err := c.ReplaceData(off, make([]byte, size)); err != nil {
				t.Fatal(err)
			}
			lo = min(lo, off/16)
			hi = max(hi, (off+size-1)/16)

			first, last, ok := c.DirtyLines()
			if !ok || first > lo || last < hi {
				t.Fatalf("dirty [%d, %d] does not cover [%d, %d]", first, last, lo, hi)
			}
		}
		c.Paint()
		if _, _, ok := c.DirtyLines(); ok {
			t.Fatal("dirty after paint")
		}
	})
}

func TestResizeDirtiesToEnd(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, make([]byte, 64))
	c.Paint()

	require.True(t, c.SetCursorLocation(true, 33, 0))
	c.SetInsertMode(true)
	c.HandleEvent(KeyDown{Char: 'x'})

	first, last, ok := c.DirtyLines()
	require.True(t, ok)
	require.Equal(t, int64(2), first)
	require.Equal(t, int64(toEnd), last)
}

func TestOverwriteDirtiesOnlyEditedLines(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, make([]byte, 64))
	c.Paint()

	require.True(t, c.SetCursorLocation(true, 20, 0))
	c.HandleEvent(KeyDown{Char: 'x'})

	first, last, ok := c.DirtyLines()
	require.True(t, ok)
	require.Equal(t, int64(1), first)
	require.Equal(t, int64(1), last)
}

func TestSetBytesPerWordKeepsNibble(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, make([]byte, 16))
	require.True(t, c.SetCursorLocation(false, 3, 0))

	require.NoError(t, c.SetBytesPerWord(4))
	_, off, shift := c.CursorLocation()
	require.Equal(t, int64(0), off)
	require.Equal(t, 24, shift)

	require.NoError(t, c.SetBytesPerWord(1))
	_, off, shift = c.CursorLocation()
	require.Equal(t, int64(3), off)
	require.Equal(t, 0, shift)

	require.ErrorIs(t, c.SetBytesPerWord(5), ErrInvalidWordSize)
}

func TestSetStyle(t *testing.T) {
	c := newControl(t, 1, StyleReadOnly)
	require.ErrorIs(t, c.SetStyle(StyleScrollbar), ErrInvalidStyle)
	require.ErrorIs(t, c.SetStyle(StyleOffset32|StyleOffset64), ErrConflictingStyle)

	require.NoError(t, c.SetStyle(StyleOffset32))
	require.Equal(t, StyleOffset32|StyleReadOnly, c.Style())
	col, _ := c.VisualCursorLocation()
	require.Equal(t, 10, col)
}

func TestCursorMoveNotify(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, make([]byte, 4))

	var offs []int64
	require.NoError(t, c.SetCursorMoveNotify(func(off int64, _ int) {
		offs = append(offs, off)
	}))
	require.ErrorIs(t, c.SetCursorMoveNotify(func(int64, int) {}), ErrNotifySet)

	c.MoveRight()
	c.MoveRight()
	require.Equal(t, []int64{0, 1}, offs)

	require.NoError(t, c.SetCursorMoveNotify(nil))
	c.MoveRight()
	require.Len(t, offs, 2)
}

func TestDataAPI(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, []byte{1, 2, 3})

	require.NoError(t, c.InsertData(3, []byte{4, 5}))
	require.NoError(t, c.InsertData(0, []byte{0}))
	require.Equal(t, []byte{0, 1, 2, 3, 4, 5}, c.Bytes())
	require.ErrorIs(t, c.InsertData(7, []byte{9}), ErrInvalidRange)

	require.NoError(t, c.ReplaceData(4, []byte{9, 9}))
	require.ErrorIs(t, c.ReplaceData(5, []byte{9, 9}), ErrInvalidRange)
	require.Equal(t, []byte{0, 1, 2, 3, 9, 9}, c.Bytes())

	require.NoError(t, c.DeleteData(1, 100))
	require.Equal(t, []byte{0}, c.Bytes())
	require.ErrorIs(t, c.DeleteData(1, 1), ErrInvalidRange)
}

func TestDataHandOff(t *testing.T) {
	c := newControl(t, 1, 0)
	d := buffer.Wrap([]byte{1, 2, 3, 4})
	require.NoError(t, c.SetDataNoCopy(d, 3))
	require.Equal(t, 2, d.Refs())

	shared, valid := c.DataNoCopy()
	require.Same(t, d, shared)
	require.Equal(t, int64(3), valid)
	require.Equal(t, 3, d.Refs())
	shared.Release()

	// Edits show through the shared block until it has to grow.
	require.NoError(t, c.ReplaceData(0, []byte{7}))
	require.Equal(t, byte(7), d.Bytes()[0])

	c.HandleEvent(Destroyed{})
	require.True(t, c.Destroyed())
	require.Equal(t, 1, d.Refs())
	require.False(t, c.HandleEvent(KeyDown{Char: '1'}))
}

func TestSetDataClampsCursor(t *testing.T) {
	c := newControl(t, 2, 0)
	withBytes(t, c, make([]byte, 100))
	c.MoveToEnd()
	withBytes(t, c, make([]byte, 5))

	_, off, _ := c.CursorLocation()
	require.LessOrEqual(t, off, int64(5))
	require.Zero(t, off%2)
}

func TestClear(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, make([]byte, 500))
	c.MoveToEnd()
	c.Clear()

	require.Zero(t, c.Len())
	left, top := c.ViewportLocation()
	require.Zero(t, left)
	require.Zero(t, top)
	col, line := c.VisualCursorLocation()
	require.Equal(t, layout.Cell{}, layout.Cell{Line: line, Col: col})
}

func TestGrowthFailureLeavesDataUnchanged(t *testing.T) {
	c, err := New(Options{
		Width:         80,
		Height:        5,
		BytesPerWord:  1,
		BufferOptions: []buffer.Option{buffer.WithLimit(buffer.GrowthPadding + 4)},
	})
	require.NoError(t, err)
	withBytes(t, c, []byte("aaaa"))
	require.True(t, c.SetCursorLocation(true, 4, 0))
	c.SetInsertMode(true)

	ok, err := c.AddChar('b')
	require.ErrorIs(t, err, buffer.ErrTooLarge)
	require.False(t, ok)
	require.Equal(t, []byte("aaaa"), c.Bytes())
	_, off, _ := c.CursorLocation()
	require.Equal(t, int64(4), off)

	err = c.InsertData(0, make([]byte, buffer.GrowthPadding+1))
	require.ErrorIs(t, err, buffer.ErrTooLarge)
	require.Equal(t, []byte("aaaa"), c.Bytes())
}

func TestMouseDown(t *testing.T) {
	c := newControl(t, 1, StyleOffset32)
	withBytes(t, c, make([]byte, 40))

	// Character cell of byte 18: offset 10 + hex 48 + blank 1 + 2.
	require.True(t, c.HandleEvent(MouseDown{X: 61, Y: 1}))
	asChar, off, _ := c.CursorLocation()
	require.True(t, asChar)
	require.Equal(t, int64(18), off)

	// Offset column is not editable.
	c.HandleEvent(MouseDown{X: 2, Y: 0})
	asChar, off, _ = c.CursorLocation()
	require.True(t, asChar)
	require.Equal(t, int64(18), off)

	// Past the data.
	c.HandleEvent(MouseDown{X: 61, Y: 5})
	_, off, _ = c.CursorLocation()
	require.Equal(t, int64(18), off)
}

func TestFocusShowsCursor(t *testing.T) {
	c := newControl(t, 1, 0)
	g := c.Surface().(*Grid)

	c.Paint()
	require.False(t, g.CursorVisible)

	c.HandleEvent(FocusChange{Focused: true})
	c.Paint()
	require.True(t, g.CursorVisible)
	require.Equal(t, CursorOverwritePercent, g.CursorPercent)

	c.HandleEvent(KeyDown{Key: KeyInsert, Mods: ModEnhanced})
	c.Paint()
	require.Equal(t, CursorInsertPercent, g.CursorPercent)
}
