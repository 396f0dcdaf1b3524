package hexedit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func paintedRow(c *Control, row int) string {
	c.Paint()
	return strings.TrimRight(c.Surface().(*Grid).Row(row), " ")
}

func TestRenderNoOffset(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, []byte{0x41, 0x00, 0x7F})

	want := "41 00 7F" + strings.Repeat(" ", 41) + "A.."
	if got := paintedRow(c, 0); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := paintedRow(c, 1); got != "" {
		t.Errorf("expected blank second line, got %q", got)
	}
}

func TestRenderLittleEndianWords(t *testing.T) {
	c := newControl(t, 4, StyleOffset32)
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	withBytes(t, c, data)

	require.Equal(t, "00000000: 03020100 07060504 0B0A0908 0F0E0D0C  ................", paintedRow(c, 0))
	require.Equal(t, "00000010: 13121110"+strings.Repeat(" ", 29)+"....", paintedRow(c, 1))
}

func TestRenderSixtyFourBitOffset(t *testing.T) {
	c := newControl(t, 8, StyleOffset64)
	withBytes(t, c, []byte{1, 2, 3, 4, 5, 6, 7, 8, 'a', 'b'})

	row := paintedRow(c, 0)
	require.True(t, strings.HasPrefix(row, "00000000`00000000: 08070605`04030201 "), row)
	require.True(t, strings.HasSuffix(row, "........ab"), row)

	cells := c.RenderLine(0)
	require.Len(t, cells, c.Layout().LineCells())
}

func TestRenderEmptyShowsFirstOffset(t *testing.T) {
	c := newControl(t, 1, StyleOffset32)
	require.Equal(t, "00000000:", paintedRow(c, 0))
	require.Equal(t, "", paintedRow(c, 1))
}

func TestRenderSelectionBridging(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, []byte{0x10, 0x20, 0x30, 0x40})
	require.NoError(t, c.SetSelectionRange(1, 2))
	c.Paint()

	g := c.Surface().(*Grid)
	text, sel := c.Colors()
	require.Equal(t, DefaultTextAttr.Inverse(), sel)

	want := map[int]Attr{
		2: text, // separator before the selection
		3: sel, 4: sel,
		5: sel, // bridges byte 1 to byte 2
		6: sel, 7: sel,
		8:  text, // after the last selected byte
		49: text,
		50: sel, 51: sel,
		52: text,
	}
	for col, attr := range want {
		require.Equal(t, attr, g.At(col, 0).Attr, "column %d", col)
	}
}

func TestRenderHorizontalScroll(t *testing.T) {
	c, err := New(Options{Width: 10, Height: 2, BytesPerWord: 1, Style: StyleOffset32})
	require.NoError(t, err)
	withBytes(t, c, []byte{0xAB})
	c.SetViewportLocation(5, 0)

	require.Equal(t, "000: AB", paintedRow(c, 0))
}

func TestSetColorsRepaints(t *testing.T) {
	c := newControl(t, 1, 0)
	withBytes(t, c, []byte{1})
	c.Paint()

	c.SetColors(NewAttr(15, 0), 0)
	_, _, ok := c.DirtyLines()
	require.True(t, ok)

	text, sel := c.Colors()
	require.Equal(t, NewAttr(15, 0), text)
	require.Equal(t, NewAttr(0, 15), sel)
	c.Paint()
	require.Equal(t, text, c.Surface().(*Grid).At(0, 0).Attr)
}

func TestCursorHiddenOutsideViewport(t *testing.T) {
	c, err := New(Options{Width: 80, Height: 2, BytesPerWord: 1})
	require.NoError(t, err)
	withBytes(t, c, make([]byte, 100))
	c.SetFocus(true)

	c.SetViewportLocation(0, 3)
	c.Paint()
	g := c.Surface().(*Grid)
	require.False(t, g.CursorVisible)

	c.SetViewportLocation(0, 0)
	c.Paint()
	require.True(t, g.CursorVisible)
	require.Equal(t, 0, g.CursorRow)
	require.Equal(t, 0, g.CursorCol)
}

func TestAttrInverse(t *testing.T) {
	a := NewAttr(7, 1)
	require.Equal(t, Attr(0x17), a)
	require.Equal(t, Attr(0x71), a.Inverse())
	require.Equal(t, a, a.Inverse().Inverse())
	require.Equal(t, 7, a.Foreground())
	require.Equal(t, 1, a.Background())
}
