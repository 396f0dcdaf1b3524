package hexedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recordedBar struct {
	top, visible, maxTop int64
	calls                int
}

func (r *recordedBar) SetPosition(top, visible, maxTop int64) {
	r.top, r.visible, r.maxTop = top, visible, maxTop
	r.calls++
}

// tenLines is 160 bytes in a four line window.
func tenLines(t *testing.T) (*Control, *recordedBar) {
	t.Helper()
	bar := &recordedBar{}
	c, err := New(Options{Width: 80, Height: 4, BytesPerWord: 1, Style: StyleScrollbar, ScrollBar: bar})
	require.NoError(t, err)
	withBytes(t, c, make([]byte, 160))
	return c, bar
}

func TestEnsureCursorVisibleVertical(t *testing.T) {
	c, bar := tenLines(t)
	c.MoveToEnd()

	_, top := c.ViewportLocation()
	require.Equal(t, int64(7), top)
	require.Equal(t, int64(7), bar.top)
	require.Equal(t, int64(4), bar.visible)
	require.Equal(t, int64(6), bar.maxTop)
}

func TestEnsureCursorVisibleHorizontal(t *testing.T) {
	c, err := New(Options{Width: 20, Height: 4, BytesPerWord: 1})
	require.NoError(t, err)
	withBytes(t, c, make([]byte, 4))

	require.True(t, c.SetCursorLocation(true, 0, 0))
	left, _ := c.ViewportLocation()
	require.Equal(t, 49-20+1, left)

	require.True(t, c.SetCursorLocation(false, 0, 4))
	left, _ = c.ViewportLocation()
	require.Zero(t, left)
}

func TestPageDown(t *testing.T) {
	c, _ := tenLines(t)

	require.True(t, c.PageDown())
	_, top := c.ViewportLocation()
	_, line := c.VisualCursorLocation()
	require.Equal(t, int64(4), top)
	require.Equal(t, int64(4), line)

	require.True(t, c.PageDown())
	_, top = c.ViewportLocation()
	_, line = c.VisualCursorLocation()
	require.Equal(t, int64(8), top)
	require.Equal(t, int64(8), line)

	require.False(t, c.PageDown())
}

func TestPageUp(t *testing.T) {
	c, _ := tenLines(t)
	require.False(t, c.PageUp())

	c.MoveToEnd()
	require.True(t, c.HandleEvent(KeyDown{Key: KeyPageUp, Mods: ModEnhanced}))
	_, top := c.ViewportLocation()
	_, line := c.VisualCursorLocation()
	require.Equal(t, int64(3), top)
	require.Equal(t, int64(6), line)
}

func TestPagingWithoutVisibleLines(t *testing.T) {
	c, err := New(Options{Width: 80, Height: 0, BytesPerWord: 1})
	require.NoError(t, err)
	withBytes(t, c, make([]byte, 160))
	c.MoveToEnd()
	_, before, _ := c.CursorLocation()

	require.False(t, c.PageDown())
	require.False(t, c.PageUp())
	_, after, _ := c.CursorLocation()
	require.Equal(t, before, after)
	_, top := c.ViewportLocation()
	require.Zero(t, top)
}

func TestNotifyScrollChangeSnapsCursor(t *testing.T) {
	c, _ := tenLines(t)
	col, _ := c.VisualCursorLocation()

	c.NotifyScrollChange(5)
	_, top := c.ViewportLocation()
	newCol, line := c.VisualCursorLocation()
	require.Equal(t, int64(5), top)
	require.Equal(t, int64(5), line)
	require.Equal(t, col, newCol)

	c.NotifyScrollChange(100)
	_, top = c.ViewportLocation()
	_, line = c.VisualCursorLocation()
	require.Equal(t, int64(6), top)
	require.Equal(t, int64(6), line)

	// A cursor already in view stays put.
	c.NotifyScrollChange(4)
	_, line = c.VisualCursorLocation()
	require.Equal(t, int64(6), line)
}

func TestSetViewportLocationClamps(t *testing.T) {
	c, _ := tenLines(t)
	c.SetViewportLocation(-3, 50)
	left, top := c.ViewportLocation()
	require.Zero(t, left)
	require.Equal(t, int64(9), top)
}

func TestSetSizeRepaintsAll(t *testing.T) {
	c, _ := tenLines(t)
	c.Paint()
	c.SetSize(40, 2)

	first, last, ok := c.DirtyLines()
	require.True(t, ok)
	require.Zero(t, first)
	require.Equal(t, int64(toEnd), last)
	w, h := c.Surface().(*Grid).Size()
	require.Equal(t, 40, w)
	require.Equal(t, 2, h)
}
