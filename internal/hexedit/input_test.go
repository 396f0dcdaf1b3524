package hexedit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"hexedit/internal/buffer"
	"hexedit/internal/log"
)

func altKeys(c *Control, keys ...Key) {
	for _, k := range keys {
		c.HandleEvent(KeyDown{Key: k, Mods: ModLeftAlt})
	}
}

func charControl(t *testing.T) *Control {
	t.Helper()
	c := newControl(t, 1, 0)
	require.True(t, c.SetCursorLocation(true, 0, 0))
	return c
}

func TestAltNumpadOEM(t *testing.T) {
	c := charControl(t)
	altKeys(c, KeyNumpad6, KeyNumpad5)
	require.Zero(t, c.Len(), "nothing is typed before Alt is released")

	require.True(t, c.HandleEvent(KeyUp{Key: KeyAlt}))
	require.Equal(t, []byte("A"), c.Bytes())

	altKeys(c, KeyNumpad1, KeyNumpad3, KeyNumpad0)
	c.HandleEvent(KeyUp{Key: KeyAlt})
	require.Equal(t, []byte{'A', 0xE9}, c.Bytes(), "code page 437 130 is e acute")
}

func TestAltNumpadANSI(t *testing.T) {
	c := charControl(t)
	altKeys(c, KeyNumpad0, KeyNumpad1, KeyNumpad2, KeyNumpad8)
	c.HandleEvent(KeyUp{Key: KeyAlt})
	require.Equal(t, []byte{0x80}, c.Bytes(), "windows-1252 128 is the euro sign")
}

func TestAltNumpadUnicode(t *testing.T) {
	c := charControl(t)
	altKeys(c, KeyNumpadAdd, KeyNumpad2, KeyNumpad0)
	c.HandleEvent(KeyDown{Char: 'a', Mods: ModLeftAlt})
	c.HandleEvent(KeyDown{Char: 'C', Mods: ModLeftAlt})
	c.HandleEvent(KeyUp{Key: KeyAlt})
	require.Equal(t, []byte{0x80}, c.Bytes())
}

func TestKeyUpWithAltHeldWaits(t *testing.T) {
	c := charControl(t)
	altKeys(c, KeyNumpad6, KeyNumpad6)
	require.False(t, c.HandleEvent(KeyUp{Key: KeyNumpad6, Mods: ModLeftAlt}))
	require.Zero(t, c.Len())

	c.HandleEvent(KeyUp{Key: KeyAlt})
	require.Equal(t, []byte("B"), c.Bytes())
}

func TestBareAltReleaseCarriesChar(t *testing.T) {
	c := charControl(t)
	require.True(t, c.HandleEvent(KeyUp{Key: KeyAlt, Char: 'z'}))
	require.Equal(t, []byte("z"), c.Bytes())

	require.False(t, c.HandleEvent(KeyUp{Key: KeyAlt}))
}

func TestAltNumpadReadOnly(t *testing.T) {
	c := charControl(t)
	c.SetReadOnly(true)
	altKeys(c, KeyNumpad6, KeyNumpad5)
	require.False(t, c.HandleEvent(KeyUp{Key: KeyAlt}))
	require.Zero(t, c.Len())
}

func TestControlCharsAreNotTyped(t *testing.T) {
	c := charControl(t)
	for _, r := range "\t\r\n\b\x1b" {
		require.False(t, c.HandleEvent(KeyDown{Char: r}))
	}
	require.Zero(t, c.Len())
}

func TestAltGrTypes(t *testing.T) {
	c := charControl(t)
	require.True(t, c.HandleEvent(KeyDown{Char: '@', Mods: ModLeftCtrl | ModRightAlt}))
	require.Equal(t, []byte("@"), c.Bytes())
}

func TestCtrlLettersIgnored(t *testing.T) {
	c := charControl(t)
	require.False(t, c.HandleEvent(KeyDown{Char: 'c', Mods: ModLeftCtrl}))
	require.Zero(t, c.Len())
}

func TestMouseWheel(t *testing.T) {
	c, err := New(Options{Width: 80, Height: 4, BytesPerWord: 1})
	require.NoError(t, err)
	withBytes(t, c, make([]byte, 160))

	c.HandleEvent(MouseWheel{Lines: 3})
	_, top := c.ViewportLocation()
	require.Equal(t, int64(3), top)

	c.HandleEvent(MouseWheel{Lines: 100})
	_, top = c.ViewportLocation()
	require.Equal(t, int64(6), top)

	c.HandleEvent(MouseWheel{Lines: 100, Up: true})
	_, top = c.ViewportLocation()
	require.Zero(t, top)

	_, line := c.VisualCursorLocation()
	require.Zero(t, line, "wheel never moves the cursor")
}

func TestTypingLogsAllocationFailure(t *testing.T) {
	var out bytes.Buffer
	log.SetOutput(&out)
	t.Cleanup(func() { log.SetOutput(nil) })

	c, err := New(Options{Width: 80, Height: 10, BytesPerWord: 1, BufferOptions: []buffer.Option{buffer.WithLimit(8)}})
	require.NoError(t, err)

	require.True(t, c.HandleEvent(KeyDown{Char: '4'}), "the key is still taken")
	require.Zero(t, c.Len())
	require.False(t, c.Modified())
	require.Contains(t, out.String(), "[ERROR] [edit] add char char=4")
	require.Contains(t, out.String(), buffer.ErrTooLarge.Error())
}
