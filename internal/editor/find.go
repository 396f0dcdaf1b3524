package editor

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"hexedit/internal/buffer"
	"hexedit/internal/log"

	tea "github.com/charmbracelet/bubbletea"
)

type findMode int

const (
	findASCII findMode = iota
	findHex
	findBits
	findDecimal
	numFindModes
)

func (f findMode) String() string {
	switch f {
	case findHex:
		return "Hex"
	case findBits:
		return "Bits"
	case findDecimal:
		return "Decimal"
	default:
		return "Text"
	}
}

// accepts filters what can be typed in each mode.
func (f findMode) accepts(r rune) bool {
	switch f {
	case findHex:
		return isHexDigit(r) || r == ' '
	case findBits:
		return r == '0' || r == '1' || r == ' '
	case findDecimal:
		return isDecimalDigit(r)
	default:
		return true
	}
}

var decimalWidths = []int{1, 2, 4, 8}

// finder holds the search dialog. The last pattern stays around for find next.
type finder struct {
	prompt  prompt
	mode    findMode
	width   int
	matches int
}

func newFinder() finder {
	f := finder{prompt: newPrompt("", 256), width: 1}
	f.prompt.accept = f.mode.accepts
	return f
}

func (f *finder) setMode(mode findMode) {
	f.mode = mode
	f.prompt.accept = mode.accepts
	f.prompt.reset("")
	f.matches = 0
}

func (f *finder) stepWidth(delta int) {
	i := 0
	for j, w := range decimalWidths {
		if w == f.width {
			i = j
		}
	}
	n := len(decimalWidths)
	f.width = decimalWidths[((i+delta)%n+n)%n]
}

// parsePattern turns search text into bytes. Hex and bit strings are padded
// on the left to whole bytes; decimals are written width bytes wide.
func parsePattern(mode findMode, text string, width int, bigEndian bool) ([]byte, error) {
	switch mode {
	case findHex:
		s := strings.ReplaceAll(text, " ", "")
		if len(s)%2 == 1 {
			s = "0" + s
		}
		return hex.DecodeString(s)
	case findBits:
		s := strings.ReplaceAll(text, " ", "")
		if pad := len(s) % 8; pad != 0 {
			s = strings.Repeat("0", 8-pad) + s
		}
		out := make([]byte, 0, len(s)/8)
		for ; s != ""; s = s[8:] {
			b, err := strconv.ParseUint(s[:8], 2, 8)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(b))
		}
		return out, nil
	case findDecimal:
		if text == "" {
			return nil, nil
		}
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, err
		}
		if width < 8 && n>>(8*width) != 0 {
			return nil, fmt.Errorf("%d does not fit in %d bytes", n, width)
		}
		var buf [8]byte
		if bigEndian {
			binary.BigEndian.PutUint64(buf[:], n)
			return buf[8-width:], nil
		}
		binary.LittleEndian.PutUint64(buf[:], n)
		return buf[:width], nil
	default:
		return []byte(text), nil
	}
}

func (m *Model) openFind() {
	m.view = ViewFind
	m.find.prompt.reset("")
	m.find.matches = 0
}

func (m *Model) findPattern() []byte {
	p, err := parsePattern(m.find.mode, m.find.prompt.Value(), m.find.width, m.bigEndian)
	if err != nil {
		return nil
	}
	return p
}

func (m *Model) countMatches() {
	m.find.matches = 0
	if tab := m.currentTab(); tab != nil {
		m.find.matches = buffer.CountMatches(tab.ctrl().Bytes(), m.findPattern())
	}
}

func (m *Model) handleFindKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.find
	switch msg.Type {
	case tea.KeyEscape:
		m.view = ViewMain
	case tea.KeyEnter:
		m.findNext()
	case tea.KeyUp, tea.KeyDown:
		next := f.mode + 1
		if msg.Type == tea.KeyUp {
			next = f.mode - 1
		}
		if next >= 0 && next < numFindModes {
			f.setMode(next)
		}
	case tea.KeyLeft, tea.KeyRight:
		if f.mode != findDecimal {
			break
		}
		if msg.Type == tea.KeyRight {
			f.stepWidth(1)
		} else {
			f.stepWidth(-1)
		}
		m.countMatches()
	default:
		if f.prompt.update(msg) {
			m.countMatches()
		}
	}
	return m, nil
}

// findNext selects the first match past the cursor, starting over from the
// top when there is none.
func (m *Model) findNext() {
	tab := m.currentTab()
	pattern := m.findPattern()
	if tab == nil || len(pattern) == 0 {
		return
	}

	data := tab.ctrl().Bytes()
	at := buffer.Find(data, pattern, tab.cursor+1, true)
	if at < 0 {
		if at = buffer.Find(data, pattern, 0, true); at >= 0 {
			m.setStatus("Search wrapped")
		}
	}
	if at < 0 {
		m.setStatus("Not found")
		return
	}

	tab.moveTo(at)
	if err := tab.ctrl().SetSelectionRange(at, at+int64(len(pattern))-1); err != nil {
		m.setError(err)
	}
	tab.anchor = at
	log.Debug(log.CatEdit, "find", "offset", at, "bytes", len(pattern))
}

// parseOffset reads a decimal offset, or a hex one with a 0x prefix.
func parseOffset(s string) (int64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return strconv.ParseInt(rest, 16, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}

func (m *Model) openGoto() {
	m.view = ViewGoto
	m.gotoPrompt.reset("")
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = ViewMain
	case tea.KeyEnter:
		m.view = ViewMain
		m.jump(m.gotoPrompt.Value())
	default:
		m.gotoPrompt.update(msg)
	}
	return m, nil
}

// jump moves the cursor to the offset in text, clamped to the data.
func (m *Model) jump(text string) {
	tab := m.currentTab()
	if tab == nil || text == "" {
		return
	}
	off, err := parseOffset(text)
	if err != nil {
		m.setError(err)
		return
	}
	c := tab.ctrl()
	c.ClearSelection()
	tab.anchor = -1
	tab.moveTo(max(0, min(off, c.Len())))
}
