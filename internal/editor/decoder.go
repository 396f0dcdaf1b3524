package editor

import (
	"fmt"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// decoderLines is the height of the decoder panel.
const decoderLines = 6

// decoderBytes returns up to count bytes starting at the cursor.
func (m *Model) decoderBytes(count int) []byte {
	tab := m.currentTab()
	if tab == nil {
		return nil
	}
	data := tab.ctrl().Bytes()
	if tab.cursor >= int64(len(data)) {
		return nil
	}
	end := min(tab.cursor+int64(count), int64(len(data)))
	return data[tab.cursor:end]
}

// field is one value of the decoder panel: a label and the bytes it reads.
type field struct {
	label  string
	size   int
	style  lipgloss.Style
	format func(p []byte, bigEndian bool) string
}

func intField(bits int, signed bool, style lipgloss.Style) field {
	label := "u" + strconv.Itoa(bits)
	if signed {
		label = "i" + strconv.Itoa(bits)
	}
	return field{label, bits / 8, style, func(p []byte, be bool) string { return formatInt(p, be, signed) }}
}

func (m *Model) decoderRows() [][]field {
	s := m.styles
	return [][]field{
		{
			intField(8, false, s.DecoderLabel), intField(8, true, s.DecoderLabel),
			intField(16, false, s.Bit16), intField(16, true, s.Bit16),
			intField(32, false, s.Bit32), intField(32, true, s.Bit32),
			intField(64, false, s.Bit64), intField(64, true, s.Bit64),
		},
		{intField(128, false, s.DecoderLabel), intField(128, true, s.DecoderLabel)},
		{
			{"f32", 4, s.Bit32, formatFloat32},
			{"f64", 8, s.Bit64, formatFloat64},
		},
	}
}

// renderDecoder shows the bytes under the cursor as bits and as the common
// integer and float types, in the current byte order.
func (m *Model) renderDecoder() string {
	p := m.decoderBytes(16)
	lines := make([]string, 0, decoderLines)

	order := "Big"
	if !m.bigEndian {
		order = "Little"
	}
	lines = append(lines,
		m.styles.DecoderLabel.Render("Endianness ")+m.styles.DecoderValue.Render(order),
		m.styles.DecoderLabel.Render("bits   0..63  ")+m.bits(p, 0),
		m.styles.DecoderLabel.Render("bits  64..127 ")+m.bits(p, 8),
	)

	for _, row := range m.decoderRows() {
		cells := make([]string, len(row))
		for i, f := range row {
			value := "-"
			if len(p) >= f.size {
				value = m.styles.DecoderValue.Render(f.format(p[:f.size], m.bigEndian))
			}
			cells[i] = f.style.Render(f.label) + " " + value
		}
		lines = append(lines, strings.Join(cells, "  "))
	}
	return strings.Join(lines, "\n")
}

// bits writes eight bytes from p[from:] in binary.
func (m *Model) bits(p []byte, from int) string {
	if len(p) <= from {
		return "-"
	}
	words := make([]string, 0, 8)
	for _, b := range p[from:min(from+8, len(p))] {
		words = append(words, fmt.Sprintf("%08b", b))
	}
	return m.styles.DecoderValue.Render(strings.Join(words, " "))
}

var twoTo128 = new(big.Int).Lsh(big.NewInt(1), 128)

// formatInt decodes 1, 2, 4, 8 or 16 bytes as an integer.
func formatInt(p []byte, bigEndian, signed bool) string {
	n := len(p)
	if n != 1 && n != 2 && n != 4 && n != 8 && n != 16 {
		return "-"
	}
	be := ordered(p, bigEndian)

	if n == 16 {
		v := new(big.Int).SetBytes(be)
		if signed && be[0]&0x80 != 0 {
			v.Sub(v, twoTo128)
		}
		return v.String()
	}

	var u uint64
	for _, b := range be {
		u = u<<8 | uint64(b)
	}
	if !signed {
		return strconv.FormatUint(u, 10)
	}
	shift := 64 - 8*n
	return strconv.FormatInt(int64(u<<shift)>>shift, 10)
}

func formatFloat32(p []byte, bigEndian bool) string {
	var u uint64
	for _, b := range ordered(p, bigEndian) {
		u = u<<8 | uint64(b)
	}
	return strconv.FormatFloat(float64(math.Float32frombits(uint32(u))), 'g', -1, 32)
}

func formatFloat64(p []byte, bigEndian bool) string {
	var u uint64
	for _, b := range ordered(p, bigEndian) {
		u = u<<8 | uint64(b)
	}
	return strconv.FormatFloat(math.Float64frombits(u), 'g', -1, 64)
}

// ordered returns p most significant byte first.
func ordered(p []byte, bigEndian bool) []byte {
	if bigEndian {
		return p
	}
	r := slices.Clone(p)
	slices.Reverse(r)
	return r
}
