// Package layout maps between buffer offsets and the cells of a hex view line.
//
// A line is laid out as an optional offset column, the hex words, one blank
// separator and the character column:
//
//	00000010: 41 42 43 44 ...  ABCD...
//
// Offsets are int64 throughout. Columns are display cells within a line,
// counted from zero before any horizontal scrolling.
package layout

// DefaultBytesPerLine is the number of buffer bytes shown on one line.
const DefaultBytesPerLine = 16

// Kind is the type of a display cell.
type Kind int

const (
	KindOffset Kind = iota
	KindWhitespace
	KindHexDigit
	KindCharValue
)

func (k Kind) String() string {
	switch k {
	case KindOffset:
		return "offset"
	case KindWhitespace:
		return "whitespace"
	case KindHexDigit:
		return "hex"
	case KindCharValue:
		return "char"
	default:
		return "unknown"
	}
}

// Editable reports whether the cursor may rest on a cell of this kind.
func (k Kind) Editable() bool {
	return k == KindHexDigit || k == KindCharValue
}

// Layout describes how a line of bytes is arranged on screen.
type Layout struct {
	BytesPerLine int
	BytesPerWord int
	OffsetWidth  int // 0, 32 or 64
}

// New returns a layout with the default line length.
func New(bytesPerWord, offsetWidth int) Layout {
	return Layout{
		BytesPerLine: DefaultBytesPerLine,
		BytesPerWord: bytesPerWord,
		OffsetWidth:  offsetWidth,
	}
}

func ValidWordSize(n int) bool {
	return n == 1 || n == 2 || n == 4 || n == 8
}

func ValidOffsetWidth(w int) bool {
	return w == 0 || w == 32 || w == 64
}

// Cell is a display position: a line and a column within it.
type Cell struct {
	Line int64
	Col  int
}

// Lookup is the result of classifying a cell.
//
// For hex cells ByteOffset is the first byte of the word within the line and
// BitShift selects the nibble inside the word. For char cells ByteOffset is
// the byte within the line and BitShift is zero. InBounds is false when the
// addressed byte is at or past the end of valid data.
type Lookup struct {
	Kind       Kind
	ByteOffset int
	BitShift   int
	InBounds   bool
}

// OffsetChars is the width of the offset text excluding its trailing blank.
func (l Layout) OffsetChars() int {
	switch l.OffsetWidth {
	case 32:
		return 9
	case 64:
		return 18
	default:
		return 0
	}
}

// OffsetCells is the width of the rendered offset column including the blank
// that follows the colon.
func (l Layout) OffsetCells() int {
	if n := l.OffsetChars(); n > 0 {
		return n + 1
	}
	return 0
}

// CellsPerWord counts the digits of a word plus its trailing separator. Eight
// byte words carry one more cell for the backtick between their halves.
func (l Layout) CellsPerWord() int {
	n := l.BytesPerWord*2 + 1
	if l.BytesPerWord == 8 {
		n++
	}
	return n
}

func (l Layout) WordsPerLine() int {
	return l.BytesPerLine / l.BytesPerWord
}

// HexCells is the width of the hex region of a line.
func (l Layout) HexCells() int {
	return l.WordsPerLine() * l.CellsPerWord()
}

// LineCells is the width of a fully rendered line.
func (l Layout) LineCells() int {
	return l.OffsetCells() + l.HexCells() + 1 + l.BytesPerLine
}

// MaxBitShift addresses the most significant nibble of a word.
func (l Layout) MaxBitShift() int {
	return l.BytesPerWord*8 - 4
}

// LinesPopulated is the number of lines that hold at least one valid byte.
func (l Layout) LinesPopulated(valid int64) int64 {
	bpl := int64(l.BytesPerLine)
	return (valid + bpl - 1) / bpl
}

// LineStart returns the buffer offset of the first byte on a line.
func (l Layout) LineStart(line int64) int64 {
	return line * int64(l.BytesPerLine)
}

// BytesOnLine returns how many valid bytes a line holds.
func (l Layout) BytesOnLine(line int64, valid int64) int {
	start := l.LineStart(line)
	if start >= valid {
		return 0
	}
	if n := valid - start; n < int64(l.BytesPerLine) {
		return int(n)
	}
	return l.BytesPerLine
}

// Classify returns the kind of the cell at (line, col) and, for editable
// cells, the data it addresses.
func (l Layout) Classify(line int64, col int, valid int64) Lookup {
	if col < 0 || line < 0 {
		return Lookup{Kind: KindWhitespace}
	}

	populated := l.LinesPopulated(valid)
	bytesThisLine := l.BytesOnLine(line, valid)

	oc := l.OffsetChars()
	if oc > 0 {
		if col < oc {
			return Lookup{Kind: KindOffset}
		}
		if col == oc {
			return Lookup{Kind: KindWhitespace}
		}
	}

	// Position relative to the blank that precedes the first word.
	data := col - oc
	if oc == 0 {
		data++
	}

	cpw := l.CellsPerWord()
	if data < l.HexCells() {
		mod := data % cpw
		if mod == 0 {
			return Lookup{Kind: KindWhitespace}
		}
		wordStart := (data / cpw) * l.BytesPerWord
		idx := cpw - 1 - mod
		if l.BytesPerWord == 8 {
			if idx == 8 {
				return Lookup{Kind: KindWhitespace}
			}
			if idx > 8 {
				idx--
			}
		}
		shift := idx * 4
		return Lookup{
			Kind:       KindHexDigit,
			ByteOffset: wordStart,
			BitShift:   shift,
			InBounds:   line < populated && wordStart+shift/8 < bytesThisLine,
		}
	}

	data -= l.HexCells()
	if data < 2 {
		return Lookup{Kind: KindWhitespace}
	}
	data -= 2
	if data >= l.BytesPerLine {
		return Lookup{Kind: KindWhitespace}
	}
	return Lookup{
		Kind:       KindCharValue,
		ByteOffset: data,
		InBounds:   line < populated && data < bytesThisLine,
	}
}

// BufferOffset returns the buffer offset a lookup on line refers to. For hex
// cells this is the start of the word; add BitShift/8 for the edited byte.
func (l Layout) BufferOffset(line int64, lk Lookup) int64 {
	return l.LineStart(line) + int64(lk.ByteOffset)
}

// CellFromCharOffset returns the char-column cell for a buffer offset.
func (l Layout) CellFromCharOffset(off int64) Cell {
	bpl := int64(l.BytesPerLine)
	return Cell{
		Line: off / bpl,
		Col:  l.OffsetCells() + l.HexCells() + 1 + int(off%bpl),
	}
}

// CellFromHexOffset returns the hex cell showing the nibble at bitShift of the
// word starting at off. An offset that is not word aligned is folded into the
// bit shift of the word containing it.
func (l Layout) CellFromHexOffset(off int64, bitShift int) Cell {
	bpw := int64(l.BytesPerWord)
	if u := off % bpw; u != 0 {
		off -= u
		bitShift += int(u) * 8
	}

	bpl := int64(l.BytesPerLine)
	wordIdx := int(off%bpl) / l.BytesPerWord

	cellIdx := bitShift / 4
	if bitShift >= 32 {
		cellIdx++
	}

	col := l.OffsetChars() + (wordIdx+1)*l.CellsPerWord() - cellIdx - 1
	if l.OffsetChars() == 0 {
		col--
	}
	return Cell{Line: off / bpl, Col: col}
}

// CellFor returns the cell of the given kind for a buffer location.
func (l Layout) CellFor(kind Kind, off int64, bitShift int) Cell {
	if kind == KindCharValue {
		return l.CellFromCharOffset(off)
	}
	return l.CellFromHexOffset(off, bitShift)
}

// PrevCellSameType steps back by one nibble in the hex region or one byte in
// the char region. It returns false for cells that cannot hold the cursor.
func (l Layout) PrevCellSameType(kind Kind, off int64, bitShift int) (Cell, int64, int, bool) {
	switch kind {
	case KindCharValue:
		if off > 0 {
			off--
		}
		return l.CellFromCharOffset(off), off, 0, true
	case KindHexDigit:
		if bitShift < l.MaxBitShift() {
			bitShift += 4
		} else if off > 0 {
			off -= int64(l.BytesPerWord)
			bitShift = 0
		}
		return l.CellFromHexOffset(off, bitShift), off, bitShift, true
	}
	return Cell{}, off, bitShift, false
}

// NextCellSameType steps forward by one nibble in the hex region or one byte
// in the char region. The caller decides whether the result is past the end.
func (l Layout) NextCellSameType(kind Kind, off int64, bitShift int) (Cell, int64, int, bool) {
	switch kind {
	case KindCharValue:
		off++
		return l.CellFromCharOffset(off), off, 0, true
	case KindHexDigit:
		if bitShift >= 4 {
			bitShift -= 4
		} else {
			off += int64(l.BytesPerWord)
			bitShift = l.MaxBitShift()
		}
		return l.CellFromHexOffset(off, bitShift), off, bitShift, true
	}
	return Cell{}, off, bitShift, false
}

// Realign re-expresses a hex location so that off is a multiple of the word
// size, keeping the nibble it denotes. Bit shifts that reach past the word
// move the offset forward instead.
func (l Layout) Realign(off int64, bitShift int) (int64, int) {
	bpw := l.BytesPerWord
	if bitShift >= bpw*8 {
		u := bitShift / 8
		off += int64(u)
		bitShift -= u * 8
	}
	if u := int(off % int64(bpw)); u != 0 {
		off -= int64(u)
		bitShift += u * 8
	}
	return off, bitShift
}
