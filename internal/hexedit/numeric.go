package hexedit

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// NumericKind says how a number typed on the keypad with Alt held is turned
// into a character.
type NumericKind int

const (
	// NumericOEM is the default: a decimal code in the OEM code page.
	NumericOEM NumericKind = iota
	// NumericANSI is selected by a leading zero.
	NumericANSI
	// NumericUnicode is selected by keypad plus and takes hex digits.
	NumericUnicode
)

// CodePage converts between keyboard input and buffer bytes.
type CodePage interface {
	// Decode turns a composed numeric key into a character.
	Decode(value uint32, kind NumericKind) (rune, bool)
	// ToByte converts a typed character to the byte written to the buffer.
	ToByte(r rune) (byte, bool)
}

type charmapCodePage struct {
	oem  *charmap.Charmap
	ansi *charmap.Charmap
}

// DefaultCodePage uses code page 437 for OEM input and Windows-1252 for ANSI.
func DefaultCodePage() CodePage {
	return NewCodePage(charmap.CodePage437, charmap.Windows1252)
}

func NewCodePage(oem, ansi *charmap.Charmap) CodePage {
	return charmapCodePage{oem: oem, ansi: ansi}
}

func (cp charmapCodePage) Decode(value uint32, kind NumericKind) (rune, bool) {
	switch kind {
	case NumericOEM:
		return cp.oem.DecodeByte(byte(value)), true
	case NumericANSI:
		return cp.ansi.DecodeByte(byte(value)), true
	case NumericUnicode:
		r := rune(value)
		return r, value <= utf8.MaxRune && utf8.ValidRune(r)
	}
	return 0, false
}

// ToByte stores Latin-1 characters as themselves and anything else through
// the ANSI code page. Characters it cannot represent are rejected.
func (cp charmapCodePage) ToByte(r rune) (byte, bool) {
	if r >= 0 && r < 0x100 {
		return byte(r), true
	}
	return cp.ansi.EncodeRune(r)
}

// numericKey accumulates an Alt+keypad sequence.
type numericKey struct {
	value uint32
	kind  NumericKind
	keys  int
}

func (n *numericKey) reset() {
	*n = numericKey{}
}

func (n *numericKey) pending() bool {
	return n.keys > 0
}

// add folds one key into the value. It reports whether the key belonged to
// the sequence.
func (n *numericKey) add(ev KeyDown) bool {
	switch {
	case ev.Key >= KeyNumpad0 && ev.Key <= KeyNumpad9:
		digit := uint32(ev.Key - KeyNumpad0)
		if n.kind == NumericUnicode {
			n.value = n.value*16 + digit
		} else {
			if n.keys == 0 && digit == 0 {
				n.kind = NumericANSI
			}
			n.value = n.value*10 + digit
		}
	case ev.Key == KeyNumpadAdd && n.keys == 0:
		n.kind = NumericUnicode
	case n.kind == NumericUnicode && isHexLetter(ev.Char):
		nib, _ := hexNibble(ev.Char)
		n.value = n.value*16 + uint32(nib)
	default:
		return false
	}
	n.keys++
	return true
}

func isHexLetter(r rune) bool {
	return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
