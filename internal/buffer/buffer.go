package buffer

import (
	"errors"
	"fmt"
)

// GrowthPadding is added to every reallocation so that typing at the end of
// the buffer does not copy on each keystroke.
const GrowthPadding = 16384

// MaxAllocation caps a single block. Lengths are int64 so a request past the
// ceiling is reported rather than wrapped.
const MaxAllocation int64 = 1<<32 - 1

var (
	ErrTooLarge    = errors.New("buffer: allocation too large")
	ErrOutOfRange  = errors.New("buffer: offset out of range")
	ErrInvalidSize = errors.New("buffer: invalid length")
)

// Buffer is a growable byte store with an allocated capacity and a smaller
// count of valid bytes.
type Buffer struct {
	data  *Data
	valid int64
	limit int64
}

type Option func(*Buffer)

// WithLimit lowers the allocation ceiling.
func WithLimit(n int64) Option {
	return func(b *Buffer) {
		if n < MaxAllocation {
			b.limit = n
		}
	}
}

func New(opts ...Option) *Buffer {
	b := &Buffer{limit: MaxAllocation}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Buffer) Valid() int64 {
	return b.valid
}

func (b *Buffer) Allocated() int64 {
	if b.data == nil {
		return 0
	}
	return b.data.Len()
}

// Bytes returns the valid bytes. The slice aliases the store and is only
// good until the next mutation.
func (b *Buffer) Bytes() []byte {
	if b.data == nil {
		return nil
	}
	return b.data.bytes[:b.valid]
}

func (b *Buffer) ByteAt(off int64) (byte, bool) {
	if off < 0 || off >= b.valid {
		return 0, false
	}
	return b.data.bytes[off], true
}

func (b *Buffer) SetByte(off int64, v byte) bool {
	if off < 0 || off >= b.valid {
		return false
	}
	b.data.bytes[off] = v
	return true
}

// EnsureAllocated makes room for at least n bytes. On failure the buffer is
// left as it was.
func (b *Buffer) EnsureAllocated(n int64) error {
	if n <= b.Allocated() {
		return nil
	}
	if n > b.limit-GrowthPadding {
		return fmt.Errorf("grow to %d bytes: %w", n, ErrTooLarge)
	}
	next, err := newData(n+GrowthPadding, b.limit)
	if err != nil {
		return err
	}
	if b.valid > 0 {
		copy(next.bytes, b.data.bytes[:b.valid])
	}
	b.data.Release()
	b.data = next
	return nil
}

// EnsureValid extends the valid range to n bytes, zero filling the new tail.
func (b *Buffer) EnsureValid(n int64) error {
	if n <= b.valid {
		return fmt.Errorf("extend to %d of %d: %w", n, b.valid, ErrInvalidSize)
	}
	if err := b.EnsureAllocated(n); err != nil {
		return err
	}
	clear(b.data.bytes[b.valid:n])
	b.valid = n
	return nil
}

// InsertSpace opens a zeroed gap of count bytes at off.
func (b *Buffer) InsertSpace(off, count int64) error {
	if off < 0 || off > b.valid {
		return fmt.Errorf("insert at %d of %d: %w", off, b.valid, ErrOutOfRange)
	}
	if count < 0 {
		return fmt.Errorf("insert %d bytes: %w", count, ErrInvalidSize)
	}
	if count == 0 {
		return nil
	}
	if count > b.limit-b.valid {
		return fmt.Errorf("insert %d bytes: %w", count, ErrTooLarge)
	}
	if err := b.EnsureAllocated(b.valid + count); err != nil {
		return err
	}
	buf := b.data.bytes
	copy(buf[off+count:b.valid+count], buf[off:b.valid])
	clear(buf[off : off+count])
	b.valid += count
	return nil
}

// DeleteRange removes up to count bytes at off and returns how many went.
func (b *Buffer) DeleteRange(off, count int64) int64 {
	if off < 0 || off >= b.valid || count <= 0 {
		return 0
	}
	if count > b.valid-off {
		count = b.valid - off
	}
	buf := b.data.bytes
	copy(buf[off:], buf[off+count:b.valid])
	b.valid -= count
	return count
}

// Insert opens a gap at off and fills it with p.
func (b *Buffer) Insert(off int64, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := b.InsertSpace(off, int64(len(p))); err != nil {
		return err
	}
	copy(b.data.bytes[off:], p)
	return nil
}

// Replace overwrites existing bytes. It never extends the buffer.
func (b *Buffer) Replace(off int64, p []byte) error {
	if off < 0 || off+int64(len(p)) > b.valid {
		return fmt.Errorf("replace %d bytes at %d of %d: %w", len(p), off, b.valid, ErrOutOfRange)
	}
	copy(b.data.bytes[off:], p)
	return nil
}

// Copy returns a private copy of count bytes at off.
func (b *Buffer) Copy(off, count int64) ([]byte, error) {
	if off < 0 || count < 0 || off+count > b.valid {
		return nil, fmt.Errorf("copy %d bytes at %d: %w", count, off, ErrOutOfRange)
	}
	if count > b.limit {
		return nil, fmt.Errorf("copy %d bytes: %w", count, ErrTooLarge)
	}
	out := make([]byte, count)
	if count == 0 {
		return out, nil
	}
	copy(out, b.data.bytes[off:off+count])
	return out, nil
}

// Attach replaces the store with d, taking a new reference to it. valid must
// fit inside the block.
func (b *Buffer) Attach(d *Data, valid int64) error {
	if d == nil {
		if valid != 0 {
			return fmt.Errorf("attach %d valid bytes to nothing: %w", valid, ErrInvalidSize)
		}
		b.Reset()
		return nil
	}
	if valid < 0 || valid > d.Len() {
		return fmt.Errorf("attach %d valid bytes to %d: %w", valid, d.Len(), ErrInvalidSize)
	}
	d.Retain()
	b.data.Release()
	b.data = d
	b.valid = valid
	return nil
}

// Share hands out a new reference to the live store. The caller must
// Release it. Both results are zero for an empty buffer.
func (b *Buffer) Share() (*Data, int64) {
	if b.data == nil {
		return nil, 0
	}
	return b.data.Retain(), b.valid
}

// Reset drops the store.
func (b *Buffer) Reset() {
	b.data.Release()
	b.data = nil
	b.valid = 0
}
