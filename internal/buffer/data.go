package buffer

import (
	"fmt"
	"sync/atomic"
)

// Data is a reference counted block of bytes that can be shared between the
// control and the code that handed it over. The block is dropped when the
// last holder releases it.
type Data struct {
	bytes []byte
	refs  atomic.Int32
}

// NewData allocates a zeroed block of n bytes holding one reference.
func NewData(n int64) (*Data, error) {
	return newData(n, MaxAllocation)
}

func newData(n, limit int64) (*Data, error) {
	if n < 0 || n > limit {
		return nil, fmt.Errorf("allocate %d bytes: %w", n, ErrTooLarge)
	}
	d := &Data{bytes: make([]byte, n)}
	d.refs.Store(1)
	return d, nil
}

// Wrap takes over b as the storage of a new block with one reference.
func Wrap(b []byte) *Data {
	d := &Data{bytes: b}
	d.refs.Store(1)
	return d
}

// Retain adds a reference and returns d for chaining.
func (d *Data) Retain() *Data {
	d.refs.Add(1)
	return d
}

// Release drops a reference. The storage is discarded with the last one.
func (d *Data) Release() {
	if d == nil {
		return
	}
	if d.refs.Add(-1) == 0 {
		d.bytes = nil
	}
}

func (d *Data) Refs() int {
	return int(d.refs.Load())
}

// Bytes returns the whole allocation, valid or not.
func (d *Data) Bytes() []byte {
	return d.bytes
}

func (d *Data) Len() int64 {
	return int64(len(d.bytes))
}
