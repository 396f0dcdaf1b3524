package buffer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// File tracks where a buffer came from so it can be written back and checked
// for changes made by other programs.
type File struct {
	name   string
	digest string
	isNew  bool
}

func NewFile() *File {
	return &File{isNew: true}
}

// Open reads a file into a new shared block. The caller owns the returned
// reference.
func Open(name string) (*File, *Data, int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, 0, err
	}
	if int64(len(content)) > MaxAllocation {
		return nil, nil, 0, fmt.Errorf("open %s: %w", name, ErrTooLarge)
	}

	return &File{name: name, digest: Digest(content)}, Wrap(content), int64(len(content)), nil
}

func (f *File) Name() string {
	return f.name
}

func (f *File) SetName(name string) {
	f.name = name
	f.isNew = false
}

func (f *File) IsNew() bool {
	return f.isNew
}

func (f *File) ChangedOnDisk() (bool, error) {
	if f.isNew || f.name == "" {
		return false, nil
	}

	content, err := os.ReadFile(f.name)
	if err != nil {
		return false, err
	}
	return Digest(content) != f.digest, nil
}

func (f *File) Save(content []byte) error {
	if f.name == "" {
		return fmt.Errorf("no filename set")
	}

	if err := os.WriteFile(f.name, content, 0644); err != nil {
		return err
	}

	f.digest = Digest(content)
	f.isNew = false
	return nil
}

func (f *File) SaveAs(name string, content []byte) error {
	f.name = name
	return f.Save(content)
}

// Digest is the hex sha256 of content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
