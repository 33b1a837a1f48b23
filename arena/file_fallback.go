//go:build !unix

package arena

import (
	"io"
	"os"
)

// mapRW reads the file into an in-memory copy on platforms without mmap
// support. flush writes the copy back.
func mapRW(f *os.File, size int) ([]byte, func() error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}

// flush writes the region copy back to the file. Caller holds the guard.
func (a *Arena) flush() error {
	if _, err := a.file.WriteAt(a.buf, 0); err != nil {
		return err
	}
	return a.file.Sync()
}
