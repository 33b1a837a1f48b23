//go:build unix

package arena

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// mapRW maps size bytes of f into memory, shared and writable.
func mapRW(f *os.File, size int) ([]byte, func() error, error) {
	data, err := syscall.Mmap(int(f.Fd()), 0, size,
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		err := syscall.Munmap(data)
		if errors.Is(err, syscall.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}

// flush msyncs the mapped region and syncs the backing file. Caller holds
// the guard.
func (a *Arena) flush() error {
	if err := unix.Msync(a.buf, unix.MS_SYNC); err != nil {
		return err
	}
	return a.file.Sync()
}
