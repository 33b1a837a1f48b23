package arena

import (
	"fmt"
	"os"

	"github.com/joshuapare/embkit/internal/layout"
)

// Create creates a snapshot file of the given capacity, maps it read-write,
// and formats it as a fresh arena. The file must not already exist.
func Create(path string, capacity int, opts ...Option) (*Arena, error) {
	capacity, err := checkCapacity(capacity)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(capacity)); err != nil {
		f.Close()
		return nil, err
	}

	buf, unmap, err := mapRW(f, capacity)
	if err != nil {
		f.Close()
		return nil, err
	}

	a := newArena(buf, capacity, opts)
	a.file = f
	a.unmap = unmap
	a.format()
	return a, nil
}

// OpenFile maps an existing snapshot file read-write and validates its page
// chain. The file size is the arena capacity. Page state, including live
// allocations, is preserved exactly as last synced.
func OpenFile(path string, opts ...Option) (*Arena, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	capacity := int(info.Size())
	if capacity < MinCapacity || capacity > MaxCapacity || capacity%layout.Alignment != 0 {
		f.Close()
		return nil, fmt.Errorf("%w: file size %d", ErrCorrupt, capacity)
	}

	buf, unmap, err := mapRW(f, capacity)
	if err != nil {
		f.Close()
		return nil, err
	}

	a := newArena(buf, capacity, opts)
	a.file = f
	a.unmap = unmap
	if err := a.validate(); err != nil {
		a.unmap()
		f.Close()
		return nil, err
	}
	return a, nil
}

// validate walks the page chain, checks that it partitions the region with
// consistent back links, and rebuilds the free-capacity counter.
func (a *Arena) validate() error {
	prev := layout.PrevNone
	free := 0
	off := 0
	for off < a.capacity {
		if off+layout.HeaderSize > a.capacity {
			return fmt.Errorf("%w: header at %d overruns region", ErrCorrupt, off)
		}
		psz := layout.PageSize(a.buf, off)
		if psz == 0 || psz%layout.Alignment != 0 {
			return fmt.Errorf("%w: page at %d has size %d", ErrCorrupt, off, psz)
		}
		if got := layout.PagePrev(a.buf, off); got != prev {
			return fmt.Errorf("%w: page at %d links prev %d, want %d", ErrCorrupt, off, got, prev)
		}
		if layout.PageFree(a.buf, off) {
			free += psz
		}
		prev = off
		off += layout.HeaderSize + psz
	}
	if off != a.capacity {
		return fmt.Errorf("%w: chain ends at %d, want %d", ErrCorrupt, off, a.capacity)
	}
	a.freeBytes = free
	return nil
}

// Sync flushes a file-backed region to disk. It is a no-op for in-memory
// arenas.
func (a *Arena) Sync() error {
	if a.file == nil {
		return nil
	}
	a.guard.Enter()
	defer a.guard.Exit()
	return a.flush()
}

// Close flushes and unmaps a file-backed region and releases the file. The
// arena is unusable afterwards: Alloc reports ErrNoSpace and Free is a
// no-op. Close on an in-memory arena does nothing.
func (a *Arena) Close() error {
	if a.file == nil {
		return nil
	}
	a.guard.Enter()
	defer a.guard.Exit()

	err := a.flush()
	if a.unmap != nil {
		if uerr := a.unmap(); err == nil {
			err = uerr
		}
		a.unmap = nil
	}
	if cerr := a.file.Close(); err == nil {
		err = cerr
	}
	a.file = nil
	a.buf = nil
	a.capacity = 0
	a.freeBytes = 0
	return err
}
