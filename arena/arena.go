package arena

import (
	"fmt"
	"os"

	"github.com/joshuapare/embkit/internal/layout"
	"github.com/joshuapare/embkit/platform"
)

// Runtime flag for allocation logging - controlled by EMBKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("EMBKIT_LOG_ALLOC") != ""

const (
	// DefaultCapacity is the region size used when New is given a
	// non-positive capacity.
	DefaultCapacity = 4096

	// MinCapacity is the smallest usable region: one header plus the
	// smallest aligned payload, rounded up.
	MinCapacity = 16

	// MaxCapacity is the largest supported region. Page sizes and offsets
	// are 16-bit.
	MaxCapacity = layout.MaxCapacity
)

// Ref is a payload reference: the byte offset of a page payload within the
// arena region. The zero Ref is never a valid payload.
type Ref = uint16

// Arena is a fixed-capacity first-fit allocator over a single byte region.
// All page bookkeeping lives in-band in the region itself, addressed by
// offset. Construct with New, Create, or OpenFile.
type Arena struct {
	buf       []byte
	capacity  int
	freeBytes int

	guard platform.Section

	// Set only for file-backed regions.
	file  *os.File
	unmap func() error
}

// Option configures an Arena at construction time.
type Option func(*Arena)

// WithGuard injects the critical-section guard wrapped around every
// operation. The default is a per-arena MutexSection; pass
// platform.NopSection{} when all callers share one execution context.
func WithGuard(s platform.Section) Option {
	return func(a *Arena) {
		if s != nil {
			a.guard = s
		}
	}
}

// New creates an in-memory arena of the given capacity in bytes. A
// non-positive capacity selects DefaultCapacity. The capacity is rounded up
// to a multiple of 4 and must stay within [MinCapacity, MaxCapacity].
func New(capacity int, opts ...Option) (*Arena, error) {
	capacity, err := checkCapacity(capacity)
	if err != nil {
		return nil, err
	}
	a := newArena(make([]byte, capacity), capacity, opts)
	a.format()
	return a, nil
}

// newArena builds an Arena over buf without touching the page chain.
func newArena(buf []byte, capacity int, opts []Option) *Arena {
	a := &Arena{
		buf:      buf,
		capacity: capacity,
		guard:    &platform.MutexSection{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// format initializes the region to one free page spanning the full usable
// capacity.
func (a *Arena) format() {
	layout.InitPage(a.buf, 0, a.capacity-layout.HeaderSize, true, layout.PrevNone)
	a.freeBytes = a.capacity - layout.HeaderSize
}

func checkCapacity(capacity int) (int, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	capacity = layout.Align4(capacity)
	if capacity < MinCapacity || capacity > MaxCapacity {
		return 0, ErrCapacity
	}
	return capacity, nil
}

// Capacity returns the total region size in bytes, headers included.
func (a *Arena) Capacity() int {
	return a.capacity
}

// FreeBytes returns the aggregate free-capacity counter. The counter is
// maintained incrementally on split allocations and frees rather than
// recomputed by scanning, so it is an upper bound on what a single Alloc
// can actually obtain.
func (a *Arena) FreeBytes() int {
	a.guard.Enter()
	defer a.guard.Exit()
	return a.freeBytes
}

// Alloc returns a reference to, and a view over, a payload region of at
// least size bytes, or ErrNoSpace when no fitting free page exists. The
// requested size is rounded up to a multiple of 4. Payload contents are
// unspecified; pages recycled by Free retain stale bytes.
func (a *Arena) Alloc(size int) (Ref, []byte, error) {
	a.guard.Enter()
	defer a.guard.Exit()
	return a.alloc(size)
}

func (a *Arena) alloc(size int) (Ref, []byte, error) {
	if size <= 0 {
		return 0, nil, ErrZeroSize
	}
	size = layout.Align4(size)
	if size > layout.MaxPayload {
		return 0, nil, ErrTooLarge
	}
	if a.freeBytes < size+layout.HeaderSize {
		return 0, nil, ErrNoSpace
	}

	for off := 0; off < a.capacity; {
		psz := layout.PageSize(a.buf, off)
		if !layout.PageFree(a.buf, off) || psz < size {
			off += layout.HeaderSize + psz
			continue
		}

		if psz-size <= layout.HeaderSize {
			// The remainder cannot carry its own header. Hand out the
			// whole page so no unusable sliver is created.
			layout.SetPageFree(a.buf, off, false)
		} else {
			// Split: a new free page starts right after the requested
			// payload, and the successor's back link is repointed at it.
			tail := off + layout.HeaderSize + size
			layout.InitPage(a.buf, tail, psz-size-layout.HeaderSize, true, off)

			next := off + layout.HeaderSize + psz
			if next < a.capacity {
				layout.SetPagePrev(a.buf, next, tail)
			}

			layout.SetPageSize(a.buf, off, size)
			layout.SetPageFree(a.buf, off, false)
			a.freeBytes -= size + layout.HeaderSize
		}

		payload := off + layout.HeaderSize
		got := layout.PageSize(a.buf, off)
		if logAlloc {
			fmt.Fprintf(os.Stderr, "embkit: alloc size=%d ref=0x%X page=%d\n", size, payload, got)
		}
		return Ref(payload), a.buf[payload : payload+got : payload+got], nil
	}

	return 0, nil, ErrNoSpace
}

// Free returns the page referenced by ref to the arena and coalesces
// adjacent free runs. A ref outside the region's payload range is silently
// ignored, and a forward-scan validation drops refs that do not name a
// currently-allocated page, which also makes a second free of the same ref
// a no-op as long as the page has not been handed out again.
func (a *Arena) Free(ref Ref) {
	a.guard.Enter()
	defer a.guard.Exit()

	p := int(ref)
	if p < layout.HeaderSize || p >= a.capacity {
		return
	}
	if logAlloc {
		fmt.Fprintf(os.Stderr, "embkit: free ref=0x%X\n", p)
	}
	a.coalesce(p - layout.HeaderSize)
}
