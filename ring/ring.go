package ring

import "github.com/joshuapare/embkit/platform"

// slotMeta is the per-slot metadata tracked alongside the payload.
type slotMeta struct {
	visited bool
	hidden  bool
}

// Ring is a fixed-capacity circular FIFO over borrowed byte storage. The
// ring owns the head/tail/count bookkeeping and the slot metadata; the
// storage's lifetime belongs to whoever allocated it.
type Ring struct {
	buf      []byte
	meta     []slotMeta
	elemSize int
	size     int

	head int // next write slot
	tail int // next read slot (oldest occupied when n > 0)
	n    int // occupied slots

	infinite bool
	guard    platform.Section
	fatal    platform.FatalFunc
}

// Option configures a Ring at construction time.
type Option func(*Ring)

// WithOverwrite puts the ring in overwrite-on-full ("infinite") mode: a
// push to a full ring evicts the oldest element instead of failing.
func WithOverwrite() Option {
	return func(r *Ring) { r.infinite = true }
}

// WithGuard injects the critical-section guard wrapped around every
// operation. The default is a per-ring MutexSection; pass
// platform.NopSection{} when producer and consumer share one context.
func WithGuard(s platform.Section) Option {
	return func(r *Ring) {
		if s != nil {
			r.guard = s
		}
	}
}

// WithFatal injects the hook invoked on internal invariant violations. The
// default panics. The hook must not return.
func WithFatal(f platform.FatalFunc) Option {
	return func(r *Ring) {
		if f != nil {
			r.fatal = f
		}
	}
}

// New binds a ring to storage, with capacity len(storage)/elemSize slots.
// A nil storage block, a non-positive elemSize, or storage too small for a
// single element yields an unbound ring on which every operation fails.
func New(storage []byte, elemSize int, opts ...Option) *Ring {
	r := &Ring{
		elemSize: elemSize,
		guard:    &platform.MutexSection{},
		fatal:    platform.DefaultFatal,
	}
	for _, opt := range opts {
		opt(r)
	}
	if storage != nil && elemSize > 0 && len(storage) >= elemSize {
		r.buf = storage
		r.size = len(storage) / elemSize
		r.meta = make([]slotMeta, r.size)
	}
	return r
}

// Bound reports whether the ring has storage.
func (r *Ring) Bound() bool {
	return r.buf != nil
}

// Cap returns the slot capacity.
func (r *Ring) Cap() int {
	return r.size
}

// ElemSize returns the element size in bytes.
func (r *Ring) ElemSize() int {
	return r.elemSize
}

// Count returns the number of occupied slots, 0 for an unbound ring.
func (r *Ring) Count() int {
	if r.buf == nil {
		return 0
	}
	r.guard.Enter()
	defer r.guard.Exit()
	return r.n
}

// Reset zeroes head, tail, and count. Slot contents and metadata are left
// untouched; with the count at zero they are logically irrelevant.
func (r *Ring) Reset() {
	if r.buf == nil {
		return
	}
	r.guard.Enter()
	defer r.guard.Exit()
	r.head = 0
	r.tail = 0
	r.n = 0
}

// Push copies one element into the ring, optionally marking it hidden.
// Hidden elements cannot be read or removed until UnhideIfHidden clears the
// flag. Fails on an unbound ring, on short data, or on a full ring unless
// overwrite mode evicts the oldest element first.
func (r *Ring) Push(data []byte, hidden bool) bool {
	if r.buf == nil || len(data) < r.elemSize {
		return false
	}
	r.guard.Enter()
	defer r.guard.Exit()

	if r.n >= r.size {
		if !r.infinite {
			return false
		}
		// Discard the oldest element to make room. An element about to be
		// evicted must become poppable even if it was hidden.
		r.unhideLocked()
		if !r.popLocked(nil) {
			return false
		}
	}

	copy(r.slot(r.head), data[:r.elemSize])
	r.meta[r.head] = slotMeta{visited: false, hidden: hidden}
	r.head++
	if r.head >= r.size {
		r.head = 0
	}
	r.n++
	return true
}

// Pop removes the oldest visible element, copying it into out. A nil out
// discards the element without a copy. Fails on an empty or unbound ring
// and when the oldest element is hidden.
func (r *Ring) Pop(out []byte) bool {
	if r.buf == nil {
		return false
	}
	if out != nil && len(out) < r.elemSize {
		return false
	}
	r.guard.Enter()
	defer r.guard.Exit()
	return r.popLocked(out)
}

// ReadShadow copies the oldest visible element into out without removing
// it, and marks it visited. Fails under the same conditions as Pop.
func (r *Ring) ReadShadow(out []byte) bool {
	if r.buf == nil || len(out) < r.elemSize {
		return false
	}
	r.guard.Enter()
	defer r.guard.Exit()

	if r.n == 0 || r.meta[r.tail].hidden {
		return false
	}
	copy(out, r.slot(r.tail))
	r.meta[r.tail].visited = true
	return true
}

// ReadShadowPtr returns a view of the oldest visible element without a
// copy, marking it visited, or nil on failure. The view aliases live slot
// storage: it must not be retained past the next mutating ring operation.
func (r *Ring) ReadShadowPtr() []byte {
	if r.buf == nil {
		return nil
	}
	r.guard.Enter()
	defer r.guard.Exit()

	if r.n == 0 || r.meta[r.tail].hidden {
		return nil
	}
	r.meta[r.tail].visited = true
	return r.slot(r.tail)
}

// PopIfVisited removes the oldest element only if it is marked visited,
// for consumers confirming an earlier ReadShadow. No side effect on
// failure.
func (r *Ring) PopIfVisited() bool {
	if r.buf == nil {
		return false
	}
	r.guard.Enter()
	defer r.guard.Exit()

	if r.n == 0 || !r.meta[r.tail].visited {
		return false
	}
	r.meta[r.tail].visited = false
	r.tail++
	if r.tail >= r.size {
		r.tail = 0
	}
	r.n--
	return true
}

// IsVisited reports whether the oldest element is marked visited, false on
// an empty or unbound ring.
func (r *Ring) IsVisited() bool {
	if r.buf == nil {
		return false
	}
	r.guard.Enter()
	defer r.guard.Exit()

	if r.n == 0 {
		return false
	}
	return r.meta[r.tail].visited
}

// UnhideIfHidden clears the oldest element's hidden flag, reporting whether
// anything changed. False on an empty or unbound ring.
func (r *Ring) UnhideIfHidden() bool {
	if r.buf == nil {
		return false
	}
	r.guard.Enter()
	defer r.guard.Exit()

	if r.n == 0 {
		return false
	}
	return r.unhideLocked()
}

// popLocked removes the oldest visible element. Caller holds the guard.
func (r *Ring) popLocked(out []byte) bool {
	if r.n == 0 || r.meta[r.tail].hidden {
		return false
	}
	if out != nil {
		copy(out, r.slot(r.tail))
	}
	r.meta[r.tail].visited = false
	r.tail++
	if r.tail >= r.size {
		r.tail = 0
	}
	r.n--
	return true
}

// unhideLocked clears the oldest element's hidden flag. Caller holds the
// guard.
func (r *Ring) unhideLocked() bool {
	if r.n == 0 || !r.meta[r.tail].hidden {
		return false
	}
	r.meta[r.tail].hidden = false
	return true
}

// slot returns the payload view of slot idx. An index outside the bound
// range is an internal invariant violation and does not return.
func (r *Ring) slot(idx int) []byte {
	start := idx * r.elemSize
	end := start + r.elemSize
	if idx < 0 || idx >= r.size || end > len(r.buf) {
		r.fatal("ring: slot index out of range")
	}
	return r.buf[start:end:end]
}
