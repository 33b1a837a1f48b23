package ring

import (
	"unsafe"

	"github.com/joshuapare/embkit/arena"
)

// Of is a typed ring buffer wrapping the byte engine. Storage is drawn from
// an arena at construction and returned by Close.
//
// T must not contain Go pointers: elements live in plain arena bytes that
// the garbage collector does not scan.
type Of[T any] struct {
	r   *Ring
	a   *arena.Arena
	ref arena.Ref
}

// NewOf allocates storage for slots elements of T from the arena and binds
// a ring to it. Allocation errors (arena.ErrNoSpace, arena.ErrZeroSize)
// pass through.
func NewOf[T any](a *arena.Arena, slots int, opts ...Option) (*Of[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	ref, buf, err := a.Alloc(elemSize * slots)
	if err != nil {
		return nil, err
	}
	// The arena may round the payload up; bind exactly slots slots.
	return &Of[T]{
		r:   New(buf[:elemSize*slots], elemSize, opts...),
		a:   a,
		ref: ref,
	}, nil
}

// Close returns the ring's storage to the arena. The ring must not be used
// afterwards.
func (q *Of[T]) Close() {
	q.a.Free(q.ref)
}

// Count returns the number of occupied slots.
func (q *Of[T]) Count() int { return q.r.Count() }

// Reset zeroes head, tail, and count without touching slot contents.
func (q *Of[T]) Reset() { q.r.Reset() }

// Push appends v, failing when the ring is full and not in overwrite mode.
func (q *Of[T]) Push(v T) bool {
	return q.r.Push(viewOf(&v), false)
}

// PushHidden appends v marked hidden. The element stays invisible to Pop
// and ReadShadow until UnhideIfHidden clears the flag.
func (q *Of[T]) PushHidden(v T) bool {
	return q.r.Push(viewOf(&v), true)
}

// Pop removes and returns the oldest visible element.
func (q *Of[T]) Pop() (T, bool) {
	var v T
	ok := q.r.Pop(viewOf(&v))
	return v, ok
}

// Discard removes the oldest visible element without returning a copy.
func (q *Of[T]) Discard() bool {
	return q.r.Pop(nil)
}

// ReadShadow returns the oldest visible element without removing it,
// marking it visited.
func (q *Of[T]) ReadShadow() (T, bool) {
	var v T
	ok := q.r.ReadShadow(viewOf(&v))
	return v, ok
}

// ReadShadowRef returns a direct reference to the oldest visible element,
// marking it visited, or nil on failure. The reference aliases live slot
// storage and must not be retained past the next mutating ring operation.
func (q *Of[T]) ReadShadowRef() *T {
	b := q.r.ReadShadowPtr()
	if b == nil {
		return nil
	}
	return (*T)(unsafe.Pointer(&b[0]))
}

// PopIfVisited removes the oldest element only if it is marked visited.
func (q *Of[T]) PopIfVisited() bool { return q.r.PopIfVisited() }

// IsVisited reports whether the oldest element is marked visited.
func (q *Of[T]) IsVisited() bool { return q.r.IsVisited() }

// UnhideIfHidden clears the oldest element's hidden flag, reporting whether
// anything changed.
func (q *Of[T]) UnhideIfHidden() bool { return q.r.UnhideIfHidden() }

// viewOf returns the raw bytes of the value v points at.
func viewOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}
