// Package ring implements a fixed-capacity circular FIFO with per-slot
// visited/hidden metadata, built for one producer and one consumer running
// in different execution contexts.
//
// # Overview
//
// A Ring borrows a contiguous payload block, typically an arena allocation,
// and treats it as capacity = len(storage)/elemSize fixed-size slots. Each
// slot carries two metadata flags in a parallel array owned by the ring:
//
//   - hidden: the element is invisible to Pop, ReadShadow, IsVisited, and
//     PopIfVisited until UnhideIfHidden clears the flag.
//   - visited: set by ReadShadow/ReadShadowPtr, consumed by PopIfVisited
//     for peek-then-confirm protocols.
//
// In overwrite mode a push to a full ring evicts the oldest element, force
// clearing its hidden flag first, instead of failing.
//
// # Results
//
// Every operation is non-blocking and reports success as a boolean; there
// is nothing to retry inside the ring. The only unrecoverable path is an
// internal invariant violation, which is routed to the injected fatal hook.
//
// # Concurrency
//
// Each call runs inside the injected critical-section guard (a mutex by
// default), so a single Push or Pop is atomic with respect to the other
// side. Nothing is atomic across calls: "check Count, then Push later" is a
// caller-level race the ring does not protect against.
//
// # Typed Rings
//
// Of[T] wraps the byte engine with a typed API and draws its storage from
// an arena:
//
//	q, err := ring.NewOf[Command](a, 8)
//	if err != nil {
//	    return err
//	}
//	defer q.Close()
//
//	q.Push(Command{Op: 1})
//	cmd, ok := q.Pop()
package ring
