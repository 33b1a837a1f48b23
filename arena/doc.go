// Package arena implements a fixed-capacity first-fit allocator with page
// coalescing, modeled after the static heaps used on small embedded targets.
//
// # Overview
//
// An Arena owns a single byte region of fixed capacity. The region is always
// fully partitioned into a forward chain of pages, each prefixed by an 8-byte
// in-band header carrying the payload size, a free flag, and a link to the
// preceding page. Alloc carves pages out of the chain with a first-fit scan;
// Free marks a page free and merges adjacent free runs back together. Nothing
// is ever requested from the Go heap after construction.
//
// This is deliberately not a general-purpose heap: allocation is O(number of
// pages), sizes are 16-bit, and alignment is fixed at 4 bytes.
//
// # Basic Usage
//
//	a, err := arena.New(4096)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := a.Alloc(128)
//	if err != nil {
//	    // ErrNoSpace: the arena is exhausted or too fragmented
//	    return err
//	}
//
//	// Use buf, then hand the page back.
//	a.Free(ref)
//
// Typed and scoped variants are available for convenience:
//
//	ref, vals, err := arena.Make[uint16](a, 10)
//	defer a.Free(ref)
//
//	buf, release, err := a.Scratch(64)
//	defer release()
//
// # Split Threshold
//
// Alloc splits a free page only when the remainder can carry its own header.
// A remainder at or below one header's worth of bytes is folded into the
// allocation instead, so the arena never manufactures free fragments too
// small to satisfy any future request.
//
// # Caller Obligations
//
// Alloc failure is recoverable and must be checked. Free with a reference
// outside the region is silently ignored, and a forward-scan validation
// rejects references that do not name a currently-allocated page, including
// a reference freed a second time. Touching a payload after freeing it is a
// caller error the arena does not guard against.
//
// # Concurrency
//
// Every operation runs inside an injected critical section (see the platform
// package). The default guard is a mutex, making each individual call atomic
// with respect to other goroutines. Sequences of calls are not atomic;
// composing them safely is the caller's responsibility.
//
// # File-Backed Regions
//
// Create and OpenFile back the region with a memory-mapped snapshot file so
// host-side tooling can inspect or replay a heap image offline:
//
//	a, err := arena.Create("heap.img", 4096)
//	...
//	err = a.Sync()  // flush the region to disk
//	err = a.Close()
package arena
