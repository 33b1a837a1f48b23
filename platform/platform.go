// Package platform holds the injected capabilities the allocator and ring
// buffer depend on: a critical-section guard and a fatal-failure hook.
//
// On a bare-metal target the guard maps to interrupt masking and the fatal
// hook to a software breakpoint. On a hosted Go runtime the provided
// MutexSection and the default panic hook cover the same contracts.
package platform

import "sync"

// Section is a scoped critical section. Enter suppresses the concurrent
// context (producer or consumer) for the duration of the operation; Exit
// releases it. Sections do not nest: a caller must not Enter a section it
// already holds.
type Section interface {
	Enter()
	Exit()
}

// NopSection performs no synchronization. Suitable when both sides of a
// ring buffer, or all users of an arena, run in a single execution context.
type NopSection struct{}

// Enter implements Section.
func (NopSection) Enter() {}

// Exit implements Section.
func (NopSection) Exit() {}

// MutexSection backs a critical section with a sync.Mutex. This is the
// default guard for arenas and ring buffers created without an explicit
// Section, making each individual operation atomic with respect to a
// concurrent producer or consumer goroutine.
type MutexSection struct {
	mu sync.Mutex
}

// Enter implements Section.
func (s *MutexSection) Enter() { s.mu.Lock() }

// Exit implements Section.
func (s *MutexSection) Exit() { s.mu.Unlock() }

// FatalFunc is invoked when an internal invariant is violated. It must not
// return; continuing after a violated invariant would corrupt shared state.
type FatalFunc func(msg string)

// DefaultFatal is the fatal hook used when none is injected. It panics,
// which is the hosted-runtime equivalent of halting at a breakpoint.
func DefaultFatal(msg string) {
	panic(msg)
}
