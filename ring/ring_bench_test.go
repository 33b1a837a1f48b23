package ring

import (
	"testing"

	"github.com/joshuapare/embkit/arena"
	"github.com/joshuapare/embkit/platform"
)

// Benchmark_Push_Pop_Bytes benchmarks the raw byte engine at steady state.
func Benchmark_Push_Pop_Bytes(b *testing.B) {
	r := New(make([]byte, 64*8), 8, WithGuard(platform.NopSection{}))
	elem := make([]byte, 8)
	out := make([]byte, 8)

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		if !r.Push(elem, false) {
			b.Fatal("push failed")
		}
		if !r.Pop(out) {
			b.Fatal("pop failed")
		}
	}
}

// Benchmark_Push_Overwrite benchmarks pushes against a permanently full
// ring, where every push pays for an eviction.
func Benchmark_Push_Overwrite(b *testing.B) {
	r := New(make([]byte, 16*8), 8, WithOverwrite(), WithGuard(platform.NopSection{}))
	elem := make([]byte, 8)
	for i := 0; i < 16; i++ {
		r.Push(elem, false)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		if !r.Push(elem, false) {
			b.Fatal("push failed")
		}
	}
}

// Benchmark_Typed_Push_Pop benchmarks the generic wrapper over an
// arena-backed ring, including the value copies in and out.
func Benchmark_Typed_Push_Pop(b *testing.B) {
	a, err := arena.New(arena.DefaultCapacity)
	if err != nil {
		b.Fatal(err)
	}
	q, err := NewOf[command](a, 64, WithGuard(platform.NopSection{}))
	if err != nil {
		b.Fatal(err)
	}
	defer q.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if !q.Push(command{Op: uint16(i)}) {
			b.Fatal("push failed")
		}
		if _, ok := q.Pop(); !ok {
			b.Fatal("pop failed")
		}
	}
}

// Benchmark_ShadowCycle benchmarks the peek-confirm-consume protocol.
func Benchmark_ShadowCycle(b *testing.B) {
	r := New(make([]byte, 64), 8, WithGuard(platform.NopSection{}))
	elem := make([]byte, 8)
	out := make([]byte, 8)

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		if !r.Push(elem, false) {
			b.Fatal("push failed")
		}
		if !r.ReadShadow(out) {
			b.Fatal("read failed")
		}
		if !r.PopIfVisited() {
			b.Fatal("pop failed")
		}
	}
}
