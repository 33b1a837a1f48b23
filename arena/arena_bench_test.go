package arena

import (
	"math/rand"
	"testing"

	"github.com/joshuapare/embkit/platform"
)

// Benchmark_Alloc_Free_Pair benchmarks the fast path: one allocation
// followed immediately by its release, so the region stays a single page.
func Benchmark_Alloc_Free_Pair(b *testing.B) {
	a, err := New(DefaultCapacity, WithGuard(platform.NopSection{}))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		ref, _, allocErr := a.Alloc(64)
		if allocErr != nil {
			b.Fatal(allocErr)
		}
		a.Free(ref)
	}
}

// Benchmark_Alloc_FirstFitWalk benchmarks allocation when the walk has to
// skip a run of busy pages before finding space.
func Benchmark_Alloc_FirstFitWalk(b *testing.B) {
	a, err := New(MaxCapacity, WithGuard(platform.NopSection{}))
	if err != nil {
		b.Fatal(err)
	}

	// Pin 64 small pages at the front so every allocation walks past them.
	for n := 0; n < 64; n++ {
		if _, _, allocErr := a.Alloc(16); allocErr != nil {
			b.Fatal(allocErr)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		ref, _, allocErr := a.Alloc(128)
		if allocErr != nil {
			b.Fatal(allocErr)
		}
		a.Free(ref)
	}
}

// Benchmark_Free_Coalesce benchmarks releasing the middle of three
// adjacent allocations, which exercises the backward merge.
func Benchmark_Free_Coalesce(b *testing.B) {
	a, err := New(DefaultCapacity, WithGuard(platform.NopSection{}))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		r1, _, _ := a.Alloc(64)
		r2, _, _ := a.Alloc(64)
		r3, _, _ := a.Alloc(64)
		a.Free(r2)
		a.Free(r1)
		a.Free(r3)
	}
}

// Benchmark_Churn_Random benchmarks a mixed workload of random-sized
// allocations and releases at a steady live-set size.
func Benchmark_Churn_Random(b *testing.B) {
	a, err := New(MaxCapacity, WithGuard(platform.NopSection{}))
	if err != nil {
		b.Fatal(err)
	}

	rng := rand.New(rand.NewSource(1))
	live := make([]Ref, 0, 128)

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		if len(live) < 128 {
			size := 8 + rng.Intn(120)
			ref, _, allocErr := a.Alloc(size)
			if allocErr != nil {
				b.Fatal(allocErr)
			}
			live = append(live, ref)
		} else {
			i := rng.Intn(len(live))
			a.Free(live[i])
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
}
