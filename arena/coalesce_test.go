package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/embkit/internal/layout"
)

func TestCoalesceRestoresSinglePage(t *testing.T) {
	sizes := []int{64, 128, 32, 256, 48}

	orders := map[string][]int{
		"forward":     {0, 1, 2, 3, 4},
		"reverse":     {4, 3, 2, 1, 0},
		"interleaved": {2, 0, 4, 1, 3},
	}

	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			a := newTestArena(t, 2048)
			usable := 2048 - layout.HeaderSize

			refs := make([]Ref, len(sizes))
			for i, sz := range sizes {
				refs[i], _ = mustAlloc(t, a, sz)
			}

			for _, i := range order {
				a.Free(refs[i])
				assertInvariants(t, a)
			}

			pages := a.Pages()
			require.Len(t, pages, 1, "all frees must collapse into one page")
			assert.True(t, pages[0].Free)
			assert.Equal(t, usable, pages[0].Size)
			assert.Equal(t, usable, a.FreeBytes())
		})
	}
}

func TestCoalesceMergesMiddleRun(t *testing.T) {
	a := newTestArena(t, 2048)

	refA, _ := mustAlloc(t, a, 64)
	refB, _ := mustAlloc(t, a, 64)
	refC, _ := mustAlloc(t, a, 64)
	refD, _ := mustAlloc(t, a, 64)

	a.Free(refB)
	a.Free(refC)

	// B and C plus the header between them become one free page.
	pages := a.Pages()
	require.Len(t, pages, 4, "A, merged(B+C), D, tail")
	assert.False(t, pages[0].Free)
	assert.True(t, pages[1].Free)
	assert.Equal(t, 64+64+layout.HeaderSize, pages[1].Size)
	assert.False(t, pages[2].Free)
	assertInvariants(t, a)

	a.Free(refA)
	pages = a.Pages()
	require.Len(t, pages, 3, "A joins the merged run from the left")
	assert.True(t, pages[0].Free)
	assert.Equal(t, 64*3+2*layout.HeaderSize, pages[0].Size)

	a.Free(refD)
	require.Len(t, a.Pages(), 1)
	assertInvariants(t, a)
}

func TestCoalesceRelinksBusySuccessor(t *testing.T) {
	a := newTestArena(t, 2048)

	_, _ = mustAlloc(t, a, 64)
	refB, _ := mustAlloc(t, a, 64)
	refC, _ := mustAlloc(t, a, 64)
	refD, _ := mustAlloc(t, a, 64)
	_ = refD

	a.Free(refB)
	a.Free(refC)

	// D's back link must now skip the absorbed page C and point at the
	// merged free page starting where B used to.
	pages := a.Pages()
	require.Len(t, pages, 4)
	assert.Equal(t, pages[1].Offset, pages[2].Prev)
	assert.Equal(t, int(refB)-layout.HeaderSize, pages[1].Offset)
	assertInvariants(t, a)
}

func TestCoalesceWithTailPage(t *testing.T) {
	a := newTestArena(t, 1024)

	ref, _ := mustAlloc(t, a, 64)
	require.Len(t, a.Pages(), 2, "allocation splits off a free tail")

	// Freeing the only allocation must merge with the free tail back
	// into a single page.
	a.Free(ref)
	pages := a.Pages()
	require.Len(t, pages, 1)
	assert.Equal(t, 1024-layout.HeaderSize, pages[0].Size)
	assertInvariants(t, a)
}
