package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/embkit/internal/layout"
)

// carveFreePage produces an arena whose first page is a free page of
// exactly payload bytes, followed by a busy guard page so coalescing
// cannot fold the first page into the rest of the region.
func carveFreePage(t *testing.T, payload int) (*Arena, Ref) {
	t.Helper()
	a := newTestArena(t, 4096)
	ref, _ := mustAlloc(t, a, payload)
	_, _ = mustAlloc(t, a, 16) // guard
	a.Free(ref)

	require.True(t, a.Pages()[0].Free, "first page must be free again")
	require.Equal(t, payload, a.Pages()[0].Size)
	return a, ref
}

func TestSplitCreatesTailFreePage(t *testing.T) {
	a := newTestArena(t, 4096)
	usable := 4096 - layout.HeaderSize

	_, buf := mustAlloc(t, a, 100)
	assert.Len(t, buf, 100, "split allocation gets exactly the requested size")

	pages := a.Pages()
	require.Len(t, pages, 2)
	assert.False(t, pages[0].Free)
	assert.Equal(t, 100, pages[0].Size)
	assert.True(t, pages[1].Free)
	assert.Equal(t, usable-100-layout.HeaderSize, pages[1].Size,
		"tail keeps the leftover minus one header")
	assertInvariants(t, a)
}

func TestSplitThresholdAbsorbsRemainder(t *testing.T) {
	// Remainder of 4 (100-96) is at most one header: no split.
	a, ref := carveFreePage(t, 100)
	got, buf := mustAlloc(t, a, 96)
	assert.Equal(t, ref, got, "first fit reuses the freed page")
	assert.Len(t, buf, 100, "4-byte remainder is absorbed")
	assert.Equal(t, 100, a.Pages()[0].Size)
	assertInvariants(t, a)
}

func TestSplitThresholdAbsorbsHeaderSizedRemainder(t *testing.T) {
	// Remainder of exactly one header (100-92) still folds in.
	a, ref := carveFreePage(t, 100)
	got, buf := mustAlloc(t, a, 92)
	assert.Equal(t, ref, got)
	assert.Len(t, buf, 100, "8-byte remainder is absorbed")
	assertInvariants(t, a)
}

func TestSplitAboveThreshold(t *testing.T) {
	// Remainder of 12 (100-88) exceeds one header: split, leaving a
	// 4-byte free tail.
	a, ref := carveFreePage(t, 100)
	got, buf := mustAlloc(t, a, 88)
	assert.Equal(t, ref, got)
	assert.Len(t, buf, 88)

	pages := a.Pages()
	require.GreaterOrEqual(t, len(pages), 2)
	assert.Equal(t, 88, pages[0].Size)
	assert.False(t, pages[0].Free)
	assert.True(t, pages[1].Free)
	assert.Equal(t, 4, pages[1].Size, "tail is leftover minus one header")
	assertInvariants(t, a)
}

func TestSplitExactFit(t *testing.T) {
	a, ref := carveFreePage(t, 100)
	got, buf := mustAlloc(t, a, 100)
	assert.Equal(t, ref, got)
	assert.Len(t, buf, 100)
	assert.Equal(t, 100, a.Pages()[0].Size, "exact fit never splits")
	assertInvariants(t, a)
}

func TestSplitRepointsSuccessorBackLink(t *testing.T) {
	a, _ := carveFreePage(t, 100)

	// Splitting the first page inserts a new free page before the busy
	// guard; the guard's back link must be repointed at it.
	_, _ = mustAlloc(t, a, 48)

	pages := a.Pages()
	require.GreaterOrEqual(t, len(pages), 3)
	assert.False(t, pages[0].Free)
	assert.Equal(t, 48, pages[0].Size)
	assert.True(t, pages[1].Free)
	assert.Equal(t, pages[1].Offset, pages[2].Prev,
		"successor must link back to the new free page")
	assertInvariants(t, a)
}
