package arena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/embkit/internal/layout"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestArena creates an in-memory arena and fails the test on error.
func newTestArena(t testing.TB, capacity int) *Arena {
	t.Helper()
	a, err := New(capacity)
	require.NoError(t, err, "New should succeed")
	return a
}

// assertInvariants checks the structural invariants of the page chain: the
// chain fully partitions the region, pages are contiguous, back links point
// at the preceding page, and payload sizes stay aligned.
func assertInvariants(t testing.TB, a *Arena) {
	t.Helper()
	pages := a.Pages()
	require.NotEmpty(t, pages, "chain must contain at least one page")

	total := 0
	prev := -1
	for i, p := range pages {
		require.Equal(t, total, p.Offset, "page %d must start where the previous ended", i)
		require.Equal(t, prev, p.Prev, "page %d back link must point at preceding page", i)
		require.Equal(t, 0, p.Size%layout.Alignment, "page %d payload must stay 4-aligned", i)
		total += layout.HeaderSize + p.Size
		prev = p.Offset
	}
	require.Equal(t, a.Capacity(), total,
		"sum of page payloads plus headers must equal capacity")
}

// mustAlloc allocates or fails the test.
func mustAlloc(t testing.TB, a *Arena, size int) (Ref, []byte) {
	t.Helper()
	ref, buf, err := a.Alloc(size)
	require.NoError(t, err, "Alloc(%d) should succeed", size)
	return ref, buf
}
