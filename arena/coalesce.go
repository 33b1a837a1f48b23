package arena

import "github.com/joshuapare/embkit/internal/layout"

// coalesce frees the page whose header starts at target and merges adjacent
// free runs. Caller holds the guard.
//
// The pass is deliberately two traversals. The forward walk re-validates
// that target is a page boundary currently marked allocated, which is what
// turns an invalid free into a no-op instead of undefined behavior. The
// backward walk then merges every free page into a free predecessor;
// because each merge is applied leftward as the walk proceeds, one pass
// collapses arbitrarily long runs of adjacent free pages.
func (a *Arena) coalesce(target int) {
	found := false
	last := 0
	for off := 0; ; {
		pg := off
		off = pg + layout.HeaderSize + layout.PageSize(a.buf, pg)
		if pg == target && !layout.PageFree(a.buf, pg) {
			found = true
		}
		last = pg
		if off >= a.capacity {
			break
		}
	}
	if !found {
		return
	}

	layout.SetPageFree(a.buf, target, true)
	if a.freeBytes < a.capacity {
		a.freeBytes += layout.PageSize(a.buf, target) + layout.HeaderSize
	}

	// busy tracks the most recent allocated page seen while walking
	// backward; its back link must skip over any page absorbed below it.
	busy := -1
	for page := last; page > 0; {
		if !layout.PageFree(a.buf, page) {
			busy = page
			page = layout.PagePrev(a.buf, page)
			continue
		}
		prev := layout.PagePrev(a.buf, page)
		if layout.PageFree(a.buf, prev) {
			merged := layout.PageSize(a.buf, prev) + layout.PageSize(a.buf, page) + layout.HeaderSize
			layout.SetPageSize(a.buf, prev, merged)
			if busy >= 0 {
				layout.SetPagePrev(a.buf, busy, prev)
			}
		}
		page = prev
	}
}
