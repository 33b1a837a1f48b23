package arena

import "github.com/joshuapare/embkit/internal/layout"

// Page describes one page of the arena chain, for inspection and tooling.
type Page struct {
	Offset int  // header offset within the region
	Size   int  // payload bytes
	Free   bool // free or allocated
	Prev   int  // header offset of the preceding page, -1 for the first
}

// Pages returns the current page chain in address order.
func (a *Arena) Pages() []Page {
	a.guard.Enter()
	defer a.guard.Exit()

	var pages []Page
	for off := 0; off < a.capacity; {
		prev := layout.PagePrev(a.buf, off)
		if prev == layout.PrevNone {
			prev = -1
		}
		p := Page{
			Offset: off,
			Size:   layout.PageSize(a.buf, off),
			Free:   layout.PageFree(a.buf, off),
			Prev:   prev,
		}
		pages = append(pages, p)
		off += layout.HeaderSize + p.Size
	}
	return pages
}

// Stats contains a snapshot of arena statistics.
type Stats struct {
	Capacity    int     // total region size, headers included
	FreeBytes   int     // incremental free-capacity counter
	Pages       int     // number of pages in the chain
	FreePages   int     // number of free pages
	LargestFree int     // largest free payload, what a single Alloc can get
	Utilization float64 // allocated bytes (headers included) over capacity
}

// Stats walks the page chain and returns a snapshot of the arena state.
func (a *Arena) Stats() Stats {
	a.guard.Enter()
	defer a.guard.Exit()

	s := Stats{Capacity: a.capacity, FreeBytes: a.freeBytes}
	allocated := 0
	for off := 0; off < a.capacity; {
		psz := layout.PageSize(a.buf, off)
		s.Pages++
		if layout.PageFree(a.buf, off) {
			s.FreePages++
			if psz > s.LargestFree {
				s.LargestFree = psz
			}
		} else {
			allocated += layout.HeaderSize + psz
		}
		off += layout.HeaderSize + psz
	}
	if a.capacity > 0 {
		s.Utilization = float64(allocated) / float64(a.capacity)
	}
	return s
}
