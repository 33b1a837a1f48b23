package arena

import "errors"

var (
	// ErrNoSpace indicates that no free page large enough was found for the
	// requested size. Recoverable: the caller decides whether to retry after
	// freeing, degrade, or halt.
	ErrNoSpace = errors.New("arena: no free page large enough")

	// ErrZeroSize indicates a zero or negative allocation request. Zero-length
	// allocations are a guaranteed failure by contract.
	ErrZeroSize = errors.New("arena: zero-size allocation")

	// ErrTooLarge indicates a request that cannot be described by a 16-bit
	// page size.
	ErrTooLarge = errors.New("arena: size exceeds 16-bit page limit")

	// ErrCapacity indicates an arena capacity outside the supported range.
	ErrCapacity = errors.New("arena: capacity out of range")

	// ErrCorrupt indicates that a file-backed region failed page-chain
	// validation on open.
	ErrCorrupt = errors.New("arena: corrupt page chain")
)
