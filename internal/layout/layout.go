// Package layout defines the on-region binary layout of arena page headers.
//
// Every page inside an arena region is prefixed by a fixed 8-byte header.
// Headers are addressed by byte offset from the start of the region and are
// encoded little-endian:
//
//	Offset  Size  Description
//	0x00    2     Payload size in bytes (excludes the header itself).
//	0x02    1     Flags. Bit 0 set => page is free.
//	0x03    1     Reserved (zero).
//	0x04    2     Header offset of the preceding page, or PrevNone for the
//	              first page. Navigation link only; the arena owns all pages.
//	0x06    2     Reserved (zero).
//
// Offsets and sizes are 16-bit, which caps a region at MaxCapacity bytes.
package layout

import "encoding/binary"

const (
	// HeaderSize is the size of a page header in bytes.
	HeaderSize = 8

	// SizeOffset is the header offset of the payload-size field.
	SizeOffset = 0

	// FlagsOffset is the header offset of the flags byte.
	FlagsOffset = 2

	// PrevOffset is the header offset of the previous-page link.
	PrevOffset = 4

	// FlagFree marks a page as free.
	FlagFree = 0x01

	// PrevNone is the previous-page link value of the first page.
	PrevNone = 0xFFFF

	// Alignment is the payload alignment. Requested sizes are rounded up
	// to a multiple of this.
	Alignment = 4

	// AlignmentMask is Alignment - 1.
	AlignmentMask = Alignment - 1

	// MaxCapacity is the largest region an arena can manage. Page offsets
	// are uint16, so the region must stay below 64 KiB, and it must remain
	// a multiple of Alignment.
	MaxCapacity = 0xFFFC

	// MaxPayload is the largest single payload a header can describe.
	MaxPayload = MaxCapacity - HeaderSize
)

// Align4 returns n aligned up to the next 4-byte boundary.
//
// Example:
//
//	Align4(1) = 4
//	Align4(4) = 4
//	Align4(5) = 8
func Align4(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// PutU16 writes a uint16 value to the buffer at the specified offset in little-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// ReadU16 reads a uint16 value from the buffer at the specified offset in little-endian format.
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// PageSize reads the payload size of the page whose header starts at off.
func PageSize(b []byte, off int) int {
	return int(ReadU16(b, off+SizeOffset))
}

// SetPageSize writes the payload size of the page whose header starts at off.
func SetPageSize(b []byte, off, size int) {
	PutU16(b, off+SizeOffset, uint16(size))
}

// PageFree reports whether the page whose header starts at off is free.
func PageFree(b []byte, off int) bool {
	return b[off+FlagsOffset]&FlagFree != 0
}

// SetPageFree sets or clears the free flag of the page whose header starts at off.
func SetPageFree(b []byte, off int, free bool) {
	if free {
		b[off+FlagsOffset] |= FlagFree
	} else {
		b[off+FlagsOffset] &^= FlagFree
	}
}

// InitPage writes a complete header at off, overwriting whatever bytes were
// there. Reserved bytes are zeroed so stale payload data never leaks into a
// header.
func InitPage(b []byte, off, size int, free bool, prev int) {
	PutU16(b, off+SizeOffset, uint16(size))
	var flags byte
	if free {
		flags = FlagFree
	}
	b[off+FlagsOffset] = flags
	b[off+FlagsOffset+1] = 0
	PutU16(b, off+PrevOffset, uint16(prev))
	PutU16(b, off+PrevOffset+2, 0)
}

// PagePrev reads the previous-page link of the page whose header starts at off.
// Returns PrevNone for the first page.
func PagePrev(b []byte, off int) int {
	return int(ReadU16(b, off+PrevOffset))
}

// SetPagePrev writes the previous-page link of the page whose header starts at off.
func SetPagePrev(b []byte, off, prev int) {
	PutU16(b, off+PrevOffset, uint16(prev))
}
