package heap

import "unsafe"

const (
	// magicLive marks a block handed out by Alloc.
	magicLive uint32 = 0xDEADBEEF

	// magicFree marks a block parked on a free list. Restamping on release
	// turns a double free into a no-op instead of a corrupted chain.
	magicFree uint32 = 0xFEEDFACE
)

// header precedes every block in the arena. The payload starts immediately
// after it, so Free recovers the header by stepping back headerSize bytes
// from the payload address.
type header struct {
	magic uint32
	size  uint32 // caller-requested bytes
	psize uint32 // physical footprint incl. header, class-rounded
	_     uint32
	prev  uintptr // previous free-list node, 0 when none or when live
	next  uintptr // next free-list node, 0 when none or when live
}

const headerSize = unsafe.Sizeof(header{})
