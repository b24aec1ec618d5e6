// Package heap implements a segregated-class allocator for a single
// contiguous memory region, in the style of a bare-metal kernel heap: fresh
// blocks are carved from a bump frontier, released blocks are recycled
// through per-class free lists, and the topmost block is reclaimed by
// rewinding the frontier.
package heap

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/embedgo/memkit/unsafex"
)

// Heap manages one arena. It is not goroutine safe; callers in concurrent
// environments must serialize externally.
type Heap struct {
	arena []byte         // pins the backing array for the life of the heap
	base  unsafe.Pointer // &arena[0]

	start    uintptr // first usable address, 32-byte aligned
	end      uintptr // one past the last usable address
	frontier uintptr // next never-used address
	max      uintptr // end - start
	used     uintptr // sum of psize over live blocks

	tails [numBuckets]uintptr // per-class free-list tails, 0 = empty

	fastFill FillFunc
	fastCopy CopyFunc
}

// New creates a heap over arena. The arena must hold at least one
// smallest-class block after its base is aligned up to 32 bytes.
func New(arena []byte, opts ...Option) (*Heap, error) {
	if len(arena) == 0 {
		return nil, fmt.Errorf("heap: empty arena")
	}
	base := unsafe.Pointer(unsafe.SliceData(arena))
	start := alignUp(uintptr(base), minAlign)
	end := uintptr(base) + uintptr(len(arena))
	if start+classSizes[0] > end {
		return nil, fmt.Errorf("heap: arena too small for one %d-byte block, got %d bytes", classSizes[0], len(arena))
	}
	h := &Heap{
		arena:    arena,
		base:     base,
		start:    start,
		end:      end,
		frontier: start,
		max:      end - start,
		fastFill: fill16,
		fastCopy: copy16,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Alloc returns a payload of size bytes, or nil when the request cannot be
// satisfied. Payloads are 32-byte aligned and not zeroed; the cap of the
// returned slice extends to the end of the underlying block.
func (h *Heap) Alloc(size int) []byte {
	if size <= 0 || uint64(size)+uint64(headerSize) > math.MaxUint32&^(minAlign-1) {
		return nil
	}
	k, allocSize := bucketFor(alignUp(uintptr(size)+headerSize, minAlign))
	if h.used+allocSize > h.max {
		return nil
	}

	var addr uintptr
	if k == numBuckets-1 {
		addr = h.popSize(k, allocSize)
	} else {
		addr = h.pop(k)
	}
	if addr == 0 {
		// no reusable block, carve a fresh one from the frontier
		if h.frontier+allocSize > h.end {
			return nil
		}
		addr = h.frontier
		h.frontier += allocSize
	}

	hd := h.hdr(addr)
	hd.magic = magicLive
	hd.size = uint32(size)
	hd.psize = uint32(allocSize)
	hd.prev = 0
	hd.next = 0
	h.used += allocSize

	return unsafe.Slice((*byte)(h.ptrAt(addr+headerSize)), allocSize-headerSize)[:size]
}

// Free returns a payload obtained from Alloc to the heap. Freeing nil is a
// no-op, as is freeing any pointer that does not carry a live block header.
//
// The block must start at the address returned by Alloc; a reslice such as
// block[n:] does not carry a header and is ignored.
func (h *Heap) Free(block []byte) {
	if cap(block) == 0 {
		return
	}
	h.free(unsafex.Addr(block))
}

func (h *Heap) free(payload uintptr) {
	if payload < h.start+headerSize || payload >= h.frontier {
		return
	}
	addr := payload - headerSize
	hd := h.hdr(addr)
	if hd.magic != magicLive {
		return
	}
	psize := uintptr(hd.psize)
	if psize < headerSize || psize%minAlign != 0 || addr+psize > h.frontier {
		return
	}

	if addr+psize == h.frontier {
		// topmost block: hand the space back to the frontier
		hd.magic = 0
		h.frontier = addr
	} else {
		k, _ := bucketFor(psize)
		h.push(k, addr)
	}
	h.used -= psize
}

// AllocAligned returns a payload of size bytes whose address is aligned to
// 1<<alignShift. It over-allocates a plain block with room for the padding
// plus one back-pointer word stored just before the returned address;
// FreeAligned reads that word to locate the original block.
func (h *Heap) AllocAligned(size, alignShift int) []byte {
	if size <= 0 || alignShift < 0 || alignShift > 30 {
		return nil
	}
	padding := uintptr(1)<<uint(alignShift) - 1
	admin := ptrSize + padding
	raw := h.Alloc(size + int(admin))
	if raw == nil {
		return nil
	}
	rawAddr := unsafex.Addr(raw)
	aligned := (rawAddr + admin) &^ padding
	*(*uintptr)(h.ptrAt(aligned - ptrSize)) = rawAddr
	return unsafe.Slice((*byte)(h.ptrAt(aligned)), size)
}

// FreeAligned releases a payload obtained from AllocAligned.
func (h *Heap) FreeAligned(block []byte) {
	if cap(block) == 0 {
		return
	}
	addr := unsafex.Addr(block)
	if addr < h.start+headerSize+ptrSize || addr >= h.frontier {
		return
	}
	h.free(*(*uintptr)(h.ptrAt(addr - ptrSize)))
}

// HeapStart returns the address of the first usable heap byte.
func (h *Heap) HeapStart() uintptr { return h.start }

// HeapEnd returns the address one past the last usable heap byte.
func (h *Heap) HeapEnd() uintptr { return h.end }

// HeapSize returns the usable capacity in bytes.
func (h *Heap) HeapSize() int { return int(h.max) }

// Used returns the bytes currently charged against the heap, block headers
// included.
func (h *Heap) Used() int { return int(h.used) }

// Available returns how many more footprint bytes the heap can hand out.
func (h *Heap) Available() int { return int(h.max - h.used) }

// Reset drops every allocation and returns the heap to its initial state.
// Any payload handed out earlier must no longer be used.
func (h *Heap) Reset() {
	h.frontier = h.start
	h.used = 0
	for i := range h.tails {
		h.tails[i] = 0
	}
}

// Stats describes the current occupancy of a heap.
type Stats struct {
	Used     int             // bytes charged against the heap
	Capacity int             // usable arena bytes
	Frontier int             // frontier offset from HeapStart
	Free     [numBuckets]int // blocks parked per free-list bucket
}

// Stats walks the free lists and reports the heap's occupancy.
func (h *Heap) Stats() Stats {
	s := Stats{
		Used:     int(h.used),
		Capacity: int(h.max),
		Frontier: int(h.frontier - h.start),
	}
	for k, tail := range h.tails {
		for addr := tail; addr != 0; addr = h.hdr(addr).prev {
			s.Free[k]++
		}
	}
	return s
}

const ptrSize = unsafe.Sizeof(uintptr(0))

// ptrAt converts an address inside the arena back to a pointer derived from
// the arena base, keeping pointer provenance intact.
func (h *Heap) ptrAt(addr uintptr) unsafe.Pointer {
	return unsafe.Add(h.base, addr-uintptr(h.base))
}

func (h *Heap) hdr(addr uintptr) *header {
	return (*header)(h.ptrAt(addr))
}
