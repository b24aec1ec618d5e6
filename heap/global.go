package heap

import "github.com/embedgo/memkit/arena"

// DefaultArenaSize is the arena size the flat API provisions when no heap
// was installed before the first allocation.
const DefaultArenaSize = 64 << 20

var defaultHeap *Heap

// Init installs the process-wide heap over the given arena, replacing any
// heap installed earlier. Blocks allocated from a previous default heap must
// be freed through a retained *Heap reference.
func Init(a []byte, opts ...Option) error {
	h, err := New(a, opts...)
	if err != nil {
		return err
	}
	defaultHeap = h
	return nil
}

// Default returns the process-wide heap, provisioning one over a fresh
// DefaultArenaSize arena on first use.
func Default() *Heap {
	if defaultHeap == nil {
		buf, _ := arena.New(DefaultArenaSize)
		defaultHeap, _ = New(buf)
	}
	return defaultHeap
}

// Alloc allocates from the process-wide heap. See Heap.Alloc.
func Alloc(size int) []byte { return Default().Alloc(size) }

// Free releases a block to the process-wide heap. See Heap.Free.
func Free(block []byte) { Default().Free(block) }

// AllocAligned allocates an aligned block from the process-wide heap. See
// Heap.AllocAligned.
func AllocAligned(size, alignShift int) []byte {
	return Default().AllocAligned(size, alignShift)
}

// FreeAligned releases an aligned block to the process-wide heap. See
// Heap.FreeAligned.
func FreeAligned(block []byte) { Default().FreeAligned(block) }

// Fill fills dst using the process-wide heap's fast fill primitive.
func Fill(dst []byte, value byte) { Default().Fill(dst, value) }

// Copy copies src into dst using the process-wide heap's fast copy primitive.
func Copy(dst, src []byte) int { return Default().Copy(dst, src) }

// Used reports the bytes charged against the process-wide heap.
func Used() int { return Default().Used() }

// HeapStart reports the first usable address of the process-wide heap.
func HeapStart() uintptr { return Default().HeapStart() }

// HeapEnd reports the address one past the process-wide heap.
func HeapEnd() uintptr { return Default().HeapEnd() }

// HeapSize reports the capacity of the process-wide heap.
func HeapSize() int { return Default().HeapSize() }
