package heap

import "unsafe"

// FillFunc fills n bytes at dst with value. n is always a positive multiple
// of 16, so an implementation may use 16-byte stores throughout.
type FillFunc func(dst unsafe.Pointer, value byte, n uintptr)

// CopyFunc copies n bytes from src to dst. n is always a positive multiple
// of 16. Ranges never overlap.
type CopyFunc func(dst, src unsafe.Pointer, n uintptr)

// Option configures a Heap at construction time.
type Option func(*Heap)

// WithFastFill installs the optimized fill primitive used for the
// multiple-of-16 prefix of Fill, e.g. a NEON or DMA backed routine.
func WithFastFill(f FillFunc) Option { return func(h *Heap) { h.fastFill = f } }

// WithFastCopy installs the optimized copy primitive used for the
// multiple-of-16 prefix of Copy.
func WithFastCopy(f CopyFunc) Option { return func(h *Heap) { h.fastCopy = f } }

// Fill sets every byte of dst to value. The largest multiple-of-16 prefix
// goes through the fast fill primitive; the tail is written bytewise.
func (h *Heap) Fill(dst []byte, value byte) {
	n := len(dst)
	if n == 0 {
		return
	}
	fast := n &^ 0xF
	if fast > 0 {
		h.fastFill(unsafe.Pointer(unsafe.SliceData(dst)), value, uintptr(fast))
	}
	for i := fast; i < n; i++ {
		dst[i] = value
	}
}

// Copy copies min(len(dst), len(src)) bytes from src into dst and returns
// the number of bytes copied. The largest multiple-of-16 prefix goes through
// the fast copy primitive; the tail is copied bytewise.
func (h *Heap) Copy(dst, src []byte) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	if n == 0 {
		return 0
	}
	fast := n &^ 0xF
	if fast > 0 {
		h.fastCopy(unsafe.Pointer(unsafe.SliceData(dst)), unsafe.Pointer(unsafe.SliceData(src)), uintptr(fast))
	}
	for i := fast; i < n; i++ {
		dst[i] = src[i]
	}
	return n
}

// Compare returns the offset of the first byte at which a and b differ, or
// -1 when the compared range is identical. The compared range is the shorter
// of the two slices.
func Compare(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return -1
}

// fill16 is the portable fast fill: two word stores per 16-byte unit.
func fill16(dst unsafe.Pointer, value byte, n uintptr) {
	pattern := uint64(value) * 0x0101010101010101
	for off := uintptr(0); off < n; off += 16 {
		*(*uint64)(unsafe.Add(dst, off)) = pattern
		*(*uint64)(unsafe.Add(dst, off+8)) = pattern
	}
}

// copy16 is the portable fast copy.
func copy16(dst, src unsafe.Pointer, n uintptr) {
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}
