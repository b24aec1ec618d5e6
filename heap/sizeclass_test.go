package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		alloc  uintptr
		bucket int
		psize  uintptr
	}{
		{32, 0, 0x40},
		{64, 0, 0x40},
		{65, 1, 0x100},
		{0x100, 1, 0x100},
		{0x101, 2, 0x400},
		{0x400, 2, 0x400},
		{0x1000, 3, 0x1000},
		{0x4000, 4, 0x4000},
		{0x10000, 5, 0x10000},
		{0x40000, 6, 0x40000},
		{0x100000, 7, 0x100000},
		{0x400000, 8, 0x400000},
		{0x400001, 9, 0x800000},
		{0x800000, 9, 0x800000},
		{0x1000000, 10, 0x1000000},
		{0x4000000, 11, 0x4000000},
		{0x10000000, 12, 0x10000000},
		// past the last class: overflow bucket keeps the raw footprint
		{0x10000001, 13, 0x10000001},
		{0x20000000, 13, 0x20000000},
	}
	for _, tt := range tests {
		k, psize := bucketFor(tt.alloc)
		assert.Equal(t, tt.bucket, k, "alloc=%#x", tt.alloc)
		assert.Equal(t, tt.psize, psize, "alloc=%#x", tt.alloc)
	}
}

func TestClassTable(t *testing.T) {
	// the table is part of the observable footprint contract
	want := []uintptr{
		0x40, 0x100, 0x400, 0x1000, 0x4000, 0x10000, 0x40000,
		0x100000, 0x400000, 0x800000, 0x1000000, 0x4000000, 0x10000000,
	}
	assert.Equal(t, want, classSizes[:])
	for i := 1; i < len(classSizes); i++ {
		assert.Greater(t, classSizes[i], classSizes[i-1])
	}
	for _, c := range classSizes {
		assert.Zero(t, c%minAlign)
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		n, align, want uintptr
	}{
		{0, 32, 0},
		{1, 32, 32},
		{31, 32, 32},
		{32, 32, 32},
		{33, 32, 64},
		{100, 16, 112},
		{4096, 4096, 4096},
		{4097, 4096, 8192},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, alignUp(tt.n, tt.align), "n=%d align=%d", tt.n, tt.align)
	}
}
