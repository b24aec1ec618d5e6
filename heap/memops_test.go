package heap

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	h := newTestHeap(t, 1<<16)

	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 100, 4096, 4097} {
		buf := make([]byte, n)
		h.Fill(buf, 0xAB)
		assert.Equal(t, bytes.Repeat([]byte{0xAB}, n), buf, "n=%d", n)
	}
}

func TestCopy(t *testing.T) {
	h := newTestHeap(t, 1<<16)

	for _, n := range []int{0, 1, 15, 16, 17, 100, 4097} {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(i)
		}
		dst := make([]byte, n)
		assert.Equal(t, n, h.Copy(dst, src), "n=%d", n)
		assert.Equal(t, src, dst, "n=%d", n)
	}

	// short destination bounds the copy
	src := []byte{1, 2, 3, 4}
	dst := make([]byte, 2)
	assert.Equal(t, 2, h.Copy(dst, src))
	assert.Equal(t, []byte{1, 2}, dst)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want int
	}{
		{"equal", []byte("abcdef"), []byte("abcdef"), -1},
		{"both_empty", nil, nil, -1},
		{"differ_at_0", []byte("xbc"), []byte("abc"), 0},
		{"differ_mid", []byte("abXdef"), []byte("abcdef"), 2},
		{"differ_last", []byte("abcdeX"), []byte("abcdef"), 5},
		{"prefix", []byte("abc"), []byte("abcdef"), -1}, // shorter range is equal
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestFastFillInjection(t *testing.T) {
	var gotN uintptr
	calls := 0
	fill := func(dst unsafe.Pointer, value byte, n uintptr) {
		calls++
		gotN = n
		fill16(dst, value, n)
	}
	h, err := New(alignedArena(1<<16), WithFastFill(fill))
	require.NoError(t, err)

	// the fast primitive sees only the multiple-of-16 prefix
	buf := make([]byte, 100)
	h.Fill(buf, 0x5A)
	assert.Equal(t, 1, calls)
	assert.Equal(t, uintptr(96), gotN)
	assert.Equal(t, bytes.Repeat([]byte{0x5A}, 100), buf)

	// short fills never reach it
	h.Fill(make([]byte, 15), 0x5A)
	assert.Equal(t, 1, calls)
}

func TestFastCopyInjection(t *testing.T) {
	calls := 0
	cp := func(dst, src unsafe.Pointer, n uintptr) {
		calls++
		assert.Zero(t, n%16)
		copy16(dst, src, n)
	}
	h, err := New(alignedArena(1<<16), WithFastCopy(cp))
	require.NoError(t, err)

	src := bytes.Repeat([]byte{7}, 40)
	dst := make([]byte, 40)
	h.Copy(dst, src)
	assert.Equal(t, 1, calls)
	assert.Equal(t, src, dst)
}
