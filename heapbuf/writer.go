package heapbuf

import (
	"sync"

	"github.com/embedgo/memkit/heap"
)

// chunkSize is the smallest chunk carved from the heap when a writer grows.
const chunkSize = 1 << 13

var writerPool = sync.Pool{
	New: func() interface{} {
		return &Writer{
			bufs: make([][]byte, 0, 16),
			pool: make([][]byte, 0, 16),
		}
	},
}

// Writer accumulates writes in chunks carved from a heap. Finished data is
// handed out as a chain of byte slices by Bytes; Free returns every chunk to
// the heap.
type Writer struct {
	h    *heap.Heap
	off  int // write offset into buf
	buf  []byte
	bufs [][]byte
	pool [][]byte // chunks owned by this writer, freed on Free
}

// NewWriter returns a writer whose chunks come from h.
func NewWriter(h *heap.Heap) *Writer {
	w := writerPool.Get().(*Writer)
	w.h = h
	return w
}

// MallocN reserves n bytes at the current end of the buffer and returns a
// slice covering at least those n bytes. It returns nil when the heap cannot
// supply another chunk; the buffer then still holds everything written so far.
func (w *Writer) MallocN(n int) (buf []byte) {
	buf = w.buf[w.off:]
	if len(buf) < n {
		buf = w.growSlow(n)
		if buf == nil {
			return nil
		}
	}
	w.off += n
	return buf
}

func (w *Writer) growSlow(n int) []byte {
	if w.off > 0 {
		w.buf = w.buf[:w.off]
		w.bufs = append(w.bufs, w.buf)
		w.off = 0
	}
	if n < chunkSize {
		n = chunkSize
	}
	buf := w.h.Alloc(n)
	if buf == nil {
		w.buf = nil
		return nil
	}
	buf = buf[:cap(buf)]
	w.pool = append(w.pool, buf)
	w.buf = buf
	return buf
}

// Write appends p to the buffer through the heap's fast copy primitive. It
// reports whether the write fit, i.e. whether the heap could grow the buffer.
func (w *Writer) Write(p []byte) bool {
	buf := w.MallocN(len(p))
	if buf == nil {
		return false
	}
	w.h.Copy(buf[:len(p)], p)
	return true
}

// WriteDirect links buf into the output chain without copying it. The caller
// keeps ownership of buf; Free will not release it.
func (w *Writer) WriteDirect(buf []byte) {
	if w.off > 0 {
		w.bufs = append(w.bufs, w.buf[:w.off])
		w.buf = w.buf[w.off:]
		w.off = 0
	}
	w.bufs = append(w.bufs, buf)
}

// Bytes returns the written data as a chain of slices. The chain stays valid
// until Free.
func (w *Writer) Bytes() [][]byte {
	if w.off > 0 {
		w.bufs = append(w.bufs, w.buf[:w.off])
		w.buf = w.buf[w.off:]
		w.off = 0
	}
	return w.bufs
}

// Free returns every chunk this writer carved to its heap and recycles the
// writer. The slices returned by Bytes must no longer be used.
func (w *Writer) Free() {
	w.off = 0
	w.buf = nil
	for i := range w.bufs {
		w.bufs[i] = nil
	}
	w.bufs = w.bufs[:0]
	for i := range w.pool {
		w.h.Free(w.pool[i])
		w.pool[i] = nil
	}
	w.pool = w.pool[:0]
	w.h = nil
	writerPool.Put(w)
}
