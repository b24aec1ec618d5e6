package heapbuf

import (
	"errors"
	"sync"

	"github.com/embedgo/memkit/heap"
)

// ErrReadPastEnd reports a read beyond the buffered data.
var ErrReadPastEnd = errors.New("heapbuf: read past end of buffer")

var readerPool = sync.Pool{
	New: func() interface{} {
		return &Reader{
			scratch: make([][]byte, 0, 16),
		}
	},
}

// Reader consumes a chain of byte slices, typically the output of
// Writer.Bytes. A read that crosses a chunk boundary is gathered into a
// scratch block carved from the reader's heap, so reading stresses the same
// allocator the chunks came from.
type Reader struct {
	h       *heap.Heap
	off     int // read offset into buf
	buf     []byte
	bufs    [][]byte
	scratch [][]byte // heap blocks backing boundary-crossing reads
}

// NewReader returns a reader over bufs whose scratch memory comes from h.
// bufs must contain at least one slice.
func NewReader(h *heap.Heap, bufs [][]byte) *Reader {
	r := readerPool.Get().(*Reader)
	r.h = h
	r.buf = bufs[0]
	r.bufs = bufs[1:]
	return r
}

// rest returns what is left of the current chunk.
func (r *Reader) rest() []byte {
	return r.buf[r.off:]
}

// advance moves to the next chunk. Panics with ErrReadPastEnd when the
// chain is exhausted.
func (r *Reader) advance() {
	if len(r.bufs) == 0 {
		panic(ErrReadPastEnd)
	}
	r.buf = r.bufs[0]
	r.bufs = r.bufs[1:]
	r.off = 0
}

// ReadN returns the next n bytes. The result aliases the current chunk when
// the read stays inside it; a boundary-crossing read is gathered into a
// scratch block from the heap and returns nil when the heap cannot supply
// one. Either way the result stays valid until Free. Panics with
// ErrReadPastEnd when the data runs out.
func (r *Reader) ReadN(n int) []byte {
	if tail := r.rest(); len(tail) >= n {
		r.off += n
		return tail[:n]
	}
	buf := r.h.Alloc(n)
	if buf == nil {
		return nil
	}
	r.scratch = append(r.scratch, buf)
	r.CopyBytes(buf)
	return buf
}

// CopyBytes fills buf with the next len(buf) bytes, crossing chunk
// boundaries as needed. Panics with ErrReadPastEnd when the data runs out.
func (r *Reader) CopyBytes(buf []byte) {
	n := copy(buf, r.rest())
	r.off += n
	for n < len(buf) {
		r.advance()
		m := copy(buf[n:], r.buf)
		r.off = m
		n += m
	}
}

// Skip discards the next n bytes. Panics with ErrReadPastEnd when the data
// runs out.
func (r *Reader) Skip(n int) {
	for n > len(r.rest()) {
		n -= len(r.rest())
		r.advance()
	}
	r.off += n
}

// Free returns the scratch blocks to the heap and recycles the reader.
// Slices returned by ReadN must no longer be used.
func (r *Reader) Free() {
	r.off = 0
	r.buf = nil
	r.bufs = nil
	for i := range r.scratch {
		r.h.Free(r.scratch[i])
		r.scratch[i] = nil
	}
	r.scratch = r.scratch[:0]
	r.h = nil
	readerPool.Put(r)
}
