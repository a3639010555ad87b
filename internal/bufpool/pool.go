// Package bufpool implements a process-wide, size-classed byte buffer
// pool and the per-operation Scope that rents from it. A Scope tracks
// every buffer it hands out and returns them all to the pool when closed,
// so a deserialization call can slice freely into rented memory without
// individually bookkeeping each buffer's lifetime.
package bufpool

import "sync"

// sizeClasses are the capacities buffers are rounded up to. Envelope
// payloads are expected to fit a cloud queue's message-size limit
// (typically <= 256 KiB), so the largest class comfortably covers a
// worst-case UTF-8 re-encode.
var sizeClasses = []int{256, 512, 1024, 2 << 10, 4 << 10, 8 << 10, 16 << 10, 32 << 10, 64 << 10, 128 << 10, 256 << 10, 512 << 10}

// Pool is a process-wide, thread-safe byte-buffer pool. The zero value is
// not usable; construct one with New.
type Pool struct {
	classes []*sync.Pool
	metrics *metrics
}

// New returns a ready-to-use Pool. m may be nil, in which case no metrics
// are recorded.
func New(m *metrics) *Pool {
	p := &Pool{
		classes: make([]*sync.Pool, len(sizeClasses)),
		metrics: m,
	}
	for i, size := range sizeClasses {
		size := size
		p.classes[i] = &sync.Pool{
			New: func() any {
				buf := make([]byte, 0, size)
				return &buf
			},
		}
	}
	return p
}

// classFor returns the index of the smallest size class that can hold n
// bytes, or -1 if n exceeds every class (the caller falls back to a
// one-off allocation, which is not returned to the pool).
func classFor(n int) int {
	for i, size := range sizeClasses {
		if size >= n {
			return i
		}
	}
	return -1
}

func (p *Pool) get(size int) []byte {
	idx := classFor(size)
	if idx < 0 {
		if p.metrics != nil {
			p.metrics.observeAllocate()
		}
		return make([]byte, 0, size)
	}

	buf := p.classes[idx].Get().(*[]byte)
	if p.metrics != nil {
		p.metrics.observeRent()
	}
	return (*buf)[:0]
}

func (p *Pool) put(buf []byte, clean bool) {
	idx := classFor(cap(buf))
	if idx < 0 || cap(buf) != sizeClasses[idx] {
		// Not one of our size classes (a one-off overflow allocation);
		// let the garbage collector reclaim it.
		return
	}

	if clean {
		buf = buf[:cap(buf)]
		for i := range buf {
			buf[i] = 0
		}
	}
	buf = buf[:0]
	p.classes[idx].Put(&buf)
	if p.metrics != nil {
		p.metrics.observeReturn()
	}
}

// Scope is a disposable arena that rents buffers for the duration of one
// serialize or deserialize call. Every slice a helper hands out through a
// Scope remains valid until Close; callers must not retain slices past
// that point.
type Scope struct {
	pool   *Pool
	clean  bool
	rented [][]byte
}

// NewScope opens a scope against pool. clean mirrors the
// clean-rented-buffers configuration flag: when true, every buffer is
// zeroed before it is returned to the pool.
func (p *Pool) NewScope(clean bool) *Scope {
	return &Scope{pool: p, clean: clean}
}

// Rent returns an empty buffer with capacity at least size.
func (s *Scope) Rent(size int) []byte {
	buf := s.pool.get(size)
	s.rented = append(s.rented, buf)
	return buf
}

// Grow returns a buffer with capacity at least min holding buf's existing
// contents, renting a new backing array through the scope when buf's
// current capacity falls short. The buffer returned by a prior Rent/Grow
// call remains tracked for return even after being superseded here.
func (s *Scope) Grow(buf []byte, min int) []byte {
	if cap(buf) >= min {
		return buf
	}
	next := s.Rent(min)
	next = append(next[:0], buf...)
	return next
}

// Close returns every buffer rented through this scope back to the pool.
// It is safe to call once per scope; a scope must not be reused after
// Close.
func (s *Scope) Close() {
	for _, buf := range s.rented {
		s.pool.put(buf, s.clean)
	}
	s.rented = nil
}
