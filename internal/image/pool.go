// Package image provides pixel buffer pooling for the retouch core.
package image

import "sync"

// Pool is a thread-safe pool of byte buffers grouped by length. History
// snapshots and readback buffers within one session all share a single
// length (width*height*4), so evicted snapshots return their backing memory
// here and the next commit reuses it instead of allocating.
//
// All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]uint8
	maxSize int // max buffers retained per length
}

// NewPool creates a buffer pool retaining at most maxPerBucket buffers of
// each length. A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]uint8),
		maxSize: maxPerBucket,
	}
}

// Get returns a buffer of exactly size bytes, reusing a pooled one when
// available. Reused buffers are zeroed before return.
func (p *Pool) Get(size int) []uint8 {
	p.mu.Lock()
	bucket := p.buckets[size]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		p.buckets[size] = bucket[:n-1]
		p.mu.Unlock()

		clear(buf)
		return buf
	}
	p.mu.Unlock()

	return make([]uint8, size)
}

// Put returns a buffer to the pool for reuse. Nil buffers are ignored;
// buffers beyond the bucket capacity are discarded for the GC to collect.
func (p *Pool) Put(buf []uint8) {
	if buf == nil {
		return
	}

	size := len(buf)

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[size]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[size] = append(bucket, buf)
}

// Len reports how many buffers of the given size are currently pooled.
func (p *Pool) Len(size int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[size])
}
