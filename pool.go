package ssg

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps workers; page rendering is CPU-bound and short.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for file I/O and the main goroutine.
	cpuDivisor = 2
)

// ConverterPool bounds the number of pages converted concurrently.
// Converters are created lazily on first acquire and share the same options.
type ConverterPool struct {
	size     int
	opts     []Option
	sem      chan *Converter
	mu       sync.Mutex
	created  int
	closed   bool
	initErr  error
	failed   chan struct{} // closed when creation fails with no converter alive
	failOnce sync.Once
}

// NewConverterPool creates a pool with capacity for n converters.
// Converters are created when acquired, not at pool creation.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	return &ConverterPool{
		size:   n,
		opts:   opts,
		sem:    make(chan *Converter, n),
		failed: make(chan struct{}),
	}
}

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use. Returns nil if converter creation
// failed; InitError reports why.
func (p *ConverterPool) Acquire() *Converter {
	select {
	case conv := <-p.sem:
		return conv
	default:
	}

	p.mu.Lock()
	if p.initErr != nil {
		p.mu.Unlock()
		return nil
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		conv, err := NewConverter(p.opts...)

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.created--
			if p.initErr == nil {
				p.initErr = err
			}
			if p.created == 0 {
				p.failOnce.Do(func() { close(p.failed) })
			}
			return nil
		}
		return conv
	}
	p.mu.Unlock()

	select {
	case conv := <-p.sem:
		return conv
	case <-p.failed:
		return nil
	}
}

// Release returns a converter to the pool.
// The lock is released before sending to avoid deadlock when the channel is full.
func (p *ConverterPool) Release(conv *Converter) {
	if conv == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- conv
}

// InitError returns the error from the first failed converter creation.
func (p *ConverterPool) InitError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initErr
}

// Close marks the pool closed; later releases are dropped.
func (p *ConverterPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware once automaxprocs has run.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
