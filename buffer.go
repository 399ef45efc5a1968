package flow

import (
	"sync"

	"github.com/mccutchen/flow/internal/ring"
)

// BufferOption configures Buffer.
type BufferOption func(*bufferConfig)

type bufferConfig struct {
	recorder Recorder
	name     string
}

// WithBufferRecorder attaches a Recorder to report buffer occupancy.
func WithBufferRecorder(r Recorder, name string) BufferOption {
	return func(c *bufferConfig) {
		c.recorder = r
		c.name = name
	}
}

// Buffer returns a Reader that eagerly pulls up to max values ahead of
// consumer demand, per §4.3: a background goroutine keeps a bounded FIFO
// full while the consumer drains it. Values preserve order; an upstream
// error is delivered only after every value buffered ahead of it.
func Buffer[T any](r Reader[T], max int, opts ...BufferOption) Reader[T] {
	cfg := bufferConfig{recorder: noopRecorder{}, name: "buffer"}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &bufferedReader[T]{r: r, max: max, cfg: cfg}
	b.notFull = sync.NewCond(&b.mu)
	b.notEmpty = sync.NewCond(&b.mu)

	return NewHeaderReader(b.read, b.stop, r.Headers())
}

type bufferedReader[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	r       Reader[T]
	max     int
	buf     ring.Buffer[T]
	started bool
	ended   bool
	errVal  error
	stopped bool
	cfg     bufferConfig
}

func (b *bufferedReader[T]) produce() {
	for {
		b.mu.Lock()
		for !b.stopped && b.buf.Len() >= b.max {
			b.notFull.Wait()
		}
		if b.stopped {
			b.mu.Unlock()
			return
		}
		b.mu.Unlock()

		v, ok, err := b.r.Read()

		b.mu.Lock()
		if b.stopped {
			b.mu.Unlock()
			return
		}
		if err != nil {
			b.ended = true
			b.errVal = err
			b.notEmpty.Broadcast()
			b.mu.Unlock()
			return
		}
		if !ok {
			b.ended = true
			b.notEmpty.Broadcast()
			b.mu.Unlock()
			return
		}
		b.buf.Write(v)
		b.cfg.recorder.ObserveBufferLen(b.cfg.name, b.buf.Len())
		b.notEmpty.Signal()
		b.mu.Unlock()
	}
}

func (b *bufferedReader[T]) read() (T, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var zero T
	if !b.started {
		b.started = true
		go b.produce()
	}

	for b.buf.Len() == 0 && !b.ended {
		b.notEmpty.Wait()
	}

	if b.buf.Len() > 0 {
		v, _ := b.buf.Read()
		b.cfg.recorder.ObserveBufferLen(b.cfg.name, b.buf.Len())
		b.notFull.Signal()
		return v, true, nil
	}

	if b.errVal != nil {
		return zero, false, b.errVal
	}
	return zero, false, nil
}

func (b *bufferedReader[T]) stop(reason StopReason) error {
	b.mu.Lock()
	b.stopped = true
	b.notFull.Broadcast()
	b.notEmpty.Broadcast()
	b.mu.Unlock()

	return b.r.Stop(reason)
}
