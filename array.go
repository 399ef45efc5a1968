package flow

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// ArrayReaderOption configures NewArrayReader.
type ArrayReaderOption[T any] func(*arrayReaderConfig)

type arrayReaderConfig struct {
	sync    bool
	limiter *rate.Limiter
}

// WithSync controls whether the array reader yields synchronously (sync =
// true) or inserts a scheduling tick between reads (sync = false, the
// default). Passing false without also calling WithTick still yields
// synchronously, since there is nothing to pace against; combine it with
// WithTick to actually introduce delay.
func WithSync[T any](sync bool) ArrayReaderOption[T] {
	return func(c *arrayReaderConfig) {
		c.sync = sync
	}
}

// WithTick paces reads through a token-bucket limiter of the given rate,
// realizing §4.7's "optional async-tick between reads." Passing a nil
// limiter (the zero value of WithTick(nil)) disables pacing.
func WithTick[T any](limiter *rate.Limiter) ArrayReaderOption[T] {
	return func(c *arrayReaderConfig) {
		c.limiter = limiter
	}
}

// NewArrayReader returns a Reader that yields a copy of items, one per Read,
// in order. The input slice is copied at construction time so later
// mutation by the caller cannot affect an in-flight read.
func NewArrayReader[T any](items []T, opts ...ArrayReaderOption[T]) Reader[T] {
	cfg := arrayReaderConfig{sync: false}
	for _, opt := range opts {
		opt(&cfg)
	}

	buf := make([]T, len(items))
	copy(buf, items)

	var mu sync.Mutex
	i := 0

	return NewReader(func() (T, bool, error) {
		mu.Lock()
		defer mu.Unlock()

		var zero T
		if i >= len(buf) {
			return zero, false, nil
		}

		if !cfg.sync && cfg.limiter != nil {
			if err := cfg.limiter.Wait(context.Background()); err != nil {
				return zero, false, err
			}
		}

		v := buf[i]
		i++
		return v, true, nil
	}, nil)
}

// NewArrayWriter returns an Accumulator that appends every written value to
// an internal slice, exposed via Result.
func NewArrayWriter[T any]() Accumulator[T, []T] {
	w := &arrayWriter[T]{}
	w.Writer = NewWriter(func(v T, end bool) error {
		if !end {
			w.mu.Lock()
			w.values = append(w.values, v)
			w.mu.Unlock()
		}
		return nil
	}, nil)
	return w
}

type arrayWriter[T any] struct {
	Writer[T]
	mu     sync.Mutex
	values []T
}

func (w *arrayWriter[T]) Result() []T {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]T, len(w.values))
	copy(out, w.values)
	return out
}
