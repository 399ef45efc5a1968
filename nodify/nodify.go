// Package nodify implements the push-adapter contract of §6: converting a
// pull Reader into a push-source with data/end/error callbacks and
// pause/resume, and a pull Writer into a push-sink whose backpressure is
// reported as "please pause" for as long as the previous write has not yet
// resolved. Neither direction is part of the core algebra — the core only
// needs to make them implementable.
package nodify

import (
	"sync"

	"github.com/mccutchen/flow"
)

// PushSource drives r on its own goroutine, invoking OnData for every
// value, OnEnd once the stream ends, or OnError if it fails.
type PushSource[T any] struct {
	r Reader[T]

	mu      sync.Mutex
	cond    *sync.Cond
	paused  bool
	stopped bool

	onData  func(T)
	onEnd   func()
	onError func(error)
}

// Reader is the subset of flow.Reader[T] nodify depends on.
type Reader[T any] interface {
	Read() (T, bool, error)
	Stop(flow.StopReason) error
}

// NewPushSource wraps r. Callbacks registered via OnData/OnEnd/OnError
// must be set before Start.
func NewPushSource[T any](r Reader[T]) *PushSource[T] {
	s := &PushSource[T]{r: r}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *PushSource[T]) OnData(fn func(T)) *PushSource[T]    { s.onData = fn; return s }
func (s *PushSource[T]) OnEnd(fn func()) *PushSource[T]      { s.onEnd = fn; return s }
func (s *PushSource[T]) OnError(fn func(error)) *PushSource[T] {
	s.onError = fn
	return s
}

// Start launches the pull loop on its own goroutine.
func (s *PushSource[T]) Start() {
	go s.loop()
}

func (s *PushSource[T]) loop() {
	for {
		s.mu.Lock()
		for s.paused && !s.stopped {
			s.cond.Wait()
		}
		stopped := s.stopped
		s.mu.Unlock()
		if stopped {
			return
		}

		v, ok, err := s.r.Read()
		if err != nil {
			if s.onError != nil {
				s.onError(err)
			}
			return
		}
		if !ok {
			if s.onEnd != nil {
				s.onEnd()
			}
			return
		}
		if s.onData != nil {
			s.onData(v)
		}
	}
}

// Pause suspends the pull loop after its current Read returns.
func (s *PushSource[T]) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume wakes a paused pull loop.
func (s *PushSource[T]) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Stop stops the underlying reader and halts the pull loop.
func (s *PushSource[T]) Stop(reason flow.StopReason) error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.cond.Broadcast()
	return s.r.Stop(reason)
}

// Writer is the subset of flow.Writer[T] nodify depends on.
type Writer[T any] interface {
	Write(T) error
	Close() error
	Stop(flow.StopReason) error
}

// PushSink adapts w to push-style write(chunk, cb)/end(cb) calls.
// Backpressure is reported by Write's return value: true iff the prior
// write has not yet resolved, per §6.
type PushSink[T any] struct {
	w       Writer[T]
	mu      sync.Mutex
	pending bool
}

// NewPushSink wraps w.
func NewPushSink[T any](w Writer[T]) *PushSink[T] {
	return &PushSink[T]{w: w}
}

// Write dispatches chunk to w asynchronously, invoking cb with the result
// once it resolves. It returns true if the caller should pause (the
// previous write has not resolved yet).
func (s *PushSink[T]) Write(chunk T, cb func(error)) (pause bool) {
	s.mu.Lock()
	pause = s.pending
	s.pending = true
	s.mu.Unlock()

	go func() {
		err := s.w.Write(chunk)
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
		if cb != nil {
			cb(err)
		}
	}()
	return pause
}

// End closes w asynchronously, invoking cb with the result.
func (s *PushSink[T]) End(cb func(error)) {
	go func() {
		err := s.w.Close()
		if cb != nil {
			cb(err)
		}
	}()
}
