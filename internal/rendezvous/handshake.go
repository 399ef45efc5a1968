// Package rendezvous implements the one-slot handshake that flow's Transform
// and FromSeq2 build on: a background
// goroutine producing values one at a time, and a foreground caller pulling
// them one at a time, with never more than one value in flight between
// them. It plays the same role for flow's cooperative single-reader model
// that an unbuffered channel plays for a classic Go generator, but adds a
// stop side-channel so a caller can interrupt a producer that is blocked
// mid-computation instead of only after it offers its next value.
package rendezvous

import "sync"

// Result is what a producer hands back to a puller: a value, or the end of
// the stream, or an error.
type Result[T any] struct {
	Value T
	Ok    bool
	Err   error
}

// Handshake is a single-slot rendezvous between exactly one producer
// goroutine and any number of callers of Pull, serialized by the caller
// (flow's at-most-one-live-read invariant means Pull is never called
// concurrently with itself, but Stop may race with a live Pull).
type Handshake[T any] struct {
	request chan struct{}
	respond chan Result[T]

	stopOnce sync.Once
	stopReq  chan struct{}
	stopped  chan struct{}
}

// New creates a Handshake ready for a single producer goroutine to serve.
func New[T any]() *Handshake[T] {
	return &Handshake[T]{
		request: make(chan struct{}),
		respond: make(chan Result[T]),
		stopReq: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Produce runs the producer side of the loop: next is called once per
// requested value; Produce returns as soon as Stop is called or next
// reports the end of the stream (Ok=false). The caller is responsible for
// launching Produce in its own goroutine.
func (h *Handshake[T]) Produce(next func() Result[T]) {
	for {
		select {
		case <-h.request:
		case <-h.stopReq:
			return
		}

		r := next()

		select {
		case h.respond <- r:
		case <-h.stopReq:
			return
		}

		if !r.Ok {
			return
		}
	}
}

// Pull asks the producer for the next value and blocks until it responds
// or Stop is called concurrently, in which case Pull returns a zero Result
// with Ok=false.
func (h *Handshake[T]) Pull() Result[T] {
	select {
	case h.request <- struct{}{}:
	case <-h.stopped:
		var zero Result[T]
		return zero
	}

	select {
	case r := <-h.respond:
		return r
	case <-h.stopped:
		var zero Result[T]
		return zero
	}
}

// Offer performs a single round of the producer side directly, for a
// producer that decides for itself when it has a value ready rather than
// being driven by a next() callback (e.g. one cooperatively running
// alongside its puller, like Transform's fn). It waits for a pending Pull
// (or Stop), hands it r, and reports whether the exchange completed; false
// means Stop was called instead and r was not delivered.
func (h *Handshake[T]) Offer(r Result[T]) bool {
	select {
	case <-h.request:
	case <-h.stopReq:
		return false
	}

	select {
	case h.respond <- r:
		return true
	case <-h.stopReq:
		return false
	}
}

// Stop interrupts the producer. It is idempotent and safe to call
// concurrently with a live Pull.
func (h *Handshake[T]) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopReq)
		close(h.stopped)
	})
}
