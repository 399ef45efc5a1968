package flow

import (
	"sync"

	"github.com/mccutchen/flow/internal/rendezvous"
)

// Transform is the most general combinator (§4.3): fn runs as a cooperative
// task, concurrently with the downstream puller, reading from r directly
// and writing to innerWriter whenever it has a value ready. The combinator
// buffers at most one value between fn and the downstream puller, via the
// package's rendezvous handshake, starts fn lazily on the composite's first
// Read, emits end when fn returns, and surfaces fn's error (if any) on the
// next Read after that.
func Transform[T, U any](r Reader[T], fn func(inner Reader[T], out Writer[U]) error) Reader[U] {
	t := &transformer[T, U]{
		r:      r,
		fn:     fn,
		h:      rendezvous.New[U](),
		exited: make(chan struct{}),
	}

	return NewHeaderReader(t.read, t.stop, r.Headers())
}

type transformer[T, U any] struct {
	r  Reader[T]
	fn func(Reader[T], Writer[U]) error

	mu      sync.Mutex
	started bool

	h      *rendezvous.Handshake[U]
	exited chan struct{}
}

// errTransformStopped is returned by the inner Writer's Write once the
// composite has been stopped, so fn observes an ordinary write error
// instead of blocking forever.
var errTransformStopped = writeAfterEndError{}

func (t *transformer[T, U]) start() {
	t.started = true
	innerWriter := NewWriter(func(v U, end bool) error {
		if end {
			return nil
		}
		if !t.h.Offer(rendezvous.Result[U]{Value: v, Ok: true}) {
			return errTransformStopped
		}
		return nil
	}, nil)

	go func() {
		defer close(t.exited)
		if err := t.fn(t.r, innerWriter); err != nil {
			t.h.Offer(rendezvous.Result[U]{Err: err})
		}
		t.h.Stop()
	}()
}

func (t *transformer[T, U]) read() (U, bool, error) {
	t.mu.Lock()
	if !t.started {
		t.start()
	}
	t.mu.Unlock()

	r := t.h.Pull()
	if r.Err != nil {
		var zero U
		return zero, false, r.Err
	}
	return r.Value, r.Ok, nil
}

func (t *transformer[T, U]) stop(reason StopReason) error {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()

	t.h.Stop()
	err := t.r.Stop(reason)
	if started {
		<-t.exited
	}
	return err
}
