package flow

import (
	"iter"

	"github.com/mccutchen/flow/internal/rendezvous"
)

// Seq2 adapts r into a Go 1.23 range-over-func sequence, the literal
// realization of §9's "Iterable/for-of integration" design note: iterating
// drives r on the current goroutine and is a blocking operation. A break
// out of the range loop stops r with None.
func Seq2[T any](r Reader[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, ok, err := r.Read()
			if err != nil {
				yield(v, err)
				return
			}
			if !ok {
				return
			}
			if !yield(v, nil) {
				_ = r.Stop(None)
				return
			}
		}
	}
}

// FromSeq2 adapts a Go 1.23 iter.Seq2[T, error] into a Reader[T], driving
// the sequence on its own goroutine and rendezvousing one value at a time
// with the caller's Read via the package's rendezvous handshake. NewReader
// already guarantees the returned Reader's Stop is invoked at most once, so
// the stop closure below does not need its own idempotence guard.
func FromSeq2[T any](seq iter.Seq2[T, error]) Reader[T] {
	h := rendezvous.New[T]()

	go func() {
		seq(func(v T, err error) bool {
			if err != nil {
				h.Offer(rendezvous.Result[T]{Err: err})
				return false
			}
			return h.Offer(rendezvous.Result[T]{Value: v, Ok: true})
		})
		h.Stop()
	}()

	return NewReader(func() (T, bool, error) {
		r := h.Pull()
		if r.Err != nil {
			var zero T
			return zero, false, r.Err
		}
		return r.Value, r.Ok, nil
	}, func(StopReason) error {
		h.Stop()
		return nil
	})
}
