package flow

import (
	"sync"

	"github.com/mccutchen/flow/internal/fanheap"
)

// Dequeue merges readers in order of value arrival, per §4.5.1: every
// not-yet-finished branch is pulled concurrently and whichever produces
// first is returned first. When more than one branch's value becomes
// available in the same scheduling round, a min-heap ordered by branch
// index breaks the tie in favor of the lower branch.
func Dequeue[T any](readers ...Reader[T]) Reader[T] {
	d := &dequeueMerger[T]{
		readers:  readers,
		resultCh: make(chan dqMsg[T]),
		pending:  fanheap.New[dqMsg[T]](0, byBranch[T]),
	}
	d.remaining = len(readers)

	for i, r := range readers {
		i, r := i, r
		go func() {
			for {
				v, ok, err := r.Read()
				d.resultCh <- dqMsg[T]{branch: i, v: v, ok: ok, err: err}
				if err != nil || !ok {
					return
				}
			}
		}()
	}

	return NewReader(d.read, d.stop)
}

type dqMsg[T any] struct {
	branch int
	v      T
	ok     bool
	err    error
}

func byBranch[T any](a, b dqMsg[T]) bool { return a.branch < b.branch }

type dequeueMerger[T any] struct {
	mu        sync.Mutex
	readers   []Reader[T]
	resultCh  chan dqMsg[T]
	pending   *fanheap.Buffer[dqMsg[T]]
	remaining int
	ended     bool
}

func (d *dequeueMerger[T]) read() (T, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	for {
		if d.ended {
			return zero, false, nil
		}

		if d.pending.IsEmpty() {
			d.pending.Write(<-d.resultCh)
		drain:
			for {
				select {
				case m := <-d.resultCh:
					d.pending.Write(m)
				default:
					break drain
				}
			}
		}

		msg := d.pending.Read()

		if msg.err != nil {
			d.ended = true
			return zero, false, msg.err
		}
		if !msg.ok {
			d.remaining--
			if d.remaining <= 0 {
				d.ended = true
				return zero, false, nil
			}
			continue
		}
		return msg.v, true, nil
	}
}

func (d *dequeueMerger[T]) stop(reason StopReason) error {
	d.mu.Lock()
	d.ended = true
	d.mu.Unlock()

	var firstErr error
	for _, r := range d.readers {
		if err := r.Stop(reason); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
