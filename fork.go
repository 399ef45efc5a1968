package flow

import (
	"sync"

	"github.com/google/uuid"
)

// ForkResult is the aggregate returned by Fork: the N branch readers
// (already passed through their respective consumer functions) plus the
// fan-in operators that can recombine them.
type ForkResult[T any] struct {
	Readers []Reader[T]
}

// Dequeue merges the branch readers in order of value arrival. See
// Dequeue for semantics.
func (f *ForkResult[T]) Dequeue() Reader[T] {
	return Dequeue(f.Readers...)
}

// RR round-robins across the branch readers. See RR for semantics.
func (f *ForkResult[T]) RR() Reader[T] {
	return RR(f.Readers...)
}

// Join pulls one value from every active branch per cycle and combines
// them with fn. See Join for semantics.
func (f *ForkResult[T]) Join(fn JoinFunc[T]) Reader[T] {
	return Join(fn, f.Readers...)
}

// Fork replicates r into len(consumers) branches, per §4.4.3: it eagerly
// creates one queue per branch, pulls from upstream whenever any active
// branch's queue is empty, and dispatches every pulled value to every
// still-active branch's queue — an N-way Dup. Each consumer function wraps
// its private raw branch reader (e.g. with Map/Filter) before it is
// returned in Readers.
//
// Stop semantics per branch, generalized from Dup to N branches:
//   - Stop(None): that branch ends; others unaffected, unless every branch
//     has stopped, in which case upstream is stopped with None.
//   - Stop(Silent): every other branch is closed silently (after draining
//     its own queue) and upstream is stopped with Silent.
//   - Stop(Err(e)): every other branch surfaces e ahead of anything still
//     queued for it — a peer-originated stop takes priority over buffered
//     values, per §5 — and upstream is stopped with Err(e).
func Fork[T any](r Reader[T], consumers ...func(Reader[T]) Reader[T]) *ForkResult[T] {
	n := len(consumers)
	s := &forkShared[T]{
		upstream:          r,
		n:                 n,
		queues:            make([][]T, n),
		active:            make([]bool, n),
		branchErr:         make([]error, n),
		branchErrPriority: make([]bool, n),
		branchSilent:      make([]bool, n),
	}
	s.cond = sync.NewCond(&s.mu)
	for i := range s.active {
		s.active[i] = true
	}

	readers := make([]Reader[T], n)
	for i := range consumers {
		i := i

		h := r.Headers().Clone()
		if h == nil {
			h = Header{}
		}
		h["X-Flow-Branch-Id"] = uuid.NewString()

		raw := NewHeaderReader(func() (T, bool, error) {
			return s.read(i)
		}, func(reason StopReason) error {
			return s.stop(i, reason)
		}, h)
		readers[i] = consumers[i](raw)
	}

	return &ForkResult[T]{Readers: readers}
}

type forkShared[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond

	upstream Reader[T]
	n        int

	queues            [][]T
	active            []bool
	branchErr         []error
	branchErrPriority []bool
	branchSilent      []bool

	pulling      bool
	upstreamDone bool
}

func (s *forkShared[T]) read(i int) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if !s.active[i] {
		return zero, false, nil
	}
	// A peer Stop(Err(e)) jumps ahead of anything still buffered.
	if s.branchErr[i] != nil && s.branchErrPriority[i] {
		err := s.branchErr[i]
		s.branchErr[i] = nil
		s.branchErrPriority[i] = false
		return zero, false, err
	}

	s.fillLocked()

	if n := len(s.queues[i]); n > 0 {
		v := s.queues[i][0]
		s.queues[i] = s.queues[i][1:]
		s.fillLocked()
		return v, true, nil
	}
	if s.branchErr[i] != nil {
		err := s.branchErr[i]
		s.branchErr[i] = nil
		return zero, false, err
	}
	if s.branchSilent[i] {
		s.branchSilent[i] = false
		return zero, false, nil
	}
	return zero, false, nil
}

// fillLocked pulls from upstream until no active branch has an empty
// queue, or upstream is exhausted. Callers must hold s.mu.
func (s *forkShared[T]) fillLocked() {
	for s.needFillLocked() {
		s.pullLocked()
	}
}

func (s *forkShared[T]) needFillLocked() bool {
	if s.upstreamDone {
		return false
	}
	for b := 0; b < s.n; b++ {
		if s.active[b] && len(s.queues[b]) == 0 {
			return true
		}
	}
	return false
}

func (s *forkShared[T]) pullLocked() {
	if s.pulling {
		s.cond.Wait()
		return
	}
	s.pulling = true
	s.mu.Unlock()

	v, ok, err := s.upstream.Read()

	s.mu.Lock()
	s.pulling = false

	switch {
	case err != nil:
		s.upstreamDone = true
		for b := 0; b < s.n; b++ {
			if s.active[b] {
				s.branchErr[b] = err
			}
		}
	case !ok:
		s.upstreamDone = true
	default:
		for b := 0; b < s.n; b++ {
			if s.active[b] {
				s.queues[b] = append(s.queues[b], v)
			}
		}
	}
	s.cond.Broadcast()
}

func (s *forkShared[T]) anyActiveExcept(i int) bool {
	for b := 0; b < s.n; b++ {
		if b != i && s.active[b] {
			return true
		}
	}
	return false
}

func (s *forkShared[T]) stop(i int, reason StopReason) error {
	s.mu.Lock()

	if !s.active[i] {
		s.mu.Unlock()
		return nil
	}
	s.active[i] = false

	switch {
	case reason.IsSilent():
		for b := 0; b < s.n; b++ {
			if b != i && s.active[b] {
				s.branchSilent[b] = true
			}
		}
		s.cond.Broadcast()
		s.mu.Unlock()
		return s.upstream.Stop(reason)
	default:
		if err, isErr := reason.IsErr(); isErr {
			for b := 0; b < s.n; b++ {
				if b != i && s.active[b] {
					s.branchErr[b] = err
					s.branchErrPriority[b] = true
				}
			}
			s.cond.Broadcast()
			s.mu.Unlock()
			return s.upstream.Stop(reason)
		}
	}

	stopUpstream := !s.anyActiveExcept(i)
	s.cond.Broadcast()
	s.mu.Unlock()

	if stopUpstream {
		return s.upstream.Stop(None)
	}
	return nil
}
