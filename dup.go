package flow

import (
	"sync"

	"github.com/google/uuid"
)

// Dup returns exactly two readers sharing a single upstream reader, per
// §4.4.2. A shared puller pulls from upstream whenever either branch queue
// is empty; each pulled value goes to both branches' unbounded queues. Every
// Read on either branch also opportunistically tops its own queue back up
// after consuming from it, so the sibling branch can run one value ahead of
// what its own reads alone would have triggered.
//
// Stop(None) on one branch only deactivates that branch; the other
// continues, and upstream is stopped only once both are inactive.
// Stop(Silent) closes the peer silently once its queue drains (values
// already queued for the peer at the moment of the silent stop are still
// delivered first) and stops upstream immediately. Stop(Err(e)) surfaces e
// on the peer ahead of anything still queued for it — a peer-originated stop
// takes priority over buffered values, per §5 — and stops upstream
// immediately, matching scenario 3/4 of §8.
func Dup[T any](r Reader[T]) (Reader[T], Reader[T]) {
	s := &dupShared[T]{upstream: r}
	s.cond = sync.NewCond(&s.mu)
	s.active[0] = true
	s.active[1] = true

	mk := func(i int) Reader[T] {
		h := r.Headers().Clone()
		if h == nil {
			h = Header{}
		}
		h["X-Flow-Branch-Id"] = uuid.NewString()

		return NewHeaderReader(func() (T, bool, error) {
			return s.read(i)
		}, func(reason StopReason) error {
			return s.stop(i, reason)
		}, h)
	}
	return mk(0), mk(1)
}

type dupShared[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond

	upstream Reader[T]

	queues            [2][]T
	active            [2]bool
	branchErr         [2]error
	branchErrPriority [2]bool
	branchSilent      [2]bool

	pulling      bool
	upstreamDone bool
}

func (s *dupShared[T]) read(i int) (T, bool, error) {
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

// fillLocked pulls from upstream until neither active branch has an empty
// queue, or upstream is exhausted. Callers must hold s.mu.
func (s *dupShared[T]) fillLocked() {
	for s.needFillLocked() {
		s.pullLocked()
	}
}

func (s *dupShared[T]) needFillLocked() bool {
	if s.upstreamDone {
		return false
	}
	for b := 0; b < 2; b++ {
		if s.active[b] && len(s.queues[b]) == 0 {
			return true
		}
	}
	return false
}

// pullLocked performs one upstream pull, releasing the lock for the
// duration of the (possibly blocking) upstream Read. Callers must hold
// s.mu; pullLocked re-acquires it before returning.
func (s *dupShared[T]) pullLocked() {
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
		for b := 0; b < 2; b++ {
			if s.active[b] {
				s.branchErr[b] = err
			}
		}
	case !ok:
		s.upstreamDone = true
	default:
		for b := 0; b < 2; b++ {
			if s.active[b] {
				s.queues[b] = append(s.queues[b], v)
			}
		}
	}
	s.cond.Broadcast()
}

func (s *dupShared[T]) stop(i int, reason StopReason) error {
	s.mu.Lock()

	if !s.active[i] {
		s.mu.Unlock()
		return nil
	}
	s.active[i] = false
	other := 1 - i

	switch {
	case reason.IsSilent():
		if s.active[other] {
			s.branchSilent[other] = true
		}
		s.cond.Broadcast()
		s.mu.Unlock()
		return s.upstream.Stop(reason)
	default:
		if err, isErr := reason.IsErr(); isErr {
			if s.active[other] {
				s.branchErr[other] = err
				s.branchErrPriority[other] = true
			}
			s.cond.Broadcast()
			s.mu.Unlock()
			return s.upstream.Stop(reason)
		}
	}

	// None: advisory, only stop upstream once both branches are inactive.
	stopUpstream := !s.active[other]
	s.cond.Broadcast()
	s.mu.Unlock()

	if stopUpstream {
		return s.upstream.Stop(None)
	}
	return nil
}
