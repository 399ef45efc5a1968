package flow

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ParallelOption configures Parallel.
type ParallelOption func(*parallelConfig)

type parallelConfig struct {
	shuffle bool
}

// WithShuffle switches Parallel to shuffle mode (§4.5.4): outputs are
// emitted in whatever order workers complete, with no reordering.
func WithShuffle() ParallelOption {
	return func(c *parallelConfig) {
		c.shuffle = true
	}
}

// Parallel dispatches r's values, round-robin, across count identical
// instantiations of consumer, per §4.5.4. In the default preserve-order
// mode, round-robin dispatch plus a round-robin merge of the workers'
// outputs reproduces the original order exactly, since each worker
// processes its own assigned subsequence in order; WithShuffle merges by
// arrival instead. An error from any worker — or from r itself — propagates
// to the merged downstream; the dispatcher is cancelled and every worker is
// stopped with None, not with Err(e).
func Parallel[T, U any](r Reader[T], count int, consumer func(Reader[T]) Reader[U], opts ...ParallelOption) Reader[U] {
	cfg := parallelConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if count < 1 {
		count = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(count))

	valuesCh := make([]chan T, count)
	errCh := make([]chan error, count)
	for i := range valuesCh {
		valuesCh[i] = make(chan T)
		errCh[i] = make(chan error, 1)
	}

	g.Go(func() error {
		defer func() {
			for _, ch := range valuesCh {
				close(ch)
			}
		}()

		i := 0
		for {
			if err := sem.Acquire(gctx, 1); err != nil {
				return nil
			}

			v, ok, err := r.Read()
			if err != nil {
				sem.Release(1)
				for _, ech := range errCh {
					select {
					case ech <- err:
					default:
					}
				}
				return err
			}
			if !ok {
				sem.Release(1)
				return nil
			}

			idx := i % count
			i++

			select {
			case valuesCh[idx] <- v:
				sem.Release(1)
			case <-gctx.Done():
				sem.Release(1)
				return nil
			}
		}
	})

	outputs := make([]Reader[U], count)
	for w := 0; w < count; w++ {
		w := w
		source := NewReader(func() (T, bool, error) {
			var zero T
			select {
			case v, ok := <-valuesCh[w]:
				if !ok {
					return zero, false, nil
				}
				return v, true, nil
			case err := <-errCh[w]:
				return zero, false, err
			}
		}, func(reason StopReason) error {
			cancel()
			return r.Stop(reason)
		})
		// Buffer(1) gives each worker its own background goroutine that
		// runs consumer ahead of whatever order the merge below consumes
		// results in, so workers genuinely compute concurrently instead of
		// only being driven one at a time by the merge reader's pull order.
		outputs[w] = Buffer[U](consumer(source), 1)
	}

	var merged Reader[U]
	if cfg.shuffle {
		merged = Dequeue(outputs...)
	} else {
		merged = RR(outputs...)
	}

	return NewReader(func() (U, bool, error) {
		v, ok, err := merged.Read()
		if err != nil {
			cancel()
			_ = g.Wait()
			var zero U
			return zero, false, err
		}
		if !ok {
			if werr := g.Wait(); werr != nil {
				var zero U
				return zero, false, werr
			}
			return v, false, nil
		}
		return v, true, nil
	}, func(reason StopReason) error {
		cancel()
		err := merged.Stop(reason)
		_ = g.Wait()
		return err
	})
}
