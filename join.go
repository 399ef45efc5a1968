package flow

import "sync"

// JoinEntry is one branch's slot in a Join cycle: Valid is false for a
// branch that has ended, or whose value the joiner function consumed and
// cleared.
type JoinEntry[T any] struct {
	Value T
	Valid bool
}

// JoinFunc combines one cycle's entries into a single emitted value. It
// must clear (set Valid=false on) every entry it consumes; entries left
// Valid are reused, unpulled, on the next cycle.
type JoinFunc[T any] func(entries []JoinEntry[T]) T

// Join pulls one value from every still-active branch concurrently each
// cycle, combines them with fn, and emits fn's result, per §4.5.3. Only
// branches whose entry fn cleared are re-pulled on the next cycle. Join
// ends once every branch has ended and every entry is invalid.
func Join[T any](fn JoinFunc[T], readers ...Reader[T]) Reader[T] {
	n := len(readers)
	entries := make([]JoinEntry[T], n)
	ended := make([]bool, n)

	return NewReader(func() (T, bool, error) {
		var zero T

		var needPull []int
		for i := 0; i < n; i++ {
			if !ended[i] && !entries[i].Valid {
				needPull = append(needPull, i)
			}
		}

		if len(needPull) > 0 {
			type pullResult struct {
				idx int
				v   T
				ok  bool
				err error
			}
			results := make([]pullResult, len(needPull))

			var wg sync.WaitGroup
			for k, i := range needPull {
				wg.Add(1)
				go func(k, i int) {
					defer wg.Done()
					v, ok, err := readers[i].Read()
					results[k] = pullResult{idx: i, v: v, ok: ok, err: err}
				}(k, i)
			}
			wg.Wait()

			var firstErr error
			for _, res := range results {
				if res.err != nil {
					if firstErr == nil {
						firstErr = res.err
					}
					continue
				}
				if !res.ok {
					ended[res.idx] = true
					entries[res.idx] = JoinEntry[T]{}
				} else {
					entries[res.idx] = JoinEntry[T]{Value: res.v, Valid: true}
				}
			}

			if firstErr != nil {
				for i, r := range readers {
					if !ended[i] {
						_ = r.Stop(Err(firstErr))
					}
				}
				return zero, false, firstErr
			}
		}

		allDone := true
		for i := 0; i < n; i++ {
			if !ended[i] || entries[i].Valid {
				allDone = false
				break
			}
		}
		if allDone {
			return zero, false, nil
		}

		return fn(entries), true, nil
	}, func(reason StopReason) error {
		var firstErr error
		for _, r := range readers {
			if err := r.Stop(reason); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	})
}
