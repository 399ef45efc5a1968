package flow

// RR round-robins across readers — branch 0, 1, …, N-1, 0, 1, … — skipping
// any branch that has already ended, per §4.5.2.
func RR[T any](readers ...Reader[T]) Reader[T] {
	n := len(readers)
	ended := make([]bool, n)
	remaining := n
	next := 0

	return NewReader(func() (T, bool, error) {
		var zero T
		for remaining > 0 {
			i := next
			next = (next + 1) % n

			if ended[i] {
				continue
			}

			v, ok, err := readers[i].Read()
			if err != nil {
				return zero, false, err
			}
			if !ok {
				ended[i] = true
				remaining--
				continue
			}
			return v, true, nil
		}
		return zero, false, nil
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
