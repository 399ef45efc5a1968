package flow

// Limit returns a Reader that delivers at most n values from r, then stops
// r with stopArg (defaulting to None) the moment the nth value has been
// delivered, per §4.3 and scenario 1 of §8.
func Limit[T any](r Reader[T], n int, stopArg ...StopReason) Reader[T] {
	arg := None
	if len(stopArg) > 0 {
		arg = stopArg[0]
	}

	count := 0
	ended := false

	return NewHeaderReader(func() (T, bool, error) {
		var zero T
		if ended {
			return zero, false, nil
		}
		if count >= n {
			ended = true
			_ = r.Stop(arg)
			return zero, false, nil
		}

		v, ok, err := r.Read()
		if err != nil {
			ended = true
			return zero, false, err
		}
		if !ok {
			ended = true
			return zero, false, nil
		}

		count++
		if count >= n {
			ended = true
			_ = r.Stop(arg)
		}
		return v, true, nil
	}, func(reason StopReason) error {
		if ended {
			return nil
		}
		ended = true
		return r.Stop(reason)
	}, r.Headers())
}

// Skip returns a Reader that drops the first n values of r, consuming them
// lazily on the composite's first Read.
func Skip[T any](r Reader[T], n int) Reader[T] {
	skipped := false

	return NewHeaderReader(func() (T, bool, error) {
		var zero T
		if !skipped {
			skipped = true
			for i := 0; i < n; i++ {
				_, ok, err := r.Read()
				if err != nil {
					return zero, false, err
				}
				if !ok {
					return zero, false, nil
				}
			}
		}
		return r.Read()
	}, func(reason StopReason) error {
		return r.Stop(reason)
	}, r.Headers())
}
