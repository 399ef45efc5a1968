package flow

// While returns a Reader that yields values of r as long as pred reports
// true, per §4.3. The value that first fails pred is not delivered; at that
// point the composite stops upstream with stopArg (defaulting to None) and
// itself ends.
func While[T any](r Reader[T], pred Predicate[T], stopArg ...StopReason) Reader[T] {
	return whileUntil(r, pred, false, stopArg...)
}

// Until returns a Reader that yields values of r until pred first reports
// true, per §4.3. The value that first satisfies pred is not delivered; at
// that point the composite stops upstream with stopArg (defaulting to None)
// and itself ends.
func Until[T any](r Reader[T], pred Predicate[T], stopArg ...StopReason) Reader[T] {
	return whileUntil(r, pred, true, stopArg...)
}

func whileUntil[T any](r Reader[T], pred Predicate[T], invert bool, stopArg ...StopReason) Reader[T] {
	match := toPredicateFunc[T](pred)
	arg := None
	if len(stopArg) > 0 {
		arg = stopArg[0]
	}

	i := 0
	ended := false

	return NewHeaderReader(func() (T, bool, error) {
		var zero T
		if ended {
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

		idx := i
		i++

		matched, err := match(v, idx)
		if err != nil {
			ended = true
			return zero, false, err
		}

		terminate := matched
		if !invert {
			terminate = !matched
		}
		if terminate {
			ended = true
			_ = r.Stop(arg)
			return zero, false, nil
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
