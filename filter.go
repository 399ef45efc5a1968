package flow

// Filter returns a Reader that drops every value of r for which pred
// reports false. pred receives each candidate's input index (§9's "input
// index" resolution of the indexing open question).
func Filter[T any](r Reader[T], pred Predicate[T]) Reader[T] {
	match := toPredicateFunc[T](pred)
	i := 0

	return NewHeaderReader(func() (T, bool, error) {
		var zero T
		for {
			v, ok, err := r.Read()
			if err != nil {
				return zero, false, err
			}
			if !ok {
				return zero, false, nil
			}

			idx := i
			i++

			keep, err := match(v, idx)
			if err != nil {
				return zero, false, err
			}
			if keep {
				return v, true, nil
			}
		}
	}, func(reason StopReason) error {
		return r.Stop(reason)
	}, r.Headers())
}
