package flow

// Each pulls r to exhaustion, calling fn with each value and its input
// index, and returns the number of values seen. ForEach is an alias, per
// §4.6 ("each(fn) / forEach(fn): identical").
func Each[T any](r Reader[T], fn func(v T, index int) error) (int, error) {
	i := 0
	for {
		v, ok, err := r.Read()
		if err != nil {
			_ = r.Stop(Err(err))
			return i, err
		}
		if !ok {
			return i, nil
		}
		if err := fn(v, i); err != nil {
			_ = r.Stop(Err(err))
			return i, err
		}
		i++
	}
}

// ForEach is an alias for Each.
func ForEach[T any](r Reader[T], fn func(v T, index int) error) (int, error) {
	return Each(r, fn)
}

// Reduce is a strictly sequential left fold over r, per §4.6.
func Reduce[T, A any](r Reader[T], init A, fn func(acc A, v T, index int) (A, error)) (A, error) {
	acc := init
	i := 0
	for {
		v, ok, err := r.Read()
		if err != nil {
			_ = r.Stop(Err(err))
			return acc, err
		}
		if !ok {
			return acc, nil
		}
		acc, err = fn(acc, v, i)
		if err != nil {
			_ = r.Stop(Err(err))
			return acc, err
		}
		i++
	}
}

// Every reports whether pred holds for every value of r, short-circuiting
// and stopping r with None the moment a counterexample is found.
func Every[T any](r Reader[T], pred Predicate[T]) (bool, error) {
	match := toPredicateFunc[T](pred)
	i := 0
	for {
		v, ok, err := r.Read()
		if err != nil {
			_ = r.Stop(Err(err))
			return false, err
		}
		if !ok {
			return true, nil
		}
		keep, err := match(v, i)
		if err != nil {
			_ = r.Stop(Err(err))
			return false, err
		}
		if !keep {
			_ = r.Stop(None)
			return false, nil
		}
		i++
	}
}

// Some reports whether pred holds for any value of r, short-circuiting and
// stopping r with None the moment a match is found.
func Some[T any](r Reader[T], pred Predicate[T]) (bool, error) {
	match := toPredicateFunc[T](pred)
	i := 0
	for {
		v, ok, err := r.Read()
		if err != nil {
			_ = r.Stop(Err(err))
			return false, err
		}
		if !ok {
			return false, nil
		}
		keep, err := match(v, i)
		if err != nil {
			_ = r.Stop(Err(err))
			return false, err
		}
		if keep {
			_ = r.Stop(None)
			return true, nil
		}
		i++
	}
}

// Find returns the first value of r matching pred, short-circuiting and
// stopping r with None the moment a match is found.
func Find[T any](r Reader[T], pred Predicate[T]) (T, bool, error) {
	match := toPredicateFunc[T](pred)
	i := 0
	var zero T
	for {
		v, ok, err := r.Read()
		if err != nil {
			_ = r.Stop(Err(err))
			return zero, false, err
		}
		if !ok {
			return zero, false, nil
		}
		keep, err := match(v, i)
		if err != nil {
			_ = r.Stop(Err(err))
			return zero, false, err
		}
		if keep {
			_ = r.Stop(None)
			return v, true, nil
		}
		i++
	}
}
