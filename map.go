package flow

// Map returns a Reader that applies fn to every value of r, passing fn the
// zero-based index of the value in r's own sequence (§4.3's "input index").
// If fn returns an error, or r itself fails, the failure surfaces on
// the composite reader's next Read.
func Map[T, U any](r Reader[T], fn func(v T, index int) (U, error)) Reader[U] {
	i := 0
	return NewHeaderReader(func() (U, bool, error) {
		var zero U

		v, ok, err := r.Read()
		if err != nil {
			return zero, false, err
		}
		if !ok {
			return zero, false, nil
		}

		out, err := fn(v, i)
		i++
		if err != nil {
			return zero, false, err
		}
		return out, true, nil
	}, func(reason StopReason) error {
		return r.Stop(reason)
	}, r.Headers())
}
