package flow

// Tee returns a Reader that reads from r, writes a copy of every value to
// secondary, then returns the value, per §4.4.1. If secondary.Write fails,
// the error propagates to the composite's caller and r is stopped with
// that error. secondary is not stopped when the composite reaches end of
// stream naturally — it receives Close() (write(end)) in that case —
// but if the composite is stopped before draining, secondary is stopped
// with the same reason.
func Tee[T any](r Reader[T], secondary Writer[T]) Reader[T] {
	drained := false
	upstreamStopped := false

	return NewHeaderReader(func() (T, bool, error) {
		var zero T

		v, ok, err := r.Read()
		if err != nil {
			return zero, false, err
		}
		if !ok {
			drained = true
			_ = secondary.Close()
			return zero, false, nil
		}

		if werr := secondary.Write(v); werr != nil {
			upstreamStopped = true
			_ = r.Stop(Err(werr))
			return zero, false, werr
		}
		return v, true, nil
	}, func(reason StopReason) error {
		if !drained {
			_ = secondary.Stop(reason)
		}
		if upstreamStopped {
			return nil
		}
		return r.Stop(reason)
	}, r.Headers())
}
