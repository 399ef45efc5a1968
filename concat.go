package flow

// Concat returns a Reader that exhausts r, then exhausts each of others in
// order, per §4.3. Stopping the composite stops only the currently-active
// upstream; every upstream that has not yet been started is also stopped
// (with the same reason) so it can release whatever resource it is holding
// without ever having been read — this is scenario 2 of §8, where the
// not-yet-started third source is observed stopped at position 0.
func Concat[T any](r Reader[T], others ...Reader[T]) Reader[T] {
	readers := make([]Reader[T], 0, len(others)+1)
	readers = append(readers, r)
	readers = append(readers, others...)

	idx := 0
	ended := false

	return NewHeaderReader(func() (T, bool, error) {
		var zero T
		for idx < len(readers) {
			v, ok, err := readers[idx].Read()
			if err != nil {
				ended = true
				stopFrom(readers, idx+1, None)
				return zero, false, err
			}
			if ok {
				return v, true, nil
			}
			idx++
		}
		ended = true
		return zero, false, nil
	}, func(reason StopReason) error {
		if ended {
			return nil
		}
		ended = true

		var firstErr error
		if idx < len(readers) {
			firstErr = readers[idx].Stop(reason)
		}
		stopFrom(readers, idx+1, reason)
		return firstErr
	}, r.Headers())
}

func stopFrom[T any](readers []Reader[T], from int, reason StopReason) {
	for j := from; j < len(readers); j++ {
		_ = readers[j].Stop(reason)
	}
}
