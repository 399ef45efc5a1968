package flow

// Pipe drives w.Write(v) for every value of r until r ends, then closes w
// and returns it, per §4.6. If w.Write returns a *StopError, that is
// treated as a graceful early stop: r is stopped with the carried reason
// and Pipe returns w with a nil error (the StopError is swallowed). Any
// other error from r or w propagates to the caller, and r is stopped with
// Err(e).
func Pipe[T any](r Reader[T], w Writer[T]) (Writer[T], error) {
	for {
		v, ok, err := r.Read()
		if err != nil {
			_ = r.Stop(Err(err))
			return w, err
		}
		if !ok {
			if cerr := w.Close(); cerr != nil {
				if se, isStop := asStopError(cerr); isStop {
					_ = r.Stop(se.Reason)
					return w, nil
				}
				_ = r.Stop(Err(cerr))
				return w, cerr
			}
			return w, nil
		}

		if werr := w.Write(v); werr != nil {
			if se, isStop := asStopError(werr); isStop {
				_ = r.Stop(se.Reason)
				return w, nil
			}
			_ = r.Stop(Err(werr))
			return w, werr
		}
	}
}
