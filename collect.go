package flow

import "cmp"

// ToArray materializes r into a slice, per §4.6.
func ToArray[T any](r Reader[T]) ([]T, error) {
	var out []T
	for {
		v, ok, err := r.Read()
		if err != nil {
			_ = r.Stop(Err(err))
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// ReadAllBytes concatenates every chunk of a []byte-chunked reader (e.g.
// NewByteReader, or the output of Concat over several), per §4.6's
// "readAll concatenates string/buffer chunks."
func ReadAllBytes(r Reader[[]byte]) ([]byte, error) {
	var out []byte
	for {
		v, ok, err := r.Read()
		if err != nil {
			_ = r.Stop(Err(err))
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v...)
	}
}

// ReadAllString concatenates every chunk of a string-chunked reader.
func ReadAllString(r Reader[string]) (string, error) {
	var out []byte
	for {
		v, ok, err := r.Read()
		if err != nil {
			_ = r.Stop(Err(err))
			return string(out), err
		}
		if !ok {
			return string(out), nil
		}
		out = append(out, v...)
	}
}

// Compare lock-step pulls r and other, returning -1/0/+1 on the first
// element difference, or on length mismatch once one reader ends before
// the other, per §4.6.
func Compare[T cmp.Ordered](r Reader[T], other Reader[T]) (int, error) {
	for {
		v1, ok1, err1 := r.Read()
		if err1 != nil {
			_ = r.Stop(Err(err1))
			_ = other.Stop(Err(err1))
			return 0, err1
		}
		v2, ok2, err2 := other.Read()
		if err2 != nil {
			_ = r.Stop(Err(err2))
			_ = other.Stop(Err(err2))
			return 0, err2
		}

		switch {
		case !ok1 && !ok2:
			return 0, nil
		case !ok1:
			return -1, nil
		case !ok2:
			return 1, nil
		}

		if c := cmp.Compare(v1, v2); c != 0 {
			_ = r.Stop(None)
			_ = other.Stop(None)
			return c, nil
		}
	}
}
