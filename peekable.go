package flow

// PeekableReader augments Reader with a one-deep Peek and a LIFO Unread
// stack, per §4.3 and §4.8.
type PeekableReader[T any] interface {
	Reader[T]

	// Peek reads the next value without consuming it: the following Read
	// (or Peek) observes the same value.
	Peek() (T, bool, error)

	// Unread pushes v back onto the reader, to be returned by the next
	// Read before anything else. Multiple Unread calls stack LIFO.
	Unread(v T)
}

type peekableReader[T any] struct {
	r     Reader[T]
	stack []T
}

// Peekable wraps r with Peek/Unread support.
func Peekable[T any](r Reader[T]) PeekableReader[T] {
	return &peekableReader[T]{r: r}
}

func (p *peekableReader[T]) Read() (T, bool, error) {
	if n := len(p.stack); n > 0 {
		v := p.stack[n-1]
		p.stack = p.stack[:n-1]
		return v, true, nil
	}
	return p.r.Read()
}

func (p *peekableReader[T]) Peek() (T, bool, error) {
	var zero T
	if n := len(p.stack); n > 0 {
		return p.stack[n-1], true, nil
	}

	v, ok, err := p.r.Read()
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}

	p.stack = append(p.stack, v)
	return v, true, nil
}

func (p *peekableReader[T]) Unread(v T) {
	p.stack = append(p.stack, v)
}

func (p *peekableReader[T]) Stop(reason StopReason) error {
	return p.r.Stop(reason)
}

func (p *peekableReader[T]) Headers() Header {
	return p.r.Headers()
}
