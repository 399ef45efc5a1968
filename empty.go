package flow

// NewEmptyReader returns a Reader that yields end on the very first Read,
// matching §4.7's empty reader device.
func NewEmptyReader[T any]() Reader[T] {
	return NewReader(func() (T, bool, error) {
		var zero T
		return zero, false, nil
	}, nil)
}

// NewEmptyWriter returns a Writer that discards every value written to it,
// matching §4.7's empty writer device.
func NewEmptyWriter[T any]() Writer[T] {
	return NewWriter(func(T, bool) error {
		return nil
	}, nil)
}
