package th

import (
	"sync"
	"testing"

	"github.com/mccutchen/flow"
)

// FromRangeReader returns a Reader yielding start, start+1, …, end-1.
func FromRangeReader(start, end int) flow.Reader[int] {
	items := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, i)
	}
	return flow.NewArrayReader(items)
}

// ExpectReaderValues drains r and asserts it produced exactly expected,
// with no error.
func ExpectReaderValues[A comparable](t *testing.T, r flow.Reader[A], expected []A) {
	t.Helper()
	got, err := flow.ToArray(r)
	ExpectNoError(t, err)
	ExpectSlice(t, got, expected)
}

// StopCall records a single observed Stop(reason) call against a reader.
type StopCall struct {
	Reason flow.StopReason
	Pos    int
}

// StoppingReader wraps a Reader and records every Stop call along with
// the read position at the time it happened, for asserting scenarios like
// "source observed a stop at position 7 with reason None" (§8 scenario 1).
type StoppingReader[T any] struct {
	r   flow.Reader[T]
	mu  sync.Mutex
	pos int
	Stops []StopCall
}

func NewStoppingReader[T any](r flow.Reader[T]) *StoppingReader[T] {
	return &StoppingReader[T]{r: r}
}

func (s *StoppingReader[T]) Read() (T, bool, error) {
	s.mu.Lock()
	pos := s.pos
	s.mu.Unlock()

	v, ok, err := s.r.Read()

	if ok {
		s.mu.Lock()
		s.pos = pos + 1
		s.mu.Unlock()
	}
	return v, ok, err
}

func (s *StoppingReader[T]) Stop(reason flow.StopReason) error {
	s.mu.Lock()
	s.Stops = append(s.Stops, StopCall{Reason: reason, Pos: s.pos})
	s.mu.Unlock()
	return s.r.Stop(reason)
}

func (s *StoppingReader[T]) Headers() flow.Header {
	return s.r.Headers()
}

// RecordingWriter records every value written to it and can be configured
// to fail on a specific value, for exercising tee/pipe error propagation.
type RecordingWriter[T any] struct {
	mu       sync.Mutex
	Values   []T
	Closed   bool
	Stopped  []flow.StopReason
	FailOn   func(T) error
}

func NewRecordingWriter[T any]() *RecordingWriter[T] {
	return &RecordingWriter[T]{}
}

func (w *RecordingWriter[T]) Write(v T) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.FailOn != nil {
		if err := w.FailOn(v); err != nil {
			return err
		}
	}
	w.Values = append(w.Values, v)
	return nil
}

func (w *RecordingWriter[T]) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Closed = true
	return nil
}

func (w *RecordingWriter[T]) Stop(reason flow.StopReason) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Stopped = append(w.Stopped, reason)
	return nil
}
