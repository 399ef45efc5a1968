package flow_test

import (
	. "github.com/mccutchen/flow"
	"errors"
	"testing"
)

func TestStopReasonVariants(t *testing.T) {
	if !None.IsNone() {
		t.Errorf("None.IsNone() = false")
	}
	if None.IsSilent() {
		t.Errorf("None.IsSilent() = true")
	}
	if _, ok := None.IsErr(); ok {
		t.Errorf("None.IsErr() ok = true")
	}

	s := Silent()
	if !s.IsSilent() {
		t.Errorf("Silent().IsSilent() = false")
	}
	if s.IsNone() {
		t.Errorf("Silent().IsNone() = true")
	}

	boom := errors.New("boom")
	e := Err(boom)
	if got, ok := e.IsErr(); !ok || got != boom {
		t.Errorf("Err(boom).IsErr() = %v, %v", got, ok)
	}

	if got := Err(nil); !got.IsNone() {
		t.Errorf("Err(nil) should collapse to None, got %v", got)
	}
}

func TestGenericReaderEndStickiness(t *testing.T) {
	i := 0
	r := NewReader(func() (int, bool, error) {
		if i >= 3 {
			return 0, false, nil
		}
		i++
		return i, true, nil
	}, nil)

	for want := 1; want <= 3; want++ {
		v, ok, err := r.Read()
		if !ok || err != nil || v != want {
			t.Fatalf("Read() = %v, %v, %v; want %v, true, nil", v, ok, err, want)
		}
	}

	for n := 0; n < 3; n++ {
		v, ok, err := r.Read()
		if ok || err != nil || v != 0 {
			t.Fatalf("Read() after end = %v, %v, %v; want 0, false, nil", v, ok, err)
		}
	}
}

func TestGenericReaderErrorSurfacesOnce(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	r := NewReader(func() (int, bool, error) {
		calls++
		if calls == 1 {
			return 0, false, boom
		}
		t.Fatalf("read function called again after error")
		return 0, false, nil
	}, nil)

	_, ok, err := r.Read()
	if ok || err != boom {
		t.Fatalf("first Read() = %v, %v; want false, boom", ok, err)
	}

	_, ok, err = r.Read()
	if ok || err != nil {
		t.Fatalf("second Read() = %v, %v; want false, nil (error surfaces once)", ok, err)
	}
}

func TestGenericReaderStopErrRaisesForever(t *testing.T) {
	boom := errors.New("boom")
	r := NewReader(func() (int, bool, error) {
		return 1, true, nil
	}, nil)

	if err := r.Stop(Err(boom)); err != nil {
		t.Fatalf("Stop() = %v", err)
	}

	for n := 0; n < 3; n++ {
		_, ok, err := r.Read()
		if ok || err != boom {
			t.Fatalf("Read() after Stop(Err) = %v, %v; want false, boom", ok, err)
		}
	}
}

func TestGenericReaderStopIdempotence(t *testing.T) {
	releaseCount := 0
	r := NewReader(func() (int, bool, error) {
		return 1, true, nil
	}, func(StopReason) error {
		releaseCount++
		return nil
	})

	for n := 0; n < 5; n++ {
		_ = r.Stop(None)
	}
	if releaseCount != 1 {
		t.Fatalf("release called %d times, want 1", releaseCount)
	}
}

func TestGenericWriterWriteAfterEnd(t *testing.T) {
	var got []int
	w := NewWriter(func(v int, end bool) error {
		if !end {
			got = append(got, v)
		}
		return nil
	}, nil)

	if err := w.Write(1); err != nil {
		t.Fatalf("Write(1) = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := w.Write(2); !errors.Is(err, ErrWriteAfterEnd) {
		t.Fatalf("Write(2) after Close() = %v, want ErrWriteAfterEnd", err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("got = %v, want [1]", got)
	}
}

func TestWriteAll(t *testing.T) {
	w := NewArrayWriter[int]()
	if err := WriteAll[int](w, 42); err != nil {
		t.Fatalf("WriteAll() = %v", err)
	}
	if err := w.Write(43); !errors.Is(err, ErrWriteAfterEnd) {
		t.Fatalf("Write() after WriteAll = %v, want ErrWriteAfterEnd", err)
	}
	ExpectIntSlice(t, w.Result(), []int{42})
}

// ExpectIntSlice is a small local helper to avoid importing internal/th
// into the external-facing package tests for a single comparison.
func ExpectIntSlice(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
