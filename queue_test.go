package flow_test

import (
	. "github.com/mccutchen/flow"

	"testing"
)

// TestQueueLossyPut is scenario 7 of §8: capacity 4, six Put calls, first
// four accepted, last two rejected; after End the reader yields [0,1,2,3].
func TestQueueLossyPut(t *testing.T) {
	q := NewQueue[int](4)

	var accepted []bool
	for i := 0; i < 6; i++ {
		accepted = append(accepted, q.Put(i))
	}
	_ = q.End()

	wantAccepted := []bool{true, true, true, true, false, false}
	for i, a := range accepted {
		if a != wantAccepted[i] {
			t.Fatalf("Put(%d) accepted = %v, want %v", i, a, wantAccepted[i])
		}
	}

	got := mustToArray(t, q.Reader())
	ExpectIntSlice(t, got, []int{0, 1, 2, 3})
}

// TestQueueLosslessWrite is scenario 7's second half: the same six values
// via Write, interleaved with a reader, yields all six in order.
func TestQueueLosslessWrite(t *testing.T) {
	q := NewQueue[int](2)
	reader := q.Reader()

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 6; i++ {
			if err := q.Write(i); err != nil {
				done <- err
				return
			}
		}
		done <- q.End()
	}()

	got := mustToArray(t, reader)
	if err := <-done; err != nil {
		t.Fatalf("producer error: %v", err)
	}
	ExpectIntSlice(t, got, []int{0, 1, 2, 3, 4, 5})
}

func TestQueueStopErrSurfacesOnReader(t *testing.T) {
	q := NewQueue[int](4)
	boom := errString("boom")
	_ = q.Stop(Err(boom))

	_, ok, err := q.Reader().Read()
	if ok || err != boom {
		t.Fatalf("Read() = %v, %v, want false, %v", ok, err, boom)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
