package flow_test

import (
	. "github.com/mccutchen/flow"

	"testing"
)

func TestEachCountsAndVisitsInOrder(t *testing.T) {
	var seen []int
	n, err := Each[int](numbers(4), func(v int, index int) error {
		if v != index {
			t.Fatalf("v=%d index=%d", v, index)
		}
		seen = append(seen, v)
		return nil
	})
	if err != nil || n != 4 {
		t.Fatalf("Each() = %d, %v, want 4, nil", n, err)
	}
	ExpectIntSlice(t, seen, []int{0, 1, 2, 3})
}

func TestReduceSumsSequentially(t *testing.T) {
	sum, err := Reduce[int, int](numbers(5), 0, func(acc, v, _ int) (int, error) {
		return acc + v, nil
	})
	if err != nil || sum != 10 {
		t.Fatalf("Reduce() = %d, %v, want 10, nil", sum, err)
	}
}

func TestEachPropagatesFnError(t *testing.T) {
	boom := errString("each err")
	_, err := Each[int](numbers(5), func(v int, _ int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	if err != boom {
		t.Fatalf("Each() err = %v, want %v", err, boom)
	}
}
