package flow_test

import (
	. "github.com/mccutchen/flow"
	"testing"

	"github.com/mccutchen/flow/query"
)

func TestFilterWithClosure(t *testing.T) {
	got := mustToArray(t, Filter[int](numbers(10), func(v int) bool { return v%2 == 0 }))
	ExpectIntSlice(t, got, []int{0, 2, 4, 6, 8})
}

func TestFilterWithQueryDSL(t *testing.T) {
	got := mustToArray(t, Filter[int](numbers(10), query.M{query.OpGte: 3, query.OpLt: 7}))
	ExpectIntSlice(t, got, []int{3, 4, 5, 6})
}

func TestEveryAndSomeShortCircuit(t *testing.T) {
	ok, err := Every[int](numbers(100), func(v int) bool { return v < 5 })
	if err != nil || ok {
		t.Fatalf("Every() = %v, %v, want false, nil", ok, err)
	}

	ok, err = Some[int](numbers(100), func(v int) bool { return v == 42 })
	if err != nil || !ok {
		t.Fatalf("Some() = %v, %v, want true, nil", ok, err)
	}
}

func TestFindReturnsFirstMatch(t *testing.T) {
	v, ok, err := Find[int](numbers(100), func(v int) bool { return v > 41 })
	if err != nil || !ok || v != 42 {
		t.Fatalf("Find() = %v, %v, %v, want 42, true, nil", v, ok, err)
	}
}
