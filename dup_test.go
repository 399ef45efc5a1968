package flow_test

import (
	. "github.com/mccutchen/flow"

	"testing"
)

func TestDupBranchesYieldIndependently(t *testing.T) {
	a, b := Dup[int](numbers(5))

	aOut := mustToArray(t, a)
	bOut := mustToArray(t, b)

	ExpectIntSlice(t, aOut, []int{0, 1, 2, 3, 4})
	ExpectIntSlice(t, bOut, []int{0, 1, 2, 3, 4})
}

func TestDupStopNoneOnlyAffectsOneBranch(t *testing.T) {
	src := numbers(5)
	a, b := Dup[int](src)

	v, ok, err := a.Read()
	if err != nil || !ok || v != 0 {
		t.Fatalf("a.Read() = %v, %v, %v", v, ok, err)
	}
	if err := a.Stop(None); err != nil {
		t.Fatalf("a.Stop(None) = %v", err)
	}

	_, ok, err = a.Read()
	if ok || err != nil {
		t.Fatalf("a.Read() after stop = %v, %v, want false, nil", ok, err)
	}

	bOut := mustToArray(t, b)
	ExpectIntSlice(t, bOut, []int{0, 1, 2, 3, 4})
}

func TestDupHeadersCarryDistinctBranchIDs(t *testing.T) {
	a, b := Dup[int](numbers(1))
	idA := a.Headers()["X-Flow-Branch-Id"]
	idB := b.Headers()["X-Flow-Branch-Id"]
	if idA == "" || idB == "" || idA == idB {
		t.Fatalf("branch ids = %q, %q, want distinct non-empty", idA, idB)
	}
}
