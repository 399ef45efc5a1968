package query

import "testing"

func TestMatchComparisonOperators(t *testing.T) {
	ok, err := Match(5, M{OpGte: 3, OpLt: 10})
	if err != nil || !ok {
		t.Fatalf("Match() = %v, %v, want true, nil", ok, err)
	}

	ok, err = Match(15, M{OpGte: 3, OpLt: 10})
	if err != nil || ok {
		t.Fatalf("Match() = %v, %v, want false, nil", ok, err)
	}
}

func TestMatchEqNe(t *testing.T) {
	ok, _ := Match("foo", M{OpEq: "foo"})
	if !ok {
		t.Fatalf("$eq should match")
	}
	ok, _ = Match("foo", M{OpNe: "foo"})
	if ok {
		t.Fatalf("$ne should not match equal value")
	}
}

func TestMatchInNin(t *testing.T) {
	ok, err := Match(2, M{OpIn: []any{1, 2, 3}})
	if err != nil || !ok {
		t.Fatalf("Match($in) = %v, %v, want true, nil", ok, err)
	}

	ok, err = Match(9, M{OpNin: []any{1, 2, 3}})
	if err != nil || !ok {
		t.Fatalf("Match($nin) = %v, %v, want true, nil", ok, err)
	}
}

func TestMatchIncomparableTypesErrors(t *testing.T) {
	_, err := Match("foo", M{OpLt: 3})
	if err == nil {
		t.Fatalf("Match() err = nil, want error for incomparable types")
	}
}
