// Package query implements the small Mongo-style filter DSL that §4.3
// requires Filter, While, Until, Every, and Some to accept as an
// alternative to a plain predicate closure: a map of operators
// ($lt/$lte/$gt/$gte/$eq/$ne/$in/$nin) matched against the value flowing
// through the reader.
package query

import (
	"fmt"
	"reflect"
)

// M is a query document: each key is one of the supported operators, and
// every entry must match for M to match a value (implicit AND).
type M map[string]any

const (
	OpLt  = "$lt"
	OpLte = "$lte"
	OpGt  = "$gt"
	OpGte = "$gte"
	OpEq  = "$eq"
	OpNe  = "$ne"
	OpIn  = "$in"
	OpNin = "$nin"
)

// Match reports whether v satisfies every operator in q.
func Match(v any, q M) (bool, error) {
	for op, operand := range q {
		ok, err := matchOne(v, op, operand)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchOne(v any, op string, operand any) (bool, error) {
	switch op {
	case OpEq:
		return reflect.DeepEqual(v, operand), nil
	case OpNe:
		return !reflect.DeepEqual(v, operand), nil
	case OpIn:
		return contains(operand, v)
	case OpNin:
		ok, err := contains(operand, v)
		return !ok, err
	case OpLt, OpLte, OpGt, OpGte:
		cmp, err := compare(v, operand)
		if err != nil {
			return false, err
		}
		switch op {
		case OpLt:
			return cmp < 0, nil
		case OpLte:
			return cmp <= 0, nil
		case OpGt:
			return cmp > 0, nil
		default:
			return cmp >= 0, nil
		}
	default:
		return false, fmt.Errorf("query: unsupported operator %q", op)
	}
}

func contains(operand any, v any) (bool, error) {
	rv := reflect.ValueOf(operand)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false, fmt.Errorf("query: %s operand must be a slice, got %T", OpIn, operand)
	}
	for i := 0; i < rv.Len(); i++ {
		if reflect.DeepEqual(rv.Index(i).Interface(), v) {
			return true, nil
		}
	}
	return false, nil
}

// compare orders two values numerically or lexically, matching the
// operators a Mongo-style query exposes for ordering comparisons.
func compare(a, b any) (int, error) {
	af, aIsNum := asFloat(a)
	bf, bIsNum := asFloat(b)
	if aIsNum && bIsNum {
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}

	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	}

	return 0, fmt.Errorf("query: cannot order %T against %T", a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
