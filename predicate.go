package flow

import "github.com/mccutchen/flow/query"

// Predicate is accepted by Filter, While, Until, Every, and Some as an
// alternative to a plain Go closure: it may be any of
//
//	func(v T, index int) (bool, error)
//	func(v T, index int) bool
//	func(v T) bool
//	query.M
//
// matching §4.3's "pred is either a closure or a Mongo-style query object."
type Predicate[T any] any

func toPredicateFunc[T any](pred Predicate[T]) func(v T, index int) (bool, error) {
	switch p := pred.(type) {
	case func(T, int) (bool, error):
		return p
	case func(T, int) bool:
		return func(v T, i int) (bool, error) { return p(v, i), nil }
	case func(T) bool:
		return func(v T, _ int) (bool, error) { return p(v), nil }
	case query.M:
		return func(v T, _ int) (bool, error) { return query.Match(any(v), p) }
	default:
		panic("flow: unsupported predicate type")
	}
}
