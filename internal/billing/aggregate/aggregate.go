// Package aggregate holds the shared grouping and folding primitives the
// invoice synthesizer and every report variant are built on.
package aggregate

import (
	"cmp"
	"sort"
)

// Fold groups records by the extracted key and folds each group into its
// accumulator. Every distinct key present in records appears exactly once
// in the result. Fold order within a key is the input order; accumulators
// whose additive fields are commutative are therefore order-insensitive.
// Callers that need an order-dependent fold (running balances) must sort
// records before calling.
func Fold[T any, K comparable, A any](records []T, keyOf func(T) K, init func(K) A, fold func(A, T) A) map[K]A {
	out := make(map[K]A)
	for _, record := range records {
		key := keyOf(record)
		acc, ok := out[key]
		if !ok {
			acc = init(key)
		}
		out[key] = fold(acc, record)
	}
	return out
}

// SortedKeys returns the map's keys in ascending order so grouped output
// is deterministic regardless of map iteration order.
func SortedKeys[K cmp.Ordered, A any](groups map[K]A) []K {
	keys := make([]K, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// SortAscending sorts records in place by an ordered sort key. Used to
// presort date-ordered folds; the sort is stable so records sharing a
// key keep their input order.
func SortAscending[T any, K cmp.Ordered](records []T, keyOf func(T) K) {
	sort.SliceStable(records, func(i, j int) bool {
		return keyOf(records[i]) < keyOf(records[j])
	})
}
