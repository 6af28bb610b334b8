package collections

import "sort"

// Contains returns true if the provided element is present in the slice.
func Contains[T comparable](elem T, elements []T) bool {
	for _, e := range elements {
		if elem == e {
			return true
		}
	}
	return false
}

// Intersect returns the elements of a that are also present in b, in the
// order they appear in a.
func Intersect[T comparable](a, b []T) []T {
	var out []T
	for _, e := range a {
		if Contains(e, b) {
			out = append(out, e)
		}
	}
	return out
}

// HasDuplicates reports whether any element appears more than once.
func HasDuplicates[T comparable](elements []T) bool {
	seen := make(map[T]struct{}, len(elements))
	for _, e := range elements {
		if _, ok := seen[e]; ok {
			return true
		}
		seen[e] = struct{}{}
	}
	return false
}

// SortedKeys returns the keys of a string keyed map in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
