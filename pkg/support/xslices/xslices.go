// Package xslices provides missing functionality to the standard slices package.
package xslices

import (
	"golang.org/x/exp/constraints"
)

// Iota returns a slice of incremental int values, starting with start and of
// the given length. E.g.: Iota(3, 2) -> []int{3, 4}.
func Iota[T constraints.Integer](start T, length int) (slice []T) {
	slice = make([]T, length)
	for ii := range slice {
		slice[ii] = start + T(ii)
	}
	return
}

// SliceWithValue creates a slice of the given size filled with the given value.
func SliceWithValue[T any](size int, value T) []T {
	slice := make([]T, size)
	for ii := range slice {
		slice[ii] = value
	}
	return slice
}

// Map executes the given function sequentially for every element on in, and returns a mapped slice.
func Map[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}
