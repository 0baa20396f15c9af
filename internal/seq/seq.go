// Package seq provides lazy, restartable combinators over iter.Seq sequences.
// Nothing is materialized until a terminal operation (OrderBy, Collect) runs,
// so the same pipeline can drive both windowed I/O batching and report
// filtering without intermediate slices.
package seq

import (
	"fmt"
	"iter"
	"slices"
)

// Where yields only the elements of s for which keep returns true.
func Where[T any](s iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

// Select yields fn applied to each element of s.
func Select[T, U any](s iter.Seq[T], fn func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range s {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

// Chunk yields successive slices of at most size elements; the last chunk may
// be short. Each yielded slice is freshly allocated and owned by the consumer.
// A size of zero or less is a caller contract violation and panics.
func Chunk[T any](s iter.Seq[T], size int) iter.Seq[[]T] {
	if size <= 0 {
		panic(fmt.Sprintf("seq: chunk size must be positive, got %d", size))
	}
	return func(yield func([]T) bool) {
		buf := make([]T, 0, size)
		for v := range s {
			buf = append(buf, v)
			if len(buf) == size {
				if !yield(buf) {
					return
				}
				buf = make([]T, 0, size)
			}
		}
		if len(buf) > 0 {
			yield(buf)
		}
	}
}

// OrderBy materializes s and sorts it with cmp. Terminal.
func OrderBy[T any](s iter.Seq[T], cmp func(a, b T) int) []T {
	out := Collect(s)
	slices.SortStableFunc(out, cmp)
	return out
}

// Collect materializes s into a slice. Terminal.
func Collect[T any](s iter.Seq[T]) []T {
	var out []T
	for v := range s {
		out = append(out, v)
	}
	return out
}

// Of returns a restartable sequence over the given slice.
func Of[T any](xs []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range xs {
			if !yield(v) {
				return
			}
		}
	}
}
