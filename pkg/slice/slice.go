// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic slice helpers the [slices] package lacks.
// Every helper maps a nil input to a nil output, so callers can keep the
// nil-versus-empty distinction of optional request fields.
package slice

// Map returns transform applied to every element, in order.
func Map[T, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}
	out := make([]U, 0, len(input))
	for _, item := range input {
		out = append(out, transform(item))
	}
	return out
}

// Filter returns the elements that satisfy keep. The result never shares
// storage with input.
func Filter[T any](input []T, keep func(T) bool) []T {
	if input == nil {
		return nil
	}
	var out []T
	for _, item := range input {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Unique drops repeated elements, keeping the first occurrence of each.
func Unique[T comparable](input []T) []T {
	if input == nil {
		return nil
	}
	seen := make(map[T]struct{}, len(input))
	out := make([]T, 0, len(input))
	for _, item := range input {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
