// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package owned provides a growable sequence that owns the values appended to
// it. Values go in by copy (or by Move, which also clears the source) and come
// out by copy, so callers never hold a reference into the sequence's storage.
package owned

import "iter"

// minCapacity is the capacity a sequence grows to on its first append.
const minCapacity = 4

// Seq is a growable, value-owning sequence. The zero value is an empty
// sequence ready to use.
type Seq[T any] struct {
	buf   []T // len(buf) is the capacity
	count int
}

// New returns an empty sequence with capacity 0.
func New[T any]() *Seq[T] {
	return &Seq[T]{}
}

// Len returns the number of elements in s.
func (s *Seq[T]) Len() int {
	return s.count
}

// Cap returns the number of elements s can hold before it grows.
func (s *Seq[T]) Cap() int {
	return len(s.buf)
}

// Append stores a copy of v at the end of s.
func (s *Seq[T]) Append(v T) {
	s.growFor(s.count + 1)
	s.buf[s.count] = v
	s.count++
}

// Move appends *p to s and resets *p to the zero value. After Move the
// sequence holds the only copy of the value.
func (s *Seq[T]) Move(p *T) {
	if p == nil {
		return
	}
	s.Append(*p)
	var zero T
	*p = zero
}

// CopyOut copies the element at index into dst and reports whether index was
// in range. dst is left untouched when it is not.
func (s *Seq[T]) CopyOut(index int, dst *T) bool {
	if dst == nil || index < 0 || index >= s.count {
		return false
	}
	*dst = s.buf[index]
	return true
}

// At returns a copy of the element at index.
func (s *Seq[T]) At(index int) (T, bool) {
	var v T
	ok := s.CopyOut(index, &v)
	return v, ok
}

// All yields the index and a copy of each element in insertion order.
func (s *Seq[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(i, s.buf[i]) {
				return
			}
		}
	}
}

// growFor makes room for n elements. Capacity becomes max(4, 2*capacity) on
// overflow; running out of memory here aborts the process.
func (s *Seq[T]) growFor(n int) {
	if n <= len(s.buf) {
		return
	}
	capacity := max(minCapacity, 2*len(s.buf))
	buf := make([]T, capacity)
	copy(buf, s.buf[:s.count])
	s.buf = buf
}
