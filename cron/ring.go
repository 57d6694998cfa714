package cron

import "sort"

// Ring is a cyclic index over a fixed, sorted, duplicate-free sequence of
// small non-negative integers. It is the shared cursor primitive behind
// every field evaluator in this package: seconds, minutes, hours, months,
// and days all reduce to a Ring over their respective allowed value sets.
//
// A Ring never grows or shrinks its backing sequence after construction.
// Cloning a Ring copies the cursor but shares the backing slice, since the
// value set itself is immutable for the lifetime of a Spec.
type Ring struct {
	values []int
	cursor int
	init   bool
}

// NewRing builds a Ring over values, which must already be sorted in
// ascending order and free of duplicates.
func NewRing(values []int) *Ring {
	return &Ring{values: values}
}

// Period returns the number of distinct values in the ring.
func (r *Ring) Period() int {
	return len(r.values)
}

// Values returns the backing value set. Callers must not mutate it.
func (r *Ring) Values() []int {
	return r.values
}

// Peek returns the value the cursor currently points to, without advancing.
func (r *Ring) Peek() int {
	return r.values[r.cursor]
}

// Advance returns the value at the cursor and moves the cursor one step
// forward, wrapping at the end of the sequence.
func (r *Ring) Advance() int {
	v := r.values[r.cursor]
	r.cursor = (r.cursor + 1) % len(r.values)
	r.init = true
	return v
}

// AdvanceChecked is Advance, additionally reporting whether this call
// crossed the boundary back to the first value. It never reports a
// crossing on the very first call made against a freshly reset ring.
func (r *Ring) AdvanceChecked() (int, bool) {
	wasInit := r.init
	prevCursor := r.cursor
	v := r.Advance()
	wrapped := wasInit && prevCursor == 0
	return v, wrapped
}

// RotateLeft moves the cursor forward by n without reading a value.
func (r *Ring) RotateLeft(n int) {
	if n == 0 {
		return
	}
	r.cursor = mod(r.cursor+n, len(r.values))
	r.init = true
}

// RotateRight moves the cursor backward by n without reading a value.
func (r *Ring) RotateRight(n int) {
	if n == 0 {
		return
	}
	r.cursor = mod(r.cursor-n, len(r.values))
	r.init = true
}

// Reset returns the ring to its freshly-constructed state: cursor at the
// first value, uninitialized (so the next AdvanceChecked cannot report a
// wrap).
func (r *Ring) Reset() {
	r.cursor = 0
	r.init = false
}

// SearchGE positions the cursor just past the least value >= x and returns
// that value. If no value in the ring is >= x, the search wraps: the
// least value overall is returned and wrapped is true.
func (r *Ring) SearchGE(x int) (value int, wrapped bool) {
	n := len(r.values)
	idx := sort.Search(n, func(i int) bool { return r.values[i] >= x })
	wrapped = idx == n
	if wrapped {
		idx = 0
	}
	r.cursor = (idx + 1) % n
	r.init = true
	return r.values[idx], wrapped
}

// Contains reports whether x is exactly one of the ring's allowed values.
func (r *Ring) Contains(x int) bool {
	n := len(r.values)
	idx := sort.Search(n, func(i int) bool { return r.values[i] >= x })
	return idx < n && r.values[idx] == x
}

// Clone returns an independent cursor over the same backing value set.
func (r *Ring) Clone() *Ring {
	return &Ring{values: r.values, cursor: r.cursor, init: r.init}
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
