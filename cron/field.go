package cron

// Field is the seconds/minutes/hours/months evaluator: a Ring paired with
// the two-operation contract every cascading unit in the date/time resolver
// implements.
//
// FirstAfter is the one-off search that aligns to an arbitrary instant; the
// resolver uses only this one (through seekField). Next is the successor
// step, and is cheaper: it either returns the current cursor value
// unchanged (the unit below it did not overflow, so this unit need not
// move) or advances exactly one step (the unit below overflowed, so this
// unit must carry).
type Field struct {
	ring    *Ring
	current int
}

func newField(r *Ring) *Field {
	return &Field{ring: r}
}

// FirstAfter returns the least allowed value >= value (or > value, if
// lowerOverflow is set, meaning a unit below has already been pushed past
// its own maximum and this unit must therefore be struck strictly later).
// wrapped reports whether satisfying that bound required cycling past this
// field's largest allowed value, which the caller must carry upward.
//
// The ring's cursor lands just past the returned value, so a later Next
// call can advance straight to this field's own successor without
// re-searching.
func (f *Field) FirstAfter(value int, lowerOverflow bool) (result int, wrapped bool) {
	target := value
	if lowerOverflow {
		target++
	}
	result, wrapped = f.ring.SearchGE(target)
	f.current = result
	return result, wrapped
}

// Next produces the value for the following tick of the cascade. When
// lowerOverflow is false the unit below didn't roll over, so this field
// holds the value it last returned. When true, this field must advance to
// its own next allowed value, possibly reporting its own overflow in turn.
func (f *Field) Next(lowerOverflow bool) (result int, wrapped bool) {
	if !lowerOverflow {
		return f.current, false
	}
	result, wrapped = f.ring.AdvanceChecked()
	f.current = result
	return result, wrapped
}

// Reset returns the underlying ring to its initial, uninitialized state.
func (f *Field) Reset() {
	f.ring.Reset()
}

// Period returns the number of distinct values this field can take.
func (f *Field) Period() int {
	return f.ring.Period()
}
