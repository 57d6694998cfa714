package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRing_SearchGE(t *testing.T) {
	r := NewRing([]int{0, 15, 30, 45})

	v, wrapped := r.SearchGE(16)
	assert.Equal(t, 30, v)
	assert.False(t, wrapped)

	r.Reset()
	v, wrapped = r.SearchGE(46)
	assert.Equal(t, 0, v)
	assert.True(t, wrapped)

	r.Reset()
	v, wrapped = r.SearchGE(0)
	assert.Equal(t, 0, v)
	assert.False(t, wrapped)
}

func TestRing_AdvanceChecked_NeverWrapsOnFirstCall(t *testing.T) {
	r := NewRing([]int{0, 1, 2})

	v, wrapped := r.AdvanceChecked()
	assert.Equal(t, 0, v)
	assert.False(t, wrapped)

	v, wrapped = r.AdvanceChecked()
	assert.Equal(t, 1, v)
	assert.False(t, wrapped)

	v, wrapped = r.AdvanceChecked()
	assert.Equal(t, 2, v)
	assert.False(t, wrapped)

	v, wrapped = r.AdvanceChecked()
	assert.Equal(t, 0, v)
	assert.True(t, wrapped)
}

func TestRing_AdvanceChecked_WrapsAfterSearchGE(t *testing.T) {
	r := NewRing([]int{10, 20, 30})
	r.SearchGE(25) // cursor positioned just past 30, i.e. back at index 0

	v, wrapped := r.AdvanceChecked()
	assert.Equal(t, 10, v)
	assert.True(t, wrapped)
}

func TestRing_RotateLeftRight(t *testing.T) {
	r := NewRing([]int{1, 2, 3, 4})
	r.RotateLeft(2)
	assert.Equal(t, 3, r.Peek())
	r.RotateRight(1)
	assert.Equal(t, 2, r.Peek())
	r.RotateRight(3)
	assert.Equal(t, 3, r.Peek())
}

func TestRing_Clone_SharesValuesIndependentCursor(t *testing.T) {
	r := NewRing([]int{5, 10, 15})
	r.Advance() // cursor now at 10
	c := r.Clone()

	c.Advance() // only c's cursor moves, to 15
	assert.Equal(t, 15, c.Peek())
	assert.Equal(t, 10, r.Peek())
}

func TestRing_Period(t *testing.T) {
	r := NewRing([]int{0, 1, 2, 3, 4})
	assert.Equal(t, 5, r.Period())
}

func TestRing_Contains(t *testing.T) {
	r := NewRing([]int{0, 15, 30, 45})
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(30))
	assert.False(t, r.Contains(31))
	assert.False(t, r.Contains(46))
}
