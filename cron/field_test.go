package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField_FirstAfter(t *testing.T) {
	f := newField(NewRing([]int{0, 15, 30, 45}))

	v, wrapped := f.FirstAfter(20, false)
	assert.Equal(t, 30, v)
	assert.False(t, wrapped)

	f.Reset()
	v, wrapped = f.FirstAfter(45, true)
	assert.Equal(t, 0, v)
	assert.True(t, wrapped)

	f.Reset()
	v, wrapped = f.FirstAfter(15, false)
	assert.Equal(t, 15, v)
	assert.False(t, wrapped)
}

func TestField_Next_HoldsWithoutLowerOverflow(t *testing.T) {
	f := newField(NewRing([]int{0, 15, 30, 45}))
	f.FirstAfter(15, false) // match at 15; ring cursor sits past it at 30

	v, wrapped := f.Next(false)
	assert.Equal(t, 15, v, "no carry from below means this field holds its matched value")
	assert.False(t, wrapped)
}

func TestField_Next_AdvancesWithLowerOverflow(t *testing.T) {
	f := newField(NewRing([]int{0, 15, 30, 45}))
	f.FirstAfter(15, false) // cursor sits just past the match, i.e. at 30

	v, wrapped := f.Next(true)
	assert.Equal(t, 30, v)
	assert.False(t, wrapped)

	v, wrapped = f.Next(true)
	assert.Equal(t, 45, v)
	assert.False(t, wrapped)

	v, wrapped = f.Next(true)
	assert.Equal(t, 0, v)
	assert.True(t, wrapped)
}
