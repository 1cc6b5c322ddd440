package vars_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/value"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/vars"
)

func TestSimpleGetSetReset(t *testing.T) {
	s := vars.NewSimple()
	numKey := vars.Key{Base: "A"}
	strKey := vars.Key{Base: "A", Str: true}

	assert.Equal(t, value.Num(0), s.Get(numKey), "unset numeric var reads as zero")
	assert.Equal(t, value.Str(""), s.Get(strKey), "unset string var reads as empty")

	s.Set(numKey, value.Num(42))
	s.Set(strKey, value.Str("HI"))
	assert.Equal(t, 42.0, s.Get(numKey).Num)
	assert.Equal(t, "HI", s.Get(strKey).Str)

	s.Reset()
	assert.Equal(t, value.Num(0), s.Get(numKey), "Reset clears all entries")
}

func TestArraysAutoDim(t *testing.T) {
	a := vars.NewArrays()
	k := vars.Key{Base: "A"}

	v, err := a.GetNum(k, []int{5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "auto-dimensioned array reads zero before any write")

	require.NoError(t, a.SetNum(k, []int{5}, 3.5))
	v, err = a.GetNum(k, []int{5})
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	_, err = a.GetNum(k, []int{11})
	assert.True(t, vars.IsSubscriptError(err), "index 11 is out of range for the auto-dim size of 11")
}

func TestArraysDimAndRedim(t *testing.T) {
	a := vars.NewArrays()
	k := vars.Key{Base: "B"}

	require.NoError(t, a.Dim(k, []int{3, 4}))
	require.NoError(t, a.SetNum(k, []int{2, 3}, 9))
	v, err := a.GetNum(k, []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	err = a.Dim(k, []int{5})
	assert.True(t, vars.IsRedimError(err), "re-dimensioning an existing array must fail")

	_, err = a.GetNum(k, []int{3})
	assert.True(t, vars.IsSubscriptError(err), "wrong dimension count must fail")
}

func TestArraysStrings(t *testing.T) {
	a := vars.NewArrays()
	k := vars.Key{Base: "N", Str: true}

	s, err := a.GetStr(k, []int{0})
	require.NoError(t, err)
	assert.Equal(t, "", s)

	require.NoError(t, a.SetStr(k, []int{0}, "X"))
	s, err = a.GetStr(k, []int{0})
	require.NoError(t, err)
	assert.Equal(t, "X", s)
}

func TestArraysReset(t *testing.T) {
	a := vars.NewArrays()
	k := vars.Key{Base: "A"}
	require.NoError(t, a.Dim(k, []int{2}))
	a.Reset()
	// After Reset, k is gone, so Dim succeeds again instead of failing.
	assert.NoError(t, a.Dim(k, []int{2}))
}
