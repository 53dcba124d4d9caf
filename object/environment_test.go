package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncloseChainsToOuter(t *testing.T) {
	outer := New()
	outer.Define("x", Number(1))
	inner := outer.Enclose()

	v, ok := inner.Get("x")
	assert.True(t, ok)
	assert.Equal(t, Number(1), v)
}

func TestShadowingDoesNotMutateOuter(t *testing.T) {
	outer := New()
	outer.Define("x", Number(1))
	inner := outer.Enclose()
	inner.Define("x", Number(2))

	innerVal, _ := inner.Get("x")
	outerVal, _ := outer.Get("x")
	assert.Equal(t, Number(2), innerVal)
	assert.Equal(t, Number(1), outerVal)
}

func TestAssignWalksOutwardToDefiningScope(t *testing.T) {
	outer := New()
	outer.Define("x", Number(1))
	inner := outer.Enclose()

	ok := inner.Assign("x", Number(9))
	assert.True(t, ok)
	v, _ := outer.Get("x")
	assert.Equal(t, Number(9), v)
}

func TestAssignToUndefinedFails(t *testing.T) {
	env := New()
	assert.False(t, env.Assign("missing", Number(1)))
}

func TestGetAtExactDepth(t *testing.T) {
	root := New()
	root.Define("x", Number(1))
	mid := root.Enclose()
	mid.Define("x", Number(2))
	inner := mid.Enclose()

	v, ok := inner.GetAt(1, "x")
	assert.True(t, ok)
	assert.Equal(t, Number(2), v)

	v, ok = inner.GetAt(2, "x")
	assert.True(t, ok)
	assert.Equal(t, Number(1), v)
}

func TestDefinePubTracksPublicSurface(t *testing.T) {
	env := New()
	env.DefinePub("greet", String("hi"))
	assert.Contains(t, env.PublicNames(), "greet")
}

func TestTypeCheckAnyMatchesAnything(t *testing.T) {
	assert.True(t, TypeCheck("any", Number(1)))
	assert.True(t, TypeCheck("number", Number(1)))
	assert.False(t, TypeCheck("number", String("x")))
}
