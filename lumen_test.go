package lumen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"lumen/errors"
)

func newTestSink() *errors.Sink {
	s := errors.New("")
	s.Exit = func(int) {}
	return s
}

func runOK(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	sink := newTestSink()
	RunWithSink(src, &buf, sink)
	assert.Nil(t, sink.Last)
	return buf.String()
}

func TestVariableDeclAndArithmeticPrints42(t *testing.T) {
	out := runOK(t, "var x = 41; var y = x + 1; print(y);")
	assert.Equal(t, "42", out)
}

func TestWhileLoopCountsToThree(t *testing.T) {
	out := runOK(t, "var i = 0; while (i < 3) { i = i + 1; } print(i);")
	assert.Equal(t, "3", out)
}

func TestFunctionDeclAndCallAddsOperands(t *testing.T) {
	out := runOK(t, "fn add(a: number, b: number) -> number { return a + b; } print(add(2, 3));")
	assert.Equal(t, "5", out)
}

func TestBoundedLoopRepeatsBody(t *testing.T) {
	out := runOK(t, `loop 3 { print("x"); }`)
	assert.Equal(t, "xxx", out)
}

func TestIfElseFalsyConditionTakesElseBranch(t *testing.T) {
	out := runOK(t, `if (0) { print("a"); } else { print("b"); }`)
	assert.Equal(t, "b", out)
}

func TestTopLevelBreakThrowsE0x302(t *testing.T) {
	var buf bytes.Buffer
	sink := newTestSink()
	RunWithSink("break;", &buf, sink)
	assert.NotNil(t, sink.Last)
	assert.Equal(t, "E0x302", string(sink.Last.Code))
}
