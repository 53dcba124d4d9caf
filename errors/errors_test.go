package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestSink() *Sink {
	s := New("")
	s.Exit = func(int) {}
	return s
}

func TestThrowRecordsLastDiagnostic(t *testing.T) {
	s := newTestSink()
	s.Throw(E0x302, 3, 7, nil)

	assert.NotNil(t, s.Last)
	assert.Equal(t, E0x302, s.Last.Code)
	assert.Equal(t, 3, s.Last.Line)
	assert.Equal(t, 7, s.Last.Pos)
}

func TestDiagnosticErrorIncludesCodeAndPosition(t *testing.T) {
	d := Diagnostic{Code: E0x307, Line: 1, Pos: 1, Args: []string{"x"}}
	msg := d.Error()

	assert.Contains(t, msg, "E0x307")
	assert.Contains(t, msg, "line 1:1")
	assert.Contains(t, msg, "x")
}

func TestDiagnosticErrorWithoutArgsUsesBaseMessage(t *testing.T) {
	d := Diagnostic{Code: E0x405, Line: 2, Pos: 4}
	msg := d.Error()

	assert.Contains(t, msg, "wrong number of arguments")
}
