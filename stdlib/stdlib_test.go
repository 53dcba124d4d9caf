package stdlib

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"lumen/object"
)

func TestPrintlnWritesSpaceJoinedArgsWithNewline(t *testing.T) {
	env := object.New()
	var buf bytes.Buffer
	LoadWith(env, &buf)

	fn, ok := env.Get("println")
	assert.True(t, ok)
	declr := fn.(object.DeclrFunc)
	declr.Call([]object.Value{object.String("a"), object.Number(1)})
	assert.Equal(t, "a 1\n", buf.String())
}

func TestLenReportsRuneCountForStrings(t *testing.T) {
	env := object.New()
	var buf bytes.Buffer
	LoadWith(env, &buf)

	fn, _ := env.Get("len")
	declr := fn.(object.DeclrFunc)
	result := declr.Call([]object.Value{object.String("héllo")})
	assert.Equal(t, object.Number(5), result)
}

func TestTypeOfReportsValueTypeName(t *testing.T) {
	env := object.New()
	var buf bytes.Buffer
	LoadWith(env, &buf)

	fn, _ := env.Get("type_of")
	declr := fn.(object.DeclrFunc)
	result := declr.Call([]object.Value{object.Bool(true)})
	assert.Equal(t, object.String("bool"), result)
}
