package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"lumen/token"
)

func kinds(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestBlockCommentProducesNoTokens(t *testing.T) {
	toks := New("/* hi */", 1).Tokenize()
	assert.Equal(t, []token.Type{token.EOF}, kinds(toks))
}

func TestBlockCommentSpanningNewlineAdvancesLine(t *testing.T) {
	l := New("/* hi \n */", 1)
	toks := l.Tokenize()
	assert.Equal(t, []token.Type{token.EOF}, kinds(toks))
	assert.Equal(t, 2, toks[0].Line)
}

func TestBlockCommentFollowedBySemicolon(t *testing.T) {
	toks := New("/* hi */ ;", 1).Tokenize()
	assert.Equal(t, []token.Type{token.SEMICOLON, token.EOF}, kinds(toks))
}

func TestHexNumberDecodesBase16(t *testing.T) {
	toks := New("0x1F", 1).Tokenize()
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, 16, toks[0].Literal.Number.Base)
	assert.Equal(t, float64(31), toks[0].Literal.Number.Value)
}

func TestBinaryNumberDecodesBase2(t *testing.T) {
	toks := New("0b101", 1).Tokenize()
	assert.Equal(t, 2, toks[0].Literal.Number.Base)
	assert.Equal(t, float64(5), toks[0].Literal.Number.Value)
}

func TestStringLiteralDecodesEscapes(t *testing.T) {
	toks := New(`"a\nb"`, 1).Tokenize()
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "a\nb", *toks[0].Literal.String)
}

func TestCharLiteralDecodesSingleCodePoint(t *testing.T) {
	toks := New("'a'", 1).Tokenize()
	assert.Equal(t, token.CHAR, toks[0].Kind)
	assert.Equal(t, 'a', *toks[0].Literal.Char)
}

func TestLongestMatchOnOperators(t *testing.T) {
	toks := New("== = != ! <= < ->", 1).Tokenize()
	assert.Equal(t, []token.Type{
		token.EQ, token.ASSIGN, token.NOT_EQ, token.BANG,
		token.LT_EQ, token.LT, token.ARROW, token.EOF,
	}, kinds(toks))
}

func TestKeywordVsIdentifier(t *testing.T) {
	toks := New("if iffy", 1).Tokenize()
	assert.Equal(t, token.IF, toks[0].Kind)
	assert.Equal(t, token.IDENT, toks[1].Kind)
}

func TestLineCommentTerminatesAtNewline(t *testing.T) {
	toks := New("var x = 1; // trailing\nvar y = 2;", 1).Tokenize()
	// two full statements worth of tokens, comment contributes nothing
	var semis int
	for _, k := range kinds(toks) {
		if k == token.SEMICOLON {
			semis++
		}
	}
	assert.Equal(t, 2, semis)
}

func TestUnterminatedStringThrowsE0x102(t *testing.T) {
	l := New(`"unterminated`, 1)
	l.err.Exit = func(int) {}
	l.Tokenize()
	assert.NotNil(t, l.err.Last)
	assert.Equal(t, "E0x102", string(l.err.Last.Code))
}
