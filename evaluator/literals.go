package evaluator

import (
	"lumen/errors"
	"lumen/object"
	"lumen/token"
)

// tokenToValue converts a literal-bearing token into its runtime value.
func tokenToValue(tok token.Token, err *errors.Sink) object.Value {
	switch tok.Kind {
	case token.NUMBER:
		if tok.Literal == nil || tok.Literal.Number == nil {
			err.Throw(errors.E0x408, tok.Line, tok.Pos, []string{"number"})
			return object.Null{}
		}
		return object.Number(tok.Literal.Number.Value)
	case token.STRING:
		if tok.Literal == nil || tok.Literal.String == nil {
			err.Throw(errors.E0x408, tok.Line, tok.Pos, []string{"string"})
			return object.Null{}
		}
		return object.String(*tok.Literal.String)
	case token.CHAR:
		if tok.Literal == nil || tok.Literal.Char == nil {
			err.Throw(errors.E0x408, tok.Line, tok.Pos, []string{"char"})
			return object.Null{}
		}
		return object.Char(*tok.Literal.Char)
	case token.TRUE, token.FALSE:
		if tok.Literal == nil || tok.Literal.Bool == nil {
			err.Throw(errors.E0x408, tok.Line, tok.Pos, []string{"boolean"})
			return object.Null{}
		}
		return object.Bool(*tok.Literal.Bool)
	case token.NULL:
		return object.Null{}
	default:
		err.Throw(errors.E0x407, tok.Line, tok.Pos, nil)
		return object.Null{}
	}
}
