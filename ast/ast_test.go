package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"lumen/token"
)

func TestExpressionsGetDistinctStableIds(t *testing.T) {
	a := NewVar(token.Token{Lexeme: "a"})
	b := NewVar(token.Token{Lexeme: "b"})

	assert.NotEqual(t, a.Id(), b.Id())
	// Stable: calling Id() repeatedly returns the same value.
	assert.Equal(t, a.Id(), a.Id())
}

func TestBinaryExprCarriesOperandsAndOperator(t *testing.T) {
	left := NewValue(token.Token{Kind: token.NUMBER, Lexeme: "1"})
	right := NewValue(token.Token{Kind: token.NUMBER, Lexeme: "2"})
	bin := NewBinary(left, token.Token{Kind: token.PLUS, Lexeme: "+"}, right)

	assert.Equal(t, left, bin.Left)
	assert.Equal(t, right, bin.Right)
	assert.Equal(t, token.PLUS, bin.Op.Kind)
}

func TestArrayLiteralRetainsParsedItems(t *testing.T) {
	item := NewValue(token.Token{Kind: token.NUMBER, Lexeme: "1"})
	arr := NewArray([]Expr{item})

	assert.Len(t, arr.Items, 1)
}
