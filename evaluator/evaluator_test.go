package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lumen/ast"
	"lumen/errors"
	"lumen/object"
	"lumen/token"
)

func newTestErr() *errors.Sink {
	s := errors.New("")
	s.Exit = func(int) {}
	return s
}

func numTok(v float64) token.Token {
	return token.Token{Kind: token.NUMBER, Literal: &token.Literal{Number: &token.NumberLit{Base: 10, Value: v}}}
}

func strTok(s string) token.Token {
	return token.Token{Kind: token.STRING, Literal: &token.Literal{String: &s}}
}

func ident(name string) token.Token {
	return token.Token{Kind: token.IDENT, Lexeme: name}
}

func typeTok(lexeme string, kind token.Type) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme}
}

func TestTruthiness(t *testing.T) {
	assert.False(t, object.Number(0).Truthy())
	assert.True(t, object.Number(1).Truthy())
	assert.False(t, object.String("").Truthy())
	assert.True(t, object.String("a").Truthy())
	assert.False(t, object.Null{}.Truthy())
	assert.False(t, object.Array{}.Truthy())
	assert.True(t, object.Array{object.Number(0)}.Truthy())
}

func TestArityMismatchThrowsE0x405(t *testing.T) {
	err := newTestErr()
	interp := NewWithEnv(object.New(), nil, err)
	fn := object.Func{
		Name:       "f",
		Params:     []ast.Param{{Name: ident("a"), Type: typeTok("number", token.NUMBER_TYPE)}},
		ReturnType: typeTok("void", token.VOID_TYPE),
	}
	args := []ast.Expr{ast.NewValue(numTok(1)), ast.NewValue(numTok(2))}
	CallFunction(fn, args, interp.Env, nil, err)
	assert.NotNil(t, err.Last)
	assert.Equal(t, "E0x405", string(err.Last.Code))
}

func TestWrongReturnTypeThrowsE0x301(t *testing.T) {
	err := newTestErr()
	env := object.New()
	fn := object.Func{
		Name:       "f",
		ReturnType: typeTok("number", token.NUMBER_TYPE),
		Body:       []ast.Stmt{&ast.Return{Expr: ast.NewValue(strTok("oops"))}},
		Env:        env,
	}
	CallFunction(fn, nil, env, nil, err)
	assert.NotNil(t, err.Last)
	assert.Equal(t, "E0x301", string(err.Last.Code))
}

func TestMissingReturnThrowsE0x406(t *testing.T) {
	err := newTestErr()
	env := object.New()
	fn := object.Func{
		Name:       "f",
		ReturnType: typeTok("number", token.NUMBER_TYPE),
		Body:       []ast.Stmt{&ast.ExpressionStmt{Expr: ast.NewValue(numTok(1))}},
		Env:        env,
	}
	CallFunction(fn, nil, env, nil, err)
	assert.NotNil(t, err.Last)
	assert.Equal(t, "E0x406", string(err.Last.Code))
}

func TestClosureCapturesLiveEnvironment(t *testing.T) {
	err := newTestErr()
	env := object.New()
	interp := NewWithEnv(env, nil, err)

	env.Define("x", object.Number(1))
	fn := object.Func{
		Name:       "f",
		ReturnType: typeTok("any", token.ANY_TYPE),
		Body:       []ast.Stmt{&ast.Return{Expr: ast.NewVar(ident("x"))}},
		Env:        env,
	}
	env.Assign("x", object.Number(2))

	result := CallFunction(fn, nil, interp.Env, nil, err)
	assert.Nil(t, err.Last)
	assert.Equal(t, object.Number(2), result)
}

func TestIfElseExecutesFalseBranch(t *testing.T) {
	err := newTestErr()
	interp := New(err)
	var output object.Value
	interp.Env.Define("record", object.DeclrFunc{
		Name: "record", Arity: 1,
		Call: func(args []object.Value) object.Value {
			output = args[0]
			return object.Void{}
		},
	})

	ifStmt := &ast.If{
		Cond: ast.NewValue(numTok(0)),
		Body: []ast.Stmt{&ast.ExpressionStmt{Expr: ast.NewCall(ast.NewVar(ident("record")), []ast.Expr{ast.NewValue(strTok("a"))})}},
		ElseBranch: []ast.Stmt{
			&ast.ExpressionStmt{Expr: ast.NewCall(ast.NewVar(ident("record")), []ast.Expr{ast.NewValue(strTok("b"))})},
		},
	}
	interp.Interpret([]ast.Stmt{ifStmt})
	assert.Equal(t, object.String("b"), output)
}
