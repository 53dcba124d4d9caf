package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lumen/ast"
	"lumen/errors"
	"lumen/token"
)

func newTestErr() *errors.Sink {
	s := errors.New("")
	s.Exit = func(int) {}
	return s
}

func ident(name string) token.Token {
	return token.Token{Kind: token.IDENT, Lexeme: name}
}

func TestReturnAtTopLevelThrowsE0x303(t *testing.T) {
	err := newTestErr()
	r := New(err)
	r.Resolve([]ast.Stmt{&ast.Return{Expr: nil}})
	assert.NotNil(t, err.Last)
	assert.Equal(t, "E0x303", string(err.Last.Code))
}

func TestBreakAtTopLevelThrowsE0x302(t *testing.T) {
	err := newTestErr()
	r := New(err)
	r.Resolve([]ast.Stmt{&ast.Break{}})
	assert.NotNil(t, err.Last)
	assert.Equal(t, "E0x302", string(err.Last.Code))
}

func TestShadowedInnerDeclarationDoesNotErrorAndResolvesAtDepthZero(t *testing.T) {
	err := newTestErr()
	r := New(err)
	outer := &ast.VarDecl{Names: []token.Token{ident("x")}, Value: ast.NewValue(token.Token{Kind: token.NUMBER})}
	innerDecl := &ast.VarDecl{Names: []token.Token{ident("x")}, Value: ast.NewValue(token.Token{Kind: token.NUMBER})}
	call := ast.NewCall(ast.NewVar(ident("x")), nil)
	inner := &ast.Block{Stmts: []ast.Stmt{innerDecl, &ast.ExpressionStmt{Expr: call}}}
	locals := r.Resolve([]ast.Stmt{outer, inner})
	assert.Nil(t, err.Last)
	assert.Equal(t, 0, locals[call.Id()])
}

func TestDuplicateDeclarationInSameScopeThrowsE0x307(t *testing.T) {
	err := newTestErr()
	r := New(err)
	block := &ast.Block{Stmts: []ast.Stmt{
		&ast.VarDecl{Names: []token.Token{ident("x")}},
		&ast.VarDecl{Names: []token.Token{ident("x")}},
	}}
	r.Resolve([]ast.Stmt{block})
	assert.NotNil(t, err.Last)
	assert.Equal(t, "E0x307", string(err.Last.Code))
}

func TestCallOnDeclaredFunctionPopulatesLocalsTable(t *testing.T) {
	err := newTestErr()
	r := New(err)
	fnDecl := &ast.VarDecl{Names: []token.Token{ident("f")}}
	call := ast.NewCall(ast.NewVar(ident("f")), nil)
	block := &ast.Block{Stmts: []ast.Stmt{
		fnDecl,
		&ast.ExpressionStmt{Expr: call},
	}}
	locals := r.Resolve([]ast.Stmt{block})
	assert.Nil(t, err.Last)
	_, ok := locals[call.Id()]
	assert.True(t, ok)
}

func TestFuncDeclResolvesParamsAndBodyInFunctionScope(t *testing.T) {
	err := newTestErr()
	r := New(err)
	fn := &ast.FuncDecl{
		Name:   ident("add"),
		Params: []ast.Param{{Name: ident("a")}, {Name: ident("b")}},
		Body: []ast.Stmt{
			&ast.Return{Expr: ast.NewBinary(ast.NewVar(ident("a")), token.Token{Kind: token.PLUS}, ast.NewVar(ident("b")))},
		},
	}
	r.Resolve([]ast.Stmt{fn})
	assert.Nil(t, err.Last)
}
