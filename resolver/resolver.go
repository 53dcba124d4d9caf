// Package resolver performs a static, pre-evaluation walk over a resolved
// program: it checks scope legality (duplicate declarations, return/break
// placement) and builds the locals table the evaluator uses for fast
// identifier lookup.
package resolver

import (
	"lumen/ast"
	"lumen/errors"
)

// Locals maps an expression's stable identity to the number of enclosing
// scopes separating its use site from its defining scope.
type Locals map[int]int

// Resolver walks an AST once, populating a Locals table and raising
// positioned diagnostics for scope errors.
type Resolver struct {
	locals Locals
	scopes []map[string]bool
	inFunc bool
	inLoop bool
	err    *errors.Sink
}

// New builds a Resolver that reports through err.
func New(err *errors.Sink) *Resolver {
	return &Resolver{locals: Locals{}, err: err}
}

// Resolve walks stmts and returns the populated locals table.
func (r *Resolver) Resolve(stmts []ast.Stmt) Locals {
	r.resolveMany(stmts)
	return r.locals
}

func (r *Resolver) resolveMany(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		r.varDecl(s)
	case *ast.FuncDecl:
		r.funcDecl(s)
	case *ast.If:
		r.ifStmt(s)
	case *ast.While:
		r.whileStmt(s)
	case *ast.Loop:
		r.loopStmt(s)
	case *ast.Match:
		r.matchStmt(s)
	case *ast.Return:
		r.returnStmt(s)
	case *ast.Break:
		r.breakStmt()
	case *ast.Use:
		r.useStmt(s)
	case *ast.Enum:
		r.enumStmt(s)
	case *ast.Struct:
		r.structStmt(s)
	case *ast.Impl:
		r.implStmt(s)
	case *ast.Mod:
		// nothing to resolve: a bare module declaration introduces no name.
	case *ast.Block:
		r.scopeStart()
		r.resolveMany(s.Stmts)
		r.scopeEnd()
	case *ast.ExpressionStmt:
		r.expr(s.Expr)
	}
}

func (r *Resolver) varDecl(s *ast.VarDecl) {
	for _, name := range s.Names {
		r.declare(name)
		if s.Value != nil {
			r.expr(s.Value)
		}
		r.define(name)
	}
	for _, name := range s.PubNames {
		r.declare(name)
		r.define(name)
	}
}

func (r *Resolver) funcDecl(s *ast.FuncDecl) {
	enclFunc := r.inFunc
	r.inFunc = true
	r.scopeStart()
	for _, p := range s.Params {
		r.declare(p.Name)
		r.define(p.Name)
	}
	r.resolveMany(s.Body)
	r.scopeEnd()
	r.inFunc = enclFunc
}

func (r *Resolver) ifStmt(s *ast.If) {
	r.expr(s.Cond)
	r.scopeStart()
	r.resolveMany(s.Body)
	r.scopeEnd()
	for _, elif := range s.ElseIfBranches {
		r.expr(elif.Cond)
		r.scopeStart()
		r.resolveMany(elif.Body)
		r.scopeEnd()
	}
	if s.ElseBranch != nil {
		r.scopeStart()
		r.resolveMany(s.ElseBranch)
		r.scopeEnd()
	}
}

func (r *Resolver) whileStmt(s *ast.While) {
	enclLoop := r.inLoop
	r.expr(s.Cond)
	r.inLoop = true
	r.resolveMany(s.Body)
	r.inLoop = enclLoop
}

func (r *Resolver) loopStmt(s *ast.Loop) {
	r.scopeStart()
	enclLoop := r.inLoop
	r.inLoop = true
	r.resolveMany(s.Body)
	r.inLoop = enclLoop
	r.scopeEnd()
}

func (r *Resolver) matchStmt(s *ast.Match) {
	r.expr(s.Cond)
	for _, c := range s.Cases {
		r.scopeStart()
		r.expr(c.Case)
		r.resolveMany(c.Body)
		r.scopeEnd()
	}
	if len(s.Default) > 0 {
		r.scopeStart()
		r.resolveMany(s.Default)
		r.scopeEnd()
	}
}

func (r *Resolver) returnStmt(s *ast.Return) {
	if !r.inFunc {
		r.err.Throw(errors.E0x303, 0, 0, nil)
		return
	}
	if s.Expr != nil {
		r.expr(s.Expr)
	}
}

func (r *Resolver) breakStmt() {
	if !r.inLoop {
		r.err.Throw(errors.E0x302, 0, 0, nil)
	}
}

func (r *Resolver) useStmt(s *ast.Use) {
	for _, imp := range s.Imports {
		name := imp.Name
		if imp.Alias != nil {
			name = *imp.Alias
		}
		r.declare(name)
		r.define(name)
	}
}

func (r *Resolver) enumStmt(s *ast.Enum) {
	r.declare(s.Name)
	r.define(s.Name)
}

func (r *Resolver) structStmt(s *ast.Struct) {
	r.declare(s.Name)
	r.define(s.Name)
}

func (r *Resolver) implStmt(s *ast.Impl) {
	for _, m := range s.Methods {
		r.funcDecl(m)
	}
}

func (r *Resolver) expr(e ast.Expr) {
	switch x := e.(type) {
	case *ast.Object:
		for _, f := range x.Fields {
			r.expr(f.Value)
		}
	case *ast.Method:
		for _, a := range x.Args {
			r.expr(a)
		}
	case *ast.Assign:
		r.expr(x.Value)
	case *ast.Array:
		for _, item := range x.Items {
			r.expr(item)
		}
	case *ast.Var:
		r.varExpr(x)
	case *ast.Call:
		r.expr(x.Callee)
		for _, a := range x.Args {
			r.expr(a)
		}
		if callee, ok := x.Callee.(*ast.Var); ok {
			r.resolveLocal(callee.Name, x.Id())
		}
	case *ast.Func:
		r.callback(x)
	case *ast.Await:
		r.expr(x.Expr)
	case *ast.Unary:
		r.expr(x.Right)
	case *ast.Binary:
		r.expr(x.Left)
		r.expr(x.Right)
	case *ast.Grouping:
		r.expr(x.Expr)
	case *ast.Value:
		// literal, nothing to resolve
	}
}

// callback resolves a lambda expression's body, matching funcDecl's shape
// for named functions.
func (r *Resolver) callback(fn *ast.Func) {
	enclFunc := r.inFunc
	r.inFunc = true
	r.scopeStart()
	for _, p := range fn.Params {
		r.declare(p.Name)
		r.define(p.Name)
	}
	r.resolveMany(fn.Body)
	r.scopeEnd()
	r.inFunc = enclFunc
}

// varExpr checks a bare Var reference for "declared but not yet defined" in
// its own scope. A Var used as a Call callee is additionally given a
// locals-table entry by the Call case in expr; a bare value read is not
// (see DESIGN.md's Open Question on resolver fidelity).
func (r *Resolver) varExpr(v *ast.Var) {
	if len(r.scopes) == 0 {
		return
	}
	if defined, ok := r.scopes[len(r.scopes)-1][v.Name.Lexeme]; ok && !defined {
		r.err.Throw(errors.E0x306, v.Name.Line, v.Name.Pos, []string{"a local variable"})
	}
}

func (r *Resolver) declare(name ast.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.err.Throw(errors.E0x307, name.Line, name.Pos, []string{name.Lexeme})
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name ast.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(name ast.Token, id int) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[id] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) scopeStart() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) scopeEnd() {
	if len(r.scopes) == 0 {
		r.err.Throw(errors.E0x308, 0, 0, nil)
		return
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}
