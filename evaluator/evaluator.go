// Package evaluator executes a resolved AST against an Environment,
// producing effects through host-registered functions.
package evaluator

import (
	"fmt"

	"lumen/ast"
	"lumen/errors"
	"lumen/object"
	"lumen/resolver"
	"lumen/stdlib"
)

// Interpreter walks a statement list and evaluates its expressions.
type Interpreter struct {
	Env    *object.Environment
	Locals resolver.Locals
	// IsMod suppresses imperative execution: blocks, ifs, whiles, and loops
	// are skipped, and variable initialisers run only for public bindings.
	// Used when loading a module, where only its public surface matters.
	IsMod bool

	// Trace, when set, is called at each statement and function-call
	// boundary the interpreter crosses; it is nil, and free, otherwise. The
	// CLI's `run --trace` logs pipeline stages and leaves this nil.
	Trace func(event, name string)

	err     *errors.Sink
	signals signals
}

func (i *Interpreter) trace(event, name string) {
	if i.Trace != nil {
		i.Trace(event, name)
	}
}

// New builds a root Interpreter with a fresh environment seeded with the
// standard-library bridge.
func New(err *errors.Sink) *Interpreter {
	env := object.New()
	stdlib.Load(env)
	return &Interpreter{Env: env, Locals: resolver.Locals{}, err: err}
}

// NewWithEnv builds an Interpreter over a caller-provided environment, used
// for function bodies and module evaluation.
func NewWithEnv(env *object.Environment, locals resolver.Locals, err *errors.Sink) *Interpreter {
	if locals == nil {
		locals = resolver.Locals{}
	}
	return &Interpreter{Env: env, Locals: locals, err: err}
}

// Interpret executes stmts in order against i.Env.
func (i *Interpreter) Interpret(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		i.execute(stmt)
		if _, done := i.signals.takeReturn(); done {
			return
		}
		if i.signals.brk {
			return
		}
	}
}

func (i *Interpreter) execute(stmt ast.Stmt) {
	i.trace("statement", fmt.Sprintf("%T", stmt))
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		i.Eval(s.Expr)
	case *ast.Block:
		i.execBlock(s)
	case *ast.VarDecl:
		i.execVarDecl(s)
	case *ast.FuncDecl:
		i.execFuncDecl(s)
	case *ast.If:
		i.execIf(s)
	case *ast.Return:
		i.execReturn(s)
	case *ast.While:
		i.execWhile(s)
	case *ast.Loop:
		i.execLoop(s)
	case *ast.Break:
		i.signals.setBreak()
	case *ast.Match, *ast.Mod, *ast.Use, *ast.Struct, *ast.Impl, *ast.Enum:
		i.unimplemented(s)
	}
}

// unimplemented surfaces a diagnostic for constructs the core parses but
// does not evaluate, rather than silently doing nothing.
func (i *Interpreter) unimplemented(stmt ast.Stmt) {
	name := "construct"
	switch stmt.(type) {
	case *ast.Match:
		name = "match"
	case *ast.Mod:
		name = "mod"
	case *ast.Use:
		name = "use"
	case *ast.Struct:
		name = "struct"
	case *ast.Impl:
		name = "impl"
	case *ast.Enum:
		name = "enum"
	}
	i.err.Throw(errors.E0x403, 0, 0, []string{"unimplemented construct: " + name})
}

func (i *Interpreter) execBlock(b *ast.Block) {
	if i.IsMod {
		return
	}
	prev := i.Env
	i.Env = prev.Enclose()
	i.Interpret(b.Stmts)
	i.Env = prev
}

func (i *Interpreter) execVarDecl(s *ast.VarDecl) {
	if s.Value == nil {
		if s.IsPub {
			i.err.Throw(errors.E0x402, 0, 0, nil)
		}
		for _, name := range s.Names {
			i.Env.Define(name.Lexeme, object.Null{})
		}
		return
	}

	if i.IsMod {
		if s.IsPub {
			val := i.Eval(s.Value)
			for _, name := range s.PubNames {
				i.Env.DefinePub(name.Lexeme, val)
			}
		}
		return
	}

	if s.IsFunc {
		if len(s.Names) != 1 {
			i.err.Throw(errors.E0x401, 0, 0, nil)
			return
		}
		fn, ok := s.Value.(*ast.Func)
		if !ok {
			i.err.Throw(errors.E0x404, 0, 0, nil)
			return
		}
		val := object.Func{Name: s.Names[0].Lexeme, Params: fn.Params, ReturnType: fn.ReturnType, Body: fn.Body, Env: i.Env}
		i.Env.Define(s.Names[0].Lexeme, val)
		return
	}

	val := i.Eval(s.Value)
	for _, name := range s.Names {
		i.Env.Define(name.Lexeme, val)
	}
	if s.IsPub {
		for _, name := range s.PubNames {
			i.Env.DefinePub(name.Lexeme, val)
		}
	}
}

func (i *Interpreter) execFuncDecl(s *ast.FuncDecl) {
	fn := object.Func{Name: s.Name.Lexeme, Params: s.Params, ReturnType: s.ReturnType, Body: s.Body, Env: i.Env}
	if s.IsPub {
		i.Env.DefinePub(s.Name.Lexeme, fn)
		return
	}
	if !i.IsMod {
		i.Env.Define(s.Name.Lexeme, fn)
	}
}

func (i *Interpreter) execIf(s *ast.If) {
	if i.IsMod {
		return
	}
	if i.Eval(s.Cond).Truthy() {
		i.Interpret(s.Body)
		return
	}
	for _, elif := range s.ElseIfBranches {
		if i.Eval(elif.Cond).Truthy() {
			i.Interpret(elif.Body)
			return
		}
	}
	if s.ElseBranch != nil {
		i.Interpret(s.ElseBranch)
	}
}

func (i *Interpreter) execReturn(s *ast.Return) {
	var val object.Value = object.Null{}
	if s.Expr != nil {
		val = i.Eval(s.Expr)
	}
	i.signals.setReturn(val)
}

func (i *Interpreter) execWhile(s *ast.While) {
	if i.IsMod {
		return
	}
	for i.Eval(s.Cond).Truthy() {
		i.Interpret(s.Body)
		if _, done := i.signals.takeReturn(); done {
			return
		}
		if i.signals.takeBreak() {
			return
		}
	}
}

func (i *Interpreter) execLoop(s *ast.Loop) {
	if i.IsMod {
		return
	}
	run := func() bool {
		i.Interpret(s.Body)
		if _, done := i.signals.takeReturn(); done {
			return true
		}
		return i.signals.takeBreak()
	}
	if s.Count == nil {
		for {
			if run() {
				return
			}
		}
	}
	for n := 0; n < *s.Count; n++ {
		if run() {
			return
		}
	}
}

// Eval evaluates a single expression and returns its runtime value.
func (i *Interpreter) Eval(e ast.Expr) object.Value {
	switch x := e.(type) {
	case *ast.Value:
		return tokenToValue(x.Token, i.err)
	case *ast.Var:
		return i.evalVar(x)
	case *ast.Unary:
		return i.evalUnary(x)
	case *ast.Binary:
		return i.evalBinary(x)
	case *ast.Grouping:
		return i.Eval(x.Expr)
	case *ast.Assign:
		val := i.Eval(x.Value)
		if !i.Env.Assign(x.Name.Lexeme, val) {
			i.err.Throw(errors.E0x306, x.Name.Line, x.Name.Pos, []string{"a declared variable"})
		}
		return val
	case *ast.Call:
		return i.evalCall(x)
	case *ast.Method:
		return i.evalMethod(x)
	case *ast.Array:
		// array literals always evaluate empty: array construction isn't
		// implemented yet, so this is a placeholder until it is.
		return object.Array{}
	case *ast.Object:
		for _, f := range x.Fields {
			i.Eval(f.Value)
		}
		return object.Null{}
	case *ast.Func:
		return object.Func{Params: x.Params, ReturnType: x.ReturnType, Body: x.Body, Env: i.Env}
	case *ast.Await:
		return i.Eval(x.Expr)
	}
	return object.Null{}
}

func (i *Interpreter) evalVar(v *ast.Var) object.Value {
	if depth, ok := i.Locals[v.Id()]; ok {
		if val, ok := i.Env.GetAt(depth, v.Name.Lexeme); ok {
			return val
		}
	}
	if val, ok := i.Env.Get(v.Name.Lexeme); ok {
		return val
	}
	i.err.Throw(errors.E0x306, v.Name.Line, v.Name.Pos, []string{"a declared name"})
	return object.Null{}
}

func (i *Interpreter) evalUnary(u *ast.Unary) object.Value {
	right := i.Eval(u.Right)
	switch u.Op.Lexeme {
	case "!":
		return object.Bool(!right.Truthy())
	case "-":
		if n, ok := right.(object.Number); ok {
			return -n
		}
		i.err.Throw(errors.E0x301, u.Op.Line, u.Op.Pos, []string{"number", right.TypeName()})
	}
	return object.Null{}
}

func (i *Interpreter) evalMethod(m *ast.Method) object.Value {
	for _, a := range m.Args {
		i.Eval(a)
	}
	i.err.Throw(errors.E0x403, m.Name.Line, m.Name.Pos, []string{"unimplemented construct: method call"})
	return object.Null{}
}

func (i *Interpreter) evalCall(c *ast.Call) object.Value {
	fn := i.Eval(c.Callee)
	i.trace("call", fn.String())
	return CallFunction(fn, c.Args, i.Env, i.Locals, i.err)
}

// CallFunction invokes a function value with argument expressions evaluated
// in callEnv. This is the shared call path for both user-defined functions
// and host-registered builtins.
func CallFunction(fn object.Value, args []ast.Expr, callEnv *object.Environment, locals resolver.Locals, err *errors.Sink) object.Value {
	switch f := fn.(type) {
	case object.DeclrFunc:
		return callDeclrFunc(f, args, callEnv, locals, err)
	case object.Func:
		return callUserFunc(f, args, callEnv, locals, err)
	default:
		err.Throw(errors.E0x404, 0, 0, []string{"not a function"})
		return object.Null{}
	}
}

func callDeclrFunc(f object.DeclrFunc, args []ast.Expr, callEnv *object.Environment, locals resolver.Locals, err *errors.Sink) object.Value {
	if f.Arity >= 0 && len(args) != f.Arity {
		err.Throw(errors.E0x405, 0, 0, nil)
	}
	caller := NewWithEnv(callEnv, locals, err)
	argVals := make([]object.Value, len(args))
	for idx, a := range args {
		argVals[idx] = caller.Eval(a)
	}
	return f.Call(argVals)
}

func callUserFunc(f object.Func, args []ast.Expr, callEnv *object.Environment, locals resolver.Locals, err *errors.Sink) object.Value {
	if len(args) != len(f.Params) {
		err.Throw(errors.E0x405, 0, 0, nil)
	}
	caller := NewWithEnv(callEnv, locals, err)
	argVals := make([]object.Value, len(args))
	for idx, a := range args {
		argVals[idx] = caller.Eval(a)
	}

	funcEnv := f.Env.Enclose()
	for idx, val := range argVals {
		if idx >= len(f.Params) {
			break
		}
		param := f.Params[idx]
		if !object.TypeCheck(param.Type.Lexeme, val) {
			err.Throw(errors.E0x301, param.Name.Line, param.Name.Pos, []string{param.Type.Lexeme, val.TypeName()})
		}
		funcEnv.Define(param.Name.Lexeme, val)
	}

	body := NewWithEnv(funcEnv, locals, err)
	for _, stmt := range f.Body {
		body.execute(stmt)
		if val, done := body.signals.takeReturn(); done {
			if !object.TypeCheck(f.ReturnType.Lexeme, val) {
				err.Throw(errors.E0x301, f.ReturnType.Line, f.ReturnType.Pos, []string{f.ReturnType.Lexeme, val.TypeName()})
			}
			return val
		}
	}

	if f.ReturnType.Lexeme != "" && f.ReturnType.Lexeme != "void" {
		err.Throw(errors.E0x406, 0, 0, nil)
	}
	return object.Null{}
}
