// Package object defines Lumen's runtime value representation and the
// lexically-scoped Environment values are bound in.
package object

import (
	"fmt"
	"strings"

	"lumen/ast"
)

// Value is any runtime value. Every value knows its textual type name and a
// truthiness predicate.
type Value interface {
	TypeName() string
	Truthy() bool
	String() string
}

// Number is a double-precision numeric value.
type Number float64

func (Number) TypeName() string { return "number" }
func (n Number) Truthy() bool   { return n != 0 }
func (n Number) String() string { return trimFloat(float64(n)) }

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

// String is a text value.
type String string

func (String) TypeName() string  { return "string" }
func (s String) Truthy() bool    { return s != "" }
func (s String) String() string { return string(s) }

// Char is a single decoded code point.
type Char rune

func (Char) TypeName() string  { return "char" }
func (c Char) Truthy() bool    { return c != 0 }
func (c Char) String() string { return string(rune(c)) }

// Bool is a boolean value.
type Bool bool

func (Bool) TypeName() string  { return "bool" }
func (b Bool) Truthy() bool    { return bool(b) }
func (b Bool) String() string { return fmt.Sprintf("%t", bool(b)) }

// Null represents the absence of a value.
type Null struct{}

func (Null) TypeName() string { return "null" }
func (Null) Truthy() bool     { return false }
func (Null) String() string   { return "null" }

// Void is the value produced by a function declared to return void.
type Void struct{}

func (Void) TypeName() string { return "void" }
func (Void) Truthy() bool     { return false }
func (Void) String() string   { return "void" }

// Any wraps a value whose declared type was "any". It is always falsy,
// regardless of the wrapped value, and defers to it only for its string
// rendering.
type Any struct{ Inner Value }

func (Any) TypeName() string { return "any" }
func (Any) Truthy() bool     { return false }
func (a Any) String() string {
	if a.Inner == nil {
		return "any"
	}
	return a.Inner.String()
}

// Array is an ordered sequence of values. Array construction isn't
// implemented yet, so a literal always evaluates to an empty Array
// regardless of source.
type Array []Value

func (Array) TypeName() string { return "array" }
func (a Array) Truthy() bool   { return len(a) > 0 }
func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Func is a user-defined function value: its declaration plus the
// environment it closed over at definition time.
type Func struct {
	Name       string
	Params     []ast.Param
	ReturnType ast.Token
	Body       []ast.Stmt
	Env        *Environment
}

func (Func) TypeName() string { return "function" }
func (Func) Truthy() bool     { return false }
func (f Func) String() string { return f.Name + "()" }

// Signature records a host-registered function's declared shape: its
// parameter list and declaration flags.
type Signature struct {
	Params []ast.Param
	Async  bool
	Pub    bool
	Impl   bool
	Mut    bool
}

// HostFunc is the callable a host registers for a DeclrFunc.
type HostFunc func(args []Value) Value

// DeclrFunc is a host-provided callable exposed as a language-level value.
type DeclrFunc struct {
	Name  string
	Arity int
	Call  HostFunc
	Sig   Signature
}

func (DeclrFunc) TypeName() string { return "declared function" }
func (DeclrFunc) Truthy() bool     { return false }
func (d DeclrFunc) String() string { return d.Name + "()" }
