// Package lumen wires the lexer, parser, resolver, and evaluator into a
// single entry point for running a program end to end. This file is the
// glue that assembles the pipeline for the CLI.
package lumen

import (
	"io"

	"lumen/ast"
	"lumen/errors"
	"lumen/evaluator"
	"lumen/object"
	"lumen/parser"
	"lumen/resolver"
	"lumen/stdlib"
)

// Run parses and executes src, writing any stdlib output to w. A fatal
// diagnostic terminates the process via os.Exit — there is no local
// recovery.
func Run(src string, w io.Writer) *errors.Sink {
	sink := errors.New(src)
	RunWithSink(src, w, sink)
	return sink
}

// RunWithSink runs src against a caller-supplied sink, so callers that need
// to observe a diagnostic without terminating (tests, the REPL) can
// override sink.Exit first.
func RunWithSink(src string, w io.Writer, sink *errors.Sink) {
	stmts := Parse(src, sink)
	locals := resolver.New(sink).Resolve(stmts)
	RunStmts(stmts, locals, w, sink)
}

// RunStmts executes an already-resolved statement list, for callers (the
// CLI's run command) that need to observe the intermediate parse tree and
// locals table rather than re-deriving them.
func RunStmts(stmts []ast.Stmt, locals resolver.Locals, w io.Writer, sink *errors.Sink) {
	env := object.New()
	stdlib.LoadWith(env, w)
	interp := evaluator.NewWithEnv(env, locals, sink)
	interp.Interpret(stmts)
}

// Parse runs only the lexer and parser, returning the resulting AST.
func Parse(src string, sink *errors.Sink) []ast.Stmt {
	p := parser.New(src, 1, sink)
	return p.ParseProgram()
}

// Resolve runs only the resolver over stmts that have already been parsed,
// returning the locals table.
func Resolve(stmts []ast.Stmt, sink *errors.Sink) resolver.Locals {
	return resolver.New(sink).Resolve(stmts)
}
