// Package repl implements the Lumen read-eval-print loop: it connects a
// terminal to the lex->parse->resolve->evaluate pipeline and keeps a
// persistent environment and locals table across input lines.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"lumen/ast"
	"lumen/errors"
	"lumen/evaluator"
	"lumen/lexer"
	"lumen/object"
	"lumen/parser"
	"lumen/resolver"
	"lumen/stdlib"
)

const prompt = "lumen> "

const logo = `
  _
 | |   _  _ _ __  ___ _ _
 | |__| || | '  \/ -_) ' \
 |____|\_,_|_|_|_\___|_||_|

 Lumen language REPL
`

var (
	cyan   = color.New(color.FgCyan)
	yellow = color.New(color.FgYellow)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed, color.Bold)
	gray   = color.New(color.FgHiBlack)
	purple = color.New(color.FgMagenta)
)

// session holds the state that must survive across REPL lines: the
// evaluation environment, the cumulative locals table, and a session id
// used to correlate trace output.
type session struct {
	id     uuid.UUID
	env    *object.Environment
	locals resolver.Locals
	sink   *errors.Sink
	debug  bool
}

func newSession(out io.Writer) *session {
	env := object.New()
	stdlib.LoadWith(env, out)
	return &session{id: uuid.New(), env: env, locals: resolver.Locals{}}
}

// Start launches the REPL: it reads lines from in, evaluates them against
// a persistent session, and writes results and diagnostics to out.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	sess := newSession(out)

	fmt.Fprint(out, logo)
	printHelp(out)
	gray.Fprintf(out, "session %s\n\n", sess.id)

	for {
		cyan.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if handleCommand(out, sess, line) {
				return
			}
			continue
		}

		evalLine(out, sess, line)
	}
}

func handleCommand(out io.Writer, sess *session, line string) (exit bool) {
	switch line {
	case ".exit":
		yellow.Fprintln(out, "goodbye")
		return true
	case ".clear":
		*sess = *newSession(out)
		green.Fprintln(out, "session reset")
	case ".debug":
		sess.debug = !sess.debug
		status := "disabled"
		if sess.debug {
			status = "enabled"
		}
		gray.Fprintf(out, "debug mode %s\n", status)
	case ".help":
		printHelp(out)
	default:
		red.Fprintf(out, "unknown command: %s (try .help)\n", line)
	}
	return false
}

func printHelp(out io.Writer) {
	gray.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  .exit   quit the REPL")
	fmt.Fprintln(out, "  .clear  reset the session")
	fmt.Fprintln(out, "  .debug  toggle token/AST tracing")
	fmt.Fprintln(out, "  .help   show this message")
	fmt.Fprintln(out)
}

// evalLine runs one line of input through the full pipeline. A thrown
// diagnostic is reported without killing the REPL process, since sess.sink
// overrides Exit to a no-op for the duration of the call.
func evalLine(out io.Writer, sess *session, line string) {
	sink := errors.New(line)
	sink.Exit = func(int) {}
	sess.sink = sink

	if sess.debug {
		printTokens(out, line)
	}

	p := parser.New(line, 1, sink)
	stmts := p.ParseProgram()
	if sink.Last != nil {
		reportDiagnostic(out, sink)
		return
	}

	locals := resolver.New(sink).Resolve(stmts)
	for id, depth := range locals {
		sess.locals[id] = depth
	}
	if sink.Last != nil {
		reportDiagnostic(out, sink)
		return
	}

	if sess.debug {
		printAST(out, stmts)
	}

	interp := evaluator.NewWithEnv(sess.env, sess.locals, sink)

	if val, ok := evalBareExpression(interp, stmts); ok {
		if sink.Last != nil {
			reportDiagnostic(out, sink)
			return
		}
		printValue(out, val)
		return
	}

	interp.Interpret(stmts)
	if sink.Last != nil {
		reportDiagnostic(out, sink)
	}
}

// evalBareExpression special-cases a single bare expression statement so the
// REPL can print its value, mirroring how a REPL conventionally echoes the
// last expression's result.
func evalBareExpression(interp *evaluator.Interpreter, stmts []ast.Stmt) (object.Value, bool) {
	if len(stmts) != 1 {
		return nil, false
	}
	es, ok := stmts[0].(*ast.ExpressionStmt)
	if !ok {
		return nil, false
	}
	return interp.Eval(es.Expr), true
}

func reportDiagnostic(out io.Writer, sink *errors.Sink) {
	red.Fprintf(out, "error: %s\n", sink.Last.Error())
}

func printValue(out io.Writer, v object.Value) {
	switch val := v.(type) {
	case object.Number:
		yellow.Fprintln(out, val.String())
	case object.Bool:
		c := green
		if !bool(val) {
			c = red
		}
		c.Fprintln(out, val.String())
	case object.String, object.Char:
		green.Fprintln(out, v.String())
	case object.Func, object.DeclrFunc:
		purple.Fprintln(out, v.String())
	case object.Null, object.Void:
		// no visible result for a statement with no produced value.
	default:
		fmt.Fprintln(out, v.String())
	}
}

func printTokens(out io.Writer, line string) {
	gray.Fprintln(out, "-- tokens --")
	for _, tok := range lexer.New(line, 1).Tokenize() {
		fmt.Fprintf(out, "  %-14s %q\n", tok.Kind, tok.Lexeme)
	}
}

func printAST(out io.Writer, stmts []ast.Stmt) {
	gray.Fprintf(out, "-- ast: %d statement(s) --\n", len(stmts))
}
