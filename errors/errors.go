// Package errors implements the core's positioned, fatal diagnostic sink.
//
// Every lex, resolve, and evaluate failure funnels through Sink.Throw, which
// renders a single diagnostic line — error code, source line/position, and
// any argument strings — and terminates the process. There is no local
// recovery and no exception mechanism at the language level.
package errors

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Code is a stable diagnostic identifier.
type Code string

const (
	// Lex-family codes, under the same E0xNNN scheme as the resolver and
	// evaluator codes below.
	E0x101 Code = "E0x101" // unterminated block comment
	E0x102 Code = "E0x102" // unterminated string literal
	E0x103 Code = "E0x103" // invalid escape sequence
	E0x104 Code = "E0x104" // unterminated char literal
	E0x105 Code = "E0x105" // char literal must contain exactly one code point
	E0x106 Code = "E0x106" // unrecognised character

	E0x301 Code = "E0x301" // type mismatch
	E0x302 Code = "E0x302" // break outside loop
	E0x303 Code = "E0x303" // return outside function
	E0x305 Code = "E0x305" // malformed function body
	E0x306 Code = "E0x306" // name/expression expected
	E0x307 Code = "E0x307" // duplicate declaration
	E0x308 Code = "E0x308" // unbalanced scope
	E0x401 Code = "E0x401" // multi-binding for function
	E0x402 Code = "E0x402" // public without initialiser
	E0x403 Code = "E0x403" // malformed body
	E0x404 Code = "E0x404" // not a function statement
	E0x405 Code = "E0x405" // arity mismatch
	E0x406 Code = "E0x406" // missing return
	E0x407 Code = "E0x407" // bad token for literal
	E0x408 Code = "E0x408" // literal payload mismatch
)

var messages = map[Code]string{
	E0x101: "unterminated block comment",
	E0x102: "unterminated string literal",
	E0x103: "invalid escape sequence",
	E0x104: "unterminated char literal",
	E0x105: "a char literal must contain exactly one code point",
	E0x106: "unrecognised character",
	E0x301: "type mismatch",
	E0x302: "'break' outside of a loop",
	E0x303: "'return' outside of a function",
	E0x305: "malformed function body",
	E0x306: "expected %s",
	E0x307: "'%s' is already declared in this scope",
	E0x308: "unbalanced scope",
	E0x401: "a function-shaped declaration must bind exactly one name",
	E0x402: "a public declaration requires an initialiser",
	E0x403: "malformed statement body",
	E0x404: "not a function declaration",
	E0x405: "wrong number of arguments",
	E0x406: "missing return",
	E0x407: "token cannot be converted to a literal value",
	E0x408: "literal payload does not match the expected %s",
}

// Diagnostic is a single positioned, fatal error.
type Diagnostic struct {
	Code Code
	Line int
	Pos  int
	Args []string
}

func (d Diagnostic) Error() string {
	msg := messages[d.Code]
	if msg == "" {
		msg = string(d.Code)
	}
	args := make([]any, len(d.Args))
	for i, a := range d.Args {
		args[i] = a
	}
	if countVerbs(msg) == len(args) {
		msg = fmt.Sprintf(msg, args...)
	} else if len(args) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, joinArgs(d.Args))
	}
	return fmt.Sprintf("[%s] line %d:%d: %s", d.Code, d.Line, d.Pos, msg)
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out
}

func countVerbs(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+1 < len(s) && s[i+1] != '%' {
			n++
		}
	}
	return n
}

// Sink receives positioned diagnostics and terminates the process. Source
// is kept for future source-line pointer rendering.
type Sink struct {
	Source string
	// Exit is called after the diagnostic is printed; overridable in tests
	// so a thrown diagnostic can be observed instead of killing the test
	// process.
	Exit func(code int)
	// Last records the most recently thrown diagnostic. Populated before
	// Exit is called, so an Exit override that doesn't actually terminate
	// (as in tests) still leaves the diagnostic inspectable.
	Last *Diagnostic
}

// New builds a Sink bound to the given source text.
func New(src string) *Sink {
	return &Sink{Source: src, Exit: os.Exit}
}

// Throw renders the diagnostic to stderr and terminates via Exit(1).
func (s *Sink) Throw(code Code, line, pos int, args []string) {
	d := Diagnostic{Code: code, Line: line, Pos: pos, Args: args}
	s.Last = &d
	bold := color.New(color.FgRed, color.Bold)
	bold.Fprintf(os.Stderr, "error")
	fmt.Fprintf(os.Stderr, ": %s\n", d.Error())
	if s.Exit != nil {
		s.Exit(1)
	}
}
