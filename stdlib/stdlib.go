// Package stdlib is the standard-library bridge: it registers host
// callables into an Environment's root scope as public DeclrFunc values.
package stdlib

import (
	"fmt"
	"io"
	"os"

	"lumen/object"
)

// Load registers the core-io module's builtins into env, writing to
// os.Stdout. This is the path used by the evaluator's root constructor.
func Load(env *object.Environment) {
	LoadWith(env, os.Stdout)
}

// LoadWith registers the core-io module's builtins into env, writing to w.
// Exposed separately so a REPL or test harness can capture output.
func LoadWith(env *object.Environment, w io.Writer) {
	register(env, "print", -1, func(args []object.Value) object.Value {
		for idx, a := range args {
			if idx > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, a.String())
		}
		return object.Void{}
	})
	register(env, "println", -1, func(args []object.Value) object.Value {
		for idx, a := range args {
			if idx > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, a.String())
		}
		fmt.Fprintln(w)
		return object.Void{}
	})
	register(env, "type_of", 1, func(args []object.Value) object.Value {
		return object.String(args[0].TypeName())
	})
	register(env, "len", 1, func(args []object.Value) object.Value {
		switch v := args[0].(type) {
		case object.String:
			return object.Number(len([]rune(string(v))))
		case object.Array:
			return object.Number(len(v))
		default:
			return object.Number(0)
		}
	})
}

func register(env *object.Environment, name string, arity int, fn object.HostFunc) {
	env.DefinePubFunc(name, object.DeclrFunc{Name: name, Arity: arity, Call: fn}, object.Signature{})
}
