// Command wasm exposes the Lumen pipeline to a browser host via
// syscall/js, mirroring the teacher's runEloquence bridge.
//
// Build: GOOS=js GOARCH=wasm go build -o main.wasm wasm/wasm_main.go
package main

import (
	"bytes"
	"fmt"
	"syscall/js"

	"lumen/errors"
	"lumen/evaluator"
	"lumen/object"
	"lumen/parser"
	"lumen/resolver"
	"lumen/stdlib"
)

func main() {
	c := make(chan struct{}, 0)

	js.Global().Set("runLumen", js.FuncOf(runCode))
	fmt.Println("Lumen WASM engine loaded.")

	<-c
}

// runCode is the bridge between JS and Go: it runs one program and returns
// a JS object with "logs" (everything printed via print/println) and
// "error" (a diagnostic message, if the run was fatal).
func runCode(this js.Value, p []js.Value) interface{} {
	if len(p) == 0 {
		return map[string]interface{}{"error": "no source given"}
	}
	src := p[0].String()

	var out bytes.Buffer
	sink := errors.New(src)
	sink.Exit = func(int) {} // a browser tab never gets to os.Exit

	stmts := parser.New(src, 1, sink).ParseProgram()
	if sink.Last != nil {
		return map[string]interface{}{"error": sink.Last.Error()}
	}

	locals := resolver.New(sink).Resolve(stmts)
	if sink.Last != nil {
		return map[string]interface{}{"error": sink.Last.Error()}
	}

	env := object.New()
	stdlib.LoadWith(env, &out)
	interp := evaluator.NewWithEnv(env, locals, sink)
	interp.Interpret(stmts)

	if sink.Last != nil {
		return map[string]interface{}{
			"logs":  out.String(),
			"error": sink.Last.Error(),
		}
	}
	return map[string]interface{}{"logs": out.String()}
}
