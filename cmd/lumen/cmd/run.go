package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lumen"
	"lumen/errors"
	"lumen/evaluator"
	"lumen/object"
	"lumen/stdlib"
)

var (
	evalExpr string
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lumen program",
	Long: `Run lexes, parses, resolves, and evaluates a Lumen program, printing
anything the program writes via print/println to stdout.

Examples:
  lumen run script.lm
  lumen run -e "var x = 41; print(x + 1);"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().BoolVar(&trace, "trace", false, "log each pipeline stage to stderr")
}

func newTraceLogger(enabled bool) *zap.SugaredLogger {
	if !enabled {
		return zap.NewNop().Sugar()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func runScript(cmd *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return err
	}

	log := newTraceLogger(trace)
	log.Infow("lexing", "source", filename, "bytes", len(src))

	sink := errors.New(src)
	stmts := lumen.Parse(src, sink)
	log.Infow("parsed", "statements", len(stmts))

	locals := lumen.Resolve(stmts, sink)
	log.Infow("resolved", "locals", len(locals))

	lumen.RunStmts(stmts, locals, os.Stdout, sink)
	return nil
}

func readSource(args []string) (src, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
