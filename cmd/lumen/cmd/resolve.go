package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumen/errors"
	"lumen/parser"
	"lumen/resolver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Resolve a Lumen file and print its locals table",
	Long: `resolve runs the static resolver pass and prints, for each
expression the resolver bound to a lexical depth, the expression's
identity and the number of enclosing scopes to walk to find it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: resolveScript,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "resolve inline code instead of reading from file")
}

func resolveScript(cmd *cobra.Command, args []string) error {
	src, _, err := readSource(args)
	if err != nil {
		return err
	}

	sink := errors.New(src)
	stmts := parser.New(src, 1, sink).ParseProgram()
	locals := resolver.New(sink).Resolve(stmts)

	fmt.Printf("%d bound expression(s)\n", len(locals))
	for exprID, depth := range locals {
		fmt.Printf("  expr#%d -> depth %d\n", exprID, depth)
	}
	return nil
}
