package cmd

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"lumen/errors"
	"lumen/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lumen file and dump its syntax tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(cmd *cobra.Command, args []string) error {
	src, _, err := readSource(args)
	if err != nil {
		return err
	}

	sink := errors.New(src)
	stmts := parser.New(src, 1, sink).ParseProgram()
	spew.Dump(stmts)
	return nil
}
