package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumen/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lumen file or expression",
	Long: `lex scans a Lumen program and prints the resulting token stream,
one token per line. Useful for debugging the lexer.

Examples:
  lumen lex script.lm
  lumen lex -e "var x = 42;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func lexScript(cmd *cobra.Command, args []string) error {
	src, _, err := readSource(args)
	if err != nil {
		return err
	}

	toks := lexer.New(src, 1).Tokenize()
	for _, tok := range toks {
		fmt.Println(tok.String())
	}
	return nil
}
