package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"lumen/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lumen session",
	Run: func(cmd *cobra.Command, args []string) {
		repl.Start(os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
