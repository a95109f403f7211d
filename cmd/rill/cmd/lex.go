package cmd

import (
	"fmt"

	"github.com/rill-lang/rill/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize rill source code and display the token stream",
	Long: `Tokenize rill source code and display the token stream.

If no file is provided, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	for {
		tok := l.NextToken()
		fmt.Printf("%-8s %s\n", tok.Pos, tok)
		if tok.Type == lexer.EOF {
			return nil
		}
	}
}
