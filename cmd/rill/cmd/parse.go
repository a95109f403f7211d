package cmd

import (
	"fmt"
	"os"

	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse rill source code and display the AST",
	Long: `Parse rill source code and display the Abstract Syntax Tree (AST).

If no file is provided, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(args)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(input))
	unit := p.ParseUnit()

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "Parser errors:\n")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return fmt.Errorf("%d parse errors", len(errs))
	}

	fmt.Print(unit.String())
	return nil
}
