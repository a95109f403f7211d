package cmd

import (
	"fmt"
	"os"

	"github.com/rill-lang/rill/internal/ast"
	rillerrors "github.com/rill-lang/rill/internal/errors"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/parser"
	"github.com/rill-lang/rill/internal/semantic"
	"github.com/spf13/cobra"
)

var checkShowTypes bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run semantic analysis over rill source code",
	Long: `Parse rill source code, resolve every identifier, and infer the
type of every declared entity. Diagnostics are printed with source
context.

If no file is provided, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkShowTypes, "types", false, "print the inferred type of every function")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, file, err := readInput(args)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(input))
	unit := p.ParseUnit()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			ce := rillerrors.NewCompilerError(e.Pos, e.Message, input, file)
			fmt.Fprintln(os.Stderr, ce.Format(false))
		}
		return fmt.Errorf("%d parse errors", len(errs))
	}

	analyzer := semantic.NewAnalyzer()
	analysisErr := analyzer.Analyze(unit)

	for _, d := range analyzer.Collector().Errors() {
		ce := rillerrors.NewCompilerError(d.Token.Pos, d.Message, input, file)
		for _, ref := range d.Refs {
			ce.AddNote(ref.Pos, "previously declared here")
		}
		fmt.Fprintln(os.Stderr, ce.Format(false))
	}

	if analysisErr != nil {
		return fmt.Errorf("%d semantic errors", len(analyzer.Collector().Errors()))
	}

	if checkShowTypes {
		printTypes(analyzer, unit)
	}
	return nil
}

// printTypes lists every function with its inferred signature.
func printTypes(analyzer *semantic.Analyzer, unit *ast.Unit) {
	for _, item := range unit.Items {
		fn, ok := item.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		if t, ok := analyzer.Types().TypeOf(fn.ID()); ok {
			fmt.Printf("%s: %s\n", fn.Name.Value, t)
		}
	}
}
