package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/solscript/sol/internal/ast"
	"github.com/solscript/sol/internal/diag"
	"github.com/solscript/sol/internal/lexer"
	"github.com/solscript/sol/internal/parser"
	"github.com/solscript/sol/internal/runtime"
	"github.com/solscript/sol/internal/source"
	"github.com/solscript/sol/internal/token"
)

var debug bool

func main() {
	root := &cobra.Command{
		Use:   "sol",
		Short: "sol is an interpreter for the Sol language",
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "print scan/parse timing and token/declaration counts to stderr")

	root.AddCommand(runCmd(), scanCmd(), printASTCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "run a Sol program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, prog, err := scanAndParse(args[0])
			if err != nil {
				reportAndExit(buf, err)
			}
			in := runtime.New(buf)
			if err := in.Interpret(prog); err != nil {
				reportAndExit(buf, err)
			}
			return nil
		},
	}
}

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <file>",
		Short: "scan a Sol program and print its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := readBuffer(args[0])
			if err != nil {
				return err
			}
			toks, err := lexer.New(buf).Scan()
			if err != nil {
				reportAndExit(buf, err)
			}
			for _, t := range toks {
				switch t.Kind {
				case token.EOF:
					continue
				case token.STRING:
					fmt.Printf("%s %s: \"%s\"\n", t.Position, t.Kind, t.Literal)
				case token.IDENTIFIER, token.TYPE_NAME, token.NUMBER, token.BOOLEAN:
					fmt.Printf("%s %s: \"%s\"\n", t.Position, t.Kind, t.Lexeme)
				default:
					fmt.Printf("%s %s\n", t.Position, t.Kind)
				}
			}
			return nil
		},
	}
}

func printASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print-ast <file>",
		Short: "parse a Sol program and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, prog, err := scanAndParse(args[0])
			if err != nil {
				reportAndExit(buf, err)
			}
			fmt.Print(ast.Dump(prog))
			return nil
		},
	}
}

func readBuffer(path string) (*source.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sol: %w", err)
	}
	return source.New(path, string(data)), nil
}

func scanAndParse(path string) (*source.Buffer, *ast.Program, error) {
	buf, err := readBuffer(path)
	if err != nil {
		return nil, nil, err
	}

	scanStart := time.Now()
	toks, err := lexer.New(buf).Scan()
	scanElapsed := time.Since(scanStart)
	if debug {
		cyan := color.New(color.FgCyan)
		cyan.Fprintf(os.Stderr, "scan: %d tokens in %s\n", len(toks), scanElapsed)
	}
	if err != nil {
		return buf, nil, err
	}

	parseStart := time.Now()
	prog, err := parser.New(toks).Parse()
	parseElapsed := time.Since(parseStart)
	if debug {
		cyan := color.New(color.FgCyan)
		declCount := 0
		if prog != nil {
			declCount = len(prog.Decls)
		}
		cyan.Fprintf(os.Stderr, "parse: %d top-level declarations in %s\n", declCount, parseElapsed)
	}
	return buf, prog, err
}

// reportAndExit renders err with fatih/color, including a two-line source
// snippet when err carries a position, and exits with the exit code
// matching its error taxon: 65 for a scan/parse failure, 70 for a runtime
// failure, the conventional sysexits split.
func reportAndExit(buf *source.Buffer, err error) {
	red := color.New(color.FgRed, color.Bold)
	code := 70

	switch e := err.(type) {
	case *diag.ScanError:
		red.Fprint(os.Stderr, "ScanError: ")
		fmt.Fprintln(os.Stderr, e.Message)
		fmt.Fprintln(os.Stderr, diag.Snippet(buf, e.Pos))
		code = 65
	case *diag.ParseError:
		red.Fprint(os.Stderr, "ParseError: ")
		fmt.Fprintln(os.Stderr, e.Error())
		fmt.Fprintln(os.Stderr, diag.Snippet(buf, e.Pos))
		code = 65
	case *diag.RuntimeError:
		red.Fprint(os.Stderr, "RuntimeError: ")
		fmt.Fprintln(os.Stderr, e.Message)
		if buf != nil && e.Pos != (source.Position{}) {
			fmt.Fprintln(os.Stderr, diag.Snippet(buf, e.Pos))
		}
		code = 70
	default:
		red.Fprintln(os.Stderr, err.Error())
	}

	os.Exit(code)
}
