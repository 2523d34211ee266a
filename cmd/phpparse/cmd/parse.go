package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/timglabisch/pico-php-parser/internal/clog"
	"github.com/timglabisch/pico-php-parser/pkg/ast"
	"github.com/timglabisch/pico-php-parser/pkg/intern"
	"github.com/timglabisch/pico-php-parser/pkg/parser"
)

var (
	parseEval    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse PHP source and display the AST",
	Long: `Parse PHP source code and display the resulting items.

If no file is provided, reads from stdin. Use -e to parse an inline snippet,
and --dump-ast to show the full tree structure instead of a one-line summary
per item.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse an inline PHP snippet instead of reading a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	clog.SetVerbose(verbose)

	src, name, err := readSource(parseEval, args)
	if err != nil {
		return err
	}
	clog.Verbosef("parsing %s (%d bytes)", name, len(src))

	in := intern.New()
	items, errs := parser.Parse(src, in, parser.Config{})

	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "parse errors in %s:\n", name)
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, formatParseError(e, src, name))
		}
	}

	d := &dumper{in: in, w: os.Stdout}
	if parseDumpAST {
		fmt.Println("AST:")
		for _, item := range items {
			d.dump(item, 0)
		}
	} else {
		fmt.Printf("%d item(s), %d error(s)\n", len(items), len(errs))
	}

	if len(errs) > 0 {
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}
	return nil
}

// formatParseError renders a parse error with a source line and caret,
// converting its byte-offset span to a 1-indexed line/column.
func formatParseError(e ast.ParseError, src []byte, file string) string {
	line, col, lineText := lineCol(src, e.Sp.Lo)

	var sb strings.Builder
	if file != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: %s\n", file, line, col, e.Error())
	} else {
		fmt.Fprintf(&sb, "%d:%d: %s\n", line, col, e.Error())
	}
	if lineText != "" {
		prefix := fmt.Sprintf("%4d | ", line)
		sb.WriteString(prefix)
		sb.WriteString(lineText)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		sb.WriteString("^")
	}
	return sb.String()
}

// lineCol converts a byte offset into a 1-indexed line/column plus the text
// of that line, scanning src once rather than precomputing a line-offset
// table since the CLI only needs this per reported error.
func lineCol(src []byte, offset int) (line, col int, lineText string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = offset - lineStart + 1

	lineEnd := len(src)
	if idx := strings.IndexByte(string(src[lineStart:]), '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}
	return line, col, string(src[lineStart:lineEnd])
}
