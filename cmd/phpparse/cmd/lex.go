package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/timglabisch/pico-php-parser/internal/clog"
	"github.com/timglabisch/pico-php-parser/pkg/lexer"
	"github.com/timglabisch/pico-php-parser/pkg/source"
)

var (
	lexEval     string
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a PHP file or inline expression",
	Long: `Split a PHP source file into its text/code regions and tokenize each
code region, printing the resulting tokens.

If no file is given and -e is not used, source is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline PHP code instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show token type names")
}

func runLex(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	clog.SetVerbose(verbose)

	src, name, err := readSource(lexEval, args)
	if err != nil {
		return err
	}
	clog.Verbosef("tokenizing %s (%d bytes)", name, len(src))

	segs := source.Split(src, source.Config{ShortOpenTags: true, ShortEcho: true})
	for _, seg := range segs {
		if seg.Kind == source.TextSegment {
			fmt.Printf("TEXT %q\n", string(seg.Bytes))
			continue
		}
		l := lexer.New(string(seg.Bytes), seg.Lo, name)
		for {
			tok := l.NextToken()
			printToken(tok)
			if tok.Type == lexer.EOF {
				break
			}
		}
	}
	return nil
}

func printToken(tok lexer.Token) {
	var out string
	if lexShowType {
		out = fmt.Sprintf("[%-20s]", tok.Type.String())
	}
	if tok.Literal == "" {
		out += fmt.Sprintf(" %s", tok.Type.String())
	} else {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%s", tok.Pos.String())
	}
	fmt.Println(out)
}

// readSource resolves the CLI's three input modes: -e inline code, a file
// argument, or stdin.
func readSource(eval string, args []string) (src []byte, name string, err error) {
	if eval != "" {
		return []byte(eval), "<eval>", nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return data, args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", fmt.Errorf("reading stdin: %w", err)
	}
	return data, "<stdin>", nil
}
