package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags; BuildDate likewise.
	Version   = "0.1.0-dev"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "phpparse",
	Short:   "Tokenize and parse PHP source",
	Long:    `phpparse is a Go implementation of a PHP expression/statement parser, exposed here as a lex/parse inspection tool.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Built: %s
`, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
