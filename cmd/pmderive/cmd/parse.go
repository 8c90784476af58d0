package cmd

import (
	"fmt"

	"github.com/pcpkit/pmderive/internal/lexer"
	"github.com/pcpkit/pmderive/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Parse a derived-metric expression and print its AST",
	Long: `Parse a derived-metric expression and print its fully parenthesized
AST, the same string a re-parse would reproduce byte-for-byte.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	l := lexer.New(args[0])
	p := parser.New(l)

	expr := p.ParseExpression()
	if expr == nil {
		if err := p.Errors().Last(); err != nil {
			return fmt.Errorf("%s", err.Format(false))
		}
		return fmt.Errorf("parse failed")
	}

	fmt.Println(expr.String())
	return nil
}
