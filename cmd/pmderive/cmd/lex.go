package cmd

import (
	"fmt"

	"github.com/pcpkit/pmderive/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval     string
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <expression>",
	Short: "Tokenize a derived-metric expression",
	Long: `Tokenize a derived-metric expression and print the resulting tokens.

Examples:
  pmderive lex "kernel.all.cpu.user + kernel.all.cpu.sys"
  pmderive lex --show-type --show-pos "rate(disk.dev.read)"`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show token type names")
}

func runLex(cmd *cobra.Command, args []string) error {
	l := lexer.New(args[0])

	for {
		tok := l.NextToken()
		printToken(tok)
		if tok.Type == lexer.EOS {
			break
		}
	}

	if err := l.Errors().Last(); err != nil {
		return fmt.Errorf("%s", err.Format(false))
	}
	return nil
}

func printToken(tok lexer.Token) {
	var line string
	if lexShowType {
		line = fmt.Sprintf("[%-10s]", tok.Type)
	}
	if tok.Literal != "" {
		line += fmt.Sprintf(" %q", tok.Literal)
	} else {
		line += fmt.Sprintf(" %s", tok.Type)
	}
	if lexShowPos {
		line += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(line)
}
