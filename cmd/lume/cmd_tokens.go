package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tangzhangming/lume/internal/i18n"
	"github.com/tangzhangming/lume/internal/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: i18n.T(i18n.MsgCmdTokens),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokens(cmd, args[0])
		},
	}
}

// runTokens 每行输出一个 token: line:col TYPE lexeme
func (a *app) runTokens(cmd *cobra.Command, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}

	session := a.newSession()
	seq, err := session.Tokenize(src)

	out := cmd.OutOrStdout()
	for _, tok := range seq.Tokens() {
		fmt.Fprintf(out, "%d:%d\t%s\t%s\n", tok.Line, tok.Column+1, tok.Type, tokenText(tok))
	}

	if err != nil {
		printDiagnostics(cmd.ErrOrStderr(), a.styles, path, diagnosticsOf(err))
		return errReported
	}
	return nil
}

// tokenText 显示用的 token 文本，数字显示解析后的值
func tokenText(tok lexer.Token) string {
	if tok.Literal.Kind == lexer.LiteralNumber {
		return fmt.Sprintf("%s (%g)", tok.Lexeme, tok.Literal.Num)
	}
	return tok.Lexeme
}
