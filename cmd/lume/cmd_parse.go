package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tangzhangming/lume/internal/astdump"
	"github.com/tangzhangming/lume/internal/diag"
	"github.com/tangzhangming/lume/internal/frontend"
	"github.com/tangzhangming/lume/internal/i18n"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "parse <file|dir>",
		Short: i18n.T(i18n.MsgCmdParse),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			f, err := astdump.ParseFormat(format)
			if err != nil {
				return errors.New(i18n.T(i18n.ErrUnknownFormat, format))
			}
			return a.runParse(cmd, args[0], f, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", i18n.T(i18n.MsgFlagFormat))
	cmd.Flags().StringVarP(&output, "output", "o", "", i18n.T(i18n.MsgFlagOutput))
	return cmd
}

// runParse 解析输入并输出语法树。
// 目录输入且指定 -o 时，-o 是输出目录，每个源文件写入一个同名文件。
func (a *app) runParse(cmd *cobra.Command, input string, format astdump.Format, output string) error {
	sources, isDir, err := collectSources(input)
	if err != nil {
		return err
	}

	failed := false
	for _, src := range sources {
		text, err := readSource(src.path)
		if err != nil {
			return err
		}

		result, runErr := a.newSession().Run(text)
		if runErr != nil {
			failed = true
			printDiagnostics(cmd.ErrOrStderr(), a.styles, src.path, result.Diagnostics())
		}
		// 词法失败时没有语法树
		if result.Root == nil {
			if errors.Is(runErr, frontend.ErrLex) {
				printInfo(cmd.ErrOrStderr(), i18n.T(i18n.MsgLexFailed, src.path, len(result.Lex)))
			}
			continue
		}

		write := func(w io.Writer) error {
			return astdump.Write(w, result.Root, format)
		}

		switch {
		case output == "":
			if isDir {
				fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", src.path)
			}
			if err := write(cmd.OutOrStdout()); err != nil {
				return err
			}
		case isDir:
			path := outputPath(output, src.rel, format)
			if err := writeOutput(path, write); err != nil {
				return err
			}
			if a.verbose {
				printInfo(cmd.ErrOrStderr(), i18n.T(i18n.MsgWrote, path))
			}
		default:
			if err := writeOutput(output, write); err != nil {
				return err
			}
			if a.verbose {
				printInfo(cmd.ErrOrStderr(), i18n.T(i18n.MsgWrote, output))
			}
		}

		result.Root.Release()
	}

	if failed {
		return errReported
	}
	return nil
}

// diagnosticsOf 取出错误链中的诊断
func diagnosticsOf(err error) []diag.Diagnostic {
	var derr *diag.Error
	if errors.As(err, &derr) {
		return derr.Diagnostics
	}
	return nil
}
