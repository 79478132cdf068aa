package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/tangzhangming/lume/internal/astdump"
	"github.com/tangzhangming/lume/internal/diag"
	"github.com/tangzhangming/lume/internal/frontend"
	"github.com/tangzhangming/lume/internal/i18n"
)

const (
	promptMain  = "lume> "
	promptCont  = "....> "
	historyFile = ".lume_history"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: i18n.T(i18n.MsgCmdRepl),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRepl(cmd)
		},
	}
}

func (a *app) runRepl(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T(i18n.MsgReplBanner, version))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := a.newSession()
	for {
		src, ok := readEntry(ln, session)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if strings.ToLower(trimmed) == ":quit" {
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T(i18n.MsgReplUnknown, trimmed))
			continue
		}

		a.evalEntry(cmd.OutOrStdout(), cmd.ErrOrStderr(), session, src)
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readEntry 读取一条输入，解析不完整时继续读下一行
func readEntry(ln *liner.State, session *frontend.Session) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if !incomplete(session, src) {
			return src, true
		}
	}
}

// incomplete 输入是否只因提前结束而无法解析
func incomplete(session *frontend.Session, src string) bool {
	result, err := session.Run(src)
	if result.Root != nil {
		result.Root.Release()
	}

	var derr *diag.Error
	return errors.As(err, &derr) && derr.Incomplete()
}

// evalEntry 解析一条输入，输出语法树或诊断
func (a *app) evalEntry(out, errOut io.Writer, session *frontend.Session, src string) {
	result, err := session.Run(src)
	if err != nil {
		printDiagnostics(errOut, a.styles, "<repl>", result.Diagnostics())
	}
	if result.Root == nil {
		return
	}
	defer result.Root.Release()

	format, ferr := astdump.ParseFormat(a.cfg.Output.Format)
	if ferr != nil {
		format = astdump.FormatTree
	}
	if err := astdump.Write(out, result.Root, format); err != nil {
		printError(errOut, err.Error())
	}
}
