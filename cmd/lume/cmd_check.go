package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tangzhangming/lume/internal/i18n"
)

// debounceDelay 同一文件的连续事件只处理一次
const debounceDelay = 200 * time.Millisecond

func newCheckCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check [file|dir]",
		Short: i18n.T(i18n.MsgCmdCheck),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "."
			if len(args) > 0 {
				input = args[0]
			}
			return a.runCheck(cmd, input, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, i18n.T(i18n.MsgFlagWatch))
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, input string, watch bool) error {
	sources, isDir, err := collectSources(input)
	if err != nil {
		return err
	}

	failed := 0
	for _, src := range sources {
		ok, err := a.checkFile(cmd, src.path)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}

	if failed == 0 {
		printInfo(cmd.OutOrStdout(), a.styles.ok.Render(i18n.T(i18n.MsgCheckPassed, len(sources))))
	} else {
		printError(cmd.ErrOrStderr(), a.styles.err.Render(i18n.T(i18n.MsgCheckFailed, failed, len(sources))))
	}

	if watch {
		return a.watch(cmd.Context(), cmd, input, isDir)
	}
	if failed > 0 {
		return errReported
	}
	return nil
}

// checkFile 分析一个文件并输出诊断，返回是否没有错误
func (a *app) checkFile(cmd *cobra.Command, path string) (bool, error) {
	if a.verbose {
		printInfo(cmd.ErrOrStderr(), i18n.T(i18n.MsgChecking, path))
	}

	text, err := readSource(path)
	if err != nil {
		return false, err
	}

	session := a.newSession()
	result, err := session.Run(text)
	if err != nil {
		printDiagnostics(cmd.ErrOrStderr(), a.styles, path, result.Diagnostics())
		if result.Root != nil {
			result.Root.Release()
		}
		return false, nil
	}
	defer result.Root.Release()

	if _, err := session.Symbols(result.Root); err != nil {
		printDiagnostics(cmd.ErrOrStderr(), a.styles, path, diagnosticsOf(err))
		return false, nil
	}
	return true, nil
}

// watch 监视输入，源文件变化时重新检查，直到 ctx 取消
func (a *app) watch(ctx context.Context, cmd *cobra.Command, input string, isDir bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New(i18n.T(i18n.ErrWatchFailed, err))
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, input, isDir); err != nil {
		return errors.New(i18n.T(i18n.ErrWatchFailed, err))
	}

	printInfo(cmd.ErrOrStderr(), i18n.T(i18n.MsgWatching, input))
	a.logger.Info("watching", "input", input)

	target := filepath.Clean(input)
	debounce := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if isDir && event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addWatchDirs(watcher, event.Name, true)
					continue
				}
			}

			if !isSourceFile(event.Name) || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isDir && filepath.Clean(event.Name) != target {
				continue
			}

			if last, seen := debounce[event.Name]; seen && time.Since(last) < debounceDelay {
				continue
			}
			debounce[event.Name] = time.Now()

			if ok, err := a.checkFile(cmd, event.Name); err != nil {
				printError(cmd.ErrOrStderr(), err.Error())
			} else if ok {
				printInfo(cmd.OutOrStdout(), a.styles.ok.Render(i18n.T(i18n.MsgCheckPassed, 1)))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("watcher error", "error", err)
		}
	}
}

// addWatchDirs 目录输入时监视全部子目录，文件输入时监视其所在目录
func addWatchDirs(watcher *fsnotify.Watcher, input string, isDir bool) error {
	if !isDir {
		return watcher.Add(filepath.Dir(input))
	}
	return filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
