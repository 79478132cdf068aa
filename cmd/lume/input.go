package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tangzhangming/lume/internal/astdump"
	"github.com/tangzhangming/lume/internal/diag"
	"github.com/tangzhangming/lume/internal/i18n"
)

// sourceExt lume 源文件后缀
const sourceExt = ".lume"

// source 一个待处理的源文件
type source struct {
	path string // 文件路径
	rel  string // 相对于输入目录的路径，输入为单个文件时为文件名
}

// collectSources 收集输入文件或目录下的全部 .lume 文件
func collectSources(input string) ([]source, bool, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, false, &accessError{err: err}
	}

	if !info.IsDir() {
		return []source{{path: input, rel: filepath.Base(input)}}, false, nil
	}

	var sources []source
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !isSourceFile(path) {
			return nil
		}

		relPath, err := filepath.Rel(input, path)
		if err != nil {
			return err
		}
		sources = append(sources, source{path: path, rel: relPath})
		return nil
	})
	if err != nil {
		return nil, true, &accessError{err: err}
	}

	if len(sources) == 0 {
		return nil, true, &noFilesError{dir: input}
	}
	return sources, true, nil
}

func isSourceFile(path string) bool {
	return strings.HasSuffix(path, sourceExt)
}

// readSource 读取源文件
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &readFileError{path: path, err: err}
	}
	return string(data), nil
}

// outputPath 目录输入时输出文件的位置：保持相对路径，替换后缀
func outputPath(outputDir, rel string, format astdump.Format) string {
	return filepath.Join(outputDir, strings.TrimSuffix(rel, sourceExt)+format.Extension())
}

// writeOutput 创建父目录并写入文件
func writeOutput(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &writeFileError{path: path, err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &writeFileError{path: path, err: err}
	}
	if err := write(f); err != nil {
		f.Close()
		return &writeFileError{path: path, err: err}
	}
	if err := f.Close(); err != nil {
		return &writeFileError{path: path, err: err}
	}
	return nil
}

// printDiagnostics 输出诊断，列号从 1 开始显示
func printDiagnostics(w io.Writer, st styles, path string, diags []diag.Diagnostic) {
	for _, d := range diags {
		pos := st.pos.Render(fmt.Sprintf("%s:%d:%d:", path, d.Line, d.Column+1))
		label := st.err.Render(d.Stage.String() + " error")
		fmt.Fprintf(w, "%s %s: %s %s\n", pos, label, d.Message, st.code.Render("["+d.Code.String()+"]"))
	}
}

type accessError struct {
	err error
}

func (e *accessError) Error() string {
	return i18n.T(i18n.ErrCannotAccessInput, e.err)
}

func (e *accessError) Unwrap() error { return e.err }

type configError struct {
	err error
}

func (e *configError) Error() string {
	return i18n.T(i18n.ErrCannotLoadConfig, e.err)
}

func (e *configError) Unwrap() error { return e.err }

type readFileError struct {
	path string
	err  error
}

func (e *readFileError) Error() string {
	return i18n.T(i18n.ErrCannotReadFile, e.path, e.err)
}

func (e *readFileError) Unwrap() error { return e.err }

type noFilesError struct {
	dir string
}

func (e *noFilesError) Error() string {
	return i18n.T(i18n.ErrNoLumeFiles, e.dir)
}

type writeFileError struct {
	path string
	err  error
}

func (e *writeFileError) Error() string {
	return i18n.T(i18n.ErrCannotWriteFile, e.path, e.err)
}

func (e *writeFileError) Unwrap() error { return e.err }
