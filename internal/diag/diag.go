// Package diag 记录词法、语法和符号收集阶段带位置的诊断。
// 记录错误不会中止分析，由调用方决定恢复还是停止。
package diag

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Stage 诊断来源阶段
type Stage int

const (
	StageLexer Stage = iota
	StageParser
	StageSymbol
)

func (s Stage) String() string {
	switch s {
	case StageLexer:
		return "lexer"
	case StageParser:
		return "parser"
	case StageSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Code 诊断类别
type Code int

const (
	// 词法错误
	InvalidCharacter Code = iota
	InvalidNumber
	UnterminatedString

	// 语法错误
	ExpectedToken
	MissingOperand
	UnexpectedEOF
	UnclosedBlock
	EmptyBody
	InvalidAssignTarget

	// 符号错误
	Redeclared
)

var codeNames = [...]string{
	InvalidCharacter:    "invalid-character",
	InvalidNumber:       "invalid-number",
	UnterminatedString:  "unterminated-string",
	ExpectedToken:       "expected-token",
	MissingOperand:      "missing-operand",
	UnexpectedEOF:       "unexpected-eof",
	UnclosedBlock:       "unclosed-block",
	EmptyBody:           "empty-body",
	InvalidAssignTarget: "invalid-assign-target",
	Redeclared:          "redeclared",
}

func (c Code) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// Pos 行列位置，行从 1 开始，列为行内字节偏移
type Pos struct {
	Line   int
	Column int
}

// Diagnostic 一条诊断记录
type Diagnostic struct {
	Pos
	Stage   Stage
	Code    Code
	Message string
}

// String 返回 "line:col: message"
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Sink 收集单个阶段的诊断，并锁存错误标志
type Sink struct {
	stage    Stage
	records  []Diagnostic
	hadError bool
	logger   *slog.Logger
}

// NewSink 创建诊断收集器，logger 可以为 nil
func NewSink(stage Stage, logger *slog.Logger) *Sink {
	return &Sink{stage: stage, logger: logger}
}

// Stage 返回收集器所属阶段
func (s *Sink) Stage() Stage {
	return s.stage
}

// Report 记录一条诊断并设置错误标志
func (s *Sink) Report(pos Pos, code Code, msg string) {
	d := Diagnostic{Pos: pos, Stage: s.stage, Code: code, Message: msg}
	s.records = append(s.records, d)
	s.hadError = true
	if s.logger != nil {
		s.logger.Debug("diagnostic",
			"stage", s.stage.String(),
			"code", code.String(),
			"line", pos.Line,
			"column", pos.Column,
			"message", msg)
	}
}

// Reportf 按格式记录一条诊断
func (s *Sink) Reportf(pos Pos, code Code, format string, args ...any) {
	s.Report(pos, code, fmt.Sprintf(format, args...))
}

// HadError 返回是否记录过错误
func (s *Sink) HadError() bool {
	return s.hadError
}

// Count 返回记录的诊断数量
func (s *Sink) Count() int {
	return len(s.records)
}

// Diagnostics 返回诊断记录的副本
func (s *Sink) Diagnostics() []Diagnostic {
	return slices.Clone(s.records)
}

// Reset 清空记录，开始新的会话
func (s *Sink) Reset() {
	s.records = nil
	s.hadError = false
}

// Err 没有错误时返回 nil，否则返回 *Error
func (s *Sink) Err() error {
	if !s.hadError {
		return nil
	}
	return &Error{Stage: s.stage, Diagnostics: s.Diagnostics()}
}

// Error 一个阶段的全部诊断，实现 error 接口
type Error struct {
	Stage       Stage
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d error(s)", e.Stage, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("\n")
		b.WriteString(d.String())
	}
	return b.String()
}

// Incomplete 报告错误是否全部由输入提前结束引起。
// 交互环境据此决定是否继续读取下一行。
func (e *Error) Incomplete() bool {
	if len(e.Diagnostics) == 0 {
		return false
	}
	for _, d := range e.Diagnostics {
		if d.Code != UnexpectedEOF && d.Code != UnclosedBlock {
			return false
		}
	}
	return true
}
