// Package frontend 串联词法分析、语法分析和符号收集。
//
// 一个 Session 对应一次或多次分析，每个阶段开始时清空该阶段的诊断。
// Session 不能在多个 goroutine 之间共享。
package frontend

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tangzhangming/lume/internal/diag"
	"github.com/tangzhangming/lume/internal/lexer"
	"github.com/tangzhangming/lume/internal/logging"
	"github.com/tangzhangming/lume/internal/parser"
	"github.com/tangzhangming/lume/internal/symbol"
)

var (
	// ErrLex 词法分析失败，语法分析不会执行
	ErrLex = errors.New("lexical errors")
	// ErrParse 语法分析失败
	ErrParse = errors.New("syntax errors")
	// ErrSymbol 符号收集发现重复声明
	ErrSymbol = errors.New("symbol errors")
)

// Options 会话选项
type Options struct {
	Logger *slog.Logger // nil 时丢弃日志
	Parser parser.Options
}

// Result 一次完整分析的结果
type Result struct {
	Tokens *lexer.Sequence
	Root   *parser.Statement // 词法失败时为 nil
	Lex    []diag.Diagnostic
	Parse  []diag.Diagnostic
}

// Diagnostics 按阶段顺序返回全部诊断
func (r *Result) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(r.Lex)+len(r.Parse))
	out = append(out, r.Lex...)
	return append(out, r.Parse...)
}

// Session 分析会话
type Session struct {
	ID uuid.UUID

	logger *slog.Logger
	opts   parser.Options

	lexSink    *diag.Sink
	parseSink  *diag.Sink
	symbolSink *diag.Sink
}

// NewSession 创建会话
func NewSession(opts Options) *Session {
	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("session", id.String())

	return &Session{
		ID:         id,
		logger:     logger,
		opts:       opts.Parser,
		lexSink:    diag.NewSink(diag.StageLexer, logger),
		parseSink:  diag.NewSink(diag.StageParser, logger),
		symbolSink: diag.NewSink(diag.StageSymbol, logger),
	}
}

// Tokenize 词法分析。有错误时仍返回已识别的 token 序列。
func (s *Session) Tokenize(src string) (*lexer.Sequence, error) {
	s.lexSink.Reset()

	seq, errs := lexer.New(src, s.lexSink).Scan()
	s.logger.Info("lexer finished", "stage", diag.StageLexer.String(), "tokens", seq.Len(), "errors", errs)

	if errs > 0 {
		return seq, fmt.Errorf("%w: %w", ErrLex, s.lexSink.Err())
	}
	return seq, nil
}

// Parse 语法分析。有错误时返回恢复后的部分语法树。
func (s *Session) Parse(seq *lexer.Sequence) (*parser.Statement, error) {
	s.parseSink.Reset()

	p := parser.New(seq, s.parseSink, s.opts)
	root := p.ParseProgram()
	s.logger.Info("parser finished", "stage", diag.StageParser.String(), "statements", root.Len(), "errors", p.ErrorCount())

	if p.HadError() {
		return root, fmt.Errorf("%w: %w", ErrParse, s.parseSink.Err())
	}
	return root, nil
}

// Run 依次执行词法和语法分析，词法失败时不进行语法分析
func (s *Session) Run(src string) (*Result, error) {
	seq, err := s.Tokenize(src)
	result := &Result{Tokens: seq, Lex: s.lexSink.Diagnostics()}
	if err != nil {
		return result, err
	}

	root, err := s.Parse(seq)
	result.Root = root
	result.Parse = s.parseSink.Diagnostics()
	return result, err
}

// Symbols 收集顶层声明
func (s *Session) Symbols(root *parser.Statement) (*symbol.Scope, error) {
	s.symbolSink.Reset()

	scope := symbol.NewScope()
	symbol.NewCollector(scope, s.symbolSink).CollectProgram(root)
	s.logger.Info("symbols collected", "stage", diag.StageSymbol.String(),
		"variables", scope.Variables.Len(), "functions", scope.Functions.Len())

	if s.symbolSink.HadError() {
		return scope, fmt.Errorf("%w: %w", ErrSymbol, s.symbolSink.Err())
	}
	return scope, nil
}
