package symbol

import (
	"errors"

	"github.com/tangzhangming/lume/internal/diag"
	"github.com/tangzhangming/lume/internal/i18n"
	"github.com/tangzhangming/lume/internal/lexer"
	"github.com/tangzhangming/lume/internal/parser"
)

// Collector 符号收集器，把程序顶层的 var 和 fun 声明登记到作用域
type Collector struct {
	scope *Scope
	sink  *diag.Sink
}

// NewCollector 创建一个新的符号收集器，sink 为 nil 时使用内部收集器
func NewCollector(scope *Scope, sink *diag.Sink) *Collector {
	if sink == nil {
		sink = diag.NewSink(diag.StageSymbol, nil)
	}
	return &Collector{scope: scope, sink: sink}
}

// Sink 返回诊断收集器
func (c *Collector) Sink() *diag.Sink {
	return c.sink
}

// CollectProgram 从程序根节点收集符号
func (c *Collector) CollectProgram(program *parser.Statement) {
	if program == nil {
		return
	}
	for _, stmt := range program.Children() {
		c.collectStatement(stmt)
	}
}

// collectStatement 从语句中收集符号
func (c *Collector) collectStatement(stmt *parser.Statement) {
	switch stmt.Kind {
	case parser.KindVarDecl:
		c.collectVar(stmt)
	case parser.KindFunDecl:
		c.collectFun(stmt)
	}
}

// collectVar 收集变量符号，字面量初始值记为 Value
func (c *Collector) collectVar(decl *parser.Statement) {
	entry := Entry{Kind: KindVariable, Decl: decl}
	if decl.Len() > 1 {
		if init := decl.Child(1); init.Kind == parser.KindBasic && init.Token.HasLiteral() {
			entry.Value = init.Token.Literal
		}
	}
	c.insert(decl.Child(0).Token, entry, i18n.ErrRedeclaredVariable)
}

// collectFun 收集函数符号
func (c *Collector) collectFun(decl *parser.Statement) {
	c.insert(decl.Child(0).Token, Entry{Kind: KindFunction, Decl: decl}, i18n.ErrRedeclaredFunction)
}

func (c *Collector) insert(name lexer.Token, entry Entry, msgKey string) {
	err := c.scope.Table(entry.Kind).Insert(name.Lexeme, entry)
	if errors.Is(err, ErrRedeclared) {
		c.sink.Report(diag.Pos{Line: name.Line, Column: name.Column}, diag.Redeclared, i18n.T(msgKey, name.Lexeme))
	}
}

// Collect 从程序收集符号，返回作用域和是否有重复声明
func Collect(program *parser.Statement) (*Scope, bool) {
	scope := NewScope()
	collector := NewCollector(scope, nil)
	collector.CollectProgram(program)
	return scope, collector.sink.HadError()
}
