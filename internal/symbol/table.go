package symbol

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tangzhangming/lume/internal/lexer"
	"github.com/tangzhangming/lume/internal/parser"
)

var (
	// ErrRedeclared 名称已存在
	ErrRedeclared = errors.New("symbol already declared")
	// ErrNotFound 名称不存在
	ErrNotFound = errors.New("symbol not found")
)

// Kind 符号类型
type Kind int

const (
	KindVariable Kind = iota
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	}
	return "unknown"
}

// Entry 表示一个符号
type Entry struct {
	Name  string
	Kind  Kind
	Value lexer.Literal     // 字面量初始值，没有时 Kind 为 LiteralNone
	Decl  *parser.Statement // 声明节点，树释放后不可再访问
}

// Table 符号表，以名称为键
type Table struct {
	entries map[string]Entry
}

// New 创建一个新的符号表
func New() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// Insert 添加一个符号，名称已存在时返回 ErrRedeclared
func (t *Table) Insert(name string, e Entry) error {
	if _, ok := t.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrRedeclared, name)
	}
	e.Name = name
	t.entries[name] = e
	return nil
}

// Find 查找符号
func (t *Table) Find(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Remove 删除符号，不存在时返回 ErrNotFound
func (t *Table) Remove(name string) error {
	if _, ok := t.entries[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(t.entries, name)
	return nil
}

// Clear 清空符号表
func (t *Table) Clear() {
	clear(t.entries)
}

// Len 返回符号数量
func (t *Table) Len() int {
	return len(t.entries)
}

// Names 返回排序后的全部名称
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Scope 一个作用域：变量和函数各占一张表
type Scope struct {
	Variables *Table
	Functions *Table
}

// NewScope 创建空作用域
func NewScope() *Scope {
	return &Scope{Variables: New(), Functions: New()}
}

// Table 返回存放 kind 类符号的表
func (s *Scope) Table(kind Kind) *Table {
	if kind == KindFunction {
		return s.Functions
	}
	return s.Variables
}

// Lookup 先查变量再查函数
func (s *Scope) Lookup(name string) (Entry, bool) {
	if e, ok := s.Variables.Find(name); ok {
		return e, true
	}
	return s.Functions.Find(name)
}
