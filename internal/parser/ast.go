package parser

import (
	"slices"
	"strings"

	"github.com/tangzhangming/lume/internal/lexer"
)

// Kind 语法树节点类型
type Kind int

const (
	KindProgram Kind = iota
	KindBlock

	// 声明
	KindVarDecl
	KindFunDecl

	// 控制语句
	KindIf
	KindFor
	KindWhile
	KindBreak
	KindContinue
	KindReturn
	KindPrint

	// 表达式，按优先级从低到高
	KindComma
	KindAssign
	KindConditional
	KindLogicalOr
	KindLogicalAnd
	KindBitwiseOr
	KindBitwiseXor
	KindBitwiseAnd
	KindEquality
	KindComparison
	KindShift
	KindTerm
	KindFactor
	KindUnary
	KindCall
	KindIndex
	KindMember
	KindPostfix
	KindBasic

	// 列表
	KindParamList
	KindArgList

	// 控制标记
	KindError // 解析失败的占位
	KindEmpty // 语法上缺省的可选部分，如 for(;;) 的中间子句

	kindCount
)

var kindNames = [kindCount]string{
	KindProgram:     "program",
	KindBlock:       "block",
	KindVarDecl:     "var",
	KindFunDecl:     "fun",
	KindIf:          "if",
	KindFor:         "for",
	KindWhile:       "while",
	KindBreak:       "break",
	KindContinue:    "continue",
	KindReturn:      "return",
	KindPrint:       "print",
	KindComma:       "comma",
	KindAssign:      "assign",
	KindConditional: "conditional",
	KindLogicalOr:   "logical_or",
	KindLogicalAnd:  "logical_and",
	KindBitwiseOr:   "bitwise_or",
	KindBitwiseXor:  "bitwise_xor",
	KindBitwiseAnd:  "bitwise_and",
	KindEquality:    "equality",
	KindComparison:  "comparison",
	KindShift:       "shift",
	KindTerm:        "term",
	KindFactor:      "factor",
	KindUnary:       "unary",
	KindCall:        "call",
	KindIndex:       "index",
	KindMember:      "member",
	KindPostfix:     "postfix",
	KindBasic:       "basic",
	KindParamList:   "params",
	KindArgList:     "args",
	KindError:       "error",
	KindEmpty:       "empty",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// IsOperator 节点是否以运算符 token 为锚点
func (k Kind) IsOperator() bool {
	switch k {
	case KindComma, KindAssign, KindLogicalOr, KindLogicalAnd, KindBitwiseOr, KindBitwiseXor, KindBitwiseAnd,
		KindEquality, KindComparison, KindShift, KindTerm, KindFactor, KindUnary, KindPostfix:
		return true
	}
	return false
}

// Statement 语法树节点。每个节点只属于它的父节点（根节点属于调用方），
// 子节点顺序有意义：二元节点为 [左, 右]，条件表达式为 [条件, 真, 假]。
type Statement struct {
	Kind  Kind
	Token lexer.Token // 锚点 token 的值拷贝，用于诊断和显示

	children []*Statement
	released bool
}

// newNode 创建节点
func newNode(kind Kind, tok lexer.Token) *Statement {
	return &Statement{Kind: kind, Token: tok}
}

// AddChild 追加子节点，节点的所有权转移给 s
func (s *Statement) AddChild(child *Statement) {
	if s.released || child == nil {
		return
	}
	s.children = append(s.children, child)
}

// Children 按顺序返回子节点（副本切片）
func (s *Statement) Children() []*Statement {
	return slices.Clone(s.children)
}

// Child 返回第 i 个子节点
func (s *Statement) Child(i int) *Statement {
	return s.children[i]
}

// Len 返回子节点数量
func (s *Statement) Len() int {
	return len(s.children)
}

// Label 返回节点的显示标签
func (s *Statement) Label() string {
	switch {
	case s.Kind == KindBasic:
		return s.Token.Lexeme
	case s.Kind.IsOperator():
		return s.Kind.String() + " " + s.Token.Lexeme
	default:
		return s.Kind.String()
	}
}

// String 返回 S 表达式形式，叶子节点为词素
func (s *Statement) String() string {
	var b strings.Builder
	s.writeTo(&b)
	return b.String()
}

func (s *Statement) writeTo(b *strings.Builder) {
	if s.Kind == KindBasic {
		b.WriteString(s.Token.Lexeme)
		return
	}
	b.WriteByte('(')
	b.WriteString(s.Label())
	for _, c := range s.children {
		b.WriteByte(' ')
		c.writeTo(b)
	}
	b.WriteByte(')')
}

// Release 自底向上释放整棵子树，返回释放的节点数。
// 对部分构造的子树也安全，重复调用返回 0。
func (s *Statement) Release() int {
	if s == nil || s.released {
		return 0
	}
	n := 0
	for _, c := range s.children {
		n += c.Release()
	}
	s.children = nil
	s.released = true
	return n + 1
}

// Released 节点是否已释放
func (s *Statement) Released() bool {
	return s.released
}

// Visitor 遍历语法树。Visit 返回 nil 时不再进入子节点，
// 否则用返回的 Visitor 遍历子节点，最后以 Visit(nil) 结束。
type Visitor interface {
	Visit(s *Statement) (w Visitor)
}

// Walk 深度优先遍历
func Walk(v Visitor, s *Statement) {
	if v = v.Visit(s); v == nil {
		return
	}
	for _, c := range s.children {
		Walk(v, c)
	}
	v.Visit(nil)
}

type inspector func(*Statement) bool

func (f inspector) Visit(s *Statement) Visitor {
	if s != nil && f(s) {
		return f
	}
	return nil
}

// Inspect 深度优先遍历，f 返回 false 时跳过该节点的子节点
func Inspect(s *Statement, f func(*Statement) bool) {
	Walk(inspector(f), s)
}

// releaseAll 释放一组可能为 nil 的节点
func releaseAll(nodes ...*Statement) {
	for _, n := range nodes {
		n.Release()
	}
}
