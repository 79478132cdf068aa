package lexer

import "slices"

// TokenType 表示 token 的类型
type TokenType int

const (
	// 特殊 token
	TOKEN_NONE TokenType = iota
	TOKEN_EOF

	// 标识符和字面量
	TOKEN_IDENTIFIER  // 标识符
	TOKEN_NUMBER      // 数字
	TOKEN_STR_LITERAL // 字符串

	// 运算符
	TOKEN_PLUS    // +
	TOKEN_MINUS   // -
	TOKEN_STAR    // *
	TOKEN_SLASH   // /
	TOKEN_PERCENT // %
	TOKEN_NOT     // !
	TOKEN_BIT_NOT // ~
	TOKEN_INC     // ++
	TOKEN_DEC     // --

	TOKEN_ASSIGN         // =
	TOKEN_PLUS_ASSIGN    // +=
	TOKEN_MINUS_ASSIGN   // -=
	TOKEN_STAR_ASSIGN    // *=
	TOKEN_SLASH_ASSIGN   // /=
	TOKEN_PERCENT_ASSIGN // %=
	TOKEN_SHL_ASSIGN     // <<=
	TOKEN_SHR_ASSIGN     // >>=
	TOKEN_AND_ASSIGN     // &=
	TOKEN_OR_ASSIGN      // |=
	TOKEN_XOR_ASSIGN     // ^=

	TOKEN_EQ     // ==
	TOKEN_NOT_EQ // !=
	TOKEN_LT     // <
	TOKEN_GT     // >
	TOKEN_LT_EQ  // <=
	TOKEN_GT_EQ  // >=

	TOKEN_SHL // <<
	TOKEN_SHR // >>

	TOKEN_AND // &&
	TOKEN_OR  // ||

	TOKEN_BIT_AND // &
	TOKEN_BIT_OR  // |
	TOKEN_BIT_XOR // ^

	// 分隔符
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_DOT       // .
	TOKEN_QUESTION  // ?
	TOKEN_COLON     // :

	// 关键字
	TOKEN_IF       // if
	TOKEN_ELSE     // else
	TOKEN_FOR      // for
	TOKEN_WHILE    // while
	TOKEN_FUN      // fun
	TOKEN_VAR      // var
	TOKEN_TRUE     // true
	TOKEN_FALSE    // false
	TOKEN_NIL      // nil
	TOKEN_RETURN   // return
	TOKEN_PRINT    // print
	TOKEN_BREAK    // break
	TOKEN_CONTINUE // continue

	tokenTypeCount
)

// LiteralKind 字面量类别
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralNumber
	LiteralString
)

// Literal 字面量值，只出现在 NUMBER 和 STR_LITERAL token 上
type Literal struct {
	Kind LiteralKind
	Num  float64
	Str  string
}

// NumberLiteral 构造数字字面量
func NumberLiteral(v float64) Literal {
	return Literal{Kind: LiteralNumber, Num: v}
}

// StringLiteral 构造字符串字面量
func StringLiteral(s string) Literal {
	return Literal{Kind: LiteralString, Str: s}
}

// Token 表示一个词法单元
type Token struct {
	Type     TokenType
	Lexeme   string  // 源码中的原文
	Literal  Literal // 字面量值（可选）
	Line     int     // 行号，从 1 开始
	Column   int     // 行内起始偏移
	StartPos int     // 起始字节偏移
	EndPos   int     // 结束字节偏移（包含）
}

// HasLiteral 是否携带字面量
func (t Token) HasLiteral() bool {
	return t.Literal.Kind != LiteralNone
}

// names 运算符与关键字表，扫描运算符和查找关键字共用
var names = map[string]TokenType{
	"+":   TOKEN_PLUS,
	"-":   TOKEN_MINUS,
	"*":   TOKEN_STAR,
	"/":   TOKEN_SLASH,
	"%":   TOKEN_PERCENT,
	"!":   TOKEN_NOT,
	"~":   TOKEN_BIT_NOT,
	"++":  TOKEN_INC,
	"--":  TOKEN_DEC,
	"=":   TOKEN_ASSIGN,
	"+=":  TOKEN_PLUS_ASSIGN,
	"-=":  TOKEN_MINUS_ASSIGN,
	"*=":  TOKEN_STAR_ASSIGN,
	"/=":  TOKEN_SLASH_ASSIGN,
	"%=":  TOKEN_PERCENT_ASSIGN,
	"<<=": TOKEN_SHL_ASSIGN,
	">>=": TOKEN_SHR_ASSIGN,
	"&=":  TOKEN_AND_ASSIGN,
	"|=":  TOKEN_OR_ASSIGN,
	"^=":  TOKEN_XOR_ASSIGN,
	"==":  TOKEN_EQ,
	"!=":  TOKEN_NOT_EQ,
	"<":   TOKEN_LT,
	">":   TOKEN_GT,
	"<=":  TOKEN_LT_EQ,
	">=":  TOKEN_GT_EQ,
	"<<":  TOKEN_SHL,
	">>":  TOKEN_SHR,
	"&&":  TOKEN_AND,
	"||":  TOKEN_OR,
	"&":   TOKEN_BIT_AND,
	"|":   TOKEN_BIT_OR,
	"^":   TOKEN_BIT_XOR,
	"(":   TOKEN_LPAREN,
	")":   TOKEN_RPAREN,
	"{":   TOKEN_LBRACE,
	"}":   TOKEN_RBRACE,
	"[":   TOKEN_LBRACKET,
	"]":   TOKEN_RBRACKET,
	",":   TOKEN_COMMA,
	";":   TOKEN_SEMICOLON,
	".":   TOKEN_DOT,
	"?":   TOKEN_QUESTION,
	":":   TOKEN_COLON,

	"if":       TOKEN_IF,
	"else":     TOKEN_ELSE,
	"for":      TOKEN_FOR,
	"while":    TOKEN_WHILE,
	"fun":      TOKEN_FUN,
	"var":      TOKEN_VAR,
	"true":     TOKEN_TRUE,
	"false":    TOKEN_FALSE,
	"nil":      TOKEN_NIL,
	"return":   TOKEN_RETURN,
	"print":    TOKEN_PRINT,
	"break":    TOKEN_BREAK,
	"continue": TOKEN_CONTINUE,
}

// maxOperatorLen 最长运算符长度（<<= 和 >>=）
const maxOperatorLen = 3

var typeNames [tokenTypeCount]string

func init() {
	for name, t := range names {
		typeNames[t] = name
	}
	typeNames[TOKEN_NONE] = "NONE"
	typeNames[TOKEN_EOF] = "EOF"
	typeNames[TOKEN_IDENTIFIER] = "IDENTIFIER"
	typeNames[TOKEN_NUMBER] = "NUMBER"
	typeNames[TOKEN_STR_LITERAL] = "STR_LITERAL"
}

// String 返回 token 类型的名称
func (t TokenType) String() string {
	if t >= 0 && t < tokenTypeCount {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// LookupIdent 查找标识符是否为关键字
func LookupIdent(ident string) TokenType {
	if tok, ok := names[ident]; ok && tok.IsKeyword() {
		return tok
	}
	return TOKEN_IDENTIFIER
}

// lookupOperator 查找运算符
func lookupOperator(op string) (TokenType, bool) {
	if op == "" || isLetter(op[0]) {
		return TOKEN_NONE, false
	}
	tok, ok := names[op]
	return tok, ok
}

// IsKeyword 判断类型是否为关键字
func (t TokenType) IsKeyword() bool {
	return t >= TOKEN_IF && t <= TOKEN_CONTINUE
}

// Sequence 有序 token 序列。Scan 结束后只读，可被多个读者共享。
type Sequence struct {
	tokens []Token
}

// NewSequence 用给定 token 构造序列，缺少结尾 EOF 时补上
func NewSequence(tokens []Token) *Sequence {
	s := &Sequence{tokens: slices.Clone(tokens)}
	if n := len(s.tokens); n == 0 || s.tokens[n-1].Type != TOKEN_EOF {
		eof := Token{Type: TOKEN_EOF, Line: 1}
		if n > 0 {
			last := s.tokens[n-1]
			eof.Line = last.Line
			eof.StartPos = last.EndPos + 1
			eof.EndPos = last.EndPos + 1
			eof.Column = last.Column + len(last.Lexeme)
		}
		s.tokens = append(s.tokens, eof)
	}
	return s
}

func (s *Sequence) push(tok Token) {
	s.tokens = append(s.tokens, tok)
}

// Len 返回 token 数量（包含 EOF）
func (s *Sequence) Len() int {
	return len(s.tokens)
}

// At 返回第 i 个 token
func (s *Sequence) At(i int) Token {
	return s.tokens[i]
}

// Tokens 返回 token 的副本
func (s *Sequence) Tokens() []Token {
	return slices.Clone(s.tokens)
}

// Types 返回每个 token 的类型，便于比较
func (s *Sequence) Types() []TokenType {
	out := make([]TokenType, len(s.tokens))
	for i, tok := range s.tokens {
		out[i] = tok.Type
	}
	return out
}
