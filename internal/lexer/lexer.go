package lexer

import (
	"math"
	"unicode/utf8"

	"github.com/tangzhangming/lume/internal/diag"
	"github.com/tangzhangming/lume/internal/i18n"
)

// maxExponent 指数累加上限，超过后结果已经是 +Inf
const maxExponent = 1 << 20

// maxFracPower 小数部分分母上限，避免 frac/fracPower 变成 NaN
const maxFracPower = 1e300

// operatorStart 可以开始一个运算符的字符
var operatorStart [256]bool

func init() {
	for name := range names {
		if !isLetter(name[0]) {
			operatorStart[name[0]] = true
		}
	}
}

// Lexer 词法分析器，单遍扫描整个源码缓冲区
type Lexer struct {
	input     string
	pos       int // 当前位置
	line      int // 当前行号
	lineStart int // 当前行起始偏移
	errors    int // 本次扫描的错误数
	tokens    *Sequence
	sink      *diag.Sink
}

// New 创建一个新的词法分析器，sink 为 nil 时使用内部收集器
func New(input string, sink *diag.Sink) *Lexer {
	if sink == nil {
		sink = diag.NewSink(diag.StageLexer, nil)
	}
	return &Lexer{
		input:  input,
		line:   1,
		tokens: &Sequence{},
		sink:   sink,
	}
}

// Sink 返回诊断收集器
func (l *Lexer) Sink() *diag.Sink {
	return l.sink
}

// Scan 扫描全部输入，返回 token 序列和错误数量。
// 错误不会中断扫描；序列总是以 EOF 结尾。
func (l *Lexer) Scan() (*Sequence, int) {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == '\n':
			l.pos++
			l.line++
			l.lineStart = l.pos
		case isSpace(ch):
			l.pos++
		case isDigit(ch):
			l.scanNumber()
		case isLetter(ch):
			l.scanName()
		case ch == '"':
			l.scanString()
		case ch == '#':
			l.skipComment()
		case operatorStart[ch]:
			l.scanOperator()
		default:
			r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
			l.report(l.pos, diag.InvalidCharacter, i18n.T(i18n.ErrInvalidCharacter, string(r)))
			l.skipToBoundary()
		}
	}

	l.tokens.push(Token{
		Type:     TOKEN_EOF,
		Line:     l.line,
		Column:   l.pos - l.lineStart,
		StartPos: l.pos,
		EndPos:   l.pos,
	})
	return l.tokens, l.errors
}

// report 记录一个词法错误，列号为 offset 相对行首的偏移
func (l *Lexer) report(offset int, code diag.Code, msg string) {
	l.errors++
	l.sink.Report(diag.Pos{Line: l.line, Column: offset - l.lineStart}, code, msg)
}

// addToken 追加 [start, end) 范围的 token
func (l *Lexer) addToken(t TokenType, start, end int, lit Literal) {
	l.tokens.push(Token{
		Type:     t,
		Lexeme:   l.input[start:end],
		Literal:  lit,
		Line:     l.line,
		Column:   start - l.lineStart,
		StartPos: start,
		EndPos:   end - 1,
	})
}

// peek 返回当前字符，到达末尾时返回 0
func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// scanNumber 读取数字。逐位累加整数、小数和指数部分，
// 值为 (num + frac/fracPower) * 10^exp。
func (l *Lexer) scanNumber() {
	start := l.pos

	var num float64
	for isDigit(l.peek()) {
		num = num*10 + float64(l.peek()-'0')
		l.pos++
	}

	// 小数部分
	var frac float64
	fracPower := 1.0
	if l.peek() == '.' {
		l.pos++
		for isDigit(l.peek()) {
			// 超出 float64 范围的位只消费不累加
			if fracPower < maxFracPower {
				frac = frac*10 + float64(l.peek()-'0')
				fracPower *= 10
			}
			l.pos++
		}
	}

	// 指数部分
	exp := 0
	if c := l.peek(); c == 'e' || c == 'E' {
		l.pos++
		for isDigit(l.peek()) {
			if exp < maxExponent {
				exp = exp*10 + int(l.peek()-'0')
			}
			l.pos++
		}
	}

	num += frac / fracPower
	num *= math.Pow(10, float64(exp))

	// 数字后紧跟字母、数字或 '.'，整个单元无效
	if c := l.peek(); isAlnum(c) || c == '.' {
		l.skipToBoundary()
		l.report(start, diag.InvalidNumber, i18n.T(i18n.ErrInvalidNumber, l.input[start:l.pos]))
		return
	}

	l.addToken(TOKEN_NUMBER, start, l.pos, NumberLiteral(num))
}

// scanName 读取标识符或关键字
func (l *Lexer) scanName() {
	start := l.pos
	for isAlnum(l.peek()) {
		l.pos++
	}
	l.addToken(LookupIdent(l.input[start:l.pos]), start, l.pos, Literal{})
}

// scanString 读取双引号字符串。遇到换行或输入结束时报错并停在该处。
func (l *Lexer) scanString() {
	start := l.pos
	l.pos++ // 跳过开头的 "
	for l.pos < len(l.input) && l.input[l.pos] != '"' && l.input[l.pos] != '\n' {
		l.pos++
	}

	if l.pos >= len(l.input) || l.input[l.pos] == '\n' {
		l.report(start, diag.UnterminatedString, i18n.T(i18n.ErrUnterminatedString, l.input[start:l.pos]))
		return
	}

	l.pos++ // 跳过结尾的 "
	l.addToken(TOKEN_STR_LITERAL, start, l.pos, StringLiteral(l.input[start+1:l.pos-1]))
}

// scanOperator 按最长匹配读取运算符
func (l *Lexer) scanOperator() {
	start := l.pos
	for n := maxOperatorLen; n > 0; n-- {
		if start+n > len(l.input) {
			continue
		}
		if t, ok := lookupOperator(l.input[start : start+n]); ok {
			l.pos += n
			l.addToken(t, start, l.pos, Literal{})
			return
		}
	}
	// operatorStart 保证单字符一定能匹配
	l.pos++
}

// skipComment 跳过 # 注释，保留换行由主循环处理
func (l *Lexer) skipComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
}

// skipToBoundary 跳到下一个空白、换行或输入末尾
func (l *Lexer) skipToBoundary() {
	for l.pos < len(l.input) && !isSpace(l.input[l.pos]) && l.input[l.pos] != '\n' {
		l.pos++
	}
}

// isSpace 判断是否为换行以外的空白
func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\v' || ch == '\f'
}

// isLetter 判断是否为字母或下划线
func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

// isDigit 判断是否为数字
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isAlnum(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

// Tokenize 将输入字符串转换为 token 序列，第二个返回值表示是否有词法错误
func Tokenize(input string) (*Sequence, bool) {
	tokens, errs := New(input, nil).Scan()
	return tokens, errs > 0
}
