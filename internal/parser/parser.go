package parser

import (
	"slices"

	"github.com/tangzhangming/lume/internal/diag"
	"github.com/tangzhangming/lume/internal/i18n"
	"github.com/tangzhangming/lume/internal/lexer"
)

// Options 解析选项
type Options struct {
	// CheckAssignTarget 要求赋值目标为标识符、成员访问或下标访问
	CheckAssignTarget bool
	// RetainErrors 在恢复后用 error 节点占住失败语句的位置
	RetainErrors bool
	// MaxErrors 顶层语句之间检查，达到该错误数后停止解析，0 表示不限制
	MaxErrors int
}

// statementStart 可以开始一条新语句的 token，同步时在此停下
var statementStart = []lexer.TokenType{
	lexer.TOKEN_IF, lexer.TOKEN_WHILE, lexer.TOKEN_FOR, lexer.TOKEN_LBRACE,
	lexer.TOKEN_VAR, lexer.TOKEN_FUN, lexer.TOKEN_BREAK, lexer.TOKEN_CONTINUE,
	lexer.TOKEN_RETURN, lexer.TOKEN_PRINT,
}

// Parser 语法分析器。只读共享 token 序列，维护单个游标。
type Parser struct {
	tokens *lexer.Sequence
	pos    int
	sink   *diag.Sink
	opts   Options
	errors int
}

// New 创建一个新的语法分析器，sink 为 nil 时使用内部收集器
func New(tokens *lexer.Sequence, sink *diag.Sink, opts Options) *Parser {
	if tokens == nil {
		tokens = lexer.NewSequence(nil)
	}
	if sink == nil {
		sink = diag.NewSink(diag.StageParser, nil)
	}
	return &Parser{tokens: tokens, sink: sink, opts: opts}
}

// Sink 返回诊断收集器
func (p *Parser) Sink() *diag.Sink {
	return p.sink
}

// HadError 解析过程中是否出现过错误，一旦置位不会清除
func (p *Parser) HadError() bool {
	return p.errors > 0
}

// ErrorCount 返回本解析器报告的错误数
func (p *Parser) ErrorCount() int {
	return p.errors
}

// peek 返回当前 token，越界时返回结尾的 EOF
func (p *Parser) peek() lexer.Token {
	if p.pos >= p.tokens.Len() {
		return p.tokens.At(p.tokens.Len() - 1)
	}
	return p.tokens.At(p.pos)
}

// atEnd 是否到达 EOF
func (p *Parser) atEnd() bool {
	return p.peek().Type == lexer.TOKEN_EOF
}

// advance 消费并返回当前 token，EOF 不会被越过
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

// check 检查当前 token 类型
func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

// match 当前 token 是否属于给定集合，EOF 时为 false
func (p *Parser) match(set []lexer.TokenType) bool {
	return !p.atEnd() && slices.Contains(set, p.peek().Type)
}

// report 在 tok 处记录错误。位于 EOF 的错误归为 UnexpectedEOF。
func (p *Parser) report(tok lexer.Token, code diag.Code, msg string) {
	if tok.Type == lexer.TOKEN_EOF && code != diag.UnclosedBlock {
		code = diag.UnexpectedEOF
	}
	p.errors++
	p.sink.Report(diag.Pos{Line: tok.Line, Column: tok.Column}, code, msg)
}

// expect 期望当前 token 类型并前进，after 描述前面的语法成分
func (p *Parser) expect(t lexer.TokenType, after string) (lexer.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	tok := p.peek()
	p.report(tok, diag.ExpectedToken, i18n.T(i18n.ErrExpectedAfter, describeType(t), after, describe(tok)))
	return lexer.Token{}, false
}

// describeType 用于诊断的类型描述
func describeType(t lexer.TokenType) string {
	switch t {
	case lexer.TOKEN_IDENTIFIER:
		return "identifier"
	case lexer.TOKEN_EOF:
		return "end of input"
	default:
		return "'" + t.String() + "'"
	}
}

// describe 用于诊断的 token 描述
func describe(tok lexer.Token) string {
	if tok.Type == lexer.TOKEN_EOF {
		return "end of input"
	}
	return "'" + tok.Lexeme + "'"
}

// ParseProgram 解析整个程序。失败的语句被跳过，不会出现在结果中
// （RetainErrors 时以 error 节点占位）。
func (p *Parser) ParseProgram() *Statement {
	program := newNode(KindProgram, p.peek())

	for !p.atEnd() {
		start := p.peek()
		stmt, ok := p.parseStatement()
		if ok {
			program.AddChild(stmt)
		} else {
			p.synchronize()
			if p.opts.RetainErrors {
				program.AddChild(newNode(KindError, start))
			}
		}

		if p.opts.MaxErrors > 0 && p.errors >= p.opts.MaxErrors {
			break
		}
	}

	return program
}

// synchronize 顶层错误恢复：跳到下一条语句的开头（不消费）或 ';'（消费）
func (p *Parser) synchronize() {
	for !p.atEnd() {
		t := p.peek().Type
		if slices.Contains(statementStart, t) {
			return
		}
		p.advance()
		if t == lexer.TOKEN_SEMICOLON {
			return
		}
	}
}

// synchronizeBlock 代码块内的错误恢复，额外在 '}' 前停下
func (p *Parser) synchronizeBlock() {
	for !p.atEnd() {
		t := p.peek().Type
		if t == lexer.TOKEN_RBRACE || slices.Contains(statementStart, t) {
			return
		}
		p.advance()
		if t == lexer.TOKEN_SEMICOLON {
			return
		}
	}
}

// parseStatement 解析语句
func (p *Parser) parseStatement() (*Statement, bool) {
	switch p.peek().Type {
	case lexer.TOKEN_FUN:
		return p.parseFunDecl()
	case lexer.TOKEN_VAR:
		return p.parseVarDecl()
	case lexer.TOKEN_LBRACE:
		return p.parseBlock()
	case lexer.TOKEN_IF:
		return p.parseIfStmt()
	case lexer.TOKEN_FOR:
		return p.parseForStmt()
	case lexer.TOKEN_WHILE:
		return p.parseWhileStmt()
	case lexer.TOKEN_RETURN:
		return p.parseReturnStmt()
	case lexer.TOKEN_PRINT:
		return p.parsePrintStmt()
	case lexer.TOKEN_BREAK, lexer.TOKEN_CONTINUE:
		return p.parseJumpStmt()
	default:
		return p.parseExpressionStatement()
	}
}

// parseFunDecl 解析函数声明: fun IDENT ( [param (, param)*] ) block
func (p *Parser) parseFunDecl() (*Statement, bool) {
	decl := newNode(KindFunDecl, p.advance())

	name, ok := p.expect(lexer.TOKEN_IDENTIFIER, "'fun'")
	if !ok {
		return nil, false
	}
	decl.AddChild(newNode(KindBasic, name))

	params, ok := p.parseParameters()
	if !ok {
		decl.Release()
		return nil, false
	}
	decl.AddChild(params)

	if !p.check(lexer.TOKEN_LBRACE) {
		p.expect(lexer.TOKEN_LBRACE, "function parameters")
		decl.Release()
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		decl.Release()
		return nil, false
	}
	decl.AddChild(body)

	return decl, true
}

// parseParameters 解析形参列表
func (p *Parser) parseParameters() (*Statement, bool) {
	lparen, ok := p.expect(lexer.TOKEN_LPAREN, "function name")
	if !ok {
		return nil, false
	}
	params := newNode(KindParamList, lparen)

	if p.check(lexer.TOKEN_RPAREN) {
		p.advance()
		return params, true
	}

	after := "'('"
	for {
		name, ok := p.expect(lexer.TOKEN_IDENTIFIER, after)
		if !ok {
			params.Release()
			return nil, false
		}
		params.AddChild(newNode(KindBasic, name))

		if !p.check(lexer.TOKEN_COMMA) {
			break
		}
		p.advance()
		after = "','"
	}

	if _, ok := p.expect(lexer.TOKEN_RPAREN, "parameters"); !ok {
		params.Release()
		return nil, false
	}
	return params, true
}

// parseVarDecl 解析变量声明: var IDENT [= expression] ;
func (p *Parser) parseVarDecl() (*Statement, bool) {
	decl := newNode(KindVarDecl, p.advance())

	name, ok := p.expect(lexer.TOKEN_IDENTIFIER, "'var'")
	if !ok {
		return nil, false
	}
	decl.AddChild(newNode(KindBasic, name))

	if p.check(lexer.TOKEN_ASSIGN) {
		assign := p.advance()
		value, ok := p.operand(assign, p.parseAssignment)
		if !ok {
			decl.Release()
			return nil, false
		}
		decl.AddChild(value)
	}

	if _, ok := p.expect(lexer.TOKEN_SEMICOLON, "variable declaration"); !ok {
		decl.Release()
		return nil, false
	}
	return decl, true
}

// parseBlock 解析代码块: { statement* }
func (p *Parser) parseBlock() (*Statement, bool) {
	block := newNode(KindBlock, p.advance())

	for !p.check(lexer.TOKEN_RBRACE) {
		if p.atEnd() {
			p.report(p.peek(), diag.UnclosedBlock, i18n.T(i18n.ErrUnclosedBlock))
			block.Release()
			return nil, false
		}

		start := p.peek()
		stmt, ok := p.parseStatement()
		if ok {
			block.AddChild(stmt)
			continue
		}
		p.synchronizeBlock()
		if p.opts.RetainErrors {
			block.AddChild(newNode(KindError, start))
		}
	}

	p.advance() // 消费 }
	return block, true
}

// parseCondition 解析 ( expression )
func (p *Parser) parseCondition(keyword string) (*Statement, bool) {
	if _, ok := p.expect(lexer.TOKEN_LPAREN, keyword); !ok {
		return nil, false
	}
	cond, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	if !p.check(lexer.TOKEN_RPAREN) {
		p.report(p.peek(), diag.ExpectedToken, i18n.T(i18n.ErrUnclosedParen, keyword+" condition", describe(p.peek())))
		cond.Release()
		return nil, false
	}
	p.advance()
	return cond, true
}

// parseIfStmt 解析 if 语句: if ( expression ) statement [else statement]
func (p *Parser) parseIfStmt() (*Statement, bool) {
	stmt := newNode(KindIf, p.advance())

	cond, ok := p.parseCondition("'if'")
	if !ok {
		return nil, false
	}
	stmt.AddChild(cond)

	then, ok := p.parseStatement()
	if !ok {
		stmt.Release()
		return nil, false
	}
	if then.Kind == KindEmpty {
		p.report(then.Token, diag.EmptyBody, i18n.T(i18n.ErrEmptyIfBody))
		releaseAll(stmt, then)
		return nil, false
	}
	stmt.AddChild(then)

	if p.check(lexer.TOKEN_ELSE) {
		p.advance()
		els, ok := p.parseStatement()
		if !ok {
			stmt.Release()
			return nil, false
		}
		stmt.AddChild(els)
	}

	return stmt, true
}

// parseWhileStmt 解析 while 语句: while ( expression ) statement
func (p *Parser) parseWhileStmt() (*Statement, bool) {
	stmt := newNode(KindWhile, p.advance())

	cond, ok := p.parseCondition("'while'")
	if !ok {
		return nil, false
	}
	stmt.AddChild(cond)

	body, ok := p.parseStatement()
	if !ok {
		stmt.Release()
		return nil, false
	}
	stmt.AddChild(body)

	return stmt, true
}

// parseForStmt 解析 for 语句: for ( expr-stmt expr-stmt [expression] ) statement
// 缺省的子句用 empty 节点表示，子节点固定为 [init, cond, step, body]。
func (p *Parser) parseForStmt() (*Statement, bool) {
	stmt := newNode(KindFor, p.advance())

	if _, ok := p.expect(lexer.TOKEN_LPAREN, "'for'"); !ok {
		return nil, false
	}

	init, ok := p.parseExpressionStatement()
	if !ok {
		return nil, false
	}
	stmt.AddChild(init)

	cond, ok := p.parseExpressionStatement()
	if !ok {
		stmt.Release()
		return nil, false
	}
	stmt.AddChild(cond)

	var step *Statement
	if p.check(lexer.TOKEN_RPAREN) {
		step = newNode(KindEmpty, p.peek())
	} else {
		step, ok = p.parseExpression()
		if !ok {
			stmt.Release()
			return nil, false
		}
	}
	stmt.AddChild(step)

	if !p.check(lexer.TOKEN_RPAREN) {
		p.report(p.peek(), diag.ExpectedToken, i18n.T(i18n.ErrUnclosedParen, "'for' clauses", describe(p.peek())))
		stmt.Release()
		return nil, false
	}
	p.advance()

	body, ok := p.parseStatement()
	if !ok {
		stmt.Release()
		return nil, false
	}
	stmt.AddChild(body)

	return stmt, true
}

// parseReturnStmt 解析 return 语句: return [expression] ;
func (p *Parser) parseReturnStmt() (*Statement, bool) {
	stmt := newNode(KindReturn, p.advance())

	if !p.check(lexer.TOKEN_SEMICOLON) {
		value, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		stmt.AddChild(value)
	}

	if _, ok := p.expect(lexer.TOKEN_SEMICOLON, "return statement"); !ok {
		stmt.Release()
		return nil, false
	}
	return stmt, true
}

// parsePrintStmt 解析 print 语句: print expression ;
func (p *Parser) parsePrintStmt() (*Statement, bool) {
	stmt := newNode(KindPrint, p.advance())

	value, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	stmt.AddChild(value)

	if _, ok := p.expect(lexer.TOKEN_SEMICOLON, "print statement"); !ok {
		stmt.Release()
		return nil, false
	}
	return stmt, true
}

// parseJumpStmt 解析 break ; 和 continue ;
func (p *Parser) parseJumpStmt() (*Statement, bool) {
	keyword := p.advance()
	kind := KindBreak
	if keyword.Type == lexer.TOKEN_CONTINUE {
		kind = KindContinue
	}

	if _, ok := p.expect(lexer.TOKEN_SEMICOLON, "'"+keyword.Lexeme+"'"); !ok {
		return nil, false
	}
	return newNode(kind, keyword), true
}

// parseExpressionStatement 解析表达式语句: expression ; 或单独的 ;
func (p *Parser) parseExpressionStatement() (*Statement, bool) {
	if p.check(lexer.TOKEN_SEMICOLON) {
		return newNode(KindEmpty, p.advance()), true
	}

	expr, ok := p.parseExpression()
	if !ok {
		return nil, false
	}

	if _, ok := p.expect(lexer.TOKEN_SEMICOLON, "expression"); !ok {
		expr.Release()
		return nil, false
	}
	return expr, true
}

// Parse 解析 token 序列，第二个返回值表示是否有语法错误
func Parse(tokens *lexer.Sequence) (*Statement, bool) {
	p := New(tokens, nil, Options{})
	program := p.ParseProgram()
	return program, p.HadError()
}
