package parser

import (
	"slices"

	"github.com/tangzhangming/lume/internal/diag"
	"github.com/tangzhangming/lume/internal/i18n"
	"github.com/tangzhangming/lume/internal/lexer"
)

// 各优先级层的运算符集合
var (
	assignOps = []lexer.TokenType{
		lexer.TOKEN_ASSIGN, lexer.TOKEN_PLUS_ASSIGN, lexer.TOKEN_MINUS_ASSIGN,
		lexer.TOKEN_STAR_ASSIGN, lexer.TOKEN_SLASH_ASSIGN, lexer.TOKEN_PERCENT_ASSIGN,
		lexer.TOKEN_SHL_ASSIGN, lexer.TOKEN_SHR_ASSIGN, lexer.TOKEN_AND_ASSIGN,
		lexer.TOKEN_OR_ASSIGN, lexer.TOKEN_XOR_ASSIGN,
	}
	commaOps      = []lexer.TokenType{lexer.TOKEN_COMMA}
	logicalOrOps  = []lexer.TokenType{lexer.TOKEN_OR}
	logicalAndOps = []lexer.TokenType{lexer.TOKEN_AND}
	bitwiseOrOps  = []lexer.TokenType{lexer.TOKEN_BIT_OR}
	bitwiseXorOps = []lexer.TokenType{lexer.TOKEN_BIT_XOR}
	bitwiseAndOps = []lexer.TokenType{lexer.TOKEN_BIT_AND}
	equalityOps   = []lexer.TokenType{lexer.TOKEN_EQ, lexer.TOKEN_NOT_EQ}
	comparisonOps = []lexer.TokenType{lexer.TOKEN_LT, lexer.TOKEN_GT, lexer.TOKEN_LT_EQ, lexer.TOKEN_GT_EQ}
	shiftOps      = []lexer.TokenType{lexer.TOKEN_SHL, lexer.TOKEN_SHR}
	termOps       = []lexer.TokenType{lexer.TOKEN_PLUS, lexer.TOKEN_MINUS}
	factorOps     = []lexer.TokenType{lexer.TOKEN_STAR, lexer.TOKEN_SLASH, lexer.TOKEN_PERCENT}
	unaryOps      = []lexer.TokenType{
		lexer.TOKEN_NOT, lexer.TOKEN_BIT_NOT, lexer.TOKEN_INC, lexer.TOKEN_DEC,
		lexer.TOKEN_PLUS, lexer.TOKEN_MINUS,
	}
)

// expressionStart 可以开始一个表达式的 token
var expressionStart = []lexer.TokenType{
	lexer.TOKEN_NUMBER, lexer.TOKEN_STR_LITERAL, lexer.TOKEN_IDENTIFIER,
	lexer.TOKEN_TRUE, lexer.TOKEN_FALSE, lexer.TOKEN_NIL, lexer.TOKEN_LPAREN,
	lexer.TOKEN_NOT, lexer.TOKEN_BIT_NOT, lexer.TOKEN_INC, lexer.TOKEN_DEC,
	lexer.TOKEN_PLUS, lexer.TOKEN_MINUS,
}

// startsExpression 当前 token 能否开始一个表达式
func (p *Parser) startsExpression() bool {
	return slices.Contains(expressionStart, p.peek().Type)
}

// operand 解析运算符 op 右侧的操作数。操作数缺失时在此报告一次，
// 调用链上层不再重复报告。
func (p *Parser) operand(op lexer.Token, next func() (*Statement, bool)) (*Statement, bool) {
	if !p.startsExpression() {
		p.report(p.peek(), diag.MissingOperand, i18n.T(i18n.ErrMissingOperand, op.Lexeme))
		return nil, false
	}
	return next()
}

// parseBinary 解析左结合的二元运算层
func (p *Parser) parseBinary(kind Kind, ops []lexer.TokenType, next func() (*Statement, bool)) (*Statement, bool) {
	left, ok := next()
	if !ok {
		return nil, false
	}

	for p.match(ops) {
		op := p.advance()
		right, ok := p.operand(op, next)
		if !ok {
			left.Release()
			return nil, false
		}
		node := newNode(kind, op)
		node.AddChild(left)
		node.AddChild(right)
		left = node
	}

	return left, true
}

// parseExpression 解析逗号表达式: assignment (, assignment)*
func (p *Parser) parseExpression() (*Statement, bool) {
	return p.parseBinary(KindComma, commaOps, p.parseAssignment)
}

// parseAssignment 解析赋值表达式，右结合
func (p *Parser) parseAssignment() (*Statement, bool) {
	left, ok := p.parseConditional()
	if !ok {
		return nil, false
	}
	if !p.match(assignOps) {
		return left, true
	}

	op := p.advance()
	if p.opts.CheckAssignTarget && !assignable(left) {
		p.report(op, diag.InvalidAssignTarget, i18n.T(i18n.ErrInvalidAssignTarget, op.Lexeme))
		left.Release()
		return nil, false
	}

	right, ok := p.operand(op, p.parseAssignment)
	if !ok {
		left.Release()
		return nil, false
	}

	node := newNode(KindAssign, op)
	node.AddChild(left)
	node.AddChild(right)
	return node, true
}

// assignable 标识符、成员访问和下标访问可以被赋值
func assignable(s *Statement) bool {
	switch s.Kind {
	case KindBasic:
		return s.Token.Type == lexer.TOKEN_IDENTIFIER
	case KindMember, KindIndex:
		return true
	}
	return false
}

// parseConditional 解析条件表达式: logical_or [? assignment : conditional]
func (p *Parser) parseConditional() (*Statement, bool) {
	cond, ok := p.parseLogicalOr()
	if !ok {
		return nil, false
	}
	if !p.check(lexer.TOKEN_QUESTION) {
		return cond, true
	}

	question := p.advance()
	then, ok := p.operand(question, p.parseAssignment)
	if !ok {
		cond.Release()
		return nil, false
	}

	if !p.check(lexer.TOKEN_COLON) {
		p.report(p.peek(), diag.ExpectedToken, i18n.T(i18n.ErrExpectedToken, "':'", describe(p.peek())))
		releaseAll(cond, then)
		return nil, false
	}
	colon := p.advance()

	els, ok := p.operand(colon, p.parseConditional)
	if !ok {
		releaseAll(cond, then)
		return nil, false
	}

	node := newNode(KindConditional, question)
	node.AddChild(cond)
	node.AddChild(then)
	node.AddChild(els)
	return node, true
}

func (p *Parser) parseLogicalOr() (*Statement, bool) {
	return p.parseBinary(KindLogicalOr, logicalOrOps, p.parseLogicalAnd)
}

func (p *Parser) parseLogicalAnd() (*Statement, bool) {
	return p.parseBinary(KindLogicalAnd, logicalAndOps, p.parseBitwiseOr)
}

func (p *Parser) parseBitwiseOr() (*Statement, bool) {
	return p.parseBinary(KindBitwiseOr, bitwiseOrOps, p.parseBitwiseXor)
}

func (p *Parser) parseBitwiseXor() (*Statement, bool) {
	return p.parseBinary(KindBitwiseXor, bitwiseXorOps, p.parseBitwiseAnd)
}

func (p *Parser) parseBitwiseAnd() (*Statement, bool) {
	return p.parseBinary(KindBitwiseAnd, bitwiseAndOps, p.parseEquality)
}

func (p *Parser) parseEquality() (*Statement, bool) {
	return p.parseBinary(KindEquality, equalityOps, p.parseComparison)
}

func (p *Parser) parseComparison() (*Statement, bool) {
	return p.parseBinary(KindComparison, comparisonOps, p.parseShift)
}

func (p *Parser) parseShift() (*Statement, bool) {
	return p.parseBinary(KindShift, shiftOps, p.parseTerm)
}

func (p *Parser) parseTerm() (*Statement, bool) {
	return p.parseBinary(KindTerm, termOps, p.parseFactor)
}

func (p *Parser) parseFactor() (*Statement, bool) {
	return p.parseBinary(KindFactor, factorOps, p.parseUnary)
}

// parseUnary 解析前缀一元表达式
func (p *Parser) parseUnary() (*Statement, bool) {
	if !p.match(unaryOps) {
		return p.parsePostfix()
	}

	op := p.advance()
	right, ok := p.operand(op, p.parseUnary)
	if !ok {
		return nil, false
	}

	node := newNode(KindUnary, op)
	node.AddChild(right)
	return node, true
}

// parsePostfix 解析调用、下标、成员访问和后缀自增自减
func (p *Parser) parsePostfix() (*Statement, bool) {
	expr, ok := p.parseBasic()
	if !ok {
		return nil, false
	}

	for {
		var node *Statement
		switch p.peek().Type {
		case lexer.TOKEN_LPAREN:
			node, ok = p.parseCall(expr)
		case lexer.TOKEN_LBRACKET:
			node, ok = p.parseIndex(expr)
		case lexer.TOKEN_DOT:
			node, ok = p.parseMember(expr)
		case lexer.TOKEN_INC, lexer.TOKEN_DEC:
			node = newNode(KindPostfix, p.advance())
			node.AddChild(expr)
			ok = true
		default:
			return expr, true
		}

		if !ok {
			return nil, false
		}
		expr = node
	}
}

// parseCall 解析调用: callee ( [assignment (, assignment)*] )
// 失败时释放 callee。
func (p *Parser) parseCall(callee *Statement) (*Statement, bool) {
	lparen := p.advance()
	args := newNode(KindArgList, lparen)

	if !p.check(lexer.TOKEN_RPAREN) {
		for {
			arg, ok := p.parseAssignment()
			if !ok {
				releaseAll(callee, args)
				return nil, false
			}
			args.AddChild(arg)

			if !p.check(lexer.TOKEN_COMMA) {
				break
			}
			p.advance()
		}
	}

	if !p.check(lexer.TOKEN_RPAREN) {
		p.report(p.peek(), diag.ExpectedToken, i18n.T(i18n.ErrUnclosedParen, "call arguments", describe(p.peek())))
		releaseAll(callee, args)
		return nil, false
	}
	p.advance()

	call := newNode(KindCall, lparen)
	call.AddChild(callee)
	call.AddChild(args)
	return call, true
}

// parseIndex 解析下标: target [ expression ]
func (p *Parser) parseIndex(target *Statement) (*Statement, bool) {
	lbracket := p.advance()

	index, ok := p.parseExpression()
	if !ok {
		target.Release()
		return nil, false
	}

	if _, ok := p.expect(lexer.TOKEN_RBRACKET, "index"); !ok {
		releaseAll(target, index)
		return nil, false
	}

	node := newNode(KindIndex, lbracket)
	node.AddChild(target)
	node.AddChild(index)
	return node, true
}

// parseMember 解析成员访问: target . IDENT
func (p *Parser) parseMember(target *Statement) (*Statement, bool) {
	dot := p.advance()

	name, ok := p.expect(lexer.TOKEN_IDENTIFIER, "'.'")
	if !ok {
		target.Release()
		return nil, false
	}

	node := newNode(KindMember, dot)
	node.AddChild(target)
	node.AddChild(newNode(KindBasic, name))
	return node, true
}

// parseBasic 解析基本表达式：字面量、标识符或括号表达式。
// 括号不产生节点，直接返回内部表达式。
func (p *Parser) parseBasic() (*Statement, bool) {
	tok := p.peek()

	switch tok.Type {
	case lexer.TOKEN_NUMBER, lexer.TOKEN_STR_LITERAL, lexer.TOKEN_IDENTIFIER,
		lexer.TOKEN_TRUE, lexer.TOKEN_FALSE, lexer.TOKEN_NIL:
		p.advance()
		return newNode(KindBasic, tok), true

	case lexer.TOKEN_LPAREN:
		p.advance()
		inner, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		if !p.check(lexer.TOKEN_RPAREN) {
			p.report(p.peek(), diag.ExpectedToken, i18n.T(i18n.ErrUnclosedParen, "'('", describe(p.peek())))
			inner.Release()
			return nil, false
		}
		p.advance()
		return inner, true
	}

	p.report(tok, diag.ExpectedToken, i18n.T(i18n.ErrExpectedExpression, describe(tok)))
	return nil, false
}
