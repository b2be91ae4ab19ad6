package parser

import (
	"strconv"

	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/source"
	"tiger/internal/token"
)

// parseExpr parses a full expression. Assignment is recognized here: when the
// operator-precedence climb yields a pure l-value and the next token is :=,
// the l-value becomes an assignment target.
func (p *Parser) parseExpr() (ast.Expr, bool) {
	left, ok := p.parseOr()
	if !ok {
		return nil, false
	}
	if !p.at(token.Assign) {
		return left, true
	}
	ve, isVar := left.(*ast.VarExpr)
	if !isVar {
		p.errorf(diag.SynBadLValue, p.peek().Span, "left side of := is not assignable")
		return nil, false
	}
	p.bump()
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.AssignExpr{
		Var:   ve.Var,
		Value: value,
		Sp:    left.Span().Cover(value.Span()),
	}, true
}

func (p *Parser) parseOr() (ast.Expr, bool) {
	left, ok := p.parseAnd()
	if !ok {
		return nil, false
	}
	for p.at(token.Pipe) {
		p.bump()
		right, ok := p.parseAnd()
		if !ok {
			return nil, false
		}
		left = binary(ast.OpOr, left, right)
	}
	return left, true
}

func (p *Parser) parseAnd() (ast.Expr, bool) {
	left, ok := p.parseComparison()
	if !ok {
		return nil, false
	}
	for p.at(token.Amp) {
		p.bump()
		right, ok := p.parseComparison()
		if !ok {
			return nil, false
		}
		left = binary(ast.OpAnd, left, right)
	}
	return left, true
}

var comparisonOps = map[token.Kind]ast.Op{
	token.Eq:    ast.OpEq,
	token.NotEq: ast.OpNeq,
	token.Lt:    ast.OpLt,
	token.LtEq:  ast.OpLe,
	token.Gt:    ast.OpGt,
	token.GtEq:  ast.OpGe,
}

func (p *Parser) parseComparison() (ast.Expr, bool) {
	left, ok := p.parseAdditive()
	if !ok {
		return nil, false
	}
	for {
		op, isCmp := comparisonOps[p.peek().Kind]
		if !isCmp {
			return left, true
		}
		p.bump()
		right, ok := p.parseAdditive()
		if !ok {
			return nil, false
		}
		left = binary(op, left, right)
	}
}

func (p *Parser) parseAdditive() (ast.Expr, bool) {
	left, ok := p.parseMultiplicative()
	if !ok {
		return nil, false
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.OpPlus
		if p.at(token.Minus) {
			op = ast.OpMinus
		}
		p.bump()
		right, ok := p.parseMultiplicative()
		if !ok {
			return nil, false
		}
		left = binary(op, left, right)
	}
	return left, true
}

func (p *Parser) parseMultiplicative() (ast.Expr, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for p.at(token.Star) || p.at(token.Slash) {
		op := ast.OpTimes
		if p.at(token.Slash) {
			op = ast.OpDivide
		}
		p.bump()
		right, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		left = binary(op, left, right)
	}
	return left, true
}

// parseUnary handles unary minus, emitted as 0 - e.
func (p *Parser) parseUnary() (ast.Expr, bool) {
	if !p.at(token.Minus) {
		return p.parsePrimary()
	}
	minus := p.bump()
	operand, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	zero := &ast.IntExpr{Value: 0, Sp: minus.Span}
	return &ast.OpExpr{
		Op:    ast.OpMinus,
		Left:  zero,
		Right: operand,
		Sp:    minus.Span.Cover(operand.Span()),
	}, true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	switch p.peek().Kind {
	case token.IntLit:
		t := p.bump()
		v, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			// The lexer already reported the range error.
			v = 0
		}
		return &ast.IntExpr{Value: v, Sp: t.Span}, true
	case token.StringLit:
		t := p.bump()
		return &ast.StringExpr{Value: t.Text, Sp: t.Span}, true
	case token.KwNil:
		t := p.bump()
		return &ast.NilExpr{Sp: t.Span}, true
	case token.KwBreak:
		t := p.bump()
		return &ast.BreakExpr{Sp: t.Span}, true
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwLet:
		return p.parseLet()
	case token.LParen:
		return p.parseSeq()
	case token.Ident:
		return p.parseIdentExpr()
	default:
		p.errorf(diag.SynExpectExpr, p.peek().Span, "expected expression, found %s", p.describe(p.peek()))
		return nil, false
	}
}

func (p *Parser) parseIf() (ast.Expr, bool) {
	kw := p.bump()
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwThen); !ok {
		return nil, false
	}
	then, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	end := then.Span()
	var els ast.Expr
	if p.at(token.KwElse) {
		p.bump()
		els, ok = p.parseExpr()
		if !ok {
			return nil, false
		}
		end = els.Span()
	}
	return &ast.IfExpr{Cond: cond, Then: then, Else: els, Sp: kw.Span.Cover(end)}, true
}

func (p *Parser) parseWhile() (ast.Expr, bool) {
	kw := p.bump()
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwDo); !ok {
		return nil, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.WhileExpr{Cond: cond, Body: body, Sp: kw.Span.Cover(body.Span())}, true
}

func (p *Parser) parseFor() (ast.Expr, bool) {
	kw := p.bump()
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign); !ok {
		return nil, false
	}
	lo, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwTo); !ok {
		return nil, false
	}
	hi, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwDo); !ok {
		return nil, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.ForExpr{
		Name: name.Text,
		Lo:   lo,
		Hi:   hi,
		Body: body,
		Sp:   kw.Span.Cover(body.Span()),
	}, true
}

// parseSeq parses ( e1; ...; en ). Zero expressions yield unit, a single
// expression is just grouping.
func (p *Parser) parseSeq() (ast.Expr, bool) {
	open := p.bump()
	if p.at(token.RParen) {
		closing := p.bump()
		return &ast.SeqExpr{Sp: open.Span.Cover(closing.Span)}, true
	}
	var exprs []ast.Expr
	for {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		exprs = append(exprs, e)
		if !p.at(token.Semicolon) {
			break
		}
		p.bump()
	}
	closing, ok := p.expect(token.RParen)
	if !ok {
		return nil, false
	}
	if len(exprs) == 1 {
		return exprs[0], true
	}
	return &ast.SeqExpr{Exprs: exprs, Sp: open.Span.Cover(closing.Span)}, true
}

// parseIdentExpr handles every construct that begins with an identifier:
// calls, record and array literals, and l-values with chained . and [].
// The array/subscript split needs lookahead past the closing bracket:
// ID [E] of E is an array literal, ID [E] without of is a subscript.
func (p *Parser) parseIdentExpr() (ast.Expr, bool) {
	name := p.bump()
	switch p.peek().Kind {
	case token.LParen:
		return p.parseCall(name)
	case token.LBrace:
		return p.parseRecordLit(name)
	case token.LBracket:
		p.bump()
		index, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		closing, ok := p.expect(token.RBracket)
		if !ok {
			return nil, false
		}
		if p.at(token.KwOf) {
			p.bump()
			init, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			return &ast.ArrayExpr{
				TypeName: name.Text,
				Size:     index,
				Init:     init,
				Sp:       name.Span.Cover(init.Span()),
			}, true
		}
		v := ast.Var(&ast.SubscriptVar{
			Base:  &ast.SimpleVar{Name: name.Text, Sp: name.Span},
			Index: index,
			Sp:    name.Span.Cover(closing.Span),
		})
		return p.parseVarTail(v)
	default:
		return p.parseVarTail(&ast.SimpleVar{Name: name.Text, Sp: name.Span})
	}
}

// parseVarTail extends an l-value with .field and [index] links.
func (p *Parser) parseVarTail(v ast.Var) (ast.Expr, bool) {
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.bump()
			field, ok := p.expect(token.Ident)
			if !ok {
				return nil, false
			}
			v = &ast.FieldVar{Base: v, Field: field.Text, Sp: v.Span().Cover(field.Span)}
		case token.LBracket:
			p.bump()
			index, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			closing, ok := p.expect(token.RBracket)
			if !ok {
				return nil, false
			}
			v = &ast.SubscriptVar{Base: v, Index: index, Sp: v.Span().Cover(closing.Span)}
		default:
			return &ast.VarExpr{Var: v, Sp: v.Span()}, true
		}
	}
}

func (p *Parser) parseCall(name token.Token) (ast.Expr, bool) {
	p.bump() // (
	var args []ast.Expr
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.bump()
		}
	}
	closing, ok := p.expect(token.RParen)
	if !ok {
		return nil, false
	}
	return &ast.CallExpr{Func: name.Text, Args: args, Sp: name.Span.Cover(closing.Span)}, true
}

func (p *Parser) parseRecordLit(name token.Token) (ast.Expr, bool) {
	p.bump() // {
	var fields []ast.FieldInit
	if !p.at(token.RBrace) {
		for {
			fname, ok := p.expect(token.Ident)
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(token.Eq); !ok {
				return nil, false
			}
			value, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			fields = append(fields, ast.FieldInit{
				Name:  fname.Text,
				Value: value,
				Sp:    fname.Span.Cover(value.Span()),
			})
			if !p.at(token.Comma) {
				break
			}
			p.bump()
		}
	}
	closing, ok := p.expect(token.RBrace)
	if !ok {
		return nil, false
	}
	return &ast.RecordExpr{TypeName: name.Text, Fields: fields, Sp: name.Span.Cover(closing.Span)}, true
}

func binary(op ast.Op, left, right ast.Expr) ast.Expr {
	return &ast.OpExpr{Op: op, Left: left, Right: right, Sp: spanCover(left.Span(), right.Span())}
}

func spanCover(a, b source.Span) source.Span {
	return a.Cover(b)
}
