package parser

import (
	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/token"
)

// parseLet parses let decls in exprs end. The body is a semicolon-separated
// sequence that may be empty.
func (p *Parser) parseLet() (ast.Expr, bool) {
	kw := p.bump()
	var decls []ast.Decl
	for p.at(token.KwType) || p.at(token.KwVar) || p.at(token.KwFunction) {
		d, ok := p.parseDecl()
		if !ok {
			return nil, false
		}
		decls = append(decls, d)
	}
	if _, ok := p.expect(token.KwIn); !ok {
		return nil, false
	}
	var body []ast.Expr
	if !p.at(token.KwEnd) {
		for {
			e, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			body = append(body, e)
			if !p.at(token.Semicolon) {
				break
			}
			p.bump()
		}
	}
	end, ok := p.expect(token.KwEnd)
	if !ok {
		return nil, false
	}
	return &ast.LetExpr{Decls: decls, Body: body, Sp: kw.Span.Cover(end.Span)}, true
}

func (p *Parser) parseDecl() (ast.Decl, bool) {
	switch p.peek().Kind {
	case token.KwType:
		return p.parseTypeDecl()
	case token.KwVar:
		return p.parseVarDecl()
	case token.KwFunction:
		return p.parseFuncDecl()
	default:
		p.errorf(diag.SynExpectDecl, p.peek().Span, "expected declaration, found %s", p.describe(p.peek()))
		return nil, false
	}
}

// parseTypeDecl parses type id = ty.
func (p *Parser) parseTypeDecl() (ast.Decl, bool) {
	kw := p.bump()
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Eq); !ok {
		return nil, false
	}
	ty, ok := p.parseTy()
	if !ok {
		return nil, false
	}
	return &ast.TypeDecl{Name: name.Text, Ty: ty, Sp: kw.Span.Cover(ty.Span())}, true
}

// parseVarDecl parses var id [: typeid] := expr.
func (p *Parser) parseVarDecl() (ast.Decl, bool) {
	kw := p.bump()
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	d := &ast.VarDecl{Name: name.Text}
	if p.at(token.Colon) {
		p.bump()
		tn, ok := p.expect(token.Ident)
		if !ok {
			return nil, false
		}
		d.TypeName = tn.Text
		d.TypeSp = tn.Span
	}
	if _, ok := p.expect(token.Assign); !ok {
		return nil, false
	}
	init, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	d.Init = init
	d.Sp = kw.Span.Cover(init.Span())
	return d, true
}

// parseFuncDecl parses function id(params) [: typeid] = expr.
func (p *Parser) parseFuncDecl() (ast.Decl, bool) {
	kw := p.bump()
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	params, ok := p.parseFields(token.RParen)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	d := &ast.FuncDecl{Name: name.Text, Params: params}
	if p.at(token.Colon) {
		p.bump()
		result, ok := p.expect(token.Ident)
		if !ok {
			return nil, false
		}
		d.Result = result.Text
		d.ResultSp = result.Span
	}
	if _, ok := p.expect(token.Eq); !ok {
		return nil, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	d.Body = body
	d.Sp = kw.Span.Cover(body.Span())
	return d, true
}

// parseFields parses a comma-separated id: typeid list, stopping before
// closer. Used for both function parameters and record type fields.
func (p *Parser) parseFields(closer token.Kind) ([]*ast.Field, bool) {
	var fields []*ast.Field
	if p.at(closer) {
		return fields, true
	}
	for {
		name, ok := p.expect(token.Ident)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			return nil, false
		}
		tn, ok := p.expect(token.Ident)
		if !ok {
			return nil, false
		}
		fields = append(fields, &ast.Field{
			Name:     name.Text,
			TypeName: tn.Text,
			Sp:       name.Span.Cover(tn.Span),
		})
		if !p.at(token.Comma) {
			return fields, true
		}
		p.bump()
	}
}

// parseTy parses the right side of a type declaration:
// a type name, { fields }, or array of id.
func (p *Parser) parseTy() (ast.Ty, bool) {
	switch p.peek().Kind {
	case token.Ident:
		t := p.bump()
		return &ast.NameTy{Name: t.Text, Sp: t.Span}, true
	case token.LBrace:
		open := p.bump()
		fields, ok := p.parseFields(token.RBrace)
		if !ok {
			return nil, false
		}
		closing, ok := p.expect(token.RBrace)
		if !ok {
			return nil, false
		}
		return &ast.RecordTy{Fields: fields, Sp: open.Span.Cover(closing.Span)}, true
	case token.KwArray:
		kw := p.bump()
		if _, ok := p.expect(token.KwOf); !ok {
			return nil, false
		}
		elem, ok := p.expect(token.Ident)
		if !ok {
			return nil, false
		}
		return &ast.ArrayTy{Elem: elem.Text, Sp: kw.Span.Cover(elem.Span)}, true
	default:
		p.errorf(diag.SynExpectType, p.peek().Span, "expected type, found %s", p.describe(p.peek()))
		return nil, false
	}
}
