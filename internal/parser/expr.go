package parser

import (
	"github.com/gmofishsauce/yapc/internal/ast"
	"github.com/gmofishsauce/yapc/internal/diag"
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/gmofishsauce/yapc/internal/token"
)

// expression parses an expression binding no looser than minPrec, the
// Pratt core every statement-level construct bottoms out in.
func (p *Parser) expression(minPrec precedence) ast.Expr {
	left := p.unary()

	for {
		if minPrec <= precAssignment && p.current.Type == token.ASSIGN {
			left = p.finishAssignment(left)
			continue
		}
		if minPrec <= precAssignment && terseOps[p.current.Type] {
			left = p.finishTerseAssignment(left)
			continue
		}
		if minPrec <= precTernary && p.current.Type == token.QUESTION {
			left = p.finishTernary(left)
			continue
		}
		if prec, ok := binPrecedence[p.current.Type]; ok && prec >= minPrec {
			left = p.finishBinary(left, prec)
			continue
		}
		break
	}
	return left
}

func (p *Parser) finishAssignment(target ast.Expr) ast.Expr {
	tok := p.current
	p.advance() // '='
	asn := &ast.Assignment{Base: ast.Base{Token: tok}, Target: target}
	if p.current.Type == token.LBRACE {
		asn.InitList = p.initializerList().(*ast.InitializerList)
	} else {
		asn.RHS = p.expression(precAssignment)
	}
	if id, ok := target.(*ast.Identifier); ok {
		if sym, found := p.scope.Lookup(id.Token); found {
			sym.State = symtab.StateDefined
			id.Sym = sym
		}
	}
	return asn
}

func (p *Parser) finishTerseAssignment(target ast.Expr) ast.Expr {
	op := p.current.Type
	tok := p.current
	p.advance()
	rhs := p.expression(precAssignment)
	return &ast.TerseAssignment{Base: ast.Base{Token: tok}, Target: target, Op: op, RHS: rhs}
}

func (p *Parser) finishTernary(cond ast.Expr) ast.Expr {
	tok := p.current
	p.advance() // '?'
	then := p.expression(precAssignment)
	p.consume(token.COLON, ":")
	els := p.expression(precTernary)
	return &ast.Ternary{Base: ast.Base{Token: tok}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) finishBinary(left ast.Expr, prec precedence) ast.Expr {
	op := p.current.Type
	tok := p.current
	p.advance()
	right := p.expression(prec + 1)
	switch {
	case op == token.AND_AND || op == token.OR_OR || isComparison(op):
		return &ast.BinaryLogical{Base: ast.Base{Token: tok}, Op: op, Left: left, Right: right}
	case op == token.AMP || op == token.PIPE || op == token.CARET || op == token.SHL || op == token.SHR:
		return &ast.BinaryBitwise{Base: ast.Base{Token: tok}, Op: op, Left: left, Right: right}
	default:
		return &ast.BinaryArithmetic{Base: ast.Base{Token: tok}, Op: op, Left: left, Right: right}
	}
}

func isComparison(t token.Type) bool {
	switch t {
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return true
	default:
		return false
	}
}

// unary handles prefix operators (!, ~, unary -, ++/--) and falls
// through to postfix/primary otherwise.
func (p *Parser) unary() ast.Expr {
	switch p.current.Type {
	case token.BANG, token.TILDE, token.MINUS:
		op := p.current.Type
		tok := p.current
		p.advance()
		operand := p.expression(precUnary)
		return &ast.UnaryOp{Base: ast.Base{Token: tok}, Op: op, Operand: operand}
	case token.PLUS_PLUS, token.MINUS_MINUS:
		op := p.current.Type
		tok := p.current
		p.advance()
		target := p.expression(precPrefixIncDec)
		return &ast.PrefixIncDec{Base: ast.Base{Token: tok}, Op: op, Target: target}
	default:
		return p.postfix()
	}
}

// postfix handles subscript, field-access, and ++/-- suffixes chained
// onto a primary expression (calls are parsed by primary).
func (p *Parser) postfix() ast.Expr {
	expr := p.primary()
	for {
		switch p.current.Type {
		case token.LBRACKET:
			tok := p.current
			p.advance()
			idx := p.expression(precAssignment)
			p.consume(token.RBRACKET, "]")
			expr = &ast.ArraySubscript{Base: ast.Base{Token: tok}, Array: expr, Index: idx}
		case token.DOT:
			p.advance()
			fieldTok := p.consume(token.IDENT, "field name")
			expr = &ast.StructFieldAccess{Base: ast.Base{Token: fieldTok}, Struct: expr, Field: fieldTok.Lexeme}
		case token.PLUS_PLUS, token.MINUS_MINUS:
			op := p.current.Type
			tok := p.current
			p.advance()
			expr = &ast.PostfixIncDec{Base: ast.Base{Token: tok}, Op: op, Target: expr}
		default:
			return expr
		}
	}
}

// primary parses literals, parenthesized expressions, identifiers,
// and calls.
func (p *Parser) primary() ast.Expr {
	tok := p.current
	switch tok.Type {
	case token.INT_LITERAL, token.HEX_LITERAL, token.BINARY_LITERAL, token.FLOAT_LITERAL,
		token.CHAR_LITERAL, token.STRING_LITERAL, token.TRUE, token.FALSE:
		p.advance()
		return &ast.Literal{Base: ast.Base{Token: tok}, Raw: tok.Lexeme}
	case token.LPAREN:
		p.advance()
		e := p.expression(precAssignment)
		p.consume(token.RPAREN, ")")
		return e
	case token.IDENT:
		if p.next.Type == token.LPAREN {
			return p.call()
		}
		p.advance()
		id := &ast.Identifier{Base: ast.Base{Token: tok}, Name: tok.Lexeme}
		if sym, ok := p.scope.Lookup(tok); ok {
			id.Sym = sym
		} else {
			p.errorAt(tok, diag.UNDECLARED, "'%s' is undeclared", tok.Lexeme)
		}
		return id
	default:
		p.errorAt(tok, diag.UNEXPECTED, "unexpected token %s", tok.Type)
		p.advance()
		return &ast.Literal{Base: ast.Base{Token: tok}, Raw: "0"}
	}
}

func (p *Parser) call() ast.Expr {
	tok := p.current
	name := tok.Lexeme
	p.advance() // ident
	p.consume(token.LPAREN, "(")
	call := &ast.FunctionCall{Base: ast.Base{Token: tok}, Callee: name}
	if !p.check(token.RPAREN) {
		call.Args = append(call.Args, p.expression(precAssignment))
		for p.match(token.COMMA) {
			call.Args = append(call.Args, p.expression(precAssignment))
		}
	}
	p.consume(token.RPAREN, ")")
	return call
}
