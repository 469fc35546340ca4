// Package parser implements a Pratt/precedence-climbing expression
// parser with inline scope-aware declaration bookkeeping against an
// internal/symtab.Stack, producing a decorated internal/ast tree,
// driven by a two-token-lookahead window and an explicit scope stack.
//
// Grounded on lang/yparse's token-driven parser shape (a TokenReader
// with Peek/Next/Expect, lang/yparse/token.go) generalized from that
// pass's textual token stream into an in-process internal/lexer, and on
// lang/yparse/symtab.go's scope/table bookkeeping generalized into
// internal/symtab's depth-indexed stack with shadowing.
package parser

import (
	"strconv"

	"github.com/gmofishsauce/yapc/internal/ast"
	"github.com/gmofishsauce/yapc/internal/diag"
	"github.com/gmofishsauce/yapc/internal/lexer"
	"github.com/gmofishsauce/yapc/internal/session"
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/gmofishsauce/yapc/internal/token"
	"github.com/gmofishsauce/yapc/internal/types"
)

// Precedence levels, low to high.
type precedence int

const (
	precNone precedence = iota
	precAssignment
	precTernary
	precLogical
	precBitwise
	precTerm   // + -
	precFactor // * / %
	precUnary
	precPrefixIncDec
	precSubscript
)

var binPrecedence = map[token.Type]precedence{
	token.OR_OR: precLogical, token.AND_AND: precLogical,
	token.EQ: precLogical, token.NE: precLogical,
	token.LT: precLogical, token.GT: precLogical, token.LE: precLogical, token.GE: precLogical,
	token.AMP: precBitwise, token.PIPE: precBitwise, token.CARET: precBitwise,
	token.SHL: precBitwise, token.SHR: precBitwise,
	token.PLUS: precTerm, token.MINUS: precTerm,
	token.STAR: precFactor, token.SLASH: precFactor, token.PERCENT: precFactor,
}

var terseOps = map[token.Type]bool{
	token.PLUS_EQ: true, token.MINUS_EQ: true, token.STAR_EQ: true, token.SLASH_EQ: true,
	token.PERCENT_EQ: true, token.AMP_EQ: true, token.PIPE_EQ: true, token.CARET_EQ: true,
	token.SHL_EQ: true, token.SHR_EQ: true,
}

// Parser holds the two-token-plus-one lookahead window (current, next,
// afterNext), the scope stack, and the session every diagnostic and
// declaration is recorded against.
type Parser struct {
	lex *lexer.Lexer
	sess *session.Session
	scope *symtab.Stack

	current, next, afterNext token.Token
	canAssign                bool
}

// New returns a Parser reading from lex, recording into sess, and
// sharing scope (module scope at depth 0) with the rest of the pipeline.
func New(lex *lexer.Lexer, sess *session.Session, scope *symtab.Stack) *Parser {
	p := &Parser{lex: lex, sess: sess, scope: scope}
	p.next = lex.Next()
	p.afterNext = lex.Next()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.current = p.next
	p.next = p.afterNext
	p.afterNext = p.lex.Next()
	if p.current.Type == token.ERROR {
		p.sess.Latch.Report(diag.LEXER_ERROR, p.current, "%s", p.current.Lexeme)
	}
}

func (p *Parser) check(t token.Type) bool { return p.current.Type == t }

func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t token.Type, msg string) token.Token {
	if p.check(t) {
		tok := p.current
		p.advance()
		return tok
	}
	p.errorAt(p.current, diag.MISSING_SEMICOLON, "expected %s: %s", t, msg)
	return p.current
}

func (p *Parser) errorAt(tok token.Token, code diag.ErrorCode, format string, args ...interface{}) {
	p.sess.Latch.Report(code, tok, format, args...)
}

// Parse parses an entire source file into a Program and returns it. The
// parser never stops at the first error: it resynchronizes at
// statement/declaration boundaries and keeps going so a single run
// surfaces as many diagnostics as possible.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for p.current.Type != token.EOF {
		if d := p.declaration(); d != nil {
			prog.Decls = append(prog.Decls, d)
		}
	}
	return prog
}

// declaration dispatches on the current token to a type-prefixed
// variable declaration, a function declaration (ident(...)::type),
// `enum`, `struct`, or falls through to an ordinary statement.
func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.current.Type.IsTypeKeyword():
		return p.varDecl()
	case p.current.Type == token.VOID:
		// void cannot declare a variable; only legal as a
		// function's declared return type, handled in funcDecl.
		p.errorAt(p.current, diag.IMPROPER_DECLARATION, "void cannot be used to declare a variable")
		p.resync()
		return nil
	case p.current.Type == token.ENUM:
		return p.enumDecl()
	case p.current.Type == token.STRUCT:
		return p.structDecl()
	case p.current.Type == token.IDENT && p.next.Type == token.LPAREN && p.scope.Depth() == 0:
		return p.funcDecl()
	case p.current.Type == token.IDENT && p.isNamedTypeHere():
		return p.varDecl()
	default:
		return p.statement()
	}
}

// isNamedTypeHere reports whether the current identifier names a
// previously declared struct or enum type and the token after it opens
// a declaration (another identifier, or an array-size bracket) rather
// than continuing an expression.
func (p *Parser) isNamedTypeHere() bool {
	if p.next.Type != token.IDENT && p.next.Type != token.LBRACKET {
		return false
	}
	sym, ok := p.scope.Lookup(p.current)
	if !ok || sym.Type == nil {
		return false
	}
	return sym.Type.Specifier == types.StructSpec || sym.Type.Specifier == types.EnumSpec
}

func (p *Parser) parseTypeSpecifier() *types.Type {
	var t *types.Type
	if p.current.Type == token.IDENT {
		sym, _ := p.scope.Lookup(p.current)
		named := *sym.Type
		t = &named
		p.advance()
	} else {
		spec := keywordToSpecifier(p.current.Type)
		p.advance()
		t = types.Scalar(spec)
	}
	if p.match(token.LBRACKET) {
		sizeTok := p.consume(token.INT_LITERAL, "array size")
		size, err := strconv.Atoi(sizeTok.Lexeme)
		if err != nil {
			p.errorAt(sizeTok, diag.MISSING_SIZE, "array size must be a constant integer")
			size = 0
		}
		p.consume(token.RBRACKET, "]")
		t = types.Array(t, size)
	}
	return t
}

func keywordToSpecifier(t token.Type) types.Specifier {
	switch t {
	case token.I8:
		return types.I8
	case token.I16:
		return types.I16
	case token.I32:
		return types.I32
	case token.I64:
		return types.I64
	case token.U8:
		return types.U8
	case token.U16:
		return types.U16
	case token.U32:
		return types.U32
	case token.U64:
		return types.U64
	case token.F32:
		return types.F32
	case token.F64:
		return types.F64
	case token.BOOL:
		return types.Bool
	case token.CHAR:
		return types.Char
	case token.STRING:
		return types.String
	case token.VOID:
		return types.Void
	default:
		return types.SpecNone
	}
}

// varDecl parses `<type>[[N]] <ident> [= expr | {initlist}];`.
func (p *Parser) varDecl() ast.Stmt {
	declType := p.parseTypeSpecifier()
	nameTok := p.consume(token.IDENT, "variable name")

	state := symtab.StateDeclared
	if p.scope.Current().Contains(nameTok) {
		// Redeclaration at the same scope depth is reported but parsing
		// continues so later errors still surface.
		p.errorAt(nameTok, diag.REDECLARED, "'%s' redeclared", nameTok.Lexeme)
	}

	decl := &ast.VarDecl{Base: ast.Base{Token: nameTok}, Name: nameTok.Lexeme, DeclType: declType}
	if declType.Category == types.CatArray {
		decl.ArrayLen = declType.ArraySize
	}

	sym := &symtab.Symbol{Token: nameTok, State: state, Type: declType, DeclaredLine: nameTok.Line}
	p.scope.Add(sym)

	if p.match(token.ASSIGN) {
		if p.check(token.LBRACE) {
			decl.Init = p.initializerList()
		} else {
			decl.Init = p.expression(precAssignment)
		}
		sym.State = symtab.StateDefined
	}
	p.consume(token.SEMI, "';' after variable declaration")
	return decl
}

func (p *Parser) initializerList() ast.Expr {
	brace := p.consume(token.LBRACE, "{")
	list := &ast.InitializerList{Base: ast.Base{Token: brace}}
	if !p.check(token.RBRACE) {
		list.Elems = append(list.Elems, p.expression(precAssignment))
		for p.match(token.COMMA) {
			list.Elems = append(list.Elems, p.expression(precAssignment))
		}
	}
	p.consume(token.RBRACE, "}")
	return list
}

// funcDecl parses `ident(params) :: returnType [{ body }]`.
func (p *Parser) funcDecl() ast.Stmt {
	if p.scope.Depth() != 0 {
		p.errorAt(p.current, diag.IMPROPER_DECLARATION, "functions may only be declared at module scope")
	}
	nameTok := p.current
	p.advance() // ident

	existing, hadExisting := p.scope.Current().Retrieve(nameTok)
	sym := &symtab.Symbol{Token: nameTok, State: symtab.StateUninitialized, DeclaredLine: nameTok.Line}
	p.scope.Add(sym)

	p.consume(token.LPAREN, "(")
	paramsTable := symtab.NewTable()
	p.scope.ShadowWith(paramsTable)
	var params []ast.Param
	if !p.check(token.RPAREN) {
		for {
			pType := p.parseTypeSpecifier()
			pNameTok := p.consume(token.IDENT, "parameter name")
			p.scope.Add(&symtab.Symbol{Token: pNameTok, State: symtab.StateDefined, Type: pType, DeclaredLine: pNameTok.Line})
			params = append(params, ast.Param{Name: pNameTok.Lexeme, Type: pType})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.scope.ClearShadow()
	p.consume(token.RPAREN, ")")
	p.consume(token.COLONCOLON, "::")
	retType := p.parseTypeSpecifier()

	fnType := &types.Type{Category: types.CatFunction, Return: retType}
	for _, prm := range params {
		fnType.Params = append(fnType.Params, types.Param{Name: prm.Name, Type: prm.Type})
	}
	sym.Type = fnType

	decl := &ast.FuncDecl{Base: ast.Base{Token: nameTok}, Name: nameTok.Lexeme, Params: params, ReturnType: retType}

	if p.check(token.LBRACE) {
		if hadExisting && existing.State == symtab.StateDefined {
			p.errorAt(nameTok, diag.REDECLARED, "function '%s' redefined", nameTok.Lexeme)
		}
		p.scope.Push()
		for _, prm := range params {
			p.scope.Add(&symtab.Symbol{Token: token.Token{Type: token.IDENT, Lexeme: prm.Name}, State: symtab.StateDefined, Type: prm.Type})
		}
		decl.Body = p.blockStmts()
		p.scope.Pop()
		sym.State = symtab.StateDefined
		p.match(token.SEMI) // terminator optional after a function body
	} else {
		if hadExisting && existing.State != symtab.StateDefined {
			p.errorAt(nameTok, diag.REDECLARED, "'%s' redeclared without a body", nameTok.Lexeme)
		}
		p.consume(token.SEMI, "';' after function declaration")
	}
	return decl
}

// enumDecl parses `enum Name { entry [= expr], ... };`.
func (p *Parser) enumDecl() ast.Stmt {
	tok := p.current
	p.advance() // 'enum'
	nameTok := p.consume(token.IDENT, "enum name")
	p.consume(token.LBRACE, "{")

	decl := &ast.EnumDecl{Base: ast.Base{Token: tok}, Name: nameTok.Lexeme}
	if !p.check(token.RBRACE) {
		for {
			entryTok := p.consume(token.IDENT, "enum entry name")
			entry := &ast.EnumEntry{Token: entryTok, Name: entryTok.Lexeme}
			if p.match(token.ASSIGN) {
				entry.ExplicitValue = p.expression(precAssignment)
			}
			decl.Entries = append(decl.Entries, entry)
			memberType := &types.Type{Specifier: types.EnumSpec, Category: types.CatEnumMember, EnumName: nameTok.Lexeme}
			p.scope.Add(&symtab.Symbol{Token: entryTok, State: symtab.StateDeclared, Type: memberType, DeclaredLine: entryTok.Line})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RBRACE, "}")
	p.match(token.SEMI)

	enumType := &types.Type{Specifier: types.EnumSpec, EnumName: nameTok.Lexeme}
	p.scope.Add(&symtab.Symbol{Token: nameTok, State: symtab.StateDefined, Type: enumType, DeclaredLine: nameTok.Line})
	return decl
}

// structDecl parses `struct Name { field-decls };`.
func (p *Parser) structDecl() ast.Stmt {
	tok := p.current
	p.advance() // 'struct'
	nameTok := p.consume(token.IDENT, "struct name")
	p.consume(token.LBRACE, "{")

	decl := &ast.StructDecl{Base: ast.Base{Token: tok}, Name: nameTok.Lexeme}
	fieldsTable := symtab.NewTable()
	var members []types.Member
	for !p.check(token.RBRACE) && p.current.Type != token.EOF {
		fType := p.parseTypeSpecifier()
		fNameTok := p.consume(token.IDENT, "field name")
		field := &ast.FieldDecl{Token: fNameTok, Name: fNameTok.Lexeme, Type: fType}
		if fType.Category == types.CatArray {
			field.ArrayLen = fType.ArraySize
		}
		fieldsTable.Add(&symtab.Symbol{Token: fNameTok, State: symtab.StateDeclared, Type: fType, DeclaredLine: fNameTok.Line})
		if p.match(token.ASSIGN) {
			field.Default = p.expression(precAssignment)
		}
		p.consume(token.SEMI, "';' after field declaration")
		decl.Fields = append(decl.Fields, field)
		members = append(members, types.Member{Name: field.Name, Type: fType})
	}
	p.consume(token.RBRACE, "}")
	p.match(token.SEMI)

	structType := &types.Type{Specifier: types.StructSpec, EnumName: nameTok.Lexeme, Members: members}
	p.scope.Add(&symtab.Symbol{Token: nameTok, State: symtab.StateDefined, Type: structType, DeclaredLine: nameTok.Line})
	return decl
}

// statement parses one block- or top-level statement.
func (p *Parser) statement() ast.Stmt {
	switch p.current.Type {
	case token.IF:
		return p.ifStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.FOR:
		return p.forStmt()
	case token.BREAK:
		tok := p.current
		p.advance()
		p.consume(token.SEMI, "';' after break")
		return &ast.BreakStmt{Base: ast.Base{Token: tok}}
	case token.CONTINUE:
		tok := p.current
		p.advance()
		p.consume(token.SEMI, "';' after continue")
		return &ast.ContinueStmt{Base: ast.Base{Token: tok}}
	case token.RETURN:
		return p.returnStmt()
	case token.PRINT:
		return p.printStmt()
	case token.LBRACE:
		return p.block()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) block() *ast.Block {
	tok := p.current
	p.scope.Push()
	b := p.blockStmts()
	p.scope.Pop()
	b.Token = tok
	return b
}

// blockStmts parses the `{ ... }` statement list without managing scope
// itself — callers that already pushed a scope for another reason (a
// function body reusing its parameter scope) call this directly.
func (p *Parser) blockStmts() *ast.Block {
	p.consume(token.LBRACE, "{")
	b := &ast.Block{}
	for !p.check(token.RBRACE) && p.current.Type != token.EOF {
		if s := p.declaration(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}
	p.consume(token.RBRACE, "}")
	return b
}

func (p *Parser) ifStmt() ast.Stmt {
	tok := p.current
	p.advance() // 'if'
	p.consume(token.LPAREN, "(")
	cond := p.expression(precAssignment)
	p.consume(token.RPAREN, ")")
	then := p.block()
	stmt := &ast.IfStmt{Base: ast.Base{Token: tok}, Cond: cond, Then: then}
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			stmt.Else = p.ifStmt()
		} else {
			stmt.Else = p.block()
		}
	}
	return stmt
}

func (p *Parser) whileStmt() ast.Stmt {
	tok := p.current
	p.advance() // 'while'
	p.consume(token.LPAREN, "(")
	cond := p.expression(precAssignment)
	p.consume(token.RPAREN, ")")
	body := p.block()
	return &ast.WhileStmt{Base: ast.Base{Token: tok}, Cond: cond, Body: body}
}

func (p *Parser) forStmt() ast.Stmt {
	tok := p.current
	p.advance() // 'for'
	p.consume(token.LPAREN, "(")
	p.scope.Push()

	stmt := &ast.ForStmt{Base: ast.Base{Token: tok}}
	if !p.check(token.SEMI) {
		if p.current.Type.IsTypeKeyword() {
			stmt.Init = p.varDecl()
		} else {
			stmt.Init = p.exprStmt()
		}
	} else {
		p.consume(token.SEMI, "';'")
	}
	if !p.check(token.SEMI) {
		stmt.Cond = p.expression(precAssignment)
	}
	p.consume(token.SEMI, "';'")
	if !p.check(token.RPAREN) {
		stmt.Post = p.exprStmtNoSemi()
	}
	p.consume(token.RPAREN, ")")
	stmt.Body = p.blockStmts()
	p.scope.Pop()
	return stmt
}

func (p *Parser) returnStmt() ast.Stmt {
	tok := p.current
	p.advance() // 'return'
	ret := &ast.ReturnStmt{Base: ast.Base{Token: tok}}
	if !p.check(token.SEMI) {
		ret.Result = p.expression(precAssignment)
	}
	p.consume(token.SEMI, "';' after return")
	return ret
}

func (p *Parser) printStmt() ast.Stmt {
	tok := p.current
	p.advance() // 'print'
	p.consume(token.LPAREN, "(")
	arg := p.expression(precAssignment)
	p.consume(token.RPAREN, ")")
	p.consume(token.SEMI, "';' after print")
	return &ast.PrintStmt{Base: ast.Base{Token: tok}, Arg: arg}
}

func (p *Parser) exprStmt() ast.Stmt {
	s := p.exprStmtNoSemi()
	p.consume(token.SEMI, "';' after expression")
	return s
}

func (p *Parser) exprStmtNoSemi() ast.Stmt {
	tok := p.current
	e := p.expression(precAssignment)
	return &ast.ExprStmt{Base: ast.Base{Token: tok}, X: e}
}

// resync consumes tokens through the next ';' or '}' so parsing can
// continue after an error.
func (p *Parser) resync() {
	for p.current.Type != token.SEMI && p.current.Type != token.RBRACE && p.current.Type != token.EOF {
		p.advance()
	}
	if p.current.Type == token.SEMI {
		p.advance()
	}
}
