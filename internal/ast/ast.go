// Package ast defines the decorated syntax tree internal/parser builds,
// internal/checker annotates in place, and internal/interp evaluates.
//
// Rather than one generic node struct with fixed left/middle/right
// child slots, this package gives every node kind its own named fields
// behind three small interfaces, with a shared Base embedding a common
// header (token, static type, constant value) accessible to
// polymorphic walks — grounded on lang/yparse/ast.go's own
// Decl/Stmt/Expr interface split.
package ast

import (
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/gmofishsauce/yapc/internal/token"
	"github.com/gmofishsauce/yapc/internal/types"
	"github.com/gmofishsauce/yapc/internal/value"
)

// Node is the common interface every AST type satisfies: the "common
// header" accessible during a
// polymorphic walk.
type Node interface {
	Tok() token.Token
	Type() *types.Type
	SetType(*types.Type)
	Value() value.Value
	SetValue(value.Value)
}

// Expr is any node usable in expression position.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node usable in statement position (declarations included
// — a declaration is usable anywhere a statement is).
type Stmt interface {
	Node
	stmtNode()
}

// Base is embedded in every concrete node type and implements Node.
type Base struct {
	Token token.Token
	Typ   *types.Type
	Val   value.Value
}

func (b *Base) Tok() token.Token      { return b.Token }
func (b *Base) Type() *types.Type     { return b.Typ }
func (b *Base) SetType(t *types.Type) { b.Typ = t }
func (b *Base) Value() value.Value    { return b.Val }
func (b *Base) SetValue(v value.Value) { b.Val = v }

// Program is the root node: a flat slice of top-level declarations.
type Program struct {
	Base
	Decls []Stmt
}

func (*Program) stmtNode() {}

// Block replaces a CHAIN of statements inside `{ }`.
type Block struct {
	Base
	Stmts []Stmt
}

func (*Block) stmtNode() {}

// VarDecl replaces DECLARATION/IDENTIFIER with an optional initializer
// in the ASSIGNMENT left slot.
type VarDecl struct {
	Base
	Name     string
	DeclType *types.Type
	ArrayLen int  // 0 if not an array declaration
	Init     Expr // nil if uninitialized
}

func (*VarDecl) stmtNode() {}

// Param is one function parameter (part of FUNCTION's "params chain").
type Param struct {
	Name string
	Type *types.Type
}

// FuncDecl replaces FUNCTION: return-type node, params chain, and body
// become named fields. Body is nil for a forward declaration
// (uninitialized state) seen before its defining occurrence.
type FuncDecl struct {
	Base
	Name       string
	Params     []Param
	ReturnType *types.Type
	Body       *Block
}

func (*FuncDecl) stmtNode() {}

// EnumEntry replaces ENUM_LIST_ENTRY_NODE/ENUM_ASSIGNMENT_NODE: a name
// with an optional explicit value expression.
type EnumEntry struct {
	Token     token.Token
	Name      string
	ExplicitValue Expr // nil when the value is implicit (counter-assigned)
	Resolved  int64    // filled in by the checker
	Type      *types.Type
}

// EnumDecl replaces ENUM_IDENTIFIER_NODE + its entry list.
type EnumDecl struct {
	Base
	Name    string
	Entries []*EnumEntry
}

func (*EnumDecl) stmtNode() {}

// FieldDecl is one struct field (part of STRUCT's "field chain").
type FieldDecl struct {
	Token    token.Token
	Name     string
	Type     *types.Type
	ArrayLen int
	Default  Expr // nil when the field has no `= expr` initializer
}

// StructDecl replaces STRUCT_DECLARATION_NODE + its field chain.
type StructDecl struct {
	Base
	Name   string
	Fields []*FieldDecl
}

func (*StructDecl) stmtNode() {}

// IfStmt replaces IF: condition/then-body/else-body-or-nil.
type IfStmt struct {
	Base
	Cond Expr
	Then *Block
	Else Stmt // *Block, *IfStmt (else-if chain), or nil
}

func (*IfStmt) stmtNode() {}

// WhileStmt replaces WHILE: condition + body.
type WhileStmt struct {
	Base
	Cond Expr
	Body *Block
}

func (*WhileStmt) stmtNode() {}

// ForStmt replaces FOR: init, the "while-node" condition, and the
// augmented body's post-statement are named fields instead of the
// original's nested synthetic WHILE node.
type ForStmt struct {
	Base
	Init Stmt // VarDecl, ExprStmt, or nil
	Cond Expr // nil means "true"
	Post Stmt // nil if absent
	Body *Block
}

func (*ForStmt) stmtNode() {}

// BreakStmt / ContinueStmt / ReturnStmt are leaf control-flow statements.
type BreakStmt struct{ Base }

func (*BreakStmt) stmtNode() {}

type ContinueStmt struct{ Base }

func (*ContinueStmt) stmtNode() {}

type ReturnStmt struct {
	Base
	Result Expr // nil for a bare `return;` in a void function
}

func (*ReturnStmt) stmtNode() {}

// PrintStmt is the `print` built-in: a real keyword and its own node,
// not a disguised function call.
type PrintStmt struct {
	Base
	Arg Expr
}

func (*PrintStmt) stmtNode() {}

// ExprStmt wraps an expression used for its side effect (an assignment,
// a call, ++/--) at statement level.
type ExprStmt struct {
	Base
	X Expr
}

func (*ExprStmt) stmtNode() {}

// Identifier replaces IDENTIFIER, with the optional array-subscript
// middle slot promoted to its own ArraySubscript node when present.
type Identifier struct {
	Base
	Name string
	Sym  *symtab.Symbol // set by the parser, or by the checker if the parser could not resolve it
}

func (*Identifier) exprNode() {}

// Literal replaces LITERAL_NODE: the raw lexeme plus the token kind that
// determines its base (hex=16, binary=2, else 10) is enough for the
// checker's shrink rule to compute Type()/Value().
type Literal struct {
	Base
	Raw string
}

func (*Literal) exprNode() {}

// Assignment replaces ASSIGNMENT: RHS expression + optional
// array-subscript target.
type Assignment struct {
	Base
	Target    Expr // *Identifier or *ArraySubscript
	RHS       Expr
	InitList  *InitializerList // non-nil when RHS is `{e, e, ...}`
}

func (*Assignment) exprNode() {}

// TerseAssignment replaces TERSE_ASSIGNMENT: LHS identifier, operator,
// RHS expression.
type TerseAssignment struct {
	Base
	Target Expr // *Identifier
	Op     token.Type
	RHS    Expr
}

func (*TerseAssignment) exprNode() {}

// BinaryArithmetic / BinaryLogical / BinaryBitwise replace the three
// BINARY_* kinds, disambiguated by the checker's classification of Op.
type BinaryArithmetic struct {
	Base
	Op          token.Type
	Left, Right Expr
}

func (*BinaryArithmetic) exprNode() {}

type BinaryLogical struct {
	Base
	Op          token.Type
	Left, Right Expr
}

func (*BinaryLogical) exprNode() {}

type BinaryBitwise struct {
	Base
	Op          token.Type
	Left, Right Expr
}

func (*BinaryBitwise) exprNode() {}

// UnaryOp replaces UNARY_OP/PREFIX_±: one operand, one operator (!, ~,
// unary -).
type UnaryOp struct {
	Base
	Op      token.Type
	Operand Expr
}

func (*UnaryOp) exprNode() {}

// PrefixIncDec / PostfixIncDec replace PREFIX_±/POSTFIX_±. Both carry
// the target expression directly rather than inferring it from
// surrounding context.
type PrefixIncDec struct {
	Base
	Op     token.Type // PLUS_PLUS or MINUS_MINUS
	Target Expr       // *Identifier or *ArraySubscript
}

func (*PrefixIncDec) exprNode() {}

type PostfixIncDec struct {
	Base
	Op     token.Type
	Target Expr
}

func (*PostfixIncDec) exprNode() {}

// Ternary replaces the expression-position IF node produced by `? :`.
type Ternary struct {
	Base
	Cond, Then, Else Expr
}

func (*Ternary) exprNode() {}

// ArraySubscript replaces ARRAY_SUBSCRIPT: `ident[i]`. The parser
// accepts any expression as Index; the checker restricts it to a
// constant integer (decimal or hex) literal.
type ArraySubscript struct {
	Base
	Array Expr
	Index Expr // *Literal, per the current constant-subscript restriction
}

func (*ArraySubscript) exprNode() {}

// FunctionCall replaces FUNCTION_CALL: callee name + args chain.
type FunctionCall struct {
	Base
	Callee string
	Args   []Expr
}

func (*FunctionCall) exprNode() {}

// StructFieldAccess replaces `A.f`: a struct expression plus a field name.
type StructFieldAccess struct {
	Base
	Struct Expr
	Field  string
}

func (*StructFieldAccess) exprNode() {}

// InitializerList replaces INITIALIZER_LIST: `{e, e, ...}`, legal only
// as the RHS of an array Assignment.
type InitializerList struct {
	Base
	Elems []Expr
}

func (*InitializerList) exprNode() {}
