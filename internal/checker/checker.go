// Package checker implements the semantic analysis pass: literal-width
// inference (the "shrink rule"), the implicit-conversion lattice, enum
// value propagation, assignment/terse-assignment legality, function
// call arity/type checking, and return-path verification.
//
// Grounded on lang/ysem/analyzer.go's type-switch-over-AST walk shape,
// generalized from that pass's three machine word types to sized
// integers, floats, bool, char, string, enum, struct and array types,
// and on original_source/src/ast.h's per-node DataType annotation,
// which this package reproduces by writing into each ast.Node's
// Type()/Value() fields in place during the walk.
package checker

import (
	"math"
	"strconv"
	"strings"

	"github.com/gmofishsauce/yapc/internal/ast"
	"github.com/gmofishsauce/yapc/internal/diag"
	"github.com/gmofishsauce/yapc/internal/session"
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/gmofishsauce/yapc/internal/token"
	"github.com/gmofishsauce/yapc/internal/types"
	"github.com/gmofishsauce/yapc/internal/value"
)

// Checker walks a Program annotating every node's static type and,
// where constant, its value. It shares the scope stack the parser
// built so identifier resolution is already done; the checker's job is
// typing, not name resolution.
type Checker struct {
	sess  *session.Session
	scope *symtab.Stack

	funcs       map[string]*ast.FuncDecl
	enumConst   map[string]int64 // "EnumName.Entry" -> resolved ordinal
	currentFunc *ast.FuncDecl
	loopDepth   int
}

// New returns a Checker sharing sess and scope with the rest of the
// pipeline.
func New(sess *session.Session, scope *symtab.Stack) *Checker {
	return &Checker{
		sess:      sess,
		scope:     scope,
		funcs:     make(map[string]*ast.FuncDecl),
		enumConst: make(map[string]int64),
	}
}

// Check walks prog, registering every function before checking any
// body so forward calls type-check, then checks each declaration.
func (c *Checker) Check(prog *ast.Program) {
	for _, d := range prog.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok && fd.Body != nil {
			c.funcs[fd.Name] = fd
			c.sess.Functions[fd.Name] = fd
		}
	}
	for _, d := range prog.Decls {
		c.checkStmt(d)
	}
}

func (c *Checker) err(tok token.Token, code diag.ErrorCode, format string, args ...interface{}) {
	c.sess.Latch.Report(code, tok, format, args...)
}

// checkStmt dispatches on concrete statement type.
func (c *Checker) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Program:
		for _, d := range n.Decls {
			c.checkStmt(d)
		}
	case *ast.Block:
		c.checkBlock(n)
	case *ast.VarDecl:
		c.checkVarDecl(n)
	case *ast.FuncDecl:
		c.checkFuncDecl(n)
	case *ast.EnumDecl:
		c.checkEnumDecl(n)
	case *ast.StructDecl:
		c.checkStructDecl(n)
	case *ast.IfStmt:
		c.checkExpr(n.Cond)
		c.requireBool(n.Cond)
		c.checkStmt(n.Then)
		if n.Else != nil {
			c.checkStmt(n.Else)
		}
	case *ast.WhileStmt:
		c.checkExpr(n.Cond)
		c.requireBool(n.Cond)
		c.loopDepth++
		c.checkStmt(n.Body)
		c.loopDepth--
	case *ast.ForStmt:
		if n.Init != nil {
			c.checkStmt(n.Init)
		}
		if n.Cond != nil {
			c.checkExpr(n.Cond)
			c.requireBool(n.Cond)
		}
		if n.Post != nil {
			c.checkStmt(n.Post)
		}
		c.loopDepth++
		c.checkStmt(n.Body)
		c.loopDepth--
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.err(n.Token, diag.IMPROPER_ACCESS, "break used outside a loop")
		}
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.err(n.Token, diag.IMPROPER_ACCESS, "continue used outside a loop")
		}
	case *ast.ReturnStmt:
		c.checkReturn(n)
	case *ast.PrintStmt:
		c.checkExpr(n.Arg)
	case *ast.ExprStmt:
		c.checkExpr(n.X)
	}
}

func (c *Checker) requireBool(e ast.Expr) {
	if e.Type() != nil && e.Type().Specifier != types.Bool {
		c.err(e.Tok(), diag.TYPE_DISAGREEMENT, "condition must be bool, got %s", e.Type())
	}
}

func (c *Checker) checkVarDecl(n *ast.VarDecl) {
	n.SetType(n.DeclType)
	if n.Init == nil {
		return
	}
	if il, ok := n.Init.(*ast.InitializerList); ok {
		c.checkInitializerList(il, n.DeclType)
		return
	}
	c.checkExpr(n.Init)
	if !c.assignable(n.DeclType, n.Init) {
		c.err(n.Token, diag.TYPE_DISAGREEMENT,
			"cannot initialize '%s' of type %s with %s", n.Name, n.DeclType, n.Init.Type())
	}
}

func (c *Checker) checkInitializerList(il *ast.InitializerList, declType *types.Type) {
	if declType.Category != types.CatArray {
		c.err(il.Token, diag.IMPROPER_ASSIGNMENT, "initializer list only legal for array declarations")
		return
	}
	if len(il.Elems) > declType.ArraySize {
		c.err(il.Token, diag.TOO_MANY, "expected %d initializer elements, got %d", declType.ArraySize, len(il.Elems))
	} else if len(il.Elems) < declType.ArraySize {
		c.err(il.Token, diag.TOO_FEW, "expected %d initializer elements, got %d", declType.ArraySize, len(il.Elems))
	}
	elemType := declType.ElementType()
	for _, e := range il.Elems {
		c.checkExpr(e)
		if !c.assignable(elemType, e) {
			c.err(e.Tok(), diag.TYPE_DISAGREEMENT, "initializer element has type %s, expected %s", e.Type(), elemType)
		}
	}
	il.SetType(declType)
}

func (c *Checker) checkFuncDecl(n *ast.FuncDecl) {
	if n.Body == nil {
		return
	}
	prevFunc := c.currentFunc
	c.currentFunc = n

	c.checkStmt(n.Body)

	if n.ReturnType.Specifier != types.Void && !blockReturns(n.Body) {
		c.err(n.Token, diag.MISSING_RETURN, "function '%s' must return a value on every path", n.Name)
	}
	c.currentFunc = prevFunc
}

// checkBlock type-checks every statement in b in order, latching
// ERR_UNREACHABLE_CODE (spec.md §4.4) at the first statement that
// follows one already guaranteed to return from the enclosing function.
func (c *Checker) checkBlock(b *ast.Block) {
	returned := false
	for _, st := range b.Stmts {
		if returned {
			c.err(st.Tok(), diag.UNREACHABLE_CODE, "unreachable code after a return")
			returned = false // latch is first-error-wins; don't re-report every later line
		}
		c.checkStmt(st)
		if stmtReturns(st) {
			returned = true
		}
	}
}

// blockReturns reports whether every path through b's statement chain
// ends in a return, recursing into nested if/while/for chains the way
// spec.md §4.4 requires.
func blockReturns(b *ast.Block) bool {
	for _, st := range b.Stmts {
		if stmtReturns(st) {
			return true
		}
	}
	return false
}

// stmtReturns reports whether executing s is guaranteed to return from
// the enclosing function on every path through it.
func stmtReturns(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.Block:
		return blockReturns(n)
	case *ast.IfStmt:
		return n.Else != nil && stmtReturns(n.Then) && stmtReturns(n.Else)
	case *ast.WhileStmt:
		return isTrueLiteral(n.Cond) && !containsBreak(n.Body)
	case *ast.ForStmt:
		return n.Cond == nil && !containsBreak(n.Body)
	default:
		return false
	}
}

// isTrueLiteral reports whether e is the literal `true`, the only
// condition form that makes a while loop provably non-exiting.
func isTrueLiteral(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	return ok && lit.Token.Type == token.TRUE
}

// containsBreak reports whether b's own statement chain can reach a
// break targeting the loop b is the body of. It descends into nested
// blocks and if/else arms (whose break belongs to the enclosing loop)
// but not into nested while/for bodies (whose break belongs to them).
func containsBreak(b *ast.Block) bool {
	for _, st := range b.Stmts {
		if stmtContainsBreak(st) {
			return true
		}
	}
	return false
}

func stmtContainsBreak(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.BreakStmt:
		return true
	case *ast.Block:
		return containsBreak(n)
	case *ast.IfStmt:
		if stmtContainsBreak(n.Then) {
			return true
		}
		return n.Else != nil && stmtContainsBreak(n.Else)
	default:
		return false
	}
}

func (c *Checker) checkReturn(n *ast.ReturnStmt) {
	if c.currentFunc == nil {
		c.err(n.Token, diag.IMPROPER_ACCESS, "return used outside a function")
		return
	}
	want := c.currentFunc.ReturnType
	if n.Result == nil {
		if want.Specifier != types.Void {
			c.err(n.Token, diag.TYPE_DISAGREEMENT, "function '%s' must return a %s value", c.currentFunc.Name, want)
		}
		return
	}
	c.checkExpr(n.Result)
	if want.Specifier == types.Void {
		c.err(n.Token, diag.TYPE_DISAGREEMENT, "function '%s' is void and cannot return a value", c.currentFunc.Name)
		return
	}
	if !c.assignable(want, n.Result) {
		c.err(n.Token, diag.TYPE_DISAGREEMENT, "function '%s' returns %s, got %s", c.currentFunc.Name, want, n.Result.Type())
	}
}

func (c *Checker) checkEnumDecl(n *ast.EnumDecl) {
	if len(n.Entries) == 0 {
		c.err(n.Token, diag.EMPTY_BODY, "enum '%s' has an empty body", n.Name)
		return
	}
	var next int64
	for _, entry := range n.Entries {
		if entry.ExplicitValue != nil {
			c.checkExpr(entry.ExplicitValue)
			lit, ok := entry.ExplicitValue.(*ast.Literal)
			if !ok {
				c.err(entry.Token, diag.IMPROPER_DECLARATION, "enum value must be a constant integer literal")
			} else if iv, err := strconv.ParseInt(lit.Raw, 0, 64); err == nil {
				next = iv
			}
		}
		entry.Resolved = next
		entry.Type = &types.Type{Specifier: types.EnumSpec, Category: types.CatEnumMember, EnumName: n.Name}
		c.enumConst[n.Name+"."+entry.Name] = next
		if sym, ok := c.scope.Lookup(entry.Token); ok {
			sym.Value = value.NewInt(entry.Type, next)
			sym.State = symtab.StateDefined
		}
		next++
	}
}

// checkStructDecl type-checks every field's `= expr` default initializer
// against its declared type and materializes a default StructInstance,
// stored as the struct type symbol's own Value so `TypeName.field` reads
// the declared default without requiring an explicit instance variable
// (the struct-type symbol doubles as that default instance, the same
// way an enum entry's symbol carries its resolved integer value).
func (c *Checker) checkStructDecl(n *ast.StructDecl) {
	if len(n.Fields) == 0 {
		c.err(n.Token, diag.EMPTY_BODY, "struct '%s' has an empty body", n.Name)
		return
	}
	sym, ok := c.scope.Lookup(token.Token{Type: token.IDENT, Lexeme: n.Name})
	if !ok {
		return
	}
	inst := &value.StructInstance{
		TypeName: n.Name,
		Order:    make([]string, 0, len(n.Fields)),
		Fields:   make(map[string]*value.Value, len(n.Fields)),
	}
	for _, f := range n.Fields {
		var fv value.Value
		if f.Default != nil {
			c.checkExpr(f.Default)
			if !c.assignable(f.Type, f.Default) {
				c.err(f.Token, diag.TYPE_DISAGREEMENT,
					"field '%s' of type %s cannot default to %s", f.Name, f.Type, f.Default.Type())
			}
			fv = f.Default.Value()
		} else {
			fv = value.Zero(f.Type)
		}
		inst.Order = append(inst.Order, f.Name)
		inst.Fields[f.Name] = &fv
	}
	sym.Value = value.NewStruct(sym.Type, inst)
}

// checkExpr dispatches on concrete expression type, filling in Type()
// and, for compile-time-constant nodes, Value().
func (c *Checker) checkExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
		c.checkLiteral(n)
	case *ast.Identifier:
		c.checkIdentifier(n)
	case *ast.Assignment:
		c.checkAssignment(n)
	case *ast.TerseAssignment:
		c.checkTerseAssignment(n)
	case *ast.BinaryArithmetic:
		c.checkBinaryArithmetic(n)
	case *ast.BinaryLogical:
		c.checkBinaryLogical(n)
	case *ast.BinaryBitwise:
		c.checkBinaryBitwise(n)
	case *ast.UnaryOp:
		c.checkUnary(n)
	case *ast.PrefixIncDec:
		c.checkExpr(n.Target)
		n.SetType(n.Target.Type())
	case *ast.PostfixIncDec:
		c.checkExpr(n.Target)
		n.SetType(n.Target.Type())
	case *ast.Ternary:
		c.checkTernary(n)
	case *ast.ArraySubscript:
		c.checkSubscript(n)
	case *ast.FunctionCall:
		c.checkCall(n)
	case *ast.StructFieldAccess:
		c.checkFieldAccess(n)
	case *ast.InitializerList:
		for _, el := range n.Elems {
			c.checkExpr(el)
		}
	}
}

// checkLiteral applies the shrink rule: the smallest signed specifier
// that can hold a decimal literal's value, or the smallest unsigned
// specifier for a literal that came from a hex/binary token.
func (c *Checker) checkLiteral(n *ast.Literal) {
	switch n.Token.Type {
	case token.TRUE, token.FALSE:
		n.SetType(types.Scalar(types.Bool))
		n.SetValue(value.NewBool(n.Token.Type == token.TRUE))
	case token.CHAR_LITERAL:
		n.SetType(types.Scalar(types.Char))
		if len(n.Raw) > 0 {
			n.SetValue(value.NewChar(n.Raw[0]))
		}
	case token.STRING_LITERAL:
		n.SetType(types.Scalar(types.String))
		n.SetValue(value.NewString(types.Scalar(types.String), n.Raw))
	case token.FLOAT_LITERAL:
		f, _ := strconv.ParseFloat(n.Raw, 64)
		spec := types.F32
		if f < -math.MaxFloat32 || f > math.MaxFloat32 {
			spec = types.F64
		}
		n.SetType(types.Scalar(spec))
		n.SetValue(value.NewFloat(types.Scalar(spec), f))
	case token.HEX_LITERAL:
		u, _ := strconv.ParseUint(strings.TrimPrefix(n.Raw, "0x"), 16, 64)
		spec := shrinkUnsigned(u)
		n.SetType(types.Scalar(spec))
		n.SetValue(value.NewUint(types.Scalar(spec), u))
	case token.BINARY_LITERAL:
		u, _ := strconv.ParseUint(n.Raw, 2, 64)
		spec := shrinkUnsigned(u)
		n.SetType(types.Scalar(spec))
		n.SetValue(value.NewUint(types.Scalar(spec), u))
	default: // INT_LITERAL
		iv, err := strconv.ParseInt(n.Raw, 10, 64)
		if err != nil {
			c.err(n.Token, diag.OVERFLOW, "integer literal '%s' does not fit in 64 bits", n.Raw)
		}
		spec := shrinkSigned(iv)
		n.SetType(types.Scalar(spec))
		n.SetValue(value.NewInt(types.Scalar(spec), iv))
	}
}

func shrinkSigned(v int64) types.Specifier {
	switch {
	case v >= -128 && v <= 127:
		return types.I8
	case v >= -32768 && v <= 32767:
		return types.I16
	case v >= -2147483648 && v <= 2147483647:
		return types.I32
	default:
		return types.I64
	}
}

func shrinkUnsigned(v uint64) types.Specifier {
	switch {
	case v <= 0xFF:
		return types.U8
	case v <= 0xFFFF:
		return types.U16
	case v <= 0xFFFFFFFF:
		return types.U32
	default:
		return types.U64
	}
}

func (c *Checker) checkIdentifier(n *ast.Identifier) {
	if n.Sym == nil {
		if sym, ok := c.scope.Lookup(n.Token); ok {
			n.Sym = sym
		} else {
			c.err(n.Token, diag.UNDECLARED, "'%s' is undeclared", n.Name)
			return
		}
	}
	if n.Sym.State == symtab.StateDeclared || n.Sym.State == symtab.StateUninitialized {
		c.err(n.Token, diag.UNINITIALIZED, "'%s' used before it is initialized", n.Name)
	}
	n.SetType(n.Sym.Type)
	n.SetValue(n.Sym.Value)
}

func (c *Checker) checkAssignment(n *ast.Assignment) {
	c.checkExpr(n.Target)
	target := n.Target.Type()
	if n.InitList != nil {
		c.checkInitializerList(n.InitList, target)
		n.SetType(target)
		return
	}
	c.checkExpr(n.RHS)
	if !c.assignable(target, n.RHS) {
		c.err(n.Token, diag.TYPE_DISAGREEMENT, "cannot assign %s to %s", n.RHS.Type(), target)
	}
	n.SetType(target)
}

func (c *Checker) checkTerseAssignment(n *ast.TerseAssignment) {
	c.checkExpr(n.Target)
	c.checkExpr(n.RHS)
	target := n.Target.Type()
	if target != nil && !types.IsNumeric(target.Specifier) {
		c.err(n.Token, diag.TYPE_DISAGREEMENT, "operator %s requires a numeric target", n.Op)
	}
	n.SetType(target)
}

// assignable reports whether a value of rhs's static type may be
// written into a slot of type target, applying the widening-only
// implicit conversion lattice: same category required, same signedness
// family, and the source width no wider than the destination. Enum and
// struct types require an exact specifier match (no numeric lattice).
func (c *Checker) assignable(target *types.Type, rhs ast.Expr) bool {
	if target == nil || rhs.Type() == nil {
		return false
	}
	src := rhs.Type()
	if target.Category == types.CatArray || src.Category == types.CatArray {
		return target.Exact(src) && target.ArraySize == src.ArraySize
	}
	if target.Specifier == types.StructSpec || src.Specifier == types.StructSpec {
		return target.EnumName == src.EnumName && target.Specifier == src.Specifier
	}
	// An enum member (e.g. `Two` from `enum Nums { Zero, One, Two }`) is
	// itself a named integer constant: it may be stored into a
	// same-named enum-typed slot, or propagated into any numeric target
	// the way a plain integer literal would (`i8 i = Two;`).
	if src.Category == types.CatEnumMember {
		if target.Specifier == types.EnumSpec {
			return target.EnumName == src.EnumName
		}
		return types.IsNumeric(target.Specifier)
	}
	if target.Specifier == types.EnumSpec {
		return src.Specifier == types.EnumSpec && target.EnumName == src.EnumName
	}
	if target.Specifier == src.Specifier {
		return true
	}
	if types.IsInt(target.Specifier) && types.IsInt(src.Specifier) {
		sameFamily := types.IsSignedInt(target.Specifier) == types.IsSignedInt(src.Specifier)
		return sameFamily && types.BitWidth(src.Specifier) <= types.BitWidth(target.Specifier)
	}
	if types.IsFloat(target.Specifier) && types.IsFloat(src.Specifier) {
		return types.BitWidth(src.Specifier) <= types.BitWidth(target.Specifier)
	}
	if types.IsFloat(target.Specifier) && types.IsInt(src.Specifier) {
		return true
	}
	return false
}

func (c *Checker) checkBinaryArithmetic(n *ast.BinaryArithmetic) {
	c.checkExpr(n.Left)
	c.checkExpr(n.Right)
	lt, rt := n.Left.Type(), n.Right.Type()
	if lt == nil || rt == nil {
		return
	}
	if !types.IsNumeric(lt.Specifier) || !types.IsNumeric(rt.Specifier) {
		c.err(n.Token, diag.TYPE_DISAGREEMENT, "operator %s requires numeric operands", n.Op)
		return
	}
	n.SetType(widerOf(lt, rt))
}

func widerOf(a, b *types.Type) *types.Type {
	if types.BitWidth(a.Specifier) >= types.BitWidth(b.Specifier) {
		return a
	}
	return b
}

func (c *Checker) checkBinaryLogical(n *ast.BinaryLogical) {
	c.checkExpr(n.Left)
	c.checkExpr(n.Right)
	n.SetType(types.Scalar(types.Bool))
	switch n.Op {
	case token.AND_AND, token.OR_OR:
		c.requireBool(n.Left)
		c.requireBool(n.Right)
	default:
		if n.Left.Type() != nil && n.Right.Type() != nil && !n.Left.Type().Exact(n.Right.Type()) &&
			!(types.IsNumeric(n.Left.Type().Specifier) && types.IsNumeric(n.Right.Type().Specifier)) {
			c.err(n.Token, diag.TYPE_DISAGREEMENT, "cannot compare %s with %s", n.Left.Type(), n.Right.Type())
		}
	}
}

func (c *Checker) checkBinaryBitwise(n *ast.BinaryBitwise) {
	c.checkExpr(n.Left)
	c.checkExpr(n.Right)
	lt, rt := n.Left.Type(), n.Right.Type()
	if lt == nil || rt == nil {
		return
	}
	if !types.IsInt(lt.Specifier) || !types.IsInt(rt.Specifier) {
		c.err(n.Token, diag.TYPE_DISAGREEMENT, "operator %s requires integer operands", n.Op)
		return
	}
	n.SetType(widerOf(lt, rt))
}

func (c *Checker) checkUnary(n *ast.UnaryOp) {
	c.checkExpr(n.Operand)
	ot := n.Operand.Type()
	switch n.Op {
	case token.BANG:
		c.requireBool(n.Operand)
		n.SetType(types.Scalar(types.Bool))
	case token.TILDE:
		if ot != nil && !types.IsUnsignedInt(ot.Specifier) {
			c.err(n.Token, diag.TYPE_DISAGREEMENT, "~ requires an unsigned integer operand")
		}
		n.SetType(ot)
	case token.MINUS:
		lit, isLit := n.Operand.(*ast.Literal)
		switch {
		case ot != nil && !types.IsNumeric(ot.Specifier):
			c.err(n.Token, diag.TYPE_DISAGREEMENT, "unary - requires a numeric operand")
		case isLit && (lit.Token.Type == token.HEX_LITERAL || lit.Token.Type == token.BINARY_LITERAL):
			c.err(n.Token, diag.TYPE_DISAGREEMENT, "unary - cannot be applied to a hex or binary literal")
		case ot != nil && types.IsUnsignedInt(ot.Specifier):
			// An unsigned operand is negated as the signed integer of the same width.
			n.SetType(types.Scalar(ot.Specifier - types.U8 + types.I8))
			return
		}
		n.SetType(ot)
	}
}

func (c *Checker) checkTernary(n *ast.Ternary) {
	c.checkExpr(n.Cond)
	c.requireBool(n.Cond)
	c.checkExpr(n.Then)
	c.checkExpr(n.Else)
	if n.Then.Type() != nil && n.Else.Type() != nil && !n.Then.Type().Exact(n.Else.Type()) {
		c.err(n.Token, diag.TYPE_DISAGREEMENT, "ternary branches have different types: %s vs %s", n.Then.Type(), n.Else.Type())
	}
	n.SetType(n.Then.Type())
}

// checkSubscript enforces the constant-integer-literal subscript
// restriction and bounds-checks it against the array's declared size
// when both are known at check time.
func (c *Checker) checkSubscript(n *ast.ArraySubscript) {
	c.checkExpr(n.Array)
	lit, ok := n.Index.(*ast.Literal)
	if !ok || (lit.Token.Type != token.INT_LITERAL && lit.Token.Type != token.HEX_LITERAL) {
		c.err(n.Token, diag.IMPROPER_ACCESS, "array subscript must be a constant integer literal")
		return
	}
	c.checkExpr(n.Index)
	arrType := n.Array.Type()
	if arrType == nil || arrType.Category != types.CatArray {
		c.err(n.Token, diag.IMPROPER_ACCESS, "subscript applied to a non-array value")
		return
	}
	idx, err := strconv.ParseInt(lit.Raw, 0, 64)
	if err == nil && (idx < 0 || int(idx) >= arrType.ArraySize) {
		c.err(n.Token, diag.OVERFLOW, "array index %d out of bounds for size %d", idx, arrType.ArraySize)
	}
	n.SetType(arrType.ElementType())
}

func (c *Checker) checkCall(n *ast.FunctionCall) {
	fn, ok := c.sess.Functions[n.Callee]
	if !ok {
		c.err(n.Token, diag.UNDECLARED, "call to undeclared function '%s'", n.Callee)
		for _, a := range n.Args {
			c.checkExpr(a)
		}
		return
	}
	if len(n.Args) != len(fn.Params) {
		if len(n.Args) > len(fn.Params) {
			c.err(n.Token, diag.TOO_MANY, "too many arguments to '%s': want %d, got %d", n.Callee, len(fn.Params), len(n.Args))
		} else {
			c.err(n.Token, diag.TOO_FEW, "too few arguments to '%s': want %d, got %d", n.Callee, len(fn.Params), len(n.Args))
		}
	}
	for i, a := range n.Args {
		c.checkExpr(a)
		if i < len(fn.Params) && !c.assignable(fn.Params[i].Type, a) {
			c.err(a.Tok(), diag.TYPE_DISAGREEMENT, "argument %d to '%s' has type %s, expected %s", i+1, n.Callee, a.Type(), fn.Params[i].Type)
		}
	}
	n.SetType(fn.ReturnType)
}

func (c *Checker) checkFieldAccess(n *ast.StructFieldAccess) {
	c.checkExpr(n.Struct)
	st := n.Struct.Type()
	if st == nil {
		return
	}
	member, ok := st.LookupMember(n.Field)
	if !ok {
		c.err(n.Token, diag.IMPROPER_ACCESS, "type %s has no field '%s'", st, n.Field)
		return
	}
	n.SetType(member.Type)
}
