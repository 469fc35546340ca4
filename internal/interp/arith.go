package interp

import (
	"github.com/gmofishsauce/yapc/internal/ast"
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/gmofishsauce/yapc/internal/token"
	"github.com/gmofishsauce/yapc/internal/types"
	"github.com/gmofishsauce/yapc/internal/value"
)

// eval evaluates an expression node to a runtime Value. The checker has
// already rejected any node shape that would make this walk need to
// report a user-facing error; any inconsistency found here is an
// internal fault.
func (in *Interp) eval(e ast.Expr) value.Value {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value()
	case *ast.Identifier:
		if sym, ok := in.scope.Lookup(n.Token); ok {
			return sym.Value
		}
		in.fatal("unresolved identifier '%s' at runtime", n.Name)
		return value.Value{}
	case *ast.Assignment:
		return in.evalAssignment(n)
	case *ast.TerseAssignment:
		return in.evalTerseAssignment(n)
	case *ast.BinaryArithmetic:
		return in.evalBinaryArithmetic(n)
	case *ast.BinaryLogical:
		return in.evalBinaryLogical(n)
	case *ast.BinaryBitwise:
		return in.evalBinaryBitwise(n)
	case *ast.UnaryOp:
		return in.evalUnary(n)
	case *ast.PrefixIncDec:
		return in.evalPrefixIncDec(n)
	case *ast.PostfixIncDec:
		return in.evalPostfixIncDec(n)
	case *ast.Ternary:
		if in.eval(n.Cond).B {
			return in.eval(n.Then)
		}
		return in.eval(n.Else)
	case *ast.ArraySubscript:
		return in.evalSubscript(n)
	case *ast.FunctionCall:
		return in.evalCall(n)
	case *ast.StructFieldAccess:
		return in.evalFieldAccess(n)
	case *ast.InitializerList:
		in.fatal("initializer list evaluated outside a declaration context")
		return value.Value{}
	default:
		in.fatal("unhandled expression node %T", e)
		return value.Value{}
	}
}

// lvalue resolves target to the Symbol holding it (an identifier) and,
// for an array subscript, the element index within that symbol's
// value, so assignment and ++/-- can write back in place.
func (in *Interp) lvalue(target ast.Expr) (*symtab.Symbol, int) {
	switch t := target.(type) {
	case *ast.Identifier:
		sym, ok := in.scope.Lookup(t.Token)
		if !ok {
			in.fatal("unresolved assignment target '%s'", t.Name)
		}
		return sym, -1
	case *ast.ArraySubscript:
		id, ok := t.Array.(*ast.Identifier)
		if !ok {
			in.fatal("array subscript assignment target is not a plain identifier")
		}
		sym, ok := in.scope.Lookup(id.Token)
		if !ok {
			in.fatal("unresolved assignment target '%s'", id.Name)
		}
		lit := t.Index.(*ast.Literal)
		idx := int(asInt(lit.Value()))
		return sym, idx
	default:
		in.fatal("unsupported assignment target %T", target)
		return nil, -1
	}
}

func (in *Interp) evalAssignment(n *ast.Assignment) value.Value {
	sym, idx := in.lvalue(n.Target)
	var v value.Value
	if n.InitList != nil {
		v = in.evalInitializerList(n.InitList, sym.Type)
	} else {
		v = convert(in.eval(n.RHS), n.Target.Type())
	}
	if idx < 0 {
		sym.Value = v
	} else {
		sym.Value.Elems[idx] = v
	}
	return v
}

func (in *Interp) evalTerseAssignment(n *ast.TerseAssignment) value.Value {
	sym, idx := in.lvalue(n.Target)
	cur := sym.Value
	if idx >= 0 {
		cur = sym.Value.Elems[idx]
	}
	rhs := in.eval(n.RHS)
	op := terseToBinary[n.Op]
	target := n.Target.Type()
	var result value.Value
	if isBitwiseOp(op) {
		result = applyBitwise(op, cur, rhs, target)
	} else {
		result = applyArithmetic(op, cur, rhs, target)
	}
	if idx < 0 {
		sym.Value = result
	} else {
		sym.Value.Elems[idx] = result
	}
	return result
}

func isBitwiseOp(op token.Type) bool {
	switch op {
	case token.AMP, token.PIPE, token.CARET, token.SHL, token.SHR:
		return true
	default:
		return false
	}
}

// applyBitwise performs &,|,^,<<,>> over unsigned or signed operands,
// truncating an unsigned result to resultType's declared width — the
// "terse bitwise on a fixed-width type" truncation rule.
func applyBitwise(op token.Type, l, r value.Value, resultType *types.Type) value.Value {
	if resultType != nil && types.IsUnsignedInt(resultType.Specifier) {
		lu, ru := asUint(l), asUint(r)
		return value.NewUint(resultType, maskWidth(bitwiseUint(op, lu, ru), resultType))
	}
	li, ri := asInt(l), asInt(r)
	return value.NewInt(resultType, bitwiseInt(op, li, ri))
}

// maskWidth truncates v to t's declared bit width (a no-op for u64 or
// an unrecognized/wide type).
func maskWidth(v uint64, t *types.Type) uint64 {
	if t == nil {
		return v
	}
	w := types.BitWidth(t.Specifier)
	if w <= 0 || w >= 64 {
		return v
	}
	return v & (uint64(1)<<uint(w) - 1)
}

var terseToBinary = map[token.Type]token.Type{
	token.PLUS_EQ: token.PLUS, token.MINUS_EQ: token.MINUS,
	token.STAR_EQ: token.STAR, token.SLASH_EQ: token.SLASH, token.PERCENT_EQ: token.PERCENT,
	token.AMP_EQ: token.AMP, token.PIPE_EQ: token.PIPE, token.CARET_EQ: token.CARET,
	token.SHL_EQ: token.SHL, token.SHR_EQ: token.SHR,
}

func (in *Interp) evalPrefixIncDec(n *ast.PrefixIncDec) value.Value {
	sym, idx := in.lvalue(n.Target)
	cur := sym.Value
	if idx >= 0 {
		cur = sym.Value.Elems[idx]
	}
	op := token.PLUS
	if n.Op == token.MINUS_MINUS {
		op = token.MINUS
	}
	result := applyArithmetic(op, cur, unitValue(cur.Type), n.Target.Type())
	if idx < 0 {
		sym.Value = result
	} else {
		sym.Value.Elems[idx] = result
	}
	return result
}

func (in *Interp) evalPostfixIncDec(n *ast.PostfixIncDec) value.Value {
	sym, idx := in.lvalue(n.Target)
	before := sym.Value
	if idx >= 0 {
		before = sym.Value.Elems[idx]
	}
	op := token.PLUS
	if n.Op == token.MINUS_MINUS {
		op = token.MINUS
	}
	after := applyArithmetic(op, before, unitValue(before.Type), n.Target.Type())
	if idx < 0 {
		sym.Value = after
	} else {
		sym.Value.Elems[idx] = after
	}
	return before
}

func unitValue(t *types.Type) value.Value {
	if t != nil && types.IsFloat(t.Specifier) {
		return value.NewFloat(t, 1)
	}
	if t != nil && types.IsUnsignedInt(t.Specifier) {
		return value.NewUint(t, 1)
	}
	return value.NewInt(t, 1)
}

func (in *Interp) evalBinaryArithmetic(n *ast.BinaryArithmetic) value.Value {
	left := in.eval(n.Left)
	right := in.eval(n.Right)
	return applyArithmetic(n.Op, left, right, n.Type())
}

// applyArithmetic performs +,-,*,/,% over either both-signed,
// both-unsigned, or floating operands, widened to resultType, per
// original_source's per-kind value.h arithmetic dispatch.
func applyArithmetic(op token.Type, l, r value.Value, resultType *types.Type) value.Value {
	if resultType != nil && types.IsFloat(resultType.Specifier) {
		lf, rf := asFloat(l), asFloat(r)
		return value.NewFloat(resultType, floatOp(op, lf, rf))
	}
	if resultType != nil && types.IsUnsignedInt(resultType.Specifier) {
		lu, ru := asUint(l), asUint(r)
		return value.NewUint(resultType, uintOp(op, lu, ru))
	}
	li, ri := asInt(l), asInt(r)
	return value.NewInt(resultType, intOp(op, li, ri))
}

func asInt(v value.Value) int64 {
	switch v.Tag {
	case value.TagInt:
		return v.I
	case value.TagUint:
		return int64(v.U)
	case value.TagFloat:
		return int64(v.F)
	default:
		return 0
	}
}

func asUint(v value.Value) uint64 {
	switch v.Tag {
	case value.TagUint:
		return v.U
	case value.TagInt:
		return uint64(v.I)
	case value.TagFloat:
		return uint64(v.F)
	default:
		return 0
	}
}

func asFloat(v value.Value) float64 {
	switch v.Tag {
	case value.TagFloat:
		return v.F
	case value.TagInt:
		return float64(v.I)
	case value.TagUint:
		return float64(v.U)
	default:
		return 0
	}
}

func intOp(op token.Type, l, r int64) int64 {
	switch op {
	case token.PLUS:
		return l + r
	case token.MINUS:
		return l - r
	case token.STAR:
		return l * r
	case token.SLASH:
		if r == 0 {
			return 0
		}
		return l / r
	case token.PERCENT:
		if r == 0 {
			return 0
		}
		return l % r
	default:
		return 0
	}
}

func uintOp(op token.Type, l, r uint64) uint64 {
	switch op {
	case token.PLUS:
		return l + r
	case token.MINUS:
		return l - r
	case token.STAR:
		return l * r
	case token.SLASH:
		if r == 0 {
			return 0
		}
		return l / r
	case token.PERCENT:
		if r == 0 {
			return 0
		}
		return l % r
	default:
		return 0
	}
}

func floatOp(op token.Type, l, r float64) float64 {
	switch op {
	case token.PLUS:
		return l + r
	case token.MINUS:
		return l - r
	case token.STAR:
		return l * r
	case token.SLASH:
		if r == 0 {
			return 0
		}
		return l / r
	default:
		return 0
	}
}

func (in *Interp) evalBinaryBitwise(n *ast.BinaryBitwise) value.Value {
	left, right := in.eval(n.Left), in.eval(n.Right)
	if n.Type() != nil && types.IsUnsignedInt(n.Type().Specifier) {
		l, r := asUint(left), asUint(right)
		return value.NewUint(n.Type(), bitwiseUint(n.Op, l, r))
	}
	l, r := asInt(left), asInt(right)
	return value.NewInt(n.Type(), bitwiseInt(n.Op, l, r))
}

func bitwiseInt(op token.Type, l, r int64) int64 {
	switch op {
	case token.AMP:
		return l & r
	case token.PIPE:
		return l | r
	case token.CARET:
		return l ^ r
	case token.SHL:
		return l << uint(r)
	case token.SHR:
		return l >> uint(r)
	default:
		return 0
	}
}

func bitwiseUint(op token.Type, l, r uint64) uint64 {
	switch op {
	case token.AMP:
		return l & r
	case token.PIPE:
		return l | r
	case token.CARET:
		return l ^ r
	case token.SHL:
		return l << r
	case token.SHR:
		return l >> r
	default:
		return 0
	}
}

func (in *Interp) evalBinaryLogical(n *ast.BinaryLogical) value.Value {
	switch n.Op {
	case token.AND_AND:
		return value.NewBool(in.eval(n.Left).B && in.eval(n.Right).B)
	case token.OR_OR:
		return value.NewBool(in.eval(n.Left).B || in.eval(n.Right).B)
	default:
		left, right := in.eval(n.Left), in.eval(n.Right)
		return value.NewBool(compare(n.Op, left, right))
	}
}

func compare(op token.Type, l, r value.Value) bool {
	if l.Tag == value.TagFloat || r.Tag == value.TagFloat {
		lf, rf := asFloat(l), asFloat(r)
		switch op {
		case token.EQ:
			return lf == rf
		case token.NE:
			return lf != rf
		case token.LT:
			return lf < rf
		case token.GT:
			return lf > rf
		case token.LE:
			return lf <= rf
		case token.GE:
			return lf >= rf
		}
	}
	if l.Tag == value.TagUint || r.Tag == value.TagUint {
		lu, ru := asUint(l), asUint(r)
		switch op {
		case token.EQ:
			return lu == ru
		case token.NE:
			return lu != ru
		case token.LT:
			return lu < ru
		case token.GT:
			return lu > ru
		case token.LE:
			return lu <= ru
		case token.GE:
			return lu >= ru
		}
	}
	if l.Tag == value.TagChar || l.Tag == value.TagBool || l.Tag == value.TagString {
		return compareNonNumeric(op, l, r)
	}
	li, ri := asInt(l), asInt(r)
	switch op {
	case token.EQ:
		return li == ri
	case token.NE:
		return li != ri
	case token.LT:
		return li < ri
	case token.GT:
		return li > ri
	case token.LE:
		return li <= ri
	case token.GE:
		return li >= ri
	}
	return false
}

func compareNonNumeric(op token.Type, l, r value.Value) bool {
	eq := value.Equal(l, r)
	switch op {
	case token.EQ:
		return eq
	case token.NE:
		return !eq
	default:
		if l.Tag == value.TagChar {
			switch op {
			case token.LT:
				return l.C < r.C
			case token.GT:
				return l.C > r.C
			case token.LE:
				return l.C <= r.C
			case token.GE:
				return l.C >= r.C
			}
		}
		return false
	}
}

func (in *Interp) evalUnary(n *ast.UnaryOp) value.Value {
	operand := in.eval(n.Operand)
	switch n.Op {
	case token.BANG:
		return value.NewBool(!operand.B)
	case token.TILDE:
		if operand.Tag == value.TagUint {
			return value.NewUint(n.Type(), maskWidth(^operand.U, n.Type()))
		}
		return value.NewInt(n.Type(), ^operand.I)
	case token.MINUS:
		if operand.Tag == value.TagFloat {
			return value.NewFloat(n.Type(), -operand.F)
		}
		return value.NewInt(n.Type(), -asInt(operand))
	default:
		return operand
	}
}

func (in *Interp) evalSubscript(n *ast.ArraySubscript) value.Value {
	arr := in.eval(n.Array)
	lit := n.Index.(*ast.Literal)
	idx := int(asInt(lit.Value()))
	if idx < 0 || idx >= len(arr.Elems) {
		in.fatal("array index %d out of range (len %d)", idx, len(arr.Elems))
		return value.Value{}
	}
	return arr.Elems[idx]
}

func (in *Interp) evalCall(n *ast.FunctionCall) value.Value {
	fn, ok := in.sess.Functions[n.Callee]
	if !ok {
		in.fatal("call to unresolved function '%s'", n.Callee)
		return value.Value{}
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = in.eval(a)
	}
	return in.callFunction(fn, args)
}

func (in *Interp) evalFieldAccess(n *ast.StructFieldAccess) value.Value {
	s := in.eval(n.Struct)
	if s.Struct == nil {
		in.fatal("field access on a non-struct value")
		return value.Value{}
	}
	f, ok := s.Struct.Fields[n.Field]
	if !ok {
		in.fatal("struct instance missing field '%s'", n.Field)
		return value.Value{}
	}
	return *f
}

// convert applies the widening conversion the checker already verified
// is legal, materializing it as an actual payload change (e.g. an i8
// literal assigned into an i32 slot becomes a TagInt value tagged with
// the i32 type).
func convert(v value.Value, target *types.Type) value.Value {
	if target == nil {
		return v
	}
	switch {
	case types.IsFloat(target.Specifier):
		return value.NewFloat(target, asFloat(v))
	case types.IsUnsignedInt(target.Specifier):
		return value.NewUint(target, asUint(v))
	case types.IsSignedInt(target.Specifier):
		return value.NewInt(target, asInt(v))
	default:
		v.Type = target
		return v
	}
}
