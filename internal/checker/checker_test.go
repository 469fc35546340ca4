package checker

import (
	"testing"

	"github.com/gmofishsauce/yapc/internal/ast"
	"github.com/gmofishsauce/yapc/internal/diag"
	"github.com/gmofishsauce/yapc/internal/lexer"
	"github.com/gmofishsauce/yapc/internal/parser"
	"github.com/gmofishsauce/yapc/internal/session"
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/gmofishsauce/yapc/internal/types"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, src string) *session.Session {
	t.Helper()
	sess := session.New("test.yapc", src)
	scope := symtab.NewStack()
	p := parser.New(lexer.New("test.yapc", src), sess, scope)
	prog := p.Parse()
	require.Equal(t, diag.OK, sess.Latch.Code(), "parse phase must be clean before checking")
	New(sess, scope).Check(prog)
	return sess
}

func TestShrinkRulePicksSmallestSignedSpecifier(t *testing.T) {
	sess := check(t, "f() :: void { i32 a = 5; }")
	require.Equal(t, diag.OK, sess.Latch.Code())
	lit := sess.Functions["f"].Body.Stmts[0].(*ast.VarDecl).Init
	require.Equal(t, types.I8, lit.Type().Specifier)
}

func TestWideningAssignmentIsAllowed(t *testing.T) {
	sess := check(t, "f() :: void { i8 a = 5; i64 b = a; }")
	require.Equal(t, diag.OK, sess.Latch.Code())
}

func TestNarrowingAssignmentIsRejected(t *testing.T) {
	sess := check(t, "f() :: void { i64 a = 5; i8 b = 0; b = a; }")
	require.Equal(t, diag.TYPE_DISAGREEMENT, sess.Latch.Code())
}

func TestSignedUnsignedMismatchIsRejected(t *testing.T) {
	sess := check(t, "f() :: void { i32 a = 5; u32 b = a; }")
	require.Equal(t, diag.TYPE_DISAGREEMENT, sess.Latch.Code())
}

func TestMissingReturnIsDetected(t *testing.T) {
	sess := check(t, "f() :: i32 { i32 x = 1; }")
	require.Equal(t, diag.MISSING_RETURN, sess.Latch.Code())
}

func TestVoidFunctionCannotReturnValue(t *testing.T) {
	sess := check(t, "f() :: void { return 1; }")
	require.Equal(t, diag.TYPE_DISAGREEMENT, sess.Latch.Code())
}

func TestCallArityIsChecked(t *testing.T) {
	sess := check(t, `
	add(i32 a, i32 b) :: i32 { return a + b; }
	f() :: void { i32 x = add(1); }
	`)
	require.Equal(t, diag.TOO_FEW, sess.Latch.Code())
}

func TestCallArgumentTypeIsChecked(t *testing.T) {
	sess := check(t, `
	takesBool(bool b) :: void { }
	f() :: void { takesBool(5); }
	`)
	require.Equal(t, diag.TYPE_DISAGREEMENT, sess.Latch.Code())
}

func TestBreakOutsideLoopIsRejected(t *testing.T) {
	sess := check(t, "f() :: void { break; }")
	require.Equal(t, diag.IMPROPER_ACCESS, sess.Latch.Code())
}

func TestEnumEntriesGetSequentialValues(t *testing.T) {
	src := "enum Color { Red, Green, Blue = 10, Indigo };"
	sess := session.New("test.yapc", src)
	scope := symtab.NewStack()
	prog := parser.New(lexer.New("test.yapc", src), sess, scope).Parse()
	New(sess, scope).Check(prog)
	require.Equal(t, diag.OK, sess.Latch.Code())

	var got []int64
	for _, e := range prog.Decls[0].(*ast.EnumDecl).Entries {
		got = append(got, e.Resolved)
	}
	require.Equal(t, []int64{0, 1, 10, 11}, got)
}

func TestIntLiteralOverflowIsRejected(t *testing.T) {
	sess := check(t, "f() :: void { i64 a = 9223372036854775808; }")
	require.Equal(t, diag.OVERFLOW, sess.Latch.Code())
}

func TestEnumMemberIsAssignableToPlainIntegerType(t *testing.T) {
	sess := check(t, "enum Nums { Zero, One, Two }; f() :: void { i8 i = Two; }")
	require.Equal(t, diag.OK, sess.Latch.Code())
}

func TestArraySubscriptOutOfBoundsIsRejected(t *testing.T) {
	sess := check(t, "f() :: void { i32[2] arr = {1, 2}; i32 x = arr[5]; }")
	require.Equal(t, diag.OVERFLOW, sess.Latch.Code())
}

func TestStructFieldAccessRequiresKnownField(t *testing.T) {
	sess := check(t, `
	struct Point { i32 x; i32 y; };
	f() :: void { Point p = Point; i32 z = p.q; }
	`)
	require.Equal(t, diag.IMPROPER_ACCESS, sess.Latch.Code())
}

func TestMissingReturnIsDetectedWhenOnlyOneIfBranchReturns(t *testing.T) {
	sess := check(t, `
	f(bool c) :: i32 { if (c) { return 1; } }
	`)
	require.Equal(t, diag.MISSING_RETURN, sess.Latch.Code())
}

func TestEveryPathReturningThroughIfElseIsAccepted(t *testing.T) {
	sess := check(t, `
	f(bool c) :: i32 { if (c) { return 1; } else { return 0; } }
	`)
	require.Equal(t, diag.OK, sess.Latch.Code())
}

func TestWhileTrueWithNoBreakSatisfiesReturnCheck(t *testing.T) {
	sess := check(t, `
	f() :: i32 { while (true) { return 1; } }
	`)
	require.Equal(t, diag.OK, sess.Latch.Code())
}

func TestWhileTrueWithBreakDoesNotSatisfyReturnCheck(t *testing.T) {
	sess := check(t, `
	f(bool c) :: i32 { while (true) { if (c) { break; } return 1; } }
	`)
	require.Equal(t, diag.MISSING_RETURN, sess.Latch.Code())
}

func TestUnreachableCodeAfterReturnIsDetected(t *testing.T) {
	sess := check(t, `
	f() :: i32 { return 1; i32 x = 2; }
	`)
	require.Equal(t, diag.UNREACHABLE_CODE, sess.Latch.Code())
}

func TestEmptyEnumBodyIsRejected(t *testing.T) {
	sess := check(t, "enum Empty { };")
	require.Equal(t, diag.EMPTY_BODY, sess.Latch.Code())
}

func TestEmptyStructBodyIsRejected(t *testing.T) {
	sess := check(t, "struct Empty { };")
	require.Equal(t, diag.EMPTY_BODY, sess.Latch.Code())
}
