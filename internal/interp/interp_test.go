package interp

import (
	"bytes"
	"testing"

	"github.com/gmofishsauce/yapc/internal/checker"
	"github.com/gmofishsauce/yapc/internal/diag"
	"github.com/gmofishsauce/yapc/internal/lexer"
	"github.com/gmofishsauce/yapc/internal/parser"
	"github.com/gmofishsauce/yapc/internal/session"
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) string {
	t.Helper()
	sess := session.New("test.yapc", src)
	scope := symtab.NewStack()
	p := parser.New(lexer.New("test.yapc", src), sess, scope)
	prog := p.Parse()
	require.Equal(t, diag.OK, sess.Latch.Code())
	checker.New(sess, scope).Check(prog)
	require.Equal(t, diag.OK, sess.Latch.Code())

	var out bytes.Buffer
	it := New(sess, scope, &out)
	it.Run(prog)
	it.CallMain()
	return out.String()
}

func TestPrintStatement(t *testing.T) {
	out := run(t, `f() :: void { print(1 + 2); } main() :: void { f(); }`)
	require.Equal(t, "3\n", out)
}

func TestArithmeticAndPrecedence(t *testing.T) {
	out := run(t, `main() :: void { print(2 + 3 * 4); }`)
	require.Equal(t, "14\n", out)
}

func TestWhileLoopWithBreak(t *testing.T) {
	out := run(t, `
	main() :: void {
		i32 i = 0;
		while (true) {
			if (i == 3) { break; }
			print(i);
			i += 1;
		}
	}`)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestForLoopWithContinue(t *testing.T) {
	out := run(t, `
	main() :: void {
		for (i32 i = 0; i < 5; i++) {
			if (i % 2 == 0) { continue; }
			print(i);
		}
	}`)
	require.Equal(t, "1\n3\n", out)
}

func TestFunctionCallReturnsValue(t *testing.T) {
	out := run(t, `
	add(i32 a, i32 b) :: i32 { return a + b; }
	main() :: void { print(add(2, 3)); }
	`)
	require.Equal(t, "5\n", out)
}

func TestArrayInitializerAndSubscript(t *testing.T) {
	out := run(t, `
	main() :: void {
		i32[3] arr = {10, 20, 30};
		print(arr[1]);
	}`)
	require.Equal(t, "20\n", out)
}

func TestTernaryExpression(t *testing.T) {
	out := run(t, `main() :: void { i32 x = 5; print(x > 3 ? 1 : 0); }`)
	require.Equal(t, "1\n", out)
}

func TestEnumValuesArePrintedAsIntegers(t *testing.T) {
	out := run(t, `
	enum Color { Red, Green, Blue };
	main() :: void { print(Blue); }
	`)
	require.Equal(t, "2\n", out)
}

func TestEnumMemberAssignsIntoPlainIntegerTarget(t *testing.T) {
	out := run(t, `
	enum Nums { Zero, One, Two };
	main() :: void { i8 i = Two; print(i); }
	`)
	require.Equal(t, "2\n", out)
}

func TestPostfixIncrementReturnsPreviousValue(t *testing.T) {
	out := run(t, `
	main() :: void {
		i32 i = 5;
		print(i++);
		print(i);
	}`)
	require.Equal(t, "5\n6\n", out)
}

func TestStructFieldDefaultIsReadableOffTheTypeName(t *testing.T) {
	out := run(t, `
	struct T { f32 f = 4.5; }
	main() :: void {
		f32 check = T.f;
		print(check);
	}`)
	require.Equal(t, "4.5\n", out)
}

func TestHexLiteralArraySubscriptUsesItsNumericValue(t *testing.T) {
	out := run(t, `
	main() :: void {
		i32[3] arr = {10, 20, 30};
		print(arr[0x2]);
	}`)
	require.Equal(t, "30\n", out)
}

func TestTerseBitwiseOrAssignment(t *testing.T) {
	out := run(t, `
	main() :: void {
		u8 x = ` + "`" + `11110000` + "`" + `;
		x |= ` + "`" + `00001111` + "`" + `;
		print(x);
	}`)
	require.Equal(t, "255\n", out)
}

func TestTerseCompoundAssignment(t *testing.T) {
	out := run(t, `
	main() :: void {
		i64 x = 10;
		x += 5;
		print(x);
	}`)
	require.Equal(t, "15\n", out)
}

func TestUnaryComplementTruncatesToDeclaredWidth(t *testing.T) {
	out := run(t, `
	main() :: void {
		u8 x = ` + "`" + `00001111` + "`" + `;
		print(~x);
	}`)
	require.Equal(t, "240\n", out)
}
