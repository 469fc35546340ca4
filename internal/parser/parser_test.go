package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gmofishsauce/yapc/internal/ast"
	"github.com/gmofishsauce/yapc/internal/diag"
	"github.com/gmofishsauce/yapc/internal/lexer"
	"github.com/gmofishsauce/yapc/internal/session"
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) (*ast.Program, *session.Session) {
	t.Helper()
	sess := session.New("test.yapc", src)
	scope := symtab.NewStack()
	p := New(lexer.New("test.yapc", src), sess, scope)
	return p.Parse(), sess
}

func TestParsesVarDeclWithInitializer(t *testing.T) {
	prog, sess := parse(t, "i32 x = 5;")
	require.Equal(t, diag.OK, sess.Latch.Code())
	require.Len(t, prog.Decls, 1)
	decl, ok := prog.Decls[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	require.NotNil(t, decl.Init)
}

func TestParsesFunctionDeclWithParams(t *testing.T) {
	prog, sess := parse(t, "add(i32 a, i32 b) :: i32 { return a + b; }")
	require.Equal(t, diag.OK, sess.Latch.Code())
	fn, ok := prog.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParsesIfWhileForBreakContinue(t *testing.T) {
	src := `
	f() :: void {
		i32 i = 0;
		while (i < 10) {
			if (i == 5) { break; }
			i += 1;
		}
		for (i32 j = 0; j < 3; j++) {
			continue;
		}
	}`
	_, sess := parse(t, src)
	require.Equal(t, diag.OK, sess.Latch.Code())
}

func TestParsesEnumAndStructDecls(t *testing.T) {
	src := `
	enum Color { Red, Green, Blue = 10 };
	struct Point { i32 x; i32 y; };
	`
	prog, sess := parse(t, src)
	require.Equal(t, diag.OK, sess.Latch.Code())
	enumDecl, ok := prog.Decls[0].(*ast.EnumDecl)
	require.True(t, ok)
	require.Len(t, enumDecl.Entries, 3)

	structDecl, ok := prog.Decls[1].(*ast.StructDecl)
	require.True(t, ok)
	require.Len(t, structDecl.Fields, 2)
}

type fieldShape struct {
	Name     string
	ArrayLen int
}

func TestStructFieldsParseInDeclarationOrder(t *testing.T) {
	src := `struct Vec { f32[3] components; i32 count; };`
	prog, sess := parse(t, src)
	require.Equal(t, diag.OK, sess.Latch.Code())

	structDecl, ok := prog.Decls[0].(*ast.StructDecl)
	require.True(t, ok)

	var got []fieldShape
	for _, f := range structDecl.Fields {
		got = append(got, fieldShape{Name: f.Name, ArrayLen: f.ArrayLen})
	}
	want := []fieldShape{
		{Name: "components", ArrayLen: 3},
		{Name: "count", ArrayLen: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("struct field shape mismatch (-want +got):\n%s", diff)
	}
}

func TestUndeclaredIdentifierReportsError(t *testing.T) {
	_, sess := parse(t, "f() :: void { print(y); }")
	require.Equal(t, diag.UNDECLARED, sess.Latch.Code())
}

func TestMissingInitializerReportsErrorAndKeepsParsing(t *testing.T) {
	prog, sess := parse(t, "i32 x = ; i32 y = 2;")
	require.NotEqual(t, diag.OK, sess.Latch.Code())
	require.Len(t, prog.Decls, 2)
}

func TestTernaryAndArraySubscriptParse(t *testing.T) {
	src := `
	f() :: void {
		i32[3] arr = {1, 2, 3};
		i32 x = arr[1];
		i32 y = x > 0 ? 1 : 0;
	}`
	_, sess := parse(t, src)
	require.Equal(t, diag.OK, sess.Latch.Code())
}
