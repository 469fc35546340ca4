package symtab

import (
	"testing"

	"github.com/gmofishsauce/yapc/internal/token"
	"github.com/stretchr/testify/require"
)

func ident(name string) token.Token { return token.Token{Type: token.IDENT, Lexeme: name} }

func TestTableAddUpsertsPreservingIDAndLine(t *testing.T) {
	tbl := NewTable()
	tbl.Add(&Symbol{Token: ident("x"), ID: 1, DeclaredLine: 5, State: StateDeclared})
	tbl.Add(&Symbol{Token: ident("x"), ID: 99, DeclaredLine: 999, State: StateDefined})

	sym, ok := tbl.Retrieve(ident("x"))
	require.True(t, ok)
	require.Equal(t, 1, sym.ID)
	require.Equal(t, 5, sym.DeclaredLine)
	require.Equal(t, StateDefined, sym.State)
}

func TestStackLookupWalksOuterScopes(t *testing.T) {
	s := NewStack()
	s.Add(&Symbol{Token: ident("outer")})
	s.Push()
	s.Add(&Symbol{Token: ident("inner")})

	_, ok := s.Lookup(ident("outer"))
	require.True(t, ok)
	_, ok = s.Lookup(ident("inner"))
	require.True(t, ok)

	s.Pop()
	_, ok = s.Lookup(ident("inner"))
	require.False(t, ok)
}

func TestStackPopModuleScopePanics(t *testing.T) {
	s := NewStack()
	require.Panics(t, func() { s.Pop() })
}

func TestShadowOverridesOrdinaryLookup(t *testing.T) {
	s := NewStack()
	s.Add(&Symbol{Token: ident("x")})

	shadow := NewTable()
	shadow.Add(&Symbol{Token: ident("y")})
	s.ShadowWith(shadow)

	_, ok := s.Lookup(ident("x"))
	require.False(t, ok, "shadow should hide the module scope")
	_, ok = s.Lookup(ident("y"))
	require.True(t, ok)

	s.ClearShadow()
	_, ok = s.Lookup(ident("x"))
	require.True(t, ok)
}

func TestNextIDIsMonotonic(t *testing.T) {
	s := NewStack()
	a := s.NextID()
	b := s.NextID()
	require.Less(t, a, b)
}
