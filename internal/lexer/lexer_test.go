package lexer

import (
	"testing"

	"github.com/gmofishsauce/yapc/internal/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New("test.yapc", src)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestNextRecognizesLiteralsAndKeywords(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Type
	}{
		{"int literal", "42", []token.Type{token.INT_LITERAL, token.EOF}},
		{"hex literal", "0xFF", []token.Type{token.HEX_LITERAL, token.EOF}},
		{"binary literal", "`1010`", []token.Type{token.BINARY_LITERAL, token.EOF}},
		{"float literal", "3.14", []token.Type{token.FLOAT_LITERAL, token.EOF}},
		{"char literal", "'a'", []token.Type{token.CHAR_LITERAL, token.EOF}},
		{"string literal", `"hi"`, []token.Type{token.STRING_LITERAL, token.EOF}},
		{"keyword and ident", "i32 x", []token.Type{token.I32, token.IDENT, token.EOF}},
		{"line comment skipped", "1 // a comment\n2", []token.Type{token.INT_LITERAL, token.INT_LITERAL, token.EOF}},
		{"compound assign", "x += 1", []token.Type{token.IDENT, token.PLUS_EQ, token.INT_LITERAL, token.EOF}},
		{"double colon", "f() :: void", []token.Type{token.IDENT, token.LPAREN, token.RPAREN, token.COLONCOLON, token.VOID, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := scanAll(t, tt.src)
			require.Len(t, toks, len(tt.want))
			for i, want := range tt.want {
				require.Equalf(t, want, toks[i].Type, "token %d", i)
			}
		})
	}
}

func TestNextReportsLexicalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated string", `"abc`},
		{"empty char literal", "''"},
		{"multi-char literal", "'ab'"},
		{"malformed float", "1."},
		{"oversized hex", "0x" + "1111111111111111f"},
		{"unexpected character", "@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := scanAll(t, tt.src)
			var sawError bool
			for _, tok := range toks {
				if tok.Type == token.ERROR {
					sawError = true
				}
			}
			require.True(t, sawError, "expected an ERROR token for %q", tt.src)
		})
	}
}

func TestNextTracksLineAndColumn(t *testing.T) {
	toks := scanAll(t, "1\n22")
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 1, toks[0].Column)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 1, toks[1].Column)
}
