package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(t *testing.T, src string) []Kind {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	out := make([]Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestSceneKinds(t *testing.T) {
	src := `@scene main:
	flavortext { "Hi" };
	get "key";
	select { has "key", has no "lamp" ? "Leave" => exit, "Go" => m::s };
@end-scene`

	want := []Kind{
		Scene, Identifier, Colon,
		Flavortext, OpenBrace, String, CloseBrace, Semicolon,
		Get, String, Semicolon,
		Select, OpenBrace,
		Has, String, Comma, Has, No, String, Condition, String, Arrow, Identifier, Comma,
		String, Arrow, Identifier, Scope, Identifier,
		CloseBrace, Semicolon,
		EndScene, Eof,
	}
	if diff := cmp.Diff(want, kinds(t, src)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestStructuralKeywords(t *testing.T) {
	got := kinds(t, `@module @end-module @scene @end-scene @file`)
	assert.Equal(t, []Kind{Module, EndModule, Scene, EndScene, FileRef, Eof}, got)
}

func TestFileReferenceKinds(t *testing.T) {
	got := kinds(t, `@file("other.nar")::m::s`)
	assert.Equal(t, []Kind{FileRef, OpenParen, String, CloseParen, Scope, Identifier, Scope, Identifier, Eof}, got)
}

func TestTokenValues(t *testing.T) {
	toks, err := Tokenize(`select cave-2 "x" =>`)
	require.NoError(t, err)
	want := []Token{
		{Kind: Select, Value: "select", Line: 1},
		{Kind: Identifier, Value: "cave-2", Line: 1},
		{Kind: String, Value: "x", Line: 1},
		{Kind: Arrow, Value: "=>", Line: 1},
		{Kind: Eof, Value: "", Line: 1},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"main", "main"},
		{"2nd-room", "2nd-room"},
		{"selected", "selected"},
		{"nope", "nope"},
		{"café", "café"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, err := Tokenize(tt.src)
			require.NoError(t, err)
			require.Len(t, toks, 2)
			assert.Equal(t, Identifier, toks[0].Kind)
			assert.Equal(t, tt.want, toks[0].Value)
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", `"hello"`, "hello"},
		{"newline escape", `"a\nb"`, "a\nb"},
		{"tab escape", `"a\tb"`, "a\tb"},
		{"quote escape", `"say \"hi\""`, `say "hi"`},
		{"collapse spaces", `"a    b  c"`, "a b c"},
		{"single space kept", `"a b"`, "a b"},
		{"multiline literal", "\"a\nb\"", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.src)
			require.NoError(t, err)
			assert.Equal(t, String, toks[0].Kind)
			assert.Equal(t, tt.want, toks[0].Value)
		})
	}
}

func TestComments(t *testing.T) {
	got := kinds(t, "# a comment\n@scene # trailing\nmain # no newline at end")
	assert.Equal(t, []Kind{Scene, Identifier, Eof}, got)
}

func TestLineNumbers(t *testing.T) {
	toks, err := Tokenize("@scene\n\nmain:\n# c\n\"a\\nb\" x")
	require.NoError(t, err)
	lines := []int{}
	for _, tok := range toks {
		lines = append(lines, tok.Line)
	}
	// The \n escape counts as a consumed newline.
	assert.Equal(t, []int{1, 3, 3, 5, 6, 6}, lines)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"bad escape", `"a\qb"`, 1, `Unrecognized escape sequence \q`},
		{"unknown structural", "\n@modul", 2, "Expected a structural keyword, got '@modul' instead"},
		{"unterminated string", "\"abc\n", 2, "Unterminated string literal starting on line 1"},
		{"backslash at end", `"abc\`, 1, "Unterminated string literal starting on line 1"},
		{"lone equals", "= x", 1, "Unexpected sequence '= '"},
		{"equals at end", "=", 1, "Unexpected '=' at end of input"},
		{"unknown character", "$", 1, "Unexpected character '$'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src)
			require.Error(t, err)
			var lexErr *Error
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.line, lexErr.Line)
			assert.Equal(t, tt.msg, lexErr.Cause)
		})
	}
}

func TestEofRepeats(t *testing.T) {
	l := New("main")
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, Identifier, tok.Kind)
	for i := 0; i < 3; i++ {
		tok, err = l.Next()
		require.NoError(t, err)
		assert.Equal(t, Eof, tok.Kind)
	}
}

func TestTokenizeSingleEof(t *testing.T) {
	for _, src := range []string{"", "   ", "# only a comment", "@scene main: @end-scene"} {
		toks, err := Tokenize(src)
		require.NoError(t, err)
		eofs := 0
		for _, tok := range toks {
			if tok.Kind == Eof {
				eofs++
			}
		}
		assert.Equal(t, 1, eofs, src)
		assert.Equal(t, Eof, toks[len(toks)-1].Kind, src)
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "(Keyword @scene)", newToken(Scene, 1).String())
	assert.Equal(t, "(Keyword select)", newToken(Select, 1).String())
	assert.Equal(t, "(Punctuation '::')", newToken(Scope, 1).String())
	assert.Equal(t, "(End of file)", newToken(Eof, 1).String())
	assert.Equal(t, `(String "a\n\"b\"")`, Token{Kind: String, Value: "a\n\"b\""}.String())
	assert.Equal(t, "(Identifier main)", Token{Kind: Identifier, Value: "main"}.String())
}

func TestLookupKeyword(t *testing.T) {
	k, ok := LookupKeyword("lose")
	assert.True(t, ok)
	assert.Equal(t, Lose, k)
	_, ok = LookupKeyword("@scene")
	assert.False(t, ok)
	_, ok = LookupKeyword("main")
	assert.False(t, ok)
}
