package scanner

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sphennings/Hakarl/pkg/config"
	"github.com/sphennings/Hakarl/pkg/diag"
	"github.com/sphennings/Hakarl/pkg/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(nil)
	toks := New(src, config.NewConfig(), sink).ScanTokens()
	if len(toks) == 0 || toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("token sequence does not end with EOF: %v", toks)
	}
	return toks, sink
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func wantTypes(t *testing.T, src string, want []token.Type) []token.Token {
	t.Helper()
	toks, _ := scan(t, src)
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Fatalf("source %q token type mismatch (-want +got):\n%s", src, diff)
	}
	return toks
}

func TestEmptySource(t *testing.T) {
	toks, sink := scan(t, "")
	want := []token.Token{{Type: token.EOF, Line: 1}}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if sink.HadError() {
		t.Fatal("empty source reported an error")
	}
}

func TestArithmetic(t *testing.T) {
	toks, _ := scan(t, "1 + 2 = 3")
	want := []token.Token{
		{Type: token.Number, Lexeme: "1", Literal: float64(1), Line: 1},
		{Type: token.Plus, Lexeme: "+", Line: 1},
		{Type: token.Number, Lexeme: "2", Literal: float64(2), Line: 1},
		{Type: token.Eq, Lexeme: "=", Line: 1},
		{Type: token.Number, Lexeme: "3", Literal: float64(3), Line: 1},
		{Type: token.EOF, Line: 1},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestVarDeclaration(t *testing.T) {
	toks, _ := scan(t, `var x = "hi";`)
	want := []token.Token{
		{Type: token.Var, Lexeme: "var", Line: 1},
		{Type: token.Ident, Lexeme: "x", Line: 1},
		{Type: token.Eq, Lexeme: "=", Line: 1},
		{Type: token.String, Lexeme: `"hi"`, Literal: "hi", Line: 1},
		{Type: token.Semi, Lexeme: ";", Line: 1},
		{Type: token.EOF, Line: 1},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLineComment(t *testing.T) {
	toks, sink := scan(t, "// comment\nfalse")
	want := []token.Token{
		{Type: token.False, Lexeme: "false", Line: 2},
		{Type: token.EOF, Line: 2},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if sink.HadError() {
		t.Fatal("comment reported an error")
	}
}

func TestUnterminatedString(t *testing.T) {
	toks, sink := scan(t, `"unterminated`)
	if diff := cmp.Diff([]token.Token{{Type: token.EOF, Line: 1}}, toks); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	diags := sink.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("want exactly one diagnostic, got %v", diags)
	}
	if diags[0].Msg != "Unterminated string" || diags[0].Line != 1 {
		t.Fatalf("unexpected diagnostic: %+v", diags[0])
	}
	if !sink.HadError() {
		t.Fatal("HadError() = false after unterminated string")
	}
}

func TestGreedyTwoCharOperators(t *testing.T) {
	wantTypes(t, "1 <= 2 != 3", []token.Type{
		token.Number, token.Lte, token.Number, token.Neq, token.Number, token.EOF,
	})
}

func TestBlockCommentSpansLines(t *testing.T) {
	toks, sink := scan(t, "/* a\nb */ or")
	want := []token.Token{
		{Type: token.Or, Lexeme: "or", Line: 2},
		{Type: token.EOF, Line: 2},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if sink.HadError() {
		t.Fatal("block comment reported an error")
	}
}

func TestBlockCommentNoNesting(t *testing.T) {
	// The first */ closes the comment regardless of a /* inside it.
	wantTypes(t, "/* outer /* inner */ star", []token.Type{
		token.Ident, token.EOF,
	})
}

func TestUnterminatedBlockComment(t *testing.T) {
	toks, sink := scan(t, "/* never\ncloses")
	if diff := cmp.Diff([]token.Token{{Type: token.EOF, Line: 2}}, toks); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	diags := sink.Diagnostics()
	if len(diags) != 1 || diags[0].Msg != "Unterminated multiline comment" || diags[0].Line != 2 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestLoneStarInsideBlockComment(t *testing.T) {
	wantTypes(t, "/* a * b */ nil", []token.Type{token.Nil, token.EOF})
}

func TestOperatorRoundTrip(t *testing.T) {
	cases := map[string]token.Type{
		"(": token.LParen, ")": token.RParen, "{": token.LBrace, "}": token.RBrace,
		",": token.Comma, ".": token.Dot, "-": token.Minus, "+": token.Plus,
		";": token.Semi, "*": token.Star, "/": token.Slash,
		"!": token.Not, "!=": token.Neq, "=": token.Eq, "==": token.EqEq,
		"<": token.Lt, "<=": token.Lte, ">": token.Gt, ">=": token.Gte,
	}
	for lexeme, typ := range cases {
		toks, sink := scan(t, lexeme)
		if len(toks) != 2 || toks[0].Type != typ || toks[0].Lexeme != lexeme {
			t.Errorf("scanning %q: got %v, want single %v", lexeme, toks, typ)
		}
		if sink.HadError() {
			t.Errorf("scanning %q reported an error", lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	src := "and class else false for fun if nil or print return super this true var while"
	want := []token.Type{
		token.And, token.Class, token.Else, token.False, token.For, token.Fun,
		token.If, token.Nil, token.Or, token.Print, token.Return, token.Super,
		token.This, token.True, token.Var, token.While, token.EOF,
	}
	wantTypes(t, src, want)
}

func TestKeywordPrefixIsIdentifier(t *testing.T) {
	toks := wantTypes(t, "orchid or _or2", []token.Type{
		token.Ident, token.Or, token.Ident, token.EOF,
	})
	if toks[0].Lexeme != "orchid" || toks[2].Lexeme != "_or2" {
		t.Fatalf("identifier lexemes wrong: %v", toks)
	}
}

func TestNumberTrailingDot(t *testing.T) {
	wantTypes(t, "1.", []token.Type{token.Number, token.Dot, token.EOF})

	toks := wantTypes(t, "12.5.floor", []token.Type{
		token.Number, token.Dot, token.Ident, token.EOF,
	})
	if toks[0].Literal != 12.5 {
		t.Fatalf("literal = %v, want 12.5", toks[0].Literal)
	}
}

func TestLeadingMinusIsSeparate(t *testing.T) {
	toks := wantTypes(t, "-42", []token.Type{token.Minus, token.Number, token.EOF})
	if toks[1].Literal != float64(42) {
		t.Fatalf("literal = %v, want 42", toks[1].Literal)
	}
}

func TestMultilineString(t *testing.T) {
	toks, sink := scan(t, "\"a\nb\" 1")
	want := []token.Token{
		{Type: token.String, Lexeme: "\"a\nb\"", Literal: "a\nb", Line: 1},
		{Type: token.Number, Lexeme: "1", Literal: float64(1), Line: 2},
		{Type: token.EOF, Line: 2},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if sink.HadError() {
		t.Fatal("multiline string reported an error")
	}
}

func TestUnexpectedCharacterRecovery(t *testing.T) {
	toks, sink := scan(t, "@ var\n$")
	want := []token.Type{token.Var, token.EOF}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	diags := sink.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("want two diagnostics, got %v", diags)
	}
	if diags[0].Line != 1 || diags[1].Line != 2 {
		t.Fatalf("diagnostic lines wrong: %v", diags)
	}
	for _, d := range diags {
		if d.Msg != "Unexpected character" {
			t.Fatalf("unexpected message: %q", d.Msg)
		}
	}
}

func TestIdempotence(t *testing.T) {
	src := "var pi = 3.14; // tau is better\nprint pi >= 3;"
	first, _ := scan(t, src)
	second, _ := scan(t, src)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("two scans of the same source differ (-first +second):\n%s", diff)
	}
}

func TestLineNumbersNonDecreasing(t *testing.T) {
	src := "fun f() {\n  return \"x\n y\";\n}\n// done\nnil"
	toks, _ := scan(t, src)
	line := 1
	for _, tok := range toks {
		if tok.Line < line {
			t.Fatalf("line went backwards at %v (prev %d)", tok, line)
		}
		line = tok.Line
	}
	if got := toks[len(toks)-1].Line; got != 6 {
		t.Fatalf("EOF line = %d, want 6", got)
	}
}

func TestLexemesCoverSource(t *testing.T) {
	src := "var x =\t(1.5+2) ;\nprint x;"
	toks, _ := scan(t, src)
	var joined strings.Builder
	for _, tok := range toks {
		joined.WriteString(tok.Lexeme)
	}
	stripped := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, src)
	if joined.String() != stripped {
		t.Fatalf("lexemes %q do not cover source %q", joined.String(), stripped)
	}
}

func TestBackslashKeptLiterally(t *testing.T) {
	toks, sink := scan(t, `"a\nb"`)
	if toks[0].Literal != `a\nb` {
		t.Fatalf("literal = %q, want backslash kept", toks[0].Literal)
	}
	if sink.HadError() {
		t.Fatal("backslash in string reported an error")
	}
	diags := sink.Diagnostics()
	if len(diags) != 1 || diags[0].Severity != diag.SeverityWarning {
		t.Fatalf("want one escape warning, got %v", diags)
	}
}

func TestBlockCommentsDisabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetFeature(config.FeatBlockComments, false)
	sink := diag.NewSink(nil)
	toks := New("1 /* 2", cfg, sink).ScanTokens()
	want := []token.Type{token.Number, token.Slash, token.Star, token.Number, token.EOF}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLineCommentsDisabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetFeature(config.FeatLineComments, false)
	sink := diag.NewSink(nil)
	toks := New("// x", cfg, sink).ScanTokens()
	want := []token.Type{token.Slash, token.Slash, token.Ident, token.EOF}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMultilineStringsDisabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetFeature(config.FeatMultilineStrings, false)
	sink := diag.NewSink(nil)
	toks := New("\"a\nb\"", cfg, sink).ScanTokens()
	want := []token.Type{token.Ident, token.EOF}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	diags := sink.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("want two unterminated-string diagnostics, got %v", diags)
	}
	for _, d := range diags {
		if d.Msg != "Unterminated string" {
			t.Fatalf("unexpected message: %q", d.Msg)
		}
	}
}

func TestOverflowWarning(t *testing.T) {
	src := "1" + strings.Repeat("0", 400)
	toks, sink := scan(t, src)
	if toks[0].Type != token.Number {
		t.Fatalf("got %v, want a number token", toks[0])
	}
	if sink.HadError() {
		t.Fatal("overflow must warn, not error")
	}
	diags := sink.Diagnostics()
	if len(diags) != 1 || diags[0].Severity != diag.SeverityWarning {
		t.Fatalf("want one overflow warning, got %v", diags)
	}
}
