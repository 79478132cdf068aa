package lexer

import (
	"math"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/tangzhangming/lume/internal/diag"
	"github.com/tangzhangming/lume/internal/i18n"
)

func TestMain(m *testing.M) {
	i18n.SetLanguage(i18n.LangEnglish)
	os.Exit(m.Run())
}

func scan(t *testing.T, src string) (*Sequence, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(diag.StageLexer, nil)
	seq, _ := New(src, sink).Scan()
	return seq, sink
}

func typesWithoutEOF(seq *Sequence) []TokenType {
	types := seq.Types()
	if n := len(types); n > 0 && types[n-1] == TOKEN_EOF {
		types = types[:n-1]
	}
	if len(types) == 0 {
		return nil
	}
	return types
}

func wantTypes(t *testing.T, src string, want []TokenType) *Sequence {
	t.Helper()
	seq, sink := scan(t, src)
	if sink.HadError() {
		t.Fatalf("unexpected lexer errors for %q: %v", src, sink.Diagnostics())
	}
	if got := typesWithoutEOF(seq); !reflect.DeepEqual(got, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v", src, want, got)
	}
	return seq
}

func TestLexer_Operators(t *testing.T) {
	wantTypes(t, "+ - * / % ( ) { } [ ] , ; . ? : ! ~ = < > & | ^", []TokenType{
		TOKEN_PLUS, TOKEN_MINUS, TOKEN_STAR, TOKEN_SLASH, TOKEN_PERCENT,
		TOKEN_LPAREN, TOKEN_RPAREN, TOKEN_LBRACE, TOKEN_RBRACE, TOKEN_LBRACKET, TOKEN_RBRACKET,
		TOKEN_COMMA, TOKEN_SEMICOLON, TOKEN_DOT, TOKEN_QUESTION, TOKEN_COLON,
		TOKEN_NOT, TOKEN_BIT_NOT, TOKEN_ASSIGN, TOKEN_LT, TOKEN_GT,
		TOKEN_BIT_AND, TOKEN_BIT_OR, TOKEN_BIT_XOR,
	})
}

func TestLexer_CompoundOperators(t *testing.T) {
	wantTypes(t, "== != <= >= << >> && || ++ -- += -= *= /= %= <<= >>= &= |= ^=", []TokenType{
		TOKEN_EQ, TOKEN_NOT_EQ, TOKEN_LT_EQ, TOKEN_GT_EQ, TOKEN_SHL, TOKEN_SHR,
		TOKEN_AND, TOKEN_OR, TOKEN_INC, TOKEN_DEC,
		TOKEN_PLUS_ASSIGN, TOKEN_MINUS_ASSIGN, TOKEN_STAR_ASSIGN, TOKEN_SLASH_ASSIGN, TOKEN_PERCENT_ASSIGN,
		TOKEN_SHL_ASSIGN, TOKEN_SHR_ASSIGN, TOKEN_AND_ASSIGN, TOKEN_OR_ASSIGN, TOKEN_XOR_ASSIGN,
	})
}

func TestLexer_MaximalMunchWithoutSpaces(t *testing.T) {
	wantTypes(t, "a+++b<<=c", []TokenType{
		TOKEN_IDENTIFIER, TOKEN_INC, TOKEN_PLUS, TOKEN_IDENTIFIER, TOKEN_SHL_ASSIGN, TOKEN_IDENTIFIER,
	})
}

func TestLexer_Keywords(t *testing.T) {
	wantTypes(t, "if else for while fun var true false nil return print break continue iffy _x", []TokenType{
		TOKEN_IF, TOKEN_ELSE, TOKEN_FOR, TOKEN_WHILE, TOKEN_FUN, TOKEN_VAR,
		TOKEN_TRUE, TOKEN_FALSE, TOKEN_NIL, TOKEN_RETURN, TOKEN_PRINT, TOKEN_BREAK, TOKEN_CONTINUE,
		TOKEN_IDENTIFIER, TOKEN_IDENTIFIER,
	})
}

func TestLexer_Program(t *testing.T) {
	src := `
# greet prints a greeting
fun greet(name) {
    print "hello" + name;
}
var i = 0;
while (i < 3) { greet("x"); i += 1; }
`
	wantTypes(t, src, []TokenType{
		TOKEN_FUN, TOKEN_IDENTIFIER, TOKEN_LPAREN, TOKEN_IDENTIFIER, TOKEN_RPAREN, TOKEN_LBRACE,
		TOKEN_PRINT, TOKEN_STR_LITERAL, TOKEN_PLUS, TOKEN_IDENTIFIER, TOKEN_SEMICOLON,
		TOKEN_RBRACE,
		TOKEN_VAR, TOKEN_IDENTIFIER, TOKEN_ASSIGN, TOKEN_NUMBER, TOKEN_SEMICOLON,
		TOKEN_WHILE, TOKEN_LPAREN, TOKEN_IDENTIFIER, TOKEN_LT, TOKEN_NUMBER, TOKEN_RPAREN,
		TOKEN_LBRACE, TOKEN_IDENTIFIER, TOKEN_LPAREN, TOKEN_STR_LITERAL, TOKEN_RPAREN, TOKEN_SEMICOLON,
		TOKEN_IDENTIFIER, TOKEN_PLUS_ASSIGN, TOKEN_NUMBER, TOKEN_SEMICOLON, TOKEN_RBRACE,
	})
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		lexeme string
	}{
		{"0", 0, "0"},
		{"42", 42, "42"},
		{"3.14", 3.14, "3.14"},
		{"12.5e2", 1250, "12.5e2"},
		{"1E3", 1000, "1E3"},
		{"7.", 7, "7."},
		{"2e", 2, "2e"},
		{"0.001", 0.001, "0.001"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			seq := wantTypes(t, tt.input, []TokenType{TOKEN_NUMBER})
			tok := seq.At(0)
			if tok.Lexeme != tt.lexeme {
				t.Errorf("lexeme = %q, want %q", tok.Lexeme, tt.lexeme)
			}
			if tok.Literal.Kind != LiteralNumber {
				t.Fatalf("literal kind = %v, want number", tok.Literal.Kind)
			}
			if math.Abs(tok.Literal.Num-tt.want) > 1e-12 {
				t.Errorf("value = %v, want %v", tok.Literal.Num, tt.want)
			}
		})
	}
}

func TestLexer_NumberAccumulationIsExact(t *testing.T) {
	seq := wantTypes(t, "12.5e2", []TokenType{TOKEN_NUMBER})
	if got := seq.At(0).Literal.Num; got != 1250.0 {
		t.Errorf("12.5e2 = %v, want exactly 1250", got)
	}
}

func TestLexer_LongFractionStaysFinite(t *testing.T) {
	seq := wantTypes(t, "0."+strings.Repeat("1", 400), []TokenType{TOKEN_NUMBER})
	got := seq.At(0).Literal.Num
	if math.IsNaN(got) || math.IsInf(got, 0) || math.Abs(got-1.0/9) > 1e-9 {
		t.Errorf("0.111... (400 digits) = %v, want about 1/9", got)
	}
}

func TestLexer_ExponentSignIsNotPartOfNumber(t *testing.T) {
	wantTypes(t, "1e-5", []TokenType{TOKEN_NUMBER, TOKEN_MINUS, TOKEN_NUMBER})
}

func TestLexer_InvalidNumbers(t *testing.T) {
	tests := []struct {
		input string
		rest  []TokenType
	}{
		{"12ab", nil},
		{"1.2.3", nil},
		{"12ab + 3", []TokenType{TOKEN_PLUS, TOKEN_NUMBER}},
		{"9x;", nil}, // ';' is skipped with the invalid span
		{"4e2e", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			seq, sink := scan(t, tt.input)
			if sink.Count() != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", sink.Count(), sink.Diagnostics())
			}
			d := sink.Diagnostics()[0]
			if d.Code != diag.InvalidNumber {
				t.Errorf("code = %v, want %v", d.Code, diag.InvalidNumber)
			}
			if got := typesWithoutEOF(seq); !reflect.DeepEqual(got, tt.rest) {
				t.Errorf("remaining types = %v, want %v", got, tt.rest)
			}
		})
	}
}

func TestLexer_InvalidNumberMessageNamesSpan(t *testing.T) {
	_, sink := scan(t, "x = 12ab;")
	d := sink.Diagnostics()[0]
	if !strings.Contains(d.Message, "12ab;") {
		t.Errorf("message = %q", d.Message)
	}
	if d.Line != 1 || d.Column != 4 {
		t.Errorf("position = %d:%d, want 1:4", d.Line, d.Column)
	}
}

func TestLexer_Strings(t *testing.T) {
	seq := wantTypes(t, `print "hello world";`, []TokenType{TOKEN_PRINT, TOKEN_STR_LITERAL, TOKEN_SEMICOLON})
	tok := seq.At(1)
	if tok.Lexeme != `"hello world"` {
		t.Errorf("lexeme = %q", tok.Lexeme)
	}
	if tok.Literal.Kind != LiteralString || tok.Literal.Str != "hello world" {
		t.Errorf("literal = %+v", tok.Literal)
	}
	if tok.StartPos != 6 || tok.EndPos != 18 {
		t.Errorf("span = [%d, %d], want [6, 18]", tok.StartPos, tok.EndPos)
	}
}

func TestLexer_UnterminatedStringAtEOF(t *testing.T) {
	seq, sink := scan(t, `"abc`)
	if !sink.HadError() || sink.Count() != 1 {
		t.Fatalf("diagnostics = %v", sink.Diagnostics())
	}
	if sink.Diagnostics()[0].Code != diag.UnterminatedString {
		t.Errorf("code = %v", sink.Diagnostics()[0].Code)
	}
	if seq.Len() != 1 || seq.At(0).Type != TOKEN_EOF {
		t.Errorf("types = %v, want only EOF", seq.Types())
	}
}

func TestLexer_UnterminatedStringStopsAtNewline(t *testing.T) {
	seq, sink := scan(t, "x = \"abc\ny;")
	if sink.Count() != 1 {
		t.Fatalf("diagnostics = %v", sink.Diagnostics())
	}
	want := []TokenType{TOKEN_IDENTIFIER, TOKEN_ASSIGN, TOKEN_IDENTIFIER, TOKEN_SEMICOLON}
	if got := typesWithoutEOF(seq); !reflect.DeepEqual(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	if y := seq.At(2); y.Line != 2 || y.Column != 0 {
		t.Errorf("y at %d:%d, want 2:0", y.Line, y.Column)
	}
}

func TestLexer_InvalidCharacterResync(t *testing.T) {
	seq, sink := scan(t, "a @@b c $ d")
	if sink.Count() != 2 {
		t.Fatalf("diagnostics = %v", sink.Diagnostics())
	}
	for _, d := range sink.Diagnostics() {
		if d.Code != diag.InvalidCharacter {
			t.Errorf("code = %v", d.Code)
		}
	}
	want := []TokenType{TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER}
	if got := typesWithoutEOF(seq); !reflect.DeepEqual(got, want) {
		t.Errorf("types = %v, want %v", got, want)
	}
	if first := sink.Diagnostics()[0]; first.Column != 2 || !strings.Contains(first.Message, "'@'") {
		t.Errorf("first diagnostic = %v", first)
	}
}

func TestLexer_NonASCIIIsInvalid(t *testing.T) {
	_, sink := scan(t, "x = é;")
	if sink.Count() != 1 || !strings.Contains(sink.Diagnostics()[0].Message, "é") {
		t.Errorf("diagnostics = %v", sink.Diagnostics())
	}
}

func TestLexer_Comments(t *testing.T) {
	seq := wantTypes(t, "# leading\nvar x; # trailing\n#last", []TokenType{TOKEN_VAR, TOKEN_IDENTIFIER, TOKEN_SEMICOLON})
	if seq.At(0).Line != 2 {
		t.Errorf("var on line %d, want 2", seq.At(0).Line)
	}
}

func TestLexer_Positions(t *testing.T) {
	seq := wantTypes(t, "var x;\n  x = 10;", []TokenType{
		TOKEN_VAR, TOKEN_IDENTIFIER, TOKEN_SEMICOLON,
		TOKEN_IDENTIFIER, TOKEN_ASSIGN, TOKEN_NUMBER, TOKEN_SEMICOLON,
	})

	tests := []struct {
		index            int
		line, column     int
		startPos, endPos int
	}{
		{0, 1, 0, 0, 2},
		{1, 1, 4, 4, 4},
		{3, 2, 2, 9, 9},
		{5, 2, 6, 13, 14},
	}
	for _, tt := range tests {
		tok := seq.At(tt.index)
		if tok.Line != tt.line || tok.Column != tt.column || tok.StartPos != tt.startPos || tok.EndPos != tt.endPos {
			t.Errorf("token %d (%q) at %d:%d [%d,%d], want %d:%d [%d,%d]",
				tt.index, tok.Lexeme, tok.Line, tok.Column, tok.StartPos, tok.EndPos,
				tt.line, tt.column, tt.startPos, tt.endPos)
		}
	}

	eof := seq.At(seq.Len() - 1)
	if eof.Type != TOKEN_EOF || eof.Line != 2 {
		t.Errorf("eof = %+v", eof)
	}
}

func TestLexer_MultipleErrorsInOnePass(t *testing.T) {
	_, sink := scan(t, "var a = 1x;\nvar b = \"open\nvar c = $;")
	if sink.Count() != 3 {
		t.Fatalf("got %d diagnostics, want 3: %v", sink.Count(), sink.Diagnostics())
	}
	lines := []int{1, 2, 3}
	for i, d := range sink.Diagnostics() {
		if d.Line != lines[i] {
			t.Errorf("diagnostic %d on line %d, want %d", i, d.Line, lines[i])
		}
	}
}

func TestTokenize(t *testing.T) {
	seq, hadErr := Tokenize("1 + 2")
	if hadErr {
		t.Error("unexpected error")
	}
	if seq.Len() != 4 {
		t.Errorf("Len() = %d, want 4", seq.Len())
	}

	if _, hadErr := Tokenize("1 ` 2"); !hadErr {
		t.Error("expected lexer error")
	}
}

func TestTokenTypeString(t *testing.T) {
	tests := map[TokenType]string{
		TOKEN_PLUS:        "+",
		TOKEN_SHL_ASSIGN:  "<<=",
		TOKEN_WHILE:       "while",
		TOKEN_EOF:         "EOF",
		TOKEN_NONE:        "NONE",
		TOKEN_STR_LITERAL: "STR_LITERAL",
		TokenType(-1):     "UNKNOWN",
	}
	for tt, want := range tests {
		if got := tt.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(tt), got, want)
		}
	}
}

func TestNewSequenceAppendsEOF(t *testing.T) {
	seq := NewSequence([]Token{{Type: TOKEN_IDENTIFIER, Lexeme: "x", Line: 3, Column: 2, StartPos: 10, EndPos: 10}})
	if seq.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", seq.Len())
	}
	eof := seq.At(1)
	if eof.Type != TOKEN_EOF || eof.Line != 3 || eof.StartPos != 11 || eof.Column != 3 {
		t.Errorf("eof = %+v", eof)
	}

	toks := seq.Tokens()
	toks[0].Lexeme = "changed"
	if seq.At(0).Lexeme != "x" {
		t.Error("Tokens() exposed internal storage")
	}
}

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident   string
		want    TokenType
		keyword bool
	}{
		{"while", TOKEN_WHILE, true},
		{"nil", TOKEN_NIL, true},
		{"continue", TOKEN_CONTINUE, true},
		{"whilex", TOKEN_IDENTIFIER, false},
		{"_if", TOKEN_IDENTIFIER, false},
	}
	for _, tt := range tests {
		got := LookupIdent(tt.ident)
		if got != tt.want || got.IsKeyword() != tt.keyword {
			t.Errorf("LookupIdent(%q) = %v (keyword %v), want %v", tt.ident, got, got.IsKeyword(), tt.want)
		}
	}
	if TOKEN_PLUS.IsKeyword() || TOKEN_IDENTIFIER.IsKeyword() {
		t.Errorf("operator or identifier reported as keyword")
	}
}

func TestToken_HasLiteral(t *testing.T) {
	seq, _ := scan(t, `x 1 "s"`)
	want := []bool{false, true, true, false}
	for i, w := range want {
		if got := seq.At(i).HasLiteral(); got != w {
			t.Errorf("token %d (%s) HasLiteral = %v, want %v", i, seq.At(i).Type, got, w)
		}
	}
}
