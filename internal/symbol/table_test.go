package symbol

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/tangzhangming/lume/internal/diag"
	"github.com/tangzhangming/lume/internal/i18n"
	"github.com/tangzhangming/lume/internal/lexer"
	"github.com/tangzhangming/lume/internal/parser"
)

func TestMain(m *testing.M) {
	i18n.SetLanguage(i18n.LangEnglish)
	os.Exit(m.Run())
}

func TestTable(t *testing.T) {
	table := New()

	if err := table.Insert("b", Entry{Kind: KindVariable}); err != nil {
		t.Fatalf("Insert(b): %v", err)
	}
	if err := table.Insert("a", Entry{Kind: KindVariable, Value: lexer.NumberLiteral(3)}); err != nil {
		t.Fatalf("Insert(a): %v", err)
	}
	if err := table.Insert("a", Entry{}); !errors.Is(err, ErrRedeclared) {
		t.Errorf("second Insert(a) = %v, want ErrRedeclared", err)
	}

	e, ok := table.Find("a")
	if !ok || e.Name != "a" || e.Value.Num != 3 {
		t.Errorf("Find(a) = %+v, %v", e, ok)
	}
	if got := table.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names = %v", got)
	}

	if err := table.Remove("b"); err != nil {
		t.Errorf("Remove(b): %v", err)
	}
	if err := table.Remove("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove(b) = %v, want ErrNotFound", err)
	}
	if _, ok := table.Find("b"); ok {
		t.Errorf("b still present after Remove")
	}

	table.Clear()
	if table.Len() != 0 {
		t.Errorf("Len after Clear = %d", table.Len())
	}
}

func collect(t *testing.T, src string) (*Scope, *Collector) {
	t.Helper()
	seq, hadError := lexer.Tokenize(src)
	if hadError {
		t.Fatalf("lexer errors for %q", src)
	}
	program, hadError := parser.Parse(seq)
	if hadError {
		t.Fatalf("parse errors for %q", src)
	}
	scope := NewScope()
	c := NewCollector(scope, nil)
	c.CollectProgram(program)
	return scope, c
}

func TestCollector(t *testing.T) {
	scope, c := collect(t, `var x = 3; var s = "hi"; var y; fun f(a) { var inner; } x = 1;`)

	if c.Sink().HadError() {
		t.Fatalf("unexpected diagnostics: %v", c.Sink().Diagnostics())
	}
	if got := scope.Variables.Names(); !reflect.DeepEqual(got, []string{"s", "x", "y"}) {
		t.Errorf("variables = %v", got)
	}
	if got := scope.Functions.Names(); !reflect.DeepEqual(got, []string{"f"}) {
		t.Errorf("functions = %v", got)
	}

	x, _ := scope.Variables.Find("x")
	if x.Value.Kind != lexer.LiteralNumber || x.Value.Num != 3 {
		t.Errorf("x value = %+v", x.Value)
	}
	s, _ := scope.Lookup("s")
	if s.Value.Str != "hi" {
		t.Errorf("s value = %+v", s.Value)
	}
	f, ok := scope.Lookup("f")
	if !ok || f.Kind != KindFunction || f.Decl.Kind != parser.KindFunDecl {
		t.Errorf("Lookup(f) = %+v, %v", f, ok)
	}
}

func TestCollector_ValueOnlyFromLiterals(t *testing.T) {
	scope, _ := collect(t, "var n = 2; var alias = n; var flag = true; var sum = 1 + 2;")

	tests := map[string]bool{"n": true, "alias": false, "flag": false, "sum": false}
	for name, hasValue := range tests {
		e, ok := scope.Variables.Find(name)
		if !ok {
			t.Fatalf("%s not collected", name)
		}
		if got := e.Value.Kind != lexer.LiteralNone; got != hasValue {
			t.Errorf("%s has value = %v, want %v (%+v)", name, got, hasValue, e.Value)
		}
	}
}

func TestCollector_Redeclared(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   string
		column int
	}{
		{"variable", "var a; var a;", "variable 'a'", 11},
		{"function", "fun g() {} fun g() {}", "function 'g'", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := collect(t, tt.src)
			diags := c.Sink().Diagnostics()
			if len(diags) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(diags))
			}
			d := diags[0]
			if d.Code != diag.Redeclared || d.Stage != diag.StageSymbol {
				t.Errorf("diagnostic = %+v", d)
			}
			if !strings.Contains(d.Message, tt.want) || d.Column != tt.column {
				t.Errorf("message %q at column %d, want %q at %d", d.Message, d.Column, tt.want, tt.column)
			}
		})
	}
}

func TestCollect_SeparateNamespaces(t *testing.T) {
	seq, _ := lexer.Tokenize("var h; fun h() {}")
	program, _ := parser.Parse(seq)
	scope, hadError := Collect(program)
	if hadError {
		t.Errorf("a variable and a function may share a name")
	}
	if scope.Variables.Len() != 1 || scope.Functions.Len() != 1 {
		t.Errorf("variables = %d, functions = %d", scope.Variables.Len(), scope.Functions.Len())
	}
}
