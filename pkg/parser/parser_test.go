package parser

import (
	"os"
	"strings"
	"testing"

	"github.com/raymyers/gdshader/pkg/gdast"
	"github.com/raymyers/gdshader/pkg/lexer"
	"gopkg.in/yaml.v3"
)

// TestSpec represents a test case from parse.yaml
type TestSpec struct {
	Name  string `yaml:"name"`
	Input string `yaml:"input"`
	SExpr string `yaml:"sexp"`
}

// TestFile represents the parse.yaml file structure
type TestFile struct {
	Tests []TestSpec `yaml:"tests"`
}

func TestParseYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/parse.yaml")
	if err != nil {
		t.Fatalf("failed to read parse.yaml: %v", err)
	}

	var testFile TestFile
	if err := yaml.Unmarshal(data, &testFile); err != nil {
		t.Fatalf("failed to parse parse.yaml: %v", err)
	}
	if len(testFile.Tests) == 0 {
		t.Fatal("parse.yaml has no tests")
	}

	for _, tc := range testFile.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			tree, err := Parse(tc.Input)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			got := gdast.SourceFileSExpr(tree.Decls)
			if got != tc.SExpr {
				t.Errorf("S-expression mismatch\nexpected: %s\n     got: %s", tc.SExpr, got)
			}
			checkCoverage(t, tc.Input, tree)
		})
	}
}

// checkCoverage verifies that every token lies inside exactly one
// top-level declaration.
func checkCoverage(t *testing.T, src string, tree *Tree) {
	t.Helper()
	for i := 1; i < len(tree.Decls); i++ {
		prev, next := tree.Decls[i-1].Span(), tree.Decls[i].Span()
		if prev.End > next.Start {
			t.Errorf("declarations %d and %d overlap: %v %v", i-1, i, prev, next)
		}
	}
	for _, tok := range lexer.Tokenize(src) {
		if tok.Type == lexer.TokenEOF {
			continue
		}
		covered := false
		for _, d := range tree.Decls {
			if d.Span().Contains(gdast.Span{Start: tok.Pos, End: tok.End}) {
				covered = true
				break
			}
		}
		if !covered {
			t.Errorf("token %q at offset %d is not covered by any declaration", tok.Literal, tok.Pos)
		}
	}
}

func TestEmptyFunction(t *testing.T) {
	tree, err := Parse(`void vertex() {}`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tree.HasErrors() {
		t.Fatalf("parser errors: %v", tree.Errors)
	}
	if len(tree.Decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(tree.Decls))
	}

	fn, ok := tree.Decls[0].(*gdast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *gdast.FunctionDecl, got %T", tree.Decls[0])
	}
	if got := tree.Text(fn.Name); got != "vertex" {
		t.Errorf("expected name 'vertex', got %q", got)
	}
	if _, ok := fn.ReturnType.(*gdast.BuiltinType); !ok {
		t.Errorf("expected builtin return type, got %T", fn.ReturnType)
	}
	if len(fn.Body.Stmts) != 0 {
		t.Errorf("expected empty body, got %d statements", len(fn.Body.Stmts))
	}
	if fn.Span() != (gdast.Span{Start: 0, End: 16}) {
		t.Errorf("unexpected span %v", fn.Span())
	}
}

func TestBinaryOperators(t *testing.T) {
	tests := []struct {
		op   string
		want gdast.BinaryOp
	}{
		{"+", gdast.OpAdd},
		{"-", gdast.OpSub},
		{"*", gdast.OpMul},
		{"/", gdast.OpDiv},
		{"%", gdast.OpMod},
		{"<", gdast.OpLt},
		{"<=", gdast.OpLe},
		{">", gdast.OpGt},
		{">=", gdast.OpGe},
		{"==", gdast.OpEq},
		{"!=", gdast.OpNe},
		{"&&", gdast.OpAnd},
		{"||", gdast.OpOr},
		{"&", gdast.OpBitAnd},
		{"|", gdast.OpBitOr},
		{"^", gdast.OpBitXor},
		{"<<", gdast.OpShl},
		{">>", gdast.OpShr},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			p := New("a "+tt.op+" b", Options{})
			expr, err := p.ParseExpression()
			if err != nil {
				t.Fatalf("ParseExpression returned error: %v", err)
			}
			bin, ok := expr.(*gdast.BinaryExpr)
			if !ok {
				t.Fatalf("expected *gdast.BinaryExpr, got %T", expr)
			}
			if bin.Op != tt.want {
				t.Errorf("expected %s, got %s", tt.want, bin.Op)
			}
			if bin.Op.String() != tt.op {
				t.Errorf("String(): expected %q, got %q", tt.op, bin.Op.String())
			}
		})
	}
}

func TestUnaryOperators(t *testing.T) {
	tests := []struct {
		input string
		want  gdast.UnaryOp
	}{
		{"-x", gdast.OpNeg},
		{"!x", gdast.OpNot},
		{"~x", gdast.OpBitNot},
		{"+x", gdast.OpPos},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := New(tt.input, Options{}).ParseExpression()
			if err != nil {
				t.Fatalf("ParseExpression returned error: %v", err)
			}
			un, ok := expr.(*gdast.UnaryExpr)
			if !ok {
				t.Fatalf("expected *gdast.UnaryExpr, got %T", expr)
			}
			if un.Op != tt.want {
				t.Errorf("expected %s, got %s", tt.want, un.Op)
			}
		})
	}
}

func TestPostfixChains(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a.b", "(member_expr argument: (ident a) member: (ident b))"},
		{"a[1]", "(subscript_expr argument: (ident a) index: (integer 1))"},
		{"f()", "(call_expr function: (ident f))"},
		{"a.b(c)", "(call_expr function: (member_expr argument: (ident a) member: (ident b)) argument: (ident c))"},
		{"f(x)[0].w", "(member_expr argument: (subscript_expr argument: (call_expr function: (ident f) argument: (ident x)) index: (integer 0)) member: (ident w))"},
		{"vec2(1, 2).x", "(member_expr argument: (call_expr function: (builtin_type vec2) argument: (integer 1) argument: (integer 2)) member: (ident x))"},
		{"-a[0]", "(unary_expr operator: - argument: (subscript_expr argument: (ident a) index: (integer 0)))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := New(tt.input, Options{}).ParseExpression()
			if err != nil {
				t.Fatalf("ParseExpression returned error: %v", err)
			}
			if got := gdast.SExpr(expr); got != tt.want {
				t.Errorf("expected %s\n got %s", tt.want, got)
			}
		})
	}
}

func TestParseExpressionStopsAtBoundary(t *testing.T) {
	p := New("a + b; c", Options{})
	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("ParseExpression returned error: %v", err)
	}
	if _, ok := expr.(*gdast.BinaryExpr); !ok {
		t.Fatalf("expected *gdast.BinaryExpr, got %T", expr)
	}
	if p.Pos() != 3 {
		t.Errorf("expected cursor at token 3, got %d", p.Pos())
	}
	if tok := p.Tokens()[p.Pos()]; tok.Type != lexer.TokenSemicolon {
		t.Errorf("expected cursor on ';', got %s", tok.Type)
	}
}

func TestParseExpressionAtBoundaryFails(t *testing.T) {
	for _, input := range []string{"", ";", ")", "}"} {
		_, err := New(input, Options{}).ParseExpression()
		if err == nil {
			t.Errorf("%q: expected structural error", input)
		}
	}
}

func TestParseStatement(t *testing.T) {
	p := New("x += 1; y--;", Options{})

	first, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("ParseStatement returned error: %v", err)
	}
	assign, ok := first.(*gdast.AssignStmt)
	if !ok {
		t.Fatalf("expected *gdast.AssignStmt, got %T", first)
	}
	if assign.Op != gdast.OpAddAssign {
		t.Errorf("expected +=, got %s", assign.Op)
	}

	second, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("ParseStatement returned error: %v", err)
	}
	adj, ok := second.(*gdast.AdjustStmt)
	if !ok {
		t.Fatalf("expected *gdast.AdjustStmt, got %T", second)
	}
	if adj.Op != gdast.OpDec || adj.Prefix {
		t.Errorf("expected postfix --, got prefix=%v op=%s", adj.Prefix, adj.Op)
	}
}

func TestUnsupportedAssignmentOperators(t *testing.T) {
	for _, op := range []string{"*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>="} {
		t.Run(op, func(t *testing.T) {
			stmt, err := New("x "+op+" 2;", Options{}).ParseStatement()
			if err != nil {
				t.Fatalf("ParseStatement returned error: %v", err)
			}
			if _, ok := stmt.(*gdast.ErrorNode); !ok {
				t.Errorf("expected *gdast.ErrorNode, got %T", stmt)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"float x;", "line 1, col 8: expected '(' after function name, got ';'"},
		{"shader_type spatial", "line 1, col 20: expected ';' after shader type, got end of input"},
		{"struct S {};", "line 1, col 11: struct S has no members"},
		{"void f() {\n  x = ;\n}", "line 2, col 7: expected expression, got ';'"},
		{"#define X", "line 1, col 2: expected include after '#', got IDENT \"define\""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if len(tree.Errors) != 1 {
				t.Fatalf("expected 1 error, got %v", tree.Errors)
			}
			if got := tree.Errors[0].Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if tree.Errors[0].Kind != Structural {
				t.Errorf("expected structural error, got %s", tree.Errors[0].Kind)
			}
		})
	}
}

func TestNestedBlocks(t *testing.T) {
	src := "void f() {" + strings.Repeat("{", 50) + strings.Repeat("}", 50) + "}"
	tree, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tree.HasErrors() {
		t.Fatalf("parser errors: %v", tree.Errors)
	}
}
