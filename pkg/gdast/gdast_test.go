package gdast_test

import (
	"bytes"
	"testing"

	"github.com/raymyers/gdshader/pkg/gdast"
	"github.com/raymyers/gdshader/pkg/parser"
	"github.com/raymyers/gdshader/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, src string) *parser.Tree {
	t.Helper()
	tree, err := parser.Parse(src)
	require.NoError(t, err)
	return tree
}

func TestSExprLeaves(t *testing.T) {
	tests := []struct {
		node gdast.Node
		want string
	}{
		{&gdast.Ident{Name: "uv"}, "(ident uv)"},
		{&gdast.Ident{Name: "TIME", Class: vocab.BuiltinVariable}, "(builtin_variable TIME)"},
		{&gdast.Ident{Name: "sin", Class: vocab.BuiltinFunction}, "(builtin_function sin)"},
		{&gdast.InvalidIdent{Text: "hint_range", Class: vocab.HintName}, "(invalid_ident hint_range)"},
		{&gdast.IntLit{Text: "42"}, "(integer 42)"},
		{&gdast.FloatLit{Text: "1.5"}, "(float 1.5)"},
		{&gdast.BoolLit{Value: true}, "(boolean true)"},
		{&gdast.StringLit{Raw: `"a"`}, `(string "a")`},
		{&gdast.ErrorNode{Message: "boom"}, "(ERROR)"},
		{&gdast.BreakStmt{}, "(break_statement)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, gdast.SExpr(tt.node))
		})
	}
}

func TestSExprOmitsAbsentFields(t *testing.T) {
	spec := &gdast.VarSpecifier{
		Type: &gdast.BuiltinType{Name: "float"},
		Name: &gdast.Ident{Name: "x"},
	}
	assert.Equal(t, "(var_specifier type: (builtin_type float) name: (ident x))", gdast.SExpr(spec))

	ret := &gdast.ReturnStmt{}
	assert.Equal(t, "(return_statement)", gdast.SExpr(ret))
}

func TestAdjustFieldOrderFollowsPlacement(t *testing.T) {
	target := &gdast.Ident{Name: "i"}
	post := &gdast.AdjustStmt{Target: target, Op: gdast.OpInc}
	pre := &gdast.AdjustStmt{Target: target, Op: gdast.OpDec, Prefix: true}

	assert.Equal(t, "(adjustment_statement argument: (ident i) operation: ++)", gdast.SExpr(post))
	assert.Equal(t, "(adjustment_statement operation: -- argument: (ident i))", gdast.SExpr(pre))
}

func TestSourceFileSExpr(t *testing.T) {
	assert.Equal(t, "(source_file)", gdast.SourceFileSExpr(nil))

	tree := parse(t, "shader_type spatial; render_mode unshaded;")
	assert.Equal(t,
		"(source_file (shader_type_declaration shader_type: (shader_type spatial)) (render_mode_declaration render_mode: (render_mode unshaded)))",
		gdast.SourceFileSExpr(tree.Decls))
}

func TestChildrenAndLeafText(t *testing.T) {
	tree := parse(t, "void f() { x = a + 2; }")
	fn := tree.Decls[0].(*gdast.FunctionDecl)
	assign := fn.Body.Stmts[0].(*gdast.AssignStmt)
	bin := assign.Value.(*gdast.BinaryExpr)

	children := gdast.Children(bin)
	require.Len(t, children, 2)
	assert.Same(t, bin.Left, children[0])
	assert.Same(t, bin.Right, children[1])

	text, ok := gdast.LeafText(bin.Right)
	assert.True(t, ok)
	assert.Equal(t, "2", text)

	_, ok = gdast.LeafText(bin)
	assert.False(t, ok)
}

func TestWalkVisitsInSourceOrder(t *testing.T) {
	tree := parse(t, "void f() { a(b, c.d); }")

	var leaves []string
	for _, d := range tree.Decls {
		gdast.Walk(d, func(n gdast.Node) bool {
			if text, ok := gdast.LeafText(n); ok {
				leaves = append(leaves, text)
			}
			return true
		})
	}
	assert.Equal(t, []string{"void", "f", "a", "b", "c", "d"}, leaves)
}

func TestWalkSkipsChildren(t *testing.T) {
	tree := parse(t, "void f() { a(b); }")

	var kinds []string
	gdast.Walk(tree.Decls[0], func(n gdast.Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != "block"
	})
	assert.Equal(t, []string{"function_declaration", "builtin_type", "ident", "block"}, kinds)
}

func TestIsInvalid(t *testing.T) {
	assert.True(t, gdast.IsInvalid(&gdast.ErrorNode{}))
	assert.True(t, gdast.IsInvalid(&gdast.InvalidType{}))
	assert.True(t, gdast.IsInvalid(&gdast.InvalidHint{}))
	assert.False(t, gdast.IsInvalid(&gdast.Ident{}))
	assert.False(t, gdast.IsInvalid(&gdast.Block{}))
}

func TestParentMap(t *testing.T) {
	tree := parse(t, "struct S { int n; };")
	s := tree.Decls[0].(*gdast.StructDecl)
	member := s.Members[0].(*gdast.StructMember)

	parents := gdast.ParentMap(tree.Decls)
	assert.Nil(t, parents[s])
	assert.Equal(t, gdast.Node(s), parents[s.Name])
	assert.Equal(t, gdast.Node(s), parents[member])
	assert.Equal(t, gdast.Node(member), parents[member.Type])
}

func TestSpan(t *testing.T) {
	s := gdast.Span{Start: 2, End: 8}
	assert.Equal(t, 6, s.Len())
	assert.True(t, s.Contains(gdast.Span{Start: 2, End: 8}))
	assert.True(t, s.Contains(gdast.Span{Start: 3, End: 4}))
	assert.False(t, s.Contains(gdast.Span{Start: 1, End: 4}))
	assert.False(t, s.Contains(gdast.Span{Start: 7, End: 9}))
}

func TestStringLitValue(t *testing.T) {
	assert.Equal(t, "res://a.gdshaderinc", (&gdast.StringLit{Raw: `"res://a.gdshaderinc"`}).Value())
	assert.Equal(t, "", (&gdast.StringLit{Raw: `""`}).Value())
}

func TestPrinterIndentsNestedNodes(t *testing.T) {
	tree := parse(t, "void f() { x = 1; }")

	var buf bytes.Buffer
	gdast.NewPrinter(&buf).PrintFile(tree.Decls)

	want := `(source_file
  (function_declaration
    function_type: (builtin_type void)
    name: (ident f)
    body: (block
      statement: (assignment_statement
        argument: (ident x)
        operation: =
        value: (integer 1)))))
`
	assert.Equal(t, want, buf.String())
}

func TestPrinterKeepsShortNodesInline(t *testing.T) {
	var buf bytes.Buffer
	gdast.NewPrinter(&buf).PrintNode(&gdast.ParenExpr{Value: &gdast.Ident{Name: "a"}})
	assert.Equal(t, "(paren_expr value: (ident a))\n", buf.String())
}

func TestToYAML(t *testing.T) {
	tree := parse(t, "uniform float f : hint_range(0, 1);")
	out, err := yaml.Marshal(gdast.FileToYAML(tree.Decls))
	require.NoError(t, err)

	var doc struct {
		Kind         string `yaml:"kind"`
		Declarations []struct {
			Kind      string `yaml:"kind"`
			Span      []int  `yaml:"span"`
			Specifier struct {
				Name struct {
					Kind string `yaml:"kind"`
					Text string `yaml:"text"`
				} `yaml:"name"`
			} `yaml:"specifier"`
			Hints struct {
				Hint struct {
					Param []struct {
						Text string `yaml:"text"`
					} `yaml:"param"`
				} `yaml:"hint"`
			} `yaml:"hints"`
		} `yaml:"declarations"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc), "yaml:\n%s", out)

	assert.Equal(t, "source_file", doc.Kind)
	require.Len(t, doc.Declarations, 1)
	d := doc.Declarations[0]
	assert.Equal(t, "uniform_declaration", d.Kind)
	assert.Equal(t, []int{0, 35}, d.Span)
	assert.Equal(t, "ident", d.Specifier.Name.Kind)
	assert.Equal(t, "f", d.Specifier.Name.Text)
	require.Len(t, d.Hints.Hint.Param, 2)
	assert.Equal(t, "0", d.Hints.Hint.Param[0].Text)
	assert.Equal(t, "1", d.Hints.Hint.Param[1].Text)
}

func TestToYAMLErrorMessage(t *testing.T) {
	node := gdast.ToYAML(&gdast.ErrorNode{NodeInfo: gdast.NodeInfo{Loc: gdast.Span{Start: 1, End: 3}}, Message: "expected expression"})
	out, err := yaml.Marshal(node)
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: ERROR")
	assert.Contains(t, string(out), "span: [1, 3]")
	assert.Contains(t, string(out), "message: expected expression")
}
