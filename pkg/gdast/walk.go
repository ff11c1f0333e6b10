package gdast

import (
	"reflect"
	"strconv"
	"strings"
)

// Field is a named child of a node. Attribute fields such as operators have
// no Node and carry their spelling in Text.
type Field struct {
	Name string
	Node Node
	Text string
}

type fieldList []Field

func (fs fieldList) node(name string, n Node) fieldList {
	if isNil(n) {
		return fs
	}
	return append(fs, Field{Name: name, Node: n})
}

func (fs fieldList) attr(name, text string) fieldList {
	return append(fs, Field{Name: name, Text: text})
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Fields returns the named children and attributes of n in source order.
// Repeated children (list elements) share a field name.
func Fields(n Node) []Field {
	var fs fieldList
	switch n := n.(type) {
	case *ArrayType:
		fs = fs.node("base_type", n.Base).node("size", n.Size)

	case *ShaderTypeDecl:
		fs = fs.node("shader_type", n.ShaderType)
	case *RenderModeDecl:
		for _, m := range n.Modes {
			fs = fs.node("render_mode", m)
		}
	case *VarSpecifier:
		fs = fs.node("type", n.Type).node("name", n.Name).node("sizes", n.Sizes)
	case *ArraySizes:
		for _, s := range n.Sizes {
			fs = fs.node("size", s)
		}
	case *ConstDecl:
		fs = fs.node("precision", n.Precision).node("specifier", n.Specifier).node("value", n.Value)
	case *VaryingDecl:
		fs = fs.node("interpolation", n.Interpolation).node("precision", n.Precision).node("specifier", n.Specifier)
	case *GroupUniformsDecl:
		fs = fs.node("group_name", n.Group).node("subgroup_name", n.Subgroup)
	case *UniformDecl:
		if n.Scope != "" {
			fs = fs.attr("scope", n.Scope)
		}
		fs = fs.node("precision", n.Precision).node("specifier", n.Specifier).
			node("hints", n.Hints).node("value", n.Value)
	case *HintList:
		for _, h := range n.Hints {
			fs = fs.node("hint", h)
		}
	case *Hint:
		fs = fs.node("name", n.Name)
		for _, p := range n.Params {
			fs = fs.node("param", p)
		}
	case *StructDecl:
		fs = fs.node("name", n.Name)
		for _, m := range n.Members {
			fs = fs.node("member", m)
		}
	case *StructMember:
		fs = fs.node("type", n.Type).node("name", n.Name).node("sizes", n.Sizes)
	case *FunctionDecl:
		fs = fs.node("function_type", n.ReturnType).node("name", n.Name)
		for _, p := range n.Params {
			fs = fs.node("parameter", p)
		}
		fs = fs.node("body", n.Body)
	case *Parameter:
		fs = fs.node("qualifier", n.Qualifier).node("type", n.Type).node("name", n.Name).node("sizes", n.Sizes)
	case *IncludeDecl:
		fs = fs.node("file", n.File)

	case *VarDecl:
		fs = fs.node("specifier", n.Specifier).node("value", n.Value)
	case *ConstVarDecl:
		fs = fs.node("precision", n.Precision).node("specifier", n.Specifier).node("value", n.Value)
	case *AssignStmt:
		fs = fs.node("argument", n.Target).attr("operation", n.Op.String()).node("value", n.Value)
	case *AdjustStmt:
		if n.Prefix {
			fs = fs.attr("operation", n.Op.String()).node("argument", n.Target)
		} else {
			fs = fs.node("argument", n.Target).attr("operation", n.Op.String())
		}
	case *SwitchStmt:
		fs = fs.node("condition", n.Cond)
		for _, c := range n.Cases {
			fs = fs.node("case", c)
		}
	case *SwitchCase:
		if n.Default {
			fs = fs.attr("label", "default")
		}
		fs = fs.node("argument", n.Value)
		for _, s := range n.Stmts {
			fs = fs.node("statement", s)
		}
	case *ForStmt:
		fs = fs.node("initializer", n.Init).node("condition", n.Cond).
			node("update", n.Update).node("action", n.Body)
	case *WhileStmt:
		fs = fs.node("condition", n.Cond).node("action", n.Body)
	case *IfStmt:
		fs = fs.node("condition", n.Cond).node("action", n.Then).node("alternate", n.Else)
	case *ExprStmt:
		fs = fs.node("value", n.Value)
	case *ReturnStmt:
		fs = fs.node("value", n.Value)
	case *Block:
		for _, s := range n.Stmts {
			fs = fs.node("statement", s)
		}

	case *UnaryExpr:
		fs = fs.attr("operator", n.Op.String()).node("argument", n.Operand)
	case *BinaryExpr:
		fs = fs.node("left", n.Left).attr("operator", n.Op.String()).node("right", n.Right)
	case *CallExpr:
		fs = fs.node("function", n.Func)
		for _, a := range n.Args {
			fs = fs.node("argument", a)
		}
	case *QualifiedArg:
		fs = fs.node("param_qualifier", n.Qualifier).node("value", n.Value)
	case *ParenExpr:
		fs = fs.node("value", n.Value)
	case *ConditionalExpr:
		fs = fs.node("condition", n.Cond).node("action", n.Then).node("alternate", n.Else)
	case *SubscriptExpr:
		fs = fs.node("argument", n.Argument).node("index", n.Index)
	case *MemberExpr:
		fs = fs.node("argument", n.Argument).node("member", n.Member)
	case *ArrayLiteralExpr:
		for _, v := range n.Values {
			fs = fs.node("value", v)
		}
	}
	return fs
}

// Children returns the child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	for _, f := range Fields(n) {
		if f.Node != nil {
			out = append(out, f.Node)
		}
	}
	return out
}

// LeafText returns the word or literal a leaf node stands for.
func LeafText(n Node) (string, bool) {
	switch n := n.(type) {
	case *Ident:
		return n.Name, true
	case *InvalidIdent:
		return n.Text, true
	case *BuiltinType:
		return n.Name, true
	case *IdentType:
		return n.Name, true
	case *InvalidType:
		return n.Text, true
	case *ShaderType:
		return n.Name, true
	case *InvalidShaderType:
		return n.Text, true
	case *RenderMode:
		return n.Name, true
	case *InvalidRenderMode:
		return n.Text, true
	case *HintName:
		return n.Name, true
	case *InvalidHint:
		return n.Text, true
	case *PrecisionQualifier:
		return n.Name, true
	case *InterpolationQualifier:
		return n.Name, true
	case *ParamQualifier:
		return n.Name, true
	case *IntLit:
		return n.Text, true
	case *FloatLit:
		return n.Text, true
	case *BoolLit:
		return strconv.FormatBool(n.Value), true
	case *StringLit:
		return n.Raw, true
	}
	return "", false
}

// Walk traverses the tree rooted at n in depth-first order. If fn returns
// false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// IsInvalid reports whether n was synthesized for input outside a closed
// vocabulary (an invalid_* leaf) or for tokens no production accepted.
func IsInvalid(n Node) bool {
	k := n.Kind()
	return k == "ERROR" || strings.HasPrefix(k, "invalid_")
}

// ParentMap computes the parent of every node reachable from roots. Roots
// map to nil.
func ParentMap[T Node](roots []T) map[Node]Node {
	parents := make(map[Node]Node)
	for _, r := range roots {
		var root Node = r
		parents[root] = nil
		Walk(root, func(n Node) bool {
			for _, c := range Children(n) {
				parents[c] = n
			}
			return true
		})
	}
	return parents
}
