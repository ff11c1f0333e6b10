// Package gdast defines the syntax tree for Godot shading language source.
//
// The tree is a set of closed sum types (Decl, Stmt, Expr, Type) built from
// marker methods. Every node is a pointer to a struct that embeds NodeInfo
// with its byte span and carries only its own fields. Children are owned by
// their parent; there are no back references (see ParentMap).
package gdast

import (
	"strings"

	"github.com/raymyers/gdshader/pkg/vocab"
)

// Span is a half-open byte range [Start, End) in the source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool { return s.Start <= o.Start && o.End <= s.End }

// NodeInfo holds the source location shared by all nodes.
type NodeInfo struct {
	Loc Span
}

// Span returns the byte range of the node.
func (n *NodeInfo) Span() Span { return n.Loc }

// Node is the base interface for all syntax nodes
type Node interface {
	Span() Span
	Kind() string
}

// Decl is the interface for top-level declarations
type Decl interface {
	Node
	implDecl()
}

// Stmt is the interface for statements
type Stmt interface {
	Node
	implStmt()
}

// Expr is the interface for expressions
type Expr interface {
	Node
	implExpr()
}

// Type is the interface for type positions
type Type interface {
	Node
	implType()
}

// Name is an identifier position: *Ident or *InvalidIdent.
type Name interface {
	Expr
	implName()
}

// Member is an entry of a struct body: *StructMember or *ErrorNode.
type Member interface {
	Node
	implMember()
}

// Clause is an entry of a switch body: *SwitchCase or *ErrorNode.
type Clause interface {
	Node
	implClause()
}

// ----------------------------------------------------------------------------
// Leaves
// ----------------------------------------------------------------------------

// Ident is a valid identifier: a plain name, a builtin variable or a
// builtin function.
type Ident struct {
	NodeInfo
	Name  string
	Class vocab.Class
}

func (n *Ident) Kind() string {
	switch n.Class {
	case vocab.BuiltinVariable:
		return "builtin_variable"
	case vocab.BuiltinFunction:
		return "builtin_function"
	}
	return "ident"
}

// InvalidIdent is a closed-vocabulary word found where an identifier is
// required.
type InvalidIdent struct {
	NodeInfo
	Text  string
	Class vocab.Class
}

func (*InvalidIdent) Kind() string { return "invalid_ident" }

// BuiltinType names one of the builtin scalar, vector, matrix or sampler
// types. As an expression it is the callee of a constructor call.
type BuiltinType struct {
	NodeInfo
	Name string
}

func (*BuiltinType) Kind() string { return "builtin_type" }

// IdentType is a user type name such as a struct.
type IdentType struct {
	NodeInfo
	Name string
}

func (*IdentType) Kind() string { return "ident_type" }

// InvalidType is a closed-vocabulary word found where a type is required.
type InvalidType struct {
	NodeInfo
	Text  string
	Class vocab.Class
}

func (*InvalidType) Kind() string { return "invalid_type" }

// ArrayType is Base[Size].
type ArrayType struct {
	NodeInfo
	Base Type
	Size *IntLit
}

func (*ArrayType) Kind() string { return "array_type" }

type ShaderType struct {
	NodeInfo
	Name string
}

func (*ShaderType) Kind() string { return "shader_type" }

type InvalidShaderType struct {
	NodeInfo
	Text string
}

func (*InvalidShaderType) Kind() string { return "invalid_shader_type" }

type RenderMode struct {
	NodeInfo
	Name string
}

func (*RenderMode) Kind() string { return "render_mode" }

type InvalidRenderMode struct {
	NodeInfo
	Text string
}

func (*InvalidRenderMode) Kind() string { return "invalid_render_mode" }

type HintName struct {
	NodeInfo
	Name string
}

func (*HintName) Kind() string { return "hint_name" }

type InvalidHint struct {
	NodeInfo
	Text string
}

func (*InvalidHint) Kind() string { return "invalid_hint" }

type PrecisionQualifier struct {
	NodeInfo
	Name string
}

func (*PrecisionQualifier) Kind() string { return "precision_qualifier" }

type InterpolationQualifier struct {
	NodeInfo
	Name string
}

func (*InterpolationQualifier) Kind() string { return "interpolation_qualifier" }

type ParamQualifier struct {
	NodeInfo
	Name string
}

func (*ParamQualifier) Kind() string { return "param_qualifier" }

// IntLit is an integer literal; Text is the digits as written.
type IntLit struct {
	NodeInfo
	Text string
}

func (*IntLit) Kind() string { return "integer" }

// FloatLit is a float literal; Text is the literal as written.
type FloatLit struct {
	NodeInfo
	Text string
}

func (*FloatLit) Kind() string { return "float" }

type BoolLit struct {
	NodeInfo
	Value bool
}

func (*BoolLit) Kind() string { return "boolean" }

// StringLit is a string literal. Raw keeps the quotes.
type StringLit struct {
	NodeInfo
	Raw string
}

func (*StringLit) Kind() string { return "string" }

// Value returns the string contents without quotes. No escapes exist.
func (n *StringLit) Value() string {
	return strings.TrimSuffix(strings.TrimPrefix(n.Raw, `"`), `"`)
}

// ErrorNode covers tokens that could not be parsed into any production.
// It can stand in for a declaration, statement, expression, type, struct
// member or switch clause.
type ErrorNode struct {
	NodeInfo
	Message string
}

func (*ErrorNode) Kind() string { return "ERROR" }

// ----------------------------------------------------------------------------
// Declarations
// ----------------------------------------------------------------------------

// ShaderTypeDecl is `shader_type spatial;`. ShaderType is *ShaderType or
// *InvalidShaderType and is always present.
type ShaderTypeDecl struct {
	NodeInfo
	ShaderType Node
}

func (*ShaderTypeDecl) Kind() string { return "shader_type_declaration" }

// RenderModeDecl is `render_mode a, b;`. Each mode is *RenderMode or
// *InvalidRenderMode; the list may be empty.
type RenderModeDecl struct {
	NodeInfo
	Modes []Node
}

func (*RenderModeDecl) Kind() string { return "render_mode_declaration" }

// VarSpecifier is `type name[sizes]`.
type VarSpecifier struct {
	NodeInfo
	Type  Type
	Name  Name
	Sizes *ArraySizes // nil when absent
}

func (*VarSpecifier) Kind() string { return "var_specifier" }

// ArraySizes is one or more `[N]` suffixes after a declared name.
type ArraySizes struct {
	NodeInfo
	Sizes []*IntLit
}

func (*ArraySizes) Kind() string { return "array_sizes" }

type ConstDecl struct {
	NodeInfo
	Precision *PrecisionQualifier
	Specifier *VarSpecifier
	Value     Expr
}

func (*ConstDecl) Kind() string { return "const_declaration" }

type VaryingDecl struct {
	NodeInfo
	Interpolation *InterpolationQualifier
	Precision     *PrecisionQualifier
	Specifier     *VarSpecifier
}

func (*VaryingDecl) Kind() string { return "varying_declaration" }

// GroupUniformsDecl is `group_uniforms [group][.subgroup];`. Both names
// absent clears the current grouping.
type GroupUniformsDecl struct {
	NodeInfo
	Group    Name
	Subgroup Name
}

func (*GroupUniformsDecl) Kind() string { return "group_uniforms_declaration" }

// UniformDecl is `[global|instance] uniform [precision] specifier [: hints] [= value];`.
type UniformDecl struct {
	NodeInfo
	Scope     string // "", "global" or "instance"
	Precision *PrecisionQualifier
	Specifier *VarSpecifier
	Hints     *HintList
	Value     Expr
}

func (*UniformDecl) Kind() string { return "uniform_declaration" }

type HintList struct {
	NodeInfo
	Hints []*Hint
}

func (*HintList) Kind() string { return "hint_list" }

// Hint is a hint name with optional numeric parameters. Name is *HintName
// or *InvalidHint.
type Hint struct {
	NodeInfo
	Name   Node
	Params []Expr
}

func (*Hint) Kind() string { return "hint" }

type StructDecl struct {
	NodeInfo
	Name    Name
	Members []Member
}

func (*StructDecl) Kind() string { return "struct_declaration" }

type StructMember struct {
	NodeInfo
	Type  Type
	Name  Name
	Sizes *ArraySizes
}

func (*StructMember) Kind() string { return "struct_member" }

type FunctionDecl struct {
	NodeInfo
	ReturnType Type
	Name       Name
	Params     []*Parameter
	Body       *Block
}

func (*FunctionDecl) Kind() string { return "function_declaration" }

type Parameter struct {
	NodeInfo
	Qualifier *ParamQualifier
	Type      Type
	Name      Name
	Sizes     *ArraySizes
}

func (*Parameter) Kind() string { return "parameter" }

// IncludeDecl is `#include "path"`. The path is never resolved.
type IncludeDecl struct {
	NodeInfo
	File *StringLit
}

func (*IncludeDecl) Kind() string { return "include_declaration" }

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

type VarDecl struct {
	NodeInfo
	Specifier *VarSpecifier
	Value     Expr
}

func (*VarDecl) Kind() string { return "var_declaration" }

type ConstVarDecl struct {
	NodeInfo
	Precision *PrecisionQualifier
	Specifier *VarSpecifier
	Value     Expr
}

func (*ConstVarDecl) Kind() string { return "const_var_declaration" }

// AssignStmt targets are *MemberExpr, *SubscriptExpr or a Name.
type AssignStmt struct {
	NodeInfo
	Target Expr
	Op     AssignOp
	Value  Expr
}

func (*AssignStmt) Kind() string { return "assignment_statement" }

// AdjustStmt is a prefix or postfix ++/-- statement on the same targets as
// AssignStmt.
type AdjustStmt struct {
	NodeInfo
	Target Expr
	Op     AdjustOp
	Prefix bool
}

func (*AdjustStmt) Kind() string { return "adjustment_statement" }

type SwitchStmt struct {
	NodeInfo
	Cond  Expr
	Cases []Clause
}

func (*SwitchStmt) Kind() string { return "switch_statement" }

// SwitchCase owns the statements up to the next case, default or the end
// of the switch body. Value is nil for default.
type SwitchCase struct {
	NodeInfo
	Default bool
	Value   Expr
	Stmts   []Stmt
}

func (*SwitchCase) Kind() string { return "switch_case" }

// ForStmt always has all three clauses. Update is an Expr, or an
// *AssignStmt or *AdjustStmt whose span ends without a semicolon.
type ForStmt struct {
	NodeInfo
	Init   *VarDecl
	Cond   *ExprStmt
	Update Node
	Body   Stmt
}

func (*ForStmt) Kind() string { return "for_statement" }

type WhileStmt struct {
	NodeInfo
	Cond *ParenExpr
	Body Stmt
}

func (*WhileStmt) Kind() string { return "while_statement" }

type IfStmt struct {
	NodeInfo
	Cond *ParenExpr
	Then Stmt
	Else Stmt // nil when absent
}

func (*IfStmt) Kind() string { return "if_statement" }

type ExprStmt struct {
	NodeInfo
	Value Expr
}

func (*ExprStmt) Kind() string { return "expr_statement" }

type ContinueStmt struct {
	NodeInfo
}

func (*ContinueStmt) Kind() string { return "continue_statement" }

type BreakStmt struct {
	NodeInfo
}

func (*BreakStmt) Kind() string { return "break_statement" }

type ReturnStmt struct {
	NodeInfo
	Value Expr // nil for bare return
}

func (*ReturnStmt) Kind() string { return "return_statement" }

type Block struct {
	NodeInfo
	Stmts []Stmt
}

func (*Block) Kind() string { return "block" }

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

type UnaryExpr struct {
	NodeInfo
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) Kind() string { return "unary_expr" }

type BinaryExpr struct {
	NodeInfo
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) Kind() string { return "binary_expr" }

// CallExpr applies Func to Args. Func is a *BuiltinType for constructors.
type CallExpr struct {
	NodeInfo
	Func Expr
	Args []Expr
}

func (*CallExpr) Kind() string { return "call_expr" }

// QualifiedArg is a call argument written with a parameter qualifier.
type QualifiedArg struct {
	NodeInfo
	Qualifier *ParamQualifier
	Value     Expr
}

func (*QualifiedArg) Kind() string { return "qualified_argument" }

type ParenExpr struct {
	NodeInfo
	Value Expr
}

func (*ParenExpr) Kind() string { return "paren_expr" }

// ConditionalExpr is Cond ? Then : Else.
type ConditionalExpr struct {
	NodeInfo
	Cond Expr
	Then Expr
	Else Expr
}

func (*ConditionalExpr) Kind() string { return "conditional_expr" }

type SubscriptExpr struct {
	NodeInfo
	Argument Expr
	Index    Expr
}

func (*SubscriptExpr) Kind() string { return "subscript_expr" }

type MemberExpr struct {
	NodeInfo
	Argument Expr
	Member   Name
}

func (*MemberExpr) Kind() string { return "member_expr" }

type ArrayLiteralExpr struct {
	NodeInfo
	Values []Expr
}

func (*ArrayLiteralExpr) Kind() string { return "array_literal_expr" }

// ----------------------------------------------------------------------------
// Operators
// ----------------------------------------------------------------------------

// BinaryOp represents binary operators. They all share one precedence
// level and associate to the left.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd // &&
	OpOr  // ||
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl // <<
	OpShr // >>
)

func (op BinaryOp) String() string {
	names := []string{"+", "-", "*", "/", "%", "<", "<=", ">", ">=", "==", "!=", "&&", "||", "&", "|", "^", "<<", ">>"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// UnaryOp represents prefix unary operators
type UnaryOp int

const (
	OpNeg    UnaryOp = iota // -
	OpNot                   // !
	OpBitNot                // ~
	OpPos                   // +
)

func (op UnaryOp) String() string {
	names := []string{"-", "!", "~", "+"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// AssignOp represents the assignment operators a statement may use
type AssignOp int

const (
	OpAssign    AssignOp = iota // =
	OpAddAssign                 // +=
	OpSubAssign                 // -=
)

func (op AssignOp) String() string {
	names := []string{"=", "+=", "-="}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// AdjustOp is ++ or --.
type AdjustOp int

const (
	OpInc AdjustOp = iota
	OpDec
)

func (op AdjustOp) String() string {
	if op == OpDec {
		return "--"
	}
	return "++"
}

// ----------------------------------------------------------------------------
// Marker methods
// ----------------------------------------------------------------------------

func (*Ident) implExpr()        {}
func (*Ident) implName()        {}
func (*InvalidIdent) implExpr() {}
func (*InvalidIdent) implName() {}

func (*BuiltinType) implType() {}
func (*BuiltinType) implExpr() {}
func (*IdentType) implType()   {}
func (*InvalidType) implType() {}
func (*ArrayType) implType()   {}

func (*IntLit) implExpr()    {}
func (*FloatLit) implExpr()  {}
func (*BoolLit) implExpr()   {}
func (*StringLit) implExpr() {}

func (*ErrorNode) implDecl()   {}
func (*ErrorNode) implStmt()   {}
func (*ErrorNode) implExpr()   {}
func (*ErrorNode) implType()   {}
func (*ErrorNode) implMember() {}
func (*ErrorNode) implClause() {}

func (*ShaderTypeDecl) implDecl()    {}
func (*RenderModeDecl) implDecl()    {}
func (*ConstDecl) implDecl()         {}
func (*VaryingDecl) implDecl()       {}
func (*GroupUniformsDecl) implDecl() {}
func (*UniformDecl) implDecl()       {}
func (*StructDecl) implDecl()        {}
func (*FunctionDecl) implDecl()      {}
func (*IncludeDecl) implDecl()       {}

func (*StructMember) implMember() {}
func (*SwitchCase) implClause()   {}

func (*VarDecl) implStmt()      {}
func (*ConstVarDecl) implStmt() {}
func (*AssignStmt) implStmt()   {}
func (*AdjustStmt) implStmt()   {}
func (*SwitchStmt) implStmt()   {}
func (*ForStmt) implStmt()      {}
func (*WhileStmt) implStmt()    {}
func (*IfStmt) implStmt()       {}
func (*ExprStmt) implStmt()     {}
func (*ContinueStmt) implStmt() {}
func (*BreakStmt) implStmt()    {}
func (*ReturnStmt) implStmt()   {}
func (*Block) implStmt()        {}

func (*UnaryExpr) implExpr()        {}
func (*BinaryExpr) implExpr()       {}
func (*CallExpr) implExpr()         {}
func (*QualifiedArg) implExpr()     {}
func (*ParenExpr) implExpr()        {}
func (*ConditionalExpr) implExpr()  {}
func (*SubscriptExpr) implExpr()    {}
func (*MemberExpr) implExpr()       {}
func (*ArrayLiteralExpr) implExpr() {}
