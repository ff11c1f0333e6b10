package gdast

import (
	"fmt"
	"io"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// SExpr renders n as a single-line S-expression in the style of
// tree-sitter, with leaf text inline:
//
//	(binary_expr left: (ident a) operator: - right: (ident b))
func SExpr(n Node) string {
	if isNil(n) {
		return "()"
	}
	head := n.Kind()
	if text, ok := LeafText(n); ok {
		head += " " + text
	}
	fields := Fields(n)
	if len(fields) == 0 {
		return "(" + head + ")"
	}
	parts := gfn.Map(fields, func(f Field) string {
		if f.Node == nil {
			return f.Name + ": " + f.Text
		}
		return f.Name + ": " + SExpr(f.Node)
	})
	return "(" + head + " " + strings.Join(parts, " ") + ")"
}

// SourceFileSExpr renders a whole file as (source_file decl...).
func SourceFileSExpr(decls []Decl) string {
	if len(decls) == 0 {
		return "(source_file)"
	}
	parts := gfn.Map(decls, func(d Decl) string { return SExpr(d) })
	return "(source_file " + strings.Join(parts, " ") + ")"
}

// Printer outputs the tree as an indented S-expression, one field per line
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new tree printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// PrintFile prints the declarations of a source file
func (p *Printer) PrintFile(decls []Decl) {
	fmt.Fprint(p.w, "(source_file")
	p.indent++
	for _, d := range decls {
		fmt.Fprintln(p.w)
		p.writeIndent()
		p.printNode(d)
	}
	p.indent--
	fmt.Fprintln(p.w, ")")
}

// PrintNode prints a single subtree followed by a newline
func (p *Printer) PrintNode(n Node) {
	p.printNode(n)
	fmt.Fprintln(p.w)
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) printNode(n Node) {
	fields := Fields(n)
	// Short subtrees stay on one line.
	if len(fields) == 0 || len(Children(n)) <= 1 && !hasGrandchildren(n) {
		fmt.Fprint(p.w, SExpr(n))
		return
	}

	fmt.Fprintf(p.w, "(%s", n.Kind())
	p.indent++
	for _, f := range fields {
		fmt.Fprintln(p.w)
		p.writeIndent()
		if f.Node == nil {
			fmt.Fprintf(p.w, "%s: %s", f.Name, f.Text)
			continue
		}
		fmt.Fprintf(p.w, "%s: ", f.Name)
		p.printNode(f.Node)
	}
	p.indent--
	fmt.Fprint(p.w, ")")
}

func hasGrandchildren(n Node) bool {
	for _, c := range Children(n) {
		if len(Children(c)) > 0 {
			return true
		}
	}
	return false
}
