// Package parser implements a tolerant recursive descent parser for the
// Godot shading language.
//
// Parsing never fails on bad input. Words outside a closed vocabulary
// become typed invalid_* leaves, and productions that cannot be completed
// become ERROR nodes covering the tokens they consumed, after which the
// parser resynchronizes at the next `;` or `}`. The only error a parse can
// return is a *RecursionLimitError for pathologically nested input.
package parser

import (
	"errors"
	"fmt"
	"sync"

	"github.com/raymyers/gdshader/pkg/gdast"
	"github.com/raymyers/gdshader/pkg/lexer"
	"github.com/raymyers/gdshader/pkg/vocab"
)

// DefaultMaxDepth bounds the nesting of statements and expressions.
const DefaultMaxDepth = 512

// ErrRecursionLimitExceeded is matched by errors.Is on the error returned
// when the input nests deeper than Options.MaxDepth.
var ErrRecursionLimitExceeded = errors.New("recursion limit exceeded")

// RecursionLimitError reports where the nesting limit was hit.
type RecursionLimitError struct {
	Limit  int
	Line   int
	Column int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("line %d, col %d: nesting deeper than %d levels", e.Line, e.Column, e.Limit)
}

func (e *RecursionLimitError) Unwrap() error { return ErrRecursionLimitExceeded }

// ErrorKind classifies a diagnostic.
type ErrorKind int

const (
	// InvalidVocabulary: a closed-vocabulary position held a word outside
	// its vocabulary. The parse continued with an invalid_* leaf.
	InvalidVocabulary ErrorKind = iota
	// Structural: a required token or sub-production was missing. The
	// production became an ERROR node.
	Structural
)

func (k ErrorKind) String() string {
	if k == InvalidVocabulary {
		return "invalid vocabulary"
	}
	return "syntax error"
}

// ParseError is a diagnostic produced while parsing.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Span    gdast.Span
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Column, e.Message)
}

// Options configures a parse.
type Options struct {
	// MaxDepth bounds statement and expression nesting. Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

// Tree is the result of parsing one source file.
type Tree struct {
	Source   string
	Decls    []gdast.Decl
	Comments []lexer.Comment

	// Invalid lists every invalid_* leaf and ERROR node in the tree, in
	// source order.
	Invalid []gdast.Node
	Errors  []ParseError

	parentsOnce sync.Once
	parents     map[gdast.Node]gdast.Node
}

// HasErrors reports whether any invalid or error node was synthesized.
func (t *Tree) HasErrors() bool {
	return len(t.Invalid) > 0
}

// Text returns the source text covered by n.
func (t *Tree) Text(n gdast.Node) string {
	s := n.Span()
	return t.Source[s.Start:s.End]
}

// Parent returns the node that owns n, or nil for declarations and for
// nodes not in t. The parent relation is computed on first use.
func (t *Tree) Parent(n gdast.Node) gdast.Node {
	t.parentsOnce.Do(func() {
		t.parents = gdast.ParentMap(t.Decls)
	})
	return t.parents[n]
}

// Parser parses Godot shading language source into a syntax tree
type Parser struct {
	src      string
	tokens   []lexer.Token
	pos      int
	maxDepth int
	depth    int

	errors  []ParseError
	invalid []gdast.Node
}

// Parse parses src with default options.
func Parse(src string) (*Tree, error) {
	return New(src, Options{}).ParseSourceFile()
}

// ParseWithOptions parses src with opts.
func ParseWithOptions(src string, opts Options) (*Tree, error) {
	return New(src, opts).ParseSourceFile()
}

// New creates a new Parser for src
func New(src string, opts Options) *Parser {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{
		src:      src,
		tokens:   lexer.Tokenize(src),
		maxDepth: maxDepth,
	}
}

// Pos returns the index of the current token.
func (p *Parser) Pos() int {
	return p.pos
}

// Tokens returns the token stream being parsed.
func (p *Parser) Tokens() []lexer.Token {
	return p.tokens
}

// Errors returns the diagnostics recorded so far
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// Invalid returns the invalid and error nodes synthesized so far
func (p *Parser) Invalid() []gdast.Node {
	return p.invalid
}

// ParseSourceFile parses declarations until the end of input.
func (p *Parser) ParseSourceFile() (tree *Tree, err error) {
	defer p.catchRecursionLimit(&err)

	var decls []gdast.Decl
	for !p.atEnd() {
		decls = append(decls, p.parseDeclarationRecover())
	}

	var comments []lexer.Comment
	for _, tok := range p.tokens {
		comments = append(comments, tok.Comments...)
	}

	return &Tree{
		Source:   p.src,
		Decls:    decls,
		Comments: comments,
		Invalid:  p.invalid,
		Errors:   p.errors,
	}, nil
}

// ParseExpression parses one expression starting at the current token and
// leaves the cursor after it. A structural error is returned when no
// expression can start at the cursor.
func (p *Parser) ParseExpression() (expr gdast.Expr, err error) {
	defer p.catchRecursionLimit(&err)
	expr, perr := p.parseExpression()
	if perr != nil {
		return nil, perr
	}
	return expr, nil
}

// ParseStatement parses one statement starting at the current token,
// recovering into an ERROR node if necessary.
func (p *Parser) ParseStatement() (stmt gdast.Stmt, err error) {
	defer p.catchRecursionLimit(&err)
	if p.atEnd() {
		return nil, p.errorf(Structural, "expected statement, got %s", p.describe(p.cur()))
	}
	return p.parseStatementRecover(), nil
}

// ----------------------------------------------------------------------------
// Token helpers
// ----------------------------------------------------------------------------

func (p *Parser) cur() lexer.Token {
	return p.peek(0)
}

func (p *Parser) peek(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.cur().Type == lexer.TokenEOF
}

func (p *Parser) curIs(t lexer.TokenType) bool {
	return p.cur().Type == t
}

// curWord reports whether the current token is the identifier word.
func (p *Parser) curWord(word string) bool {
	tok := p.cur()
	return tok.Type == lexer.TokenIdent && tok.Literal == word
}

// curClass returns the vocabulary of the current token, and false if the
// token is not identifier-shaped.
func (p *Parser) curClass() (vocab.Class, bool) {
	return classOf(p.cur())
}

func classOf(tok lexer.Token) (vocab.Class, bool) {
	if !isWord(tok) {
		return vocab.PlainIdentifier, false
	}
	return vocab.Classify(tok.Literal), true
}

// isWord reports whether tok is identifier-shaped.
func isWord(tok lexer.Token) bool {
	return tok.Type == lexer.TokenIdent || tok.Type == lexer.TokenBool
}

func (p *Parser) expect(t lexer.TokenType, context string) (lexer.Token, error) {
	if p.curIs(t) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorf(Structural, "expected '%s' %s, got %s", t, context, p.describe(p.cur()))
}

func (p *Parser) describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of input"
	case lexer.TokenIdent, lexer.TokenInt, lexer.TokenFloat, lexer.TokenBool, lexer.TokenString, lexer.TokenIllegal:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}

// info spans the tokens from start to the last consumed token.
func (p *Parser) info(start int) gdast.NodeInfo {
	end := p.pos - 1
	if end < start {
		end = start
	}
	return gdast.NodeInfo{Loc: gdast.Span{Start: p.tokens[start].Pos, End: p.tokens[end].End}}
}

func leafInfo(tok lexer.Token) gdast.NodeInfo {
	return gdast.NodeInfo{Loc: gdast.Span{Start: tok.Pos, End: tok.End}}
}

// ----------------------------------------------------------------------------
// Diagnostics and recovery
// ----------------------------------------------------------------------------

// errorf builds a diagnostic at the current token without recording it.
// Structural errors are recorded when the failed production is recovered.
func (p *Parser) errorf(kind ErrorKind, format string, args ...any) *ParseError {
	tok := p.cur()
	return &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    gdast.Span{Start: tok.Pos, End: tok.End},
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// synthesize records an invalid leaf built from tok.
func (p *Parser) synthesize(n gdast.Node, tok lexer.Token, format string, args ...any) {
	p.invalid = append(p.invalid, n)
	p.errors = append(p.errors, ParseError{
		Kind:    InvalidVocabulary,
		Message: fmt.Sprintf(format, args...),
		Span:    n.Span(),
		Line:    tok.Line,
		Column:  tok.Column,
	})
}

// mark remembers how many diagnostics exist so that the ones produced by a
// production that is later discarded can be dropped with it.
type mark struct {
	errors  int
	invalid int
}

func (p *Parser) mark() mark {
	return mark{errors: len(p.errors), invalid: len(p.invalid)}
}

// recoverAt turns everything consumed since start into an ERROR node,
// replacing diagnostics recorded after m with err.
func (p *Parser) recoverAt(start int, m mark, err error) *gdast.ErrorNode {
	p.errors = p.errors[:m.errors]
	p.invalid = p.invalid[:m.invalid]

	var perr *ParseError
	if !errors.As(err, &perr) {
		perr = p.errorf(Structural, "%v", err)
	}
	node := &gdast.ErrorNode{NodeInfo: p.info(start), Message: perr.Message}
	p.errors = append(p.errors, *perr)
	p.invalid = append(p.invalid, node)
	return node
}

// braceDepth counts the braces left open by the tokens consumed since start.
func (p *Parser) braceDepth(start int) int {
	depth := 0
	for _, tok := range p.tokens[start:p.pos] {
		switch tok.Type {
		case lexer.TokenLBrace:
			depth++
		case lexer.TokenRBrace:
			if depth > 0 {
				depth--
			}
		}
	}
	return depth
}

// syncStatement skips to the end of the failed statement: through the next
// `;` or the `}` closing a block the statement opened. It stops before a
// `}` that belongs to an enclosing block.
func (p *Parser) syncStatement(start int) {
	if p.pos == start && !p.atEnd() {
		if tok := p.advance(); tok.Type == lexer.TokenSemicolon || tok.Type == lexer.TokenRBrace {
			return
		}
	}
	depth := p.braceDepth(start)
	for !p.atEnd() {
		switch p.cur().Type {
		case lexer.TokenSemicolon:
			if depth == 0 {
				p.advance()
				return
			}
		case lexer.TokenLBrace:
			depth++
		case lexer.TokenRBrace:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// syncDeclaration skips to the end of a failed top-level declaration:
// through the next `;`, through a balanced `}` (and a `;` right after it),
// or up to the keyword of the next declaration.
func (p *Parser) syncDeclaration(start int) {
	if p.pos == start {
		if tok := p.advance(); tok.Type == lexer.TokenSemicolon || tok.Type == lexer.TokenRBrace {
			return
		}
	}
	depth := p.braceDepth(start)
	for !p.atEnd() {
		switch tok := p.cur(); tok.Type {
		case lexer.TokenSemicolon:
			if depth == 0 {
				p.advance()
				return
			}
		case lexer.TokenLBrace:
			depth++
		case lexer.TokenRBrace:
			if depth > 0 {
				depth--
			}
			p.advance()
			if depth == 0 {
				if p.curIs(lexer.TokenSemicolon) {
					p.advance()
				}
				return
			}
			continue
		default:
			if depth == 0 && startsDeclaration(tok) {
				return
			}
		}
		p.advance()
	}
}

var declarationKeywords = map[string]bool{
	"shader_type":    true,
	"render_mode":    true,
	"const":          true,
	"varying":        true,
	"uniform":        true,
	"global":         true,
	"instance":       true,
	"group_uniforms": true,
	"struct":         true,
}

func startsDeclaration(tok lexer.Token) bool {
	return tok.Type == lexer.TokenHash || tok.Type == lexer.TokenIdent && declarationKeywords[tok.Literal]
}

// ----------------------------------------------------------------------------
// Depth guard
// ----------------------------------------------------------------------------

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		tok := p.cur()
		panic(&RecursionLimitError{Limit: p.maxDepth, Line: tok.Line, Column: tok.Column})
	}
}

func (p *Parser) leave() {
	p.depth--
}

// catchRecursionLimit converts the depth guard's panic into an error. Any
// other panic is a bug and propagates.
func (p *Parser) catchRecursionLimit(err *error) {
	if r := recover(); r != nil {
		rle, ok := r.(*RecursionLimitError)
		if !ok {
			panic(r)
		}
		p.depth = 0
		*err = rle
	}
}
