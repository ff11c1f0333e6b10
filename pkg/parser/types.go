package parser

import (
	"github.com/raymyers/gdshader/pkg/gdast"
	"github.com/raymyers/gdshader/pkg/lexer"
	"github.com/raymyers/gdshader/pkg/vocab"
)

// parseType parses a type position: a word, then any number of `[N]`
// suffixes.
func (p *Parser) parseType() (gdast.Type, error) {
	start := p.pos
	tok := p.cur()
	class, ok := classOf(tok)
	if !ok {
		return nil, p.errorf(Structural, "expected type, got %s", p.describe(tok))
	}
	p.advance()

	var typ gdast.Type
	switch vocab.InTypePosition(class) {
	case vocab.TypeBuiltin:
		typ = &gdast.BuiltinType{NodeInfo: leafInfo(tok), Name: tok.Literal}
	case vocab.TypeIdent:
		typ = &gdast.IdentType{NodeInfo: leafInfo(tok), Name: tok.Literal}
	default:
		n := &gdast.InvalidType{NodeInfo: leafInfo(tok), Text: tok.Literal, Class: class}
		p.synthesize(n, tok, "%s %q cannot be used as a type", class, tok.Literal)
		typ = n
	}

	for p.curIs(lexer.TokenLBracket) && p.peek(1).Type == lexer.TokenInt && p.peek(2).Type == lexer.TokenRBracket {
		p.advance()
		size := p.parseIntLit()
		p.advance()
		typ = &gdast.ArrayType{NodeInfo: p.info(start), Base: typ, Size: size}
	}
	return typ, nil
}

// parseName parses an identifier position. Builtin variables and functions
// are valid names; other vocabulary words become invalid_ident.
func (p *Parser) parseName() (gdast.Name, error) {
	tok := p.cur()
	class, ok := classOf(tok)
	if !ok {
		return nil, p.errorf(Structural, "expected identifier, got %s", p.describe(tok))
	}
	p.advance()
	if vocab.InIdentPosition(class) {
		return &gdast.Ident{NodeInfo: leafInfo(tok), Name: tok.Literal, Class: class}, nil
	}
	n := &gdast.InvalidIdent{NodeInfo: leafInfo(tok), Text: tok.Literal, Class: class}
	p.synthesize(n, tok, "%s %q cannot be used as an identifier", class, tok.Literal)
	return n, nil
}

// parseVarSpecifier parses `type name [N]...`.
func (p *Parser) parseVarSpecifier() (*gdast.VarSpecifier, error) {
	start := p.pos
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	sizes, err := p.parseArraySizes()
	if err != nil {
		return nil, err
	}
	return &gdast.VarSpecifier{NodeInfo: p.info(start), Type: typ, Name: name, Sizes: sizes}, nil
}

// parseArraySizes parses the `[N]` suffixes after a declared name. It
// returns nil when there are none.
func (p *Parser) parseArraySizes() (*gdast.ArraySizes, error) {
	if !p.curIs(lexer.TokenLBracket) {
		return nil, nil
	}
	start := p.pos
	sizes := &gdast.ArraySizes{}
	for p.curIs(lexer.TokenLBracket) {
		p.advance()
		if !p.curIs(lexer.TokenInt) {
			return nil, p.errorf(Structural, "array size must be an integer literal, got %s", p.describe(p.cur()))
		}
		sizes.Sizes = append(sizes.Sizes, p.parseIntLit())
		if _, err := p.expect(lexer.TokenRBracket, "after array size"); err != nil {
			return nil, err
		}
	}
	sizes.NodeInfo = p.info(start)
	return sizes, nil
}

func (p *Parser) parseIntLit() *gdast.IntLit {
	tok := p.advance()
	return &gdast.IntLit{NodeInfo: leafInfo(tok), Text: tok.Literal}
}

// parsePrecision consumes a precision qualifier if one is next.
func (p *Parser) parsePrecision() *gdast.PrecisionQualifier {
	if class, _ := p.curClass(); class != vocab.PrecisionQualifier {
		return nil
	}
	tok := p.advance()
	return &gdast.PrecisionQualifier{NodeInfo: leafInfo(tok), Name: tok.Literal}
}

func (p *Parser) parseInterpolation() *gdast.InterpolationQualifier {
	if class, _ := p.curClass(); class != vocab.InterpolationQualifier {
		return nil
	}
	tok := p.advance()
	return &gdast.InterpolationQualifier{NodeInfo: leafInfo(tok), Name: tok.Literal}
}

func (p *Parser) parseParamQualifier() *gdast.ParamQualifier {
	if class, _ := p.curClass(); class != vocab.ParamQualifier {
		return nil
	}
	tok := p.advance()
	return &gdast.ParamQualifier{NodeInfo: leafInfo(tok), Name: tok.Literal}
}
