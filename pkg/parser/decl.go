package parser

import (
	"github.com/raymyers/gdshader/pkg/gdast"
	"github.com/raymyers/gdshader/pkg/lexer"
	"github.com/raymyers/gdshader/pkg/vocab"
)

// parseDeclarationRecover parses one top-level declaration. If it fails,
// everything up to the next declaration boundary becomes an ERROR node.
func (p *Parser) parseDeclarationRecover() gdast.Decl {
	start, m := p.pos, p.mark()
	decl, err := p.parseDeclaration()
	if err == nil {
		return decl
	}
	p.syncDeclaration(start)
	return p.recoverAt(start, m, err)
}

func (p *Parser) parseDeclaration() (gdast.Decl, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.TokenHash:
		return p.parseInclude()
	case lexer.TokenIdent:
		switch tok.Literal {
		case "shader_type":
			return p.parseShaderType()
		case "render_mode":
			return p.parseRenderMode()
		case "const":
			return p.parseConst()
		case "varying":
			return p.parseVarying()
		case "group_uniforms":
			return p.parseGroupUniforms()
		case "uniform", "global", "instance":
			return p.parseUniform()
		case "struct":
			return p.parseStruct()
		}
	case lexer.TokenBool:
	default:
		return nil, p.errorf(Structural, "expected declaration, got %s", p.describe(tok))
	}
	return p.parseFunction()
}

// parseShaderType parses `shader_type name;`.
func (p *Parser) parseShaderType() (*gdast.ShaderTypeDecl, error) {
	start := p.pos
	p.advance()
	tok := p.cur()
	class, ok := classOf(tok)
	if !ok {
		return nil, p.errorf(Structural, "expected shader type, got %s", p.describe(tok))
	}
	p.advance()

	decl := &gdast.ShaderTypeDecl{}
	if class == vocab.ShaderType {
		decl.ShaderType = &gdast.ShaderType{NodeInfo: leafInfo(tok), Name: tok.Literal}
	} else {
		n := &gdast.InvalidShaderType{NodeInfo: leafInfo(tok), Text: tok.Literal}
		p.synthesize(n, tok, "unknown shader type %q", tok.Literal)
		decl.ShaderType = n
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after shader type"); err != nil {
		return nil, err
	}
	decl.NodeInfo = p.info(start)
	return decl, nil
}

// parseRenderMode parses `render_mode a, b, ...;`. The list may be empty.
func (p *Parser) parseRenderMode() (*gdast.RenderModeDecl, error) {
	start := p.pos
	p.advance()
	decl := &gdast.RenderModeDecl{}
	if isWord(p.cur()) {
		for {
			tok := p.cur()
			if !isWord(tok) {
				return nil, p.errorf(Structural, "expected render mode, got %s", p.describe(tok))
			}
			p.advance()
			if vocab.Is(tok.Literal, vocab.RenderMode) {
				decl.Modes = append(decl.Modes, &gdast.RenderMode{NodeInfo: leafInfo(tok), Name: tok.Literal})
			} else {
				n := &gdast.InvalidRenderMode{NodeInfo: leafInfo(tok), Text: tok.Literal}
				p.synthesize(n, tok, "unknown render mode %q", tok.Literal)
				decl.Modes = append(decl.Modes, n)
			}
			if !p.curIs(lexer.TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after render modes"); err != nil {
		return nil, err
	}
	decl.NodeInfo = p.info(start)
	return decl, nil
}

func (p *Parser) parseConst() (*gdast.ConstDecl, error) {
	start := p.pos
	p.advance()
	decl := &gdast.ConstDecl{Precision: p.parsePrecision()}
	var err error
	if decl.Specifier, err = p.parseVarSpecifier(); err != nil {
		return nil, err
	}
	if decl.Value, err = p.parseInitializer(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after constant declaration"); err != nil {
		return nil, err
	}
	decl.NodeInfo = p.info(start)
	return decl, nil
}

func (p *Parser) parseVarying() (*gdast.VaryingDecl, error) {
	start := p.pos
	p.advance()
	decl := &gdast.VaryingDecl{
		Interpolation: p.parseInterpolation(),
		Precision:     p.parsePrecision(),
	}
	var err error
	if decl.Specifier, err = p.parseVarSpecifier(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after varying declaration"); err != nil {
		return nil, err
	}
	decl.NodeInfo = p.info(start)
	return decl, nil
}

// parseGroupUniforms parses `group_uniforms [group][.subgroup];`.
func (p *Parser) parseGroupUniforms() (*gdast.GroupUniformsDecl, error) {
	start := p.pos
	p.advance()
	decl := &gdast.GroupUniformsDecl{}
	var err error
	if isWord(p.cur()) {
		if decl.Group, err = p.parseName(); err != nil {
			return nil, err
		}
	}
	if p.curIs(lexer.TokenDot) {
		p.advance()
		if decl.Subgroup, err = p.parseName(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after group_uniforms"); err != nil {
		return nil, err
	}
	decl.NodeInfo = p.info(start)
	return decl, nil
}

// parseUniform parses
// `[global|instance] uniform [precision] specifier [: hints] [= value];`.
func (p *Parser) parseUniform() (*gdast.UniformDecl, error) {
	start := p.pos
	decl := &gdast.UniformDecl{}
	if p.curWord("global") || p.curWord("instance") {
		decl.Scope = p.advance().Literal
	}
	if !p.curWord("uniform") {
		return nil, p.errorf(Structural, "expected uniform after %s, got %s", decl.Scope, p.describe(p.cur()))
	}
	p.advance()
	decl.Precision = p.parsePrecision()

	var err error
	if decl.Specifier, err = p.parseVarSpecifier(); err != nil {
		return nil, err
	}
	if p.curIs(lexer.TokenColon) {
		p.advance()
		if decl.Hints, err = p.parseHintList(); err != nil {
			return nil, err
		}
	}
	if decl.Value, err = p.parseInitializer(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after uniform declaration"); err != nil {
		return nil, err
	}
	decl.NodeInfo = p.info(start)
	return decl, nil
}

func (p *Parser) parseHintList() (*gdast.HintList, error) {
	start := p.pos
	list := &gdast.HintList{}
	for {
		hint, err := p.parseHint()
		if err != nil {
			return nil, err
		}
		list.Hints = append(list.Hints, hint)
		if !p.curIs(lexer.TokenComma) {
			break
		}
		p.advance()
	}
	list.NodeInfo = p.info(start)
	return list, nil
}

// parseHint parses `name` or `name(params)`. Parameters are numeric
// literals, optionally negated.
func (p *Parser) parseHint() (*gdast.Hint, error) {
	start := p.pos
	tok := p.cur()
	if !isWord(tok) {
		return nil, p.errorf(Structural, "expected hint, got %s", p.describe(tok))
	}
	p.advance()

	hint := &gdast.Hint{}
	if vocab.Is(tok.Literal, vocab.HintName) {
		hint.Name = &gdast.HintName{NodeInfo: leafInfo(tok), Name: tok.Literal}
	} else {
		n := &gdast.InvalidHint{NodeInfo: leafInfo(tok), Text: tok.Literal}
		p.synthesize(n, tok, "unknown hint %q", tok.Literal)
		hint.Name = n
	}

	if p.curIs(lexer.TokenLParen) {
		p.advance()
		if !p.curIs(lexer.TokenRParen) {
			for {
				param, err := p.parseHintParam()
				if err != nil {
					return nil, err
				}
				hint.Params = append(hint.Params, param)
				if !p.curIs(lexer.TokenComma) {
					break
				}
				p.advance()
			}
		}
		if _, err := p.expect(lexer.TokenRParen, "to close hint parameters"); err != nil {
			return nil, err
		}
	}
	hint.NodeInfo = p.info(start)
	return hint, nil
}

func (p *Parser) parseHintParam() (gdast.Expr, error) {
	start := p.pos
	negate := p.curIs(lexer.TokenMinus)
	if negate {
		p.advance()
	}

	var lit gdast.Expr
	switch tok := p.cur(); tok.Type {
	case lexer.TokenInt:
		lit = p.parseIntLit()
	case lexer.TokenFloat:
		p.advance()
		lit = &gdast.FloatLit{NodeInfo: leafInfo(tok), Text: tok.Literal}
	default:
		return nil, p.errorf(Structural, "hint parameter must be a number, got %s", p.describe(tok))
	}
	if negate {
		return &gdast.UnaryExpr{NodeInfo: p.info(start), Op: gdast.OpNeg, Operand: lit}, nil
	}
	return lit, nil
}

// parseStruct parses `struct Name { members };`. A struct needs at least
// one member.
func (p *Parser) parseStruct() (*gdast.StructDecl, error) {
	start := p.pos
	p.advance()
	decl := &gdast.StructDecl{}
	var err error
	if decl.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace, "to open struct body"); err != nil {
		return nil, err
	}
	if p.curIs(lexer.TokenRBrace) {
		return nil, p.errorf(Structural, "struct %s has no members", p.tokens[start+1].Literal)
	}
	for !p.atEnd() && !p.curIs(lexer.TokenRBrace) {
		decl.Members = append(decl.Members, p.parseMemberRecover())
	}
	if _, err := p.expect(lexer.TokenRBrace, "to close struct body"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after struct declaration"); err != nil {
		return nil, err
	}
	decl.NodeInfo = p.info(start)
	return decl, nil
}

func (p *Parser) parseMemberRecover() gdast.Member {
	start, m := p.pos, p.mark()
	member, err := p.parseMember()
	if err == nil {
		return member
	}
	p.syncStatement(start)
	return p.recoverAt(start, m, err)
}

func (p *Parser) parseMember() (*gdast.StructMember, error) {
	start := p.pos
	member := &gdast.StructMember{}
	var err error
	if member.Type, err = p.parseType(); err != nil {
		return nil, err
	}
	if member.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if member.Sizes, err = p.parseArraySizes(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after struct member"); err != nil {
		return nil, err
	}
	member.NodeInfo = p.info(start)
	return member, nil
}

// parseFunction parses `type name(params) { body }`. It is the fallback
// for any declaration that does not start with a keyword, so a global
// variable fails here at the missing `(`.
func (p *Parser) parseFunction() (*gdast.FunctionDecl, error) {
	start := p.pos
	decl := &gdast.FunctionDecl{}
	var err error
	if decl.ReturnType, err = p.parseType(); err != nil {
		return nil, err
	}
	if decl.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLParen, "after function name"); err != nil {
		return nil, err
	}
	if !p.curIs(lexer.TokenRParen) {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			decl.Params = append(decl.Params, param)
			if !p.curIs(lexer.TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.TokenRParen, "to close parameter list"); err != nil {
		return nil, err
	}
	if decl.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	decl.NodeInfo = p.info(start)
	return decl, nil
}

func (p *Parser) parseParameter() (*gdast.Parameter, error) {
	start := p.pos
	param := &gdast.Parameter{Qualifier: p.parseParamQualifier()}
	var err error
	if param.Type, err = p.parseType(); err != nil {
		return nil, err
	}
	if param.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if param.Sizes, err = p.parseArraySizes(); err != nil {
		return nil, err
	}
	param.NodeInfo = p.info(start)
	return param, nil
}

// parseInclude parses `#include "path"`. The path is kept as written.
func (p *Parser) parseInclude() (*gdast.IncludeDecl, error) {
	start := p.pos
	p.advance()
	if !p.curWord("include") {
		return nil, p.errorf(Structural, "expected include after '#', got %s", p.describe(p.cur()))
	}
	p.advance()
	tok := p.cur()
	if tok.Type != lexer.TokenString {
		return nil, p.errorf(Structural, "expected include path string, got %s", p.describe(tok))
	}
	p.advance()
	return &gdast.IncludeDecl{
		NodeInfo: p.info(start),
		File:     &gdast.StringLit{NodeInfo: leafInfo(tok), Raw: tok.Literal},
	}, nil
}
