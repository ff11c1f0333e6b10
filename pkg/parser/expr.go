package parser

import (
	"github.com/raymyers/gdshader/pkg/gdast"
	"github.com/raymyers/gdshader/pkg/lexer"
	"github.com/raymyers/gdshader/pkg/vocab"
)

// Every binary operator shares a single precedence level and associates to
// the left, so `a + b * c` is ((a + b) * c).
var binaryOps = map[lexer.TokenType]gdast.BinaryOp{
	lexer.TokenPlus:      gdast.OpAdd,
	lexer.TokenMinus:     gdast.OpSub,
	lexer.TokenStar:      gdast.OpMul,
	lexer.TokenSlash:     gdast.OpDiv,
	lexer.TokenPercent:   gdast.OpMod,
	lexer.TokenLt:        gdast.OpLt,
	lexer.TokenLe:        gdast.OpLe,
	lexer.TokenGt:        gdast.OpGt,
	lexer.TokenGe:        gdast.OpGe,
	lexer.TokenEq:        gdast.OpEq,
	lexer.TokenNe:        gdast.OpNe,
	lexer.TokenAnd:       gdast.OpAnd,
	lexer.TokenOr:        gdast.OpOr,
	lexer.TokenAmpersand: gdast.OpBitAnd,
	lexer.TokenPipe:      gdast.OpBitOr,
	lexer.TokenCaret:     gdast.OpBitXor,
	lexer.TokenShl:       gdast.OpShl,
	lexer.TokenShr:       gdast.OpShr,
}

var unaryOps = map[lexer.TokenType]gdast.UnaryOp{
	lexer.TokenMinus: gdast.OpNeg,
	lexer.TokenNot:   gdast.OpNot,
	lexer.TokenTilde: gdast.OpBitNot,
	lexer.TokenPlus:  gdast.OpPos,
}

// syncTokens end an enclosing production. An expression cannot start at
// one, and reaching one where an expression is required is a structural
// error rather than a one-token ERROR.
var syncTokens = map[lexer.TokenType]bool{
	lexer.TokenSemicolon: true,
	lexer.TokenRBrace:    true,
	lexer.TokenRParen:    true,
	lexer.TokenRBracket:  true,
	lexer.TokenComma:     true,
	lexer.TokenColon:     true,
	lexer.TokenEOF:       true,
}

// parseExpression parses a full expression. The conditional operator is
// the loosest and associates to the right.
func (p *Parser) parseExpression() (gdast.Expr, error) {
	p.enter()
	defer p.leave()

	start := p.pos
	cond, err := p.parseBinary()
	if err != nil {
		return nil, err
	}
	if !p.curIs(lexer.TokenQuestion) {
		return cond, nil
	}
	p.advance()

	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon, "in conditional expression"); err != nil {
		return nil, err
	}
	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &gdast.ConditionalExpr{NodeInfo: p.info(start), Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseBinary() (gdast.Expr, error) {
	start := p.pos
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryOps[p.cur().Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &gdast.BinaryExpr{NodeInfo: p.info(start), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (gdast.Expr, error) {
	op, ok := unaryOps[p.cur().Type]
	if !ok {
		return p.parsePostfix()
	}
	p.enter()
	defer p.leave()

	start := p.pos
	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &gdast.UnaryExpr{NodeInfo: p.info(start), Op: op, Operand: operand}, nil
}

// parsePostfix parses a primary expression followed by any chain of calls,
// subscripts and member accesses.
func (p *Parser) parsePostfix() (gdast.Expr, error) {
	start := p.pos
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case lexer.TokenLParen:
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &gdast.CallExpr{NodeInfo: p.info(start), Func: expr, Args: args}
		case lexer.TokenLBracket:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenRBracket, "after index"); err != nil {
				return nil, err
			}
			expr = &gdast.SubscriptExpr{NodeInfo: p.info(start), Argument: expr, Index: index}
		case lexer.TokenDot:
			p.advance()
			member, err := p.parseName()
			if err != nil {
				return nil, err
			}
			expr = &gdast.MemberExpr{NodeInfo: p.info(start), Argument: expr, Member: member}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (gdast.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.TokenInt:
		return p.parseIntLit(), nil
	case lexer.TokenFloat:
		p.advance()
		return &gdast.FloatLit{NodeInfo: leafInfo(tok), Text: tok.Literal}, nil
	case lexer.TokenBool:
		p.advance()
		return &gdast.BoolLit{NodeInfo: leafInfo(tok), Value: tok.Literal == "true"}, nil
	case lexer.TokenLParen:
		return p.parseParen()
	case lexer.TokenLBrace:
		return p.parseArrayLiteral()
	case lexer.TokenIdent:
		if vocab.Classify(tok.Literal) == vocab.BuiltinType && p.peek(1).Type == lexer.TokenLParen {
			p.advance()
			return &gdast.BuiltinType{NodeInfo: leafInfo(tok), Name: tok.Literal}, nil
		}
		return p.parseName()
	}

	if syncTokens[tok.Type] {
		return nil, p.errorf(Structural, "expected expression, got %s", p.describe(tok))
	}

	// Anything else is wrapped on its own so the rest of the expression can
	// still be parsed.
	p.advance()
	n := &gdast.ErrorNode{NodeInfo: leafInfo(tok), Message: "unexpected " + p.describe(tok) + " in expression"}
	p.invalid = append(p.invalid, n)
	p.errors = append(p.errors, ParseError{
		Kind:    Structural,
		Message: n.Message,
		Span:    n.Span(),
		Line:    tok.Line,
		Column:  tok.Column,
	})
	return n, nil
}

// parseParen parses `( expr )`.
func (p *Parser) parseParen() (*gdast.ParenExpr, error) {
	start := p.pos
	if _, err := p.expect(lexer.TokenLParen, "before expression"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen, "after expression"); err != nil {
		return nil, err
	}
	return &gdast.ParenExpr{NodeInfo: p.info(start), Value: value}, nil
}

// parseArrayLiteral parses `{ expr, ... }` with at least one element.
func (p *Parser) parseArrayLiteral() (gdast.Expr, error) {
	start := p.pos
	p.advance()
	lit := &gdast.ArrayLiteralExpr{}
	for {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Values = append(lit.Values, v)
		if !p.curIs(lexer.TokenComma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(lexer.TokenRBrace, "to close array literal"); err != nil {
		return nil, err
	}
	lit.NodeInfo = p.info(start)
	return lit, nil
}

// parseArguments parses a parenthesized call argument list. An argument
// may carry a parameter qualifier.
func (p *Parser) parseArguments() ([]gdast.Expr, error) {
	p.advance()
	var args []gdast.Expr
	if p.curIs(lexer.TokenRParen) {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.curIs(lexer.TokenComma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(lexer.TokenRParen, "to close argument list"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseArgument() (gdast.Expr, error) {
	start := p.pos
	qual := p.parseParamQualifier()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if qual == nil {
		return value, nil
	}
	return &gdast.QualifiedArg{NodeInfo: p.info(start), Qualifier: qual, Value: value}, nil
}
