package parser

import (
	"github.com/raymyers/gdshader/pkg/gdast"
	"github.com/raymyers/gdshader/pkg/lexer"
)

var assignOps = map[lexer.TokenType]gdast.AssignOp{
	lexer.TokenAssign:      gdast.OpAssign,
	lexer.TokenPlusAssign:  gdast.OpAddAssign,
	lexer.TokenMinusAssign: gdast.OpSubAssign,
}

var adjustOps = map[lexer.TokenType]gdast.AdjustOp{
	lexer.TokenIncrement: gdast.OpInc,
	lexer.TokenDecrement: gdast.OpDec,
}

// parseStatementRecover parses one statement. If it fails, the statement
// becomes an ERROR node and the parser skips to the end of it.
func (p *Parser) parseStatementRecover() gdast.Stmt {
	start, m := p.pos, p.mark()
	stmt, err := p.parseStatement()
	if err == nil {
		return stmt
	}
	p.syncStatement(start)
	return p.recoverAt(start, m, err)
}

// parseStatements parses statements until stop reports true or the input
// ends.
func (p *Parser) parseStatements(stop func() bool) []gdast.Stmt {
	var stmts []gdast.Stmt
	for !p.atEnd() && !stop() {
		stmts = append(stmts, p.parseStatementRecover())
	}
	return stmts
}

func (p *Parser) parseStatement() (gdast.Stmt, error) {
	p.enter()
	defer p.leave()

	tok := p.cur()
	switch tok.Type {
	case lexer.TokenLBrace:
		return p.parseBlock()
	case lexer.TokenIncrement, lexer.TokenDecrement:
		return p.parsePrefixAdjust()
	case lexer.TokenIdent:
		switch tok.Literal {
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "for":
			return p.parseFor()
		case "switch":
			return p.parseSwitch()
		case "return":
			return p.parseReturn()
		case "break":
			start := p.pos
			p.advance()
			if _, err := p.expect(lexer.TokenSemicolon, "after break"); err != nil {
				return nil, err
			}
			return &gdast.BreakStmt{NodeInfo: p.info(start)}, nil
		case "continue":
			start := p.pos
			p.advance()
			if _, err := p.expect(lexer.TokenSemicolon, "after continue"); err != nil {
				return nil, err
			}
			return &gdast.ContinueStmt{NodeInfo: p.info(start)}, nil
		case "const":
			return p.parseConstVarDecl()
		}
	}

	if p.atVarDecl() {
		return p.parseVarDecl()
	}
	return p.parseExpressionStatement()
}

// atVarDecl looks ahead for `type name` or `type[N]... name`, which
// distinguishes a local declaration from an expression statement.
func (p *Parser) atVarDecl() bool {
	if !isWord(p.cur()) {
		return false
	}
	i := 1
	for p.peek(i).Type == lexer.TokenLBracket &&
		p.peek(i+1).Type == lexer.TokenInt &&
		p.peek(i+2).Type == lexer.TokenRBracket {
		i += 3
	}
	return isWord(p.peek(i))
}

func (p *Parser) parseBlock() (*gdast.Block, error) {
	start := p.pos
	if _, err := p.expect(lexer.TokenLBrace, "to open block"); err != nil {
		return nil, err
	}
	stmts := p.parseStatements(func() bool { return p.curIs(lexer.TokenRBrace) })
	if _, err := p.expect(lexer.TokenRBrace, "to close block"); err != nil {
		return nil, err
	}
	return &gdast.Block{NodeInfo: p.info(start), Stmts: stmts}, nil
}

func (p *Parser) parseVarDecl() (*gdast.VarDecl, error) {
	start := p.pos
	spec, err := p.parseVarSpecifier()
	if err != nil {
		return nil, err
	}
	value, err := p.parseInitializer()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after variable declaration"); err != nil {
		return nil, err
	}
	return &gdast.VarDecl{NodeInfo: p.info(start), Specifier: spec, Value: value}, nil
}

func (p *Parser) parseConstVarDecl() (*gdast.ConstVarDecl, error) {
	start := p.pos
	p.advance()
	prec := p.parsePrecision()
	spec, err := p.parseVarSpecifier()
	if err != nil {
		return nil, err
	}
	value, err := p.parseInitializer()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after constant declaration"); err != nil {
		return nil, err
	}
	return &gdast.ConstVarDecl{NodeInfo: p.info(start), Precision: prec, Specifier: spec, Value: value}, nil
}

// parseInitializer parses an optional `= expr`.
func (p *Parser) parseInitializer() (gdast.Expr, error) {
	if !p.curIs(lexer.TokenAssign) {
		return nil, nil
	}
	p.advance()
	return p.parseExpression()
}

// parseExpressionStatement parses an expression followed by `;`, or an
// assignment or postfix adjustment of it.
func (p *Parser) parseExpressionStatement() (gdast.Stmt, error) {
	start := p.pos
	stmt, err := p.parseSimpleStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after statement"); err != nil {
		return nil, err
	}
	switch s := stmt.(type) {
	case *gdast.AssignStmt:
		s.NodeInfo = p.info(start)
	case *gdast.AdjustStmt:
		s.NodeInfo = p.info(start)
	case *gdast.ExprStmt:
		s.NodeInfo = p.info(start)
	}
	return stmt, nil
}

// parseSimpleStatement parses the part of an expression statement before
// the semicolon. It is shared with the update clause of a for loop.
func (p *Parser) parseSimpleStatement() (gdast.Stmt, error) {
	start := p.pos
	if p.curIs(lexer.TokenIncrement) || p.curIs(lexer.TokenDecrement) {
		return p.parseAdjustTarget(start)
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if op, ok := assignOps[p.cur().Type]; ok {
		if !isAssignable(expr) {
			return nil, p.errorf(Structural, "cannot assign to %s", expr.Kind())
		}
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &gdast.AssignStmt{NodeInfo: p.info(start), Target: expr, Op: op, Value: value}, nil
	}
	if op, ok := adjustOps[p.cur().Type]; ok {
		if !isAssignable(expr) {
			return nil, p.errorf(Structural, "cannot apply %s to %s", op, expr.Kind())
		}
		p.advance()
		return &gdast.AdjustStmt{NodeInfo: p.info(start), Target: expr, Op: op}, nil
	}
	return &gdast.ExprStmt{NodeInfo: p.info(start), Value: expr}, nil
}

// parsePrefixAdjust parses `++x;` and `--x;`.
func (p *Parser) parsePrefixAdjust() (gdast.Stmt, error) {
	start := p.pos
	stmt, err := p.parseAdjustTarget(start)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after statement"); err != nil {
		return nil, err
	}
	stmt.NodeInfo = p.info(start)
	return stmt, nil
}

func (p *Parser) parseAdjustTarget(start int) (*gdast.AdjustStmt, error) {
	op := adjustOps[p.advance().Type]
	target, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if !isAssignable(target) {
		return nil, p.errorf(Structural, "cannot apply %s to %s", op, target.Kind())
	}
	return &gdast.AdjustStmt{NodeInfo: p.info(start), Target: target, Op: op, Prefix: true}, nil
}

// isAssignable reports whether e can be the target of an assignment or
// adjustment: a member access, a subscript or a name.
func isAssignable(e gdast.Expr) bool {
	switch e.(type) {
	case *gdast.MemberExpr, *gdast.SubscriptExpr, *gdast.Ident, *gdast.InvalidIdent:
		return true
	}
	return false
}

// parseIf parses an if statement. An else binds to the nearest if.
func (p *Parser) parseIf() (*gdast.IfStmt, error) {
	start := p.pos
	p.advance()
	cond, err := p.parseParen()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &gdast.IfStmt{Cond: cond, Then: then}
	if p.curWord("else") {
		p.advance()
		if stmt.Else, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	stmt.NodeInfo = p.info(start)
	return stmt, nil
}

func (p *Parser) parseWhile() (*gdast.WhileStmt, error) {
	start := p.pos
	p.advance()
	cond, err := p.parseParen()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &gdast.WhileStmt{NodeInfo: p.info(start), Cond: cond, Body: body}, nil
}

// parseFor parses `for (init; cond; update) body`. All three clauses are
// required.
func (p *Parser) parseFor() (*gdast.ForStmt, error) {
	start := p.pos
	p.advance()
	if _, err := p.expect(lexer.TokenLParen, "after for"); err != nil {
		return nil, err
	}
	init, err := p.parseVarDecl()
	if err != nil {
		return nil, err
	}

	condStart := p.pos
	condExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after loop condition"); err != nil {
		return nil, err
	}
	cond := &gdast.ExprStmt{NodeInfo: p.info(condStart), Value: condExpr}

	update, err := p.parseSimpleStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen, "after loop update"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	stmt := &gdast.ForStmt{NodeInfo: p.info(start), Init: init, Cond: cond, Body: body}
	if es, ok := update.(*gdast.ExprStmt); ok {
		stmt.Update = es.Value
	} else {
		stmt.Update = update
	}
	return stmt, nil
}

// parseSwitch parses `switch (expr) { clauses }`. A clause that cannot be
// parsed becomes an ERROR clause and the next clause is tried.
func (p *Parser) parseSwitch() (*gdast.SwitchStmt, error) {
	start := p.pos
	p.advance()
	if _, err := p.expect(lexer.TokenLParen, "after switch"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen, "after switch value"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace, "to open switch body"); err != nil {
		return nil, err
	}

	var cases []gdast.Clause
	for !p.atEnd() && !p.curIs(lexer.TokenRBrace) {
		clauseStart, m := p.pos, p.mark()
		clause, err := p.parseSwitchCase()
		if err != nil {
			p.syncClause(clauseStart)
			cases = append(cases, p.recoverAt(clauseStart, m, err))
			continue
		}
		cases = append(cases, clause)
	}
	if _, err := p.expect(lexer.TokenRBrace, "to close switch body"); err != nil {
		return nil, err
	}
	return &gdast.SwitchStmt{NodeInfo: p.info(start), Cond: cond, Cases: cases}, nil
}

func (p *Parser) atClauseEnd() bool {
	return p.curIs(lexer.TokenRBrace) || p.curWord("case") || p.curWord("default")
}

func (p *Parser) parseSwitchCase() (*gdast.SwitchCase, error) {
	start := p.pos
	clause := &gdast.SwitchCase{}
	switch {
	case p.curWord("case"):
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		clause.Value = value
	case p.curWord("default"):
		p.advance()
		clause.Default = true
	default:
		return nil, p.errorf(Structural, "expected case or default, got %s", p.describe(p.cur()))
	}
	if _, err := p.expect(lexer.TokenColon, "after case label"); err != nil {
		return nil, err
	}
	clause.Stmts = p.parseStatements(p.atClauseEnd)
	clause.NodeInfo = p.info(start)
	return clause, nil
}

// syncClause skips a broken case label up to the next clause or the end of
// the switch body.
func (p *Parser) syncClause(start int) {
	if p.pos == start {
		p.advance()
	}
	depth := p.braceDepth(start)
	for !p.atEnd() {
		switch {
		case p.curIs(lexer.TokenLBrace):
			depth++
		case p.curIs(lexer.TokenRBrace):
			if depth == 0 {
				return
			}
			depth--
		case depth == 0 && (p.curWord("case") || p.curWord("default")):
			return
		}
		p.advance()
	}
}

func (p *Parser) parseReturn() (*gdast.ReturnStmt, error) {
	start := p.pos
	p.advance()
	stmt := &gdast.ReturnStmt{}
	if !p.curIs(lexer.TokenSemicolon) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.expect(lexer.TokenSemicolon, "after return"); err != nil {
		return nil, err
	}
	stmt.NodeInfo = p.info(start)
	return stmt, nil
}
