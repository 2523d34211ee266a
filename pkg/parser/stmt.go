package parser

import (
	"strconv"

	"github.com/timglabisch/pico-php-parser/pkg/ast"
	"github.com/timglabisch/pico-php-parser/pkg/intern"
	"github.com/timglabisch/pico-php-parser/pkg/lexer"
)

// parseStatement dispatches on curToken to the statement form it begins,
// leaving curToken on the last token the form consumed.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Type {
	case lexer.NAMESPACE:
		return p.parseNamespaceStmt()
	case lexer.USE:
		return p.parseUseStmt()
	case lexer.LBRACE:
		return p.parseBlockStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.DO:
		return p.parseDoWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.FOREACH:
		return p.parseForEachStmt()
	case lexer.SWITCH:
		return p.parseSwitchStmt()
	case lexer.TRY:
		return p.parseTryStmt()
	case lexer.THROW:
		return p.parseThrowStmt()
	case lexer.ECHO:
		return p.parseEchoStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.BREAK:
		return p.parseBreakStmt()
	case lexer.CONTINUE:
		return p.parseContinueStmt()
	case lexer.UNSET:
		return p.parseUnsetStmt()
	case lexer.GLOBAL:
		return p.parseGlobalStmt()
	case lexer.STATIC:
		if p.peekTokenIs(lexer.VARIABLE) {
			return p.parseStaticStmt()
		}
		return p.parseExprStmt()
	case lexer.FUNCTION:
		if p.peekTokenIs(lexer.IDENT) || (p.peekTokenIs(lexer.BITWISE_AND) && p.peek2TokenIs(lexer.IDENT)) {
			return p.parseFunctionDeclStmt()
		}
		return p.parseExprStmt()
	case lexer.ABSTRACT, lexer.FINAL, lexer.CLASS, lexer.INTERFACE, lexer.TRAIT, lexer.ENUM, lexer.READONLY:
		return p.parseClassDeclStmt()
	case lexer.SEMICOLON:
		return &ast.ExprStmt{Sp: p.curSpan()} // empty statement
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	start := p.curSpan()
	p.nextToken() // consume '{'
	var stmts []ast.Stmt
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if len(p.errors) > before && stmt == nil {
			p.recover()
		}
		p.nextToken()
	}
	return &ast.BlockStmt{Stmts: stmts, Sp: ast.Cover(start, p.curSpan())}
}

// parseStmtOrBlock parses a single statement (brace form) or, for
// colon-alternative syntax, every statement up to one of the given
// terminator keywords, returning a synthesized BlockStmt in both cases. In
// the colon form the terminator is left in peekToken.
func (p *Parser) parseStmtOrBlock(terminators ...lexer.TokenType) *ast.BlockStmt {
	if p.curTokenIs(lexer.LBRACE) {
		return p.parseBlockStmt()
	}
	if p.curTokenIs(lexer.COLON) {
		start := p.curSpan()
		var stmts []ast.Stmt
		for !p.peekIsOneOf(terminators...) && !p.peekTokenIs(lexer.EOF) {
			p.nextToken()
			before := len(p.errors)
			stmt := p.parseStatement()
			if stmt != nil {
				stmts = append(stmts, stmt)
			}
			if len(p.errors) > before && stmt == nil {
				p.recover()
			}
		}
		return &ast.BlockStmt{Stmts: stmts, Sp: ast.Cover(start, p.curSpan())}
	}
	start := p.curSpan()
	stmt := p.parseStatement()
	var stmts []ast.Stmt
	if stmt != nil {
		stmts = append(stmts, stmt)
	}
	return &ast.BlockStmt{Stmts: stmts, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) peekIsOneOf(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.peekTokenIs(t) {
			return true
		}
	}
	return false
}

func (p *Parser) parseNamespaceStmt() ast.Stmt {
	start := p.curSpan()
	var name *ast.Path
	if !p.peekTokenIs(lexer.LBRACE) && !p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		s, _ := p.parsePathString()
		ns, n := splitPath(s)
		path := ast.Path{Name: p.intern(n)}
		if ns != "" {
			path.Namespace = p.intern(ns)
		}
		name = &path
	}
	var body []ast.Stmt
	if p.peekTokenIs(lexer.LBRACE) {
		p.nextToken()
		block := p.parseBlockStmt()
		body = block.Stmts
	} else if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return &ast.NamespaceStmt{Name: name, Body: body, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseUseStmt() ast.Stmt {
	start := p.curSpan()
	p.nextToken()
	s, _ := p.parsePathString()
	ns, n := splitPath(s)
	path := ast.Path{Name: p.intern(n)}
	if ns != "" {
		path.Namespace = p.intern(ns)
	}
	use := &ast.UseStmt{Path: path}
	if p.peekTokenIs(lexer.AS) {
		p.nextToken()
		p.nextToken()
		use.Alias = p.intern(p.curToken.Literal)
	}
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	use.Sp = ast.Cover(start, p.curSpan())
	return use
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.curSpan()
	value := p.parseExpression(LOWEST)
	sp := start
	if value != nil {
		sp = ast.Cover(start, value.Span())
	}
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	if value == nil {
		return nil
	}
	return &ast.ExprStmt{Value: value, Sp: sp}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.curSpan()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	alt := p.curTokenIs(lexer.COLON)
	var then *ast.BlockStmt
	if alt {
		then = p.parseStmtOrBlock(lexer.ELSEIF, lexer.ELSE, lexer.ENDIF)
	} else {
		then = p.parseStmtOrBlock()
	}

	stmt := &ast.IfStmt{Cond: cond, Then: then}

	for p.peekTokenIs(lexer.ELSEIF) {
		p.nextToken()
		if !p.expectPeek(lexer.LPAREN) {
			return nil
		}
		p.nextToken()
		c := p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		p.nextToken()
		var body *ast.BlockStmt
		if alt {
			body = p.parseStmtOrBlock(lexer.ELSEIF, lexer.ELSE, lexer.ENDIF)
		} else {
			body = p.parseStmtOrBlock()
		}
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIf{Cond: c, Then: body})
	}

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		p.nextToken()
		if alt {
			stmt.Else = p.parseStmtOrBlock(lexer.ENDIF)
		} else {
			stmt.Else = p.parseStmtOrBlock()
		}
	}

	if alt {
		if !p.expectPeek(lexer.ENDIF) {
			return nil
		}
		if p.peekTokenIs(lexer.SEMICOLON) {
			p.nextToken()
		}
	}

	stmt.Sp = ast.Cover(start, p.curSpan())
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curSpan()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	var body *ast.BlockStmt
	if p.curTokenIs(lexer.COLON) {
		body = p.parseStmtOrBlock(lexer.ENDWHILE)
		if !p.expectPeek(lexer.ENDWHILE) {
			return nil
		}
		if p.peekTokenIs(lexer.SEMICOLON) {
			p.nextToken()
		}
	} else {
		body = p.parseStmtOrBlock()
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseDoWhileStmt() ast.Stmt {
	start := p.curSpan()
	p.nextToken()
	body := p.parseStmtOrBlock()
	if !p.expectPeek(lexer.WHILE) {
		return nil
	}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.DoWhileStmt{Body: body, Cond: cond, Sp: sp}
}

func (p *Parser) parseExprList(terminator lexer.TokenType) []ast.Expr {
	var exprs []ast.Expr
	if p.peekTokenIs(terminator) {
		p.nextToken()
		return exprs
	}
	p.nextToken()
	exprs = append(exprs, p.parseExpression(LOWEST))
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		exprs = append(exprs, p.parseExpression(LOWEST))
	}
	p.expectPeek(terminator)
	return exprs
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.curSpan()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	init := p.parseExprList(lexer.SEMICOLON)
	cond := p.parseExprList(lexer.SEMICOLON)
	step := p.parseExprList(lexer.RPAREN)
	p.nextToken()
	var body *ast.BlockStmt
	if p.curTokenIs(lexer.COLON) {
		body = p.parseStmtOrBlock(lexer.ENDFOR)
		if !p.expectPeek(lexer.ENDFOR) {
			return nil
		}
		if p.peekTokenIs(lexer.SEMICOLON) {
			p.nextToken()
		}
	} else {
		body = p.parseStmtOrBlock()
	}
	return &ast.ForStmt{Init: init, Cond: cond, Step: step, Body: body, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseForEachStmt() ast.Stmt {
	start := p.curSpan()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	iter := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.AS) {
		return nil
	}
	p.nextToken()
	byRef := false
	if p.curTokenIs(lexer.BITWISE_AND) {
		byRef = true
		p.nextToken()
	}
	first := p.parseExpression(LOWEST)

	var key, value ast.Expr
	if p.peekTokenIs(lexer.DOUBLE_ARROW) {
		p.nextToken()
		p.nextToken()
		if p.curTokenIs(lexer.BITWISE_AND) {
			byRef = true
			p.nextToken()
		}
		key = first
		value = p.parseExpression(LOWEST)
	} else {
		value = first
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	p.nextToken()

	var body *ast.BlockStmt
	if p.curTokenIs(lexer.COLON) {
		body = p.parseStmtOrBlock(lexer.ENDFOREACH)
		if !p.expectPeek(lexer.ENDFOREACH) {
			return nil
		}
		if p.peekTokenIs(lexer.SEMICOLON) {
			p.nextToken()
		}
	} else {
		body = p.parseStmtOrBlock()
	}

	return &ast.ForEachStmt{Iter: iter, Key: key, Value: value, ByRef: byRef, Body: body, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseSwitchStmt() ast.Stmt {
	start := p.curSpan()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	subject := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	alt := p.peekTokenIs(lexer.COLON)
	if alt {
		p.nextToken()
	} else if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	endTok := lexer.RBRACE
	if alt {
		endTok = lexer.ENDSWITCH
	}

	var cases []ast.SwitchCase
	var conds []ast.Expr
	isDefault := false
	for !p.peekTokenIs(endTok) && !p.peekTokenIs(lexer.EOF) {
		p.nextToken()
		if p.curTokenIs(lexer.CASE) {
			p.nextToken()
			cond := p.parseExpression(LOWEST)
			if p.peekTokenIs(lexer.COLON) || p.peekTokenIs(lexer.SEMICOLON) {
				p.nextToken()
			}
			conds = append(conds, cond)
		} else if p.curTokenIs(lexer.DEFAULT) {
			if p.peekTokenIs(lexer.COLON) || p.peekTokenIs(lexer.SEMICOLON) {
				p.nextToken()
			}
			isDefault = true
		} else {
			p.errorf(ast.ErrUnexpectedToken, p.curSpan(), "case or default", p.curToken.Literal)
			p.recover()
			continue
		}

		// A label immediately followed by another label falls through with
		// no body of its own; keep accumulating labels until one is
		// actually followed by statements, then fan them all into one case.
		if p.peekTokenIs(lexer.CASE) || p.peekTokenIs(lexer.DEFAULT) || p.peekTokenIs(endTok) || p.peekTokenIs(lexer.EOF) {
			continue
		}

		var body []ast.Stmt
		for !p.peekTokenIs(lexer.CASE) && !p.peekTokenIs(lexer.DEFAULT) && !p.peekTokenIs(endTok) && !p.peekTokenIs(lexer.EOF) {
			p.nextToken()
			before := len(p.errors)
			stmt := p.parseStatement()
			if stmt != nil {
				body = append(body, stmt)
			}
			if len(p.errors) > before && stmt == nil {
				p.recover()
			}
		}
		cases = append(cases, ast.SwitchCase{Conds: conds, IsDefault: isDefault, Body: body})
		conds = nil
		isDefault = false
	}
	if len(conds) > 0 || isDefault {
		cases = append(cases, ast.SwitchCase{Conds: conds, IsDefault: isDefault})
	}

	if !p.expectPeek(endTok) {
		return nil
	}
	sp := ast.Cover(start, p.curSpan())
	if alt && p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.SwitchStmt{Subject: subject, Cases: cases, Sp: sp}
}

func (p *Parser) parseTryStmt() ast.Stmt {
	start := p.curSpan()
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlockStmt()

	var catches []ast.CatchClause
	for p.peekTokenIs(lexer.CATCH) {
		p.nextToken()
		if !p.expectPeek(lexer.LPAREN) {
			return nil
		}
		p.nextToken()
		var types []ast.Path
		s, _ := p.parsePathString()
		ns, n := splitPath(s)
		ty := ast.Path{Name: p.intern(n)}
		if ns != "" {
			ty.Namespace = p.intern(ns)
		}
		types = append(types, ty)
		for p.peekTokenIs(lexer.BITWISE_OR) {
			p.nextToken()
			p.nextToken()
			s2, _ := p.parsePathString()
			ns2, n2 := splitPath(s2)
			ty2 := ast.Path{Name: p.intern(n2)}
			if ns2 != "" {
				ty2.Namespace = p.intern(ns2)
			}
			types = append(types, ty2)
		}
		var varname intern.Handle
		if p.peekTokenIs(lexer.VARIABLE) {
			p.nextToken()
			name := p.curToken.Literal
			if len(name) > 0 && name[0] == '$' {
				name = name[1:]
			}
			varname = p.intern(name)
		}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		catchBody := p.parseBlockStmt()
		catches = append(catches, ast.CatchClause{Types: types, Varname: varname, Body: catchBody})
	}

	var finally *ast.BlockStmt
	if p.peekTokenIs(lexer.FINALLY) {
		p.nextToken()
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		finally = p.parseBlockStmt()
	}

	return &ast.TryStmt{Body: body, Catches: catches, Finally: finally, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseThrowStmt() ast.Stmt {
	start := p.curSpan()
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	sp := ast.Cover(start, value.Span())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.ThrowStmt{Value: value, Sp: sp}
}

func (p *Parser) parseEchoStmt() ast.Stmt {
	start := p.curSpan()
	p.nextToken()
	values := []ast.Expr{p.parseExpression(LOWEST)}
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		values = append(values, p.parseExpression(LOWEST))
	}
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.EchoStmt{Values: values, Sp: sp}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curSpan()
	var value ast.Expr
	if !p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		value = p.parseExpression(LOWEST)
	}
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.ReturnStmt{Value: value, Sp: sp}
}

func (p *Parser) parseLevels() int {
	if p.peekTokenIs(lexer.INTEGER) {
		p.nextToken()
		if n, err := strconv.Atoi(p.curToken.Literal); err == nil {
			return n
		}
	}
	return 1
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	start := p.curSpan()
	levels := p.parseLevels()
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.BreakStmt{Levels: levels, Sp: sp}
}

func (p *Parser) parseContinueStmt() ast.Stmt {
	start := p.curSpan()
	levels := p.parseLevels()
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.ContinueStmt{Levels: levels, Sp: sp}
}

func (p *Parser) parseUnsetStmt() ast.Stmt {
	start := p.curSpan()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	targets := p.parseExprList(lexer.RPAREN)
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.UnsetStmt{Targets: targets, Sp: sp}
}

func (p *Parser) parseGlobalStmt() ast.Stmt {
	start := p.curSpan()
	p.nextToken()
	names := []intern.Handle{p.internVarName()}
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		names = append(names, p.internVarName())
	}
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.GlobalStmt{Names: names, Sp: sp}
}

func (p *Parser) internVarName() intern.Handle {
	name := p.curToken.Literal
	if len(name) > 0 && name[0] == '$' {
		name = name[1:]
	}
	return p.intern(name)
}

func (p *Parser) parseStaticStmt() ast.Stmt {
	start := p.curSpan()
	p.nextToken()
	vars := []ast.StaticVar{p.parseStaticVar()}
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		vars = append(vars, p.parseStaticVar())
	}
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.StaticStmt{Vars: vars, Sp: sp}
}

func (p *Parser) parseStaticVar() ast.StaticVar {
	name := p.internVarName()
	var def ast.Expr
	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		def = p.parseExpression(ASSIGNMENT - 1)
	}
	return ast.StaticVar{Name: name, Default: def}
}
