package parser

import (
	"strconv"
	"strings"

	"github.com/timglabisch/pico-php-parser/pkg/ast"
	"github.com/timglabisch/pico-php-parser/pkg/lexer"
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:  OR_KW,
	lexer.XOR: XOR_KW,
	lexer.AND: AND_KW,

	lexer.ASSIGN:          ASSIGNMENT,
	lexer.PLUS_ASSIGN:     ASSIGNMENT,
	lexer.MINUS_ASSIGN:    ASSIGNMENT,
	lexer.MUL_ASSIGN:      ASSIGNMENT,
	lexer.DIV_ASSIGN:      ASSIGNMENT,
	lexer.MOD_ASSIGN:      ASSIGNMENT,
	lexer.CONCAT_ASSIGN:   ASSIGNMENT,
	lexer.POWER_ASSIGN:    ASSIGNMENT,
	lexer.AND_ASSIGN:      ASSIGNMENT,
	lexer.OR_ASSIGN:       ASSIGNMENT,
	lexer.XOR_ASSIGN:      ASSIGNMENT,
	lexer.SL_ASSIGN:       ASSIGNMENT,
	lexer.SR_ASSIGN:       ASSIGNMENT,
	lexer.COALESCE_ASSIGN: ASSIGNMENT,

	lexer.QUESTION: TERNARY,
	lexer.COALESCE: COALESCE,

	lexer.LOGICAL_OR:  LOGICAL_OR,
	lexer.LOGICAL_AND: LOGICAL_AND,

	lexer.BITWISE_OR:  BIT_OR,
	lexer.BITWISE_XOR: BIT_XOR,
	lexer.BITWISE_AND: BIT_AND,

	lexer.EQ:            EQUALITY,
	lexer.NE:            EQUALITY,
	lexer.IDENTICAL:     EQUALITY,
	lexer.NOT_IDENTICAL: EQUALITY,
	lexer.SPACESHIP:     EQUALITY,

	lexer.LT: COMPARISON,
	lexer.LE: COMPARISON,
	lexer.GT: COMPARISON,
	lexer.GE: COMPARISON,

	lexer.SL: SHIFT,
	lexer.SR: SHIFT,

	lexer.PLUS:   ADDITIVE,
	lexer.MINUS:  ADDITIVE,
	lexer.CONCAT: ADDITIVE,

	lexer.ASTERISK: MULTIPLICATIVE,
	lexer.SLASH:    MULTIPLICATIVE,
	lexer.PERCENT:  MULTIPLICATIVE,

	lexer.INSTANCEOF: INSTANCEOF_PREC,

	lexer.POWER: POWER,

	lexer.LBRACKET:             POSTFIX,
	lexer.OBJECT_OPERATOR:      POSTFIX,
	lexer.NULLSAFE_OPERATOR:    POSTFIX,
	lexer.PAAMAYIM_NEKUDOTAYIM: POSTFIX,
	lexer.LPAREN:               POSTFIX,
	lexer.INC:                  POSTFIX,
	lexer.DEC:                  POSTFIX,
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// registerExpressionParsers wires every token type that can start or
// continue an expression to its parse function.
func (p *Parser) registerExpressionParsers() {
	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:        p.parsePathExpr,
		lexer.NS_SEPARATOR: p.parsePathExpr,
		lexer.STATIC:       p.parsePathExpr,
		lexer.TRUE:         p.parseConstKeyword,
		lexer.FALSE:        p.parseConstKeyword,
		lexer.NULL:         p.parseConstKeyword,
		lexer.VARIABLE:     p.parseVariableExpr,
		lexer.INTEGER:      p.parseIntLiteral,
		lexer.FLOAT:        p.parseDoubleLiteral,
		lexer.STRING:       p.parseStringLiteral,
		lexer.HEREDOC:      p.parseHeredocLiteral,
		lexer.NOWDOC:       p.parseNowdocLiteral,
		lexer.LOGICAL_NOT:  p.parseUnaryExpr,
		lexer.MINUS:        p.parseUnaryExpr,
		lexer.PLUS:         p.parseUnaryExpr,
		lexer.BITWISE_NOT:  p.parseUnaryExpr,
		lexer.INC:          p.parseUnaryExpr,
		lexer.DEC:          p.parseUnaryExpr,
		lexer.AT:           p.parseUnaryExpr,
		lexer.BITWISE_AND:  p.parseReferenceExpr,
		lexer.LPAREN:       p.parseGroupedOrCastExpr,
		lexer.LBRACKET:     p.parseArrayExpr,
		lexer.ARRAY:        p.parseArrayExpr,
		lexer.LIST:         p.parseListExpr,
		lexer.NEW:          p.parseNewExpr,
		lexer.CLONE:        p.parseCloneExpr,
		lexer.ISSET:        p.parseIssetExpr,
		lexer.EMPTY:        p.parseEmptyExpr,
		lexer.EXIT:         p.parseExitExpr,
		lexer.DIE:          p.parseExitExpr,
		lexer.INCLUDE:      p.parseIncludeExpr,
		lexer.INCLUDE_ONCE: p.parseIncludeExpr,
		lexer.REQUIRE:      p.parseIncludeExpr,
		lexer.REQUIRE_ONCE: p.parseIncludeExpr,
		lexer.FUNCTION:     p.parseClosureExpr,
		lexer.FN:           p.parseArrowFunctionExpr,
		lexer.MATCH:        p.parseMatchExpr,
		lexer.PRINT:        p.parsePrintExpr,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseBinaryExpr,
		lexer.MINUS:    p.parseBinaryExpr,
		lexer.ASTERISK: p.parseBinaryExpr,
		lexer.SLASH:    p.parseBinaryExpr,
		lexer.PERCENT:  p.parseBinaryExpr,
		lexer.POWER:    p.parseBinaryExpr,
		lexer.CONCAT:   p.parseBinaryExpr,

		lexer.EQ:            p.parseBinaryExpr,
		lexer.NE:            p.parseBinaryExpr,
		lexer.IDENTICAL:     p.parseBinaryExpr,
		lexer.NOT_IDENTICAL: p.parseBinaryExpr,
		lexer.LT:             p.parseBinaryExpr,
		lexer.LE:             p.parseBinaryExpr,
		lexer.GT:             p.parseBinaryExpr,
		lexer.GE:             p.parseBinaryExpr,
		lexer.SPACESHIP:      p.parseBinaryExpr,

		lexer.LOGICAL_AND: p.parseBinaryExpr,
		lexer.LOGICAL_OR:  p.parseBinaryExpr,
		lexer.AND:         p.parseBinaryExpr,
		lexer.OR:          p.parseBinaryExpr,
		lexer.XOR:         p.parseBinaryExpr,

		lexer.BITWISE_AND: p.parseBinaryExpr,
		lexer.BITWISE_OR:  p.parseBinaryExpr,
		lexer.BITWISE_XOR: p.parseBinaryExpr,
		lexer.SL:          p.parseBinaryExpr,
		lexer.SR:          p.parseBinaryExpr,

		lexer.COALESCE: p.parseCoalesceExpr,

		lexer.ASSIGN:          p.parseAssignExpr,
		lexer.PLUS_ASSIGN:     p.parseCompoundAssignExpr,
		lexer.MINUS_ASSIGN:    p.parseCompoundAssignExpr,
		lexer.MUL_ASSIGN:      p.parseCompoundAssignExpr,
		lexer.DIV_ASSIGN:      p.parseCompoundAssignExpr,
		lexer.MOD_ASSIGN:      p.parseCompoundAssignExpr,
		lexer.CONCAT_ASSIGN:   p.parseCompoundAssignExpr,
		lexer.POWER_ASSIGN:    p.parseCompoundAssignExpr,
		lexer.AND_ASSIGN:      p.parseCompoundAssignExpr,
		lexer.OR_ASSIGN:       p.parseCompoundAssignExpr,
		lexer.XOR_ASSIGN:      p.parseCompoundAssignExpr,
		lexer.SL_ASSIGN:       p.parseCompoundAssignExpr,
		lexer.SR_ASSIGN:       p.parseCompoundAssignExpr,
		lexer.COALESCE_ASSIGN: p.parseCompoundAssignExpr,

		lexer.QUESTION: p.parseTernaryExpr,

		lexer.LBRACKET:             p.parseArrayIndexExpr,
		lexer.OBJECT_OPERATOR:      p.parsePropertyAccessExpr,
		lexer.NULLSAFE_OPERATOR:    p.parsePropertyAccessExpr,
		lexer.PAAMAYIM_NEKUDOTAYIM: p.parseStaticAccessExpr,
		lexer.LPAREN:               p.parseCallExpr,
		lexer.INC:                  p.parsePostfixIncDec,
		lexer.DEC:                  p.parsePostfixIncDec,

		lexer.INSTANCEOF: p.parseInstanceOfExpr,
	}
}

// parseExpression is the Pratt entry point: parse a primary, then fold any
// postfix/infix operator whose precedence is strictly greater than minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	if !p.enterDepth() {
		return nil
	}
	defer p.leaveDepth()

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(ast.ErrUnexpectedToken, p.curSpan(), "expression", p.curToken.Literal)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.SEMICOLON) && minPrec < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

// ---- primaries ----

func splitPath(s string) (ns, name string) {
	idx := strings.LastIndex(s, `\`)
	if idx < 0 {
		return "", s
	}
	return s[:idx], s[idx+1:]
}

// parsePathString accumulates NS_SEPARATOR-joined identifier segments
// starting at curToken into one backslash-joined string.
func (p *Parser) parsePathString() (string, ast.Span) {
	start := p.curSpan()
	var sb strings.Builder
	if p.curTokenIs(lexer.NS_SEPARATOR) {
		sb.WriteByte('\\')
		p.nextToken()
	}
	sb.WriteString(p.curToken.Literal)
	for p.peekTokenIs(lexer.NS_SEPARATOR) {
		p.nextToken()
		sb.WriteByte('\\')
		p.nextToken()
		sb.WriteString(p.curToken.Literal)
	}
	return sb.String(), ast.Cover(start, p.curSpan())
}

func (p *Parser) parsePathExpr() ast.Expr {
	s, sp := p.parsePathString()
	ns, name := splitPath(s)
	path := ast.Path{Name: p.intern(name)}
	if ns != "" {
		path.Namespace = p.intern(ns)
	}
	return &ast.PathExpr{Value: path, Sp: sp}
}

// parseConstKeyword parses the `true`/`false`/`null` bareword literals,
// which PHP treats as keywords rather than ordinary constant references.
func (p *Parser) parseConstKeyword() ast.Expr {
	sp := p.curSpan()
	switch p.curToken.Type {
	case lexer.TRUE:
		return &ast.BooleanLiteral{Value: true, Sp: sp}
	case lexer.FALSE:
		return &ast.BooleanLiteral{Value: false, Sp: sp}
	default:
		return &ast.NullLiteral{Sp: sp}
	}
}

func (p *Parser) parseVariableExpr() ast.Expr {
	name := p.curToken.Literal
	if len(name) > 0 && name[0] == '$' {
		name = name[1:]
	}
	return &ast.VariableExpr{Name: p.intern(name), Sp: p.curSpan()}
}

// normalizeIntLiteral rewrites PHP's 0o octal prefix, which strconv's
// base-0 sniffing does not recognize, to the legacy leading-zero form.
func normalizeIntLiteral(lit string) string {
	if len(lit) > 2 && (lit[0:2] == "0o" || lit[0:2] == "0O") {
		return "0" + lit[2:]
	}
	return lit
}

func (p *Parser) parseIntLiteral() ast.Expr {
	lit := p.curToken.Literal
	value, err := strconv.ParseInt(normalizeIntLiteral(lit), 0, 64)
	if err != nil {
		p.errorf(ast.ErrBadNumber, p.curSpan(), "integer", lit)
		return nil
	}
	return &ast.IntLiteral{Value: value, Sp: p.curSpan()}
}

func (p *Parser) parseDoubleLiteral() ast.Expr {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(ast.ErrBadNumber, p.curSpan(), "float", p.curToken.Literal)
		return nil
	}
	return &ast.DoubleLiteral{Value: value, Sp: p.curSpan()}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	raw := p.curToken.Literal
	var decoded []byte
	if p.curToken.Quote == '\'' {
		decoded = lexer.DecodeSingleQuoted(raw)
	} else {
		decoded = lexer.DecodeDoubleQuoted(raw)
	}
	return &ast.StringLiteral{Raw: decoded, Sp: p.curSpan()}
}

func (p *Parser) parseHeredocLiteral() ast.Expr {
	return &ast.StringLiteral{Raw: lexer.DecodeDoubleQuoted(p.curToken.Literal), Sp: p.curSpan()}
}

func (p *Parser) parseNowdocLiteral() ast.Expr {
	return &ast.StringLiteral{Raw: lexer.DecodeSingleQuoted(p.curToken.Literal), Sp: p.curSpan()}
}

func unaryOpFor(t lexer.TokenType) ast.UnaryOp {
	switch t {
	case lexer.MINUS:
		return ast.UnaryMinus
	case lexer.PLUS:
		return ast.UnaryPlus
	case lexer.LOGICAL_NOT:
		return ast.UnaryNot
	case lexer.BITWISE_NOT:
		return ast.UnaryBitwiseNot
	case lexer.INC:
		return ast.UnaryPreInc
	case lexer.DEC:
		return ast.UnaryPreDec
	case lexer.AT:
		return ast.UnarySuppress
	}
	return ast.UnaryPlus
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	start := p.curSpan()
	op := unaryOpFor(p.curToken.Type)
	p.nextToken()
	operand := p.parseExpression(UNARY)
	if operand == nil {
		return nil
	}
	return &ast.UnaryExpr{Op: op, Operand: operand, Sp: ast.Cover(start, operand.Span())}
}

func (p *Parser) parseReferenceExpr() ast.Expr {
	start := p.curSpan()
	p.nextToken()
	value := p.parseExpression(UNARY)
	if value == nil {
		return nil
	}
	return &ast.ReferenceExpr{Value: value, Sp: ast.Cover(start, value.Span())}
}

// castTypes maps the type-keyword tokens valid inside "(Type)" to a Ty
// kind. Only consulted after a lookahead confirms the "(" keyword ")"
// shape; anything else falls through to a parenthesized expression.
var castTypes = map[lexer.TokenType]ast.TyKind{
	lexer.INT:         ast.TyInt,
	lexer.FLOAT_TYPE:  ast.TyFloat,
	lexer.STRING_TYPE: ast.TyString,
	lexer.BOOL:        ast.TyBool,
	lexer.ARRAY:       ast.TyArray,
	lexer.OBJECT:      ast.TyObjectPath,
}

func (p *Parser) parseGroupedOrCastExpr() ast.Expr {
	start := p.curSpan()
	// The cast shape "(" TypeKeyword ")" is exactly 3 tokens, so the
	// lookahead fits in the parser's existing cur/peek/peek2 window — no
	// speculative consume-and-rewind is needed (the lexer itself cannot be
	// rewound once a token has been pulled from it).
	if kind, ok := castTypes[p.peekToken.Type]; ok && p.peek2TokenIs(lexer.RPAREN) {
		p.nextToken() // consume '(', type keyword now curToken
		p.nextToken() // consume type keyword, ')' now curToken
		p.nextToken() // move to operand
		operand := p.parseExpression(UNARY)
		if operand == nil {
			return nil
		}
		target := ast.Ty{Kind: kind}
		if kind == ast.TyObjectPath {
			target.Object = &ast.Path{Name: p.intern("object")}
		}
		return &ast.CastExpr{Target: target, Value: operand, Sp: ast.Cover(start, operand.Span())}
	}

	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if inner == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return &ast.GroupedExpr{Inner: inner, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseArrayItem() ast.ArrayItem {
	if p.curTokenIs(lexer.ELLIPSIS) {
		p.nextToken()
		v := p.parseExpression(LOWEST)
		return ast.ArrayItem{Value: v, Spread: true}
	}
	byRef := false
	if p.curTokenIs(lexer.BITWISE_AND) {
		byRef = true
		p.nextToken()
	}
	expr := p.parseExpression(LOWEST)
	if p.peekTokenIs(lexer.DOUBLE_ARROW) {
		p.nextToken()
		p.nextToken()
		valByRef := false
		if p.curTokenIs(lexer.BITWISE_AND) {
			valByRef = true
			p.nextToken()
		}
		value := p.parseExpression(LOWEST)
		return ast.ArrayItem{Key: expr, Value: value, ByRef: valByRef}
	}
	return ast.ArrayItem{Value: expr, ByRef: byRef}
}

func (p *Parser) parseArrayItems(closeTok lexer.TokenType) []ast.ArrayItem {
	var items []ast.ArrayItem
	if p.peekTokenIs(closeTok) {
		p.nextToken()
		return items
	}
	p.nextToken()
	for {
		if p.curTokenIs(closeTok) {
			break
		}
		items = append(items, p.parseArrayItem())
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			if p.curTokenIs(closeTok) {
				break
			}
			continue
		}
		break
	}
	p.expectPeek(closeTok)
	return items
}

func (p *Parser) parseArrayExpr() ast.Expr {
	start := p.curSpan()
	closeTok := lexer.RBRACKET
	if p.curTokenIs(lexer.ARRAY) {
		if !p.expectPeek(lexer.LPAREN) {
			return nil
		}
		closeTok = lexer.RPAREN
	}
	items := p.parseArrayItems(closeTok)
	return &ast.ArrayExpr{Items: items, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseListExpr() ast.Expr {
	start := p.curSpan()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	items := p.parseArrayItems(lexer.RPAREN)
	return &ast.ListExpr{Items: items, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseCloneExpr() ast.Expr {
	start := p.curSpan()
	p.nextToken()
	value := p.parseExpression(NEW_CLONE)
	if value == nil {
		return nil
	}
	return &ast.CloneExpr{Value: value, Sp: ast.Cover(start, value.Span())}
}

func (p *Parser) parseNewExpr() ast.Expr {
	start := p.curSpan()
	p.nextToken()
	class := p.parseExpression(POSTFIX)
	if class == nil {
		return nil
	}
	n := &ast.NewExpr{Class: class, Sp: ast.Cover(start, class.Span())}
	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken()
		n.Args = p.parseArgs()
		n.Sp = ast.Cover(start, p.curSpan())
	}
	return n
}

func (p *Parser) parseIssetExpr() ast.Expr {
	start := p.curSpan()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	args := []ast.Expr{p.parseExpression(LOWEST)}
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return &ast.IssetExpr{Args: args, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseEmptyExpr() ast.Expr {
	start := p.curSpan()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return &ast.EmptyExpr{Value: value, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseExitExpr() ast.Expr {
	start := p.curSpan()
	n := &ast.ExitExpr{Sp: start}
	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken()
		if p.peekTokenIs(lexer.RPAREN) {
			p.nextToken()
		} else {
			p.nextToken()
			n.Value = p.parseExpression(LOWEST)
			if !p.expectPeek(lexer.RPAREN) {
				return nil
			}
		}
		n.Sp = ast.Cover(start, p.curSpan())
	}
	return n
}

var includeKinds = map[lexer.TokenType]ast.IncludeKind{
	lexer.INCLUDE:      ast.IncludeInclude,
	lexer.INCLUDE_ONCE: ast.IncludeIncludeOnce,
	lexer.REQUIRE:      ast.IncludeRequire,
	lexer.REQUIRE_ONCE: ast.IncludeRequireOnce,
}

func (p *Parser) parseIncludeExpr() ast.Expr {
	start := p.curSpan()
	kind := includeKinds[p.curToken.Type]
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.IncludeExpr{Kind: kind, Value: value, Sp: ast.Cover(start, value.Span())}
}

// parsePrintExpr lowers `print $e` to a UnarySuppress-wrapped expression:
// print is an expression form (it evaluates to 1), distinguished from a
// bare value only by this wrapper, since the grammar never needs its
// result for anything but discarding.
func (p *Parser) parsePrintExpr() ast.Expr {
	start := p.curSpan()
	p.nextToken()
	value := p.parseExpression(ASSIGNMENT)
	if value == nil {
		return nil
	}
	return &ast.UnaryExpr{Op: ast.UnarySuppress, Operand: value, Sp: ast.Cover(start, value.Span())}
}

// ---- postfix chain accumulation ----

func (p *Parser) parseArrayIndexExpr(left ast.Expr) ast.Expr {
	start := left.Span()
	var index ast.Expr
	if p.peekTokenIs(lexer.RBRACKET) {
		p.nextToken() // trailing append position `[]`, index stays nil
	} else {
		p.nextToken()
		index = p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.RBRACKET) {
			return nil
		}
	}
	sp := ast.Cover(start, p.curSpan())
	if chain, ok := left.(*ast.ArrayIndexExpr); ok {
		chain.Indices = append(chain.Indices, index)
		chain.Sp = sp
		return chain
	}
	return &ast.ArrayIndexExpr{Base: left, Indices: []ast.Expr{index}, Sp: sp}
}

func (p *Parser) parsePropertyNameExpr() ast.Expr {
	if p.curTokenIs(lexer.LBRACE) {
		p.nextToken()
		e := p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.RBRACE) {
			return nil
		}
		return e
	}
	if p.curTokenIs(lexer.VARIABLE) {
		return p.parseVariableExpr()
	}
	return p.parsePathExpr()
}

func appendPropertyStep(left ast.Expr, step ast.PropertyStep) ast.Expr {
	if chain, ok := left.(*ast.PropertyAccessExpr); ok {
		chain.Steps = append(chain.Steps, step)
		chain.Sp = ast.Cover(chain.Sp, step.Name.Span())
		return chain
	}
	return &ast.PropertyAccessExpr{Base: left, Steps: []ast.PropertyStep{step}, Sp: ast.Cover(left.Span(), step.Name.Span())}
}

func (p *Parser) parsePropertyAccessExpr(left ast.Expr) ast.Expr {
	start := left.Span()
	nullsafe := p.curTokenIs(lexer.NULLSAFE_OPERATOR)
	p.nextToken()
	name := p.parsePropertyNameExpr()
	if name == nil {
		return nil
	}
	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken()
		args := p.parseArgs()
		callee := appendPropertyStep(left, ast.PropertyStep{Name: name, Nullsafe: nullsafe})
		return &ast.CallExpr{Callee: callee, Args: args, Sp: ast.Cover(start, p.curSpan())}
	}
	return appendPropertyStep(left, ast.PropertyStep{Name: name, Nullsafe: nullsafe})
}

func appendStaticMember(left ast.Expr, member ast.Expr) ast.Expr {
	if chain, ok := left.(*ast.StaticAccessExpr); ok {
		chain.Members = append(chain.Members, member)
		chain.Sp = ast.Cover(chain.Sp, member.Span())
		return chain
	}
	return &ast.StaticAccessExpr{Class: left, Members: []ast.Expr{member}, Sp: ast.Cover(left.Span(), member.Span())}
}

func (p *Parser) parseStaticAccessExpr(left ast.Expr) ast.Expr {
	start := left.Span()
	p.nextToken()
	var member ast.Expr
	switch {
	case p.curTokenIs(lexer.VARIABLE):
		member = p.parseVariableExpr()
	case p.curTokenIs(lexer.CLASS):
		member = &ast.PathExpr{Value: ast.Path{Name: p.intern("class")}, Sp: p.curSpan()}
	case p.curTokenIs(lexer.LBRACE):
		p.nextToken()
		member = p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.RBRACE) {
			return nil
		}
	default:
		member = p.parsePathExpr()
	}
	if member == nil {
		return nil
	}
	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken()
		args := p.parseArgs()
		callee := appendStaticMember(left, member)
		return &ast.CallExpr{Callee: callee, Args: args, Sp: ast.Cover(start, p.curSpan())}
	}
	return appendStaticMember(left, member)
}

func (p *Parser) parseArg() ast.Arg {
	if p.curTokenIs(lexer.ELLIPSIS) {
		p.nextToken()
		return ast.Arg{Value: p.parseExpression(LOWEST), Spread: true}
	}
	if p.curTokenIs(lexer.IDENT) && p.peekTokenIs(lexer.COLON) {
		name := p.intern(p.curToken.Literal)
		p.nextToken() // consume ':'
		p.nextToken()
		return ast.Arg{Name: name, Value: p.parseExpression(LOWEST)}
	}
	return ast.Arg{Value: p.parseExpression(LOWEST)}
}

func (p *Parser) parseArgs() []ast.Arg {
	var args []ast.Arg
	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	for {
		args = append(args, p.parseArg())
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			if p.curTokenIs(lexer.RPAREN) {
				break
			}
			continue
		}
		break
	}
	p.expectPeek(lexer.RPAREN)
	return args
}

func (p *Parser) parseCallExpr(left ast.Expr) ast.Expr {
	start := left.Span()
	args := p.parseArgs()
	return &ast.CallExpr{Callee: left, Args: args, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parsePostfixIncDec(left ast.Expr) ast.Expr {
	op := ast.UnaryPostInc
	if p.curTokenIs(lexer.DEC) {
		op = ast.UnaryPostDec
	}
	return &ast.UnaryExpr{Op: op, Operand: left, Sp: ast.Cover(left.Span(), p.curSpan())}
}

// ---- binary / assignment / ternary ----

var binaryOps = map[lexer.TokenType]ast.Op{
	lexer.CONCAT:        ast.OpConcat,
	lexer.PLUS:          ast.OpAdd,
	lexer.MINUS:         ast.OpSub,
	lexer.ASTERISK:      ast.OpMul,
	lexer.SLASH:         ast.OpDiv,
	lexer.PERCENT:       ast.OpMod,
	lexer.POWER:         ast.OpPow,
	lexer.LOGICAL_AND:   ast.OpLogicalAnd,
	lexer.LOGICAL_OR:    ast.OpLogicalOr,
	lexer.AND:           ast.OpAnd,
	lexer.OR:            ast.OpOr,
	lexer.XOR:           ast.OpXor,
	lexer.BITWISE_AND:   ast.OpBitwiseAnd,
	lexer.BITWISE_OR:    ast.OpBitwiseOr,
	lexer.BITWISE_XOR:   ast.OpBitwiseXor,
	lexer.SL:            ast.OpShiftLeft,
	lexer.SR:            ast.OpShiftRight,
	lexer.EQ:            ast.OpEq,
	lexer.NE:            ast.OpNotEq,
	lexer.IDENTICAL:     ast.OpIdentical,
	lexer.NOT_IDENTICAL: ast.OpNotIdentical,
	lexer.LT:            ast.OpLt,
	lexer.GT:            ast.OpGt,
	lexer.LE:            ast.OpLe,
	lexer.GE:            ast.OpGe,
	lexer.SPACESHIP:     ast.OpSpaceship,
}

// compoundOps maps a compound-assignment token to the underlying binary
// operator it applies (target := target op value); ??= carries no
// meaningful Op since its semantics are "assign only if target is unset",
// not a binary fold, so it is left unread by evaluators of this shape.
var compoundOps = map[lexer.TokenType]ast.Op{
	lexer.PLUS_ASSIGN:     ast.OpAdd,
	lexer.MINUS_ASSIGN:    ast.OpSub,
	lexer.MUL_ASSIGN:      ast.OpMul,
	lexer.DIV_ASSIGN:      ast.OpDiv,
	lexer.MOD_ASSIGN:      ast.OpMod,
	lexer.CONCAT_ASSIGN:   ast.OpConcat,
	lexer.POWER_ASSIGN:    ast.OpPow,
	lexer.AND_ASSIGN:      ast.OpBitwiseAnd,
	lexer.OR_ASSIGN:       ast.OpBitwiseOr,
	lexer.XOR_ASSIGN:      ast.OpBitwiseXor,
	lexer.SL_ASSIGN:       ast.OpShiftLeft,
	lexer.SR_ASSIGN:       ast.OpShiftRight,
	lexer.COALESCE_ASSIGN: ast.OpConcat,
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	op := binaryOps[p.curToken.Type]
	prec := p.curPrecedence()
	if p.curTokenIs(lexer.POWER) {
		prec-- // ** is right-associative
	}
	p.nextToken()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right, Sp: ast.Cover(left.Span(), right.Span())}
}

func (p *Parser) parseCoalesceExpr(left ast.Expr) ast.Expr {
	p.nextToken()
	right := p.parseExpression(COALESCE - 1) // right-associative
	if right == nil {
		return nil
	}
	return &ast.CoalesceExpr{Left: left, Right: right, Sp: ast.Cover(left.Span(), right.Span())}
}

func adjacent(a, b lexer.Span) bool { return a.Hi == b.Lo }

func (p *Parser) parseAssignExpr(left ast.Expr) ast.Expr {
	byRef := false
	if p.peekTokenIs(lexer.BITWISE_AND) && adjacent(p.curToken.Span, p.peekToken.Span) {
		p.nextToken()
		byRef = true
	}
	p.nextToken()
	right := p.parseExpression(ASSIGNMENT - 1)
	if right == nil {
		return nil
	}
	return &ast.AssignExpr{Target: left, Value: right, ByRef: byRef, Sp: ast.Cover(left.Span(), right.Span())}
}

func (p *Parser) parseCompoundAssignExpr(left ast.Expr) ast.Expr {
	op := compoundOps[p.curToken.Type]
	p.nextToken()
	right := p.parseExpression(ASSIGNMENT - 1)
	if right == nil {
		return nil
	}
	return &ast.CompoundAssignExpr{Op: op, Target: left, Value: right, Sp: ast.Cover(left.Span(), right.Span())}
}

func (p *Parser) parseTernaryExpr(left ast.Expr) ast.Expr {
	p.nextToken()
	if p.curTokenIs(lexer.COLON) {
		p.nextToken()
		elseExpr := p.parseExpression(TERNARY - 1)
		if elseExpr == nil {
			return nil
		}
		return &ast.TernaryExpr{Cond: left, Else: elseExpr, Sp: ast.Cover(left.Span(), elseExpr.Span())}
	}
	then := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.COLON) {
		return nil
	}
	p.nextToken()
	elseExpr := p.parseExpression(TERNARY - 1)
	if elseExpr == nil {
		return nil
	}
	return &ast.TernaryExpr{Cond: left, Then: then, Else: elseExpr, Sp: ast.Cover(left.Span(), elseExpr.Span())}
}

func (p *Parser) parseInstanceOfExpr(left ast.Expr) ast.Expr {
	p.nextToken()
	class := p.parseExpression(INSTANCEOF_PREC)
	if class == nil {
		return nil
	}
	return &ast.InstanceOfExpr{Value: left, Class: class, Sp: ast.Cover(left.Span(), class.Span())}
}

// ---- closures, arrow functions, match ----

func (p *Parser) parseClosureExpr() ast.Expr {
	start := p.curSpan()
	byRef := false
	if p.peekTokenIs(lexer.BITWISE_AND) {
		p.nextToken()
		byRef = true
	}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	params := p.parseParamList()

	var uses []ast.ClosureUse
	if p.peekTokenIs(lexer.USE) {
		p.nextToken()
		p.expectPeek(lexer.LPAREN)
		uses = p.parseClosureUseList()
	}

	var retType *ast.Ty
	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		t := p.parseType()
		retType = &t
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlockStmt()
	return &ast.FunctionExpr{ByRef: byRef, Params: params, Uses: uses, ReturnType: retType, Body: body.Stmts, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseClosureUseList() []ast.ClosureUse {
	var uses []ast.ClosureUse
	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return uses
	}
	p.nextToken()
	for {
		byRef := false
		if p.curTokenIs(lexer.BITWISE_AND) {
			byRef = true
			p.nextToken()
		}
		name := p.curToken.Literal
		if len(name) > 0 && name[0] == '$' {
			name = name[1:]
		}
		uses = append(uses, ast.ClosureUse{Name: p.intern(name), ByRef: byRef})
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(lexer.RPAREN)
	return uses
}

func (p *Parser) parseArrowFunctionExpr() ast.Expr {
	start := p.curSpan()
	byRef := false
	if p.peekTokenIs(lexer.BITWISE_AND) {
		p.nextToken()
		byRef = true
	}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	params := p.parseParamList()

	var retType *ast.Ty
	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		t := p.parseType()
		retType = &t
	}

	if !p.expectPeek(lexer.DOUBLE_ARROW) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(ASSIGNMENT - 1)
	if body == nil {
		return nil
	}
	return &ast.FunctionExpr{ByRef: byRef, Params: params, ReturnType: retType, ArrowBody: body, Sp: ast.Cover(start, body.Span())}
}

func (p *Parser) parseMatchExpr() ast.Expr {
	start := p.curSpan()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	subject := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}

	var arms []ast.MatchArm
	for !p.peekTokenIs(lexer.RBRACE) && !p.peekTokenIs(lexer.EOF) {
		p.nextToken()
		arm := ast.MatchArm{}
		if p.curTokenIs(lexer.DEFAULT) {
			// Conditions stays nil, marking the default arm.
		} else {
			arm.Conditions = append(arm.Conditions, p.parseExpression(LOWEST))
			for p.peekTokenIs(lexer.COMMA) {
				p.nextToken()
				if p.peekTokenIs(lexer.DOUBLE_ARROW) {
					break
				}
				p.nextToken()
				arm.Conditions = append(arm.Conditions, p.parseExpression(LOWEST))
			}
		}
		if !p.expectPeek(lexer.DOUBLE_ARROW) {
			return nil
		}
		p.nextToken()
		arm.Body = p.parseExpression(LOWEST)
		arms = append(arms, arm)
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return &ast.MatchExpr{Subject: subject, Arms: arms, Sp: ast.Cover(start, p.curSpan())}
}
