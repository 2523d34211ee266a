// Package parser implements the PHP expression/statement parser.
//
// The parser is a hand-written recursive-descent parser for statements and
// declarations, with a Pratt (precedence-climbing) parser for expressions.
// It never panics on malformed input: lexer and syntax errors are recorded
// as ast.ParseError values and parsing resumes at a recovery point, so a
// single malformed statement does not abort the whole code region.
package parser

import (
	"github.com/timglabisch/pico-php-parser/pkg/ast"
	"github.com/timglabisch/pico-php-parser/pkg/intern"
	"github.com/timglabisch/pico-php-parser/pkg/lexer"
	"github.com/timglabisch/pico-php-parser/pkg/source"
)

// Precedence levels, lowest to highest, mirroring the operator table: rows
// sharing a table entry share a constant.
const (
	LOWEST int = iota
	OR_KW       // or
	XOR_KW      // xor
	AND_KW      // and
	ASSIGNMENT  // = += -= ... ??= and =&
	TERNARY     // ?:
	COALESCE    // ??
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	BIT_OR      // |
	BIT_XOR     // ^
	BIT_AND     // &
	EQUALITY    // == != === !== <=>
	COMPARISON  // < <= > >=
	SHIFT       // << >>
	ADDITIVE    // + - .
	MULTIPLICATIVE
	INSTANCEOF_PREC
	UNARY
	POWER
	NEW_CLONE
	POSTFIX
)

// Config controls parser-wide limits and lexer dialect switches.
type Config struct {
	// MaxDepth bounds expression-parse recursion depth (§5); 0 selects the
	// default of 256.
	MaxDepth int
	// ShortOpenTags accepts "<?" (without "php") as an open tag.
	ShortOpenTags bool
	// ShortEcho accepts "<?=" as an open-tag-plus-echo shorthand.
	ShortEcho bool
}

// DefaultMaxDepth is used when Config.MaxDepth is zero.
const DefaultMaxDepth = 256

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser holds all state for parsing a single code region's token stream.
type Parser struct {
	lex     *lexer.Lexer
	interner *intern.Interner
	cfg     Config

	curToken   lexer.Token
	peekToken  lexer.Token
	peek2Token lexer.Token

	errors []ast.ParseError
	depth  int

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser reading tokens from lex, interning identifiers and
// names through in.
func New(lex *lexer.Lexer, in *intern.Interner, cfg Config) *Parser {
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	p := &Parser{lex: lex, interner: in, cfg: cfg}
	p.registerExpressionParsers()
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []ast.ParseError { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.peek2Token
	p.peek2Token = p.lex.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool   { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool  { return p.peekToken.Type == t }
func (p *Parser) peek2TokenIs(t lexer.TokenType) bool { return p.peek2Token.Type == t }

// expectPeek advances past peekToken if it has type t, recording a syntax
// error and leaving the cursor unmoved otherwise.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(ast.ErrUnexpectedToken, p.peekSpan(), t.String(), p.peekToken.Literal)
	return false
}

func (p *Parser) curSpan() ast.Span  { return ast.Span{Lo: p.curToken.Span.Lo, Hi: p.curToken.Span.Hi} }
func (p *Parser) peekSpan() ast.Span { return ast.Span{Lo: p.peekToken.Span.Lo, Hi: p.peekToken.Span.Hi} }

func (p *Parser) errorf(kind ast.ParseErrorKind, sp ast.Span, expected, found string) {
	p.errors = append(p.errors, ast.ParseError{Kind: kind, Sp: sp, Expected: expected, Found: found})
}

func (p *Parser) intern(s string) intern.Handle { return p.interner.InternString(s) }

// enterDepth increments the expression-recursion counter, recording
// ExpressionTooDeep once and returning false when the configured limit is
// exceeded so callers can unwind instead of overflowing the Go stack.
func (p *Parser) enterDepth() bool {
	p.depth++
	if p.depth > p.cfg.MaxDepth {
		p.errorf(ast.ErrExpressionTooDeep, p.curSpan(), "", "recursion limit exceeded")
		return false
	}
	return true
}

func (p *Parser) leaveDepth() { p.depth-- }

// Parse splits src into text/code items and parses every code region,
// returning the accumulated item list and the union of all per-region
// parse errors. It is the sole public entry point described by the
// package's external interface.
func Parse(src []byte, in *intern.Interner, cfg Config) ([]ast.Item, []ast.ParseError) {
	if in == nil {
		in = intern.New()
	}
	segments := source.Split(src, source.Config{ShortOpenTags: cfg.ShortOpenTags, ShortEcho: cfg.ShortEcho})

	var items []ast.Item
	var allErrors []ast.ParseError

	for _, seg := range segments {
		if seg.Kind == source.TextSegment {
			items = append(items, &ast.TextItem{
				Value: in.Intern(seg.Bytes),
				Sp:    ast.Span{Lo: seg.Lo, Hi: seg.Hi},
			})
			continue
		}

		l := lexer.New(string(seg.Bytes), seg.Lo, "")
		pp := New(l, in, cfg)

		var stmts []ast.Stmt
		if seg.ShortEcho {
			stmts = pp.parseShortEchoProgram()
		} else {
			stmts = pp.parseProgram()
		}

		items = append(items, &ast.CodeItem{Stmts: stmts, Sp: ast.Span{Lo: seg.Lo, Hi: seg.Hi}})
		allErrors = append(allErrors, pp.errors...)
	}

	return items, allErrors
}

// parseShortEchoProgram parses the single expression that follows a "<?="
// open tag and wraps it in an EchoStmt, per §4.1's desugaring rule.
func (p *Parser) parseShortEchoProgram() []ast.Stmt {
	start := p.curSpan()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return []ast.Stmt{&ast.EchoStmt{Values: []ast.Expr{value}, Sp: sp}}
}

// parseProgram parses statements until EOF, recovering to the next
// statement boundary after an error so one malformed statement does not
// discard the rest of the region.
func (p *Parser) parseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.curTokenIs(lexer.EOF) {
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
	return stmts
}

// recover advances the token stream to the next semicolon, closing brace,
// or EOF so parsing can resume after a syntax error.
func (p *Parser) recover() {
	for !p.curTokenIs(lexer.SEMICOLON) && !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		p.nextToken()
	}
}
