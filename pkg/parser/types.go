package parser

import (
	"strings"

	"github.com/timglabisch/pico-php-parser/pkg/ast"
	"github.com/timglabisch/pico-php-parser/pkg/lexer"
)

// builtinTypeKinds maps the scalar/compound type keywords to their Ty kind.
// Class names and self/parent/static are handled separately in parseTypeAtom
// since they carry a Path or need case-insensitive keyword recognition.
var builtinTypeKinds = map[lexer.TokenType]ast.TyKind{
	lexer.ARRAY:       ast.TyArray,
	lexer.CALLABLE:    ast.TyCallable,
	lexer.BOOL:        ast.TyBool,
	lexer.INT:         ast.TyInt,
	lexer.FLOAT_TYPE:  ast.TyFloat,
	lexer.STRING_TYPE: ast.TyString,
	lexer.VOID:        ast.TyVoid,
	lexer.NEVER:       ast.TyNever,
	lexer.MIXED:       ast.TyMixed,
	lexer.ITERABLE:    ast.TyIterable,
}

// startsType reports whether t can begin a type hint, used to disambiguate
// typed parameters/properties from a bare "$name" or "&"/"..." marker.
func (p *Parser) startsType(t lexer.TokenType) bool {
	if t == lexer.QUESTION || t == lexer.IDENT || t == lexer.NS_SEPARATOR || t == lexer.STATIC {
		return true
	}
	_, ok := builtinTypeKinds[t]
	return ok
}

// parseType parses a (possibly nullable, union, or intersection) type hint.
// Entry: curToken is the first token of the type. Exit: curToken is the last
// token consumed by the type.
func (p *Parser) parseType() ast.Ty {
	nullable := false
	if p.curTokenIs(lexer.QUESTION) {
		nullable = true
		p.nextToken()
	}

	first := p.parseTypeAtom()

	if p.peekTokenIs(lexer.BITWISE_OR) {
		members := []ast.Ty{first}
		for p.peekTokenIs(lexer.BITWISE_OR) {
			p.nextToken() // consume '|'
			p.nextToken() // move to next atom
			members = append(members, p.parseTypeAtom())
		}
		return ast.Ty{Kind: first.Kind, Nullable: nullable, Union: members}
	}

	// "&" is ambiguous between an intersection-type separator and a
	// by-reference parameter marker ("Countable&Traversable $x" vs
	// "array &$x"); only treat it as intersection when peek2 can itself
	// begin a type atom.
	if p.peekTokenIs(lexer.BITWISE_AND) && p.startsType(p.peek2Token.Type) {
		members := []ast.Ty{first}
		for p.peekTokenIs(lexer.BITWISE_AND) && p.startsType(p.peek2Token.Type) {
			p.nextToken() // consume '&'
			p.nextToken() // move to next atom
			members = append(members, p.parseTypeAtom())
		}
		return ast.Ty{Kind: first.Kind, Nullable: nullable, Intersection: members}
	}

	first.Nullable = nullable
	return first
}

// parseTypeAtom parses a single non-nullable, non-compound type name.
func (p *Parser) parseTypeAtom() ast.Ty {
	if kind, ok := builtinTypeKinds[p.curToken.Type]; ok {
		return ast.Ty{Kind: kind}
	}

	switch p.curToken.Type {
	case lexer.OBJECT:
		// The builtin "object" type is not a named class, but Ty's shape
		// requires Object to be set for TyObjectPath; an interned "object"
		// path lets downstream code treat it uniformly with class names.
		return ast.Ty{Kind: ast.TyObjectPath, Object: &ast.Path{Name: p.intern("object")}}
	case lexer.STATIC:
		return ast.Ty{Kind: ast.TyStatic}
	case lexer.IDENT, lexer.NS_SEPARATOR:
		s, _ := p.parsePathString()
		ns, name := splitPath(s)
		switch strings.ToLower(name) {
		case "self":
			return ast.Ty{Kind: ast.TySelf}
		case "parent":
			return ast.Ty{Kind: ast.TyParent}
		case "static":
			return ast.Ty{Kind: ast.TyStatic}
		}
		path := ast.Path{Name: p.intern(name)}
		if ns != "" {
			path.Namespace = p.intern(ns)
		}
		return ast.Ty{Kind: ast.TyObjectPath, Object: &path}
	}

	p.errorf(ast.ErrUnexpectedToken, p.curSpan(), "type", p.curToken.Literal)
	return ast.Ty{Kind: ast.TyMixed}
}
