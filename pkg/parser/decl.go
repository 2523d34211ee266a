package parser

import (
	"github.com/timglabisch/pico-php-parser/pkg/ast"
	"github.com/timglabisch/pico-php-parser/pkg/lexer"
)

// modifierKeywords maps each modifier keyword token to its bit.
var modifierKeywords = map[lexer.TokenType]ast.Modifiers{
	lexer.PUBLIC:    ast.ModPublic,
	lexer.PROTECTED: ast.ModProtected,
	lexer.PRIVATE:   ast.ModPrivate,
	lexer.STATIC:    ast.ModStatic,
	lexer.ABSTRACT:  ast.ModAbstract,
	lexer.FINAL:     ast.ModFinal,
	lexer.READONLY:  ast.ModReadonly,
}

const visibilityMods = ast.ModPublic | ast.ModProtected | ast.ModPrivate

// parseModifiers consumes zero or more modifier keywords starting at
// curToken, advancing past each one so curToken ends on the first token of
// the construct the modifiers qualify (function/const/$var/type name). If
// no modifier is present, curToken is left unmoved.
func (p *Parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for {
		bit, ok := modifierKeywords[p.curToken.Type]
		if !ok {
			break
		}
		if mods.Has(bit) {
			p.errorf(ast.ErrDuplicateModifier, p.curSpan(), "", p.curToken.Literal)
		} else if bit&visibilityMods != 0 && mods&visibilityMods != 0 {
			p.errorf(ast.ErrModifierConflict, p.curSpan(), "", p.curToken.Literal)
		}
		mods |= bit
		p.nextToken()
	}
	return mods
}

// parseParamList parses a parenthesized parameter list. Entry: curToken is
// "(". Exit: curToken is ")".
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		params = append(params, p.parseParam())
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			if p.peekTokenIs(lexer.RPAREN) {
				// trailing comma
				break
			}
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(lexer.RPAREN)
	return params
}

func (p *Parser) parseParam() ast.Param {
	var promoted ast.Modifiers
	for {
		bit, ok := modifierKeywords[p.curToken.Type]
		if !ok || bit == ast.ModStatic || bit == ast.ModAbstract || bit == ast.ModFinal {
			break
		}
		promoted |= bit
		p.nextToken()
	}

	var param ast.Param
	param.Promoted = promoted

	if p.startsType(p.curToken.Type) {
		t := p.parseType()
		param.Type = &t
		p.nextToken()
	}

	if p.curTokenIs(lexer.BITWISE_AND) {
		param.ByRef = true
		p.nextToken()
	}
	if p.curTokenIs(lexer.ELLIPSIS) {
		param.Variadic = true
		p.nextToken()
	}

	param.Name = p.internVarName()

	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		param.Default = p.parseExpression(ASSIGNMENT - 1)
	}
	return param
}

// parseFunctionDeclStmt parses a named top-level/nested function
// declaration. Entry: curToken is "function".
func (p *Parser) parseFunctionDeclStmt() ast.Stmt {
	start := p.curSpan()
	byRef := false
	if p.peekTokenIs(lexer.BITWISE_AND) {
		p.nextToken()
		byRef = true
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.intern(p.curToken.Literal)

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

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlockStmt()

	decl := &ast.FunctionDecl{
		Name:       name,
		ByRef:      byRef,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Sp:         ast.Cover(start, p.curSpan()),
	}
	return &ast.DeclStmt{Decl: decl, Sp: decl.Sp}
}

// parsePathType parses a backslash-joined class/interface name into a Path,
// used for extends/implements/trait-use lists and catch types.
func (p *Parser) parsePathType() ast.Path {
	s, _ := p.parsePathString()
	ns, n := splitPath(s)
	path := ast.Path{Name: p.intern(n)}
	if ns != "" {
		path.Namespace = p.intern(ns)
	}
	return path
}

func (p *Parser) parsePathTypeList(sep lexer.TokenType) []ast.Path {
	paths := []ast.Path{p.parsePathType()}
	for p.peekTokenIs(sep) {
		p.nextToken()
		p.nextToken()
		paths = append(paths, p.parsePathType())
	}
	return paths
}

// parseClassDeclStmt parses a class/interface/trait/enum declaration,
// including any leading abstract/final/readonly class modifiers. Entry:
// curToken is the first modifier keyword or the class/interface/trait/enum
// keyword itself.
func (p *Parser) parseClassDeclStmt() ast.Stmt {
	start := p.curSpan()
	var mods ast.Modifiers
	for p.curTokenIs(lexer.ABSTRACT) || p.curTokenIs(lexer.FINAL) || p.curTokenIs(lexer.READONLY) {
		mods |= modifierKeywords[p.curToken.Type]
		p.nextToken()
	}

	var kind ast.ClassKind
	switch p.curToken.Type {
	case lexer.INTERFACE:
		kind = ast.ClassKindInterface
	case lexer.TRAIT:
		kind = ast.ClassKindTrait
	case lexer.ENUM:
		kind = ast.ClassKindEnum
	default:
		kind = ast.ClassKindClass
	}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.intern(p.curToken.Literal)

	// Enum backing type, `enum Suit: string { ... }`; not modeled as a
	// first-class field since only enums carry it, so it is parsed and
	// discarded rather than threaded through ClassDecl's shared shape.
	if kind == ast.ClassKindEnum && p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		p.parseType()
	}

	var extends, implements []ast.Path
	if p.peekTokenIs(lexer.EXTENDS) {
		p.nextToken()
		p.nextToken()
		extends = p.parsePathTypeList(lexer.COMMA)
	}
	if p.peekTokenIs(lexer.IMPLEMENTS) {
		p.nextToken()
		p.nextToken()
		implements = p.parsePathTypeList(lexer.COMMA)
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken()

	var members []ast.Member
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		before := len(p.errors)
		member := p.parseClassMember()
		if member != nil {
			members = append(members, member)
		}
		if len(p.errors) > before && member == nil {
			p.recover()
		}
		p.nextToken()
	}

	decl := &ast.ClassDecl{
		Kind:       kind,
		Modifiers:  mods,
		Name:       name,
		Extends:    extends,
		Implements: implements,
		Members:    members,
		Sp:         ast.Cover(start, p.curSpan()),
	}
	return &ast.DeclStmt{Decl: decl, Sp: decl.Sp}
}

// parseClassMember parses one member of a class/interface/trait/enum body:
// a trait-use clause, an enum case, a class constant, a property, or a
// method. Entry: curToken is the first token of the member (a modifier
// keyword, "use", "case", "const", or a property type/name). Exit: curToken
// is the last token the member consumed.
func (p *Parser) parseClassMember() ast.Member {
	if p.curTokenIs(lexer.USE) {
		return p.parseTraitUse()
	}
	if p.curTokenIs(lexer.CASE) {
		return p.parseEnumCase()
	}

	mods := p.parseModifiers()

	if p.curTokenIs(lexer.CONST) {
		return p.parseClassConstDecl(mods)
	}
	if p.curTokenIs(lexer.FUNCTION) {
		if m := p.parseMethodDecl(mods); m != nil {
			return m
		}
		return nil
	}
	return p.parsePropertyDecl(mods)
}

func (p *Parser) parseTraitUse() *ast.TraitUse {
	start := p.curSpan()
	p.nextToken()
	traits := p.parsePathTypeList(lexer.COMMA)

	var adaptations []ast.TraitUseAdaptation
	if p.peekTokenIs(lexer.LBRACE) {
		p.nextToken()
		p.nextToken()
		for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
			adaptations = append(adaptations, p.parseTraitAdaptation())
			p.nextToken()
		}
	} else if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return &ast.TraitUse{Traits: traits, Adaptations: adaptations, Sp: ast.Cover(start, p.curSpan())}
}

func (p *Parser) parseTraitAdaptation() ast.TraitUseAdaptation {
	var adapt ast.TraitUseAdaptation

	first := p.parsePathType()
	if p.peekTokenIs(lexer.PAAMAYIM_NEKUDOTAYIM) {
		p.nextToken()
		p.nextToken()
		adapt.Trait = &first
		adapt.Method = p.intern(p.curToken.Literal)
	} else {
		adapt.Method = first.Name
	}

	if p.peekTokenIs(lexer.INSTEADOF) {
		p.nextToken()
		p.nextToken()
		adapt.InsteadOf = p.parsePathTypeList(lexer.COMMA)
	} else if p.peekTokenIs(lexer.AS) {
		p.nextToken()
		if bit, ok := modifierKeywords[p.peekToken.Type]; ok && bit&visibilityMods != 0 {
			p.nextToken()
			adapt.AliasVis = bit
		}
		if p.peekTokenIs(lexer.IDENT) {
			p.nextToken()
			adapt.AliasName = p.intern(p.curToken.Literal)
		}
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return adapt
}

// parseEnumCase lowers `case NAME [= value];` to a class constant entry:
// enum cases have no dedicated AST node, and a name bound to an optional
// value is exactly a constant's shape.
func (p *Parser) parseEnumCase() *ast.ClassConstDecl {
	start := p.curSpan()
	p.nextToken()
	name := p.intern(p.curToken.Literal)
	var value ast.Expr
	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		value = p.parseExpression(ASSIGNMENT - 1)
	}
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.ClassConstDecl{Items: []ast.ClassConstItem{{Name: name, Value: value}}, Sp: sp}
}

func (p *Parser) parseClassConstDecl(mods ast.Modifiers) *ast.ClassConstDecl {
	start := p.curSpan()
	p.nextToken()
	// An optional type hint can precede the constant name list (PHP 8.3);
	// distinguished from the name itself by a following IDENT/VARIABLE-less
	// second token, so only consume it when curToken itself is not already
	// positioned on the constant name followed by "=".
	if p.startsType(p.curToken.Type) && !p.peekTokenIs(lexer.ASSIGN) {
		p.parseType()
		p.nextToken()
	}

	items := []ast.ClassConstItem{p.parseClassConstItem()}
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		items = append(items, p.parseClassConstItem())
	}
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.ClassConstDecl{Modifiers: mods, Items: items, Sp: sp}
}

func (p *Parser) parseClassConstItem() ast.ClassConstItem {
	name := p.intern(p.curToken.Literal)
	p.expectPeek(lexer.ASSIGN)
	p.nextToken()
	value := p.parseExpression(ASSIGNMENT - 1)
	return ast.ClassConstItem{Name: name, Value: value}
}

func (p *Parser) parseMethodDecl(mods ast.Modifiers) *ast.MethodDecl {
	start := p.curSpan()
	byRef := false
	if p.peekTokenIs(lexer.BITWISE_AND) {
		p.nextToken()
		byRef = true
	}
	p.nextToken() // method name (IDENT, or a keyword used as a method name)
	name := p.intern(p.curToken.Literal)

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

	var body *ast.BlockStmt
	if p.peekTokenIs(lexer.LBRACE) {
		p.nextToken()
		body = p.parseBlockStmt()
	} else if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken() // abstract/interface method, no body
	}

	return &ast.MethodDecl{
		Modifiers:  mods,
		Name:       name,
		ByRef:      byRef,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Sp:         ast.Cover(start, p.curSpan()),
	}
}

func (p *Parser) parsePropertyDecl(mods ast.Modifiers) *ast.PropertyDecl {
	start := p.curSpan()
	var ty *ast.Ty
	if p.startsType(p.curToken.Type) {
		t := p.parseType()
		ty = &t
		p.nextToken()
	}

	items := []ast.PropertyItem{p.parsePropertyItem()}
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		items = append(items, p.parsePropertyItem())
	}
	sp := ast.Cover(start, p.curSpan())
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		sp = ast.Cover(sp, p.curSpan())
	}
	return &ast.PropertyDecl{Modifiers: mods, Type: ty, Items: items, Sp: sp}
}

func (p *Parser) parsePropertyItem() ast.PropertyItem {
	name := p.internVarName()
	var def ast.Expr
	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		def = p.parseExpression(ASSIGNMENT - 1)
	}
	return ast.PropertyItem{Name: name, Default: def}
}
