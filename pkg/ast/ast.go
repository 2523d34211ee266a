// Package ast defines the Abstract Syntax Tree node types produced by
// pkg/parser. The tree is a plain sum-of-products: every node pairs a
// shape-bearing variant with a Span giving its byte range in the source
// buffer parent spans always contain their children's spans.
package ast

import "github.com/timglabisch/pico-php-parser/pkg/intern"

// Span is a byte-offset range [Lo, Hi) into the source buffer.
type Span struct {
	Lo, Hi int
}

// Cover returns the smallest Span containing both a and b.
func Cover(a, b Span) Span {
	lo, hi := a.Lo, a.Hi
	if b.Lo < lo {
		lo = b.Lo
	}
	if b.Hi > hi {
		hi = b.Hi
	}
	return Span{Lo: lo, Hi: hi}
}

// Node is implemented by every AST node.
type Node interface {
	Span() Span
}

// Item is a top-level element of a parsed source file: either a run of
// literal template text, or a parsed code region.
type Item interface {
	Node
	itemNode()
}

// TextItem is a literal text run copied verbatim between code regions.
type TextItem struct {
	Value intern.Handle
	Sp    Span
}

func (t *TextItem) Span() Span { return t.Sp }
func (*TextItem) itemNode()    {}

// CodeItem is a "<?php ... ?>" region, parsed into a statement list.
// Errors encountered while parsing this region are carried alongside it by
// the driver (see parser.Parse), not inside the Item itself, so a CodeItem
// always holds a well-formed (possibly partial) statement list.
type CodeItem struct {
	Stmts []Stmt
	Sp    Span
}

func (c *CodeItem) Span() Span { return c.Sp }
func (*CodeItem) itemNode()    {}

// Path is either a bare identifier or a namespace\class pair. Namespace is
// the zero Handle for bare identifiers.
type Path struct {
	Namespace intern.Handle
	Name      intern.Handle
}

// IsQualified reports whether the path carries a non-empty namespace.
func (p Path) IsQualified() bool {
	return !p.Namespace.IsZero()
}

// Op is the binary operator enumeration (§3).
type Op int

const (
	OpConcat Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpLogicalAnd
	OpLogicalOr
	OpAnd // the `and` keyword form, lower precedence than &&
	OpOr  // the `or` keyword form, lower precedence than ||
	OpXor
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpShiftLeft
	OpShiftRight
	OpEq
	OpNotEq
	OpIdentical
	OpNotIdentical
	OpLt
	OpGt
	OpLe
	OpGe
	OpSpaceship
)

// UnaryOp is the unary/postfix-incdec operator enumeration (§3).
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot
	UnaryBitwiseNot
	UnaryPreInc
	UnaryPreDec
	UnaryPostInc
	UnaryPostDec
	UnarySuppress // @expr
)

// TyKind enumerates the scalar/compound type markers usable in casts and
// parameter/return type hints.
type TyKind int

const (
	TyArray TyKind = iota
	TyCallable
	TyBool
	TyInt
	TyFloat
	TyString
	TyObjectPath // named class/interface, Path set
	TyVoid
	TyNever
	TyMixed
	TyIterable
	TySelf
	TyStatic
	TyParent
)

// Ty is a single type marker; Nullable records a leading "?". Union and
// Intersection (PHP 8) hold the member types of a composite type, whose
// Kind repeats the first member's Kind; for a plain Ty, both are nil.
type Ty struct {
	Kind         TyKind
	Object       *Path // set iff Kind == TyObjectPath
	Nullable     bool
	Union        []Ty
	Intersection []Ty
}

// Modifiers is a bitset over member/class modifiers.
type Modifiers uint8

const (
	ModPublic Modifiers = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModAbstract
	ModFinal
	ModReadonly
)

func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

// IncludeKind distinguishes the four include/require forms.
type IncludeKind int

const (
	IncludeInclude IncludeKind = iota
	IncludeIncludeOnce
	IncludeRequire
	IncludeRequireOnce
)

// ParseErrorKind enumerates the fatal-per-region error kinds (§4.6).
type ParseErrorKind int

const (
	ErrUnexpectedToken ParseErrorKind = iota
	ErrUnexpectedEOF
	ErrBadNumber
	ErrDuplicateModifier
	ErrModifierConflict
	ErrExpressionTooDeep
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrUnexpectedEOF:
		return "UnexpectedEof"
	case ErrBadNumber:
		return "BadNumber"
	case ErrDuplicateModifier:
		return "DuplicateModifier"
	case ErrModifierConflict:
		return "ModifierConflict"
	case ErrExpressionTooDeep:
		return "ExpressionTooDeep"
	default:
		return "Unknown"
	}
}

// ParseError is the single error type produced by the lexer and parser.
type ParseError struct {
	Kind     ParseErrorKind
	Sp       Span
	Expected string
	Found    string
}

func (e ParseError) Span() Span { return e.Sp }

func (e ParseError) Error() string {
	if e.Expected == "" {
		return e.Kind.String() + ": " + e.Found
	}
	return e.Kind.String() + ": expected " + e.Expected + ", found " + e.Found
}
