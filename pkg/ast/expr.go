package ast

import "github.com/timglabisch/pico-php-parser/pkg/intern"

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// PathExpr references a constant, function name, or bare/qualified class
// name used as a value (e.g. FOO, Ns\Bar).
type PathExpr struct {
	Value Path
	Sp    Span
}

func (e *PathExpr) Span() Span { return e.Sp }
func (*PathExpr) exprNode()    {}

// VariableExpr is a "$name" reference.
type VariableExpr struct {
	Name intern.Handle
	Sp   Span
}

func (e *VariableExpr) Span() Span { return e.Sp }
func (*VariableExpr) exprNode()    {}

// IntLiteral is an integer literal; Value holds the parsed magnitude.
type IntLiteral struct {
	Value int64
	Sp    Span
}

func (e *IntLiteral) Span() Span { return e.Sp }
func (*IntLiteral) exprNode()    {}

// DoubleLiteral is a floating point literal.
type DoubleLiteral struct {
	Value float64
	Sp    Span
}

func (e *DoubleLiteral) Span() Span { return e.Sp }
func (*DoubleLiteral) exprNode()    {}

// StringLiteral is a quoted string literal. Raw carries the decoder output
// (escape sequences already resolved for double-quoted/heredoc forms, left
// verbatim for single-quoted/nowdoc); interpolation is intentionally left
// unexpanded.
type StringLiteral struct {
	Raw []byte
	Sp  Span
}

func (e *StringLiteral) Span() Span { return e.Sp }
func (*StringLiteral) exprNode()    {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Value bool
	Sp    Span
}

func (e *BooleanLiteral) Span() Span { return e.Sp }
func (*BooleanLiteral) exprNode()    {}

// NullLiteral is `null`.
type NullLiteral struct {
	Sp Span
}

func (e *NullLiteral) Span() Span { return e.Sp }
func (*NullLiteral) exprNode()    {}

// ArrayItem is one element of an ArrayExpr; Key is nil for positional
// elements. Spread marks `...$x`, ByRef marks `&$x`.
type ArrayItem struct {
	Key    Expr
	Value  Expr
	Spread bool
	ByRef  bool
}

// ArrayExpr is an `array(...)` or `[...]` literal.
type ArrayExpr struct {
	Items []ArrayItem
	Sp    Span
}

func (e *ArrayExpr) Span() Span { return e.Sp }
func (*ArrayExpr) exprNode()    {}

// ReferenceExpr is `&$expr` appearing where a reference is taken.
type ReferenceExpr struct {
	Value Expr
	Sp    Span
}

func (e *ReferenceExpr) Span() Span { return e.Sp }
func (*ReferenceExpr) exprNode()    {}

// CloneExpr is `clone $expr`.
type CloneExpr struct {
	Value Expr
	Sp    Span
}

func (e *CloneExpr) Span() Span { return e.Sp }
func (*CloneExpr) exprNode()    {}

// IssetExpr is `isset($a, $b, ...)`.
type IssetExpr struct {
	Args []Expr
	Sp   Span
}

func (e *IssetExpr) Span() Span { return e.Sp }
func (*IssetExpr) exprNode()    {}

// EmptyExpr is `empty($expr)`.
type EmptyExpr struct {
	Value Expr
	Sp    Span
}

func (e *EmptyExpr) Span() Span { return e.Sp }
func (*EmptyExpr) exprNode()    {}

// ExitExpr is `exit` / `exit($expr)` / `die` / `die($expr)`.
type ExitExpr struct {
	Value Expr // nil if bare
	Sp    Span
}

func (e *ExitExpr) Span() Span { return e.Sp }
func (*ExitExpr) exprNode()    {}

// IncludeExpr is one of include/include_once/require/require_once.
type IncludeExpr struct {
	Kind  IncludeKind
	Value Expr
	Sp    Span
}

func (e *IncludeExpr) Span() Span { return e.Sp }
func (*IncludeExpr) exprNode()    {}

// ArrayIndexExpr is the collapsed postfix chain of `$base[k1][k2]...`.
// A single trailing `[]` (append position, only valid as an assignment
// target) is represented by a nil entry in Indices.
type ArrayIndexExpr struct {
	Base    Expr
	Indices []Expr
	Sp      Span
}

func (e *ArrayIndexExpr) Span() Span { return e.Sp }
func (*ArrayIndexExpr) exprNode()    {}

// PropertyStep is one `->name` or `->{expr}` step, with its own nullsafe
// flag (`?->`) since a single chain can mix safe and unsafe steps.
type PropertyStep struct {
	Name     Expr // Identifier-as-PathExpr for `->name`, arbitrary Expr for `->{expr}`
	Nullsafe bool
}

// PropertyAccessExpr is the collapsed chain of `$obj->a->b->c`.
type PropertyAccessExpr struct {
	Base  Expr
	Steps []PropertyStep
	Sp    Span
}

func (e *PropertyAccessExpr) Span() Span { return e.Sp }
func (*PropertyAccessExpr) exprNode()    {}

// StaticAccessExpr is the collapsed chain of `Class::$prop::$other` /
// `Class::CONST`. Class is the left-most class reference (a PathExpr, or an
// arbitrary Expr for `(expr)::member`); Members holds the `::name` steps.
type StaticAccessExpr struct {
	Class   Expr
	Members []Expr
	Sp      Span
}

func (e *StaticAccessExpr) Span() Span { return e.Sp }
func (*StaticAccessExpr) exprNode()    {}

// Arg is one call argument; Name is set for named arguments (`name: $v`).
type Arg struct {
	Name   intern.Handle
	Value  Expr
	Spread bool
}

// CallExpr is a function/closure call, `$callee(args)`. Callee may itself
// be a PropertyAccessExpr/StaticAccessExpr step to express `$o->m(...)` or
// `C::m(...)` — those forms are call expressions whose Callee is the
// access chain up to (but not including) the call.
type CallExpr struct {
	Callee Expr
	Args   []Arg
	Sp     Span
}

func (e *CallExpr) Span() Span { return e.Sp }
func (*CallExpr) exprNode()    {}

// NewExpr is `new Class(args)` / `new $expr(args)` / `new class(...) {...}`
// (anonymous class bodies are out of scope, Anonymous stays nil).
type NewExpr struct {
	Class     Expr
	Args      []Arg
	Anonymous *ClassDecl
	Sp        Span
}

func (e *NewExpr) Span() Span { return e.Sp }
func (*NewExpr) exprNode()    {}

// UnaryExpr covers prefix operators (!, -, +, ~, ++, --, @) and the
// postfix inc/dec forms (Op == UnaryPostInc/UnaryPostDec).
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	Sp      Span
}

func (e *UnaryExpr) Span() Span { return e.Sp }
func (*UnaryExpr) exprNode()    {}

// BinaryExpr is a left/right infix operator application.
type BinaryExpr struct {
	Op    Op
	Left  Expr
	Right Expr
	Sp    Span
}

func (e *BinaryExpr) Span() Span { return e.Sp }
func (*BinaryExpr) exprNode()    {}

// InstanceOfExpr is `$expr instanceof ClassOrExpr`.
type InstanceOfExpr struct {
	Value Expr
	Class Expr
	Sp    Span
}

func (e *InstanceOfExpr) Span() Span { return e.Sp }
func (*InstanceOfExpr) exprNode()    {}

// CastExpr is `(type) $expr`.
type CastExpr struct {
	Target Ty
	Value  Expr
	Sp     Span
}

func (e *CastExpr) Span() Span { return e.Sp }
func (*CastExpr) exprNode()    {}

// FunctionExpr is a closure literal, `function(...) use (...) {...}`, or
// an arrow function `fn(...) => expr` (ArrowBody set, Body nil).
type FunctionExpr struct {
	ByRef      bool
	Static     bool
	Params     []Param
	Uses       []ClosureUse
	ReturnType *Ty
	Body       []Stmt
	ArrowBody  Expr
	Sp         Span
}

func (e *FunctionExpr) Span() Span { return e.Sp }
func (*FunctionExpr) exprNode()    {}

// ClosureUse is one entry of a closure's `use (...)` list.
type ClosureUse struct {
	Name  intern.Handle
	ByRef bool
}

// AssignExpr is plain `$l = $r` (or `$l = &$r` when ByRef).
type AssignExpr struct {
	Target Expr
	Value  Expr
	ByRef  bool
	Sp     Span
}

func (e *AssignExpr) Span() Span { return e.Sp }
func (*AssignExpr) exprNode()    {}

// CompoundAssignExpr is `$l op= $r` (+=, -=, .=, ??=, ...).
type CompoundAssignExpr struct {
	Op     Op
	Target Expr
	Value  Expr
	Sp     Span
}

func (e *CompoundAssignExpr) Span() Span { return e.Sp }
func (*CompoundAssignExpr) exprNode()    {}

// ListExpr is a `list(...)` / `[...]` destructuring target appearing on
// the left of an assignment. Elements reuse ArrayItem so keyed and nested
// destructuring share the same shape as ArrayExpr.
type ListExpr struct {
	Items []ArrayItem
	Sp    Span
}

func (e *ListExpr) Span() Span { return e.Sp }
func (*ListExpr) exprNode()    {}

// TernaryExpr is `$cond ? $then : $else`, or the short form `$cond ?: $else`
// when Then is nil.
type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Sp   Span
}

func (e *TernaryExpr) Span() Span { return e.Sp }
func (*TernaryExpr) exprNode()    {}

// CoalesceExpr is `$a ?? $b`, kept distinct from TernaryExpr because it is
// right-associative and short-circuits on isset-style null, not falsiness.
type CoalesceExpr struct {
	Left  Expr
	Right Expr
	Sp    Span
}

func (e *CoalesceExpr) Span() Span { return e.Sp }
func (*CoalesceExpr) exprNode()    {}

// MatchArm is one `conditions => body` arm of a match expression; nil
// Conditions marks the `default` arm.
type MatchArm struct {
	Conditions []Expr
	Body       Expr
}

// MatchExpr is the PHP 8 `match($subject) { ... }` expression.
type MatchExpr struct {
	Subject Expr
	Arms    []MatchArm
	Sp      Span
}

func (e *MatchExpr) Span() Span { return e.Sp }
func (*MatchExpr) exprNode()    {}

// GroupedExpr preserves an explicit `(expr)` parenthesization so that
// span information distinguishes it from its unparenthesized child; it is
// otherwise transparent to evaluation.
type GroupedExpr struct {
	Inner Expr
	Sp    Span
}

func (e *GroupedExpr) Span() Span { return e.Sp }
func (*GroupedExpr) exprNode()    {}
