package ast

import "github.com/timglabisch/pico-php-parser/pkg/intern"

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// BlockStmt is a `{ ... }` statement list.
type BlockStmt struct {
	Stmts []Stmt
	Sp    Span
}

func (s *BlockStmt) Span() Span { return s.Sp }
func (*BlockStmt) stmtNode()    {}

// NamespaceStmt is `namespace Foo\Bar;` or `namespace Foo\Bar { ... }`.
type NamespaceStmt struct {
	Name *Path // nil for the global namespace
	Body []Stmt
	Sp   Span
}

func (s *NamespaceStmt) Span() Span { return s.Sp }
func (*NamespaceStmt) stmtNode()    {}

// UseStmt is a `use Foo\Bar [as Baz];` import.
type UseStmt struct {
	Path  Path
	Alias intern.Handle // zero Handle if no alias
	Sp    Span
}

func (s *UseStmt) Span() Span { return s.Sp }
func (*UseStmt) stmtNode()    {}

// DeclStmt wraps a function/class/interface/trait declaration so it can
// appear anywhere a statement can.
type DeclStmt struct {
	Decl Decl
	Sp   Span
}

func (s *DeclStmt) Span() Span { return s.Sp }
func (*DeclStmt) stmtNode()    {}

// ExprStmt is a bare expression statement, `expr;`.
type ExprStmt struct {
	Value Expr
	Sp    Span
}

func (s *ExprStmt) Span() Span { return s.Sp }
func (*ExprStmt) stmtNode()    {}

// EchoStmt is `echo expr, expr, ...;`.
type EchoStmt struct {
	Values []Expr
	Sp     Span
}

func (s *EchoStmt) Span() Span { return s.Sp }
func (*EchoStmt) stmtNode()    {}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	Value Expr // nil for bare return
	Sp    Span
}

func (s *ReturnStmt) Span() Span { return s.Sp }
func (*ReturnStmt) stmtNode()    {}

// BreakStmt is `break [N];`.
type BreakStmt struct {
	Levels int
	Sp     Span
}

func (s *BreakStmt) Span() Span { return s.Sp }
func (*BreakStmt) stmtNode()    {}

// ContinueStmt is `continue [N];`.
type ContinueStmt struct {
	Levels int
	Sp     Span
}

func (s *ContinueStmt) Span() Span { return s.Sp }
func (*ContinueStmt) stmtNode()    {}

// UnsetStmt is `unset($a, $b, ...);`.
type UnsetStmt struct {
	Targets []Expr
	Sp      Span
}

func (s *UnsetStmt) Span() Span { return s.Sp }
func (*UnsetStmt) stmtNode()    {}

// GlobalStmt is `global $a, $b;`.
type GlobalStmt struct {
	Names []intern.Handle
	Sp    Span
}

func (s *GlobalStmt) Span() Span { return s.Sp }
func (*GlobalStmt) stmtNode()    {}

// StaticVar is one `$name [= default]` entry of a `static` statement.
type StaticVar struct {
	Name    intern.Handle
	Default Expr
}

// StaticStmt is `static $a = 1, $b;`.
type StaticStmt struct {
	Vars []StaticVar
	Sp   Span
}

func (s *StaticStmt) Span() Span { return s.Sp }
func (*StaticStmt) stmtNode()    {}

// ElseIf is one `elseif (cond) { ... }` clause of an IfStmt.
type ElseIf struct {
	Cond Expr
	Then *BlockStmt
}

// IfStmt is `if (cond) {...} elseif (...) {...} else {...}`, covering both
// brace and colon-alternative surface syntax (the parser desugars both to
// this one shape).
type IfStmt struct {
	Cond    Expr
	Then    *BlockStmt
	ElseIfs []ElseIf
	Else    *BlockStmt // nil if absent
	Sp      Span
}

func (s *IfStmt) Span() Span { return s.Sp }
func (*IfStmt) stmtNode()    {}

// WhileStmt is `while (cond) { ... }`.
type WhileStmt struct {
	Cond Expr
	Body *BlockStmt
	Sp   Span
}

func (s *WhileStmt) Span() Span { return s.Sp }
func (*WhileStmt) stmtNode()    {}

// DoWhileStmt is `do { ... } while (cond);`.
type DoWhileStmt struct {
	Body *BlockStmt
	Cond Expr
	Sp   Span
}

func (s *DoWhileStmt) Span() Span { return s.Sp }
func (*DoWhileStmt) stmtNode()    {}

// ForStmt is the C-style `for (init; cond; step) { ... }`; each clause
// may hold several comma-separated expressions.
type ForStmt struct {
	Init []Expr
	Cond []Expr
	Step []Expr
	Body *BlockStmt
	Sp   Span
}

func (s *ForStmt) Span() Span { return s.Sp }
func (*ForStmt) stmtNode()    {}

// ForEachStmt is `foreach ($iter as [$key =>] [&]$value) { ... }`.
type ForEachStmt struct {
	Iter     Expr
	Key      Expr // nil if no key
	Value    Expr
	ByRef    bool
	Body     *BlockStmt
	Sp       Span
}

func (s *ForEachStmt) Span() Span { return s.Sp }
func (*ForEachStmt) stmtNode()    {}

// SwitchCase is one or more `case expr:` labels (or a `default:` label)
// that fall through to a shared body. Consecutive labels with no
// statements between them fan in to a single SwitchCase: Conds holds one
// entry per label, in source order, and IsDefault marks a `default:`
// label (which may itself be one of several fanned-in labels).
type SwitchCase struct {
	Conds     []Expr
	IsDefault bool
	Body      []Stmt
}

// SwitchStmt is `switch (subject) { case ...: ... }`.
type SwitchStmt struct {
	Subject Expr
	Cases   []SwitchCase
	Sp      Span
}

func (s *SwitchStmt) Span() Span { return s.Sp }
func (*SwitchStmt) stmtNode()    {}

// CatchClause is one `catch (Type1|Type2 $var) { ... }` clause.
type CatchClause struct {
	Types   []Path
	Varname intern.Handle // zero Handle if the variable is omitted
	Body    *BlockStmt
}

// TryStmt is `try { ... } catch (...) { ... } finally { ... }`.
type TryStmt struct {
	Body    *BlockStmt
	Catches []CatchClause
	Finally *BlockStmt // nil if absent
	Sp      Span
}

func (s *TryStmt) Span() Span { return s.Sp }
func (*TryStmt) stmtNode()    {}

// ThrowStmt is `throw expr;`.
type ThrowStmt struct {
	Value Expr
	Sp    Span
}

func (s *ThrowStmt) Span() Span { return s.Sp }
func (*ThrowStmt) stmtNode()    {}
