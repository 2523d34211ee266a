package ast

import "github.com/timglabisch/pico-php-parser/pkg/intern"

// Decl is implemented by every top-level declaration kind (function,
// class, interface, trait).
type Decl interface {
	Node
	declNode()
}

// Param is one function/method parameter.
type Param struct {
	Name       intern.Handle
	Type       *Ty // nil if untyped
	Default    Expr
	ByRef      bool
	Variadic   bool
	// Promoted is non-zero when the parameter also declares a constructor
	// promoted property (PHP 8.0), e.g. `public readonly int $id`.
	Promoted Modifiers
}

// FunctionDecl is a named top-level or nested `function` declaration.
type FunctionDecl struct {
	Name       intern.Handle
	ByRef      bool
	Params     []Param
	ReturnType *Ty
	Body       *BlockStmt
	Sp         Span
}

func (d *FunctionDecl) Span() Span { return d.Sp }
func (*FunctionDecl) declNode()    {}

// TraitUseAdaptation is one `insteadof`/`as` adaptation rule inside a
// `use Trait { ... }` block.
type TraitUseAdaptation struct {
	Trait      *Path // nil if the method name alone disambiguates
	Method     intern.Handle
	InsteadOf  []Path
	AliasName  intern.Handle // zero Handle if no rename
	AliasVis   Modifiers     // 0 if visibility unchanged
}

// TraitUse is a `use Trait1, Trait2 { adaptations }` clause inside a class
// body.
type TraitUse struct {
	Traits      []Path
	Adaptations []TraitUseAdaptation
	Sp          Span
}

func (d *TraitUse) Span() Span { return d.Sp }
func (*TraitUse) declNode()    {}

// PropertyItem is one `$name [= default]` entry of a property declaration.
type PropertyItem struct {
	Name    intern.Handle
	Default Expr
}

// PropertyDecl is a class property declaration, `public ?int $x = 1;`.
type PropertyDecl struct {
	Modifiers Modifiers
	Type      *Ty
	Items     []PropertyItem
	Sp        Span
}

func (d *PropertyDecl) Span() Span { return d.Sp }
func (*PropertyDecl) declNode()    {}

// MethodDecl is a class/interface method. Body is nil for abstract and
// interface methods.
type MethodDecl struct {
	Modifiers  Modifiers
	Name       intern.Handle
	ByRef      bool
	Params     []Param
	ReturnType *Ty
	Body       *BlockStmt
	Sp         Span
}

func (d *MethodDecl) Span() Span { return d.Sp }
func (*MethodDecl) declNode()    {}

// ClassConstItem is one `NAME = value` entry of a class constant
// declaration.
type ClassConstItem struct {
	Name  intern.Handle
	Value Expr
}

// ClassConstDecl is `const NAME = value, ...;` inside a class body.
type ClassConstDecl struct {
	Modifiers Modifiers
	Items     []ClassConstItem
	Sp        Span
}

func (d *ClassConstDecl) Span() Span { return d.Sp }
func (*ClassConstDecl) declNode()    {}

// Member is any declaration that can appear inside a class/interface/trait
// body: TraitUse, PropertyDecl, MethodDecl, or ClassConstDecl.
type Member interface {
	Node
	memberNode()
}

func (*TraitUse) memberNode()       {}
func (*PropertyDecl) memberNode()   {}
func (*MethodDecl) memberNode()     {}
func (*ClassConstDecl) memberNode() {}

// ClassKind distinguishes class/interface/trait/enum declarations, which
// otherwise share the same member-list shape.
type ClassKind int

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindTrait
	ClassKindEnum
)

// ClassDecl is a class/interface/trait/enum declaration.
type ClassDecl struct {
	Kind       ClassKind
	Modifiers  Modifiers
	Name       intern.Handle
	Extends    []Path // single entry for class extends, multiple for interface extends
	Implements []Path
	Members    []Member
	Sp         Span
}

func (d *ClassDecl) Span() Span { return d.Sp }
func (*ClassDecl) declNode()    {}
