package parser

import (
	"testing"

	"github.com/timglabisch/pico-php-parser/pkg/ast"
)

func TestFunctionDeclWithReturnType(t *testing.T) {
	stmt, in := parseSingleStmt(t, "function add(int $a, int $b): int { return $a + $b; }")
	ds, ok := stmt.(*ast.DeclStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.DeclStmt, got %T", stmt)
	}
	fn, ok := ds.Decl.(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("decl is not *ast.FunctionDecl, got %T", ds.Decl)
	}
	if in.Lookup(fn.Name) != "add" {
		t.Errorf("Name = %q, want %q", in.Lookup(fn.Name), "add")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("Params has %d entries, want 2", len(fn.Params))
	}
	if fn.ReturnType == nil || fn.ReturnType.Kind != ast.TyInt {
		t.Fatalf("ReturnType = %#v, want TyInt", fn.ReturnType)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("Body has %d statements, want 1", len(fn.Body.Stmts))
	}
}

func TestByRefFunctionDecl(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "function &getRef() { return $x; }")
	ds := stmt.(*ast.DeclStmt)
	fn := ds.Decl.(*ast.FunctionDecl)
	if !fn.ByRef {
		t.Errorf("ByRef should be true")
	}
}

func TestClassWithExtendsImplements(t *testing.T) {
	stmt, in := parseSingleStmt(t, "class Foo extends Bar implements Baz, Qux {}")
	ds := stmt.(*ast.DeclStmt)
	cd := ds.Decl.(*ast.ClassDecl)
	if cd.Kind != ast.ClassKindClass {
		t.Errorf("Kind = %v, want ClassKindClass", cd.Kind)
	}
	if len(cd.Extends) != 1 || in.Lookup(cd.Extends[0].Name) != "Bar" {
		t.Fatalf("Extends = %#v, want [Bar]", cd.Extends)
	}
	if len(cd.Implements) != 2 {
		t.Fatalf("Implements has %d entries, want 2", len(cd.Implements))
	}
}

func TestAbstractClassModifier(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "abstract class Foo {}")
	cd := stmt.(*ast.DeclStmt).Decl.(*ast.ClassDecl)
	if !cd.Modifiers.Has(ast.ModAbstract) {
		t.Errorf("Modifiers should include ModAbstract")
	}
}

func TestInterfaceTraitEnumKinds(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "interface Foo {}")
	cd := stmt.(*ast.DeclStmt).Decl.(*ast.ClassDecl)
	if cd.Kind != ast.ClassKindInterface {
		t.Errorf("Kind = %v, want ClassKindInterface", cd.Kind)
	}

	stmt2, _ := parseSingleStmt(t, "trait Foo {}")
	td := stmt2.(*ast.DeclStmt).Decl.(*ast.ClassDecl)
	if td.Kind != ast.ClassKindTrait {
		t.Errorf("Kind = %v, want ClassKindTrait", td.Kind)
	}

	stmt3, _ := parseSingleStmt(t, "enum Suit: string { case Hearts = 'H'; case Spades = 'S'; }")
	ed := stmt3.(*ast.DeclStmt).Decl.(*ast.ClassDecl)
	if ed.Kind != ast.ClassKindEnum {
		t.Errorf("Kind = %v, want ClassKindEnum", ed.Kind)
	}
	if len(ed.Members) != 2 {
		t.Fatalf("Members has %d entries, want 2", len(ed.Members))
	}
	if _, ok := ed.Members[0].(*ast.ClassConstDecl); !ok {
		t.Fatalf("enum case should lower to *ast.ClassConstDecl, got %T", ed.Members[0])
	}
}

func TestConstructorPromotedProperty(t *testing.T) {
	stmt, _ := parseSingleStmt(t, `
		class Point {
			public function __construct(
				public readonly int $x,
				private int $y = 0,
			) {}
		}
	`)
	cd := stmt.(*ast.DeclStmt).Decl.(*ast.ClassDecl)
	ctor, ok := cd.Members[0].(*ast.MethodDecl)
	if !ok {
		t.Fatalf("member is not *ast.MethodDecl, got %T", cd.Members[0])
	}
	if len(ctor.Params) != 2 {
		t.Fatalf("Params has %d entries, want 2", len(ctor.Params))
	}
	if !ctor.Params[0].Promoted.Has(ast.ModPublic) || !ctor.Params[0].Promoted.Has(ast.ModReadonly) {
		t.Errorf("Params[0].Promoted = %v, want public|readonly", ctor.Params[0].Promoted)
	}
	if !ctor.Params[1].Promoted.Has(ast.ModPrivate) {
		t.Errorf("Params[1].Promoted = %v, want private", ctor.Params[1].Promoted)
	}
}

func TestPropertyDeclWithTypeAndDefault(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "class Foo { public ?int $x = null; }")
	cd := stmt.(*ast.DeclStmt).Decl.(*ast.ClassDecl)
	prop, ok := cd.Members[0].(*ast.PropertyDecl)
	if !ok {
		t.Fatalf("member is not *ast.PropertyDecl, got %T", cd.Members[0])
	}
	if prop.Type == nil || !prop.Type.Nullable {
		t.Fatalf("Type should be a nullable hint")
	}
	if prop.Items[0].Default == nil {
		t.Fatalf("default value should be set")
	}
}

func TestClassConstDecl(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "class Foo { const BAR = 1, BAZ = 2; }")
	cd := stmt.(*ast.DeclStmt).Decl.(*ast.ClassDecl)
	cc, ok := cd.Members[0].(*ast.ClassConstDecl)
	if !ok {
		t.Fatalf("member is not *ast.ClassConstDecl, got %T", cd.Members[0])
	}
	if len(cc.Items) != 2 {
		t.Fatalf("Items has %d entries, want 2", len(cc.Items))
	}
}

func TestTraitUseWithAdaptations(t *testing.T) {
	stmt, _ := parseSingleStmt(t, `
		class Foo {
			use A, B {
				A::hello insteadof B;
				B::hello as protected greet;
			}
		}
	`)
	cd := stmt.(*ast.DeclStmt).Decl.(*ast.ClassDecl)
	tu, ok := cd.Members[0].(*ast.TraitUse)
	if !ok {
		t.Fatalf("member is not *ast.TraitUse, got %T", cd.Members[0])
	}
	if len(tu.Traits) != 2 {
		t.Fatalf("Traits has %d entries, want 2", len(tu.Traits))
	}
	if len(tu.Adaptations) != 2 {
		t.Fatalf("Adaptations has %d entries, want 2", len(tu.Adaptations))
	}
	if len(tu.Adaptations[0].InsteadOf) != 1 {
		t.Errorf("first adaptation should carry an insteadof list")
	}
	if tu.Adaptations[1].AliasVis != ast.ModProtected {
		t.Errorf("second adaptation AliasVis = %v, want ModProtected", tu.Adaptations[1].AliasVis)
	}
}

func TestAbstractMethodHasNoBody(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "abstract class Foo { abstract public function bar(): void; }")
	cd := stmt.(*ast.DeclStmt).Decl.(*ast.ClassDecl)
	m, ok := cd.Members[0].(*ast.MethodDecl)
	if !ok {
		t.Fatalf("member is not *ast.MethodDecl, got %T", cd.Members[0])
	}
	if m.Body != nil {
		t.Errorf("Body should be nil for an abstract method")
	}
	if !m.Modifiers.Has(ast.ModAbstract) {
		t.Errorf("Modifiers should include ModAbstract")
	}
}
