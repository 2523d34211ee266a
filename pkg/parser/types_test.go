package parser

import (
	"testing"

	"github.com/timglabisch/pico-php-parser/pkg/ast"
)

func paramsOf(t *testing.T, src string) []ast.Param {
	t.Helper()
	stmt, _ := parseSingleStmt(t, "function f"+src+" {}")
	fn, ok := stmt.(*ast.DeclStmt).Decl.(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("decl is not *ast.FunctionDecl")
	}
	return fn.Params
}

func TestNullableType(t *testing.T) {
	params := paramsOf(t, "(?int $x)")
	if params[0].Type.Kind != ast.TyInt {
		t.Fatalf("Kind = %v, want TyInt", params[0].Type.Kind)
	}
	if !params[0].Type.Nullable {
		t.Errorf("Nullable should be true")
	}
}

func TestUnionType(t *testing.T) {
	params := paramsOf(t, "(int|string $x)")
	ty := params[0].Type
	if len(ty.Union) != 2 {
		t.Fatalf("Union has %d entries, want 2", len(ty.Union))
	}
}

func TestIntersectionType(t *testing.T) {
	params := paramsOf(t, "(Countable&Traversable $x)")
	ty := params[0].Type
	if len(ty.Intersection) != 2 {
		t.Fatalf("Intersection has %d entries, want 2", len(ty.Intersection))
	}
}

func TestByRefNotMisreadAsIntersection(t *testing.T) {
	params := paramsOf(t, "(array &$x)")
	if !params[0].ByRef {
		t.Fatalf("ByRef should be true")
	}
	if params[0].Type.Intersection != nil {
		t.Fatalf("Type should not be parsed as an intersection type")
	}
}

func TestSelfParentStaticTypeKinds(t *testing.T) {
	params := paramsOf(t, "(self $a, parent $b, static $c)")
	if params[0].Type.Kind != ast.TySelf {
		t.Errorf("params[0].Type.Kind = %v, want TySelf", params[0].Type.Kind)
	}
	if params[1].Type.Kind != ast.TyParent {
		t.Errorf("params[1].Type.Kind = %v, want TyParent", params[1].Type.Kind)
	}
	if params[2].Type.Kind != ast.TyStatic {
		t.Errorf("params[2].Type.Kind = %v, want TyStatic", params[2].Type.Kind)
	}
}

func TestClassNameType(t *testing.T) {
	params := paramsOf(t, `(\App\Models\User $u)`)
	ty := params[0].Type
	if ty.Kind != ast.TyObjectPath {
		t.Fatalf("Kind = %v, want TyObjectPath", ty.Kind)
	}
	if ty.Object == nil || !ty.Object.IsQualified() {
		t.Fatalf("Object path should be qualified")
	}
}

func TestVariadicAndDefaultParam(t *testing.T) {
	params := paramsOf(t, "(int $a = 1, ...$rest)")
	if params[0].Default == nil {
		t.Fatalf("first param should have a default")
	}
	if !params[1].Variadic {
		t.Fatalf("second param should be variadic")
	}
}
