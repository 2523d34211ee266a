package parser

import (
	"testing"

	"github.com/timglabisch/pico-php-parser/pkg/ast"
)

func TestIntLiteral(t *testing.T) {
	expr, _ := parseSingleExpr(t, "5")
	lit, ok := expr.(*ast.IntLiteral)
	if !ok {
		t.Fatalf("expr is not *ast.IntLiteral, got %T", expr)
	}
	if lit.Value != 5 {
		t.Errorf("Value = %d, want 5", lit.Value)
	}
}

func TestDoubleLiteral(t *testing.T) {
	expr, _ := parseSingleExpr(t, "3.14")
	lit, ok := expr.(*ast.DoubleLiteral)
	if !ok {
		t.Fatalf("expr is not *ast.DoubleLiteral, got %T", expr)
	}
	if lit.Value != 3.14 {
		t.Errorf("Value = %v, want 3.14", lit.Value)
	}
}

func TestBooleanAndNullLiterals(t *testing.T) {
	expr, _ := parseSingleExpr(t, "true")
	b, ok := expr.(*ast.BooleanLiteral)
	if !ok {
		t.Fatalf("expr is not *ast.BooleanLiteral, got %T", expr)
	}
	if !b.Value {
		t.Errorf("Value = false, want true")
	}

	expr, _ = parseSingleExpr(t, "FALSE")
	b, ok = expr.(*ast.BooleanLiteral)
	if !ok {
		t.Fatalf("expr is not *ast.BooleanLiteral, got %T", expr)
	}
	if b.Value {
		t.Errorf("Value = true, want false")
	}

	expr, _ = parseSingleExpr(t, "null")
	if _, ok := expr.(*ast.NullLiteral); !ok {
		t.Fatalf("expr is not *ast.NullLiteral, got %T", expr)
	}
}

func TestStringLiteral(t *testing.T) {
	expr, _ := parseSingleExpr(t, `'hello'`)
	lit, ok := expr.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("expr is not *ast.StringLiteral, got %T", expr)
	}
	if string(lit.Raw) != "hello" {
		t.Errorf("Raw = %q, want %q", lit.Raw, "hello")
	}
}

func TestDoubleQuotedStringDecodesEscapes(t *testing.T) {
	expr, _ := parseSingleExpr(t, `"a\tb\n"`)
	lit, ok := expr.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("expr is not *ast.StringLiteral, got %T", expr)
	}
	if string(lit.Raw) != "a\tb\n" {
		t.Errorf("Raw = %q, want %q", lit.Raw, "a\tb\n")
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 must bind as 1 + (2 * 3).
	expr, _ := parseSingleExpr(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expr is not *ast.BinaryExpr, got %T", expr)
	}
	if bin.Op != ast.OpAdd {
		t.Fatalf("top operator = %v, want OpAdd", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("right operand is not *ast.BinaryExpr, got %T", bin.Right)
	}
	if rhs.Op != ast.OpMul {
		t.Fatalf("right operator = %v, want OpMul", rhs.Op)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2 must bind as 2 ** (3 ** 2).
	expr, _ := parseSingleExpr(t, "2 ** 3 ** 2")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expr is not *ast.BinaryExpr, got %T", expr)
	}
	if _, ok := bin.Left.(*ast.IntLiteral); !ok {
		t.Fatalf("left operand is not *ast.IntLiteral, got %T", bin.Left)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("right operand is not *ast.BinaryExpr (expected right-associativity), got %T", bin.Right)
	}
}

func TestTernaryIsRightAssociative(t *testing.T) {
	// $a ? $b : $c ? $d : $e must bind as $a ? $b : ($c ? $d : $e).
	expr, _ := parseSingleExpr(t, "$a ? $b : $c ? $d : $e")
	top, ok := expr.(*ast.TernaryExpr)
	if !ok {
		t.Fatalf("expr is not *ast.TernaryExpr, got %T", expr)
	}
	if _, ok := top.Else.(*ast.TernaryExpr); !ok {
		t.Fatalf("Else is not *ast.TernaryExpr, got %T", top.Else)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	expr, _ := parseSingleExpr(t, "$a = $b = 1")
	outer, ok := expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expr is not *ast.AssignExpr, got %T", expr)
	}
	if _, ok := outer.Value.(*ast.AssignExpr); !ok {
		t.Fatalf("Value is not *ast.AssignExpr, got %T", outer.Value)
	}
}

func TestPostfixChainCollapsesArrayIndex(t *testing.T) {
	expr, _ := parseSingleExpr(t, "$a[0][1]")
	idx, ok := expr.(*ast.ArrayIndexExpr)
	if !ok {
		t.Fatalf("expr is not *ast.ArrayIndexExpr, got %T", expr)
	}
	if len(idx.Indices) != 2 {
		t.Fatalf("Indices has %d entries, want 2", len(idx.Indices))
	}
	if _, ok := idx.Base.(*ast.VariableExpr); !ok {
		t.Fatalf("Base is not *ast.VariableExpr, got %T", idx.Base)
	}
}

func TestPostfixChainCollapsesPropertyAccess(t *testing.T) {
	expr, _ := parseSingleExpr(t, "$a->b->c")
	acc, ok := expr.(*ast.PropertyAccessExpr)
	if !ok {
		t.Fatalf("expr is not *ast.PropertyAccessExpr, got %T", expr)
	}
	if len(acc.Steps) != 2 {
		t.Fatalf("Steps has %d entries, want 2", len(acc.Steps))
	}
}

func TestNullsafePropertyAccessStepIsIndependent(t *testing.T) {
	expr, _ := parseSingleExpr(t, "$a?->b->c")
	acc, ok := expr.(*ast.PropertyAccessExpr)
	if !ok {
		t.Fatalf("expr is not *ast.PropertyAccessExpr, got %T", expr)
	}
	if len(acc.Steps) != 2 {
		t.Fatalf("Steps has %d entries, want 2", len(acc.Steps))
	}
	if !acc.Steps[0].Nullsafe {
		t.Errorf("first step should be nullsafe")
	}
	if acc.Steps[1].Nullsafe {
		t.Errorf("second step should not be nullsafe")
	}
}

func TestMethodCallIsCallOfPropertyAccess(t *testing.T) {
	expr, _ := parseSingleExpr(t, "$a->b()")
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expr is not *ast.CallExpr, got %T", expr)
	}
	if _, ok := call.Callee.(*ast.PropertyAccessExpr); !ok {
		t.Fatalf("Callee is not *ast.PropertyAccessExpr, got %T", call.Callee)
	}
}

func TestStaticAccessCollapsesChain(t *testing.T) {
	expr, _ := parseSingleExpr(t, "Foo::$bar::$baz")
	acc, ok := expr.(*ast.StaticAccessExpr)
	if !ok {
		t.Fatalf("expr is not *ast.StaticAccessExpr, got %T", expr)
	}
	if len(acc.Members) != 2 {
		t.Fatalf("Members has %d entries, want 2", len(acc.Members))
	}
}

func TestInstanceofBindsTighterThanLogicalAnd(t *testing.T) {
	expr, _ := parseSingleExpr(t, "$a instanceof B && $c")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expr is not *ast.BinaryExpr, got %T", expr)
	}
	if bin.Op != ast.OpLogicalAnd {
		t.Fatalf("top operator = %v, want OpLogicalAnd", bin.Op)
	}
	if _, ok := bin.Left.(*ast.InstanceOfExpr); !ok {
		t.Fatalf("Left is not *ast.InstanceOfExpr, got %T", bin.Left)
	}
}

func TestNewExprWithArgs(t *testing.T) {
	expr, _ := parseSingleExpr(t, "new Foo(1, 2)")
	n, ok := expr.(*ast.NewExpr)
	if !ok {
		t.Fatalf("expr is not *ast.NewExpr, got %T", expr)
	}
	if len(n.Args) != 2 {
		t.Fatalf("Args has %d entries, want 2", len(n.Args))
	}
}

func TestArrayLiteralWithKeysAndSpread(t *testing.T) {
	expr, _ := parseSingleExpr(t, "[1, 'k' => 2, ...$rest]")
	arr, ok := expr.(*ast.ArrayExpr)
	if !ok {
		t.Fatalf("expr is not *ast.ArrayExpr, got %T", expr)
	}
	if len(arr.Items) != 3 {
		t.Fatalf("Items has %d entries, want 3", len(arr.Items))
	}
	if arr.Items[0].Key != nil {
		t.Errorf("first item should be positional")
	}
	if arr.Items[1].Key == nil {
		t.Errorf("second item should be keyed")
	}
	if !arr.Items[2].Spread {
		t.Errorf("third item should be a spread")
	}
}

func TestMatchExpr(t *testing.T) {
	expr, _ := parseSingleExpr(t, "match ($x) { 1, 2 => 'a', default => 'b' }")
	m, ok := expr.(*ast.MatchExpr)
	if !ok {
		t.Fatalf("expr is not *ast.MatchExpr, got %T", expr)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("Arms has %d entries, want 2", len(m.Arms))
	}
	if len(m.Arms[0].Conditions) != 2 {
		t.Errorf("first arm should have 2 conditions, got %d", len(m.Arms[0].Conditions))
	}
	if m.Arms[1].Conditions != nil {
		t.Errorf("second arm should be the default arm")
	}
}

func TestArrowFunctionBody(t *testing.T) {
	expr, _ := parseSingleExpr(t, "fn($x) => $x + 1")
	fn, ok := expr.(*ast.FunctionExpr)
	if !ok {
		t.Fatalf("expr is not *ast.FunctionExpr, got %T", expr)
	}
	if fn.ArrowBody == nil {
		t.Fatalf("ArrowBody should be set for an arrow function")
	}
	if fn.Body != nil {
		t.Errorf("Body should be nil for an arrow function")
	}
}

func TestClosureWithUseClause(t *testing.T) {
	expr, _ := parseSingleExpr(t, "function($x) use (&$y) { return $x + $y; }")
	fn, ok := expr.(*ast.FunctionExpr)
	if !ok {
		t.Fatalf("expr is not *ast.FunctionExpr, got %T", expr)
	}
	if len(fn.Uses) != 1 {
		t.Fatalf("Uses has %d entries, want 1", len(fn.Uses))
	}
	if !fn.Uses[0].ByRef {
		t.Errorf("use entry should be by reference")
	}
}

func TestCoalesceIsRightAssociative(t *testing.T) {
	expr, _ := parseSingleExpr(t, "$a ?? $b ?? $c")
	top, ok := expr.(*ast.CoalesceExpr)
	if !ok {
		t.Fatalf("expr is not *ast.CoalesceExpr, got %T", expr)
	}
	if _, ok := top.Right.(*ast.CoalesceExpr); !ok {
		t.Fatalf("Right is not *ast.CoalesceExpr, got %T", top.Right)
	}
}

func TestCastExpr(t *testing.T) {
	expr, _ := parseSingleExpr(t, "(int) $a")
	cast, ok := expr.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expr is not *ast.CastExpr, got %T", expr)
	}
	if cast.Target.Kind != ast.TyInt {
		t.Errorf("Target.Kind = %v, want TyInt", cast.Target.Kind)
	}
}

func TestIssetWithMultipleArgs(t *testing.T) {
	expr, _ := parseSingleExpr(t, "isset($a, $b)")
	ie, ok := expr.(*ast.IssetExpr)
	if !ok {
		t.Fatalf("expr is not *ast.IssetExpr, got %T", expr)
	}
	if len(ie.Args) != 2 {
		t.Fatalf("Args has %d entries, want 2", len(ie.Args))
	}
}

func TestNamedArguments(t *testing.T) {
	expr, in := parseSingleExpr(t, "foo(name: 1, 2)")
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expr is not *ast.CallExpr, got %T", expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("Args has %d entries, want 2", len(call.Args))
	}
	if in.Lookup(call.Args[0].Name) != "name" {
		t.Errorf("first arg name = %q, want %q", in.Lookup(call.Args[0].Name), "name")
	}
	if !call.Args[1].Name.IsZero() {
		t.Errorf("second arg should be positional")
	}
}
