package parser

import (
	"testing"

	"github.com/timglabisch/pico-php-parser/pkg/ast"
)

func TestEchoStmtMultipleValues(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "echo 1, 2, 3;")
	echo, ok := stmt.(*ast.EchoStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.EchoStmt, got %T", stmt)
	}
	if len(echo.Values) != 3 {
		t.Fatalf("Values has %d entries, want 3", len(echo.Values))
	}
}

func TestIfElseIfElse(t *testing.T) {
	stmt, _ := parseSingleStmt(t, `
		if ($a) { echo 1; }
		elseif ($b) { echo 2; }
		else { echo 3; }
	`)
	ifStmt, ok := stmt.(*ast.IfStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.IfStmt, got %T", stmt)
	}
	if len(ifStmt.ElseIfs) != 1 {
		t.Fatalf("ElseIfs has %d entries, want 1", len(ifStmt.ElseIfs))
	}
	if ifStmt.Else == nil {
		t.Fatalf("Else should be set")
	}
}

func TestIfAlternativeSyntax(t *testing.T) {
	stmt, _ := parseSingleStmt(t, `
		if ($a):
			echo 1;
		elseif ($b):
			echo 2;
		else:
			echo 3;
		endif;
	`)
	ifStmt, ok := stmt.(*ast.IfStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.IfStmt, got %T", stmt)
	}
	if len(ifStmt.Then.Stmts) != 1 {
		t.Fatalf("Then has %d statements, want 1", len(ifStmt.Then.Stmts))
	}
	if len(ifStmt.ElseIfs) != 1 {
		t.Fatalf("ElseIfs has %d entries, want 1", len(ifStmt.ElseIfs))
	}
}

func TestWhileStmt(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "while ($i < 10) { $i++; }")
	w, ok := stmt.(*ast.WhileStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.WhileStmt, got %T", stmt)
	}
	if len(w.Body.Stmts) != 1 {
		t.Fatalf("Body has %d statements, want 1", len(w.Body.Stmts))
	}
}

func TestDoWhileStmt(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "do { $i++; } while ($i < 10);")
	if _, ok := stmt.(*ast.DoWhileStmt); !ok {
		t.Fatalf("stmt is not *ast.DoWhileStmt, got %T", stmt)
	}
}

func TestForStmtClauses(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "for ($i = 0; $i < 10; $i++) { echo $i; }")
	f, ok := stmt.(*ast.ForStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.ForStmt, got %T", stmt)
	}
	if len(f.Init) != 1 || len(f.Cond) != 1 || len(f.Step) != 1 {
		t.Fatalf("clause lengths = %d/%d/%d, want 1/1/1", len(f.Init), len(f.Cond), len(f.Step))
	}
}

func TestForEachWithKeyAndByRef(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "foreach ($items as $k => &$v) { echo $k; }")
	fe, ok := stmt.(*ast.ForEachStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.ForEachStmt, got %T", stmt)
	}
	if fe.Key == nil {
		t.Fatalf("Key should be set")
	}
	if !fe.ByRef {
		t.Errorf("ByRef should be true")
	}
}

func TestSwitchWithFallthroughCases(t *testing.T) {
	stmt, _ := parseSingleStmt(t, `
		switch ($x) {
			case 1:
			case 2:
				echo 'a';
				break;
			default:
				echo 'b';
		}
	`)
	sw, ok := stmt.(*ast.SwitchStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.SwitchStmt, got %T", stmt)
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("Cases has %d entries, want 2 (fall-through labels fan in to one case)", len(sw.Cases))
	}
	if len(sw.Cases[0].Conds) != 2 {
		t.Fatalf("first case should carry 2 fanned-in conditions, got %d", len(sw.Cases[0].Conds))
	}
	if sw.Cases[0].IsDefault {
		t.Errorf("first case should not be the default arm")
	}
	if len(sw.Cases[0].Body) == 0 {
		t.Errorf("fanned-in case should carry the shared body")
	}
	if !sw.Cases[1].IsDefault {
		t.Errorf("second case should be the default arm")
	}
	if len(sw.Cases[1].Conds) != 0 {
		t.Errorf("default case should carry no conditions")
	}
}

func TestTryCatchFinally(t *testing.T) {
	stmt, _ := parseSingleStmt(t, `
		try {
			foo();
		} catch (TypeError|ValueError $e) {
			bar();
		} finally {
			baz();
		}
	`)
	tryStmt, ok := stmt.(*ast.TryStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.TryStmt, got %T", stmt)
	}
	if len(tryStmt.Catches) != 1 {
		t.Fatalf("Catches has %d entries, want 1", len(tryStmt.Catches))
	}
	if len(tryStmt.Catches[0].Types) != 2 {
		t.Fatalf("Catches[0].Types has %d entries, want 2", len(tryStmt.Catches[0].Types))
	}
	if tryStmt.Finally == nil {
		t.Fatalf("Finally should be set")
	}
}

func TestUnsetAndGlobalStmt(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "unset($a, $b);")
	u, ok := stmt.(*ast.UnsetStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.UnsetStmt, got %T", stmt)
	}
	if len(u.Targets) != 2 {
		t.Fatalf("Targets has %d entries, want 2", len(u.Targets))
	}

	stmt2, _ := parseSingleStmt(t, "global $a, $b;")
	g, ok := stmt2.(*ast.GlobalStmt)
	if !ok {
		t.Fatalf("stmt2 is not *ast.GlobalStmt, got %T", stmt2)
	}
	if len(g.Names) != 2 {
		t.Fatalf("Names has %d entries, want 2", len(g.Names))
	}
}

func TestStaticStmtWithDefaults(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "static $a = 1, $b;")
	s, ok := stmt.(*ast.StaticStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.StaticStmt, got %T", stmt)
	}
	if len(s.Vars) != 2 {
		t.Fatalf("Vars has %d entries, want 2", len(s.Vars))
	}
	if s.Vars[0].Default == nil {
		t.Errorf("first var should have a default")
	}
	if s.Vars[1].Default != nil {
		t.Errorf("second var should not have a default")
	}
}

func TestNamespaceAndUseStmt(t *testing.T) {
	stmts, errs, in := parseCode(t, `
		namespace App\Models;
		use App\Services\Logger as Log;
	`)
	checkNoErrors(t, errs)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	ns, ok := stmts[0].(*ast.NamespaceStmt)
	if !ok {
		t.Fatalf("stmts[0] is not *ast.NamespaceStmt, got %T", stmts[0])
	}
	if in.Lookup(ns.Name.Name) != "Models" || in.Lookup(ns.Name.Namespace) != "App" {
		t.Errorf("namespace path = %s\\%s, want App\\Models", in.Lookup(ns.Name.Namespace), in.Lookup(ns.Name.Name))
	}
	use, ok := stmts[1].(*ast.UseStmt)
	if !ok {
		t.Fatalf("stmts[1] is not *ast.UseStmt, got %T", stmts[1])
	}
	if in.Lookup(use.Alias) != "Log" {
		t.Errorf("alias = %q, want %q", in.Lookup(use.Alias), "Log")
	}
}

func TestThrowStmt(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "throw new Exception('bad');")
	if _, ok := stmt.(*ast.ThrowStmt); !ok {
		t.Fatalf("stmt is not *ast.ThrowStmt, got %T", stmt)
	}
}

func TestBreakContinueWithLevels(t *testing.T) {
	stmt, _ := parseSingleStmt(t, "break 2;")
	b, ok := stmt.(*ast.BreakStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.BreakStmt, got %T", stmt)
	}
	if b.Levels != 2 {
		t.Errorf("Levels = %d, want 2", b.Levels)
	}
}
