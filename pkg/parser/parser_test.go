package parser

import (
	"testing"

	"github.com/timglabisch/pico-php-parser/pkg/ast"
	"github.com/timglabisch/pico-php-parser/pkg/intern"
)

// parseCode wraps src in a "<?php" tag, parses it, and returns the single
// code region's statement list alongside any accumulated errors.
func parseCode(t *testing.T, src string) ([]ast.Stmt, []ast.ParseError, *intern.Interner) {
	t.Helper()
	in := intern.New()
	items, errs := Parse([]byte("<?php "+src), in, Config{})
	var stmts []ast.Stmt
	for _, it := range items {
		if ci, ok := it.(*ast.CodeItem); ok {
			stmts = append(stmts, ci.Stmts...)
		}
	}
	return stmts, errs, in
}

func checkNoErrors(t *testing.T, errs []ast.ParseError) {
	t.Helper()
	if len(errs) == 0 {
		return
	}
	for _, e := range errs {
		t.Errorf("parse error: %s", e.Error())
	}
	t.FailNow()
}

func parseSingleStmt(t *testing.T, src string) (ast.Stmt, *intern.Interner) {
	t.Helper()
	stmts, errs, in := parseCode(t, src)
	checkNoErrors(t, errs)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	return stmts[0], in
}

func parseSingleExpr(t *testing.T, src string) (ast.Expr, *intern.Interner) {
	t.Helper()
	stmt, in := parseSingleStmt(t, src+";")
	exprStmt, ok := stmt.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement is not *ast.ExprStmt, got %T", stmt)
	}
	return exprStmt.Value, in
}

func TestParseEmptySource(t *testing.T) {
	items, errs := Parse([]byte(""), nil, Config{})
	checkNoErrors(t, errs)
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestParseTextAndCodeRegions(t *testing.T) {
	in := intern.New()
	items, errs := Parse([]byte("Hello <?php echo 1; ?> world"), in, Config{})
	checkNoErrors(t, errs)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if _, ok := items[0].(*ast.TextItem); !ok {
		t.Errorf("items[0] is not TextItem, got %T", items[0])
	}
	if _, ok := items[1].(*ast.CodeItem); !ok {
		t.Errorf("items[1] is not CodeItem, got %T", items[1])
	}
	if _, ok := items[2].(*ast.TextItem); !ok {
		t.Errorf("items[2] is not TextItem, got %T", items[2])
	}
}

func TestParseShortEchoDesugarsToEchoStmt(t *testing.T) {
	in := intern.New()
	items, errs := Parse([]byte("<?= 1 + 1 ?>"), in, Config{ShortEcho: true})
	checkNoErrors(t, errs)
	ci, ok := items[0].(*ast.CodeItem)
	if !ok {
		t.Fatalf("items[0] is not CodeItem, got %T", items[0])
	}
	if len(ci.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(ci.Stmts))
	}
	if _, ok := ci.Stmts[0].(*ast.EchoStmt); !ok {
		t.Fatalf("statement is not *ast.EchoStmt, got %T", ci.Stmts[0])
	}
}

func TestParseRecoversAfterSyntaxError(t *testing.T) {
	stmts, errs, _ := parseCode(t, "$a = ; echo 1;")
	if len(errs) == 0 {
		t.Fatalf("expected at least one error")
	}
	var sawEcho bool
	for _, s := range stmts {
		if _, ok := s.(*ast.EchoStmt); ok {
			sawEcho = true
		}
	}
	if !sawEcho {
		t.Fatalf("expected recovery to reach the echo statement, stmts=%#v", stmts)
	}
}

func TestExpressionTooDeepIsReported(t *testing.T) {
	src := ""
	for i := 0; i < 500; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < 500; i++ {
		src += ")"
	}
	in := intern.New()
	_, errs := Parse([]byte("<?php "+src+";"), in, Config{MaxDepth: 50})
	if len(errs) == 0 {
		t.Fatalf("expected a depth-limit error")
	}
	found := false
	for _, e := range errs {
		if e.Kind == ast.ErrExpressionTooDeep {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrExpressionTooDeep among errors, got %#v", errs)
	}
}
