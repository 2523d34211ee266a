package cmd

import (
	"fmt"
	"io"

	"github.com/timglabisch/pico-php-parser/pkg/ast"
	"github.com/timglabisch/pico-php-parser/pkg/intern"
)

// dumper pretty-prints an AST for --dump-ast, resolving interned handles
// back to their source text as it walks.
type dumper struct {
	in *intern.Interner
	w  io.Writer
}

func (d *dumper) name(h intern.Handle) string {
	if h.IsZero() {
		return ""
	}
	return d.in.Lookup(h)
}

func (d *dumper) path(p ast.Path) string {
	if p.IsQualified() {
		return d.name(p.Namespace) + "\\" + d.name(p.Name)
	}
	return d.name(p.Name)
}

func pad(indent int) string {
	s := ""
	for i := 0; i < indent; i++ {
		s += "  "
	}
	return s
}

// dump prints node and recurses into its children, mirroring the shape of a
// classic indented AST printer: one line of self-description per node,
// indent increasing by one level per nesting.
func (d *dumper) dump(node any, indent int) {
	ind := pad(indent)

	switch n := node.(type) {
	case *ast.TextItem:
		fmt.Fprintf(d.w, "%sTextItem %q\n", ind, d.name(n.Value))
	case *ast.CodeItem:
		fmt.Fprintf(d.w, "%sCodeItem\n", ind)
		for _, s := range n.Stmts {
			d.dump(s, indent+1)
		}

	// Statements
	case *ast.BlockStmt:
		fmt.Fprintf(d.w, "%sBlockStmt (%d stmts)\n", ind, len(n.Stmts))
		for _, s := range n.Stmts {
			d.dump(s, indent+1)
		}
	case *ast.NamespaceStmt:
		name := "<global>"
		if n.Name != nil {
			name = d.path(*n.Name)
		}
		fmt.Fprintf(d.w, "%sNamespaceStmt %s\n", ind, name)
		for _, s := range n.Body {
			d.dump(s, indent+1)
		}
	case *ast.UseStmt:
		fmt.Fprintf(d.w, "%sUseStmt %s as %s\n", ind, d.path(n.Path), d.name(n.Alias))
	case *ast.DeclStmt:
		fmt.Fprintf(d.w, "%sDeclStmt\n", ind)
		d.dump(n.Decl, indent+1)
	case *ast.ExprStmt:
		fmt.Fprintf(d.w, "%sExprStmt\n", ind)
		d.dump(n.Value, indent+1)
	case *ast.EchoStmt:
		fmt.Fprintf(d.w, "%sEchoStmt (%d values)\n", ind, len(n.Values))
		for _, v := range n.Values {
			d.dump(v, indent+1)
		}
	case *ast.ReturnStmt:
		fmt.Fprintf(d.w, "%sReturnStmt\n", ind)
		if n.Value != nil {
			d.dump(n.Value, indent+1)
		}
	case *ast.BreakStmt:
		fmt.Fprintf(d.w, "%sBreakStmt %d\n", ind, n.Levels)
	case *ast.ContinueStmt:
		fmt.Fprintf(d.w, "%sContinueStmt %d\n", ind, n.Levels)
	case *ast.UnsetStmt:
		fmt.Fprintf(d.w, "%sUnsetStmt (%d targets)\n", ind, len(n.Targets))
		for _, t := range n.Targets {
			d.dump(t, indent+1)
		}
	case *ast.GlobalStmt:
		fmt.Fprintf(d.w, "%sGlobalStmt", ind)
		for _, h := range n.Names {
			fmt.Fprintf(d.w, " $%s", d.name(h))
		}
		fmt.Fprintln(d.w)
	case *ast.StaticStmt:
		fmt.Fprintf(d.w, "%sStaticStmt (%d vars)\n", ind, len(n.Vars))
		for _, v := range n.Vars {
			fmt.Fprintf(d.w, "%s  $%s\n", ind, d.name(v.Name))
			if v.Default != nil {
				d.dump(v.Default, indent+2)
			}
		}
	case *ast.IfStmt:
		fmt.Fprintf(d.w, "%sIfStmt\n", ind)
		fmt.Fprintf(d.w, "%s  Cond:\n", ind)
		d.dump(n.Cond, indent+2)
		fmt.Fprintf(d.w, "%s  Then:\n", ind)
		d.dump(n.Then, indent+2)
		for _, ei := range n.ElseIfs {
			fmt.Fprintf(d.w, "%s  ElseIf:\n", ind)
			d.dump(ei.Cond, indent+2)
			d.dump(ei.Then, indent+2)
		}
		if n.Else != nil {
			fmt.Fprintf(d.w, "%s  Else:\n", ind)
			d.dump(n.Else, indent+2)
		}
	case *ast.WhileStmt:
		fmt.Fprintf(d.w, "%sWhileStmt\n", ind)
		d.dump(n.Cond, indent+1)
		d.dump(n.Body, indent+1)
	case *ast.DoWhileStmt:
		fmt.Fprintf(d.w, "%sDoWhileStmt\n", ind)
		d.dump(n.Body, indent+1)
		d.dump(n.Cond, indent+1)
	case *ast.ForStmt:
		fmt.Fprintf(d.w, "%sForStmt\n", ind)
		for _, e := range n.Init {
			d.dump(e, indent+1)
		}
		for _, e := range n.Cond {
			d.dump(e, indent+1)
		}
		for _, e := range n.Step {
			d.dump(e, indent+1)
		}
		d.dump(n.Body, indent+1)
	case *ast.ForEachStmt:
		fmt.Fprintf(d.w, "%sForEachStmt (byref=%v)\n", ind, n.ByRef)
		d.dump(n.Iter, indent+1)
		if n.Key != nil {
			d.dump(n.Key, indent+1)
		}
		d.dump(n.Value, indent+1)
		d.dump(n.Body, indent+1)
	case *ast.SwitchStmt:
		fmt.Fprintf(d.w, "%sSwitchStmt (%d cases)\n", ind, len(n.Cases))
		d.dump(n.Subject, indent+1)
		for _, c := range n.Cases {
			for _, cond := range c.Conds {
				fmt.Fprintf(d.w, "%s  case:\n", ind)
				d.dump(cond, indent+2)
			}
			if c.IsDefault {
				fmt.Fprintf(d.w, "%s  default:\n", ind)
			}
			for _, s := range c.Body {
				d.dump(s, indent+2)
			}
		}
	case *ast.TryStmt:
		fmt.Fprintf(d.w, "%sTryStmt\n", ind)
		d.dump(n.Body, indent+1)
		for _, c := range n.Catches {
			fmt.Fprintf(d.w, "%s  catch", ind)
			for i, t := range c.Types {
				if i > 0 {
					fmt.Fprint(d.w, "|")
				}
				fmt.Fprint(d.w, d.path(t))
			}
			fmt.Fprintf(d.w, " $%s\n", d.name(c.Varname))
			d.dump(c.Body, indent+2)
		}
		if n.Finally != nil {
			fmt.Fprintf(d.w, "%s  finally:\n", ind)
			d.dump(n.Finally, indent+2)
		}
	case *ast.ThrowStmt:
		fmt.Fprintf(d.w, "%sThrowStmt\n", ind)
		d.dump(n.Value, indent+1)

	// Declarations
	case *ast.FunctionDecl:
		fmt.Fprintf(d.w, "%sFunctionDecl %s(%d params) byref=%v\n", ind, d.name(n.Name), len(n.Params), n.ByRef)
		d.dumpParams(n.Params, indent+1)
		if n.Body != nil {
			d.dump(n.Body, indent+1)
		}
	case *ast.TraitUse:
		fmt.Fprintf(d.w, "%sTraitUse", ind)
		for i, t := range n.Traits {
			if i > 0 {
				fmt.Fprint(d.w, ",")
			}
			fmt.Fprint(d.w, " "+d.path(t))
		}
		fmt.Fprintln(d.w)
	case *ast.PropertyDecl:
		fmt.Fprintf(d.w, "%sPropertyDecl mods=%s\n", ind, modString(n.Modifiers))
		for _, it := range n.Items {
			fmt.Fprintf(d.w, "%s  $%s\n", ind, d.name(it.Name))
			if it.Default != nil {
				d.dump(it.Default, indent+2)
			}
		}
	case *ast.MethodDecl:
		fmt.Fprintf(d.w, "%sMethodDecl %s mods=%s byref=%v (%d params)\n", ind, d.name(n.Name), modString(n.Modifiers), n.ByRef, len(n.Params))
		d.dumpParams(n.Params, indent+1)
		if n.Body != nil {
			d.dump(n.Body, indent+1)
		}
	case *ast.ClassConstDecl:
		fmt.Fprintf(d.w, "%sClassConstDecl mods=%s\n", ind, modString(n.Modifiers))
		for _, it := range n.Items {
			fmt.Fprintf(d.w, "%s  %s\n", ind, d.name(it.Name))
			d.dump(it.Value, indent+2)
		}
	case *ast.ClassDecl:
		fmt.Fprintf(d.w, "%sClassDecl %s kind=%s mods=%s (%d members)\n", ind, d.name(n.Name), classKindString(n.Kind), modString(n.Modifiers), len(n.Members))
		for _, e := range n.Extends {
			fmt.Fprintf(d.w, "%s  extends %s\n", ind, d.path(e))
		}
		for _, i := range n.Implements {
			fmt.Fprintf(d.w, "%s  implements %s\n", ind, d.path(i))
		}
		for _, m := range n.Members {
			d.dump(m, indent+1)
		}

	// Expressions
	case *ast.PathExpr:
		fmt.Fprintf(d.w, "%sPathExpr %s\n", ind, d.path(n.Value))
	case *ast.VariableExpr:
		fmt.Fprintf(d.w, "%sVariableExpr $%s\n", ind, d.name(n.Name))
	case *ast.IntLiteral:
		fmt.Fprintf(d.w, "%sIntLiteral %d\n", ind, n.Value)
	case *ast.DoubleLiteral:
		fmt.Fprintf(d.w, "%sDoubleLiteral %g\n", ind, n.Value)
	case *ast.StringLiteral:
		fmt.Fprintf(d.w, "%sStringLiteral %q\n", ind, string(n.Raw))
	case *ast.BooleanLiteral:
		fmt.Fprintf(d.w, "%sBooleanLiteral %v\n", ind, n.Value)
	case *ast.NullLiteral:
		fmt.Fprintf(d.w, "%sNullLiteral\n", ind)
	case *ast.ArrayExpr:
		fmt.Fprintf(d.w, "%sArrayExpr (%d items)\n", ind, len(n.Items))
		for _, it := range n.Items {
			d.dumpArrayItem(it, indent+1)
		}
	case *ast.ReferenceExpr:
		fmt.Fprintf(d.w, "%sReferenceExpr\n", ind)
		d.dump(n.Value, indent+1)
	case *ast.CloneExpr:
		fmt.Fprintf(d.w, "%sCloneExpr\n", ind)
		d.dump(n.Value, indent+1)
	case *ast.IssetExpr:
		fmt.Fprintf(d.w, "%sIssetExpr (%d args)\n", ind, len(n.Args))
		for _, a := range n.Args {
			d.dump(a, indent+1)
		}
	case *ast.EmptyExpr:
		fmt.Fprintf(d.w, "%sEmptyExpr\n", ind)
		d.dump(n.Value, indent+1)
	case *ast.ExitExpr:
		fmt.Fprintf(d.w, "%sExitExpr\n", ind)
		if n.Value != nil {
			d.dump(n.Value, indent+1)
		}
	case *ast.IncludeExpr:
		fmt.Fprintf(d.w, "%sIncludeExpr kind=%d\n", ind, n.Kind)
		d.dump(n.Value, indent+1)
	case *ast.ArrayIndexExpr:
		fmt.Fprintf(d.w, "%sArrayIndexExpr (%d indices)\n", ind, len(n.Indices))
		d.dump(n.Base, indent+1)
		for _, idx := range n.Indices {
			if idx == nil {
				fmt.Fprintf(d.w, "%s  []\n", ind)
				continue
			}
			d.dump(idx, indent+1)
		}
	case *ast.PropertyAccessExpr:
		fmt.Fprintf(d.w, "%sPropertyAccessExpr (%d steps)\n", ind, len(n.Steps))
		d.dump(n.Base, indent+1)
		for _, st := range n.Steps {
			fmt.Fprintf(d.w, "%s  ->(nullsafe=%v)\n", ind, st.Nullsafe)
			d.dump(st.Name, indent+2)
		}
	case *ast.StaticAccessExpr:
		fmt.Fprintf(d.w, "%sStaticAccessExpr (%d members)\n", ind, len(n.Members))
		d.dump(n.Class, indent+1)
		for _, m := range n.Members {
			d.dump(m, indent+1)
		}
	case *ast.CallExpr:
		fmt.Fprintf(d.w, "%sCallExpr (%d args)\n", ind, len(n.Args))
		d.dump(n.Callee, indent+1)
		for _, a := range n.Args {
			d.dumpArg(a, indent+1)
		}
	case *ast.NewExpr:
		fmt.Fprintf(d.w, "%sNewExpr (%d args)\n", ind, len(n.Args))
		d.dump(n.Class, indent+1)
		for _, a := range n.Args {
			d.dumpArg(a, indent+1)
		}
		if n.Anonymous != nil {
			d.dump(n.Anonymous, indent+1)
		}
	case *ast.UnaryExpr:
		fmt.Fprintf(d.w, "%sUnaryExpr op=%s\n", ind, unaryOpString(n.Op))
		d.dump(n.Operand, indent+1)
	case *ast.BinaryExpr:
		fmt.Fprintf(d.w, "%sBinaryExpr op=%s\n", ind, opString(n.Op))
		d.dump(n.Left, indent+1)
		d.dump(n.Right, indent+1)
	case *ast.InstanceOfExpr:
		fmt.Fprintf(d.w, "%sInstanceOfExpr\n", ind)
		d.dump(n.Value, indent+1)
		d.dump(n.Class, indent+1)
	case *ast.CastExpr:
		fmt.Fprintf(d.w, "%sCastExpr\n", ind)
		d.dump(n.Value, indent+1)
	case *ast.FunctionExpr:
		kind := "closure"
		if n.ArrowBody != nil {
			kind = "arrow"
		}
		fmt.Fprintf(d.w, "%sFunctionExpr (%s, static=%v, %d params, %d uses)\n", ind, kind, n.Static, len(n.Params), len(n.Uses))
		d.dumpParams(n.Params, indent+1)
		for _, s := range n.Body {
			d.dump(s, indent+1)
		}
		if n.ArrowBody != nil {
			d.dump(n.ArrowBody, indent+1)
		}
	case *ast.AssignExpr:
		fmt.Fprintf(d.w, "%sAssignExpr byref=%v\n", ind, n.ByRef)
		d.dump(n.Target, indent+1)
		d.dump(n.Value, indent+1)
	case *ast.CompoundAssignExpr:
		fmt.Fprintf(d.w, "%sCompoundAssignExpr op=%s\n", ind, opString(n.Op))
		d.dump(n.Target, indent+1)
		d.dump(n.Value, indent+1)
	case *ast.ListExpr:
		fmt.Fprintf(d.w, "%sListExpr (%d items)\n", ind, len(n.Items))
		for _, it := range n.Items {
			d.dumpArrayItem(it, indent+1)
		}
	case *ast.TernaryExpr:
		fmt.Fprintf(d.w, "%sTernaryExpr\n", ind)
		d.dump(n.Cond, indent+1)
		if n.Then != nil {
			d.dump(n.Then, indent+1)
		}
		d.dump(n.Else, indent+1)
	case *ast.CoalesceExpr:
		fmt.Fprintf(d.w, "%sCoalesceExpr\n", ind)
		d.dump(n.Left, indent+1)
		d.dump(n.Right, indent+1)
	case *ast.MatchExpr:
		fmt.Fprintf(d.w, "%sMatchExpr (%d arms)\n", ind, len(n.Arms))
		d.dump(n.Subject, indent+1)
		for _, arm := range n.Arms {
			if arm.Conditions == nil {
				fmt.Fprintf(d.w, "%s  default =>\n", ind)
			} else {
				fmt.Fprintf(d.w, "%s  case:\n", ind)
				for _, c := range arm.Conditions {
					d.dump(c, indent+2)
				}
			}
			d.dump(arm.Body, indent+2)
		}
	case *ast.GroupedExpr:
		fmt.Fprintf(d.w, "%sGroupedExpr\n", ind)
		d.dump(n.Inner, indent+1)

	case ast.Arg:
		d.dumpArg(n, indent)
	case nil:
		fmt.Fprintf(d.w, "%s<nil>\n", ind)
	default:
		fmt.Fprintf(d.w, "%s%T: %v\n", ind, node, node)
	}
}

func (d *dumper) dumpParams(params []ast.Param, indent int) {
	ind := pad(indent)
	for _, p := range params {
		fmt.Fprintf(d.w, "%sParam $%s byref=%v variadic=%v promoted=%s\n", ind, d.name(p.Name), p.ByRef, p.Variadic, modString(p.Promoted))
		if p.Default != nil {
			d.dump(p.Default, indent+1)
		}
	}
}

func (d *dumper) dumpArg(a ast.Arg, indent int) {
	ind := pad(indent)
	fmt.Fprintf(d.w, "%sArg name=%s spread=%v\n", ind, d.name(a.Name), a.Spread)
	d.dump(a.Value, indent+1)
}

func (d *dumper) dumpArrayItem(it ast.ArrayItem, indent int) {
	ind := pad(indent)
	fmt.Fprintf(d.w, "%sArrayItem spread=%v byref=%v\n", ind, it.Spread, it.ByRef)
	if it.Key != nil {
		fmt.Fprintf(d.w, "%s  key:\n", ind)
		d.dump(it.Key, indent+2)
	}
	if it.Value != nil {
		d.dump(it.Value, indent+1)
	}
}

func modString(m ast.Modifiers) string {
	s := ""
	add := func(name string, has bool) {
		if has {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	add("public", m.Has(ast.ModPublic))
	add("protected", m.Has(ast.ModProtected))
	add("private", m.Has(ast.ModPrivate))
	add("static", m.Has(ast.ModStatic))
	add("abstract", m.Has(ast.ModAbstract))
	add("final", m.Has(ast.ModFinal))
	add("readonly", m.Has(ast.ModReadonly))
	if s == "" {
		return "none"
	}
	return s
}

var opNames = map[ast.Op]string{
	ast.OpConcat: ".", ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*",
	ast.OpDiv: "/", ast.OpMod: "%", ast.OpPow: "**",
	ast.OpLogicalAnd: "&&", ast.OpLogicalOr: "||", ast.OpAnd: "and", ast.OpOr: "or",
	ast.OpXor: "xor", ast.OpBitwiseAnd: "&", ast.OpBitwiseOr: "|", ast.OpBitwiseXor: "^",
	ast.OpShiftLeft: "<<", ast.OpShiftRight: ">>",
	ast.OpEq: "==", ast.OpNotEq: "!=", ast.OpIdentical: "===", ast.OpNotIdentical: "!==",
	ast.OpLt: "<", ast.OpGt: ">", ast.OpLe: "<=", ast.OpGe: ">=", ast.OpSpaceship: "<=>",
}

func opString(o ast.Op) string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

var unaryOpNames = map[ast.UnaryOp]string{
	ast.UnaryPlus: "+", ast.UnaryMinus: "-", ast.UnaryNot: "!", ast.UnaryBitwiseNot: "~",
	ast.UnaryPreInc: "++x", ast.UnaryPreDec: "--x", ast.UnaryPostInc: "x++", ast.UnaryPostDec: "x--",
	ast.UnarySuppress: "@",
}

func unaryOpString(o ast.UnaryOp) string {
	if s, ok := unaryOpNames[o]; ok {
		return s
	}
	return fmt.Sprintf("UnaryOp(%d)", int(o))
}

func classKindString(k ast.ClassKind) string {
	switch k {
	case ast.ClassKindInterface:
		return "interface"
	case ast.ClassKindTrait:
		return "trait"
	case ast.ClassKindEnum:
		return "enum"
	default:
		return "class"
	}
}
