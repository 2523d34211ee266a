package ast

// Visitor is an interface for traversing the AST using the visitor pattern.
// Each Visit method receives a node and returns a boolean indicating whether
// to continue traversing child nodes (true) or skip them (false).
type Visitor interface {
	VisitTextItem(node *TextItem) bool
	VisitCodeItem(node *CodeItem) bool

	VisitBlockStmt(node *BlockStmt) bool
	VisitNamespaceStmt(node *NamespaceStmt) bool
	VisitUseStmt(node *UseStmt) bool
	VisitDeclStmt(node *DeclStmt) bool
	VisitExprStmt(node *ExprStmt) bool
	VisitEchoStmt(node *EchoStmt) bool
	VisitReturnStmt(node *ReturnStmt) bool
	VisitBreakStmt(node *BreakStmt) bool
	VisitContinueStmt(node *ContinueStmt) bool
	VisitUnsetStmt(node *UnsetStmt) bool
	VisitGlobalStmt(node *GlobalStmt) bool
	VisitStaticStmt(node *StaticStmt) bool
	VisitIfStmt(node *IfStmt) bool
	VisitWhileStmt(node *WhileStmt) bool
	VisitDoWhileStmt(node *DoWhileStmt) bool
	VisitForStmt(node *ForStmt) bool
	VisitForEachStmt(node *ForEachStmt) bool
	VisitSwitchStmt(node *SwitchStmt) bool
	VisitTryStmt(node *TryStmt) bool
	VisitThrowStmt(node *ThrowStmt) bool

	VisitFunctionDecl(node *FunctionDecl) bool
	VisitTraitUse(node *TraitUse) bool
	VisitPropertyDecl(node *PropertyDecl) bool
	VisitMethodDecl(node *MethodDecl) bool
	VisitClassConstDecl(node *ClassConstDecl) bool
	VisitClassDecl(node *ClassDecl) bool

	VisitPathExpr(node *PathExpr) bool
	VisitVariableExpr(node *VariableExpr) bool
	VisitIntLiteral(node *IntLiteral) bool
	VisitDoubleLiteral(node *DoubleLiteral) bool
	VisitStringLiteral(node *StringLiteral) bool
	VisitBooleanLiteral(node *BooleanLiteral) bool
	VisitNullLiteral(node *NullLiteral) bool
	VisitArrayExpr(node *ArrayExpr) bool
	VisitReferenceExpr(node *ReferenceExpr) bool
	VisitCloneExpr(node *CloneExpr) bool
	VisitIssetExpr(node *IssetExpr) bool
	VisitEmptyExpr(node *EmptyExpr) bool
	VisitExitExpr(node *ExitExpr) bool
	VisitIncludeExpr(node *IncludeExpr) bool
	VisitArrayIndexExpr(node *ArrayIndexExpr) bool
	VisitPropertyAccessExpr(node *PropertyAccessExpr) bool
	VisitStaticAccessExpr(node *StaticAccessExpr) bool
	VisitCallExpr(node *CallExpr) bool
	VisitNewExpr(node *NewExpr) bool
	VisitUnaryExpr(node *UnaryExpr) bool
	VisitBinaryExpr(node *BinaryExpr) bool
	VisitInstanceOfExpr(node *InstanceOfExpr) bool
	VisitCastExpr(node *CastExpr) bool
	VisitFunctionExpr(node *FunctionExpr) bool
	VisitAssignExpr(node *AssignExpr) bool
	VisitCompoundAssignExpr(node *CompoundAssignExpr) bool
	VisitListExpr(node *ListExpr) bool
	VisitTernaryExpr(node *TernaryExpr) bool
	VisitCoalesceExpr(node *CoalesceExpr) bool
	VisitMatchExpr(node *MatchExpr) bool
	VisitGroupedExpr(node *GroupedExpr) bool
}

// Walk traverses the AST starting from the given node using the visitor
// pattern. A nil node, or a nil *BlockStmt (e.g. an absent else-branch), is
// a no-op; nil pointers of other node types are not checked.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *TextItem:
		v.VisitTextItem(n)
	case *CodeItem:
		if v.VisitCodeItem(n) {
			for _, s := range n.Stmts {
				Walk(v, s)
			}
		}

	case *BlockStmt:
		if n == nil {
			return
		}
		if v.VisitBlockStmt(n) {
			for _, s := range n.Stmts {
				Walk(v, s)
			}
		}
	case *NamespaceStmt:
		if v.VisitNamespaceStmt(n) {
			for _, s := range n.Body {
				Walk(v, s)
			}
		}
	case *UseStmt:
		v.VisitUseStmt(n)
	case *DeclStmt:
		if v.VisitDeclStmt(n) {
			Walk(v, n.Decl)
		}
	case *ExprStmt:
		if v.VisitExprStmt(n) {
			Walk(v, n.Value)
		}
	case *EchoStmt:
		if v.VisitEchoStmt(n) {
			for _, e := range n.Values {
				Walk(v, e)
			}
		}
	case *ReturnStmt:
		if v.VisitReturnStmt(n) {
			if n.Value != nil {
				Walk(v, n.Value)
			}
		}
	case *BreakStmt:
		v.VisitBreakStmt(n)
	case *ContinueStmt:
		v.VisitContinueStmt(n)
	case *UnsetStmt:
		if v.VisitUnsetStmt(n) {
			for _, e := range n.Targets {
				Walk(v, e)
			}
		}
	case *GlobalStmt:
		v.VisitGlobalStmt(n)
	case *StaticStmt:
		if v.VisitStaticStmt(n) {
			for _, sv := range n.Vars {
				if sv.Default != nil {
					Walk(v, sv.Default)
				}
			}
		}
	case *IfStmt:
		if v.VisitIfStmt(n) {
			Walk(v, n.Cond)
			Walk(v, n.Then)
			for _, ei := range n.ElseIfs {
				Walk(v, ei.Cond)
				Walk(v, ei.Then)
			}
			if n.Else != nil {
				Walk(v, n.Else)
			}
		}
	case *WhileStmt:
		if v.VisitWhileStmt(n) {
			Walk(v, n.Cond)
			Walk(v, n.Body)
		}
	case *DoWhileStmt:
		if v.VisitDoWhileStmt(n) {
			Walk(v, n.Body)
			Walk(v, n.Cond)
		}
	case *ForStmt:
		if v.VisitForStmt(n) {
			for _, e := range n.Init {
				Walk(v, e)
			}
			for _, e := range n.Cond {
				Walk(v, e)
			}
			for _, e := range n.Step {
				Walk(v, e)
			}
			Walk(v, n.Body)
		}
	case *ForEachStmt:
		if v.VisitForEachStmt(n) {
			Walk(v, n.Iter)
			if n.Key != nil {
				Walk(v, n.Key)
			}
			Walk(v, n.Value)
			Walk(v, n.Body)
		}
	case *SwitchStmt:
		if v.VisitSwitchStmt(n) {
			Walk(v, n.Subject)
			for _, c := range n.Cases {
				for _, cond := range c.Conds {
					Walk(v, cond)
				}
				for _, s := range c.Body {
					Walk(v, s)
				}
			}
		}
	case *TryStmt:
		if v.VisitTryStmt(n) {
			Walk(v, n.Body)
			for _, c := range n.Catches {
				Walk(v, c.Body)
			}
			if n.Finally != nil {
				Walk(v, n.Finally)
			}
		}
	case *ThrowStmt:
		if v.VisitThrowStmt(n) {
			Walk(v, n.Value)
		}

	case *FunctionDecl:
		if v.VisitFunctionDecl(n) {
			for _, p := range n.Params {
				if p.Default != nil {
					Walk(v, p.Default)
				}
			}
			if n.Body != nil {
				Walk(v, n.Body)
			}
		}
	case *TraitUse:
		v.VisitTraitUse(n)
	case *PropertyDecl:
		if v.VisitPropertyDecl(n) {
			for _, it := range n.Items {
				if it.Default != nil {
					Walk(v, it.Default)
				}
			}
		}
	case *MethodDecl:
		if v.VisitMethodDecl(n) {
			for _, p := range n.Params {
				if p.Default != nil {
					Walk(v, p.Default)
				}
			}
			if n.Body != nil {
				Walk(v, n.Body)
			}
		}
	case *ClassConstDecl:
		if v.VisitClassConstDecl(n) {
			for _, it := range n.Items {
				Walk(v, it.Value)
			}
		}
	case *ClassDecl:
		if v.VisitClassDecl(n) {
			for _, m := range n.Members {
				Walk(v, m)
			}
		}

	case *PathExpr:
		v.VisitPathExpr(n)
	case *VariableExpr:
		v.VisitVariableExpr(n)
	case *IntLiteral:
		v.VisitIntLiteral(n)
	case *DoubleLiteral:
		v.VisitDoubleLiteral(n)
	case *StringLiteral:
		v.VisitStringLiteral(n)
	case *BooleanLiteral:
		v.VisitBooleanLiteral(n)
	case *NullLiteral:
		v.VisitNullLiteral(n)
	case *ArrayExpr:
		if v.VisitArrayExpr(n) {
			for _, it := range n.Items {
				if it.Key != nil {
					Walk(v, it.Key)
				}
				Walk(v, it.Value)
			}
		}
	case *ReferenceExpr:
		if v.VisitReferenceExpr(n) {
			Walk(v, n.Value)
		}
	case *CloneExpr:
		if v.VisitCloneExpr(n) {
			Walk(v, n.Value)
		}
	case *IssetExpr:
		if v.VisitIssetExpr(n) {
			for _, e := range n.Args {
				Walk(v, e)
			}
		}
	case *EmptyExpr:
		if v.VisitEmptyExpr(n) {
			Walk(v, n.Value)
		}
	case *ExitExpr:
		if v.VisitExitExpr(n) {
			if n.Value != nil {
				Walk(v, n.Value)
			}
		}
	case *IncludeExpr:
		if v.VisitIncludeExpr(n) {
			Walk(v, n.Value)
		}
	case *ArrayIndexExpr:
		if v.VisitArrayIndexExpr(n) {
			Walk(v, n.Base)
			for _, idx := range n.Indices {
				if idx != nil {
					Walk(v, idx)
				}
			}
		}
	case *PropertyAccessExpr:
		if v.VisitPropertyAccessExpr(n) {
			Walk(v, n.Base)
			for _, st := range n.Steps {
				Walk(v, st.Name)
			}
		}
	case *StaticAccessExpr:
		if v.VisitStaticAccessExpr(n) {
			Walk(v, n.Class)
			for _, m := range n.Members {
				Walk(v, m)
			}
		}
	case *CallExpr:
		if v.VisitCallExpr(n) {
			Walk(v, n.Callee)
			for _, a := range n.Args {
				Walk(v, a.Value)
			}
		}
	case *NewExpr:
		if v.VisitNewExpr(n) {
			Walk(v, n.Class)
			for _, a := range n.Args {
				Walk(v, a.Value)
			}
		}
	case *UnaryExpr:
		if v.VisitUnaryExpr(n) {
			Walk(v, n.Operand)
		}
	case *BinaryExpr:
		if v.VisitBinaryExpr(n) {
			Walk(v, n.Left)
			Walk(v, n.Right)
		}
	case *InstanceOfExpr:
		if v.VisitInstanceOfExpr(n) {
			Walk(v, n.Value)
			Walk(v, n.Class)
		}
	case *CastExpr:
		if v.VisitCastExpr(n) {
			Walk(v, n.Value)
		}
	case *FunctionExpr:
		if v.VisitFunctionExpr(n) {
			for _, p := range n.Params {
				if p.Default != nil {
					Walk(v, p.Default)
				}
			}
			for _, s := range n.Body {
				Walk(v, s)
			}
			if n.ArrowBody != nil {
				Walk(v, n.ArrowBody)
			}
		}
	case *AssignExpr:
		if v.VisitAssignExpr(n) {
			Walk(v, n.Target)
			Walk(v, n.Value)
		}
	case *CompoundAssignExpr:
		if v.VisitCompoundAssignExpr(n) {
			Walk(v, n.Target)
			Walk(v, n.Value)
		}
	case *ListExpr:
		if v.VisitListExpr(n) {
			for _, it := range n.Items {
				if it.Key != nil {
					Walk(v, it.Key)
				}
				if it.Value != nil {
					Walk(v, it.Value)
				}
			}
		}
	case *TernaryExpr:
		if v.VisitTernaryExpr(n) {
			Walk(v, n.Cond)
			if n.Then != nil {
				Walk(v, n.Then)
			}
			Walk(v, n.Else)
		}
	case *CoalesceExpr:
		if v.VisitCoalesceExpr(n) {
			Walk(v, n.Left)
			Walk(v, n.Right)
		}
	case *MatchExpr:
		if v.VisitMatchExpr(n) {
			Walk(v, n.Subject)
			for _, arm := range n.Arms {
				for _, c := range arm.Conditions {
					Walk(v, c)
				}
				Walk(v, arm.Body)
			}
		}
	case *GroupedExpr:
		if v.VisitGroupedExpr(n) {
			Walk(v, n.Inner)
		}
	}
}

// BaseVisitor provides default implementations for all visitor methods.
// Embed this in your visitor to only override the methods you need.
type BaseVisitor struct{}

func (bv *BaseVisitor) VisitTextItem(node *TextItem) bool                     { return true }
func (bv *BaseVisitor) VisitCodeItem(node *CodeItem) bool                     { return true }
func (bv *BaseVisitor) VisitBlockStmt(node *BlockStmt) bool                   { return true }
func (bv *BaseVisitor) VisitNamespaceStmt(node *NamespaceStmt) bool           { return true }
func (bv *BaseVisitor) VisitUseStmt(node *UseStmt) bool                       { return true }
func (bv *BaseVisitor) VisitDeclStmt(node *DeclStmt) bool                     { return true }
func (bv *BaseVisitor) VisitExprStmt(node *ExprStmt) bool                     { return true }
func (bv *BaseVisitor) VisitEchoStmt(node *EchoStmt) bool                     { return true }
func (bv *BaseVisitor) VisitReturnStmt(node *ReturnStmt) bool                 { return true }
func (bv *BaseVisitor) VisitBreakStmt(node *BreakStmt) bool                   { return true }
func (bv *BaseVisitor) VisitContinueStmt(node *ContinueStmt) bool             { return true }
func (bv *BaseVisitor) VisitUnsetStmt(node *UnsetStmt) bool                   { return true }
func (bv *BaseVisitor) VisitGlobalStmt(node *GlobalStmt) bool                 { return true }
func (bv *BaseVisitor) VisitStaticStmt(node *StaticStmt) bool                 { return true }
func (bv *BaseVisitor) VisitIfStmt(node *IfStmt) bool                         { return true }
func (bv *BaseVisitor) VisitWhileStmt(node *WhileStmt) bool                   { return true }
func (bv *BaseVisitor) VisitDoWhileStmt(node *DoWhileStmt) bool               { return true }
func (bv *BaseVisitor) VisitForStmt(node *ForStmt) bool                       { return true }
func (bv *BaseVisitor) VisitForEachStmt(node *ForEachStmt) bool               { return true }
func (bv *BaseVisitor) VisitSwitchStmt(node *SwitchStmt) bool                 { return true }
func (bv *BaseVisitor) VisitTryStmt(node *TryStmt) bool                       { return true }
func (bv *BaseVisitor) VisitThrowStmt(node *ThrowStmt) bool                   { return true }
func (bv *BaseVisitor) VisitFunctionDecl(node *FunctionDecl) bool             { return true }
func (bv *BaseVisitor) VisitTraitUse(node *TraitUse) bool                     { return true }
func (bv *BaseVisitor) VisitPropertyDecl(node *PropertyDecl) bool             { return true }
func (bv *BaseVisitor) VisitMethodDecl(node *MethodDecl) bool                 { return true }
func (bv *BaseVisitor) VisitClassConstDecl(node *ClassConstDecl) bool         { return true }
func (bv *BaseVisitor) VisitClassDecl(node *ClassDecl) bool                   { return true }
func (bv *BaseVisitor) VisitPathExpr(node *PathExpr) bool                     { return true }
func (bv *BaseVisitor) VisitVariableExpr(node *VariableExpr) bool             { return true }
func (bv *BaseVisitor) VisitIntLiteral(node *IntLiteral) bool                 { return true }
func (bv *BaseVisitor) VisitDoubleLiteral(node *DoubleLiteral) bool           { return true }
func (bv *BaseVisitor) VisitStringLiteral(node *StringLiteral) bool           { return true }
func (bv *BaseVisitor) VisitBooleanLiteral(node *BooleanLiteral) bool         { return true }
func (bv *BaseVisitor) VisitNullLiteral(node *NullLiteral) bool               { return true }
func (bv *BaseVisitor) VisitArrayExpr(node *ArrayExpr) bool                   { return true }
func (bv *BaseVisitor) VisitReferenceExpr(node *ReferenceExpr) bool           { return true }
func (bv *BaseVisitor) VisitCloneExpr(node *CloneExpr) bool                   { return true }
func (bv *BaseVisitor) VisitIssetExpr(node *IssetExpr) bool                   { return true }
func (bv *BaseVisitor) VisitEmptyExpr(node *EmptyExpr) bool                   { return true }
func (bv *BaseVisitor) VisitExitExpr(node *ExitExpr) bool                     { return true }
func (bv *BaseVisitor) VisitIncludeExpr(node *IncludeExpr) bool               { return true }
func (bv *BaseVisitor) VisitArrayIndexExpr(node *ArrayIndexExpr) bool         { return true }
func (bv *BaseVisitor) VisitPropertyAccessExpr(node *PropertyAccessExpr) bool { return true }
func (bv *BaseVisitor) VisitStaticAccessExpr(node *StaticAccessExpr) bool     { return true }
func (bv *BaseVisitor) VisitCallExpr(node *CallExpr) bool                     { return true }
func (bv *BaseVisitor) VisitNewExpr(node *NewExpr) bool                       { return true }
func (bv *BaseVisitor) VisitUnaryExpr(node *UnaryExpr) bool                   { return true }
func (bv *BaseVisitor) VisitBinaryExpr(node *BinaryExpr) bool                 { return true }
func (bv *BaseVisitor) VisitInstanceOfExpr(node *InstanceOfExpr) bool         { return true }
func (bv *BaseVisitor) VisitCastExpr(node *CastExpr) bool                     { return true }
func (bv *BaseVisitor) VisitFunctionExpr(node *FunctionExpr) bool             { return true }
func (bv *BaseVisitor) VisitAssignExpr(node *AssignExpr) bool                 { return true }
func (bv *BaseVisitor) VisitCompoundAssignExpr(node *CompoundAssignExpr) bool { return true }
func (bv *BaseVisitor) VisitListExpr(node *ListExpr) bool                     { return true }
func (bv *BaseVisitor) VisitTernaryExpr(node *TernaryExpr) bool               { return true }
func (bv *BaseVisitor) VisitCoalesceExpr(node *CoalesceExpr) bool             { return true }
func (bv *BaseVisitor) VisitMatchExpr(node *MatchExpr) bool                   { return true }
func (bv *BaseVisitor) VisitGroupedExpr(node *GroupedExpr) bool               { return true }
