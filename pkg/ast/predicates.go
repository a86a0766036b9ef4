package ast

// IsFuncDecl reports whether id declares a function
func (t *Tree) IsFuncDecl(id NodeID) bool {
	n := t.nodes[id]
	return n.Kind == KindDecl && n.Decl == DeclFunction
}

// IsVarDecl reports whether id declares a variable (not a parameter)
func (t *Tree) IsVarDecl(id NodeID) bool {
	n := t.nodes[id]
	return n.Kind == KindDecl && n.Decl == DeclVariable
}

// IsMainDecl reports whether id declares the function main
func (t *Tree) IsMainDecl(id NodeID) bool {
	return t.IsFuncDecl(id) && t.nodes[id].Name == "main"
}

// IsFuncEnd reports whether id is the synthetic end-of-function marker
func (t *Tree) IsFuncEnd(id NodeID) bool {
	n := t.nodes[id]
	return n.Kind == KindStmt && n.Stmt == StmtFuncEnd
}

// IsReturn reports whether id is a return statement
func (t *Tree) IsReturn(id NodeID) bool {
	n := t.nodes[id]
	return n.Kind == KindStmt && n.Stmt == StmtReturn
}

func (t *Tree) isExpr(id NodeID, kind ExprKind) bool {
	if id == None {
		return false
	}
	n := t.nodes[id]
	return n.Kind == KindExpr && n.Expr == kind
}

// IsNumber reports whether id is an integer literal
func (t *Tree) IsNumber(id NodeID) bool { return t.isExpr(id, ExprNumber) }

// IsVar reports whether id is a variable reference
func (t *Tree) IsVar(id NodeID) bool { return t.isExpr(id, ExprVariable) }

// IsCall reports whether id is a call expression
func (t *Tree) IsCall(id NodeID) bool { return t.isExpr(id, ExprCall) }

// IsAssign reports whether id is an assignment expression
func (t *Tree) IsAssign(id NodeID) bool { return t.isExpr(id, ExprAssign) }

// IsRelational reports whether id is a comparison
func (t *Tree) IsRelational(id NodeID) bool { return t.isExpr(id, ExprRelational) }

// IsMathOp reports whether id is one of + - * /
func (t *Tree) IsMathOp(id NodeID) bool {
	return t.isExpr(id, ExprBinary) && t.nodes[id].Op.IsMath()
}
