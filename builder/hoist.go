package builder

import "github.com/fossabot/analyse-control/ast"

// hoistScope collects, in source order, the FunctionDeclarations and var
// VariableDeclarators lexically inside a Program or FunctionBody scope but
// not inside a nested function. Declarations inside never-taken branches
// are still collected: hoisting is syntactic, matching the V8/IE/Safari
// convention, which also applies to declarators found inside a catch
// clause or a for-initializer — they fold into the enclosing
// function/program scope, not a scope of their own.
type hoistScope struct {
	funcs []*ast.Node // FunctionDeclaration nodes, in source order
	vars  []*ast.Node // VariableDeclarator nodes, in source order
}

func collectHoists(body []*ast.Node) *hoistScope {
	h := &hoistScope{}
	for _, stmt := range body {
		h.walk(stmt)
	}
	return h
}

func (h *hoistScope) walk(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.FunctionDeclaration:
		h.funcs = append(h.funcs, n)
		// The function's own body is a separate hoist scope; do not descend.
	case ast.VariableDeclaration:
		h.vars = append(h.vars, n.Declarations...)
	case ast.BlockStatement:
		for _, s := range n.Body {
			h.walk(s)
		}
	case ast.IfStatement:
		h.walk(n.Consequent)
		h.walk(n.Alternate)
	case ast.LabeledStatement:
		h.walk(n.Statement)
	case ast.WhileStatement, ast.DoWhileStatement:
		h.walk(n.LoopBody)
	case ast.ForStatement:
		h.walk(n.Init) // var declarations in a for-init still hoist
		h.walk(n.LoopBody)
	case ast.ForInStatement:
		h.walk(n.Left) // `for (var x in obj)` still hoists x
		h.walk(n.LoopBody)
	case ast.WithStatement:
		h.walk(n.Statement)
	case ast.TryStatement:
		h.walk(n.Block)
		if n.Handler != nil {
			h.walk(n.Handler.Block) // catch's var declarators still hoist
		}
		h.walk(n.Finalizer)
	case ast.SwitchStatement:
		for _, c := range n.Cases {
			h.walk(c)
		}
	case ast.SwitchCase:
		for _, s := range n.Consequents {
			h.walk(s)
		}
	}
}
