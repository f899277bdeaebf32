package builder

import (
	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/flowgraph"
)

// wireVariableDeclaration sequences its declarators left to right.
func (b *builder) wireVariableDeclaration(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)
	cur := one(enter)
	for _, d := range n.Declarations {
		out, err := b.wireDeclarator(d, cur)
		if err != nil {
			return nil, err
		}
		cur = out
	}
	return b.finish(exit, cur), nil
}

// wireDeclarator wires a single binding's optional initializer. The binding
// itself (var x;) has no initializer and is a no-op between Enter and Exit;
// hoisting already recorded the name separately (see builder/hoist.go).
func (b *builder) wireDeclarator(d *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(d, in)
	out := one(enter)
	if d.Init2 != nil {
		var err error
		out, err = b.wireExpr(d.Init2, out)
		if err != nil {
			return nil, err
		}
	}
	return b.finish(exit, out), nil
}

// wireFunctionDeclaration is a no-op at its lexical site: the binding is
// produced during the hoisting phase (builder/hoist.go, builder/driver.go)
// and the function's own subgraph is built as a separate graph by BuildAll
// (builder/driver.go), not by reaching this statement during
// execution-phase traversal.
func (b *builder) wireFunctionDeclaration(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)
	return b.finish(exit, one(enter)), nil
}
