package builder

import (
	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/flowgraph"
)

// finish links every id in preExit to exit and returns {exit}, unless
// preExit is empty (the node never completes normally), in which case it
// returns nil so the caller's own sequencing stops propagating flow past
// this point — the composite-statement analog of a jump statement's Exit
// having no forward edges.
func (b *builder) finish(exit flowgraph.ID, preExit []flowgraph.ID) []flowgraph.ID {
	if len(preExit) == 0 {
		return nil
	}
	for _, id := range preExit {
		b.arena.Link(id, exit)
	}
	return one(exit)
}

// wireStatement dispatches to the per-kind rule for a statement node. Every
// rule follows the same wire(node, in) -> out contract: link `in` into the
// node's own Enter event, wire its children, and return the set of events
// that may execute immediately after it completes normally.
func (b *builder) wireStatement(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	if n == nil {
		return in, nil
	}
	switch n.Kind {
	case ast.BlockStatement:
		return b.wireBlock(n, in)
	case ast.ExpressionStatement:
		return b.wireExpressionStatement(n, in)
	case ast.VariableDeclaration:
		return b.wireVariableDeclaration(n, in)
	case ast.FunctionDeclaration:
		return b.wireFunctionDeclaration(n, in)
	case ast.IfStatement:
		return b.wireIf(n, in)
	case ast.WhileStatement:
		return b.wireWhile(n, in, "")
	case ast.DoWhileStatement:
		return b.wireDoWhile(n, in, "")
	case ast.ForStatement:
		return b.wireFor(n, in, "")
	case ast.ForInStatement:
		return b.wireForIn(n, in, "")
	case ast.LabeledStatement:
		return b.wireLabeled(n, in)
	case ast.WithStatement:
		return b.wireWith(n, in)
	case ast.SwitchStatement:
		return b.wireSwitch(n, in, "")
	case ast.BreakStatement:
		return b.wireBreak(n, in)
	case ast.ContinueStatement:
		return b.wireContinue(n, in)
	case ast.ReturnStatement:
		return b.wireReturn(n, in)
	case ast.ThrowStatement:
		return b.wireThrow(n, in)
	case ast.TryStatement:
		return b.wireTry(n, in)
	default:
		return nil, &MalformedASTError{Kind: string(n.Kind), Reason: "not a recognized statement kind"}
	}
}

// wireSequence wires a list of statements left to right, each statement's
// out becoming the next statement's in. An empty list passes `in` straight
// through unchanged, matching extras/cfg.go:buildBlock's handling of an
// empty block.
func (b *builder) wireSequence(stmts []*ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	cur := in
	for _, s := range stmts {
		out, err := b.wireStatement(s, cur)
		if err != nil {
			return nil, err
		}
		cur = out
	}
	return cur, nil
}

func (b *builder) wireBlock(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)
	out, err := b.wireSequence(n.Body, one(enter))
	if err != nil {
		return nil, err
	}
	return b.finish(exit, out), nil
}

func (b *builder) wireExpressionStatement(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)
	out, err := b.wireExpr(n.Expression, one(enter))
	if err != nil {
		return nil, err
	}
	return b.finish(exit, out), nil
}

// wireWith handles the WithStatement: the object expression is wired like
// any expression, and the body is wired like any other statement, with no
// dedicated Context frame, since a with statement is not itself a jump
// target.
func (b *builder) wireWith(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	b.logger.Info("with statement: property lookups inside its body are not distinguished from the enclosing scope's")
	enter, exit := b.enterExit(n, in)
	objOut, err := b.wireExpr(n.Object, one(enter))
	if err != nil {
		return nil, err
	}
	bodyOut, err := b.wireStatement(n.Statement, objOut)
	if err != nil {
		return nil, err
	}
	return b.finish(exit, bodyOut), nil
}
