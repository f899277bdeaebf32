package builder

import (
	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/flowgraph"
)

// wireExpr wires n with a freshly allocated Enter event.
func (b *builder) wireExpr(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	if n == nil {
		return in, nil
	}
	return b.wireExprFrom(n, b.arena.Create(flowgraph.Enter, n), in)
}

// wireExprReusing wires n using a caller-supplied Enter event, for the rare
// constructs (a for-loop's update clause, a do-while's test, a for-in
// binding) whose Enter id
// must be known to callers before the edges leading into it are.
func (b *builder) wireExprReusing(n *ast.Node, enter flowgraph.ID, in []flowgraph.ID) ([]flowgraph.ID, error) {
	return b.wireExprFrom(n, enter, in)
}

// wireExprFrom wires every expression kind's children in the order the
// engine actually evaluates them: left before right, callee before
// arguments, object before a computed property, consequent/alternate or
// left/right operands of logical and conditional expressions fork and join
// at the node's own Exit rather than flowing straight through.
func (b *builder) wireExprFrom(n *ast.Node, enter flowgraph.ID, in []flowgraph.ID) ([]flowgraph.ID, error) {
	for _, id := range in {
		b.arena.Link(id, enter)
	}
	exit := b.arena.Create(flowgraph.Exit, n)
	cur := one(enter)
	var err error

	switch n.Kind {
	case ast.Identifier, ast.Literal, ast.ThisExpression:
		// leaves: nothing to evaluate beneath them

	case ast.ArrayExpression:
		cur, err = b.wireExprList(n.Elements, cur)

	case ast.ObjectExpression:
		for _, p := range n.Properties {
			cur, err = b.wireExpr(p.Value, cur)
			if err != nil {
				break
			}
		}

	case ast.Property:
		cur, err = b.wireExpr(n.Value, cur)

	case ast.SequenceExpression:
		cur, err = b.wireExprList(n.Expressions, cur)

	case ast.UnaryExpression, ast.UpdateExpression:
		cur, err = b.wireExpr(n.Argument, cur)

	case ast.BinaryExpression:
		cur, err = b.wireExpr(n.Left, cur)
		if err == nil {
			cur, err = b.wireExpr(n.Right, cur)
		}

	case ast.AssignmentExpression:
		cur, err = b.wireExpr(n.Left, cur)
		if err == nil {
			cur, err = b.wireExpr(n.Right, cur)
		}

	case ast.LogicalExpression:
		return b.wireLogical(n, exit, cur)

	case ast.ConditionalExpression:
		return b.wireConditional(n, exit, cur)

	case ast.NewExpression, ast.CallExpression:
		cur, err = b.wireExpr(n.Callee, cur)
		if err == nil {
			cur, err = b.wireExprList(n.Arguments, cur)
		}

	case ast.MemberExpression:
		cur, err = b.wireExpr(n.Object, cur)
		if err == nil && n.Computed {
			cur, err = b.wireExpr(n.PropertyExpr, cur)
		}

	case ast.FunctionExpression:
		// Closure creation only; the function's own body is an
		// independently rooted subgraph built by the driver, same as
		// wireFunctionDeclaration.

	default:
		return nil, &MalformedASTError{Kind: string(n.Kind), Reason: "not a recognized expression kind"}
	}

	if err != nil {
		return nil, err
	}
	return b.finish(exit, cur), nil
}

// wireExprList wires a left-to-right list of expressions, such as array
// elements, call arguments, or a sequence expression's operands. A nil
// entry (an elided array element) passes its predecessor through unchanged.
func (b *builder) wireExprList(list []*ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	cur := in
	for _, e := range list {
		out, err := b.wireExpr(e, cur)
		if err != nil {
			return nil, err
		}
		cur = out
	}
	return cur, nil
}

// wireLogical wires && and || identically at the structural level: the
// right operand's evaluation depends on the left operand's runtime value,
// which this system does not analyze, so both "short-circuited" (left's
// Exit straight to the node's own Exit) and "evaluated" (left's Exit into
// right's Enter, then right's Exit to the node's own Exit) are recorded as
// reachable.
func (b *builder) wireLogical(n *ast.Node, exit flowgraph.ID, in []flowgraph.ID) ([]flowgraph.ID, error) {
	leftOut, err := b.wireExpr(n.Left, in)
	if err != nil {
		return nil, err
	}
	rightOut, err := b.wireExpr(n.Right, leftOut)
	if err != nil {
		return nil, err
	}
	outs := append(append([]flowgraph.ID{}, leftOut...), rightOut...)
	return b.finish(exit, outs), nil
}

// wireConditional wires a ?: expression as a fork-join around the test,
// reusing IfStatement's Test/Consequent/Alternate fields.
func (b *builder) wireConditional(n *ast.Node, exit flowgraph.ID, in []flowgraph.ID) ([]flowgraph.ID, error) {
	testOut, err := b.wireExpr(n.Test, in)
	if err != nil {
		return nil, err
	}
	consOut, err := b.wireExpr(n.Consequent, testOut)
	if err != nil {
		return nil, err
	}
	altOut, err := b.wireExpr(n.Alternate, testOut)
	if err != nil {
		return nil, err
	}
	outs := append(append([]flowgraph.ID{}, consOut...), altOut...)
	return b.finish(exit, outs), nil
}
