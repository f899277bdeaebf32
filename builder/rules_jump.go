package builder

import (
	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/flowgraph"
)

// wireBreak and the three rules below implement the jump statement family:
// the statement's Enter event (for return and throw, the Exit of its
// argument when it has one) edges directly to its resolved target
// (crossing any intervening finally blocks via Context.RouteJump), and the
// statement's own Exit is created to satisfy the every-node-has-an-Exit
// invariant but is left with no incoming or outgoing edges — the statement
// never completes normally, so block sequencing must not propagate flow
// past it (wireStatement's caller sees this as an empty out set).
func (b *builder) wireBreak(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, _ := b.enterExit(n, in)
	target, through, err := b.ctx.ResolveBreak(n.Label)
	if err != nil {
		return nil, err
	}
	RouteJump(b.arena, enter, target, through)
	return nil, nil
}

func (b *builder) wireContinue(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, _ := b.enterExit(n, in)
	target, through, err := b.ctx.ResolveContinue(n.Label)
	if err != nil {
		return nil, err
	}
	RouteJump(b.arena, enter, target, through)
	return nil, nil
}

func (b *builder) wireReturn(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, _ := b.enterExit(n, in)
	out := one(enter)
	if n.Argument != nil {
		var err error
		out, err = b.wireExpr(n.Argument, out)
		if err != nil {
			return nil, err
		}
	}
	target, through, err := b.ctx.ResolveReturn()
	if err != nil {
		return nil, err
	}
	for _, id := range out {
		RouteJump(b.arena, id, target, through)
	}
	return nil, nil
}

func (b *builder) wireThrow(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, _ := b.enterExit(n, in)
	out, err := b.wireExpr(n.Argument, one(enter))
	if err != nil {
		return nil, err
	}
	target, through, err := b.ctx.ResolveThrow()
	if err != nil {
		return nil, err
	}
	for _, id := range out {
		RouteJump(b.arena, id, target, through)
	}
	return nil, nil
}
