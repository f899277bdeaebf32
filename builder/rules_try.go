package builder

import (
	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/flowgraph"
)

// wireTry wires a TryStatement. A finally frame, when present, is pushed
// before both the protected block and the catch clause are wired (so a
// break/continue/return/throw from either crosses it via RouteJump) and
// popped before the finally block's own content is wired, so the finally
// body's own jumps resolve against whatever encloses the try statement, not
// against itself. A catch frame is pushed only around the protected block,
// since an exception raised inside the catch clause is not caught by that
// same clause.
func (b *builder) wireTry(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)

	var finallyEntry flowgraph.ID
	var finFrame *frame
	if n.Finalizer != nil {
		finallyEntry = b.arena.Create(flowgraph.Enter, n.Finalizer)
		finFrame = b.ctx.PushTryFinally(finallyEntry)
	}

	var catchEntry flowgraph.ID
	if n.Handler != nil {
		catchEntry = b.arena.Create(flowgraph.Enter, n.Handler)
		b.ctx.PushCatch(catchEntry)
	}

	blockOut, err := b.wireStatement(n.Block, one(enter))

	if n.Handler != nil {
		b.ctx.Pop()
	}
	if err != nil {
		if n.Finalizer != nil {
			b.ctx.Pop()
		}
		return nil, err
	}

	var catchOut []flowgraph.ID
	if n.Handler != nil {
		catchOut, err = b.wireCatch(n.Handler, catchEntry, nil)
		if err != nil {
			if n.Finalizer != nil {
				b.ctx.Pop()
			}
			return nil, err
		}
	}

	normalOut := append(append([]flowgraph.ID{}, blockOut...), catchOut...)

	if n.Finalizer == nil {
		return b.finish(exit, normalOut), nil
	}

	b.ctx.Pop()
	finallyOut, err := b.wireStatementReusing(n.Finalizer, finallyEntry, normalOut)
	if err != nil {
		return nil, err
	}
	for next := range finFrame.pending {
		for _, id := range finallyOut {
			b.arena.Link(id, next)
		}
	}
	return b.finish(exit, finallyOut), nil
}

// wireCatch wires a CatchClause using its pre-allocated Enter event, which
// is the only way control reaches it: every edge into catchEntry comes from
// an explicit RouteJump call made while wiring a ThrowStatement inside the
// protected block, never from ordinary fall-through.
func (b *builder) wireCatch(c *ast.Node, enter flowgraph.ID, in []flowgraph.ID) ([]flowgraph.ID, error) {
	exit := b.arena.Create(flowgraph.Exit, c)
	for _, id := range in {
		b.arena.Link(id, enter)
	}
	out, err := b.wireStatement(c.Block, one(enter))
	if err != nil {
		return nil, err
	}
	return b.finish(exit, out), nil
}
