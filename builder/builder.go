package builder

import (
	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/flowgraph"
	"github.com/fossabot/analyse-control/internal/flowlog"
)

// builder holds the mutable state threaded through every per-kind rule: the
// arena those rules create events in, the Context stack used to resolve
// jump targets, and a logger for non-fatal diagnostics.
type builder struct {
	arena  *flowgraph.Arena
	ctx    *Context
	logger *flowlog.Logger

	// reuseEnter, when non-nil, is consumed by the next enterExit call in
	// place of allocating a fresh Enter event. A bare `for (;;)` loop has
	// no test or update node for continue to target, so its body's own
	// Enter must be allocated before the body is wired; wireStatementReusing
	// sets this to thread that pre-allocated event through the ordinary
	// dispatch path without changing every per-kind rule's signature.
	reuseEnter flowgraph.ID
}

func newBuilder(logger *flowlog.Logger) *builder {
	return &builder{arena: flowgraph.NewArena(), ctx: NewContext(), logger: logger}
}

// enterExit creates the Enter/Exit pair for n, links every id in `in` into
// Enter, and returns the pair. Every per-kind rule starts this way.
func (b *builder) enterExit(n *ast.Node, in []flowgraph.ID) (enter, exit flowgraph.ID) {
	if b.reuseEnter != nil {
		enter, b.reuseEnter = b.reuseEnter, nil
	} else {
		enter = b.arena.Create(flowgraph.Enter, n)
	}
	exit = b.arena.Create(flowgraph.Exit, n)
	for _, id := range in {
		b.arena.Link(id, enter)
	}
	return enter, exit
}

// wireStatementReusing wires n exactly like wireStatement, except the
// dispatched rule's own Enter event is the caller-supplied one rather than a
// freshly allocated one. See the reuseEnter field doc.
func (b *builder) wireStatementReusing(n *ast.Node, enter flowgraph.ID, in []flowgraph.ID) ([]flowgraph.ID, error) {
	b.reuseEnter = enter
	return b.wireStatement(n, in)
}

func one(id flowgraph.ID) []flowgraph.ID { return []flowgraph.ID{id} }
