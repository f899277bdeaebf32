package builder

import (
	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/flowgraph"
)

// wireSwitch wires a SwitchStatement as two independent chains over its
// cases, matching how a JS engine actually evaluates one: a left-to-right
// comparison chain (the discriminant against each non-default case's test,
// in source order, stopping at the first match) and a separate fall-through
// chain through the cases' bodies in source order, which a match chain entry
// joins partway through and a break (PushSwitch's breakTarget) can exit.
// A default clause, wherever it sits, is the comparison chain's fallback
// when no test matches; it still participates in the fall-through chain at
// its own position.
func (b *builder) wireSwitch(n *ast.Node, in []flowgraph.ID, label string) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)
	discOut, err := b.wireExpr(n.Discriminant, one(enter))
	if err != nil {
		return nil, err
	}

	b.ctx.PushSwitch(label, exit)

	caseEnters := make([]flowgraph.ID, len(n.Cases))
	for i, c := range n.Cases {
		caseEnters[i] = b.arena.Create(flowgraph.Enter, c)
	}

	defaultIdx := -1
	noMatch := discOut
	for i, c := range n.Cases {
		if c.Test == nil {
			defaultIdx = i
			continue
		}
		testOut, err := b.wireExpr(c.Test, noMatch)
		if err != nil {
			b.ctx.Pop()
			return nil, err
		}
		for _, id := range testOut {
			b.arena.Link(id, caseEnters[i])
		}
		noMatch = testOut
	}
	if defaultIdx >= 0 {
		for _, id := range noMatch {
			b.arena.Link(id, caseEnters[defaultIdx])
		}
		noMatch = nil
	}

	var fallOut []flowgraph.ID
	for i, c := range n.Cases {
		out, err := b.wireSwitchCase(c, caseEnters[i], fallOut)
		if err != nil {
			b.ctx.Pop()
			return nil, err
		}
		fallOut = out
	}
	b.ctx.Pop()

	outs := append(append([]flowgraph.ID{}, fallOut...), noMatch...)
	return b.finish(exit, outs), nil
}

// wireSwitchCase wires one case/default clause using a pre-allocated Enter
// event (see wireSwitch), since that event is the target of both the
// comparison-chain match edge and the fall-through edge from the previous
// clause, both of which may already exist by the time this runs.
func (b *builder) wireSwitchCase(c *ast.Node, enter flowgraph.ID, in []flowgraph.ID) ([]flowgraph.ID, error) {
	exit := b.arena.Create(flowgraph.Exit, c)
	for _, id := range in {
		b.arena.Link(id, enter)
	}
	out, err := b.wireSequence(c.Consequents, one(enter))
	if err != nil {
		return nil, err
	}
	return b.finish(exit, out), nil
}
