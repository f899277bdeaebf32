// Package reach computes reachability and dominance over a constructed
// flowgraph.Graph, as a control-flow-only supplement to the graph facade.
// It retargets the iterative GEN/KILL bit-vector dataflow shape from
// extras/cfg/df.go:reachingBuilder and analysis/dataflow/reaching.go —
// originally Go-statement reaching-definitions, a value analysis — onto
// event dominance and reachability, a structural analysis only.
package reach

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/fossabot/analyse-control/flowgraph"
)

// index assigns every event in the graph a dense position for bitset
// operations, mirroring extras/cfg/df.go's blocks []*block enumeration.
type index struct {
	ids []flowgraph.ID
	pos map[flowgraph.ID]uint
}

func newIndex(g *flowgraph.Graph) *index {
	events := g.AllEvents()
	idx := &index{
		ids: make([]flowgraph.ID, len(events)),
		pos: make(map[flowgraph.ID]uint, len(events)),
	}
	for i, e := range events {
		idx.ids[i] = e.ID()
		idx.pos[e.ID()] = uint(i)
	}
	return idx
}

func (idx *index) bit(id flowgraph.ID) uint { return idx.pos[id] }
func (idx *index) len() uint                { return uint(len(idx.ids)) }

// Unreachable returns every event that cannot be reached from
// g.StartOfFlow() via forward edges — a modeling outcome, not an error, for
// code made dead by an unconditional jump earlier in its block (e.g. a
// break statement immediately after a return).
func Unreachable(g *flowgraph.Graph) []flowgraph.FlowEvent {
	idx := newIndex(g)
	visited := bitset.New(idx.len())

	var stack []flowgraph.FlowEvent
	stack = append(stack, g.StartOfFlow())
	visited.Set(idx.bit(g.StartOfFlow().ID()))

	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		for _, next := range cur.ForwardFlows() {
			b := idx.bit(next.ID())
			if !visited.Test(b) {
				visited.Set(b)
				stack = append(stack, next)
			}
		}
	}

	var out []flowgraph.FlowEvent
	for i, e := range g.AllEvents() {
		if !visited.Test(uint(i)) {
			out = append(out, e)
		}
	}
	return out
}

// Dominators computes, for every event in g, the set of events that
// dominate it (every forward path from StartOfFlow to it passes through
// them), via the same iterative fixed-point shape as
// extras/cfg/df.go:reachingBuilder.build(): seed every non-start node to
// the universal set, then repeatedly intersect over predecessors until
// nothing changes.
type Dominators struct {
	idx  *index
	sets []*bitset.BitSet // sets[i] = dominators of idx.ids[i], as a bitset over idx positions
}

// Compute runs the dominance fixed point over g.
func Compute(g *flowgraph.Graph) *Dominators {
	idx := newIndex(g)
	n := idx.len()
	startBit := idx.bit(g.StartOfFlow().ID())

	universal := bitset.New(n)
	for i := uint(0); i < n; i++ {
		universal.Set(i)
	}

	sets := make([]*bitset.BitSet, n)
	for i := uint(0); i < n; i++ {
		if i == startBit {
			sets[i] = bitset.New(n).Set(startBit)
		} else {
			sets[i] = universal.Clone()
		}
	}

	events := g.AllEvents()
	for changed := true; changed; {
		changed = false
		for i, e := range events {
			if uint(i) == startBit {
				continue
			}
			preds := e.BackwardFlows()
			if len(preds) == 0 {
				continue // no path from start; leave at universal (vacuous)
			}
			acc := sets[idx.bit(preds[0].ID())].Clone()
			for _, p := range preds[1:] {
				acc.InPlaceIntersection(sets[idx.bit(p.ID())])
			}
			acc.Set(uint(i))
			if !acc.Equal(sets[i]) {
				sets[i] = acc
				changed = true
			}
		}
	}

	return &Dominators{idx: idx, sets: sets}
}

// Dominates reports whether a dominates b (a == b counts as dominating).
func (d *Dominators) Dominates(a, b flowgraph.ID) bool {
	bi, ok := d.idx.pos[b]
	if !ok {
		return false
	}
	ai, ok := d.idx.pos[a]
	if !ok {
		return false
	}
	return d.sets[bi].Test(ai)
}
