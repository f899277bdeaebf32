package flowgraph

import (
	"fmt"
	"math"

	"github.com/fossabot/analyse-control/ast"
)

// Arena is the append-only store of flow events, mutated only by a Builder
// during construction. It generalizes the vMap map[ast.Stmt]*vertex
// adjacency list from extras/cfg.go from "one vertex per Go statement" to
// "one event per (phase, AST node)".
type Arena struct {
	events     []*eventRecord
	byID       map[ID]*eventRecord
	nextInt    int64
	overflowed bool
	nextString int64

	// firstEnter maps an AST node to the id of the first Enter event
	// created for it. Per the uniqueness invariant this is the only Enter
	// event for that node in practice (ES5 never revisits a node via
	// distinct structural paths), and it doubles as the node's handle for
	// the shallow AST projection the Graph Facade exposes.
	firstEnter map[*ast.Node]ID
}

// NewArena returns an empty arena ready for construction.
func NewArena() *Arena {
	return &Arena{
		byID:       make(map[ID]*eventRecord),
		firstEnter: make(map[*ast.Node]ID),
	}
}

// Create appends a new event with empty adjacency and returns its id.
// Create never fails in practice: once the int64 id space is exhausted it
// transparently switches to string ids rather than erroring.
func (a *Arena) Create(phase Phase, node *ast.Node) ID {
	id := a.allocID()
	rec := &eventRecord{id: id, phase: phase, node: node}
	a.events = append(a.events, rec)
	a.byID[id] = rec
	if phase == Enter && node != nil {
		if _, ok := a.firstEnter[node]; !ok {
			a.firstEnter[node] = id
		}
	}
	return id
}

func (a *Arena) allocID() ID {
	if !a.overflowed && a.nextInt == math.MaxInt64 {
		a.overflowed = true
	}
	if a.overflowed {
		a.nextString++
		return stringID(fmt.Sprintf("s%d", a.nextString))
	}
	id := intID(a.nextInt)
	a.nextInt++
	return id
}

// Link appends v to forward(u) and u to backward(v). Duplicate edges are
// permitted (a join after a branch may legitimately produce the same edge
// via two sub-paths) but adjacent duplicates are collapsed to keep degree
// small.
func (a *Arena) Link(u, v ID) {
	uu, vv := a.byID[u], a.byID[v]
	if uu == nil || vv == nil {
		return
	}
	if n := len(uu.forward); n == 0 || uu.forward[n-1] != v {
		uu.forward = append(uu.forward, v)
	}
	if n := len(vv.backward); n == 0 || vv.backward[n-1] != u {
		vv.backward = append(vv.backward, u)
	}
}

// LinkAll links every id in from to every id in to.
func (a *Arena) LinkAll(from, to []ID) {
	for _, u := range from {
		for _, v := range to {
			a.Link(u, v)
		}
	}
}

// record returns the internal record for id, or nil if unknown.
func (a *Arena) record(id ID) *eventRecord {
	if id == nil {
		return nil
	}
	return a.byID[id]
}

// HandleFor returns the handle (the id of the node's first Enter event)
// used to reference node from a shallow AST projection, and whether one has
// been assigned yet (it hasn't if the node has not been entered).
func (a *Arena) HandleFor(node *ast.Node) (ID, bool) {
	if node == nil {
		return nil, false
	}
	id, ok := a.firstEnter[node]
	return id, ok
}

// All returns every event created so far, in creation order. Used by the
// reach package and by JSON export; never mutated by callers.
func (a *Arena) All() []ID {
	ids := make([]ID, len(a.events))
	for i, r := range a.events {
		ids[i] = r.id
	}
	return ids
}
