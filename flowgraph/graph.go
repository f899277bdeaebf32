package flowgraph

import "github.com/fossabot/analyse-control/internal/schema"

// Graph is the immutable, safely-shareable result of construction: once
// NewGraph returns, nothing in this package mutates the underlying Arena
// again. Concurrent readers may call any Graph method without
// synchronization.
type Graph struct {
	arena         *Arena
	start, end    ID
	schemaVersion string
}

// NewGraph freezes arena into a queryable Graph. Called once by the builder
// after a Program or function body has been fully wired, with start and end
// as the designated start_of_flow/end_of_flow ids.
func NewGraph(arena *Arena, start, end ID) *Graph {
	return &Graph{arena: arena, start: start, end: end, schemaVersion: schema.Version}
}

// StartOfFlow returns the first Hoist of the Program, or the Program's
// Enter if it hoists nothing.
func (g *Graph) StartOfFlow() FlowEvent { return FlowEvent{g, g.start} }

// EndOfFlow returns the Program's Exit event.
func (g *Graph) EndOfFlow() FlowEvent { return FlowEvent{g, g.end} }

// SchemaVersion reports the semver-tagged shape of GetNode's projection,
// for consumers that serialize a Graph (see cmd/analyse-control) and need
// to detect an incompatible future revision of that shape.
func (g *Graph) SchemaVersion() string { return g.schemaVersion }

// GetNode resolves a handle produced by a NodeView's Children/ChildLists
// (or by FlowEvent.ID, since every node's own handle is its first Enter
// event's id) back into the referenced node's own shallow projection.
func (g *Graph) GetNode(id ID) NodeView {
	rec := g.arena.record(id)
	if rec == nil {
		return NodeView{}
	}
	return g.nodeViewFor(rec.node)
}

// AllEvents returns every event in the graph, in construction order. Used
// by flowgraph/reach and by JSON export; independent of traversal order
// from StartOfFlow.
func (g *Graph) AllEvents() []FlowEvent {
	ids := g.arena.All()
	out := make([]FlowEvent, len(ids))
	for i, id := range ids {
		out[i] = FlowEvent{g, id}
	}
	return out
}

// FlowEvent is one vertex of the control flow graph: a (phase, AST node)
// pair with forward and backward adjacency.
type FlowEvent struct {
	g  *Graph
	id ID
}

// ID returns the event's stable identifier.
func (e FlowEvent) ID() ID { return e.id }

func (e FlowEvent) record() *eventRecord {
	if e.g == nil {
		return nil
	}
	return e.g.arena.record(e.id)
}

// IsHoist reports whether this event belongs to the hoisting phase.
func (e FlowEvent) IsHoist() bool { r := e.record(); return r != nil && r.phase == Hoist }

// IsEnter reports whether this event is an AST node's Enter event.
func (e FlowEvent) IsEnter() bool { r := e.record(); return r != nil && r.phase == Enter }

// IsExit reports whether this event is an AST node's Exit event.
func (e FlowEvent) IsExit() bool { r := e.record(); return r != nil && r.phase == Exit }

// ForwardFlows returns the events that may execute immediately after this
// one, in insertion order.
func (e FlowEvent) ForwardFlows() []FlowEvent {
	r := e.record()
	if r == nil {
		return nil
	}
	out := make([]FlowEvent, len(r.forward))
	for i, id := range r.forward {
		out[i] = FlowEvent{e.g, id}
	}
	return out
}

// BackwardFlows returns the events that may execute immediately before this
// one, in insertion order.
func (e FlowEvent) BackwardFlows() []FlowEvent {
	r := e.record()
	if r == nil {
		return nil
	}
	out := make([]FlowEvent, len(r.backward))
	for i, id := range r.backward {
		out[i] = FlowEvent{e.g, id}
	}
	return out
}

// Node returns the shallow projection of the AST node this event refers to.
func (e FlowEvent) Node() NodeView {
	r := e.record()
	if r == nil {
		return NodeView{}
	}
	return e.g.nodeViewFor(r.node)
}
