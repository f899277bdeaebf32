package builder

import (
	"testing"

	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/flowgraph"
)

// findEvents returns every event of the given kind, optionally filtered to
// a specific phase (nil matches any phase), whose "name" attribute (an
// Identifier's own Name, or a node's reused Name field in these fixtures)
// equals name. An empty name matches any.
func findEvents(g *flowgraph.Graph, kind ast.Kind, phase *flowgraph.Phase, name string) []flowgraph.FlowEvent {
	var out []flowgraph.FlowEvent
	for _, e := range g.AllEvents() {
		view := e.Node()
		if view.Kind != kind {
			continue
		}
		if phase != nil {
			switch *phase {
			case flowgraph.Enter:
				if !e.IsEnter() {
					continue
				}
			case flowgraph.Exit:
				if !e.IsExit() {
					continue
				}
			case flowgraph.Hoist:
				if !e.IsHoist() {
					continue
				}
			}
		}
		if name != "" {
			if got, _ := view.Attrs["name"].(string); got != name {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

var (
	enterPhase = flowgraph.Enter
	exitPhase  = flowgraph.Exit
	hoistPhase = flowgraph.Hoist
)

// one1 returns the single element of events, failing the test otherwise.
func one1(t *testing.T, events []flowgraph.FlowEvent, what string) flowgraph.FlowEvent {
	t.Helper()
	if len(events) != 1 {
		t.Fatalf("found %d events for %s, want exactly 1", len(events), what)
	}
	return events[0]
}

func containsID(ids []flowgraph.FlowEvent, id flowgraph.ID) bool {
	for _, e := range ids {
		if e.ID() == id {
			return true
		}
	}
	return false
}

// forwardReachable returns every event reachable from start by following
// forward edges, including start itself. Safe on graphs with cycles (loop
// back-edges) since visited ids are never revisited.
func forwardReachable(start flowgraph.FlowEvent) map[flowgraph.ID]bool {
	seen := map[flowgraph.ID]bool{start.ID(): true}
	queue := []flowgraph.FlowEvent{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range cur.ForwardFlows() {
			if !seen[next.ID()] {
				seen[next.ID()] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// identName resolves the "id" child of view (a VariableDeclarator or
// CatchClause's Param) back to the Identifier it names.
func identName(g *flowgraph.Graph, view flowgraph.NodeView) string {
	h, ok := view.Children["id"]
	if !ok {
		h, ok = view.Children["param"]
		if !ok {
			return ""
		}
	}
	name, _ := g.GetNode(h).Attrs["name"].(string)
	return name
}

// ident builds a leaf Identifier node.
func ident(name string) *ast.Node { return &ast.Node{Kind: ast.Identifier, Name: name} }

// exprStmt wraps an expression in an ExpressionStatement.
func exprStmt(e *ast.Node) *ast.Node { return &ast.Node{Kind: ast.ExpressionStatement, Expression: e} }

// program builds a Program node with the given body statements.
func program(body ...*ast.Node) *ast.Node { return &ast.Node{Kind: ast.Program, Body: body} }
