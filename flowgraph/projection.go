package flowgraph

import "github.com/fossabot/analyse-control/ast"

// NodeView is the shallow AST projection the graph facade exposes to
// external consumers: child AST references are replaced by the numeric
// handles the graph can resolve back through Graph.GetNode, rather than
// exposing the internal *ast.Node pointer. A handle is the id of a node's
// first Enter event, so a child that never received an Enter event (for
// example a declarator's id, a catch param, or a function's params and
// body in the graph of its enclosing scope) has no handle and is left out
// of Children and ChildLists. Scalar attributes (names,
// operators, labels, literal values) are copied directly since they carry
// no further structure to project.
type NodeView struct {
	Handle ID
	Kind   ast.Kind

	// Attrs holds every populated scalar field for this node's kind (Name,
	// Operator, Label, VarKind, Computed, Raw, LiteralValue). A map keeps
	// this projection generic across ~40 possible ESTree fields without a
	// duplicate struct field per Node field.
	Attrs map[string]interface{}

	// Children holds single-child references (e.g. "test", "consequent").
	Children map[string]ID

	// ChildLists holds ordered list-valued children (e.g. "body", "params").
	ChildLists map[string][]ID
}

func (g *Graph) nodeViewFor(n *ast.Node) NodeView {
	if n == nil {
		return NodeView{}
	}
	handle, _ := g.arena.HandleFor(n)
	v := NodeView{
		Handle:     handle,
		Kind:       n.Kind,
		Attrs:      map[string]interface{}{},
		Children:   map[string]ID{},
		ChildLists: map[string][]ID{},
	}

	putAttr := func(k string, val interface{}) {
		switch t := val.(type) {
		case string:
			if t != "" {
				v.Attrs[k] = t
			}
		case bool:
			if t {
				v.Attrs[k] = t
			}
		default:
			if val != nil {
				v.Attrs[k] = val
			}
		}
	}
	putChild := func(k string, c *ast.Node) {
		if h, ok := g.arena.HandleFor(c); ok {
			v.Children[k] = h
		}
	}
	putList := func(k string, cs []*ast.Node) {
		if len(cs) == 0 {
			return
		}
		var handles []ID
		for _, c := range cs {
			if h, ok := g.arena.HandleFor(c); ok {
				handles = append(handles, h)
			}
		}
		if len(handles) > 0 {
			v.ChildLists[k] = handles
		}
	}

	putAttr("name", n.Name)
	putAttr("operator", n.Operator)
	putAttr("label", n.Label)
	putAttr("varKind", n.VarKind)
	putAttr("computed", n.Computed)
	putAttr("raw", n.Raw)
	putAttr("value", n.LiteralValue)

	putList("body", n.Body)
	putChild("expression", n.Expression)
	putChild("argument", n.Argument)
	putChild("test", n.Test)
	putChild("consequent", n.Consequent)
	putChild("alternate", n.Alternate)
	putChild("init", n.Init)
	putChild("update", n.Update)
	putChild("left", n.Left)
	putChild("right", n.Right)
	putChild("loopBody", n.LoopBody)
	putChild("statement", n.Statement)
	putChild("discriminant", n.Discriminant)
	putList("cases", n.Cases)
	putList("consequents", n.Consequents)
	putChild("block", n.Block)
	putChild("handler", n.Handler)
	putChild("finalizer", n.Finalizer)
	putChild("param", n.Param)
	putList("declarations", n.Declarations)
	putChild("id", n.ID)
	putChild("init2", n.Init2)
	putList("params", n.Params)
	putChild("fnBody", n.FnBody)
	putChild("callee", n.Callee)
	putList("arguments", n.Arguments)
	putChild("object", n.Object)
	putChild("propertyExpr", n.PropertyExpr)
	putList("elements", n.Elements)
	putList("properties", n.Properties)
	putChild("key", n.Key)
	putChild("value", n.Value)
	putList("expressions", n.Expressions)

	return v
}
