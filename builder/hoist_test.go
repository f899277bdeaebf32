package builder

import (
	"testing"

	"github.com/fossabot/analyse-control/ast"
)

func TestCollectHoistsOrdersFuncsBeforeVarsInSourceOrder(t *testing.T) {
	fn := &ast.Node{Kind: ast.FunctionDeclaration, Name: "f", FnBody: &ast.Node{Kind: ast.BlockStatement}}
	body := []*ast.Node{
		{Kind: ast.VariableDeclaration, VarKind: "var", Declarations: []*ast.Node{
			{Kind: ast.VariableDeclarator, ID: ident("a")},
		}},
		fn,
		{Kind: ast.VariableDeclaration, VarKind: "var", Declarations: []*ast.Node{
			{Kind: ast.VariableDeclarator, ID: ident("b")},
		}},
	}

	h := collectHoists(body)

	if len(h.funcs) != 1 || h.funcs[0] != fn {
		t.Fatalf("collectHoists().funcs = %v, want [fn]", h.funcs)
	}
	if len(h.vars) != 2 {
		t.Fatalf("collectHoists().vars has %d entries, want 2", len(h.vars))
	}
	if h.vars[0].ID.Name != "a" || h.vars[1].ID.Name != "b" {
		t.Errorf("collectHoists().vars names = [%s, %s], want [a, b] (source order)",
			h.vars[0].ID.Name, h.vars[1].ID.Name)
	}
}

func TestCollectHoistsDescendsIntoNestedControlFlowButNotFunctions(t *testing.T) {
	nestedVar := &ast.Node{Kind: ast.VariableDeclarator, ID: ident("inner")}
	innerFn := &ast.Node{Kind: ast.FunctionDeclaration, Name: "g", FnBody: &ast.Node{
		Kind: ast.BlockStatement,
		Body: []*ast.Node{
			{Kind: ast.VariableDeclaration, VarKind: "var", Declarations: []*ast.Node{
				{Kind: ast.VariableDeclarator, ID: ident("shouldNotHoist")},
			}},
		},
	}}

	body := []*ast.Node{
		{
			Kind: ast.IfStatement,
			Test: ident("cond"),
			Consequent: &ast.Node{Kind: ast.BlockStatement, Body: []*ast.Node{
				{Kind: ast.VariableDeclaration, VarKind: "var", Declarations: []*ast.Node{nestedVar}},
			}},
		},
		innerFn,
		{
			Kind: ast.ForStatement,
			Init: &ast.Node{Kind: ast.VariableDeclaration, VarKind: "var", Declarations: []*ast.Node{
				{Kind: ast.VariableDeclarator, ID: ident("loopVar")},
			}},
			LoopBody: &ast.Node{Kind: ast.BlockStatement},
		},
	}

	h := collectHoists(body)

	if len(h.funcs) != 1 || h.funcs[0] != innerFn {
		t.Fatalf("collectHoists().funcs = %v, want [innerFn]", h.funcs)
	}

	var names []string
	for _, v := range h.vars {
		names = append(names, v.ID.Name)
	}
	for _, n := range names {
		if n == "shouldNotHoist" {
			t.Errorf("collectHoists() descended into a nested function body, found %q", n)
		}
	}
	if len(names) != 2 {
		t.Fatalf("collectHoists().vars = %v, want 2 entries (inner, loopVar)", names)
	}
	if names[0] != "inner" || names[1] != "loopVar" {
		t.Errorf("collectHoists().vars names = %v, want [inner, loopVar] in source order", names)
	}
}
