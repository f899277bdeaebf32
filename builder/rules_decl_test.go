package builder

import (
	"testing"

	"github.com/fossabot/analyse-control/ast"
)

func TestVariableDeclarationSequencesDeclaratorsLeftToRight(t *testing.T) {
	// var a = x, b = y;
	decl := &ast.Node{
		Kind: ast.VariableDeclaration, VarKind: "var",
		Declarations: []*ast.Node{
			{Kind: ast.VariableDeclarator, ID: ident("a"), Init2: ident("x")},
			{Kind: ast.VariableDeclarator, ID: ident("b"), Init2: ident("y")},
		},
	}
	p := program(decl)

	g, err := Analyse(p)
	if err != nil {
		t.Fatalf("Analyse: %v", err)
	}

	xExit := one1(t, findEvents(g, ast.Identifier, &exitPhase, "x"), "x exit")
	yEnter := one1(t, findEvents(g, ast.Identifier, &enterPhase, "y"), "y enter")
	if !forwardReachable(xExit)[yEnter.ID()] {
		t.Errorf("first declarator's initializer does not reach the second declarator's initializer")
	}
}

func TestDeclaratorWithNoInitializerIsNoOpBetweenEnterAndExit(t *testing.T) {
	// var a;
	decl := &ast.Node{
		Kind: ast.VariableDeclaration, VarKind: "var",
		Declarations: []*ast.Node{
			{Kind: ast.VariableDeclarator, ID: ident("a")},
		},
	}
	p := program(decl)

	g, err := Analyse(p)
	if err != nil {
		t.Fatalf("Analyse: %v", err)
	}

	declEnter := one1(t, findEvents(g, ast.VariableDeclarator, &enterPhase, ""), "declarator enter")
	declExit := one1(t, findEvents(g, ast.VariableDeclarator, &exitPhase, ""), "declarator exit")
	if !containsID(declEnter.ForwardFlows(), declExit.ID()) {
		t.Errorf("declarator with no initializer does not link its Enter directly to its Exit")
	}
}

func TestFunctionDeclarationIsNoOpAtItsLexicalSite(t *testing.T) {
	fn := &ast.Node{
		Kind: ast.FunctionDeclaration, Name: "f",
		FnBody: &ast.Node{Kind: ast.BlockStatement},
	}
	p := program(exprStmt(ident("before")), fn)

	g, err := Analyse(p)
	if err != nil {
		t.Fatalf("Analyse: %v", err)
	}

	beforeExit := one1(t, findEvents(g, ast.Identifier, &exitPhase, "before"), "before exit")
	fnEnter := one1(t, findEvents(g, ast.FunctionDeclaration, &enterPhase, ""), "function declaration enter")
	fnExit := one1(t, findEvents(g, ast.FunctionDeclaration, &exitPhase, ""), "function declaration exit")

	if !forwardReachable(beforeExit)[fnEnter.ID()] {
		t.Errorf("preceding statement does not reach the function declaration's own Enter")
	}
	if !containsID(fnEnter.ForwardFlows(), fnExit.ID()) {
		t.Errorf("function declaration does not link its Enter directly to its Exit at its lexical site")
	}
}
