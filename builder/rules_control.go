package builder

import (
	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/flowgraph"
)

// wireIf forks after the test into the consequent and, if present, the
// alternate; with no alternate, the false branch joins the statement's own
// Exit directly.
func (b *builder) wireIf(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)
	testOut, err := b.wireExpr(n.Test, one(enter))
	if err != nil {
		return nil, err
	}

	consOut, err := b.wireStatement(n.Consequent, testOut)
	if err != nil {
		return nil, err
	}

	var branchOut []flowgraph.ID
	branchOut = append(branchOut, consOut...)
	if n.Alternate != nil {
		altOut, err := b.wireStatement(n.Alternate, testOut)
		if err != nil {
			return nil, err
		}
		branchOut = append(branchOut, altOut...)
	} else {
		branchOut = append(branchOut, testOut...)
	}
	return b.finish(exit, branchOut), nil
}

// wireWhile wires the classic pre-test loop: Enter flows into the test, the
// test's Exit forks into the body and the loop's own Exit, and the body's
// out cycles back into the test's Enter. continue targets the test (so the
// condition is re-checked); break targets the loop's Exit.
func (b *builder) wireWhile(n *ast.Node, in []flowgraph.ID, label string) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)
	testOut, err := b.wireExpr(n.Test, one(enter))
	if err != nil {
		return nil, err
	}
	testEnter, _ := b.arena.HandleFor(n.Test)

	b.ctx.PushLoop(label, exit, testEnter)
	bodyOut, err := b.wireStatement(n.LoopBody, testOut)
	b.ctx.Pop()
	if err != nil {
		return nil, err
	}
	for _, id := range bodyOut {
		b.arena.Link(id, testEnter)
	}

	return b.finish(exit, testOut), nil
}

// wireDoWhile runs the body once unconditionally, then evaluates the test:
// true loops back to the body's own Enter, false falls through to the loop's
// Exit. continue still targets the test (not the body directly), since a
// do-while always re-checks the condition before it runs again; the test's
// Enter must therefore be known before the body is wired, so it is
// pre-allocated and wired afterward with wireExprReusing.
func (b *builder) wireDoWhile(n *ast.Node, in []flowgraph.ID, label string) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)

	testEnter := b.arena.Create(flowgraph.Enter, n.Test)

	b.ctx.PushLoop(label, exit, testEnter)
	bodyOut, err := b.wireStatement(n.LoopBody, one(enter))
	b.ctx.Pop()
	if err != nil {
		return nil, err
	}
	bodyEnter, _ := b.arena.HandleFor(n.LoopBody)

	testOut, err := b.wireExprReusing(n.Test, testEnter, bodyOut)
	if err != nil {
		return nil, err
	}
	for _, id := range testOut {
		b.arena.Link(id, bodyEnter)
	}
	return b.finish(exit, testOut), nil
}

// wireFor handles the general C-style for loop. The init clause runs once;
// continue resolves to the update clause if present, else the test, else the
// body's own re-entry point, since all three are the only candidates for
// "what continue must run before looping again".
func (b *builder) wireFor(n *ast.Node, in []flowgraph.ID, label string) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)

	cur, err := b.wireForInit(n, one(enter))
	if err != nil {
		return nil, err
	}

	var updateEnter flowgraph.ID
	if n.Update != nil {
		updateEnter = b.arena.Create(flowgraph.Enter, n.Update)
	}

	var testEnter flowgraph.ID
	var testOut []flowgraph.ID
	if n.Test != nil {
		testOut, err = b.wireExpr(n.Test, cur)
		if err != nil {
			return nil, err
		}
		testEnter, _ = b.arena.HandleFor(n.Test)
	}

	bodyIn := cur
	if n.Test != nil {
		bodyIn = testOut
	}

	continueTarget := updateEnter
	if continueTarget == nil {
		continueTarget = testEnter
	}

	var bodyOut []flowgraph.ID
	if continueTarget == nil {
		// Bare `for (;;)`: neither update nor test exists, so continue (and
		// the repeat edge) must target the body's own Enter, which does not
		// exist until the body is wired. Pre-allocate it.
		bodyEnter := b.arena.Create(flowgraph.Enter, n.LoopBody)
		continueTarget = bodyEnter
		b.ctx.PushLoop(label, exit, continueTarget)
		bodyOut, err = b.wireStatementReusing(n.LoopBody, bodyEnter, bodyIn)
		b.ctx.Pop()
	} else {
		b.ctx.PushLoop(label, exit, continueTarget)
		bodyOut, err = b.wireStatement(n.LoopBody, bodyIn)
		b.ctx.Pop()
	}
	if err != nil {
		return nil, err
	}

	switch {
	case n.Update != nil:
		updOut, err := b.wireExprReusing(n.Update, updateEnter, bodyOut)
		if err != nil {
			return nil, err
		}
		if n.Test != nil {
			for _, id := range updOut {
				b.arena.Link(id, testEnter)
			}
		} else {
			// No test: the update's own Exit must cycle back to the body's
			// Enter (re-run the body), not to the update itself.
			bodyEnter, _ := b.arena.HandleFor(n.LoopBody)
			for _, id := range updOut {
				b.arena.Link(id, bodyEnter)
			}
		}
	case n.Test != nil:
		for _, id := range bodyOut {
			b.arena.Link(id, testEnter)
		}
	default:
		for _, id := range bodyOut {
			b.arena.Link(id, continueTarget)
		}
	}

	var loopOut []flowgraph.ID
	if n.Test != nil {
		loopOut = testOut
	}
	return b.finish(exit, loopOut), nil
}

// wireForInit wires a for-loop's optional init clause, which is either a
// VariableDeclaration (`for (var i = 0; ...)`) or a bare expression
// (`for (i = 0; ...)`).
func (b *builder) wireForInit(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	if n.Init == nil {
		return in, nil
	}
	if n.Init.Kind == ast.VariableDeclaration {
		return b.wireVariableDeclaration(n.Init, in)
	}
	return b.wireExpr(n.Init, in)
}

// wireForIn wires `for (left in right) body` as a single synthetic
// enumeration test: right is evaluated once, then each iteration forks
// between entering the body (with left's binding updated) and the loop's
// Exit once enumeration is exhausted. Because this system performs no value
// analysis, the fork is unconditional rather than driven by an actual
// enumerated-property count — the graph records that both outcomes are
// reachable on every pass, which is the most a structural CFG can say about
// a for-in's dynamic enumeration.
func (b *builder) wireForIn(n *ast.Node, in []flowgraph.ID, label string) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)
	rightOut, err := b.wireExpr(n.Right, one(enter))
	if err != nil {
		return nil, err
	}

	leftEnter := b.arena.Create(flowgraph.Enter, n.Left)
	b.ctx.PushLoop(label, exit, leftEnter)
	leftOut, err := b.wireForInBinding(n.Left, leftEnter, rightOut)
	if err != nil {
		b.ctx.Pop()
		return nil, err
	}
	bodyOut, err := b.wireStatement(n.LoopBody, leftOut)
	b.ctx.Pop()
	if err != nil {
		return nil, err
	}
	for _, id := range bodyOut {
		b.arena.Link(id, leftEnter)
	}

	return b.finish(exit, append(append([]flowgraph.ID{}, rightOut...), bodyOut...)), nil
}

// wireForInBinding wires the left side of a for-in, which is either a
// VariableDeclaration (`for (var k in obj)`) holding a single declarator
// with no initializer, or a bare identifier/member expression
// (`for (k in obj)`).
func (b *builder) wireForInBinding(n *ast.Node, enter flowgraph.ID, in []flowgraph.ID) ([]flowgraph.ID, error) {
	if n.Kind == ast.VariableDeclaration {
		return b.wireStatementReusing(n, enter, in)
	}
	return b.wireExprReusing(n, enter, in)
}

// wireLabeled wires the LabeledStatement node itself, then delegates to the
// wrapped statement. When the wrapped statement is a loop or switch, the
// label attaches directly to that construct's own frame so `continue label`
// (only meaningful for loops) and `break label` resolve there; any other
// wrapped statement gets a plain frameLabeled entry, which only a `break`
// naming this label resolves to (only loops are valid continue targets).
func (b *builder) wireLabeled(n *ast.Node, in []flowgraph.ID) ([]flowgraph.ID, error) {
	enter, exit := b.enterExit(n, in)
	inner := n.Statement

	var out []flowgraph.ID
	var err error
	switch inner.Kind {
	case ast.WhileStatement:
		out, err = b.wireWhile(inner, one(enter), n.Label)
	case ast.DoWhileStatement:
		out, err = b.wireDoWhile(inner, one(enter), n.Label)
	case ast.ForStatement:
		out, err = b.wireFor(inner, one(enter), n.Label)
	case ast.ForInStatement:
		out, err = b.wireForIn(inner, one(enter), n.Label)
	case ast.SwitchStatement:
		out, err = b.wireSwitch(inner, one(enter), n.Label)
	default:
		b.ctx.PushLabel(n.Label, exit)
		out, err = b.wireStatement(inner, one(enter))
		b.ctx.Pop()
	}
	if err != nil {
		return nil, err
	}
	return b.finish(exit, out), nil
}
