package builder

import (
	"testing"

	"github.com/fossabot/analyse-control/flowgraph"
)

func idFor(t *testing.T, a *flowgraph.Arena) flowgraph.ID {
	t.Helper()
	return a.Create(flowgraph.Enter, nil)
}

func TestResolveBreakUnlabeledFindsInnermostLoop(t *testing.T) {
	a := flowgraph.NewArena()
	outerBreak, innerBreak := idFor(t, a), idFor(t, a)

	c := NewContext()
	c.PushLoop("", outerBreak, idFor(t, a))
	c.PushLoop("", innerBreak, idFor(t, a))

	target, through, err := c.ResolveBreak("")
	if err != nil {
		t.Fatalf("ResolveBreak: %v", err)
	}
	if target != innerBreak {
		t.Errorf("ResolveBreak(\"\") = %v, want the innermost loop's break target", target)
	}
	if len(through) != 0 {
		t.Errorf("ResolveBreak crossed %d finally frames, want 0", len(through))
	}
}

func TestResolveBreakLabeledSkipsToMatchingFrame(t *testing.T) {
	a := flowgraph.NewArena()
	outerBreak, innerBreak := idFor(t, a), idFor(t, a)

	c := NewContext()
	c.PushLoop("outer", outerBreak, idFor(t, a))
	c.PushLoop("", innerBreak, idFor(t, a))

	target, _, err := c.ResolveBreak("outer")
	if err != nil {
		t.Fatalf("ResolveBreak: %v", err)
	}
	if target != outerBreak {
		t.Errorf("ResolveBreak(\"outer\") = %v, want the outer loop's break target", target)
	}
}

func TestResolveBreakUnknownLabelIsUnresolvedJumpError(t *testing.T) {
	c := NewContext()
	a := flowgraph.NewArena()
	c.PushLoop("", idFor(t, a), idFor(t, a))

	_, _, err := c.ResolveBreak("nonexistent")
	ujErr, ok := err.(*UnresolvedJumpError)
	if !ok {
		t.Fatalf("ResolveBreak(unknown label) error = %v, want *UnresolvedJumpError", err)
	}
	if ujErr.Kind != "break" || ujErr.Label != "nonexistent" {
		t.Errorf("UnresolvedJumpError = %+v, want Kind=break Label=nonexistent", ujErr)
	}
}

func TestResolveContinueIgnoresSwitchFrames(t *testing.T) {
	a := flowgraph.NewArena()
	loopContinue := idFor(t, a)

	c := NewContext()
	c.PushLoop("", idFor(t, a), loopContinue)
	c.PushSwitch("", idFor(t, a))

	target, _, err := c.ResolveContinue("")
	if err != nil {
		t.Fatalf("ResolveContinue: %v", err)
	}
	if target != loopContinue {
		t.Errorf("ResolveContinue skipped the switch frame incorrectly, got %v want %v", target, loopContinue)
	}
}

func TestResolveContinueWithNoEnclosingLoopErrors(t *testing.T) {
	c := NewContext()
	a := flowgraph.NewArena()
	c.PushSwitch("", idFor(t, a))

	_, _, err := c.ResolveContinue("")
	ujErr, ok := err.(*UnresolvedJumpError)
	if !ok {
		t.Fatalf("ResolveContinue error = %v, want *UnresolvedJumpError", err)
	}
	if ujErr.Kind != "continue" {
		t.Errorf("UnresolvedJumpError.Kind = %q, want continue", ujErr.Kind)
	}
}

func TestResolveReturnFindsEnclosingFunction(t *testing.T) {
	a := flowgraph.NewArena()
	fnExit := idFor(t, a)

	c := NewContext()
	c.PushProgram(idFor(t, a))
	c.PushFunction(fnExit)

	target, _, err := c.ResolveReturn()
	if err != nil {
		t.Fatalf("ResolveReturn: %v", err)
	}
	if target != fnExit {
		t.Errorf("ResolveReturn() = %v, want %v", target, fnExit)
	}
}

func TestResolveReturnOutsideFunctionErrors(t *testing.T) {
	a := flowgraph.NewArena()
	c := NewContext()
	c.PushProgram(idFor(t, a))

	_, _, err := c.ResolveReturn()
	if _, ok := err.(*UnresolvedJumpError); !ok {
		t.Fatalf("ResolveReturn() error = %v, want *UnresolvedJumpError", err)
	}
}

func TestResolveThrowPrefersNearestCatchOverProgramSink(t *testing.T) {
	a := flowgraph.NewArena()
	throwSink, catchEntry := idFor(t, a), idFor(t, a)

	c := NewContext()
	c.PushProgram(throwSink)
	c.PushCatch(catchEntry)

	target, _, err := c.ResolveThrow()
	if err != nil {
		t.Fatalf("ResolveThrow: %v", err)
	}
	if target != catchEntry {
		t.Errorf("ResolveThrow() = %v, want the nearest catch's entry", target)
	}
}

func TestResolveThrowFallsBackToProgramSink(t *testing.T) {
	a := flowgraph.NewArena()
	throwSink := idFor(t, a)

	c := NewContext()
	c.PushProgram(throwSink)

	target, _, err := c.ResolveThrow()
	if err != nil {
		t.Fatalf("ResolveThrow: %v", err)
	}
	if target != throwSink {
		t.Errorf("ResolveThrow() = %v, want the program's throw sink", target)
	}
}

func TestRouteJumpNoFinallyLinksDirectly(t *testing.T) {
	a := flowgraph.NewArena()
	from, target := idFor(t, a), idFor(t, a)

	RouteJump(a, from, target, nil)

	g := flowgraph.NewGraph(a, from, target)
	fromEvent := g.AllEvents()[0]
	if !containsID(fromEvent.ForwardFlows(), target) {
		t.Errorf("RouteJump with no crossed frames did not link from directly to target")
	}
}

func TestRouteJumpCrossingOneFinallyRecordsPending(t *testing.T) {
	a := flowgraph.NewArena()
	from, target, finallyEntry := idFor(t, a), idFor(t, a), idFor(t, a)

	f := &frame{kind: frameTryFinally, finallyEntry: finallyEntry, pending: map[flowgraph.ID]bool{}}
	RouteJump(a, from, target, []*frame{f})

	g := flowgraph.NewGraph(a, from, target)
	fromEvent := g.AllEvents()[0]
	if !containsID(fromEvent.ForwardFlows(), finallyEntry) {
		t.Fatalf("RouteJump crossing one finally did not link from to the finally's entry")
	}
	if !f.pending[target] {
		t.Errorf("RouteJump did not record target as the finally frame's pending next hop")
	}
}

func TestRouteJumpCrossingTwoFinalliesChainsPendingHops(t *testing.T) {
	a := flowgraph.NewArena()
	from, target := idFor(t, a), idFor(t, a)
	innerFinally, outerFinally := idFor(t, a), idFor(t, a)

	inner := &frame{kind: frameTryFinally, finallyEntry: innerFinally, pending: map[flowgraph.ID]bool{}}
	outer := &frame{kind: frameTryFinally, finallyEntry: outerFinally, pending: map[flowgraph.ID]bool{}}

	// through is innermost-first, matching Context.crossing's contract.
	RouteJump(a, from, target, []*frame{inner, outer})

	g := flowgraph.NewGraph(a, from, target)
	fromEvent := g.AllEvents()[0]
	if !containsID(fromEvent.ForwardFlows(), innerFinally) {
		t.Fatalf("RouteJump did not link from to the innermost finally's entry first")
	}
	if !inner.pending[outerFinally] {
		t.Errorf("inner finally frame's pending hop should be the outer finally's entry, not the final target")
	}
	if !outer.pending[target] {
		t.Errorf("outer finally frame's pending hop should be the final target")
	}
}
