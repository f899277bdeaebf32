package builder

import "github.com/fossabot/analyse-control/flowgraph"

// frameKind identifies which enclosing-construct role a frame plays.
type frameKind int

const (
	frameLoop frameKind = iota
	frameSwitch
	frameLabeled
	frameTryFinally
	frameCatch
	frameFunction
	frameProgram
)

// frame is one entry on the Context stack. Which fields are meaningful
// depends on kind. This generalizes extras/cfg.go's single "branches
// patched later" list into an explicit, immediately-resolvable frame per
// enclosing construct, since this builder resolves jumps eagerly rather
// than deferring them (see the Context doc comment below).
type frame struct {
	kind  frameKind
	label string // non-empty for frameLoop/frameSwitch/frameLabeled carrying a label

	breakTarget    flowgraph.ID
	continueTarget flowgraph.ID // frameLoop only

	finallyEntry flowgraph.ID            // frameTryFinally
	pending      map[flowgraph.ID]bool   // frameTryFinally: next hops to wire once the finally block's own exit edges are known

	catchEntry flowgraph.ID // frameCatch

	functionExit flowgraph.ID // frameFunction

	throwSink flowgraph.ID // frameProgram
}

// Context is a stack of enclosing constructs consulted to resolve
// break/continue/return/throw targets. Unlike extras/cfg.go, which defers
// unresolved branches until the enclosing loop or switch is reached during
// traversal (safe there because the Go compiler has already rejected any
// truly unresolvable jump before that builder ever runs), Context resolves
// lexically and immediately: the input AST here is unchecked, so an
// unresolvable jump must surface as an error at the point it's found rather
// than silently falling through.
type Context struct {
	frames []*frame
}

// NewContext returns an empty context.
func NewContext() *Context { return &Context{} }

func (c *Context) push(f *frame) { c.frames = append(c.frames, f) }
func (c *Context) pop()          { c.frames = c.frames[:len(c.frames)-1] }

// PushLoop enters a while/do-while/for/for-in construct.
func (c *Context) PushLoop(label string, breakTarget, continueTarget flowgraph.ID) {
	c.push(&frame{kind: frameLoop, label: label, breakTarget: breakTarget, continueTarget: continueTarget})
}

// PushSwitch enters a switch construct.
func (c *Context) PushSwitch(label string, breakTarget flowgraph.ID) {
	c.push(&frame{kind: frameSwitch, label: label, breakTarget: breakTarget})
}

// PushLabel enters a labeled statement whose body is not itself a loop or
// switch (those attach the label directly to their own frame instead, so
// that `continue label` can find a continue target).
func (c *Context) PushLabel(label string, breakTarget flowgraph.ID) {
	c.push(&frame{kind: frameLabeled, label: label, breakTarget: breakTarget})
}

// PushTryFinally enters the protected region (body and, if present, catch)
// of a try statement that has a finally block.
func (c *Context) PushTryFinally(finallyEntry flowgraph.ID) *frame {
	f := &frame{kind: frameTryFinally, finallyEntry: finallyEntry, pending: map[flowgraph.ID]bool{}}
	c.push(f)
	return f
}

// PushCatch enters the protected body of a try statement that has a catch
// clause (pushed only around the body, not the catch clause itself).
func (c *Context) PushCatch(catchEntry flowgraph.ID) {
	c.push(&frame{kind: frameCatch, catchEntry: catchEntry})
}

// PushFunction enters a function body.
func (c *Context) PushFunction(functionExit flowgraph.ID) {
	c.push(&frame{kind: frameFunction, functionExit: functionExit})
}

// PushProgram enters the top-level program scope, establishing the throw
// sink used when no enclosing catch exists.
func (c *Context) PushProgram(throwSink flowgraph.ID) {
	c.push(&frame{kind: frameProgram, throwSink: throwSink})
}

// Pop removes the most recently pushed frame.
func (c *Context) Pop() { c.pop() }

// crossing walks the frame stack from innermost to outermost, collecting
// every frameTryFinally crossed before stop returns true for a frame. It
// returns those crossed frames (innermost first) and the frame that
// satisfied stop, or nil if none did.
func (c *Context) crossing(stop func(*frame) bool) (through []*frame, found *frame) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		f := c.frames[i]
		if f.kind == frameTryFinally {
			through = append(through, f)
			continue
		}
		if stop(f) {
			return through, f
		}
	}
	return through, nil
}

// ResolveBreak finds the target event for a (possibly labeled) break and
// the finally frames it must cross first, innermost first.
func (c *Context) ResolveBreak(label string) (target flowgraph.ID, through []*frame, err error) {
	through, f := c.crossing(func(f *frame) bool {
		switch f.kind {
		case frameLoop, frameSwitch:
			return label == "" || f.label == label
		case frameLabeled:
			return label != "" && f.label == label
		}
		return false
	})
	if f == nil {
		return nil, nil, &UnresolvedJumpError{Kind: "break", Label: label}
	}
	return f.breakTarget, through, nil
}

// ResolveContinue finds the target event for a (possibly labeled) continue.
// Only loop frames are valid continue targets, per ES5: a label on a
// non-loop statement cannot be continued.
func (c *Context) ResolveContinue(label string) (target flowgraph.ID, through []*frame, err error) {
	through, f := c.crossing(func(f *frame) bool {
		return f.kind == frameLoop && (label == "" || f.label == label)
	})
	if f == nil {
		return nil, nil, &UnresolvedJumpError{Kind: "continue", Label: label}
	}
	return f.continueTarget, through, nil
}

// ResolveReturn finds the enclosing function's exit event.
func (c *Context) ResolveReturn() (target flowgraph.ID, through []*frame, err error) {
	through, f := c.crossing(func(f *frame) bool { return f.kind == frameFunction })
	if f == nil {
		return nil, nil, &UnresolvedJumpError{Kind: "return"}
	}
	return f.functionExit, through, nil
}

// ResolveThrow finds the nearest enclosing catch's entry event, or the
// program-level throw sink if none exists. The program frame is always
// present (pushed by the Driver), so this never fails.
func (c *Context) ResolveThrow() (target flowgraph.ID, through []*frame, err error) {
	through, f := c.crossing(func(f *frame) bool {
		return f.kind == frameCatch || f.kind == frameProgram
	})
	if f == nil {
		return nil, nil, &UnresolvedJumpError{Kind: "throw"}
	}
	if f.kind == frameCatch {
		return f.catchEntry, through, nil
	}
	return f.throwSink, through, nil
}

// RouteJump wires a jump statement's Enter event (from) toward target,
// passing through any crossed finally blocks first. Each crossed frame's
// pending set is populated with the next hop (the next finally's entry, or
// target if it is the last one crossed) so the try statement that owns
// that finally can union it into the finally block's own outgoing edges
// once built (see builder/rules_try.go).
func RouteJump(arena *flowgraph.Arena, from, target flowgraph.ID, through []*frame) {
	if len(through) == 0 {
		arena.Link(from, target)
		return
	}
	arena.Link(from, through[0].finallyEntry)
	for i, f := range through {
		next := target
		if i+1 < len(through) {
			next = through[i+1].finallyEntry
		}
		f.pending[next] = true
	}
}
