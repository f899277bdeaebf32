package builder

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/flowgraph"
	"github.com/fossabot/analyse-control/internal/flowlog"
)

// Analyse builds the flow graph for a single Program: its hoisted function
// declarations and then its hoisted var declarators, each group in source
// order, are linked as a linear chain of Hoist events ahead of the ordinary
// Enter/Exit wiring of its statements.
func Analyse(program *ast.Node) (*flowgraph.Graph, error) {
	return AnalyseWithLogger(program, nil)
}

// AnalyseWithLogger is Analyse with an explicit diagnostic sink; a nil
// logger discards every diagnostic.
func AnalyseWithLogger(program *ast.Node, logger *flowlog.Logger) (*flowgraph.Graph, error) {
	if program == nil || program.Kind != ast.Program {
		kind := ""
		if program != nil {
			kind = string(program.Kind)
		}
		return nil, &MalformedASTError{Kind: kind, Reason: "Analyse requires a Program root"}
	}
	return build(program, program.Body, logger)
}

// BuildAll builds the Program's own graph plus an independent graph for
// every function declared or expressed anywhere within it. Each function's
// subgraph is rooted at its own FunctionDeclaration/FunctionExpression node
// and is entirely independent of its siblings and of the Program graph, so
// they are built concurrently with errgroup; building any single graph
// remains single-threaded.
func BuildAll(program *ast.Node) (*flowgraph.Graph, map[*ast.Node]*flowgraph.Graph, error) {
	programGraph, err := Analyse(program)
	if err != nil {
		return nil, nil, err
	}

	var fns []*ast.Node
	ast.Walk(program, func(n *ast.Node) bool {
		if n.Kind == ast.FunctionDeclaration || n.Kind == ast.FunctionExpression {
			fns = append(fns, n)
		}
		return true
	})

	results := make([]*flowgraph.Graph, len(fns))
	g, _ := errgroup.WithContext(context.Background())
	for i, fn := range fns {
		i, fn := i, fn
		g.Go(func() error {
			fg, err := buildFunction(fn, nil)
			if err != nil {
				return err
			}
			results[i] = fg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	functions := make(map[*ast.Node]*flowgraph.Graph, len(fns))
	for i, fn := range fns {
		functions[fn] = results[i]
	}
	return programGraph, functions, nil
}

func buildFunction(fn *ast.Node, logger *flowlog.Logger) (*flowgraph.Graph, error) {
	return build(fn, fn.FnBody.Body, logger)
}

// build wires one function-like scope (a Program or a function body) and
// freezes the result into a Graph. scopeNode's own Enter/Exit events bound
// the scope: for a Program, an uncaught throw routes to the Program's own
// Exit (nothing left to unwind to); for a function, it routes to that
// function's Exit too, since this system does not model interprocedural
// unwinding into a caller.
func build(scopeNode *ast.Node, body []*ast.Node, logger *flowlog.Logger) (*flowgraph.Graph, error) {
	b := newBuilder(logger)

	enter := b.arena.Create(flowgraph.Enter, scopeNode)
	exit := b.arena.Create(flowgraph.Exit, scopeNode)

	b.ctx.PushProgram(exit)
	if scopeNode.Kind != ast.Program {
		b.ctx.PushFunction(exit)
	}

	hoists := collectHoists(body)
	if scopeNode.Kind != ast.Program {
		warnShadowedParams(b.logger, scopeNode.Params, hoists.vars)
	}

	cur := one(enter)
	var firstHoist, lastHoist flowgraph.ID
	link := func(h flowgraph.ID) {
		if lastHoist != nil {
			b.arena.Link(lastHoist, h)
		} else {
			for _, id := range cur {
				b.arena.Link(id, h)
			}
			firstHoist = h
		}
		lastHoist = h
	}
	for _, fd := range hoists.funcs {
		link(b.arena.Create(flowgraph.Hoist, fd))
	}
	for _, decl := range hoists.vars {
		link(b.arena.Create(flowgraph.Hoist, decl))
	}
	if lastHoist != nil {
		cur = one(lastHoist)
	}

	out, err := b.wireSequence(body, cur)
	if scopeNode.Kind != ast.Program {
		b.ctx.Pop()
	}
	b.ctx.Pop()
	if err != nil {
		return nil, err
	}
	b.finish(exit, out)

	start := enter
	if firstHoist != nil {
		start = firstHoist
	}
	return flowgraph.NewGraph(b.arena, start, exit), nil
}

// warnShadowedParams logs a diagnostic for every hoisted var whose name
// matches one of the function's own parameters: legal ES5 (the var
// declaration is a no-op re-declaration), but worth flagging since it
// usually signals a typo rather than intent.
func warnShadowedParams(logger *flowlog.Logger, params, vars []*ast.Node) {
	if len(params) == 0 || len(vars) == 0 {
		return
	}
	names := make(map[string]bool, len(params))
	for _, p := range params {
		names[p.Name] = true
	}
	for _, v := range vars {
		if v.ID != nil && names[v.ID.Name] {
			logger.Warn("hoisted var %q shadows a parameter of the same name", v.ID.Name)
		}
	}
}
