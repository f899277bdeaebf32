// The analyse-control command builds a control flow graph from a parsed
// ECMAScript 5 abstract syntax tree and prints it as JSON events or as a
// plain edge listing.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fossabot/analyse-control/ast"
	"github.com/fossabot/analyse-control/builder"
	"github.com/fossabot/analyse-control/flowgraph"
)

var (
	formatFlag = flag.String("format", "plain", "output in 'plain' or 'json'")
	allFlag    = flag.Bool("functions", false, "also build a graph for every function in the program")
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [-format=plain|json] [-functions] <ast.json>

<ast.json> holds a Program node in the JSON shape documented on ast.Node.
With -functions, a graph is also built for every FunctionDeclaration and
FunctionExpression found anywhere in the program.
`, filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	program, err := readProgram(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "analyse-control:", err)
		os.Exit(1)
	}

	if *allFlag {
		programGraph, fns, err := builder.BuildAll(program)
		if err != nil {
			fmt.Fprintln(os.Stderr, "analyse-control:", err)
			os.Exit(1)
		}
		if err := emit(programGraph, *formatFlag, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "analyse-control:", err)
			os.Exit(1)
		}
		for fn, g := range fns {
			fmt.Fprintf(os.Stdout, "--- function %s ---\n", fn.String())
			if err := emit(g, *formatFlag, os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, "analyse-control:", err)
				os.Exit(1)
			}
		}
		return
	}

	g, err := builder.Analyse(program)
	if err != nil {
		fmt.Fprintln(os.Stderr, "analyse-control:", err)
		os.Exit(1)
	}
	if err := emit(g, *formatFlag, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "analyse-control:", err)
		os.Exit(1)
	}
}

func readProgram(path string) (*ast.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var program ast.Node
	if err := json.Unmarshal(data, &program); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &program, nil
}

// jsonEvent is the wire shape for -format=json: one row per flow event, with
// its forward edges expressed as handles so a consumer can reconstruct the
// graph without re-running the builder.
type jsonEvent struct {
	ID       string      `json:"id"`
	Phase    string      `json:"phase"`
	Kind     string      `json:"kind,omitempty"`
	Forward  []string    `json:"forward,omitempty"`
	Backward []string    `json:"backward,omitempty"`
	Attrs    interface{} `json:"attrs,omitempty"`
}

type jsonGraph struct {
	SchemaVersion string      `json:"schemaVersion"`
	Start         string      `json:"start"`
	End           string      `json:"end"`
	Events        []jsonEvent `json:"events"`
}

func emit(g *flowgraph.Graph, format string, w *os.File) error {
	switch format {
	case "json":
		return emitJSON(g, w)
	case "plain":
		emitPlain(g, w)
		return nil
	default:
		return fmt.Errorf("unknown -format %q (want plain or json)", format)
	}
}

func emitJSON(g *flowgraph.Graph, w *os.File) error {
	doc := jsonGraph{
		SchemaVersion: g.SchemaVersion(),
		Start:         g.StartOfFlow().ID().String(),
		End:           g.EndOfFlow().ID().String(),
	}
	for _, e := range g.AllEvents() {
		view := e.Node()
		je := jsonEvent{ID: e.ID().String(), Kind: string(view.Kind)}
		switch {
		case e.IsHoist():
			je.Phase = "Hoist"
		case e.IsEnter():
			je.Phase = "Enter"
		case e.IsExit():
			je.Phase = "Exit"
		}
		for _, f := range e.ForwardFlows() {
			je.Forward = append(je.Forward, f.ID().String())
		}
		for _, bk := range e.BackwardFlows() {
			je.Backward = append(je.Backward, bk.ID().String())
		}
		if len(view.Attrs) > 0 {
			je.Attrs = view.Attrs
		}
		doc.Events = append(doc.Events, je)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func emitPlain(g *flowgraph.Graph, w *os.File) {
	fmt.Fprintf(w, "start: %s\n", g.StartOfFlow().ID())
	fmt.Fprintf(w, "end:   %s\n", g.EndOfFlow().ID())
	for _, e := range g.AllEvents() {
		for _, f := range e.ForwardFlows() {
			fmt.Fprintf(w, "%s -> %s\n", e.ID(), f.ID())
		}
	}
}
