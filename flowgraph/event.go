// Package flowgraph implements an append-only arena of flow events plus a
// read-only query surface (Graph) over the finished graph.
package flowgraph

import (
	"fmt"
	"strconv"

	"github.com/fossabot/analyse-control/ast"
)

// Phase tags a FlowEvent as belonging to the hoisting phase or to the
// enter/exit halves of the execution phase.
type Phase int

const (
	Hoist Phase = iota
	Enter
	Exit
)

func (p Phase) String() string {
	switch p {
	case Hoist:
		return "Hoist"
	case Enter:
		return "Enter"
	case Exit:
		return "Exit"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ID identifies one FlowEvent uniquely for the lifetime of a Graph. The
// common case is an int-backed id; the contract permits string ids once the
// arena's integer space is exhausted (see Arena.Create), so callers must
// not assume a concrete underlying type.
type ID interface {
	flowEventID()
	String() string
}

type intID int64

func (intID) flowEventID() {}
func (i intID) String() string {
	return strconv.FormatInt(int64(i), 10)
}

type stringID string

func (stringID) flowEventID() {}
func (s stringID) String() string { return string(s) }

// eventRecord is the arena's internal representation of one FlowEvent.
// Only the Arena mutates forward/backward; everything downstream of
// construction reads through the Graph/FlowEvent wrappers.
type eventRecord struct {
	id       ID
	phase    Phase
	node     *ast.Node
	forward  []ID
	backward []ID
}
