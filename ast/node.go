// Package ast models the ESTree shape of an already-parsed ECMAScript 5
// abstract syntax tree. It is read-only: nothing in this package mutates a
// Node after construction, and the flow graph builder never needs to.
package ast

import "fmt"

// Kind identifies the ESTree node type. Only the ES5 subset listed in the
// system's external interface is recognized; any other value is rejected by
// the builder as a MalformedAST error.
type Kind string

const (
	Program             Kind = "Program"
	BlockStatement      Kind = "BlockStatement"
	ExpressionStatement Kind = "ExpressionStatement"
	IfStatement         Kind = "IfStatement"
	LabeledStatement    Kind = "LabeledStatement"
	BreakStatement      Kind = "BreakStatement"
	ContinueStatement   Kind = "ContinueStatement"
	WithStatement       Kind = "WithStatement"
	SwitchStatement     Kind = "SwitchStatement"
	SwitchCase          Kind = "SwitchCase"
	ReturnStatement     Kind = "ReturnStatement"
	ThrowStatement      Kind = "ThrowStatement"
	TryStatement        Kind = "TryStatement"
	CatchClause         Kind = "CatchClause"
	WhileStatement      Kind = "WhileStatement"
	DoWhileStatement    Kind = "DoWhileStatement"
	ForStatement        Kind = "ForStatement"
	ForInStatement      Kind = "ForInStatement"
	FunctionDeclaration Kind = "FunctionDeclaration"
	VariableDeclaration Kind = "VariableDeclaration"
	VariableDeclarator  Kind = "VariableDeclarator"
	ThisExpression      Kind = "ThisExpression"
	ArrayExpression     Kind = "ArrayExpression"
	ObjectExpression    Kind = "ObjectExpression"
	Property            Kind = "Property"
	FunctionExpression  Kind = "FunctionExpression"
	SequenceExpression  Kind = "SequenceExpression"
	UnaryExpression     Kind = "UnaryExpression"
	BinaryExpression    Kind = "BinaryExpression"
	AssignmentExpression Kind = "AssignmentExpression"
	UpdateExpression    Kind = "UpdateExpression"
	LogicalExpression   Kind = "LogicalExpression"
	ConditionalExpression Kind = "ConditionalExpression"
	CallExpression      Kind = "CallExpression"
	NewExpression       Kind = "NewExpression"
	MemberExpression    Kind = "MemberExpression"
	Identifier          Kind = "Identifier"
	Literal             Kind = "Literal"
)

// knownKinds backs Valid; a set literal keeps the membership check O(1)
// without forcing every caller to enumerate the Kind constants themselves.
var knownKinds = map[Kind]bool{
	Program: true, BlockStatement: true, ExpressionStatement: true,
	IfStatement: true, LabeledStatement: true, BreakStatement: true,
	ContinueStatement: true, WithStatement: true, SwitchStatement: true,
	SwitchCase: true, ReturnStatement: true, ThrowStatement: true,
	TryStatement: true, CatchClause: true, WhileStatement: true,
	DoWhileStatement: true, ForStatement: true, ForInStatement: true,
	FunctionDeclaration: true, VariableDeclaration: true,
	VariableDeclarator: true, ThisExpression: true, ArrayExpression: true,
	ObjectExpression: true, Property: true, FunctionExpression: true,
	SequenceExpression: true, UnaryExpression: true, BinaryExpression: true,
	AssignmentExpression: true, UpdateExpression: true,
	LogicalExpression: true, ConditionalExpression: true,
	CallExpression: true, NewExpression: true, MemberExpression: true,
	Identifier: true, Literal: true,
}

// Valid reports whether k is one of the node kinds this system recognizes.
func (k Kind) Valid() bool { return knownKinds[k] }

// Node is one ESTree node. Only the fields relevant to a given Kind are
// populated; the rest stay at their zero value. Child pointers are nil when
// absent (e.g. Alternate on an IfStatement with no else).
//
// The json tags define this system's own input wire shape (used by
// cmd/analyse-control): camelCase and ESTree-flavored, but not a claim of
// byte-for-byte ESTree compatibility — fields with no ESTree equivalent
// (LoopBody, Init2, PropertyExpr) exist to disambiguate this single shared
// struct's reused slots and are named accordingly in JSON too.
type Node struct {
	Kind Kind `json:"type"`

	// Identifier / Literal
	Name string `json:"name,omitempty"`

	// Operator carries the textual operator for Binary/Logical/Unary/
	// Update/Assignment expressions (e.g. "&&", "++", "+=").
	Operator string `json:"operator,omitempty"`

	// Label carries the target label name for LabeledStatement,
	// BreakStatement, and ContinueStatement (empty when unlabeled).
	Label string `json:"label,omitempty"`

	// VariableDeclaration.Kind is always "var" in ES5 but is carried
	// through for fidelity with the ESTree shape.
	VarKind string `json:"kind,omitempty"`

	// Program / BlockStatement
	Body []*Node `json:"body,omitempty"`

	// ExpressionStatement, ReturnStatement (optional), ThrowStatement,
	// UnaryExpression, UpdateExpression argument, SpreadElement-like uses.
	Expression *Node `json:"expression,omitempty"`
	Argument   *Node `json:"argument,omitempty"`

	// IfStatement / ConditionalExpression / WhileStatement / DoWhileStatement
	Test       *Node `json:"test,omitempty"`
	Consequent *Node `json:"consequent,omitempty"`
	Alternate  *Node `json:"alternate,omitempty"`

	// ForStatement
	Init   *Node `json:"init,omitempty"`
	Update *Node `json:"update,omitempty"`

	// ForInStatement
	Left  *Node `json:"left,omitempty"`
	Right *Node `json:"right,omitempty"`

	// WhileStatement / DoWhileStatement / ForStatement / ForInStatement body.
	// Kept distinct from Consequent/Alternate, which are reserved for
	// IfStatement and ConditionalExpression branches.
	LoopBody *Node `json:"loopBody,omitempty"`

	// LabeledStatement wraps one statement
	Statement *Node `json:"statement,omitempty"`

	// SwitchStatement
	Discriminant *Node   `json:"discriminant,omitempty"`
	Cases        []*Node `json:"cases,omitempty"` // SwitchCase nodes

	// SwitchCase: Test == nil means this is the `default:` case
	Consequents []*Node `json:"consequents,omitempty"` // statements in the case body

	// TryStatement
	Block     *Node `json:"block,omitempty"`     // BlockStatement
	Handler   *Node `json:"handler,omitempty"`   // CatchClause, nil if absent
	Finalizer *Node `json:"finalizer,omitempty"` // BlockStatement, nil if absent

	// CatchClause
	Param *Node `json:"param,omitempty"` // Identifier bound to the caught value

	// VariableDeclaration
	Declarations []*Node `json:"declarations,omitempty"` // VariableDeclarator nodes

	// VariableDeclarator
	ID    *Node `json:"id,omitempty"`    // Identifier
	Init2 *Node `json:"init2,omitempty"` // initializer expression, nil if absent (named Init2 to
	// avoid colliding with ForStatement.Init on the shared struct)

	// FunctionDeclaration / FunctionExpression
	Params []*Node `json:"params,omitempty"` // Identifier nodes
	FnBody *Node   `json:"fnBody,omitempty"` // BlockStatement

	// BinaryExpression / LogicalExpression / AssignmentExpression (also
	// reuses Left/Right above)

	// CallExpression / NewExpression
	Callee    *Node   `json:"callee,omitempty"`
	Arguments []*Node `json:"arguments,omitempty"`

	// MemberExpression (also reuses Object/Property below)
	Object       *Node `json:"object,omitempty"`
	PropertyExpr *Node `json:"propertyExpr,omitempty"`
	Computed     bool  `json:"computed,omitempty"`

	// ArrayExpression
	Elements []*Node `json:"elements,omitempty"`

	// ObjectExpression
	Properties []*Node `json:"properties,omitempty"` // Property nodes

	// Property
	Key   *Node `json:"key,omitempty"`
	Value *Node `json:"value,omitempty"`

	// SequenceExpression
	Expressions []*Node `json:"expressions,omitempty"`

	// Literal
	LiteralValue interface{} `json:"literalValue,omitempty"`
	Raw          string      `json:"raw,omitempty"`
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Name != "" {
		return fmt.Sprintf("%s(%s)", n.Kind, n.Name)
	}
	return string(n.Kind)
}

// Walk performs a depth-first traversal, invoking visit on n and every
// reachable descendant. If visit returns false the subtree rooted at the
// node it was called with is not descended into. Walk is a convenience for
// tooling and tests, and builder.BuildAll uses it to find every function
// node; the builder's per-kind rules dispatch on typed fields directly
// rather than using a generic visitor.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Body {
		Walk(c, visit)
	}
	Walk(n.Expression, visit)
	Walk(n.Argument, visit)
	Walk(n.Test, visit)
	Walk(n.Consequent, visit)
	Walk(n.Alternate, visit)
	Walk(n.Init, visit)
	Walk(n.Update, visit)
	Walk(n.Left, visit)
	Walk(n.Right, visit)
	Walk(n.LoopBody, visit)
	Walk(n.Statement, visit)
	Walk(n.Discriminant, visit)
	for _, c := range n.Cases {
		Walk(c, visit)
	}
	for _, c := range n.Consequents {
		Walk(c, visit)
	}
	Walk(n.Block, visit)
	Walk(n.Handler, visit)
	Walk(n.Finalizer, visit)
	Walk(n.Param, visit)
	for _, c := range n.Declarations {
		Walk(c, visit)
	}
	Walk(n.ID, visit)
	Walk(n.Init2, visit)
	for _, c := range n.Params {
		Walk(c, visit)
	}
	Walk(n.FnBody, visit)
	Walk(n.Callee, visit)
	for _, c := range n.Arguments {
		Walk(c, visit)
	}
	Walk(n.Object, visit)
	Walk(n.PropertyExpr, visit)
	for _, c := range n.Elements {
		Walk(c, visit)
	}
	for _, c := range n.Properties {
		Walk(c, visit)
	}
	Walk(n.Key, visit)
	Walk(n.Value, visit)
	for _, c := range n.Expressions {
		Walk(c, visit)
	}
}
