// Package ast defines the AST node set consumed by the compiler: module,
// function definition, the control-flow and assignment statements, imports,
// and the expression forms (name, number, string, bytes, tuple, list, set,
// dict, call, binary/unary/boolean op, compare, attribute) documented by the
// compiler's input contract. Building an AST from source text is out of
// scope for this package; it only defines the shapes a parser would
// populate and a resolver would annotate.
package ast

import "github.com/denise-amiga/pycopy-lib/lang/token"

// Node represents any node in the AST.
type Node interface {
	// Span reports the start and end position of the node, for diagnostics.
	Span() (start, end token.Pos)

	// Walk enters each child node inside itself, to implement the Visitor
	// pattern in Walk.
	Walk(v Visitor)

	// String returns a short, human-readable description of the node, used
	// by Printer and in diagnostics. It never recurses into children.
	String() string
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node

	// BlockEnding returns true if the statement must only appear last in a
	// block (return, break, continue).
	BlockEnding() bool
}

// ExprContext tags whether a Name or Attribute expression is being read
// (Load) or assigned to (Store). It is set once by whatever builds the AST
// and never mutated by the compiler: augmented assignment and definitional
// stores pass an explicit, separate context to the variable-emission
// routine instead of rewriting the node (see the compiler's emitVar).
type ExprContext uint8

const (
	Load ExprContext = iota
	Store
)

func (c ExprContext) String() string {
	if c == Store {
		return "store"
	}
	return "load"
}
