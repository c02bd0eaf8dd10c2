package ast

import (
	"fmt"

	"github.com/denise-amiga/pycopy-lib/lang/token"
)

// Module is the root node of a compiled file: a flat sequence of top-level
// statements. It is also a scope-defining node: the compiler looks it up in
// the symbol-table map to get the module scope's Table.
type Module struct {
	Name string // display name, typically the source filename
	Body []Stmt
}

func (n *Module) String() string           { return fmt.Sprintf("module %s", n.Name) }
func (n *Module) Span() (start, end token.Pos) { return spanOfStmts(n.Body) }
func (n *Module) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}

// FunctionDef represents a function declaration statement: def NAME(params):
// body. It is a scope-defining node, looked up in the symbol-table map to
// get the function scope's Table.
type FunctionDef struct {
	Pos    token.Pos
	Name   *Ident
	Params []*Ident
	Body   []Stmt
}

func (n *FunctionDef) String() string {
	return fmt.Sprintf("def %s/%d", n.Name.Name, len(n.Params))
}
func (n *FunctionDef) Span() (start, end token.Pos) {
	_, end = spanOfStmts(n.Body)
	return n.Pos, end
}
func (n *FunctionDef) Walk(v Visitor) {
	Walk(v, n.Name)
	for _, p := range n.Params {
		Walk(v, p)
	}
	for _, s := range n.Body {
		Walk(v, s)
	}
}
func (n *FunctionDef) BlockEnding() bool { return false }

// If represents an if/else statement. elif chains are represented by a
// single-statement Orelse containing a nested *If, the same convention
// Python's own ast module uses.
type If struct {
	Pos    token.Pos
	Test   Expr
	Body   []Stmt
	Orelse []Stmt // nil if no else/elif
}

func (n *If) String() string { return "if" }
func (n *If) Span() (start, end token.Pos) {
	_, end = spanOfStmts(n.Body)
	if len(n.Orelse) > 0 {
		_, end = spanOfStmts(n.Orelse)
	}
	return n.Pos, end
}
func (n *If) Walk(v Visitor) {
	Walk(v, n.Test)
	for _, s := range n.Body {
		Walk(v, s)
	}
	for _, s := range n.Orelse {
		Walk(v, s)
	}
}
func (n *If) BlockEnding() bool { return false }

// While represents a while statement, with an optional else clause that
// runs when the loop condition becomes false (not when a break fires).
type While struct {
	Pos    token.Pos
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (n *While) String() string { return "while" }
func (n *While) Span() (start, end token.Pos) {
	_, end = spanOfStmts(n.Body)
	return n.Pos, end
}
func (n *While) Walk(v Visitor) {
	Walk(v, n.Test)
	for _, s := range n.Body {
		Walk(v, s)
	}
	for _, s := range n.Orelse {
		Walk(v, s)
	}
}
func (n *While) BlockEnding() bool { return false }

// For represents a for-in statement: for Target in Iter: Body else: Orelse.
type For struct {
	Pos    token.Pos
	Target Expr // assignable: *Ident or *Attribute in Store context
	Iter   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (n *For) String() string { return "for" }
func (n *For) Span() (start, end token.Pos) {
	_, end = spanOfStmts(n.Body)
	return n.Pos, end
}
func (n *For) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Iter)
	for _, s := range n.Body {
		Walk(v, s)
	}
	for _, s := range n.Orelse {
		Walk(v, s)
	}
}
func (n *For) BlockEnding() bool { return false }

// Break represents a break statement.
type Break struct{ Pos token.Pos }

func (n *Break) String() string               { return "break" }
func (n *Break) Span() (start, end token.Pos)  { return n.Pos, n.Pos }
func (n *Break) Walk(v Visitor)                {}
func (n *Break) BlockEnding() bool             { return true }

// Continue represents a continue statement.
type Continue struct{ Pos token.Pos }

func (n *Continue) String() string              { return "continue" }
func (n *Continue) Span() (start, end token.Pos) { return n.Pos, n.Pos }
func (n *Continue) Walk(v Visitor)               {}
func (n *Continue) BlockEnding() bool            { return true }

// Return represents a return statement. Value is nil for a bare "return".
type Return struct {
	Pos   token.Pos
	Value Expr
}

func (n *Return) String() string { return "return" }
func (n *Return) Span() (start, end token.Pos) {
	end = n.Pos
	if n.Value != nil {
		_, end = n.Value.Span()
	}
	return n.Pos, end
}
func (n *Return) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *Return) BlockEnding() bool { return true }

// Assign represents a (possibly chained) assignment: a = b = ... = Value.
// Each entry in Targets is assignable (*Ident or *Attribute, Store context).
type Assign struct {
	Pos     token.Pos
	Targets []Expr
	Value   Expr
}

func (n *Assign) String() string { return fmt.Sprintf("assign x%d", len(n.Targets)) }
func (n *Assign) Span() (start, end token.Pos) {
	_, end = n.Value.Span()
	return n.Pos, end
}
func (n *Assign) Walk(v Visitor) {
	for _, t := range n.Targets {
		Walk(v, t)
	}
	Walk(v, n.Value)
}
func (n *Assign) BlockEnding() bool { return false }

// AugAssign represents an augmented assignment: Target Op= Value, e.g.
// x += 1.
type AugAssign struct {
	Pos    token.Pos
	Target Expr
	Op     token.Token
	Value  Expr
}

func (n *AugAssign) String() string { return "augassign " + n.Op.GoString() }
func (n *AugAssign) Span() (start, end token.Pos) {
	_, end = n.Value.Span()
	return n.Pos, end
}
func (n *AugAssign) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Value)
}
func (n *AugAssign) BlockEnding() bool { return false }

// ExprStmt represents an expression used as a statement. Its value is
// discarded after evaluation.
type ExprStmt struct{ Value Expr }

func (n *ExprStmt) String() string              { return "expr stmt" }
func (n *ExprStmt) Span() (start, end token.Pos) { return n.Value.Span() }
func (n *ExprStmt) Walk(v Visitor)               { Walk(v, n.Value) }
func (n *ExprStmt) BlockEnding() bool            { return false }

// Pass represents a pass statement (a no-op).
type Pass struct{ Pos token.Pos }

func (n *Pass) String() string              { return "pass" }
func (n *Pass) Span() (start, end token.Pos) { return n.Pos, n.Pos }
func (n *Pass) Walk(v Visitor)               {}
func (n *Pass) BlockEnding() bool            { return false }

// ImportAlias names one dotted module path or imported member, with an
// optional "as" alias.
type ImportAlias struct {
	Name   string // dotted module path, or member name for ImportFrom
	AsName *Ident // nil if no "as" clause
}

// Import represents "import a.b.c [as x], ...".
type Import struct {
	Pos   token.Pos
	Names []*ImportAlias
}

func (n *Import) String() string              { return "import" }
func (n *Import) Span() (start, end token.Pos) { return n.Pos, n.Pos }
func (n *Import) Walk(v Visitor) {
	for _, a := range n.Names {
		if a.AsName != nil {
			Walk(v, a.AsName)
		}
	}
}
func (n *Import) BlockEnding() bool { return false }

// ImportFrom represents "from [level*.]Module import n1, n2 as n2a, ...", or
// "from m import *" when Names is a single ImportAlias named "*".
type ImportFrom struct {
	Pos    token.Pos
	Level  int // number of leading dots, 0 for an absolute import
	Module string
	Names  []*ImportAlias
}

func (n *ImportFrom) String() string              { return "from import" }
func (n *ImportFrom) Span() (start, end token.Pos) { return n.Pos, n.Pos }
func (n *ImportFrom) Walk(v Visitor) {
	for _, a := range n.Names {
		if a.AsName != nil {
			Walk(v, a.AsName)
		}
	}
}
func (n *ImportFrom) BlockEnding() bool { return false }

func spanOfStmts(stmts []Stmt) (start, end token.Pos) {
	if len(stmts) == 0 {
		return token.NoPos, token.NoPos
	}
	start, _ = stmts[0].Span()
	_, end = stmts[len(stmts)-1].Span()
	return start, end
}
