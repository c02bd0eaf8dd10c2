package ast

import (
	"fmt"

	"github.com/denise-amiga/pycopy-lib/lang/token"
)

// Ident is a bare name reference, used both as an expression (Name in
// Python's ast module) and as the name slot of a FunctionDef or parameter.
type Ident struct {
	Pos  token.Pos
	Name string
	Ctx  ExprContext
}

func (n *Ident) expr()                        {}
func (n *Ident) String() string               { return n.Name }
func (n *Ident) Span() (start, end token.Pos) {
	line, col := n.Pos.LineCol()
	return n.Pos, token.MakePos(line, col+len(n.Name))
}
func (n *Ident) Walk(v Visitor)                {}

// Int is an integer literal. The compiler inlines it as an immediate operand
// when it fits the small-int window, otherwise it is pooled as a constant.
type Int struct {
	Pos   token.Pos
	Value int64
}

func (n *Int) expr()                        {}
func (n *Int) String() string               { return fmt.Sprintf("%d", n.Value) }
func (n *Int) Span() (start, end token.Pos) { return n.Pos, n.Pos }
func (n *Int) Walk(v Visitor)               {}

// Str is a string literal, always pooled as a constant.
type Str struct {
	Pos   token.Pos
	Value string
}

func (n *Str) expr()                        {}
func (n *Str) String() string               { return fmt.Sprintf("%q", n.Value) }
func (n *Str) Span() (start, end token.Pos) { return n.Pos, n.Pos }
func (n *Str) Walk(v Visitor)               {}

// Bytes is a bytes literal, always pooled as a constant.
type Bytes struct {
	Pos   token.Pos
	Value []byte
}

func (n *Bytes) expr()                        {}
func (n *Bytes) String() string               { return fmt.Sprintf("b%q", n.Value) }
func (n *Bytes) Span() (start, end token.Pos) { return n.Pos, n.Pos }
func (n *Bytes) Walk(v Visitor)               {}

// Tuple is a tuple display: (Elts...). Ctx is Store when it appears as an
// assignment target, e.g. "a, b = 1, 2".
type Tuple struct {
	Pos  token.Pos
	Elts []Expr
	Ctx  ExprContext
}

func (n *Tuple) expr()          {}
func (n *Tuple) String() string { return fmt.Sprintf("tuple x%d", len(n.Elts)) }
func (n *Tuple) Span() (start, end token.Pos) {
	if len(n.Elts) == 0 {
		return n.Pos, n.Pos
	}
	_, end = n.Elts[len(n.Elts)-1].Span()
	return n.Pos, end
}
func (n *Tuple) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}

// List is a list display: [Elts...].
type List struct {
	Pos  token.Pos
	Elts []Expr
	Ctx  ExprContext
}

func (n *List) expr()          {}
func (n *List) String() string { return fmt.Sprintf("list x%d", len(n.Elts)) }
func (n *List) Span() (start, end token.Pos) {
	if len(n.Elts) == 0 {
		return n.Pos, n.Pos
	}
	_, end = n.Elts[len(n.Elts)-1].Span()
	return n.Pos, end
}
func (n *List) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}

// Set is a set display: {Elts...}.
type Set struct {
	Pos  token.Pos
	Elts []Expr
}

func (n *Set) expr()          {}
func (n *Set) String() string { return fmt.Sprintf("set x%d", len(n.Elts)) }
func (n *Set) Span() (start, end token.Pos) {
	if len(n.Elts) == 0 {
		return n.Pos, n.Pos
	}
	_, end = n.Elts[len(n.Elts)-1].Span()
	return n.Pos, end
}
func (n *Set) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}

// Dict is a dict display: {Keys[i]: Values[i], ...}.
type Dict struct {
	Pos    token.Pos
	Keys   []Expr
	Values []Expr
}

func (n *Dict) expr()          {}
func (n *Dict) String() string { return fmt.Sprintf("dict x%d", len(n.Keys)) }
func (n *Dict) Span() (start, end token.Pos) {
	if len(n.Values) == 0 {
		return n.Pos, n.Pos
	}
	_, end = n.Values[len(n.Values)-1].Span()
	return n.Pos, end
}
func (n *Dict) Walk(v Visitor) {
	for i, k := range n.Keys {
		Walk(v, k)
		Walk(v, n.Values[i])
	}
}

// Call is a function call: Func(Args...). Variadic, keyword, and default
// arguments are not part of this AST's call shape.
type Call struct {
	Pos  token.Pos
	Func Expr
	Args []Expr
}

func (n *Call) expr()          {}
func (n *Call) String() string { return fmt.Sprintf("call x%d", len(n.Args)) }
func (n *Call) Span() (start, end token.Pos) {
	start, _ = n.Func.Span()
	end = n.Pos
	if len(n.Args) > 0 {
		_, end = n.Args[len(n.Args)-1].Span()
	}
	return start, end
}
func (n *Call) Walk(v Visitor) {
	Walk(v, n.Func)
	for _, a := range n.Args {
		Walk(v, a)
	}
}

// BinOp is a binary arithmetic/bitwise expression: Left Op Right.
type BinOp struct {
	Pos   token.Pos
	Left  Expr
	Op    token.Token
	Right Expr
}

func (n *BinOp) expr()          {}
func (n *BinOp) String() string { return "binop " + n.Op.GoString() }
func (n *BinOp) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinOp) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

// UnaryOp is a unary expression: Op Operand, e.g. -x, not x, ~x.
type UnaryOp struct {
	Pos     token.Pos
	Op      token.Token
	Operand Expr
}

func (n *UnaryOp) expr()          {}
func (n *UnaryOp) String() string { return "unaryop " + n.Op.GoString() }
func (n *UnaryOp) Span() (start, end token.Pos) {
	_, end = n.Operand.Span()
	return n.Pos, end
}
func (n *UnaryOp) Walk(v Visitor) { Walk(v, n.Operand) }

// BoolOp is a short-circuiting and/or expression over two or more operands:
// Values[0] Op Values[1] Op ... Op Values[n-1].
type BoolOp struct {
	Pos    token.Pos
	Op     token.Token // AND or OR
	Values []Expr
}

func (n *BoolOp) expr()          {}
func (n *BoolOp) String() string { return "boolop " + n.Op.GoString() }
func (n *BoolOp) Span() (start, end token.Pos) {
	start, _ = n.Values[0].Span()
	_, end = n.Values[len(n.Values)-1].Span()
	return start, end
}
func (n *BoolOp) Walk(v Visitor) {
	for _, e := range n.Values {
		Walk(v, e)
	}
}

// Compare is a single binary comparison: Left Op Right. Chained comparisons
// (a < b < c) are not part of this AST's expression shape; a parser that
// needs them desugars to a BoolOp of Compare nodes.
type Compare struct {
	Pos   token.Pos
	Left  Expr
	Op    token.Token
	Right Expr
}

func (n *Compare) expr()          {}
func (n *Compare) String() string { return "compare " + n.Op.GoString() }
func (n *Compare) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *Compare) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

// Attribute is a dotted member access: Value.Attr. Ctx is Store when it
// appears as an assignment target, e.g. "a.b = 1".
type Attribute struct {
	Pos   token.Pos
	Value Expr
	Attr  string
	Ctx   ExprContext
}

func (n *Attribute) expr()          {}
func (n *Attribute) String() string { return "." + n.Attr }
func (n *Attribute) Span() (start, end token.Pos) {
	start, _ = n.Value.Span()
	line, col := n.Pos.LineCol()
	return start, token.MakePos(line, col+len(n.Attr))
}
func (n *Attribute) Walk(v Visitor) { Walk(v, n.Value) }
