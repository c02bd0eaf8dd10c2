package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints an AST as an indented tree of node descriptions, one
// per line, using each node's String method. It is meant for debugging and
// for golden-file tests, not for round-tripping back to source.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	depth int
	err   error
}

// Print pretty-prints the AST rooted at n.
func (p *Printer) Print(n Node) error {
	p.depth = 0
	Walk(p, n)
	return p.err
}

// Visit implements the Visitor interface.
func (p *Printer) Visit(n Node, dir VisitDirection) Visitor {
	if p.err != nil {
		return nil
	}
	if dir == VisitExit {
		p.depth--
		return nil
	}
	_, err := fmt.Fprintf(p.Output, "%s%s\n", strings.Repeat(". ", p.depth), n.String())
	if err != nil {
		p.err = err
		return nil
	}
	p.depth++
	return p
}
