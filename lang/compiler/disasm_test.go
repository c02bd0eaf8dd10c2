package compiler

import (
	"flag"
	"testing"

	"github.com/denise-amiga/pycopy-lib/internal/filetest"
	"github.com/denise-amiga/pycopy-lib/lang/ast"
	"github.com/denise-amiga/pycopy-lib/lang/symtable"
)

var updateGolden = flag.Bool("compiler.update-golden", false, "update compiler disassembly golden files")

// TestDisassembleGolden compiles a hand-built AST for "x = 5" (the source
// kept in testdata/assign.src; no parser reads it) and diffs its
// disassembly against the .src.want golden file of each testdata/*.src
// file, exercising the AST->CodeObject->text pipeline end to end.
func TestDisassembleGolden(t *testing.T) {
	mod := &ast.Module{Name: "assign", Body: []ast.Stmt{
		&ast.Assign{Targets: []ast.Expr{ident("x", ast.Store)}, Value: &ast.Int{Value: 5}},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)

	for _, fi := range filetest.SourceFiles(t, "testdata", ".src") {
		filetest.DiffOutput(t, fi, Disassemble(co), "testdata", updateGolden)
	}
}
