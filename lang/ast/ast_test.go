package ast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/denise-amiga/pycopy-lib/lang/ast"
	"github.com/denise-amiga/pycopy-lib/lang/token"
)

func TestWalkVisitsNodes(t *testing.T) {
	mod := &ast.Module{
		Name: "m",
		Body: []ast.Stmt{
			&ast.Assign{
				Targets: []ast.Expr{&ast.Ident{Name: "x", Ctx: ast.Store}},
				Value:   &ast.Int{Value: 1},
			},
			&ast.If{
				Test: &ast.Compare{
					Left:  &ast.Ident{Name: "x", Ctx: ast.Load},
					Op:    token.LT,
					Right: &ast.Int{Value: 10},
				},
				Body: []ast.Stmt{&ast.Break{}},
			},
		},
	}

	var kinds []string
	ast.Walk(ast.VisitorFunc(func(n ast.Node) {
		kinds = append(kinds, n.String())
	}), mod)

	require.Contains(t, kinds, "assign x1")
	require.Contains(t, kinds, "if")
	require.Contains(t, kinds, "break")
	require.Contains(t, kinds, "x")
}

func TestWalkNilSkipsChildren(t *testing.T) {
	ret := &ast.Return{}
	require.NotPanics(t, func() {
		ast.Walk(ast.VisitorFunc(func(ast.Node) {}), ret)
	})
}

func TestPrinter(t *testing.T) {
	mod := &ast.Module{
		Name: "m",
		Body: []ast.Stmt{
			&ast.Pass{},
		},
	}

	var sb strings.Builder
	p := &ast.Printer{Output: &sb}
	require.NoError(t, p.Print(mod))
	require.Contains(t, sb.String(), "module m")
	require.Contains(t, sb.String(), "pass")
}

func TestBlockEnding(t *testing.T) {
	require.True(t, (&ast.Break{}).BlockEnding())
	require.True(t, (&ast.Continue{}).BlockEnding())
	require.True(t, (&ast.Return{}).BlockEnding())
	require.False(t, (&ast.Pass{}).BlockEnding())
}

func TestExprContextString(t *testing.T) {
	require.Equal(t, "load", ast.Load.String())
	require.Equal(t, "store", ast.Store.String())
}
