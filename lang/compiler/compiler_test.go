package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/denise-amiga/pycopy-lib/internal/config"
	"github.com/denise-amiga/pycopy-lib/lang/ast"
	"github.com/denise-amiga/pycopy-lib/lang/symtable"
	"github.com/denise-amiga/pycopy-lib/lang/token"
)

func ident(name string, ctx ast.ExprContext) *ast.Ident {
	return &ast.Ident{Name: name, Ctx: ctx}
}

func compileModule(t *testing.T, mod *ast.Module, symtab symtable.Map) *CodeObject {
	t.Helper()
	c := NewCompiler(symtab, "test.py")
	co, err := c.Compile(mod)
	require.NoError(t, err)
	return co
}

// Scenario 1: x = 1 at module scope where x resolves to NAME.
func TestAssignToNameScope(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.Assign{Targets: []ast.Expr{ident("x", ast.Store)}, Value: &ast.Int{Value: 1}},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)
	require.GreaterOrEqual(t, co.StackSize, 1)

	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{LOAD_CONST_INT, STORE_NAME_CONST, LOAD_CONST_NONE, RETURN_VALUE}, ops)
}

// Scenario 2: a = b = 2.
func TestChainedAssign(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.Assign{
			Targets: []ast.Expr{ident("a", ast.Store), ident("b", ast.Store)},
			Value:   &ast.Int{Value: 2},
		},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)

	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{
		LOAD_CONST_INT, DUP_TOP, STORE_NAME_CONST, STORE_NAME_CONST,
		LOAD_CONST_NONE, RETURN_VALUE,
	}, ops)
}

// a.b = 1: the value is compiled before the attribute's object expression,
// so STORE_ATTR pops obj (top) then value, and an attribute target has no
// const/plain store distinction (unlike a plain Ident target).
func TestAttributeStoreTarget(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.Assign{
			Targets: []ast.Expr{&ast.Attribute{
				Value: ident("a", ast.Load),
				Attr:  "b",
				Ctx:   ast.Store,
			}},
			Value: &ast.Int{Value: 1},
		},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)

	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{
		LOAD_CONST_INT, LOAD_NAME, STORE_ATTR, LOAD_CONST_NONE, RETURN_VALUE,
	}, ops)
}

// a.b += 1: the augmented-assignment target loads through attribute() in
// Load context first, then stores back through the plain (non-const)
// STORE_ATTR path, exercising emitLoadTarget's and emitStoreTarget's
// *ast.Attribute branches together.
func TestAugAssignAttributeTarget(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.AugAssign{
			Target: &ast.Attribute{Value: ident("a", ast.Load), Attr: "b", Ctx: ast.Store},
			Op:     token.PLUS_EQ,
			Value:  &ast.Int{Value: 1},
		},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)

	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{
		LOAD_NAME, LOAD_ATTR, LOAD_CONST_INT, INPLACE_ADD,
		LOAD_NAME, STORE_ATTR, LOAD_CONST_NONE, RETURN_VALUE,
	}, ops)
}

// Scenario 3: for i in r: pass, with i and r NAME-scoped.
func TestForLoopOverName(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.For{
			Target: ident("i", ast.Store),
			Iter:   ident("r", ast.Load),
			Body:   []ast.Stmt{&ast.Pass{}},
		},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)
	require.GreaterOrEqual(t, co.StackSize, 5)

	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{
		LOAD_NAME, GET_ITER_STACK, FOR_ITER, STORE_NAME, JUMP,
		LOAD_CONST_NONE, RETURN_VALUE,
	}, ops)
}

// Scenario 5: def f(x): return x.
func TestFunctionDefWithParam(t *testing.T) {
	fn := &ast.FunctionDef{
		Name:   ident("f", ast.Store),
		Params: []*ast.Ident{ident("x", ast.Store)},
		Body:   []ast.Stmt{&ast.Return{Value: ident("x", ast.Load)}},
	}
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{fn}}

	fnScope := symtable.NewSimple().Bind("x", symtable.Fast)
	symtab := symtable.Map{mod: symtable.NewSimple(), fn: fnScope}

	co := compileModule(t, mod, symtab)
	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{MAKE_FUNCTION, STORE_NAME_CONST, LOAD_CONST_NONE, RETURN_VALUE}, ops)

	require.Len(t, co.Functions, 1)
	inner := co.Functions[0]
	require.Equal(t, 1, inner.ArgCount)
	require.Equal(t, "x", inner.Consts[0])
	require.Equal(t, []Opcode{LOAD_FAST_N, RETURN_VALUE}, decodeOps(t, inner.Code))
}

// Scenario 6: from m import *.
func TestImportStar(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.ImportFrom{Module: "m", Names: []*ast.ImportAlias{{Name: "*"}}},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)

	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{
		LOAD_CONST_INT, LOAD_CONST_STRING, BUILD_TUPLE, IMPORT_NAME, IMPORT_STAR,
		LOAD_CONST_NONE, RETURN_VALUE,
	}, ops)
}

func TestBreakInForEmitsFourPopTop(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.For{
			Target: ident("i", ast.Store),
			Iter:   ident("r", ast.Load),
			Body:   []ast.Stmt{&ast.Break{}},
		},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)

	ops := decodeOps(t, co.Code)
	// The break's own jump to the loop's end label is followed by the
	// loop's unconditional jump back to the test, emitted unconditionally
	// after the body regardless of whether it ends in a break.
	require.Equal(t, []Opcode{
		LOAD_NAME, GET_ITER_STACK, FOR_ITER, STORE_NAME,
		POP_TOP, POP_TOP, POP_TOP, POP_TOP, JUMP, JUMP,
		LOAD_CONST_NONE, RETURN_VALUE,
	}, ops)
}

func TestBreakInWhileEmitsNoPopTop(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.While{
			Test: ident("c", ast.Load),
			Body: []ast.Stmt{&ast.Break{}},
		},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)

	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{
		JUMP, JUMP, LOAD_NAME, POP_JUMP_IF_TRUE, LOAD_CONST_NONE, RETURN_VALUE,
	}, ops)
}

func TestAugAssignUsesPlainStoreNotConst(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.AugAssign{Target: ident("x", ast.Load), Op: token.PLUS_EQ, Value: &ast.Int{Value: 1}},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)

	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{
		LOAD_NAME, LOAD_CONST_INT, INPLACE_ADD, STORE_NAME, LOAD_CONST_NONE, RETURN_VALUE,
	}, ops)
}

func TestCompareIsNotAppendsUnaryNot(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.ExprStmt{Value: &ast.Compare{
			Left: ident("a", ast.Load), Op: token.IS_NOT, Right: ident("b", ast.Load),
		}},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)

	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{
		LOAD_NAME, LOAD_NAME, BINARY_IS, UNARY_NOT, POP_TOP, LOAD_CONST_NONE, RETURN_VALUE,
	}, ops)
}

func TestBoolOpShortCircuit(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.ExprStmt{Value: &ast.BoolOp{
			Op:     token.AND,
			Values: []ast.Expr{ident("a", ast.Load), ident("b", ast.Load)},
		}},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	co := compileModule(t, mod, symtab)

	ops := decodeOps(t, co.Code)
	require.Equal(t, []Opcode{
		LOAD_NAME, JUMP_IF_FALSE_OR_POP, LOAD_NAME, POP_TOP, LOAD_CONST_NONE, RETURN_VALUE,
	}, ops)
}

func TestUnsupportedAssignTargetReportsError(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.Assign{Targets: []ast.Expr{&ast.Int{Value: 1}}, Value: &ast.Int{Value: 2}},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	c := NewCompiler(symtab, "test.py")
	_, err := c.Compile(mod)
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
}

func TestLoopStackEmptyAfterCompile(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.While{Test: ident("c", ast.Load), Body: []ast.Stmt{&ast.Pass{}}},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	c := NewCompiler(symtab, "test.py")
	_, err := c.Compile(mod)
	require.NoError(t, err)
	require.Empty(t, c.loops)
}

func TestEveryStatementNetsZeroStackEffect(t *testing.T) {
	mod := &ast.Module{Name: "m", Body: []ast.Stmt{
		&ast.Assign{Targets: []ast.Expr{ident("x", ast.Store)}, Value: &ast.BinOp{
			Left: &ast.Int{Value: 1}, Op: token.PLUS, Right: &ast.Int{Value: 2},
		}},
		&ast.ExprStmt{Value: &ast.Call{Func: ident("f", ast.Load), Args: []ast.Expr{ident("x", ast.Load)}}},
	}}
	symtab := symtable.Map{mod: symtable.NewSimple()}
	require.NotPanics(t, func() { compileModule(t, mod, symtab) })
}

// NewCompilerFromConfig should pick up Debug and fall back to opts.Filename
// only when the caller passes no explicit filename.
func TestNewCompilerFromConfigUsesFallbackFilename(t *testing.T) {
	opts := config.Options{Debug: true, Filename: "fallback.py"}
	mod := &ast.Module{Name: "m", Body: nil}
	symtab := symtable.Map{mod: symtable.NewSimple()}

	c := NewCompilerFromConfig(symtab, "", opts)
	require.True(t, c.Debug)
	co, err := c.Compile(mod)
	require.NoError(t, err)
	require.Equal(t, "fallback.py", co.Filename)

	c2 := NewCompilerFromConfig(symtab, "explicit.py", opts)
	co2, err := c2.Compile(mod)
	require.NoError(t, err)
	require.Equal(t, "explicit.py", co2.Filename)
}

// decodeOps walks code's varint-encoded instruction stream and returns the
// opcode of every instruction, skipping operands.
func decodeOps(t *testing.T, code []byte) []Opcode {
	t.Helper()
	var ops []Opcode
	for i := 0; i < len(code); {
		op := Opcode(code[i])
		ops = append(ops, op)
		i++
		if op >= OpcodeArgMin {
			if isJump(op) {
				i += 4
			} else {
				for code[i] >= 0x80 {
					i++
				}
				i++
			}
		}
	}
	return ops
}
