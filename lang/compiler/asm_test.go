package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitTracksStackDepth(t *testing.T) {
	a := NewAssembler()
	a.EmitInt(1)
	require.Equal(t, 1, a.StackDepth())
	a.EmitInt(2)
	require.Equal(t, 2, a.StackDepth())
	a.Emit(BINARY_ADD, 0)
	require.Equal(t, 1, a.StackDepth())
	a.Emit0(POP_TOP)
	require.Equal(t, 0, a.StackDepth())
}

func TestEmitPanicsOnUnderflow(t *testing.T) {
	a := NewAssembler()
	require.Panics(t, func() { a.Emit0(POP_TOP) })
}

func TestEmitPanicsOnVariableEffectWithoutVariadic(t *testing.T) {
	a := NewAssembler()
	require.Panics(t, func() { a.Emit(CALL_FUNCTION, 0) })
}

func TestStringInterning(t *testing.T) {
	a := NewAssembler()
	a.EmitString("abc")
	a.EmitString("abc")
	a.Emit0(POP_TOP)
	a.Emit0(POP_TOP)
	co, err := a.Finalize()
	require.NoError(t, err)
	require.Len(t, co.Consts, 1, "duplicate string literal must share one pool index")
}

func TestNameAndStringAtomShareInterning(t *testing.T) {
	a := NewAssembler()
	a.EmitConstStringAtom("foo")
	a.EmitName(LOAD_NAME, "foo")
	a.Emit0(POP_TOP)
	a.Emit0(POP_TOP)
	co, err := a.Finalize()
	require.NoError(t, err)
	require.Len(t, co.Consts, 1)
}

func TestSmallIntWindow(t *testing.T) {
	a := NewAssembler()
	a.EmitInt(5)
	a.Emit0(POP_TOP)
	co, err := a.Finalize()
	require.NoError(t, err)
	require.Empty(t, co.Consts, "small int must be inlined, not pooled")
}

func TestLargeIntGoesThroughPool(t *testing.T) {
	a := NewAssembler()
	a.EmitInt(1 << 31)
	a.Emit0(POP_TOP)
	co, err := a.Finalize()
	require.NoError(t, err)
	require.Equal(t, []any{int64(1 << 31)}, co.Consts)
}

func TestLabelForwardJumpResolves(t *testing.T) {
	a := NewAssembler()
	a.EmitInt(1)
	l := a.Label()
	a.Jump(JUMP, l)
	a.PlaceLabel(l)
	a.Emit0(POP_TOP)
	_, err := a.Finalize()
	require.NoError(t, err)
}

func TestUnboundLabelFailsFinalize(t *testing.T) {
	a := NewAssembler()
	l := a.Label()
	a.EmitInt(1)
	a.Jump(POP_JUMP_IF_FALSE, l)
	_, err := a.Finalize()
	require.Error(t, err)
}

func TestCodeObjectsAreNeverInterned(t *testing.T) {
	a := NewAssembler()
	co1 := &CodeObject{Name: "f"}
	co2 := &CodeObject{Name: "f"}
	a.AddCodeObject(co1)
	a.AddCodeObject(co2)
	require.Len(t, a.consts, 2)
}

func TestForLoopTeardownShadowAccounting(t *testing.T) {
	a := NewAssembler()
	a.EmitInt(1)            // the loaded iterable, stack = 1
	a.Emit(GET_ITER_STACK, 0) // pops iterable, pushes 4-slot iterator state, stack = 4
	require.Equal(t, 4, a.StackDepth())
	a.AdjustStack(-4) // natural loop exit leaves the 4 slots popped in shadow bookkeeping
	require.Equal(t, 0, a.StackDepth())
}
