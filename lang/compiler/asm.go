package compiler

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// smallIntMin and smallIntMax bound the inline-immediate integer encoding;
// outside this window a literal goes through the constant pool instead.
// The window matches the target VM's small-int representation: strictly
// greater than -2^30 and strictly less than 2^30-1.
const (
	smallIntMin = -(1 << 30)
	smallIntMax = (1 << 30) - 1
)

// fixup records a jump site whose target label was not yet bound when the
// jump was emitted.
type fixup struct {
	site  int // offset in code where the jump's 4-byte argument begins
	label int
}

// Assembler is an append-only builder for a single CodeObject: one module
// or function scope. It owns the emitted instruction buffer, the constant
// pool with its interning tables, the label/fixup bookkeeping for
// forward and backward jumps, and a shadow operand-stack depth counter
// used to compute the code object's high-water stack size.
//
// An Assembler is used for exactly one scope; the code generator opens a
// fresh one per module or function and discards it after Finalize.
type Assembler struct {
	code []byte

	stackDepth int
	stackMax   int

	labels []int // label id -> bound offset, or -1 if still unbound
	fixups []fixup

	consts    []any
	stringIdx *swiss.Map[string, uint32]
	intIdx    *swiss.Map[int64, uint32]
	bytesIdx  *swiss.Map[string, uint32] // keyed by string(b), pool holds []byte
}

// NewAssembler returns an empty Assembler ready to emit one scope's code.
func NewAssembler() *Assembler {
	return &Assembler{
		stringIdx: swiss.NewMap[string, uint32](8),
		intIdx:    swiss.NewMap[int64, uint32](8),
		bytesIdx:  swiss.NewMap[string, uint32](0),
	}
}

// StackDepth reports the current shadow operand-stack depth.
func (a *Assembler) StackDepth() int { return a.stackDepth }

// Emit appends op with its operand, updating the shadow stack depth by
// op's static stack effect. It panics if op's effect depends on its
// operand (CALL_FUNCTION, BUILD_TUPLE/LIST/SET) — use EmitVariadic for
// those.
func (a *Assembler) Emit(op Opcode, arg uint32) {
	eff := stackEffect[op]
	if eff == variableStackEffect {
		panic(fmt.Sprintf("compiler: %s has a variable stack effect, use EmitVariadic", op))
	}
	a.emit(op, arg, int(eff))
}

// Emit0 emits an argument-less opcode.
func (a *Assembler) Emit0(op Opcode) { a.Emit(op, 0) }

// EmitVariadic emits op with an explicit stack effect, for opcodes whose
// effect depends on the operand count (CALL_FUNCTION, BUILD_TUPLE/LIST/SET).
func (a *Assembler) EmitVariadic(op Opcode, arg uint32, effect int) {
	if stackEffect[op] != variableStackEffect {
		panic(fmt.Sprintf("compiler: %s has a fixed stack effect, use Emit", op))
	}
	a.emit(op, arg, effect)
}

func (a *Assembler) emit(op Opcode, arg uint32, effect int) {
	a.code = encodeInsn(a.code, op, arg)
	a.stackDepth += effect
	if a.stackDepth < 0 {
		panic(fmt.Sprintf("compiler: stack underflow emitting %s", op))
	}
	if a.stackDepth > a.stackMax {
		a.stackMax = a.stackDepth
	}
}

// AdjustStack corrects the shadow stack depth outside of an Emit call, for
// the one case in this core where an opcode's compile-time effect differs
// between its two control-flow edges: on a for-loop's natural exit via
// FOR_ITER the VM drops the 4-slot iterator state without any emitted
// opcode, so the generator removes those slots from the shadow depth here.
func (a *Assembler) AdjustStack(delta int) {
	a.stackDepth += delta
	if a.stackDepth < 0 {
		panic("compiler: stack underflow in AdjustStack")
	}
	if a.stackDepth > a.stackMax {
		a.stackMax = a.stackDepth
	}
}

// Label returns a fresh, unbound label id.
func (a *Assembler) Label() int {
	a.labels = append(a.labels, -1)
	return len(a.labels) - 1
}

// PlaceLabel binds id to the current instruction offset. It must be called
// at most once per id.
func (a *Assembler) PlaceLabel(id int) {
	if a.labels[id] != -1 {
		panic(fmt.Sprintf("compiler: label %d placed twice", id))
	}
	a.labels[id] = len(a.code)
}

// Jump emits a branch opcode targeting id. If id is already bound the
// displacement is inlined immediately; otherwise a fixup is recorded and
// patched in Finalize.
func (a *Assembler) Jump(op Opcode, id int) {
	if !isJump(op) {
		panic(fmt.Sprintf("compiler: %s is not a jump opcode", op))
	}
	site := len(a.code) + 1 // the opcode byte precedes the 4-byte argument
	target := a.labels[id]
	if target == -1 {
		a.fixups = append(a.fixups, fixup{site: site, label: id})
		target = 0
	}
	a.emit(op, uint32(target), int(stackEffect[op]))
}

// EmitInt emits an integer literal: an inline LOAD_CONST_INT when n falls
// inside the small-int window, otherwise a pooled LOAD_CONST_OBJ.
func (a *Assembler) EmitInt(n int64) {
	if n > smallIntMin && n < smallIntMax {
		a.Emit(LOAD_CONST_INT, zigzag(int32(n)))
		return
	}
	a.Emit(LOAD_CONST_OBJ, a.internInt(n))
}

// EmitString emits a string literal via LOAD_CONST_OBJ, pooled and
// interned by value.
func (a *Assembler) EmitString(s string) {
	a.Emit(LOAD_CONST_OBJ, a.internString(s))
}

// EmitConstStringAtom emits LOAD_CONST_STRING for a name used as data
// rather than as a variable reference (e.g. an import's module or member
// name), pooled in the same string table as string literals.
func (a *Assembler) EmitConstStringAtom(s string) {
	a.Emit(LOAD_CONST_STRING, a.internString(s))
}

// InternAtom inserts s into the shared string/name constant pool without
// emitting any instruction, returning its pool index. Used for a function's
// parameter names, which must occupy known constant-pool slots so the VM
// can bind a call by keyword, without any executable code to load and
// discard them.
func (a *Assembler) InternAtom(s string) uint32 {
	return a.internString(s)
}

// EmitBytes emits a bytes literal via LOAD_CONST_OBJ.
func (a *Assembler) EmitBytes(b []byte) {
	a.Emit(LOAD_CONST_OBJ, a.internBytes(b))
}

// EmitName emits a NAME/GLOBAL-family load or store, with the name atom as
// operand (interned into the pool).
func (a *Assembler) EmitName(op Opcode, name string) {
	a.Emit(op, a.internString(name))
}

// AddCodeObject appends a nested function's CodeObject to the pool,
// unconditionally: unlike strings, ints, and bytes, code objects are never
// interned — each function definition produces a distinct one.
func (a *Assembler) AddCodeObject(co *CodeObject) uint32 {
	idx := uint32(len(a.consts))
	a.consts = append(a.consts, co)
	return idx
}

func (a *Assembler) internString(s string) uint32 {
	if idx, ok := a.stringIdx.Get(s); ok {
		return idx
	}
	idx := uint32(len(a.consts))
	a.consts = append(a.consts, s)
	a.stringIdx.Put(s, idx)
	return idx
}

func (a *Assembler) internInt(v int64) uint32 {
	if idx, ok := a.intIdx.Get(v); ok {
		return idx
	}
	idx := uint32(len(a.consts))
	a.consts = append(a.consts, v)
	a.intIdx.Put(v, idx)
	return idx
}

func (a *Assembler) internBytes(b []byte) uint32 {
	key := string(b)
	if idx, ok := a.bytesIdx.Get(key); ok {
		return idx
	}
	idx := uint32(len(a.consts))
	a.consts = append(a.consts, append([]byte(nil), b...))
	a.bytesIdx.Put(key, idx)
	return idx
}

// Finalize patches every recorded fixup with its label's bound offset and
// returns the completed CodeObject. It errors if any fixup's label was
// never placed.
func (a *Assembler) Finalize() (*CodeObject, error) {
	for _, fx := range a.fixups {
		target := a.labels[fx.label]
		if target == -1 {
			return nil, fmt.Errorf("compiler: label %d referenced by jump at offset %d was never bound", fx.label, fx.site)
		}
		patched := addUint32(nil, uint32(target), 4)
		copy(a.code[fx.site:fx.site+4], patched)
	}

	var funcs []*CodeObject
	for _, c := range a.consts {
		if co, ok := c.(*CodeObject); ok {
			funcs = append(funcs, co)
		}
	}

	return &CodeObject{
		Code:      a.code,
		Consts:    a.consts,
		StackSize: a.stackMax,
		Functions: funcs,
	}, nil
}

func zigzag(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

func encodeInsn(code []byte, op Opcode, arg uint32) []byte {
	code = append(code, byte(op))
	if op >= OpcodeArgMin {
		if isJump(op) {
			code = addUint32(code, arg, 4) // pad arg to 4 bytes so fixups patch in place
		} else {
			code = addUint32(code, arg, 0)
		}
	}
	return code
}

// addUint32 encodes x as a 7-bit little-endian varint, padding with NOPs up
// to min bytes.
func addUint32(code []byte, x uint32, min int) []byte {
	end := len(code) + min
	for x >= 0x80 {
		code = append(code, byte(x)|0x80)
		x >>= 7
	}
	code = append(code, byte(x))
	for len(code) < end {
		code = append(code, byte(NOP))
	}
	return code
}
