package compiler

import "fmt"

// Increment this to force recompilation of saved bytecode files.
const Version = 0

// Opcode identifies one bytecode instruction understood by the target VM.
// The compiler only emits against this namespace; it never executes it.
type Opcode uint8

// "x OP x x" is a stack picture describing the operand stack before and
// after execution of the instruction.
//
// OP<n> indicates an immediate operand: either a small signed integer, an
// index into the constant pool, a fast-local slot index, or (for jumps) a
// resolved instruction offset.
const ( //nolint:revive
	NOP Opcode = iota // - NOP -

	DUP_TOP // x DUP_TOP x x
	POP_TOP // x POP_TOP -

	// binary comparisons (order matches token.Token's compare operators)
	BINARY_LESS
	BINARY_LESS_EQUAL
	BINARY_MORE
	BINARY_MORE_EQUAL
	BINARY_EQUAL
	BINARY_NOT_EQUAL
	BINARY_IS
	BINARY_IN

	// binary arithmetic (mapped from token.Token by the compiler's binOpcode table)
	BINARY_ADD
	BINARY_SUBTRACT
	BINARY_MULTIPLY
	BINARY_MAT_MULTIPLY
	BINARY_TRUE_DIVIDE
	BINARY_FLOOR_DIVIDE
	BINARY_MODULO
	BINARY_POWER
	BINARY_LSHIFT
	BINARY_RSHIFT
	BINARY_AND
	BINARY_OR
	BINARY_XOR

	// in-place arithmetic, for augmented assignment (same order)
	INPLACE_ADD
	INPLACE_SUBTRACT
	INPLACE_MULTIPLY
	INPLACE_MAT_MULTIPLY
	INPLACE_TRUE_DIVIDE
	INPLACE_FLOOR_DIVIDE
	INPLACE_MODULO
	INPLACE_POWER
	INPLACE_LSHIFT
	INPLACE_RSHIFT
	INPLACE_AND
	INPLACE_OR
	INPLACE_XOR

	// unary operators
	UNARY_POSITIVE // x UNARY_POSITIVE x
	UNARY_NEGATIVE // x UNARY_NEGATIVE -x
	UNARY_INVERT   // x UNARY_INVERT  ~x
	UNARY_NOT      // x UNARY_NOT     bool

	RETURN_VALUE // value RETURN_VALUE -

	GET_ITER_STACK // iterable GET_ITER_STACK iterstate(4)
	IMPORT_STAR    //   module IMPORT_STAR    -

	STORE_MAP //  map value key STORE_MAP map (pops key, then value; map stays)

	// --- opcodes with an argument must go below this line ---

	// control flow (jump argument is a resolved instruction offset)
	JUMP
	JUMP_IF_FALSE_OR_POP
	JUMP_IF_TRUE_OR_POP
	POP_JUMP_IF_FALSE
	POP_JUMP_IF_TRUE
	FOR_ITER // - FOR_ITER<end> elem  (falls through with elem, or jumps to end)

	LOAD_CONST_NONE   //   - LOAD_CONST_NONE<n>   None      (n is unused, present for uniform decoding)
	LOAD_CONST_INT    //   - LOAD_CONST_INT<n>    int       n is the zigzag-encoded literal value (small-int window)
	LOAD_CONST_OBJ    //   - LOAD_CONST_OBJ<k>    value     k is a constant-pool index
	LOAD_CONST_STRING //   - LOAD_CONST_STRING<k> str       k is a constant-pool index, interned as an atom

	LOAD_NAME          //       - LOAD_NAME<name>           value
	STORE_NAME         //   value STORE_NAME<name>          -
	STORE_NAME_CONST   //   value STORE_NAME_CONST<name>    -
	LOAD_GLOBAL        //       - LOAD_GLOBAL<name>         value
	STORE_GLOBAL       //   value STORE_GLOBAL<name>        -
	STORE_GLOBAL_CONST //   value STORE_GLOBAL_CONST<name>  -
	LOAD_FAST_N        //       - LOAD_FAST_N<slot>         value
	STORE_FAST_N       //   value STORE_FAST_N<slot>        -
	LOAD_DEREF         //       - LOAD_DEREF<slot>          value
	STORE_DEREF        //   value STORE_DEREF<slot>         -

	LOAD_ATTR  //         obj LOAD_ATTR<name>  value
	STORE_ATTR // value obj STORE_ATTR<name>  -
	// value is pushed first (the assignment's RHS), obj second (the
	// attribute target's object expression, compiled after the RHS) so obj
	// is on top and pops first, matching attribute()'s emission order.

	MAKE_FUNCTION // - MAKE_FUNCTION<codeobj> fn

	// n>>8 is the number of positional args, n&0xff the number of keyword
	// args; keyword calls are rejected before emission so n&0xff is always 0.
	CALL_FUNCTION // fn arg1..argn CALL_FUNCTION<n> result

	BUILD_TUPLE // x1..xn BUILD_TUPLE<n> tuple
	BUILD_LIST  // x1..xn BUILD_LIST<n>  list
	BUILD_SET   // x1..xn BUILD_SET<n>   set
	BUILD_MAP   //      - BUILD_MAP<n>   map

	IMPORT_NAME // level fromlist IMPORT_NAME<modname> module
	IMPORT_FROM //         module IMPORT_FROM<name>     value

	OpcodeArgMin = JUMP
	OpcodeMax    = IMPORT_FROM
	opcodeJMPMin = JUMP
	opcodeJMPMax = FOR_ITER
)

var opcodeNames = [...]string{
	NOP:                  "nop",
	DUP_TOP:               "dup_top",
	POP_TOP:               "pop_top",
	BINARY_LESS:           "binary_less",
	BINARY_LESS_EQUAL:     "binary_less_equal",
	BINARY_MORE:           "binary_more",
	BINARY_MORE_EQUAL:     "binary_more_equal",
	BINARY_EQUAL:          "binary_equal",
	BINARY_NOT_EQUAL:      "binary_not_equal",
	BINARY_IS:             "binary_is",
	BINARY_IN:             "binary_in",
	BINARY_ADD:            "binary_add",
	BINARY_SUBTRACT:       "binary_subtract",
	BINARY_MULTIPLY:       "binary_multiply",
	BINARY_MAT_MULTIPLY:   "binary_mat_multiply",
	BINARY_TRUE_DIVIDE:    "binary_true_divide",
	BINARY_FLOOR_DIVIDE:   "binary_floor_divide",
	BINARY_MODULO:         "binary_modulo",
	BINARY_POWER:          "binary_power",
	BINARY_LSHIFT:         "binary_lshift",
	BINARY_RSHIFT:         "binary_rshift",
	BINARY_AND:            "binary_and",
	BINARY_OR:             "binary_or",
	BINARY_XOR:            "binary_xor",
	INPLACE_ADD:           "inplace_add",
	INPLACE_SUBTRACT:      "inplace_subtract",
	INPLACE_MULTIPLY:      "inplace_multiply",
	INPLACE_MAT_MULTIPLY:  "inplace_mat_multiply",
	INPLACE_TRUE_DIVIDE:   "inplace_true_divide",
	INPLACE_FLOOR_DIVIDE:  "inplace_floor_divide",
	INPLACE_MODULO:        "inplace_modulo",
	INPLACE_POWER:         "inplace_power",
	INPLACE_LSHIFT:        "inplace_lshift",
	INPLACE_RSHIFT:        "inplace_rshift",
	INPLACE_AND:           "inplace_and",
	INPLACE_OR:            "inplace_or",
	INPLACE_XOR:           "inplace_xor",
	UNARY_POSITIVE:        "unary_positive",
	UNARY_NEGATIVE:        "unary_negative",
	UNARY_INVERT:          "unary_invert",
	UNARY_NOT:             "unary_not",
	RETURN_VALUE:          "return_value",
	GET_ITER_STACK:        "get_iter_stack",
	IMPORT_STAR:           "import_star",
	STORE_MAP:             "store_map",
	JUMP:                  "jump",
	JUMP_IF_FALSE_OR_POP:  "jump_if_false_or_pop",
	JUMP_IF_TRUE_OR_POP:   "jump_if_true_or_pop",
	POP_JUMP_IF_FALSE:     "pop_jump_if_false",
	POP_JUMP_IF_TRUE:      "pop_jump_if_true",
	FOR_ITER:              "for_iter",
	LOAD_CONST_NONE:       "load_const_none",
	LOAD_CONST_INT:        "load_const_int",
	LOAD_CONST_OBJ:        "load_const_obj",
	LOAD_CONST_STRING:     "load_const_string",
	LOAD_NAME:             "load_name",
	STORE_NAME:            "store_name",
	STORE_NAME_CONST:      "store_name_const",
	LOAD_GLOBAL:           "load_global",
	STORE_GLOBAL:          "store_global",
	STORE_GLOBAL_CONST:    "store_global_const",
	LOAD_FAST_N:           "load_fast_n",
	STORE_FAST_N:          "store_fast_n",
	LOAD_DEREF:            "load_deref",
	STORE_DEREF:           "store_deref",
	LOAD_ATTR:             "load_attr",
	STORE_ATTR:            "store_attr",
	MAKE_FUNCTION:         "make_function",
	CALL_FUNCTION:         "call_function",
	BUILD_TUPLE:           "build_tuple",
	BUILD_LIST:            "build_list",
	BUILD_SET:             "build_set",
	BUILD_MAP:             "build_map",
	IMPORT_NAME:           "import_name",
	IMPORT_FROM:           "import_from",
}

var reverseLookupOpcode = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, s := range opcodeNames {
		if s != "" {
			m[s] = Opcode(op)
		}
	}
	return m
}()

func isJump(op Opcode) bool {
	return opcodeJMPMin <= op && op <= opcodeJMPMax
}

// encodedSize returns the number of bytes required to encode op with arg.
func encodedSize(op Opcode, arg uint32) int {
	if op >= OpcodeArgMin {
		if isJump(op) {
			// jumps are always encoded on 4 bytes, padded with NOPs if the
			// jump requires less, so fixups can rewrite them in place.
			return 1 + 4
		}
		return 1 + varArgLen(arg)
	}
	return 1
}

// varArgLen returns the number of bytes required to encode x as a varint.
func varArgLen(x uint32) int {
	n := 0
	for x >= 0x80 {
		n++
		x >>= 7
	}
	return n + 1
}

// variableStackEffect marks opcodes whose stack effect depends on their
// operand (CALL_FUNCTION, BUILD_TUPLE/LIST/SET) and must be computed at the
// emission site rather than looked up in stackEffect.
const variableStackEffect = 0x7f

// stackEffect records the static effect on the operand stack of each
// instruction. It reflects the straight-line (fall-through) path for
// conditional jumps; branch-specific corrections (e.g. a for-loop's
// 4-slot iterator teardown on exit) are applied explicitly by the code
// generator, not by this table.
var stackEffect = [...]int8{
	NOP:                  0,
	DUP_TOP:              +1,
	POP_TOP:              -1,
	BINARY_LESS:          -1,
	BINARY_LESS_EQUAL:    -1,
	BINARY_MORE:          -1,
	BINARY_MORE_EQUAL:    -1,
	BINARY_EQUAL:         -1,
	BINARY_NOT_EQUAL:     -1,
	BINARY_IS:            -1,
	BINARY_IN:            -1,
	BINARY_ADD:           -1,
	BINARY_SUBTRACT:      -1,
	BINARY_MULTIPLY:      -1,
	BINARY_MAT_MULTIPLY:  -1,
	BINARY_TRUE_DIVIDE:   -1,
	BINARY_FLOOR_DIVIDE:  -1,
	BINARY_MODULO:        -1,
	BINARY_POWER:         -1,
	BINARY_LSHIFT:        -1,
	BINARY_RSHIFT:        -1,
	BINARY_AND:           -1,
	BINARY_OR:            -1,
	BINARY_XOR:           -1,
	INPLACE_ADD:          -1,
	INPLACE_SUBTRACT:     -1,
	INPLACE_MULTIPLY:     -1,
	INPLACE_MAT_MULTIPLY: -1,
	INPLACE_TRUE_DIVIDE:  -1,
	INPLACE_FLOOR_DIVIDE: -1,
	INPLACE_MODULO:       -1,
	INPLACE_POWER:        -1,
	INPLACE_LSHIFT:       -1,
	INPLACE_RSHIFT:       -1,
	INPLACE_AND:          -1,
	INPLACE_OR:           -1,
	INPLACE_XOR:          -1,
	UNARY_POSITIVE:       0,
	UNARY_NEGATIVE:       0,
	UNARY_INVERT:         0,
	UNARY_NOT:            0,
	RETURN_VALUE:         -1,
	GET_ITER_STACK:       +3, // pops the iterable, pushes 4 slots of iterator state
	IMPORT_STAR:          -1,
	STORE_MAP:            -2,
	JUMP:                 0,
	JUMP_IF_FALSE_OR_POP: -1,
	JUMP_IF_TRUE_OR_POP:  -1,
	POP_JUMP_IF_FALSE:    -1,
	POP_JUMP_IF_TRUE:     -1,
	FOR_ITER:             +1, // fall-through effect; exit edge is corrected by the generator
	LOAD_CONST_NONE:      +1,
	LOAD_CONST_INT:       +1,
	LOAD_CONST_OBJ:       +1,
	LOAD_CONST_STRING:    +1,
	LOAD_NAME:            +1,
	STORE_NAME:           -1,
	STORE_NAME_CONST:     -1,
	LOAD_GLOBAL:          +1,
	STORE_GLOBAL:         -1,
	STORE_GLOBAL_CONST:   -1,
	LOAD_FAST_N:          +1,
	STORE_FAST_N:         -1,
	LOAD_DEREF:           +1,
	STORE_DEREF:          -1,
	LOAD_ATTR:            0,
	STORE_ATTR:           -2,
	MAKE_FUNCTION:        +1,
	CALL_FUNCTION:        variableStackEffect,
	BUILD_TUPLE:          variableStackEffect,
	BUILD_LIST:           variableStackEffect,
	BUILD_SET:            variableStackEffect,
	BUILD_MAP:            +1,
	IMPORT_NAME:          -1,
	IMPORT_FROM:          +1,
}

func (op Opcode) String() string {
	if op <= OpcodeMax {
		if name := opcodeNames[op]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("illegal op (%d)", op)
}
