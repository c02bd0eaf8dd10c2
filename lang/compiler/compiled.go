package compiler

// A CodeObject is the compiled output of one module or function scope:
// an opcode stream, its constant pool, and the metadata the VM needs to
// set up a call frame. CodeObjects are immutable once returned by
// (*Assembler).Finalize, except for the post-hoc fields (Name, Filename,
// ArgCount, StackSize) the code generator fills in after finalization.
type CodeObject struct {
	Name      string // display name: "<module>" or a function name
	Filename  string // source origin, copied from compiler state
	ArgCount  int    // number of positional parameters (0 for a module)
	Code      []byte // opcode stream, variable-length encoded
	Consts    []any  // int64, string, []byte, or *CodeObject entries
	StackSize int     // high-water operand-stack depth, adjusted by fast-local count for functions

	// Functions holds every nested function's CodeObject reachable from
	// Consts, kept alongside it for callers that want to walk the tree
	// without filtering the constant pool by type.
	Functions []*CodeObject
}
