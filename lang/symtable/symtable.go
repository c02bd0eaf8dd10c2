// Package symtable defines the capability interface the compiler consumes to
// decide how a name reference is emitted: as a dict lookup against the
// module namespace, a slot in a frame's fast-local array, or a cell shared
// with a nested function. Building the table from an AST (the name-binding
// analysis CPython calls "symbol table construction") is out of scope for
// this package; it only defines the shape a resolver would populate and the
// compiler reads.
package symtable

import "fmt"

// Scope classifies how a name is stored at runtime, matching the four
// load/store opcode families the compiler chooses between.
type Scope uint8

const (
	// Undefined means the name has no binding information; the compiler
	// reports a reference to it as a recoverable symbol-table disagreement
	// (a *compiler.Error), not as an internal error.
	Undefined Scope = iota

	// Name is a name looked up dynamically in the running namespace,
	// falling back from locals to globals to builtins. Module-level code
	// and any name a nested function merely reads without a matching local
	// binding resolve here.
	Name

	// Global is a name bound at module level and referenced (directly, or
	// via an explicit "global" declaration) from within a function.
	Global

	// Fast is a local variable stored in a fixed slot of the function's
	// frame, addressed by index rather than by name.
	Fast

	// Deref is a local variable captured by a nested function (a "cell")
	// or a reference to an enclosing function's cell (a "free" variable).
	Deref
)

var scopeNames = [...]string{
	Undefined: "undefined",
	Name:      "name",
	Global:    "global",
	Fast:      "fast",
	Deref:     "deref",
}

func (s Scope) String() string {
	if int(s) >= len(scopeNames) {
		return fmt.Sprintf("<invalid Scope %d>", s)
	}
	return scopeNames[s]
}

// Table answers the questions the compiler needs about one function or
// module scope. A concrete implementation is built by whatever performs
// name-binding analysis over the AST; the compiler only ever reads it.
type Table interface {
	// Scope reports how name is stored when referenced from this scope.
	Scope(name string) Scope

	// FastLocal reports the frame-slot index for name, when Scope(name) ==
	// Fast or Deref. ok is false for any other scope.
	FastLocal(name string) (index int, ok bool)

	// NumLocals reports the number of Fast and Deref slots this scope's
	// frame needs, i.e. one past the highest index FastLocal can return.
	NumLocals() int

	// Finalize is called once the compiler has finished emitting code for
	// this scope's body, so the table can release any analysis-only state.
	// Implementations for which this is a no-op may embed NopFinalizer.
	Finalize()
}

// NopFinalizer implements a no-op Finalize, for Table implementations that
// don't need to release any state after compilation.
type NopFinalizer struct{}

// Finalize implements Table.
func (NopFinalizer) Finalize() {}

// Map associates each scope-defining AST node (an *ast.Module or
// *ast.FunctionDef) with the Table describing that scope. It is the
// collaborator boundary between name-binding analysis and the compiler: the
// compiler looks up the current scope's Table by the node it is currently
// inside, it never builds one itself.
type Map map[interface{}]Table

// Lookup returns the Table for the scope-defining node, panicking if absent
// since a missing entry means the compiler is being driven with an AST that
// was never analyzed.
func (m Map) Lookup(scope interface{}) Table {
	t, ok := m[scope]
	if !ok {
		panic(fmt.Sprintf("symtable: no Table for scope %T", scope))
	}
	return t
}
