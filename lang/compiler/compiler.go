// Much of the compiler package's shape — the assembler/generator split, the
// opcode stack-effect table, and the varint instruction encoding — is
// adapted from the Starlark source code:
// https://github.com/google/starlark-go/tree/ee8ed142361c69d52fe8e9fb5e311d2a0a7c02de
//
// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compiler lowers an AST (see lang/ast) into the bytecode tree
// understood by the target VM, given a completed symbol table for every
// lexical scope (see lang/symtable). Parsing source text, building the
// symbol table, serializing the result, and executing it are all out of
// scope: this package only performs the single-pass tree walk from AST
// node to opcode stream.
package compiler

import (
	"fmt"
	"os"

	"golang.org/x/exp/slices"

	"github.com/denise-amiga/pycopy-lib/internal/config"
	"github.com/denise-amiga/pycopy-lib/lang/ast"
	"github.com/denise-amiga/pycopy-lib/lang/symtable"
	"github.com/denise-amiga/pycopy-lib/lang/token"
)

// Error reports an unsupported construct or a disagreement with the
// symbol table: the two recoverable failure kinds a caller might want to
// report without a stack trace. Internal invariant violations (stack
// imbalance, an unbound label at finalization, loop-stack underflow) are
// not reported as *Error: they are raised as internalError panics, since
// they indicate a bug in this package rather than in the compiled program.
type Error struct {
	Node ast.Node
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("compiler: %s: %s", e.Msg, e.Node)
}

// internalError marks a panic raised for an invariant violation, so
// Compile's recover can tell it apart from an unrelated panic and refuse
// to swallow the latter.
type internalError string

func (e internalError) Error() string { return string(e) }

// storeConst/storePlain name the two flavors of store emitVar accepts: a
// definitional binding (assignment, function def, import) versus a plain
// rebinding (loop target, augmented assignment target).
const (
	storePlain = false
	storeConst = true
)

type loopKind uint8

const (
	loopWhile loopKind = iota
	loopFor
)

// loopCtx is one entry of the compiler's loop-context stack: the
// continue/break targets and kind of the loop currently being compiled.
// Pushed on loop entry, popped on loop exit; break/continue always consult
// the innermost entry.
type loopCtx struct {
	continueLabel int
	breakLabel    int
	kind          loopKind
}

// Compiler holds the transient state of a single-pass compilation: the
// assembler and symbol table of the scope currently being emitted, and
// the loop-context stack. A Compiler compiles exactly one module; Debug
// may be set before calling Compile to trace the shadow stack depth after
// each statement to stderr.
type Compiler struct {
	Debug bool

	filename string
	symtab   symtable.Map

	asm   *Assembler
	scope symtable.Table
	loops []loopCtx
}

// NewCompiler returns a Compiler ready to compile a module, given the finalized
// symbol table for every scope-defining node reachable from it.
func NewCompiler(symtab symtable.Map, filename string) *Compiler {
	return &Compiler{symtab: symtab, filename: filename}
}

// NewCompilerFromConfig is like NewCompiler, but takes its Debug flag and,
// when filename is empty, its display filename from opts.
func NewCompilerFromConfig(symtab symtable.Map, filename string, opts config.Options) *Compiler {
	if filename == "" {
		filename = opts.Filename
	}
	return &Compiler{symtab: symtab, filename: filename, Debug: opts.Debug}
}

// Compile lowers mod to its module-level CodeObject. Unsupported
// constructs and symbol-table disagreements are returned as *Error;
// internal invariant violations are raised as internalError panics, which
// Compile recovers and returns as an error that is not an *Error. Any other
// panic is propagated.
func (c *Compiler) Compile(mod *ast.Module) (co *CodeObject, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ierr, ok := r.(internalError); ok {
				err = ierr
				return
			}
			panic(r)
		}
	}()

	c.scope = c.symtab.Lookup(mod)
	c.asm = NewAssembler()

	if cerr := c.stmts(mod.Body); cerr != nil {
		return nil, cerr
	}
	c.asm.Emit0(LOAD_CONST_NONE)
	c.asm.Emit(RETURN_VALUE, 0)

	co, ferr := c.asm.Finalize()
	if ferr != nil {
		panic(internalError(ferr.Error()))
	}
	co.Name = "<module>"
	co.Filename = c.filename

	if len(c.loops) != 0 {
		panic(internalError("loop context stack not empty after compiling module"))
	}
	return co, nil
}

// stmts compiles a suite of statements, asserting that each one leaves the
// shadow stack at the depth it found it: a non-zero net effect is an
// internal invariant violation, not a user error.
func (c *Compiler) stmts(list []ast.Stmt) *Error {
	for _, s := range list {
		before := c.asm.StackDepth()
		if err := c.stmt(s); err != nil {
			return err
		}
		after := c.asm.StackDepth()
		if after != before {
			panic(internalError(fmt.Sprintf("statement left non-zero net stack effect: %d vs %d (%s)", before, after, s)))
		}
		if c.Debug {
			fmt.Fprintf(os.Stderr, "compiler: %s: stack=%d\n", s, after)
		}
	}
	return nil
}

func (c *Compiler) stmt(s ast.Stmt) *Error {
	switch s := s.(type) {
	case *ast.FunctionDef:
		return c.functionDef(s)
	case *ast.If:
		return c.ifStmt(s)
	case *ast.While:
		return c.whileStmt(s)
	case *ast.For:
		return c.forStmt(s)
	case *ast.Break:
		return c.breakStmt(s)
	case *ast.Continue:
		return c.continueStmt(s)
	case *ast.Return:
		return c.returnStmt(s)
	case *ast.Assign:
		return c.assignStmt(s)
	case *ast.AugAssign:
		return c.augAssignStmt(s)
	case *ast.ExprStmt:
		return c.exprStmt(s)
	case *ast.Pass:
		return nil
	case *ast.Import:
		return c.importStmt(s)
	case *ast.ImportFrom:
		return c.importFromStmt(s)
	default:
		panic(internalError(fmt.Sprintf("unexpected statement type %T", s)))
	}
}

func (c *Compiler) functionDef(s *ast.FunctionDef) *Error {
	// The AST's FunctionDef has no fields for variadic, keyword-only,
	// keyword-default, positional-default, or double-star parameters, so
	// the parameter categories this core doesn't support have no shape to
	// construct in the first place; rejection is structural, not a runtime
	// check.
	seen := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		if slices.Contains(seen, p.Name) {
			return &Error{Node: s, Msg: fmt.Sprintf("duplicate parameter name %q", p.Name)}
		}
		seen = append(seen, p.Name)
	}

	prevScope, prevAsm := c.scope, c.asm
	fnScope := c.symtab.Lookup(s)
	// Finalize is deferred to run last, after every other call into
	// fnScope (Scope/FastLocal during body codegen, NumLocals below), per
	// Table.Finalize's contract: release analysis-only state once the
	// compiler is done asking this scope questions, not before.
	defer fnScope.Finalize()

	c.scope = fnScope
	c.asm = NewAssembler()

	// Pre-insert each parameter name into the constant pool, in order, so
	// the VM can bind a call by keyword.
	for _, p := range s.Params {
		c.asm.InternAtom(p.Name)
	}

	if err := c.stmts(s.Body); err != nil {
		c.scope, c.asm = prevScope, prevAsm
		return err
	}
	if !lastIsReturn(s.Body) {
		c.asm.Emit0(LOAD_CONST_NONE)
		c.asm.Emit(RETURN_VALUE, 0)
	}

	co, ferr := c.asm.Finalize()
	if ferr != nil {
		panic(internalError(ferr.Error()))
	}
	co.Name = s.Name.Name
	co.Filename = c.filename
	co.ArgCount = len(s.Params)
	co.StackSize += fnScope.NumLocals()

	c.scope, c.asm = prevScope, prevAsm

	c.asm.Emit(MAKE_FUNCTION, c.asm.AddCodeObject(co))
	return c.emitVar(s.Name.Name, ast.Store, storeConst)
}

func lastIsReturn(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*ast.Return)
	return ok
}

func (c *Compiler) ifStmt(s *ast.If) *Error {
	if err := c.expr(s.Test); err != nil {
		return err
	}
	joinL := c.asm.Label()
	if len(s.Orelse) > 0 {
		elseL := c.asm.Label()
		c.asm.Jump(POP_JUMP_IF_FALSE, elseL)
		if err := c.stmts(s.Body); err != nil {
			return err
		}
		c.asm.Jump(JUMP, joinL)
		c.asm.PlaceLabel(elseL)
		if err := c.stmts(s.Orelse); err != nil {
			return err
		}
	} else {
		c.asm.Jump(POP_JUMP_IF_FALSE, joinL)
		if err := c.stmts(s.Body); err != nil {
			return err
		}
	}
	c.asm.PlaceLabel(joinL)
	return nil
}

func (c *Compiler) whileStmt(s *ast.While) *Error {
	testL := c.asm.Label()
	bodyL := c.asm.Label()
	endL := c.asm.Label()

	c.asm.Jump(JUMP, testL)
	c.asm.PlaceLabel(bodyL)
	c.loops = append(c.loops, loopCtx{continueLabel: testL, breakLabel: endL, kind: loopWhile})
	if err := c.stmts(s.Body); err != nil {
		c.loops = c.loops[:len(c.loops)-1]
		return err
	}
	c.loops = c.loops[:len(c.loops)-1]

	c.asm.PlaceLabel(testL)
	if err := c.expr(s.Test); err != nil {
		return err
	}
	c.asm.Jump(POP_JUMP_IF_TRUE, bodyL)
	if err := c.stmts(s.Orelse); err != nil {
		return err
	}
	c.asm.PlaceLabel(endL)
	return nil
}

func (c *Compiler) forStmt(s *ast.For) *Error {
	testL := c.asm.Label()
	endL := c.asm.Label()

	if err := c.expr(s.Iter); err != nil {
		return err
	}
	c.asm.Emit(GET_ITER_STACK, 0)
	c.asm.PlaceLabel(testL)
	c.asm.Jump(FOR_ITER, endL)
	if err := c.emitStoreTarget(s.Target, storePlain); err != nil {
		return err
	}

	c.loops = append(c.loops, loopCtx{continueLabel: testL, breakLabel: endL, kind: loopFor})
	if err := c.stmts(s.Body); err != nil {
		c.loops = c.loops[:len(c.loops)-1]
		return err
	}
	c.loops = c.loops[:len(c.loops)-1]

	c.asm.Jump(JUMP, testL)
	c.asm.PlaceLabel(endL)
	// FOR_ITER's exit edge leaves the 4-slot iterator state that
	// GET_ITER_STACK reserved; the VM pops it at runtime on that edge, so
	// the shadow counter must follow without an opcode emission to match.
	c.asm.AdjustStack(-4)
	return c.stmts(s.Orelse)
}

func (c *Compiler) breakStmt(s *ast.Break) *Error {
	if len(c.loops) == 0 {
		panic(internalError("break outside of a loop"))
	}
	top := c.loops[len(c.loops)-1]
	if top.kind == loopFor {
		depth := c.asm.StackDepth()
		for i := 0; i < 4; i++ {
			c.asm.Emit0(POP_TOP)
		}
		// The VM pops these 4 slots at runtime just as it would on a
		// natural loop exit; restore the shadow depth to what it was so
		// the break instruction itself nets to zero here, matching the
		// accounting at the loop's normal exit edge.
		c.asm.stackDepth = depth
	}
	c.asm.Jump(JUMP, top.breakLabel)
	return nil
}

func (c *Compiler) continueStmt(s *ast.Continue) *Error {
	if len(c.loops) == 0 {
		panic(internalError("continue outside of a loop"))
	}
	c.asm.Jump(JUMP, c.loops[len(c.loops)-1].continueLabel)
	return nil
}

func (c *Compiler) returnStmt(s *ast.Return) *Error {
	if s.Value == nil {
		c.asm.Emit0(LOAD_CONST_NONE)
	} else if err := c.expr(s.Value); err != nil {
		return err
	}
	c.asm.Emit(RETURN_VALUE, 0)
	return nil
}

func (c *Compiler) assignStmt(s *ast.Assign) *Error {
	if err := c.expr(s.Value); err != nil {
		return err
	}
	for _, t := range s.Targets[:len(s.Targets)-1] {
		c.asm.Emit0(DUP_TOP)
		if err := c.emitStoreTarget(t, storeConst); err != nil {
			return err
		}
	}
	return c.emitStoreTarget(s.Targets[len(s.Targets)-1], storeConst)
}

func (c *Compiler) augAssignStmt(s *ast.AugAssign) *Error {
	if err := c.emitLoadTarget(s.Target); err != nil {
		return err
	}
	if err := c.expr(s.Value); err != nil {
		return err
	}
	op, ok := inplaceOp[s.Op]
	if !ok {
		return &Error{Node: s, Msg: fmt.Sprintf("unsupported augmented assignment operator %s", s.Op)}
	}
	c.asm.Emit(op, 0)
	return c.emitStoreTarget(s.Target, storePlain)
}

func (c *Compiler) exprStmt(s *ast.ExprStmt) *Error {
	if err := c.expr(s.Value); err != nil {
		return err
	}
	c.asm.Emit0(POP_TOP)
	return nil
}

func (c *Compiler) importStmt(s *ast.Import) *Error {
	for _, n := range s.Names {
		c.asm.EmitInt(0)
		c.asm.Emit0(LOAD_CONST_NONE)
		c.asm.EmitName(IMPORT_NAME, n.Name)
		if n.AsName != nil {
			comps := splitDotted(n.Name)
			for _, comp := range comps[1:] {
				c.asm.EmitName(LOAD_ATTR, comp)
			}
			if err := c.emitVar(n.AsName.Name, ast.Store, storeConst); err != nil {
				return err
			}
		} else {
			top := splitDotted(n.Name)[0]
			if err := c.emitVar(top, ast.Store, storeConst); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Compiler) importFromStmt(s *ast.ImportFrom) *Error {
	c.asm.EmitInt(int64(s.Level))
	for _, n := range s.Names {
		c.asm.EmitConstStringAtom(n.Name)
	}
	c.asm.EmitVariadic(BUILD_TUPLE, uint32(len(s.Names)), 1-len(s.Names))
	c.asm.EmitName(IMPORT_NAME, s.Module)

	if len(s.Names) == 1 && s.Names[0].Name == "*" {
		c.asm.Emit0(IMPORT_STAR)
		return nil
	}
	for _, n := range s.Names {
		c.asm.EmitName(IMPORT_FROM, n.Name)
		alias := n.Name
		if n.AsName != nil {
			alias = n.AsName.Name
		}
		if err := c.emitVar(alias, ast.Store, storeConst); err != nil {
			return err
		}
	}
	c.asm.Emit0(POP_TOP)
	return nil
}

func splitDotted(name string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			parts = append(parts, name[start:i])
			start = i + 1
		}
	}
	parts = append(parts, name[start:])
	return parts
}

// expr compiles e, leaving exactly one value on the operand stack.
func (c *Compiler) expr(e ast.Expr) *Error {
	switch e := e.(type) {
	case *ast.Ident:
		return c.emitVar(e.Name, e.Ctx, false)
	case *ast.Int:
		c.asm.EmitInt(e.Value)
		return nil
	case *ast.Str:
		c.asm.EmitString(e.Value)
		return nil
	case *ast.Bytes:
		c.asm.EmitBytes(e.Value)
		return nil
	case *ast.Tuple:
		return c.exprList(e.Elts, BUILD_TUPLE)
	case *ast.List:
		return c.exprList(e.Elts, BUILD_LIST)
	case *ast.Set:
		return c.exprList(e.Elts, BUILD_SET)
	case *ast.Dict:
		return c.dict(e)
	case *ast.Call:
		return c.call(e)
	case *ast.BinOp:
		return c.binOp(e)
	case *ast.UnaryOp:
		return c.unaryOp(e)
	case *ast.BoolOp:
		return c.boolOp(e)
	case *ast.Compare:
		return c.compare(e)
	case *ast.Attribute:
		return c.attribute(e, false)
	default:
		panic(internalError(fmt.Sprintf("unexpected expression type %T", e)))
	}
}

func (c *Compiler) exprList(elts []ast.Expr, op Opcode) *Error {
	for _, el := range elts {
		if err := c.expr(el); err != nil {
			return err
		}
	}
	c.asm.EmitVariadic(op, uint32(len(elts)), 1-len(elts))
	return nil
}

func (c *Compiler) dict(d *ast.Dict) *Error {
	c.asm.Emit(BUILD_MAP, uint32(len(d.Keys)))
	for i, k := range d.Keys {
		if err := c.expr(d.Values[i]); err != nil {
			return err
		}
		if err := c.expr(k); err != nil {
			return err
		}
		c.asm.Emit0(STORE_MAP)
	}
	return nil
}

func (c *Compiler) call(call *ast.Call) *Error {
	if err := c.expr(call.Func); err != nil {
		return err
	}
	for _, a := range call.Args {
		if err := c.expr(a); err != nil {
			return err
		}
	}
	n := len(call.Args)
	c.asm.EmitVariadic(CALL_FUNCTION, uint32(n)<<8, -n)
	return nil
}

func (c *Compiler) attribute(a *ast.Attribute, store bool) *Error {
	if err := c.expr(a.Value); err != nil {
		return err
	}
	if store {
		c.asm.EmitName(STORE_ATTR, a.Attr)
	} else {
		c.asm.EmitName(LOAD_ATTR, a.Attr)
	}
	return nil
}

// emitStoreTarget compiles an assignment target in store context: an
// *ast.Ident or an *ast.Attribute. constStore selects StoreConst semantics
// for a name target (meaningless for an attribute target, which has no
// const/plain distinction).
func (c *Compiler) emitStoreTarget(target ast.Expr, constStore bool) *Error {
	switch t := target.(type) {
	case *ast.Ident:
		return c.emitVar(t.Name, ast.Store, constStore)
	case *ast.Attribute:
		return c.attribute(t, true)
	default:
		return &Error{Node: target, Msg: fmt.Sprintf("unsupported assignment target %T", target)}
	}
}

// emitLoadTarget compiles an augmented-assignment target in load context,
// without mutating the target node: the generic name/attribute emission
// path is reused by passing an explicit context, never by rewriting
// target.Ctx in place.
func (c *Compiler) emitLoadTarget(target ast.Expr) *Error {
	switch t := target.(type) {
	case *ast.Ident:
		return c.emitVar(t.Name, ast.Load, storePlain)
	case *ast.Attribute:
		return c.attribute(t, false)
	default:
		return &Error{Node: target, Msg: fmt.Sprintf("unsupported assignment target %T", target)}
	}
}

// emitVar is the single dispatch point for every name reference: it
// consults the scope's symbol table and selects the load/store/store-const
// opcode family the table's answer calls for. ctx is ast.Load or
// ast.Store; constStore additionally selects StoreConst semantics for a
// Store in NAME/GLOBAL scope (FAST/DEREF have no const/plain distinction).
func (c *Compiler) emitVar(name string, ctx ast.ExprContext, constStore bool) *Error {
	scope := c.scope.Scope(name)
	switch scope {
	case symtable.Name:
		switch {
		case ctx == ast.Load:
			c.asm.EmitName(LOAD_NAME, name)
		case constStore:
			c.asm.EmitName(STORE_NAME_CONST, name)
		default:
			c.asm.EmitName(STORE_NAME, name)
		}
	case symtable.Global:
		switch {
		case ctx == ast.Load:
			c.asm.EmitName(LOAD_GLOBAL, name)
		case constStore:
			c.asm.EmitName(STORE_GLOBAL_CONST, name)
		default:
			c.asm.EmitName(STORE_GLOBAL, name)
		}
	case symtable.Fast, symtable.Deref:
		idx, ok := c.scope.FastLocal(name)
		if !ok {
			panic(internalError(fmt.Sprintf("symbol table reports %s scope for %q but no fast-local slot", scope, name)))
		}
		op := LOAD_FAST_N
		if scope == symtable.Deref {
			op = LOAD_DEREF
		}
		if ctx == ast.Store {
			op++ // LOAD_FAST_N/STORE_FAST_N and LOAD_DEREF/STORE_DEREF are adjacent pairs
		}
		c.asm.Emit(op, uint32(idx))
	default:
		return &Error{Node: nil, Msg: fmt.Sprintf("symbol table returned unmappable scope %s for %q", scope, name)}
	}
	return nil
}

func (c *Compiler) binOp(e *ast.BinOp) *Error {
	op, ok := binOpcode[e.Op]
	if !ok {
		return &Error{Node: e, Msg: fmt.Sprintf("unsupported binary operator %s", e.Op)}
	}
	if err := c.expr(e.Left); err != nil {
		return err
	}
	if err := c.expr(e.Right); err != nil {
		return err
	}
	c.asm.Emit(op, 0)
	return nil
}

func (c *Compiler) unaryOp(e *ast.UnaryOp) *Error {
	op, ok := unaryOpcode[e.Op]
	if !ok {
		return &Error{Node: e, Msg: fmt.Sprintf("unsupported unary operator %s", e.Op)}
	}
	if err := c.expr(e.Operand); err != nil {
		return err
	}
	c.asm.Emit(op, 0)
	return nil
}

func (c *Compiler) boolOp(e *ast.BoolOp) *Error {
	var jmp Opcode
	switch e.Op {
	case token.AND:
		jmp = JUMP_IF_FALSE_OR_POP
	case token.OR:
		jmp = JUMP_IF_TRUE_OR_POP
	default:
		return &Error{Node: e, Msg: fmt.Sprintf("unsupported boolean operator %s", e.Op)}
	}
	joinL := c.asm.Label()
	for _, v := range e.Values[:len(e.Values)-1] {
		if err := c.expr(v); err != nil {
			return err
		}
		c.asm.Jump(jmp, joinL)
	}
	if err := c.expr(e.Values[len(e.Values)-1]); err != nil {
		return err
	}
	c.asm.PlaceLabel(joinL)
	return nil
}

func (c *Compiler) compare(e *ast.Compare) *Error {
	cmp, ok := compareOpcode[e.Op]
	if !ok {
		return &Error{Node: e, Msg: fmt.Sprintf("unsupported comparison operator %s", e.Op)}
	}
	if err := c.expr(e.Left); err != nil {
		return err
	}
	if err := c.expr(e.Right); err != nil {
		return err
	}
	c.asm.Emit(cmp.op, 0)
	if cmp.negate {
		c.asm.Emit0(UNARY_NOT)
	}
	return nil
}

// binOpcode maps each arithmetic/bitwise token to its BINARY_* opcode.
var binOpcode = map[token.Token]Opcode{
	token.PLUS:       BINARY_ADD,
	token.MINUS:      BINARY_SUBTRACT,
	token.STAR:       BINARY_MULTIPLY,
	token.AT:         BINARY_MAT_MULTIPLY,
	token.SLASH:      BINARY_TRUE_DIVIDE,
	token.SLASHSLASH: BINARY_FLOOR_DIVIDE,
	token.PERCENT:    BINARY_MODULO,
	token.STARSTAR:   BINARY_POWER,
	token.LSHIFT:     BINARY_LSHIFT,
	token.RSHIFT:     BINARY_RSHIFT,
	token.AMP:        BINARY_AND,
	token.PIPE:       BINARY_OR,
	token.CIRCUMFLEX: BINARY_XOR,
}

// inplaceOp maps each augmented-assignment token to its INPLACE_* opcode.
var inplaceOp = map[token.Token]Opcode{
	token.PLUS_EQ:       INPLACE_ADD,
	token.MINUS_EQ:      INPLACE_SUBTRACT,
	token.STAR_EQ:       INPLACE_MULTIPLY,
	token.AT_EQ:         INPLACE_MAT_MULTIPLY,
	token.SLASH_EQ:      INPLACE_TRUE_DIVIDE,
	token.SLASHSLASH_EQ: INPLACE_FLOOR_DIVIDE,
	token.PERCENT_EQ:    INPLACE_MODULO,
	token.STARSTAR_EQ:   INPLACE_POWER,
	token.LSHIFT_EQ:     INPLACE_LSHIFT,
	token.RSHIFT_EQ:     INPLACE_RSHIFT,
	token.AMP_EQ:        INPLACE_AND,
	token.PIPE_EQ:       INPLACE_OR,
	token.CIRCUMFLEX_EQ: INPLACE_XOR,
}

// unaryOpcode maps each unary token to its UNARY_* opcode.
var unaryOpcode = map[token.Token]Opcode{
	token.PLUS:  UNARY_POSITIVE,
	token.MINUS: UNARY_NEGATIVE,
	token.TILDE: UNARY_INVERT,
	token.NOT:   UNARY_NOT,
}

// compareOpcode maps each comparison token to its BINARY_* opcode and
// whether the result must be negated with a trailing UNARY_NOT (for the
// synthesized IS_NOT/NOT_IN tokens, which have no opcode of their own).
var compareOpcode = map[token.Token]struct {
	op     Opcode
	negate bool
}{
	token.LT:     {BINARY_LESS, false},
	token.LE:     {BINARY_LESS_EQUAL, false},
	token.GT:     {BINARY_MORE, false},
	token.GE:     {BINARY_MORE_EQUAL, false},
	token.EQL:    {BINARY_EQUAL, false},
	token.NEQ:    {BINARY_NOT_EQUAL, false},
	token.IS:     {BINARY_IS, false},
	token.IS_NOT: {BINARY_IS, true},
	token.IN:     {BINARY_IN, false},
	token.NOT_IN: {BINARY_IN, true},
}
