package compiler

import (
	"bytes"
	"fmt"
)

// Disassemble renders co and every code object reachable from it as a
// human-readable instruction listing, in the style of Starlark's Dasm: one
// "function:" header per code object followed by its decoded instructions,
// each prefixed with its byte offset so jump targets are easy to cross
// reference. It is diagnostic output only; nothing in this package parses
// it back.
func Disassemble(co *CodeObject) string {
	var buf bytes.Buffer
	d := &disasm{buf: &buf}
	d.walk(co)
	return buf.String()
}

type disasm struct {
	buf *bytes.Buffer
}

// walk prints co and then recurses into every function nested under it, at
// every depth: a function's own Functions list holds only the code objects
// declared directly inside it, not its grandchildren.
func (d *disasm) walk(co *CodeObject) {
	d.function(co)
	for _, fn := range co.Functions {
		d.buf.WriteString("\n")
		d.walk(fn)
	}
}

func (d *disasm) function(co *CodeObject) {
	fmt.Fprintf(d.buf, "function: %s argcount=%d stacksize=%d\n", co.Name, co.ArgCount, co.StackSize)
	if len(co.Consts) > 0 {
		d.buf.WriteString("\tconsts:\n")
		for i, c := range co.Consts {
			fmt.Fprintf(d.buf, "\t\t# %03d\t%s\n", i, describeConst(c))
		}
	}

	for addr := 0; addr < len(co.Code); {
		op := Opcode(co.Code[addr])
		fmt.Fprintf(d.buf, "\t%04d\t%s", addr, op)

		size := 1
		if op >= OpcodeArgMin {
			arg, argLen := decodeArg(co.Code[addr+1:])
			if isJump(op) {
				fmt.Fprintf(d.buf, " -> %04d", arg)
				size = 1 + 4
			} else {
				fmt.Fprintf(d.buf, " %d", arg)
				size = 1 + argLen
			}
		}
		d.buf.WriteString("\n")
		addr += size
	}
}

func describeConst(c any) string {
	switch c := c.(type) {
	case *CodeObject:
		return fmt.Sprintf("<code %s>", c.Name)
	case []byte:
		return fmt.Sprintf("%q", string(c))
	default:
		return fmt.Sprintf("%v", c)
	}
}

// decodeArg reads the varint argument starting at b[0], returning its value
// and the number of bytes it occupies.
func decodeArg(b []byte) (uint32, int) {
	var x uint32
	var shift uint
	var n int
	for {
		c := b[n]
		x |= uint32(c&0x7f) << shift
		n++
		if c < 0x80 {
			break
		}
		shift += 7
	}
	return x, n
}
