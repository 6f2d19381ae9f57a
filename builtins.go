package tkom

import (
	"fmt"
	"io"
)

// Callable is a uniform interface over user-defined functions and
// built-ins. The caller prepares a fresh scope, fills its params sequence
// with the evaluated arguments and invokes Exec on it.
type Callable interface {
	Exec(ctx *Scope) Value
}

// PrintFunc writes every argument's textual form followed by a single
// space, then a newline. Text arguments print without surrounding
// quotes; all other values use their canonical form.
type PrintFunc struct {
	out io.Writer
}

func (p *PrintFunc) Exec(ctx *Scope) Value {
	for i := 0; i < ctx.ParamCount(); i++ {
		fmt.Fprint(p.out, printText(ctx.Param(i)), " ")
	}
	fmt.Fprint(p.out, "\n")
	return None
}

func printText(v Value) string {
	if v.Tag == VTText {
		return v.AsText()
	}
	return v.String()
}

// RangeFunc builds the list [0, 1, ..., n-1] for one Int argument; n <= 0
// yields the empty list.
type RangeFunc struct{}

func (r *RangeFunc) Exec(ctx *Scope) Value {
	if ctx.ParamCount() != 1 {
		failParametersCount("range", ctx.ParamCount(), 1)
	}
	arg := ctx.Param(0)
	if arg.Tag != VTInt {
		failTypeNotExpected("int")
	}
	n := arg.AsInt()
	if n <= 0 {
		return List([]Value{})
	}
	out := make([]Value, 0, n)
	for i := int64(0); i < n; i++ {
		out = append(out, Int(i))
	}
	return List(out)
}

// LenFunc returns the length of one List or Text argument as Int.
type LenFunc struct{}

func (l *LenFunc) Exec(ctx *Scope) Value {
	if ctx.ParamCount() != 1 {
		failParametersCount("len", ctx.ParamCount(), 1)
	}
	arg := ctx.Param(0)
	switch arg.Tag {
	case VTList:
		return Int(int64(len(arg.AsList())))
	case VTText:
		return Int(int64(len(arg.AsText())))
	default:
		failTypeNotExpected("list or string")
	}
	return None
}

// NewGlobalScope builds the outermost scope with the built-in functions
// registered. Print output goes to out; the writer is borrowed and never
// closed.
func NewGlobalScope(out io.Writer) *Scope {
	global := NewScope(nil)
	global.SetFunction("print", &PrintFunc{out: out})
	global.SetFunction("range", &RangeFunc{})
	global.SetFunction("len", &LenFunc{})
	return global
}
