package tkom

import "strings"

// Node is one instruction of the abstract syntax tree. Exec evaluates the
// node against a scope and may signal a runtime error through failRuntime;
// String renders the node back to source-like text.
type Node interface {
	Exec(ctx *Scope) Value
	String() string
}

// CodeBlock is a maximal run of statements sharing one indentation width.
type CodeBlock struct {
	Instructions []Node
}

func (c *CodeBlock) AddInstruction(n Node) {
	c.Instructions = append(c.Instructions, n)
}

func (c *CodeBlock) Empty() bool { return len(c.Instructions) == 0 }

// Exec runs children in order. A control sentinel interrupts the block and
// propagates to the enclosing construct; otherwise the block yields None.
func (c *CodeBlock) Exec(ctx *Scope) Value {
	for _, instr := range c.Instructions {
		result := instr.Exec(ctx)
		if result.isControl() {
			return result
		}
	}
	return None
}

func (c *CodeBlock) String() string {
	var b strings.Builder
	for i, instr := range c.Instructions {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		b.WriteString(strings.ReplaceAll(instr.String(), "\n", "\n  "))
	}
	return b.String()
}

// FunctionDef declares a named function. Executing the definition registers
// a callable in the current scope without running the body.
type FunctionDef struct {
	Name   string
	Params []string
	Body   *CodeBlock
}

func (f *FunctionDef) Exec(ctx *Scope) Value {
	ctx.SetFunction(f.Name, &FunctionPointer{Name: f.Name, Params: f.Params, Body: f.Body})
	return None
}

func (f *FunctionDef) String() string {
	return "def " + f.Name + "(" + strings.Join(f.Params, ", ") + "):\n" + f.Body.String()
}

// FunctionPointer is the callable registered for a user-defined function.
// The invocation scope is a child of the caller's scope; the caller fills
// its params sequence before calling Exec.
type FunctionPointer struct {
	Name   string
	Params []string
	Body   *CodeBlock
}

func (f *FunctionPointer) Exec(call *Scope) Value {
	if call.ParamCount() != len(f.Params) {
		failParametersCount(f.Name, call.ParamCount(), len(f.Params))
	}
	for i, name := range f.Params {
		call.SetVariable(name, call.Param(i))
	}
	result := f.Body.Exec(call)
	if result.Tag == TReturn {
		return result.Inner()
	}
	return None
}

// Variable reads a name through the scope chain.
type Variable struct {
	Name string
}

func (v *Variable) Exec(ctx *Scope) Value {
	val, ok := ctx.GetVariable(v.Name)
	if !ok {
		failReadNotAssign(v.Name)
	}
	return val
}

func (v *Variable) String() string { return v.Name }

// Constant embeds a literal. Scalars carry their payload directly; a list
// literal keeps its element nodes and evaluates them on each execution.
type Constant struct {
	Type     ValueTag
	BoolVal  bool
	IntVal   int64
	RealVal  float64
	StrVal   string
	Elements []Node
}

func NewNoneConstant() *Constant          { return &Constant{Type: VTNone} }
func NewBoolConstant(v bool) *Constant    { return &Constant{Type: VTBool, BoolVal: v} }
func NewIntConstant(v int64) *Constant    { return &Constant{Type: VTInt, IntVal: v} }
func NewRealConstant(v float64) *Constant { return &Constant{Type: VTReal, RealVal: v} }
func NewTextConstant(v string) *Constant  { return &Constant{Type: VTText, StrVal: v} }
func NewListConstant(elements []Node) *Constant {
	return &Constant{Type: VTList, Elements: elements}
}

func (c *Constant) Exec(ctx *Scope) Value {
	switch c.Type {
	case VTNone:
		return None
	case VTBool:
		return Bool(c.BoolVal)
	case VTInt:
		return Int(c.IntVal)
	case VTReal:
		return Real(c.RealVal)
	case VTText:
		return Text(c.StrVal)
	}
	values := make([]Value, 0, len(c.Elements))
	for _, elem := range c.Elements {
		values = append(values, elem.Exec(ctx))
	}
	return List(values)
}

func (c *Constant) String() string {
	switch c.Type {
	case VTNone:
		return "None"
	case VTBool:
		if c.BoolVal {
			return "True"
		}
		return "False"
	case VTInt:
		return Int(c.IntVal).String()
	case VTReal:
		return Real(c.RealVal).String()
	case VTText:
		return `"` + c.StrVal + `"`
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, elem := range c.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(']')
	return b.String()
}

// SliceKind selects the slice form: a single index, an open end or a range.
type SliceKind int

const (
	SliceIndex     SliceKind = iota // source[start]
	SliceFromStart                  // source[start:]
	SliceRange                      // source[start:end]
)

// Slice extracts an element or a sub-list. Bounds are half-open; both
// bounds come from non-negative integer literals.
type Slice struct {
	Kind   SliceKind
	Start  int
	End    int
	Source Node
}

func (s *Slice) Exec(ctx *Scope) Value {
	src := s.Source.Exec(ctx)
	if src.Tag != VTList {
		failNotList(src.Tag)
	}
	elements := src.AsList()
	size := len(elements)

	switch s.Kind {
	case SliceIndex:
		if s.Start < 0 || s.Start >= size {
			failOutOfRange(s.Start, size)
		}
		return elements[s.Start]
	case SliceFromStart:
		if s.Start < 0 || s.Start > size {
			failOutOfRange(s.Start, size)
		}
		return List(elements[s.Start:])
	default:
		if s.Start < 0 || s.Start > size {
			failOutOfRange(s.Start, size)
		}
		if s.End < 0 || s.End > size {
			failOutOfRange(s.End, size)
		}
		if s.End < s.Start {
			return List([]Value{})
		}
		return List(elements[s.Start:s.End])
	}
}

func (s *Slice) String() string {
	out := s.Source.String() + "[" + Int(int64(s.Start)).String()
	if s.Kind != SliceIndex {
		out += ":"
	}
	if s.Kind == SliceRange {
		out += Int(int64(s.End)).String()
	}
	return out + "]"
}

// FunctionCall invokes a named callable. Arguments evaluate left-to-right
// in the caller scope and land in the params sequence of a fresh child of
// the caller scope.
type FunctionCall struct {
	Name string
	Args []Node
}

func (f *FunctionCall) Exec(ctx *Scope) Value {
	callee := ctx.GetFunction(f.Name)
	if callee == nil {
		failFunctionNotDeclared(f.Name)
	}
	call := NewScope(ctx)
	for _, arg := range f.Args {
		call.AddParam(arg.Exec(ctx))
	}
	return callee.Exec(call)
}

func (f *FunctionCall) String() string {
	parts := make([]string, len(f.Args))
	for i, arg := range f.Args {
		parts[i] = arg.String()
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Return wraps its value into a TReturn sentinel that unwinds the enclosing
// function body.
type Return struct {
	Value Node
}

func (r *Return) Exec(ctx *Scope) Value {
	return returnValue(r.Value.Exec(ctx))
}

func (r *Return) String() string { return "return " + r.Value.String() }

// ExprOp is a binary arithmetic operator of an Expression chain.
type ExprOp int

const (
	OpAdd ExprOp = iota
	OpSub
	OpMul
	OpDiv
	OpExp
)

func (op ExprOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpExp:
		return "^"
	}
	return "?"
}

// Expression is an n-ary left-associative operator chain holding one more
// argument than operators. a op1 b op2 c evaluates as (a op1 b) op2 c.
type Expression struct {
	Args []Node
	Ops  []ExprOp
}

func (e *Expression) Exec(ctx *Scope) Value {
	result := e.Args[0].Exec(ctx)
	for i, op := range e.Ops {
		right := e.Args[i+1].Exec(ctx)
		result = makeExpression(result, right, op)
	}
	return result
}

func (e *Expression) String() string {
	var b strings.Builder
	for i, arg := range e.Args {
		if i > 0 {
			b.WriteString(" " + e.Ops[i-1].String() + " ")
		}
		b.WriteString(arg.String())
	}
	return b.String()
}

// CompareOp is a comparison operator; CompareNone marks a pass-through
// compare expression without a right side.
type CompareOp int

const (
	CompareNone CompareOp = iota
	CompareGreater
	CompareGreaterEq
	CompareLess
	CompareLessEq
	CompareDifferent
	CompareEqual
)

func (op CompareOp) String() string {
	switch op {
	case CompareGreater:
		return ">"
	case CompareGreaterEq:
		return ">="
	case CompareLess:
		return "<"
	case CompareLessEq:
		return "<="
	case CompareDifferent:
		return "!="
	case CompareEqual:
		return "=="
	}
	return ""
}

// CompareExpr compares two expressions, or passes its left side through
// when no operator is present. Chained comparisons are not supported.
type CompareExpr struct {
	Op    CompareOp
	Left  Node
	Right Node
}

func (c *CompareExpr) Exec(ctx *Scope) Value {
	left := c.Left.Exec(ctx)
	if c.Op == CompareNone {
		return left
	}
	right := c.Right.Exec(ctx)
	switch c.Op {
	case CompareEqual:
		return Bool(valuesEqual(left, right))
	case CompareDifferent:
		return Bool(!valuesEqual(left, right))
	default:
		return Bool(orderValues(left, right, c.Op))
	}
}

func (c *CompareExpr) String() string {
	out := c.Left.String()
	if c.Op != CompareNone {
		out += " " + c.Op.String() + " " + c.Right.String()
	}
	return out
}

// AssignOp selects plain, additive or subtractive assignment.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
)

// AssignExpr binds a name in the current scope. The compound forms read the
// current value first and go through the arithmetic compatibility table.
type AssignExpr struct {
	Op    AssignOp
	Name  string
	Value Node
}

func (a *AssignExpr) Exec(ctx *Scope) Value {
	if a.Op == AssignPlain {
		ctx.SetVariable(a.Name, a.Value.Exec(ctx))
		return None
	}
	current, ok := ctx.GetVariable(a.Name)
	if !ok {
		failReadNotAssign(a.Name)
	}
	op := OpAdd
	if a.Op == AssignSub {
		op = OpSub
	}
	ctx.SetVariable(a.Name, makeExpression(current, a.Value.Exec(ctx), op))
	return None
}

func (a *AssignExpr) String() string {
	op := " = "
	switch a.Op {
	case AssignAdd:
		op = " += "
	case AssignSub:
		op = " -= "
	}
	return a.Name + op + a.Value.String()
}

// Continue yields the TContinue sentinel.
type Continue struct{}

func (c *Continue) Exec(ctx *Scope) Value { return continueValue() }
func (c *Continue) String() string        { return "continue" }

// Break yields the TBreak sentinel.
type Break struct{}

func (b *Break) Exec(ctx *Scope) Value { return breakValue() }
func (b *Break) String() string        { return "break" }

// If runs its body when the condition is truthy. There is no else branch.
type If struct {
	Compare *CompareExpr
	Body    *CodeBlock
}

func (i *If) Exec(ctx *Scope) Value {
	if i.Compare.Exec(ctx).IsFalsy() {
		return None
	}
	return i.Body.Exec(ctx)
}

func (i *If) String() string {
	return "if " + i.Compare.String() + ":\n" + i.Body.String()
}

// For iterates a list, binding the iterator name in the current scope. The
// iterator keeps its last value after the loop.
type For struct {
	Iterator string
	Range    Node
	Body     *CodeBlock
}

func (f *For) Exec(ctx *Scope) Value {
	rangeVal := f.Range.Exec(ctx)
	if rangeVal.Tag != VTList {
		failIterableExpected(rangeVal.Tag)
	}
	for _, elem := range rangeVal.AsList() {
		ctx.SetVariable(f.Iterator, elem)
		result := f.Body.Exec(ctx)
		switch result.Tag {
		case TBreak:
			return None
		case TReturn:
			return result
		}
	}
	return None
}

func (f *For) String() string {
	return "for " + f.Iterator + " in " + f.Range.String() + ":\n" + f.Body.String()
}

// While repeats its body as long as the condition is truthy. Break is
// consumed here; Return propagates; Continue merely re-tests the condition.
type While struct {
	Compare *CompareExpr
	Body    *CodeBlock
}

func (w *While) Exec(ctx *Scope) Value {
	for {
		if w.Compare.Exec(ctx).IsFalsy() {
			return None
		}
		result := w.Body.Exec(ctx)
		switch result.Tag {
		case TBreak:
			return None
		case TReturn:
			return result
		}
	}
}

func (w *While) String() string {
	return "while " + w.Compare.String() + ":\n" + w.Body.String()
}
