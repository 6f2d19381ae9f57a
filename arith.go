package tkom

import (
	"math"
	"strings"
)

// allowedOperands is the fixed operand-compatibility table, keyed by the
// left operand's tag, then the operator, giving the permitted right tags.
// None and Bool take part in no arithmetic at all.
var allowedOperands = map[ValueTag]map[ExprOp][]ValueTag{
	VTInt: {
		OpAdd: {VTInt, VTReal},
		OpSub: {VTInt, VTReal},
		OpMul: {VTInt, VTReal, VTList},
		OpDiv: {VTInt, VTReal},
		OpExp: {VTInt, VTReal},
	},
	VTReal: {
		OpAdd: {VTInt, VTReal},
		OpSub: {VTInt, VTReal},
		OpMul: {VTInt, VTReal},
		OpDiv: {VTInt, VTReal},
		OpExp: {VTInt, VTReal},
	},
	VTText: {
		OpAdd: {VTText},
		OpMul: {VTInt},
	},
	VTList: {
		OpAdd: {VTList},
		OpMul: {VTInt},
	},
}

// checkCompatibility consults the operand table.
func checkCompatibility(left, right ValueTag, op ExprOp) bool {
	ops, ok := allowedOperands[left]
	if !ok {
		return false
	}
	for _, allowed := range ops[op] {
		if allowed == right {
			return true
		}
	}
	return false
}

// makeExpression applies one binary operator to two values. List and Text
// operands dominate dispatch, then a Real operand forces promotion of the
// other side; Int op Int stays Int.
func makeExpression(left, right Value, op ExprOp) Value {
	if !checkCompatibility(left.Tag, right.Tag, op) {
		failOperandsNotCompatible(left.Tag, right.Tag, op)
	}
	switch {
	case left.Tag == VTList:
		return execExprList(left, right, op)
	case right.Tag == VTList:
		return execExprList(right, left, op)
	case left.Tag == VTText:
		return execExprText(left, right, op)
	case left.Tag == VTReal || right.Tag == VTReal:
		return execExprReal(left.asFloat(), right.asFloat(), op)
	default:
		return execExprInt(left.AsInt(), right.AsInt(), op)
	}
}

// execExprList concatenates or repeats; list is the list-bearing operand.
func execExprList(list, other Value, op ExprOp) Value {
	elements := list.AsList()
	if op == OpAdd {
		out := make([]Value, 0, len(elements)+len(other.AsList()))
		out = append(out, elements...)
		out = append(out, other.AsList()...)
		return List(out)
	}
	count := other.AsInt()
	if count <= 0 {
		return List([]Value{})
	}
	out := make([]Value, 0, int(count)*len(elements))
	for i := int64(0); i < count; i++ {
		out = append(out, elements...)
	}
	return List(out)
}

func execExprText(text, other Value, op ExprOp) Value {
	if op == OpAdd {
		return Text(text.AsText() + other.AsText())
	}
	count := other.AsInt()
	if count <= 0 {
		return Text("")
	}
	return Text(strings.Repeat(text.AsText(), int(count)))
}

func execExprInt(left, right int64, op ExprOp) Value {
	switch op {
	case OpAdd:
		return Int(left + right)
	case OpSub:
		return Int(left - right)
	case OpMul:
		return Int(left * right)
	case OpDiv:
		if right == 0 {
			failRuntime(ErrUnexpected, "Integer division by zero.")
		}
		return Int(left / right)
	default:
		return Int(int64(math.Pow(float64(left), float64(right))))
	}
}

func execExprReal(left, right float64, op ExprOp) Value {
	switch op {
	case OpAdd:
		return Real(left + right)
	case OpSub:
		return Real(left - right)
	case OpMul:
		return Real(left * right)
	case OpDiv:
		return Real(left / right)
	default:
		return Real(math.Pow(left, right))
	}
}
