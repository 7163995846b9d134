package cpu

import (
	"math"
)

// doAlu performs the arithmetic for op, and returns the output value.
func doAlu(op Op, input int64, value int64) (output int64, err error) {
	ok := true

	switch op {
	case OP_INC, OP_ADD:
		output, ok = addInt(input, value)
	case OP_DEC, OP_SUB:
		output, ok = subInt(input, value)
	case OP_MUL:
		output, ok = mulInt(input, value)
	case OP_DIV:
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		output, ok = floorDiv(input, value)
	default:
		err = ErrInstructionInvalid
		return
	}

	if !ok {
		err = ErrOverflow
	}

	return
}

func addInt(a, b int64) (int64, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	return c, c/b == a
}

// floorDiv divides, rounding toward negative infinity.
func floorDiv(a, b int64) (int64, bool) {
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q, true
}
