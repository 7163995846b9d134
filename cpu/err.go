package cpu

import (
	"errors"

	"github.com/ezrec/regvm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrIpBounds       = errors.New(f("ip out of bounds"))
	ErrIpLabel        = errors.New(f("ip on label"))
	ErrStackEmpty     = errors.New(f("stack empty"))
	ErrStackFull      = errors.New(f("stack full"))
	ErrCompareUnset   = errors.New(f("compare before cmp"))
	ErrDivideByZero   = errors.New(f("divide by zero"))
	ErrOverflow       = errors.New(f("integer overflow"))
	ErrProgramMissing = errors.New(f("program missing"))

	// Load errors
	ErrEndMissing         = errors.New(f("end missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrOperandExtra       = errors.New(f("excessive operands"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Is(err error) (ok bool) {
	_, ok = err.(ErrLabelMissing)
	return
}

type ErrRegisterUnset string

func (err ErrRegisterUnset) Error() string {
	return f("register '%v' unset", string(err))
}

func (err ErrRegisterUnset) Is(target error) (ok bool) {
	_, ok = target.(ErrRegisterUnset)
	return
}

type ErrMemoryUnset int64

func (err ErrMemoryUnset) Error() string {
	return f("memory %d unset", int64(err))
}

func (err ErrMemoryUnset) Is(target error) (ok bool) {
	_, ok = target.(ErrMemoryUnset)
	return
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Is(target error) (ok bool) {
	_, ok = target.(ErrParseNumber)
	return
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

func (err ErrParseValue) Is(target error) (ok bool) {
	_, ok = target.(ErrParseValue)
	return
}

// ErrOpcode tags a fault with the opcode that raised it.
type ErrOpcode Op

func (eo ErrOpcode) Error() string {
	return f("%v failed", Op(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrLoad locates an error found while loading a program.
type ErrLoad struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLoad) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
