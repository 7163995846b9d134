package emulator

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ezrec/regvm/asm"
	"github.com/ezrec/regvm/cpu"
)

// SENTINEL is the result of a failed run at the compatibility boundary.
const SENTINEL = -1

// Fault classifies why a run failed.
type Fault int

//go:generate go tool stringer -linecomment -type=Fault
const (
	FAULT_NONE              = Fault(0)  // none
	FAULT_SYNTAX            = Fault(1)  // syntax
	FAULT_END_MISSING       = Fault(2)  // end missing
	FAULT_LABEL_UNDEFINED   = Fault(3)  // label undefined
	FAULT_REGISTER_UNSET    = Fault(4)  // register unset
	FAULT_MEMORY_UNSET      = Fault(5)  // memory unset
	FAULT_OPERAND_MALFORMED = Fault(6)  // operand malformed
	FAULT_STACK_UNDERFLOW   = Fault(7)  // stack underflow
	FAULT_STACK_OVERFLOW    = Fault(8)  // stack overflow
	FAULT_IP_BOUNDS         = Fault(9)  // ip out of bounds
	FAULT_COMPARE_UNSET     = Fault(10) // compare unset
	FAULT_ARITHMETIC        = Fault(11) // arithmetic
	FAULT_TICK_LIMIT        = Fault(12) // tick limit
	FAULT_INTERNAL          = Fault(13) // internal
)

// FaultOf classifies an error returned by Load, Tick or Run.
func FaultOf(err error) Fault {
	var syntax *asm.ErrSyntax
	var load *cpu.ErrLoad

	switch {
	case err == nil:
		return FAULT_NONE
	case errors.Is(err, cpu.ErrEndMissing):
		return FAULT_END_MISSING
	case errors.As(err, &syntax), errors.As(err, &load):
		return FAULT_SYNTAX
	case errors.Is(err, cpu.ErrLabelMissing("")):
		return FAULT_LABEL_UNDEFINED
	case errors.Is(err, cpu.ErrRegisterUnset("")):
		return FAULT_REGISTER_UNSET
	case errors.Is(err, cpu.ErrMemoryUnset(0)):
		return FAULT_MEMORY_UNSET
	case errors.Is(err, cpu.ErrParseValue("")), errors.Is(err, cpu.ErrParseNumber("")):
		return FAULT_OPERAND_MALFORMED
	case errors.Is(err, cpu.ErrStackEmpty):
		return FAULT_STACK_UNDERFLOW
	case errors.Is(err, cpu.ErrStackFull):
		return FAULT_STACK_OVERFLOW
	case errors.Is(err, cpu.ErrIpBounds), errors.Is(err, cpu.ErrIpLabel):
		return FAULT_IP_BOUNDS
	case errors.Is(err, cpu.ErrCompareUnset):
		return FAULT_COMPARE_UNSET
	case errors.Is(err, cpu.ErrDivideByZero), errors.Is(err, cpu.ErrOverflow):
		return FAULT_ARITHMETIC
	case errors.Is(err, ErrTickLimit):
		return FAULT_TICK_LIMIT
	}

	return FAULT_INTERNAL
}

// Result is the outcome of interpreting a program: either its output, or
// the error that stopped it.
type Result struct {
	Output string
	Err    error
}

// Ok is true for a run that reached end.
func (res Result) Ok() bool {
	return res.Err == nil
}

// Fault classifies the failure, FAULT_NONE on success.
func (res Result) Fault() Fault {
	return FaultOf(res.Err)
}

// Compat returns the output string, or the integer SENTINEL on failure.
func (res Result) Compat() any {
	if res.Err != nil {
		return SENTINEL
	}

	return res.Output
}

// String returns the output, or the SENTINEL as text on failure.
func (res Result) String() string {
	if res.Err != nil {
		return strconv.Itoa(SENTINEL)
	}

	return res.Output
}

// Interpret runs a complete program. debug enables the per-instruction trace.
func Interpret(source string, debug bool) (res Result) {
	emu := NewEmulator()
	emu.Verbose = debug

	err := emu.Load(strings.NewReader(source))
	if err != nil {
		res.Err = err
		return
	}

	res.Output, res.Err = emu.Run()
	if res.Err != nil {
		res.Output = ""
	}

	return
}
