// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs register machine programs from source text.
package emulator

import (
	"io"
	"iter"
	"strconv"

	"github.com/ezrec/regvm/asm"
	"github.com/ezrec/regvm/cpu"
)

const (
	TICK_LIMIT = 10_000_000 // Default instruction ceiling.
)

var _emulator_defines = map[string]string{
	"TICK_LIMIT":  strconv.Itoa(TICK_LIMIT),
	"STACK_LIMIT": strconv.Itoa(cpu.STACK_LIMIT),
}

// Emulator state. Tokenizer + CPU.
type Emulator struct {
	Verbose   bool          // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Program   *cpu.Program  // Reference to the currently loaded program.
	Tokenizer asm.Tokenizer // Source tokenizer.

	MaxTicks int // Instruction ceiling for a run. Zero or less disables it.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:      cpu.NewCpu(nil),
		MaxTicks: TICK_LIMIT,
	}

	for key, value := range _emulator_defines {
		emu.Tokenizer.Predefine(key, value)
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return emu.Tokenizer.Defines()
}

// Load tokenizes and loads a program, then resets the emulator to run it.
// Any previously loaded program is discarded, even if loading fails.
func (emu *Emulator) Load(input io.Reader) (err error) {
	emu.Program = nil
	emu.Reset()

	emu.Tokenizer.Verbose = emu.Verbose

	tokens, err := emu.Tokenizer.Parse(input)
	if err != nil {
		return
	}

	prog, err := cpu.Load(tokens)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Reset()

	return
}

// Reset the emulator to the start of the loaded program.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Program = emu.Program
	emu.Cpu.Reset()
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Ip
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	return emu.Program.LineNo(emu.Cpu.Ip)
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
		inst, ferr := emu.Cpu.Fetch()
		if ferr != nil || inst.Op != cpu.OP_END {
			err = ErrTickLimit
			return
		}
	}

	done, err = emu.Cpu.Tick()

	return
}

// Run ticks until the program ends or faults, and returns the output.
// A faulted run has no output.
func (emu *Emulator) Run() (output string, err error) {
	if emu.Program == nil {
		err = cpu.ErrProgramMissing
		return
	}

	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	output = emu.Cpu.Output()

	return
}
