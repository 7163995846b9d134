// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ezrec/regvm/internal"
)

// Tracer observes the machine before each instruction executes.
type Tracer interface {
	Trace(cpu *Cpu, inst Instruction)
}

// Cpu is the execution context for a single run of a program.
type Cpu struct {
	Verbose bool   // Set to enable verbose logging.
	Tracer  Tracer // Optional observer of every executed instruction.

	Program *Program // Program being run.

	Ip       int              // Current instruction pointer.
	Register map[string]int64 // Register file.
	Memory   map[int64]int64  // Memory cells.
	Stack    Stack            // Call stack.
	Compare  [2]int64         // Operands of the last cmp.
	Compared bool             // Set once cmp has run.

	Ticks int // Instructions executed.

	output strings.Builder
}

// NewCpu creates a CPU, ready to run prog from its first line.
func NewCpu(prog *Program) (cpu *Cpu) {
	cpu = &Cpu{
		Program: prog,
	}

	cpu.Reset()

	return
}

// Reset clears the registers, memory, stack, comparison and output, and
// moves the instruction pointer back to the first line.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Ip = 0
	cpu.Register = make(map[string]int64)
	cpu.Memory = make(map[int64]int64)
	cpu.Stack.Reset()
	cpu.Compare = [2]int64{}
	cpu.Compared = false
	cpu.Ticks = 0
	cpu.output.Reset()
}

// Output returns the text accumulated by msg.
func (cpu *Cpu) Output() string {
	return cpu.output.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for _, name := range []string{"ip", "regs", "mem", "stack", "cmp"} {
		var strval string
		switch name {
		case "ip":
			strval = strconv.Itoa(cpu.Ip)
			if cpu.Program != nil {
				inst, ok := cpu.Program.At(cpu.Ip)
				if ok {
					strval += " " + inst.String()
				}
			}
		case "regs":
			var regs []string
			for reg, val := range internal.Sorted(cpu.Register) {
				regs = append(regs, fmt.Sprintf("%v=%d", reg, val))
			}
			strval = strings.Join(regs, " ")
		case "mem":
			var cells []string
			for addr, val := range internal.Sorted(cpu.Memory) {
				cells = append(cells, fmt.Sprintf("%d=%d", addr, val))
			}
			strval = strings.Join(cells, " ")
		case "stack":
			strval = fmt.Sprintf("%v", cpu.Stack.Data)
		case "cmp":
			strval = "-"
			if cpu.Compared {
				strval = fmt.Sprintf("%d,%d", cpu.Compare[0], cpu.Compare[1])
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", name, strval)
	}

	return
}

// Fetch returns the instruction at the instruction pointer. Label
// definitions are not executable.
func (cpu *Cpu) Fetch() (inst Instruction, err error) {
	if cpu.Program == nil {
		err = ErrProgramMissing
		return
	}

	inst, ok := cpu.Program.At(cpu.Ip)
	if !ok {
		err = ErrIpBounds
		return
	}

	if inst.Op == OP_LABEL {
		err = ErrIpLabel
	}

	return
}

// Tick executes a single instruction. done is set, and nothing is
// executed, once the instruction pointer is on an end instruction.
func (cpu *Cpu) Tick() (done bool, err error) {
	inst, err := cpu.Fetch()
	if err != nil {
		return
	}

	if inst.Op == OP_END {
		done = true
		return
	}

	if cpu.Tracer != nil {
		cpu.Tracer.Trace(cpu, inst)
	}

	if cpu.Verbose {
		log.Printf("cpu:\n%v", cpu)
	}

	err = cpu.Execute(inst)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	// Catch programs that fall off the end, or onto a label.
	_, err = cpu.Fetch()

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(inst.Op), err)
		}
	}()

	next_ip := cpu.Ip + 1

	switch inst.Op {
	case OP_MOV:
		var value int64
		value, err = inst.Value.Resolve(cpu.Register)
		if err != nil {
			return
		}
		cpu.Register[inst.Reg] = value
	case OP_INC, OP_DEC, OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		var input int64
		input, err = cpu.register(inst.Reg)
		if err != nil {
			return
		}
		value := int64(1)
		if inst.Op != OP_INC && inst.Op != OP_DEC {
			value, err = inst.Value.Resolve(cpu.Register)
			if err != nil {
				return
			}
		}
		var output int64
		output, err = doAlu(inst.Op, input, value)
		if err != nil {
			return
		}
		cpu.Register[inst.Reg] = output
	case OP_CMP:
		var a, b int64
		a, err = inst.Value.Resolve(cpu.Register)
		if err != nil {
			return
		}
		b, err = inst.Other.Resolve(cpu.Register)
		if err != nil {
			return
		}
		cpu.Compare = [2]int64{a, b}
		cpu.Compared = true
	case OP_JMP, OP_JE, OP_JNE, OP_JGE, OP_JG, OP_JLE, OP_JL:
		next_ip, err = cpu.transfer(inst, next_ip)
		if err != nil {
			return
		}
	case OP_CALL, OP_CE, OP_CNE, OP_CGE, OP_CG, OP_CLE, OP_CL:
		// The return line is pushed whether or not the call is taken.
		if cpu.Stack.Full() {
			err = ErrStackFull
			return
		}
		cpu.Stack.Push(cpu.Ip)
		next_ip, err = cpu.transfer(inst, next_ip)
		if err != nil {
			return
		}
	case OP_RET:
		line, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		next_ip = line + 1
	case OP_STW:
		var addr, value int64
		addr, err = inst.Address.Resolve(cpu.Register)
		if err != nil {
			return
		}
		value, err = inst.Value.Resolve(cpu.Register)
		if err != nil {
			return
		}
		cpu.Memory[addr] = value
	case OP_MVW:
		var addr int64
		addr, err = inst.Address.Resolve(cpu.Register)
		if err != nil {
			return
		}
		value, ok := cpu.Memory[addr]
		if !ok {
			err = ErrMemoryUnset(addr)
			return
		}
		cpu.Register[inst.Reg] = value
	case OP_MSG:
		err = cpu.message(inst.Text)
		if err != nil {
			return
		}
	default:
		err = ErrInstructionInvalid
		return
	}

	cpu.Ip = next_ip

	return
}

// transfer returns the line to continue from after a jump or call: the
// line after the label when the condition holds, otherwise next_ip.
func (cpu *Cpu) transfer(inst Instruction, next_ip int) (ip int, err error) {
	ip = next_ip

	if inst.Cond != COND_ALWAYS {
		if !cpu.Compared {
			err = ErrCompareUnset
			return
		}
		if !inst.Cond.Holds(cpu.Compare[0], cpu.Compare[1]) {
			return
		}
	}

	if inst.Target < 0 {
		err = ErrLabelMissing(inst.Label)
		return
	}

	ip = inst.Target + 1

	return
}

// register reads a register that must already be set.
func (cpu *Cpu) register(name string) (value int64, err error) {
	value, ok := cpu.Register[name]
	if !ok {
		err = ErrRegisterUnset(name)
	}

	return
}

// message appends msg text to the output. Text between single quotes is
// copied, commas and spaces outside quotes are skipped, and any other
// character outside quotes names a register whose value is written.
func (cpu *Cpu) message(parts []string) (err error) {
	quoted := false

	for _, part := range parts {
		for _, ch := range part {
			switch {
			case ch == '\'':
				quoted = !quoted
			case quoted:
				cpu.output.WriteRune(ch)
			case ch == ',' || ch == ' ':
				// separator
			default:
				var value int64
				value, err = cpu.register(string(ch))
				if err != nil {
					return
				}
				cpu.output.WriteString(strconv.FormatInt(value, 10))
			}
		}
	}

	return
}
