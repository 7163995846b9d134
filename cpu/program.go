package cpu

import (
	"slices"

	"github.com/ezrec/regvm/asm"
)

// Program is a loaded, immutable instruction listing.
type Program struct {
	Instructions []Instruction
	Label        map[string]int // Map of label names to instruction indexes.
}

// Load builds a program from a token stream.
//
// A program without an end instruction is rejected before anything else is
// examined. Labels are collected first; a label defined twice maps to its
// last definition. Control transfers to unknown labels are left unlinked,
// and only fault when taken.
func Load(tokens []asm.Token) (prog *Program, err error) {
	if !slices.ContainsFunc(tokens, func(token asm.Token) bool { return token.Command == "end" }) {
		err = ErrEndMissing
		return
	}

	label := make(map[string]int, 16)
	for n, token := range tokens {
		if token.IsLabel() {
			label[token.Label()] = n
		}
	}

	insts := make([]Instruction, len(tokens))
	for n, token := range tokens {
		insts[n], err = Decode(token)
		if err != nil {
			err = &ErrLoad{LineNo: token.LineNo, Line: token.String(), Err: err}
			return
		}
	}

	// Final linking of jump labels.
	for n := range insts {
		inst := &insts[n]
		if inst.Op == OP_LABEL || len(inst.Label) == 0 {
			continue
		}
		ip, ok := label[inst.Label]
		if ok {
			inst.Target = ip
		}
	}

	prog = &Program{
		Instructions: insts,
		Label:        label,
	}

	return
}

// Len returns the number of instructions, labels included.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// At returns the instruction at ip.
func (prog *Program) At(ip int) (inst Instruction, ok bool) {
	if ip < 0 || ip >= len(prog.Instructions) {
		return
	}

	return prog.Instructions[ip], true
}

// LineNo returns the source line of the instruction at ip, or 0.
func (prog *Program) LineNo(ip int) int {
	inst, ok := prog.At(ip)
	if !ok {
		return 0
	}

	return inst.LineNo
}
