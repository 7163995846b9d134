package cpu

import (
	"fmt"
	"strings"

	"github.com/ezrec/regvm/asm"
)

// Op is an instruction opcode.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_LABEL = Op(0)  // label
	OP_END   = Op(1)  // end
	OP_MOV   = Op(2)  // mov
	OP_INC   = Op(3)  // inc
	OP_DEC   = Op(4)  // dec
	OP_ADD   = Op(5)  // add
	OP_SUB   = Op(6)  // sub
	OP_MUL   = Op(7)  // mul
	OP_DIV   = Op(8)  // div
	OP_JMP   = Op(9)  // jmp
	OP_CALL  = Op(10) // call
	OP_RET   = Op(11) // ret
	OP_CMP   = Op(12) // cmp
	OP_JE    = Op(13) // je
	OP_JNE   = Op(14) // jne
	OP_JGE   = Op(15) // jge
	OP_JG    = Op(16) // jg
	OP_JLE   = Op(17) // jle
	OP_JL    = Op(18) // jl
	OP_CE    = Op(19) // ce
	OP_CNE   = Op(20) // cne
	OP_CGE   = Op(21) // cge
	OP_CG    = Op(22) // cg
	OP_CLE   = Op(23) // cle
	OP_CL    = Op(24) // cl
	OP_STW   = Op(25) // stw
	OP_MVW   = Op(26) // mvw
	OP_MSG   = Op(27) // msg
)

// Cond is the comparison a control transfer depends on.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_ALWAYS = Cond(0) // always
	COND_EQ     = Cond(1) // eq
	COND_NE     = Cond(2) // ne
	COND_GE     = Cond(3) // ge
	COND_GT     = Cond(4) // gt
	COND_LE     = Cond(5) // le
	COND_LT     = Cond(6) // lt
)

// Holds evaluates the comparison for the pair a, b.
func (cond Cond) Holds(a, b int64) bool {
	switch cond {
	case COND_EQ:
		return a == b
	case COND_NE:
		return a != b
	case COND_GE:
		return a >= b
	case COND_GT:
		return a > b
	case COND_LE:
		return a <= b
	case COND_LT:
		return a < b
	}

	return true
}

// operand layout of an opcode
type layout int

const (
	layoutNone     = layout(iota) // -
	layoutReg                     // reg
	layoutRegValue                // reg, val
	layoutLabel                   // label
	layoutValues                  // val, val
	layoutStore                   // val, addr
	layoutLoad                    // reg, addr
	layoutText                    // parts...
)

// opInfo describes how a command decodes.
type opInfo struct {
	op     Op
	cond   Cond
	layout layout
}

// opMap maps command names to their decoding.
var opMap = map[string]opInfo{
	"end":  {OP_END, COND_ALWAYS, layoutNone},
	"mov":  {OP_MOV, COND_ALWAYS, layoutRegValue},
	"inc":  {OP_INC, COND_ALWAYS, layoutReg},
	"dec":  {OP_DEC, COND_ALWAYS, layoutReg},
	"add":  {OP_ADD, COND_ALWAYS, layoutRegValue},
	"sub":  {OP_SUB, COND_ALWAYS, layoutRegValue},
	"mul":  {OP_MUL, COND_ALWAYS, layoutRegValue},
	"div":  {OP_DIV, COND_ALWAYS, layoutRegValue},
	"jmp":  {OP_JMP, COND_ALWAYS, layoutLabel},
	"call": {OP_CALL, COND_ALWAYS, layoutLabel},
	"ret":  {OP_RET, COND_ALWAYS, layoutNone},
	"cmp":  {OP_CMP, COND_ALWAYS, layoutValues},
	"je":   {OP_JE, COND_EQ, layoutLabel},
	"jne":  {OP_JNE, COND_NE, layoutLabel},
	"jge":  {OP_JGE, COND_GE, layoutLabel},
	"jg":   {OP_JG, COND_GT, layoutLabel},
	"jle":  {OP_JLE, COND_LE, layoutLabel},
	"jl":   {OP_JL, COND_LT, layoutLabel},
	"ce":   {OP_CE, COND_EQ, layoutLabel},
	"cne":  {OP_CNE, COND_NE, layoutLabel},
	"cge":  {OP_CGE, COND_GE, layoutLabel},
	"cg":   {OP_CG, COND_GT, layoutLabel},
	"cle":  {OP_CLE, COND_LE, layoutLabel},
	"cl":   {OP_CL, COND_LT, layoutLabel},
	"stw":  {OP_STW, COND_ALWAYS, layoutStore},
	"mvw":  {OP_MVW, COND_ALWAYS, layoutLoad},
	"msg":  {OP_MSG, COND_ALWAYS, layoutText},
}

// IsJump is true for jmp and the conditional jumps.
func (op Op) IsJump() bool {
	return op == OP_JMP || (op >= OP_JE && op <= OP_JL)
}

// IsCall is true for call and the conditional calls.
func (op Op) IsCall() bool {
	return op == OP_CALL || (op >= OP_CE && op <= OP_CL)
}

// Instruction is a decoded source line.
//
// Which fields are meaningful depends on Op:
//
//	mov add sub mul div   Reg, Value
//	inc dec               Reg
//	jmp call j* c*        Cond, Label, Target
//	cmp                   Value, Other
//	stw                   Value, Address
//	mvw                   Reg, Address
//	msg                   Text
type Instruction struct {
	Op     Op
	LineNo int      // Source line number.
	Words  []string // Source words, command first.

	Reg     string  // Target register.
	Value   Value   // Value operand.
	Other   Value   // Second cmp operand.
	Address Address // Memory address expression.
	Cond    Cond    // Comparison required for a control transfer.
	Label   string  // Control transfer label.
	Target  int     // Linked line of Label, or -1 when the label is unknown.
	Text    []string
}

// Decode decodes a single token. Label definitions decode to OP_LABEL.
func Decode(token asm.Token) (inst Instruction, err error) {
	inst = Instruction{
		LineNo: token.LineNo,
		Words:  token.Words(),
		Target: -1,
	}

	if token.IsLabel() {
		inst.Op = OP_LABEL
		inst.Label = token.Label()
		return
	}

	info, ok := opMap[token.Command]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	inst.Op = info.op
	inst.Cond = info.cond

	args := token.Args
	want := 2
	switch info.layout {
	case layoutNone:
		want = 0
		if info.op == OP_END {
			// end terminates the program whatever follows it.
			want = len(args)
		}
	case layoutReg, layoutLabel:
		want = 1
	case layoutText:
		want = len(args)
		if want == 0 {
			want = 1
		}
	}
	if len(args) < want {
		err = ErrOperandMissing
		return
	}
	if len(args) > want {
		err = ErrOperandExtra
		return
	}

	switch info.layout {
	case layoutReg:
		inst.Reg = args[0]
	case layoutRegValue:
		inst.Reg = args[0]
		inst.Value = Value(args[1])
	case layoutLabel:
		inst.Label = args[0]
	case layoutValues:
		inst.Value = Value(args[0])
		inst.Other = Value(args[1])
	case layoutStore:
		inst.Value = Value(args[0])
		inst.Address, err = ParseAddress(args[1])
	case layoutLoad:
		inst.Reg = args[0]
		inst.Address, err = ParseAddress(args[1])
	case layoutText:
		inst.Text = args
	}

	return
}

func (inst Instruction) String() string {
	switch len(inst.Words) {
	case 0:
		return inst.Op.String()
	case 1:
		return inst.Words[0]
	}

	return fmt.Sprintf("%v %v", inst.Words[0], strings.Join(inst.Words[1:], ", "))
}
