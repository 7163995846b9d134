package emulator_test

import (
	"fmt"
	"strings"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/regvm/cpu"
	"github.com/ezrec/regvm/emulator"
)

func source(lines ...string) string {
	return strings.Join(lines, "\n")
}

var _ = Describe("Interpret", func() {
	DescribeTable("should fail every program without end",
		func(text string) {
			res := emulator.Interpret(text, false)

			Expect(res.Ok()).To(BeFalse())
			Expect(res.Fault()).To(Equal(emulator.FAULT_END_MISSING))
			Expect(res.Compat()).To(Equal(-1))
			Expect(res.String()).To(Equal("-1"))
		},
		Entry("empty", ""),
		Entry("comments only", source("; nothing", "   ; here")),
		Entry("straight line", source("mov a, 5", "msg 'value: ', a")),
		Entry("unknown command", source("push a", "mov a, 1")),
		Entry("undefined label", source("jmp nowhere")),
		Entry("end in a comment", source("mov a, 1", "; end")),
	)

	It("should resume after the call site on ret", func() {
		res := emulator.Interpret(source(
			"mov a, 1",
			"call sub",
			"msg 'after ', a",
			"end",
			"sub:",
			"mov a, 2",
			"ret",
		), false)

		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.Compat()).To(Equal("after 2"))
	})

	It("should keep the comparison until the next cmp", func() {
		res := emulator.Interpret(source(
			"mov a, 3",
			"cmp a, 5",
			"jg wrong",
			"jl less",
			"msg 'fell through'",
			"end",
			"less:",
			"je wrong",
			"jne still",
			"msg 'lost'",
			"end",
			"still:",
			"msg 'sticky'",
			"end",
			"wrong:",
			"msg 'wrong'",
			"end",
		), false)

		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.Output).To(Equal("sticky"))
	})

	It("should floor integer division", func() {
		res := emulator.Interpret(source(
			"mov a, -7",
			"mov b, 2",
			"div a, b",
			"msg a",
			"end",
		), false)

		Expect(res.String()).To(Equal("-4"))
	})

	It("should format msg text and registers", func() {
		res := emulator.Interpret(source(
			"mov a, 5",
			"msg 'value: ', a",
			"end",
		), false)

		Expect(res.String()).To(Equal("value: 5"))
	})

	It("should produce the same result with the debug trace", func() {
		text := source(
			"mov a, 6",
			"mul a, 7",
			"msg 'answer ', a",
			"end",
		)

		Expect(emulator.Interpret(text, true)).To(Equal(emulator.Interpret(text, false)))
	})

	DescribeTable("should compute factorials",
		func(n int, expected string) {
			res := emulator.Interpret(source(
				fmt.Sprintf("mov a, %d", n),
				"mov b, a",
				"mov c, a",
				"call proc_fact",
				"call print",
				"end",
				"",
				"proc_fact:",
				"    dec b",
				"    mul c, b",
				"    cmp b, 1",
				"    jne proc_fact",
				"    ret",
				"",
				"print:",
				"    msg a, '! = ', c ; output text",
				"    ret",
			), false)

			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Output).To(Equal(expected))
		},
		Entry("2!", 2, "2! = 2"),
		Entry("3!", 3, "3! = 6"),
		Entry("5!", 5, "5! = 120"),
		Entry("10!", 10, "10! = 3628800"),
	)

	It("should compute a factorial with a counting loop", func() {
		res := emulator.Interpret(source(
			"mov n, 5",
			"mov r, 1",
			"jmp loop",
			"loop:",
			"mul r, n",
			"dec n",
			"cmp n, 1",
			"jne loop",
			"msg r",
			"end",
		), false)

		Expect(res.String()).To(Equal("120"))
	})

	It("should push the call site for a conditional call not taken", func() {
		res := emulator.Interpret(source(
			"mov n, 0",
			"cmp n, 1",
			"ce never",
			"inc n",
			"cmp n, 2",
			"je done",
			"ret",
			"done:",
			"msg 'n=', n",
			"end",
			"never:",
			"msg 'never'",
			"ret",
		), false)

		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.Output).To(Equal("n=2"))
	})

	It("should not push the call site for a conditional jump not taken", func() {
		res := emulator.Interpret(source(
			"mov n, 0",
			"cmp n, 1",
			"je never",
			"ret",
			"end",
			"never:",
			"msg 'never'",
			"end",
		), false)

		Expect(res.Fault()).To(Equal(emulator.FAULT_STACK_UNDERFLOW))
		Expect(res.Compat()).To(Equal(-1))
	})

	DescribeTable("should fail without a default value",
		func(text string, fault emulator.Fault) {
			res := emulator.Interpret(text, false)

			Expect(res.Ok()).To(BeFalse())
			Expect(res.Fault()).To(Equal(fault))
			Expect(res.String()).To(Equal("-1"))
		},
		Entry("unknown source register", source("mov a, 1", "add a, b", "end"), emulator.FAULT_OPERAND_MALFORMED),
		Entry("unset target register", source("inc q", "end"), emulator.FAULT_REGISTER_UNSET),
		Entry("unset msg register", source("msg 'x = ', x", "end"), emulator.FAULT_REGISTER_UNSET),
		Entry("unset memory", source("mvw a, 5", "end"), emulator.FAULT_MEMORY_UNSET),
		Entry("unset address register", source("stw 1, p+1", "end"), emulator.FAULT_REGISTER_UNSET),
		Entry("empty stack", source("ret", "end"), emulator.FAULT_STACK_UNDERFLOW),
		Entry("undefined label", source("jmp nowhere", "end"), emulator.FAULT_LABEL_UNDEFINED),
		Entry("malformed operand", source("mov a, 1x", "end"), emulator.FAULT_OPERAND_MALFORMED),
		Entry("no comparison", source("jl there", "end", "there:", "end"), emulator.FAULT_COMPARE_UNSET),
		Entry("divide by zero", source("mov a, 1", "div a, 0", "end"), emulator.FAULT_ARITHMETIC),
		Entry("fall onto a label", source("mov a, 1", "here:", "end"), emulator.FAULT_IP_BOUNDS),
		Entry("fall off the end", source("jmp last", "end", "last:"), emulator.FAULT_IP_BOUNDS),
		Entry("unknown command", source("push a", "end"), emulator.FAULT_SYNTAX),
	)

	It("should discard output from a faulted run", func() {
		res := emulator.Interpret(source(
			"msg 'partial'",
			"ret",
			"end",
		), false)

		Expect(res.Output).To(BeEmpty())
		Expect(res.String()).To(Equal("-1"))
	})
})

var _ = Describe("Emulator", func() {
	var (
		mockCtrl   *gomock.Controller
		mockTracer *MockTracer
		emu        *emulator.Emulator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockTracer = NewMockTracer(mockCtrl)

		emu = emulator.NewEmulator()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should trace every executed instruction", func() {
		Expect(emu.Load(strings.NewReader(source(
			"mov a, 1",
			"call twice",
			"end",
			"twice:",
			"inc a",
			"ret",
		)))).To(Succeed())
		emu.Cpu.Tracer = mockTracer

		var ops []cpu.Op
		mockTracer.EXPECT().
			Trace(gomock.Any(), gomock.Any()).
			Do(func(c *cpu.Cpu, inst cpu.Instruction) {
				Expect(c).To(BeIdenticalTo(emu.Cpu))
				ops = append(ops, inst.Op)
			}).
			Times(4)

		output, err := emu.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(output).To(BeEmpty())
		Expect(ops).To(Equal([]cpu.Op{cpu.OP_MOV, cpu.OP_CALL, cpu.OP_INC, cpu.OP_RET}))
		Expect(emu.Cpu.Register).To(HaveKeyWithValue("a", int64(2)))
	})

	It("should trace the machine state before the instruction runs", func() {
		Expect(emu.Load(strings.NewReader(source(
			"mov a, 1",
			"inc a",
			"end",
		)))).To(Succeed())
		emu.Cpu.Tracer = mockTracer

		gomock.InOrder(
			mockTracer.EXPECT().Trace(emu.Cpu, gomock.Any()).
				Do(func(c *cpu.Cpu, inst cpu.Instruction) {
					Expect(c.Register).NotTo(HaveKey("a"))
					Expect(inst.String()).To(Equal("mov a, 1"))
				}),
			mockTracer.EXPECT().Trace(emu.Cpu, gomock.Any()).
				Do(func(c *cpu.Cpu, inst cpu.Instruction) {
					Expect(c.Register).To(HaveKeyWithValue("a", int64(1)))
					Expect(inst.LineNo).To(Equal(2))
				}),
		)

		Expect(emu.Run()).To(Equal(""))
	})

	It("should not trace past a fault", func() {
		Expect(emu.Load(strings.NewReader(source(
			"ret",
			"mov a, 1",
			"end",
		)))).To(Succeed())
		emu.Cpu.Tracer = mockTracer

		mockTracer.EXPECT().Trace(gomock.Any(), gomock.Any()).Times(1)

		_, err := emu.Run()
		Expect(err).To(MatchError(cpu.ErrStackEmpty))

		var rt *emulator.ErrRuntime
		Expect(err).To(BeAssignableToTypeOf(rt))
		Expect(err.(*emulator.ErrRuntime).LineNo).To(Equal(1))
	})

	It("should stop a divergent program at the tick limit", func() {
		emu.MaxTicks = 1000
		Expect(emu.Load(strings.NewReader(source(
			"mov a, 0",
			"jmp loop",
			"loop:",
			"jmp loop",
			"end",
		)))).To(Succeed())

		_, err := emu.Run()
		Expect(err).To(MatchError(emulator.ErrTickLimit))
		Expect(emulator.FaultOf(err)).To(Equal(emulator.FAULT_TICK_LIMIT))
		Expect(emu.Cpu.Ticks).To(Equal(1000))
	})

	It("should reject a program without end before running it", func() {
		err := emu.Load(strings.NewReader(source("mov a, 1")))

		Expect(err).To(MatchError(cpu.ErrEndMissing))
		Expect(emu.Program).To(BeNil())
	})
})
