package verify_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvstat/config"
	"github.com/sarchlab/rvstat/instr"
	"github.com/sarchlab/rvstat/verify"
)

func regs(opcode string, line int, rs ...instr.Register) instr.Inst {
	inst := instr.Inst{OpCode: opcode, Line: line}
	for _, r := range rs {
		inst.Operands = append(inst.Operands,
			instr.RegisterOperand(r.String()).WithReg(r))
	}
	return inst
}

var _ = Describe("CheckStructure", func() {
	var p *config.Policy

	BeforeEach(func() {
		p = config.DefaultPolicy()
	})

	It("should accept stores and three-operand instructions", func() {
		insts := []instr.Inst{
			regs("sw", 1, instr.X(8), instr.X(2)),
			regs("sd", 2, instr.X(1), instr.X(2)),
			regs("add", 3, instr.X(10), instr.X(5), instr.X(28)),
			regs("fmadd.d", 4, instr.F(0), instr.F(1), instr.F(2), instr.F(3)),
		}
		Expect(verify.CheckStructure(insts, p)).To(BeEmpty())
	})

	It("should accept an empty program", func() {
		Expect(verify.CheckStructure(nil, p)).To(BeEmpty())
	})

	It("should flag zero and single operand instructions", func() {
		insts := []instr.Inst{
			regs("nop", 7),
			regs("neg", 9, instr.X(10)),
		}

		issues := verify.CheckStructure(insts, p)
		Expect(issues).To(HaveLen(2))
		Expect(issues[0].Type).To(Equal(verify.IssueOperandCount))
		Expect(issues[0].Line).To(Equal(7))
		Expect(issues[1].OpCode).To(Equal("neg"))
	})

	It("should flag two-operand instructions that are not stores", func() {
		issues := verify.CheckStructure([]instr.Inst{
			regs("sext.w", 12, instr.X(10), instr.X(10)),
		}, p)

		Expect(issues).To(HaveLen(1))
		Expect(issues[0].Type).To(Equal(verify.IssueTwoOperand))
		Expect(issues[0].Message).To(ContainSubstring("sext.w"))
	})
})
