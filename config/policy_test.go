package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvstat/config"
	"github.com/sarchlab/rvstat/instr"
)

var _ = Describe("Policy", func() {
	var p *config.Policy

	BeforeEach(func() {
		p = config.DefaultPolicy()
	})

	It("should load the embedded policy", func() {
		Expect(p.Version).To(Equal(1))
		Expect(p.StoreOpcodes).To(ConsistOf("sb", "sh", "sw", "sd"))
		Expect(p.BankWidths().Width(instr.BankX)).To(Equal(4))
		Expect(p.BankWidths().Width(instr.BankF)).To(Equal(4))
	})

	DescribeTable("IgnoreOpcode",
		func(opcode string, ignored bool) {
			Expect(p.IgnoreOpcode(opcode)).To(Equal(ignored))
		},
		Entry("immediate form", "addi", true),
		Entry("word immediate form", "addiw", true),
		Entry("load", "lw", true),
		Entry("load immediate", "li", true),
		Entry("jump", "j", true),
		Entry("jump and link register", "jalr", true),
		Entry("branch", "bnez", true),
		Entry("branch less than unsigned", "bltu", true),
		Entry("csr read", "csrr", true),
		Entry("float convert", "fcvt.d.w", true),
		Entry("return", "ret", true),
		Entry("add", "add", false),
		Entry("word add", "addw", false),
		Entry("store word", "sw", false),
		Entry("float add", "fadd.d", false),
		Entry("multiply", "mul", false),
	)

	DescribeTable("SkipLine",
		func(line string, skipped bool) {
			Expect(p.SkipLine(line)).To(Equal(skipped))
		},
		Entry("section directive", ".text", true),
		Entry("comment", "# hello", true),
		Entry("instruction", "add a0, a1, a2", false),
	)

	It("should recognize store opcodes", func() {
		Expect(p.IsStore("sd")).To(BeTrue())
		Expect(p.IsStore("fsd")).To(BeFalse())
	})

	Context("when parsing a custom policy", func() {
		It("should reject a missing bank width", func() {
			_, err := config.ParsePolicy([]byte(`
version: 1
store_opcodes: [sw]
bank_widths: {x: 4}
`))
			Expect(err).To(MatchError(ContainSubstring("missing width")))
		})

		It("should reject an empty prefix", func() {
			_, err := config.ParsePolicy([]byte(`
version: 1
ignore_opcode_prefixes: [""]
store_opcodes: [sw]
bank_widths: {x: 4, f: 4}
`))
			Expect(err).To(MatchError(ContainSubstring("empty entry")))
		})

		It("should reject an unknown bank", func() {
			_, err := config.ParsePolicy([]byte(`
version: 1
store_opcodes: [sw]
bank_widths: {x: 4, f: 4, v: 8}
`))
			Expect(err).To(MatchError(ContainSubstring("unknown register bank")))
		})

		It("should use custom widths", func() {
			custom, err := config.ParsePolicy([]byte(`
version: 2
store_opcodes: [sw]
bank_widths: {x: 2, f: 8}
`))
			Expect(err).NotTo(HaveOccurred())
			Expect(custom.BankWidths().Width(instr.BankX)).To(Equal(2))
			Expect(custom.BankWidths().Width(instr.BankF)).To(Equal(8))
			Expect(custom.IgnoreOpcode("addi")).To(BeFalse())
		})
	})
})

var _ = Describe("Builder", func() {
	It("should fill defaults", func() {
		c := config.Builder{}.Build()
		Expect(c.Dir).To(Equal(config.DefaultDir))
		Expect(c.OutputFile).To(Equal(config.DefaultOutputFile))
		Expect(c.Workers).To(BeNumerically(">", 0))
		Expect(c.Unresolved).To(Equal(config.UnresolvedFail))
		Expect(c.Policy).NotTo(BeNil())
	})

	It("should keep explicit settings", func() {
		c := config.Builder{}.
			WithDir("asm").
			WithOutputFile("out.csv").
			WithWorkers(3).
			WithUnresolvedPolicy(config.UnresolvedSkip).
			Build()
		Expect(c.Dir).To(Equal("asm"))
		Expect(c.OutputFile).To(Equal("out.csv"))
		Expect(c.Workers).To(Equal(3))
		Expect(c.Unresolved).To(Equal(config.UnresolvedSkip))
	})

	It("should parse policy names", func() {
		for _, p := range []config.UnresolvedPolicy{
			config.UnresolvedFail, config.UnresolvedKeep, config.UnresolvedSkip,
		} {
			parsed, err := config.ParseUnresolvedPolicy(p.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(p))
		}

		_, err := config.ParseUnresolvedPolicy("ignore")
		Expect(err).To(HaveOccurred())
	})
})
