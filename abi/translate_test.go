package abi_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvstat/abi"
	"github.com/sarchlab/rvstat/config"
	"github.com/sarchlab/rvstat/instr"
)

var _ = Describe("Translate", func() {
	DescribeTable("known names",
		func(name, want string) {
			r, err := abi.Translate(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.String()).To(Equal(want))
		},
		Entry("zero", "zero", "x0"),
		Entry("ra", "ra", "x1"),
		Entry("sp", "sp", "x2"),
		Entry("gp", "gp", "x3"),
		Entry("tp", "tp", "x4"),
		Entry("fp", "fp", "x8"),
		Entry("t0", "t0", "x5"),
		Entry("t2", "t2", "x7"),
		Entry("t3", "t3", "x28"),
		Entry("t6", "t6", "x31"),
		Entry("t7", "t7", "x96"),
		Entry("s0", "s0", "x8"),
		Entry("s1", "s1", "x9"),
		Entry("s2", "s2", "x18"),
		Entry("s11", "s11", "x27"),
		Entry("s12", "s12", "x48"),
		Entry("a0", "a0", "x10"),
		Entry("a7", "a7", "x17"),
		Entry("a8", "a8", "x32"),
		Entry("ft0", "ft0", "f0"),
		Entry("ft7", "ft7", "f7"),
		Entry("ft8", "ft8", "f28"),
		Entry("ft12", "ft12", "f52"),
		Entry("fs0", "fs0", "f8"),
		Entry("fs2", "fs2", "f18"),
		Entry("fs12", "fs12", "f40"),
		Entry("fa0", "fa0", "f10"),
		Entry("fa8", "fa8", "f32"),
		Entry("numbered integer", "x17", "x17"),
		Entry("numbered float", "f3", "f3"),
	)

	DescribeTable("unknown names",
		func(name string) {
			r, err := abi.Translate(name)
			Expect(err).To(MatchError(abi.ErrUnknownRegister))
			Expect(r.Valid()).To(BeFalse())
		},
		Entry("empty", ""),
		Entry("label", "loop"),
		Entry("no index", "t"),
		Entry("float without category", "fx1"),
		Entry("signed index", "a-1"),
		Entry("trailing garbage", "a0x"),
		Entry("vector register", "v0"),
		Entry("huge index", "t12345678"),
	)
})

var _ = Describe("SelfCheck", func() {
	It("should pass for the embedded policy", func() {
		Expect(abi.SelfCheck(config.DefaultPolicy())).To(Succeed())
	})

	It("should bank-tag every supported name", func() {
		for _, name := range abi.SupportedNames(config.DefaultPolicy()) {
			r := abi.MustTranslate(name)
			if strings.HasPrefix(name, "f") && name != "fp" {
				Expect(r.Bank).To(Equal(instr.BankF), name)
			} else {
				Expect(r.Bank).To(Equal(instr.BankX), name)
			}
		}
	})

	It("should be stable across calls", func() {
		for _, name := range abi.SupportedNames(config.DefaultPolicy()) {
			Expect(abi.MustTranslate(name)).To(Equal(abi.MustTranslate(name)))
		}
	})

	It("should enumerate every range", func() {
		names := abi.SupportedNames(config.DefaultPolicy())
		Expect(names).To(ContainElements("zero", "t37", "s58", "a22", "ft22", "fs22", "fa14"))
		Expect(names).NotTo(ContainElement("t38"))
	})

	It("should fail for an unsupported range", func() {
		p, err := config.ParsePolicy([]byte(`
version: 1
store_opcodes: [sw]
bank_widths: {x: 4, f: 4}
register_ranges:
  - {prefix: v, count: 2}
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(abi.SelfCheck(p)).To(MatchError(abi.ErrUnknownRegister))
		Expect(func() { abi.MustSelfCheck(p) }).To(Panic())
	})
})
