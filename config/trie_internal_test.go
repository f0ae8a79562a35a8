package config

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("trie", func() {
	t := newTrie([]string{"j", "jal", "beq", "fcvt"})

	DescribeTable("hasPrefixOf",
		func(s string, want bool) {
			Expect(t.hasPrefixOf(s)).To(Equal(want))
		},
		Entry("exact", "beq", true),
		Entry("longer", "beqz", true),
		Entry("shortest match wins", "jalr", true),
		Entry("shorter than word", "be", false),
		Entry("no match", "add", false),
		Entry("empty", "", false),
	)

	It("should match nothing when empty", func() {
		Expect(newTrie(nil).hasPrefixOf("add")).To(BeFalse())
	})

	It("should reverse strings", func() {
		Expect(reverse("addiw")).To(Equal("widda"))
		Expect(reverse("")).To(Equal(""))
	})
})
