package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/rvstat/instr"
)

//go:embed policy.yaml
var defaultPolicyYAML []byte

// RegisterRange names prefix+0 .. prefix+(Count-1).
type RegisterRange struct {
	Prefix string `yaml:"prefix"`
	Count  int    `yaml:"count"`
}

// BankWidths maps a register bank to its number of banks. Two registers of
// the same file conflict when their indices are congruent modulo the width.
type BankWidths map[instr.Bank]int

// Width returns the width of bank b, or 0 when b is unknown.
func (w BankWidths) Width(b instr.Bank) int {
	return w[b]
}

// Policy is the filtering and register data that drives the parser and the
// statistics.
type Policy struct {
	Version              int             `yaml:"version"`
	LinePrefixes         []string        `yaml:"line_prefixes"`
	IgnoreOpcodeSuffixes []string        `yaml:"ignore_opcode_suffixes"`
	IgnoreOpcodePrefixes []string        `yaml:"ignore_opcode_prefixes"`
	StoreOpcodes         []string        `yaml:"store_opcodes"`
	RawBankWidths        map[string]int  `yaml:"bank_widths"`
	RegisterRanges       []RegisterRange `yaml:"register_ranges"`

	prefixes *trie
	suffixes *trie // built on reversed words
	stores   map[string]bool
	widths   BankWidths
}

// ParsePolicy decodes and validates a YAML policy document.
func ParsePolicy(data []byte) (*Policy, error) {
	p := &Policy{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to decode policy: %w", err)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	p.build()

	return p, nil
}

// DefaultPolicy returns the policy embedded in the binary.
func DefaultPolicy() *Policy {
	p, err := ParsePolicy(defaultPolicyYAML)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Policy) validate() error {
	if p.Version <= 0 {
		return errors.New("policy: version must be positive")
	}

	lists := map[string][]string{
		"line_prefixes":          p.LinePrefixes,
		"ignore_opcode_suffixes": p.IgnoreOpcodeSuffixes,
		"ignore_opcode_prefixes": p.IgnoreOpcodePrefixes,
		"store_opcodes":          p.StoreOpcodes,
	}
	for name, list := range lists {
		if lo.Contains(list, "") {
			return fmt.Errorf("policy: %s contains an empty entry", name)
		}
	}

	if len(p.StoreOpcodes) == 0 {
		return errors.New("policy: store_opcodes is empty")
	}

	for bank, width := range p.RawBankWidths {
		if len(bank) != 1 || !instr.Bank(bank[0]).Valid() {
			return fmt.Errorf("policy: unknown register bank %q", bank)
		}
		if width <= 0 {
			return fmt.Errorf("policy: bank %q has non-positive width %d", bank, width)
		}
	}

	for _, b := range []instr.Bank{instr.BankX, instr.BankF} {
		if _, ok := p.RawBankWidths[b.String()]; !ok {
			return fmt.Errorf("policy: missing width for bank %q", b.String())
		}
	}

	for _, r := range p.RegisterRanges {
		if r.Prefix == "" || r.Count <= 0 {
			return fmt.Errorf("policy: bad register range %+v", r)
		}
	}

	return nil
}

func (p *Policy) build() {
	p.prefixes = newTrie(p.IgnoreOpcodePrefixes)
	p.suffixes = newTrie(lo.Map(p.IgnoreOpcodeSuffixes,
		func(s string, _ int) string { return reverse(s) }))
	p.stores = lo.SliceToMap(p.StoreOpcodes,
		func(s string) (string, bool) { return s, true })
	p.widths = make(BankWidths, len(p.RawBankWidths))
	for bank, width := range p.RawBankWidths {
		p.widths[instr.Bank(bank[0])] = width
	}
}

// SkipLine reports whether a trimmed, comment-free line is a directive or
// comment that carries no instruction.
func (p *Policy) SkipLine(line string) bool {
	return lo.SomeBy(p.LinePrefixes, func(prefix string) bool {
		return strings.HasPrefix(line, prefix)
	})
}

// IgnoreOpcode reports whether instructions with this opcode are out of
// scope for the statistics.
func (p *Policy) IgnoreOpcode(opcode string) bool {
	return p.prefixes.hasPrefixOf(opcode) ||
		p.suffixes.hasPrefixOf(reverse(opcode))
}

// IsStore reports whether opcode is one of the integer store opcodes.
func (p *Policy) IsStore(opcode string) bool {
	return p.stores[opcode]
}

// BankWidths returns the per-bank widths.
func (p *Policy) BankWidths() BankWidths {
	return p.widths
}
