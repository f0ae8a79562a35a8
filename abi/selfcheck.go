package abi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sarchlab/rvstat/config"
	"github.com/sarchlab/rvstat/instr"
)

// SupportedNames lists every register name the tool is expected to resolve:
// the fixed names plus each prefix/range in the policy.
func SupportedNames(p *config.Policy) []string {
	names := make([]string, 0, len(fixedNames))
	for name := range fixedNames {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, r := range p.RegisterRanges {
		for i := 0; i < r.Count; i++ {
			names = append(names, r.Prefix+strconv.Itoa(i))
		}
	}

	return names
}

// SelfCheck translates every supported name and checks the bank tag of the
// result. It returns the first failure.
func SelfCheck(p *config.Policy) error {
	for _, name := range SupportedNames(p) {
		r, err := Translate(name)
		if err != nil {
			return fmt.Errorf("register self-check: %w", err)
		}

		want := instr.BankX
		if strings.HasPrefix(name, "f") && name != "fp" {
			want = instr.BankF
		}

		if r.Bank != want {
			return fmt.Errorf("register self-check: %s translated to %s, want bank %s",
				name, r, want)
		}
	}

	return nil
}

// MustSelfCheck panics if SelfCheck fails.
func MustSelfCheck(p *config.Policy) {
	if err := SelfCheck(p); err != nil {
		panic(err)
	}
}
