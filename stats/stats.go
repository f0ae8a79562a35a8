// Package stats computes the static metrics of a parsed program.
package stats

import (
	"log/slog"

	"github.com/samber/lo"

	"github.com/sarchlab/rvstat/config"
	"github.com/sarchlab/rvstat/instr"
)

// Stats holds the metrics of one file.
type Stats struct {
	StackSpills   int
	BankConflicts int
}

// Labels returns the names of the metrics, in the order of Values.
func Labels() []string {
	return []string{"stack_spills", "bank_conflicts"}
}

// Values returns the metrics in the order of Labels.
func (s Stats) Values() []int {
	return []int{s.StackSpills, s.BankConflicts}
}

// FromValues is the inverse of Values.
func FromValues(v []int) (Stats, bool) {
	if len(v) != len(Labels()) {
		return Stats{}, false
	}
	return Stats{StackSpills: v[0], BankConflicts: v[1]}, true
}

// Compute counts stack spills and bank conflicts over insts.
func Compute(insts []instr.Inst, p *config.Policy) Stats {
	spills := lo.CountBy(insts, func(inst instr.Inst) bool {
		return IsStackSpill(inst, p)
	})

	conflicts := lo.SumBy(insts, func(inst instr.Inst) int {
		return BankConflicts(inst, p.BankWidths())
	})

	return Stats{StackSpills: spills, BankConflicts: conflicts}
}

// IsStackSpill reports whether inst stores to a stack-pointer based address.
func IsStackSpill(inst instr.Inst, p *config.Policy) bool {
	if !p.IsStore(inst.OpCode) || inst.NumOperands() < 2 {
		return false
	}
	return inst.Operands[1].Register() == instr.StackPointer
}

// ConflictPairs returns the operand index pairs of inst that fall into the
// same register bank. The destination (operand 0) is not a source and never
// takes part. Instructions with two operands or fewer have no pairs.
func ConflictPairs(inst instr.Inst, widths config.BankWidths) [][2]int {
	if inst.NumOperands() <= 2 {
		return nil
	}

	regs := inst.Registers()

	var pairs [][2]int
	for i := 1; i < len(regs); i++ {
		for j := i + 1; j < len(regs); j++ {
			if sameBank(regs[i], regs[j], widths) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}

	return pairs
}

// BankConflicts counts the conflicting source pairs of inst.
func BankConflicts(inst instr.Inst, widths config.BankWidths) int {
	pairs := ConflictPairs(inst, widths)
	if len(pairs) > 0 {
		slog.Debug("Bank conflict",
			"line", inst.Line, "inst", inst.String(), "pairs", len(pairs))
	}
	return len(pairs)
}

func sameBank(a, b instr.Register, widths config.BankWidths) bool {
	if !a.Valid() || !b.Valid() || a.Bank != b.Bank {
		return false
	}

	w := widths.Width(a.Bank)
	if w <= 0 {
		return false
	}

	return a.Index%w == b.Index%w
}
