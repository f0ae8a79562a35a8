// Package instr holds the data model shared by the parser and the
// statistics: registers, operands and instructions.
package instr

import (
	"strings"

	"github.com/samber/lo"
)

// Inst is one parsed instruction. Operands keep the assembly order, so the
// destination comes first.
type Inst struct {
	OpCode   string
	Operands []Operand

	// Source position, for diagnostics only.
	Line int
	Text string
}

// NumOperands returns the number of operands.
func (i Inst) NumOperands() int {
	return len(i.Operands)
}

// Registers returns the register of every operand, in order.
func (i Inst) Registers() []Register {
	return lo.Map(i.Operands, func(o Operand, _ int) Register {
		return o.Register()
	})
}

// Resolved reports whether every register in the instruction was translated.
func (i Inst) Resolved() bool {
	return lo.EveryBy(i.Operands, func(o Operand) bool {
		return !o.HasRegister() || o.Reg.Valid()
	})
}

func (i Inst) String() string {
	ops := lo.Map(i.Operands, func(o Operand, _ int) string {
		return o.Reg.String()
	})
	return i.OpCode + " [" + strings.Join(ops, " ") + "]"
}
