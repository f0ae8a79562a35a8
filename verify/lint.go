package verify

import (
	"fmt"

	"github.com/sarchlab/rvstat/config"
	"github.com/sarchlab/rvstat/instr"
)

// CheckStructure validates the operand counts of a parsed program.
// Returns a list of issues found, or empty list if no issues.
func CheckStructure(insts []instr.Inst, p *config.Policy) []Issue {
	var issues []Issue

	for idx, inst := range insts {
		n := inst.NumOperands()

		switch {
		case n <= 1:
			issues = append(issues, Issue{
				Type:    IssueOperandCount,
				Line:    inst.Line,
				OpCode:  inst.OpCode,
				Message: fmt.Sprintf("zero or single operand instruction %s", inst),
				Details: map[string]interface{}{
					"index":    idx,
					"operands": n,
					"text":     inst.Text,
				},
			})
		case n == 2 && !p.IsStore(inst.OpCode):
			issues = append(issues, Issue{
				Type:    IssueTwoOperand,
				Line:    inst.Line,
				OpCode:  inst.OpCode,
				Message: fmt.Sprintf("illegal two operand instruction %s", inst),
				Details: map[string]interface{}{
					"index": idx,
					"text":  inst.Text,
				},
			})
		}
	}

	return issues
}
