// Package verify checks parsed programs for structural consistency and
// writes the comparison results.
//
// Structural checks (lint.go) run after a file has been parsed. Every
// instruction that survives the opcode filter must be either
//
//   - a store (sb, sh, sw, sd) with exactly two operands: the value register
//     and the memory base, or
//   - an instruction with three or more register operands.
//
// Anything else means the opcode filter let through an instruction the
// statistics do not understand, so the whole file is rejected.
//
// Reports (report.go) pair the statistics of a baseline and a modified
// build of the same program and write them as results.csv:
//
//	name,baseline_stack_spills,baseline_bank_conflicts,modified_stack_spills,modified_bank_conflicts
package verify

// IssueType categorizes lint issues
type IssueType string

const (
	IssueOperandCount IssueType = "OPERANDS"    // zero or one operand
	IssueTwoOperand   IssueType = "TWO_OPERAND" // two operands on a non-store
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	Line    int // Source line, 0 if unknown
	OpCode  string
	Message string
	Details map[string]interface{}
}
