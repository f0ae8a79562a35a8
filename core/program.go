package core

import "github.com/sarchlab/rvstat/instr"

// Program is the parsed content of one assembly file.
type Program struct {
	// Name is the path or label the program was read from.
	Name  string
	Insts []instr.Inst
}

// Len returns the number of instructions kept by the parser.
func (p Program) Len() int {
	return len(p.Insts)
}
