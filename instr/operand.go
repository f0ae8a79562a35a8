package instr

import "fmt"

// OperandKind tags the variant held by an Operand.
type OperandKind int

const (
	OperandRegister OperandKind = iota
	OperandMemory
	OperandImmediate
)

func (k OperandKind) String() string {
	switch k {
	case OperandRegister:
		return "register"
	case OperandMemory:
		return "memory"
	case OperandImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("OperandKind(%d)", int(k))
	}
}

// Operand is one operand of an instruction.
//
//	a0        -> {Kind: OperandRegister, Name: "a0"}
//	-24(sp)   -> {Kind: OperandMemory, Name: "sp", Offset: -24}
//	42        -> {Kind: OperandImmediate, Imm: 42}
//
// Reg holds the translated register (or memory base) once the name has been
// resolved.
type Operand struct {
	Kind   OperandKind
	Name   string
	Reg    Register
	Offset int64
	Imm    int64
}

// RegisterOperand builds a register operand that has not been resolved yet.
func RegisterOperand(name string) Operand {
	return Operand{Kind: OperandRegister, Name: name}
}

// MemoryOperand builds an offset(base) operand.
func MemoryOperand(offset int64, base string) Operand {
	return Operand{Kind: OperandMemory, Name: base, Offset: offset}
}

// ImmediateOperand builds an immediate operand.
func ImmediateOperand(v int64) Operand {
	return Operand{Kind: OperandImmediate, Imm: v}
}

// HasRegister reports whether the operand names a register, either directly
// or as a memory base.
func (o Operand) HasRegister() bool {
	return o.Kind == OperandRegister || o.Kind == OperandMemory
}

// Register returns the register carried by the operand. Immediates return
// the unresolved placeholder.
func (o Operand) Register() Register {
	if !o.HasRegister() {
		return Register{}
	}
	return o.Reg
}

// WithReg returns a copy of o with the resolved register set.
func (o Operand) WithReg(r Register) Operand {
	o.Reg = r
	return o
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandMemory:
		return fmt.Sprintf("%d(%s)", o.Offset, o.Reg)
	case OperandImmediate:
		return fmt.Sprintf("%d", o.Imm)
	default:
		return o.Reg.String()
	}
}
