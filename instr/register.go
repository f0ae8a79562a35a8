package instr

import "fmt"

// Bank identifies a register file.
type Bank byte

const (
	// BankNone marks an unresolved register.
	BankNone Bank = 0
	BankX    Bank = 'x' // integer registers
	BankF    Bank = 'f' // floating-point registers
)

func (b Bank) String() string {
	if b == BankNone {
		return "?"
	}
	return string(rune(b))
}

// Valid reports whether b is one of the known banks.
func (b Bank) Valid() bool {
	return b == BankX || b == BankF
}

// Register is a canonical numbered register such as x5 or f42.
//
// The zero value is the unresolved placeholder. It never compares equal to
// a real register and is skipped by the statistics.
type Register struct {
	Bank  Bank
	Index int
}

// X returns integer register n.
func X(n int) Register {
	return Register{Bank: BankX, Index: n}
}

// F returns floating-point register n.
func F(n int) Register {
	return Register{Bank: BankF, Index: n}
}

// Valid reports whether the register was resolved.
func (r Register) Valid() bool {
	return r.Bank.Valid() && r.Index >= 0
}

func (r Register) String() string {
	if !r.Valid() {
		return "?"
	}
	return fmt.Sprintf("%s%d", r.Bank, r.Index)
}

// StackPointer is the canonical name of sp.
var StackPointer = X(2)
