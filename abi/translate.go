// Package abi translates RISC-V ABI register mnemonics (t0, fa2, sp, ...)
// into canonical numbered registers (x5, f42, x2, ...).
//
// Temporary, saved and argument registers are not allocated contiguously,
// so each category uses a piecewise offset table:
//
//	t   idx<=2 +5   idx<=6 +25   else +89
//	s   idx<=1 +8   idx<=11 +16  else +36
//	a   idx<=7 +10               else +24
//	ft  idx<=7 +0   idx<=11 +20  else +40
//	fs  idx<=1 +8   idx<=11 +16  else +28
//	fa  idx<=7 +10               else +24
package abi

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sarchlab/rvstat/instr"
)

// ErrUnknownRegister is wrapped by every translation failure.
var ErrUnknownRegister = errors.New("unknown register")

var fixedNames = map[string]instr.Register{
	"zero": instr.X(0),
	"ra":   instr.X(1),
	"sp":   instr.X(2),
	"gp":   instr.X(3),
	"tp":   instr.X(4),
	"fp":   instr.X(8),
}

// segment adds offset to indices up to and including limit.
type segment struct {
	limit  int
	offset int
}

const unbounded = int(^uint(0) >> 1)

var offsetTables = map[instr.Bank]map[byte][]segment{
	instr.BankX: {
		't': {{2, 5}, {6, 25}, {unbounded, 89}},
		's': {{1, 8}, {11, 16}, {unbounded, 36}},
		'a': {{7, 10}, {unbounded, 24}},
	},
	instr.BankF: {
		't': {{7, 0}, {11, 20}, {unbounded, 40}},
		's': {{1, 8}, {11, 16}, {unbounded, 28}},
		'a': {{7, 10}, {unbounded, 24}},
	},
}

// Translate resolves an ABI register name.
func Translate(name string) (instr.Register, error) {
	if r, ok := fixedNames[name]; ok {
		return r, nil
	}

	if r, ok := canonical(name); ok {
		return r, nil
	}

	bank := instr.BankX
	rest := name
	if len(rest) > 0 && rest[0] == 'f' {
		bank = instr.BankF
		rest = rest[1:]
	}

	if len(rest) < 2 {
		return instr.Register{}, fmt.Errorf("%w: %q is too short", ErrUnknownRegister, name)
	}

	segments, ok := offsetTables[bank][rest[0]]
	if !ok {
		return instr.Register{}, fmt.Errorf("%w: %q has no t/s/a category", ErrUnknownRegister, name)
	}

	idx, ok := parseIndex(rest[1:])
	if !ok {
		return instr.Register{}, fmt.Errorf("%w: %q has a bad index", ErrUnknownRegister, name)
	}

	for _, seg := range segments {
		if idx <= seg.limit {
			return instr.Register{Bank: bank, Index: idx + seg.offset}, nil
		}
	}

	panic("offset table without an unbounded segment")
}

// MustTranslate is Translate for names known to be valid.
func MustTranslate(name string) instr.Register {
	r, err := Translate(name)
	if err != nil {
		panic(err)
	}
	return r
}

// canonical accepts names that are already numbered, such as x5 or f10.
func canonical(name string) (instr.Register, bool) {
	if len(name) < 2 {
		return instr.Register{}, false
	}

	bank := instr.Bank(name[0])
	if !bank.Valid() {
		return instr.Register{}, false
	}

	idx, ok := parseIndex(name[1:])
	if !ok {
		return instr.Register{}, false
	}

	return instr.Register{Bank: bank, Index: idx}, true
}

// parseIndex accepts up to six decimal digits, so "+1" and "-1" fail.
func parseIndex(s string) (int, bool) {
	if s == "" || len(s) > 6 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}
