package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/rvstat/instr"
)

// ErrBadOperand is returned for operand tokens of an unrecognized shape.
var ErrBadOperand = errors.New("invalid operand")

// ParseOperand classifies one operand token.
//
// A token starting with a letter is a register name. A token starting with
// a digit, or with '-' followed by a digit, is either a memory access
// offset(base) or a plain integer immediate. Everything else is rejected.
// Register names are not resolved here.
func ParseOperand(tok string) (instr.Operand, error) {
	if tok == "" {
		return instr.Operand{}, fmt.Errorf("%w: empty token", ErrBadOperand)
	}

	c := tok[0]
	switch {
	case isLetter(c):
		return instr.RegisterOperand(tok), nil
	case isDigit(c) || (c == '-' && len(tok) > 1 && isDigit(tok[1])):
		return parseNumeric(tok)
	default:
		return instr.Operand{}, fmt.Errorf("%w: %q", ErrBadOperand, tok)
	}
}

func parseNumeric(tok string) (instr.Operand, error) {
	open := strings.IndexByte(tok, '(')
	if open < 0 {
		v, err := strconv.ParseInt(tok, 0, 64)
		if err != nil {
			return instr.Operand{}, fmt.Errorf("%w: %q", ErrBadOperand, tok)
		}
		return instr.ImmediateOperand(v), nil
	}

	if !strings.HasSuffix(tok, ")") {
		return instr.Operand{}, fmt.Errorf("%w: %q is missing ')'", ErrBadOperand, tok)
	}

	offset, err := strconv.ParseInt(tok[:open], 0, 64)
	if err != nil {
		return instr.Operand{}, fmt.Errorf("%w: %q has a bad offset", ErrBadOperand, tok)
	}

	base := tok[open+1 : len(tok)-1]
	if base == "" || !isLetter(base[0]) || strings.IndexFunc(base, notWordRune) >= 0 {
		return instr.Operand{}, fmt.Errorf("%w: %q has a bad base register", ErrBadOperand, tok)
	}

	return instr.MemoryOperand(offset, base), nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func notWordRune(r rune) bool {
	return !(r == '_' || r < 0x80 && (isLetter(byte(r)) || isDigit(byte(r))))
}
