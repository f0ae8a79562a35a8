// Package core reads RISC-V assembly files into programs of instructions
// that the statistics can consume.
package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sarchlab/rvstat/abi"
	"github.com/sarchlab/rvstat/config"
	"github.com/sarchlab/rvstat/instr"
	"github.com/sarchlab/rvstat/verify"
)

// SourceExt is the only accepted assembly file extension.
const SourceExt = ".s"

var (
	// ErrFileNotFound and ErrUnsupportedFile mean the file was not parsed
	// at all. Callers treat them as a skip.
	ErrFileNotFound    = errors.New("file not found")
	ErrUnsupportedFile = errors.New("unsupported file type, want a .s assembly file")

	// ErrUnexpectedImmediate is returned when an immediate survives the
	// opcode filter.
	ErrUnexpectedImmediate = errors.New("unexpected immediate operand")

	// ErrMalformedProgram is returned when the parsed instructions break
	// the operand-count rules.
	ErrMalformedProgram = errors.New("malformed program")
)

// IsSkippable reports whether err only means the file was not a parseable
// assembly source.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrFileNotFound) || errors.Is(err, ErrUnsupportedFile)
}

// ParseFile parses the assembly file at path.
func ParseFile(path string, cfg config.Config) (Program, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Program{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Program{}, err
	}

	if filepath.Ext(path) != SourceExt {
		return Program{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Program{}, err
	}
	defer f.Close()

	return ParseReader(path, f, cfg)
}

// ParseReader parses assembly text read from r. Name is used in errors and
// logs.
func ParseReader(name string, r io.Reader, cfg config.Config) (Program, error) {
	p := &parser{name: name, cfg: cfg}
	if p.cfg.Policy == nil {
		p.cfg.Policy = config.DefaultPolicy()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if err := p.parseLine(line, scanner.Text()); err != nil {
			return Program{}, err
		}
	}

	if err := scanner.Err(); err != nil {
		return Program{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if issues := verify.CheckStructure(p.insts, p.cfg.Policy); len(issues) > 0 {
		for _, issue := range issues {
			slog.Error("Unexpected instruction shape",
				"file", name, "line", issue.Line, "type", issue.Type,
				"issue", issue.Message, "details", issue.Details)
		}
		return Program{}, fmt.Errorf("%w: %s: %d issue(s), first: line %d: %s",
			ErrMalformedProgram, name, len(issues), issues[0].Line, issues[0].Message)
	}

	return Program{Name: name, Insts: p.insts}, nil
}

type parser struct {
	name  string
	cfg   config.Config
	insts []instr.Inst
}

func (p *parser) parseLine(lineNo int, raw string) error {
	text := raw
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)

	if text == "" || strings.HasSuffix(text, ":") {
		return nil
	}

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	// A label sharing the line with an instruction, local labels included.
	if len(tokens) > 0 && strings.HasSuffix(tokens[0], ":") {
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return fmt.Errorf("%s:%d: %w: %q", p.name, lineNo, ErrBadOperand, text)
	}

	if p.cfg.Policy.SkipLine(tokens[0]) {
		return nil
	}

	opcode := tokens[0]
	if p.cfg.Policy.IgnoreOpcode(opcode) {
		Trace("Ignore", "file", p.name, "line", lineNo, "opcode", opcode)
		return nil
	}

	inst := instr.Inst{
		OpCode:   opcode,
		Operands: make([]instr.Operand, 0, len(tokens)-1),
		Line:     lineNo,
		Text:     text,
	}

	for _, tok := range tokens[1:] {
		op, err := ParseOperand(tok)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", p.name, lineNo, err)
		}

		if op.Kind == instr.OperandImmediate {
			return fmt.Errorf("%s:%d: %w: %q in %q",
				p.name, lineNo, ErrUnexpectedImmediate, tok, text)
		}

		inst.Operands = append(inst.Operands, op)
	}

	keep, err := p.resolve(&inst)
	if err != nil || !keep {
		return err
	}

	Trace("Inst", "file", p.name, "line", lineNo, "inst", inst.String())
	p.insts = append(p.insts, inst)

	return nil
}

// resolve translates the register names of inst in place. It reports
// whether the instruction should be kept.
func (p *parser) resolve(inst *instr.Inst) (bool, error) {
	for i, op := range inst.Operands {
		if !op.HasRegister() {
			continue
		}

		reg, err := abi.Translate(op.Name)
		if err == nil {
			inst.Operands[i] = op.WithReg(reg)
			continue
		}

		switch p.cfg.Unresolved {
		case config.UnresolvedKeep:
			slog.Warn("Keeping unresolved register",
				"file", p.name, "line", inst.Line, "register", op.Name)
		case config.UnresolvedSkip:
			slog.Warn("Skipping instruction with unresolved register",
				"file", p.name, "line", inst.Line, "register", op.Name, "inst", inst.Text)
			return false, nil
		default:
			return false, fmt.Errorf("%s:%d: %w", p.name, inst.Line, err)
		}
	}

	return true, nil
}
