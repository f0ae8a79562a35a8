package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/rvstat/config"
)

const (
	LevelTrace slog.Level = slog.LevelDebug - 4
)

// Trace logs per-line parser activity below debug level.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintProgram writes a table with one row per instruction.
func PrintProgram(w io.Writer, p Program) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(p.Name)
	t.AppendHeader(table.Row{"Line", "OpCode", "Operands", "Source"})

	for _, inst := range p.Insts {
		ops := ""
		for i, r := range inst.Registers() {
			if i > 0 {
				ops += " "
			}
			ops += r.String()
		}
		t.AppendRow(table.Row{inst.Line, inst.OpCode, ops, inst.Text})
	}

	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d instructions", p.Len())})
	t.Render()
}

// PrintFiles parses each file and prints its program. Files that are missing
// or not assembly sources are logged and skipped; any other parse error is
// returned.
func PrintFiles(w io.Writer, paths []string, cfg config.Config) error {
	for _, path := range paths {
		p, err := ParseFile(path, cfg)
		if IsSkippable(err) {
			slog.Warn("Skipping file", "file", path, "reason", err)
			continue
		}
		if err != nil {
			return err
		}

		PrintProgram(w, p)
	}

	return nil
}
