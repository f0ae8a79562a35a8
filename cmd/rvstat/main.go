// Command rvstat compares stack spills and register bank conflicts between
// baseline and modified RISC-V assembly.
//
//	rvstat [flags]                   evaluate every <name>-baseline.s in -dir, write -out
//	rvstat [flags] a.s b.s c.s       print the statistics of three files
//	rvstat -dump a.s b.s c.s         also print every parsed instruction
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/rvstat/abi"
	"github.com/sarchlab/rvstat/api"
	"github.com/sarchlab/rvstat/config"
	"github.com/sarchlab/rvstat/core"
	"github.com/sarchlab/rvstat/stats"
	"github.com/sarchlab/rvstat/verify"
)

func main() {
	dir := flag.String("dir", config.DefaultDir, "directory scanned for <name>-baseline.s / <name>-modified.s pairs")
	out := flag.String("out", config.DefaultOutputFile, "CSV file written in batch mode")
	unresolved := flag.String("unresolved", config.UnresolvedFail.String(), "what to do with unknown register names: fail, keep or skip")
	workers := flag.Int("workers", 0, "pairs evaluated in parallel (0 = number of CPUs)")
	verbose := flag.Bool("v", false, "log debug messages")
	dump := flag.Bool("dump", false, "print the parsed instructions of each file (three-file mode)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file1.s file2.s file3.s]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	policy, err := config.ParseUnresolvedPolicy(*unresolved)
	if err != nil {
		flag.Usage()
		atexit.Fatalf("%v", err)
	}

	cfg := config.Builder{}.
		WithDir(*dir).
		WithOutputFile(*out).
		WithWorkers(*workers).
		WithUnresolvedPolicy(policy).
		Build()

	if err := abi.SelfCheck(cfg.Policy); err != nil {
		atexit.Fatalf("Failed to verify the register translator: %v", err)
	}

	evaluator := api.EvaluatorBuilder{}.WithConfig(cfg).Build()
	ctx := context.Background()

	switch flag.NArg() {
	case 0:
		runBatch(ctx, evaluator, cfg)
	case 3:
		if *dump {
			if err := core.PrintFiles(os.Stdout, flag.Args(), cfg); err != nil {
				atexit.Fatalf("Failed to parse: %v", err)
			}
		}
		runFiles(ctx, evaluator, flag.Args())
	default:
		flag.Usage()
		atexit.Fatalf("expected 0 or 3 files, got %d", flag.NArg())
	}

	atexit.Exit(0)
}

func runBatch(ctx context.Context, evaluator api.Evaluator, cfg config.Config) {
	rows, err := evaluator.EvaluateAll(ctx, cfg.Dir)
	if err != nil {
		atexit.Fatalf("Evaluation failed: %v", err)
	}

	if err := verify.SaveResultsCSV(cfg.OutputFile, rows); err != nil {
		atexit.Fatalf("%v", err)
	}

	verify.WriteReport(os.Stdout, rows)
	slog.Info("Wrote results", "file", cfg.OutputFile, "rows", len(rows),
		"policy_version", cfg.Policy.Version)
}

func runFiles(ctx context.Context, evaluator api.Evaluator, paths []string) {
	results, err := evaluator.EvaluateFiles(ctx, paths...)
	if err != nil {
		atexit.Fatalf("Evaluation failed: %v", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	header := table.Row{"File"}
	for _, l := range stats.Labels() {
		header = append(header, l)
	}
	t.AppendHeader(header)

	for _, r := range results {
		row := table.Row{r.Path}
		if r.Skipped {
			row = append(row, "skipped", r.Reason)
		} else {
			for _, v := range r.Stats.Values() {
				row = append(row, v)
			}
		}
		t.AppendRow(row)
	}

	t.Render()
}
