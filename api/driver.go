// Package api defines the evaluation API that compares baseline and
// modified builds.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/rvstat/config"
	"github.com/sarchlab/rvstat/core"
	"github.com/sarchlab/rvstat/stats"
	"github.com/sarchlab/rvstat/verify"
)

// File name suffixes of a pair.
const (
	BaselineSuffix = "-baseline" + core.SourceExt
	ModifiedSuffix = "-modified" + core.SourceExt
)

// ErrMissingModified is returned when a baseline file has no modified
// counterpart.
var ErrMissingModified = errors.New("modified file not found")

// Analyzer computes the statistics of one assembly file.
type Analyzer interface {
	Analyze(path string) (stats.Stats, error)
}

// Evaluator runs the comparison.
type Evaluator interface {
	// EvaluateAll scans dir for <name>-baseline.s files, evaluates each
	// with its <name>-modified.s sibling and returns one row per pair,
	// ordered by name.
	EvaluateAll(ctx context.Context, dir string) ([]verify.Row, error)

	// EvaluateFiles computes the statistics of each file in order.
	EvaluateFiles(ctx context.Context, paths ...string) ([]FileResult, error)
}

// FileResult is the outcome for one explicitly named file. Skipped is set
// when the file was missing or not an assembly source.
type FileResult struct {
	Path    string
	Stats   stats.Stats
	Skipped bool
	Reason  string
}

type parserAnalyzer struct {
	cfg config.Config
}

// Analyze parses the file and computes its statistics.
func (a parserAnalyzer) Analyze(path string) (stats.Stats, error) {
	prog, err := core.ParseFile(path, a.cfg)
	if err != nil {
		return stats.Stats{}, err
	}

	s := stats.Compute(prog.Insts, a.cfg.Policy)
	slog.Debug("Analyzed", "file", path, "insts", prog.Len(),
		"stack_spills", s.StackSpills, "bank_conflicts", s.BankConflicts)

	return s, nil
}

type pair struct {
	name     string
	baseline string
	modified string
}

type evaluatorImpl struct {
	analyzer Analyzer
	workers  int
}

func (e *evaluatorImpl) EvaluateAll(ctx context.Context, dir string) ([]verify.Row, error) {
	pairs, err := findPairs(dir)
	if err != nil {
		return nil, err
	}

	slog.Info("Found pairs", "dir", dir, "count", len(pairs))

	rows := make([]*verify.Row, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, p := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			row, ok, err := e.evaluatePair(p)
			if err != nil {
				return err
			}
			if ok {
				rows[i] = &row
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return lo.FilterMap(rows, func(r *verify.Row, _ int) (verify.Row, bool) {
		if r == nil {
			return verify.Row{}, false
		}
		return *r, true
	}), nil
}

func findPairs(dir string) ([]pair, error) {
	baselines, err := filepath.Glob(filepath.Join(dir, "*"+BaselineSuffix))
	if err != nil {
		return nil, err
	}
	sort.Strings(baselines)

	pairs := make([]pair, 0, len(baselines))
	for _, baseline := range baselines {
		stem := strings.TrimSuffix(baseline, BaselineSuffix)
		modified := stem + ModifiedSuffix

		if _, err := os.Stat(modified); err != nil {
			return nil, fmt.Errorf("%w: %s has no %s", ErrMissingModified,
				baseline, filepath.Base(modified))
		}

		pairs = append(pairs, pair{
			name:     filepath.Base(stem),
			baseline: baseline,
			modified: modified,
		})
	}

	return pairs, nil
}

func (e *evaluatorImpl) evaluatePair(p pair) (verify.Row, bool, error) {
	baseline, err := e.analyze(p.baseline)
	if err != nil || baseline.Skipped {
		return verify.Row{}, false, err
	}

	modified, err := e.analyze(p.modified)
	if err != nil || modified.Skipped {
		return verify.Row{}, false, err
	}

	return verify.Row{
		Name:     p.name,
		Baseline: baseline.Stats,
		Modified: modified.Stats,
	}, true, nil
}

func (e *evaluatorImpl) analyze(path string) (FileResult, error) {
	s, err := e.analyzer.Analyze(path)
	if err == nil {
		return FileResult{Path: path, Stats: s}, nil
	}

	if core.IsSkippable(err) {
		slog.Warn("Skipping file", "file", path, "reason", err)
		return FileResult{Path: path, Skipped: true, Reason: err.Error()}, nil
	}

	return FileResult{}, fmt.Errorf("failed to evaluate %s: %w", path, err)
}

func (e *evaluatorImpl) EvaluateFiles(ctx context.Context, paths ...string) ([]FileResult, error) {
	results := make([]FileResult, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r, err := e.analyze(path)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, nil
}
