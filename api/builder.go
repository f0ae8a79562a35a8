package api

import (
	"github.com/sarchlab/rvstat/config"
)

// EvaluatorBuilder creates a new instance of Evaluator.
type EvaluatorBuilder struct {
	cfg      config.Config
	hasCfg   bool
	analyzer Analyzer
}

// WithConfig sets the configuration used to parse and score files.
func (b EvaluatorBuilder) WithConfig(cfg config.Config) EvaluatorBuilder {
	b.cfg = cfg
	b.hasCfg = true
	return b
}

// WithAnalyzer replaces the default parser-based analyzer.
func (b EvaluatorBuilder) WithAnalyzer(a Analyzer) EvaluatorBuilder {
	b.analyzer = a
	return b
}

// Build creates an evaluator.
func (b EvaluatorBuilder) Build() Evaluator {
	cfg := b.cfg
	if !b.hasCfg {
		cfg = config.Builder{}.Build()
	}
	if cfg.Policy == nil {
		cfg.Policy = config.DefaultPolicy()
	}

	e := &evaluatorImpl{
		analyzer: b.analyzer,
		workers:  cfg.Workers,
	}

	if e.analyzer == nil {
		e.analyzer = parserAnalyzer{cfg: cfg}
	}

	if e.workers <= 0 {
		e.workers = 1
	}

	return e
}
