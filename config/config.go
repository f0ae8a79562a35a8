// Package config provides the run configuration of the statistics tool.
package config

import (
	"fmt"
	"runtime"
)

// UnresolvedPolicy decides what the parser does with a register name that
// the translator cannot resolve.
type UnresolvedPolicy int

const (
	// UnresolvedFail fails the whole file.
	UnresolvedFail UnresolvedPolicy = iota
	// UnresolvedKeep keeps the instruction with a placeholder register.
	UnresolvedKeep
	// UnresolvedSkip drops the instruction.
	UnresolvedSkip
)

func (p UnresolvedPolicy) String() string {
	switch p {
	case UnresolvedFail:
		return "fail"
	case UnresolvedKeep:
		return "keep"
	case UnresolvedSkip:
		return "skip"
	default:
		return fmt.Sprintf("UnresolvedPolicy(%d)", int(p))
	}
}

// ParseUnresolvedPolicy parses the flag form of an UnresolvedPolicy.
func ParseUnresolvedPolicy(s string) (UnresolvedPolicy, error) {
	switch s {
	case "fail":
		return UnresolvedFail, nil
	case "keep":
		return UnresolvedKeep, nil
	case "skip":
		return UnresolvedSkip, nil
	default:
		return 0, fmt.Errorf("unknown unresolved-register policy %q (want fail, keep or skip)", s)
	}
}

// Config is the configuration of one evaluation run.
type Config struct {
	Dir        string
	OutputFile string
	Workers    int
	Unresolved UnresolvedPolicy
	Policy     *Policy
}

// Default values used by Builder.
const (
	DefaultDir        = "./build"
	DefaultOutputFile = "results.csv"
)

// Builder can build configurations.
type Builder struct {
	dir        string
	outputFile string
	workers    int
	unresolved UnresolvedPolicy
	policy     *Policy
}

// WithDir sets the directory scanned for baseline/modified pairs.
func (b Builder) WithDir(dir string) Builder {
	b.dir = dir
	return b
}

// WithOutputFile sets the path of the CSV table.
func (b Builder) WithOutputFile(path string) Builder {
	b.outputFile = path
	return b
}

// WithWorkers sets how many pairs are evaluated at the same time.
func (b Builder) WithWorkers(n int) Builder {
	b.workers = n
	return b
}

// WithUnresolvedPolicy sets how unresolved register names are handled.
func (b Builder) WithUnresolvedPolicy(p UnresolvedPolicy) Builder {
	b.unresolved = p
	return b
}

// WithPolicy replaces the embedded filtering policy.
func (b Builder) WithPolicy(p *Policy) Builder {
	b.policy = p
	return b
}

// Build creates a Config, filling in defaults for unset fields.
func (b Builder) Build() Config {
	c := Config{
		Dir:        b.dir,
		OutputFile: b.outputFile,
		Workers:    b.workers,
		Unresolved: b.unresolved,
		Policy:     b.policy,
	}

	if c.Dir == "" {
		c.Dir = DefaultDir
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Policy == nil {
		c.Policy = DefaultPolicy()
	}

	return c
}
