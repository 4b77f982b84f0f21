// Package diag is the Error Collector (spec §4, §7): an append-only
// diagnostic list with a fatal-abort flag consumed at phase boundaries.
// Modeled on the teacher's severity-tagged status message
// (status/status.go's INFO/ERROR/PROGRESS trio), stripped of its
// websocket transport -- this is a batch compiler with no UI to push
// status to, so diagnostics are collected in memory and printed to
// stdout/stderr at the end of the run (or the first abort point).
package diag

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Kind classifies a Diagnostic per spec §7.
type Kind int

const (
	Parse Kind = iota
	Range
	Schema
	Reference
	Occurrence
	Resource
	Internal
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case Range:
		return "range"
	case Schema:
		return "schema"
	case Reference:
		return "reference"
	case Occurrence:
		return "occurrence"
	case Resource:
		return "resource"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Diagnostic is one collected message, with enough source context to
// point a level designer back at the offending line.
type Diagnostic struct {
	Kind       Kind
	SourceFile string
	Line       int
	Fatal      bool
	Message    string
}

func (d Diagnostic) String() string {
	sev := "warning"
	if d.Fatal {
		sev = "error"
	}
	if d.SourceFile != "" {
		return fmt.Sprintf("%s: %s:%d: %s: %s", sev, d.SourceFile, d.Line, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", sev, d.Kind, d.Message)
}

// Collector accumulates diagnostics across every phase of the pipeline.
// It is owned and mutated from a single thread only (see Concurrency &
// Resource Model); no locking is required.
type Collector struct {
	entries []Diagnostic
	aborted bool
}

func NewCollector() *Collector {
	return &Collector{}
}

// Addf appends a non-fatal diagnostic.
func (c *Collector) Addf(kind Kind, file string, line int, format string, args ...interface{}) {
	c.add(kind, file, line, false, format, args...)
}

// Fatalf appends a fatal diagnostic and sets the abort flag.
func (c *Collector) Fatalf(kind Kind, file string, line int, format string, args ...interface{}) {
	c.add(kind, file, line, true, format, args...)
}

func (c *Collector) add(kind Kind, file string, line int, fatal bool, format string, args ...interface{}) {
	c.entries = append(c.entries, Diagnostic{
		Kind:       kind,
		SourceFile: file,
		Line:       line,
		Fatal:      fatal,
		Message:    fmt.Sprintf(format, args...),
	})
	if fatal {
		c.aborted = true
	}
}

// Aborted reports whether a fatal diagnostic has been recorded. Phase
// boundaries check this before handing the ScriptModel to the next
// phase.
func (c *Collector) Aborted() bool {
	return c.aborted
}

func (c *Collector) Entries() []Diagnostic {
	return c.entries
}

// FirstFatal returns the first fatal diagnostic wrapped as an error, or
// nil if none was recorded. Useful for a caller that wants a single
// `error` to propagate (e.g. the CLI driver's exit code).
func (c *Collector) FirstFatal() error {
	for _, e := range c.entries {
		if e.Fatal {
			return errors.Errorf("%s", e.String())
		}
	}
	return nil
}

// Print writes every diagnostic to w, fatal entries first, each group
// in original insertion order, matching spec §7's "fatal first in
// display but preserving insertion order within each severity".
func (c *Collector) Print(w io.Writer) {
	for _, e := range c.entries {
		if e.Fatal {
			fmt.Fprintln(w, e.String())
		}
	}
	for _, e := range c.entries {
		if !e.Fatal {
			fmt.Fprintln(w, e.String())
		}
	}
}
