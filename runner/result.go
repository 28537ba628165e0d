package runner

import (
	"encoding/json"
	"fmt"
	"io"
)

// Phase tells whether a failure happened while parsing a script or while
// running it. The orchestrator matches it against a test's negative
// metadata.
type Phase string

const (
	PhaseParse   Phase = "parse"
	PhaseRuntime Phase = "runtime"
)

// TestError is the classified form of a failed parse or run.
type TestError struct {
	Phase   Phase  `json:"phase,omitempty"`
	Type    string `json:"type,omitempty"`
	Details string `json:"details,omitempty"`
}

// Result is the single record a harness invocation produces. It is the
// sole artifact written to the real standard output; everything the
// orchestrator knows about a run comes from here plus the process exit
// status.
type Result struct {
	HarnessError bool       `json:"harness_error,omitempty"`
	HarnessFile  string     `json:"harness_file,omitempty"`
	Error        *TestError `json:"error,omitempty"`
	Output       string     `json:"output,omitempty"`
}

// Write marshals the record and writes it, newline-terminated, to w.
func (r Result) Write(w io.Writer) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// Sentinels an async test prints to report completion; the orchestrator
// greps the captured output for them.
const (
	AsyncTestComplete = "Test262:AsyncTestComplete"
	AsyncTestFailure  = "Test262:AsyncTestFailure"
)

// StrictSource returns src with the strict-mode directive prepended, the
// way the orchestrator expands a test's strict variant.
func StrictSource(src string) string {
	return "\"use strict\";\n" + src
}
