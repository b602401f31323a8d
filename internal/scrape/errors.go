package scrape

import "fmt"

// FailureKind classifies how a detail-worker invocation failed.
type FailureKind string

const (
	// FailureEmptyOutput means the worker produced no JSON object on its
	// primary output channel (no braces, or unbalanced ones).
	FailureEmptyOutput FailureKind = "empty_output"
	// FailureMalformedOutput means the brace-delimited payload did not
	// parse as JSON.
	FailureMalformedOutput FailureKind = "malformed_output"
	// FailureTimeout means the worker exceeded the wall-clock budget and
	// was terminated.
	FailureTimeout FailureKind = "timeout"
	// FailureProcess means the worker could not be started or exited
	// abnormally.
	FailureProcess FailureKind = "process"
	// FailureWorkerReported means the worker ran to completion but
	// reported a semantic error of its own (an "error" field in the
	// payload). Distinct from the infrastructure failures above.
	FailureWorkerReported FailureKind = "worker_reported"
)

// Error is a structured detail-scrape failure. Raw preserves the
// captured primary output for diagnostics where relevant.
type Error struct {
	Kind    FailureKind
	URL     string
	Message string
	// Raw is the captured stdout (or the extracted payload candidate)
	// kept for diagnosis of empty/malformed output.
	Raw string
	// Stderr is a truncated copy of the worker's diagnostic channel.
	Stderr string
	// Err is the underlying OS error for process failures.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("scrape %s: %s: %s", e.URL, e.Kind, e.Message)
	}
	return fmt.Sprintf("scrape %s: %s", e.URL, e.Kind)
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsWorkerReported reports whether err is a worker-reported application
// failure rather than an infrastructure one.
func IsWorkerReported(err error) bool {
	if se, ok := err.(*Error); ok {
		return se.Kind == FailureWorkerReported
	}
	return false
}
