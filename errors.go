package polydec

import (
	"errors"
	"fmt"
)

// Errors returned by Decimate. Detailed errors wrap these and can be
// matched with errors.Is.
var (
	// ErrNilMesh is returned when Decimate is called with a nil mesh.
	ErrNilMesh = errors.New("polydec: nil mesh")

	// ErrInvalidPoints is returned for missing or non-finite point data.
	ErrInvalidPoints = errors.New("polydec: invalid points")

	// ErrMalformedConnectivity is returned when a line references a point
	// outside the point array or repeats a point other than to close itself.
	ErrMalformedConnectivity = errors.New("polydec: malformed connectivity")

	// ErrInvalidAttribute is returned when an attribute array does not
	// match the size of the points or lines it annotates.
	ErrInvalidAttribute = errors.New("polydec: invalid attribute array")

	// ErrAllocation is returned when the output buffers cannot be sized.
	// No partial output is produced.
	ErrAllocation = errors.New("polydec: output allocation failed")
)

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind int

const (
	// DiagnosticDegenerateChain reports a line too short to decimate.
	// The line is copied to the output unchanged.
	DiagnosticDegenerateChain DiagnosticKind = iota

	// DiagnosticAllocationFailure reports an output buffer that could not
	// be sized. The pass is aborted.
	DiagnosticAllocationFailure
)

// String returns the diagnostic kind name.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticDegenerateChain:
		return "degenerate-chain"
	case DiagnosticAllocationFailure:
		return "allocation-failure"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic is a non-fatal report raised during a pass.
type Diagnostic struct {
	Kind DiagnosticKind

	// Line is the input line concerned, or -1 when not line specific.
	Line int

	Message string
	Err     error
}

// String formats the diagnostic for humans.
func (d Diagnostic) String() string {
	if d.Line >= 0 {
		return fmt.Sprintf("%s: line %d: %s", d.Kind, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
