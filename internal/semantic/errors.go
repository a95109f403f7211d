package semantic

import (
	"fmt"
	"strings"
)

// AnalysisError aggregates the diagnostics of a failed analysis into a
// single error for the driver boundary.
type AnalysisError struct {
	Diagnostics []*Diagnostic
}

// Error returns a formatted message containing every recorded error.
func (e *AnalysisError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "semantic analysis failed"
	}
	if len(e.Diagnostics) == 1 {
		return fmt.Sprintf("semantic error: %s", e.Diagnostics[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("semantic analysis failed with %d errors:\n", len(e.Diagnostics)))
	for i, d := range e.Diagnostics {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, d.Error()))
	}
	return sb.String()
}
