package semantic

import (
	"fmt"

	"github.com/rill-lang/rill/internal/lexer"
)

// Diagnostic is a single finding from an analysis pass: a primary token
// marking the offending source, optional reference tokens (such as the
// site of an earlier declaration), and a message.
type Diagnostic struct {
	Token   lexer.Token
	Refs    []lexer.Token
	Message string
}

// NewDiagnostic creates a diagnostic for the given token.
func NewDiagnostic(token lexer.Token, refs []lexer.Token, message string) *Diagnostic {
	return &Diagnostic{Token: token, Refs: refs, Message: message}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s at %s", d.Message, d.Token.Pos)
}

// Collector accumulates errors, warnings, and lints across all passes
// without short-circuiting. Passes keep going after recording an error
// so independent problems surface together.
type Collector struct {
	errors   []*Diagnostic
	warnings []*Diagnostic
	lints    []*Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// AddError records an error.
func (c *Collector) AddError(d *Diagnostic) {
	c.errors = append(c.errors, d)
}

// Errorf records an error built from the token and format string.
func (c *Collector) Errorf(token lexer.Token, refs []lexer.Token, format string, args ...any) {
	c.AddError(NewDiagnostic(token, refs, fmt.Sprintf(format, args...)))
}

// AddWarning records a warning.
func (c *Collector) AddWarning(d *Diagnostic) {
	c.warnings = append(c.warnings, d)
}

// AddLint records a lint.
func (c *Collector) AddLint(d *Diagnostic) {
	c.lints = append(c.lints, d)
}

// Errors returns all recorded errors in insertion order.
func (c *Collector) Errors() []*Diagnostic { return c.errors }

// Warnings returns all recorded warnings.
func (c *Collector) Warnings() []*Diagnostic { return c.warnings }

// Lints returns all recorded lints.
func (c *Collector) Lints() []*Diagnostic { return c.lints }

// HasErrors reports whether any error has been recorded.
func (c *Collector) HasErrors() bool { return len(c.errors) > 0 }

// ErrorMessages returns the error messages as plain strings.
func (c *Collector) ErrorMessages() []string {
	msgs := make([]string, len(c.errors))
	for i, d := range c.errors {
		msgs[i] = d.Message
	}
	return msgs
}
