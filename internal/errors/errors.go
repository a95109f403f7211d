// Package errors provides error formatting utilities for the rill
// compiler. It formats diagnostics with source context, line/column
// information, and visual indicators (carets) pointing at the error
// location, plus secondary notes for reference positions such as the
// site of an earlier declaration.
package errors

import (
	"fmt"
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// Note is a secondary position attached to a CompilerError, such as
// "previous declaration here".
type Note struct {
	Pos     lexer.Position
	Message string
}

// CompilerError represents a single compilation error with position
// and context.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
	Notes   []Note
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// AddNote attaches a secondary position.
func (e *CompilerError) AddNote(pos lexer.Position, message string) {
	e.Notes = append(e.Notes, Note{Pos: pos, Message: message})
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context.
// If color is true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	// File and position header
	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	e.writeExcerpt(&sb, e.Pos, color)

	// Error message
	if color {
		sb.WriteString("\033[1m") // Bold
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m") // Reset
	}

	for _, note := range e.Notes {
		sb.WriteString(fmt.Sprintf("\nNote: %s at %d:%d\n", note.Message, note.Pos.Line, note.Pos.Column))
		e.writeExcerpt(&sb, note.Pos, false)
	}

	return sb.String()
}

// writeExcerpt writes the source line at pos with a caret under the
// offending column.
func (e *CompilerError) writeExcerpt(sb *strings.Builder, pos lexer.Position, color bool) {
	sourceLine := e.getSourceLine(pos.Line)
	if sourceLine == "" {
		return
	}

	lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(sourceLine)
	sb.WriteString("\n")

	col := pos.Column
	if col < 1 {
		col = 1
	}
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
	if color {
		sb.WriteString("\033[1;31m") // Red bold
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m") // Reset
	}
	sb.WriteString("\n")
}

// getSourceLine extracts a specific line from the source code.
// Lines are 1-indexed.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
