package parser

import (
	"fmt"
	"strings"
)

// Finding locates a parameter, or a whole block when Param is empty.
type Finding struct {
	Block  string
	Param  string
	Source string
}

func (f Finding) String() string {
	block := f.Block
	if block == "" {
		block = "<root>"
	}
	var msg string
	if f.Param == "" {
		msg = fmt.Sprintf("block %q", block)
	} else {
		msg = fmt.Sprintf("block %q: parameter %q", block, f.Param)
	}
	if f.Source != "" {
		msg += " (" + f.Source + ")"
	}
	return msg
}

func formatFindings(title string, findings []Finding) string {
	lines := make([]string, len(findings))
	for i, f := range findings {
		lines[i] = f.String()
	}
	return fmt.Sprintf("%s:\n- %s", title, strings.Join(lines, "\n- "))
}

// BindErrors aggregates every resolution, binding and action construction
// failure found in one walk.
type BindErrors []error

func (e BindErrors) Error() string {
	lines := make([]string, len(e))
	for i, err := range e {
		lines[i] = err.Error()
	}
	return "input validation failed:\n- " + strings.Join(lines, "\n- ")
}

func (e BindErrors) Unwrap() []error { return e }

// UnusedError reports parameters and blocks nothing consumed.
type UnusedError struct {
	Findings []Finding
}

func (e *UnusedError) Error() string {
	return formatFindings("unused parameters in input", e.Findings)
}

// OverriddenError reports parameters assigned more than once.
type OverriddenError struct {
	Findings []Finding
}

func (e *OverriddenError) Error() string {
	return formatFindings("overridden parameters in input", e.Findings)
}
