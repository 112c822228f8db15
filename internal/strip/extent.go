package strip

import (
	"fmt"
	"strings"
)

// Extent is the inclusive line range a function occupies, including any
// contiguous documentation block immediately above its declaration.
// Indexes are zero-based into the line slice the extent was computed from.
type Extent struct {
	Start int
	End   int
}

// Len returns the number of lines covered by the extent.
func (e Extent) Len() int { return e.End - e.Start + 1 }

// UnbalancedError indicates that a function's braces never returned to
// balance before end of file. The run must not write anything in this case,
// since the alternative is deleting an unbounded tail of the file.
type UnbalancedError struct {
	// Function is the function whose body could not be delimited.
	Function string
	// Line is the 1-based line number of the declaration.
	Line int
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("braces of function %q (line %d) never return to balance before end of file", e.Function, e.Line)
}

// findDeclaration returns the index of the first line at or after from that
// declares the named function, or -1. Matches both plain and async forms.
func findDeclaration(lines []string, name string, from int) int {
	needle := "function " + name
	for i := from; i < len(lines); i++ {
		if strings.Contains(lines[i], needle) {
			return i
		}
	}
	return -1
}

// findExtent computes the extent of the function declared at decl.
// The end is the first line at or after decl where the delimiter balance
// returns to exactly zero after having been positive. The start is walked
// backward over a contiguous preceding comment block.
func findExtent(lines []string, name string, decl int) (Extent, error) {
	lex := &lexer{}

	end := -1
	for j := decl; j < len(lines); j++ {
		if lex.scanLine(lines[j]) {
			end = j
			break
		}
	}
	if end < 0 {
		return Extent{}, &UnbalancedError{Function: name, Line: decl + 1}
	}

	start := decl
	for start > 0 && isCommentLine(lines[start-1]) {
		start--
	}
	return Extent{Start: start, End: end}, nil
}

// isCommentLine reports whether line is part of a /** ... */ block.
func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*")
}
