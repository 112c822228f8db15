// Package strip removes email-generation code from a JavaScript source file.
//
// The file is treated as an ordered sequence of lines and rewritten by a
// pipeline of passes, each a pure lines-in/lines-out transformation. Function
// bodies are located by delimiter balance, computed by a minimal lexer that
// ignores braces inside string and comment literals.
package strip

// lexState tracks which literal context the scanner is inside across lines.
type lexState int

const (
	stateCode lexState = iota
	stateBlockComment
	stateSingle
	stateDouble
	stateTemplate
)

// lexer is a minimal JavaScript scanner that classifies spans as code,
// string, or comment so that delimiters are only counted in code spans.
// Template-literal interpolations are treated as literal text; the braces of
// `${...}` are balanced within the template, so skipping them keeps the
// overall count intact. Block comments and template literals carry their
// state across lines.
type lexer struct {
	state lexState

	// balance is the running {/} count over all scanned code spans.
	balance int
	// started records whether any opening brace has been seen yet.
	started bool
}

// scanLine consumes one line and reports whether the balance returned to
// exactly zero at any point on the line after having been positive.
func (l *lexer) scanLine(line string) (closed bool) {
	i := 0
	for i < len(line) {
		c := line[i]
		switch l.state {
		case stateCode:
			switch {
			case c == '/' && i+1 < len(line) && line[i+1] == '/':
				// Line comment: the rest of the line is not code.
				return closed
			case c == '/' && i+1 < len(line) && line[i+1] == '*':
				l.state = stateBlockComment
				i++
			case c == '\'':
				l.state = stateSingle
			case c == '"':
				l.state = stateDouble
			case c == '`':
				l.state = stateTemplate
			case c == '{':
				l.balance++
				l.started = true
			case c == '}':
				l.balance--
				if l.started && l.balance == 0 {
					closed = true
				}
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				l.state = stateCode
				i++
			}
		case stateSingle:
			if c == '\\' {
				i++
			} else if c == '\'' {
				l.state = stateCode
			}
		case stateDouble:
			if c == '\\' {
				i++
			} else if c == '"' {
				l.state = stateCode
			}
		case stateTemplate:
			if c == '\\' {
				i++
			} else if c == '`' {
				l.state = stateCode
			}
		}
		i++
	}

	// Single- and double-quoted strings cannot span lines.
	if l.state == stateSingle || l.state == stateDouble {
		l.state = stateCode
	}
	return closed
}
