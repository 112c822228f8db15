package strip

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/website-audit/auditctl/internal/rules"
)

// Summary captures the audit trail of one strip run.
type Summary struct {
	// Path is the rewritten file.
	Path string
	// Before and After are the line counts around the rewrite.
	Before int
	After  int
	// Removals lists every deleted extent, region, and line.
	Removals []Removal
}

// Run rewrites the configured file in place, removing every import line,
// function, region, and field line the rule set names. The stages run in a
// fixed order, each consuming the previous stage's output. No backup of the
// file is taken; that is the caller's responsibility.
//
// If any configured function's braces never return to balance, Run fails
// before writing and the file is left untouched.
func Run(path string, cfg rules.Strip, progress io.Writer, logger *slog.Logger) (*Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if progress == nil {
		progress = io.Discard
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	lines, trailing := splitLines(string(data))
	before := len(lines)

	out, removals, err := Apply(lines, cfg, progress)
	if err != nil {
		return nil, fmt.Errorf("strip %q: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(joinLines(out, trailing)), 0o644); err != nil {
		return nil, fmt.Errorf("write %q: %w", path, err)
	}

	logger.Debug("rewrote file", "path", path, "before", before, "after", len(out))
	return &Summary{Path: path, Before: before, After: len(out), Removals: removals}, nil
}

// Apply runs the full pass pipeline over lines and returns the surviving
// lines along with the audit records of everything removed. Apply never
// mutates its input.
func Apply(lines []string, cfg rules.Strip, progress io.Writer) ([]string, []Removal, error) {
	if progress == nil {
		progress = io.Discard
	}

	patterns, err := compileFieldPatterns(cfg.FieldPatterns)
	if err != nil {
		return nil, nil, err
	}

	var audit []Removal

	fmt.Fprintf(progress, "Removing import lines...\n")
	lines, removed := removeImports(lines, cfg.Imports)
	audit = append(audit, removed...)

	for _, name := range cfg.Functions {
		fmt.Fprintf(progress, "Removing %s function...\n", name)
		var err error
		lines, removed, err = removeFunction(lines, name)
		if err != nil {
			return nil, nil, err
		}
		audit = append(audit, removed...)
	}

	fmt.Fprintf(progress, "Removing marked regions...\n")
	lines, removed = removeRegions(lines, cfg.Regions)
	audit = append(audit, removed...)

	fmt.Fprintf(progress, "Applying renames...\n")
	lines, removed = applyRenames(lines, cfg.Renames)
	audit = append(audit, removed...)

	fmt.Fprintf(progress, "Removing field lines...\n")
	lines, removed = removeFieldLines(lines, patterns)
	audit = append(audit, removed...)

	return lines, audit, nil
}

// FunctionStatus reports the outcome of locating one configured function.
type FunctionStatus struct {
	// Name is the configured function name.
	Name string
	// Found reports whether a declaration exists in the file.
	Found bool
	// Extent is the resolved range when Found and Err is nil.
	Extent Extent
	// Err holds the extent-resolution failure, if any.
	Err error
}

// Inspect locates every declaration of every configured function in the file
// without modifying it. All declarations are resolved, mirroring the removal
// pass, so a file that passes Inspect cannot fail the rewrite on an extent.
func Inspect(path string, cfg rules.Strip) ([]FunctionStatus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	lines, _ := splitLines(string(data))

	out := make([]FunctionStatus, 0, len(cfg.Functions))
	for _, name := range cfg.Functions {
		status := FunctionStatus{Name: name}
		for from := 0; ; {
			decl := findDeclaration(lines, name, from)
			if decl < 0 {
				break
			}
			ext, extErr := findExtent(lines, name, decl)
			if extErr != nil {
				status.Found = true
				status.Err = extErr
				break
			}
			if !status.Found {
				// Report the first extent; later ones are only validated.
				status.Extent = ext
			}
			status.Found = true
			from = ext.End + 1
		}
		out = append(out, status)
	}
	return out, nil
}

// splitLines splits text into lines without terminators, remembering whether
// the text ended with a newline so joinLines can restore it exactly.
func splitLines(text string) ([]string, bool) {
	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		text = text[:len(text)-1]
	}
	if text == "" && !trailing {
		return nil, false
	}
	return strings.Split(text, "\n"), trailing
}

// joinLines is the inverse of splitLines.
func joinLines(lines []string, trailing bool) string {
	out := strings.Join(lines, "\n")
	if trailing && len(lines) > 0 {
		out += "\n"
	}
	return out
}
