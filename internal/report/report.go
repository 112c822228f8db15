// Package report renders end-of-run summaries for the maintenance commands.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/website-audit/auditctl/internal/inject"
	"github.com/website-audit/auditctl/internal/strip"
)

// maxListedRemovals caps how many removed components a strip summary lists.
const maxListedRemovals = 10

const rule = "==============================================="

// WriteStripSummary writes the human-readable summary of a strip run:
// line counts, the removal percentage, and the first removed components.
func WriteStripSummary(w io.Writer, s *strip.Summary) {
	removed := s.Before - s.After

	percent := 0.0
	if s.Before > 0 {
		percent = float64(removed) / float64(s.Before) * 100
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "SUMMARY: %s\n", s.Path)
	fmt.Fprintf(w, "   Original lines: %d\n", s.Before)
	fmt.Fprintf(w, "   Final lines: %d\n", s.After)
	fmt.Fprintf(w, "   Removed: %d lines (%.1f%%)\n", removed, percent)
	fmt.Fprintln(w, rule)

	if len(s.Removals) == 0 {
		return
	}
	fmt.Fprintln(w, "Removed components:")
	for i, r := range s.Removals {
		if i == maxListedRemovals {
			fmt.Fprintf(w, "  ... and %d more\n", len(s.Removals)-maxListedRemovals)
			break
		}
		fmt.Fprintf(w, "  - Line %d: %s\n", r.Line, r.Desc)
	}
}

// WriteInjectSummary writes per-target outcomes and totals for an inject run.
func WriteInjectSummary(w io.Writer, rep *inject.Report) {
	for _, res := range rep.Results {
		line := fmt.Sprintf("%s: %s", res.Target.Path, res.Status)
		if res.Err != nil {
			line += " (" + res.Err.Error() + ")"
		}
		fmt.Fprintln(w, line)
	}

	parts := []string{
		fmt.Sprintf("%d updated", rep.Count(inject.StatusUpdated)),
		fmt.Sprintf("%d unchanged", rep.Count(inject.StatusNoChanges)),
		fmt.Sprintf("%d skipped", rep.Count(inject.StatusMissing)+rep.Count(inject.StatusAlreadyTagged)),
	}
	if failed := rep.Count(inject.StatusFailed); failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	fmt.Fprintf(w, "Done: %s\n", strings.Join(parts, ", "))
}
