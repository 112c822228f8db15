package strip

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/website-audit/auditctl/internal/rules"
)

// Removal is one audit record: where a deletion happened and what it was.
// Line numbers are 1-based and relative to the line sequence the pass saw,
// so later passes report positions in the already-shrunk file.
type Removal struct {
	Line int
	Desc string
}

// removeImports drops every line on which all substrings of some import rule co-occur.
func removeImports(lines []string, imports []rules.ImportRule) ([]string, []Removal) {
	var removed []Removal
	out := lines[:0:0]
	for i, line := range lines {
		if rule, ok := matchImport(line, imports); ok {
			removed = append(removed, Removal{Line: i + 1, Desc: rule.Contains[0] + " import"})
			continue
		}
		out = append(out, line)
	}
	return out, removed
}

func matchImport(line string, imports []rules.ImportRule) (rules.ImportRule, bool) {
	for _, rule := range imports {
		if len(rule.Contains) == 0 {
			continue
		}
		all := true
		for _, s := range rule.Contains {
			if !strings.Contains(line, s) {
				all = false
				break
			}
		}
		if all {
			return rule, true
		}
	}
	return rules.ImportRule{}, false
}

// removeFunction deletes every definition of the named function, each
// together with its contiguous preceding comment block.
func removeFunction(lines []string, name string) ([]string, []Removal, error) {
	var removed []Removal
	for {
		decl := findDeclaration(lines, name, 0)
		if decl < 0 {
			return lines, removed, nil
		}
		ext, err := findExtent(lines, name, decl)
		if err != nil {
			return lines, removed, err
		}
		removed = append(removed, Removal{
			Line: ext.Start + 1,
			Desc: fmt.Sprintf("%s function (%d lines)", name, ext.Len()),
		})
		lines = append(lines[:ext.Start:ext.Start], lines[ext.End+1:]...)
	}
}

// removeRegions drops the lines of every marker-delimited region.
// A start marker opens the region and is dropped with it; an end marker
// closes the region and is always kept.
func removeRegions(lines []string, regions []rules.RegionRule) ([]string, []Removal) {
	var removed []Removal
	out := lines[:0:0]

	skip := false
	var active rules.RegionRule
	count := 0
	startLine := 0

	flush := func() {
		if count > 0 {
			removed = append(removed, Removal{
				Line: startLine,
				Desc: fmt.Sprintf("%s region (%d lines)", active.Kind, count),
			})
		}
		count = 0
	}

	for i, line := range lines {
		if !skip {
			if r, ok := matchRegionStart(line, regions); ok {
				skip = true
				active = r
				startLine = i + 1
			}
		}
		if skip && matchesAny(line, active.End) {
			skip = false
			flush()
			out = append(out, line)
			continue
		}
		if skip {
			count++
			continue
		}
		out = append(out, line)
	}
	flush()
	return out, removed
}

func matchRegionStart(line string, regions []rules.RegionRule) (rules.RegionRule, bool) {
	for _, r := range regions {
		if matchesAny(line, r.Start) {
			return r, true
		}
	}
	return rules.RegionRule{}, false
}

func matchesAny(line string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// applyRenames drops targeted lines and rewrites matched fragments in place.
func applyRenames(lines []string, renames []rules.RenameRule) ([]string, []Removal) {
	var removed []Removal
	out := lines[:0:0]
	for i, line := range lines {
		dropped := false
		for _, r := range renames {
			if r.Drop != "" && strings.Contains(line, r.Drop) {
				removed = append(removed, Removal{Line: i + 1, Desc: "dropped " + r.Drop})
				dropped = true
				break
			}
			if r.Match != "" && strings.Contains(line, r.Match) {
				line = strings.ReplaceAll(line, r.Match, r.Replace)
			}
		}
		if !dropped {
			out = append(out, line)
		}
	}
	return out, removed
}

// removeFieldLines drops any remaining line matching one of the field patterns.
func removeFieldLines(lines []string, patterns []*regexp.Regexp) ([]string, []Removal) {
	var removed []Removal
	out := lines[:0:0]
	for i, line := range lines {
		if p := matchField(line, patterns); p != nil {
			removed = append(removed, Removal{Line: i + 1, Desc: "field line " + p.String()})
			continue
		}
		out = append(out, line)
	}
	return out, removed
}

func matchField(line string, patterns []*regexp.Regexp) *regexp.Regexp {
	for _, p := range patterns {
		if p.MatchString(line) {
			return p
		}
	}
	return nil
}

// compileFieldPatterns compiles the configured field-line expressions.
func compileFieldPatterns(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		p, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile field pattern %q: %w", expr, err)
		}
		out = append(out, p)
	}
	return out, nil
}
