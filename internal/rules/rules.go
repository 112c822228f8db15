// Package rules contains the loader and strongly typed model for auditctl rule files.
//
// A rule file describes both maintenance procedures: which files receive
// provenance source fields, and which email-generation code gets stripped from
// the analyzer. The built-in defaults reproduce the migration as it was
// originally run, so invoking auditctl without a rule file behaves exactly
// like the one-off scripts it replaces.
package rules

// RuleSet is the root of a rules.yaml document.
type RuleSet struct {
	// EnvFiles lists .env files to load before expanding $VAR references in paths.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// Inject configures the source-field injection procedure.
	Inject Inject `yaml:"inject,omitempty"`
	// Strip configures the email-code removal procedure.
	Strip Strip `yaml:"strip,omitempty"`
}

// Inject describes the source-field injection targets and formatting.
type Inject struct {
	// Indent is the indentation prefix for inserted fields.
	Indent string `yaml:"indent,omitempty"`
	// Targets lists the files to tag and the metadata to tag them with.
	Targets []InjectTarget `yaml:"targets,omitempty"`
}

// InjectTarget binds one analyzer file to its provenance metadata.
type InjectTarget struct {
	// Path is the analyzer file, relative to the working directory.
	Path string `yaml:"path"`
	// Source is the value of the inserted source field.
	Source string `yaml:"source"`
	// SourceType is the value of the inserted source_type field.
	SourceType string `yaml:"sourceType"`
}

// Strip describes everything the email-removal procedure deletes or rewrites.
type Strip struct {
	// Path is the analyzer file to rewrite.
	Path string `yaml:"path,omitempty"`
	// Imports lists import-line rules; a line matching any rule is dropped.
	Imports []ImportRule `yaml:"imports,omitempty"`
	// Functions names the functions to remove, in removal order.
	Functions []string `yaml:"functions,omitempty"`
	// Regions lists marker-delimited code regions to remove.
	Regions []RegionRule `yaml:"regions,omitempty"`
	// Renames lists targeted line drops and in-line text replacements.
	Renames []RenameRule `yaml:"renames,omitempty"`
	// FieldPatterns holds regular expressions; any remaining line matching one is dropped.
	FieldPatterns []string `yaml:"fieldPatterns,omitempty"`
}

// ImportRule drops a line when ALL of its substrings occur on that line.
type ImportRule struct {
	// Contains is the set of substrings that must co-occur.
	Contains []string `yaml:"contains"`
}

// RegionRule removes the lines between a start marker and an end marker.
// The start-marker line is removed with the region; the end-marker line is kept.
type RegionRule struct {
	// Kind is a human-readable label used in the audit report.
	Kind string `yaml:"kind,omitempty"`
	// Start lists substrings any of which opens the region.
	Start []string `yaml:"start"`
	// End lists substrings any of which closes the region.
	End []string `yaml:"end"`
}

// RenameRule either drops a specific line or rewrites a fragment inside lines.
// Exactly one of Drop or Match/Replace is set.
type RenameRule struct {
	// Drop removes any line containing this substring.
	Drop string `yaml:"drop,omitempty"`
	// Match is the fragment to replace wherever it occurs.
	Match string `yaml:"match,omitempty"`
	// Replace is the replacement text for Match.
	Replace string `yaml:"replace,omitempty"`
}

// Default returns the built-in rule set used when no rule file is given.
// It mirrors the original migration: tag the eight analyzer modules with
// source metadata, and cut the email pipeline out of analyzer.js.
func Default() *RuleSet {
	return &RuleSet{
		Inject: Inject{
			Indent: "      ",
			Targets: []InjectTarget{
				{Path: "analyzers/seo-analyzer.js", Source: "seo-analyzer", SourceType: "technical"},
				{Path: "analyzers/content-analyzer.js", Source: "content-analyzer", SourceType: "technical"},
				{Path: "analyzers/accessibility-analyzer.js", Source: "accessibility-analyzer", SourceType: "accessibility"},
				{Path: "analyzers/social-analyzer.js", Source: "social-analyzer", SourceType: "social"},
				{Path: "analyzers/desktop-visual-analyzer.js", Source: "desktop-visual-analyzer", SourceType: "visual"},
				{Path: "analyzers/mobile-visual-analyzer.js", Source: "mobile-visual-analyzer", SourceType: "visual"},
				{Path: "analyzers/unified-visual-analyzer.js", Source: "unified-visual-analyzer", SourceType: "visual"},
				{Path: "analyzers/unified-technical-analyzer.js", Source: "unified-technical-analyzer", SourceType: "technical"},
			},
		},
		Strip: Strip{
			Path: "analyzer.js",
			Imports: []ImportRule{
				{Contains: []string{"createDraft", "drafts-gmail"}},
				{Contains: []string{"sanitizeHumanizedEmail", "email-sanitizer"}},
			},
			Functions: []string{
				"extractContactInfo",
				"humanizeEmailWithAI",
				"generateCritiqueReasoning",
				"qaReviewEmail",
				"generateEmail",
			},
			Regions: []RegionRule{
				{
					Kind:  "email file writes",
					Start: []string{"// 3. Save email content", "// 3b. Save critique reasoning", "// 3c. Save QA review"},
					End:   []string{"// 4. Save client info", "// 3. Save client info"},
				},
				{
					Kind:  "email workflow",
					Start: []string{"Step 10: Generate email"},
					End:   []string{"// Add result", "const result = {"},
				},
			},
			Renames: []RenameRule{
				{Drop: "const leadGrade = result.emailQA"},
				{Match: "`lead-${leadGrade}`", Replace: "`grade-${websiteGrade}`"},
			},
			FieldPatterns: []string{
				`^\s*email: email,`,
				`^\s*emailQA:`,
				`^\s*draft:`,
				`critiqueReasoning:.*result\.|result\..*critiqueReasoning:`,
				`leadGrade: leadGrade,`,
				`extractContactInfo\(`,
				`^\s*emailWriting:`,
				`^\s*critiqueReasoning:.*true`,
				`^\s*qaReview:.*true`,
				`^\s*cheapModel:`,
			},
		},
	}
}
