package rules

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/website-audit/auditctl/internal/env"
)

// Load reads a rule file and returns the effective rule set.
// An empty path returns the built-in defaults. Sections left empty in the
// file fall back to their default counterparts, and $VAR references in file
// paths are expanded from the process environment merged with any envFiles.
func Load(path string) (*RuleSet, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file %q: %w", path, err)
	}

	rs := &RuleSet{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(rs); err != nil {
		return nil, fmt.Errorf("parse rule file %q: %w", path, err)
	}

	applyDefaults(rs)

	vars := env.FromOS()
	if len(rs.EnvFiles) > 0 {
		fileVars, err := env.LoadEnvFiles(filepath.Dir(path), rs.EnvFiles)
		if err != nil {
			return nil, err
		}
		vars = env.Merge(vars, fileVars)
	}
	expandPaths(rs, vars)

	return rs, nil
}

// applyDefaults fills empty sections of rs from the built-in defaults.
func applyDefaults(rs *RuleSet) {
	def := Default()
	if rs.Inject.Indent == "" {
		rs.Inject.Indent = def.Inject.Indent
	}
	if len(rs.Inject.Targets) == 0 {
		rs.Inject.Targets = def.Inject.Targets
	}
	if rs.Strip.Path == "" {
		rs.Strip.Path = def.Strip.Path
	}
	if len(rs.Strip.Imports) == 0 && len(rs.Strip.Functions) == 0 &&
		len(rs.Strip.Regions) == 0 && len(rs.Strip.Renames) == 0 &&
		len(rs.Strip.FieldPatterns) == 0 {
		// The path may have been set explicitly; only the removal lists fall back.
		path := rs.Strip.Path
		rs.Strip = def.Strip
		rs.Strip.Path = path
	}
}

// expandPaths substitutes $VAR references in every configured file path.
func expandPaths(rs *RuleSet, vars env.Vars) {
	for i := range rs.Inject.Targets {
		rs.Inject.Targets[i].Path = env.Expand(rs.Inject.Targets[i].Path, vars)
	}
	rs.Strip.Path = env.Expand(rs.Strip.Path, vars)
}
