package cli

import (
	envparse "github.com/caarlos0/env/v11"

	"github.com/website-audit/auditctl/internal/logging"
)

// baseEnv defines root CLI defaults sourced from AUDITCTL_* env vars.
type baseEnv struct {
	// Rules is the rule file path from AUDITCTL_RULES.
	Rules string `env:"AUDITCTL_RULES"`
	// Dir is the working directory override from AUDITCTL_DIR.
	Dir string `env:"AUDITCTL_DIR"`
	// File is the strip target override from AUDITCTL_FILE.
	File string `env:"AUDITCTL_FILE"`
	// LogLevel is the logging level from AUDITCTL_LOG_LEVEL.
	LogLevel string `env:"AUDITCTL_LOG_LEVEL"`
}

// applyBaseEnv overlays AUDITCTL_* environment values onto flag defaults.
func applyBaseEnv(opts *Options) {
	var base baseEnv
	if err := envparse.Parse(&base); err != nil {
		return
	}
	if base.Rules != "" {
		opts.RulesPath = base.Rules
	}
	if base.Dir != "" {
		opts.Dir = base.Dir
	}
	if base.File != "" {
		opts.File = base.File
	}
	if base.LogLevel != "" {
		opts.LogLevel = logging.ParseLevel(base.LogLevel)
	}
}
