package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/website-audit/auditctl/internal/rules"
	"github.com/website-audit/auditctl/internal/strip"
)

// newCheckCommand creates the "check" subcommand that runs preflight checks
// for both transforms without writing anything.
func newCheckCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate rule files and target sources without modifying them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			rs, err := rules.Load(opts.RulesPath)
			if err != nil {
				return err
			}

			var problems []string

			for _, target := range rs.Inject.Targets {
				path := target.Path
				if opts.Dir != "" && !filepath.IsAbs(path) {
					path = filepath.Join(opts.Dir, path)
				}
				if _, err := os.Stat(path); err != nil {
					logger.Warn("check: inject target missing", "path", path)
					continue
				}
				logger.Info("check ok: inject target", "path", path)
			}

			stripPath := rs.Strip.Path
			if opts.File != "" {
				stripPath = opts.File
			}
			if opts.Dir != "" && !filepath.IsAbs(stripPath) {
				stripPath = filepath.Join(opts.Dir, stripPath)
			}

			statuses, err := strip.Inspect(stripPath, rs.Strip)
			if err != nil {
				problems = append(problems, err.Error())
			}
			for _, status := range statuses {
				switch {
				case status.Err != nil:
					logger.Error("check failed: unbalanced function", "function", status.Name, "error", status.Err)
					problems = append(problems, status.Err.Error())
				case !status.Found:
					logger.Info("check: function not present (no-op)", "function", status.Name)
				default:
					logger.Info("check ok: function extent resolved",
						"function", status.Name,
						"start", status.Extent.Start+1,
						"end", status.Extent.End+1,
						"lines", status.Extent.Len())
				}
			}

			if len(problems) > 0 {
				return fmt.Errorf("preflight checks failed: %s", strings.Join(problems, "; "))
			}

			logger.Info("preflight checks completed successfully")
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", opts.Dir, "Directory containing the sources")
	cmd.Flags().StringVarP(&opts.File, "file", "f", opts.File, "Analyzer file to inspect (overrides the rule file)")

	return cmd
}
