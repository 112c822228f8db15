package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/website-audit/auditctl/internal/logging"
	"github.com/website-audit/auditctl/internal/report"
	"github.com/website-audit/auditctl/internal/rules"
	"github.com/website-audit/auditctl/internal/strip"
)

// newStripCommand creates the "strip" subcommand that removes email code from the analyzer.
func newStripCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip",
		Short: "Strip email-generation code out of the analyzer source",
		Long: "strip rewrites the analyzer file in place: email imports, the email " +
			"functions with their doc blocks, marker-delimited email regions, and " +
			"leftover email fields are all removed. The file is rewritten without a " +
			"backup; commit or copy it first.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			rs, err := rules.Load(opts.RulesPath)
			if err != nil {
				return err
			}

			path := rs.Strip.Path
			if opts.File != "" {
				path = opts.File
			}
			if opts.Dir != "" && !filepath.IsAbs(path) {
				path = filepath.Join(opts.Dir, path)
			}

			summary, err := strip.Run(path, rs.Strip, logging.NewWriter(logger), logger)
			if err != nil {
				return err
			}

			report.WriteStripSummary(os.Stdout, summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", opts.File, "Analyzer file to rewrite (overrides the rule file)")
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", opts.Dir, "Directory the file path is relative to")

	return cmd
}
