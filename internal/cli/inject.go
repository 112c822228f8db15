package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/website-audit/auditctl/internal/inject"
	"github.com/website-audit/auditctl/internal/logging"
	"github.com/website-audit/auditctl/internal/report"
	"github.com/website-audit/auditctl/internal/rules"
)

// newInjectCommand creates the "inject" subcommand that adds source fields to analyzer files.
func newInjectCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Add source and source_type fields to analyzer issue blocks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			rs, err := rules.Load(opts.RulesPath)
			if err != nil {
				return err
			}

			rep := inject.Run(opts.Dir, rs.Inject, logging.NewWriter(logger), logger)
			report.WriteInjectSummary(os.Stdout, rep)

			if failed := rep.Count(inject.StatusFailed); failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(rep.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", opts.Dir, "Directory containing the analyzer sources")

	return cmd
}
