package commands

import (
	"errors"

	"github.com/moasq/geniekit/internal/report"
	"github.com/moasq/geniekit/internal/xref"
	"github.com/spf13/cobra"
)

var precommitCmd = &cobra.Command{
	Use:   "precommit",
	Short: "Run the pre-commit checks (userfiles, then xref)",
	Long:  "Runs every pre-commit validation and fails if any of them fails. All checks run even after a failure.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

		failed := false
		if err := checkUserFiles(cmd.Context(), out, errOut, cfg); err != nil {
			if !errors.Is(err, ErrReported) {
				return err
			}
			failed = true
		}
		if err := validateXref(out, errOut, xref.Options{Root: cfg.Root, Exclude: cfg.Exclude}, report.FormatText); err != nil {
			if !errors.Is(err, ErrReported) {
				return err
			}
			failed = true
		}
		if failed {
			return ErrReported
		}
		return nil
	},
}
