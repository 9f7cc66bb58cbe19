package commands

import (
	"context"
	"io"

	"github.com/moasq/geniekit/internal/config"
	"github.com/moasq/geniekit/internal/gitutil"
	"github.com/moasq/geniekit/internal/terminal"
	"github.com/moasq/geniekit/internal/userfiles"
	"github.com/spf13/cobra"
)

var userfilesCmd = &cobra.Command{
	Use:     "userfiles",
	Aliases: []string{"check-staged"},
	Short:   "Block commits that stage personal Genie files",
	Long: "Fails when a personal, per-user file (by default .genie/TODO.md and .genie/USERCONTEXT.md) " +
		"is staged for commit. Intended for the pre-commit hook.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return checkUserFiles(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
	},
}

func checkUserFiles(ctx context.Context, out, errOut io.Writer, cfg *config.Config) error {
	res, err := userfiles.Check(ctx, gitutil.New(cfg.Root), cfg.ProtectedFiles)
	if err != nil {
		// Outside a repository there is nothing staged to protect.
		terminal.Warning(errOut, err.Error())
		return nil
	}
	if res.Staged == 0 {
		return nil
	}
	userfiles.WriteReport(out, errOut, res, cfg.ProtectedFiles)
	if res.HasViolations() {
		return ErrReported
	}
	return nil
}
