package commands

import (
	"fmt"

	"github.com/moasq/geniekit/internal/gitutil"
	"github.com/moasq/geniekit/internal/statefile"
	"github.com/moasq/geniekit/internal/terminal"
	"github.com/spf13/cobra"
)

var (
	stateDryRun   bool
	stateNoCommit bool
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Sync last_version in STATE.md with package.json",
	Long: "Reads the version from package.json, rewrites the last_version field of the state file, then stages and " +
		"commits it with [skip ci]. Meant for the post-merge hook.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
		repo := gitutil.New(cfg.Root)

		fmt.Fprintf(out, "Updating %s metadata...\n", cfg.StateFile)

		version, err := statefile.PackageVersion(cfg.Path(cfg.PackageFile))
		if err != nil {
			return err
		}
		commit, err := repo.ShortHead(ctx)
		if err != nil {
			terminal.Warning(errOut, err.Error())
			commit = "unknown"
		}
		terminal.Detail(out, 3, "Version: "+version)
		terminal.Detail(out, 3, "Commit:  "+commit)

		changed, err := statefile.Update(cfg.Path(cfg.StateFile), version, stateDryRun)
		if err != nil {
			return err
		}
		if !changed {
			terminal.Success(out, fmt.Sprintf("%s already up to date (version: %s)", cfg.StateFile, version))
			return nil
		}
		if stateDryRun {
			terminal.Info(out, fmt.Sprintf("Dry run: would update %s to %s and commit with [skip ci]", cfg.StateFile, version))
			return nil
		}
		terminal.Success(out, "Updated "+cfg.StateFile+" metadata")
		if stateNoCommit {
			return nil
		}

		if err := repo.Add(ctx, cfg.StateFile); err != nil {
			return err
		}
		msg := statefile.CommitMessage(version)
		if err := repo.Commit(ctx, msg); err != nil {
			return err
		}
		terminal.Success(out, "Auto-committed: "+msg)
		return nil
	},
}

func init() {
	stateCmd.Flags().BoolVar(&stateDryRun, "dry-run", false, "Show what would change without writing or committing")
	stateCmd.Flags().BoolVar(&stateNoCommit, "no-commit", false, "Write the file but do not stage or commit it")
}
