package commands

import (
	"fmt"

	"github.com/moasq/geniekit/internal/changelog"
	"github.com/moasq/geniekit/internal/gitutil"
	"github.com/moasq/geniekit/internal/terminal"
	"github.com/spf13/cobra"
)

var (
	changelogDryRun  bool
	changelogNoStage bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Prepend an Unreleased section built from commits since the last tag",
	Long: "Groups commits since the last tag by conventional type (feat, fix, refactor, docs, test, perf, chore) " +
		"and inserts a ## [Unreleased] section into the changelog, then stages it.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		repo := gitutil.New(cfg.Root)

		fmt.Fprintf(out, "Updating %s...\n", cfg.ChangelogFile)

		tag, err := repo.LastTag(ctx)
		if err != nil {
			return err
		}
		if tag != "" {
			terminal.Detail(out, 3, "Last tag: "+tag)
		} else {
			terminal.Detail(out, 3, "No tags found - using all commits")
		}

		commits, err := repo.CommitsSince(ctx, tag)
		if err != nil {
			return err
		}
		if len(commits) == 0 {
			terminal.Detail(out, 3, "No new commits since last tag")
			terminal.Success(out, "CHANGELOG up to date")
			return nil
		}
		terminal.Detail(out, 3, fmt.Sprintf("Found %d commits", len(commits)))

		section := changelog.RenderSection(changelog.Group(commits))
		_, inserted, err := changelog.UpdateFile(cfg.Path(cfg.ChangelogFile), section, changelogDryRun)
		if err != nil {
			return err
		}
		if !inserted {
			terminal.Warning(out, changelog.UnreleasedMarker+" section already exists in "+cfg.ChangelogFile)
			terminal.Detail(out, 3, "Skipping CHANGELOG update (already up to date)")
			return nil
		}
		if changelogDryRun {
			fmt.Fprintf(out, "%s preview:\n", cfg.ChangelogFile)
			terminal.Divider(out)
			fmt.Fprint(out, section)
			terminal.Divider(out)
			terminal.Success(out, "CHANGELOG preview generated (dry run)")
			return nil
		}
		if changelogNoStage {
			terminal.Success(out, "CHANGELOG updated")
			return nil
		}
		if err := repo.Add(ctx, cfg.ChangelogFile); err != nil {
			return err
		}
		terminal.Success(out, "CHANGELOG updated and staged")
		return nil
	},
}

func init() {
	changelogCmd.Flags().BoolVar(&changelogDryRun, "dry-run", false, "Print the new section without writing")
	changelogCmd.Flags().BoolVar(&changelogNoStage, "no-stage", false, "Write the changelog but do not git add it")
}
