package commands

import (
	"errors"

	"github.com/moasq/geniekit/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// ErrReported means a check failed and its findings were already printed.
// main exits non-zero without printing it again.
var ErrReported = errors.New("check failed")

var rootCmd = &cobra.Command{
	Use:   "geniekit",
	Short: "Maintenance tools for Genie agent repositories",
	Long: "geniekit validates and maintains a Genie documentation tree: @ cross-references, " +
		"personal files kept out of commits, STATE.md version metadata and the changelog.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Repository root (default: nearest directory with .genie/, else the working directory)")

	rootCmd.AddCommand(xrefCmd)
	rootCmd.AddCommand(userfilesCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(changelogCmd)
	rootCmd.AddCommand(precommitCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// rootFlag holds the --root flag value.
var rootFlag string

func loadConfig() (*config.Config, error) {
	return config.Load(rootFlag)
}
