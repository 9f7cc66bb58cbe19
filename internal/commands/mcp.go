package commands

import (
	"github.com/moasq/geniekit/internal/xrefserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:    "mcp",
	Short:  "Run MCP servers (used by agent runtimes)",
	Hidden: true,
}

var mcpXrefCmd = &cobra.Command{
	Use:   "xref",
	Short: "Run the cross-reference MCP server",
	Long:  "Starts the cross-reference MCP server over stdio. Agents call validate_references to check @ references after editing markdown.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return xrefserver.Run(cmd.Context(), Version, cfg.Root, cfg.Exclude)
	},
}

func init() {
	mcpCmd.AddCommand(mcpXrefCmd)
}
