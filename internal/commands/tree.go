package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/moasq/geniekit/internal/agenttree"
	"github.com/moasq/geniekit/internal/terminal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	treeOutput string
	treeFormat string
	treeDryRun bool
	treePrint  bool
)

var treeCmd = &cobra.Command{
	Use:     "tree",
	Aliases: []string{"agent-tree"},
	Short:   "Generate the agent neural tree from .genie/agents",
	Long: "Scans the agents directory, groups agents into universal neurons, orchestrators, template neurons and git " +
		"workflows, records each agent's mcp__genie__run delegations and @.genie/agents references, and writes a " +
		"markdown tree (default .genie/reports/agent-neural-tree.md). json and yaml formats print the scan to stdout instead.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

		tree, err := agenttree.Scan(cfg.Root, cfg.AgentsDir)
		if err != nil {
			return err
		}
		for _, w := range tree.Warnings {
			terminal.Warning(errOut, "Warning: "+w)
		}

		switch treeFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(tree)
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("failed to encode yaml tree: %w", err)
			}
			return enc.Close()
		case "", "markdown":
		default:
			return fmt.Errorf("unsupported format %q (want markdown, json or yaml)", treeFormat)
		}

		fmt.Fprintf(out, "Scanning %s structure...\n", cfg.AgentsDir)
		printTreeCounts(out, tree)

		rendered := agenttree.Render(tree)
		output := cfg.TreeOutput
		if treeOutput != "" {
			output = treeOutput
		}
		if !treeDryRun {
			if err := agenttree.WriteFile(cfg.Path(output), rendered); err != nil {
				return err
			}
			terminal.Success(out, "Agent neural tree generated: "+output)
		}
		if treeDryRun || treePrint {
			terminal.Divider(out)
			fmt.Fprint(out, rendered)
		}
		return nil
	},
}

func printTreeCounts(out io.Writer, tree *agenttree.Tree) {
	terminal.Detail(out, 3, fmt.Sprintf("Found %d agents total", len(tree.Agents)))
	terminal.Detail(out, 3, fmt.Sprintf("- Universal neurons: %d", tree.Count(agenttree.Universal)))
	terminal.Detail(out, 3, fmt.Sprintf("- Code neurons: %d", tree.Count(agenttree.CodeNeuron)))
	terminal.Detail(out, 3, fmt.Sprintf("- Git workflows: %d", tree.Count(agenttree.GitWorkflow)))
	terminal.Detail(out, 3, fmt.Sprintf("- Create neurons: %d", tree.Count(agenttree.CreateNeuron)))
	terminal.Detail(out, 3, fmt.Sprintf("- Orchestrators: %d", tree.Count(agenttree.Orchestrator)))
}

func init() {
	treeCmd.Flags().StringVar(&treeOutput, "output", "", "Root-relative path for the markdown tree (default from config)")
	treeCmd.Flags().StringVar(&treeFormat, "format", "markdown", "Output format: markdown, json or yaml")
	treeCmd.Flags().BoolVar(&treeDryRun, "dry-run", false, "Print the tree without writing the file")
	treeCmd.Flags().BoolVar(&treePrint, "print", false, "Also print the tree after writing it")
}
