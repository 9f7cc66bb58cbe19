package agenttree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Render produces the markdown agent tree.
func Render(t *Tree) string {
	var lines []string
	add := func(s ...string) { lines = append(lines, s...) }

	add("# Genie Agent Neural Tree", "",
		"**Generated:** Automatic scan of `.genie/agents/`", "",
		"---", "")

	add("## Universal Neurons (Shared Across All Templates)", "",
		fmt.Sprintf("**Count:** %d", t.Count(Universal)), "")
	for _, a := range t.ByCategory(Universal) {
		add(entry("###", a)...)
	}

	add("---", "", "## Code Template", "")
	add(orchestrator(t, "code")...)
	add(fmt.Sprintf("### Code-Specific Neurons (%d)", t.Count(CodeNeuron)), "")
	for _, a := range t.ByCategory(CodeNeuron) {
		add(entry("####", a)...)
	}
	if n := t.Count(GitWorkflow); n > 0 {
		add(fmt.Sprintf("### Git Workflows (%d)", n), "")
		for _, a := range t.ByCategory(GitWorkflow) {
			add(entry("####", a)...)
		}
	}

	add("---", "", "## Create Template", "")
	add(orchestrator(t, "create")...)
	if n := t.Count(CreateNeuron); n > 0 {
		add(fmt.Sprintf("### Create-Specific Neurons (%d)", n), "")
		for _, a := range t.ByCategory(CreateNeuron) {
			add(entry("####", a)...)
		}
	}

	add("---", "", "## Summary", "",
		fmt.Sprintf("- **Universal neurons:** %d", t.Count(Universal)),
		fmt.Sprintf("- **Code neurons:** %d", t.Count(CodeNeuron)),
		fmt.Sprintf("- **Git workflows:** %d", t.Count(GitWorkflow)),
		fmt.Sprintf("- **Create neurons:** %d", t.Count(CreateNeuron)),
		fmt.Sprintf("- **Orchestrators:** %d", t.Count(Orchestrator)),
		fmt.Sprintf("- **Total agents:** %d", len(t.Agents)),
		"")

	return strings.Join(lines, "\n")
}

func entry(heading string, a Agent) []string {
	out := []string{heading + " " + a.Name, "- **Path:** `" + a.Path + "`"}
	if len(a.Delegates) > 0 {
		out = append(out, "- **Delegates to:** "+codeList(a.Delegates))
	}
	if len(a.References) > 0 {
		out = append(out, "- **References:** "+codeList(a.References))
	}
	return append(out, "")
}

func orchestrator(t *Tree, name string) []string {
	out := []string{"### Orchestrator"}
	for _, a := range t.ByCategory(Orchestrator) {
		if a.Name != name {
			continue
		}
		out = append(out, fmt.Sprintf("- **%s** (`%s`)", a.Name, a.Path))
		if len(a.Delegates) > 0 {
			out = append(out, "  - Delegates to: "+codeList(a.Delegates))
		}
		if len(a.References) > 0 {
			out = append(out, "  - References: "+codeList(a.References))
		}
	}
	return append(out, "")
}

func codeList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}

// WriteFile writes the rendered tree to path, creating parent directories.
func WriteFile(path, rendered string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write agent tree: %w", err)
	}
	return nil
}
