// Package agenttree maps the agents under .genie/agents into a hierarchy of
// orchestrators, neurons and git workflows, with the delegations and @
// references each agent makes.
package agenttree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/moasq/geniekit/internal/xref"
)

// Category places an agent in the tree.
type Category string

// Categories in render order.
const (
	Universal    Category = "universal"
	Orchestrator Category = "orchestrator"
	CodeNeuron   Category = "code"
	GitWorkflow  Category = "git-workflow"
	CreateNeuron Category = "create"
)

// agentRefPrefix is the root-relative prefix of references to other agents.
const agentRefPrefix = ".genie/agents/"

var delegationRE = regexp.MustCompile(`(?s)mcp__genie__run.*?agent=["']([^"']+)["']`)

// Agent is one agent definition file.
type Agent struct {
	Name       string   `json:"name" yaml:"name"`
	Path       string   `json:"path" yaml:"path"`
	Category   Category `json:"category" yaml:"category"`
	Delegates  []string `json:"delegates,omitempty" yaml:"delegates,omitempty"`
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// Tree is the scanned agent hierarchy.
type Tree struct {
	Root     string   `json:"root" yaml:"root"`
	Agents   []Agent  `json:"agents" yaml:"agents"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ByCategory returns the agents in c sorted by name.
func (t *Tree) ByCategory(c Category) []Agent {
	var out []Agent
	for _, a := range t.Agents {
		if a.Category == c {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns how many agents fall in c.
func (t *Tree) Count(c Category) int {
	return len(t.ByCategory(c))
}

// Scan builds the tree for the agents directory agentsDir (relative to root
// unless absolute). A missing agents directory yields an empty tree.
func Scan(root, agentsDir string) (*Tree, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	dir := agentsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, filepath.FromSlash(dir))
	}

	tree := &Tree{Root: root, Agents: []Agent{}}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return tree, nil
	}

	files, err := xref.Discover(dir, xref.NewExclusionSet())
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		rel, err := filepath.Rel(dir, file)
		if err != nil {
			return nil, err
		}
		category, name, ok := Categorize(filepath.ToSlash(rel))
		if !ok {
			continue
		}
		relRoot, err := filepath.Rel(root, file)
		if err != nil {
			return nil, err
		}
		agent := Agent{Name: name, Path: filepath.ToSlash(relRoot), Category: category}

		data, err := os.ReadFile(file)
		if err != nil {
			tree.Warnings = append(tree.Warnings, fmt.Sprintf("skipping %s: %v", agent.Path, err))
			continue
		}
		content := string(data)
		agent.Delegates = Delegations(content)
		agent.References = References(agent.Path, content)
		tree.Agents = append(tree.Agents, agent)
	}
	return tree, nil
}

// Categorize places a file by its slash-separated path inside the agents
// directory. Files outside the known layout report false.
func Categorize(rel string) (Category, string, bool) {
	if !strings.EqualFold(path.Ext(rel), ".md") {
		return "", "", false
	}
	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	dir := path.Dir(rel)

	switch {
	case dir == "neurons":
		return Universal, name, true
	case rel == "code/code.md":
		return Orchestrator, "code", true
	case rel == "create/create.md":
		return Orchestrator, "create", true
	case dir == "code/neurons":
		return CodeNeuron, name, true
	case rel == "code/neurons/git/git.md":
		return CodeNeuron, "git", true
	case dir == "code/neurons/git/workflows":
		return GitWorkflow, name, true
	case dir == "create/neurons":
		return CreateNeuron, name, true
	}
	return "", "", false
}

// Delegations returns the distinct agent names passed to mcp__genie__run,
// sorted.
func Delegations(content string) []string {
	var names []string
	for _, m := range delegationRE.FindAllStringSubmatch(content, -1) {
		names = append(names, m[1])
	}
	return sortedUnique(names)
}

// References returns the distinct names of agents linked with
// @.genie/agents/...md outside code, sorted.
func References(source, content string) []string {
	var names []string
	for _, c := range xref.Extract(source, content) {
		if !strings.HasPrefix(c.Token, agentRefPrefix) || !strings.HasSuffix(c.Token, ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(path.Base(c.Token), ".md"))
	}
	return sortedUnique(names)
}

func sortedUnique(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	slices.Sort(in)
	return slices.Compact(in)
}
