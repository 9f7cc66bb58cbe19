package xrefserver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/moasq/geniekit/internal/xref"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type handler struct {
	root    string
	exclude []string
}

// validateReferencesInput is the input for the validate_references tool.
type validateReferencesInput struct {
	Root    string   `json:"root,omitempty" jsonschema:"Repository root to validate. Relative paths resolve against the server's root. Defaults to the server's root."`
	Exclude []string `json:"exclude,omitempty" jsonschema:"Extra directory names or root-relative directory paths to skip, added to the defaults"`
}

// validateReferencesOutput mirrors xref.Result plus a summary line.
type validateReferencesOutput struct {
	Valid             bool             `json:"valid"`
	Root              string           `json:"root"`
	FilesScanned      int              `json:"files_scanned"`
	ReferencesChecked int              `json:"references_checked"`
	Violations        []xref.Violation `json:"violations"`
	Warnings          []string         `json:"warnings,omitempty"`
	Message           string           `json:"message"`
}

func (h *handler) validateReferences(ctx context.Context, req *mcp.CallToolRequest, input validateReferencesInput) (*mcp.CallToolResult, validateReferencesOutput, error) {
	root := h.root
	if input.Root != "" {
		root = input.Root
		if !filepath.IsAbs(root) {
			root = filepath.Join(h.root, root)
		}
	}

	exclude := append([]string{}, h.exclude...)
	if len(exclude) == 0 {
		exclude = append(exclude, xref.DefaultExclude...)
	}
	exclude = append(exclude, input.Exclude...)

	res, err := xref.Validate(xref.Options{Root: root, Exclude: exclude})
	if err != nil {
		return nil, validateReferencesOutput{}, err
	}

	return nil, validateReferencesOutput{
		Valid:             !res.HasViolations(),
		Root:              res.Root,
		FilesScanned:      res.FilesScanned,
		ReferencesChecked: res.ReferencesChecked,
		Violations:        res.Violations,
		Warnings:          res.Warnings,
		Message:           summarize(res),
	}, nil
}

func summarize(res xref.Result) string {
	if !res.HasViolations() {
		return fmt.Sprintf("All @ cross-references valid (%d files, %d references checked).", res.FilesScanned, res.ReferencesChecked)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d broken @ reference(s) in %d files:\n", len(res.Violations), res.FilesScanned)
	for _, v := range res.Violations {
		fmt.Fprintf(&b, "- %s\n", v)
	}
	return b.String()
}
