// Package report renders cross-reference validation results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/moasq/geniekit/internal/terminal"
	"github.com/moasq/geniekit/internal/xref"
	"gopkg.in/yaml.v3"
)

// Format selects how a result is rendered.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FixHint closes the text report when references are broken.
const FixHint = "Fix broken references before committing."

// ParseFormat validates a --format value. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want text, json or yaml)", s)
	}
}

// Write renders res. Text output puts the summary on out and each violation
// on errOut; structured formats write a single document to out.
func Write(out, errOut io.Writer, res xref.Result, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		writeText(out, errOut, res)
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeText(out, errOut io.Writer, res xref.Result) {
	fmt.Fprintf(out, "   Found %d markdown files to check\n", res.FilesScanned)
	for _, w := range res.Warnings {
		terminal.Warning(errOut, "Warning: "+w)
	}

	if !res.HasViolations() {
		terminal.Success(out, "All @ cross-references valid")
		return
	}

	fmt.Fprintln(errOut)
	terminal.Error(errOut, fmt.Sprintf("Found %d broken @ reference(s):", len(res.Violations)))
	fmt.Fprintln(errOut)
	for _, v := range res.Violations {
		terminal.Detail(errOut, 3, terminal.RenderBold(fmt.Sprintf("%s:%d", v.Source, v.Line)))
		terminal.Detail(errOut, 6, terminal.RenderAccent("@"+v.Reference))
		terminal.Detail(errOut, 6, terminal.RenderFail(v.Message))
		fmt.Fprintln(errOut)
	}
	fmt.Fprintln(errOut, FixHint)
}
