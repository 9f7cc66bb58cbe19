package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/moasq/geniekit/internal/report"
	"github.com/moasq/geniekit/internal/terminal"
	"github.com/moasq/geniekit/internal/xref"
	"github.com/spf13/cobra"
)

var (
	xrefExclude []string
	xrefFormat  string
	xrefWatch   bool
)

var xrefCmd = &cobra.Command{
	Use:     "xref",
	Aliases: []string{"validate-refs"},
	Short:   "Validate @ cross-references in markdown",
	Long: "Scans every markdown file under the root for @ references (@file.md, @dir/) and checks that each one " +
		"exists relative to the root. Emails, versions, package names, handles and code blocks are ignored. " +
		"Exits 1 when a reference is broken.",
	Args: cobra.NoArgs,
	RunE: runXref,
}

func init() {
	xrefCmd.Flags().StringSliceVar(&xrefExclude, "exclude", nil, "Additional directory names or root-relative paths to skip")
	xrefCmd.Flags().StringVar(&xrefFormat, "format", "", "Report format: text, json or yaml (default from config, else text)")
	xrefCmd.Flags().BoolVar(&xrefWatch, "watch", false, "Re-validate whenever files under the root change")
}

func runXref(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := cfg.Format
	if xrefFormat != "" {
		format = xrefFormat
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	opts := xref.Options{
		Root:    cfg.Root,
		Exclude: append(append([]string{}, cfg.Exclude...), xrefExclude...),
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if xrefWatch {
		return watchXref(cmd.Context(), out, errOut, opts, f)
	}
	return validateXref(out, errOut, opts, f)
}

func validateXref(out, errOut io.Writer, opts xref.Options, f report.Format) error {
	if f == report.FormatText {
		fmt.Fprintln(out, "Validating @ cross-references...")
	}
	res, err := xref.Validate(opts)
	if err != nil {
		return err
	}
	if err := report.Write(out, errOut, res, f); err != nil {
		return err
	}
	if res.HasViolations() {
		return ErrReported
	}
	return nil
}

func watchXref(ctx context.Context, out, errOut io.Writer, opts xref.Options, f report.Format) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var last error
	err := xref.Watch(ctx, opts, xref.DefaultDebounce, func(res xref.Result, err error) {
		if err != nil {
			terminal.Warning(errOut, err.Error())
			last = err
			return
		}
		if f == report.FormatText {
			terminal.Divider(out)
			fmt.Fprintln(out, "Validating @ cross-references...")
		}
		if werr := report.Write(out, errOut, res, f); werr != nil {
			terminal.Warning(errOut, werr.Error())
		}
		last = nil
		if res.HasViolations() {
			last = ErrReported
		}
		if f == report.FormatText {
			terminal.Info(out, "Watching for changes... (Press Ctrl+C to exit)")
		}
	})
	if err != nil {
		return err
	}
	return last
}
