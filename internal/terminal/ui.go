// Package terminal renders geniekit status output.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Semantic colors, adaptive to light and dark terminals.
var (
	ColorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	failStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	accentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

// Status icons.
const (
	IconPass = "✓"
	IconWarn = "!"
	IconFail = "✗"
	IconInfo = "i"
)

var colorEnabled bool

func init() {
	SetColor(ShouldUseColor())
}

// ShouldUseColor follows the NO_COLOR and CLICOLOR conventions, falling back
// to whether stdout is a terminal.
func ShouldUseColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if v := os.Getenv("CLICOLOR_FORCE"); v != "" && v != "0" {
		return true
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// SetColor forces styling on or off. Forcing it on also lifts lipgloss out
// of its plain-text profile when stdout is not a terminal.
func SetColor(enabled bool) {
	colorEnabled = enabled
	if enabled && lipgloss.ColorProfile() == termenv.Ascii {
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// RenderPass renders s in the pass color.
func RenderPass(s string) string { return render(passStyle, s) }

// RenderWarn renders s in the warning color.
func RenderWarn(s string) string { return render(warnStyle, s) }

// RenderFail renders s in the failure color.
func RenderFail(s string) string { return render(failStyle, s) }

// RenderMuted renders s dimmed.
func RenderMuted(s string) string { return render(mutedStyle, s) }

// RenderAccent renders s in the accent color.
func RenderAccent(s string) string { return render(accentStyle, s) }

// RenderBold renders s in bold.
func RenderBold(s string) string { return render(boldStyle, s) }

// Success prints a green success message.
func Success(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", RenderPass(IconPass), msg)
}

// Error prints a red error message.
func Error(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", RenderFail(IconFail), msg)
}

// Info prints an info message.
func Info(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", RenderAccent(IconInfo), msg)
}

// Warning prints a yellow warning message.
func Warning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", RenderWarn(IconWarn), msg)
}

// Detail prints an indented detail line.
func Detail(w io.Writer, indent int, text string) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), text)
}

// Divider prints a horizontal line.
func Divider(w io.Writer) {
	fmt.Fprintln(w, RenderMuted(strings.Repeat("─", 60)))
}
