// Package ui provides terminal styling for exopipe console output.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPass = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorInfo = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
)

// Status icons.
const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
)

const ruleWidth = 80

// Rule writes a horizontal divider.
func Rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
}

// Banner writes a framed section header.
func Banner(w io.Writer, title string) {
	Rule(w)
	fmt.Fprintln(w, HeaderStyle.Render(title))
	Rule(w)
}

// PhaseBanner announces a phase about to run.
func PhaseBanner(w io.Writer, name string) {
	fmt.Fprintln(w)
	Rule(w)
	fmt.Fprintln(w, HeaderStyle.Render("RUNNING: "+name))
	Rule(w)
	fmt.Fprintln(w)
}

// Pass writes a success line.
func Pass(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, PassStyle.Render(IconPass+" "+fmt.Sprintf(format, args...)))
}

// Warn writes a warning line.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, WarnStyle.Render(IconWarn+" "+fmt.Sprintf(format, args...)))
}

// Fail writes a failure line.
func Fail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, FailStyle.Render(IconFail+" "+fmt.Sprintf(format, args...)))
}

// StatusIcon maps a phase status label to its icon.
func StatusIcon(status string) string {
	switch {
	case status == "success":
		return PassStyle.Render(IconPass)
	case status == "failed":
		return FailStyle.Render(IconFail)
	default:
		return WarnStyle.Render(IconWarn)
	}
}
