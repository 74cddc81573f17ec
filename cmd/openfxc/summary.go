package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"openfxc/internal/diag"
)

const summaryMessageWidth = 96

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	stageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Faint(true)
)

// printSummary renders the diagnostics summary to stderr. The IR
// document owns stdout, so everything human-facing goes here.
func printSummary(cmd *cobra.Command, diags []diag.Diagnostic) {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err == nil && quiet {
		return
	}
	if len(diags) == 0 {
		return
	}
	colored := colorEnabled(cmd)

	var errors, warnings int
	for _, d := range diags {
		switch d.Severity {
		case diag.SevError:
			errors++
		case diag.SevWarning:
			warnings++
		}
		label := d.Severity.String()
		stage := "[" + d.Stage.String() + "]"
		if colored {
			label = severityStyle(d.Severity).Render(label)
			stage = stageStyle.Render(stage)
		}
		fmt.Fprintf(os.Stderr, "%s %s %s %s\n",
			label, d.Code.ID(), stage, truncate(d.Message, summaryMessageWidth))
	}
	fmt.Fprintf(os.Stderr, "%d diagnostics: %d errors, %d warnings\n",
		len(diags), errors, warnings)
}

func severityStyle(sev diag.Severity) lipgloss.Style {
	switch sev {
	case diag.SevError:
		return errorStyle
	case diag.SevWarning:
		return warningStyle
	}
	return infoStyle
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
