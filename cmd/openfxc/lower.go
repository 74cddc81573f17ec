package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"openfxc/internal/driver"
	"openfxc/internal/ir"
	"openfxc/internal/manifest"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags]",
	Short: "Lower a semantic-model document to IR",
	Long: `Reads a semantic-model document from --input (or stdin) and writes the
lowered IR module to stdout. Diagnostics travel inside the module; only
a document parse failure or an I/O, manifest or flag error exits non-zero.`,
	RunE: lowerExecution,
}

func init() {
	lowerCmd.Flags().String("profile", "", "profile override (e.g. ps_2_0)")
	lowerCmd.Flags().String("entry", "", "entry-point override (case-insensitive)")
	lowerCmd.Flags().String("input", "", "input path; empty or - reads stdin")
	lowerCmd.Flags().String("emit", "json", "output form (json|text)")
}

func lowerExecution(cmd *cobra.Command, args []string) error {
	profile, err := cmd.Flags().GetString("profile")
	if err != nil {
		return err
	}
	entry, err := cmd.Flags().GetString("entry")
	if err != nil {
		return err
	}
	input, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	emit, err := cmd.Flags().GetString("emit")
	if err != nil {
		return err
	}
	if emit != "json" && emit != "text" {
		return fmt.Errorf("unknown --emit form %q", emit)
	}

	if profile == "" {
		if mf, found, err := manifest.Load("."); err != nil {
			return err
		} else if found {
			profile = mf.Config.Pipeline.Profile
		}
	}

	model, err := driver.ReadSemantic(input)
	if err != nil {
		return err
	}
	m := driver.Lower(model, driver.LowerOptions{Profile: profile, Entry: entry})

	if emit == "text" {
		fmt.Fprint(os.Stdout, ir.Print(m))
	} else if err := driver.WriteModule(os.Stdout, m); err != nil {
		return err
	}
	printSummary(cmd, m.Diagnostics)
	return nil
}
