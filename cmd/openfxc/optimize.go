package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"openfxc/internal/driver"
	"openfxc/internal/ir"
	"openfxc/internal/manifest"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [flags]",
	Short: "Optimize an IR module",
	Long: `Reads an IR document from --input (or stdin), runs the configured pass
sequence and writes the optimized module to stdout. Diagnostics travel
inside the module; only a document parse failure or an I/O, manifest
or flag error exits non-zero.`,
	RunE: optimizeExecution,
}

func init() {
	optimizeCmd.Flags().String("passes", "", "comma-separated pass list (default: constfold, algebraic, copyprop, cse, dce, component-dce)")
	optimizeCmd.Flags().String("profile", "", "profile override, applied before passes run")
	optimizeCmd.Flags().String("input", "", "input path; empty or - reads stdin")
	optimizeCmd.Flags().String("emit", "json", "output form (json|text)")
	optimizeCmd.Flags().String("cache-dir", "", "content-addressed result cache directory")
	optimizeCmd.Flags().Bool("timings", false, "print per-pass wall times to stderr")
}

func optimizeExecution(cmd *cobra.Command, args []string) error {
	passes, err := cmd.Flags().GetString("passes")
	if err != nil {
		return err
	}
	profile, err := cmd.Flags().GetString("profile")
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
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}

	if mf, found, err := manifest.Load("."); err != nil {
		return err
	} else if found {
		if passes == "" {
			passes = mf.Config.Pipeline.Passes
		}
		if profile == "" {
			profile = mf.Config.Pipeline.Profile
		}
		if cacheDir == "" {
			cacheDir = mf.Config.Cache.Dir
		}
	}

	raw, err := readAllInput(input)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	var key driver.Digest
	if cacheDir != "" {
		cache, err = driver.OpenDiskCache(cacheDir)
		if err != nil {
			return err
		}
		key = driver.CacheKey(raw, passes, profile)
		if cached, hit, err := cache.Get(key); err == nil && hit {
			return emitModule(cmd, cached, emit)
		}
	}

	m, err := ir.DecodeModule(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	res := driver.Optimize(m, driver.OptimizeOptions{Passes: passes, Profile: profile})

	if cache != nil {
		// Best effort: a cache write failure never fails the pipeline.
		_ = cache.Put(key, passes, profile, res.Module)
	}
	if timings {
		for _, pt := range res.Timings {
			fmt.Fprintf(os.Stderr, "pass %-14s %s\n", pt.Name, pt.Duration)
		}
	}
	return emitModule(cmd, res.Module, emit)
}

func readAllInput(path string) ([]byte, error) {
	r, err := driver.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return buf.Bytes(), nil
}

func emitModule(cmd *cobra.Command, m *ir.Module, emit string) error {
	if emit == "text" {
		fmt.Fprint(os.Stdout, ir.Print(m))
	} else if err := driver.WriteModule(os.Stdout, m); err != nil {
		return err
	}
	printSummary(cmd, m.Diagnostics)
	return nil
}
