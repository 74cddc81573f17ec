package driver

import (
	"context"
	"path/filepath"
	"testing"
)

func TestLowerFilesBatch(t *testing.T) {
	paths := []string{
		filepath.Join("testdata", "semantic", "scale.json"),
		filepath.Join("testdata", "semantic", "passthrough.json"),
	}
	results, err := LowerFiles(context.Background(), paths, LowerOptions{}, 2)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	// Sorted by path for deterministic batch output.
	if filepath.Base(results[0].Path) != "passthrough.json" {
		t.Errorf("results not sorted: %v", results[0].Path)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Path, r.Err)
			continue
		}
		if r.Module == nil || len(r.Module.Functions) != 1 {
			t.Errorf("%s: unexpected module shape", r.Path)
		}
	}
}

func TestLowerFilesReportsPerFileErrors(t *testing.T) {
	paths := []string{filepath.Join("testdata", "semantic", "nosuch.json")}
	results, err := LowerFiles(context.Background(), paths, LowerOptions{}, 1)
	if err != nil {
		t.Fatalf("a per-file failure must not abort the batch: %v", err)
	}
	if len(results) != 1 || results[0].Err == nil {
		t.Errorf("missing file should surface in the result, got %+v", results)
	}
}
