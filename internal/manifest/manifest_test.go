package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingManifest(t *testing.T) {
	dir := t.TempDir()
	_, found, err := Load(dir)
	if err != nil {
		t.Fatalf("missing manifest is not an error: %v", err)
	}
	if found {
		t.Error("nothing to find in an empty directory")
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	content := `[pipeline]
profile = "ps_2_0"
passes = "constfold, dce"

[cache]
dir = ".openfxc-cache"
`
	if err := os.WriteFile(filepath.Join(dir, "openfxc.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	mf, found, err := Load(dir)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if mf.Config.Pipeline.Profile != "ps_2_0" {
		t.Errorf("profile = %q", mf.Config.Pipeline.Profile)
	}
	if mf.Config.Pipeline.Passes != "constfold, dce" {
		t.Errorf("passes = %q", mf.Config.Pipeline.Passes)
	}
	if mf.Config.Cache.Dir != ".openfxc-cache" {
		t.Errorf("cache dir = %q", mf.Config.Cache.Dir)
	}
	if mf.Root != dir {
		t.Errorf("root = %q, want %q", mf.Root, dir)
	}
}

func TestFindWalksUpward(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "shaders", "lit")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "openfxc.toml"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	path, found, err := Find(sub)
	if err != nil || !found {
		t.Fatalf("find: found=%v err=%v", found, err)
	}
	if path != filepath.Join(dir, "openfxc.toml") {
		t.Errorf("path = %q", path)
	}
}
