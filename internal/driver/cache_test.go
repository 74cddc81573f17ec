package driver

import (
	"testing"

	"openfxc/internal/ir"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	lowered := Lower(loadSemantic(t, "scale.json"), LowerOptions{})
	key := CacheKey([]byte("input-bytes"), "dce", "ps_2_0")

	if _, hit, err := cache.Get(key); err != nil || hit {
		t.Fatalf("empty cache should miss, hit=%v err=%v", hit, err)
	}
	if err := cache.Put(key, "dce", "ps_2_0", lowered); err != nil {
		t.Fatalf("put: %v", err)
	}
	back, hit, err := cache.Get(key)
	if err != nil || !hit {
		t.Fatalf("get after put: hit=%v err=%v", hit, err)
	}
	if ir.Print(back) != ir.Print(lowered) {
		t.Error("cached module should read back identically")
	}
}

func TestCacheKeyDiscriminates(t *testing.T) {
	base := CacheKey([]byte("doc"), "dce", "ps_2_0")
	if CacheKey([]byte("doc"), "dce", "ps_2_0") != base {
		t.Error("key must be deterministic")
	}
	if CacheKey([]byte("doc2"), "dce", "ps_2_0") == base {
		t.Error("different input must change the key")
	}
	if CacheKey([]byte("doc"), "cse", "ps_2_0") == base {
		t.Error("different passes must change the key")
	}
	if CacheKey([]byte("doc"), "dce", "ps_3_0") == base {
		t.Error("different profile must change the key")
	}
}

func TestDiskCacheNilReceiver(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(Digest{}, "", "", ir.NewModule("unknown")); err != nil {
		t.Errorf("nil cache Put should be a no-op, got %v", err)
	}
	if _, hit, err := cache.Get(Digest{}); hit || err != nil {
		t.Errorf("nil cache Get should miss silently, hit=%v err=%v", hit, err)
	}
}
