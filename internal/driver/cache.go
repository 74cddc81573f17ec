package driver

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"openfxc/internal/ir"
)

// Current schema version - increment when CachePayload format changes.
const cacheSchemaVersion uint16 = 1

// Digest is a sha256 content hash.
type Digest [sha256.Size]byte

// DiskCache stores optimized modules keyed by the digest of (input
// document, pass list, profile). Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// CachePayload is the serialized cache entry. The module travels as
// its canonical JSON document so the cache shares one codec with the
// wire format.
type CachePayload struct {
	// Schema version for safe invalidation when the format changes
	Schema uint16

	Passes  string
	Profile string
	Module  []byte
}

// CacheKey digests the inputs that determine an optimize run's output.
func CacheKey(input []byte, passes, profile string) Digest {
	h := sha256.New()
	h.Write(input)
	h.Write([]byte{0})
	h.Write([]byte(passes))
	h.Write([]byte{0})
	h.Write([]byte(profile))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "ir", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a module into the cache, atomically.
func (c *DiskCache) Put(key Digest, passes, profile string, m *ir.Module) error {
	if c == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := ir.EncodeModule(&buf, m); err != nil {
		return err
	}
	payload := &CachePayload{
		Schema:  cacheSchemaVersion,
		Passes:  passes,
		Profile: profile,
		Module:  buf.Bytes(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads a cached module. The first result is false on a miss or a
// schema mismatch.
func (c *DiskCache) Get(key Digest) (*ir.Module, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload CachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	m, err := ir.DecodeModule(bytes.NewReader(payload.Module))
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}
