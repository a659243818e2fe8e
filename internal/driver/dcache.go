package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version, increment when cleanPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash.
type Digest = [32]byte

// DiskCache remembers tree/sol pairs that checked clean, keyed by the pair
// of content hashes. Any edit to either file changes the key, so stale
// entries are simply never hit again. A nil *DiskCache is a valid no-op.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cleanPayload is the on-disk record of one clean pair.
type cleanPayload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	TreePath string
	TreeHash Digest
	SolHash  Digest

	// CheckedUnix records when the pair was verified, for cache hygiene.
	CheckedUnix int64
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location ($XDG_CACHE_HOME/<app> or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory, for tests.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(treeHash, solHash Digest) string {
	key := sha256.Sum256(append(treeHash[:], solHash[:]...))
	return filepath.Join(c.dir, "clean", hex.EncodeToString(key[:])+".mp")
}

// IsClean reports whether this exact tree/sol pair has checked clean before.
func (c *DiskCache) IsClean(treeHash, solHash Digest) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(treeHash, solHash))
	if err != nil {
		return false
	}
	defer f.Close()

	var payload cleanPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false
	}
	return payload.Schema == diskCacheSchemaVersion &&
		payload.TreeHash == treeHash && payload.SolHash == solHash
}

// MarkClean records a clean pair. Failures are swallowed: the cache is an
// accelerator, never a correctness dependency.
func (c *DiskCache) MarkClean(treePath string, treeHash, solHash Digest) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(treeHash, solHash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return
	}
	defer os.Remove(f.Name())

	payload := cleanPayload{
		Schema:      diskCacheSchemaVersion,
		TreePath:    treePath,
		TreeHash:    treeHash,
		SolHash:     solHash,
		CheckedUnix: time.Now().Unix(),
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return
	}
	if err := f.Close(); err != nil {
		return
	}
	// Atomic replace.
	_ = os.Rename(f.Name(), p)
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func contentHash(content []byte) Digest {
	return sha256.Sum256(content)
}
