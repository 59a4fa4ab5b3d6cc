package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matchday-app/championship-engine/cache"
)

func TestFileCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "cache.json")

	kv, err := cache.NewFileCache(path)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, ok := kv.Get("missing"); ok {
		t.Error("Get on an empty cache reported a hit")
	}

	if err := kv.Set("championships:user-1", `[{"id":"c1"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok := kv.Get("championships:user-1")
	if !ok || value != `[{"id":"c1"}]` {
		t.Errorf("Get = (%q, %v), want the stored value", value, ok)
	}

	if err := kv.Delete("championships:user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := kv.Get("championships:user-1"); ok {
		t.Error("Get after Delete reported a hit")
	}
}

func TestFileCacheSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	kv, err := cache.NewFileCache(path)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := kv.Set("key", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := cache.NewFileCache(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if value, ok := reopened.Get("key"); !ok || value != "value" {
		t.Errorf("reopened Get = (%q, %v), want persisted value", value, ok)
	}
}

func TestFileCacheToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	kv, err := cache.NewFileCache(path)
	if err != nil {
		t.Fatalf("NewFileCache on corrupt file: %v", err)
	}
	if _, ok := kv.Get("anything"); ok {
		t.Error("corrupt cache should load empty")
	}

	// The cache must be writable again after discarding the corrupt state.
	if err := kv.Set("key", "value"); err != nil {
		t.Fatalf("Set after corrupt load: %v", err)
	}
}

func TestFileCacheRequiresPath(t *testing.T) {
	if _, err := cache.NewFileCache(""); err == nil {
		t.Error("NewFileCache with an empty path should fail")
	}
}
