package driver

import (
	"path/filepath"
	"testing"

	"sfclint/internal/diag"
	"sfclint/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	key := cacheKey([]byte("<template></template>"), "cfg")
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	d := diag.NewWarning(diag.TplAttributeNaming, source.Range{
		Start: source.Position{Line: 1, Character: 7},
		End:   source.Position{Line: 1, Character: 14},
	}, "attribute onClick should be kebab-case").WithFix("rename to kebab", "on-click")
	if err := cache.Put(key, &DiskPayload{Path: "a.vue", ConfigDigest: "cfg", Diagnostics: []diag.Diagnostic{d}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Schema != diskCacheSchemaVersion || got.Path != "a.vue" || len(got.Diagnostics) != 1 {
		t.Fatalf("unexpected payload %+v", got)
	}
	back := got.Diagnostics[0]
	if back.Range != d.Range || back.Fix == nil || back.Fix.NewText != "on-click" || back.Code != d.Code {
		t.Fatalf("diagnostic changed in the cache: %+v", back)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Fatal("expected miss after DropAll")
	}
}

func TestCacheKeyDependsOnConfig(t *testing.T) {
	content := []byte("x")
	if cacheKey(content, "a") == cacheKey(content, "b") {
		t.Fatal("config digest must change the key")
	}
	if cacheKey(content, "a") != cacheKey(content, "a") {
		t.Fatal("key must be deterministic")
	}
	if cacheKey(content, "a").IsZero() {
		t.Fatal("key must not be zero")
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(Digest{}, &DiskPayload{}); err != nil {
		t.Fatalf("Put on nil cache: %v", err)
	}
	if _, ok, err := cache.Get(Digest{}); ok || err != nil {
		t.Fatalf("Get on nil cache: ok=%v err=%v", ok, err)
	}
}
