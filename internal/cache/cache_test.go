package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("https://example.com/article")
	k2 := Key("https://example.com/article")
	k3 := Key("https://example.com/other")

	if k1 != k2 {
		t.Error("Key must be deterministic")
	}
	if k1 == k3 {
		t.Error("Different URLs must hash to different keys")
	}
	if !strings.HasPrefix(k1, "claimlens:v1:") {
		t.Errorf("Expected versioned prefix, got %q", k1)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected a miss for an unknown key")
	}

	if err := c.Set("k", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, found := c.Get("k")
	if !found || !bytes.Equal(got, []byte("value")) {
		t.Errorf("Get = %q, %v", got, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected a miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("short", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("Expected entry to expire")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected a miss for an unknown key")
	}

	if err := c.Set(Key("https://example.com"), []byte("payload"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, found := c.Get(Key("https://example.com"))
	if !found || !bytes.Equal(got, []byte("payload")) {
		t.Errorf("Get = %q, %v", got, found)
	}

	// A second cache over the same directory sees the entry
	c2 := NewDiskCache(dir, time.Minute)
	if _, found := c2.Get(Key("https://example.com")); !found {
		t.Error("Expected entry to survive across instances")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	c.Set("short", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("Expected entry to expire")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer only
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set("k", []byte("from-disk"), 0); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	got, found := layered.Get("k")
	if !found || !bytes.Equal(got, []byte("from-disk")) {
		t.Fatalf("Get = %q, %v", got, found)
	}

	// The promoted entry must now be in memory
	if _, found := layered.memory.Get("k"); !found {
		t.Error("Expected disk hit to be promoted into memory")
	}
}

func TestLayeredCache_WritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := layered.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found := layered.memory.Get("k"); !found {
		t.Error("Expected value in memory layer")
	}
	if _, found := layered.disk.Get("k"); !found {
		t.Error("Expected value in disk layer")
	}

	if err := layered.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := layered.Get("k"); found {
		t.Error("Expected a miss after delete")
	}
}
