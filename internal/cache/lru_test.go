package cache

import (
	"testing"
	"time"
)

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on empty cache should miss")
	}

	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v; want 1, true", v, ok)
	}

	c.Set("a", "2")
	if v, _ := c.Get("a"); v != "2" {
		t.Errorf("Get(a) after overwrite = %q, want 2", v)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a, b becomes least recently used
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should be present")
	}
}

func TestLRUCacheExpiry(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("expired entry should miss")
	}

	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	if n := c.CleanExpired(); n != 1 {
		t.Errorf("CleanExpired() = %d, want 1", n)
	}
	if c.Size() != 0 {
		t.Errorf("Size() after cleanup = %d, want 0", c.Size())
	}
}

func TestLRUCachePurge(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()

	if c.Size() != 0 {
		t.Errorf("Size() after purge = %d, want 0", c.Size())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("purged entry should miss")
	}

	c.Set("c", 3)
	if _, ok := c.Get("c"); !ok {
		t.Error("cache should accept entries after purge")
	}
}

func TestManagerCleanup(t *testing.T) {
	c := NewLRUCache[int](10, time.Millisecond)
	m := NewManager()
	m.Register(c)

	c.Set("a", 1)
	m.StartCleanup(5 * time.Millisecond)
	defer m.Stop()

	deadline := time.After(time.Second)
	for c.Size() > 0 {
		select {
		case <-deadline:
			t.Fatal("manager never swept the expired entry")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
