// file: internal/cache/cache_test.go
// version: 1.0.0
// guid: 8cc21c18-7608-4121-aa59-7dedda497b68

package cache

import "testing"

func TestGetSet(t *testing.T) {
	c, err := New[string, string](4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.Set("k", "v")
	v, ok := c.Get("k")
	if !ok || v != "v" {
		t.Fatalf("expected v, got %q ok=%v", v, ok)
	}
}

func TestCapacityEviction(t *testing.T) {
	c, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected oldest entry evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatalf("expected c=3 to survive, got %d ok=%v", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("expected len 2, got %d", c.Len())
	}
}

func TestRecentUseSurvivesEviction(t *testing.T) {
	c, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected recently used entry to survive")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected least recently used entry evicted")
	}
}

func TestInvalidCapacity(t *testing.T) {
	if _, err := New[string, string](0); err == nil {
		t.Fatal("expected error for zero capacity")
	}
	if _, err := New[string, string](-1); err == nil {
		t.Fatal("expected error for negative capacity")
	}
}

func TestInvalidate(t *testing.T) {
	c, err := New[string, string](4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.Set("a", "1")
	c.Set("b", "2")
	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected a to be invalidated")
	}
	v, ok := c.Get("b")
	if !ok || v != "2" {
		t.Fatal("expected b to remain")
	}
}

func TestInvalidateAll(t *testing.T) {
	c, err := New[string, int](4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.Set("a", 1)
	c.Set("b", 2)
	c.InvalidateAll()
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected all invalidated")
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got len %d", c.Len())
	}
}
