package cache

import (
	"errors"
	"testing"
	"time"
)

func TestRenderCache_FetchCaches(t *testing.T) {
	c := New(5 * time.Minute)
	calls := 0
	render := func() ([]byte, error) {
		calls++
		return []byte("page"), nil
	}

	// First call - cache miss
	b1, err := c.Fetch("/dashboard/invoices", "page=1", render)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Second call - should return cached value
	b2, err := c.Fetch("/dashboard/invoices", "page=1", render)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b1) != "page" || string(b2) != "page" {
		t.Errorf("unexpected bodies %q %q", b1, b2)
	}
	if calls != 1 {
		t.Errorf("expected 1 render, got %d", calls)
	}
}

func TestRenderCache_Invalidate(t *testing.T) {
	c := New(5 * time.Minute)
	c.Set("/dashboard/invoices", "page=1", []byte("a"))
	c.Set("/dashboard/invoices", "page=2", []byte("b"))
	c.Set("/dashboard/customers", "", []byte("c"))

	c.Invalidate("/dashboard/invoices")

	if _, ok := c.Get("/dashboard/invoices", "page=1"); ok {
		t.Errorf("page=1 should be invalidated")
	}
	if _, ok := c.Get("/dashboard/invoices", "page=2"); ok {
		t.Errorf("page=2 should be invalidated")
	}
	if _, ok := c.Get("/dashboard/customers", ""); !ok {
		t.Errorf("other paths must survive invalidation")
	}
}

func TestRenderCache_InvalidateDuringRender(t *testing.T) {
	c := New(5 * time.Minute)
	calls := 0

	// a write lands while the first read is still rendering
	_, err := c.Fetch("/dashboard/invoices", "page=1", func() ([]byte, error) {
		calls++
		c.Invalidate("/dashboard/invoices")
		return []byte("before write"), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := c.Fetch("/dashboard/invoices", "page=1", func() ([]byte, error) {
		calls++
		return []byte("after write"), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "after write" {
		t.Errorf("expected a fresh render, got %q", b)
	}
	if calls != 2 {
		t.Errorf("expected 2 renders, got %d", calls)
	}

	// the fresh render is cached normally
	if got, ok := c.Get("/dashboard/invoices", "page=1"); !ok || string(got) != "after write" {
		t.Errorf("expected cached fresh render, got %q ok=%v", got, ok)
	}
}

func TestRenderCache_InvalidateOtherPathKeepsRender(t *testing.T) {
	c := New(5 * time.Minute)
	_, _ = c.Fetch("/dashboard/invoices", "page=1", func() ([]byte, error) {
		c.Invalidate("/dashboard/customers")
		return []byte("page"), nil
	})
	if _, ok := c.Get("/dashboard/invoices", "page=1"); !ok {
		t.Errorf("render should be cached when another path was invalidated")
	}
}

func TestRenderCache_Expiry(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.Set("/a", "", []byte("a"))

	now = now.Add(30 * time.Second)
	if _, ok := c.Get("/a", ""); !ok {
		t.Errorf("entry should still be fresh")
	}
	now = now.Add(time.Minute)
	if _, ok := c.Get("/a", ""); ok {
		t.Errorf("entry should have expired")
	}
}

func TestRenderCache_FetchErrorNotCached(t *testing.T) {
	c := New(time.Minute)
	boom := errors.New("boom")
	if _, err := c.Fetch("/a", "", func() ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, ok := c.Get("/a", ""); ok {
		t.Errorf("failed render must not be cached")
	}
}
