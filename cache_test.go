package sniffkit

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	t.Run("get and set", func(t *testing.T) {
		c := NewMemoryCache()
		want := Classify([]byte("<!html>"))
		c.Set("key", want, 0)

		got, ok := c.Get("key")
		if !ok || got != want {
			t.Errorf("Get() = %+v, %v; want %+v, true", got, ok, want)
		}
	})

	t.Run("miss", func(t *testing.T) {
		c := NewMemoryCache()
		if _, ok := c.Get("missing"); ok {
			t.Error("Get() on missing key returned ok")
		}
	})

	t.Run("expiry", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set("key", Result{Label: HTML}, time.Millisecond)
		time.Sleep(5 * time.Millisecond)

		if _, ok := c.Get("key"); ok {
			t.Error("Get() returned an expired entry")
		}
	})

	t.Run("delete and clear", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set("a", Result{Size: 1}, 0)
		c.Set("b", Result{Size: 2}, 0)
		c.Delete("a")
		if _, ok := c.Get("a"); ok {
			t.Error("Get() returned a deleted entry")
		}
		c.Clear()
		if _, ok := c.Get("b"); ok {
			t.Error("Get() returned an entry after Clear()")
		}
	})

	t.Run("cleanup", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set("short", Result{Size: 1}, time.Millisecond)
		c.Set("long", Result{Size: 2}, 0)
		time.Sleep(5 * time.Millisecond)
		c.Cleanup()

		if size := c.Stats().Size; size != 1 {
			t.Errorf("Stats().Size = %d after Cleanup(), want 1", size)
		}
	})

	t.Run("janitor drops expired entries", func(t *testing.T) {
		c := NewMemoryCacheWithJanitor(time.Millisecond)
		c.Set("short", Result{Size: 1}, time.Millisecond)
		c.Set("long", Result{Size: 2}, 0)

		deadline := time.Now().Add(time.Second)
		for c.Stats().Size != 1 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		if size := c.Stats().Size; size != 1 {
			t.Errorf("Stats().Size = %d with janitor running, want 1", size)
		}
	})

	t.Run("stats", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set("a", Result{Size: 1}, 0)
		c.Get("a")
		c.Get("a")
		c.Get("b")

		stats := c.Stats()
		if stats.Hits != 2 || stats.Misses != 1 {
			t.Errorf("Stats() hits=%d misses=%d, want 2 and 1", stats.Hits, stats.Misses)
		}
		if stats.HitRate < 0.66 || stats.HitRate > 0.67 {
			t.Errorf("Stats().HitRate = %v, want ~0.667", stats.HitRate)
		}
	})
}

type countingSniffer struct {
	mu    sync.Mutex
	calls int
}

func (s *countingSniffer) Classify(data []byte) Result {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return Classify(data)
}

func TestCachingClassifier(t *testing.T) {
	inner := &countingSniffer{}
	var hits, misses int
	c := NewCachingClassifier(inner, NewMemoryCache(),
		WithCacheHitCallback(func(string) { hits++ }),
		WithCacheMissCallback(func(string) { misses++ }),
	)

	data := []byte("<!DOCTYPE html><body>hello</body>")
	first := c.Classify(data)
	second := c.Classify(data)

	if first != second {
		t.Errorf("cached result %+v differs from first %+v", second, first)
	}
	if first != Classify(data) {
		t.Errorf("cached result %+v differs from direct classification", first)
	}
	if inner.calls != 1 {
		t.Errorf("inner classifier called %d times, want 1", inner.calls)
	}
	if hits != 1 || misses != 1 {
		t.Errorf("hits=%d misses=%d, want 1 and 1", hits, misses)
	}

	c.Classify([]byte("different"))
	if inner.calls != 2 {
		t.Errorf("inner classifier called %d times after new content, want 2", inner.calls)
	}
}

func TestCachingClassifier_KeyPrefix(t *testing.T) {
	shared := NewMemoryCache()
	a := NewCachingClassifier(NewClassifier(), shared, WithCacheKeyPrefix("a:"))
	b := NewCachingClassifier(NewClassifier(), shared, WithCacheKeyPrefix("b:"))

	data := []byte("var y = 2")
	a.Classify(data)
	b.Classify(data)

	if size := shared.Stats().Size; size != 2 {
		t.Errorf("shared cache size = %d, want 2", size)
	}
	if _, ok := shared.Get("a:" + Digest(data)); !ok {
		t.Error("expected entry under prefix a:")
	}
}

func TestCachingClassifier_NilCache(t *testing.T) {
	c := NewCachingClassifier(NewClassifier(), nil)
	if c.Cache() == nil {
		t.Fatal("Cache() = nil, want a default MemoryCache")
	}
	if got := c.Classify([]byte{0}).Label; got != Binary {
		t.Errorf("Classify() = %v, want %v", got, Binary)
	}
	if c.Unwrap() == nil {
		t.Error("Unwrap() = nil")
	}
}

func TestDigest(t *testing.T) {
	a := Digest([]byte("hello"))
	b := Digest([]byte("hello"))
	c := Digest([]byte("hellp"))

	if a != b {
		t.Errorf("Digest() not stable: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("Digest() collision for different content: %s", a)
	}
	if Digest(nil) != Digest([]byte{}) {
		t.Error("Digest(nil) != Digest(empty)")
	}
}
