package duoskema_test

import (
	"testing"
	"time"

	duoskema "github.com/duoskema/duoskema"
)

func freshOptions() *duoskema.Options {
	return &duoskema.Options{Cache: duoskema.NewMemoryCache(16, 0)}
}

// TestCache_ReferenceEquality: two calls with structurally identical inputs
// return the same pair by reference.
func TestCache_ReferenceEquality(t *testing.T) {
	opt := freshOptions()
	defA := duoskema.Definition{"name": {Type: duoskema.String, MinLength: duoskema.Ptr(2)}}
	defB := duoskema.Definition{"name": {Type: duoskema.String, MinLength: duoskema.Ptr(2)}}

	first, err := duoskema.CompileSchemas(defA, opt)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := duoskema.CompileSchemas(defB, opt)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first != second {
		t.Fatalf("structurally identical inputs must hit the cache")
	}

	// structurally different content must miss
	third, err := duoskema.CompileSchemas(duoskema.Definition{
		"name": {Type: duoskema.String, MinLength: duoskema.Ptr(3)},
	}, opt)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if third == first {
		t.Fatalf("different content must not share a cache entry")
	}
}

// TestCache_DisableBypassesLookupAndStorage: a disabled call never reads nor
// populates the cache.
func TestCache_DisableBypassesLookupAndStorage(t *testing.T) {
	store := duoskema.NewMemoryCache(16, 0)
	def := duoskema.Definition{"name": {Type: duoskema.String}}

	off := &duoskema.Options{Cache: store, DisableCache: true}
	first, err := duoskema.CompileSchemas(def, off)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := duoskema.CompileSchemas(def, off)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first == second {
		t.Fatalf("disabled cache must not return stored pairs")
	}

	// a later cached call sees nothing from the disabled ones
	on := &duoskema.Options{Cache: store}
	third, err := duoskema.CompileSchemas(def, on)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if third == first || third == second {
		t.Fatalf("disabled calls must not have populated the cache")
	}
	fourth, _ := duoskema.CompileSchemas(def, on)
	if third != fourth {
		t.Fatalf("enabled calls must share the stored pair")
	}
}

// TestCache_OptionsAffectKey: the signature covers options, not just the
// definition.
func TestCache_OptionsAffectKey(t *testing.T) {
	store := duoskema.NewMemoryCache(16, 0)
	def := duoskema.Definition{"name": {Type: duoskema.String}}

	lenient, _ := duoskema.CompileSchemas(def, &duoskema.Options{Cache: store})
	strict, _ := duoskema.CompileSchemas(def, &duoskema.Options{Cache: store, StrictMode: true})
	if lenient == strict {
		t.Fatalf("different options must compile distinct pairs")
	}
}

// TestMemoryCache_BoundAndTTL covers eviction and expiry of the default
// cache implementation.
func TestMemoryCache_BoundAndTTL(t *testing.T) {
	c := duoskema.NewMemoryCache(2, 0)
	a, b, d := &duoskema.CompiledPair{}, &duoskema.CompiledPair{}, &duoskema.CompiledPair{}
	c.Set("a", a)
	c.Set("b", b)
	c.Set("d", d) // evicts "a", the least recently used
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected lru eviction of oldest entry")
	}
	if got, ok := c.Get("b"); !ok || got != b {
		t.Fatalf("entry b lost")
	}

	ttl := duoskema.NewMemoryCache(0, time.Millisecond)
	ttl.Set("k", a)
	time.Sleep(5 * time.Millisecond)
	if _, ok := ttl.Get("k"); ok {
		t.Fatalf("expected ttl expiry")
	}

	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Fatalf("clear must drop every entry")
	}
}

// TestClearCache exercises the process-wide default cache.
func TestClearCache(t *testing.T) {
	def := duoskema.Definition{"defaulted": {Type: duoskema.String}}
	first, _ := duoskema.CompileSchemas(def, nil)
	second, _ := duoskema.CompileSchemas(def, nil)
	if first != second {
		t.Fatalf("default cache must serve repeat compilations")
	}
	duoskema.ClearCache()
	third, _ := duoskema.CompileSchemas(def, nil)
	if third == first {
		t.Fatalf("cleared cache must recompile")
	}
}
