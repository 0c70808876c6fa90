package vecmodel

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/vecmodel/internal/logger"
)

type registryDoc struct {
	ID     string    `vecmodel:"key"`
	Vector []float32 `vecmodel:"vector,dim=4"`
}

func TestRegistry_GetBuildsOnce(t *testing.T) {
	r := NewRegistry()

	def1, err := DefinitionOf[registryDoc](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def2, err := DefinitionOf[registryDoc](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def1 != def2 {
		t.Error("second Get returned a different definition pointer")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Lookup(reflect.TypeOf(registryDoc{})); ok {
		t.Error("Lookup before build ok, want false")
	}

	def, err := DefinitionOf[registryDoc](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := r.Lookup(reflect.TypeOf(registryDoc{}))
	if !ok || got != def {
		t.Errorf("Lookup = %v, %v; want cached definition", got, ok)
	}
	// Pointer and value type identities share one entry.
	got, ok = r.Lookup(reflect.TypeOf(&registryDoc{}))
	if !ok || got != def {
		t.Errorf("Lookup(ptr) = %v, %v; want same entry", got, ok)
	}
}

func TestRegistry_ConcurrentSingleBuild(t *testing.T) {
	var builds atomic.Int32
	r := NewRegistry(WithExtractOptions())

	type slowDoc struct {
		ID     string    `vecmodel:"key"`
		Vector []float32 `vecmodel:"vector,dim=2"`
	}
	// Count actual builds through the build closure rather than extraction
	// internals: wrap via definition() with a counting build func.
	key := typeKey(reflect.TypeOf(slowDoc{}))
	build := func() (*CollectionDefinition, error) {
		builds.Add(1)
		return Extract[slowDoc]()
	}

	const callers = 32
	results := make([]*CollectionDefinition, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			def, err := r.definition(r.logger, key, build)
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
				return
			}
			results[i] = def
		}(i)
	}
	wg.Wait()

	if n := builds.Load(); n != 1 {
		t.Errorf("build ran %d times, want 1", n)
	}
	for i := 1; i < callers; i++ {
		if results[i] != results[0] {
			t.Fatalf("caller %d received a different definition", i)
		}
	}
}

func TestRegistry_BuildErrorNotCached(t *testing.T) {
	type badDoc struct {
		ID string `vecmodel:"key"`
	}
	r := NewRegistry(WithLogger(zap.NewNop()))

	_, err := DefinitionOf[badDoc](r)
	if err == nil {
		t.Fatal("expected error: no vector field")
	}
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("error = %v, want ErrInvalidDefinition", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d after failed build, want 0", r.Len())
	}

	// The error is reproducible on retry, not a poisoned cache entry.
	_, err = DefinitionOf[badDoc](r)
	if err == nil {
		t.Fatal("expected error on retry")
	}
}

func TestRegistry_IsolatedPerInstance(t *testing.T) {
	r1 := NewRegistry()
	r2 := NewRegistry()

	if _, err := DefinitionOf[registryDoc](r1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r2.Len() != 0 {
		t.Error("registries share state, want isolated caches")
	}
}

func TestRegistry_ContextLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := logger.ContextWithLogger(context.Background(), zap.New(core))
	r := NewRegistry()

	def, err := DefinitionOfCtx[registryDoc](ctx, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := logs.FilterMessage("collection definition built").Len(); n != 1 {
		t.Errorf("context logger saw %d build events, want 1", n)
	}

	// Both entry points share the cache entry; the hit path does not log.
	def2, err := DefinitionOf[registryDoc](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def2 != def {
		t.Error("DefinitionOf returned a different definition than DefinitionOfCtx")
	}
	if n := logs.FilterMessage("collection definition built").Len(); n != 1 {
		t.Errorf("cache hit logged a build event, total %d", n)
	}
}

func TestRegistry_ExtractOptionsApplied(t *testing.T) {
	type doc struct {
		ID     string    `vecmodel:"key"`
		Vector []float32 `vecmodel:"vector,dim=3"`
	}
	r := NewRegistry(WithExtractOptions(WithDefaults(DefaultVector())))

	def, err := DefinitionOf[doc](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.VectorFields()[0].IndexKind() != IndexKindHNSW {
		t.Errorf("index kind = %q, want hnsw from registry defaults", def.VectorFields()[0].IndexKind())
	}
}
