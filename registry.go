package vecmodel

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/vecmodel/internal/logger"
	"github.com/kailas-cloud/vecmodel/internal/metrics"
)

// Registry memoizes one CollectionDefinition per record type. Entries are
// built lazily on first request and live for the registry's lifetime; there
// is no eviction. Construct one registry per application or test context
// rather than sharing implicit global state.
//
// Concurrent callers requesting the same type observe exactly one build:
// the in-flight build is shared and a single result is committed.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]*CollectionDefinition
	group  singleflight.Group
	logger *zap.Logger
	opts   []ExtractOption
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for build events. Defaults to a nop logger.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// WithExtractOptions sets extraction options applied to every build.
func WithExtractOptions(opts ...ExtractOption) RegistryOption {
	return func(r *Registry) { r.opts = opts }
}

// NewRegistry creates an empty definition registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		defs:   make(map[string]*CollectionDefinition),
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// DefinitionOf returns the definition for record type T, extracting and
// caching it on first use. All callers receive the same definition pointer.
func DefinitionOf[T any](r *Registry) (*CollectionDefinition, error) {
	return r.definition(r.logger, recordKey[T](), func() (*CollectionDefinition, error) {
		return Extract[T](r.opts...)
	})
}

// DefinitionOfCtx is DefinitionOf with the build logger drawn from ctx via
// logger.FromContext, for callers threading a request-scoped logger through
// context instead of configuring one with WithLogger. Caching behavior is
// identical; both entry points share one registry entry per type.
func DefinitionOfCtx[T any](ctx context.Context, r *Registry) (*CollectionDefinition, error) {
	return r.definition(logger.FromContext(ctx), recordKey[T](), func() (*CollectionDefinition, error) {
		return Extract[T](r.opts...)
	})
}

func recordKey[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		t = reflect.TypeOf(&zero).Elem()
	}
	return typeKey(t)
}

// Lookup returns the cached definition for a record type, without building.
func (r *Registry) Lookup(t reflect.Type) (*CollectionDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[typeKey(t)]
	return def, ok
}

// Len returns the number of cached definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

func (r *Registry) definition(lg *zap.Logger, key string, build func() (*CollectionDefinition, error)) (*CollectionDefinition, error) {
	r.mu.RLock()
	def, ok := r.defs[key]
	r.mu.RUnlock()
	if ok {
		metrics.RegistryLookupsTotal.WithLabelValues("hit").Inc()
		return def, nil
	}
	metrics.RegistryLookupsTotal.WithLabelValues("miss").Inc()

	v, err, _ := r.group.Do(key, func() (any, error) {
		// A racing caller may have committed between the read above and here.
		r.mu.RLock()
		def, ok := r.defs[key]
		r.mu.RUnlock()
		if ok {
			return def, nil
		}

		built, err := build()
		if err != nil {
			metrics.SchemaBuildsTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		metrics.SchemaBuildsTotal.WithLabelValues("ok").Inc()

		r.mu.Lock()
		r.defs[key] = built
		r.mu.Unlock()

		lg.Debug("collection definition built",
			zap.String("record_type", key),
			zap.Int("fields", built.Len()),
		)
		return built, nil
	})
	if err != nil {
		// Build errors are not cached: a fixed record type can be retried.
		return nil, fmt.Errorf("build definition for %s: %w", key, err)
	}
	return v.(*CollectionDefinition), nil
}

func typeKey(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
