package validation

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/gennovative/micro-fleet-common/pkg/guard"
	"github.com/gennovative/micro-fleet-common/pkg/logger"
	"github.com/gennovative/micro-fleet-common/pkg/validation/rule"
)

// Class identifies a model type. Metadata is keyed by the exact type: a
// pointer type and an embedding struct are different classes.
type Class = reflect.Type

// ClassOf returns the Class of T.
func ClassOf[T any]() Class {
	return reflect.TypeFor[T]()
}

// Registry stores validation metadata per class until it is compiled.
type Registry struct {
	mu      sync.Mutex
	entries map[Class]*ClassMetadata
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for compile and declaration diagnostics.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{entries: make(map[Class]*ClassMetadata)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultRegistry is the process-wide registry.
var DefaultRegistry = NewRegistry()

func (r *Registry) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default().With(logger.Component("validation"))
}

// Get returns a copy of the metadata stored for class, or an empty value
// when nothing was declared. It never returns nil.
func (r *Registry) Get(class Class) *ClassMetadata {
	r.mu.Lock()
	defer r.mu.Unlock()

	if meta, ok := r.entries[class]; ok {
		return meta.clone()
	}
	return newClassMetadata()
}

// Set replaces the metadata stored for class.
func (r *Registry) Set(class Class, meta *ClassMetadata) {
	guard.NotNull("meta", meta)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[class] = meta.clone()
}

// Delete drops the metadata of class. Deleting an unknown class is a no-op.
func (r *Registry) Delete(class Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, class)
}

// Has reports whether metadata is stored for class.
func (r *Registry) Has(class Class) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[class]
	return ok
}

// Decorate applies property decorators to class. The fetch, mutation and
// store happen under one lock.
func (r *Registry) Decorate(class Class, property string, decorators ...PropertyDecorator) {
	guard.NotNull("class", class)
	guard.Assert(property != "", ErrMissingPropertyName)

	r.mu.Lock()
	defer r.mu.Unlock()

	meta := r.lookup(class)
	before := meta.typeInits(property)
	for _, decorate := range decorators {
		if decorate != nil {
			decorate(meta, property)
		}
	}

	if after := meta.typeInits(property); after > 1 && after > before {
		r.log().Warn("type initializer declared more than once, last one wins",
			logger.Class(class),
			logger.Property(property),
			logger.Rule(meta.Properties[property].Type),
		)
	}
}

// DecorateClass applies class decorators to class under the registry lock.
func (r *Registry) DecorateClass(class Class, decorators ...ClassDecorator) {
	guard.NotNull("class", class)

	r.mu.Lock()
	defer r.mu.Unlock()

	meta := r.lookup(class)
	for _, decorate := range decorators {
		if decorate != nil {
			decorate(meta)
		}
	}
}

// Define declares several properties of class at once.
func (r *Registry) Define(class Class, props ...Property) {
	for _, p := range props {
		r.Decorate(class, p.Name, p.Decorators...)
	}
}

// Rules returns the rules accumulated so far for one property of class.
func (r *Registry) Rules(class Class, property string) []rule.Rule {
	meta := r.Get(class)
	if p, ok := meta.Properties[property]; ok {
		return p.Rules
	}
	return nil
}

// lookup returns the stored metadata of class, creating it. Caller holds mu.
func (r *Registry) lookup(class Class) *ClassMetadata {
	meta, ok := r.entries[class]
	if !ok {
		meta = newClassMetadata()
		r.entries[class] = meta
	}
	return meta
}
