package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/devgen/pkg/errors"
)

// Registry is a thread-safe name to value map. Runner factories and pipeline
// commands are both looked up through one.
type Registry[T any] interface {
	// Register adds an item; names are unique and non-empty.
	Register(name string, item T) error

	// Get returns ErrNotFound for unknown names.
	Get(name string) (T, error)

	// Lookup is Get without the error allocation.
	Lookup(name string) (T, bool)

	Remove(name string) error

	// List returns registered names in sorted order.
	List() []string

	Has(name string) bool
	Clear()
	Count() int
}

type registry[T any] struct {
	kind  string
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty registry.
func New[T any]() Registry[T] {
	return NewNamed[T]("item")
}

// NewNamed creates an empty registry whose errors describe entries as kind,
// e.g. "runner factory 'xml' not found".
func NewNamed[T any](kind string) Registry[T] {
	return &registry[T]{
		kind:  kind,
		items: make(map[string]T),
	}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be empty", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%s '%s' is already registered", r.kind, name).
			WithDetail("name", name)
	}
	r.items[name] = item
	return nil
}

func (r *registry[T]) Get(name string) (T, error) {
	item, ok := r.Lookup(name)
	if !ok {
		return item, errors.Newf(errors.ErrNotFound, "%s '%s' not found", r.kind, name).
			WithDetail("name", name).
			WithDetail("known", r.List())
	}
	return item, nil
}

func (r *registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	return item, ok
}

func (r *registry[T]) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; !exists {
		return errors.Newf(errors.ErrNotFound, "%s '%s' not found", r.kind, name)
	}
	delete(r.items, name)
	return nil
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry[T]) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

func (r *registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]T)
}

func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister panics on failure. Meant for init() where a duplicate name is
// a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}

// MustGet panics when name is missing.
func MustGet[T any](reg Registry[T], name string) T {
	item, err := reg.Get(name)
	if err != nil {
		panic(fmt.Sprintf("failed to get %s: %v", name, err))
	}
	return item
}

// Clone copies every entry of src into a fresh registry. Tests use it to
// extend the default set without touching the shared one.
func Clone[T any](src Registry[T]) Registry[T] {
	kind := "item"
	if r, ok := src.(*registry[T]); ok {
		kind = r.kind
	}
	dst := NewNamed[T](kind)
	for _, name := range src.List() {
		if item, ok := src.Lookup(name); ok {
			_ = dst.Register(name, item)
		}
	}
	return dst
}
