// Package instance provides the live values the schema builder needs: helper
// objects named by metadata and the service receivers of bound methods.
package instance

import (
	"fmt"
	"reflect"
	"sync"
)

// Instantiator creates a value of a helper type, such as a type resolver or a
// default value provider.
type Instantiator interface {
	New(t reflect.Type) (any, error)
}

// InstantiatorFunc adapts a function to Instantiator.
type InstantiatorFunc func(t reflect.Type) (any, error)

func (f InstantiatorFunc) New(t reflect.Type) (any, error) { return f(t) }

// Zero instantiates pointers to zero values. Interface types cannot be
// instantiated.
var Zero Instantiator = InstantiatorFunc(func(t reflect.Type) (any, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface {
		return nil, fmt.Errorf("cannot instantiate interface type %s", t)
	}
	return reflect.New(t).Interface(), nil
})

// As instantiates t and asserts the result implements T.
func As[T any](in Instantiator, t reflect.Type) (T, error) {
	var zero T
	if in == nil {
		in = Zero
	}
	v, err := in.New(t)
	if err != nil {
		return zero, err
	}
	ret, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s does not implement %s", t, reflect.TypeFor[T]())
	}
	return ret, nil
}

// Services supplies the receivers of bound methods when the parent value
// cannot serve, as for root types and extensions.
type Services interface {
	Service(t reflect.Type) (any, error)
}

// Registry is a Services backed by registered values, falling back to lazily
// created zero values that are then reused.
type Registry struct {
	mu       sync.Mutex
	services map[reflect.Type]any
	fallback Instantiator
}

// NewRegistry creates a Registry. fallback may be nil to reject unregistered
// types.
func NewRegistry(fallback Instantiator) *Registry {
	return &Registry{services: map[reflect.Type]any{}, fallback: fallback}
}

// Register makes v the service for its type.
func (r *Registry) Register(v any) *Registry {
	t := indirect(reflect.TypeOf(v))
	r.mu.Lock()
	r.services[t] = v
	r.mu.Unlock()
	return r
}

// Service implements Services.
func (r *Registry) Service(t reflect.Type) (any, error) {
	t = indirect(t)
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.services[t]; ok {
		return v, nil
	}
	if r.fallback == nil {
		return nil, fmt.Errorf("no service registered for %s", t)
	}
	v, err := r.fallback.New(t)
	if err != nil {
		return nil, err
	}
	r.services[t] = v
	return v, nil
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
