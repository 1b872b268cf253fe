// Package resolve discovers every type reachable from a set of root types and
// turns each into a schema definition plus its runtime wiring.
//
// The Engine keeps a FIFO worklist. Resolvers reach other types through
// Context.Register, which resolves them eagerly so their names and kinds are
// known, and enqueues them so the stream emits them in discovery order. A
// type met again while it is still being resolved is referenced by a name-only
// placeholder; only object, interface, input and union kinds allow that.
package resolve

import (
	"context"
	"iter"
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/argument"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/convert"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/eventbus"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/events"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/generics"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/instance"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
)

// Engine resolves one schema build. It is single threaded and must not be
// shared between builds.
type Engine struct {
	opts      *Options
	resolvers []TypeResolver
	ctx       *Context
	enums     *enumIndex

	queue     []reflect.Type
	enqueued  map[reflect.Type]bool
	resolving map[reflect.Type]TypeResolver
	stack     []reflect.Type
	cache     map[reflect.Type]*Provider
	names     map[string]reflect.Type
	consumed  bool
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.Services == nil {
		o.Services = instance.NewRegistry(o.Instantiator)
	}
	e := &Engine{
		opts:      o,
		enums:     newEnumIndex(),
		enqueued:  map[reflect.Type]bool{},
		resolving: map[reflect.Type]TypeResolver{},
		cache:     map[reflect.Type]*Provider{},
		names:     map[string]reflect.Type{},
	}
	e.resolvers = append(append([]TypeResolver(nil), o.Resolvers...), DefaultResolvers(e)...)

	chain := convert.NewChain(
		convert.WithScalars(o.Scalars),
		convert.WithIntrospector(o.Introspector),
		convert.WithEnums(e.enums),
		convert.WithValidator(o.Validator),
		convert.WithCacheSize(o.CacheSize),
		convert.WithLogger(o.Logger),
		convert.WithConverters(o.Converters...),
	)
	e.ctx = &Context{
		engine:       e,
		Introspector: o.Introspector,
		Scalars:      o.Scalars,
		Instantiator: o.Instantiator,
		Env:          &argument.Env{Converter: chain, Services: o.Services, Logger: o.Logger},
		Factories:    o.Factories,
		Logger:       o.Logger,
	}
	leaf := func(t reflect.Type) bool { return o.Scalars.Supports(t) && t.Kind() != reflect.Interface }
	e.ctx.Descriptors = descriptor.NewBuilder(e.ctx, descriptor.Options{
		Introspector: o.Introspector,
		Generics:     generics.NewResolver(o.Introspector, leaf),
		Instantiator: o.Instantiator,
		Views:        o.Views,
		Injected:     argument.Injectable,
	})
	return e
}

// AddRoot enqueues t for resolution.
func (e *Engine) AddRoot(t reflect.Type) *Engine {
	e.enqueue(introspect.Indirect(t))
	return e
}

// Resolve resolves t within this build. Resolving a type twice returns the
// same provider.
func (e *Engine) Resolve(t reflect.Type) (*Provider, error) {
	return e.register(t)
}

// Enums exposes the enum value tables gathered so far to argument conversion.
func (e *Engine) Enums() convert.EnumLookup { return e.enums }

// Stream resolves the worklist and yields one provider per resolved type in
// discovery order. Scalars sharing a definition name are yielded once. The
// first error ends the stream. A stream can be consumed once; later
// iterations yield ErrStreamConsumed.
func (e *Engine) Stream() iter.Seq2[*Provider, error] {
	return func(yield func(*Provider, error) bool) {
		if e.consumed {
			yield(nil, ErrStreamConsumed)
			return
		}
		e.consumed = true
		emittedScalars := map[string]bool{}
		for len(e.queue) > 0 {
			t := e.queue[0]
			e.queue = e.queue[1:]
			p, err := e.register(t)
			if err != nil {
				yield(nil, err)
				return
			}
			if p.Kind == language.Scalar {
				if emittedScalars[p.Name] {
					continue
				}
				emittedScalars[p.Name] = true
			}
			eventbus.Publish(context.Background(), events.TypeResolved{
				BuildID:   e.opts.BuildID,
				Name:      p.Name,
				Kind:      string(p.Kind),
				GoType:    t.String(),
				Extension: p.Extension,
			})
			if !yield(p, nil) {
				return
			}
		}
	}
}

func (e *Engine) enqueue(t reflect.Type) {
	if !e.enqueued[t] {
		e.enqueued[t] = true
		e.queue = append(e.queue, t)
	}
}

func (e *Engine) resolverFor(t reflect.Type) TypeResolver {
	for _, r := range e.resolvers {
		if r.Supports(t) {
			return r
		}
	}
	return nil
}

func (e *Engine) register(t reflect.Type) (*Provider, error) {
	t = introspect.Indirect(t)
	if t == nil {
		return nil, &violation.UnresolvableTypeError{Type: t}
	}
	if p, ok := e.cache[t]; ok {
		return p, nil
	}
	if r, ok := e.resolving[t]; ok {
		if !cyclable(r.Kind()) {
			return nil, &violation.CyclicLoadError{Type: t, Kind: string(r.Kind()), Chain: e.cycle(t)}
		}
		return placeholder(r.Kind(), r.Name(t), t), nil
	}
	r := e.resolverFor(t)
	if r == nil {
		return nil, &violation.UnresolvableTypeError{Type: t}
	}
	e.enqueue(t)

	e.resolving[t] = r
	e.stack = append(e.stack, t)
	p, err := r.Resolve(t, r.Name(t), e.ctx)
	e.stack = e.stack[:len(e.stack)-1]
	delete(e.resolving, t)
	if err != nil {
		return nil, err
	}
	if p.Type == nil {
		p.Type = t
	}
	if err := e.claim(t, p); err != nil {
		return nil, err
	}
	e.cache[t] = p
	if p.Kind == language.Enum {
		target := t
		if p.Extension && p.Parent != nil {
			target = p.Parent.Type
		}
		e.enums.add(target, p.enumValues)
	}
	e.opts.Logger.V(1).Info("resolved type", "type", p.Name, "kind", string(p.Kind), "goType", t.String(), "extension", p.Extension)
	return p, nil
}

// claim reserves p's schema name for t. Extensions share their target's name
// and scalars may be mapped from many types.
func (e *Engine) claim(t reflect.Type, p *Provider) error {
	if p.Extension || p.Kind == language.Scalar {
		return nil
	}
	key := p.Name
	if p.Kind == language.DirectiveKind {
		key = "@" + key
	}
	if other, ok := e.names[key]; ok && other != t {
		return violation.DuplicateTypeName(t, other, p.Name)
	}
	e.names[key] = t
	return nil
}

func (e *Engine) cycle(t reflect.Type) []reflect.Type {
	for i, s := range e.stack {
		if s == t {
			return append(append([]reflect.Type(nil), e.stack[i:]...), t)
		}
	}
	return []reflect.Type{t}
}
