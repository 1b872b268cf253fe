package argument

import (
	"context"
	"reflect"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/convert"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/instance"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/reqid"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	idType      = reflect.TypeFor[reqid.ID]()
	requestType = reflect.TypeFor[*Request]()
)

// Provider produces the value of one method parameter for a request.
type Provider func(req *Request) (reflect.Value, error)

// Env is what factories build providers with.
type Env struct {
	Converter *convert.Chain
	Services  instance.Services
	Logger    logr.Logger
}

// Factory decides at build time how an argument's value is produced. It
// reports false to defer to the next factory.
type Factory interface {
	Provider(arg *descriptor.Argument, env *Env) (Provider, bool, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(arg *descriptor.Argument, env *Env) (Provider, bool, error)

func (f FactoryFunc) Provider(arg *descriptor.Argument, env *Env) (Provider, bool, error) {
	return f(arg, env)
}

// Defaults returns the built-in factories: request injection, decomposition
// and plain argument values, in that order.
func Defaults() []Factory {
	return []Factory{injectedFactory{}, decomposeFactory{}, valueFactory{}}
}

// Injectable reports parameters supplied from the request rather than exposed
// as schema arguments: context.Context, reqid.ID, *Request, and the parent
// value when marked Source or typed as the owner.
func Injectable(owner reflect.Type, p introspect.Param) bool {
	switch {
	case p.Type == contextType, p.Type == idType, p.Type == requestType:
		return true
	case introspect.Has[meta.Source](p.Attributes):
		return true
	}
	return owner != nil && introspect.Indirect(p.Type) == introspect.Indirect(owner) && owner.Kind() == reflect.Struct
}

// Providers builds one provider per parameter of field, in parameter order.
// Caller factories are consulted before the defaults.
func Providers(field *descriptor.Field, env *Env, factories []Factory) ([]Provider, error) {
	chain := append(append([]Factory(nil), factories...), Defaults()...)
	ret := make([]Provider, 0, len(field.Params))
	for _, arg := range field.Params {
		var provider Provider
		for _, f := range chain {
			p, ok, err := f.Provider(arg, env)
			if err != nil {
				return nil, errors.Wrapf(err, "argument %s of %s", arg.Name, field.Name)
			}
			if ok {
				provider = p
				break
			}
		}
		if provider == nil {
			return nil, errors.Errorf("no provider for argument %s of %s", arg.Name, field.Name)
		}
		ret = append(ret, provider)
	}
	return ret, nil
}

type injectedFactory struct{}

func (injectedFactory) Provider(arg *descriptor.Argument, env *Env) (Provider, bool, error) {
	if !arg.Injected {
		return nil, false, nil
	}
	target := arg.Target
	switch target {
	case contextType:
		return func(req *Request) (reflect.Value, error) {
			ctx := req.Context
			if ctx == nil {
				ctx = context.Background()
			}
			return reflect.ValueOf(&ctx).Elem(), nil
		}, true, nil
	case idType:
		return func(req *Request) (reflect.Value, error) { return reflect.ValueOf(req.ID), nil }, true, nil
	case requestType:
		return func(req *Request) (reflect.Value, error) { return reflect.ValueOf(req), nil }, true, nil
	}
	return func(req *Request) (reflect.Value, error) {
		return env.Converter.ConvertValue(reflect.ValueOf(req.Source), target)
	}, true, nil
}

type decomposeFactory struct{}

func (decomposeFactory) Provider(arg *descriptor.Argument, env *Env) (Provider, bool, error) {
	if arg.Decomposed == nil {
		return nil, false, nil
	}
	names := make([]string, 0, len(arg.Decomposed))
	for _, d := range arg.Decomposed {
		names = append(names, d.Name)
	}
	defaults := map[string]any{}
	for _, d := range arg.Decomposed {
		if d.Default == nil {
			continue
		}
		v, err := language.GoValue(d.Default)
		if err != nil {
			return nil, false, errors.Wrapf(err, "default of %s", d.Name)
		}
		defaults[d.Name] = v
	}
	target := arg.Target
	return func(req *Request) (reflect.Value, error) {
		values := make(map[string]any, len(names))
		for _, name := range names {
			if v, ok := req.Value(name); ok {
				values[name] = v
			} else if v, ok := defaults[name]; ok {
				values[name] = v
			}
		}
		return env.Converter.ConvertValue(reflect.ValueOf(values), target)
	}, true, nil
}

type valueFactory struct{}

func (valueFactory) Provider(arg *descriptor.Argument, env *Env) (Provider, bool, error) {
	name, target := arg.Name, arg.Target
	var fallback any
	if arg.Default != nil {
		v, err := language.GoValue(arg.Default)
		if err != nil {
			return nil, false, errors.Wrapf(err, "default of %s", name)
		}
		fallback = v
	}
	return func(req *Request) (reflect.Value, error) {
		v, ok := req.Value(name)
		if !ok && fallback == nil {
			return reflect.Zero(target), nil
		}
		if !ok {
			v = fallback
		}
		return env.Converter.ConvertValue(reflect.ValueOf(v), target)
	}, true, nil
}
