// Package convert turns loosely typed request values (maps, slices and
// scalars decoded from a request) into the Go types bound methods expect.
package convert

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/generics"
)

// Fallback re-enters the chain for a nested value.
type Fallback func(value reflect.Value, to reflect.Type) (reflect.Value, error)

// Converter converts values of one shape into another.
type Converter interface {
	Supports(from, to reflect.Type) bool
	Convert(value reflect.Value, to reflect.Type, fallback Fallback) (reflect.Value, error)
}

// Chain tries its converters in order; the first that supports a pair of
// types converts it. A Chain is immutable and safe for concurrent use.
type Chain struct {
	converters []Converter
	opts       *Options
}

// NewChain creates the default chain: caller converters, then array,
// collection, enum, scalar, bean and leaf converters.
func NewChain(opts ...Option) *Chain {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	leaf := func(t reflect.Type) bool { return o.Scalars.Supports(t) && t.Kind() != reflect.Interface }
	c := &Chain{opts: o}
	c.converters = append(c.converters, o.Converters...)
	c.converters = append(c.converters,
		arrayConverter{},
		collectionConverter{leaf: leaf},
	)
	if o.Enums != nil {
		c.converters = append(c.converters, enumConverter{enums: o.Enums})
	}
	c.converters = append(c.converters,
		scalarConverter{repo: o.Scalars},
		newBeanConverter(o),
		leafConverter{},
	)
	return c
}

// Convert converts value to a value of type to.
func (c *Chain) Convert(value any, to reflect.Type) (any, error) {
	out, err := c.convert(reflect.ValueOf(value), to)
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// ConvertValue is Convert over reflect values.
func (c *Chain) ConvertValue(value reflect.Value, to reflect.Type) (reflect.Value, error) {
	return c.convert(value, to)
}

func (c *Chain) convert(value reflect.Value, to reflect.Type) (reflect.Value, error) {
	for value.IsValid() && value.Kind() == reflect.Interface {
		value = value.Elem()
	}
	if !value.IsValid() || (value.Kind() == reflect.Pointer && value.IsNil()) {
		return reflect.Zero(to), nil
	}
	if value.Type().AssignableTo(to) {
		if value.Kind() == reflect.Map && to.Kind() == reflect.Map {
			return shallowCopy(value, to), nil
		}
		return value, nil
	}
	if ref, ok := reference(value, to); ok {
		return ref, nil
	}
	if isList(to) && !isList(value.Type()) && !c.leaf(to) {
		single := reflect.MakeSlice(reflect.TypeFor[[]any](), 1, 1)
		single.Index(0).Set(value)
		value = single
	}
	for _, conv := range c.converters {
		if !conv.Supports(value.Type(), to) {
			continue
		}
		out, err := conv.Convert(value, to, c.convert)
		if err != nil {
			return reflect.Value{}, err
		}
		if fitted, ok := fit(out, to); ok {
			return fitted, nil
		}
		return reflect.Value{}, ambiguous(value.Type(), to, "converter produced %s", typeOf(out))
	}
	return reflect.Value{}, ambiguous(value.Type(), to, "no converter")
}

func (c *Chain) leaf(t reflect.Type) bool {
	return c.opts.Scalars.Supports(t)
}

// shallowCopy copies a map so bound methods never alias request state.
func shallowCopy(m reflect.Value, to reflect.Type) reflect.Value {
	if m.IsNil() {
		return reflect.Zero(to)
	}
	out := reflect.MakeMapWithSize(to, m.Len())
	iter := m.MapRange()
	for iter.Next() {
		out.SetMapIndex(iter.Key(), iter.Value())
	}
	return out
}

func isList(t reflect.Type) bool {
	_, ok := generics.KindOf(t)
	return ok && t.Kind() != reflect.Pointer
}

// reference adds or removes one pointer level between value and to.
func reference(v reflect.Value, to reflect.Type) (reflect.Value, bool) {
	switch {
	case to.Kind() == reflect.Pointer && v.Kind() != reflect.Map && v.Type().AssignableTo(to.Elem()):
		ptr := reflect.New(to.Elem())
		ptr.Elem().Set(v)
		return ptr, true
	case v.Kind() == reflect.Pointer && !v.IsNil() && v.Type().Elem().AssignableTo(to):
		return v.Elem(), true
	}
	return reflect.Value{}, false
}

// fit adapts a converter result to the exact target type, adding or removing
// one pointer level and converting between named and underlying types.
func fit(v reflect.Value, to reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		return reflect.Zero(to), true
	}
	switch {
	case v.Type().AssignableTo(to):
		return v, true
	case to.Kind() == reflect.Pointer && v.Type().AssignableTo(to.Elem()):
		ptr := reflect.New(to.Elem())
		ptr.Elem().Set(v)
		return ptr, true
	case v.Kind() == reflect.Pointer && !v.IsNil() && v.Type().Elem().AssignableTo(to):
		return v.Elem(), true
	case to.Kind() == reflect.Pointer && v.Type().ConvertibleTo(to.Elem()) && v.Kind() == to.Elem().Kind():
		ptr := reflect.New(to.Elem())
		ptr.Elem().Set(v.Convert(to.Elem()))
		return ptr, true
	case v.Type().ConvertibleTo(to) && v.Kind() == to.Kind():
		return v.Convert(to), true
	}
	return reflect.Value{}, false
}
