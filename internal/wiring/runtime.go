package wiring

import (
	"context"
	"reflect"

	"github.com/pkg/errors"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/scalars"
)

// Runtime is the host integration surface an execution engine consumes.
//
// General contract
//   - A Runtime is immutable once built and safe for concurrent use.
//   - Errors returned by bound methods are propagated unchanged.
//   - objectType and field are schema names; source is the parent value (nil
//     for root fields); args holds argument values keyed by argument name.
//
// Abstract types and leaf values
//   - ResolveType returns the concrete object name for interface and union
//     values. A registered TypeResolver decides first; otherwise the dynamic Go
//     type of the value is looked up among the exposed objects.
//   - SerializeLeafValue turns enum raw values into their names and scalars into
//     JSON-safe values through the scalar's coercion.
//   - ParseLeafValue is the inverse, used for request values.
type Runtime struct {
	fields        map[fieldKey]FieldResolver
	enums         map[string]*enumTable
	typeResolvers map[string]TypeResolver
	scalars       map[string]*scalars.Scalar
	objects       map[reflect.Type]string
}

// HasField reports whether objectType.field has a resolver.
func (r *Runtime) HasField(objectType, field string) bool {
	_, ok := r.fields[fieldKey{objectType, field}]
	return ok
}

// ResolveField runs the resolver bound to objectType.field.
func (r *Runtime) ResolveField(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	resolver, ok := r.fields[fieldKey{objectType, field}]
	if !ok {
		return nil, errors.Errorf("no resolver for %s.%s", objectType, field)
	}
	return resolver(ctx, source, args)
}

// ResolveType determines the concrete object name of value for abstractType.
func (r *Runtime) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	if resolver, ok := r.typeResolvers[abstractType]; ok {
		name, err := resolver(ctx, value)
		if err != nil || name != "" {
			return name, err
		}
	}
	if name, ok := r.ObjectName(reflect.TypeOf(value)); ok {
		return name, nil
	}
	return "", errors.Errorf("cannot resolve concrete type of %s for %T", abstractType, value)
}

// ObjectName returns the object name t is exposed as.
func (r *Runtime) ObjectName(t reflect.Type) (string, bool) {
	name, ok := r.objects[indirect(t)]
	return name, ok
}

// SerializeLeafValue serializes a scalar or enum value.
func (r *Runtime) SerializeLeafValue(_ context.Context, typeName string, value any) (any, error) {
	if table, ok := r.enums[typeName]; ok {
		if value != nil && reflect.ValueOf(value).Comparable() {
			if name, ok := table.names[value]; ok {
				return name, nil
			}
		}
		return nil, errors.Errorf("enum %s cannot represent value: %v", typeName, value)
	}
	if s, ok := r.scalars[typeName]; ok {
		return s.Coercing.Serialize(value)
	}
	return nil, errors.Errorf("unknown leaf type %s", typeName)
}

// ParseLeafValue parses a request value of a scalar or enum type.
func (r *Runtime) ParseLeafValue(_ context.Context, typeName string, value any) (any, error) {
	if table, ok := r.enums[typeName]; ok {
		name, _ := value.(string)
		if raw, ok := table.raw[name]; ok {
			return raw, nil
		}
		return nil, errors.Errorf("value %v does not exist in %s enum", value, typeName)
	}
	if s, ok := r.scalars[typeName]; ok {
		return s.Coercing.ParseValue(value)
	}
	return nil, errors.Errorf("unknown leaf type %s", typeName)
}

// EnumValue returns the raw value of an enum value name.
func (r *Runtime) EnumValue(typeName, name string) (any, bool) {
	table, ok := r.enums[typeName]
	if !ok {
		return nil, false
	}
	raw, ok := table.raw[name]
	return raw, ok
}

// EnumValues returns the value names of an enum in registration order.
func (r *Runtime) EnumValues(typeName string) []string {
	table, ok := r.enums[typeName]
	if !ok {
		return nil
	}
	return append([]string(nil), table.order...)
}
