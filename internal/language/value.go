package language

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Literal converts Go values into schema value literals, as used for default
// values and directive arguments.
type Literal struct {
	// Enum names an enumerant. It reports false for values that are not enumerants.
	Enum func(v reflect.Value) (string, bool)
	// Fields returns the schema-named field values of a struct value.
	Fields func(v reflect.Value) (map[string]any, error)
}

// ValueOf converts v into a literal.
func (l Literal) ValueOf(v any) (*Value, error) {
	return l.valueOf(reflect.ValueOf(v))
}

func (l Literal) valueOf(rv reflect.Value) (*Value, error) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return &Value{Kind: NullValue, Raw: "null"}, nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return &Value{Kind: NullValue, Raw: "null"}, nil
	}
	if l.Enum != nil {
		if name, ok := l.Enum(rv); ok {
			return &Value{Kind: EnumValue, Raw: name}, nil
		}
	}
	if n, ok := rv.Interface().(json.Number); ok {
		if strings.ContainsAny(string(n), ".eE") {
			return &Value{Kind: FloatValue, Raw: string(n)}, nil
		}
		return &Value{Kind: IntValue, Raw: string(n)}, nil
	}
	switch rv.Kind() {
	case reflect.Bool:
		return &Value{Kind: BooleanValue, Raw: strconv.FormatBool(rv.Bool())}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Value{Kind: IntValue, Raw: strconv.FormatInt(rv.Int(), 10)}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Value{Kind: IntValue, Raw: strconv.FormatUint(rv.Uint(), 10)}, nil
	case reflect.Float32, reflect.Float64:
		return &Value{Kind: FloatValue, Raw: strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())}, nil
	case reflect.String:
		return &Value{Kind: StringValue, Raw: rv.String()}, nil
	case reflect.Slice, reflect.Array:
		ret := &Value{Kind: ListValue}
		for i := 0; i < rv.Len(); i++ {
			item, err := l.valueOf(rv.Index(i))
			if err != nil {
				return nil, err
			}
			ret.Children = append(ret.Children, &ChildValue{Value: item})
		}
		return ret, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cannot represent %s as a literal: keys must be strings", rv.Type())
		}
		fields := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = iter.Value().Interface()
		}
		return l.object(fields)
	case reflect.Struct:
		if l.Fields == nil {
			return nil, fmt.Errorf("cannot represent %s as a literal", rv.Type())
		}
		fields, err := l.Fields(rv)
		if err != nil {
			return nil, err
		}
		return l.object(fields)
	}
	return nil, fmt.Errorf("cannot represent %s as a literal", rv.Type())
}

func (l Literal) object(fields map[string]any) (*Value, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	ret := &Value{Kind: ObjectValue}
	for _, name := range names {
		item, err := l.valueOf(reflect.ValueOf(fields[name]))
		if err != nil {
			return nil, err
		}
		ret.Children = append(ret.Children, &ChildValue{Name: name, Value: item})
	}
	return ret, nil
}

// GoValue converts a literal back into a Go value: objects become
// map[string]any, lists []any, enums their name.
func GoValue(v *Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	return v.Value(nil)
}
