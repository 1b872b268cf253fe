package scalars

import (
	"fmt"
	"reflect"
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// registerProtobuf maps protobuf well-known types onto the scalars of their
// Go counterparts, so generated messages can be exposed directly.
func registerProtobuf(r *Repository) {
	r.Register(reflect.TypeFor[*timestamppb.Timestamp](), DateTimeScalar, func(v any) (any, error) {
		return timestamppb.New(v.(time.Time)), nil
	})
	r.Register(reflect.TypeFor[*durationpb.Duration](), DurationScalar, func(v any) (any, error) {
		return durationpb.New(v.(time.Duration)), nil
	})
	r.Register(reflect.TypeFor[*structpb.Struct](), JSONScalar, func(v any) (any, error) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("JSON: expected object, got %T", v)
		}
		return structpb.NewStruct(m)
	})
	r.Register(reflect.TypeFor[*structpb.Value](), JSONScalar, func(v any) (any, error) {
		return structpb.NewValue(v)
	})

	r.Register(reflect.TypeFor[*wrapperspb.StringValue](), wrapperScalar(StringScalar), func(v any) (any, error) {
		return wrapperspb.String(v.(string)), nil
	})
	r.Register(reflect.TypeFor[*wrapperspb.BoolValue](), wrapperScalar(BooleanScalar), func(v any) (any, error) {
		return wrapperspb.Bool(v.(bool)), nil
	})
	r.Register(reflect.TypeFor[*wrapperspb.DoubleValue](), wrapperScalar(FloatScalar), func(v any) (any, error) {
		return wrapperspb.Double(v.(float64)), nil
	})
	r.Register(reflect.TypeFor[*wrapperspb.Int32Value](), wrapperScalar(IntScalar), func(v any) (any, error) {
		return wrapperspb.Int32(int32(v.(int64))), nil
	})
	r.Register(reflect.TypeFor[*wrapperspb.Int64Value](), wrapperScalar(LongScalar), func(v any) (any, error) {
		return wrapperspb.Int64(v.(int64)), nil
	})
}

// wrapperScalar serializes protobuf wrapper messages through their wrapped
// value while keeping the base scalar's definition.
func wrapperScalar(base *Scalar) *Scalar {
	return &Scalar{Definition: base.Definition, Coercing: wrapperCoercing{base: base.Coercing}}
}

type wrapperCoercing struct {
	base Coercing
}

func (c wrapperCoercing) Serialize(value any) (any, error) {
	switch v := value.(type) {
	case *wrapperspb.StringValue:
		return c.base.Serialize(v.GetValue())
	case *wrapperspb.BoolValue:
		return c.base.Serialize(v.GetValue())
	case *wrapperspb.DoubleValue:
		return c.base.Serialize(v.GetValue())
	case *wrapperspb.Int32Value:
		return c.base.Serialize(v.GetValue())
	case *wrapperspb.Int64Value:
		return c.base.Serialize(v.GetValue())
	}
	return c.base.Serialize(value)
}

func (c wrapperCoercing) ParseValue(value any) (any, error) { return c.base.ParseValue(value) }
