package scalars

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/vektah/gqlparser/v2/ast"
)

// ID is a string mapped onto the ID scalar.
type ID string

var (
	StringScalar = &Scalar{
		Definition: builtinDefinition("String", "The `String` scalar type represents textual data, represented as UTF-8 character sequences."),
		Coercing:   stringCoercing{},
	}
	IntScalar = &Scalar{
		Definition: builtinDefinition("Int", "The `Int` scalar type represents non-fractional signed whole numeric values."),
		Coercing:   intCoercing{min: math.MinInt32, max: math.MaxInt32},
	}
	FloatScalar = &Scalar{
		Definition: builtinDefinition("Float", "The `Float` scalar type represents signed double-precision fractional values."),
		Coercing:   floatCoercing{},
	}
	BooleanScalar = &Scalar{
		Definition: builtinDefinition("Boolean", "The `Boolean` scalar type represents `true` or `false`."),
		Coercing:   booleanCoercing{},
	}
	IDScalar = &Scalar{
		Definition: builtinDefinition("ID", "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching."),
		Coercing:   idCoercing{},
	}
	LongScalar = &Scalar{
		Definition: customDefinition("Long", "A 64-bit signed integer.", ""),
		Coercing:   intCoercing{min: math.MinInt64, max: math.MaxInt64},
	}
	DateTimeScalar = &Scalar{
		Definition: customDefinition("DateTime", "An RFC 3339 date-time string.", "https://scalars.graphql.org/andimarek/date-time"),
		Coercing:   dateTimeCoercing{},
	}
	DurationScalar = &Scalar{
		Definition: customDefinition("Duration", "A duration such as \"1h30m\".", ""),
		Coercing:   durationCoercing{},
	}
	BigIntegerScalar = &Scalar{
		Definition: customDefinition("BigInteger", "An arbitrary precision integer.", ""),
		Coercing:   bigIntCoercing{},
	}
	BigDecimalScalar = &Scalar{
		Definition: customDefinition("BigDecimal", "An arbitrary precision decimal.", ""),
		Coercing:   bigFloatCoercing{},
	}
	JSONScalar = &Scalar{
		Definition: customDefinition("JSON", "An arbitrary JSON value.", ""),
		Coercing:   jsonCoercing{},
	}
	UUIDScalar = &Scalar{
		Definition: customDefinition("UUID", "An RFC 4122 UUID string.", "https://tools.ietf.org/html/rfc4122"),
		Coercing:   uuidCoercing{},
	}
)

func builtinDefinition(name, description string) *ast.Definition {
	return &ast.Definition{Kind: ast.Scalar, Name: name, Description: description, BuiltIn: true}
}

func customDefinition(name, description, specifiedBy string) *ast.Definition {
	def := &ast.Definition{Kind: ast.Scalar, Name: name, Description: description}
	if specifiedBy != "" {
		def.Directives = ast.DirectiveList{{
			Name: "specifiedBy",
			Arguments: ast.ArgumentList{{
				Name:  "url",
				Value: &ast.Value{Kind: ast.StringValue, Raw: specifiedBy},
			}},
		}}
	}
	return def
}

func registerBuiltins(r *Repository) {
	r.Register(reflect.TypeFor[string](), StringScalar, nil)
	for _, t := range []reflect.Type{
		reflect.TypeFor[int](), reflect.TypeFor[int8](), reflect.TypeFor[int16](),
		reflect.TypeFor[int32](), reflect.TypeFor[uint8](), reflect.TypeFor[uint16](),
	} {
		r.Register(t, IntScalar, convertTo(t))
	}
	for _, t := range []reflect.Type{
		reflect.TypeFor[int64](), reflect.TypeFor[uint](), reflect.TypeFor[uint32](), reflect.TypeFor[uint64](),
	} {
		r.Register(t, LongScalar, convertTo(t))
	}
	r.Register(reflect.TypeFor[float64](), FloatScalar, nil)
	r.Register(reflect.TypeFor[float32](), FloatScalar, convertTo(reflect.TypeFor[float32]()))
	r.Register(reflect.TypeFor[bool](), BooleanScalar, nil)
	r.Register(reflect.TypeFor[ID](), IDScalar, func(v any) (any, error) { return ID(v.(string)), nil })
	r.Register(reflect.TypeFor[time.Time](), DateTimeScalar, nil)
	r.Register(reflect.TypeFor[time.Duration](), DurationScalar, nil)
	r.Register(reflect.TypeFor[big.Int](), BigIntegerScalar, nil)
	r.Register(reflect.TypeFor[big.Float](), BigDecimalScalar, nil)
	r.Register(reflect.TypeFor[map[string]any](), JSONScalar, func(v any) (any, error) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("JSON: expected object, got %T", v)
		}
		return m, nil
	})
	r.Register(reflect.TypeFor[json.RawMessage](), JSONScalar, func(v any) (any, error) {
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
		return json.RawMessage(data), err
	})
	r.Register(reflect.TypeFor[uuid.UUID](), UUIDScalar, nil)
}

// convertTo converts a canonical numeric value to t, failing on overflow.
func convertTo(t reflect.Type) func(any) (any, error) {
	return func(v any) (any, error) {
		rv := reflect.ValueOf(v)
		if !rv.CanConvert(t) {
			return nil, fmt.Errorf("cannot convert %T to %s", v, t)
		}
		out := rv.Convert(t)
		if back := out.Convert(rv.Type()); !back.Equal(rv) {
			return nil, fmt.Errorf("value %v overflows %s", v, t)
		}
		return out.Interface(), nil
	}
}
