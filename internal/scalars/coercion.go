package scalars

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Decode converts a loosely typed value into T, accepting any numeric
// representation for numeric targets.
func Decode[T any](value any) (T, error) {
	var out T
	err := mapstructure.Decode(value, &out)
	return out, err
}

type stringCoercing struct{}

func (stringCoercing) Serialize(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), nil
	}
	return nil, fmt.Errorf("String cannot represent %T", value)
}

func (stringCoercing) ParseValue(value any) (any, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return nil, fmt.Errorf("String cannot represent a non string value: %v", value)
}

type intCoercing struct {
	min, max int64
}

func (c intCoercing) Serialize(value any) (any, error) {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.String {
		return nil, fmt.Errorf("Int cannot represent non-integer value: %q", rv.String())
	}
	return c.ParseValue(value)
}

func (c intCoercing) ParseValue(value any) (any, error) {
	if f, ok := value.(float64); ok {
		if f < -(1<<63) || f >= 1<<63 {
			return nil, fmt.Errorf("Int cannot represent value out of range: %v", f)
		}
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("Int cannot represent non-integer value: %v", f)
		}
	}
	if _, ok := value.(string); ok {
		return nil, fmt.Errorf("Int cannot represent non-integer value: %q", value)
	}
	n, err := Decode[int64](value)
	if err != nil {
		return nil, err
	}
	if n < c.min || n > c.max {
		return nil, fmt.Errorf("Int cannot represent value out of range: %d", n)
	}
	return n, nil
}

type floatCoercing struct{}

func (floatCoercing) Serialize(value any) (any, error) { return floatCoercing{}.ParseValue(value) }

func (floatCoercing) ParseValue(value any) (any, error) {
	if _, ok := value.(string); ok {
		return nil, fmt.Errorf("Float cannot represent non numeric value: %q", value)
	}
	return Decode[float64](value)
}

type booleanCoercing struct{}

func (booleanCoercing) Serialize(value any) (any, error) { return booleanCoercing{}.ParseValue(value) }

func (booleanCoercing) ParseValue(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Bool {
		return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %v", value)
	}
	return rv.Bool(), nil
}

type idCoercing struct{}

func (idCoercing) Serialize(value any) (any, error) { return idCoercing{}.ParseValue(value) }

func (idCoercing) ParseValue(value any) (any, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprint(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprint(rv.Uint()), nil
	}
	return nil, fmt.Errorf("ID cannot represent value: %v", value)
}

type dateTimeCoercing struct{}

func (dateTimeCoercing) Serialize(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case *time.Time:
		return v.Format(time.RFC3339Nano), nil
	case *timestamppb.Timestamp:
		return v.AsTime().Format(time.RFC3339Nano), nil
	}
	return nil, fmt.Errorf("DateTime cannot represent %T", value)
}

func (dateTimeCoercing) ParseValue(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return time.Parse(time.RFC3339Nano, v)
	}
	return nil, fmt.Errorf("DateTime cannot represent %T", value)
}

type durationCoercing struct{}

func (durationCoercing) Serialize(value any) (any, error) {
	switch v := value.(type) {
	case time.Duration:
		return v.String(), nil
	case *durationpb.Duration:
		return v.AsDuration().String(), nil
	}
	return nil, fmt.Errorf("Duration cannot represent %T", value)
}

func (durationCoercing) ParseValue(value any) (any, error) {
	switch v := value.(type) {
	case time.Duration:
		return v, nil
	case string:
		return time.ParseDuration(v)
	}
	n, err := Decode[int64](value)
	if err != nil {
		return nil, fmt.Errorf("Duration cannot represent %T", value)
	}
	return time.Duration(n), nil
}

type bigIntCoercing struct{}

func (bigIntCoercing) Serialize(value any) (any, error) {
	switch v := value.(type) {
	case *big.Int:
		return v.String(), nil
	case big.Int:
		return v.String(), nil
	}
	return nil, fmt.Errorf("BigInteger cannot represent %T", value)
}

func (bigIntCoercing) ParseValue(value any) (any, error) {
	switch v := value.(type) {
	case *big.Int:
		return v, nil
	case string:
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, fmt.Errorf("BigInteger cannot represent %q", v)
		}
		return n, nil
	}
	n, err := Decode[int64](value)
	if err != nil {
		return nil, err
	}
	return big.NewInt(n), nil
}

type bigFloatCoercing struct{}

func (bigFloatCoercing) Serialize(value any) (any, error) {
	switch v := value.(type) {
	case *big.Float:
		return v.Text('g', -1), nil
	case big.Float:
		return v.Text('g', -1), nil
	}
	return nil, fmt.Errorf("BigDecimal cannot represent %T", value)
}

func (bigFloatCoercing) ParseValue(value any) (any, error) {
	switch v := value.(type) {
	case *big.Float:
		return v, nil
	case string:
		f, _, err := big.ParseFloat(v, 10, 0, big.ToNearestEven)
		return f, err
	}
	f, err := Decode[float64](value)
	if err != nil {
		return nil, err
	}
	return big.NewFloat(f), nil
}

type jsonCoercing struct{}

func (jsonCoercing) Serialize(value any) (any, error) {
	switch v := value.(type) {
	case json.RawMessage:
		var out any
		err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(v, &out)
		return out, err
	case *structpb.Struct:
		return v.AsMap(), nil
	case *structpb.Value:
		return v.AsInterface(), nil
	}
	return value, nil
}

func (jsonCoercing) ParseValue(value any) (any, error) { return value, nil }

type uuidCoercing struct{}

func (uuidCoercing) Serialize(value any) (any, error) {
	switch v := value.(type) {
	case uuid.UUID:
		return v.String(), nil
	case *uuid.UUID:
		return v.String(), nil
	}
	return nil, fmt.Errorf("UUID cannot represent %T", value)
}

func (uuidCoercing) ParseValue(value any) (any, error) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	}
	return nil, fmt.Errorf("UUID cannot represent %T", value)
}
