package scalars

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
)

type Celsius float64

type Money struct{ Cents int64 }

func (m Money) String() string { return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100) }

type Priced struct{ Money }

func (Priced) Currency() string { return "EUR" }

type currencyStringer interface {
	fmt.Stringer
	Currency() string
}

var moneyScalar = &Scalar{
	Definition: &language.Definition{Kind: language.Scalar, Name: "Money"},
	Coercing:   StringScalar.Coercing,
}

var pricedScalar = &Scalar{
	Definition: &language.Definition{Kind: language.Scalar, Name: "Priced"},
	Coercing:   StringScalar.Coercing,
}

func TestLookup(t *testing.T) {
	type testCase struct {
		name string
		t    reflect.Type
		want string
	}
	r := New()
	cases := []testCase{
		{"string", reflect.TypeFor[string](), "String"},
		{"int", reflect.TypeFor[int](), "Int"},
		{"int64 is long", reflect.TypeFor[int64](), "Long"},
		{"pointer stripped", reflect.TypeFor[*time.Time](), "DateTime"},
		{"duration", reflect.TypeFor[time.Duration](), "Duration"},
		{"named type falls back to underlying", reflect.TypeFor[Celsius](), "Float"},
		{"uuid", reflect.TypeFor[uuid.UUID](), "UUID"},
		{"protobuf timestamp", reflect.TypeFor[*timestamppb.Timestamp](), "DateTime"},
		{"id", reflect.TypeFor[ID](), "ID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, ok := r.Lookup(tc.t)
			require.True(t, ok)
			require.Equal(t, tc.want, e.Scalar.Name())
		})
	}

	_, ok := r.Lookup(reflect.TypeFor[Money]())
	require.False(t, ok)
	_, ok = r.Lookup(nil)
	require.False(t, ok)
}

func TestInterfaceRegistrationPrefersMostSpecific(t *testing.T) {
	r := NewEmpty().
		Register(reflect.TypeFor[fmt.Stringer](), moneyScalar, nil).
		Register(reflect.TypeFor[currencyStringer](), pricedScalar, nil)

	e, ok := r.Lookup(reflect.TypeFor[Money]())
	require.True(t, ok)
	require.Equal(t, "Money", e.Scalar.Name())

	e, ok = r.Lookup(reflect.TypeFor[Priced]())
	require.True(t, ok)
	require.Equal(t, "Priced", e.Scalar.Name())
}

func TestRegisterInvalidatesLookups(t *testing.T) {
	r := New()
	e, ok := r.Lookup(reflect.TypeFor[Celsius]())
	require.True(t, ok)
	require.Equal(t, "Float", e.Scalar.Name())

	temperature := &Scalar{
		Definition: &language.Definition{Kind: language.Scalar, Name: "Temperature"},
		Coercing:   FloatScalar.Coercing,
	}
	r.Register(reflect.TypeFor[Celsius](), temperature, nil)
	e, ok = r.Lookup(reflect.TypeFor[Celsius]())
	require.True(t, ok)
	require.Equal(t, "Temperature", e.Scalar.Name())

	got, ok := r.Scalar("Temperature")
	require.True(t, ok)
	require.Same(t, temperature, got)
}

func TestScalarsAreSortedAndUnique(t *testing.T) {
	var names []string
	for _, s := range New().Scalars() {
		names = append(names, s.Name())
	}
	require.IsIncreasing(t, names)
	require.Contains(t, names, "Long")
	require.Contains(t, names, "JSON")
}

func TestConcurrentRegisterAndLookup(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register(reflect.TypeFor[Money](), moneyScalar, nil)
		}()
		go func() {
			defer wg.Done()
			_, ok := r.Lookup(reflect.TypeFor[string]())
			require.True(t, ok)
		}()
	}
	wg.Wait()
	require.True(t, r.Supports(reflect.TypeFor[Money]()))
}

func TestEntryParse(t *testing.T) {
	e, ok := New().Lookup(reflect.TypeFor[ID]())
	require.True(t, ok)
	v, err := e.Parse("42")
	require.NoError(t, err)
	require.Equal(t, ID("42"), v)

	e, ok = New().Lookup(reflect.TypeFor[int8]())
	require.True(t, ok)
	_, err = e.Parse(1000)
	require.Error(t, err)
}

func TestLongParseFloat(t *testing.T) {
	type testCase struct {
		name string
		in   float64
		want any
		err  string
	}
	cases := []testCase{
		{"integral", 42, int64(42), ""},
		{"fraction", 1.5, nil, "non-integer"},
		{"not a number", math.NaN(), nil, "non-integer"},
		{"two to the 63", 1 << 63, nil, "out of range"},
		{"too small", -1e19, nil, "out of range"},
		{"infinite", math.Inf(1), nil, "out of range"},
		{"smallest", -(1 << 63), int64(math.MinInt64), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LongScalar.Coercing.ParseValue(tc.in)
			if tc.err != "" {
				require.ErrorContains(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
