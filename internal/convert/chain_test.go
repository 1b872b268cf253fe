package convert

import (
	"errors"
	"iter"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type point struct {
	X int `graphql:"x"`
	Y int `graphql:"y"`
}

type person struct {
	Name    string
	Tags    []string
	Home    *point
	History []point
	name    string
}

func (p *person) SetNickname(v string) { p.name = v }

type color string

type colors struct{}

func (colors) IsEnum(t reflect.Type) bool { return t == reflect.TypeFor[color]() }

func (colors) EnumRaw(_ reflect.Type, name string) (any, bool) {
	switch name {
	case "RED":
		return color("red"), true
	case "GREEN":
		return color("green"), true
	}
	return nil, false
}

func TestChainConvert(t *testing.T) {
	chain := NewChain(WithEnums(colors{}))
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		value any
		to    reflect.Type
		want  any
	}{
		{"nil to pointer", nil, reflect.TypeFor[*point](), (*point)(nil)},
		{"assignable", "abc", reflect.TypeFor[string](), "abc"},
		{"float to int", float64(3), reflect.TypeFor[int](), 3},
		{"int64 to int32", int64(7), reflect.TypeFor[int32](), int32(7)},
		{"date time", "2024-05-01T12:00:00Z", reflect.TypeFor[time.Time](), when},
		{"list of ints", []any{1, 2, 3}, reflect.TypeFor[[]int](), []int{1, 2, 3}},
		{"single value to list", "a", reflect.TypeFor[[]string](), []string{"a"}},
		{"array", []any{1, 2}, reflect.TypeFor[[3]int](), [3]int{1, 2, 0}},
		{"set", []any{"a", "b"}, reflect.TypeFor[map[string]struct{}](), map[string]struct{}{"a": {}, "b": {}}},
		{"bool set", []any{"a"}, reflect.TypeFor[map[string]bool](), map[string]bool{"a": true}},
		{"enum", "RED", reflect.TypeFor[color](), color("red")},
		{"enum list", []any{"GREEN", "RED"}, reflect.TypeFor[[]color](), []color{"green", "red"}},
		{"bean", map[string]any{"x": 1, "y": 2}, reflect.TypeFor[point](), point{X: 1, Y: 2}},
		{"bean pointer", map[string]any{"x": 1}, reflect.TypeFor[*point](), &point{X: 1}},
		{
			"nested bean",
			map[string]any{
				"name":    "ada",
				"tags":    []any{"a"},
				"home":    map[string]any{"x": 1, "y": 1},
				"history": []any{map[string]any{"x": 2}},
			},
			reflect.TypeFor[person](),
			person{Name: "ada", Tags: []string{"a"}, Home: &point{X: 1, Y: 1}, History: []point{{X: 2}}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := chain.Convert(tc.value, tc.to)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(person{})); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChainUsesSetterMethods(t *testing.T) {
	got, err := NewChain().Convert(map[string]any{"nickname": "bob"}, reflect.TypeFor[*person]())
	require.NoError(t, err)
	require.Equal(t, "bob", got.(*person).name)
}

func TestChainShallowCopiesMaps(t *testing.T) {
	in := map[string]any{"a": 1}
	got, err := NewChain().Convert(in, reflect.TypeFor[map[string]any]())
	require.NoError(t, err)
	out := got.(map[string]any)
	out["b"] = 2
	require.NotContains(t, in, "b")
}

func TestChainSeq(t *testing.T) {
	got, err := NewChain().Convert([]any{1, 2}, reflect.TypeFor[iter.Seq[int]]())
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, slices.Collect(got.(iter.Seq[int])))
}

func TestChainProtobufScalar(t *testing.T) {
	got, err := NewChain().Convert("2024-05-01T12:00:00Z", reflect.TypeFor[*timestamppb.Timestamp]())
	require.NoError(t, err)
	require.Equal(t, int64(1714564800), got.(*timestamppb.Timestamp).GetSeconds())
}

func TestChainErrors(t *testing.T) {
	chain := NewChain(WithEnums(colors{}))
	testCases := []struct {
		name  string
		value any
		to    reflect.Type
	}{
		{"unknown key", map[string]any{"z": 1}, reflect.TypeFor[point]()},
		{"unknown enum", "BLUE", reflect.TypeFor[color]()},
		{"array overflow", []any{1, 2}, reflect.TypeFor[[1]int]()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chain.Convert(tc.value, tc.to)
			var target *AmbiguousConversionError
			require.True(t, errors.As(err, &target), "got %v", err)
		})
	}
}

func TestChainErrorsDoNotPoisonCache(t *testing.T) {
	chain := NewChain()
	_, err := chain.Convert(map[string]any{"z": 1}, reflect.TypeFor[point]())
	require.Error(t, err)
	got, err := chain.Convert(map[string]any{"x": 5}, reflect.TypeFor[point]())
	require.NoError(t, err)
	require.Equal(t, point{X: 5}, got)
}

type signup struct {
	Email string `graphql:"email" validate:"required,email"`
}

func TestChainValidates(t *testing.T) {
	chain := NewChain(WithValidator(validator.New()))
	_, err := chain.Convert(map[string]any{"email": "nope"}, reflect.TypeFor[signup]())
	require.Error(t, err)
	var invalid validator.ValidationErrors
	require.True(t, errors.As(err, &invalid))

	got, err := chain.Convert(map[string]any{"email": "a@b.co"}, reflect.TypeFor[signup]())
	require.NoError(t, err)
	require.Equal(t, signup{Email: "a@b.co"}, got)
}

type prefixed struct{}

func (prefixed) Supports(from, to reflect.Type) bool {
	return from.Kind() == reflect.String && to == reflect.TypeFor[color]()
}

func (prefixed) Convert(value reflect.Value, _ reflect.Type, _ Fallback) (reflect.Value, error) {
	return reflect.ValueOf("custom:" + value.String()), nil
}

func TestChainCallerConvertersRunFirst(t *testing.T) {
	chain := NewChain(WithConverters(prefixed{}), WithEnums(colors{}))
	got, err := chain.Convert("RED", reflect.TypeFor[color]())
	require.NoError(t, err)
	require.Equal(t, color("custom:RED"), got)
}

type Titled struct {
	Title string `graphql:"name"`
}

type book struct {
	Titled
	Name string
}

func TestChainPrefersOuterDeclaration(t *testing.T) {
	got, err := NewChain().Convert(map[string]any{"name": "Dune"}, reflect.TypeFor[book]())
	require.NoError(t, err)
	require.Equal(t, book{Name: "Dune"}, got)
}
