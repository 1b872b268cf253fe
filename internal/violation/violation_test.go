package violation

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type widget struct{}

func TestAtPrefixesPath(t *testing.T) {
	var err error = &UnresolvableTypeError{Type: reflect.TypeFor[widget]()}
	err = At(At(err, "parts"), "Query")

	var target *UnresolvableTypeError
	require.True(t, errors.As(err, &target))
	require.Equal(t, Path{"Query", "parts"}, target.Path)
	require.Equal(t, "no resolver supports type violation.widget at Query.parts", err.Error())
}

func TestAtWrapsForeignErrors(t *testing.T) {
	base := errors.New("boom")
	err := At(base, "Query")
	require.ErrorIs(t, err, base)
	require.Equal(t, "Query: boom", err.Error())
	require.NoError(t, At(nil, "Query"))
}

func TestAtKeepsWrappedMessage(t *testing.T) {
	inner := &InvalidDeclarationError{Type: reflect.TypeFor[widget](), Message: "bad"}
	err := At(fmt.Errorf("loading: %w", inner), "Query")
	require.Equal(t, "Query: loading: invalid declaration of violation.widget: bad", err.Error())

	var target *InvalidDeclarationError
	require.True(t, errors.As(err, &target))
	require.Empty(t, target.Path)
}

func TestMessages(t *testing.T) {
	w := reflect.TypeFor[widget]()
	testCases := []struct {
		err  error
		want string
	}{
		{DuplicateField(w, "object", "id", "Widget"), `invalid declaration of violation.widget: duplicate field "id" found in object "Widget"`},
		{&CyclicLoadError{Type: w, Kind: "SCALAR", Chain: []reflect.Type{w, w}}, "cyclic reference to scalar violation.widget through violation.widget -> violation.widget"},
		{Invalid(nil, "bad %s", "thing"), "invalid declaration: bad thing"},
		{At(fmt.Errorf("wrapped: %w", UnknownDirectiveLocation(w, "NOWHERE")), "Widget"), `Widget: wrapped: invalid declaration of violation.widget: unknown directive location "NOWHERE"`},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.want, tc.err.Error())
	}
}
