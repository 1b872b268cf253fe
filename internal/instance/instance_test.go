package instance

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type greeter struct{ greeting string }

func (g *greeter) String() string { return g.greeting }

func TestAs(t *testing.T) {
	s, err := As[fmt.Stringer](nil, reflect.TypeFor[greeter]())
	require.NoError(t, err)
	require.Equal(t, "", s.String())

	_, err = As[error](Zero, reflect.TypeFor[greeter]())
	require.Error(t, err)

	_, err = As[fmt.Stringer](Zero, reflect.TypeFor[fmt.Stringer]())
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	g := &greeter{greeting: "hi"}
	r := NewRegistry(Zero).Register(g)

	v, err := r.Service(reflect.TypeFor[*greeter]())
	require.NoError(t, err)
	require.Same(t, g, v)

	type other struct{ n int }
	first, err := r.Service(reflect.TypeFor[other]())
	require.NoError(t, err)
	second, err := r.Service(reflect.TypeFor[other]())
	require.NoError(t, err)
	require.Same(t, first, second)

	_, err = NewRegistry(nil).Service(reflect.TypeFor[other]())
	require.Error(t, err)
}
