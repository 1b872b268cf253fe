package argument

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/convert"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/instance"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/reqid"
)

type Counter struct {
	Total int
}

func (c *Counter) Add(ctx context.Context, id reqid.ID, req *Request, by int, tags []string) (string, error) {
	if by < 0 {
		return "", errors.New("negative step")
	}
	c.Total += by
	return fmt.Sprintf("%s:%s.%s:%d:%d", id, req.Type, req.Field, c.Total, len(tags)), nil
}

type Area struct {
	W int
	H int
}

type Shelf struct {
	prefix string
}

func (s *Shelf) Greet(name string) string { return s.prefix + name }

func (s *Shelf) Size(a Area) int { return a.W * a.H }

func (s *Shelf) Owner(c *Counter) int { return c.Total }

func (s *Shelf) Join(parts ...string) string { return s.prefix + strings.Join(parts, ",") }

// testField describes the member goName of owner with its parameters named
// by names.
func testField(t *testing.T, owner reflect.Type, goName string, names ...string) *descriptor.Field {
	t.Helper()
	i := introspect.New(nil)
	members, err := i.Members(owner)
	require.NoError(t, err)
	for _, m := range members {
		if m.GoName != goName {
			continue
		}
		f := &descriptor.Field{Name: m.Name, Owner: owner, Member: m}
		for n, p := range i.Params(owner, m) {
			arg := &descriptor.Argument{Param: p, Injected: Injectable(owner, p), Target: p.Type}
			arg.Name = names[n]
			f.Params = append(f.Params, arg)
		}
		return f
	}
	t.Fatalf("no member %s", goName)
	return nil
}

func testEnv(services instance.Services) *Env {
	return &Env{Converter: convert.NewChain(), Services: services, Logger: logr.Discard()}
}

func TestInjectable(t *testing.T) {
	type testCase struct {
		name  string
		owner reflect.Type
		param introspect.Param
		want  bool
	}
	counter := reflect.TypeFor[Counter]()
	cases := []testCase{
		{"context", counter, introspect.Param{Type: reflect.TypeFor[context.Context]()}, true},
		{"request id", counter, introspect.Param{Type: reflect.TypeFor[reqid.ID]()}, true},
		{"request", counter, introspect.Param{Type: reflect.TypeFor[*Request]()}, true},
		{"owner", counter, introspect.Param{Type: reflect.TypeFor[*Counter]()}, true},
		{"marked source", counter, introspect.Param{Type: reflect.TypeFor[string](), Attributes: introspect.Attributes{meta.Source{}}}, true},
		{"plain", counter, introspect.Param{Type: reflect.TypeFor[int]()}, false},
		{"no owner", nil, introspect.Param{Type: reflect.TypeFor[int]()}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Injectable(tc.owner, tc.param))
		})
	}
}

func TestResolveInjectsRequest(t *testing.T) {
	f := testField(t, reflect.TypeFor[Counter](), "Add", "ctx", "id", "req", "by", "tags")
	b, err := Bind("Counter", f, testEnv(nil), nil)
	require.NoError(t, err)

	ctx := reqid.WithID(context.Background(), "req-1")
	source := &Counter{Total: 1}
	got, err := b.Resolve(ctx, source, map[string]any{"by": 2, "tags": []any{"a", "b"}})
	require.NoError(t, err)
	require.Equal(t, "req-1:Counter.add:3:2", got)
	require.Equal(t, 3, source.Total)

	_, err = b.Resolve(ctx, source, map[string]any{"by": -1})
	require.EqualError(t, err, "negative step")

	got, err = b.Resolve(ctx, (*Counter)(nil), map[string]any{"by": 1})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestResolveAssignsRequestID(t *testing.T) {
	f := testField(t, reflect.TypeFor[Counter](), "Add", "ctx", "id", "req", "by", "tags")
	b, err := Bind("Counter", f, testEnv(nil), nil)
	require.NoError(t, err)

	got, err := b.Resolve(context.Background(), Counter{}, nil)
	require.NoError(t, err)
	require.Regexp(t, `^[0-9a-f-]{36}:Counter\.add:0:0$`, got)
}

func TestResolveProperty(t *testing.T) {
	f := testField(t, reflect.TypeFor[Counter](), "Total")
	b, err := Bind("Counter", f, testEnv(nil), nil)
	require.NoError(t, err)

	got, err := b.Resolve(context.Background(), &Counter{Total: 4}, nil)
	require.NoError(t, err)
	require.Equal(t, 4, got)

	got, err = b.Resolve(context.Background(), (*Counter)(nil), nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestResolveUsesService(t *testing.T) {
	services := instance.NewRegistry(nil).Register(&Shelf{prefix: "hi "})
	f := testField(t, reflect.TypeFor[Shelf](), "Greet", "name")
	b, err := Bind("Query", f, testEnv(services), nil)
	require.NoError(t, err)

	got, err := b.Resolve(context.Background(), nil, map[string]any{"name": "ada"})
	require.NoError(t, err)
	require.Equal(t, "hi ada", got)

	got, err = b.Resolve(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, "hi ", got, "missing arguments take the zero value")

	unbound, err := Bind("Query", f, testEnv(nil), nil)
	require.NoError(t, err)
	_, err = unbound.Resolve(context.Background(), nil, nil)
	require.ErrorContains(t, err, "no service provides")
}

func TestResolveInjectsParent(t *testing.T) {
	services := instance.NewRegistry(instance.Zero)
	f := testField(t, reflect.TypeFor[Shelf](), "Owner", "counter")
	require.False(t, f.Params[0].Injected)
	f.Params[0].Param.Attributes = introspect.Attributes{meta.Source{}}
	f.Params[0].Injected = Injectable(f.Owner, f.Params[0].Param)
	require.True(t, f.Params[0].Injected)
	b, err := Bind("Counter", f, testEnv(services), nil)
	require.NoError(t, err)

	got, err := b.Resolve(context.Background(), &Counter{Total: 7}, nil)
	require.NoError(t, err)
	require.Equal(t, 7, got)
}

func TestResolveDecomposed(t *testing.T) {
	services := instance.NewRegistry(instance.Zero)
	f := testField(t, reflect.TypeFor[Shelf](), "Size", "area")
	area := f.Params[0]
	for _, name := range []string{"w", "h"} {
		d := &descriptor.Argument{Target: reflect.TypeFor[int]()}
		d.Name = name
		area.Decomposed = append(area.Decomposed, d)
	}
	b, err := Bind("Query", f, testEnv(services), nil)
	require.NoError(t, err)

	got, err := b.Resolve(context.Background(), nil, map[string]any{"w": 2, "h": 3})
	require.NoError(t, err)
	require.Equal(t, 6, got)
}

func TestCallerFactoriesRunFirst(t *testing.T) {
	services := instance.NewRegistry(instance.Zero).Register(&Shelf{})
	override := FactoryFunc(func(arg *descriptor.Argument, _ *Env) (Provider, bool, error) {
		if arg.Name != "name" {
			return nil, false, nil
		}
		return func(*Request) (reflect.Value, error) { return reflect.ValueOf("fixed"), nil }, true, nil
	})
	f := testField(t, reflect.TypeFor[Shelf](), "Greet", "name")
	b, err := Bind("Query", f, testEnv(services), []Factory{override})
	require.NoError(t, err)

	got, err := b.Resolve(context.Background(), nil, map[string]any{"name": "ada"})
	require.NoError(t, err)
	require.Equal(t, "fixed", got)

	failing := FactoryFunc(func(*descriptor.Argument, *Env) (Provider, bool, error) {
		return nil, false, errors.New("boom")
	})
	_, err = Providers(f, testEnv(services), []Factory{failing})
	require.ErrorContains(t, err, "argument name of greet: boom")
}

func TestResolveVariadic(t *testing.T) {
	services := instance.NewRegistry(nil).Register(&Shelf{prefix: "tags:"})
	f := testField(t, reflect.TypeFor[Shelf](), "Join", "parts")
	require.Equal(t, reflect.TypeFor[[]string](), f.Params[0].Target)
	b, err := Bind("Query", f, testEnv(services), nil)
	require.NoError(t, err)

	got, err := b.Resolve(context.Background(), nil, map[string]any{"parts": []any{"a", "b"}})
	require.NoError(t, err)
	require.Equal(t, "tags:a,b", got)

	got, err = b.Resolve(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, "tags:", got)
}

func TestResolveUsesDefaults(t *testing.T) {
	services := instance.NewRegistry(instance.Zero).Register(&Shelf{prefix: "hi "})
	f := testField(t, reflect.TypeFor[Shelf](), "Greet", "name")
	f.Params[0].Default = &language.Value{Kind: language.StringValue, Raw: "guest"}
	b, err := Bind("Query", f, testEnv(services), nil)
	require.NoError(t, err)

	got, err := b.Resolve(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, "hi guest", got)

	got, err = b.Resolve(context.Background(), nil, map[string]any{"name": "ada"})
	require.NoError(t, err)
	require.Equal(t, "hi ada", got)

	size := testField(t, reflect.TypeFor[Shelf](), "Size", "area")
	for _, name := range []string{"w", "h"} {
		d := &descriptor.Argument{Target: reflect.TypeFor[int]()}
		d.Name = name
		size.Params[0].Decomposed = append(size.Params[0].Decomposed, d)
	}
	size.Params[0].Decomposed[1].Default = &language.Value{Kind: language.IntValue, Raw: "5"}
	b, err = Bind("Query", size, testEnv(services), nil)
	require.NoError(t, err)

	got, err = b.Resolve(context.Background(), nil, map[string]any{"w": 2})
	require.NoError(t, err)
	require.Equal(t, 10, got)
}
