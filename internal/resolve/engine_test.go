package resolve

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/scalars"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/wiring"
)

type Foo struct {
	ID   int64 `graphql:"id,nonnull"`
	Name string
}

type Node struct {
	Parent *Node
	Label  string
}

type Color string

const (
	Red   Color = "RED"
	Green Color = "GREEN"
	Blue  Color = "BLUE"
)

type ColorExtension struct{}

type Point struct {
	X int
	Y int
}

type Geometry struct{}

func (Geometry) Locate(p Point) string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

type InstantA struct{ Seconds int64 }
type InstantB struct{ Millis int64 }

type Clock struct {
	Started InstantA
	Stopped InstantB
}

type User struct {
	Name string
}

type Holder struct {
	Value any   `graphql:"value,typevar=T"`
	List  []any `graphql:"list,typevar=T"`
}

type Direct struct {
	Value User
	List  []User
}

// collect drains the engine's stream.
func collect(t *testing.T, e *Engine) []*Provider {
	t.Helper()
	var ret []*Provider
	for p, err := range e.Stream() {
		require.NoError(t, err)
		ret = append(ret, p)
	}
	return ret
}

func named(ps []*Provider) []string {
	var ret []string
	for _, p := range ps {
		ret = append(ret, p.Name)
	}
	return ret
}

func wire(ps []*Provider) *wiring.Runtime {
	b := wiring.NewBuilder()
	for _, p := range ps {
		b = p.Wire(b)
	}
	return b.Build()
}

func TestObjectFieldsInDeclarationOrder(t *testing.T) {
	e := New().AddRoot(reflect.TypeFor[Foo]())
	ps := collect(t, e)

	require.Equal(t, []string{"Foo", "Long", "String"}, named(ps))
	def := ps[0].Definition
	require.Equal(t, language.Object, def.Kind)
	require.Len(t, def.Fields, 2)

	want := []string{"id: Long!", "name: String"}
	var got []string
	for _, f := range def.Fields {
		got = append(got, f.Name+": "+f.Type.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	e := New()
	first, err := e.Resolve(reflect.TypeFor[Foo]())
	require.NoError(t, err)
	second, err := e.Resolve(reflect.TypeFor[*Foo]())
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestSelfReferenceUsesName(t *testing.T) {
	e := New().AddRoot(reflect.TypeFor[Node]())
	ps := collect(t, e)

	require.Equal(t, []string{"Node", "String"}, named(ps))
	parent := ps[0].Definition.Fields.ForName("parent")
	require.NotNil(t, parent)
	require.Equal(t, "Node", parent.Type.NamedType)
	require.False(t, ps[0].Placeholder())
}

func TestEnumExtensionAddsValues(t *testing.T) {
	reg := introspect.NewRegistry().
		Type(reflect.TypeFor[Color](), meta.Enum{Values: []any{Red, Green}}).
		Type(reflect.TypeFor[ColorExtension](),
			meta.Extends{Target: reflect.TypeFor[Color]()},
			meta.Enum{Values: []any{Blue}},
		)
	e := New(WithIntrospector(introspect.New(reg))).
		AddRoot(reflect.TypeFor[ColorExtension]())
	ps := collect(t, e)

	require.Equal(t, []string{"Color", "Color"}, named(ps))
	ext, base := ps[0], ps[1]
	require.True(t, ext.Extension)
	require.Same(t, base, ext.Parent)
	require.Len(t, base.Definition.EnumValues, 2)
	require.Equal(t, "BLUE", ext.Definition.EnumValues[0].Name)

	rt := wire(ps)
	require.Equal(t, []string{"RED", "GREEN", "BLUE"}, rt.EnumValues("Color"))
	raw, ok := rt.EnumValue("Color", "BLUE")
	require.True(t, ok)
	require.Equal(t, Blue, raw)

	raw, ok = e.Enums().EnumRaw(reflect.TypeFor[Color](), "BLUE")
	require.True(t, ok)
	require.Equal(t, Blue, raw)
}

func TestDecomposedArgumentIsReassembled(t *testing.T) {
	e := New().AddRoot(reflect.TypeFor[Geometry]())
	ps := collect(t, e)

	def := ps[0].Definition
	locate := def.Fields.ForName("locate")
	require.NotNil(t, locate)
	var args []string
	for _, a := range locate.Arguments {
		args = append(args, a.Name+": "+a.Type.String())
	}
	require.Equal(t, []string{"x: Int", "y: Int"}, args)
	require.NotContains(t, named(ps), "Point")

	rt := wire(ps)
	got, err := rt.ResolveField(context.Background(), "Geometry", "locate", nil, map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)
	require.Equal(t, "1,2", got)
}

func TestScalarEmittedOnce(t *testing.T) {
	repo := scalars.New()
	instant := &scalars.Scalar{
		Definition: &language.Definition{Kind: language.Scalar, Name: "Instant"},
		Coercing:   scalars.StringScalar.Coercing,
	}
	repo.Register(reflect.TypeFor[InstantA](), instant, nil)
	repo.Register(reflect.TypeFor[InstantB](), instant, nil)

	e := New(WithScalars(repo)).AddRoot(reflect.TypeFor[Clock]())
	ps := collect(t, e)

	require.Equal(t, []string{"Clock", "Instant"}, named(ps))
	clock := ps[0].Definition
	require.Equal(t, "Instant", clock.Fields.ForName("started").Type.NamedType)
	require.Equal(t, "Instant", clock.Fields.ForName("stopped").Type.NamedType)
}

func TestTypeVariableMatchesDirectDeclaration(t *testing.T) {
	reg := introspect.NewRegistry().
		Type(reflect.TypeFor[Holder](), meta.Bind{Vars: map[string]reflect.Type{"T": reflect.TypeFor[User]()}})
	e := New(WithIntrospector(introspect.New(reg)))

	holder, err := e.Resolve(reflect.TypeFor[Holder]())
	require.NoError(t, err)
	direct, err := e.Resolve(reflect.TypeFor[Direct]())
	require.NoError(t, err)

	for _, name := range []string{"value", "list"} {
		want := direct.Definition.Fields.ForName(name).Type.String()
		got := holder.Definition.Fields.ForName(name).Type.String()
		require.Equal(t, want, got, name)
	}
}

func TestStreamIsNotRestartable(t *testing.T) {
	e := New().AddRoot(reflect.TypeFor[Foo]())
	collect(t, e)

	var errs []error
	for _, err := range e.Stream() {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], ErrStreamConsumed)
}

type Channels struct {
	Events chan int
}

func TestUnresolvableType(t *testing.T) {
	e := New().AddRoot(reflect.TypeFor[Channels]())

	var err error
	for _, err = range e.Stream() {
		if err != nil {
			break
		}
	}
	var unresolvable *UnresolvableTypeError
	require.True(t, errors.As(err, &unresolvable), "got %v", err)
	require.Equal(t, reflect.TypeFor[chan int](), unresolvable.Type)
	require.Equal(t, "events", unresolvable.Path.String())
}

type Recursive struct {
	Next *Recursive
}

func TestCycleThroughDirectiveFails(t *testing.T) {
	reg := introspect.NewRegistry().
		Type(reflect.TypeFor[Recursive](), meta.Directive{Locations: []string{"FIELD_DEFINITION"}})
	e := New(WithIntrospector(introspect.New(reg)))

	_, err := e.Resolve(reflect.TypeFor[Recursive]())
	var cyclic *CyclicLoadError
	require.True(t, errors.As(err, &cyclic), "got %v", err)
	require.Equal(t, reflect.TypeFor[Recursive](), cyclic.Type)
}

type Profile struct {
	Owner User
}

func TestDeclarationErrors(t *testing.T) {
	type testCase struct {
		name    string
		reg     func(*introspect.Registry)
		root    reflect.Type
		message string
	}
	cases := []testCase{
		{
			name: "object field in input",
			reg: func(r *introspect.Registry) {
				r.Type(reflect.TypeFor[Profile](), meta.Input{})
			},
			root:    reflect.TypeFor[Profile](),
			message: `input field "owner" has OBJECT type User`,
		},
		{
			name: "union member is not an object",
			reg: func(r *introspect.Registry) {
				r.Type(reflect.TypeFor[Profile](), meta.Union{Members: []reflect.Type{reflect.TypeFor[Color]()}})
				r.Type(reflect.TypeFor[Color](), meta.Enum{Values: []any{Red}})
			},
			root:    reflect.TypeFor[Profile](),
			message: "is a ENUM, not an object",
		},
		{
			name: "duplicate type name",
			reg: func(r *introspect.Registry) {
				r.Type(reflect.TypeFor[Direct](), meta.Object{Name: "User"})
			},
			root:    reflect.TypeFor[Direct](),
			message: `type name "User" is already used by`,
		},
		{
			name: "unknown directive location",
			reg: func(r *introspect.Registry) {
				r.Type(reflect.TypeFor[Point](), meta.Directive{Locations: []string{"NOWHERE"}})
			},
			root:    reflect.TypeFor[Point](),
			message: `unknown directive location "NOWHERE"`,
		},
		{
			name: "extending a scalar",
			reg: func(r *introspect.Registry) {
				r.Type(reflect.TypeFor[ColorExtension](), meta.Extends{Target: reflect.TypeFor[InstantA]()})
			},
			root:    reflect.TypeFor[ColorExtension](),
			message: "cannot extend",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := introspect.NewRegistry()
			tc.reg(reg)
			repo := scalars.New()
			repo.Register(reflect.TypeFor[InstantA](), scalars.LongScalar, nil)
			e := New(WithIntrospector(introspect.New(reg)), WithScalars(repo)).AddRoot(tc.root)

			var err error
			for _, err = range e.Stream() {
				if err != nil {
					break
				}
			}
			var invalid *InvalidDeclarationError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			require.Contains(t, err.Error(), tc.message)
		})
	}
}

type Filter struct {
	Not  *Filter
	Term string
}

type Shape interface {
	Parent() Shape
}

type Tree interface {
	isTree()
}

type Branch struct {
	Children []Tree
}

func TestCyclesThroughNamedKinds(t *testing.T) {
	type testCase struct {
		name  string
		reg   func(*introspect.Registry)
		root  reflect.Type
		owner string
		field string
		want  string
	}
	cases := []testCase{
		{
			name:  "input",
			reg:   func(r *introspect.Registry) { r.Type(reflect.TypeFor[Filter](), meta.Input{}) },
			root:  reflect.TypeFor[Filter](),
			owner: "Filter",
			field: "not",
			want:  "Filter",
		},
		{
			name:  "interface",
			reg:   func(r *introspect.Registry) { r.Type(reflect.TypeFor[Shape](), meta.Interface{}) },
			root:  reflect.TypeFor[Shape](),
			owner: "Shape",
			field: "parent",
			want:  "Shape",
		},
		{
			name: "union",
			reg: func(r *introspect.Registry) {
				r.Type(reflect.TypeFor[Tree](), meta.Union{Members: []reflect.Type{reflect.TypeFor[Branch]()}})
			},
			root:  reflect.TypeFor[Tree](),
			owner: "Branch",
			field: "children",
			want:  "[Tree]",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := introspect.NewRegistry()
			tc.reg(reg)
			ps := collect(t, New(WithIntrospector(introspect.New(reg))).AddRoot(tc.root))

			var owner *Provider
			for _, p := range ps {
				require.False(t, p.Placeholder(), p.Name)
				if p.Name == tc.owner {
					owner = p
				}
			}
			require.NotNil(t, owner)
			f := owner.Definition.Fields.ForName(tc.field)
			require.NotNil(t, f)
			require.Equal(t, tc.want, f.Type.String())
		})
	}
}

type Searchable interface {
	isSearchable()
}

type SearchableExtension struct{}

type FooExtension struct {
	Label string
	Alias string `graphql:"label"`
}

func TestExtensionRejectsRepeatedMembers(t *testing.T) {
	type testCase struct {
		name    string
		reg     func(*introspect.Registry)
		root    reflect.Type
		message string
	}
	cases := []testCase{
		{
			name: "object field",
			reg: func(r *introspect.Registry) {
				r.Type(reflect.TypeFor[FooExtension](), meta.Extends{Target: reflect.TypeFor[Foo]()})
			},
			root:    reflect.TypeFor[FooExtension](),
			message: `duplicate field "label" found in type "FooExtension"`,
		},
		{
			name: "enum value",
			reg: func(r *introspect.Registry) {
				r.Type(reflect.TypeFor[Color](), meta.Enum{Values: []any{Red}})
				r.Type(reflect.TypeFor[ColorExtension](),
					meta.Extends{Target: reflect.TypeFor[Color]()},
					meta.Enum{Values: []any{Blue, Blue}},
				)
			},
			root:    reflect.TypeFor[ColorExtension](),
			message: `duplicate enum value "BLUE" found in enum "Color"`,
		},
		{
			name: "union member",
			reg: func(r *introspect.Registry) {
				r.Type(reflect.TypeFor[Searchable](), meta.Union{Members: []reflect.Type{reflect.TypeFor[User]()}})
				r.Type(reflect.TypeFor[SearchableExtension](),
					meta.Extends{Target: reflect.TypeFor[Searchable]()},
					meta.Union{Members: []reflect.Type{reflect.TypeFor[Foo](), reflect.TypeFor[Foo]()}},
				)
			},
			root:    reflect.TypeFor[SearchableExtension](),
			message: `duplicate field "Foo" found in union "Searchable"`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := introspect.NewRegistry()
			tc.reg(reg)
			e := New(WithIntrospector(introspect.New(reg)))

			_, err := e.Resolve(tc.root)
			var invalid *InvalidDeclarationError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			require.Contains(t, err.Error(), tc.message)
		})
	}
}

type Segment struct {
	From int
	To   int
}

type Ruler struct{}

func (Ruler) Measure(s Segment) int { return s.To - s.From }

func TestConcurrentResolve(t *testing.T) {
	e := New(WithCacheSize(1)).
		AddRoot(reflect.TypeFor[Geometry]()).
		AddRoot(reflect.TypeFor[Ruler]())
	rt := wire(collect(t, e))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			located, err := rt.ResolveField(ctx, "Geometry", "locate", nil, map[string]any{"x": i, "y": i + 1})
			if err != nil {
				errs <- err
				return
			}
			if want := fmt.Sprintf("%d,%d", i, i+1); located != want {
				errs <- fmt.Errorf("locate: got %v, want %s", located, want)
			}
			length, err := rt.ResolveField(ctx, "Ruler", "measure", nil, map[string]any{"from": i, "to": 2 * i})
			if err != nil {
				errs <- err
				return
			}
			if length != i {
				errs <- fmt.Errorf("measure: got %v, want %d", length, i)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

type Boxed [1]any

func TestEnumIndexSkipsUnhashableValues(t *testing.T) {
	x := newEnumIndex()
	boxed := Boxed{[]int{1}}
	x.add(reflect.TypeFor[Boxed](), []enumValue{{name: "BOXED", raw: boxed}, {name: "RED", raw: Red}})

	raw, ok := x.EnumRaw(reflect.TypeFor[Boxed](), "BOXED")
	require.True(t, ok)
	require.Equal(t, boxed, raw)
	_, ok = x.name(reflect.TypeFor[Boxed](), boxed)
	require.False(t, ok)

	name, ok := x.name(reflect.TypeFor[Boxed](), Red)
	require.True(t, ok)
	require.Equal(t, "RED", name)
}
