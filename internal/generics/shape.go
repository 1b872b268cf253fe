package generics

import (
	"reflect"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
)

// ListKind identifies the Go container behind a list layer.
type ListKind int

const (
	Slice ListKind = iota
	Array
	Set
	Seq
)

// Shape is a declared type split into its list layers and its ground element.
type Shape struct {
	Declared reflect.Type
	// Elem is the element type with pointers stripped.
	Elem reflect.Type
	// Lists holds the list layers, outermost first.
	Lists []ListKind
}

// IsList reports whether the shape has at least one list layer.
func (s Shape) IsList() bool { return len(s.Lists) > 0 }

// Normalize unwraps list-like layers of t down to its element type.
func Normalize(t reflect.Type) Shape {
	return NormalizeFunc(t, nil)
}

// NormalizeFunc is Normalize that stops unwrapping at types for which leaf
// reports true, so registered scalars backed by slices stay whole.
func NormalizeFunc(t reflect.Type, leaf func(reflect.Type) bool) Shape {
	shape := Shape{Declared: t}
	cur := introspect.Indirect(t)
	for cur != nil {
		if leaf != nil && leaf(cur) {
			break
		}
		kind, elem, ok := listElem(cur)
		if !ok {
			break
		}
		shape.Lists = append(shape.Lists, kind)
		cur = introspect.Indirect(elem)
	}
	shape.Elem = cur
	return shape
}

// Wrap re-wraps a named schema type with the shape's list layers and, when
// nonNull is set, marks the outermost type non-null.
func (s Shape) Wrap(named string, nonNull bool) *ast.Type {
	t := ast.NamedType(named, nil)
	for range s.Lists {
		t = ast.ListType(t, nil)
	}
	if nonNull {
		t.NonNull = true
	}
	return t
}

// ElemOf returns the element type of a list-like type.
func ElemOf(t reflect.Type) (reflect.Type, bool) {
	_, elem, ok := listElem(introspect.Indirect(t))
	return elem, ok
}

// KindOf returns the list kind of a list-like type.
func KindOf(t reflect.Type) (ListKind, bool) {
	kind, _, ok := listElem(introspect.Indirect(t))
	return kind, ok
}

func listElem(t reflect.Type) (ListKind, reflect.Type, bool) {
	switch t.Kind() {
	case reflect.Slice:
		return Slice, t.Elem(), true
	case reflect.Array:
		return Array, t.Elem(), true
	case reflect.Map:
		if v := t.Elem(); v.Kind() == reflect.Bool || (v.Kind() == reflect.Struct && v.NumField() == 0) {
			return Set, t.Key(), true
		}
	case reflect.Func:
		if elem, ok := seqElem(t); ok {
			return Seq, elem, true
		}
	}
	return 0, nil, false
}

// seqElem recognizes iter.Seq[T]: func(yield func(T) bool).
func seqElem(t reflect.Type) (reflect.Type, bool) {
	if t.NumIn() != 1 || t.NumOut() != 0 {
		return nil, false
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumIn() != 1 || yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	return yield.In(0), true
}
