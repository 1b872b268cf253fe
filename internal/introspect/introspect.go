// Package introspect exposes the declarative shape of Go types: their
// attributes, their members and the parameters of their methods.
package introspect

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
)

// Introspector is the type introspection capability consumed by the resolvers.
type Introspector interface {
	// TypeAttributes returns the type-level attributes of t.
	TypeAttributes(t reflect.Type) (Attributes, error)
	// Members returns the exported members of t: fields in declaration order
	// followed by methods in name order.
	Members(t reflect.Type) ([]Member, error)
	// Params returns the parameters of a method member, receiver excluded.
	Params(t reflect.Type, m Member) []Param
	// Bindings returns the type variables bound on t.
	Bindings(t reflect.Type) map[string]reflect.Type
}

// MemberKind distinguishes struct fields from methods.
type MemberKind int

const (
	Property MemberKind = iota
	Method
)

func (k MemberKind) String() string {
	if k == Method {
		return "method"
	}
	return "property"
}

// Member is a field or method of a type.
type Member struct {
	// GoName is the declared Go identifier.
	GoName string
	// Name is the schema name derived from attributes and naming conventions.
	Name string
	Kind MemberKind
	// Type is the field type, the getter's result type or the setter's
	// parameter type.
	Type reflect.Type
	// Index is the field index path for properties.
	Index []int
	// Func is the method of the pointer method set for methods.
	Func reflect.Method
	// Setter reports a SetX(v) method.
	Setter bool
	// ReturnsError reports a method whose last result is an error.
	ReturnsError bool
	Attributes   Attributes
	Declaring    reflect.Type
}

// Readable reports whether the member can supply an output value.
func (m Member) Readable() bool {
	return m.Kind == Property || !m.Setter
}

// Writable reports whether the member can receive an input value.
func (m Member) Writable() bool {
	return m.Kind == Property || m.Setter
}

// Depth is the embedding depth of a property, 0 for fields declared on the
// type itself. Methods report 0.
func (m Member) Depth() int {
	if m.Kind != Property || len(m.Index) == 0 {
		return 0
	}
	return len(m.Index) - 1
}

// MostSpecific drops members whose schema name is also used by a member
// declared at a shallower embedding depth. Order is preserved; members of the
// same name and depth are all kept.
func MostSpecific(members []Member) []Member {
	depth := make(map[string]int, len(members))
	for _, m := range members {
		if d, ok := depth[m.Name]; !ok || m.Depth() < d {
			depth[m.Name] = m.Depth()
		}
	}
	ret := make([]Member, 0, len(members))
	for _, m := range members {
		if m.Depth() == depth[m.Name] {
			ret = append(ret, m)
		}
	}
	return ret
}

// Param is a method parameter.
type Param struct {
	Index      int
	Name       string
	Type       reflect.Type
	Attributes Attributes
}

// Attributes is a list of declarative attributes.
type Attributes []meta.Attribute

// Lookup returns the first attribute of type T.
func Lookup[T meta.Attribute](attrs Attributes) (T, bool) {
	for _, a := range attrs {
		if v, ok := a.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether attrs carries an attribute of type T.
func Has[T meta.Attribute](attrs Attributes) bool {
	_, ok := Lookup[T](attrs)
	return ok
}

// All returns every attribute of type T in order.
func All[T meta.Attribute](attrs Attributes) []T {
	var ret []T
	for _, a := range attrs {
		if v, ok := a.(T); ok {
			ret = append(ret, v)
		}
	}
	return ret
}

// Indirect strips pointer indirections.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
