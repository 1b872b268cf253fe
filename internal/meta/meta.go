// Package meta defines the declarative attributes that describe how Go types,
// members and parameters map onto a GraphQL schema.
//
// Attributes are plain values. They are attached to declarations either through
// struct tags (read by the introspect package) or explicitly through an
// introspect.Registry, and looked up by their Go type.
package meta

import "reflect"

// Attribute is implemented by every declarative attribute.
type Attribute interface {
	attribute()
}

// Object marks a struct type as a GraphQL object type.
type Object struct {
	Name        string
	Description string
	// Implements lists the interface types this object implements.
	Implements []reflect.Type
}

// Interface marks a Go interface type as a GraphQL interface type.
type Interface struct {
	Name        string
	Description string
	// Resolver, when set, is instantiated and must implement TypeResolver.
	Resolver reflect.Type
}

// Input marks a struct type as a GraphQL input object type.
type Input struct {
	Name        string
	Description string
}

// Enum marks a named type as a GraphQL enum. Values lists the raw enumerants in
// declaration order.
type Enum struct {
	Name        string
	Description string
	Values      []any
}

// EnumValue renames, describes, deprecates or hides one enumerant of an Enum.
type EnumValue struct {
	Value       any
	Name        string
	Description string
	Deprecated  string
	Ignore      bool
}

// Union marks a type as a GraphQL union of Members.
type Union struct {
	Name        string
	Description string
	Members     []reflect.Type
	// ResolveType picks the member name for a runtime value. When nil the
	// dynamic Go type of the value decides.
	ResolveType func(value any) (string, error)
	// Resolver, when set, is instantiated and must implement TypeResolver.
	Resolver reflect.Type
}

// Directive marks a struct type as a directive definition. The struct's fields
// are the directive's arguments.
type Directive struct {
	Name        string
	Description string
	Locations   []string
	Repeatable  bool
}

// Extends marks a declaration as an extension of Target.
type Extends struct {
	Target reflect.Type
}

// Field marks a member explicitly. Once any member of a type carries Field, only
// marked members are exposed.
type Field struct {
	Name        string
	Description string
}

// Ignore hides a member. Empty Views hides it in every view.
type Ignore struct {
	Views []string
}

// NonNull wraps a member or parameter type as non-null. Empty Views applies it
// in every view.
type NonNull struct {
	Views []string
}

// Default attaches a default value to an argument or input field. Value holds a
// JSON literal; Provider, when set, is instantiated and must implement
// DefaultValuer.
type Default struct {
	Value    string
	Provider reflect.Type
}

// Deprecated marks a field, argument or enum value as deprecated.
type Deprecated struct {
	Reason string
}

// Description documents a declaration.
type Description struct {
	Text string
}

// Apply attaches a directive instance. Value is a value of a struct type that
// carries a Directive attribute.
type Apply struct {
	Value any
}

// Params names the parameters of a method in order.
type Params struct {
	Names []string
}

// Arg names a single parameter.
type Arg struct {
	Name        string
	Description string
}

// Source marks a parameter that receives the parent object being resolved.
type Source struct{}

// Filter restricts the members exposed by a type.
type Filter struct {
	Accept func(fieldName string) bool
	// Provider, when set, is instantiated and must implement MemberFilter.
	Provider reflect.Type
}

// Bind binds type variables of a declaring type to concrete types.
type Bind struct {
	Vars map[string]reflect.Type
}

// TypeVar declares that a member's element type is the type variable Name of
// its declaring type. The member's Go type is a stand-in such as any or []any.
type TypeVar struct {
	Name string
}

// TypeResolver chooses the concrete object name for a value of an abstract type.
type TypeResolver interface {
	ResolveType(value any) (string, error)
}

// DefaultValuer produces a default value.
type DefaultValuer interface {
	DefaultValue() any
}

// MemberFilter accepts or rejects members by field name.
type MemberFilter interface {
	Accept(fieldName string) bool
}

func (Object) attribute()      {}
func (Interface) attribute()   {}
func (Input) attribute()       {}
func (Enum) attribute()        {}
func (EnumValue) attribute()   {}
func (Union) attribute()       {}
func (Directive) attribute()   {}
func (Extends) attribute()     {}
func (Field) attribute()       {}
func (Ignore) attribute()      {}
func (NonNull) attribute()     {}
func (Default) attribute()     {}
func (Deprecated) attribute()  {}
func (Description) attribute() {}
func (Apply) attribute()       {}
func (Params) attribute()      {}
func (Arg) attribute()         {}
func (Source) attribute()      {}
func (Filter) attribute()      {}
func (Bind) attribute()        {}
func (TypeVar) attribute()     {}

// InViews reports whether a view-scoped attribute applies to any of active.
// An attribute without views applies everywhere.
func InViews(scoped, active []string) bool {
	if len(scoped) == 0 {
		return true
	}
	for _, s := range scoped {
		for _, a := range active {
			if s == a {
				return true
			}
		}
	}
	return false
}
