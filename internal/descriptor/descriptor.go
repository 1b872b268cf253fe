// Package descriptor normalizes members and method parameters into field and
// argument descriptors: schema name, type, nullability, default value and
// directives.
package descriptor

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/generics"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/instance"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
)

// Types maps ground Go types onto schema types while a schema is built.
type Types interface {
	// Named resolves t, registering it when needed, and returns its schema
	// name and kind.
	Named(t reflect.Type) (string, language.DefinitionKind, error)
	// Kind reports the kind t would resolve to, without resolving it.
	Kind(t reflect.Type) (language.DefinitionKind, bool)
	// EnumName names raw when t is an enum type.
	EnumName(t reflect.Type, raw reflect.Value) (string, bool)
}

// Context selects which members a type exposes.
type Context int

const (
	// Output exposes getter shaped members: fields and result returning methods.
	Output Context = iota
	// Input exposes setter shaped members: fields and SetX methods.
	Input
)

// Options configures a Builder.
type Options struct {
	Introspector introspect.Introspector
	Generics     *generics.Resolver
	Instantiator instance.Instantiator
	// Views is the active view set for Ignore and NonNull scoping.
	Views []string
	// Injected reports parameters supplied by the request rather than exposed
	// as schema arguments.
	Injected func(owner reflect.Type, p introspect.Param) bool
}

// Field describes one field of an object, interface or input type. Fields are
// immutable once built.
type Field struct {
	Name        string
	Description string
	// Owner is the type whose field list holds the field.
	Owner  reflect.Type
	Member introspect.Member
	Shape  generics.Shape
	// Kind and TypeName describe the element type.
	Kind       language.DefinitionKind
	TypeName   string
	Type       *language.Type
	NonNull    bool
	Default    *language.Value
	Deprecated bool
	Reason     string
	Directives language.DirectiveList
	// Params holds every method parameter in order, injected ones included.
	Params []*Argument
}

// Argument describes a method parameter, or one setter of a decomposed
// parameter.
type Argument struct {
	Field
	Param    introspect.Param
	Injected bool
	// Target is the Go type the argument value is converted to.
	Target reflect.Type
	// Decomposed holds the flattened setters of a parameter whose type has no
	// input mapping.
	Decomposed []*Argument
}

// Arguments returns the schema arguments of the field: injected parameters are
// skipped and decomposed parameters flattened. The first argument of a name wins.
func (f *Field) Arguments() []*Argument {
	var ret []*Argument
	seen := map[string]bool{}
	add := func(a *Argument) {
		if !seen[a.Name] {
			seen[a.Name] = true
			ret = append(ret, a)
		}
	}
	for _, p := range f.Params {
		switch {
		case p.Injected:
		case p.Decomposed != nil:
			for _, d := range p.Decomposed {
				add(d)
			}
		default:
			add(p)
		}
	}
	return ret
}

// Definition returns the output field definition.
func (f *Field) Definition() *language.FieldDefinition {
	def := &language.FieldDefinition{
		Name:        f.Name,
		Description: f.Description,
		Type:        f.Type,
		Directives:  f.Directives,
	}
	for _, a := range f.Arguments() {
		def.Arguments = append(def.Arguments, a.Definition())
	}
	return def
}

// InputDefinition returns the input field definition.
func (f *Field) InputDefinition() *language.FieldDefinition {
	return &language.FieldDefinition{
		Name:         f.Name,
		Description:  f.Description,
		Type:         f.Type,
		DefaultValue: f.Default,
		Directives:   f.Directives,
	}
}

// Definition returns the argument definition.
func (a *Argument) Definition() *language.ArgumentDefinition {
	return &language.ArgumentDefinition{
		Name:         a.Name,
		Description:  a.Description,
		Type:         a.Type,
		DefaultValue: a.Default,
		Directives:   a.Directives,
	}
}
