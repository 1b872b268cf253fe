package resolve

import (
	"reflect"

	"github.com/go-logr/logr"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/argument"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/instance"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/scalars"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
)

// Context is what resolvers see of the engine during one build.
type Context struct {
	engine *Engine

	Descriptors  *descriptor.Builder
	Introspector introspect.Introspector
	Scalars      *scalars.Repository
	Instantiator instance.Instantiator
	Env          *argument.Env
	Factories    []argument.Factory
	Logger       logr.Logger
}

// Register resolves t, enqueuing it for emission, and returns its provider.
// A type whose resolution is in progress yields a name-only placeholder when
// its kind can be referenced by name.
func (c *Context) Register(t reflect.Type) (*Provider, error) {
	return c.engine.register(t)
}

// TypeAttributes returns the type attributes of t.
func (c *Context) TypeAttributes(t reflect.Type) (introspect.Attributes, error) {
	attrs, err := c.Introspector.TypeAttributes(t)
	if err != nil {
		return nil, violation.Invalid(t, "%v", err)
	}
	return attrs, nil
}

// Named implements descriptor.Types.
func (c *Context) Named(t reflect.Type) (string, language.DefinitionKind, error) {
	p, err := c.Register(t)
	if err != nil {
		return "", "", err
	}
	return p.Name, p.Kind, nil
}

// Kind implements descriptor.Types.
func (c *Context) Kind(t reflect.Type) (language.DefinitionKind, bool) {
	t = introspect.Indirect(t)
	r := c.engine.resolverFor(t)
	if r == nil {
		return "", false
	}
	if ext, ok := r.(*extensionResolver); ok {
		return ext.targetKind(t)
	}
	return r.Kind(), true
}

// EnumName implements descriptor.Types.
func (c *Context) EnumName(t reflect.Type, raw reflect.Value) (string, bool) {
	t = introspect.Indirect(t)
	if !c.engine.enums.IsEnum(t) {
		if kind, ok := c.Kind(t); !ok || kind != language.Enum {
			return "", false
		}
		if _, err := c.Register(t); err != nil {
			return "", false
		}
	}
	return c.engine.enums.name(t, raw.Interface())
}
