package resolve

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
)

// extensionResolver resolves types declared with an Extends attribute with
// the resolver of their target, under the target's name. The target is
// resolved first so it is always part of the build, and its wiring runs
// before the extension's.
type extensionResolver struct {
	in     introspect.Introspector
	engine *Engine
}

// Kind is not fixed; an extension takes the kind of its target.
func (r *extensionResolver) Kind() language.DefinitionKind { return "" }

func (r *extensionResolver) Supports(t reflect.Type) bool {
	ext, ok := introspect.Lookup[meta.Extends](attributes(r.in, t))
	return ok && ext.Target != nil
}

func (r *extensionResolver) Name(t reflect.Type) string {
	target := r.target(t)
	if target == nil {
		return ""
	}
	if tr := r.engine.resolverFor(target); tr != nil {
		return tr.Name(target)
	}
	return ""
}

// targetKind reports the kind of t's target.
func (r *extensionResolver) targetKind(t reflect.Type) (language.DefinitionKind, bool) {
	target := r.target(t)
	if target == nil || target == t {
		return "", false
	}
	tr := r.engine.resolverFor(target)
	if tr == nil {
		return "", false
	}
	return tr.Kind(), true
}

func (r *extensionResolver) Resolve(t reflect.Type, _ string, ctx *Context) (*Provider, error) {
	target := r.target(t)
	if target == t {
		return nil, violation.Invalid(t, "type extends itself")
	}
	parent, err := ctx.Register(target)
	if err != nil {
		return nil, violation.At(err, "extends")
	}
	if parent.Extension {
		return nil, violation.ExtensionKindMismatch(t, target, "extension")
	}
	ext, ok := r.engine.resolverFor(target).(extender)
	if !ok {
		return nil, violation.ExtensionKindMismatch(t, target, string(parent.Kind))
	}
	p, err := ext.extend(t, parent.Name, ctx)
	if err != nil {
		return nil, err
	}
	p.Extension = true
	p.Parent = parent
	p.Type = t
	return p, nil
}

func (r *extensionResolver) target(t reflect.Type) reflect.Type {
	ext, _ := introspect.Lookup[meta.Extends](attributes(r.in, t))
	return introspect.Indirect(ext.Target)
}
