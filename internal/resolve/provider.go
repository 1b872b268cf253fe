package resolve

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/wiring"
)

// Provider is the engine's unit of output: one schema definition and the
// wiring it contributes.
type Provider struct {
	Kind language.DefinitionKind
	Name string
	// Type is the Go type the provider was resolved from.
	Type reflect.Type
	// Definition is set for every kind but directives.
	Definition *language.Definition
	// Directive is set for directive providers.
	Directive *language.DirectiveDefinition
	// Extension marks a provider extending Parent's definition.
	Extension bool
	Parent    *Provider
	Operator  wiring.Operator

	placeholder bool
	enumValues  []enumValue
}

type enumValue struct {
	name string
	raw  any
}

// Placeholder reports a name-only provider standing in for a type whose
// resolution is still in progress.
func (p *Provider) Placeholder() bool { return p.placeholder }

// Wire applies the provider's operator, after its parent's for extensions.
func (p *Provider) Wire(b *wiring.Builder) *wiring.Builder {
	var parent wiring.Operator
	if p.Parent != nil {
		parent = p.Parent.Wire
	}
	return wiring.Compose(parent, p.Operator)(b)
}

func placeholder(kind language.DefinitionKind, name string, t reflect.Type) *Provider {
	return &Provider{Kind: kind, Name: name, Type: t, placeholder: true}
}

// cyclable reports kinds that may be referenced by name while being resolved.
func cyclable(kind language.DefinitionKind) bool {
	switch kind {
	case language.Object, language.Interface, language.InputObject, language.Union:
		return true
	}
	return false
}
