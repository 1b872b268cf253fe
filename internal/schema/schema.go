// Package schema assembles the providers of a resolution run into a schema
// document and the runtime wiring that serves it.
package schema

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/wiring"
)

// Schema represents the complete GraphQL schema built from Go types.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	// Document holds every definition with extensions merged into their base.
	Document *language.SchemaDocument
	Runtime  *wiring.Runtime

	types      map[string]*language.Definition
	directives map[string]*language.DirectiveDefinition
}

// Type returns the named type definition, or nil.
func (s *Schema) Type(name string) *language.Definition { return s.types[name] }

// Directive returns the named directive definition, or nil.
func (s *Schema) Directive(name string) *language.DirectiveDefinition { return s.directives[name] }

// GetQueryType returns the root query type (may be nil if absent)
func (s *Schema) GetQueryType() *language.Definition { return s.types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent)
func (s *Schema) GetMutationType() *language.Definition { return s.types[s.MutationType] }

// GetSubscriptionType returns the root subscription type (may be nil if absent)
func (s *Schema) GetSubscriptionType() *language.Definition { return s.types[s.SubscriptionType] }

// Validate renders the schema and loads it with the GraphQL validator,
// returning the validated schema.
func (s *Schema) Validate() (*ast.Schema, error) {
	sdl := Render(s)
	validated, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: sdl})
	if err != nil {
		return nil, err
	}
	return validated, nil
}
