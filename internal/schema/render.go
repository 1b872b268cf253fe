package schema

import (
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
)

// Render produces SDL from the Schema.
// Deterministic ordering: type/directive names sorted lexicographically.
func Render(s *Schema) string {
	if s == nil || s.Document == nil {
		return ""
	}
	doc := *s.Document
	doc.Definitions = slices.Clone(doc.Definitions)
	slices.SortStableFunc(doc.Definitions, func(a, b *language.Definition) int {
		return strings.Compare(a.Name, b.Name)
	})
	doc.Directives = slices.Clone(doc.Directives)
	slices.SortStableFunc(doc.Directives, func(a, b *language.DirectiveDefinition) int {
		return strings.Compare(a.Name, b.Name)
	})
	if isDefaultSchema(s) {
		doc.Schema = nil
	}

	var b strings.Builder
	formatter.NewFormatter(&b, formatter.WithIndent("  ")).FormatSchemaDocument(&doc)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// isDefaultSchema reports root types named Query, Mutation and Subscription,
// which need no schema definition.
func isDefaultSchema(s *Schema) bool {
	return s.QueryType == "Query" &&
		(s.MutationType == "" || s.MutationType == "Mutation") &&
		(s.SubscriptionType == "" || s.SubscriptionType == "Subscription")
}
