package resolve

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/scalars"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/wiring"
)

// scalarResolver passes through the scalar the repository maps a type onto.
type scalarResolver struct {
	repo *scalars.Repository
}

func (r *scalarResolver) Kind() language.DefinitionKind { return language.Scalar }

func (r *scalarResolver) Supports(t reflect.Type) bool {
	return t.Kind() != reflect.Interface && r.repo.Supports(t)
}

func (r *scalarResolver) Name(t reflect.Type) string {
	if e, ok := r.repo.Lookup(t); ok {
		return e.Scalar.Name()
	}
	return ""
}

func (r *scalarResolver) Resolve(t reflect.Type, name string, _ *Context) (*Provider, error) {
	entry, ok := r.repo.Lookup(t)
	if !ok {
		return nil, &violation.UnresolvableTypeError{Type: t}
	}
	def := *entry.Scalar.Definition
	scalar := entry.Scalar
	return &Provider{
		Kind:       language.Scalar,
		Name:       name,
		Definition: &def,
		Operator: func(w *wiring.Builder) *wiring.Builder {
			return w.Scalar(scalar)
		},
	}, nil
}
