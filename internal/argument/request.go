// Package argument produces the Go arguments of bound methods from field
// requests and invokes the methods.
package argument

import (
	"context"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/reqid"
)

// Request is one field evaluation. Bound methods may declare a *Request
// parameter to receive it.
type Request struct {
	Context context.Context
	ID      reqid.ID
	// Type and Field name the field being resolved.
	Type  string
	Field string
	// Source is the parent value, nil for root fields.
	Source any
	// Args holds the argument values keyed by argument name.
	Args map[string]any
}

// Value returns the named argument value.
func (r *Request) Value(name string) (any, bool) {
	v, ok := r.Args[name]
	return v, ok
}
