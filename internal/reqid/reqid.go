// Package reqid carries a request identifier through field invocations.
package reqid

import (
	"context"

	"github.com/google/uuid"
)

// ID identifies one request. Bound methods may declare a parameter of this
// type to receive it.
type ID string

// key is the context key for the request ID.
type key struct{}

// New returns a fresh random ID.
func New() ID { return ID(uuid.NewString()) }

// NewContext returns a copy of parent with a new random request ID stored.
// It also returns the generated ID.
func NewContext(parent context.Context) (context.Context, ID) {
	id := New()
	return WithID(parent, id), id
}

// WithID returns a copy of parent carrying id.
func WithID(parent context.Context, id ID) context.Context {
	return context.WithValue(parent, key{}, id)
}

// FromContext extracts the request ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (ID, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(key{}).(ID)
	return id, ok
}
