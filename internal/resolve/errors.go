package resolve

import (
	"errors"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
)

type (
	UnresolvableTypeError   = violation.UnresolvableTypeError
	CyclicLoadError         = violation.CyclicLoadError
	InvalidDeclarationError = violation.InvalidDeclarationError
)

// ErrStreamConsumed is yielded when a stream is iterated a second time.
var ErrStreamConsumed = errors.New("resolve: stream already consumed")
