package convert

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// AmbiguousConversionError reports a value that no converter, setter or
// constructor can turn into the target type.
type AmbiguousConversionError struct {
	From   reflect.Type
	To     reflect.Type
	Reason string
}

func (e *AmbiguousConversionError) Error() string {
	from := "nil"
	if e.From != nil {
		from = e.From.String()
	}
	msg := fmt.Sprintf("cannot convert %s to %s", from, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func ambiguous(from, to reflect.Type, format string, args ...any) error {
	return errors.WithStack(&AmbiguousConversionError{From: from, To: to, Reason: fmt.Sprintf(format, args...)})
}

func typeOf(v reflect.Value) reflect.Type {
	if !v.IsValid() {
		return nil
	}
	return v.Type()
}
