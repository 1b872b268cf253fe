// Package violation defines the build errors reported while resolving a
// schema. Each error names the offending Go type and the member path that
// reached it.
package violation

import (
	"fmt"
	"reflect"
	"strings"
)

// Path locates a declaration: type, member and argument names, outermost first.
type Path []string

func (p Path) String() string { return strings.Join(p, ".") }

func (p Path) suffix() string {
	if len(p) == 0 {
		return ""
	}
	return " at " + p.String()
}

// UnresolvableTypeError reports a type no resolver accepts.
type UnresolvableTypeError struct {
	Type reflect.Type
	Path Path
}

func (e *UnresolvableTypeError) Error() string {
	return fmt.Sprintf("no resolver supports type %s%s", e.Type, e.Path.suffix())
}

// CyclicLoadError reports a cycle through a kind that cannot be referenced by
// name before it is defined.
type CyclicLoadError struct {
	Type  reflect.Type
	Kind  string
	Chain []reflect.Type
	Path  Path
}

func (e *CyclicLoadError) Error() string {
	names := make([]string, 0, len(e.Chain))
	for _, t := range e.Chain {
		names = append(names, t.String())
	}
	return fmt.Sprintf("cyclic reference to %s %s through %s%s", strings.ToLower(e.Kind), e.Type, strings.Join(names, " -> "), e.Path.suffix())
}

// InvalidDeclarationError reports a declaration violating a structural rule.
type InvalidDeclarationError struct {
	Type    reflect.Type
	Message string
	Path    Path
}

func (e *InvalidDeclarationError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("invalid declaration: %s%s", e.Message, e.Path.suffix())
	}
	return fmt.Sprintf("invalid declaration of %s: %s%s", e.Type, e.Message, e.Path.suffix())
}

// Invalid creates an InvalidDeclarationError.
func Invalid(t reflect.Type, format string, args ...any) *InvalidDeclarationError {
	return &InvalidDeclarationError{Type: t, Message: fmt.Sprintf(format, args...)}
}

// At prefixes the path of a build error with segment. Any other error,
// including a build error under another wrapper, is wrapped with the segment
// as context.
func At(err error, segment string) error {
	switch e := err.(type) {
	case nil:
		return nil
	case *UnresolvableTypeError:
		e.Path = prepend(segment, e.Path)
	case *CyclicLoadError:
		e.Path = prepend(segment, e.Path)
	case *InvalidDeclarationError:
		e.Path = prepend(segment, e.Path)
	default:
		return fmt.Errorf("%s: %w", segment, err)
	}
	return err
}

func prepend(segment string, p Path) Path {
	return append(Path{segment}, p...)
}
