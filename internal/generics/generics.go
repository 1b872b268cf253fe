// Package generics resolves member types against their declaring type and
// normalizes list-like types.
package generics

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
)

// Resolver produces ground member types as seen from a declaring type.
type Resolver struct {
	introspector introspect.Introspector
	leaf         func(reflect.Type) bool
}

// NewResolver creates a Resolver reading bindings through introspector. leaf,
// when set, stops list unwrapping at types mapped as a whole (see NormalizeFunc).
func NewResolver(introspector introspect.Introspector, leaf func(reflect.Type) bool) *Resolver {
	return &Resolver{introspector: introspector, leaf: leaf}
}

// Shape normalizes declared and, when attrs carries a TypeVar, substitutes the
// element type with the variable's binding on declaring.
func (r *Resolver) Shape(declaring, declared reflect.Type, attrs introspect.Attributes) (Shape, error) {
	shape := NormalizeFunc(declared, r.leaf)
	typeVar, ok := introspect.Lookup[meta.TypeVar](attrs)
	if !ok {
		return shape, nil
	}
	bound, err := r.Bind(declaring, typeVar.Name)
	if err != nil {
		return Shape{}, err
	}
	inner := NormalizeFunc(bound, r.leaf)
	shape.Elem = inner.Elem
	shape.Lists = append(shape.Lists, inner.Lists...)
	return shape, nil
}

// Bind returns the type bound to name on declaring.
func (r *Resolver) Bind(declaring reflect.Type, name string) (reflect.Type, error) {
	if bound, ok := r.introspector.Bindings(declaring)[name]; ok && bound != nil {
		return bound, nil
	}
	return nil, fmt.Errorf("type variable %s is not bound on %s", name, declaring)
}

// TypeArgs returns the type arguments of an instantiated generic type, as
// spelled by the runtime: Page[example.com/app.User] yields ["example.com/app.User"].
func TypeArgs(t reflect.Type) []string {
	name := introspect.Indirect(t).Name()
	open := strings.IndexByte(name, '[')
	if open < 0 || !strings.HasSuffix(name, "]") {
		return nil
	}
	return splitArgs(name[open+1 : len(name)-1])
}

// BaseName returns the type name without type arguments.
func BaseName(t reflect.Type) string {
	name := introspect.Indirect(t).Name()
	if open := strings.IndexByte(name, '['); open >= 0 {
		return name[:open]
	}
	return name
}

// SchemaName derives a schema type name. Generic instantiations concatenate the
// base name with the short names of their arguments: Page[app.User] → PageUser,
// Pair[string,[]app.User] → PairStringUserList.
func SchemaName(t reflect.Type) string {
	t = introspect.Indirect(t)
	args := TypeArgs(t)
	if len(args) == 0 {
		return t.Name()
	}
	var b strings.Builder
	b.WriteString(BaseName(t))
	for _, arg := range args {
		b.WriteString(shortName(arg))
	}
	return b.String()
}

func shortName(spelled string) string {
	spelled = strings.TrimSpace(spelled)
	suffix := ""
	for {
		switch {
		case strings.HasPrefix(spelled, "*"):
			spelled = spelled[1:]
			continue
		case strings.HasPrefix(spelled, "[]"):
			spelled = spelled[2:]
			suffix = "List" + suffix
			continue
		case strings.HasPrefix(spelled, "map["):
			return "Map" + suffix
		}
		break
	}
	args := ""
	if open := strings.IndexByte(spelled, '['); open >= 0 && strings.HasSuffix(spelled, "]") {
		for _, arg := range splitArgs(spelled[open+1 : len(spelled)-1]) {
			args += shortName(arg)
		}
		spelled = spelled[:open]
	}
	if dot := strings.LastIndexByte(spelled, '.'); dot >= 0 {
		spelled = spelled[dot+1:]
	}
	return upperFirst(spelled) + args + suffix
}

func splitArgs(list string) []string {
	var ret []string
	depth, start := 0, 0
	for i, c := range list {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				ret = append(ret, list[start:i])
				start = i + 1
			}
		}
	}
	return append(ret, list[start:])
}

func upperFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
