package introspect

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LowerCamel converts an exported Go identifier to a schema field name.
// Leading initialisms are lowered as a whole: ID → id, URLPath → urlPath.
func LowerCamel(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return name
	case n == len(runes):
		return strings.ToLower(name)
	case n == 1:
		runes[0] = unicode.ToLower(runes[0])
		return string(runes)
	}
	// IDs: a plural initialism
	if runes[n] == 's' && (n+1 == len(runes) || unicode.IsUpper(runes[n+1])) {
		for i := 0; i < n; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
		return string(runes)
	}
	for i := 0; i < n-1; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// trimAccessor removes an accessor prefix when it is followed by an upper case
// letter: GetName → Name, but Getaway stays Getaway.
func trimAccessor(name, prefix string) string {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok || rest == "" {
		return name
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return name
	}
	return rest
}

// isSetterName reports a SetX method name.
func isSetterName(name string) bool {
	return trimAccessor(name, "Set") != name
}
