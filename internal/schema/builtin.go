package schema

// builtinDirectives are defined by every GraphQL schema and cannot be
// redeclared.
var builtinDirectives = map[string]bool{
	"include":     true,
	"skip":        true,
	"deprecated":  true,
	"specifiedBy": true,
	"oneOf":       true,
}

// builtinScalars are defined by every GraphQL schema and are left out of the
// document.
var builtinScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}
