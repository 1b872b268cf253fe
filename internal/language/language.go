package language

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// ParseSchema parses SDL into a schema document.
func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// directiveLocations lists the locations a directive definition may declare.
var directiveLocations = map[string]DirectiveLocation{}

func init() {
	for _, loc := range []DirectiveLocation{
		ast.LocationQuery, ast.LocationMutation, ast.LocationSubscription, ast.LocationField,
		ast.LocationFragmentDefinition, ast.LocationFragmentSpread, ast.LocationInlineFragment,
		ast.LocationVariableDefinition, ast.LocationSchema, ast.LocationScalar, ast.LocationObject,
		ast.LocationFieldDefinition, ast.LocationArgumentDefinition, ast.LocationInterface,
		ast.LocationUnion, ast.LocationEnum, ast.LocationEnumValue, ast.LocationInputObject,
		ast.LocationInputFieldDefinition,
	} {
		directiveLocations[string(loc)] = loc
	}
}

// ParseDirectiveLocation validates a directive location name.
func ParseDirectiveLocation(name string) (DirectiveLocation, bool) {
	loc, ok := directiveLocations[name]
	return loc, ok
}
