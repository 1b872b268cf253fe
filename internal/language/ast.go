package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	SchemaDocument          = ast.SchemaDocument
	Definition              = ast.Definition
	DefinitionList          = ast.DefinitionList
	DirectiveDefinition     = ast.DirectiveDefinition
	FieldDefinition         = ast.FieldDefinition
	FieldList               = ast.FieldList
	ArgumentDefinition      = ast.ArgumentDefinition
	ArgumentDefinitionList  = ast.ArgumentDefinitionList
	EnumValueDefinition     = ast.EnumValueDefinition
	EnumValueList           = ast.EnumValueList
	Directive               = ast.Directive
	DirectiveList           = ast.DirectiveList
	Argument                = ast.Argument
	ArgumentList            = ast.ArgumentList
	Value                   = ast.Value
	ChildValue              = ast.ChildValue
	Type                    = ast.Type
	Source                  = ast.Source
	SchemaDefinition        = ast.SchemaDefinition
	SchemaDefinitionList    = ast.SchemaDefinitionList
	OperationTypeDefinition = ast.OperationTypeDefinition
	Position                = ast.Position
)

// Generated is the source of definitions built from Go types.
var Generated = &Source{Name: "generated"}

type DefinitionKind = ast.DefinitionKind

type ValueKind = ast.ValueKind

type DirectiveLocation = ast.DirectiveLocation

type Operation = ast.Operation

const (
	Object      DefinitionKind = ast.Object
	Interface   DefinitionKind = ast.Interface
	Union       DefinitionKind = ast.Union
	Scalar      DefinitionKind = ast.Scalar
	Enum        DefinitionKind = ast.Enum
	InputObject DefinitionKind = ast.InputObject
	// DirectiveKind marks providers of directive definitions; gqlparser has no
	// definition kind for them.
	DirectiveKind DefinitionKind = "DIRECTIVE"

	IntValue     ValueKind = ast.IntValue
	FloatValue   ValueKind = ast.FloatValue
	StringValue  ValueKind = ast.StringValue
	BooleanValue ValueKind = ast.BooleanValue
	NullValue    ValueKind = ast.NullValue
	EnumValue    ValueKind = ast.EnumValue
	ListValue    ValueKind = ast.ListValue
	ObjectValue  ValueKind = ast.ObjectValue

	Query        Operation = ast.Query
	Mutation     Operation = ast.Mutation
	Subscription Operation = ast.Subscription
)

// IsOutputKind reports whether definitions of kind may be field result types.
func IsOutputKind(kind DefinitionKind) bool {
	return kind == Scalar || kind == Enum || kind == Object || kind == Interface || kind == Union
}

// IsInputKind reports whether definitions of kind may appear in input positions.
func IsInputKind(kind DefinitionKind) bool {
	return kind == Scalar || kind == Enum || kind == InputObject
}
