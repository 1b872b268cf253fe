package violation

import "reflect"

// Reusable constructors. Keep messages stable; tests match on them.

func DuplicateField(t reflect.Type, kind, field, typeName string) *InvalidDeclarationError {
	return Invalid(t, "duplicate field %q found in %s %q", field, kind, typeName)
}

func DuplicateEnumValue(t reflect.Type, value, enumName string) *InvalidDeclarationError {
	return Invalid(t, "duplicate enum value %q found in enum %q", value, enumName)
}

func DuplicateTypeName(t, other reflect.Type, name string) *InvalidDeclarationError {
	return Invalid(t, "type name %q is already used by %s", name, other)
}

func OutputTypeInInput(t reflect.Type, field, typeName, kind string) *InvalidDeclarationError {
	return Invalid(t, "input field %q has %s type %s; only scalars, enums and input objects are allowed", field, kind, typeName)
}

func InputTypeInOutput(t reflect.Type, field, typeName string) *InvalidDeclarationError {
	return Invalid(t, "output field %q has input object type %s", field, typeName)
}

func UnionMemberNotObject(t reflect.Type, member reflect.Type, kind string) *InvalidDeclarationError {
	return Invalid(t, "union member %s is a %s, not an object", member, kind)
}

func NotInterface(t reflect.Type, iface reflect.Type, kind string) *InvalidDeclarationError {
	return Invalid(t, "implemented type %s is a %s, not an interface", iface, kind)
}

func UnknownDirectiveLocation(t reflect.Type, location string) *InvalidDeclarationError {
	return Invalid(t, "unknown directive location %q", location)
}

func InvalidName(t reflect.Type, what, name string) *InvalidDeclarationError {
	return Invalid(t, "%s name %q is not a valid GraphQL name", what, name)
}

func UnsupportedValue(t reflect.Type, what string, err error) *InvalidDeclarationError {
	return Invalid(t, "unsupported %s value: %v", what, err)
}

func ExtensionKindMismatch(t, target reflect.Type, kind string) *InvalidDeclarationError {
	return Invalid(t, "cannot extend %s %s", kind, target)
}

func EmptyType(t reflect.Type, kind, name string) *InvalidDeclarationError {
	return Invalid(t, "%s %q declares no fields", kind, name)
}

