package convert

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/scalars"
)

// scalarConverter parses values of types mapped in the scalar repository.
type scalarConverter struct {
	repo *scalars.Repository
}

func (c scalarConverter) Supports(_, to reflect.Type) bool {
	return c.repo.Supports(to)
}

func (c scalarConverter) Convert(value reflect.Value, to reflect.Type, _ Fallback) (reflect.Value, error) {
	entry, _ := c.repo.Lookup(to)
	out, err := entry.Parse(value.Interface())
	if err != nil {
		return reflect.Value{}, errors.Wrapf(err, "%s", entry.Scalar.Name())
	}
	return reflect.ValueOf(out), nil
}

// enumConverter maps enum value names to raw enumerants.
type enumConverter struct {
	enums EnumLookup
}

func (c enumConverter) Supports(from, to reflect.Type) bool {
	return from.Kind() == reflect.String && c.enums.IsEnum(to)
}

func (c enumConverter) Convert(value reflect.Value, to reflect.Type, _ Fallback) (reflect.Value, error) {
	name := value.String()
	raw, ok := c.enums.EnumRaw(to, name)
	if !ok {
		return reflect.Value{}, ambiguous(value.Type(), to, "unknown enum value %q", name)
	}
	return reflect.ValueOf(raw), nil
}
