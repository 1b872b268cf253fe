package convert

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// leafConverter is the last resort: mapstructure decoding between numeric
// representations, maps and named types.
type leafConverter struct{}

func (leafConverter) Supports(_, _ reflect.Type) bool { return true }

func (leafConverter) Convert(value reflect.Value, to reflect.Type, _ Fallback) (reflect.Value, error) {
	out := reflect.New(to)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out.Interface(),
		DecodeHook: mapstructure.TextUnmarshallerHookFunc(),
	})
	if err != nil {
		return reflect.Value{}, errors.WithStack(err)
	}
	if err := decoder.Decode(value.Interface()); err != nil {
		return reflect.Value{}, ambiguous(value.Type(), to, "%v", err)
	}
	return out.Elem(), nil
}
