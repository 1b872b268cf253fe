package convert

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/generics"
)

// arrayConverter fills fixed size arrays from sequences.
type arrayConverter struct{}

func (arrayConverter) Supports(from, to reflect.Type) bool {
	return to.Kind() == reflect.Array && isSequence(from)
}

func (arrayConverter) Convert(value reflect.Value, to reflect.Type, fallback Fallback) (reflect.Value, error) {
	if value.Len() > to.Len() {
		return reflect.Value{}, ambiguous(value.Type(), to, "%d elements do not fit", value.Len())
	}
	out := reflect.New(to).Elem()
	for i := 0; i < value.Len(); i++ {
		item, err := fallback(value.Index(i), to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(item)
	}
	return out, nil
}

// collectionConverter builds slices, set maps and iter.Seq values from
// sequences, converting every element through the chain.
type collectionConverter struct {
	leaf func(reflect.Type) bool
}

func (c collectionConverter) Supports(from, to reflect.Type) bool {
	if !isSequence(from) || c.leaf(to) {
		return false
	}
	kind, ok := generics.KindOf(to)
	return ok && to.Kind() != reflect.Pointer && kind != generics.Array
}

func (c collectionConverter) Convert(value reflect.Value, to reflect.Type, fallback Fallback) (reflect.Value, error) {
	kind, _ := generics.KindOf(to)
	elem, _ := generics.ElemOf(to)
	items := make([]reflect.Value, 0, value.Len())
	for i := 0; i < value.Len(); i++ {
		item, err := fallback(value.Index(i), elem)
		if err != nil {
			return reflect.Value{}, err
		}
		items = append(items, item)
	}
	switch kind {
	case generics.Set:
		out := reflect.MakeMapWithSize(to, len(items))
		present := reflect.New(to.Elem()).Elem()
		if to.Elem().Kind() == reflect.Bool {
			present.SetBool(true)
		}
		for _, item := range items {
			out.SetMapIndex(item, present)
		}
		return out, nil
	case generics.Seq:
		return reflect.MakeFunc(to, func(args []reflect.Value) []reflect.Value {
			yield := args[0]
			for _, item := range items {
				if !yield.Call([]reflect.Value{item})[0].Bool() {
					break
				}
			}
			return nil
		}), nil
	}
	out := reflect.MakeSlice(to, 0, len(items))
	return reflect.Append(out, items...), nil
}

func isSequence(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}
