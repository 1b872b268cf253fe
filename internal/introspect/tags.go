package introspect

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/structology/tags"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
)

const (
	// TagName is the struct tag read for field attributes.
	TagName = "graphql"
	// DescriptionTag documents a field or, on a marker field, a type.
	DescriptionTag = "description"
	// DefaultTag holds a JSON default value literal.
	DefaultTag = "default"

	viewSeparator = "|"
)

// fieldTag is the parsed form of a field's tags.
type fieldTag struct {
	Name  string
	Skip  bool
	Attrs Attributes
}

// parseFieldTag reads the graphql, json, description and default tags.
//
//	Name string `graphql:"name,field,nonnull=create|update,ignore=update,deprecated=use other,typevar=T"`
func parseFieldTag(tag reflect.StructTag) (*fieldTag, error) {
	ret := &fieldTag{}
	if value, ok := tag.Lookup(TagName); ok {
		name, values := tags.Values(value).Name()
		name = strings.TrimSpace(name)
		if name == "-" {
			ret.Skip = true
			return ret, nil
		}
		ret.Name = name
		if err := values.Match(func(option string) error {
			return ret.option(option)
		}); err != nil {
			return nil, err
		}
	}
	if ret.Name == "" {
		if value, ok := tag.Lookup("json"); ok {
			name, _ := tags.Values(value).Name()
			if name != "-" {
				ret.Name = strings.TrimSpace(name)
			}
		}
	}
	if text, ok := tag.Lookup(DescriptionTag); ok {
		ret.Attrs = append(ret.Attrs, meta.Description{Text: text})
	}
	if value, ok := tag.Lookup(DefaultTag); ok {
		ret.Attrs = append(ret.Attrs, meta.Default{Value: value})
	}
	return ret, nil
}

func (t *fieldTag) option(option string) error {
	key, value, _ := strings.Cut(strings.TrimSpace(option), "=")
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "":
		return nil
	case "field":
		t.Attrs = append(t.Attrs, meta.Field{Name: t.Name})
	case "ignore":
		t.Attrs = append(t.Attrs, meta.Ignore{Views: splitViews(value)})
	case "nonnull":
		t.Attrs = append(t.Attrs, meta.NonNull{Views: splitViews(value)})
	case "deprecated":
		t.Attrs = append(t.Attrs, meta.Deprecated{Reason: strings.TrimSpace(value)})
	case "typevar":
		t.Attrs = append(t.Attrs, meta.TypeVar{Name: strings.TrimSpace(value)})
	case "source":
		t.Attrs = append(t.Attrs, meta.Source{})
	default:
		return fmt.Errorf("unsupported %s tag option: %s", TagName, key)
	}
	return nil
}

// parseTypeTag reads the tag of a blank marker field declaring type attributes.
//
//	_ struct{} `graphql:"PointInput,input" description:"a point"`
func parseTypeTag(tag reflect.StructTag) (Attributes, error) {
	value, ok := tag.Lookup(TagName)
	if !ok {
		return nil, nil
	}
	name, values := tags.Values(value).Name()
	name = strings.TrimSpace(name)
	description := tag.Get(DescriptionTag)
	var ret Attributes
	err := values.Match(func(option string) error {
		switch strings.ToLower(strings.TrimSpace(option)) {
		case "":
		case "object":
			ret = append(ret, meta.Object{Name: name, Description: description})
		case "input":
			ret = append(ret, meta.Input{Name: name, Description: description})
		case "interface":
			ret = append(ret, meta.Interface{Name: name, Description: description})
		default:
			return fmt.Errorf("unsupported %s type tag option: %s", TagName, option)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(ret) == 0 && name != "" {
		ret = append(ret, meta.Object{Name: name, Description: description})
	}
	return ret, nil
}

func splitViews(value string) []string {
	var ret []string
	for _, v := range strings.Split(value, viewSeparator) {
		if v = strings.TrimSpace(v); v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}
