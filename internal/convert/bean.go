package convert

import (
	"reflect"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/golang/groupcache/lru"
	"github.com/pkg/errors"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
)

type setter struct {
	name   string
	typ    reflect.Type
	index  []int
	method reflect.Method
}

func (s setter) set(target reflect.Value, value reflect.Value) error {
	if s.index != nil {
		field, err := target.Elem().FieldByIndexErr(s.index)
		if err != nil {
			return err
		}
		field.Set(value)
		return nil
	}
	s.method.Func.Call([]reflect.Value{target, value})
	return nil
}

// beanConverter instantiates a struct and assigns each entry of a map through
// the matching field or SetX method.
type beanConverter struct {
	introspector introspect.Introspector
	validator    *validator.Validate

	mu    sync.Mutex
	cache *lru.Cache
}

func newBeanConverter(o *Options) *beanConverter {
	return &beanConverter{
		introspector: o.Introspector,
		validator:    o.Validator,
		cache:        lru.New(o.CacheSize),
	}
}

func (c *beanConverter) Supports(from, to reflect.Type) bool {
	return from.Kind() == reflect.Map && from.Key().Kind() == reflect.String &&
		introspect.Indirect(to).Kind() == reflect.Struct
}

func (c *beanConverter) Convert(value reflect.Value, to reflect.Type, fallback Fallback) (reflect.Value, error) {
	base := introspect.Indirect(to)
	setters, err := c.setters(base)
	if err != nil {
		return reflect.Value{}, err
	}
	keys := value.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	target := reflect.New(base)
	for _, key := range keys {
		name := key.String()
		s, ok := setters[name]
		if !ok {
			return reflect.Value{}, ambiguous(value.Type(), base, "no setter for %q", name)
		}
		item, err := fallback(value.MapIndex(key), s.typ)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "%s.%s", base.Name(), name)
		}
		if err := s.set(target, item); err != nil {
			return reflect.Value{}, ambiguous(value.Type(), base, "%s: %v", name, err)
		}
	}
	if c.validator != nil {
		if err := c.validator.Struct(target.Interface()); err != nil {
			return reflect.Value{}, errors.Wrapf(err, "validating %s", base)
		}
	}
	return target, nil
}

// setters returns the writable members of t keyed by schema name. Tables are
// kept in a bounded LRU; failures are never cached.
func (c *beanConverter) setters(t reflect.Type) (map[string]setter, error) {
	c.mu.Lock()
	if v, ok := c.cache.Get(t); ok {
		c.mu.Unlock()
		return v.(map[string]setter), nil
	}
	c.mu.Unlock()

	members, err := c.introspector.Members(t)
	if err != nil {
		return nil, errors.Wrapf(err, "reading setters of %s", t)
	}
	writable := members[:0:0]
	for _, m := range members {
		if m.Writable() && !hiddenEverywhere(m.Attributes) {
			writable = append(writable, m)
		}
	}
	ret := make(map[string]setter, len(writable))
	for _, m := range introspect.MostSpecific(writable) {
		if _, ok := ret[m.Name]; ok {
			continue
		}
		s := setter{name: m.Name, typ: m.Type}
		if m.Kind == introspect.Property {
			s.index = m.Index
			if !reachable(t, m.Index) {
				continue
			}
		} else {
			s.method = m.Func
		}
		ret[m.Name] = s
	}
	if len(ret) == 0 {
		return nil, ambiguous(nil, t, "type has no setters")
	}

	c.mu.Lock()
	c.cache.Add(t, ret)
	c.mu.Unlock()
	return ret, nil
}

func hiddenEverywhere(attrs introspect.Attributes) bool {
	for _, ignore := range introspect.All[meta.Ignore](attrs) {
		if len(ignore.Views) == 0 {
			return true
		}
	}
	return false
}

// reachable reports a promoted field that is not behind an embedded pointer,
// which a zero value could not be assigned through.
func reachable(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Pointer {
			return false
		}
		t = f.Type
	}
	return true
}
