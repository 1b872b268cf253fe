package argument

import (
	"context"
	"reflect"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/eventbus"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/events"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/reqid"
)

// Binding invokes the member behind one field. It is immutable and safe for
// concurrent use.
type Binding struct {
	typeName  string
	field     string
	owner     reflect.Type
	member    introspect.Member
	providers []Provider
	env       *Env
	logger    logr.Logger
}

// Bind captures the member of field and the providers of its parameters.
func Bind(typeName string, field *descriptor.Field, env *Env, factories []Factory) (*Binding, error) {
	providers, err := Providers(field, env, factories)
	if err != nil {
		return nil, err
	}
	return &Binding{
		typeName:  typeName,
		field:     field.Name,
		owner:     introspect.Indirect(field.Owner),
		member:    field.Member,
		providers: providers,
		env:       env,
		logger:    env.Logger,
	}, nil
}

// Resolve produces the field value for source. Errors returned by the bound
// method are propagated unchanged.
func (b *Binding) Resolve(ctx context.Context, source any, args map[string]any) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	id, ok := reqid.FromContext(ctx)
	if !ok {
		ctx, id = reqid.NewContext(ctx)
	}
	req := &Request{Context: ctx, ID: id, Type: b.typeName, Field: b.field, Source: source, Args: args}

	start := time.Now()
	eventbus.Publish(ctx, events.FieldInvokeStart{ID: string(id), Type: b.typeName, Field: b.field})
	value, err := b.invoke(req)
	eventbus.Publish(ctx, events.FieldInvokeFinish{
		ID: string(id), Type: b.typeName, Field: b.field, Err: err, Duration: time.Since(start),
	})
	if err != nil {
		b.logger.V(1).Info("field failed", "type", b.typeName, "field", b.field, "error", err.Error())
	}
	return value, err
}

func (b *Binding) invoke(req *Request) (any, error) {
	if b.member.Kind == introspect.Property {
		receiver, err := b.receiver(req.Source)
		if err != nil || !receiver.IsValid() {
			return nil, err
		}
		field, err := receiver.Elem().FieldByIndexErr(b.member.Index)
		if err != nil {
			return nil, nil
		}
		return field.Interface(), nil
	}

	in := make([]reflect.Value, 0, len(b.providers)+1)
	var method reflect.Value
	if b.owner.Kind() == reflect.Interface {
		rv := reflect.ValueOf(req.Source)
		if !rv.IsValid() {
			return nil, nil
		}
		method = rv.MethodByName(b.member.GoName)
		if !method.IsValid() {
			return nil, errors.Errorf("%T has no method %s", req.Source, b.member.GoName)
		}
	} else {
		receiver, err := b.receiver(req.Source)
		if err != nil {
			return nil, err
		}
		if !receiver.IsValid() {
			return nil, nil
		}
		method = b.member.Func.Func
		in = append(in, receiver)
	}
	for _, provide := range b.providers {
		v, err := provide(req)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}
	var out []reflect.Value
	if method.Type().IsVariadic() {
		out = method.CallSlice(in)
	} else {
		out = method.Call(in)
	}
	if b.member.ReturnsError {
		if errv := out[1]; !errv.IsNil() {
			return nil, errv.Interface().(error)
		}
	}
	return out[0].Interface(), nil
}

// receiver returns a pointer to the owner value: the source when it holds the
// owner type, otherwise the registered service. A nil source pointer yields
// an invalid value.
func (b *Binding) receiver(source any) (reflect.Value, error) {
	rv := reflect.ValueOf(source)
	if rv.IsValid() && introspect.Indirect(rv.Type()) == b.owner {
		for rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Pointer {
			if rv.IsNil() {
				return reflect.Value{}, nil
			}
			rv = rv.Elem()
		}
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return reflect.Value{}, nil
			}
			return rv, nil
		}
		ptr := reflect.New(b.owner)
		ptr.Elem().Set(rv)
		return ptr, nil
	}
	if b.env.Services == nil {
		return reflect.Value{}, errors.Errorf("no service provides %s for %s.%s", b.owner, b.typeName, b.field)
	}
	service, err := b.env.Services.Service(b.owner)
	if err != nil {
		return reflect.Value{}, errors.Wrapf(err, "receiver of %s.%s", b.typeName, b.field)
	}
	sv := reflect.ValueOf(service)
	if sv.Kind() != reflect.Pointer || sv.Type().Elem() != b.owner {
		return reflect.Value{}, errors.Errorf("service for %s is %T", b.owner, service)
	}
	return sv, nil
}
