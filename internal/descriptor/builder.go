package descriptor

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/instance"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
)

// Builder builds descriptors against the types of one schema build.
type Builder struct {
	opts  Options
	types Types
}

// NewBuilder creates a Builder mapping member types through types.
func NewBuilder(types Types, opts Options) *Builder {
	if opts.Instantiator == nil {
		opts.Instantiator = instance.Zero
	}
	if opts.Injected == nil {
		opts.Injected = func(reflect.Type, introspect.Param) bool { return false }
	}
	return &Builder{opts: opts, types: types}
}

// Members selects the members t exposes in ctx. A member is selected when it
// has the shape ctx requires, is not ignored in the active views, carries a
// Field marker if any member of t does, and passes the type's Filter.
func (b *Builder) Members(t reflect.Type, ctx Context) ([]introspect.Member, error) {
	members, err := b.opts.Introspector.Members(t)
	if err != nil {
		return nil, violation.Invalid(t, "%v", err)
	}
	attrs, err := b.opts.Introspector.TypeAttributes(t)
	if err != nil {
		return nil, violation.Invalid(t, "%v", err)
	}
	accept, err := b.filter(attrs)
	if err != nil {
		return nil, violation.Invalid(t, "member filter: %v", err)
	}
	optIn := false
	for _, m := range members {
		if introspect.Has[meta.Field](m.Attributes) {
			optIn = true
			break
		}
	}
	var ret []introspect.Member
	for _, m := range members {
		switch {
		case ctx == Output && !m.Readable():
		case ctx == Input && !m.Writable():
		case b.ignored(m.Attributes):
		case optIn && !introspect.Has[meta.Field](m.Attributes):
		case accept != nil && !accept(m.Name):
		default:
			ret = append(ret, m)
		}
	}
	return introspect.MostSpecific(ret), nil
}

// Fields builds the descriptors of the members owner exposes in ctx. When
// strict is set a repeated field name is an error; otherwise the first member
// of a name wins.
func (b *Builder) Fields(owner reflect.Type, ctx Context, strict bool) ([]*Field, error) {
	members, err := b.Members(owner, ctx)
	if err != nil {
		return nil, err
	}
	var ret []*Field
	seen := map[string]bool{}
	for _, m := range members {
		if seen[m.Name] {
			if strict {
				return nil, violation.DuplicateField(owner, contextName(ctx), m.Name, owner.Name())
			}
			continue
		}
		seen[m.Name] = true
		f, err := b.Field(owner, m, ctx)
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	return ret, nil
}

// Field builds the descriptor of member m of owner. Output method members get
// their parameters described as arguments.
func (b *Builder) Field(owner reflect.Type, m introspect.Member, ctx Context) (*Field, error) {
	f, err := b.field(owner, m.Name, m.Type, m.Attributes, ctx)
	if err != nil {
		return nil, violation.At(err, m.Name)
	}
	f.Member = m
	if ctx == Output && m.Kind == introspect.Method {
		for _, p := range b.opts.Introspector.Params(m.Declaring, m) {
			arg, err := b.argument(owner, p)
			if err != nil {
				return nil, violation.At(violation.At(err, p.Name), m.Name)
			}
			f.Params = append(f.Params, arg)
		}
	}
	return f, nil
}

// field describes a named value of type declared seen from owner.
func (b *Builder) field(owner reflect.Type, name string, declared reflect.Type, attrs introspect.Attributes, ctx Context) (*Field, error) {
	if !validName(name) {
		return nil, violation.InvalidName(owner, "field", name)
	}
	shape, err := b.opts.Generics.Shape(owner, declared, attrs)
	if err != nil {
		return nil, violation.Invalid(owner, "%v", err)
	}
	typeName, kind, err := b.types.Named(shape.Elem)
	if err != nil {
		return nil, err
	}
	switch {
	case ctx == Output && !language.IsOutputKind(kind):
		return nil, violation.InputTypeInOutput(owner, name, typeName)
	case ctx == Input && !language.IsInputKind(kind):
		return nil, violation.OutputTypeInInput(owner, name, typeName, string(kind))
	}
	f := &Field{
		Name:        name,
		Description: description(attrs),
		Owner:       owner,
		Shape:       shape,
		Kind:        kind,
		TypeName:    typeName,
		NonNull:     b.nonNull(attrs),
	}
	f.Type = shape.Wrap(typeName, f.NonNull)
	if d, ok := introspect.Lookup[meta.Deprecated](attrs); ok {
		f.Deprecated = true
		f.Reason = d.Reason
	}
	if ctx == Input {
		if f.Default, err = b.defaultValue(attrs, kind); err != nil {
			return nil, err
		}
	}
	if f.Directives, err = b.Directives(attrs); err != nil {
		return nil, err
	}
	return f, nil
}

// argument describes parameter p of a method exposed on owner.
func (b *Builder) argument(owner reflect.Type, p introspect.Param) (*Argument, error) {
	arg := &Argument{Param: p, Target: p.Type}
	arg.Name = p.Name
	arg.Owner = owner
	if b.opts.Injected(owner, p) {
		arg.Injected = true
		return arg, nil
	}
	if elem, ok := b.decomposable(owner, p); ok {
		return b.decompose(arg, elem)
	}
	f, err := b.field(owner, p.Name, p.Type, p.Attributes, Input)
	if err != nil {
		return nil, err
	}
	if a, ok := introspect.Lookup[meta.Arg](p.Attributes); ok && a.Description != "" {
		f.Description = a.Description
	}
	arg.Field = *f
	return arg, nil
}

// decomposable reports a parameter of a plain struct type, which has no input
// mapping and is exposed through the setters of the struct instead.
func (b *Builder) decomposable(owner reflect.Type, p introspect.Param) (reflect.Type, bool) {
	shape, err := b.opts.Generics.Shape(owner, p.Type, p.Attributes)
	if err != nil || shape.IsList() || shape.Elem.Kind() != reflect.Struct {
		return nil, false
	}
	kind, ok := b.types.Kind(shape.Elem)
	return shape.Elem, ok && kind == language.Object
}

func (b *Builder) decompose(arg *Argument, elem reflect.Type) (*Argument, error) {
	members, err := b.Members(elem, Input)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	arg.Decomposed = []*Argument{}
	for _, m := range members {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		f, err := b.field(elem, m.Name, m.Type, m.Attributes, Input)
		if err != nil {
			return nil, violation.At(err, m.Name)
		}
		f.Member = m
		arg.Decomposed = append(arg.Decomposed, &Argument{Field: *f, Target: m.Type})
	}
	return arg, nil
}

func (b *Builder) ignored(attrs introspect.Attributes) bool {
	for _, ignore := range introspect.All[meta.Ignore](attrs) {
		if meta.InViews(ignore.Views, b.opts.Views) {
			return true
		}
	}
	return false
}

func (b *Builder) nonNull(attrs introspect.Attributes) bool {
	for _, nn := range introspect.All[meta.NonNull](attrs) {
		if meta.InViews(nn.Views, b.opts.Views) {
			return true
		}
	}
	return false
}

func (b *Builder) filter(attrs introspect.Attributes) (func(string) bool, error) {
	f, ok := introspect.Lookup[meta.Filter](attrs)
	if !ok {
		return nil, nil
	}
	if f.Provider != nil {
		mf, err := instance.As[meta.MemberFilter](b.opts.Instantiator, f.Provider)
		if err != nil {
			return nil, err
		}
		if f.Accept == nil {
			return mf.Accept, nil
		}
		return func(name string) bool { return f.Accept(name) && mf.Accept(name) }, nil
	}
	return f.Accept, nil
}

func description(attrs introspect.Attributes) string {
	if d, ok := introspect.Lookup[meta.Description](attrs); ok {
		return d.Text
	}
	if f, ok := introspect.Lookup[meta.Field](attrs); ok {
		return f.Description
	}
	return ""
}

// Description returns the description carried by attrs.
func Description(attrs introspect.Attributes) string { return description(attrs) }

func contextName(ctx Context) string {
	if ctx == Input {
		return "input"
	}
	return "type"
}

// validName reports a GraphQL name that is not reserved for introspection.
func validName(name string) bool {
	if name == "" || len(name) > 1 && name[:2] == "__" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// ValidName reports whether name may name a schema element.
func ValidName(name string) bool { return validName(name) }
