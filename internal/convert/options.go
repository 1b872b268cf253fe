package convert

import (
	"reflect"

	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/scalars"
)

// EnumLookup maps an enum value name back to the raw Go enumerant.
type EnumLookup interface {
	IsEnum(t reflect.Type) bool
	EnumRaw(t reflect.Type, name string) (any, bool)
}

// Options configures a Chain.
//
// Defaults:
// - Scalars:      scalars.Default()
// - Introspector: introspect.New(nil)
// - CacheSize:    256 setter tables
//
// Validator is optional; when set, every struct built by the bean converter
// is validated with it.
type Options struct {
	Scalars      *scalars.Repository
	Introspector introspect.Introspector
	Enums        EnumLookup
	Validator    *validator.Validate
	CacheSize    int
	Logger       logr.Logger
	// Converters run before the default converters.
	Converters []Converter
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Scalars:      scalars.Default(),
		Introspector: introspect.New(nil),
		CacheSize:    256,
		Logger:       logr.Discard(),
	}
}

func WithScalars(r *scalars.Repository) Option { return func(o *Options) { o.Scalars = r } }
func WithIntrospector(i introspect.Introspector) Option {
	return func(o *Options) { o.Introspector = i }
}
func WithEnums(e EnumLookup) Option                  { return func(o *Options) { o.Enums = e } }
func WithValidator(v *validator.Validate) Option     { return func(o *Options) { o.Validator = v } }
func WithCacheSize(n int) Option                     { return func(o *Options) { o.CacheSize = n } }
func WithLogger(l logr.Logger) Option                { return func(o *Options) { o.Logger = l } }
func WithConverters(converters ...Converter) Option {
	return func(o *Options) { o.Converters = append(o.Converters, converters...) }
}
