package resolve

import (
	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/argument"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/convert"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/instance"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/scalars"
)

// Options configures an Engine.
//
// Defaults:
// - Introspector: introspect.New(nil)
// - Scalars:      scalars.Default()
// - Instantiator: instance.Zero
// - Services:     an instance.Registry creating zero values on demand
// - Logger:       discards
//
// Resolvers are consulted before the defaults, Factories before the default
// argument factories and Converters before the default converters.
type Options struct {
	Views        []string
	Logger       logr.Logger
	Resolvers    []TypeResolver
	Introspector introspect.Introspector
	Scalars      *scalars.Repository
	Instantiator instance.Instantiator
	Services     instance.Services
	Factories    []argument.Factory
	Converters   []convert.Converter
	Validator    *validator.Validate
	CacheSize    int
	// BuildID tags the events of one build.
	BuildID string
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Logger:       logr.Discard(),
		Introspector: introspect.New(nil),
		Scalars:      scalars.Default(),
		Instantiator: instance.Zero,
		CacheSize:    256,
	}
}

func WithViews(views ...string) Option           { return func(o *Options) { o.Views = views } }
func WithLogger(l logr.Logger) Option            { return func(o *Options) { o.Logger = l } }
func WithScalars(r *scalars.Repository) Option   { return func(o *Options) { o.Scalars = r } }
func WithServices(s instance.Services) Option    { return func(o *Options) { o.Services = s } }
func WithValidator(v *validator.Validate) Option { return func(o *Options) { o.Validator = v } }
func WithCacheSize(n int) Option                 { return func(o *Options) { o.CacheSize = n } }
func WithBuildID(id string) Option               { return func(o *Options) { o.BuildID = id } }
func WithInstantiator(i instance.Instantiator) Option {
	return func(o *Options) { o.Instantiator = i }
}
func WithIntrospector(i introspect.Introspector) Option {
	return func(o *Options) { o.Introspector = i }
}
func WithResolvers(resolvers ...TypeResolver) Option {
	return func(o *Options) { o.Resolvers = append(o.Resolvers, resolvers...) }
}
func WithFactories(factories ...argument.Factory) Option {
	return func(o *Options) { o.Factories = append(o.Factories, factories...) }
}
func WithConverters(converters ...convert.Converter) Option {
	return func(o *Options) { o.Converters = append(o.Converters, converters...) }
}
