package schema

import (
	"context"
	"reflect"
	"slices"
	"time"

	"github.com/go-logr/logr"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/eventbus"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/events"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/reqid"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/resolve"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/wiring"
)

// Options configures Build.
type Options struct {
	Query        reflect.Type
	Mutation     reflect.Type
	Subscription reflect.Type
	// Types are resolved in addition to the types reachable from the roots,
	// such as interface implementations and extensions.
	Types  []reflect.Type
	Engine []resolve.Option
	Logger logr.Logger
	// BuildID tags the events of the build. A request id is generated when empty.
	BuildID string
}

// Option mutates Options.
type Option func(*Options)

func WithQuery(t reflect.Type) Option        { return func(o *Options) { o.Query = t } }
func WithMutation(t reflect.Type) Option     { return func(o *Options) { o.Mutation = t } }
func WithSubscription(t reflect.Type) Option { return func(o *Options) { o.Subscription = t } }
func WithLogger(l logr.Logger) Option        { return func(o *Options) { o.Logger = l } }
func WithBuildID(id string) Option           { return func(o *Options) { o.BuildID = id } }
func WithTypes(types ...reflect.Type) Option {
	return func(o *Options) { o.Types = append(o.Types, types...) }
}
func WithEngineOptions(opts ...resolve.Option) Option {
	return func(o *Options) { o.Engine = append(o.Engine, opts...) }
}

// Build resolves the root types and assembles the schema. Extensions are
// merged into their base definition; members the base already declares are
// kept from the base.
func Build(opts ...Option) (s *Schema, err error) {
	o := &Options{Logger: logr.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	if o.Query == nil {
		return nil, violation.Invalid(nil, "a query type is required")
	}
	if o.BuildID == "" {
		o.BuildID = string(reqid.New())
	}

	roots := []reflect.Type{o.Query, o.Mutation, o.Subscription}
	roots = append(roots, o.Types...)
	var rootNames []string
	for _, t := range roots {
		if t != nil {
			rootNames = append(rootNames, t.String())
		}
	}

	start := time.Now()
	ctx := context.Background()
	eventbus.Publish(ctx, events.BuildStart{ID: o.BuildID, Roots: rootNames})
	defer func() {
		types := 0
		if s != nil {
			types = len(s.types)
		}
		eventbus.Publish(ctx, events.BuildFinish{ID: o.BuildID, Types: types, Err: err, Duration: time.Since(start)})
	}()

	engineOpts := append([]resolve.Option{resolve.WithLogger(o.Logger)}, o.Engine...)
	engineOpts = append(engineOpts, resolve.WithBuildID(o.BuildID))
	engine := resolve.New(engineOpts...)
	for _, t := range roots {
		if t != nil {
			engine.AddRoot(t)
		}
	}
	var providers []*resolve.Provider
	for p, err := range engine.Stream() {
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	s = &Schema{
		Document:   &language.SchemaDocument{},
		types:      map[string]*language.Definition{},
		directives: map[string]*language.DirectiveDefinition{},
	}
	if err := s.fold(providers); err != nil {
		return nil, err
	}
	if s.QueryType, err = rootName(engine, o.Query); err != nil {
		return nil, err
	}
	if s.MutationType, err = rootName(engine, o.Mutation); err != nil {
		return nil, err
	}
	if s.SubscriptionType, err = rootName(engine, o.Subscription); err != nil {
		return nil, err
	}
	s.Document.Schema = language.SchemaDefinitionList{s.schemaDefinition()}

	w := wiring.NewBuilder()
	for _, p := range providers {
		w = p.Wire(w)
	}
	s.Runtime = w.Build()

	o.Logger.Info("schema built", "build", o.BuildID, "types", len(s.types), "directives", len(s.directives), "duration", time.Since(start).String())
	return s, nil
}

func rootName(engine *resolve.Engine, t reflect.Type) (string, error) {
	if t == nil {
		return "", nil
	}
	p, err := engine.Resolve(t)
	if err != nil {
		return "", err
	}
	if p.Kind != language.Object || p.Extension {
		return "", violation.Invalid(t, "root operation type must be an object, got %s", p.Kind)
	}
	return p.Name, nil
}

// fold collects provider definitions into the document, then merges
// extensions in the order they were produced.
func (s *Schema) fold(providers []*resolve.Provider) error {
	var extensions []*resolve.Provider
	for _, p := range providers {
		switch {
		case p.Kind == language.DirectiveKind:
			if builtinDirectives[p.Name] {
				return violation.Invalid(p.Type, "directive @%s is built in", p.Name)
			}
			if _, ok := s.directives[p.Name]; ok {
				continue
			}
			s.directives[p.Name] = p.Directive
			s.Document.Directives = append(s.Document.Directives, p.Directive)
		case p.Extension:
			extensions = append(extensions, p)
		case p.Kind == language.Scalar && builtinScalars[p.Name]:
		default:
			if _, ok := s.types[p.Name]; ok {
				continue
			}
			def := cloneDefinition(p.Definition)
			s.types[p.Name] = def
			s.Document.Definitions = append(s.Document.Definitions, def)
		}
	}
	for _, ext := range extensions {
		base, ok := s.types[ext.Name]
		if !ok {
			return violation.Invalid(ext.Type, "extension of %s has no base definition", ext.Name)
		}
		merge(base, ext.Definition)
	}
	return nil
}

func (s *Schema) schemaDefinition() *language.SchemaDefinition {
	def := &language.SchemaDefinition{}
	for _, op := range []struct {
		operation language.Operation
		name      string
	}{
		{language.Query, s.QueryType},
		{language.Mutation, s.MutationType},
		{language.Subscription, s.SubscriptionType},
	} {
		if op.name != "" {
			def.OperationTypes = append(def.OperationTypes, &language.OperationTypeDefinition{Operation: op.operation, Type: op.name})
		}
	}
	return def
}

func cloneDefinition(def *language.Definition) *language.Definition {
	c := *def
	c.Fields = slices.Clone(def.Fields)
	c.EnumValues = slices.Clone(def.EnumValues)
	c.Types = slices.Clone(def.Types)
	c.Interfaces = slices.Clone(def.Interfaces)
	c.Directives = slices.Clone(def.Directives)
	return &c
}

// merge adds the members of ext that base does not declare.
func merge(base, ext *language.Definition) {
	for _, f := range ext.Fields {
		if base.Fields.ForName(f.Name) == nil {
			base.Fields = append(base.Fields, f)
		}
	}
	for _, v := range ext.EnumValues {
		if base.EnumValues.ForName(v.Name) == nil {
			base.EnumValues = append(base.EnumValues, v)
		}
	}
	for _, name := range ext.Types {
		if !slices.Contains(base.Types, name) {
			base.Types = append(base.Types, name)
		}
	}
	for _, name := range ext.Interfaces {
		if !slices.Contains(base.Interfaces, name) {
			base.Interfaces = append(base.Interfaces, name)
		}
	}
	for _, d := range ext.Directives {
		if base.Directives.ForName(d.Name) == nil {
			base.Directives = append(base.Directives, d)
		}
	}
	if base.Description == "" {
		base.Description = ext.Description
	}
}
