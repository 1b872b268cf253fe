package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/config"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/eventbus"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/otel"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/resolve"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/schema"
)

const rootUsage = `gqlschema - GraphQL schemas from Go types

USAGE:
  gqlschema <command> [flags]

COMMANDS:
  print            Build, validate and print the SDL of the catalog model
  help             Show help for any command
`

const printUsage = `print FLAGS:
  -config <file>           YAML config file
  -view <name>             Activate a view. Repeatable; replaces configured views
  -out <file>              Write SDL to file (default: stdout)
  -v <level>               Log verbosity (default: 0)
  -otel.endpoint <addr>    OTLP collector endpoint
  -otel.service <name>     OpenTelemetry service name (default: gqlschema)
  (Validation always runs; exits non-zero on errors)
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("gqlschema", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "print":
		return cmdPrint(cmdArgs, stdout, stderr)
	case "help":
		return cmdHelp(cmdArgs, stdout)
	default:
		fmt.Fprint(stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, rootUsage)
		return nil
	}
	switch args[0] {
	case "print":
		fmt.Fprint(stdout, printUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdPrint(args []string, stdout, stderr io.Writer) error {
	configFile := ""
	outFile := ""
	verbosity := -1
	otelEndpoint := ""
	otelService := ""
	var views stringListFlag

	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&configFile, "config", configFile, "YAML config file")
	fs.Var(&views, "view", "Activate a view")
	fs.StringVar(&outFile, "out", outFile, "Write SDL to file")
	fs.IntVar(&verbosity, "v", verbosity, "Log verbosity")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, printUsage)
		return err
	}

	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}
	if len(views) > 0 {
		cfg.Views = []string(views)
	}
	if outFile != "" {
		cfg.Output = outFile
	}
	if verbosity >= 0 {
		cfg.Verbosity = verbosity
	}
	if otelEndpoint != "" {
		cfg.Telemetry.Endpoint = otelEndpoint
	}
	if otelService != "" {
		cfg.Telemetry.Service = otelService
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Verbosity)
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)
	shutdown, err := otel.Setup(cfg.Telemetry.Endpoint, cfg.Telemetry.Service)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	sch, err := buildCatalog(cfg, logger)
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	if _, err := sch.Validate(); err != nil {
		return fmt.Errorf("validate schema: %w", err)
	}
	sdl := schema.Render(sch)
	if cfg.Output == "" {
		fmt.Fprint(stdout, sdl)
		return nil
	}
	if err := os.WriteFile(cfg.Output, []byte(sdl), 0644); err != nil {
		return err
	}
	logger.Info("schema written", "file", cfg.Output)
	return nil
}

func newLogger(w io.Writer, verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.New(log.New(w, "", log.LstdFlags))
}

func buildCatalog(cfg *config.Config, logger logr.Logger) (*schema.Schema, error) {
	engineOpts := append(cfg.EngineOptions(), resolve.WithIntrospector(introspect.New(demoRegistry())))
	return schema.Build(
		schema.WithQuery(reflect.TypeFor[Query]()),
		schema.WithMutation(reflect.TypeFor[Mutation]()),
		schema.WithTypes(demoTypes...),
		schema.WithLogger(logger),
		schema.WithEngineOptions(engineOpts...),
	)
}
