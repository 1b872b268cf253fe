package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/config"
)

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"help", "print"}, &out, new(bytes.Buffer)))
	require.Contains(t, out.String(), "print FLAGS")

	out.Reset()
	require.NoError(t, run([]string{"help"}, &out, new(bytes.Buffer)))
	require.Contains(t, out.String(), "COMMANDS")

	require.ErrorContains(t, run([]string{"help", "serve"}, &out, new(bytes.Buffer)), "unknown help topic")
}

func TestUnknownCommand(t *testing.T) {
	var stderr bytes.Buffer
	err := run([]string{"serve"}, new(bytes.Buffer), &stderr)
	require.ErrorContains(t, err, `unknown command "serve"`)
	require.Contains(t, stderr.String(), "USAGE")

	err = run(nil, new(bytes.Buffer), &stderr)
	require.ErrorContains(t, err, "missing command")
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"print"}, &out, new(bytes.Buffer)))

	sdl := out.String()
	for _, want := range []string{
		"directive @cached",
		"enum Genre",
		"interface Publication",
		"type Book implements Publication",
		"union SearchResult = Book | Author",
		"input BookInput",
		"scalar DateTime",
		"publications: [Publication]",
	} {
		require.Contains(t, sdl, want)
	}
	require.NotContains(t, sdl, "extend type")
}

func TestPrintToFileWithConfig(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "gqlschema.yaml")
	outFile := filepath.Join(dir, "schema.graphql")
	require.NoError(t, os.WriteFile(configFile, []byte("output: "+outFile+"\nvalidate: true\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"print", "-config", configFile}, &out, new(bytes.Buffer)))
	require.Empty(t, out.String())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "type Query")
}

func TestPrintRejectsBadFlags(t *testing.T) {
	var stderr bytes.Buffer
	err := run([]string{"print", "-v", "9"}, new(bytes.Buffer), &stderr)
	require.ErrorContains(t, err, "invalid config")

	err = run([]string{"print", "-nope"}, new(bytes.Buffer), &stderr)
	require.Error(t, err)
	require.Contains(t, stderr.String(), "print FLAGS")
}

func TestCatalogRuntime(t *testing.T) {
	sch, err := buildCatalog(config.Default(), newLogger(new(bytes.Buffer), 0))
	require.NoError(t, err)
	ctx := context.Background()

	books, err := sch.Runtime.ResolveField(ctx, "Query", "books", nil, map[string]any{"genre": "SCIENCE"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	cosmos := books.([]*Book)[0]

	author, err := sch.Runtime.ResolveField(ctx, "Book", "author", cosmos, nil)
	require.NoError(t, err)
	require.Equal(t, "Carl Sagan", author.(*Author).Name)

	_, err = sch.Runtime.ResolveField(ctx, "Query", "book", nil, map[string]any{"id": "missing"})
	require.ErrorContains(t, err, "book missing not found")

	results, err := sch.Runtime.ResolveField(ctx, "Query", "search", nil, map[string]any{"text": "dispossessed"})
	require.NoError(t, err)
	for _, r := range results.([]SearchResult) {
		name, err := sch.Runtime.ResolveType(ctx, "SearchResult", r)
		require.NoError(t, err)
		require.Equal(t, "Book", name)
	}

	_, err = sch.Runtime.ResolveField(ctx, "Mutation", "addBook", nil, map[string]any{
		"input": map[string]any{"title": "Contact", "authorId": "nobody"},
	})
	require.ErrorContains(t, err, "author nobody not found")
}
