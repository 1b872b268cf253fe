package main

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/reqid"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/scalars"
)

// The demo model is a small library catalog.

type Genre string

const (
	Fiction Genre = "FICTION"
	Science Genre = "SCIENCE"
	Poetry  Genre = "POETRY"
)

type Publication interface {
	GetTitle() string
}

type Author struct {
	ID   scalars.ID `graphql:"id,nonnull"`
	Name string     `description:"Full name of the author."`
	Born time.Time
}

type Book struct {
	ID        scalars.ID `graphql:"id,nonnull"`
	Title     string     `graphql:",nonnull"`
	Genre     Genre
	Published time.Time
	AuthorID  scalars.ID `graphql:"-"`
}

func (b *Book) GetTitle() string { return b.Title }

// Author looks up the author of the book.
func (b *Book) Author() *Author { return catalog.author(b.AuthorID) }

type Magazine struct {
	ID    scalars.ID `graphql:"id,nonnull"`
	Title string     `graphql:",nonnull"`
	Issue int
}

func (m *Magazine) GetTitle() string { return m.Title }

type SearchResult interface{}

type BookInput struct {
	_        struct{}   `graphql:"BookInput,input" description:"A book to add to the catalog."`
	Title    string     `graphql:"title,nonnull" validate:"required"`
	Genre    Genre      `default:"\"FICTION\""`
	AuthorID scalars.ID `graphql:"authorId,nonnull"`
}

// Cached is a directive hinting how long a field result may be cached.
type Cached struct {
	TTL int `graphql:"ttl,nonnull"`
}

type Query struct{}

func (Query) Books(genre *Genre) []*Book { return catalog.books(genre) }

func (Query) Book(id scalars.ID) (*Book, error) {
	b := catalog.book(id)
	if b == nil {
		return nil, fmt.Errorf("book %s not found", id)
	}
	return b, nil
}

func (Query) Search(text string) []SearchResult { return catalog.search(text) }

type Mutation struct{}

func (Mutation) AddBook(ctx context.Context, input BookInput) (*Book, error) {
	id, _ := reqid.FromContext(ctx)
	if catalog.author(input.AuthorID) == nil {
		return nil, fmt.Errorf("author %s not found (request %s)", input.AuthorID, id)
	}
	return catalog.add(input), nil
}

// QueryExtension adds fields to Query from a separate declaration.
type QueryExtension struct{}

func (QueryExtension) Publications() []Publication { return catalog.publications() }

// demoRegistry attaches the attributes Go cannot express with tags.
func demoRegistry() *introspect.Registry {
	return introspect.NewRegistry().
		Type(reflect.TypeFor[Genre](), meta.Enum{
			Description: "Literary genre of a book.",
			Values:      []any{Fiction, Science, Poetry},
		}, meta.EnumValue{Value: Poetry, Deprecated: "merged into FICTION"}).
		Type(reflect.TypeFor[Publication](), meta.Interface{Description: "Anything with a title."}).
		Type(reflect.TypeFor[Book](), meta.Object{Implements: []reflect.Type{reflect.TypeFor[Publication]()}}).
		Type(reflect.TypeFor[Magazine](), meta.Object{Implements: []reflect.Type{reflect.TypeFor[Publication]()}}).
		Type(reflect.TypeFor[SearchResult](), meta.Union{
			Members: []reflect.Type{reflect.TypeFor[Book](), reflect.TypeFor[Author]()},
		}).
		Type(reflect.TypeFor[Cached](), meta.Directive{
			Description: "Cache the field result for ttl seconds.",
			Locations:   []string{"FIELD_DEFINITION"},
		}).
		Type(reflect.TypeFor[QueryExtension](), meta.Extends{Target: reflect.TypeFor[Query]()}).
		Member(reflect.TypeFor[Query](), "Books", meta.Params{Names: []string{"genre"}}, meta.Apply{Value: Cached{TTL: 60}}).
		Member(reflect.TypeFor[Query](), "Book", meta.Params{Names: []string{"id"}}).
		Param(reflect.TypeFor[Query](), "Book", 0, meta.NonNull{}).
		Member(reflect.TypeFor[Query](), "Search", meta.Params{Names: []string{"text"}}).
		Param(reflect.TypeFor[Query](), "Search", 0, meta.NonNull{}).
		Member(reflect.TypeFor[Mutation](), "AddBook", meta.Params{Names: []string{"ctx", "input"}}).
		Param(reflect.TypeFor[Mutation](), "AddBook", 1, meta.NonNull{})
}

// demoTypes are resolved in addition to the root types.
var demoTypes = []reflect.Type{
	reflect.TypeFor[Magazine](),
	reflect.TypeFor[QueryExtension](),
}

type library struct {
	mu        sync.RWMutex
	authors   []*Author
	bookList  []*Book
	magazines []*Magazine
}

var catalog = &library{
	authors: []*Author{
		{ID: "a1", Name: "Ursula K. Le Guin", Born: time.Date(1929, 10, 21, 0, 0, 0, 0, time.UTC)},
		{ID: "a2", Name: "Carl Sagan", Born: time.Date(1934, 11, 9, 0, 0, 0, 0, time.UTC)},
	},
	bookList: []*Book{
		{ID: "b1", Title: "The Dispossessed", Genre: Fiction, AuthorID: "a1"},
		{ID: "b2", Title: "Cosmos", Genre: Science, AuthorID: "a2"},
	},
	magazines: []*Magazine{
		{ID: "m1", Title: "Analog", Issue: 7},
	},
}

func (l *library) author(id scalars.ID) *Author {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, a := range l.authors {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (l *library) book(id scalars.ID) *Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, b := range l.bookList {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (l *library) books(genre *Genre) []*Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var ret []*Book
	for _, b := range l.bookList {
		if genre == nil || b.Genre == *genre {
			ret = append(ret, b)
		}
	}
	return ret
}

func (l *library) search(text string) []SearchResult {
	l.mu.RLock()
	defer l.mu.RUnlock()
	text = strings.ToLower(text)
	var ret []SearchResult
	for _, b := range l.bookList {
		if strings.Contains(strings.ToLower(b.Title), text) {
			ret = append(ret, b)
		}
	}
	for _, a := range l.authors {
		if strings.Contains(strings.ToLower(a.Name), text) {
			ret = append(ret, a)
		}
	}
	return ret
}

func (l *library) publications() []Publication {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var ret []Publication
	for _, b := range l.bookList {
		ret = append(ret, b)
	}
	for _, m := range l.magazines {
		ret = append(ret, m)
	}
	return ret
}

func (l *library) add(input BookInput) *Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	b := &Book{
		ID:       scalars.ID(fmt.Sprintf("b%d", len(l.bookList)+1)),
		Title:    input.Title,
		Genre:    input.Genre,
		AuthorID: input.AuthorID,
	}
	l.bookList = append(l.bookList, b)
	return b
}
