// Package events declares the events published on the event bus while a
// schema is built and while bound fields are invoked.
package events

import "time"

// BuildStart is emitted before the resolution engine runs.
type BuildStart struct {
	ID    string
	Roots []string
}

// BuildFinish is emitted after a build completes or fails.
type BuildFinish struct {
	ID       string
	Types    int
	Err      error
	Duration time.Duration
}

// TypeResolved is emitted once per provider produced by the engine.
type TypeResolved struct {
	BuildID   string
	Name      string
	Kind      string
	GoType    string
	Extension bool
}
