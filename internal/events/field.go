package events

import "time"

// FieldInvokeStart is emitted before a bound method is called.
type FieldInvokeStart struct {
	ID    string
	Type  string
	Field string
}

// FieldInvokeFinish is emitted after a bound method returns.
type FieldInvokeFinish struct {
	ID       string
	Type     string
	Field    string
	Err      error
	Duration time.Duration
}
