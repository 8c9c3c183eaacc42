// Package datasource supplies historical ITCH 5.0 frames to a replay
// run, one size-prefixed record at a time, in file order.
package datasource

import "time"

// HistDataSource iterates a historical feed file in order. A freshly
// constructed source already has its first frame loaded: nextTime() and
// nextMessage() are valid immediately, no initial Advance call needed.
type HistDataSource interface {
	// NextTime is the timestamp of the frame NextMessage returns, or
	// MaxTime once the source is exhausted.
	NextTime() time.Time
	// NextMessage is the current frame's raw record bytes (header
	// included, size prefix stripped), or nil once exhausted.
	NextMessage() []byte
	// HasMessage reports whether NextMessage is non-empty.
	HasMessage() bool
	// Seek advances the source until NextTime is no earlier than t,
	// returning the resulting NextTime.
	Seek(t time.Time) time.Time
	// Advance moves to the following frame, returning its NextTime (or
	// the max-time sentinel at end of stream).
	Advance() time.Time
	// Close releases any underlying resources (e.g. an mmap).
	Close() error
}

// MaxTime is the end-of-stream sentinel: a NextTime this value, paired
// with an empty NextMessage, signals end of stream.
var MaxTime = time.Unix(1<<62, 0).UTC()

// Factory constructs a HistDataSource for a given historical date
// (YYYYMMDD), the registry HistDataSourceFactory generalizes in the
// original implementation into a name -> constructor map.
type Factory func(date int) (HistDataSource, error)

var registry = map[string]Factory{}

// Register adds a named source factory, called from an init() in the
// package implementing it (mirroring database/sql driver registration).
func Register(name string, f Factory) {
	registry[name] = f
}

// Create looks up a registered factory by name and constructs a source
// for date.
func Create(name string, date int) (HistDataSource, error) {
	f, ok := registry[name]
	if !ok {
		return nil, &UnknownSourceError{Name: name}
	}
	return f(date)
}

// UnknownSourceError reports a Create call naming an unregistered
// source.
type UnknownSourceError struct{ Name string }

func (e *UnknownSourceError) Error() string {
	return "datasource: unknown source " + e.Name
}
