package sync

import "time"

// Reporter receives progress and failure events from a refresh pass.
type Reporter interface {
	Report(Event)
}

// Event describes one step of a refresh pass. Source names the upstream
// system, Stage the resource or phase being worked on.
type Event struct {
	Source  string
	Stage   string
	Current int64
	Total   int64
	Message string
	Done    bool
	Err     error
	At      time.Time
}

// NopReporter discards events.
type NopReporter struct{}

func (NopReporter) Report(Event) {}
