package sync

import (
	"log/slog"
	gosync "sync"
	"time"
)

const defaultProgressInterval = 30 * time.Second

// LogReporter writes refresh events to a slog logger. Failures are always
// logged. Completion events are logged at info the first time and whenever
// the outcome changes, otherwise at debug so a healthy 10s cadence does not
// flood the log. Progress events are debug-only and throttled per stage.
type LogReporter struct {
	Logger           *slog.Logger
	ProgressInterval time.Duration

	mu         gosync.Mutex
	lastLogged map[string]time.Time
	lastDone   map[string]bool
}

func (r *LogReporter) Report(e Event) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := e.At
	if now.IsZero() {
		now = time.Now()
	}

	attrs := []any{"source", e.Source}
	if e.Stage != "" {
		attrs = append(attrs, "stage", e.Stage)
	}
	if e.Current != 0 || e.Total != 0 {
		attrs = append(attrs, "current", e.Current, "total", e.Total)
	}

	message := e.Message
	if e.Err != nil {
		if message == "" {
			switch {
			case e.Source != "" && e.Stage != "":
				message = e.Source + " " + e.Stage + " failed"
			case e.Source != "":
				message = e.Source + " failed"
			default:
				message = "refresh failed"
			}
		}
		attrs = append(attrs, "err", e.Err)
		logger.Warn(message, attrs...)
		r.markDone(e.Source, false)
		return
	}

	if e.Done {
		if message == "" {
			message = "refresh complete"
		}
		if r.markDone(e.Source, true) {
			logger.Info(message, attrs...)
		} else {
			logger.Debug(message, attrs...)
		}
		return
	}

	if message == "" || !r.shouldLogProgress(now, e.Source+"/"+e.Stage) {
		return
	}
	logger.Debug(message, attrs...)
}

// markDone records the outcome for source and reports whether it differs from
// the previous one.
func (r *LogReporter) markDone(source string, ok bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastDone == nil {
		r.lastDone = make(map[string]bool)
	}
	prev, seen := r.lastDone[source]
	r.lastDone[source] = ok
	return !seen || prev != ok
}

func (r *LogReporter) shouldLogProgress(now time.Time, key string) bool {
	interval := r.ProgressInterval
	if interval <= 0 {
		interval = defaultProgressInterval
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastLogged == nil {
		r.lastLogged = make(map[string]time.Time)
	}
	last, ok := r.lastLogged[key]
	if ok && now.Sub(last) < interval {
		return false
	}
	r.lastLogged[key] = now
	return true
}
