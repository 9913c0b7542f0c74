package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory. The LSP server uses it so a
// long editing session can be inspected without writing a trace file.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	start int // oldest event
	n     int // stored events, <= len(buf)
	level Level
}

// NewRingTracer creates a RingTracer holding up to capacity events
// (4096 when capacity <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || !t.level.Allows(ev) {
		return
	}
	stored := *ev

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = stored
		t.n++
		return
	}
	t.buf[t.start] = stored
	t.start = (t.start + 1) % len(t.buf)
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	return t.Filter(nil)
}

// Filter returns the stored events accepted by keep, oldest first.
// A nil keep accepts everything.
func (t *RingTracer) Filter(keep func(*Event) bool) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.n)
	for i := 0; i < t.n; i++ {
		ev := &t.buf[(t.start+i)%len(t.buf)]
		if keep == nil || keep(ev) {
			out = append(out, *ev)
		}
	}
	return out
}

// Errors returns the stored error events (parse failures, recovered rule panics).
func (t *RingTracer) Errors() []Event {
	return t.Filter(func(ev *Event) bool { return ev.Kind == KindError })
}

// Dump writes all stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	return writeEvents(w, t.Snapshot(), format)
}

// DumpErrors writes only the stored error events to w.
func (t *RingTracer) DumpErrors(w io.Writer, format Format) error {
	return writeEvents(w, t.Errors(), format)
}

func writeEvents(w io.Writer, events []Event, format Format) error {
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op: events live in memory.
func (t *RingTracer) Flush() error { return nil }

// Close is a no-op.
func (t *RingTracer) Close() error { return nil }

// Level returns the current tracing level.
func (t *RingTracer) Level() Level { return t.level }

// Enabled returns true if tracing is active.
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
